package tui

// truncate shortens a string to a maximum length
func truncate(s string, max int) string {
	if max <= 3 {
		return s
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// calculateVisibleEventLines calculates how many event lines fit in the panel
func (m Model) calculateVisibleEventLines() int {
	// Bottom panel is 60% of height
	bottomHeight := int(float64(m.height) * 0.6)
	// Reserve space for borders, title, follow indicator and scroll help
	visibleLines := bottomHeight - 8
	if visibleLines < 3 {
		visibleLines = 3
	}
	return visibleLines
}

// calculateMaxScroll calculates the maximum event scroll position
func (m Model) calculateMaxScroll() int {
	visibleLines := m.calculateVisibleEventLines()
	maxScroll := len(m.events) - visibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	return maxScroll
}
