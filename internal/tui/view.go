package tui

import "github.com/charmbracelet/lipgloss"

// View renders the dashboard
func (m Model) View() string {
	return m.renderFourPanelView()
}

// renderFourPanelView renders the four-panel grid layout
func (m Model) renderFourPanelView() string {
	// 40% left, 60% right for columns
	// 40% top, 60% bottom for rows
	leftWidth := int(float64(m.width) * 0.4)
	rightWidth := m.width - leftWidth

	topHeight := int(float64(m.height) * 0.4)
	bottomHeight := m.height - topHeight

	topLeftPanel := m.renderSourcesPanel(leftWidth, topHeight)
	topRightPanel := m.renderContainersPanel(rightWidth, topHeight)
	bottomLeftPanel := m.renderAnnouncementsPanel(leftWidth, bottomHeight)
	bottomRightPanel := m.renderEventsPanel(rightWidth, bottomHeight)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, topLeftPanel, topRightPanel)
	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top, bottomLeftPanel, bottomRightPanel)

	return lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow)
}
