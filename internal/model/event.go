// internal/model/event.go
package model

import "time"

// EventLevel classifies monitor events for the dashboard.
type EventLevel int

const (
	EventInfo EventLevel = iota
	EventNotify
	EventError
)

// Event is a single monitor activity line shown in the event log panel.
type Event struct {
	Timestamp time.Time
	Level     EventLevel
	Message   string
}
