// Package audit provides an append-only record of mutating actions
// (connection builds and deletes) as JSON lines.
package audit

import (
	"fmt"
	"time"
)

// Event represents one auditable action against a device.
type Event struct {
	ID         string        `json:"id"`
	Timestamp  time.Time     `json:"timestamp"`
	User       string        `json:"user"`
	Device     string        `json:"device"`
	Action     string        `json:"action"`
	Connection string        `json:"connection,omitempty"`
	Frequency  string        `json:"frequency,omitempty"`
	Success    bool          `json:"success"`
	Result     string        `json:"result,omitempty"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// Filter defines criteria for querying audit events
type Filter struct {
	Device      string
	User        string
	Action      string
	StartTime   time.Time
	EndTime     time.Time
	SuccessOnly bool
	FailureOnly bool
	Limit       int
	Offset      int
}

// NewEvent creates a new audit event
func NewEvent(user, device, action string) *Event {
	return &Event{
		ID:        generateID(),
		Timestamp: time.Now(),
		User:      user,
		Device:    device,
		Action:    action,
	}
}

// WithConnection sets the connection name
func (e *Event) WithConnection(name string) *Event {
	e.Connection = name
	return e
}

// WithFrequency sets the center frequency
func (e *Event) WithFrequency(freq string) *Event {
	e.Frequency = freq
	return e
}

// WithResult marks the event as successful with a status message
func (e *Event) WithResult(result string) *Event {
	e.Success = true
	e.Result = result
	return e
}

// WithError marks the event as failed
func (e *Event) WithError(err error) *Event {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// WithDuration sets the action duration
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}

func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
