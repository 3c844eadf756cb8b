package events

import "encoding/json"

// Event defines a type that can yield itself as JSON bytes and describe
// itself to publish filters.
type Event interface {
	Yield() []byte
	EventAction() string
	IsSuccessful() bool
}

// ReportEvent is emitted for every state change to an observation or image,
// and for denied requests when failure actions are configured.
type ReportEvent struct {
	Action     string `json:"action"`
	ObjectType string `json:"object_type"`
	ObjectID   string `json:"object_id"`
	UserID     string `json:"user_id"`
	Timestamp  string `json:"timestamp"`
	SessionID  string `json:"session_id"`
	Success    bool   `json:"success"`
}

// Yield satisfies the Event interface.
func (e ReportEvent) Yield() []byte {
	b, _ := json.Marshal(e)
	return b
}

// EventAction satisfies the Event interface.
func (e ReportEvent) EventAction() string {
	return e.Action
}

// IsSuccessful satisfies the Event interface.
func (e ReportEvent) IsSuccessful() bool {
	return e.Success
}
