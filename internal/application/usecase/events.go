package usecase

import "context"

// EventType identifies the kind of host event.
type EventType string

const (
	EventStatus  EventType = "status"
	EventMessage EventType = "message"
)

// StatusData is the payload of a status event.
type StatusData struct {
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// MessageData is the payload of a message event.
type MessageData struct {
	Content string `json:"content"`
}

// Event is one progress or content notification sent to the host.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}

// StatusEvent builds a status event.
func StatusEvent(description string, done bool) Event {
	return Event{Type: EventStatus, Data: StatusData{Description: description, Done: done}}
}

// MessageEvent builds a message event.
func MessageEvent(content string) Event {
	return Event{Type: EventMessage, Data: MessageData{Content: content}}
}

// Emitter delivers events to a host.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context, event Event) error

// Emit implements Emitter.
func (f EmitterFunc) Emit(ctx context.Context, event Event) error {
	return f(ctx, event)
}
