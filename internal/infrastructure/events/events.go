// Package events delivers briefing events to hosts.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"slices"
	"sync"

	"github.com/tesso57/briefing/internal/application/usecase"
)

// WriterSink writes one JSON object per event to an io.Writer.
type WriterSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriterSink constructs a WriterSink.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{enc: json.NewEncoder(w)}
}

// Emit implements usecase.Emitter.
func (s *WriterSink) Emit(_ context.Context, event usecase.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(event)
}

// Buffer keeps events in memory for hosts that answer once the run is over.
type Buffer struct {
	mu     sync.Mutex
	events []usecase.Event
}

// Emit implements usecase.Emitter.
func (b *Buffer) Emit(_ context.Context, event usecase.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

// Events returns a snapshot of the emitted events.
func (b *Buffer) Events() []usecase.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.events)
}

// Multi fans out every event to all sinks; errors are joined.
type Multi []usecase.Emitter

// Emit implements usecase.Emitter.
func (m Multi) Emit(ctx context.Context, event usecase.Event) error {
	var errs []error
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
