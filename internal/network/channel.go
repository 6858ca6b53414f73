// Package network connects the client to the arena server through a
// bidirectional event channel.
package network

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/maze-arena/internal/logger"
)

// ErrClosed is returned when emitting on a closed channel.
var ErrClosed = errors.New("channel closed")

// ErrServerClosed is reported by Err after the server closed the
// connection normally.
var ErrServerClosed = errors.New("server closed the connection")

// Message is an inbound event with its still-encoded payload.
type Message struct {
	Event   string
	Payload []byte
	codec   Codec
}

// Decode unmarshals the payload into v.
func (m Message) Decode(v any) error {
	if m.codec == nil {
		return fmt.Errorf("decoding %s: no codec", m.Event)
	}
	if err := m.codec.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("decoding %s: %w", m.Event, err)
	}
	return nil
}

// Handler handles one inbound event.
type Handler func(msg Message) error

// Emitter sends events to the server.
type Emitter interface {
	Emit(event string, payload any) error
}

// Channel is an event stream to the server. Delivery is ordered per event
// name only. Handlers run on the goroutine calling Poll.
type Channel interface {
	Emitter
	// ID returns the local identifier announced with the join event.
	ID() string
	On(event string, handler Handler)
	// Poll dispatches every queued inbound message and returns how many ran.
	Poll() int
	Close() error
}

// dispatcher routes messages to handlers registered per event name.
type dispatcher struct {
	handlers map[string][]Handler
}

func newDispatcher() dispatcher {
	return dispatcher{handlers: make(map[string][]Handler)}
}

func (d *dispatcher) on(event string, h Handler) {
	d.handlers[event] = append(d.handlers[event], h)
}

// dispatch runs the handlers for msg. Handler errors are logged, never fatal.
func (d *dispatcher) dispatch(msg Message) {
	hs, ok := d.handlers[msg.Event]
	if !ok {
		logger.Debug("no handler for event", zap.String("event", msg.Event))
		return
	}
	for _, h := range hs {
		if err := h(msg); err != nil {
			logger.Warn("event handler failed",
				zap.String("event", msg.Event),
				zap.Error(err))
		}
	}
}
