package network

import (
	"fmt"
	"sync"
)

// Emitted is an outbound event recorded by MemoryChannel.
type Emitted struct {
	Event   string
	Payload any
}

// MemoryChannel is an in-process Channel. Deliver queues inbound events after
// a codec round trip, and emitted events are recorded for inspection.
type MemoryChannel struct {
	id    string
	codec Codec
	d     dispatcher

	mu      sync.Mutex
	inbox   []Message
	emitted []Emitted
	closed  bool
}

// NewMemoryChannel creates an in-process channel. A nil codec means JSON.
func NewMemoryChannel(id string, codec Codec) *MemoryChannel {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &MemoryChannel{
		id:    id,
		codec: codec,
		d:     newDispatcher(),
	}
}

func (c *MemoryChannel) ID() string { return c.id }

func (c *MemoryChannel) On(event string, handler Handler) {
	c.d.on(event, handler)
}

// Emit records the event.
func (c *MemoryChannel) Emit(event string, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.emitted = append(c.emitted, Emitted{Event: event, Payload: payload})
	return nil
}

// Deliver queues an inbound event as if the server had sent it.
func (c *MemoryChannel) Deliver(event string, payload any) error {
	frame, err := c.codec.EncodeEnvelope(event, payload)
	if err != nil {
		return err
	}
	return c.DeliverRaw(frame)
}

// DeliverRaw queues an already encoded frame.
func (c *MemoryChannel) DeliverRaw(frame []byte) error {
	event, raw, err := c.codec.DecodeEnvelope(frame)
	if err != nil {
		return fmt.Errorf("deliver: %w", err)
	}
	c.mu.Lock()
	c.inbox = append(c.inbox, Message{Event: event, Payload: raw, codec: c.codec})
	c.mu.Unlock()
	return nil
}

func (c *MemoryChannel) Poll() int {
	c.mu.Lock()
	pending := c.inbox
	c.inbox = nil
	c.mu.Unlock()

	for _, msg := range pending {
		c.d.dispatch(msg)
	}
	return len(pending)
}

// Emitted returns a copy of every emitted event.
func (c *MemoryChannel) Emitted() []Emitted {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Emitted, len(c.emitted))
	copy(out, c.emitted)
	return out
}

// EmittedCount returns how many times event was emitted.
func (c *MemoryChannel) EmittedCount(event string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.emitted {
		if e.Event == event {
			n++
		}
	}
	return n
}

func (c *MemoryChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
