// Package input turns raw key presses into game input events.
package input

import (
	"bufio"
	"context"
	"io"
	"sync"
	"unicode"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type EventType
	Key  string
}

// KeyDown returns a key-down event for key.
func KeyDown(key string) Event {
	return Event{Type: EventKeyDown, Key: key}
}

// Source yields the input events gathered since the previous call.
type Source interface {
	Poll() []Event
}

// Queue is a Source fed from other goroutines.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		events: make([]Event, 0, 16),
	}
}

// Push appends an event. Safe for concurrent use.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// Poll drains and returns the queued events.
func (q *Queue) Poll() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = make([]Event, 0, 16)
	return out
}

// ReadKeys reads r line by line and pushes a key-down for every printable
// non-space rune of each line. A 'q' on its own line or EOF pushes
// EventQuit. Scan blocks, so ctx is only checked once the next line arrives.
func ReadKeys(ctx context.Context, r io.Reader, q *Queue) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := scanner.Text()
		if line == "q" {
			q.Push(Event{Type: EventQuit})
			return nil
		}
		for _, ch := range line {
			if unicode.IsPrint(ch) && !unicode.IsSpace(ch) {
				q.Push(KeyDown(string(ch)))
			}
		}
	}
	q.Push(Event{Type: EventQuit})
	return scanner.Err()
}
