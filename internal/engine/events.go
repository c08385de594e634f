package engine

import (
	"fmt"

	"github.com/roach88/scorekeeper/internal/model"
)

// EventType names a lifecycle event fired after a unit completes.
type EventType string

const (
	EventPointComplete EventType = "point-complete"
	EventGameComplete  EventType = "game-complete"
	EventSetComplete   EventType = "set-complete"
	EventMatchComplete EventType = "match-complete"
)

// EventTypes lists every lifecycle event from the leaves up.
var EventTypes = []EventType{EventPointComplete, EventGameComplete, EventSetComplete, EventMatchComplete}

// Callback receives the match right after a unit completed.
// The match must not be modified.
type Callback func(m *model.Match) error

// events holds the callbacks of one match strategy, in registration order
// per event type.
type events struct {
	handlers map[EventType][]Callback
}

func newEvents() *events {
	return &events{handlers: make(map[EventType][]Callback)}
}

func (e *events) register(t EventType, cb Callback) {
	if cb == nil {
		return
	}
	e.handlers[t] = append(e.handlers[t], cb)
}

// fire calls every callback registered for t. The first failure aborts the
// remaining callbacks and is returned as a callback error.
func (e *events) fire(t EventType, m *model.Match) error {
	for _, cb := range e.handlers[t] {
		if err := call(cb, m); err != nil {
			return NewCallbackError(t, err)
		}
	}
	return nil
}

func call(cb Callback, m *model.Match) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return cb(m)
}
