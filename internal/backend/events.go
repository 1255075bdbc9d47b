// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"sync"
	"time"
)

// EventType names an auth lifecycle transition.
type EventType string

const (
	EventSignedIn         EventType = "SIGNED_IN"
	EventSignedUp         EventType = "SIGNED_UP"
	EventTokenRefreshed   EventType = "TOKEN_REFRESHED"
	EventPasswordRecovery EventType = "PASSWORD_RECOVERY"
	EventUserUpdated      EventType = "USER_UPDATED"
	EventAdminUserCreated EventType = "ADMIN_USER_CREATED"
)

// Event is one auth lifecycle notification. It never carries tokens.
type Event struct {
	Type   EventType
	UserID string
	Email  string
	At     time.Time
}

// Events is a synchronous fan-out hub for auth events.
//
// # Concurrency
//
// Subscribe, unsubscribe and Emit may be called from any goroutine. Handlers run
// on the emitting goroutine and must not block.
type Events struct {
	mu          sync.RWMutex
	nextID      uint64
	subscribers map[uint64]func(Event)
}

// NewEvents creates an empty hub.
func NewEvents() *Events {
	return &Events{subscribers: make(map[uint64]func(Event))}
}

// Subscribe registers handler and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (events *Events) Subscribe(handler func(Event)) (unsubscribe func()) {
	events.mu.Lock()
	id := events.nextID
	events.nextID++
	events.subscribers[id] = handler
	events.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			events.mu.Lock()
			delete(events.subscribers, id)
			events.mu.Unlock()
		})
	}
}

// Emit delivers event to every current subscriber.
func (events *Events) Emit(event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	events.mu.RLock()
	handlers := make([]func(Event), 0, len(events.subscribers))
	for _, handler := range events.subscribers {
		handlers = append(handlers, handler)
	}
	events.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// Len returns the number of active subscribers.
func (events *Events) Len() int {
	events.mu.RLock()
	defer events.mu.RUnlock()
	return len(events.subscribers)
}

func (client *Client) emit(eventType EventType, user User) {
	client.events.Emit(Event{Type: eventType, UserID: user.ID, Email: user.Email})
}
