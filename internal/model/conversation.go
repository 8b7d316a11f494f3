// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// ErrorPrefix marks application errors reported by the service.
	ErrorPrefix = "⚠️ "

	// FallbackText replaces the answer when the service could not be reached
	// or replied with something that is not JSON.
	FallbackText = "Error connecting to server. Is backend running?"
)

var (
	// ErrEmptyQuery is returned by Submit for blank drafts.
	ErrEmptyQuery = errors.New("empty query")

	// ErrBusy is returned by Submit while a question is in flight.
	ErrBusy = errors.New("a question is already in flight")
)

// Result is the outcome of one round trip to the answer service.
// Transport takes precedence over Error, which takes precedence over Answer.
type Result struct {
	Answer     string
	Confidence string
	Sources    []string

	// Error is the service's application-level error text.
	Error string

	// Transport is set when no usable reply arrived.
	Transport error
}

// Conversation is the append-only message history of one session plus the
// loading gate. It is not safe for concurrent use; front ends mutate it from
// a single goroutine.
type Conversation struct {
	ID        string
	CreatedAt time.Time

	messages []Message
	loading  bool
}

// NewConversation creates a conversation, seeded with a bot greeting unless
// greeting is empty.
func NewConversation(greeting string) *Conversation {
	c := &Conversation{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	if greeting != "" {
		c.messages = append(c.messages, newMessage(RoleBot, greeting))
	}
	return c
}

// Loading reports whether a question is awaiting its answer.
func (c *Conversation) Loading() bool {
	return c.loading
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Messages returns a copy of the history in display order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	for i, m := range c.messages {
		out[i] = m.clone()
	}
	return out
}

// Last returns the newest message.
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1].clone(), true
}

// LastAnswer returns the newest successful bot reply to a question. The
// greeting does not count.
func (c *Conversation) LastAnswer() (Message, bool) {
	for i := len(c.messages) - 1; i > 0; i-- {
		m := c.messages[i]
		if m.Role == RoleBot && !m.IsError && c.messages[i-1].Role == RoleUser {
			return m.clone(), true
		}
	}
	return Message{}, false
}

// Submit accepts a draft. The draft is trimmed; blank drafts and drafts sent
// while loading are rejected without touching the history. On success the
// user message is appended, loading is set and the query to send is returned.
func (c *Conversation) Submit(draft string) (string, error) {
	if c.loading {
		return "", ErrBusy
	}
	query := strings.TrimSpace(draft)
	if query == "" {
		return "", ErrEmptyQuery
	}
	c.messages = append(c.messages, newMessage(RoleUser, query))
	c.loading = true
	return query, nil
}

// Resolve appends the bot message for the in-flight question and clears
// loading. It returns false and does nothing if no question is in flight.
func (c *Conversation) Resolve(r Result) (Message, bool) {
	if !c.loading {
		return Message{}, false
	}

	var msg Message
	switch {
	case r.Transport != nil:
		msg = newMessage(RoleBot, FallbackText)
		msg.IsError = true
	case r.Error != "":
		msg = newMessage(RoleBot, ErrorPrefix+r.Error)
		msg.IsError = true
	default:
		msg = newMessage(RoleBot, r.Answer)
		msg.Confidence = Confidence(r.Confidence)
		if len(r.Sources) > 0 {
			msg.Sources = append([]string(nil), r.Sources...)
		}
	}

	c.messages = append(c.messages, msg)
	c.loading = false
	return msg.clone(), true
}
