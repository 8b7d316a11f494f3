// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleBot:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// CONFIDENCE
// =============================================================================

// Confidence is the service's self-reported answer confidence. The value is
// opaque: anything the server sends is kept verbatim.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Known reports whether c is one of low, medium or high.
func (c Confidence) Known() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}

// Level maps c onto low, medium or high ignoring case and surrounding space,
// so "High" from the service gets the high chip. Other values map to "".
func (c Confidence) Level() Confidence {
	l := Confidence(strings.ToLower(strings.TrimSpace(string(c))))
	if l.Known() {
		return l
	}
	return ""
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single chat bubble. Messages are values; once appended to a
// Conversation they are never modified.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`

	// Bot answers only.
	Confidence Confidence `json:"confidence,omitempty"`
	Sources    []string   `json:"sources,omitempty"`
	IsError    bool       `json:"is_error,omitempty"`
}

func newMessage(role Role, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// HasMeta reports whether the confidence/sources chips should be shown.
func (m Message) HasMeta() bool {
	return m.Role == RoleBot && !m.IsError && m.Confidence != ""
}

// clone returns a copy that shares no slices with m.
func (m Message) clone() Message {
	if m.Sources != nil {
		m.Sources = append([]string(nil), m.Sources...)
	}
	return m
}
