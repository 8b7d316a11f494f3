// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// SUBMIT
// =============================================================================

func TestSubmit_BlankInputAppendsNothing(t *testing.T) {
	for _, draft := range []string{"", " ", "\t\n", "   \r\n  "} {
		conv := NewConversation("")
		_, err := conv.Submit(draft)
		assert.ErrorIs(t, err, ErrEmptyQuery, "draft %q", draft)
		assert.Zero(t, conv.Len())
		assert.False(t, conv.Loading())
	}
}

func TestSubmit_AppendsUserMessageAndSetsLoading(t *testing.T) {
	conv := NewConversation("")

	query, err := conv.Submit("  what is Log4Shell?  ")
	require.NoError(t, err)
	assert.Equal(t, "what is Log4Shell?", query)
	assert.True(t, conv.Loading())

	last, ok := conv.Last()
	require.True(t, ok)
	assert.Equal(t, RoleUser, last.Role)
	assert.Equal(t, "what is Log4Shell?", last.Text)
	assert.NotEmpty(t, last.ID)
}

func TestSubmit_RejectedWhileLoading(t *testing.T) {
	conv := NewConversation("")
	_, err := conv.Submit("first")
	require.NoError(t, err)

	_, err = conv.Submit("second")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, 1, conv.Len())
}

// =============================================================================
// RESOLVE
// =============================================================================

func TestResolve_Answer(t *testing.T) {
	conv := NewConversation("")
	_, err := conv.Submit("q")
	require.NoError(t, err)

	msg, ok := conv.Resolve(Result{Answer: "X", Confidence: "high", Sources: []string{"A"}})
	require.True(t, ok)
	assert.Equal(t, RoleBot, msg.Role)
	assert.Equal(t, "X", msg.Text)
	assert.Equal(t, ConfidenceHigh, msg.Confidence)
	assert.Equal(t, []string{"A"}, msg.Sources)
	assert.False(t, msg.IsError)
	assert.True(t, msg.HasMeta())
	assert.False(t, conv.Loading())
}

func TestResolve_ApplicationError(t *testing.T) {
	conv := NewConversation("")
	_, _ = conv.Submit("q")

	msg, ok := conv.Resolve(Result{Error: "bad query", Answer: "ignored"})
	require.True(t, ok)
	assert.True(t, msg.IsError)
	assert.Equal(t, "⚠️ bad query", msg.Text)
	assert.False(t, msg.HasMeta())
	assert.False(t, conv.Loading())
}

func TestResolve_TransportFailure(t *testing.T) {
	conv := NewConversation("")
	_, _ = conv.Submit("q")

	msg, ok := conv.Resolve(Result{Transport: errors.New("dial tcp: connection refused"), Error: "ignored"})
	require.True(t, ok)
	assert.True(t, msg.IsError)
	assert.Equal(t, FallbackText, msg.Text)
	assert.False(t, conv.Loading())
}

func TestResolve_NotLoadingIsNoop(t *testing.T) {
	conv := NewConversation("hello")

	_, ok := conv.Resolve(Result{Answer: "stray"})
	assert.False(t, ok)
	assert.Equal(t, 1, conv.Len())
}

func TestEverySubmissionAddsExactlyTwoMessages(t *testing.T) {
	conv := NewConversation("hello")
	results := []Result{
		{Answer: "a", Confidence: "low"},
		{Error: "nope"},
		{Transport: errors.New("timeout")},
	}

	for i, r := range results {
		before := conv.Len()
		_, err := conv.Submit("question")
		require.NoError(t, err)
		assert.Equal(t, before+1, conv.Len(), "round %d: user message appended immediately", i)

		_, ok := conv.Resolve(r)
		require.True(t, ok)
		assert.Equal(t, before+2, conv.Len(), "round %d: one bot message after resolution", i)
	}
}

// =============================================================================
// HISTORY
// =============================================================================

func TestGreeting(t *testing.T) {
	conv := NewConversation("Hello!")
	msgs := conv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleBot, msgs[0].Role)
	assert.Equal(t, "Hello!", msgs[0].Text)
	assert.False(t, msgs[0].HasMeta())

	assert.Zero(t, NewConversation("").Len())
}

func TestMessagesReturnsCopy(t *testing.T) {
	conv := NewConversation("")
	_, _ = conv.Submit("q")
	_, _ = conv.Resolve(Result{Answer: "a", Confidence: "medium", Sources: []string{"NVD"}})

	msgs := conv.Messages()
	msgs[1].Text = "tampered"
	msgs[1].Sources[0] = "tampered"

	fresh := conv.Messages()
	assert.Equal(t, "a", fresh[1].Text)
	assert.Equal(t, "NVD", fresh[1].Sources[0])
}

func TestOrderIsInsertionOrder(t *testing.T) {
	conv := NewConversation("greet")
	_, _ = conv.Submit("q1")
	_, _ = conv.Resolve(Result{Answer: "a1"})
	_, _ = conv.Submit("q2")
	_, _ = conv.Resolve(Result{Answer: "a2"})

	var texts []string
	for _, m := range conv.Messages() {
		texts = append(texts, m.Text)
	}
	assert.Equal(t, []string{"greet", "q1", "a1", "q2", "a2"}, texts)
}

func TestLastAnswer(t *testing.T) {
	conv := NewConversation("greet")
	_, ok := conv.LastAnswer()
	assert.False(t, ok, "greeting is not an answer")

	_, _ = conv.Submit("q1")
	_, _ = conv.Resolve(Result{Answer: "a1", Confidence: "high"})
	_, _ = conv.Submit("q2")
	_, _ = conv.Resolve(Result{Error: "boom"})

	ans, ok := conv.LastAnswer()
	require.True(t, ok)
	assert.Equal(t, "a1", ans.Text)
}

func TestConfidenceKnown(t *testing.T) {
	assert.True(t, ConfidenceLow.Known())
	assert.True(t, ConfidenceMedium.Known())
	assert.True(t, ConfidenceHigh.Known())
	assert.False(t, Confidence("VERY HIGH").Known())
	assert.False(t, Confidence("").Known())
}

func TestConfidenceLevel(t *testing.T) {
	assert.Equal(t, ConfidenceHigh, Confidence("High").Level())
	assert.Equal(t, ConfidenceMedium, Confidence(" MEDIUM ").Level())
	assert.Equal(t, ConfidenceLow, ConfidenceLow.Level())
	assert.Equal(t, Confidence(""), Confidence("certain").Level())
}

func TestRoleDisplayName(t *testing.T) {
	assert.Equal(t, "You", RoleUser.DisplayName())
	assert.Equal(t, "Assistant", RoleBot.DisplayName())
}
