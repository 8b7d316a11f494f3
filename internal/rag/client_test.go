// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package rag

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *AskRequest) {
	t.Helper()
	var got AskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/rag/ask", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

// =============================================================================
// OUTCOME TESTS
// =============================================================================

func TestAsk_Answer(t *testing.T) {
	srv, got := newServer(t, http.StatusOK,
		`{"answer":"X","confidence":"high","sources":["A","B"]}`)

	resp, err := NewClient(srv.URL+"/api/rag/ask").Ask(context.Background(), "what is X?")
	require.NoError(t, err)
	assert.Equal(t, "what is X?", got.Query)
	assert.Equal(t, "X", resp.Answer)
	assert.Equal(t, "high", resp.Confidence)
	assert.Equal(t, []string{"A", "B"}, resp.Sources)
	assert.False(t, resp.IsError())
}

func TestAsk_ApplicationError(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"error":"bad query"}`)

	resp, err := NewClient(srv.URL+"/api/rag/ask").Ask(context.Background(), "drop table")
	require.NoError(t, err, "application errors are data, not Go errors")
	assert.True(t, resp.IsError())
	assert.Equal(t, "bad query", resp.Error)
}

func TestAsk_JSONErrorWithNon2xxStatus(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadRequest, `{"error":"Query is required"}`)

	resp, err := NewClient(srv.URL+"/api/rag/ask").Ask(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "Query is required", resp.Error)
}

func TestAsk_NonJSONIsTransportFailure(t *testing.T) {
	srv, _ := newServer(t, http.StatusBadGateway, `<html>502 Bad Gateway</html>`)

	_, err := NewClient(srv.URL+"/api/rag/ask").Ask(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "decode", te.Op)
	assert.Equal(t, http.StatusBadGateway, te.Status)
	assert.Contains(t, te.Error(), "HTTP 502")
}

func TestAsk_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/api/rag/ask"
	srv.Close()

	_, err := NewClient(url).Ask(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "request", te.Op)
	assert.Zero(t, te.Status)
}

func TestAsk_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/api/rag/ask", WithTimeout(50*time.Millisecond))
	_, err := client.Ask(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestAsk_OversizedBody(t *testing.T) {
	big := `{"answer":"` + strings.Repeat("a", MaxResponseSize) + `"}`
	srv, _ := newServer(t, http.StatusOK, big)

	_, err := NewClient(srv.URL+"/api/rag/ask").Ask(context.Background(), "x")
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "read", te.Op)
}

func TestAsk_EmptyObject(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{}`)

	resp, err := NewClient(srv.URL+"/api/rag/ask").Ask(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, resp.IsError())
	assert.Empty(t, resp.Answer)
}

func TestAsk_NonObjectJSONIsTransportFailure(t *testing.T) {
	for _, body := range []string{`null`, ` null `, `[]`, `"answer"`, `42`, ``} {
		srv, _ := newServer(t, http.StatusOK, body)

		resp, err := NewClient(srv.URL+"/api/rag/ask").Ask(context.Background(), "x")
		require.Error(t, err, "body %q", body)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrTransport)

		var te *TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, "decode", te.Op)

		conv := model.NewConversation("")
		_, err = conv.Submit("x")
		require.NoError(t, err)
		reply, ok := conv.Resolve(ToResult(resp, te))
		require.True(t, ok)
		assert.True(t, reply.IsError)
		assert.Equal(t, model.FallbackText, reply.Text)
	}
}

// =============================================================================
// RESULT MAPPING
// =============================================================================

func TestToResult(t *testing.T) {
	r := ToResult(&AskResponse{Answer: "X", Confidence: "high", Sources: []string{"A"}}, nil)
	assert.Equal(t, model.Result{Answer: "X", Confidence: "high", Sources: []string{"A"}}, r)

	r = ToResult(&AskResponse{Error: "bad query"}, nil)
	assert.Equal(t, "bad query", r.Error)
	assert.Nil(t, r.Transport)

	cause := &TransportError{Op: "request", Err: errors.New("refused")}
	r = ToResult(nil, cause)
	assert.Equal(t, cause, r.Transport)

	r = ToResult(nil, nil)
	assert.ErrorIs(t, r.Transport, ErrTransport)
}

func TestClientSatisfiesAsker(t *testing.T) {
	var _ Asker = NewClient("http://localhost:8080/api/rag/ask")
	assert.Equal(t, "http://localhost:8080/api/rag/ask", NewClient("http://localhost:8080/api/rag/ask").URL())
}
