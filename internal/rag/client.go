// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// MaxResponseSize bounds how much of a reply is read.
	MaxResponseSize = 10 * 1024 * 1024

	// userAgent identifies the client in service logs.
	userAgent = "ragchat"
)

// ErrTransport is matched by every failure to obtain a JSON reply.
var ErrTransport = errors.New("answer service unreachable")

var errNotObject = errors.New("reply is not a JSON object")

// TransportError describes why no usable reply arrived.
type TransportError struct {
	// Op is the failed step: "encode", "request", "read" or "decode".
	Op string
	// Status is the HTTP status when a response was received, else 0.
	Status int
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ask %s (HTTP %d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("ask %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrTransport) match.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Asker is the part of Client the front ends depend on.
type Asker interface {
	Ask(ctx context.Context, query string) (*AskResponse, error)
}

// Client talks to the ask endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a client for the full ask URL.
func NewClient(askURL string, opts ...Option) *Client {
	c := &Client{
		url: askURL,
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        4,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string {
	return c.url
}

// Ask posts the query and decodes the reply.
//
// Any HTTP status is accepted when the body is JSON: the service reports
// refusals in-band. A JSON object without an answer or error field decodes
// to an (empty) answer; any other JSON value is a transport failure.
func (c *Client) Ask(ctx context.Context, query string) (*AskResponse, error) {
	body, err := json.Marshal(AskRequest{Query: query})
	if err != nil {
		return nil, &TransportError{Op: "encode", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: "request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", c.url).Msg("ask request failed")
		return nil, &TransportError{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, &TransportError{Op: "read", Status: resp.StatusCode, Err: err}
	}
	if len(data) > MaxResponseSize {
		return nil, &TransportError{
			Op:     "read",
			Status: resp.StatusCode,
			Err:    errors.Errorf("response exceeds %d bytes", MaxResponseSize),
		}
	}

	// null, arrays and scalars carry neither answer nor error.
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		log.Warn().Int("status", resp.StatusCode).Msg("ask reply is not a JSON object")
		return nil, &TransportError{Op: "decode", Status: resp.StatusCode, Err: errNotObject}
	}

	var out AskResponse
	if err := json.Unmarshal(data, &out); err != nil {
		log.Warn().Err(err).Int("status", resp.StatusCode).Msg("ask reply is not JSON")
		return nil, &TransportError{Op: "decode", Status: resp.StatusCode, Err: err}
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Bool("app_error", out.IsError()).
		Int("sources", len(out.Sources)).
		Msg("ask completed")

	return &out, nil
}
