// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rag is the HTTP client for the remote answer service.
//
// The service exposes a single endpoint, POST /api/rag/ask, taking
// {"query": "..."} and replying either
// {"answer": "...", "confidence": "...", "sources": [...]} or
// {"error": "..."}.
//
// # Outcomes
//
// Ask distinguishes three outcomes:
//
//   - an answer: AskResponse with Error empty
//   - an application error: AskResponse with Error set, err == nil
//   - a transport failure: err is a *TransportError matching ErrTransport
//
// Application errors are data, not Go errors: the service answered, it just
// refused the question.
//
// # Usage
//
//	client := rag.NewClient(cfg.API.AskURL(), rag.WithTimeout(cfg.API.Timeout()))
//	resp, err := client.Ask(ctx, "What is CVE-2021-44228?")
//	if errors.Is(err, rag.ErrTransport) {
//	    // show the fallback message
//	}
package rag
