// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stub serves a development double of the answer service.
//
// It speaks the same JSON contract as the real backend on
// POST /api/rag/ask, including its in-band error replies, but the answers
// are canned: there is no retrieval or generation behind it. Use it to work
// on the TUI without the real stack:
//
//	ragchat stub --addr :8080
package stub
