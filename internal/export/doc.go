// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the current conversation to disk as a transcript.
//
// Transcripts are an explicit user action (Ctrl+E, /export or the REPL's
// /export command); nothing here is ever read back. Markdown is the default
// format, JSON is available for tooling.
//
// Usage:
//
//	path, err := export.ToFile(conv, export.NewMarkdownExporter(nil), "", transcriptDir)
package export
