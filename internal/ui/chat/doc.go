// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the ragchat TUI.
//
// The view owns a model.Conversation, the draft input and a scrollable
// viewport. Submitting a draft appends the question, blurs the input and
// starts one request to the answer service in a tea.Cmd; the reply comes
// back as an AnswerMsg and is appended by Update. All state changes happen
// in Update, so there is never more than one request in flight.
//
// Keys:
//
//	Enter          submit the draft
//	Up/Down        scroll one line
//	PgUp/PgDn      scroll one page
//	Ctrl+Y         copy the last answer
//	Ctrl+E         export a transcript
//	Ctrl+C, Esc    quit
//
// Drafts starting with "/" are local commands (/help, /copy, /export, /quit)
// and never reach the service.
package chat
