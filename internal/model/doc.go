// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the conversation state shared by every ragchat
// front end.
//
// # Key Types
//
//   - Message: one immutable chat bubble (user question or bot answer)
//   - Conversation: append-only message list plus the in-flight flag
//   - Result: what came back from the answer service for one question
//
// # State Machine
//
// A conversation is either idle or loading. Submit moves idle to loading and
// appends the user message; Resolve moves loading back to idle and appends
// exactly one bot message. Submit while loading is rejected with ErrBusy.
//
//	conv := model.NewConversation(config.DefaultGreeting)
//	query, err := conv.Submit("  what is CVE-2021-44228? ")
//	// ... ask the service ...
//	conv.Resolve(model.Result{Answer: "Log4Shell ...", Confidence: "high"})
package model
