// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/model"
)

// =============================================================================
// ANSWER SERVICE MESSAGES
// =============================================================================

// AnswerMsg carries the outcome of one ask round trip.
type AnswerMsg struct {
	Query  string
	Result model.Result
}

// =============================================================================
// LOCAL ACTION MESSAGES
// =============================================================================

// ExportCompleteMsg reports the result of a transcript export.
type ExportCompleteMsg struct {
	Path string
	Err  error
}

// CopyCompleteMsg reports the result of a clipboard copy.
type CopyCompleteMsg struct {
	Chars int
	Err   error
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg is sent when the config file changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}
