// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter writes conversations as Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a conversation to Markdown.
func (e *MarkdownExporter) Export(conv *model.Conversation) ([]byte, error) {
	if err := validate(conv); err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("# Secure RAG transcript\n\n")
	sb.WriteString(fmt.Sprintf("- **Session**: %s\n", conv.ID))
	sb.WriteString(fmt.Sprintf("- **Started**: %s\n\n", conv.CreatedAt.Format(time.RFC3339)))

	msgs := conv.Messages()
	for i, msg := range msgs {
		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf("## %s <sub>%s</sub>\n\n",
				msg.Role.DisplayName(), formatShortTimestamp(msg.Timestamp)))
		} else {
			sb.WriteString(fmt.Sprintf("## %s\n\n", msg.Role.DisplayName()))
		}

		text := strings.TrimSpace(msg.Text)
		if msg.IsError {
			text = "> " + strings.ReplaceAll(text, "\n", "\n> ")
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")

		if msg.HasMeta() {
			sb.WriteString(fmt.Sprintf("**Confidence**: %s\n", msg.Confidence))
			if len(msg.Sources) > 0 {
				sb.WriteString(fmt.Sprintf("**Sources**: %s\n", strings.Join(msg.Sources, ", ")))
			}
			sb.WriteString("\n")
		}

		if i < len(msgs)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from ragchat on %s*\n",
		e.options.now().Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}
