// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

type jsonTranscript struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Exported  time.Time       `json:"exported_at"`
	Messages  []model.Message `json:"messages"`
}

// JSONExporter writes conversations as indented JSON.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts a conversation to JSON.
func (e *JSONExporter) Export(conv *model.Conversation) ([]byte, error) {
	if err := validate(conv); err != nil {
		return nil, err
	}
	return json.MarshalIndent(jsonTranscript{
		ID:        conv.ID,
		CreatedAt: conv.CreatedAt,
		Exported:  e.options.now(),
		Messages:  conv.Messages(),
	}, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// ForPath picks an exporter from a target file extension. Anything that is
// not .json gets Markdown.
func ForPath(path string, opts *Options) Exporter {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONExporter(opts)
	}
	return NewMarkdownExporter(opts)
}
