// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders bot answers for terminal display using glamour.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
)

// DefaultWidth is used when the caller passes a non-positive width.
const DefaultWidth = 80

// =============================================================================
// RENDERER
// =============================================================================

// Renderer renders markdown with a fixed glamour style. Term renderers are
// built lazily per wrap width and cached. Safe for concurrent use.
type Renderer struct {
	style string

	mu    sync.Mutex
	cache map[int]*glamour.TermRenderer
}

// NewRenderer creates a renderer for the given glamour standard style
// ("dark", "light", "notty", ...). An empty style means "auto".
func NewRenderer(style string) *Renderer {
	if style == "" {
		style = "auto"
	}
	return &Renderer{
		style: style,
		cache: make(map[int]*glamour.TermRenderer),
	}
}

// Style returns the glamour style name.
func (r *Renderer) Style() string {
	return r.style
}

// Render renders content wrapped at width. If glamour fails the content is
// returned unchanged, so an answer is never lost to a rendering problem.
func (r *Renderer) Render(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return content
	}

	tr := r.termRenderer(width)
	if tr == nil {
		return content
	}

	out, err := tr.Render(content)
	if err != nil {
		log.Debug().Err(err).Msg("markdown render failed, using plain text")
		return content
	}
	return strings.Trim(out, "\n")
}

func (r *Renderer) termRenderer(width int) *glamour.TermRenderer {
	if width <= 0 {
		width = DefaultWidth
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if tr, ok := r.cache[width]; ok {
		return tr
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if r.style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(r.style))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		log.Warn().Err(err).Str("style", r.style).Msg("create markdown renderer")
		// Cache the failure so we don't retry on every frame.
		r.cache[width] = nil
		return nil
	}
	r.cache[width] = tr
	return tr
}
