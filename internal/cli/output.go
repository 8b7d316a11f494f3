// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ui/markdown"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// printer writes bot replies in line mode. Markdown is only rendered when
// the output is a terminal so piped output stays clean.
type printer struct {
	out      io.Writer
	renderer *markdown.Renderer
	width    int
}

func newPrinter(out io.Writer, theme string) *printer {
	p := &printer{out: out, width: terminalWidth(out)}
	if isTerminal(out) {
		if !ColorsEnabled() {
			theme = "notty"
		}
		p.renderer = markdown.NewRenderer(theme)
	}
	return p
}

// reply prints one bot message followed by its confidence and sources.
func (p *printer) reply(msg model.Message) {
	if msg.IsError {
		fmt.Fprintln(p.out, ErrorStyle.Render(msg.Text))
		return
	}

	text := msg.Text
	if p.renderer != nil {
		text = p.renderer.Render(text, p.width)
	}
	fmt.Fprintln(p.out, text)

	if !msg.HasMeta() {
		return
	}
	fmt.Fprintln(p.out, LabelStyle.Render("Confidence:")+
		confidenceStyle(msg.Confidence).Render(string(msg.Confidence)))
	if len(msg.Sources) > 0 {
		fmt.Fprintln(p.out, LabelStyle.Render("Sources:")+
			DimStyle.Render(util.JoinTruncated(msg.Sources, ", ", p.width-LabelStyle.GetWidth())))
	}
}

// status prints a dim informational line.
func (p *printer) status(text string) {
	fmt.Fprintln(p.out, DimStyle.Render(text))
}
