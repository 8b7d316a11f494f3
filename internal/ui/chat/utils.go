// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// FORMATTING UTILITIES
// =============================================================================

// formatTimestamp formats a message time. Today shows just the time, older
// messages get the date too.
func formatTimestamp(t time.Time) string {
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("Jan 2 15:04")
}

// =============================================================================
// TEXT UTILITIES
// =============================================================================

// wrapText wraps text to maxWidth terminal columns, breaking at spaces where
// possible. Existing line breaks are kept.
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	var result strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}

		for runewidth.StringWidth(line) > maxWidth {
			head := runewidth.Truncate(line, maxWidth, "")
			if cut := strings.LastIndex(head, " "); cut > 0 {
				head = head[:cut]
			}
			if head == "" {
				// A single wide rune wider than maxWidth.
				_, size := utf8.DecodeRuneInString(line)
				head = line[:size]
			}
			result.WriteString(head)
			result.WriteString("\n")
			line = strings.TrimLeft(line[len(head):], " ")
		}
		result.WriteString(line)
	}
	return result.String()
}
