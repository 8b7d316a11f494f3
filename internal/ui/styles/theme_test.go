// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

func TestNewTheme(t *testing.T) {
	for _, name := range []string{ThemeDark, ThemeLight, ThemeNoTTY, "auto"} {
		theme := NewTheme(name)
		assert.Contains(t, theme.BotBubble.Render("answer"), "answer", name)
		assert.Contains(t, theme.UserBubble.Render("question"), "question", name)
	}
}

func TestNewThemeRestoresColorProfile(t *testing.T) {
	origProfile := lipgloss.ColorProfile()
	origDark := lipgloss.HasDarkBackground()
	baseColorProfile()
	savedBase := baseProfile
	t.Cleanup(func() {
		baseProfile = savedBase
		lipgloss.SetColorProfile(origProfile)
		lipgloss.SetHasDarkBackground(origDark)
	})
	baseProfile = termenv.TrueColor

	NewTheme(ThemeNoTTY)
	assert.Equal(t, termenv.Ascii, lipgloss.ColorProfile())

	// Switching away from notty brings color back.
	NewTheme(ThemeDark)
	assert.Equal(t, termenv.TrueColor, lipgloss.ColorProfile())
	assert.True(t, lipgloss.HasDarkBackground())

	NewTheme(ThemeNoTTY)
	NewTheme(ThemeLight)
	assert.Equal(t, termenv.TrueColor, lipgloss.ColorProfile())
	assert.False(t, lipgloss.HasDarkBackground())
}

func TestChipStyle(t *testing.T) {
	theme := NewTheme(ThemeDark)

	tests := []struct {
		conf model.Confidence
		want lipgloss.TerminalColor
	}{
		{model.ConfidenceHigh, Emerald},
		{model.ConfidenceMedium, Amber},
		{model.ConfidenceLow, Rose},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, theme.ChipStyle(tc.conf).GetBackground(), string(tc.conf))
	}
	assert.Equal(t, lipgloss.TerminalColor(Emerald), theme.ChipStyle("High").GetBackground())
	assert.Equal(t, lipgloss.TerminalColor(OverlayDim), theme.ChipStyle("unsure").GetBackground())
}

func TestMarkdownStyle(t *testing.T) {
	assert.Equal(t, "dark", NewTheme(ThemeDark).MarkdownStyle())
	assert.Equal(t, "light", NewTheme(ThemeLight).MarkdownStyle())
	assert.Equal(t, "notty", NewTheme(ThemeNoTTY).MarkdownStyle())
}

func TestBubbleWidth(t *testing.T) {
	theme := NewTheme(ThemeDark)
	theme.SetSize(100, 40)
	assert.Equal(t, 94, theme.BubbleWidth())

	theme.SetSize(10, 40)
	assert.Equal(t, 20, theme.BubbleWidth())
}
