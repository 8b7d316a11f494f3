// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// init configures the lipgloss color profile from NO_COLOR, FORCE_COLOR and
// TTY detection.
func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES FOR LINE-MODE OUTPUT
// =============================================================================

var (
	// TitleStyle is used for banners
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Purple)

	// PromptStyle colors the REPL prompt
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Cyan)

	// ErrorStyle is used for error replies and failures
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Rose)

	// SuccessStyle is used for confirmations
	SuccessStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	// DimStyle is used for secondary information and hints
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Width(12)
)

// confidenceStyle colors a confidence value in line mode.
func confidenceStyle(c model.Confidence) lipgloss.Style {
	switch c.Level() {
	case model.ConfidenceHigh:
		return lipgloss.NewStyle().Foreground(styles.Emerald)
	case model.ConfidenceMedium:
		return lipgloss.NewStyle().Foreground(styles.Amber)
	case model.ConfidenceLow:
		return lipgloss.NewStyle().Foreground(styles.Rose)
	default:
		return DimStyle
	}
}
