// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

// Theme names accepted by NewTheme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeNoTTY = "notty"
)

// Theme holds all the styled components for the application.
type Theme struct {
	Name   string
	IsDark bool

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGES
	// ==========================================================================

	UserBubble  lipgloss.Style
	BotBubble   lipgloss.Style
	ErrorBubble lipgloss.Style
	UserLabel   lipgloss.Style
	BotLabel    lipgloss.Style
	Timestamp   lipgloss.Style
	Thinking    lipgloss.Style

	// ==========================================================================
	// CHIPS
	// ==========================================================================

	ChipLow     lipgloss.Style
	ChipMedium  lipgloss.Style
	ChipHigh    lipgloss.Style
	ChipNeutral lipgloss.Style
	SourcesChip lipgloss.Style

	// ==========================================================================
	// INPUT & STATUS
	// ==========================================================================

	InputContainer lipgloss.Style
	InputDisabled  lipgloss.Style
	Prompt         lipgloss.Style
	StatusBar      lipgloss.Style
	StatusError    lipgloss.Style
	Help           lipgloss.Style
}

// baseProfile is the color profile in effect before the first theme was
// built. Themes other than notty restore it.
var (
	baseProfile     termenv.Profile
	baseProfileOnce sync.Once
)

func baseColorProfile() termenv.Profile {
	baseProfileOnce.Do(func() {
		baseProfile = lipgloss.ColorProfile()
	})
	return baseProfile
}

// NewTheme creates a theme. "notty" strips all color; "dark" and "light" pin
// the adaptive palette; anything else follows the terminal background.
//
// NewTheme sets the lipgloss color profile and background globals, so the
// most recently built theme wins.
func NewTheme(name string) *Theme {
	name = strings.ToLower(name)
	t := &Theme{Name: name}

	base := baseColorProfile()
	switch name {
	case ThemeDark:
		t.IsDark = true
	case ThemeLight:
		t.IsDark = false
	case ThemeNoTTY:
		t.IsDark = true
	default:
		t.IsDark = termenv.HasDarkBackground()
	}

	if name == ThemeNoTTY {
		lipgloss.SetColorProfile(termenv.Ascii)
	} else {
		lipgloss.SetColorProfile(base)
	}
	lipgloss.SetHasDarkBackground(t.IsDark)

	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)
	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)
	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1)
	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(ErrorBubbleFg).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(ErrorBubbleBorder).
		Padding(0, 1)

	t.UserLabel = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.BotLabel = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.Timestamp = lipgloss.NewStyle().Foreground(TextMuted)
	t.Thinking = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)

	chip := lipgloss.NewStyle().Padding(0, 1).Foreground(TextInverse)
	t.ChipLow = chip.Copy().Background(Rose)
	t.ChipMedium = chip.Copy().Background(Amber)
	t.ChipHigh = chip.Copy().Background(Emerald)
	t.ChipNeutral = chip.Copy().Background(OverlayDim).Foreground(TextPrimary)
	t.SourcesChip = lipgloss.NewStyle().Padding(0, 1).
		Foreground(TextSecondary).
		Background(Overlay)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay)
	t.InputDisabled = t.InputContainer.Copy().Foreground(TextMuted)
	t.Prompt = lipgloss.NewStyle().Bold(true).Foreground(Cyan)

	t.StatusBar = lipgloss.NewStyle().Foreground(TextMuted)
	t.StatusError = lipgloss.NewStyle().Foreground(Rose)
	t.Help = lipgloss.NewStyle().Foreground(TextMuted)
}

// ChipStyle picks the confidence chip style. Unknown values get a neutral chip.
func (t *Theme) ChipStyle(c model.Confidence) lipgloss.Style {
	switch c.Level() {
	case model.ConfidenceHigh:
		return t.ChipHigh
	case model.ConfidenceMedium:
		return t.ChipMedium
	case model.ConfidenceLow:
		return t.ChipLow
	default:
		return t.ChipNeutral
	}
}

// MarkdownStyle returns the glamour standard style matching the theme.
func (t *Theme) MarkdownStyle() string {
	switch t.Name {
	case ThemeNoTTY:
		return ThemeNoTTY
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	}
	if t.IsDark {
		return ThemeDark
	}
	return ThemeLight
}

// SetSize updates the theme dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// BubbleWidth is the usable width inside a message bubble.
func (t *Theme) BubbleWidth() int {
	w := t.Width - 6 // border, padding, gutter
	if w < 20 {
		return 20
	}
	return w
}
