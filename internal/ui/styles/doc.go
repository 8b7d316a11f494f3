// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the ragchat TUI.
//
// Colors are Lip Gloss AdaptiveColors so one palette serves dark and light
// terminals. Theme bundles the rendered styles for header, bubbles, chips,
// input and status bar.
//
//	theme := styles.NewTheme("dark")
//	chip := theme.ChipStyle(model.ConfidenceHigh).Render("Confidence: high")
package styles
