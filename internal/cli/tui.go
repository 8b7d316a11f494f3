// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/rag"
	"github.com/jeranaias/ragchat-tui/internal/ui/chat"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// chatOptions maps config onto the chat view options.
func (a *app) chatOptions(cfg *config.Config) chat.Options {
	transcriptDir, err := cfg.TranscriptPath()
	if err != nil {
		log.Warn().Err(err).Msg("resolve transcript directory")
	}
	return chat.Options{
		Theme:          styles.NewTheme(cfg.UI.Theme),
		Asker:          newClient(cfg),
		Greeting:       cfg.UI.Greeting,
		WordWrap:       cfg.UI.WordWrap,
		ShowTimestamps: cfg.UI.ShowTimestamps,
		TranscriptDir:  transcriptDir,
		NewAsker: func(c *config.Config) rag.Asker {
			return newClient(c)
		},
	}
}

// runTUI starts the full-screen chat and follows the config file.
func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	p := tea.NewProgram(
		chat.New(a.chatOptions(a.cfg)),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)

	if path, err := a.resolvedConfigPath(); err == nil {
		watcher, err := config.NewWatcher(path, func(cfg *config.Config) {
			if err := a.applyFlags(cfg); err != nil {
				log.Warn().Err(err).Msg("reloaded config rejected")
				return
			}
			p.Send(chat.ConfigReloadedMsg{Config: cfg})
		})
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("config live reload disabled")
		} else {
			defer watcher.Close()
		}
	}

	log.Info().Str("api", a.cfg.API.AskURL()).Msg("chat started")
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "run chat")
	}
	return nil
}
