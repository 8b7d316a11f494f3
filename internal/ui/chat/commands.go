// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragchat-tui/internal/export"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// =============================================================================
// LOCAL COMMANDS
// =============================================================================

// Command describes a local slash command.
type Command struct {
	Name    string
	Aliases []string
	Usage   string
	Help    string
}

// Commands lists the slash commands understood by the view.
var Commands = []Command{
	{Name: "/help", Aliases: []string{"/h", "/?"}, Usage: "/help", Help: "show keys and commands"},
	{Name: "/copy", Usage: "/copy", Help: "copy the last answer"},
	{Name: "/export", Usage: "/export [path]", Help: "write a transcript"},
	{Name: "/quit", Aliases: []string{"/exit", "/q"}, Usage: "/quit", Help: "exit"},
}

// ParseCommand splits a draft like "/export out.md" into the canonical
// command name and its argument. Only names in Commands match; any other
// draft, even one starting with "/", is a question.
func ParseCommand(draft string) (name, args string, ok bool) {
	draft = strings.TrimSpace(draft)
	if !strings.HasPrefix(draft, "/") {
		return "", "", false
	}
	word, args, _ := strings.Cut(draft, " ")
	word = strings.ToLower(word)
	for _, c := range Commands {
		if c.Name == word || slices.Contains(c.Aliases, word) {
			return c.Name, strings.TrimSpace(args), true
		}
	}
	return "", "", false
}

func (m Model) runCommand(name, args string) (tea.Model, tea.Cmd) {
	switch name {
	case "/help":
		m.help.ShowAll = true
		m.setStatus(commandSummary(), false)
		return m, nil
	case "/copy":
		return m.copyLastAnswer()
	case "/export":
		return m.exportTranscript(args)
	case "/quit":
		return m, tea.Quit
	}
	return m, nil
}

func commandSummary() string {
	parts := make([]string, len(Commands))
	for i, c := range Commands {
		parts[i] = c.Usage + " " + c.Help
	}
	return strings.Join(parts, " · ")
}

// copyLastAnswer puts the newest answer on the clipboard.
func (m Model) copyLastAnswer() (tea.Model, tea.Cmd) {
	answer, ok := m.conversation.LastAnswer()
	if !ok || answer.Text == "" {
		m.setStatus("No answer to copy", true)
		return m, nil
	}

	text := answer.Text
	return m, func() tea.Msg {
		return CopyCompleteMsg{
			Chars: utf8.RuneCountInString(text),
			Err:   clipboardWrite(text),
		}
	}
}

// exportTranscript writes the conversation to target, or to a timestamped
// file in the transcript directory when target is empty. The file is written
// from Update so it never races with an arriving answer.
func (m Model) exportTranscript(target string) (tea.Model, tea.Cmd) {
	exporter := export.ForPath(target, &export.Options{IncludeTimestamps: m.showTimestamps})
	path, err := export.ToFile(m.conversation, exporter, target, m.transcriptDir)
	return m, func() tea.Msg {
		return ExportCompleteMsg{Path: path, Err: err}
	}
}
