// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/export"
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/rag"
	"github.com/jeranaias/ragchat-tui/internal/ui/chat"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

const replPrompt = "ragchat> "

func newChatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Line-mode chat with input history",
		Long: `Line-mode chat for terminals where the full-screen view is not wanted.

Arrow keys browse the input history, which is kept in ~/.ragchat/chat_history.

Commands during chat:
  /help            show commands
  /copy            copy the last answer to the clipboard
  /export [path]   write a transcript
  /quit            exit (Ctrl+D also works)

Any other line, including one starting with "/", is sent as a question.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := NewChatCLI()
			defer input.Close()

			transcriptDir, err := a.cfg.TranscriptPath()
			if err != nil {
				log.Warn().Err(err).Msg("resolve transcript directory")
			}

			r := &repl{
				conv:          model.NewConversation(a.cfg.UI.Greeting),
				asker:         newClient(a.cfg),
				out:           cmd.OutOrStdout(),
				printer:       newPrinter(cmd.OutOrStdout(), a.cfg.UI.Theme),
				readLine:      input.ReadInput,
				transcriptDir: transcriptDir,
			}
			return r.run(cmd.Context())
		},
	}
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for line-mode chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI and loads the saved history.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		if _, err := c.line.ReadHistory(f); err != nil {
			log.Debug().Err(err).Msg("read chat history")
		}
		f.Close()
	}
}

// ReadInput reads a line with history navigation.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists input history with 0600 permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		log.Debug().Err(err).Msg("create config directory")
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	if _, err := c.line.WriteHistory(f); err != nil {
		log.Debug().Err(err).Msg("write chat history")
	}
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// repl is the line-mode front end over a Conversation.
type repl struct {
	conv          *model.Conversation
	asker         rag.Asker
	out           io.Writer
	printer       *printer
	readLine      func(prompt string) (string, error)
	transcriptDir string
}

// run reads questions until EOF, Ctrl+C or /quit.
func (r *repl) run(ctx context.Context) error {
	r.printWelcome()

	for {
		line, err := r.readLine(PromptStyle.Render(replPrompt))
		if err != nil {
			// Ctrl+C, Ctrl+D and closed stdin all end the session.
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				log.Debug().Err(err).Msg("read input")
			}
			fmt.Fprintln(r.out)
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if name, args, ok := chat.ParseCommand(line); ok {
			if !r.command(name, args) {
				return nil
			}
			continue
		}

		r.askOne(ctx, line)
	}
}

// askOne sends one question and prints the reply.
func (r *repl) askOne(ctx context.Context, line string) {
	query, err := r.conv.Submit(line)
	if err != nil {
		return
	}

	r.printer.status("Thinking...")
	resp, err := r.asker.Ask(ctx, query)
	reply, ok := r.conv.Resolve(rag.ToResult(resp, err))
	if !ok {
		return
	}
	r.printer.reply(reply)
	fmt.Fprintln(r.out)
}

// command runs a known slash command. It returns false to end the session.
func (r *repl) command(name, args string) bool {
	switch name {
	case "/help":
		r.printHelp()

	case "/copy":
		answer, ok := r.conv.LastAnswer()
		if !ok {
			fmt.Fprintln(r.out, ErrorStyle.Render("No answer to copy"))
			return true
		}
		if err := clipboardWrite(answer.Text); err != nil {
			fmt.Fprintln(r.out, ErrorStyle.Render("Failed to copy: "+err.Error()))
			return true
		}
		fmt.Fprintln(r.out, SuccessStyle.Render("Copied answer to clipboard"))

	case "/export":
		exporter := export.ForPath(args, nil)
		path, err := export.ToFile(r.conv, exporter, args, r.transcriptDir)
		if err != nil {
			fmt.Fprintln(r.out, ErrorStyle.Render("Export failed: "+err.Error()))
			return true
		}
		fmt.Fprintln(r.out, SuccessStyle.Render("Exported to "+path))

	case "/quit":
		return false
	}
	return true
}

func (r *repl) printWelcome() {
	fmt.Fprintln(r.out, TitleStyle.Render("✧ Secure RAG"))
	fmt.Fprintln(r.out, DimStyle.Render("Type a question, /help for commands, Ctrl+D to exit."))
	fmt.Fprintln(r.out)
	for _, msg := range r.conv.Messages() {
		r.printer.reply(msg)
	}
	if r.conv.Len() > 0 {
		fmt.Fprintln(r.out)
	}
}

func (r *repl) printHelp() {
	for _, c := range chat.Commands {
		fmt.Fprintln(r.out, LabelStyle.Render(c.Name)+c.Help)
	}
}
