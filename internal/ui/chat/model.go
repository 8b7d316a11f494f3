// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/rag"
	"github.com/jeranaias/ragchat-tui/internal/ui/markdown"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

const (
	// Placeholder is shown in the empty input.
	Placeholder = "Ask about a CVE or threat..."

	promptReady   = "> "
	promptLoading = "... "

	// ThinkingText trails the message list while a question is in flight.
	ThinkingText = "Thinking..."

	// logQueryRunes caps how much of a question reaches the log file.
	logQueryRunes = 80
)

// errNoService is reported when the view was built without an Asker.
var errNoService = errors.New("no answer service configured")

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a chat Model.
type Options struct {
	Theme *styles.Theme
	Asker rag.Asker

	// Greeting seeds the conversation; empty starts with no messages.
	Greeting string

	// WordWrap caps the markdown width; 0 follows the terminal.
	WordWrap       int
	ShowTimestamps bool
	TranscriptDir  string

	// NewAsker rebuilds the Asker after a config reload. Nil keeps the
	// current one.
	NewAsker func(*config.Config) rag.Asker
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	theme    *styles.Theme
	renderer *markdown.Renderer

	width  int
	height int

	conversation *model.Conversation
	asker        rag.Asker
	newAsker     func(*config.Config) rag.Asker

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	help     help.Model
	keyMap   KeyMap

	// rendered caches the message list; cleared whenever it goes stale.
	rendered string

	wordWrap       int
	showTimestamps bool
	transcriptDir  string

	statusMsg string
	statusErr bool
}

// New creates the chat view.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme("")
	}

	ti := textinput.New()
	ti.Prompt = promptReady
	ti.Placeholder = Placeholder
	ti.CharLimit = 4096
	ti.PromptStyle = theme.Prompt
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = theme.Thinking

	h := help.New()
	h.ShortSeparator = " · "
	h.Styles = helpStyles(theme)

	m := Model{
		theme:          theme,
		renderer:       markdown.NewRenderer(theme.MarkdownStyle()),
		conversation:   model.NewConversation(opts.Greeting),
		asker:          opts.Asker,
		newAsker:       opts.NewAsker,
		viewport:       vp,
		input:          ti,
		spinner:        sp,
		help:           h,
		keyMap:         DefaultKeyMap(),
		wordWrap:       opts.WordWrap,
		showTimestamps: opts.ShowTimestamps,
		transcriptDir:  opts.TranscriptDir,
	}
	m.updateViewport(true)
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case AnswerMsg:
		return m.handleAnswer(msg)

	case spinner.TickMsg:
		if !m.conversation.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.updateViewport(false)
		return m, cmd

	case CopyCompleteMsg:
		if msg.Err != nil {
			log.Warn().Err(msg.Err).Msg("copy to clipboard")
			m.setStatus("Failed to copy: "+msg.Err.Error(), true)
		} else {
			m.setStatus("Copied answer to clipboard ("+formatSize(msg.Chars)+")", false)
		}
		return m, nil

	case ExportCompleteMsg:
		if msg.Err != nil {
			log.Warn().Err(msg.Err).Msg("export transcript")
			m.setStatus("Export failed: "+msg.Err.Error(), true)
		} else {
			log.Info().Str("path", msg.Path).Msg("transcript exported")
			m.setStatus("Exported to "+msg.Path, false)
		}
		return m, nil

	case ConfigReloadedMsg:
		return m.applyConfig(msg.Config)
	}

	// Mouse wheel and anything else the viewport understands.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the model.
func (m Model) View() string {
	return m.renderChat()
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(m.width, m.height)
	m.help.Width = m.width

	const promptLen = 4 // widest prompt, "... "
	inputWidth := m.width - promptLen - 2
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth

	m.viewport.Width = max(m.width, 1)
	m.viewport.Height = m.viewportHeight()

	m.rendered = ""
	m.updateViewport(m.viewport.AtBottom())
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Copy):
		return m.copyLastAnswer()

	case key.Matches(msg, m.keyMap.Export):
		return m.exportTranscript("")

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()
	}

	// The input is blurred while loading and ignores keystrokes.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the draft, or runs it as a local command.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.conversation.Loading() {
		return m, nil
	}

	draft := m.input.Value()
	if name, args, ok := ParseCommand(draft); ok {
		m.input.Reset()
		return m.runCommand(name, args)
	}

	query, err := m.conversation.Submit(draft)
	if err != nil {
		// Blank drafts are ignored and left in place.
		return m, nil
	}

	m.help.ShowAll = false
	m.statusMsg = ""
	m.input.Reset()
	m.input.Blur()
	m.input.Prompt = promptLoading
	m.rendered = ""
	m.updateViewport(true)

	log.Debug().
		Str("conversation", m.conversation.ID).
		Str("query", util.TruncateRunes(query, logQueryRunes)).
		Int("len", len(query)).
		Msg("question submitted")
	return m, tea.Batch(m.askCmd(query), m.spinner.Tick)
}

// askCmd performs one round trip off the update loop.
func (m Model) askCmd(query string) tea.Cmd {
	asker := m.asker
	return func() tea.Msg {
		if asker == nil {
			return AnswerMsg{Query: query, Result: model.Result{Transport: errNoService}}
		}
		resp, err := asker.Ask(context.Background(), query)
		return AnswerMsg{Query: query, Result: rag.ToResult(resp, err)}
	}
}

func (m Model) handleAnswer(msg AnswerMsg) (tea.Model, tea.Cmd) {
	reply, ok := m.conversation.Resolve(msg.Result)
	if !ok {
		log.Debug().Msg("answer arrived with nothing in flight; dropped")
		return m, nil
	}

	ev := log.Debug()
	if msg.Result.Transport != nil {
		ev = log.Warn().Err(msg.Result.Transport)
	}
	ev.Bool("error", reply.IsError).Str("confidence", string(reply.Confidence)).Msg("question resolved")

	m.input.Prompt = promptReady
	m.rendered = ""
	m.updateViewport(true)
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) applyConfig(cfg *config.Config) (tea.Model, tea.Cmd) {
	if cfg == nil {
		return m, nil
	}

	m.theme = styles.NewTheme(cfg.UI.Theme)
	m.theme.SetSize(m.width, m.height)
	if style := m.theme.MarkdownStyle(); style != m.renderer.Style() {
		m.renderer = markdown.NewRenderer(style)
	}
	m.input.PromptStyle = m.theme.Prompt
	m.help.Styles = helpStyles(m.theme)
	m.spinner.Style = m.theme.Thinking
	m.wordWrap = cfg.UI.WordWrap
	m.showTimestamps = cfg.UI.ShowTimestamps
	if dir, err := cfg.TranscriptPath(); err == nil {
		m.transcriptDir = dir
	}
	if m.newAsker != nil {
		m.asker = m.newAsker(cfg)
	}

	m.rendered = ""
	m.viewport.Height = m.viewportHeight()
	m.updateViewport(m.viewport.AtBottom())
	m.setStatus("Config reloaded", false)
	return m, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// updateViewport refreshes the viewport content, optionally jumping to the
// newest message.
func (m *Model) updateViewport(toBottom bool) {
	m.viewport.SetContent(m.renderMessages())
	if toBottom {
		m.viewport.GotoBottom()
	}
}

// helpStyles derives the key help colours from the theme.
func helpStyles(t *styles.Theme) help.Styles {
	key := t.Help.Copy().Bold(true)
	return help.Styles{
		Ellipsis:       t.Help,
		ShortKey:       key,
		ShortDesc:      t.Help,
		ShortSeparator: t.Help,
		FullKey:        key,
		FullDesc:       t.Help,
		FullSeparator:  t.Help,
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.statusMsg = text
	m.statusErr = isErr
}

// Conversation returns the conversation owned by the view.
func (m Model) Conversation() *model.Conversation {
	return m.conversation
}

// Loading reports whether a question is in flight.
func (m Model) Loading() bool {
	return m.conversation.Loading()
}

// Draft returns the current input text.
func (m Model) Draft() string {
	return m.input.Value()
}

// SetDraft replaces the input text.
func (m *Model) SetDraft(s string) {
	m.input.SetValue(s)
}

// InputFocused reports whether the input accepts keystrokes.
func (m Model) InputFocused() bool {
	return m.input.Focused()
}

// Status returns the current status line.
func (m Model) Status() string {
	return m.statusMsg
}

func formatSize(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d chars", n)
	}
	return fmt.Sprintf("%.1fK chars", float64(n)/1000)
}
