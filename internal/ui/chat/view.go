// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// Title is shown in the header.
const Title = "✧ Secure RAG"

// =============================================================================
// MAIN LAYOUT
// =============================================================================

// renderChat stacks header, messages, input and status bar.
func (m Model) renderChat() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	input := m.renderInput()
	status := m.renderStatusBar()

	available := m.height - lipgloss.Height(header) - lipgloss.Height(input) - lipgloss.Height(status)
	if available < 1 {
		available = 1
	}

	messages := m.viewport.View()
	if lipgloss.Height(messages) != available {
		messages = lipgloss.NewStyle().
			Height(available).
			MaxHeight(available).
			Width(m.width).
			Render(messages)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, messages, input, status)
}

// viewportHeight is what remains after the fixed rows.
func (m Model) viewportHeight() int {
	h := m.height -
		lipgloss.Height(m.renderHeader()) -
		lipgloss.Height(m.renderInput()) -
		lipgloss.Height(m.renderStatusBar())
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render(Title)

	subtitle := "Ask about CVEs and cyber threats"
	if u, ok := m.asker.(interface{ URL() string }); ok {
		subtitle = u.URL()
	}
	room := m.width - lipgloss.Width(title) - 4
	subtitle = m.theme.HeaderSubtitle.Render(util.TruncateWidth(subtitle, room))

	return m.theme.Header.Width(max(m.width, 1)).Render(title + "  " + subtitle)
}

func (m Model) renderInput() string {
	style := m.theme.InputContainer
	if m.conversation.Loading() {
		style = m.theme.InputDisabled
	}
	return style.Width(max(m.width, 1)).Render(m.input.View())
}

func (m Model) renderStatusBar() string {
	var line string
	switch {
	case m.statusMsg != "" && m.statusErr:
		line = m.theme.StatusError.Render(util.TruncateWidth(m.statusMsg, m.width))
	case m.statusMsg != "":
		line = m.theme.StatusBar.Render(util.TruncateWidth(m.statusMsg, m.width))
	default:
		line = m.help.View(m.keyMap)
	}

	if m.help.ShowAll && m.statusMsg != "" {
		return m.help.View(m.keyMap) + "\n" + line
	}
	return line
}

// =============================================================================
// MESSAGES
// =============================================================================

// renderMessages renders the history plus the thinking line while loading.
func (m *Model) renderMessages() string {
	if m.rendered == "" {
		msgs := m.conversation.Messages()
		parts := make([]string, 0, len(msgs))
		for _, msg := range msgs {
			parts = append(parts, m.renderMessage(msg))
		}
		m.rendered = strings.Join(parts, "\n")
	}

	if m.conversation.Loading() {
		return m.rendered + "\n" + m.renderThinking()
	}
	return m.rendered
}

func (m *Model) renderMessage(msg model.Message) string {
	if msg.Role == model.RoleUser {
		return m.renderUserMessage(msg)
	}
	return m.renderBotMessage(msg)
}

// contentWidth is the wrap width inside a bubble.
func (m *Model) contentWidth() int {
	w := m.theme.BubbleWidth() - 4
	if m.wordWrap > 0 && m.wordWrap < w {
		w = m.wordWrap
	}
	if w < 10 {
		w = 10
	}
	return w
}

func (m *Model) renderLabel(msg model.Message) string {
	style := m.theme.BotLabel
	if msg.Role == model.RoleUser {
		style = m.theme.UserLabel
	}
	label := style.Render(msg.Role.DisplayName())
	if m.showTimestamps {
		label += " " + m.theme.Timestamp.Render(formatTimestamp(msg.Timestamp))
	}
	return label
}

// renderUserMessage shows the raw question, pushed to the right.
func (m *Model) renderUserMessage(msg model.Message) string {
	bubble := m.theme.UserBubble.Render(wrapText(msg.Text, m.contentWidth()))
	block := lipgloss.JoinVertical(lipgloss.Right, m.renderLabel(msg), bubble)

	marginLeft := m.width - lipgloss.Width(block) - 2
	if marginLeft < 0 {
		marginLeft = 0
	}
	return lipgloss.NewStyle().MarginLeft(marginLeft).MarginTop(1).Render(block)
}

// renderBotMessage renders an answer as markdown, or an error in the error
// bubble. Chips follow successful answers that carry a confidence.
func (m *Model) renderBotMessage(msg model.Message) string {
	var bubble string
	if msg.IsError {
		bubble = m.theme.ErrorBubble.Render(wrapText(msg.Text, m.contentWidth()))
	} else {
		bubble = m.theme.BotBubble.Render(m.renderer.Render(msg.Text, m.contentWidth()))
	}

	parts := []string{m.renderLabel(msg), bubble}
	if chips := m.renderChips(msg); chips != "" {
		parts = append(parts, chips)
	}

	return lipgloss.NewStyle().
		MarginLeft(1).
		MarginTop(1).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderChips renders "Confidence: x" and "Sources: a, b" under an answer.
func (m *Model) renderChips(msg model.Message) string {
	if !msg.HasMeta() {
		return ""
	}

	conf := m.theme.ChipStyle(msg.Confidence).Render(ConfidenceLabel(msg.Confidence))
	if len(msg.Sources) == 0 {
		return conf
	}

	// Chip padding takes two columns, the gap one more.
	room := m.theme.BubbleWidth() - lipgloss.Width(conf) - 3
	sources := m.theme.SourcesChip.Render(util.TruncateWidth(SourcesLabel(msg.Sources), room))
	return lipgloss.JoinHorizontal(lipgloss.Top, conf, " ", sources)
}

func (m *Model) renderThinking() string {
	return lipgloss.NewStyle().MarginLeft(1).MarginTop(1).Render(
		m.spinner.View() + " " + m.theme.Thinking.Render(ThinkingText))
}

// ConfidenceLabel is the text of the confidence chip.
func ConfidenceLabel(c model.Confidence) string {
	return "Confidence: " + string(c)
}

// SourcesLabel is the text of the sources chip.
func SourcesLabel(sources []string) string {
	return "Sources: " + strings.Join(sources, ", ")
}
