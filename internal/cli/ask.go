// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/rag"
)

// maxStdinQuestion bounds a question read from a pipe.
const maxStdinQuestion = 64 << 10

var errNoQuestion = errors.New("a question is required (pass it as arguments or pipe it on stdin)")

func newAskCommand(a *app) *cobra.Command {
	var (
		jsonOut bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask one question and print the answer",
		Long: `Ask one question and print the answer with its confidence and sources.

The question is read from stdin when no arguments are given and stdin is
not a terminal. The exit status is 1 when the service reports an error or
cannot be reached.`,
		Example: `  ragchat ask "What is CVE-2021-44228?"
  echo "Explain Heartbleed" | ragchat ask
  ragchat ask --json "Spring4Shell mitigations"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			question, err := readQuestion(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return a.ask(cmd, newClient(a.cfg), question, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the raw service response as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	return cmd
}

// readQuestion joins args, or reads stdin when there are none and it is
// not a terminal.
func readQuestion(args []string, stdin io.Reader) (string, error) {
	question := strings.Join(args, " ")
	if strings.TrimSpace(question) == "" && stdin != nil && !isTerminal(stdin) {
		data, err := io.ReadAll(io.LimitReader(stdin, maxStdinQuestion))
		if err != nil {
			return "", errors.Wrap(err, "read question from stdin")
		}
		question = string(data)
	}
	if strings.TrimSpace(question) == "" {
		return "", usageError(errNoQuestion)
	}
	return question, nil
}

// ask runs one question through a fresh conversation.
func (a *app) ask(cmd *cobra.Command, asker rag.Asker, question string, jsonOut bool) error {
	conv := model.NewConversation("")
	query, err := conv.Submit(question)
	if err != nil {
		return usageError(err)
	}

	resp, askErr := asker.Ask(cmd.Context(), query)
	reply, _ := conv.Resolve(rag.ToResult(resp, askErr))

	out := cmd.OutOrStdout()
	if jsonOut {
		if resp == nil {
			resp = &rag.AskResponse{Error: model.FallbackText}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return errors.Wrap(err, "write JSON")
		}
	} else {
		newPrinter(out, a.cfg.UI.Theme).reply(reply)
	}

	if reply.IsError {
		return &ExitError{Code: ExitGeneralError}
	}
	return nil
}
