// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/logging"
	"github.com/jeranaias/ragchat-tui/internal/rag"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command annotations read by the pre-run hook.
const (
	annotationNoConfig   = "ragchat/no-config"
	annotationConsoleLog = "ragchat/console-log"
)

// app holds state shared by all commands of one invocation.
type app struct {
	// Global flags
	configPath string
	apiURL     string
	logLevel   string

	cfg       *config.Config
	logCloser io.Closer
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return (&app{}).rootCommand()
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "ragchat",
		Short: "Chat with a Secure RAG answer service from the terminal",
		Long: `ragchat sends questions to a retrieval-augmented answer service and shows
the answer, its confidence and the cited sources as a chat.

Run without arguments for the full-screen chat.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.ragchat/config.toml)")
	flags.StringVar(&a.apiURL, "api-url", "", "answer service origin, e.g. http://localhost:8080")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	root.AddCommand(
		newAskCommand(a),
		newChatCommand(a),
		newStubCommand(a),
		newConfigCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return (&app{}).execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// execute runs one invocation with explicit streams.
func (a *app) execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.teardown()
	if shouldReport(err) {
		fmt.Fprintln(stderr, ErrorStyle.Render("Error:"), err)
	}
	return ExitCode(err)
}

// =============================================================================
// LIFECYCLE HOOKS
// =============================================================================

// setup loads config and starts logging before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[annotationNoConfig] == "" {
		if err := a.loadConfig(); err != nil {
			return &ExitError{Code: ExitConfigError, Err: err}
		}
	} else {
		a.cfg = config.Default()
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	console := verbose || cmd.Annotations[annotationConsoleLog] != ""

	logFile, err := a.cfg.LogPath()
	if err != nil {
		return err
	}
	closer, err := logging.Init(logging.Options{
		Level:   a.cfg.Log.Level,
		File:    logFile,
		Console: console,
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.logCloser = closer

	log.Debug().Str("command", cmd.CommandPath()).Str("api", a.cfg.API.AskURL()).Msg("starting")
	return nil
}

// teardown closes the log file. It runs even when the command failed.
func (a *app) teardown() {
	if a.logCloser != nil {
		a.logCloser.Close()
		a.logCloser = nil
	}
}

// loadConfig reads the config file and applies the global flags.
func (a *app) loadConfig() error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFromPath(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if err := a.applyFlags(cfg); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// applyFlags layers the global flags over cfg. It runs again after every
// live reload so flags keep winning over the file.
func (a *app) applyFlags(cfg *config.Config) error {
	if a.apiURL != "" {
		cfg.API.BaseURL = a.apiURL
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid flags")
	}
	return nil
}

// resolvedConfigPath is the file the watcher follows.
func (a *app) resolvedConfigPath() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	return config.ConfigPath()
}

// newClient builds the answer service client for cfg.
func newClient(cfg *config.Config) *rag.Client {
	return rag.NewClient(cfg.API.AskURL(), rag.WithTimeout(cfg.API.Timeout()))
}
