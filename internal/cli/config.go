// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/ragchat-tui/internal/config"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.configShow(cmd)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as TOML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.configShow(cmd)
			},
		},
		&cobra.Command{
			Use:         "path",
			Short:       "Print the configuration file path",
			Args:        cobra.NoArgs,
			Annotations: map[string]string{annotationNoConfig: "true"},
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.configPathCmd(cmd)
			},
		},
		newConfigInitCommand(a),
	)
	return cmd
}

func newConfigInitCommand(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a configuration file with the defaults",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.resolvedConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return usageError(errors.Errorf("%s already exists (use --force to overwrite)", path))
			}
			if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
				return errors.Wrap(err, "create config directory")
			}
			if err := config.Save(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration written to %s\n", SuccessStyle.Render("[OK]"), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configShow prints the config after file, env and flag overrides.
func (a *app) configShow(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	path, err := a.resolvedConfigPath()
	if err == nil {
		fmt.Fprintln(out, DimStyle.Render("# "+path))
	}
	fmt.Fprint(out, a.cfg.String())
	return nil
}

func (a *app) configPathCmd(cmd *cobra.Command) error {
	path, err := a.resolvedConfigPath()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s (file does not exist; run `ragchat config init`)\n",
			DimStyle.Render("Note"))
	}
	return nil
}
