// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jeranaias/ragchat-tui/internal/stub"
)

func newStubCommand(_ *app) *cobra.Command {
	var (
		addr    string
		origins []string
		latency time.Duration
	)

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Run a local answer service with canned CVE answers",
		Long: `Run a development server that speaks the answer service contract.

It answers from a small built-in CVE corpus, rejects prompt-injection
phrases with a security alert and redacts credentials from answers. It does
no retrieval and is not meant for production.`,
		Example: `  ragchat stub --addr :8080 --latency 800ms
  ragchat stub --origin http://localhost:3000`,
		Args: cobra.NoArgs,
		Annotations: map[string]string{
			annotationNoConfig:   "true",
			annotationConsoleLog: "true",
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := stub.NewServer(stub.Options{
				Addr:           addr,
				AllowedOrigins: origins,
				Latency:        latency,
			})

			if err := srv.ListenAndServe(ctx); err != nil {
				return err
			}
			log.Info().Msg("stub answer service stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringSliceVar(&origins, "origin", nil, "allowed CORS origin (repeatable, default any)")
	cmd.Flags().DurationVar(&latency, "latency", 0, "delay added to every answer")
	return cmd
}
