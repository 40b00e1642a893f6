package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"structura/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compiler stages over HTTP",
		Long: `Serve exposes POST /api/lexer, /api/parser, /api/ir and /api/run, each taking
{"code": "..."} and answering {"output": "..."} or {"error": {...}}.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			addr := s.manifest.Config.Serve.Addr
			if cmd.Flags().Changed("addr") {
				addr, _ = cmd.Flags().GetString("addr")
			}
			timeout, err := s.manifest.Config.ServeTimeout()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Config{Addr: addr, Timeout: timeout, Emit: s.emitOptions()})
			if !s.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "listening on %s\n", addr)
			}
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default: [serve].addr)")
	return cmd
}
