package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lpforge/lpforge/internal/server"
	"github.com/lpforge/lpforge/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local editor backend",
	Long: `Starts the HTTP editor backend: document editing API, live HTML
preview over websocket, and export download. One document session per
operator; nothing is persisted beyond explicit JSON/ZIP downloads.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		port, _ := cmd.Flags().GetInt("port")
		if port > 0 {
			cfg.Port = port
		}
		allowAll, _ := cmd.Flags().GetBool("allow-all-origins")
		if allowAll {
			cfg.AllowAllOrigins = true
		}

		renderer, err := newRenderer(cfg)
		if err != nil {
			return err
		}

		sessions := session.NewManager(cfg.Document)
		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		}, sessions, renderer)

		// Shut down cleanly on interrupt.
		done := make(chan error, 1)
		go func() { done <- srv.Start() }()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-done:
			return err
		case <-sig:
			fmt.Fprintln(os.Stderr, "shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides config)")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}
