package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/copycop/internal/pipeline"
	"github.com/ppiankov/copycop/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP lint service",
	Long: `Serve exposes the linter over HTTP:

  GET  /healthz      liveness
  POST /v1/lint      {"name", "format", "content"} -> report
  POST /v1/analyze   {"text"} -> sentence classifications

Each client IP gets its own token bucket (server.requests_per_second,
server.burst); requests over the limit get 429.

Example:
  copycop serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	linter, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Listening on %s (rules: %s, %.1f req/s per client)\n",
		cfg.Server.Addr, rulesLabel(cfg), cfg.Server.RequestsPerSecond)

	if err := server.New(linter, cfg.Server, Version).Run(ctx); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Server stopped\n")
	return nil
}
