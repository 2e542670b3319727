// Package cli defines the profilehub command tree.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/profilehub/profilehub-go/internal/config"
)

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "profilehub",
		Short:         "User accounts with session-cookie auth and a flat-file store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil {
				slog.Debug("no .env file found, using environment variables")
			}
		},
	}

	root.AddCommand(newServeCmd(), newUsersCmd())
	return root
}

// Execute runs the root command until it returns or the process is signalled.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		return 1
	}
	return 0
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("data") {
		cfg.DataFile, _ = cmd.Flags().GetString("data")
	}
	if f := cmd.Flags().Lookup("port"); f != nil && f.Changed {
		cfg.Port = f.Value.String()
	}

	return cfg, nil
}

// setupLogger installs the process-wide slog handler: JSON in production, text otherwise.
func setupLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}
