package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/profilehub/profilehub-go/internal/config"
	"github.com/profilehub/profilehub-go/internal/repository"
	"github.com/profilehub/profilehub-go/internal/server"
	"github.com/profilehub/profilehub-go/internal/service"
	"github.com/profilehub/profilehub-go/internal/session"
)

const janitorInterval = 10 * time.Minute

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			setupLogger(cfg)
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("port", "", "listen port (overrides PORT)")
	cmd.Flags().String("data", "", "path of the JSON data file (overrides DATA_FILE)")
	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	store := repository.NewFileStore(cfg.DataFile)
	if err := store.Init(ctx); err != nil {
		return fmt.Errorf("initializing data file: %w", err)
	}

	sessionStore, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions := session.NewManager(sessionStore, cfg.SessionSecret, session.Options{
		TTL:          cfg.SessionTTL,
		SecureCookie: cfg.CookieSecure,
	})
	go sessions.RunJanitor(ctx, janitorInterval)

	users := repository.NewUserRepository(store)
	router := server.NewRouter(ctx, server.Deps{
		Accounts:  service.NewAccountService(users, sessions),
		Profiles:  service.NewProfileService(users),
		Sessions:  sessions,
		StaticDir: cfg.StaticDir,
		RateRPS:   cfg.AuthRateRPS,
		RateBurst: cfg.AuthRateBurst,
	})

	slog.Info("configuration loaded", "env", cfg.Env, "data_file", store.Path(), "static_dir", cfg.StaticDir)
	return server.New(cfg.Addr(), router).Run(ctx)
}

// openSessionStore picks MySQL when SESSION_DSN is set and memory otherwise.
func openSessionStore(ctx context.Context, cfg config.Config) (session.Store, func(), error) {
	if cfg.SessionDSN == "" {
		slog.Info("using in-memory session store")
		return session.NewMemoryStore(), func() {}, nil
	}

	db, err := repository.NewDB(ctx, cfg.SessionDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to session database: %w", err)
	}

	store := session.NewMySQLStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("creating sessions table: %w", err)
	}

	slog.Info("using mysql session store")
	return store, func() { db.Close() }, nil
}
