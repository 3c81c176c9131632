package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/namesmith/internal/config"
	"github.com/jonathan/namesmith/internal/db"
	"github.com/jonathan/namesmith/internal/domains"
	"github.com/jonathan/namesmith/internal/logging"
	"github.com/jonathan/namesmith/internal/server"
	"github.com/jonathan/namesmith/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing /generate, /check-domain, the favorites
endpoints and /metrics. Configuration comes from the environment (and .env).`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	if servePort > 0 {
		env.Port = servePort
	}

	log := logging.New(logging.Options{
		Level:   env.LogLevel,
		Format:  logging.Format(env.LogFormat),
		Service: "namesmith",
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var favorites server.FavoriteStore
	if env.DatabaseURL != "" {
		database, err := connectDatabase(ctx, env.DatabaseURL, log)
		if err != nil {
			return err
		}
		defer database.Close()
		favorites = database
	} else {
		log.Info("DATABASE_URL not set; favorites are acknowledged but not stored")
	}

	rt, err := buildRuntime(ctx, env.ApplyTo(config.Config{}), env, log, favorites != nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	features := rt.service.Features()
	log.Info("generator ready",
		slog.Bool("ai", features.AIGeneration),
		slog.Bool("gemini", features.GeminiAvailable),
		slog.Bool("openai", features.OpenAIAvailable),
		slog.Bool("nlp", features.NLPProcessing))

	srv, err := server.New(server.Config{
		Port:            env.Port,
		Generator:       rt.service,
		Domains:         domains.NewChecker(nil),
		Favorites:       favorites,
		RateLimit:       ratelimit.LoadConfig(),
		Logger:          log,
		GenerateTimeout: env.AITimeout * 2,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run(ctx)
}

func connectDatabase(ctx context.Context, url string, log *slog.Logger) (*db.DB, error) {
	database, err := db.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx, log); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}
