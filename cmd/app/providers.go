package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/securian/medsummary/internal/domain/summary"
	"github.com/securian/medsummary/internal/infra/archive"
	"github.com/securian/medsummary/internal/infra/config"
	"github.com/securian/medsummary/internal/infra/llm/swissre"
	"github.com/securian/medsummary/internal/infra/secrets"
	"github.com/securian/medsummary/internal/infra/summaryrepo"
)

func provideSummaryClient(cfg *config.Config) (*swissre.Client, error) {
	return swissre.NewClient(cfg.SwissRe.BaseURL, cfg.SwissRe.AuthUser, cfg.SwissRe.SessionID, cfg.SwissRe.Timeout)
}

func provideTokenSource(cfg *config.Config, logger *slog.Logger) summary.TokenSource {
	switch {
	case cfg.Token.OAuth.TokenURL != "":
		logger.Info("using oauth client-credentials token source")
		return secrets.NewOAuthSource(
			cfg.Token.OAuth.TokenURL,
			cfg.Token.OAuth.ClientID,
			cfg.Token.OAuth.ClientSecret,
			cfg.Token.OAuth.Scopes,
		)
	case cfg.Token.File.Path != "":
		logger.Info("using file token source", "path", cfg.Token.File.Path)
		return secrets.NewFileSource(cfg.Token.File.Path, cfg.Token.File.EncryptionKey, logger)
	default:
		return secrets.NewStaticSource(cfg.Token.Value, logger)
	}
}

func provideRepository(cfg *config.Config, logger *slog.Logger) summary.Repository {
	fallback := summaryrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Store.Postgres.DSN)
	if dsn == "" {
		logger.Info("store postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Store.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Store.Postgres.MaxConns
	}
	if cfg.Store.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Store.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("postgres record store enabled")
	return summaryrepo.NewPostgresRepository(pool)
}

func provideArchive(cfg *config.Config, logger *slog.Logger) summary.Archive {
	if !cfg.Archive.Enabled {
		return archive.NewMemoryStore()
	}
	store, err := archive.NewObjectStore(
		cfg.Archive.Endpoint,
		cfg.Archive.AccessKey,
		cfg.Archive.SecretKey,
		cfg.Archive.Bucket,
		cfg.Archive.Region,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize archive, using memory store", "error", err)
		return archive.NewMemoryStore()
	}
	logger.Info("raw-response archive enabled", "bucket", cfg.Archive.Bucket)
	return store
}
