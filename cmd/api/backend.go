// AngelaMos | 2026
// backend.go

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baytalsudani/console/internal/admin"
	"github.com/baytalsudani/console/internal/apiclient"
	"github.com/baytalsudani/console/internal/auth"
	"github.com/baytalsudani/console/internal/catalog"
	"github.com/baytalsudani/console/internal/config"
	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/health"
	"github.com/baytalsudani/console/internal/moderation"
	"github.com/baytalsudani/console/internal/ownership"
	"github.com/baytalsudani/console/internal/remote"
	"github.com/baytalsudani/console/internal/user"
)

// backend is everything that differs between the local and remote
// strategies. The rest of the process only sees these services.
type backend struct {
	authenticator auth.Authenticator
	active        auth.ActiveChecker

	users      *user.Service
	catalog    *catalog.Service
	moderation *moderation.Service
	stats      admin.StatsSource

	adminConfig  admin.HandlerConfig
	dependencies []health.Dependency
	subscription *remote.SubscriptionHandler

	close func() error
}

func newBackend(
	ctx context.Context,
	cfg *config.Config,
	msgs *core.Messages,
	logger *slog.Logger,
) (*backend, error) {
	if cfg.IsRemote() {
		return newRemoteBackend(cfg, msgs, logger), nil
	}
	return newLocalBackend(ctx, cfg, msgs, logger)
}

func newLocalBackend(
	ctx context.Context,
	cfg *config.Config,
	msgs *core.Messages,
	logger *slog.Logger,
) (*backend, error) {
	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("schema applied")
	}

	remover := ownership.NewRemover(db.DB, ownership.Marketplace)

	users := user.NewService(user.NewRepository(db.DB, remover))
	if _, err := users.EnsureDefaultAdmin(ctx, cfg.Bootstrap); err != nil {
		_ = db.Close()
		return nil, err
	}

	catalogSvc := catalog.NewService(catalog.NewPostgresRepositories(db.DB, remover), msgs)
	moderationSvc := moderation.NewService(
		moderation.NewAdRepository(db.DB),
		moderation.NewJobRepository(db.DB),
	)
	stats := admin.NewPostgresStats(db.DB)

	return &backend{
		authenticator: auth.NewLocalAuthenticator(users, catalogSvc),
		active:        users,
		users:         users,
		catalog:       catalogSvc,
		moderation:    moderationSvc,
		stats:         stats,
		adminConfig: admin.HandlerConfig{
			DBStats: db.Stats,
			DBPing:  db.Ping,
		},
		dependencies: []health.Dependency{
			{Name: "database", Checker: db},
		},
		close: db.Close,
	}, nil
}

func newRemoteBackend(
	cfg *config.Config,
	msgs *core.Messages,
	logger *slog.Logger,
) *backend {
	client := apiclient.New(cfg.RemoteAPI)
	logger.Info("using marketplace api",
		"base_url", cfg.RemoteAPI.BaseURL,
		"timeout", cfg.RemoteAPI.Timeout,
	)

	users := user.NewService(remote.NewUserRepository(client))
	catalogSvc := catalog.NewService(remote.NewCatalogRepositories(client), msgs)
	moderationSvc := moderation.NewService(
		remote.NewAdRepository(client),
		remote.NewJobRepository(client),
	)

	return &backend{
		authenticator: auth.NewRemoteAuthenticator(client),
		users:         users,
		catalog:       catalogSvc,
		moderation:    moderationSvc,
		stats:         remote.NewStatsSource(client),
		dependencies: []health.Dependency{
			{Name: "marketplace_api", Checker: health.CheckerFunc(client.Ping)},
		},
		subscription: remote.NewSubscriptionHandler(client, msgs),
		close:        func() error { return nil },
	}
}
