// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/baytalsudani/console/internal/config"
	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/seed"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.IsRemote() {
		return errors.New("sample data can only be provisioned with the local strategy")
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
	}

	sum, err := seed.NewProvisioner(db.DB).Run(ctx, seed.Merchants)
	if err != nil {
		return err
	}

	slog.Info("sample data provisioned",
		"merchants", sum.Merchants,
		"skipped", sum.Skipped,
		"ads", sum.Ads,
		"jobs", sum.Jobs,
	)
	return nil
}
