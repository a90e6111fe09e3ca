package main

import (
	"fmt"
	"os"

	"github.com/mwesthall/catalogctl/internal/api"
	"github.com/mwesthall/catalogctl/internal/cli"
	"github.com/mwesthall/catalogctl/internal/config"
	"github.com/mwesthall/catalogctl/internal/controller"
	"github.com/mwesthall/catalogctl/internal/db"
	"github.com/mwesthall/catalogctl/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The snapshot cache is optional: a broken cache file must never keep
	// the tool from talking to the API.
	var snapshots repository.SnapshotRepo
	if cfg.CachePath != "" {
		if database, err := db.OpenDB(cfg.CachePath); err == nil {
			defer database.Close()
			snapshots = repository.NewSQLiteSnapshotRepo(database)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: snapshot cache unavailable: %v\n", err)
		}
	}

	client := api.NewHTTPClient(cfg.BaseURL, cfg.Token, cfg.Timeout())
	ctrl := controller.New(client, cli.NewToastNotifier(), snapshots)

	app := &cli.App{
		Ctrl:   ctrl,
		Client: client,
		Config: cfg,
	}

	return cli.NewRootCmd(app).Execute()
}
