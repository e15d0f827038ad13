package main

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/charsprite/charsprite"
	"github.com/charsprite/charsprite/internal/config"
	"github.com/charsprite/charsprite/internal/logging"
)

// app holds the components shared by every command.
type app struct {
	cfg        config.Config
	logger     *slog.Logger
	cleanup    func()
	catalog    *charsprite.Catalog
	loader     *charsprite.CachedLoader
	resolver   *charsprite.Resolver
	compositor *charsprite.Compositor
}

func newApp(cmd *cli.Command) (*app, error) {
	var cfg config.Config
	if path := cmd.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	flags := config.Flags{
		Addr:      cmd.String("addr"),
		AssetRoot: cmd.String("assets"),
		Catalog:   cmd.String("catalog"),
		LogLevel:  cmd.String("log-level"),
		LogFile:   cmd.String("log-file"),
		Preload:   cmd.Bool("preload"),
	}
	if cmd.Bool("legacy-canvas") {
		flags.CanvasSize = charsprite.LegacyCanvasSize
	}
	cfg.Resolve(flags)

	logger, cleanup, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		cleanup()
		return nil, err
	}

	loader := charsprite.NewCachedLoader(charsprite.FileLoader{Root: cfg.AssetRoot})

	return &app{
		cfg:        cfg,
		logger:     logger,
		cleanup:    cleanup,
		catalog:    catalog,
		loader:     loader,
		resolver:   charsprite.NewResolver(catalog, logger),
		compositor: charsprite.NewCompositor(charsprite.NewMerger(loader), cfg.CanvasSize, cfg.CanvasSize),
	}, nil
}

func loadCatalog(path string) (*charsprite.Catalog, error) {
	if path == "" {
		return charsprite.DefaultCatalog()
	}
	c, err := charsprite.ReadCatalogFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}
