package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/charsprite/charsprite"
	"github.com/charsprite/charsprite/internal/server"
	"github.com/charsprite/charsprite/utils"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve GET /generate over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address (default :3000, or :$PORT)",
			},
			&cli.BoolFlag{
				Name:  "preload",
				Usage: "decode every catalog asset before accepting requests",
			},
		},
		Action: serve,
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.cleanup()

	if a.cfg.Preload {
		now := time.Now()
		if err := charsprite.Preload(a.loader, a.catalog); err != nil {
			return fmt.Errorf("preload assets: %w", err)
		}
		a.logger.Info("Preloaded assets", "count", a.loader.Len(), "took", utils.FormatTime(time.Since(now)))
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(a.resolver, a.compositor, a.logger, server.Options{
		StaticRoot:   a.cfg.StaticRoot,
		Favicon:      a.cfg.Favicon,
		ReadTimeout:  a.cfg.ReadTimeout.Duration,
		WriteTimeout: a.cfg.WriteTimeout.Duration,
	})

	width, height := a.compositor.Size()
	a.logger.Info("Starting sprite server",
		"version", Version,
		"assets", a.cfg.AssetRoot,
		"canvas", fmt.Sprintf("%dx%d", width, height),
	)
	return srv.Run(ctx, a.cfg.Addr)
}
