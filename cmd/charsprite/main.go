package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/charsprite/charsprite/utils"
)

const HelpBanner = `
┌─┐┬ ┬┌─┐┬─┐┌─┐┌─┐┬─┐┬┌┬┐┌─┐
│  ├─┤├─┤├┬┘└─┐├─┘├┬┘│ │ ├┤
└─┘┴ ┴┴ ┴┴└─└─┘┴  ┴└─┴ ┴ └─┘

Character sprite generator.
`

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:        "charsprite",
		Usage:       "compose character sprites from layered assets",
		Description: HelpBanner,
		Version:     Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a JSON config file",
			},
			&cli.StringFlag{
				Name:  "assets",
				Usage: "directory the catalog asset paths are relative to",
			},
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "JSON catalog file (default: built-in catalog)",
			},
			&cli.BoolFlag{
				Name:  "legacy-canvas",
				Usage: "use the 100x100 legacy canvas instead of 140x140",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "also write JSON logs to this rotating file",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			renderCommand(),
			catalogCommand(),
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		os.Exit(1)
	}
}
