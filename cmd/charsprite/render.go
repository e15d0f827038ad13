package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/charsprite/charsprite"
	"github.com/charsprite/charsprite/utils"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "compose a single sprite into a file or stdout",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "body", Usage: "body variant (required)"},
			&cli.StringFlag{Name: "head", Usage: "head variant (required)"},
			&cli.StringFlag{Name: "hat", Usage: "hat variant", Value: charsprite.NoneKey},
			&cli.StringFlag{Name: "wing", Usage: "wing variant", Value: charsprite.NoneKey},
			&cli.StringFlag{Name: "sex", Usage: "M or F", Value: string(charsprite.Male)},
			&cli.StringFlag{Name: "scale", Usage: "integer upscaling factor, 1 to 4"},
			&cli.StringFlag{Name: "format", Usage: "png, bmp or webp (default: from the output extension)"},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "destination file, or - for stdout",
				Value:   pipeName,
			},
		},
		Action: render,
	}
}

func render(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.cleanup()

	dest := cmd.String("out")
	format := cmd.String("format")
	if format == "" && dest != pipeName {
		f, err := charsprite.FormatFromPath(dest)
		if err != nil {
			return err
		}
		format = f.String()
	}

	out, err := charsprite.ParseOutput(format, cmd.String("scale"))
	if err != nil {
		return err
	}

	stack, err := a.resolver.Resolve(charsprite.Params{
		Sex:  cmd.String("sex"),
		Head: cmd.String("head"),
		Body: cmd.String("body"),
		Hat:  cmd.String("hat"),
		Wing: cmd.String("wing"),
	})
	if err != nil {
		return err
	}

	w, closeFn, err := openDestination(dest)
	if err != nil {
		return err
	}
	defer closeFn()

	var spinner *utils.Spinner
	if term.IsTerminal(int(os.Stderr.Fd())) {
		spinner = utils.NewSpinner(os.Stderr, fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ CHARSPRITE", utils.StatusMessage),
			utils.DecorateText("is composing the sprite...", utils.DefaultMessage),
		), 80*time.Millisecond)
		spinner.Start()
	}

	now := time.Now()
	img, err := a.compositor.Compose(stack, out)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if _, err := w.Write(img.Data); err != nil {
		return fmt.Errorf("unable to write the sprite: %w", err)
	}

	if dest != pipeName {
		fmt.Fprintf(os.Stderr, "The sprite %s has been saved as: %s (%s, %s)\n",
			stack.String(),
			utils.DecorateText(filepath.Base(dest), utils.SuccessMessage),
			humanize.Bytes(uint64(len(img.Data))),
			utils.FormatTime(time.Since(now)),
		)
	}
	return nil
}

// openDestination converts the destination path to a writable file.
func openDestination(dest string) (io.Writer, func(), error) {
	if dest == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return os.Stdout, func() {}, nil
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
