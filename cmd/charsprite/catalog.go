package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/charsprite/charsprite"
	"github.com/charsprite/charsprite/utils"
)

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "list the variants of every category",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.cleanup()

			printCatalog(os.Stdout, a.catalog)
			return nil
		},
	}
}

func printCatalog(w io.Writer, c *charsprite.Catalog) {
	for _, cat := range []charsprite.Category{
		charsprite.CategoryBody,
		charsprite.CategoryHead,
		charsprite.CategoryHat,
		charsprite.CategoryWing,
	} {
		fmt.Fprintln(w, utils.DecorateText(strings.ToUpper(string(cat)), utils.StatusMessage))
		for _, key := range c.Keys(cat) {
			if cat == charsprite.CategoryBody {
				b, _ := c.Body(key)
				fmt.Fprintf(w, "  %-22s %-34s at (%d,%d) head (%d,%d) hat (%d,%d)\n",
					key, b.Source, b.X, b.Y, b.Head.X, b.Head.Y, b.Hat.X, b.Hat.Y)
				continue
			}
			a, _ := c.Lookup(cat, key)
			src := a.Source
			if a.Empty() {
				src = "(none)"
			}
			fmt.Fprintf(w, "  %-22s %-34s at (%d,%d)\n", key, src, a.X, a.Y)
		}
	}
}
