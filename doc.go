/*
Package charsprite generates character sprites by layering pre-rendered
assets (wing, body, head and hat) onto a transparent canvas.

A Catalog lists the variants of every category together with their pixel
offsets. Each body defines the anchors where the head and the hat are placed.
The Resolver validates request parameters against the catalog and produces a
LayerStack; the Compositor flattens the stack through a Merger and returns
the encoded image.

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"log"
		"os"

		"github.com/charsprite/charsprite"
	)

	func main() {
		catalog, err := charsprite.DefaultCatalog()
		if err != nil {
			log.Fatal(err)
		}
		resolver := charsprite.NewResolver(catalog, nil)
		loader := charsprite.NewCachedLoader(charsprite.FileLoader{Root: "."})
		compositor := charsprite.NewCompositor(charsprite.NewMerger(loader), 140, 140)

		stack, err := resolver.Resolve(charsprite.Params{Body: "LK", Head: "01", Hat: "white_corone"})
		if err != nil {
			log.Fatal(err)
		}
		img, err := compositor.Compose(stack, charsprite.Output{Format: charsprite.PNG})
		if err != nil {
			log.Fatal(err)
		}
		os.WriteFile("sprite.png", img.Data, 0644)
	}
*/
package charsprite
