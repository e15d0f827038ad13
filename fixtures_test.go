package charsprite

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testCatalogJSON = `{
	"bodies": {
		"LK": {"src": "static/lk_01.png", "x": 46, "y": 39, "head": {"x": 52, "y": 18}, "hat": {"x": 9, "y": -24}},
		"BO": {"src": "static/biolo_01.png", "x": 42, "y": 39, "head": {"x": 52, "y": 17}, "hat": {"x": 9, "y": -25}}
	},
	"heads": {
		"01": {"src": "static/head/head_01.png", "x": 99, "y": 99}
	},
	"hats": {
		"white_corone": {"src": "static/white_corone_01.png", "x": 77, "y": 77}
	},
	"wings": {
		"bloody": {"src": "static/bloody_wing_01.png", "x": 10, "y": 32},
		"glow": {"src": "static/glow.png", "x": 0, "y": 0, "blend": "screen"}
	}
}`

// assetSize is the side of the square fixture assets.
const assetSize = 40

func testCatalog(t *testing.T) *Catalog {
	t.Helper()

	c, err := LoadCatalog(strings.NewReader(testCatalogJSON))
	require.NoError(t, err)
	return c
}

// writeAssets writes a uniformly colored PNG for every asset of the
// catalog below root and returns the color used for each source.
func writeAssets(t *testing.T, root string, c *Catalog) map[string]color.NRGBA {
	t.Helper()

	colors := make(map[string]color.NRGBA)
	for i, a := range c.Assets() {
		col := color.NRGBA{R: uint8(40 + i*20), G: uint8(200 - i*15), B: uint8(10 + i*25), A: 255}
		colors[a.Source] = col
		writePNG(t, filepath.Join(root, filepath.FromSlash(a.Source)), uniform(assetSize, assetSize, col))
	}
	return colors
}

func uniform(w, h int, col color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}
