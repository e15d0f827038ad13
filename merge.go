package charsprite

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/charsprite/charsprite/imop"
)

// MergeOptions describes the canvas the layers are flattened onto.
type MergeOptions struct {
	Width  int
	Height int
	Output
}

// Merger flattens a layer stack into one encoded image and returns it
// as a data URI (data:<mime>;base64,<payload>).
type Merger interface {
	Merge(stack LayerStack, opts MergeOptions) (string, error)
}

// LayerMerger is the default Merger. It draws every layer with the
// source-over operator onto a transparent canvas.
type LayerMerger struct {
	loader AssetLoader
}

var _ Merger = (*LayerMerger)(nil)

// NewMerger creates a LayerMerger reading layer pixels through loader.
func NewMerger(loader AssetLoader) *LayerMerger {
	return &LayerMerger{loader: loader}
}

// Merge draws the stack in order and encodes the canvas.
func (m *LayerMerger) Merge(stack LayerStack, opts MergeOptions) (string, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return "", fmt.Errorf("invalid canvas size %dx%d", opts.Width, opts.Height)
	}

	canvas := imaging.New(opts.Width, opts.Height, color.NRGBA{})
	op := imop.InitOp()

	for _, l := range stack {
		if l.Asset.Empty() {
			continue
		}
		img, err := m.loader.Load(l.Asset.Source)
		if err != nil {
			return "", fmt.Errorf("%s layer %q: %w", l.Category, l.Key, err)
		}

		var blend *imop.Blend
		if l.Asset.Blend != "" {
			blend = imop.NewBlend()
			if err := blend.Set(l.Asset.Blend); err != nil {
				return "", fmt.Errorf("%s layer %q: %w", l.Category, l.Key, err)
			}
		}
		op.Draw(canvas, img, l.At, blend)
	}

	if opts.Scale > 1 {
		canvas = imaging.Resize(canvas, opts.Width*opts.Scale, opts.Height*opts.Scale, imaging.NearestNeighbor)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, canvas, opts.Format); err != nil {
		return "", fmt.Errorf("encode %s: %w", opts.Format, err)
	}
	if buf.Len() == 0 {
		return "", errors.New("encoder produced no data")
	}
	return EncodeDataURI(opts.Format.MIME(), buf.Bytes()), nil
}
