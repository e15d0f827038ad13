package charsprite

import (
	"fmt"
)

// Canvas sizes.
const (
	DefaultCanvasSize = 140
	LegacyCanvasSize  = 100
)

// Image is an encoded sprite ready to be sent to the client.
type Image struct {
	MIME string
	Data []byte
}

// Compositor flattens layer stacks into encoded images through a Merger.
type Compositor struct {
	merger Merger
	width  int
	height int
}

// NewCompositor creates a compositor drawing onto a width x height canvas.
// Non-positive sizes fall back to DefaultCanvasSize.
func NewCompositor(m Merger, width, height int) *Compositor {
	if width <= 0 {
		width = DefaultCanvasSize
	}
	if height <= 0 {
		height = DefaultCanvasSize
	}
	return &Compositor{merger: m, width: width, height: height}
}

// Size returns the canvas dimensions.
func (c *Compositor) Size() (width, height int) {
	return c.width, c.height
}

// Compose merges the stack and decodes the merged data URI.
// It is the only blocking step of a request. A panic inside the merger
// is turned into ErrMergeFailed; the result is either a complete image
// or an error.
func (c *Compositor) Compose(stack LayerStack, out Output) (img Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img = Image{}
			err = fmt.Errorf("%w: panic: %v", ErrMergeFailed, r)
		}
	}()

	if out.Scale < 1 {
		out.Scale = 1
	}
	uri, err := c.merger.Merge(stack, MergeOptions{
		Width:  c.width,
		Height: c.height,
		Output: out,
	})
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrMergeFailed, err)
	}

	mime, data, err := DecodeDataURI(uri)
	if err != nil {
		return Image{}, err
	}
	return Image{MIME: mime, Data: data}, nil
}
