// Package imop implements the Porter-Duff composition operators and the
// separable blend modes used to flatten sprite layers onto a canvas.
// The image/draw core package implements only the source-over-destination
// and source operators, and it works on premultiplied colors; the layers
// handled here are non-premultiplied NRGBA images.
package imop

import (
	"fmt"

	"github.com/charsprite/charsprite/utils"
)

const (
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

// BlendModes lists the supported blend modes.
var BlendModes = []string{Darken, Lighten, Multiply, Screen, Overlay}

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend initializes a new Blend.
func NewBlend() *Blend {
	return &Blend{}
}

// Set activates one of the supported blend modes.
func (o *Blend) Set(opType string) error {
	if !utils.Contains(BlendModes, opType) {
		return fmt.Errorf("unsupported blend mode: %q", opType)
	}
	o.OpType = opType
	return nil
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	if o == nil {
		return ""
	}
	return o.OpType
}

// blendChannel computes B(cb, cs) for a single normalized color channel.
func blendChannel(mode string, cb, cs float64) float64 {
	switch mode {
	case Darken:
		return utils.Min(cb, cs)
	case Lighten:
		return utils.Max(cb, cs)
	case Multiply:
		return cb * cs
	case Screen:
		return cb + cs - cb*cs
	case Overlay:
		if cb <= 0.5 {
			return 2 * cs * cb
		}
		return 1 - 2*(1-cs)*(1-cb)
	}
	return cs
}
