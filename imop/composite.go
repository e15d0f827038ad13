package imop

import (
	"fmt"
	"image"

	"github.com/charsprite/charsprite/utils"
)

// Porter-Duff composition operators.
const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Composite holds the currently active composition operator.
type Composite struct {
	current string
	ops     []string
}

// InitOp returns a Composite using the source-over operator.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Clear,
			Copy,
			Dst,
			SrcOver,
			DstOver,
			SrcIn,
			DstIn,
			SrcOut,
			DstOut,
			SrcAtop,
			DstAtop,
			Xor,
		},
	}
}

// Set activates one of the supported composition operators.
func (op *Composite) Set(cop string) error {
	if !utils.Contains(op.ops, cop) {
		return fmt.Errorf("unsupported composite operation: %q", cop)
	}
	op.current = cop
	return nil
}

// Get returns the active composition operator.
func (op *Composite) Get() string {
	return op.current
}

// factors returns the Porter-Duff coverage factors of the source and the backdrop.
func (op *Composite) factors(as, ab float64) (fa, fb float64) {
	switch op.current {
	case Clear:
		return 0, 0
	case Copy:
		return 1, 0
	case Dst:
		return 0, 1
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	default: // SrcOver
		return 1, 1 - as
	}
}

// Draw composites src over dst, in place, with the top-left corner of src
// placed at pt. The operator is applied only where src and dst overlap;
// source pixels falling outside dst are clipped. When blend carries a mode,
// the source color is mixed with the backdrop before composition.
func (op *Composite) Draw(dst *image.NRGBA, src *image.NRGBA, pt image.Point, blend *Blend) {
	sb := src.Bounds()
	area := sb.Sub(sb.Min).Add(pt).Intersect(dst.Bounds())
	if area.Empty() {
		return
	}

	var mode string
	if blend != nil {
		mode = blend.Get()
	}

	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			si := src.PixOffset(x-pt.X+sb.Min.X, y-pt.Y+sb.Min.Y)
			di := dst.PixOffset(x, y)

			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]

			as := float64(s[3]) / 255
			ab := float64(d[3]) / 255
			fa, fb := op.factors(as, ab)

			ao := as*fa + ab*fb
			if ao <= 0 {
				d[0], d[1], d[2], d[3] = 0, 0, 0, 0
				continue
			}

			for c := 0; c < 3; c++ {
				cs := float64(s[c]) / 255
				cb := float64(d[c]) / 255
				if mode != "" {
					// Mix the source with the backdrop according to the backdrop coverage.
					cs = (1-ab)*cs + ab*blendChannel(mode, cb, cs)
				}
				co := (cs*as*fa + cb*ab*fb) / ao
				d[c] = toByte(co)
			}
			d[3] = toByte(ao)
		}
	}
}

func toByte(v float64) uint8 {
	return uint8(utils.Clamp(v, 0, 1)*255 + 0.5)
}
