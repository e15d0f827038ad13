package imop

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlend_Basic(t *testing.T) {
	assert := assert.New(t)

	op := NewBlend()
	assert.Empty(op.Get())

	err := op.Set("blend_mode_not_supported")
	assert.Error(err)
	assert.Empty(op.Get())

	assert.NoError(op.Set(Darken))
	assert.Equal(Darken, op.Get())
	assert.NoError(op.Set(Lighten))
	assert.Equal(Lighten, op.Get())

	var nilBlend *Blend
	assert.Empty(nilBlend.Get())
}

func TestBlend_Modes(t *testing.T) {
	pinkFront := color.NRGBA{R: 214, G: 20, B: 65, A: 255}
	orangeBack := color.NRGBA{R: 250, G: 121, B: 17, A: 255}

	testCases := []struct {
		mode     string
		expected []uint8
	}{
		{Darken, []uint8{214, 20, 17, 255}},
		{Lighten, []uint8{250, 121, 65, 255}},
		{Multiply, []uint8{210, 9, 4, 255}},
		{Screen, []uint8{254, 132, 78, 255}},
		{Overlay, []uint8{253, 19, 9, 255}},
	}

	rect := image.Rect(0, 0, 1, 1)
	for _, tc := range testCases {
		t.Run(tc.mode, func(t *testing.T) {
			op := InitOp()
			blend := NewBlend()
			assert.NoError(t, blend.Set(tc.mode))

			source := image.NewNRGBA(rect)
			source.SetNRGBA(0, 0, pinkFront)
			backdrop := image.NewNRGBA(rect)
			backdrop.SetNRGBA(0, 0, orangeBack)

			op.Draw(backdrop, source, image.Point{}, blend)
			assert.EqualValues(t, tc.expected, backdrop.Pix)
		})
	}
}

func TestBlend_TransparentBackdropKeepsSource(t *testing.T) {
	pink := color.NRGBA{R: 214, G: 20, B: 65, A: 255}
	op := InitOp()
	blend := NewBlend()
	assert.NoError(t, blend.Set(Multiply))

	source := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	source.SetNRGBA(0, 0, pink)
	backdrop := image.NewNRGBA(image.Rect(0, 0, 1, 1))

	op.Draw(backdrop, source, image.Point{}, blend)
	assert.Equal(t, pink, backdrop.NRGBAAt(0, 0))
}
