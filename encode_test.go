package charsprite

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	testCases := map[string]Format{
		"":      PNG,
		"png":   PNG,
		"PNG":   PNG,
		".png":  PNG,
		"bmp":   BMP,
		"webp":  WEBP,
		".WebP": WEBP,
	}
	for name, expected := range testCases {
		f, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, f, name)
	}

	for _, name := range []string{"jpg", "gif", "tga", "p ng"} {
		_, err := ParseFormat(name)
		assert.ErrorIs(t, err, ErrInvalidFormat, name)
		assert.ErrorIs(t, err, ErrParameterInvalid, name)
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("out/sprite.webp")
	require.NoError(t, err)
	assert.Equal(t, WEBP, f)

	f, err = FormatFromPath("sprite")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)

	_, err = FormatFromPath("sprite.jpeg")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestFormat_MIME(t *testing.T) {
	assert.Equal(t, "image/png", PNG.MIME())
	assert.Equal(t, "image/bmp", BMP.MIME())
	assert.Equal(t, "image/webp", WEBP.MIME())
	assert.Equal(t, "unknown", Format(42).String())
}

func TestParseOutput(t *testing.T) {
	out, err := ParseOutput("", "")
	require.NoError(t, err)
	assert.Equal(t, Output{Format: PNG, Scale: 1}, out)

	out, err = ParseOutput("webp", "4")
	require.NoError(t, err)
	assert.Equal(t, Output{Format: WEBP, Scale: 4}, out)

	for _, scale := range []string{"0", "5", "-1", "two", "1.5"} {
		_, err := ParseOutput("png", scale)
		assert.ErrorIs(t, err, ErrInvalidScale, scale)
		assert.Equal(t, 400, StatusCode(err), scale)
	}

	_, err = ParseOutput("tiff", "2")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestEncode(t *testing.T) {
	src := uniform(8, 6, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	for _, f := range []Format{PNG, BMP, WEBP} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, src, f))

			img, name, err := image.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, f.String(), name)
			assert.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())

			px := color.NRGBAModel.Convert(img.At(3, 3)).(color.NRGBA)
			assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, px)
		})
	}

	var buf bytes.Buffer
	assert.ErrorIs(t, Encode(&buf, src, Format(42)), ErrInvalidFormat)
}
