package charsprite

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
)

// MaxScale is the largest supported upscaling factor.
const MaxScale = 4

// Format is an output image encoding.
type Format int

const (
	PNG Format = iota
	BMP
	WEBP
)

var formatNames = map[Format]string{
	PNG:  "png",
	BMP:  "bmp",
	WEBP: "webp",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// MIME returns the content type of the format.
func (f Format) MIME() string {
	return "image/" + f.String()
}

// ParseFormat maps a format name to a Format. An empty name selects PNG.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	switch name {
	case "", "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "webp":
		return WEBP, nil
	}
	return PNG, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
}

// FormatFromPath detects the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return PNG, nil
	}
	return ParseFormat(ext)
}

// Output selects how the composited canvas is encoded.
type Output struct {
	Format Format
	Scale  int
}

// ParseOutput validates the optional format and scale request parameters.
func ParseOutput(format, scale string) (Output, error) {
	out := Output{Scale: 1}

	f, err := ParseFormat(format)
	if err != nil {
		return out, err
	}
	out.Format = f

	if scale != "" {
		n, err := strconv.Atoi(scale)
		if err != nil || n < 1 || n > MaxScale {
			return out, fmt.Errorf("%w: %q, expected 1 to %d", ErrInvalidScale, scale, MaxScale)
		}
		out.Scale = n
	}
	return out, nil
}

// Encode writes the image to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return imaging.Encode(w, img, imaging.PNG)
	case BMP:
		return imaging.Encode(w, img, imaging.BMP)
	case WEBP:
		return nativewebp.Encode(w, img, nil)
	}
	return fmt.Errorf("%w: %v", ErrInvalidFormat, f)
}
