package charsprite

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/charsprite/charsprite/utils"
)

// AssetLoader resolves an asset source to its pixels.
// The returned image is shared and must be treated as read-only.
type AssetLoader interface {
	Load(source string) (*image.NRGBA, error)
}

// FileLoader loads assets from the file system, relative to Root,
// or over HTTP when the source is an absolute http(s) URL.
type FileLoader struct {
	Root string
}

// Load reads and decodes the asset.
func (l FileLoader) Load(source string) (*image.NRGBA, error) {
	if source == "" {
		return nil, errors.New("asset: empty source")
	}

	var (
		data []byte
		err  error
	)
	if utils.IsValidUrl(source) {
		data, err = utils.DownloadImage(source)
		if err != nil {
			return nil, fmt.Errorf("asset: %w", err)
		}
	} else {
		path := l.path(source)
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("asset: read %s: %w", path, err)
		}
		if !utils.IsImage(path, data) {
			return nil, fmt.Errorf("asset: %s is not an image file", path)
		}
	}
	return decodeAsset(source, data)
}

func (l FileLoader) path(source string) string {
	p := filepath.FromSlash(source)
	if filepath.IsAbs(p) || l.Root == "" {
		return p
	}
	return filepath.Join(l.Root, p)
}

// decodeAsset decodes any registered image format (PNG, JPEG, GIF, BMP, WebP, TGA).
func decodeAsset(source string, data []byte) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("asset: decode %s: %w", source, err)
	}
	return imgToNRGBA(img), nil
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

// CachedLoader keeps decoded assets in memory. Catalog assets are
// immutable, so they are decoded once and shared between requests.
// Failed loads are not cached.
type CachedLoader struct {
	mu     sync.RWMutex
	items  map[string]*image.NRGBA
	loader AssetLoader
}

// NewCachedLoader wraps loader with an in-memory cache.
func NewCachedLoader(loader AssetLoader) *CachedLoader {
	return &CachedLoader{
		items:  make(map[string]*image.NRGBA),
		loader: loader,
	}
}

// Load returns the cached asset or loads it through the wrapped loader.
func (c *CachedLoader) Load(source string) (*image.NRGBA, error) {
	c.mu.RLock()
	img, ok := c.items[source]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	img, err := c.loader.Load(source)
	if err != nil {
		return nil, err
	}

	// Another request may have loaded the same asset meanwhile.
	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.items[source]; ok {
		return cached, nil
	}
	c.items[source] = img
	return img, nil
}

// Len returns the number of cached assets.
func (c *CachedLoader) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Preload loads every asset of the catalog and reports all failures at once.
func Preload(loader AssetLoader, c *Catalog) error {
	var errs []error
	for _, a := range c.Assets() {
		if _, err := loader.Load(a.Source); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
