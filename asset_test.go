package charsprite

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls atomic.Int32
	fail  bool
}

func (l *countingLoader) Load(source string) (*image.NRGBA, error) {
	l.calls.Add(1)
	if l.fail {
		return nil, errors.New("asset: unavailable " + source)
	}
	return uniform(2, 2, color.NRGBA{A: 255}), nil
}

func TestFileLoader(t *testing.T) {
	root := t.TempDir()
	col := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	writePNG(t, filepath.Join(root, "static", "body.png"), uniform(4, 3, col))

	img, err := FileLoader{Root: root}.Load("static/body.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	assert.Equal(t, col, img.NRGBAAt(1, 1))

	// Absolute sources ignore the root.
	img, err = FileLoader{Root: "/nowhere"}.Load(filepath.Join(root, "static", "body.png"))
	require.NoError(t, err)
	assert.Equal(t, col, img.NRGBAAt(0, 0))
}

func TestFileLoader_Errors(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("not an image"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.png"), []byte("\x89PNG\r\n\x1a\ntruncated"), 0644))

	l := FileLoader{Root: root}

	_, err := l.Load("")
	assert.ErrorContains(t, err, "empty source")

	_, err = l.Load("missing.png")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = l.Load("notes.txt")
	assert.ErrorContains(t, err, "is not an image file")

	_, err = l.Load("broken.png")
	assert.ErrorContains(t, err, "asset: decode broken.png")
}

func TestCachedLoader(t *testing.T) {
	inner := &countingLoader{}
	cache := NewCachedLoader(inner)

	first, err := cache.Load("a.png")
	require.NoError(t, err)
	second, err := cache.Load("a.png")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), inner.calls.Load())
	assert.Equal(t, 1, cache.Len())

	_, err = cache.Load("b.png")
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
}

func TestCachedLoader_Concurrent(t *testing.T) {
	cache := NewCachedLoader(&countingLoader{})

	var (
		wg      sync.WaitGroup
		results = make([]*image.NRGBA, 16)
	)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			img, err := cache.Load("shared.png")
			assert.NoError(t, err)
			results[i] = img
		}(i)
	}
	wg.Wait()

	// Every caller observes the image stored first.
	stored, err := cache.Load("shared.png")
	require.NoError(t, err)
	for _, img := range results {
		assert.Same(t, stored, img)
	}
	assert.Equal(t, 1, cache.Len())
}

func TestCachedLoader_ErrorsNotCached(t *testing.T) {
	inner := &countingLoader{fail: true}
	cache := NewCachedLoader(inner)

	_, err := cache.Load("a.png")
	assert.Error(t, err)
	_, err = cache.Load("a.png")
	assert.Error(t, err)

	assert.Equal(t, int32(2), inner.calls.Load())
	assert.Zero(t, cache.Len())
}

func TestPreload(t *testing.T) {
	root := t.TempDir()
	catalog := testCatalog(t)
	writeAssets(t, root, catalog)

	cache := NewCachedLoader(FileLoader{Root: root})
	require.NoError(t, Preload(cache, catalog))
	assert.Equal(t, len(catalog.Assets()), cache.Len())

	require.NoError(t, os.Remove(filepath.Join(root, "static", "glow.png")))
	require.NoError(t, os.Remove(filepath.Join(root, "static", "lk_01.png")))

	err := Preload(NewCachedLoader(FileLoader{Root: root}), catalog)
	assert.ErrorContains(t, err, "glow.png")
	assert.ErrorContains(t, err, "lk_01.png")
}
