package charsprite

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charsprite/charsprite/imop"
	"github.com/charsprite/charsprite/utils"
)

//go:embed data/catalog.json
var defaultCatalog []byte

// NoneKey selects the empty variant of an optional category.
const NoneKey = "0"

// Category names a group of interchangeable sprite parts.
type Category string

const (
	CategoryBody Category = "body"
	CategoryHead Category = "head"
	CategoryHat  Category = "hat"
	CategoryWing Category = "wing"
)

// Categories lists the catalog categories in render order, back to front.
var Categories = []Category{CategoryWing, CategoryBody, CategoryHead, CategoryHat}

// Point is a pixel offset within the canvas.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Asset describes a pre-rendered image and its default placement.
// An asset without source is the empty, transparent variant.
type Asset struct {
	Source string `json:"src"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	// Blend optionally mixes the asset with the layers beneath it.
	Blend string `json:"blend,omitempty"`
}

// Empty reports whether the asset draws nothing.
func (a Asset) Empty() bool { return a.Source == "" }

// Body is a body asset together with the anchors where the
// head and hat layers are placed on top of it.
type Body struct {
	Asset
	Head Point `json:"head"`
	Hat  Point `json:"hat"`
}

// Catalog maps every category to its variants. It is built once at
// startup and must not be modified afterwards.
type Catalog struct {
	Bodies map[string]Body
	Heads  map[string]Asset
	Hats   map[string]Asset
	Wings  map[string]Asset
}

type bodyJSON struct {
	Asset
	Head *Point `json:"head"`
	Hat  *Point `json:"hat"`
}

type catalogJSON struct {
	Bodies map[string]bodyJSON `json:"bodies"`
	Heads  map[string]Asset    `json:"heads"`
	Hats   map[string]Asset    `json:"hats"`
	Wings  map[string]Asset    `json:"wings"`
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(bytes.NewReader(defaultCatalog))
}

// ReadCatalogFile loads a catalog from a JSON file.
func ReadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()

	c, err := LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return c, nil
}

// LoadCatalog decodes and validates a JSON catalog.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var raw catalogJSON

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}

	c := &Catalog{
		Bodies: make(map[string]Body, len(raw.Bodies)),
		Heads:  orEmpty(raw.Heads),
		Hats:   orEmpty(raw.Hats),
		Wings:  orEmpty(raw.Wings),
	}
	for key, b := range raw.Bodies {
		if b.Head == nil || b.Hat == nil {
			return nil, fmt.Errorf("catalog: body %q must define both head and hat anchors", key)
		}
		c.Bodies[key] = Body{Asset: b.Asset, Head: *b.Head, Hat: *b.Hat}
	}

	for _, accessories := range []map[string]Asset{c.Hats, c.Wings} {
		if _, ok := accessories[NoneKey]; !ok {
			accessories[NoneKey] = Asset{}
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func orEmpty(m map[string]Asset) map[string]Asset {
	if m == nil {
		return make(map[string]Asset)
	}
	return m
}

// Validate checks the catalog invariants.
func (c *Catalog) Validate() error {
	if len(c.Bodies) == 0 {
		return errors.New("catalog: no body variants defined")
	}
	if len(c.Heads) == 0 {
		return errors.New("catalog: no head variants defined")
	}

	for _, cat := range Categories {
		for _, key := range c.Keys(cat) {
			a, _ := c.asset(cat, key)
			if key == "" {
				return fmt.Errorf("catalog: empty %s key", cat)
			}
			if a.Blend != "" && !utils.Contains(imop.BlendModes, a.Blend) {
				return fmt.Errorf("catalog: %s %q: unsupported blend mode %q", cat, key, a.Blend)
			}
			switch {
			case key == NoneKey && (cat == CategoryHat || cat == CategoryWing):
				if !a.Empty() || a.X != 0 || a.Y != 0 {
					return fmt.Errorf("catalog: %s %q is reserved for the empty variant", cat, key)
				}
			case a.Empty():
				return fmt.Errorf("catalog: %s %q has no source", cat, key)
			}
		}
	}
	return nil
}

// Body returns the body variant stored under key.
func (c *Catalog) Body(key string) (Body, bool) {
	b, ok := c.Bodies[key]
	return b, ok
}

// Lookup returns the asset of the given category and key, or the
// category specific not found error.
func (c *Catalog) Lookup(cat Category, key string) (Asset, error) {
	a, ok := c.asset(cat, key)
	if !ok {
		return Asset{}, notFound(cat)
	}
	return a, nil
}

func (c *Catalog) asset(cat Category, key string) (Asset, bool) {
	var (
		a  Asset
		ok bool
	)
	switch cat {
	case CategoryBody:
		var b Body
		b, ok = c.Bodies[key]
		a = b.Asset
	case CategoryHead:
		a, ok = c.Heads[key]
	case CategoryHat:
		a, ok = c.Hats[key]
	case CategoryWing:
		a, ok = c.Wings[key]
	}
	return a, ok
}

// Keys returns the sorted variant keys of a category.
func (c *Catalog) Keys(cat Category) []string {
	var keys []string
	switch cat {
	case CategoryBody:
		for k := range c.Bodies {
			keys = append(keys, k)
		}
	case CategoryHead:
		keys = mapKeys(c.Heads)
	case CategoryHat:
		keys = mapKeys(c.Hats)
	case CategoryWing:
		keys = mapKeys(c.Wings)
	}
	sort.Strings(keys)
	return keys
}

// Assets returns every non-empty asset of the catalog.
func (c *Catalog) Assets() []Asset {
	var assets []Asset
	for _, cat := range Categories {
		for _, key := range c.Keys(cat) {
			if a, _ := c.asset(cat, key); !a.Empty() {
				assets = append(assets, a)
			}
		}
	}
	return assets
}

func mapKeys(m map[string]Asset) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func notFound(cat Category) error {
	switch cat {
	case CategoryBody:
		return ErrBodyNotFound
	case CategoryHead:
		return ErrHeadNotFound
	case CategoryHat:
		return ErrHatNotFound
	case CategoryWing:
		return ErrWingNotFound
	}
	return fmt.Errorf("%w: unknown category %q", ErrParameterInvalid, cat)
}
