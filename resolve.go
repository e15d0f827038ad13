package charsprite

import (
	"fmt"
	"image"
	"log/slog"
	"strings"
)

// Sex of the character. It is validated but does not yet select
// different catalog variants.
type Sex string

const (
	Male   Sex = "M"
	Female Sex = "F"
)

// Params holds the raw, untyped request parameters.
type Params struct {
	Sex  string
	Head string
	Body string
	Hat  string
	Wing string
}

// Layer is an asset placed at its final position on the canvas.
type Layer struct {
	Category Category
	Key      string
	Asset    Asset
	At       image.Point
}

func (l Layer) String() string {
	return fmt.Sprintf("%s(%s)@(%d,%d)", l.Category, l.Key, l.At.X, l.At.Y)
}

// LayerStack is the ordered list of layers, back to front.
type LayerStack []Layer

func (s LayerStack) String() string {
	parts := make([]string, len(s))
	for i, l := range s {
		parts[i] = l.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Selection is the validated outcome of a request. It carries the catalog
// descriptors themselves, so an unknown key can never reach the compositor.
type Selection struct {
	Sex     Sex
	BodyKey string
	Body    Body
	HeadKey string
	Head    Asset
	HatKey  string
	Hat     Asset
	WingKey string
	Wing    Asset
}

// Stack builds the layer stack: wing, body, head, hat.
// The head and hat are anchored on the body; the wing keeps its own offset.
func (s Selection) Stack() LayerStack {
	stack := make(LayerStack, 0, 4)
	if s.WingKey != NoneKey {
		stack = append(stack, Layer{
			Category: CategoryWing,
			Key:      s.WingKey,
			Asset:    s.Wing,
			At:       image.Pt(s.Wing.X, s.Wing.Y),
		})
	}
	stack = append(stack,
		Layer{
			Category: CategoryBody,
			Key:      s.BodyKey,
			Asset:    s.Body.Asset,
			At:       image.Pt(s.Body.X, s.Body.Y),
		},
		Layer{
			Category: CategoryHead,
			Key:      s.HeadKey,
			Asset:    s.Head,
			At:       image.Pt(s.Body.Head.X, s.Body.Head.Y),
		},
	)
	if s.HatKey != NoneKey {
		stack = append(stack, Layer{
			Category: CategoryHat,
			Key:      s.HatKey,
			Asset:    s.Hat,
			At:       image.Pt(s.Body.Hat.X, s.Body.Hat.Y),
		})
	}
	return stack
}

// String summarises the selection for logging.
func (s Selection) String() string {
	return fmt.Sprintf("%s (head %s) with %s wing and %s hat", s.BodyKey, s.HeadKey, s.WingKey, s.HatKey)
}

// Resolver turns request parameters into a layer stack using a catalog.
type Resolver struct {
	catalog *Catalog
	logger  *slog.Logger
}

// NewResolver creates a resolver over the given catalog.
// A nil logger discards the validation log.
func NewResolver(c *Catalog, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{catalog: c, logger: logger}
}

// Catalog returns the catalog the resolver validates against.
func (r *Resolver) Catalog() *Catalog { return r.catalog }

// Select validates the parameters in order (body, head, hat, wing, sex)
// and returns the first failure.
func (r *Resolver) Select(p Params) (Selection, error) {
	var (
		sel Selection
		ok  bool
		err error
	)

	if p.Body == "" {
		return sel, ErrBodyNotSpecified
	}
	if sel.Body, ok = r.catalog.Body(p.Body); !ok {
		return sel, fmt.Errorf("%w: %q", ErrBodyNotFound, p.Body)
	}
	sel.BodyKey = p.Body

	if p.Head == "" {
		return sel, ErrHeadNotSpecified
	}
	if sel.Head, err = r.catalog.Lookup(CategoryHead, p.Head); err != nil {
		return sel, fmt.Errorf("%w: %q", err, p.Head)
	}
	sel.HeadKey = p.Head

	sel.HatKey = orNone(p.Hat)
	if sel.Hat, err = r.catalog.Lookup(CategoryHat, sel.HatKey); err != nil {
		return sel, fmt.Errorf("%w: %q", err, sel.HatKey)
	}

	sel.WingKey = orNone(p.Wing)
	if sel.Wing, err = r.catalog.Lookup(CategoryWing, sel.WingKey); err != nil {
		return sel, fmt.Errorf("%w: %q", err, sel.WingKey)
	}

	switch Sex(p.Sex) {
	case "":
		sel.Sex = Male
	case Male, Female:
		sel.Sex = Sex(p.Sex)
	default:
		return sel, fmt.Errorf("%w: %q", ErrInvalidSex, p.Sex)
	}

	return sel, nil
}

// Resolve validates the parameters and returns the layer stack to composite.
func (r *Resolver) Resolve(p Params) (LayerStack, error) {
	sel, err := r.Select(p)
	if err != nil {
		r.logger.Debug("Rejected sprite request", "body", p.Body, "head", p.Head,
			"hat", p.Hat, "wing", p.Wing, "sex", p.Sex, "error", err)
		return nil, err
	}

	stack := sel.Stack()
	r.logger.Debug("Resolved sprite request", "selection", sel.String(), "layers", len(stack))
	return stack, nil
}

func orNone(key string) string {
	if key == "" {
		return NoneKey
	}
	return key
}
