package symbol

import (
	"fmt"
	"time"

	"github.com/Ka-zam/KiForge/pkg/part"
)

// Option configures layout and serialisation.
type Option func(*options)

type options struct {
	classifier Classifier
	library    string
	now        func() time.Time
}

// WithClassifier replaces the ground and supply name tables.
func WithClassifier(c Classifier) Option {
	return func(o *options) { o.classifier = c }
}

// WithFootprintLibrary sets the library nickname of the Footprint property.
func WithFootprintLibrary(lib string) Option {
	return func(o *options) { o.library = lib }
}

// WithClock sets the clock used for the generator_version stamp.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{
		classifier: DefaultClassifier(),
		library:    part.DefaultLibrary,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func checkComponent(c *part.Component) error {
	if c == nil {
		return fmt.Errorf("symbol: %w", part.ErrEmptyField)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("symbol %q: %w", c.Name, err)
	}
	return nil
}

// Generate lays out c and returns the symbol library text. Nothing is
// returned when c fails validation.
func Generate(c *part.Component, opts ...Option) (string, error) {
	if err := checkComponent(c); err != nil {
		return "", err
	}
	o := buildOptions(opts)
	return serialize(c, layout(c, o), o), nil
}

// Generator keeps the layout of its last run so callers can inspect pin
// placement. It is not safe for concurrent use.
type Generator struct {
	component *part.Component
	opts      []Option
	layouts   []UnitLayout
}

// NewGenerator validates c.
func NewGenerator(c *part.Component, opts ...Option) (*Generator, error) {
	if err := checkComponent(c); err != nil {
		return nil, err
	}
	return &Generator{component: c, opts: opts}, nil
}

// LayoutPins recomputes the layout, replacing any previous one.
func (g *Generator) LayoutPins() error {
	layouts, err := Layout(g.component, g.opts...)
	if err != nil {
		return err
	}
	g.layouts = layouts
	return nil
}

// Layouts returns the layout of the last run.
func (g *Generator) Layouts() []UnitLayout { return g.layouts }

// Generate lays out the pins and returns the library text.
func (g *Generator) Generate() (string, error) {
	if err := g.LayoutPins(); err != nil {
		return "", err
	}
	o := buildOptions(g.opts)
	return serialize(g.component, g.layouts, o), nil
}
