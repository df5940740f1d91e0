package footprint

import (
	"github.com/Ka-zam/KiForge/pkg/part"
)

// Generator wraps Generate for callers that compute pads before writing.
// It keeps the geometry of its last run and is not safe for concurrent use.
type Generator struct {
	params *part.FootprintParams
	family Family
	opts   []Option
	geom   Geometry
}

// NewGenerator picks the family for params.
func NewGenerator(params *part.FootprintParams, opts ...Option) (*Generator, error) {
	if params == nil || params.Package == nil {
		return nil, part.ErrEmptyField
	}
	fam, err := FamilyFor(params.Package.Type)
	if err != nil {
		return nil, err
	}
	return &Generator{params: params, family: fam, opts: opts}, nil
}

// Family returns the family in use.
func (g *Generator) Family() Family { return g.family }

// CalculatePads replaces the held geometry with the signal pads only.
func (g *Generator) CalculatePads() error {
	pads, err := g.family.Pads(g.params)
	if err != nil {
		return err
	}
	g.geom = Geometry{Pads: pads}
	return nil
}

// Pads returns the pads of the last run.
func (g *Generator) Pads() []Pad { return g.geom.Pads }

// Geometry returns the geometry of the last run.
func (g *Generator) Geometry() Geometry { return g.geom }

// Generate rebuilds the footprint from scratch and returns its text.
func (g *Generator) Generate() (string, error) {
	res, err := GenerateWith(g.family, g.params, g.opts...)
	if err != nil {
		return "", err
	}
	g.geom = res.Geometry
	return res.Text, nil
}
