package symbol

import "github.com/Ka-zam/KiForge/pkg/part"

// Class is the layout role of a pin on a single-unit symbol.
type Class int

const (
	ClassGround Class = iota
	ClassSupply
	ClassInput
	ClassOutput
	ClassBidirectional
	ClassNoConnect
	ClassOther
)

func (c Class) String() string {
	switch c {
	case ClassGround:
		return "ground"
	case ClassSupply:
		return "supply"
	case ClassInput:
		return "input"
	case ClassOutput:
		return "output"
	case ClassBidirectional:
		return "bidirectional"
	case ClassNoConnect:
		return "no_connect"
	}
	return "other"
}

// Classifier assigns layout roles. Name tables are checked before the
// electrical type, ground first.
type Classifier struct {
	Ground part.PatternTable
	Supply part.PatternTable
}

// DefaultClassifier uses the part package's ground and supply tables.
func DefaultClassifier() Classifier {
	return Classifier{Ground: part.GroundPatterns, Supply: part.SupplyPatterns}
}

// Classify returns the role of p.
func (c Classifier) Classify(p part.Pin) Class {
	switch {
	case c.Ground.Match(p.Name):
		return ClassGround
	case c.Supply.Match(p.Name):
		return ClassSupply
	}
	switch p.Type {
	case part.Input:
		return ClassInput
	case part.Output:
		return ClassOutput
	case part.Bidirectional:
		return ClassBidirectional
	case part.NoConnect:
		return ClassNoConnect
	}
	return ClassOther
}
