// Package bsdl reads the parts of a Boundary Scan Description Language
// file that describe a device package: the entity's ports, the
// PHYSICAL_PIN_MAP generic, PIN_MAP_STRING constants and the IDCODE
// register attribute.
package bsdl

import (
	"fmt"
	"io"
	"sync"

	"github.com/alecthomas/participle/v2"
)

// grammar is built on first use and shared; participle parsers are safe
// for concurrent use.
var grammar = sync.OnceValues(func() (*participle.Parser[BSDLFile], error) {
	return participle.Build[BSDLFile](
		participle.Lexer(bsdlLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
})

// Parse reads one BSDL entity from r.
func Parse(r io.Reader) (*BSDLFile, error) {
	g, err := grammar()
	if err != nil {
		return nil, fmt.Errorf("bsdl: grammar: %w", err)
	}
	f, err := g.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("bsdl: %w", err)
	}
	return f, nil
}

// ParseString reads one BSDL entity from src.
func ParseString(src string) (*BSDLFile, error) {
	g, err := grammar()
	if err != nil {
		return nil, fmt.Errorf("bsdl: grammar: %w", err)
	}
	f, err := g.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("bsdl: %w", err)
	}
	return f, nil
}
