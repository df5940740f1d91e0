// Package designator parses IPC-7351 style package names such as
// LQFP-48_7x7mm_P0.5mm or QFN-32-1EP_5x5mm_P0.5mm_EP3.1x3.1mm.
package designator

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var nameLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[0-9]+(?:\.[0-9]+)?`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Underscore", Pattern: `_`},
	{Name: "Ident", Pattern: `[A-Za-z]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// designator is the parse tree of a package name.
type designator struct {
	Family   string   `@Ident`
	Pins     int      `Dash @Number`
	Exposed  *int     `( Dash @Number "EP" )?`
	Body     *dims    `Underscore @@`
	Pitch    float64  `Underscore "P" @Number "mm"?`
	EP       *dims    `( Underscore "EP" @@ )?`
	Suffixes []string `( Underscore @Ident )*`
}

// dims is WxL[xH][mm].
type dims struct {
	W float64  `@Number "x"`
	L float64  `@Number`
	H *float64 `( "x" @Number )? "mm"?`
}

var parser = participle.MustBuild[designator](
	participle.Lexer(nameLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
