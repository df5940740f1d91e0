package kicadsexp

import (
	"fmt"
	"io"
)

// MaxDepth bounds list nesting. KiCad files stay well below it.
const MaxDepth = 256

// Parser builds expressions from a token stream. It is single use.
type Parser struct {
	lexer *Lexer
	tok   Token
	depth int
}

// NewParser reads tokens from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// ParseAll reads every top-level expression until EOF.
func (p *Parser) ParseAll() ([]Sexp, error) {
	var out []Sexp
	for {
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Type == TokenEOF {
			return out, nil
		}
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
}

func (p *Parser) next() (err error) {
	p.tok, err = p.lexer.NextToken()
	return err
}

func (p *Parser) fail(format string, args ...any) error {
	return &SyntaxError{Line: p.tok.Line, Col: p.tok.Col, Msg: fmt.Sprintf(format, args...)}
}

// expr converts the current token, reading on through a list.
func (p *Parser) expr() (Sexp, error) {
	switch p.tok.Type {
	case TokenSymbol:
		return Symbol(p.tok.Value), nil
	case TokenString:
		return Quoted(p.tok.Value), nil
	case TokenLeftParen:
		return p.list()
	case TokenRightParen:
		return nil, p.fail("unexpected ')'")
	}
	return nil, p.fail("unexpected EOF")
}

func (p *Parser) list() (Sexp, error) {
	if p.depth++; p.depth > MaxDepth {
		return nil, p.fail("lists nested deeper than %d", MaxDepth)
	}
	defer func() { p.depth-- }()

	l := &List{}
	for {
		if err := p.next(); err != nil {
			return nil, err
		}
		switch p.tok.Type {
		case TokenRightParen:
			return l, nil
		case TokenEOF:
			return nil, p.fail("unexpected EOF in list")
		}
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		l.elements = append(l.elements, e)
	}
}
