package kicadsexp

import (
	"errors"
	"strings"
	"testing"
)

func TestParseNestedList(t *testing.T) {
	exprs, err := ParseString(`(pad "1" smd roundrect (at -4.25 -2.75) (layers "F.Cu" "F.Paste"))`)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(exprs) != 1 {
		t.Fatalf("Expected 1 expression, got %d", len(exprs))
	}

	root, ok := exprs[0].(*List)
	if !ok {
		t.Fatalf("Expected *List, got %T", exprs[0])
	}
	if root.Len() != 6 {
		t.Errorf("Expected 6 elements, got %d", root.Len())
	}
	if root.Get(0) != Symbol("pad") {
		t.Errorf("Expected head 'pad', got %v", root.Get(0))
	}
	if root.Get(1) != Quoted("1") {
		t.Errorf("Expected quoted \"1\", got %#v", root.Get(1))
	}
	if root.Get(2) != Symbol("smd") {
		t.Errorf("Expected bare smd, got %#v", root.Get(2))
	}

	at, ok := root.Get(4).(*List)
	if !ok || at.Len() != 3 {
		t.Fatalf("Expected (at x y), got %v", root.Get(4))
	}
	if at.Get(1) != Symbol("-4.25") {
		t.Errorf("Expected -4.25, got %v", at.Get(1))
	}
}

func TestParseEscapedString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`(name "A\"B")`, `A"B`},
		{`(name "back\\slash")`, `back\slash`},
		{`(name "line\nbreak")`, "line\nbreak"},
		{`(name "")`, ""},
	}

	for _, tt := range tests {
		exprs, err := ParseString(tt.input)
		if err != nil {
			t.Fatalf("Failed to parse %q: %v", tt.input, err)
		}
		got, _ := AtomValue(exprs[0].(*List).Get(1))
		if got != tt.want {
			t.Errorf("Parse(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestQuotedStringRoundTrip(t *testing.T) {
	q := Quoted(`say "hi"`)
	exprs, err := ParseString("(x " + q.String() + ")")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if got := exprs[0].(*List).Get(1); got != q {
		t.Errorf("Expected %q, got %q", q, got)
	}
}

func TestParseMultipleTopLevel(t *testing.T) {
	exprs, err := ParseString("(a 1)\n(b 2)\n")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(exprs) != 2 {
		t.Errorf("Expected 2 expressions, got %d", len(exprs))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unclosed list", "(footprint \"x\"\n  (layer \"F.Cu\")"},
		{"stray close", ")"},
		{"unterminated string", `(a "abc`},
		{"too deep", strings.Repeat("(", MaxDepth+1) + strings.Repeat(")", MaxDepth+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			var syn *SyntaxError
			if !errors.As(err, &syn) {
				t.Errorf("Expected *SyntaxError, got %T", err)
			}
		})
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := ParseString("(a\n  (b c)\n  ))")
	var syn *SyntaxError
	if !errors.As(err, &syn) {
		t.Fatalf("Expected *SyntaxError, got %v", err)
	}
	if syn.Line != 3 {
		t.Errorf("Expected error on line 3, got %d", syn.Line)
	}
}

func TestParseMaxDepth(t *testing.T) {
	in := strings.Repeat("(a ", MaxDepth) + strings.Repeat(")", MaxDepth)
	exprs, err := ParseString(in)
	if err != nil {
		t.Fatalf("Failed to parse %d levels: %v", MaxDepth, err)
	}
	if len(exprs) != 1 {
		t.Errorf("Expected 1 expression, got %d", len(exprs))
	}
}

func TestParseOne(t *testing.T) {
	root, err := ParseOne(strings.NewReader(`(kicad_symbol_lib (version 20241229))`))
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if root.Head() != Symbol("kicad_symbol_lib") {
		t.Errorf("Expected kicad_symbol_lib, got %v", root.Head())
	}

	if _, err := ParseOne(strings.NewReader("(a) (b)")); err == nil {
		t.Error("Expected error for two top-level expressions")
	}
	if _, err := ParseOne(strings.NewReader("atom")); err == nil {
		t.Error("Expected error for atom root")
	}
}

func TestListString(t *testing.T) {
	l := NewList(Symbol("at"), Symbol("1.0000"), Quoted("F.Cu"))
	if got := l.String(); got != `(at 1.0000 "F.Cu")` {
		t.Errorf("Unexpected String(): %s", got)
	}
	if l.Tail().LeafCount() != 2 {
		t.Errorf("Expected tail of length 2, got %d", l.Tail().LeafCount())
	}
}
