package bsdl

import "strings"

// BSDLFile is a parsed BSDL document: one entity.
type BSDLFile struct {
	Entity *Entity `@@`
}

// Entity is `entity NAME is ... end NAME;`.
type Entity struct {
	Name    string         `KwEntity @Ident KwIs`
	Generic *GenericClause `@@?`
	Port    *PortClause    `@@?`
	Decls   []*EntityDecl  `@@*`
	EndName string         `KwEnd ( KwEntity )? @Ident? Semicolon`
}

// EntityDecl is a use clause or an attribute.
type EntityDecl struct {
	UseClause *UseClause `  @@`
	Attribute *Attribute `| @@`
}

// GetUseClause returns the first use clause, or nil.
func (e *Entity) GetUseClause() *UseClause {
	for _, decl := range e.Decls {
		if decl.UseClause != nil {
			return decl.UseClause
		}
	}
	return nil
}

// GetAttributes returns the attribute and constant declarations in order.
func (e *Entity) GetAttributes() []*Attribute {
	var attrs []*Attribute
	for _, decl := range e.Decls {
		if decl.Attribute != nil {
			attrs = append(attrs, decl.Attribute)
		}
	}
	return attrs
}

// GenericClause holds the entity generics, normally just
// PHYSICAL_PIN_MAP.
type GenericClause struct {
	Generics []*Generic `KwGeneric LParen ( @@ ( Semicolon @@ )* )? RParen Semicolon`
}

// Generic is `NAME : type [:= default]`.
type Generic struct {
	Name         string  `@Ident`
	Type         string  `Colon @( Ident | KwString | KwInteger | KwReal | KwBoolean )`
	DefaultValue *String `( Assign @@ )?`
}

// PortClause lists the device signals.
type PortClause struct {
	Ports []*Port `KwPort LParen ( @@ ( Semicolon @@ )* Semicolon? )? RParen Semicolon`
}

// Port declares one or more signals sharing a mode and type, e.g.
// `TDI, TMS : in bit` or `D : inout bit_vector (0 to 7)`.
type Port struct {
	Names []string  `@Ident ( Comma @Ident )*`
	Mode  string    `Colon @( KwIn | KwOut | KwInout | KwBuffer | KwLinkage )`
	Type  *PortType `@@`
}

// Name returns the first declared name.
func (p *Port) Name() string {
	if len(p.Names) == 0 {
		return ""
	}
	return p.Names[0]
}

// PortType is bit, bit_vector with a range, or string.
type PortType struct {
	Name  string     `@( KwBit | KwBitVector | KwString )`
	Range *RangeSpec `@@?`
}

// IsVector reports a bit_vector port.
func (t *PortType) IsVector() bool {
	return t != nil && t.Range != nil && strings.EqualFold(t.Name, "bit_vector")
}

// RangeSpec is `(a to b)` or `(a downto b)`.
type RangeSpec struct {
	Start     int    `LParen @Integer`
	Direction string `@Ident`
	End       int    `@Integer RParen`
}

// Indices returns the element indices in declaration order.
func (r *RangeSpec) Indices() []int {
	step := 1
	if r.End < r.Start {
		step = -1
	}
	var out []int
	for i := r.Start; ; i += step {
		out = append(out, i)
		if i == r.End {
			break
		}
	}
	return out
}

// UseClause is `use PACKAGE.all;`.
type UseClause struct {
	Package string `KwUse @Ident`
	Dot     string `Dot @( Ident | KwAll ) Semicolon`
}

// Attribute is a constant declaration or an attribute specification.
type Attribute struct {
	Constant *ConstantAttribute `  @@`
	Spec     *AttributeSpec     `| @@`
}

// ConstantAttribute is `constant NAME : TYPE := value;`, used for
// PIN_MAP_STRING tables.
type ConstantAttribute struct {
	Name  string      `KwConstant @Ident`
	Type  string      `Colon @Ident`
	Value *Expression `Assign @@ Semicolon`
}

// AttributeSpec is `attribute NAME of TARGET : class is value;`.
type AttributeSpec struct {
	Name       string      `KwAttribute @Ident`
	Of         string      `KwOf @Ident`
	EntityType string      `Colon @( Ident | KwEntity | "signal" | KwConstant )`
	Is         *Expression `KwIs @@ Semicolon`
}

// Expression is one or more terms joined by &.
type Expression struct {
	Terms []*ExpressionTerm `@@ ( Concat @@ )*`
}

// ExpressionTerm is a single literal, identifier or tuple.
type ExpressionTerm struct {
	String  *String  `  @@`
	Integer *int     `| @Integer`
	Real    *float64 `| @Real`
	Ident   *string  `| @Ident`
	Tuple   *Tuple   `| @@`
	Boolean *bool    `| ( @KwTrue | KwFalse )`
}

// Tuple is a parenthesized list such as (10.0e6, BOTH).
type Tuple struct {
	Values []*Expression `LParen @@ ( Comma @@ )* RParen`
}

// String is a quoted literal.
type String struct {
	Value string `@String`
}

// GetValue returns the literal without quotes.
func (s *String) GetValue() string {
	if len(s.Value) >= 2 && s.Value[0] == '"' && s.Value[len(s.Value)-1] == '"' {
		return s.Value[1 : len(s.Value)-1]
	}
	return s.Value
}

// GetConcatenatedString joins the string terms of e.
func (e *Expression) GetConcatenatedString() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	for _, term := range e.Terms {
		if term.String != nil {
			b.WriteString(term.String.GetValue())
		}
	}
	return b.String()
}

// GetInteger returns the value of a single-integer expression.
func (e *Expression) GetInteger() (int, bool) {
	if e != nil && len(e.Terms) == 1 && e.Terms[0].Integer != nil {
		return *e.Terms[0].Integer, true
	}
	return 0, false
}
