package sexp

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Str is an argument written as a quoted, escaped string.
type Str string

// Num is an argument written in shortest form instead of the writer's
// fixed coordinate precision. Used for widths, font sizes and ratios.
type Num float64

// Expr is an inline sub-expression, written on the same line as its parent.
type Expr struct {
	Head string
	Args []any
}

// E builds an inline sub-expression.
func E(head string, args ...any) Expr {
	return Expr{Head: head, Args: args}
}

// Writer emits an indented S-expression document. Plain float64 arguments
// are written with the writer's fixed precision; see Str, Num and Expr for
// the other argument kinds.
type Writer struct {
	buf   strings.Builder
	depth int
	prec  int
}

// NewWriter creates a writer using prec decimal places for coordinates.
func NewWriter(prec int) *Writer {
	return &Writer{prec: prec}
}

// Open starts a multi-line list: "(head args..." followed by a newline.
// Every Open must be matched by Close.
func (w *Writer) Open(head string, args ...any) {
	w.indent()
	w.buf.WriteByte('(')
	w.buf.WriteString(head)
	w.args(args)
	w.buf.WriteByte('\n')
	w.depth++
}

// Close ends the innermost list opened with Open.
func (w *Writer) Close() {
	if w.depth == 0 {
		panic("sexp: Close without matching Open")
	}
	w.depth--
	w.indent()
	w.buf.WriteString(")\n")
}

// Node writes a complete single-line list.
func (w *Writer) Node(head string, args ...any) {
	w.indent()
	w.expr(Expr{Head: head, Args: args})
	w.buf.WriteByte('\n')
}

// Depth returns the number of currently open lists.
func (w *Writer) Depth() int {
	return w.depth
}

// String returns the document written so far.
func (w *Writer) String() string {
	return w.buf.String()
}

// WriteTo implements io.WriterTo.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	n, err := io.WriteString(out, w.buf.String())
	return int64(n), err
}

func (w *Writer) indent() {
	for i := 0; i < w.depth; i++ {
		w.buf.WriteString("  ")
	}
}

func (w *Writer) expr(e Expr) {
	w.buf.WriteByte('(')
	w.buf.WriteString(e.Head)
	w.args(e.Args)
	w.buf.WriteByte(')')
}

func (w *Writer) args(args []any) {
	for _, a := range args {
		w.buf.WriteByte(' ')
		w.atom(a)
	}
}

func (w *Writer) atom(a any) {
	switch v := a.(type) {
	case Expr:
		w.expr(v)
	case Str:
		w.buf.WriteString(Quote(string(v)))
	case Num:
		w.buf.WriteString(FormatNum(float64(v)))
	case float64:
		w.buf.WriteString(FormatFixed(v, w.prec))
	case int:
		w.buf.WriteString(strconv.Itoa(v))
	case string:
		w.buf.WriteString(v)
	case UUID:
		w.buf.WriteString(string(v))
	case bool:
		w.buf.WriteString(YesNo(v))
	case fmt.Stringer:
		w.buf.WriteString(v.String())
	default:
		panic(fmt.Sprintf("sexp: unsupported argument type %T", a))
	}
}
