package syntax

import "strconv"

// Position locates a span of source text. Offset, Line and Column are
// carried on every token and every AST node so that later passes (and the
// executor) can report diagnostics without re-scanning the source.
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // line number, 1-based
	Column int // column number, 1-based, in bytes
	Length int // byte length of the span
}

// End returns the offset immediately after the span.
func (p Position) End() int { return p.Offset + p.Length }

// IsValid reports whether p was ever set by the lexer or parser.
func (p Position) IsValid() bool { return p.Line > 0 }

// String renders "line:column", the form used in rendered diagnostics.
func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}
