package syntax

import (
	"fmt"
	"strings"
)

// LexErrorKind closes the set of ways the lexer can fail.
type LexErrorKind int

const (
	UnclosedQuote LexErrorKind = iota
	UnclosedExpansion
	UnmatchedBracket
	InvalidEscape
	UnexpectedChar
)

func (k LexErrorKind) String() string {
	switch k {
	case UnclosedQuote:
		return "unclosed quote"
	case UnclosedExpansion:
		return "unclosed expansion"
	case UnmatchedBracket:
		return "unmatched bracket"
	case InvalidEscape:
		return "invalid escape"
	case UnexpectedChar:
		return "unexpected character"
	default:
		return "lexer error"
	}
}

// LexError is raised by the lexer. In strict mode the first one aborts
// tokenize; in recoverable mode it is attached to a synthetic ILLEGAL
// token and scanning resumes at the next plausible boundary.
type LexError struct {
	Kind     LexErrorKind
	Pos      Position
	Message  string
	Expected string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// ParseErrorKind closes the set of ways the parser can fail.
type ParseErrorKind int

const (
	ExpectedToken ParseErrorKind = iota
	UnexpectedToken
	IncompleteConstruct
	InvalidRedirection
	InvalidAssignment
	ControlOutsideLoop
)

// ParseError carries everything needed to render a one-line diagnostic and,
// for the completeness probe, to decide whether the buffer merely needs
// more input.
type ParseError struct {
	Kind       ParseErrorKind
	Token      Token
	Expected   []string // e.g. ["then", "do"], consulted by the completeness probe
	Message    string
	Pos        Position
	SourceLine string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// ExpectsAny reports whether any of the given keyword/operator spellings
// appear in the error's Expected set.
func (e *ParseError) ExpectsAny(spellings ...string) bool {
	for _, want := range e.Expected {
		for _, s := range spellings {
			if want == s {
				return true
			}
		}
	}
	return false
}

// Severity classifies a rendered diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityFatal
)

func (s Severity) String() string {
	if s == SeverityFatal {
		return "fatal"
	}
	return "error"
}

// Diagnostic is the rendering-ready form of any front-end error, the shape
// described in spec §6/§7: severity, message, position, optional source
// line and suggestions.
type Diagnostic struct {
	Severity    Severity
	Message     string
	Pos         Position
	SourceLine  string
	Suggestions []string
}

// Render produces "path:line:column: message", appending the source line
// and a caret when available.
func (d Diagnostic) Render(path string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d: %s", path, d.Pos.Line, d.Pos.Column, d.Message)
	if d.SourceLine != "" {
		b.WriteByte('\n')
		b.WriteString(d.SourceLine)
		b.WriteByte('\n')
		if d.Pos.Column > 0 {
			b.WriteString(strings.Repeat(" ", d.Pos.Column-1))
		}
		b.WriteByte('^')
	}
	return b.String()
}

func fromLexError(e *LexError) Diagnostic {
	return Diagnostic{Severity: SeverityError, Message: e.Kind.String() + ": " + e.Message, Pos: e.Pos}
}

func fromParseError(e *ParseError) Diagnostic {
	return Diagnostic{Severity: SeverityError, Message: e.Message, Pos: e.Pos, SourceLine: e.SourceLine}
}

// BraceExpansionError is returned by Expand when an expansion would exceed
// the configured item limit.
type BraceExpansionError struct {
	Limit int
}

func (e *BraceExpansionError) Error() string {
	return fmt.Sprintf("brace expansion exceeds item limit of %d", e.Limit)
}

// UnterminatedHeredocError is returned by the heredoc collector when the
// input stream ends before a delimiter is seen.
type UnterminatedHeredocError struct {
	Delim string
	Pos   Position
}

func (e *UnterminatedHeredocError) Error() string {
	return fmt.Sprintf("%s: heredoc at %s not terminated (want %q)", e.Pos, e.Delim, e.Delim)
}
