package syntax

import (
	"regexp"

	"rashparse.dev/rash/token"
)

// Lexer is a single-threaded, synchronous state machine over a byte
// buffer with a mutable cursor (spec §4.2). There is no concurrency
// inside it: one call to Tokenize owns the buffer for its duration.
type Lexer struct {
	src  []byte
	pos  int
	line int
	col  int

	cfg LexerConfig

	tokens []Token
	errs   []*LexError

	// pendingErr carries a precise diagnostic (unclosed quote/expansion)
	// up from a recognizer that had to consume to EOF to discover the
	// failure, so next()'s generic "unexpected character" fallback can
	// report the real cause instead of whatever byte the cursor landed on.
	pendingErr *LexError

	pendingHeredocs []pendingHeredoc
	heredocBodies   []HeredocBody

	// awaitingDelim is set right after a << or <<- token, so the very
	// next word token is consumed as the heredoc delimiter rather than
	// ordinary shell syntax (spec §4.5's heredoc redirection form).
	awaitingDelim     bool
	awaitingStripTabs bool

	recognizers []recognizer
}

// pendingHeredoc is a heredoc redirection seen on the current line, still
// awaiting its body.
type pendingHeredoc struct {
	delim     string
	quoted    bool
	stripTabs bool
}

// HeredocBody is one heredoc body collected while skipping raw source
// lines during lexing, in the left-to-right order its introducing
// redirection appeared. The heredoc collector (heredoc.go) pairs these
// with Redirect AST nodes after parsing.
type HeredocBody struct {
	Content string
	Quoted  bool
}

// recognizer is one entry in the lexer's prioritized dispatch list (spec
// §4.2.2): given the lexer positioned at the start of a token, try to
// consume one. Returns ok=false, leaving the cursor untouched, if this
// recognizer does not apply here.
type recognizer func(lx *Lexer) (Token, bool)

// NewLexer constructs a Lexer over src using cfg. Recognizers are wired in
// priority order: process substitution and operators before expansions,
// extglob before the generic word/quote scanner.
func NewLexer(src []byte, cfg LexerConfig) *Lexer {
	lx := &Lexer{src: src, line: 1, col: 1, cfg: cfg}
	lx.recognizers = []recognizer{
		recognizeProcessSubstitution,
		recognizeOperator,
		recognizeExpansion,
		recognizeExtGlob,
		recognizeWordOrString,
	}
	return lx
}

// Tokenize runs the lexer to completion, per spec §4.2's
// tokenize(text, strict, shell_options) -> Token[] contract. The returned
// slice always ends with an EOF token. In strict mode the first LexError
// aborts and is returned; in recoverable mode a synthetic ILLEGAL token is
// emitted at the failure point and scanning resumes.
func Tokenize(src []byte, cfg LexerConfig) ([]Token, []HeredocBody, error) {
	lx := NewLexer(src, cfg)
	if err := lx.run(); err != nil {
		return lx.tokens, lx.heredocBodies, err
	}
	return lx.tokens, lx.heredocBodies, nil
}

// run tokenizes to completion, recording recoverable errors on lx.errs.
// In strict mode it stops and returns the first error; in recoverable
// mode it presses on, leaving diagnostics for lx.Errors().
func (lx *Lexer) run() error {
	for {
		tok, err := lx.next()
		if err != nil {
			if lx.cfg.Strict {
				return err
			}
			lx.errs = append(lx.errs, err)
			tok = newToken(token.ILLEGAL, "", err.Pos)
		}
		lx.tokens = append(lx.tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// Errors returns every LexError collected in recoverable mode.
func (lx *Lexer) Errors() []*LexError { return lx.errs }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool { return isIdentStart(b) || isDigit(b) }

// wordBreak reports whether b terminates a word when found unquoted
// (spec §4.2.3).
func wordBreak(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', ';', '&', '>', '<', '|', '(', ')':
		return true
	}
	return false
}

func (lx *Lexer) at(i int) byte {
	if i >= len(lx.src) {
		return 0
	}
	return lx.src[i]
}

func (lx *Lexer) cur() byte  { return lx.at(lx.pos) }
func (lx *Lexer) eof() bool  { return lx.pos >= len(lx.src) }
func (lx *Lexer) peek(n int) byte { return lx.at(lx.pos + n) }

// consume advances n raw bytes, keeping line/column in sync.
func (lx *Lexer) consume(n int) {
	for i := 0; i < n && lx.pos < len(lx.src); i++ {
		if lx.src[lx.pos] == '\n' {
			lx.line++
			lx.col = 1
		} else {
			lx.col++
		}
		lx.pos++
	}
}

func (lx *Lexer) here() Position {
	return Position{Offset: lx.pos, Line: lx.line, Column: lx.col}
}

func spanFrom(start Position, end int) Position {
	start.Length = end - start.Offset
	return start
}

// next produces the single next token, skipping whitespace/comments and
// running the heredoc body skip when a newline is crossed with pending
// heredocs.
func (lx *Lexer) next() (Token, *LexError) {
	spaced := lx.skipSpaceAndComments()
	if lx.eof() {
		t := newToken(token.EOF, "", lx.here())
		t.Spaced = spaced
		return t, nil
	}
	start := lx.here()
	if lx.cur() == '\n' {
		lx.consume(1)
		t := newToken(token.NEWLINE, "\n", spanFrom(start, lx.pos))
		t.Spaced = spaced
		if err := lx.afterNewline(); err != nil {
			return t, err
		}
		return t, nil
	}
	for _, r := range lx.recognizers {
		if tok, ok := r(lx); ok {
			tok.Position = spanFrom(start, lx.pos)
			tok.Spaced = spaced
			lx.noteHeredocOperator(tok)
			lx.consumeHeredocDelimIfAwaited(&tok)
			return tok, nil
		}
	}
	if lx.pendingErr != nil {
		err := lx.pendingErr
		lx.pendingErr = nil
		return Token{}, err
	}
	// Nothing recognized: unexpected byte (e.g. a stray quote mismatch).
	b := lx.cur()
	lx.consume(1)
	return Token{}, &LexError{Kind: UnexpectedChar, Pos: start, Message: "unexpected character " + string(b)}
}

// skipSpaceAndComments consumes spaces, tabs, CR, and backslash-newline
// continuations. It returns whether anything was skipped. Comments are
// only recognized here, which is precisely "at a word boundary" per
// spec §4.2.2: Next always begins a call at a token boundary.
func (lx *Lexer) skipSpaceAndComments() bool {
	spaced := false
	for {
		switch lx.cur() {
		case ' ', '\t', '\r':
			lx.consume(1)
			spaced = true
			continue
		case '\\':
			if lx.peek(1) == '\n' {
				lx.consume(2)
				spaced = true
				continue
			}
		case '#':
			for !lx.eof() && lx.cur() != '\n' {
				lx.consume(1)
			}
			spaced = true
			continue
		}
		return spaced
	}
}

// noteHeredocOperator arms awaitingDelim when tok is a << or <<- operator,
// so the following word is captured as the delimiter instead of being
// parsed as ordinary syntax.
func (lx *Lexer) noteHeredocOperator(tok Token) {
	switch tok.Kind {
	case token.REDIR_HEREDOC:
		lx.awaitingDelim = true
		lx.awaitingStripTabs = false
	case token.REDIR_HEREDOC_S:
		lx.awaitingDelim = true
		lx.awaitingStripTabs = true
	}
}

// consumeHeredocDelimIfAwaited records tok as the delimiter for the most
// recently seen << / <<- operator, quoted per whether tok carried any
// quoting (spec §4.5.2: a quoted delimiter suppresses body expansion).
func (lx *Lexer) consumeHeredocDelimIfAwaited(tok *Token) {
	if !lx.awaitingDelim {
		return
	}
	switch tok.Kind {
	case token.WORD, token.STRING:
	default:
		return
	}
	lx.awaitingDelim = false
	delim := tok.Lexeme
	if tok.QuoteType != QuoteNone || len(tok.Parts) > 0 {
		delim = unquoteDelimiter(*tok)
	}
	lx.pendingHeredocs = append(lx.pendingHeredocs, pendingHeredoc{
		delim:     delim,
		quoted:    tok.QuoteType != QuoteNone,
		stripTabs: lx.awaitingStripTabs,
	})
}

// unquoteDelimiter reassembles a heredoc delimiter's literal text from its
// parts, since the comparison against body lines is always unquoted.
func unquoteDelimiter(tok Token) string {
	if len(tok.Parts) == 0 {
		return tok.Lexeme
	}
	var b []byte
	for _, p := range tok.Parts {
		b = append(b, p.Value...)
	}
	return string(b)
}

// afterNewline skips heredoc bodies pending from redirections introduced
// on the line just ended. This keeps the raw body bytes from being
// mis-tokenized as shell syntax; CollectHeredocs later pairs the
// collected bodies with their Redirect nodes in the same order.
func (lx *Lexer) afterNewline() *LexError {
	if len(lx.pendingHeredocs) == 0 {
		return nil
	}
	pending := lx.pendingHeredocs
	lx.pendingHeredocs = nil
	for _, hd := range pending {
		content, ok := lx.collectHeredocBody(hd)
		if !ok {
			return &LexError{Kind: UnclosedQuote, Pos: lx.here(), Message: "heredoc " + hd.delim + " not terminated"}
		}
		lx.heredocBodies = append(lx.heredocBodies, HeredocBody{Content: content, Quoted: hd.quoted})
	}
	return nil
}

func (lx *Lexer) collectHeredocBody(hd pendingHeredoc) (string, bool) {
	var body []byte
	for {
		lineStart := lx.pos
		for !lx.eof() && lx.src[lx.pos] != '\n' {
			lx.pos++
		}
		line := lx.src[lineStart:lx.pos]
		check := line
		if hd.stripTabs {
			i := 0
			for i < len(check) && check[i] == '\t' {
				i++
			}
			check = check[i:]
		}
		hasNL := !lx.eof()
		if hasNL {
			lx.pos++ // consume the newline
		}
		lx.line++
		lx.col = 1
		if string(check) == hd.delim {
			return string(body), true
		}
		body = append(body, check...)
		if hasNL {
			body = append(body, '\n')
		}
		if !hasNL {
			return string(body), false
		}
	}
}

var extGlobRe = regexp.MustCompile(`^[?*+@!]\(.*\)$`)

// isExtGlob reports whether lexeme is a complete extglob atom, used by the
// parser when building Word parts from a WORD token.
func isExtGlob(lexeme string) bool { return extGlobRe.MatchString(lexeme) }
