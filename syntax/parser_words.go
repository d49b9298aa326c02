package syntax

import (
	"strings"

	"rashparse.dev/rash/token"
)

// buildWord converts a lexer Token's Parts into the AST's WordPart chain,
// recursively parsing any nested command/process substitution bodies.
func (p *Parser) buildWord(tok Token) Word {
	if len(tok.Parts) == 0 {
		part := p.barePart(tok)
		return Word{
			Parts:     []WordPart{part},
			QuoteType: tok.QuoteType,
			Span:      tok.Position,
		}
	}
	parts := make([]WordPart, 0, len(tok.Parts))
	for _, tp := range tok.Parts {
		parts = append(parts, p.partToWordPart(tp))
	}
	return Word{Parts: parts, QuoteType: tok.QuoteType, Span: tok.Position}
}

// barePart builds the single WordPart for a token the lexer emitted whole
// rather than as a composite run of TokenParts: a bare $var, $(...),
// ${...}, $((...)), `...`, or <(...)/>(...) sitting alone as its own word
// (spec §4.2.6's expansion forms, each recognized ahead of the generic
// word scanner when nothing else abuts it).
func (p *Parser) barePart(tok Token) WordPart {
	switch tok.Kind {
	case token.VARIABLE:
		return p.variablePart(tok.Lexeme, tok.Position)
	case token.PARAM_EXP, token.ARITHM_EXP, token.CMD_SUB, token.BACKTICK,
		token.PROC_SUB_IN, token.PROC_SUB_OUT:
		return p.expansionPart(tok.Lexeme, tok.Position)
	default:
		return &Lit{Value: tok.Lexeme, Span: tok.Position}
	}
}

func (p *Parser) partToWordPart(tp TokenPart) WordPart {
	switch tp.Kind {
	case PartLiteral:
		return &Lit{Value: tp.Value, Span: tp.Pos}
	case PartVariable:
		return p.variablePart(tp.Value, tp.Pos)
	default:
		return p.expansionPart(tp.Value, tp.Pos)
	}
}

func (p *Parser) variablePart(val string, pos Position) *Variable {
	name := val[1:]
	special := len(name) == 1 && (isDigit(name[0]) || specialParam(name[0]))
	return &Variable{Name: name, Special: special, Span: pos}
}

func (p *Parser) expansionPart(val string, pos Position) WordPart {
	switch {
	case strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}"):
		return &ParamExpansion{Body: val[2 : len(val)-1], Span: pos}
	case strings.HasPrefix(val, "$((") && strings.HasSuffix(val, "))"):
		return &ArithmeticExpansion{Expr: val[3 : len(val)-2], Span: pos}
	case strings.HasPrefix(val, "$(") && strings.HasSuffix(val, ")"):
		return &CommandSubst{Body: p.parseNested(val[2:len(val)-1]), Span: pos}
	case len(val) >= 2 && val[0] == '`' && val[len(val)-1] == '`':
		return &CommandSubst{Backtick: true, Body: p.parseNested(unescapeBacktick(val[1 : len(val)-1])), Span: pos}
	case len(val) >= 3 && (val[0] == '<' || val[0] == '>') && val[1] == '(':
		return &ProcessSubstitution{Out: val[0] == '>', Body: p.parseNested(val[2 : len(val)-1]), Span: pos}
	case isExtGlob(val):
		return &ExtGlobPart{Op: val[0], Pattern: val[2 : len(val)-1], Span: pos}
	default:
		return &Lit{Value: val, Span: pos}
	}
}

func unescapeBacktick(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			n := s[i+1]
			if n == '$' || n == '\\' || n == '`' {
				b.WriteByte(n)
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// parseNested tokenizes, normalizes and parses text as a nested command
// list, used for $(...), `...`, and <(...)/>(...) bodies. Recursion is
// capped by the lexer's configured expansion depth (spec §8).
func (p *Parser) parseNested(text string) *StatementList {
	if p.nestDepth >= p.cfg.Lexer.maxDepth() {
		p.errorf(IncompleteConstruct, nil, "expansion nested too deeply")
		return &StatementList{}
	}
	toks, _, lexErr := Tokenize([]byte(text), p.cfg.Lexer)
	if lexErr != nil {
		pe := &ParseError{Kind: IncompleteConstruct, Message: lexErr.Error()}
		if le, ok := lexErr.(*LexError); ok {
			pe.Pos = le.Pos
		}
		p.errs = append(p.errs, pe)
		return &StatementList{}
	}
	toks = Normalize(toks)
	sub := NewParser(toks, p.cfg)
	sub.nestDepth = p.nestDepth + 1
	sub.loopDepth = p.loopDepth
	body := parseNestedBody(sub)
	p.errs = append(p.errs, sub.errs...)
	return body
}

func parseNestedBody(sub *Parser) (body *StatementList) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseAbort); ok {
				body = &StatementList{}
				return
			}
			panic(r)
		}
	}()
	return sub.statementList()
}

// assignPrefix recognizes the NAME=, NAME+=, NAME[idx]= and NAME[idx]+=
// prefixes of a leading assignment word (spec §4.4.2). Only the common,
// unquoted-name case is handled; a quoted or composite name is left as
// an ordinary command word.
func assignPrefix(tok Token) (name string, index *Word, appendOp bool, eqPos int, ok bool) {
	s := tok.Lexeme
	if len(s) == 0 || !isIdentStart(s[0]) {
		return "", nil, false, 0, false
	}
	i := 1
	for i < len(s) && isIdentCont(s[i]) {
		i++
	}
	nameEnd := i
	var idx *Word
	if i < len(s) && s[i] == '[' {
		depth := 1
		j := i + 1
		for j < len(s) && depth > 0 {
			switch s[j] {
			case '[':
				depth++
			case ']':
				depth--
			}
			j++
		}
		if depth != 0 {
			return "", nil, false, 0, false
		}
		text := s[i+1 : j-1]
		idx = &Word{Parts: []WordPart{&Lit{Value: text}}}
		i = j
	}
	app := false
	if i < len(s) && s[i] == '+' {
		app = true
		i++
	}
	if i >= len(s) || s[i] != '=' {
		return "", nil, false, 0, false
	}
	return s[:nameEnd], idx, app, i, true
}

// valueWordFrom builds the Word for the value half of tok, which spans
// tok.Lexeme[eqPos+1:]; any expansion parts of tok beginning at or after
// that offset are carried over, literals are re-sliced from the raw text.
func (p *Parser) valueWordFrom(tok Token, eqPos int) Word {
	remainder := tok.Lexeme[eqPos+1:]
	threshold := tok.Position.Offset + eqPos + 1
	var parts []WordPart
	for _, tp := range tok.Parts {
		if tp.Pos.Offset >= threshold {
			parts = append(parts, p.partToWordPart(tp))
		}
	}
	span := Position{Offset: threshold, Line: tok.Position.Line, Length: len(remainder)}
	if len(parts) == 0 && remainder != "" {
		parts = []WordPart{&Lit{Value: remainder, Span: span}}
	}
	return Word{Parts: parts, QuoteType: tok.QuoteType, Span: span}
}

// --- redirects ---

func isRedirKind(k token.Kind) bool {
	switch k {
	case token.REDIR_IN, token.REDIR_OUT, token.REDIR_APPEND, token.REDIR_CLOBBER,
		token.REDIR_RDWR, token.REDIR_DUP_IN, token.REDIR_DUP_OUT, token.REDIR_ERR_OUT,
		token.REDIR_ERR_APP, token.REDIR_HERESTR, token.REDIR_HEREDOC, token.REDIR_HEREDOC_S:
		return true
	}
	return false
}

func (p *Parser) tryRedirect() *Redirect {
	if !isRedirKind(p.cur().Kind) {
		return nil
	}
	opTok := p.advance()
	r := &Redirect{OpPos: opTok.Position, Op: opTok.Kind, FD: opTok.FD, DupFD: -1}
	if !p.atWordStart() {
		p.errorf(InvalidRedirection, nil, "expected word after redirection operator")
		r.Span = spanTo(opTok.Position, p.prevEnd())
		return r
	}
	wtok := p.advance()
	r.Word = p.buildWord(wtok)
	if opTok.Kind == token.REDIR_DUP_IN || opTok.Kind == token.REDIR_DUP_OUT {
		if n, ok := parseFD(wtok.Lexeme); ok {
			r.DupFD = n
		}
	}
	r.Span = spanTo(opTok.Position, p.prevEnd())
	return r
}

func (p *Parser) redirectList() []*Redirect {
	var out []*Redirect
	for {
		r := p.tryRedirect()
		if r == nil {
			return out
		}
		out = append(out, r)
	}
}

func parseFD(s string) (int, bool) {
	if s == "-" {
		return -1, true
	}
	if len(s) == 0 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}

// --- simple commands ---

func (p *Parser) wordListUntil(stop token.Kind) []Word {
	var words []Word
	p.skipNewlines()
	for !p.at(stop) && !p.at(token.EOF) {
		if !p.atWordStart() {
			break
		}
		words = append(words, p.buildWord(p.advance()))
		p.skipNewlines()
	}
	return words
}

func (p *Parser) simpleCommand() Command {
	start := p.here()
	sc := &SimpleCommand{}

	for p.at(token.WORD) {
		tok := p.cur()
		if tok.QuoteType != QuoteNone {
			break
		}
		name, idx, app, eqPos, ok := assignPrefix(tok)
		if !ok {
			break
		}
		p.advance()
		valStr := tok.Lexeme[eqPos+1:]
		switch {
		case valStr == "" && p.at(token.LPAREN):
			if !p.cfg.Arrays {
				p.errorf(InvalidAssignment, nil, "array assignment %s=(...) is not allowed in this mode", name)
				sc.Span = spanTo(start, p.prevEnd())
				return sc
			}
			p.advance()
			values := p.wordListUntil(token.RPAREN)
			p.expect(token.RPAREN, ")")
			sc.ArrayOps = append(sc.ArrayOps, &ArrayAssignment{
				Name: &Lit{Value: name}, Values: values, Append: app,
			})
		case idx != nil:
			sc.ArrayOps = append(sc.ArrayOps, &ArrayElementAssignment{
				Name: &Lit{Value: name}, Index: *idx, Value: p.valueWordFrom(tok, eqPos), Append: app,
			})
		default:
			sc.Assigns = append(sc.Assigns, &Assign{
				Name: &Lit{Value: name}, Value: p.valueWordFrom(tok, eqPos), Append: app,
			})
		}
	}

	for {
		if r := p.tryRedirect(); r != nil {
			sc.Redirs = append(sc.Redirs, r)
			continue
		}
		if p.atWordStart() {
			sc.Words = append(sc.Words, p.buildWord(p.advance()))
			continue
		}
		break
	}

	if len(sc.Words) == 0 && len(sc.Assigns) == 0 && len(sc.ArrayOps) == 0 && len(sc.Redirs) == 0 {
		return nil
	}
	sc.Span = spanTo(start, p.prevEnd())
	return sc
}
