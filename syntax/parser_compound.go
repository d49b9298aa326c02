package syntax

import (
	"strings"

	"rashparse.dev/rash/token"
)

// parserMark is a cheap position/error snapshot, used for the one place
// this grammar needs backtracking: distinguishing a POSIX-style function
// definition ("name() body") from an ordinary command word followed by a
// subshell, which a fixed two-token lookahead cannot always rule out
// once the body itself starts failing to parse.
type parserMark struct {
	pos  int
	errs int
}

func (p *Parser) mark() parserMark { return parserMark{p.pos, len(p.errs)} }

func (p *Parser) reset(m parserMark) {
	p.pos = m.pos
	p.errs = p.errs[:m.errs]
}

func validIdentLit(s string) bool {
	if len(s) == 0 || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentCont(s[i]) {
			return false
		}
	}
	return true
}

// tryFunctionDef speculatively parses "name () body" (spec §4.4.4). It
// restores the parser entirely if the name/parens pattern isn't there, or
// if a body never materializes.
func (p *Parser) tryFunctionDef() *FunctionDef {
	if !p.at(token.WORD) || !validIdentLit(p.cur().Lexeme) {
		return nil
	}
	if p.peek(1).Kind != token.LPAREN || p.peek(2).Kind != token.RPAREN {
		return nil
	}
	m := p.mark()
	nameTok := p.advance()
	p.advance() // (
	p.advance() // )
	p.skipNewlines()
	body := p.command()
	if body == nil {
		p.reset(m)
		return nil
	}
	return &FunctionDef{
		Name: &Lit{Value: nameTok.Lexeme, Span: nameTok.Position},
		Body: body, Span: spanTo(nameTok.Position, p.prevEnd()),
	}
}

func (p *Parser) functionDefKeyword() Command {
	start := p.here()
	p.advance() // function
	nameTok := p.expect(token.WORD, "function name")
	if p.at(token.LPAREN) && p.peek(1).Kind == token.RPAREN {
		p.advance()
		p.advance()
	}
	p.skipNewlines()
	body := p.command()
	if body == nil {
		p.errorf(IncompleteConstruct, nil, "expected function body")
	}
	return &FunctionDef{
		Name: &Lit{Value: nameTok.Lexeme, Span: nameTok.Position},
		BashStyle: true, Body: body, Span: spanTo(start, p.prevEnd()),
	}
}

func (p *Parser) subshellGroup() Command {
	start := p.here()
	p.advance() // (
	body := p.statementList(token.RPAREN)
	p.expect(token.RPAREN, ")")
	return &SubshellGroup{Body: body, Redirs: p.redirectList(), Span: spanTo(start, p.prevEnd())}
}

func (p *Parser) braceGroup() Command {
	start := p.here()
	p.advance() // {
	body := p.statementList(token.RBRACE)
	p.expect(token.RBRACE, "}")
	return &BraceGroup{Body: body, Redirs: p.redirectList(), Span: spanTo(start, p.prevEnd())}
}

func (p *Parser) ifConditional() Command {
	start := p.here()
	p.advance() // if
	cond := p.statementList(token.KW_THEN)
	p.expect(token.KW_THEN, "then")
	then := p.statementList(token.KW_ELIF, token.KW_ELSE, token.KW_FI)
	ic := &IfConditional{Cond: cond, Then: then}
	for p.at(token.KW_ELIF) {
		estart := p.here()
		p.advance()
		ec := p.statementList(token.KW_THEN)
		p.expect(token.KW_THEN, "then")
		eb := p.statementList(token.KW_ELIF, token.KW_ELSE, token.KW_FI)
		ic.Elifs = append(ic.Elifs, &ElifClause{Cond: ec, Then: eb, Span: spanTo(estart, p.prevEnd())})
	}
	if p.at(token.KW_ELSE) {
		p.advance()
		ic.Else = p.statementList(token.KW_FI)
	}
	p.expect(token.KW_FI, "fi")
	ic.Redirs = p.redirectList()
	ic.Span = spanTo(start, p.prevEnd())
	return ic
}

func (p *Parser) whileLoop() Command {
	start := p.here()
	p.advance() // while
	p.loopDepth++
	cond := p.statementList(token.KW_DO)
	p.expect(token.KW_DO, "do")
	body := p.statementList(token.KW_DONE)
	p.loopDepth--
	p.expect(token.KW_DONE, "done")
	return &WhileLoop{Cond: cond, Body: body, Redirs: p.redirectList(), Span: spanTo(start, p.prevEnd())}
}

func (p *Parser) untilLoop() Command {
	start := p.here()
	p.advance() // until
	p.loopDepth++
	cond := p.statementList(token.KW_DO)
	p.expect(token.KW_DO, "do")
	body := p.statementList(token.KW_DONE)
	p.loopDepth--
	p.expect(token.KW_DONE, "done")
	return &UntilLoop{Cond: cond, Body: body, Redirs: p.redirectList(), Span: spanTo(start, p.prevEnd())}
}

func (p *Parser) forLoop() Command {
	start := p.here()
	p.advance() // for
	if p.at(token.DLPAREN) {
		return p.cStyleForLoop(start)
	}
	nameTok := p.expect(token.WORD, "loop variable")
	varLit := &Lit{Value: nameTok.Lexeme, Span: nameTok.Position}
	p.skipSeparators()
	hasIn, words := p.optionalWordList()
	p.skipSeparators()
	p.loopDepth++
	p.expect(token.KW_DO, "do")
	body := p.statementList(token.KW_DONE)
	p.loopDepth--
	p.expect(token.KW_DONE, "done")
	return &ForLoop{
		Var: varLit, HasIn: hasIn, Words: words, Body: body,
		Redirs: p.redirectList(), Span: spanTo(start, p.prevEnd()),
	}
}

func (p *Parser) optionalWordList() (bool, []Word) {
	if !p.at(token.KW_IN) {
		return false, nil
	}
	p.advance()
	var words []Word
	for p.atWordStart() {
		words = append(words, p.buildWord(p.advance()))
	}
	return true, words
}

func (p *Parser) cStyleForLoop(start Position) Command {
	p.advance() // ((
	init, cond, update := p.scanArithClauses()
	p.expect(token.DRPAREN, "))")
	p.skipSeparators()
	p.loopDepth++
	p.expect(token.KW_DO, "do")
	body := p.statementList(token.KW_DONE)
	p.loopDepth--
	p.expect(token.KW_DONE, "done")
	return &CStyleForLoop{
		Init: init, Cond: cond, Update: update, Body: body,
		Redirs: p.redirectList(), Span: spanTo(start, p.prevEnd()),
	}
}

// scanArithClauses reconstructs the init;cond;update clauses of a
// C-style for loop from token lexemes, since the lexer tokenizes "((" as
// a plain operator rather than capturing the whole arithmetic command as
// one opaque span (unlike $((...)), which it does capture whole).
func (p *Parser) scanArithClauses() (init, cond, update string) {
	var segs [][]string
	cur := []string{}
	depth := 0
	for !p.at(token.EOF) {
		if depth == 0 && p.at(token.DRPAREN) {
			break
		}
		tok := p.advance()
		switch tok.Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.SEMICOLON:
			if depth == 0 {
				segs = append(segs, cur)
				cur = nil
				continue
			}
		}
		cur = append(cur, tok.Lexeme)
	}
	segs = append(segs, cur)
	join := func(i int) string {
		if i < len(segs) {
			return strings.Join(segs[i], " ")
		}
		return ""
	}
	return join(0), join(1), join(2)
}

func (p *Parser) arithmeticEvaluation() Command {
	start := p.here()
	p.advance() // ((
	var words []string
	depth := 0
	for !p.at(token.EOF) {
		if depth == 0 && p.at(token.DRPAREN) {
			break
		}
		tok := p.advance()
		switch tok.Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		}
		words = append(words, tok.Lexeme)
	}
	p.expect(token.DRPAREN, "))")
	return &ArithmeticEvaluation{
		Expr: strings.Join(words, " "), Redirs: p.redirectList(), Span: spanTo(start, p.prevEnd()),
	}
}

func (p *Parser) selectLoop() Command {
	start := p.here()
	p.advance() // select
	nameTok := p.expect(token.WORD, "select variable")
	varLit := &Lit{Value: nameTok.Lexeme, Span: nameTok.Position}
	p.skipSeparators()
	hasIn, words := p.optionalWordList()
	p.skipSeparators()
	p.loopDepth++
	p.expect(token.KW_DO, "do")
	body := p.statementList(token.KW_DONE)
	p.loopDepth--
	p.expect(token.KW_DONE, "done")
	return &SelectLoop{
		Var: varLit, HasIn: hasIn, Words: words, Body: body,
		Redirs: p.redirectList(), Span: spanTo(start, p.prevEnd()),
	}
}

func (p *Parser) caseConditional() Command {
	start := p.here()
	p.advance() // case
	if !p.atWordStart() {
		p.errorf(ExpectedToken, []string{"word"}, "expected word after case")
		return &CaseConditional{Span: spanTo(start, p.prevEnd())}
	}
	word := p.buildWord(p.advance())
	p.skipSeparators()
	p.expect(token.KW_IN, "in")
	p.skipSeparators()
	var items []*CaseItem
	for !p.at(token.KW_ESAC) && !p.at(token.EOF) {
		items = append(items, p.caseItem())
		p.skipSeparators()
	}
	p.expect(token.KW_ESAC, "esac")
	return &CaseConditional{
		Word: word, Items: items, Redirs: p.redirectList(), Span: spanTo(start, p.prevEnd()),
	}
}

func (p *Parser) caseItem() *CaseItem {
	start := p.here()
	p.accept(token.LPAREN)
	var patterns []Word
	for {
		if !p.atWordStart() {
			p.errorf(ExpectedToken, []string{"pattern"}, "expected case pattern")
			break
		}
		patterns = append(patterns, p.buildWord(p.advance()))
		if p.at(token.PIPE) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN, ")")
	p.skipNewlines()
	var body *StatementList
	if !p.atAny(token.CASE_END, token.CASE_FALL, token.CASE_CONT, token.KW_ESAC) {
		body = p.statementList(token.CASE_END, token.CASE_FALL, token.CASE_CONT, token.KW_ESAC)
	}
	term, hasTerm := TermEnd, false
	switch p.cur().Kind {
	case token.CASE_END:
		p.advance()
		hasTerm = true
	case token.CASE_FALL:
		term, hasTerm = TermFall, true
		p.advance()
	case token.CASE_CONT:
		term, hasTerm = TermCont, true
		p.advance()
	}
	return &CaseItem{Patterns: patterns, Body: body, Terminator: term, HasTerm: hasTerm, Span: spanTo(start, p.prevEnd())}
}

func (p *Parser) breakStatement() Command {
	start := p.here()
	p.advance()
	level := 1
	if p.at(token.WORD) {
		if n, ok := parseFD(p.cur().Lexeme); ok && n > 0 {
			level = n
			p.advance()
		}
	}
	if p.loopDepth == 0 {
		p.errorf(ControlOutsideLoop, nil, "break used outside a loop")
	}
	return &BreakStatement{Level: level, Span: spanTo(start, p.prevEnd())}
}

func (p *Parser) continueStatement() Command {
	start := p.here()
	p.advance()
	level := 1
	if p.at(token.WORD) {
		if n, ok := parseFD(p.cur().Lexeme); ok && n > 0 {
			level = n
			p.advance()
		}
	}
	if p.loopDepth == 0 {
		p.errorf(ControlOutsideLoop, nil, "continue used outside a loop")
	}
	return &ContinueStatement{Level: level, Span: spanTo(start, p.prevEnd())}
}
