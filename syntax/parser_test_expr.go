package syntax

import "rashparse.dev/rash/token"

// testUnaryOps is the set of unary file-test and string-test operators
// recognized inside [[ ]], grounded on the full POSIX/bash set (original
// source's file_tests.py confirms the less-common -G/-O/-k/-u/-g/-N/-v).
var testUnaryOps = map[string]bool{
	"-e": true, "-f": true, "-d": true, "-r": true, "-w": true, "-x": true,
	"-s": true, "-L": true, "-h": true, "-p": true, "-S": true, "-b": true,
	"-c": true, "-g": true, "-u": true, "-k": true, "-O": true, "-G": true,
	"-N": true, "-z": true, "-n": true, "-o": true, "-v": true, "-R": true,
}

var testBinaryOps = map[string]bool{
	"==": true, "=": true, "!=": true, "=~": true,
	"-eq": true, "-ne": true, "-lt": true, "-le": true, "-gt": true, "-ge": true,
	"-nt": true, "-ot": true, "-ef": true,
}

// enhancedTest parses a standalone "[[ expr ]]" command (spec §4.4.5).
// Precedence, loosest to tightest: || , && , ! , primary.
func (p *Parser) enhancedTest() Command {
	start := p.here()
	p.advance() // [[
	expr := p.testOrExpr()
	p.expect(token.DRBRACK, "]]")
	return &EnhancedTestStatement{X: expr, Redirs: p.redirectList(), Span: spanTo(start, p.prevEnd())}
}

func (p *Parser) testOrExpr() TestExpr {
	start := p.here()
	x := p.testAndExpr()
	for p.at(token.OR_OR) {
		p.advance()
		y := p.testAndExpr()
		x = &TestOr{X: x, Y: y, Span: spanTo(start, p.prevEnd())}
	}
	return x
}

func (p *Parser) testAndExpr() TestExpr {
	start := p.here()
	x := p.testUnaryExpr()
	for p.at(token.AND_AND) {
		p.advance()
		y := p.testUnaryExpr()
		x = &TestAnd{X: x, Y: y, Span: spanTo(start, p.prevEnd())}
	}
	return x
}

func (p *Parser) testUnaryExpr() TestExpr {
	start := p.here()
	if p.at(token.WORD) && p.cur().Lexeme == "!" {
		p.advance()
		x := p.testUnaryExpr()
		return &TestNot{X: x, Span: spanTo(start, p.prevEnd())}
	}
	return p.testPrimary()
}

func (p *Parser) testPrimary() TestExpr {
	start := p.here()
	if p.at(token.LPAREN) {
		p.advance()
		x := p.testOrExpr()
		p.expect(token.RPAREN, ")")
		return &TestParen{X: x, Span: spanTo(start, p.prevEnd())}
	}
	if p.at(token.WORD) && testUnaryOps[p.cur().Lexeme] {
		op := p.advance()
		operand := p.testOperandWord()
		return &TestUnary{Op: op.Lexeme, X: operand, Span: spanTo(start, p.prevEnd())}
	}
	if !p.atWordStart() {
		p.errorf(ExpectedToken, []string{"test expression"}, "expected test expression, found %s", p.cur().String())
		return &TestWord{Span: spanTo(start, p.prevEnd())}
	}
	lhs := p.buildWord(p.advance())
	if p.at(token.WORD) && testBinaryOps[p.cur().Lexeme] {
		op := p.advance()
		rhsTok := p.testOperandTok()
		return &TestBinary{Op: op.Lexeme, X: lhs, Y: p.buildWord(rhsTok), RHSQuote: rhsTok.QuoteType, Span: spanTo(start, p.prevEnd())}
	}
	if p.atAny(token.REDIR_IN, token.REDIR_OUT) {
		op := p.advance()
		rhsTok := p.testOperandTok()
		return &TestBinary{Op: op.Lexeme, X: lhs, Y: p.buildWord(rhsTok), RHSQuote: rhsTok.QuoteType, Span: spanTo(start, p.prevEnd())}
	}
	return &TestWord{W: lhs, Span: spanTo(start, p.prevEnd())}
}

func (p *Parser) testOperandWord() Word {
	return p.buildWord(p.testOperandTok())
}

func (p *Parser) testOperandTok() Token {
	if !p.atWordStart() {
		p.errorf(ExpectedToken, []string{"word"}, "expected word, found %s", p.cur().String())
		return p.cur()
	}
	return p.advance()
}
