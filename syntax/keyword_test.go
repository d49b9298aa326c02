package syntax

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"rashparse.dev/rash/token"
)

func normalizeSrc(c *qt.C, src string) []Token {
	toks := lexAll(c, src)
	return Normalize(toks)
}

func TestNormalizePromotesKeywordInCommandPosition(t *testing.T) {
	c := qt.New(t)
	toks := normalizeSrc(c, "if true; then echo hi; fi\n")
	c.Assert(toks[0].Kind, qt.Equals, token.KW_IF)
	c.Assert(toks[0].IsKeyword, qt.IsTrue)
	// "then" sits right after the ";" separator, in command position.
	idx := -1
	for i, tok := range toks {
		if tok.Lexeme == "then" {
			idx = i
		}
	}
	c.Assert(idx >= 0, qt.IsTrue)
	c.Assert(toks[idx].Kind, qt.Equals, token.KW_THEN)
}

func TestNormalizeLeavesNonCommandPositionWordAlone(t *testing.T) {
	c := qt.New(t)
	// "if" as a bare command argument, not in command position, stays WORD.
	toks := normalizeSrc(c, "echo if\n")
	c.Assert(toks[0].Kind, qt.Equals, token.WORD)
	c.Assert(toks[1].Kind, qt.Equals, token.WORD)
	c.Assert(toks[1].IsKeyword, qt.IsFalse)
}

func TestNormalizeCasePatternWordsStayPlainEvenIfReserved(t *testing.T) {
	c := qt.New(t)
	toks := normalizeSrc(c, "case $x in if) echo yes;; esac\n")
	var sawIfAsWord bool
	var sawEsacKeyword bool
	for _, tok := range toks {
		if tok.Lexeme == "if" && tok.Kind == token.WORD {
			sawIfAsWord = true
		}
		if tok.Lexeme == "esac" && tok.Kind == token.KW_ESAC {
			sawEsacKeyword = true
		}
	}
	c.Assert(sawIfAsWord, qt.IsTrue)
	c.Assert(sawEsacKeyword, qt.IsTrue)
}

func TestNormalizePromotesKeywordsInsideCaseBody(t *testing.T) {
	c := qt.New(t)
	toks := normalizeSrc(c, "case $x in a) if true; then echo hi; fi ;; esac\n")
	var ifKind, thenKind, fiKind token.Kind
	for _, tok := range toks {
		switch tok.Lexeme {
		case "if":
			ifKind = tok.Kind
		case "then":
			thenKind = tok.Kind
		case "fi":
			fiKind = tok.Kind
		}
	}
	c.Assert(ifKind, qt.Equals, token.KW_IF)
	c.Assert(thenKind, qt.Equals, token.KW_THEN)
	c.Assert(fiKind, qt.Equals, token.KW_FI)
}

func TestNormalizeReArmsPatternScanningAfterCaseEnd(t *testing.T) {
	c := qt.New(t)
	// "if" is a pattern literal in the first arm (stays WORD) but a real
	// keyword inside the second arm's body.
	toks := normalizeSrc(c, "case $x in if) echo one;; b) if true; then echo hi; fi;; esac\n")
	var patternIf, bodyIf token.Kind
	seen := 0
	for _, tok := range toks {
		if tok.Lexeme == "if" {
			seen++
			if seen == 1 {
				patternIf = tok.Kind
			} else {
				bodyIf = tok.Kind
			}
		}
	}
	c.Assert(patternIf, qt.Equals, token.WORD)
	c.Assert(bodyIf, qt.Equals, token.KW_IF)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	c := qt.New(t)
	once := normalizeSrc(c, "for x in a b; do echo $x; done\n")
	twice := Normalize(once)
	c.Assert(kinds(t, twice), qt.DeepEquals, kinds(t, once))
}

func TestNormalizePreservesTokenCountAndOrder(t *testing.T) {
	c := qt.New(t)
	src := "while true; do break; done\n"
	before := lexAll(c, src)
	after := Normalize(before)
	c.Assert(len(after), qt.Equals, len(before))
	for i := range before {
		c.Assert(after[i].Lexeme, qt.Equals, before[i].Lexeme)
	}
}

func TestNormalizeFunctionKeyword(t *testing.T) {
	c := qt.New(t)
	toks := normalizeSrc(c, "function foo { echo hi; }\n")
	c.Assert(toks[0].Kind, qt.Equals, token.KW_FUNCTION)
}

func TestNormalizeBangNegation(t *testing.T) {
	c := qt.New(t)
	toks := normalizeSrc(c, "! true\n")
	c.Assert(toks[0].Kind, qt.Equals, token.KW_BANG)
}
