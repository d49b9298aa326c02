package syntax

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"rashparse.dev/rash/token"
)

func TestLexerAnsiCQuoteStandalone(t *testing.T) {
	c := qt.New(t)
	toks := lexAll(c, "echo $'hello world'\n")
	c.Assert(kinds(t, toks), qt.DeepEquals, []token.Kind{
		token.WORD, token.ANSIC_QUOTE, token.NEWLINE, token.EOF,
	})
	c.Assert(toks[1].Lexeme, qt.Equals, "hello world")
	c.Assert(toks[1].QuoteType, qt.Equals, QuoteANSIC)
}

func TestLexerLocaleQuoteStandalone(t *testing.T) {
	c := qt.New(t)
	toks := lexAll(c, "echo $\"hi there\"\n")
	c.Assert(kinds(t, toks), qt.DeepEquals, []token.Kind{
		token.WORD, token.LOCALE_QUOTE, token.NEWLINE, token.EOF,
	})
	c.Assert(toks[1].QuoteType, qt.Equals, QuoteLocale)
}

func TestLexerAnsiCQuoteDisabledUnderPOSIX(t *testing.T) {
	c := qt.New(t)
	toks, _, err := Tokenize([]byte("echo $'hi'\n"), POSIXLexerConfig())
	c.Assert(err, qt.IsNil)
	// $ falls back to a literal character and 'hi' lexes as an ordinary
	// single-quoted run, so the word is WORD, not ANSIC_QUOTE.
	c.Assert(kinds(t, toks), qt.DeepEquals, []token.Kind{
		token.WORD, token.WORD, token.NEWLINE, token.EOF,
	})
}

func TestLexerUnterminatedAnsiCQuoteIsUnclosedQuote(t *testing.T) {
	c := qt.New(t)
	cfg := BatchLexerConfig()
	cfg.Strict = false
	toks, _, err := Tokenize([]byte("echo $'unterminated"), cfg)
	c.Assert(err, qt.IsNil)
	var sawIllegal bool
	for _, tok := range toks {
		if tok.Kind == token.ILLEGAL {
			sawIllegal = true
		}
	}
	c.Assert(sawIllegal, qt.IsTrue)
}

func TestParseAnsiCQuotedWordIsSingleLit(t *testing.T) {
	c := qt.New(t)
	top := mustParse(c, "echo $'hello world'\n")
	cmd, ok := firstCommand(c, top).(*SimpleCommand)
	c.Assert(ok, qt.IsTrue)
	c.Assert(len(cmd.Words), qt.Equals, 2)
	w := cmd.Words[1]
	c.Assert(w.QuoteType, qt.Equals, QuoteANSIC)
	c.Assert(w.Lit(), qt.Equals, "hello world")
}

func TestParseLocaleQuotedWordExpandsVariable(t *testing.T) {
	c := qt.New(t)
	top := mustParse(c, "echo $\"hi $name\"\n")
	cmd, ok := firstCommand(c, top).(*SimpleCommand)
	c.Assert(ok, qt.IsTrue)
	c.Assert(len(cmd.Words), qt.Equals, 2)
	w := cmd.Words[1]
	c.Assert(w.QuoteType, qt.Equals, QuoteLocale)
	c.Assert(len(w.Parts), qt.Equals, 2)
	lit, ok := w.Parts[0].(*Lit)
	c.Assert(ok, qt.IsTrue)
	c.Assert(lit.Value, qt.Equals, "hi ")
	v, ok := w.Parts[1].(*Variable)
	c.Assert(ok, qt.IsTrue)
	c.Assert(v.Name, qt.Equals, "name")
}

func TestPrintAnsiCQuotedWordRoundTrips(t *testing.T) {
	c := qt.New(t)
	c.Assert(printSrc(c, "echo $'hello world'\n"), qt.Equals, "echo $'hello world'\n")
}

func TestPrintLocaleQuotedWordRoundTrips(t *testing.T) {
	c := qt.New(t)
	c.Assert(printSrc(c, "echo $\"hi $name\"\n"), qt.Equals, "echo $\"hi $name\"\n")
}

func TestQuoteTypeStringsForNewForms(t *testing.T) {
	c := qt.New(t)
	c.Assert(QuoteANSIC.String(), qt.Equals, "ansi-c")
	c.Assert(QuoteLocale.String(), qt.Equals, "locale")
}
