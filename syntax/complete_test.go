package syntax

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestIsCompleteSimpleCommand(t *testing.T) {
	c := qt.New(t)
	c.Assert(IsComplete("echo hello\n", BashCompatConfig()), qt.IsTrue)
}

func TestIsCompleteFalseForOpenIf(t *testing.T) {
	c := qt.New(t)
	c.Assert(IsComplete("if true; then\n", BashCompatConfig()), qt.IsFalse)
}

func TestIsCompleteTrueOnceClosed(t *testing.T) {
	c := qt.New(t)
	c.Assert(IsComplete("if true; then echo hi; fi\n", BashCompatConfig()), qt.IsTrue)
}

func TestIsCompleteFalseForTrailingBackslash(t *testing.T) {
	c := qt.New(t)
	c.Assert(IsComplete("echo hello \\\n", BashCompatConfig()), qt.IsFalse)
}

func TestIsCompleteFalseForUnclosedQuote(t *testing.T) {
	c := qt.New(t)
	c.Assert(IsComplete("echo 'hello\n", BashCompatConfig()), qt.IsFalse)
}

func TestIsCompleteFalseForUnclosedExpansion(t *testing.T) {
	c := qt.New(t)
	c.Assert(IsComplete("echo $(foo\n", BashCompatConfig()), qt.IsFalse)
}

func TestIsCompleteFalseForOpenHeredoc(t *testing.T) {
	c := qt.New(t)
	c.Assert(IsComplete("cat <<EOF\nhello\n", BashCompatConfig()), qt.IsFalse)
}

func TestIsCompleteTrueOnceHeredocClosed(t *testing.T) {
	c := qt.New(t)
	c.Assert(IsComplete("cat <<EOF\nhello\nEOF\n", BashCompatConfig()), qt.IsTrue)
}

func TestIsCompleteFalseForOpenCase(t *testing.T) {
	c := qt.New(t)
	c.Assert(IsComplete("case $x in\n", BashCompatConfig()), qt.IsFalse)
}

func TestIsCompleteFalseForOpenDoubleBracket(t *testing.T) {
	c := qt.New(t)
	c.Assert(IsComplete("[[ -f foo\n", BashCompatConfig()), qt.IsFalse)
}

func TestProbePromptDefaultsToBareArrow(t *testing.T) {
	c := qt.New(t)
	_, ctx := Probe("echo hi\n", BashCompatConfig())
	c.Assert(ctx.Prompt(), qt.Equals, "> ")
}

func TestProbePromptForOpenFor(t *testing.T) {
	c := qt.New(t)
	_, ctx := Probe("for x in a b c; do\n", BashCompatConfig())
	c.Assert(ctx.Prompt(), qt.Equals, "for do> ")
}

func TestProbePromptForOpenIfThen(t *testing.T) {
	c := qt.New(t)
	_, ctx := Probe("if true\nthen\n", BashCompatConfig())
	c.Assert(ctx.Prompt(), qt.Equals, "if then> ")
}

func TestProbePromptPopsOnClose(t *testing.T) {
	c := qt.New(t)
	_, ctx := Probe("for x in a; do\n  echo $x\ndone\n", BashCompatConfig())
	c.Assert(ctx.Prompt(), qt.Equals, "> ")
}

func TestProbePromptForNestedConstructs(t *testing.T) {
	c := qt.New(t)
	_, ctx := Probe("if true; then\n  for x in a; do\n", BashCompatConfig())
	c.Assert(ctx.Prompt(), qt.Equals, "if then for do> ")
}

func TestContinuationContextNilPromptsBareArrow(t *testing.T) {
	c := qt.New(t)
	var ctx *ContinuationContext
	c.Assert(ctx.Prompt(), qt.Equals, "> ")
}
