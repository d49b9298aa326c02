package syntax

import (
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestExpandCommaList(t *testing.T) {
	c := qt.New(t)
	out, err := Expand("echo {a,b,c}")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "echo a b c")
}

func TestExpandPrefixSuffixPreserved(t *testing.T) {
	c := qt.New(t)
	out, err := Expand("file{1,2,3}.txt")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "file1.txt file2.txt file3.txt")
}

func TestExpandIntSequence(t *testing.T) {
	c := qt.New(t)
	out, err := Expand("{1..5}")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "1 2 3 4 5")
}

func TestExpandIntSequenceDescending(t *testing.T) {
	c := qt.New(t)
	out, err := Expand("{5..1}")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "5 4 3 2 1")
}

func TestExpandIntSequenceWithStep(t *testing.T) {
	c := qt.New(t)
	out, err := Expand("{0..10..2}")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "0 2 4 6 8 10")
}

func TestExpandIntSequenceZeroPadded(t *testing.T) {
	c := qt.New(t)
	out, err := Expand("{01..03}")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "01 02 03")
}

func TestExpandCharSequence(t *testing.T) {
	c := qt.New(t)
	out, err := Expand("{a..e}")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "a b c d e")
}

func TestExpandNestedBraces(t *testing.T) {
	c := qt.New(t)
	out, err := Expand("{a,b{1,2}}")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "a b1 b2")
}

func TestExpandCartesianProduct(t *testing.T) {
	c := qt.New(t)
	out, err := Expand("{a,b}{1,2}")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "a1 a2 b1 b2")
}

func TestExpandLoneBraceLeftLiteral(t *testing.T) {
	c := qt.New(t)
	out, err := Expand("echo {foo}")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "echo {foo}")
}

func TestExpandIgnoresQuotedBraces(t *testing.T) {
	c := qt.New(t)
	out, err := Expand(`echo '{a,b}'`)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, `echo '{a,b}'`)
}

func TestExpandMultipleWords(t *testing.T) {
	c := qt.New(t)
	out, err := Expand("cp {a,b} dest")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "cp a b dest")
}

func TestExpandLimitExceeded(t *testing.T) {
	c := qt.New(t)
	_, err := Expand("{1..99999}{1..99999}")
	c.Assert(err, qt.Not(qt.IsNil))
	var bee *BraceExpansionError
	c.Assert(errorsAs(err, &bee), qt.IsTrue)
}

// errorsAs is a tiny local helper so this file doesn't need to import
// "errors" just for one assertion.
func errorsAs(err error, target **BraceExpansionError) bool {
	if e, ok := err.(*BraceExpansionError); ok {
		*target = e
		return true
	}
	return false
}

func TestSplitWordsKeepsQuotedWhitespace(t *testing.T) {
	c := qt.New(t)
	words := splitWords(`echo "a b" 'c d'`)
	c.Assert(words, qt.DeepEquals, []string{"echo", `"a b"`, `'c d'`})
}

func TestSplitWordsTrimsRuns(t *testing.T) {
	c := qt.New(t)
	words := splitWords("a   b\tc")
	c.Assert(strings.Join(words, "|"), qt.Equals, "a|b|c")
}

func TestExpandPreservesNewlinesBetweenLines(t *testing.T) {
	c := qt.New(t)
	out, err := Expand("if true; then\necho hi\nfi\n")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "if true; then\necho hi\nfi\n")
}

func TestExpandStillJoinsWordsWithinALine(t *testing.T) {
	c := qt.New(t)
	out, err := Expand("echo  a\tb\necho {x,y}\n")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "echo a b\necho x y\n")
}

func TestExpandPreservesBlankLines(t *testing.T) {
	c := qt.New(t)
	out, err := Expand("echo a\n\necho b\n")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "echo a\n\necho b\n")
}

func TestExpandPreservesNewlineEmbeddedInDoubleQuotedWord(t *testing.T) {
	c := qt.New(t)
	out, err := Expand("echo \"line1\nline2\" end\n")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "echo \"line1\nline2\" end\n")
}

func TestExpandPreservesNewlineEmbeddedInSingleQuotedWord(t *testing.T) {
	c := qt.New(t)
	out, err := Expand("echo 'line1\nline2'\n")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "echo 'line1\nline2'\n")
}

func TestSplitWordsEmitsNewlineSentinelOutsideQuotes(t *testing.T) {
	c := qt.New(t)
	words := splitWords("a\nb")
	c.Assert(words, qt.DeepEquals, []string{"a", newlineSentinel, "b"})
}

func TestSplitWordsKeepsNewlineInsideSingleQuotes(t *testing.T) {
	c := qt.New(t)
	words := splitWords("'a\nb'")
	c.Assert(words, qt.DeepEquals, []string{"'a\nb'"})
}
