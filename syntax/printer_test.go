package syntax

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func printSrc(c *qt.C, src string) string {
	c.Helper()
	top := mustParse(c, src)
	return Print(top)
}

func TestPrintSimpleCommand(t *testing.T) {
	c := qt.New(t)
	c.Assert(printSrc(c, "echo hello world\n"), qt.Equals, "echo hello world\n")
}

func TestPrintPipeline(t *testing.T) {
	c := qt.New(t)
	c.Assert(printSrc(c, "ls -la | grep foo | wc -l\n"), qt.Equals, "ls -la | grep foo | wc -l\n")
}

func TestPrintAndOrList(t *testing.T) {
	c := qt.New(t)
	c.Assert(printSrc(c, "make && make install || echo failed\n"),
		qt.Equals, "make && make install || echo failed\n")
}

func TestPrintBackgroundSeparator(t *testing.T) {
	c := qt.New(t)
	c.Assert(printSrc(c, "sleep 10 &\n"), qt.Equals, "sleep 10 &\n")
}

func TestPrintRedirection(t *testing.T) {
	c := qt.New(t)
	c.Assert(printSrc(c, "cmd > out.txt\n"), qt.Equals, "cmd >out.txt\n")
}

func TestPrintIfElse(t *testing.T) {
	c := qt.New(t)
	got := printSrc(c, "if true; then echo a; else echo b; fi\n")
	want := "if true; then\n\techo a\nelse\n\techo b\nfi\n"
	c.Assert(got, qt.Equals, want)
}

func TestPrintForLoop(t *testing.T) {
	c := qt.New(t)
	got := printSrc(c, "for x in a b c; do echo $x; done\n")
	want := "for x in a b c; do\n\techo $x\ndone\n"
	c.Assert(got, qt.Equals, want)
}

func TestPrintCaseConditional(t *testing.T) {
	c := qt.New(t)
	got := printSrc(c, "case $x in a) echo one;; esac\n")
	want := "case $x in\n\ta)\n\t\techo one\n\t;;\nesac\n"
	c.Assert(got, qt.Equals, want)
}

func TestPrintArrayAssignment(t *testing.T) {
	c := qt.New(t)
	c.Assert(printSrc(c, "arr=(1 2 3)\n"), qt.Equals, "arr=(1 2 3)\n")
}

func TestPrintFunctionDefPOSIXStyle(t *testing.T) {
	c := qt.New(t)
	got := printSrc(c, "greet() { echo hi; }\n")
	want := "greet() {\n\techo hi\n}\n"
	c.Assert(got, qt.Equals, want)
}

func TestPrintSpacesConfig(t *testing.T) {
	c := qt.New(t)
	top := mustParse(c, "if true; then echo a; fi\n")
	got := PrintConfig{Spaces: 2}.Print(top)
	want := "if true; then\n  echo a\nfi\n"
	c.Assert(got, qt.Equals, want)
}

func TestPrintCommandSubstitution(t *testing.T) {
	c := qt.New(t)
	got := printSrc(c, "x=$(echo hi)\n")
	c.Assert(got, qt.Equals, "x=$(echo hi)\n")
}
