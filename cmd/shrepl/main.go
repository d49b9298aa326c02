// shrepl is a minimal interactive harness for the completeness probe: it
// reads lines, decides when a command is finished, and reports how many
// statements were parsed. It never evaluates anything.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"rashparse.dev/rash/syntax"
)

func main() {
	if err := run(); err != nil && err != io.EOF {
		fmt.Fprintln(os.Stderr, "shrepl:", err)
		os.Exit(1)
	}
}

func run() error {
	rl, err := readline.New("$ ")
	if err != nil {
		return err
	}
	defer rl.Close()

	cfg := syntax.PermissiveConfig()
	var buf strings.Builder

	for {
		line, err := rl.Readline()
		if err != nil {
			return err
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)

		complete, ctx := syntax.Probe(buf.String(), cfg)
		if !complete {
			rl.SetPrompt(promptFor(ctx))
			continue
		}

		reportBuffer(buf.String(), cfg)
		buf.Reset()
		rl.SetPrompt("$ ")
	}
}

// promptFor renders the continuation prompt, clipped to terminal width so
// a deeply nested construct doesn't push the cursor off-screen.
func promptFor(ctx *syntax.ContinuationContext) string {
	p := ctx.Prompt()
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && len(p) > w-2 {
		p = p[:w-2] + "> "
	}
	return p
}

func reportBuffer(buf string, cfg syntax.ParserConfig) {
	top, errs := syntax.ParseCollecting([]byte(buf), cfg)
	if len(errs) == 0 {
		n := 0
		if top != nil && top.Body != nil {
			n = len(top.Body.Stmts)
		}
		fmt.Printf("parsed %d statement(s)\n", n)
		return
	}
	for _, e := range errs {
		d := syntax.Diagnostic{Severity: syntax.SeverityError, Message: e.Message, Pos: e.Pos}
		fmt.Println(d.Render("<stdin>"))
	}
}
