package syntax

import "strings"

// expectedIncomplete is the set of expected spellings that mean "this
// buffer is still mid-construct", as opposed to a genuine syntax error
// (spec §4.6).
var expectedIncomplete = []string{
	"then", "do", "done", "fi", "else", "elif", "esac", ")", "}", "]]",
}

// ContinuationContext is the nested-construct stack a front-end uses to
// render a continuation prompt, e.g. []string{"for do"} for
// "for x in 1 2; do\n" still awaiting its "done" (spec §4.6).
type ContinuationContext struct {
	Stack []string
}

// Prompt renders the stack as a single continuation prompt, "> " when
// nothing is open.
func (c *ContinuationContext) Prompt() string {
	if c == nil || len(c.Stack) == 0 {
		return "> "
	}
	return strings.Join(c.Stack, " ") + "> "
}

// IsComplete reports whether buffer terminates a syntactically complete
// command, the contract interactive front-ends poll to decide whether to
// keep reading lines (spec §6's is_complete(text) -> bool).
func IsComplete(buffer string, cfg ParserConfig) bool {
	complete, _ := Probe(buffer, cfg)
	return complete
}

// Probe is IsComplete plus the continuation context, for front-ends that
// render contextual prompts while collecting more input.
func Probe(buffer string, cfg ParserConfig) (bool, *ContinuationContext) {
	ctx := scanContextStack(buffer)

	if endsInLineContinuation(buffer) {
		return false, ctx
	}

	lexCfg := cfg.Lexer
	lexCfg.Strict = false
	lx := NewLexer([]byte(buffer), lexCfg)
	_ = lx.run()
	toks := lx.tokens
	for _, e := range lx.Errors() {
		if e.Kind == UnclosedQuote || e.Kind == UnclosedExpansion {
			return false, ctx
		}
	}

	probeCfg := cfg
	probeCfg.CollectErrors = true
	probeCfg.Lexer = lexCfg
	p := NewParser(Normalize(toks), probeCfg)
	_, _ = p.parseTopLevel()
	for _, e := range p.errs {
		if e.Kind == IncompleteConstruct {
			return false, ctx
		}
		if e.ExpectsAny(expectedIncomplete...) {
			return false, ctx
		}
	}
	return true, ctx
}

// endsInLineContinuation reports whether buffer's last non-whitespace
// character is an unescaped trailing backslash (spec §4.6).
func endsInLineContinuation(buffer string) bool {
	trimmed := strings.TrimRight(buffer, " \t\r\n")
	if trimmed == "" {
		return false
	}
	n := 0
	for i := len(trimmed) - 1; i >= 0 && trimmed[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// scanContextStack derives the nested-construct stack from a shallow,
// whitespace/quote-aware word scan of buffer: every opener pushes its
// name, every matching closer pops it. "then"/"do"/"elif"/"else" retag
// the top of an open if/while/for frame rather than pushing a new one,
// so the rendered prompt reads "for do>" / "if then>" instead of
// endlessly nesting.
func scanContextStack(buffer string) *ContinuationContext {
	words := splitWords(buffer)
	var stack []string
	for _, w := range words {
		switch w {
		case "for", "while", "until", "select":
			stack = append(stack, w)
		case "case":
			stack = append(stack, "case")
		case "if":
			stack = append(stack, "if")
		case "function":
			stack = append(stack, "function")
		case "{", "(", "((", "[[":
			stack = append(stack, w)
		case "then":
			if n := len(stack); n > 0 && stack[n-1] == "if" {
				stack[n-1] = "if then"
			}
		case "elif":
			if n := len(stack); n > 0 && stack[n-1] == "if then" {
				stack[n-1] = "if elif"
			}
		case "else":
			if n := len(stack); n > 0 && (stack[n-1] == "if then" || stack[n-1] == "if elif") {
				stack[n-1] = "if else"
			}
		case "do":
			if n := len(stack); n > 0 {
				switch stack[n-1] {
				case "for", "while", "until", "select":
					stack[n-1] += " do"
				}
			}
		case "done", "fi", "esac", "}", ")", "))", "]]":
			stack = popContext(stack, w)
		}
	}
	return &ContinuationContext{Stack: stack}
}

// popContext removes the innermost frame closed by closer, tolerating a
// mismatched closer by leaving the stack untouched (the parser, not this
// shallow scan, is the authority on whether it's actually valid). Frames
// retagged by "then"/"do" etc. carry a compound name ("if then", "for do"),
// so closers match by suffix/prefix rather than exact string.
func popContext(stack []string, closer string) []string {
	if len(stack) == 0 {
		return stack
	}
	top := stack[len(stack)-1]
	if top == "function" && closer == "}" {
		return stack[:len(stack)-1]
	}
	if closer == "}" && top == "{" && len(stack) > 1 && stack[len(stack)-2] == "function" {
		return stack[:len(stack)-2]
	}
	var ok bool
	switch closer {
	case "done":
		ok = top == "for" || top == "while" || top == "until" || top == "select" ||
			strings.HasSuffix(top, " do")
	case "fi":
		ok = top == "if" || strings.HasPrefix(top, "if ")
	case "esac":
		ok = top == "case"
	case "}":
		ok = top == "{"
	case ")":
		ok = top == "("
	case "))":
		ok = top == "(("
	case "]]":
		ok = top == "[["
	}
	if ok {
		return stack[:len(stack)-1]
	}
	return stack
}
