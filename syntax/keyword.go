package syntax

import "rashparse.dev/rash/token"

// Normalize runs a single left-to-right pass over a flat token stream,
// promoting WORD tokens spelled as reserved words into their keyword Kind
// wherever they sit in command position (spec §4.3). Token count and
// order are never changed; only Kind and IsKeyword are touched, so the
// pass is idempotent: feeding its own output back through it is a no-op.
func Normalize(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	copy(out, tokens)

	cmdPos := true
	// casePattern holds one entry per open case...esac, true while the
	// current position sits inside a pattern list (between "in"/";;" and
	// the pattern's closing ')'), false while inside an item's body.
	var casePattern []bool

	// pendingIn tracks, per open "for"/"case", whether we're still waiting
	// on the subject/name token (2) or sitting right after it (1): "in" is
	// not in command position (it follows a name, not a separator), so it
	// needs this one-token lookahead instead of the generic cmdPos rule.
	var pendingIn []int

	for i := range out {
		tok := &out[i]
		inPattern := len(casePattern) > 0 && casePattern[len(casePattern)-1]

		if n := len(pendingIn); n > 0 {
			switch pendingIn[n-1] {
			case 2:
				// Whatever token sits here is the for/case name or
				// subject, whole token regardless of kind (it may be a
				// bare WORD, a quoted STRING, or an expansion).
				pendingIn[n-1] = 1
			case 1:
				if tok.Kind == token.WORD && tok.Lexeme == "in" {
					tok.Kind = token.KW_IN
					tok.IsKeyword = true
				}
				pendingIn = pendingIn[:n-1]
			}
		}

		if tok.Kind == token.WORD {
			if inPattern {
				// Inside a case pattern list, only esac ends the
				// construct; every other word is a glob pattern, even
				// one that happens to spell a reserved word.
				if tok.Lexeme == "esac" {
					tok.Kind = token.KW_ESAC
					tok.IsKeyword = true
				}
			} else if cmdPos {
				if kind, ok := token.IsKeyword(tok.Lexeme); ok {
					tok.Kind = kind
					tok.IsKeyword = true
				}
			}
		}

		switch tok.Kind {
		case token.KW_FOR:
			pendingIn = append(pendingIn, 2)
		case token.KW_CASE:
			casePattern = append(casePattern, false)
			pendingIn = append(pendingIn, 2)
		case token.KW_IN:
			if n := len(casePattern); n > 0 && !casePattern[n-1] {
				casePattern[n-1] = true
			}
		case token.RPAREN:
			// Closes the current pattern list (its optional leading '('
			// is consumed while inPattern and ignored above, since it is
			// never a WORD); the item's body starts at the next token.
			if n := len(casePattern); n > 0 && casePattern[n-1] {
				casePattern[n-1] = false
			}
		case token.CASE_END, token.CASE_FALL, token.CASE_CONT:
			// ;;, ;& and ;;& all close an item's body and, unless this
			// was the last item before esac, re-arm pattern scanning for
			// the next one.
			if n := len(casePattern); n > 0 {
				casePattern[n-1] = true
			}
		case token.KW_ESAC:
			if n := len(casePattern); n > 0 {
				casePattern = casePattern[:n-1]
			}
		}

		cmdPos = startsCommand(tok.Kind)
	}
	return out
}

// startsCommand reports whether a token of kind k is always immediately
// followed by a new command: a list/pipeline separator, an opening
// grouping construct, a clause-introducing keyword, or the closing paren
// of a case pattern (spec §4.3, command-position rule).
func startsCommand(k token.Kind) bool {
	switch k {
	case token.NEWLINE, token.SEMICOLON, token.AMP,
		token.AND_AND, token.OR_OR, token.PIPE, token.PIPE_AMP,
		token.LPAREN, token.RPAREN, token.LBRACE,
		token.CASE_END, token.CASE_FALL, token.CASE_CONT,
		token.KW_IF, token.KW_THEN, token.KW_ELIF, token.KW_ELSE,
		token.KW_WHILE, token.KW_UNTIL, token.KW_DO, token.KW_BANG,
		token.EOF:
		return true
	}
	return false
}
