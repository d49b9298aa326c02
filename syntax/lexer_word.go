package syntax

import "rashparse.dev/rash/token"

// recognizeWordOrString is the lexer's fallback recognizer (spec §4.2.2,
// §4.2.5): quoted strings and literal/composite words. It always matches
// once every other recognizer has declined, unless the cursor sits on a
// wordBreak byte.
func recognizeWordOrString(lx *Lexer) (Token, bool) {
	if lx.eof() {
		// A prior recognizer in the chain consumed to EOF and failed
		// (an unterminated quote or expansion): there is no word here to
		// find, so decline rather than manufacturing an empty match.
		return Token{}, false
	}
	if wordBreak(lx.cur()) {
		return Token{}, false
	}
	start := lx.pos
	parts, quoted, ok := lx.scanWordParts()
	if !ok {
		return Token{}, false
	}
	lexeme := string(lx.src[start:lx.pos])
	kind := token.WORD
	if quoted && len(parts) == 1 && parts[0].QuoteType != QuoteNone &&
		parts[0].Pos.Offset == start && parts[0].Pos.Length == len(lexeme) {
		kind = token.STRING
	}
	tok := newToken(kind, lexeme, Position{})
	tok.Parts = parts
	if len(parts) > 0 {
		tok.QuoteType = parts[0].QuoteType
		for _, p := range parts {
			if p.QuoteType == QuoteNone {
				tok.QuoteType = QuoteNone
				break
			}
		}
	}
	return tok, true
}

// scanWordParts consumes one word's worth of content: a run of literal
// bytes, quoted runs, and $/` expansions, stopping at the first unquoted
// wordBreak byte or EOF. It reports whether any quoting was seen.
func (lx *Lexer) scanWordParts() ([]TokenPart, bool, bool) {
	var parts []TokenPart
	var lit []byte
	litStart := lx.here()
	sawQuote := false

	flushLiteral := func() {
		if len(lit) == 0 {
			return
		}
		parts = append(parts, TokenPart{
			Value:     string(lit),
			Kind:      PartLiteral,
			QuoteType: QuoteNone,
			Pos:       spanFrom(litStart, lx.pos),
		})
		lit = nil
	}

	for !lx.eof() {
		b := lx.cur()
		if wordBreak(b) {
			break
		}
		switch b {
		case '\\':
			if lx.peek(1) == '\n' {
				lx.consume(2)
				continue
			}
			if len(lit) == 0 {
				litStart = lx.here()
			}
			esc := lx.peek(1)
			lx.consume(2)
			if esc != 0 {
				lit = append(lit, esc)
			}
			continue

		case '\'':
			flushLiteral()
			sawQuote = true
			pstart := lx.here()
			content, ok := lx.scanSingleQuotedContent()
			if !ok {
				return parts, sawQuote, false
			}
			parts = append(parts, TokenPart{
				Value: content, Kind: PartLiteral, QuoteType: QuoteSingle,
				Pos: spanFrom(pstart, lx.pos),
			})
			litStart = lx.here()
			continue

		case '"':
			flushLiteral()
			sawQuote = true
			dparts, ok := lx.scanDoubleQuotedParts()
			if !ok {
				return parts, sawQuote, false
			}
			parts = append(parts, dparts...)
			litStart = lx.here()
			continue

		case '$':
			flushLiteral()
			pstart := lx.here()
			if tok, ok := lx.scanDollar(); ok {
				switch tok.Kind {
				case token.LOCALE_QUOTE:
					// $"..." may carry several TokenParts of its own
					// (literal runs plus nested $/` expansions), already
					// positioned and tagged QuoteLocale by scanDollar.
					parts = append(parts, tok.Parts...)
					sawQuote = true
				case token.ANSIC_QUOTE:
					parts = append(parts, TokenPart{
						Value: tok.Lexeme, Kind: PartLiteral,
						QuoteType: QuoteANSIC, Pos: spanFrom(pstart, lx.pos),
					})
					sawQuote = true
				default:
					parts = append(parts, TokenPart{
						Value: tok.Lexeme, Kind: partKindForExpansion(tok.Kind),
						QuoteType: QuoteNone, Pos: spanFrom(pstart, lx.pos),
					})
				}
				litStart = lx.here()
				continue
			}
			lit = append(lit, b)
			lx.consume(1)
			continue

		case '`':
			flushLiteral()
			pstart := lx.here()
			if tok, ok := lx.scanBacktick(); ok {
				parts = append(parts, TokenPart{
					Value: tok.Lexeme, Kind: PartExpansion,
					QuoteType: QuoteNone, Pos: spanFrom(pstart, lx.pos),
				})
				litStart = lx.here()
				continue
			}
			return parts, sawQuote, false

		default:
			if len(lit) == 0 {
				litStart = lx.here()
			}
			lit = append(lit, b)
			lx.consume(1)
		}
	}
	flushLiteral()
	return parts, sawQuote, true
}

func partKindForExpansion(k token.Kind) PartKind {
	if k == token.VARIABLE {
		return PartVariable
	}
	return PartExpansion
}

// scanSingleQuotedContent consumes a complete '...' run, returning the
// content with quotes stripped. No escapes are recognized inside (spec
// §4.2.5): a single-quoted string ends at the very next quote byte.
func (lx *Lexer) scanSingleQuotedContent() (string, bool) {
	openPos := lx.here()
	lx.consume(1)
	start := lx.pos
	for !lx.eof() {
		if lx.cur() == '\'' {
			content := string(lx.src[start:lx.pos])
			lx.consume(1)
			return content, true
		}
		lx.consume(1)
	}
	if lx.pendingErr == nil {
		lx.pendingErr = &LexError{Kind: UnclosedQuote, Pos: openPos, Message: "unterminated single-quoted string"}
	}
	return "", false
}

// scanDoubleQuotedParts consumes a complete "..." run, splitting it into
// literal runs plus any $/` expansions found inside, each tagged
// QuoteDouble (spec §4.2.5: \\, \$, \`, \" and \<newline> are the
// recognized escapes; every other backslash is literal).
func (lx *Lexer) scanDoubleQuotedParts() ([]TokenPart, bool) {
	openPos := lx.here()
	lx.consume(1) // opening "
	var parts []TokenPart
	var lit []byte
	litStart := lx.here()

	flush := func() {
		if len(lit) == 0 {
			return
		}
		parts = append(parts, TokenPart{
			Value: string(lit), Kind: PartLiteral, QuoteType: QuoteDouble,
			Pos: spanFrom(litStart, lx.pos),
		})
		lit = nil
	}

	for !lx.eof() {
		switch lx.cur() {
		case '"':
			flush()
			lx.consume(1)
			return parts, true

		case '\\':
			n := lx.peek(1)
			switch n {
			case '\\', '$', '`', '"':
				if len(lit) == 0 {
					litStart = lx.here()
				}
				lx.consume(2)
				lit = append(lit, n)
			case '\n':
				lx.consume(2)
			default:
				if len(lit) == 0 {
					litStart = lx.here()
				}
				lx.consume(1)
				lit = append(lit, '\\')
			}
			continue

		case '$':
			flush()
			pstart := lx.here()
			if tok, ok := lx.scanDollar(); ok {
				parts = append(parts, TokenPart{
					Value: tok.Lexeme, Kind: partKindForExpansion(tok.Kind),
					QuoteType: QuoteDouble, Pos: spanFrom(pstart, lx.pos),
				})
				litStart = lx.here()
				continue
			}
			lit = append(lit, '$')
			lx.consume(1)

		case '`':
			flush()
			pstart := lx.here()
			if tok, ok := lx.scanBacktick(); ok {
				parts = append(parts, TokenPart{
					Value: tok.Lexeme, Kind: PartExpansion,
					QuoteType: QuoteDouble, Pos: spanFrom(pstart, lx.pos),
				})
				litStart = lx.here()
				continue
			}
			return parts, false

		default:
			if len(lit) == 0 {
				litStart = lx.here()
			}
			lit = append(lit, lx.cur())
			lx.consume(1)
		}
	}
	if lx.pendingErr == nil {
		lx.pendingErr = &LexError{Kind: UnclosedQuote, Pos: openPos, Message: "unterminated double-quoted string"}
	}
	return parts, false
}
