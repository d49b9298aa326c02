package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultBraceExpansionLimit bounds the number of words a single call to
// Expand may produce, guarding against pathological input such as
// {1..99999}{1..99999} (spec §4.1, §8).
const DefaultBraceExpansionLimit = 65536

// newlineSentinel stands in, inside the intermediate word list, for an
// unquoted newline: a real lexer NEWLINE that Expand must carry through to
// its output untouched. No unquoted word ever equals this verbatim (a bare
// newline outside quotes is always a delimiter, never word content), so it
// can't collide with real input.
const newlineSentinel = "\n"

// Expand performs textual brace expansion over raw source text, before any
// tokenization happens (spec §4.1). It is a preprocessing step: the lexer
// never sees literal {a,b} syntax once Expand has run over the text.
//
// Expansion operates word by word (whitespace-delimited, quote-aware,
// across the whole text rather than line by line, so a quoted word that
// legitimately spans multiple physical lines keeps its embedded newlines
// intact): each brace group multiplies its enclosing word into several,
// which are then space-joined back into the output. A lone {x} with no
// comma or ".." sequence is left untouched, matching the rest of the shell
// corpus this is modeled on. Unquoted newlines are preserved verbatim
// rather than folded into spaces: callers such as Parse feed the result
// straight into the lexer, which relies on NEWLINE tokens to delimit
// statements and to trigger heredoc body collection, so Expand must never
// consume a newline the way it consumes a space or tab.
func Expand(text string) (string, error) {
	words := splitWords(text)
	count := 0
	var out []string
	needSpace := false
	for _, w := range words {
		if w == newlineSentinel {
			out = append(out, w)
			needSpace = false
			continue
		}
		expanded, err := expandWord(w, &count, DefaultBraceExpansionLimit)
		if err != nil {
			return "", err
		}
		for _, e := range expanded {
			if needSpace {
				out = append(out, " ")
			}
			out = append(out, e)
			needSpace = true
		}
	}
	return strings.Join(out, ""), nil
}

// splitWords breaks text on unquoted whitespace, keeping quoted runs (and
// their delimiters) intact as part of the word they sit in. An unquoted
// newline is emitted as its own newlineSentinel entry rather than simply
// discarded, so Expand can rebuild the original line structure; a newline
// inside an open quote is kept as literal content of the word it sits in,
// the same as any other quoted byte.
func splitWords(text string) []string {
	var words []string
	var cur []byte
	inSingle, inDouble := false, false
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = nil
		}
	}
	for i := 0; i < len(text); i++ {
		b := text[i]
		switch {
		case inSingle:
			cur = append(cur, b)
			if b == '\'' {
				inSingle = false
			}
		case inDouble:
			cur = append(cur, b)
			if b == '\\' && i+1 < len(text) {
				i++
				cur = append(cur, text[i])
				continue
			}
			if b == '"' {
				inDouble = false
			}
		case b == '\'':
			inSingle = true
			cur = append(cur, b)
		case b == '"':
			inDouble = true
			cur = append(cur, b)
		case b == '\n':
			flush()
			words = append(words, newlineSentinel)
		case b == ' ' || b == '\t':
			flush()
		case b == '\\' && i+1 < len(text):
			cur = append(cur, b, text[i+1])
			i++
		default:
			cur = append(cur, b)
		}
	}
	flush()
	return words
}

// expandWord recursively expands the first brace group found in word,
// cartesian-multiplying it against whatever surrounds it, until no
// expandable group remains.
func expandWord(word string, count *int, limit int) ([]string, error) {
	open, close, items, ok := findBraceGroup(word)
	if !ok {
		*count++
		if *count > limit {
			return nil, &BraceExpansionError{Limit: limit}
		}
		return []string{word}, nil
	}
	prefix, suffix := word[:open], word[close+1:]
	var out []string
	for _, it := range items {
		sub, err := expandWord(prefix+it+suffix, count, limit)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// findBraceGroup locates the first expandable {...} in s: a balanced,
// unquoted brace group containing either a top-level comma list or a
// "start..end[..step]" sequence. Groups that are balanced but contain
// neither (a lone {x}) are skipped over, since bash itself reduces those
// to literal text.
func findBraceGroup(s string) (open, close int, items []string, ok bool) {
	i := 0
	for i < len(s) {
		if s[i] != '{' || isQuotedAt(s, i) {
			i++
			continue
		}
		if c, its, good := tryBraceGroup(s, i); good {
			return i, c, its, true
		}
		i++
	}
	return 0, 0, nil, false
}

// tryBraceGroup attempts to parse a brace group opening at s[open]=='{'.
func tryBraceGroup(s string, open int) (close int, items []string, ok bool) {
	depth := 1
	j := open + 1
	for j < len(s) {
		switch s[j] {
		case '\\':
			j += 2
			continue
		case '\'':
			if end := skipQuotedRun(s, j, '\''); end < 0 {
				return 0, nil, false
			} else {
				j = end
				continue
			}
		case '"':
			if end := skipQuotedRun(s, j, '"'); end < 0 {
				return 0, nil, false
			} else {
				j = end
				continue
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				content := s[open+1 : j]
				its, good := braceContentItems(content)
				return j, its, good
			}
		}
		j++
	}
	return 0, nil, false
}

func skipQuotedRun(s string, idx int, q byte) int {
	i := idx + 1
	for i < len(s) {
		if s[i] == q {
			return i + 1
		}
		i++
	}
	return -1
}

// isQuotedAt reports whether byte s[i] sits inside a single- or
// double-quoted run, scanning from the start of s.
func isQuotedAt(s string, i int) bool {
	inSingle, inDouble := false, false
	for j := 0; j < i && j < len(s); j++ {
		switch {
		case inSingle:
			if s[j] == '\'' {
				inSingle = false
			}
		case inDouble:
			if s[j] == '\\' {
				j++
			} else if s[j] == '"' {
				inDouble = false
			}
		case s[j] == '\'':
			inSingle = true
		case s[j] == '"':
			inDouble = true
		case s[j] == '\\':
			j++
		}
	}
	return inSingle || inDouble
}

// braceContentItems classifies the content between { and }: a top-level
// comma list, a "a..b[..c]" sequence, or neither (not expandable).
func braceContentItems(content string) ([]string, bool) {
	if parts := splitTopLevel(content, ','); len(parts) > 1 {
		return parts, true
	}
	if items, ok := expandSequence(content); ok {
		return items, true
	}
	return nil, false
}

// splitTopLevel splits content on sep, ignoring occurrences inside nested
// braces or quotes.
func splitTopLevel(content string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	i := 0
	for i < len(content) {
		switch content[i] {
		case '\\':
			i += 2
			continue
		case '\'':
			if end := skipQuotedRun(content, i, '\''); end > 0 {
				i = end
				continue
			}
		case '"':
			if end := skipQuotedRun(content, i, '"'); end > 0 {
				i = end
				continue
			}
		case '{':
			depth++
		case '}':
			depth--
		default:
			if depth == 0 && content[i] == sep {
				parts = append(parts, content[last:i])
				last = i + 1
			}
		}
		i++
	}
	parts = append(parts, content[last:])
	return parts
}

// expandSequence recognizes "start..end" or "start..end..step", where
// start/end are both integers or both single letters.
func expandSequence(content string) ([]string, bool) {
	segs := splitTopLevelDots(content)
	if len(segs) != 2 && len(segs) != 3 {
		return nil, false
	}
	start, end := segs[0], segs[1]
	step := 1
	if len(segs) == 3 {
		n, err := strconv.Atoi(segs[2])
		if err != nil || n == 0 {
			return nil, false
		}
		step = n
		if step < 0 {
			step = -step
		}
	}

	if len(start) == 1 && len(end) == 1 && isAlpha(start[0]) && isAlpha(end[0]) {
		return expandCharSeq(start[0], end[0], step), true
	}

	startN, err1 := strconv.Atoi(start)
	endN, err2 := strconv.Atoi(end)
	if err1 != nil || err2 != nil {
		return nil, false
	}
	width := 0
	if hasLeadingZero(start) || hasLeadingZero(end) {
		w1, w2 := len(strings.TrimPrefix(start, "-")), len(strings.TrimPrefix(end, "-"))
		if w1 > w2 {
			width = w1
		} else {
			width = w2
		}
	}
	return expandIntSeq(startN, endN, step, width), true
}

func hasLeadingZero(s string) bool {
	s = strings.TrimPrefix(s, "-")
	return len(s) > 1 && s[0] == '0'
}

func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func expandCharSeq(start, end byte, step int) []string {
	var out []string
	if start <= end {
		for c := int(start); c <= int(end); c += step {
			out = append(out, string(byte(c)))
		}
	} else {
		for c := int(start); c >= int(end); c -= step {
			out = append(out, string(byte(c)))
		}
	}
	return out
}

func expandIntSeq(start, end, step, width int) []string {
	var out []string
	format := func(n int) string {
		if width == 0 {
			return strconv.Itoa(n)
		}
		neg := n < 0
		if neg {
			n = -n
		}
		s := fmt.Sprintf("%0*d", width, n)
		if neg {
			return "-" + s
		}
		return s
	}
	if start <= end {
		for n := start; n <= end; n += step {
			out = append(out, format(n))
		}
	} else {
		for n := start; n >= end; n -= step {
			out = append(out, format(n))
		}
	}
	return out
}

// splitTopLevelDots finds "start..end[..step]" segments separated by
// literal ".." at nesting depth 0, with no top-level comma present
// (braceContentItems already tried the comma-list interpretation first).
func splitTopLevelDots(content string) []string {
	depth := 0
	var cuts []int
	i := 0
	for i < len(content) {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
		case '.':
			if depth == 0 && i+1 < len(content) && content[i+1] == '.' {
				cuts = append(cuts, i)
				i++
			}
		}
		i++
	}
	if len(cuts) == 0 {
		return nil
	}
	var segs []string
	last := 0
	for _, c := range cuts {
		segs = append(segs, content[last:c])
		last = c + 2
	}
	segs = append(segs, content[last:])
	return segs
}
