package syntax

import "rashparse.dev/rash/token"

// CollectHeredocs pairs heredoc bodies gathered during lexing with their
// introducing Redirect nodes, in left-to-right source order (spec §4.5:
// heredoc collection is a distinct pass from parsing, run once the AST
// exists, since only the AST fixes which << belongs to which statement).
//
// It mutates redirects in place: HeredocContent, HeredocQuoted and
// StripTabs are filled from bodies; an unconsumed body at the end, or a
// heredoc redirect left without a body, is reported as an error.
func CollectHeredocs(top *TopLevel, bodies []HeredocBody) error {
	idx := 0
	var walkErr error
	Inspect(top, func(n Node) bool {
		if walkErr != nil {
			return false
		}
		r, ok := n.(*Redirect)
		if !ok || (r.Op != token.REDIR_HEREDOC && r.Op != token.REDIR_HEREDOC_S) {
			return true
		}
		if idx >= len(bodies) {
			walkErr = &UnterminatedHeredocError{Delim: r.Word.Lit(), Pos: r.Pos()}
			return false
		}
		body := bodies[idx]
		idx++
		r.HeredocContent = body.Content
		r.HeredocQuoted = body.Quoted
		r.StripTabs = r.Op == token.REDIR_HEREDOC_S
		return true
	})
	if walkErr != nil {
		return walkErr
	}
	if idx < len(bodies) {
		return &UnterminatedHeredocError{Delim: "", Pos: top.Pos()}
	}
	return nil
}
