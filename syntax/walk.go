package syntax

// Visitor holds a Visit method invoked for each node Walk encounters. If
// the returned Visitor w is non-nil, Walk visits the node's children with
// w, then calls w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order, mirroring the teacher's
// syntax.Walk contract. node must not be nil.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	defer v.Visit(nil)

	switch x := node.(type) {
	case *TopLevel:
		if x.Body != nil {
			Walk(v, x.Body)
		}
		for _, c := range x.Comments {
			Walk(v, c)
		}
	case *StatementList:
		for _, s := range x.Stmts {
			Walk(v, s)
		}
	case *Statement:
		if x.AndOr != nil {
			Walk(v, x.AndOr)
		}
	case *AndOrList:
		for _, p := range x.Pipelines {
			Walk(v, p)
		}
	case *Pipeline:
		for _, c := range x.Commands {
			Walk(v, c)
		}

	case *SimpleCommand:
		for _, a := range x.Assigns {
			Walk(v, a)
		}
		for _, op := range x.ArrayOps {
			Walk(v, op)
		}
		for i := range x.Words {
			Walk(v, &x.Words[i])
		}
		for _, r := range x.Redirs {
			Walk(v, r)
		}
	case *SubshellGroup:
		if x.Body != nil {
			Walk(v, x.Body)
		}
		walkRedirs(v, x.Redirs)
	case *BraceGroup:
		if x.Body != nil {
			Walk(v, x.Body)
		}
		walkRedirs(v, x.Redirs)
	case *FunctionDef:
		Walk(v, x.Name)
		if x.Body != nil {
			Walk(v, x.Body)
		}
	case *IfConditional:
		Walk(v, x.Cond)
		Walk(v, x.Then)
		for _, e := range x.Elifs {
			Walk(v, e)
		}
		if x.Else != nil {
			Walk(v, x.Else)
		}
		walkRedirs(v, x.Redirs)
	case *ElifClause:
		Walk(v, x.Cond)
		Walk(v, x.Then)
	case *WhileLoop:
		Walk(v, x.Cond)
		Walk(v, x.Body)
		walkRedirs(v, x.Redirs)
	case *UntilLoop:
		Walk(v, x.Cond)
		Walk(v, x.Body)
		walkRedirs(v, x.Redirs)
	case *ForLoop:
		Walk(v, x.Var)
		walkWords(v, x.Words)
		Walk(v, x.Body)
		walkRedirs(v, x.Redirs)
	case *CStyleForLoop:
		Walk(v, x.Body)
		walkRedirs(v, x.Redirs)
	case *SelectLoop:
		Walk(v, x.Var)
		walkWords(v, x.Words)
		Walk(v, x.Body)
		walkRedirs(v, x.Redirs)
	case *CaseConditional:
		Walk(v, &x.Word)
		for _, item := range x.Items {
			Walk(v, item)
		}
		walkRedirs(v, x.Redirs)
	case *CaseItem:
		walkWords(v, x.Patterns)
		if x.Body != nil {
			Walk(v, x.Body)
		}
	case *ArithmeticEvaluation:
		walkRedirs(v, x.Redirs)
	case *EnhancedTestStatement:
		if x.X != nil {
			Walk(v, x.X)
		}
		walkRedirs(v, x.Redirs)
	case *BreakStatement, *ContinueStatement:
		// leaf

	case *TestAnd:
		Walk(v, x.X)
		Walk(v, x.Y)
	case *TestOr:
		Walk(v, x.X)
		Walk(v, x.Y)
	case *TestNot:
		Walk(v, x.X)
	case *TestParen:
		Walk(v, x.X)
	case *TestUnary:
		Walk(v, &x.X)
	case *TestBinary:
		Walk(v, &x.X)
		Walk(v, &x.Y)
	case *TestWord:
		Walk(v, &x.W)

	case *Assign:
		if x.Name != nil {
			Walk(v, x.Name)
		}
		Walk(v, &x.Value)
	case *ArrayAssignment:
		if x.Name != nil {
			Walk(v, x.Name)
		}
		walkWords(v, x.Values)
	case *ArrayElementAssignment:
		if x.Name != nil {
			Walk(v, x.Name)
		}
		Walk(v, &x.Index)
		Walk(v, &x.Value)
	case *Redirect:
		Walk(v, &x.Word)

	case *Word:
		for _, p := range x.Parts {
			Walk(v, p)
		}
	case *Lit, *Variable, *ParamExpansion, *ArithmeticExpansion, *Comment:
		// leaf
	case *CommandSubst:
		if x.Body != nil {
			Walk(v, x.Body)
		}
	case *ProcessSubstitution:
		if x.Body != nil {
			Walk(v, x.Body)
		}
	case *ExtGlobPart:
		// leaf

	default:
		panic("syntax.Walk: unexpected node type")
	}
}

func walkRedirs(v Visitor, redirs []*Redirect) {
	for _, r := range redirs {
		Walk(v, r)
	}
}

func walkWords(v Visitor, words []Word) {
	for i := range words {
		Walk(v, &words[i])
	}
}

// inspector adapts a plain func(Node) bool into a Visitor, matching the
// teacher's Inspect helper.
type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses an AST like Walk, calling f for every node. Walk
// recurses into n's children only if f(n) returns true; for each such n,
// f is called once more with nil after its children have been visited.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
