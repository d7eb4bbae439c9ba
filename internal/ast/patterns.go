package ast

// ContainsHole reports whether e is a Hole, a Paren wrapping one, or a
// TupleExpr containing one at any depth — the shape that marks a
// Call's argument as a partial-application site (spec §4.2.5).
func ContainsHole(e Expr) bool {
	switch v := e.(type) {
	case *Hole:
		return true
	case *Paren:
		return ContainsHole(v.Inner)
	case *TupleExpr:
		for _, item := range v.Items {
			if ContainsHole(item) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Unparen strips any number of enclosing Paren wrappers.
func Unparen(e Expr) Expr {
	for {
		p, ok := e.(*Paren)
		if !ok {
			return e
		}
		e = p.Inner
	}
}

// UnparenPat strips any number of enclosing ParenPattern wrappers.
func UnparenPat(p Pattern) Pattern {
	for {
		pp, ok := p.(*ParenPattern)
		if !ok {
			return p
		}
		p = pp.Inner
	}
}
