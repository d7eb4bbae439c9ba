package hir

import (
	"fmt"
	"strings"
)

// Display renders pkg as the deterministic textual dump defined by
// spec §6.5: one node per line, 2-space indentation per nesting
// level, stable field ordering (name/input/output/functors/body/adj/
// ctl/ctl-adj for callables). display_test.go checks this output for
// expected substrings. Items are walked in the table's insertion order,
// matching the arena's own observable ordering contract — never
// re-sorted by id.
func Display(pkg *Package) string {
	w := &writer{}
	w.line(0, "Package:")
	for _, entry := range pkg.Items.Iter() {
		w.writeItem(1, entry.Value)
	}
	if pkg.Entry != nil {
		w.line(1, "Entry:")
		w.writeExpr(2, pkg.Entry)
	}
	return w.b.String()
}

type writer struct {
	b strings.Builder
}

func (w *writer) line(depth int, format string, args ...interface{}) {
	w.b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

func (w *writer) writeItem(depth int, it *Item) {
	w.line(depth, "Item %s %s (%s):", it.Id, it.Span, it.Visibility)
	switch k := it.Kind.(type) {
	case CallableItemKind:
		w.writeCallable(depth+1, k.Decl)
	case NamespaceItemKind:
		w.line(depth+1, "Namespace %s:", k.Name)
		for _, c := range k.Children {
			w.line(depth+2, "Item %s", c)
		}
	case TyItemKind:
		w.line(depth+1, "Ty %s: %s", k.Name, k.Udt)
	case ExportItemKind:
		w.line(depth+1, "Export %s -> %s", k.Name, k.Res)
	}
	for _, a := range it.Attrs {
		w.line(depth+1, "Attr %s", a.Kind)
	}
}

func (w *writer) writeCallable(depth int, c *CallableDecl) {
	w.line(depth, "name: %s", c.Name)
	w.line(depth, "kind: %s", c.Kind)
	w.line(depth, "input:")
	w.writePat(depth+1, c.Input)
	w.line(depth, "output: %s", c.Output)
	w.line(depth, "functors: %s", c.Functors)
	w.writeSpec(depth, "body", c.Body)
	w.writeSpec(depth, "adj", c.Adj)
	w.writeSpec(depth, "ctl", c.Ctl)
	w.writeSpec(depth, "ctl-adj", c.CtlAdj)
}

func (w *writer) writeSpec(depth int, label string, s *SpecDecl) {
	if s == nil {
		return
	}
	w.line(depth, "%s:", label)
	if s.Gen != nil {
		w.line(depth+1, "Gen %s", *s.Gen)
		return
	}
	if s.Input != nil {
		w.line(depth+1, "input:")
		w.writePat(depth+2, s.Input)
	}
	w.writeBlock(depth+1, s.Block)
}

func (w *writer) writePat(depth int, p *Pat) {
	if p == nil {
		w.line(depth, "Pat <elided>")
		return
	}
	switch k := p.Kind.(type) {
	case BindPat:
		w.line(depth, "Pat %s %s Bind %s (Var %s): %s", p.Id, p.Span, k.Name, k.Var, p.Type)
	case DiscardPat:
		w.line(depth, "Pat %s %s Discard: %s", p.Id, p.Span, p.Type)
	case TuplePat:
		w.line(depth, "Pat %s %s Tuple: %s", p.Id, p.Span, p.Type)
		for _, it := range k.Items {
			w.writePat(depth+1, it)
		}
	case ErrPat:
		w.line(depth, "Pat %s %s Err", p.Id, p.Span)
	}
}

func (w *writer) writeBlock(depth int, b *Block) {
	if b == nil {
		w.line(depth, "Block <none>")
		return
	}
	w.line(depth, "Block %s %s: %s", b.Id, b.Span, b.Type)
	for _, s := range b.Stmts {
		w.writeStmt(depth+1, s)
	}
}

func (w *writer) writeStmt(depth int, s *Stmt) {
	switch k := s.Kind.(type) {
	case ExprStmt:
		w.line(depth, "Stmt %s %s Expr:", s.Id, s.Span)
		w.writeExpr(depth+1, k.Expr)
	case SemiStmt:
		w.line(depth, "Stmt %s %s Semi:", s.Id, s.Span)
		w.writeExpr(depth+1, k.Expr)
	case ItemStmt:
		w.line(depth, "Stmt %s %s Item %s", s.Id, s.Span, k.Item)
	case LocalStmt:
		w.line(depth, "Stmt %s %s Local %s:", s.Id, s.Span, k.Mut)
		w.writePat(depth+1, k.Pat)
		w.writeExpr(depth+1, k.Value)
	case QubitStmt:
		w.line(depth, "Stmt %s %s Qubit %s:", s.Id, s.Span, qubitSourceName(k.Source))
		w.writePat(depth+1, k.Pat)
		w.writeQubitInit(depth+1, k.Init)
		if k.Block != nil {
			w.writeBlock(depth+1, k.Block)
		}
	}
}

func qubitSourceName(s QubitSource) string {
	if s == QubitDirty {
		return "Dirty"
	}
	return "Fresh"
}

func (w *writer) writeQubitInit(depth int, init *QubitInit) {
	switch init.Kind {
	case QubitInitSingle:
		w.line(depth, "Init Single")
	case QubitInitArray:
		w.line(depth, "Init Array:")
		w.writeExpr(depth+1, init.Count)
	case QubitInitTuple:
		w.line(depth, "Init Tuple:")
		for _, it := range init.Items {
			w.writeQubitInit(depth+1, it)
		}
	}
}

func (w *writer) writeExpr(depth int, e *Expr) {
	if e == nil {
		w.line(depth, "Expr <none>")
		return
	}
	switch k := e.Kind.(type) {
	case Lit:
		w.line(depth, "Expr %s %s Lit %s: %s", e.Id, e.Span, litText(k), e.Type)
	case VarExpr:
		w.line(depth, "Expr %s %s Var %s: %s", e.Id, e.Span, varText(k), e.Type)
	case UnitExpr:
		w.line(depth, "Expr %s %s Unit: %s", e.Id, e.Span, e.Type)
	case HoleExpr:
		w.line(depth, "Expr %s %s Hole: %s", e.Id, e.Span, e.Type)
	case ErrExpr:
		w.line(depth, "Expr %s %s Err", e.Id, e.Span)
	case TupleExpr:
		w.line(depth, "Expr %s %s Tuple: %s", e.Id, e.Span, e.Type)
		for _, it := range k.Items {
			w.writeExpr(depth+1, it)
		}
	case ArrayExpr:
		w.line(depth, "Expr %s %s Array: %s", e.Id, e.Span, e.Type)
		for _, it := range k.Items {
			w.writeExpr(depth+1, it)
		}
	case ArrayRepeatExpr:
		w.line(depth, "Expr %s %s ArrayRepeat: %s", e.Id, e.Span, e.Type)
		w.writeExpr(depth+1, k.Item)
		w.writeExpr(depth+1, k.Count)
	case BinOpExpr:
		w.line(depth, "Expr %s %s BinOp %s: %s", e.Id, e.Span, binOpText(k.Op), e.Type)
		w.writeExpr(depth+1, k.Lhs)
		w.writeExpr(depth+1, k.Rhs)
	case UnOpExpr:
		w.line(depth, "Expr %s %s UnOp %s: %s", e.Id, e.Span, unOpText(k.Op), e.Type)
		w.writeExpr(depth+1, k.Operand)
	case AssignExpr:
		w.line(depth, "Expr %s %s Assign: %s", e.Id, e.Span, e.Type)
		w.writeExpr(depth+1, k.Lhs)
		w.writeExpr(depth+1, k.Rhs)
	case AssignOpExpr:
		w.line(depth, "Expr %s %s AssignOp %s: %s", e.Id, e.Span, binOpText(k.Op), e.Type)
		w.writeExpr(depth+1, k.Lhs)
		w.writeExpr(depth+1, k.Rhs)
	case AssignFieldExpr:
		w.line(depth, "Expr %s %s AssignField %v: %s", e.Id, e.Span, k.Path, e.Type)
		w.writeExpr(depth+1, k.Container)
		w.writeExpr(depth+1, k.Value)
	case AssignIndexExpr:
		w.line(depth, "Expr %s %s AssignIndex: %s", e.Id, e.Span, e.Type)
		w.writeExpr(depth+1, k.Container)
		w.writeExpr(depth+1, k.Index)
		w.writeExpr(depth+1, k.Value)
	case FieldAccessExpr:
		w.line(depth, "Expr %s %s Field %v: %s", e.Id, e.Span, k.Path, e.Type)
		w.writeExpr(depth+1, k.Container)
	case IndexExpr:
		w.line(depth, "Expr %s %s Index: %s", e.Id, e.Span, e.Type)
		w.writeExpr(depth+1, k.Container)
		w.writeExpr(depth+1, k.Index)
	case RangeExpr:
		w.line(depth, "Expr %s %s Range: %s", e.Id, e.Span, e.Type)
		w.writeExpr(depth+1, k.Start)
		w.writeExpr(depth+1, k.Step)
		w.writeExpr(depth+1, k.End)
	case CallExpr:
		w.line(depth, "Expr %s %s Call: %s", e.Id, e.Span, e.Type)
		w.writeExpr(depth+1, k.Callee)
		w.writeExpr(depth+1, k.Args)
	case ClosureExpr:
		w.line(depth, "Expr %s %s Closure Item %s: %s", e.Id, e.Span, k.Item, e.Type)
	case ConjugateExpr:
		w.line(depth, "Expr %s %s Conjugate: %s", e.Id, e.Span, e.Type)
		w.line(depth+1, "within:")
		w.writeBlock(depth+2, k.Within)
		w.line(depth+1, "apply:")
		w.writeBlock(depth+2, k.Apply)
	case FailExpr:
		w.line(depth, "Expr %s %s Fail: %s", e.Id, e.Span, e.Type)
		w.writeExpr(depth+1, k.Message)
	case ForExpr:
		w.line(depth, "Expr %s %s For: %s", e.Id, e.Span, e.Type)
		w.writePat(depth+1, k.Pat)
		w.writeExpr(depth+1, k.Iter)
		w.writeBlock(depth+1, k.Body)
	case WhileExpr:
		w.line(depth, "Expr %s %s While: %s", e.Id, e.Span, e.Type)
		w.writeExpr(depth+1, k.Cond)
		w.writeBlock(depth+1, k.Body)
	case RepeatUntilExpr:
		w.line(depth, "Expr %s %s RepeatUntil: %s", e.Id, e.Span, e.Type)
		w.writeBlock(depth+1, k.Body)
		w.writeExpr(depth+1, k.Until)
		if k.Fixup != nil {
			w.writeBlock(depth+1, k.Fixup)
		}
	case IfExpr:
		w.line(depth, "Expr %s %s If: %s", e.Id, e.Span, e.Type)
		w.writeExpr(depth+1, k.Cond)
		w.writeBlock(depth+1, k.Then)
		if k.Else != nil {
			w.writeExpr(depth+1, k.Else)
		}
	case BlockExpr:
		w.line(depth, "Expr %s %s Block: %s", e.Id, e.Span, e.Type)
		w.writeBlock(depth+1, k.Block)
	case ReturnExpr:
		w.line(depth, "Expr %s %s Return: %s", e.Id, e.Span, e.Type)
		if k.Value != nil {
			w.writeExpr(depth+1, k.Value)
		}
	case StringExpr:
		w.line(depth, "Expr %s %s String: %s", e.Id, e.Span, e.Type)
		for _, c := range k.Components {
			if c.Expr != nil {
				w.writeExpr(depth+1, c.Expr)
			} else {
				w.line(depth+1, "Lit %q", c.Lit)
			}
		}
	case StructCtorExpr:
		w.line(depth, "Expr %s %s Struct %s: %s", e.Id, e.Span, k.Udt, e.Type)
		for _, f := range k.Fields {
			w.writeExpr(depth+1, f)
		}
	default:
		w.line(depth, "Expr %s %s <unknown>: %s", e.Id, e.Span, e.Type)
	}
}

func litText(l Lit) string {
	switch l.Kind {
	case LitBigInt:
		return l.BigInt
	case LitBool:
		return fmt.Sprintf("%t", l.Bool)
	case LitDouble:
		return fmt.Sprintf("%g", l.Double)
	case LitInt:
		return fmt.Sprintf("%d", l.Int)
	case LitPauli:
		return pauliText(l.Pauli)
	default:
		return resultText(l.Result)
	}
}

func pauliText(p Pauli) string {
	switch p {
	case PauliI:
		return "PauliI"
	case PauliX:
		return "PauliX"
	case PauliY:
		return "PauliY"
	default:
		return "PauliZ"
	}
}

func resultText(r ResultValue) string {
	if r == ResultOne {
		return "One"
	}
	return "Zero"
}

func varText(v VarExpr) string {
	if v.Local != nil {
		return fmt.Sprintf("Local %s", *v.Local)
	}
	return fmt.Sprintf("Item %s", *v.Item)
}

func binOpText(op BinOp) string {
	names := []string{"Add", "Sub", "Mul", "Div", "Mod", "Exp", "AndB", "OrB", "XorB", "Shl", "Shr", "AndL", "OrL", "Eq", "Neq", "Lt", "Lte", "Gt", "Gte"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

func unOpText(op UnOp) string {
	names := []string{"Neg", "NotB", "NotL", "FunctorAdj", "FunctorCtl"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}
