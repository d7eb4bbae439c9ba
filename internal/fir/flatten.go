package fir

import (
	"fmt"

	"github.com/quantumlang/qcc/internal/hir"
	"github.com/quantumlang/qcc/internal/ids"
)

// Flatten lowers a fully-resolved HIR package to FIR: every
// expression, pattern, and statement is interned into pkg's dense
// tables (blocks are inlined into the graph, not interned), and each
// callable specialization gets its own ExecGraph.
// An item whose input pattern contains a hir.ErrPat is skipped rather
// than flattened, matching the HIR contract that ErrPat never reaches
// a correctly-lowered program (spec §3.7).
func Flatten(h *hir.Package) (*Package, error) {
	f := newFlattener()
	pkg := f.pkg

	for _, entry := range h.Items.Iter() {
		item, err := f.flattenItem(entry.Value)
		if err != nil {
			return nil, err
		}
		if item != nil {
			pkg.Items.Insert(entry.Value.Id, item)
		}
	}

	if h.Entry != nil {
		var g ExecGraph
		g, _, err := f.emitExpr(g, h.Entry)
		if err != nil {
			return nil, err
		}
		g = append(g, Ret{})
		pkg.Entry = &g
	}

	return pkg, nil
}

type flattener struct {
	pkg        *Package
	exprCount  uint32
	patCount   uint32
	stmtCount  uint32
}

func newFlattener() *flattener {
	return &flattener{pkg: NewPackage()}
}

func (f *flattener) nextExpr() ids.ExprId {
	id := ids.ExprId(f.exprCount)
	f.exprCount++
	return id
}

func (f *flattener) nextPat() ids.PatId {
	id := ids.PatId(f.patCount)
	f.patCount++
	return id
}

func (f *flattener) nextStmt() ids.StmtId {
	id := ids.StmtId(f.stmtCount)
	f.stmtCount++
	return id
}

func (f *flattener) flattenItem(it *hir.Item) (*Item, error) {
	switch k := it.Kind.(type) {
	case hir.CallableItemKind:
		decl, err := f.flattenCallable(k.Decl)
		if err != nil {
			return nil, err
		}
		if decl == nil {
			return nil, nil
		}
		return &Item{Id: it.Id, Visibility: int(it.Visibility), Kind: CallableItemKind{Decl: decl}}, nil
	case hir.TyItemKind:
		return &Item{Id: it.Id, Visibility: int(it.Visibility), Kind: TyItemKind{Name: k.Name, Udt: k.Udt}}, nil
	default:
		// Namespace and Export items are structural only; they carry no
		// executable content and are dropped once lowering is complete.
		return nil, nil
	}
}

func (f *flattener) flattenCallable(c *hir.CallableDecl) (*CallableDecl, error) {
	if containsErrPat(c.Input) {
		return nil, nil
	}
	input, err := f.internPat(c.Input)
	if err != nil {
		return nil, err
	}
	decl := &CallableDecl{
		Name:     c.Name,
		Kind:     c.Kind,
		Input:    input,
		Output:   c.Output,
		Functors: c.Functors,
	}
	for _, pair := range []struct {
		spec *hir.SpecDecl
		dst  **ExecGraph
	}{
		{c.Body, &decl.Body},
		{c.Adj, &decl.Adj},
		{c.Ctl, &decl.Ctl},
		{c.CtlAdj, &decl.CtlAdj},
	} {
		if pair.spec == nil || pair.spec.Block == nil {
			continue
		}
		g, err := f.flattenBlockToGraph(pair.spec.Block)
		if err != nil {
			return nil, err
		}
		*pair.dst = &g
	}
	return decl, nil
}

func containsErrPat(p *hir.Pat) bool {
	if p == nil {
		return false
	}
	switch k := p.Kind.(type) {
	case hir.ErrPat:
		return true
	case hir.TuplePat:
		for _, it := range k.Items {
			if containsErrPat(it) {
				return true
			}
		}
	}
	return false
}

// flattenBlockToGraph compiles a block to a self-contained exec graph
// ending in Ret, for use as a specialization body.
func (f *flattener) flattenBlockToGraph(b *hir.Block) (ExecGraph, error) {
	var g ExecGraph
	g = append(g, PushScope{})
	g, err := f.emitBlock(g, b)
	if err != nil {
		return nil, err
	}
	g = append(g, PopScope{}, Ret{})
	return g, nil
}

// emitBlock appends the flattened instructions for b's statements to
// g, leaving the block's trailing-expression value (or Unit) as the
// current result.
func (f *flattener) emitBlock(g ExecGraph, b *hir.Block) (ExecGraph, error) {
	if b == nil {
		return append(g, Unit{}), nil
	}
	sawValue := false
	for i, stmt := range b.Stmts {
		isLast := i == len(b.Stmts)-1
		var err error
		g, sawValue, err = f.emitStmt(g, stmt, isLast)
		if err != nil {
			return nil, err
		}
	}
	if !sawValue {
		g = append(g, Unit{})
	}
	g = append(g, BlockEnd{})
	return g, nil
}

// emitStmt appends stmt's instructions to g. It reports whether this
// statement left the block's value in the current-result register
// (true only for the trailing ExprStmt, which is how a Q#-like block
// produces a value without an explicit `return`).
func (f *flattener) emitStmt(g ExecGraph, s *hir.Stmt, isLast bool) (ExecGraph, bool, error) {
	switch k := s.Kind.(type) {
	case hir.ExprStmt:
		g, valueId, err := f.emitExpr(g, k.Expr)
		if err != nil {
			return nil, false, err
		}
		sid := f.nextStmt()
		f.pkg.Stmts.Insert(sid, &Stmt{Kind: ExprStmt{Expr: valueId}})
		return g, isLast, nil
	case hir.SemiStmt:
		g, valueId, err := f.emitExpr(g, k.Expr)
		if err != nil {
			return nil, false, err
		}
		sid := f.nextStmt()
		f.pkg.Stmts.Insert(sid, &Stmt{Kind: SemiStmt{Expr: valueId}})
		return g, false, nil
	case hir.LocalStmt:
		g, valueId, err := f.emitExpr(g, k.Value)
		if err != nil {
			return nil, false, err
		}
		pat, err := f.internPat(k.Pat)
		if err != nil {
			return nil, false, err
		}
		sid := f.nextStmt()
		f.pkg.Stmts.Insert(sid, &Stmt{Kind: LocalStmt{Pat: pat, Value: valueId}})
		if bindVar, ok := singleBindVar(f.pkg.Pats.MustGet(pat)); ok {
			g = append(g, Bind{Var: bindVar})
		}
		return g, false, nil
	case hir.ItemStmt:
		sid := f.nextStmt()
		f.pkg.Stmts.Insert(sid, &Stmt{Kind: ItemStmt{Item: k.Item}})
		return g, false, nil
	case hir.QubitStmt:
		return nil, false, fmt.Errorf("fir: flatten: unresolved QubitStmt reached FIR lowering; run internal/qubitalloc first")
	default:
		return nil, false, fmt.Errorf("fir: flatten: unhandled stmt kind %T", s.Kind)
	}
}

func singleBindVar(p *Pat) (ids.LocalVarId, bool) {
	if b, ok := p.Kind.(BindPat); ok {
		return b.Var, true
	}
	return 0, false
}

func (f *flattener) internPat(p *hir.Pat) (ids.PatId, error) {
	if p == nil {
		id := f.nextPat()
		f.pkg.Pats.Insert(id, &Pat{Kind: DiscardPat{}})
		return id, nil
	}
	id := f.nextPat()
	switch k := p.Kind.(type) {
	case hir.BindPat:
		f.pkg.Pats.Insert(id, &Pat{Type: p.Type, Kind: BindPat{Name: k.Name, Var: k.Var}})
	case hir.DiscardPat:
		f.pkg.Pats.Insert(id, &Pat{Type: p.Type, Kind: DiscardPat{}})
	case hir.TuplePat:
		items := make([]ids.PatId, len(k.Items))
		for i, it := range k.Items {
			sub, err := f.internPat(it)
			if err != nil {
				return 0, err
			}
			items[i] = sub
		}
		f.pkg.Pats.Insert(id, &Pat{Type: p.Type, Kind: TuplePat{Items: items}})
	case hir.ErrPat:
		return 0, fmt.Errorf("fir: flatten: ErrPat reached FIR lowering")
	}
	return id, nil
}

// emitExpr appends e's instructions to g, leaving its value as the
// current result, and returns the id under which e's table entry was
// interned. Structured control flow (If/While/RepeatUntil/Block/
// Return) compiles to explicit Jump/JumpIf/JumpIfNot sequences rather
// than a single EvalExpr, but every hir.Expr still gets exactly one
// Exprs-table entry so every id a statement records resolves to a
// real value — the table entry for a control-flow expression just
// isn't itself re-evaluated by EvalExpr, since its graph is already
// inlined at the point of use.
func (f *flattener) emitExpr(g ExecGraph, e *hir.Expr) (ExecGraph, ids.ExprId, error) {
	switch k := e.Kind.(type) {
	case hir.IfExpr:
		id := f.internStructuralExpr(e)
		g, err := f.emitIf(g, k)
		return g, id, err
	case hir.WhileExpr:
		id := f.internStructuralExpr(e)
		g, err := f.emitWhile(g, k)
		return g, id, err
	case hir.BlockExpr:
		id := f.internStructuralExpr(e)
		g, err := f.emitBlock(g, k.Block)
		return g, id, err
	case hir.ReturnExpr:
		id := f.internStructuralExpr(e)
		var err error
		if k.Value != nil {
			g, _, err = f.emitExpr(g, k.Value)
		} else {
			g = append(g, Unit{})
		}
		if err != nil {
			return nil, 0, err
		}
		return append(g, Ret{}), id, nil
	default:
		id := f.internLeafExpr(e)
		return append(g, EvalExpr{Expr: id}), id, nil
	}
}

// internStructuralExpr interns a placeholder table entry for a
// control-flow expression, whose real value is produced by the
// instructions emitExpr inlines at the call site rather than by
// re-evaluating this entry.
func (f *flattener) internStructuralExpr(e *hir.Expr) ids.ExprId {
	id := f.nextExpr()
	f.pkg.Exprs.Insert(id, &Expr{Type: e.Type, Kind: UnitExpr{}})
	return id
}

// emitIf flattens `if cond { then } else { else }` into:
//
//	<cond>
//	JumpIfNot elseLabel
//	<then>
//	Jump endLabel
//	elseLabel: <else, or Unit>
//	endLabel:
func (f *flattener) emitIf(g ExecGraph, k hir.IfExpr) (ExecGraph, error) {
	g, _, err := f.emitExpr(g, k.Cond)
	if err != nil {
		return nil, err
	}
	jumpIfNotIdx := len(g)
	g = append(g, JumpIfNot{})
	g, err = f.emitBlock(g, k.Then)
	if err != nil {
		return nil, err
	}
	jumpEndIdx := len(g)
	g = append(g, Jump{})
	elseStart := len(g)
	if k.Else != nil {
		g, _, err = f.emitExpr(g, k.Else)
		if err != nil {
			return nil, err
		}
	} else {
		g = append(g, Unit{})
	}
	end := len(g)
	g[jumpIfNotIdx] = JumpIfNot{Target: elseStart}
	g[jumpEndIdx] = Jump{Target: end}
	return g, nil
}

// emitWhile flattens `while cond { body }` into:
//
//	loop: <cond>
//	JumpIfNot end
//	<body>
//	Jump loop
//	end: Unit
func (f *flattener) emitWhile(g ExecGraph, k hir.WhileExpr) (ExecGraph, error) {
	loopStart := len(g)
	g, _, err := f.emitExpr(g, k.Cond)
	if err != nil {
		return nil, err
	}
	jumpIfNotIdx := len(g)
	g = append(g, JumpIfNot{})
	g, err = f.emitBlock(g, k.Body)
	if err != nil {
		return nil, err
	}
	g = append(g, Jump{Target: loopStart})
	end := len(g)
	g[jumpIfNotIdx] = JumpIfNot{Target: end}
	g = append(g, Unit{})
	return g, nil
}

// internLeafExpr interns e (and, recursively, its non-control-flow
// children) into the Exprs table and returns its id.
func (f *flattener) internLeafExpr(e *hir.Expr) ids.ExprId {
	id := f.nextExpr()
	var kind ExprKind
	switch k := e.Kind.(type) {
	case hir.Lit:
		kind = Lit{Kind: k.Kind, Int: k.Int, BigInt: k.BigInt, Bool: k.Bool, Double: k.Double, Pauli: k.Pauli, Result: k.Result}
	case hir.VarExpr:
		kind = VarExpr{Local: k.Local, Item: k.Item, Generics: k.Generics}
	case hir.UnitExpr:
		kind = UnitExpr{}
	case hir.TupleExpr:
		items := make([]ids.ExprId, len(k.Items))
		for i, it := range k.Items {
			items[i] = f.internLeafExpr(it)
		}
		kind = TupleExpr{Items: items}
	case hir.ArrayExpr:
		items := make([]ids.ExprId, len(k.Items))
		for i, it := range k.Items {
			items[i] = f.internLeafExpr(it)
		}
		kind = ArrayExpr{Items: items}
	case hir.ArrayRepeatExpr:
		kind = ArrayRepeatExpr{Item: f.internLeafExpr(k.Item), Count: f.internLeafExpr(k.Count)}
	case hir.BinOpExpr:
		kind = BinOpExpr{Op: k.Op, Lhs: f.internLeafExpr(k.Lhs), Rhs: f.internLeafExpr(k.Rhs)}
	case hir.UnOpExpr:
		kind = UnOpExpr{Op: k.Op, Operand: f.internLeafExpr(k.Operand)}
	case hir.AssignExpr:
		kind = AssignExpr{Lhs: f.internLeafExpr(k.Lhs), Rhs: f.internLeafExpr(k.Rhs)}
	case hir.AssignOpExpr:
		kind = AssignOpExpr{Op: k.Op, Lhs: f.internLeafExpr(k.Lhs), Rhs: f.internLeafExpr(k.Rhs)}
	case hir.CallExpr:
		kind = CallExpr{Callee: f.internLeafExpr(k.Callee), Args: f.internLeafExpr(k.Args)}
	case hir.IndexExpr:
		kind = IndexExpr{Container: f.internLeafExpr(k.Container), Index: f.internLeafExpr(k.Index)}
	case hir.FieldAccessExpr:
		kind = FieldAccessExpr{Container: f.internLeafExpr(k.Container), Path: k.Path}
	case hir.RangeExpr:
		var start, step, end *ids.ExprId
		if k.Start != nil {
			id := f.internLeafExpr(k.Start)
			start = &id
		}
		if k.Step != nil {
			id := f.internLeafExpr(k.Step)
			step = &id
		}
		if k.End != nil {
			id := f.internLeafExpr(k.End)
			end = &id
		}
		kind = RangeExpr{Start: start, Step: step, End: end}
	case hir.FailExpr:
		kind = FailExpr{Message: f.internLeafExpr(k.Message)}
	case hir.ClosureExpr:
		kind = ClosureExpr{Item: ids.StoreItemId{Item: k.Item}, Captures: k.Captures}
	case hir.StringExpr:
		comps := make([]StringComponent, len(k.Components))
		for i, c := range k.Components {
			if c.Expr != nil {
				id := f.internLeafExpr(c.Expr)
				comps[i] = StringComponent{Expr: &id}
			} else {
				comps[i] = StringComponent{Lit: c.Lit}
			}
		}
		kind = StringExpr{Components: comps}
	case hir.StructCtorExpr:
		fields := make([]ids.ExprId, len(k.Fields))
		for i, fd := range k.Fields {
			fields[i] = f.internLeafExpr(fd)
		}
		kind = StructCtorExpr{Udt: k.Udt, Fields: fields}
	case hir.HoleExpr, hir.ErrExpr:
		kind = UnitExpr{}
	default:
		kind = UnitExpr{}
	}
	f.pkg.Exprs.Insert(id, &Expr{Type: e.Type, Kind: kind})
	return id
}
