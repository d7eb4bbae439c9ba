package lower

import (
	"github.com/quantumlang/qcc/internal/ast"
	"github.com/quantumlang/qcc/internal/hir"
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/types"
)

// captureFrame tracks, for one lambda or partial application currently
// being lowered, which locals bound in an enclosing scope it reaches
// into (spec §4.2.5). outer is a snapshot of every local var id bound
// before the closure's own parameters were introduced; only those can
// be captures; order records them in first-reference order, which
// becomes ClosureExpr.Captures.
type captureFrame struct {
	outer map[ids.LocalVarId]bool
	seen  map[ids.LocalVarId]bool
	order []ids.LocalVarId
}

func (l *Lowerer) pushCaptureFrame() *captureFrame {
	outer := make(map[ids.LocalVarId]bool, len(l.bound))
	for _, v := range l.bound {
		outer[v] = true
	}
	f := &captureFrame{outer: outer, seen: map[ids.LocalVarId]bool{}}
	l.captures = append(l.captures, f)
	return f
}

func (l *Lowerer) popCaptureFrame() *captureFrame {
	f := l.captures[len(l.captures)-1]
	l.captures = l.captures[:len(l.captures)-1]
	return f
}

func (l *Lowerer) recordCapture(v ids.LocalVarId) {
	if len(l.captures) == 0 {
		return
	}
	f := l.captures[len(l.captures)-1]
	if f.outer[v] && !f.seen[v] {
		f.seen[v] = true
		f.order = append(f.order, v)
	}
}

// arrowOf reads the checker's recorded type for id as a TyArrow,
// falling back to an all-Unit arrow if the checker left none (a
// recovery filler, not a claim that the call site actually type-checks).
func (l *Lowerer) arrowOf(id ast.AstNodeId) types.TyArrow {
	if arrow, ok := l.tys.TermOrErr(id).(types.TyArrow); ok {
		return arrow
	}
	return types.TyArrow{Input: types.TyUnit{}, Output: types.TyUnit{}}
}

func functorValue(fs types.FunctorSet) types.FunctorSetValue {
	if fs.Value != nil {
		return *fs.Value
	}
	return types.FunctorSetValue{}
}

// newClosureItem lifts decl to a fresh top-level item under the
// innermost enclosing namespace (nil at file scope) and returns its id.
func (l *Lowerer) newClosureItem(span ast.Span, decl *hir.CallableDecl) ids.LocalItemId {
	id := l.assigner.NextItem()
	l.pkg.Items.Insert(id, &hir.Item{
		Id: id, Span: span, Parent: l.currentNamespace, Visibility: hir.Internal,
		Kind: hir.CallableItemKind{Decl: decl},
	})
	return id
}

// lowerLambda lifts a surface lambda to a top-level generated callable
// (spec §4.2.5), replacing it with a ClosureExpr that captures every
// outer local its body references.
func (l *Lowerer) lowerLambda(v *ast.LambdaExpr) *hir.Expr {
	arrow := l.arrowOf(v.Id)

	frame := l.pushCaptureFrame()
	input := l.lowerPat(v.Input, false)
	bodyExpr := l.lowerExpr(v.Body)
	l.popCaptureFrame()

	block := &hir.Block{Id: l.assigner.NextNode(), Type: bodyExpr.Type, Stmts: []*hir.Stmt{{Id: l.assigner.NextNode(), Kind: hir.ExprStmt{Expr: bodyExpr}}}}
	decl := &hir.CallableDecl{
		Id: v.Id, Span: v.Span, Kind: arrow.Kind, Name: l.assigner.FreshName(),
		Input: input, Output: arrow.Output, Functors: functorValue(arrow.Functors),
		Body: &hir.SpecDecl{Span: v.Span, Block: block},
	}
	item := l.newClosureItem(v.Span, decl)
	return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: l.exprType(v.Id), Kind: hir.ClosureExpr{Item: item, Captures: frame.order}}
}

// containsHole reports whether a call's argument shape carries a `_`
// placeholder at its top level: either the argument itself, or (for a
// multi-argument call, whose Arg is a TupleExpr) one of its direct
// items. Nested holes are not legal partial-application sites.
func containsHole(arg ast.Expr) bool {
	if _, ok := arg.(*ast.Hole); ok {
		return true
	}
	if t, ok := arg.(*ast.TupleExpr); ok {
		for _, it := range t.Items {
			if _, isHole := it.(*ast.Hole); isHole {
				return true
			}
		}
	}
	return false
}

// liftPartialApplication rewrites `f(_, y)` into a lifted closure
// taking the held positions as parameters and calling f with the rest
// filled in from the surrounding scope (spec §4.2.5). Non-hole
// arguments are lowered inside the generated callable's own body
// (evaluated each time the closure runs) rather than once at the
// partial-application site; the only values threaded in from outside
// are the callee and any locals those arguments reference, via the
// same capture mechanism a lambda uses.
func (l *Lowerer) liftPartialApplication(v *ast.CallExpr) *hir.Expr {
	var positions []ast.Expr
	if t, ok := v.Arg.(*ast.TupleExpr); ok {
		positions = t.Items
	} else {
		positions = []ast.Expr{v.Arg}
	}

	arrow := l.arrowOf(v.Id)

	frame := l.pushCaptureFrame()
	callee := l.lowerExpr(v.Callee)

	items := make([]*hir.Expr, len(positions))
	holePats := make([]*hir.Pat, 0, len(positions))
	for i, p := range positions {
		if hole, ok := p.(*ast.Hole); ok {
			varId := l.assigner.NextLocalVar()
			name := l.assigner.FreshName()
			holePats = append(holePats, &hir.Pat{
				Id: l.assigner.NextNode(), Span: hole.Span, Type: l.exprType(hole.Id),
				Kind: hir.BindPat{Name: name, Var: varId},
			})
			v := varId
			items[i] = &hir.Expr{Id: l.assigner.NextNode(), Span: hole.Span, Type: l.exprType(hole.Id), Kind: hir.VarExpr{Local: &v}}
			continue
		}
		items[i] = l.lowerExpr(p)
	}
	l.popCaptureFrame()

	argsTy := make([]types.Ty, len(items))
	for i, it := range items {
		argsTy[i] = it.Type
	}
	args := &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: types.TyTuple{Items: argsTy}, Kind: hir.TupleExpr{Items: items}}
	call := &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: arrow.Output, Kind: hir.CallExpr{Callee: callee, Args: args}}
	block := &hir.Block{Id: l.assigner.NextNode(), Type: call.Type, Stmts: []*hir.Stmt{{Id: l.assigner.NextNode(), Kind: hir.ExprStmt{Expr: call}}}}

	var input *hir.Pat
	if len(holePats) == 1 {
		input = holePats[0]
	} else {
		input = &hir.Pat{Type: types.TyTuple{}, Kind: hir.TuplePat{Items: holePats}}
	}

	decl := &hir.CallableDecl{
		Id: v.Id, Span: v.Span, Kind: arrow.Kind, Name: l.assigner.FreshName(),
		Input: input, Output: arrow.Output, Functors: functorValue(arrow.Functors),
		Body: &hir.SpecDecl{Span: v.Span, Block: block},
	}
	item := l.newClosureItem(v.Span, decl)
	return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: l.exprType(v.Id), Kind: hir.ClosureExpr{Item: item, Captures: frame.order}}
}
