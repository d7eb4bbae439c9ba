package lower

import (
	"github.com/quantumlang/qcc/internal/ast"
	"github.com/quantumlang/qcc/internal/errors"
	"github.com/quantumlang/qcc/internal/hir"
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/resolve"
	"github.com/quantumlang/qcc/internal/types"
)

var binOps = map[string]hir.BinOp{
	"+": hir.BinAdd, "-": hir.BinSub, "*": hir.BinMul, "/": hir.BinDiv, "%": hir.BinMod,
	"^": hir.BinExp, "&&&": hir.BinAndB, "|||": hir.BinOrB, "^^^": hir.BinXorB,
	"<<<": hir.BinShl, ">>>": hir.BinShr, "and": hir.BinAndL, "or": hir.BinOrL,
	"==": hir.BinEq, "!=": hir.BinNeq, "<": hir.BinLt, "<=": hir.BinLte, ">": hir.BinGt, ">=": hir.BinGte,
}

var unOps = map[string]hir.UnOp{
	"-": hir.UnNeg, "~~~": hir.UnNotB, "not": hir.UnNotL, "Adjoint": hir.UnFunctorAdj, "Controlled": hir.UnFunctorCtl,
}

func (l *Lowerer) exprType(id ast.AstNodeId) types.Ty { return l.tys.TermOrErr(id) }

// lowerExpr translates one surface expression into its HIR form. Most
// cases are a direct structural copy with the checker's recorded type
// attached; AssignUpdateExpr and dotted field access are the two
// desugarings that change shape (spec §4.2.2, §4.2.6).
func (l *Lowerer) lowerExpr(e ast.Expr) *hir.Expr {
	switch v := e.(type) {
	case *ast.Paren:
		return l.lowerExpr(v.Inner)

	case *ast.Hole:
		// A legal `_` is consumed directly by liftPartialApplication
		// before reaching this dispatch; one reaching here is nested
		// deeper than a call's top-level argument shape allows.
		l.errs = append(l.errs, l.errorf(errors.LOW006, v.Span, "`_` is only legal inside a call's argument shape", nil))
		return l.errExpr(v.Span)

	case *ast.Lit:
		return l.lowerLit(v)

	case *ast.Array:
		items := make([]*hir.Expr, len(v.Items))
		for i, it := range v.Items {
			items[i] = l.lowerExpr(it)
		}
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: l.exprType(v.Id), Kind: hir.ArrayExpr{Items: items}}

	case *ast.ArrayRepeat:
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: l.exprType(v.Id),
			Kind: hir.ArrayRepeatExpr{Item: l.lowerExpr(v.Value), Count: l.lowerExpr(v.Count)}}

	case *ast.TupleExpr:
		items := make([]*hir.Expr, len(v.Items))
		for i, it := range v.Items {
			items[i] = l.lowerExpr(it)
		}
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: l.exprType(v.Id), Kind: hir.TupleExpr{Items: items}}

	case *ast.StructExpr:
		return l.lowerStructExpr(v)

	case *ast.RangeExpr:
		r := hir.RangeExpr{}
		if v.Start != nil {
			r.Start = l.lowerExpr(v.Start)
		}
		if v.Step != nil {
			r.Step = l.lowerExpr(v.Step)
		}
		if v.End != nil {
			r.End = l.lowerExpr(v.End)
		}
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: l.exprType(v.Id), Kind: r}

	case *ast.IndexExpr:
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: l.exprType(v.Id),
			Kind: hir.IndexExpr{Container: l.lowerExpr(v.Container), Index: l.lowerExpr(v.Index)}}

	case *ast.FieldExpr:
		return l.lowerFieldExpr(v)

	case *ast.BinOpExpr:
		op, ok := binOps[v.Op]
		if !ok {
			op = hir.BinEq
		}
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: l.exprType(v.Id),
			Kind: hir.BinOpExpr{Op: op, Lhs: l.lowerExpr(v.Left), Rhs: l.lowerExpr(v.Right)}}

	case *ast.UnOpExpr:
		op, ok := unOps[v.Op]
		if !ok {
			op = hir.UnNotL
		}
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: l.exprType(v.Id),
			Kind: hir.UnOpExpr{Op: op, Operand: l.lowerExpr(v.Operand)}}

	case *ast.AssignExpr:
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: types.TyUnit{},
			Kind: hir.AssignExpr{Lhs: l.lowerExpr(v.Target), Rhs: l.lowerExpr(v.Value)}}

	case *ast.AssignOpExpr:
		op, ok := binOps[v.Op]
		if !ok {
			op = hir.BinEq
		}
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: types.TyUnit{},
			Kind: hir.AssignOpExpr{Op: op, Lhs: l.lowerExpr(v.Target), Rhs: l.lowerExpr(v.Value)}}

	case *ast.AssignUpdateExpr:
		return l.lowerAssignUpdate(v)

	case *ast.CallExpr:
		return l.lowerCallExpr(v)

	case *ast.LambdaExpr:
		return l.lowerLambda(v)

	case *ast.ConjugateExpr:
		within, err := l.lowerBlock(v.Within)
		if err != nil {
			l.errs = append(l.errs, err)
		}
		apply, err := l.lowerBlock(v.Apply)
		if err != nil {
			l.errs = append(l.errs, err)
		}
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: apply.Type, Kind: hir.ConjugateExpr{Within: within, Apply: apply}}

	case *ast.FailExpr:
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: types.TyErr{}, Kind: hir.FailExpr{Message: l.lowerExpr(v.Message)}}

	case *ast.ForExpr:
		pat := l.lowerPat(v.Pat, false)
		iter := l.lowerExpr(v.Iter)
		body, err := l.lowerBlock(v.Body)
		if err != nil {
			l.errs = append(l.errs, err)
		}
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: types.TyUnit{}, Kind: hir.ForExpr{Pat: pat, Iter: iter, Body: body}}

	case *ast.WhileExpr:
		cond := l.lowerExpr(v.Cond)
		body, err := l.lowerBlock(v.Body)
		if err != nil {
			l.errs = append(l.errs, err)
		}
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: types.TyUnit{}, Kind: hir.WhileExpr{Cond: cond, Body: body}}

	case *ast.RepeatExpr:
		body, err := l.lowerBlock(v.Body)
		if err != nil {
			l.errs = append(l.errs, err)
		}
		until := l.lowerExpr(v.Until)
		var fixup *hir.Block
		if v.Fixup != nil {
			fixup, err = l.lowerBlock(v.Fixup)
			if err != nil {
				l.errs = append(l.errs, err)
			}
		}
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: types.TyUnit{}, Kind: hir.RepeatUntilExpr{Body: body, Until: until, Fixup: fixup}}

	case *ast.IfExpr:
		return l.lowerIf(v)

	case *ast.BlockExpr:
		block, err := l.lowerBlock(v.Block)
		if err != nil {
			l.errs = append(l.errs, err)
		}
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: block.Type, Kind: hir.BlockExpr{Block: block}}

	case *ast.ReturnExpr:
		var value *hir.Expr
		if v.Value != nil {
			value = l.lowerExpr(v.Value)
		}
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: types.TyErr{}, Kind: hir.ReturnExpr{Value: value}}

	case *ast.StringExpr:
		comps := make([]hir.StringComponent, len(v.Components))
		for i, c := range v.Components {
			comps[i] = hir.StringComponent{Lit: c.Lit}
			if c.Expr != nil {
				comps[i].Expr = l.lowerExpr(c.Expr)
			}
		}
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: types.TyString{}, Kind: hir.StringExpr{Components: comps}}

	case *ast.Path:
		return l.lowerPath(v)
	}
	return l.errExpr(e.ExprSpan())
}

func (l *Lowerer) errExpr(span ast.Span) *hir.Expr {
	return &hir.Expr{Id: l.assigner.NextNode(), Span: span, Type: types.TyErr{}, Kind: hir.ErrExpr{}}
}

func (l *Lowerer) lowerLit(v *ast.Lit) *hir.Expr {
	lit := hir.Lit{}
	switch v.Kind {
	case ast.LitBigInt:
		lit.Kind = hir.LitBigInt
		lit.BigInt, _ = v.Value.(string)
	case ast.LitBool:
		lit.Kind = hir.LitBool
		lit.Bool, _ = v.Value.(bool)
	case ast.LitDouble, ast.LitImaginary:
		lit.Kind = hir.LitDouble
		lit.Double, _ = v.Value.(float64)
	case ast.LitInt:
		lit.Kind = hir.LitInt
		lit.Int, _ = v.Value.(int64)
	case ast.LitPauli:
		lit.Kind = hir.LitPauli
		if p, ok := v.Value.(int); ok {
			lit.Pauli = hir.Pauli(p)
		}
	case ast.LitResult:
		lit.Kind = hir.LitResult
		if r, ok := v.Value.(int); ok {
			lit.Result = hir.ResultValue(r)
		}
	}
	return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: l.exprType(v.Id), Kind: lit}
}

func (l *Lowerer) lowerStructExpr(v *ast.StructExpr) *hir.Expr {
	udt, _ := l.resolveUdt(l.exprType(v.Id))
	fields := make([]*hir.Expr, len(udt.Fields))
	for _, fa := range v.Fields {
		for i, f := range udt.Fields {
			if f.Name == normalize(fa.Name) {
				fields[i] = l.lowerExpr(fa.Value)
			}
		}
	}
	var cp *hir.Expr
	if v.Copy != nil {
		cp = l.lowerExpr(v.Copy)
	}
	return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: l.exprType(v.Id),
		Kind: hir.StructCtorExpr{Udt: udt, Fields: fields, Copy: cp}}
}

func (l *Lowerer) lowerFieldExpr(v *ast.FieldExpr) *hir.Expr {
	container := l.lowerExpr(v.Of)
	path, ok := l.fieldPath(container.Type, v.Field)
	if !ok {
		l.errs = append(l.errs, l.errorf(errors.LOW008, v.Span, "cannot resolve field '"+v.Field+"'", map[string]any{"field": v.Field}))
	}
	return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: l.exprType(v.Id), Kind: hir.FieldAccessExpr{Container: container, Path: path}}
}

// fieldPath resolves a dotted field name against a container type:
// a user-defined type's named fields (spec §3.6) or Range's three
// fixed primitive fields (Start/Step/End), which are not Udt-backed.
func (l *Lowerer) fieldPath(containerTy types.Ty, name string) ([]int, bool) {
	if _, isRange := containerTy.(types.TyRange); isRange {
		switch name {
		case "Start":
			return []int{0}, true
		case "Step":
			return []int{1}, true
		case "End":
			return []int{2}, true
		}
		return nil, false
	}
	if udt, ok := l.resolveUdt(containerTy); ok {
		return udt.FieldPath(name)
	}
	return nil, false
}

func (l *Lowerer) lowerAssignUpdate(v *ast.AssignUpdateExpr) *hir.Expr {
	container := l.lowerExpr(v.Container)
	value := l.lowerExpr(v.Replace)

	if path, ok := v.Index.(*ast.Path); ok && len(path.Segments) == 1 {
		if fieldPath, found := l.fieldPath(container.Type, path.Segments[0]); found {
			return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: container.Type,
				Kind: hir.AssignFieldExpr{Container: container, Path: fieldPath, Value: value}}
		}
	}

	return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: container.Type,
		Kind: hir.AssignIndexExpr{Container: container, Index: l.lowerExpr(v.Index), Value: value}}
}

func (l *Lowerer) lowerCallExpr(v *ast.CallExpr) *hir.Expr {
	if containsHole(v.Arg) {
		return l.liftPartialApplication(v)
	}
	callee := l.lowerExpr(v.Callee)
	args := l.lowerExpr(v.Arg)
	if _, isTuple := args.Kind.(hir.TupleExpr); !isTuple {
		args = &hir.Expr{Id: l.assigner.NextNode(), Span: args.Span, Type: types.TyTuple{Items: []types.Ty{args.Type}}, Kind: hir.TupleExpr{Items: []*hir.Expr{args}}}
	}
	return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: l.exprType(v.Id), Kind: hir.CallExpr{Callee: callee, Args: args}}
}

func (l *Lowerer) lowerIf(v *ast.IfExpr) *hir.Expr {
	cond := l.lowerExpr(v.Cond)
	then, err := l.lowerBlock(v.Then)
	if err != nil {
		l.errs = append(l.errs, err)
	}
	var elseExpr *hir.Expr
	if v.Else != nil {
		elseExpr = l.lowerExpr(v.Else)
	}
	return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: then.Type, Kind: hir.IfExpr{Cond: cond, Then: then, Else: elseExpr}}
}

func (l *Lowerer) lowerPath(v *ast.Path) *hir.Expr {
	res := l.names.Get(v.Id)
	ty := l.exprType(v.Id)

	switch res.Kind {
	case resolve.ResLocal:
		varId, ok := l.bound[res.Local]
		if !ok {
			return l.errExpr(v.Span)
		}
		l.recordCapture(varId)
		vid := varId
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: ty, Kind: hir.VarExpr{Local: &vid}}

	case resolve.ResItem:
		store := l.storeItemId(res.Item)
		generics := l.genericArgs(v.Id)
		return &hir.Expr{Id: l.assigner.NextNode(), Span: v.Span, Type: ty, Kind: hir.VarExpr{Item: &store, Generics: generics}}

	case resolve.ResPrimTy, resolve.ResUnitTy, resolve.ResParam, resolve.ResImportable:
		// These resolutions name a type or module, not a value; a Path
		// reaching here in value position could not have type-checked, so
		// the lowerer emits the checker's recorded error filler.
		return l.errExpr(v.Span)
	}
	return l.errExpr(v.Span)
}

// storeItemId turns a possibly package-local ItemId into the concrete
// StoreItemId the HIR always carries, using this package's own id for
// a local ("current package") reference.
func (l *Lowerer) storeItemId(item ids.ItemId) ids.StoreItemId {
	if item.Package == nil {
		return ids.StoreItemId{Package: l.pkgId, Item: item.Item}
	}
	return ids.StoreItemId{Package: *item.Package, Item: item.Item}
}

// genericArgs converts the checker's recorded instantiation arguments
// for a call/reference site into the concrete type list VarExpr
// carries; functor-argument instantiations have no HIR representation
// of their own (the functor set itself is already concrete on the
// referent's type) so only type arguments are kept.
func (l *Lowerer) genericArgs(id ast.AstNodeId) []types.Ty {
	ga, ok := l.tys.Generics[id]
	if !ok {
		return nil
	}
	var out []types.Ty
	for _, a := range ga {
		if a.Ty != nil {
			out = append(out, a.Ty)
		}
	}
	return out
}
