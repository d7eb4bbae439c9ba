package qubitalloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quantumlang/qcc/internal/hir"
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/types"
)

func testIntrinsics() Intrinsics {
	return Intrinsics{
		AllocateSingle: ids.StoreItemId{Package: 0, Item: 1},
		ReleaseSingle:  ids.StoreItemId{Package: 0, Item: 2},
		AllocateArray:  ids.StoreItemId{Package: 0, Item: 3},
		ReleaseArray:   ids.StoreItemId{Package: 0, Item: 4},
	}
}

func callExprItem(e *hir.Expr) ids.StoreItemId {
	call := e.Kind.(hir.CallExpr)
	return *call.Callee.Kind.(hir.VarExpr).Item
}

func bindVar(s *hir.Stmt) ids.LocalVarId {
	return s.Kind.(hir.LocalStmt).Pat.Kind.(hir.BindPat).Var
}

func wrapPkg(name string, input *hir.Pat, body *hir.Block) *hir.Package {
	pkg := hir.NewPackage()
	decl := &hir.CallableDecl{
		Kind: types.Operation, Name: name,
		Input: input, Output: types.TyUnit{},
		Body: &hir.SpecDecl{Block: body},
	}
	pkg.Items.Insert(0, &hir.Item{Id: 0, Kind: hir.CallableItemKind{Decl: decl}})
	return pkg
}

// use q = Qubit();
func TestRewriteSingleQubitBindsOriginalPatDirectly(t *testing.T) {
	qVar := ids.LocalVarId(0)
	block := &hir.Block{Type: types.TyUnit{}, Stmts: []*hir.Stmt{
		{Kind: hir.QubitStmt{
			Pat:  &hir.Pat{Type: types.TyQubit{}, Kind: hir.BindPat{Name: "q", Var: qVar}},
			Init: &hir.QubitInit{Kind: hir.QubitInitSingle},
		}},
	}}
	pkg := wrapPkg("Foo", &hir.Pat{Kind: hir.DiscardPat{}}, block)

	require.NoError(t, Rewrite(pkg, ids.NewAssigner(), testIntrinsics()))

	item, _ := pkg.Items.Get(0)
	out := item.Kind.(hir.CallableItemKind).Decl.Body.Block
	require.Len(t, out.Stmts, 2)

	alloc := out.Stmts[0].Kind.(hir.LocalStmt)
	require.Equal(t, qVar, alloc.Pat.Kind.(hir.BindPat).Var)
	require.Equal(t, ids.StoreItemId{Package: 0, Item: 1}, callExprItem(alloc.Value))

	release := out.Stmts[1].Kind.(hir.SemiStmt)
	require.Equal(t, ids.StoreItemId{Package: 0, Item: 2}, callExprItem(release.Expr))
}

// use (a, b) = (Qubit(), Qubit());
func TestRewriteTupleQubitUsesGeneratedLeavesAndReleasesLIFO(t *testing.T) {
	// a and b are minted by the assigner handed to Rewrite, as lowering
	// would mint them, so the generated leaves get ids of their own.
	assigner := ids.NewAssigner()
	aVar, bVar := assigner.NextLocalVar(), assigner.NextLocalVar()
	pat := &hir.Pat{Kind: hir.TuplePat{Items: []*hir.Pat{
		{Type: types.TyQubit{}, Kind: hir.BindPat{Name: "a", Var: aVar}},
		{Type: types.TyQubit{}, Kind: hir.BindPat{Name: "b", Var: bVar}},
	}}}
	init := &hir.QubitInit{Kind: hir.QubitInitTuple, Items: []*hir.QubitInit{
		{Kind: hir.QubitInitSingle}, {Kind: hir.QubitInitSingle},
	}}
	block := &hir.Block{Type: types.TyUnit{}, Stmts: []*hir.Stmt{
		{Kind: hir.QubitStmt{Pat: pat, Init: init}},
	}}
	pkg := wrapPkg("Foo", &hir.Pat{Kind: hir.DiscardPat{}}, block)

	require.NoError(t, Rewrite(pkg, assigner, testIntrinsics()))

	item, _ := pkg.Items.Get(0)
	out := item.Kind.(hir.CallableItemKind).Decl.Body.Block.Stmts
	// two leaf allocations, one reconstruct-into-(a,b) binding, two releases.
	require.Len(t, out, 5)

	leaf1 := bindVar(out[0])
	leaf2 := bindVar(out[1])
	require.NotEqual(t, leaf1, leaf2)
	require.NotEqual(t, aVar, leaf1)
	require.NotEqual(t, bVar, leaf1)

	reconstruct := out[2].Kind.(hir.LocalStmt)
	require.Same(t, pat, reconstruct.Pat)
	tuple := reconstruct.Value.Kind.(hir.TupleExpr)
	require.Equal(t, leaf1, *tuple.Items[0].Kind.(hir.VarExpr).Local)
	require.Equal(t, leaf2, *tuple.Items[1].Kind.(hir.VarExpr).Local)

	// releases are LIFO: leaf2 first, then leaf1.
	rel1 := out[3].Kind.(hir.SemiStmt).Expr.Kind.(hir.CallExpr).Args.Kind.(hir.TupleExpr).Items[0]
	rel2 := out[4].Kind.(hir.SemiStmt).Expr.Kind.(hir.CallExpr).Args.Kind.(hir.TupleExpr).Items[0]
	require.Equal(t, leaf2, *rel1.Kind.(hir.VarExpr).Local)
	require.Equal(t, leaf1, *rel2.Kind.(hir.VarExpr).Local)
}

// use q = Qubit() { <body> }
func TestRewriteScopedQubitBlockReleasesAtItsOwnEnd(t *testing.T) {
	qVar := ids.LocalVarId(0)
	inner := &hir.Block{Type: types.TyUnit{}, Stmts: []*hir.Stmt{
		{Kind: hir.SemiStmt{Expr: &hir.Expr{Type: types.TyUnit{}, Kind: hir.UnitExpr{}}}},
	}}
	outer := &hir.Block{Type: types.TyUnit{}, Stmts: []*hir.Stmt{
		{Kind: hir.QubitStmt{
			Pat:   &hir.Pat{Type: types.TyQubit{}, Kind: hir.BindPat{Name: "q", Var: qVar}},
			Init:  &hir.QubitInit{Kind: hir.QubitInitSingle},
			Block: inner,
		}},
	}}
	pkg := wrapPkg("Foo", &hir.Pat{Kind: hir.DiscardPat{}}, outer)

	require.NoError(t, Rewrite(pkg, ids.NewAssigner(), testIntrinsics()))

	item, _ := pkg.Items.Get(0)
	out := item.Kind.(hir.CallableItemKind).Decl.Body.Block.Stmts
	require.Len(t, out, 1, "the use-with-block form replaces itself with a single wrapped statement")

	wrapped := out[0].Kind.(hir.SemiStmt).Expr.Kind.(hir.BlockExpr).Block
	require.Len(t, wrapped.Stmts, 3, "allocate, original body statement, release")
	_, isAlloc := wrapped.Stmts[0].Kind.(hir.LocalStmt)
	require.True(t, isAlloc)
	release := wrapped.Stmts[2].Kind.(hir.SemiStmt)
	require.Equal(t, ids.StoreItemId{Package: 0, Item: 2}, callExprItem(release.Expr))
}

// use a = Qubit(); if true { use b = Qubit(); return (); }
func TestRewriteEarlyReturnReleasesInnerThenOuterScope(t *testing.T) {
	aVar, bVar := ids.LocalVarId(0), ids.LocalVarId(1)
	ifThen := &hir.Block{Type: types.TyUnit{}, Stmts: []*hir.Stmt{
		{Kind: hir.QubitStmt{
			Pat:  &hir.Pat{Type: types.TyQubit{}, Kind: hir.BindPat{Name: "b", Var: bVar}},
			Init: &hir.QubitInit{Kind: hir.QubitInitSingle},
		}},
		{Kind: hir.SemiStmt{Expr: &hir.Expr{Type: types.TyUnit{}, Kind: hir.ReturnExpr{}}}},
	}}
	ifExpr := &hir.Expr{Type: types.TyUnit{}, Kind: hir.IfExpr{
		Cond: &hir.Expr{Type: types.TyBool{}, Kind: hir.Lit{Kind: hir.LitBool, Bool: true}},
		Then: ifThen,
	}}
	outer := &hir.Block{Type: types.TyUnit{}, Stmts: []*hir.Stmt{
		{Kind: hir.QubitStmt{
			Pat:  &hir.Pat{Type: types.TyQubit{}, Kind: hir.BindPat{Name: "a", Var: aVar}},
			Init: &hir.QubitInit{Kind: hir.QubitInitSingle},
		}},
		{Kind: hir.ExprStmt{Expr: ifExpr}},
	}}
	pkg := wrapPkg("Foo", &hir.Pat{Kind: hir.DiscardPat{}}, outer)

	require.NoError(t, Rewrite(pkg, ids.NewAssigner(), testIntrinsics()))

	item, _ := pkg.Items.Get(0)
	decl := item.Kind.(hir.CallableItemKind).Decl
	out := decl.Body.Block.Stmts

	// The outer block's trailing `if` is hoisted into a generated local:
	// [alloc a, let temp = if ..., release a, temp].
	rewrittenIf := out[1].Kind.(hir.LocalStmt).Value.Kind.(hir.IfExpr)
	thenStmts := rewrittenIf.Then.Stmts
	// [alloc b, wrapped-return, release b] inside the if's own block.
	require.Len(t, thenStmts, 3)

	wrapper := thenStmts[1].Kind.(hir.SemiStmt).Expr.Kind.(hir.BlockExpr).Block
	// [bind temp, release b, release a, return temp]
	require.Len(t, wrapper.Stmts, 4)
	rel1 := wrapper.Stmts[1].Kind.(hir.SemiStmt).Expr.Kind.(hir.CallExpr).Args.Kind.(hir.TupleExpr).Items[0]
	rel2 := wrapper.Stmts[2].Kind.(hir.SemiStmt).Expr.Kind.(hir.CallExpr).Args.Kind.(hir.TupleExpr).Items[0]
	require.Equal(t, bVar, *rel1.Kind.(hir.VarExpr).Local)
	require.Equal(t, aVar, *rel2.Kind.(hir.VarExpr).Local)

	_, isReturn := wrapper.Stmts[3].Kind.(hir.SemiStmt).Expr.Kind.(hir.ReturnExpr)
	require.True(t, isReturn)

	// a is still released once more at the outer block's own (fall-through)
	// end, just before the hoisted value is re-yielded.
	finalRelease := out[len(out)-2].Kind.(hir.SemiStmt)
	require.Equal(t, aVar, *finalRelease.Expr.Kind.(hir.CallExpr).Args.Kind.(hir.TupleExpr).Items[0].Kind.(hir.VarExpr).Local)
}

// use a = Qubit(); 3  -- the block's own trailing value, with a live qubit.
func TestRewriteTrailingValueHoistsBeforeRelease(t *testing.T) {
	aVar := ids.LocalVarId(0)
	block := &hir.Block{Type: types.TyInt{}, Stmts: []*hir.Stmt{
		{Kind: hir.QubitStmt{
			Pat:  &hir.Pat{Type: types.TyQubit{}, Kind: hir.BindPat{Name: "a", Var: aVar}},
			Init: &hir.QubitInit{Kind: hir.QubitInitSingle},
		}},
		{Kind: hir.ExprStmt{Expr: &hir.Expr{Type: types.TyInt{}, Kind: hir.Lit{Kind: hir.LitInt, Int: 3}}}},
	}}
	pkg := wrapPkg("Foo", &hir.Pat{Kind: hir.DiscardPat{}}, block)

	require.NoError(t, Rewrite(pkg, ids.NewAssigner(), testIntrinsics()))

	item, _ := pkg.Items.Get(0)
	out := item.Kind.(hir.CallableItemKind).Decl.Body.Block.Stmts
	require.Len(t, out, 4, "allocate a, bind the hoisted value, release a, re-yield the hoisted local")

	_, isLocal := out[0].Kind.(hir.LocalStmt)
	require.True(t, isLocal)

	trailing := out[3].Kind.(hir.ExprStmt).Expr.Kind.(hir.VarExpr)
	require.NotNil(t, trailing.Local, "trailing value is now a reference to the generated temp")
}

func TestRewriteUnrelatedBlockUnaffected(t *testing.T) {
	block := &hir.Block{Type: types.TyInt{}, Stmts: []*hir.Stmt{
		{Kind: hir.ExprStmt{Expr: &hir.Expr{Type: types.TyInt{}, Kind: hir.Lit{Kind: hir.LitInt, Int: 1}}}},
	}}
	pkg := wrapPkg("Foo", &hir.Pat{Kind: hir.DiscardPat{}}, block)

	require.NoError(t, Rewrite(pkg, ids.NewAssigner(), testIntrinsics()))

	item, _ := pkg.Items.Get(0)
	out := item.Kind.(hir.CallableItemKind).Decl.Body.Block.Stmts
	require.Len(t, out, 1)
	lit := out[0].Kind.(hir.ExprStmt).Expr.Kind.(hir.Lit)
	require.Equal(t, int64(1), lit.Int)
}
