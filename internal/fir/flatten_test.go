package fir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quantumlang/qcc/internal/hir"
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/types"
)

// buildIdentity builds a package with one callable:
//
//	function One() : Int { return 1; }
func buildIdentity() *hir.Package {
	pkg := hir.NewPackage()
	retExpr := &hir.Expr{Type: types.TyInt{}, Kind: hir.ReturnExpr{
		Value: &hir.Expr{Type: types.TyInt{}, Kind: hir.Lit{Kind: hir.LitInt, Int: 1}},
	}}
	block := &hir.Block{Type: types.TyInt{}, Stmts: []*hir.Stmt{
		{Kind: hir.ExprStmt{Expr: retExpr}},
	}}
	decl := &hir.CallableDecl{
		Kind:   types.Function,
		Name:   "One",
		Input:  &hir.Pat{Kind: hir.DiscardPat{}, Type: types.TyUnit{}},
		Output: types.TyInt{},
		Body:   &hir.SpecDecl{Block: block},
	}
	pkg.Items.Insert(0, &hir.Item{Id: 0, Visibility: hir.Public, Kind: hir.CallableItemKind{Decl: decl}})
	return pkg
}

func TestFlattenProducesRetTerminatedGraph(t *testing.T) {
	f, err := Flatten(buildIdentity())
	require.NoError(t, err)

	item, ok := f.Items.Get(0)
	require.True(t, ok)
	decl := item.Kind.(CallableItemKind).Decl
	require.NotNil(t, decl.Body)

	g := *decl.Body
	require.IsType(t, PushScope{}, g[0])
	_, isRet := g[len(g)-1].(Ret) // Ret that closes the specialization graph
	require.True(t, isRet || hasKind[Ret](g))
}

func hasKind[T ExecGraphNode](g ExecGraph) bool {
	for _, n := range g {
		if _, ok := n.(T); ok {
			return true
		}
	}
	return false
}

func TestFlattenIfProducesBalancedJumps(t *testing.T) {
	pkg := hir.NewPackage()
	cond := &hir.Expr{Type: types.TyBool{}, Kind: hir.Lit{Kind: hir.LitBool, Bool: true}}
	thenBlock := &hir.Block{Type: types.TyInt{}, Stmts: []*hir.Stmt{
		{Kind: hir.ExprStmt{Expr: &hir.Expr{Type: types.TyInt{}, Kind: hir.Lit{Kind: hir.LitInt, Int: 1}}}},
	}}
	elseExpr := &hir.Expr{Type: types.TyInt{}, Kind: hir.BlockExpr{Block: &hir.Block{
		Type: types.TyInt{},
		Stmts: []*hir.Stmt{
			{Kind: hir.ExprStmt{Expr: &hir.Expr{Type: types.TyInt{}, Kind: hir.Lit{Kind: hir.LitInt, Int: 2}}}},
		},
	}}}
	ifExpr := &hir.Expr{Type: types.TyInt{}, Kind: hir.IfExpr{Cond: cond, Then: thenBlock, Else: elseExpr}}
	block := &hir.Block{Type: types.TyInt{}, Stmts: []*hir.Stmt{{Kind: hir.ExprStmt{Expr: ifExpr}}}}
	decl := &hir.CallableDecl{
		Kind: types.Function, Name: "Pick",
		Input: &hir.Pat{Kind: hir.DiscardPat{}, Type: types.TyUnit{}}, Output: types.TyInt{},
		Body: &hir.SpecDecl{Block: block},
	}
	pkg.Items.Insert(0, &hir.Item{Id: 0, Kind: hir.CallableItemKind{Decl: decl}})

	f, err := Flatten(pkg)
	require.NoError(t, err)
	item, _ := f.Items.Get(0)
	g := *item.Kind.(CallableItemKind).Decl.Body

	for i, n := range g {
		switch j := n.(type) {
		case JumpIfNot:
			require.Greater(t, j.Target, i)
			require.LessOrEqual(t, j.Target, len(g))
		case Jump:
			require.Greater(t, j.Target, i)
			require.LessOrEqual(t, j.Target, len(g))
		}
	}
}

func TestFlattenRejectsUnresolvedQubitStmt(t *testing.T) {
	pkg := hir.NewPackage()
	block := &hir.Block{Stmts: []*hir.Stmt{
		{Kind: hir.QubitStmt{Pat: &hir.Pat{Kind: hir.BindPat{Name: "q", Var: ids.LocalVarId(0)}}, Init: &hir.QubitInit{Kind: hir.QubitInitSingle}}},
	}}
	decl := &hir.CallableDecl{
		Kind: types.Operation, Name: "Bad",
		Input: &hir.Pat{Kind: hir.DiscardPat{}}, Output: types.TyUnit{},
		Body: &hir.SpecDecl{Block: block},
	}
	pkg.Items.Insert(0, &hir.Item{Id: 0, Kind: hir.CallableItemKind{Decl: decl}})

	_, err := Flatten(pkg)
	require.Error(t, err)
}

func TestFlattenSkipsItemWithErrPatInput(t *testing.T) {
	pkg := hir.NewPackage()
	decl := &hir.CallableDecl{
		Kind: types.Function, Name: "Broken",
		Input: &hir.Pat{Kind: hir.ErrPat{}}, Output: types.TyUnit{},
		Body: &hir.SpecDecl{Block: &hir.Block{}},
	}
	pkg.Items.Insert(0, &hir.Item{Id: 0, Kind: hir.CallableItemKind{Decl: decl}})

	f, err := Flatten(pkg)
	require.NoError(t, err)
	require.Equal(t, 0, f.Items.Len())
}
