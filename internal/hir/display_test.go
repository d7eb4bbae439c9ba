package hir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/types"
)

func simpleCallable() *CallableDecl {
	ret := ReturnExpr{Value: &Expr{Type: types.TyInt{}, Kind: Lit{Kind: LitInt, Int: 1}}}
	body := &Block{Type: types.TyInt{}, Stmts: []*Stmt{
		{Kind: ExprStmt{Expr: &Expr{Type: types.TyInt{}, Kind: ret}}},
	}}
	return &CallableDecl{
		Kind:     types.Function,
		Name:     "One",
		Input:    &Pat{Kind: DiscardPat{}, Type: types.TyUnit{}},
		Output:   types.TyInt{},
		Functors: types.FunctorSetValue{},
		Body:     &SpecDecl{Block: body},
	}
}

func TestDisplayDeterministicAcrossCalls(t *testing.T) {
	pkg := NewPackage()
	pkg.Items.Insert(0, &Item{Visibility: Public, Kind: CallableItemKind{Decl: simpleCallable()}})

	first := Display(pkg)
	second := Display(pkg)
	require.Equal(t, first, second)
	require.Contains(t, first, "name: One")
	require.Contains(t, first, "kind: Function")
	require.Contains(t, first, "Return:")
}

func TestDisplayWalksItemsInInsertionOrder(t *testing.T) {
	pkg := NewPackage()
	pkg.Items.Insert(5, &Item{Visibility: Internal, Kind: TyItemKind{Name: "Z"}})
	pkg.Items.Insert(1, &Item{Visibility: Internal, Kind: TyItemKind{Name: "A"}})

	out := Display(pkg)
	require.Less(t, strings.Index(out, "Ty Z"), strings.Index(out, "Ty A"))
}

func TestDisplayQubitStmtShowsSourceAndInit(t *testing.T) {
	pkg := NewPackage()
	var qid ids.LocalVarId = 0
	block := &Block{Stmts: []*Stmt{
		{Kind: QubitStmt{
			Source: QubitFresh,
			Pat:    &Pat{Kind: BindPat{Name: "q", Var: qid}, Type: types.TyQubit{}},
			Init:   &QubitInit{Kind: QubitInitSingle},
		}},
	}}
	decl := &CallableDecl{
		Kind: types.Operation, Name: "Alloc",
		Input: &Pat{Kind: DiscardPat{}, Type: types.TyUnit{}}, Output: types.TyUnit{},
		Body: &SpecDecl{Block: block},
	}
	pkg.Items.Insert(0, &Item{Kind: CallableItemKind{Decl: decl}})

	out := Display(pkg)
	require.Contains(t, out, "Qubit Fresh")
	require.Contains(t, out, "Bind q (Var 0)")
	require.Contains(t, out, "Init Single")
}

func TestDisplayAttrsListedAfterKind(t *testing.T) {
	pkg := NewPackage()
	decl := simpleCallable()
	pkg.Items.Insert(0, &Item{
		Kind:  CallableItemKind{Decl: decl},
		Attrs: []Attr{{Kind: AttrEntryPoint}},
	})

	out := Display(pkg)
	require.Contains(t, out, "Attr EntryPoint")
}
