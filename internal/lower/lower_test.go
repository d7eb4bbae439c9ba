package lower

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quantumlang/qcc/internal/ast"
	"github.com/quantumlang/qcc/internal/errors"
	"github.com/quantumlang/qcc/internal/hir"
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/resolve"
	"github.com/quantumlang/qcc/internal/types"
)

func TestLowerSimpleFunctionBodyAndAttr(t *testing.T) {
	l := New(resolve.Names{}, resolve.NewTys(), ids.NewAssigner(), 0)

	body := &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Expr: &ast.Lit{Kind: ast.LitInt, Value: int64(1)}}}}
	fn := &ast.CallableItem{
		Kind: ast.KindFunction, Name: "Answer", Input: &ast.DiscardPattern{},
		Attrs: []ast.Attr{{Name: "EntryPoint"}},
		Body:  ast.CallableBody{SingleBlock: body},
	}
	ns := &ast.Namespace{Name: "Test", Items: []ast.Item{fn}}

	pkg, err := l.Lower(&ast.Package{Namespaces: []*ast.Namespace{ns}})
	require.NoError(t, err)

	var decl *hir.CallableDecl
	var item *hir.Item
	for _, e := range pkg.Items.Iter() {
		if k, ok := e.Value.Kind.(hir.CallableItemKind); ok {
			decl = k.Decl
			item = e.Value
		}
	}
	require.NotNil(t, decl)
	require.Equal(t, "Answer", decl.Name)
	require.NotNil(t, decl.Body.Block)
	require.True(t, hasAttr(item.Attrs, hir.AttrEntryPoint))
}

func TestLowerUnrecognizedAttributeDropped(t *testing.T) {
	l := New(resolve.Names{}, resolve.NewTys(), ids.NewAssigner(), 0)

	fn := &ast.CallableItem{
		Kind: ast.KindFunction, Name: "F", Input: &ast.DiscardPattern{},
		Attrs: []ast.Attr{{Name: "NotReal"}},
		Body:  ast.CallableBody{SingleBlock: &ast.Block{}},
	}
	ns := &ast.Namespace{Name: "T", Items: []ast.Item{fn}}

	_, err := l.Lower(&ast.Package{Namespaces: []*ast.Namespace{ns}})
	require.Error(t, err)
	report, ok := errors.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errors.LOW001, report.Code)
}

func TestLowerDuplicateSpecialization(t *testing.T) {
	l := New(resolve.Names{}, resolve.NewTys(), ids.NewAssigner(), 0)

	specs := []*ast.SpecDecl{
		{Kind: ast.SpecBody, Body: &ast.Block{}},
		{Kind: ast.SpecBody, Body: &ast.Block{}},
	}
	op := &ast.CallableItem{Kind: ast.KindOperation, Name: "Op", Input: &ast.DiscardPattern{}, Body: ast.CallableBody{Specs: specs}}
	ns := &ast.Namespace{Name: "T", Items: []ast.Item{op}}

	_, err := l.Lower(&ast.Package{Namespaces: []*ast.Namespace{ns}})
	require.Error(t, err)
	report, ok := errors.AsReport(err)
	require.True(t, ok)
	require.Equal(t, errors.LOW005, report.Code)
}

func TestLowerSelfExportCollapsed(t *testing.T) {
	exportId := ast.AstNodeId(42)
	names := resolve.Names{exportId: {Kind: resolve.ResItem, Item: ids.NewLocalItemId(1)}}

	l := New(names, resolve.NewTys(), ids.NewAssigner(), 0)
	fn := &ast.CallableItem{Kind: ast.KindFunction, Name: "F", Input: &ast.DiscardPattern{}, Body: ast.CallableBody{SingleBlock: &ast.Block{}}}
	export := &ast.ExportItem{Id: exportId, Name: "F"}
	ns := &ast.Namespace{Name: "T", Items: []ast.Item{fn, export}}

	pkg, err := l.Lower(&ast.Package{Namespaces: []*ast.Namespace{ns}})
	require.NoError(t, err)

	for _, e := range pkg.Items.Iter() {
		_, isExport := e.Value.Kind.(hir.ExportItemKind)
		require.False(t, isExport, "self-export should have been collapsed")
	}
}

func TestLowerFieldAccessDesugarsToPath(t *testing.T) {
	tys := resolve.NewTys()
	tys.Udts[5] = types.Udt{Name: "Pair", Fields: []types.UdtField{
		{Name: "X", Type: types.TyInt{}},
		{Name: "Y", Type: types.TyInt{}},
	}}

	containerId := ast.AstNodeId(10)
	tys.Terms[containerId] = types.TyUdt{Name: "Pair", Res: "Item 5"}

	bindId := ast.AstNodeId(1)
	names := resolve.Names{containerId: {Kind: resolve.ResLocal, Local: bindId}}

	l := New(names, tys, ids.NewAssigner(), 0)
	l.bound[bindId] = ids.LocalVarId(7)

	path := &ast.Path{Segments: []string{"p"}}
	path.Id = containerId
	field := &ast.FieldExpr{Of: path, Field: "Y"}

	e := l.lowerExpr(field)
	fa, ok := e.Kind.(hir.FieldAccessExpr)
	require.True(t, ok)
	require.Equal(t, []int{1}, fa.Path)
}

func TestLowerAssignUpdateSplitsOnField(t *testing.T) {
	tys := resolve.NewTys()
	tys.Udts[5] = types.Udt{Name: "Pair", Fields: []types.UdtField{
		{Name: "X", Type: types.TyInt{}},
		{Name: "Y", Type: types.TyInt{}},
	}}
	containerId := ast.AstNodeId(10)
	tys.Terms[containerId] = types.TyUdt{Name: "Pair", Res: "Item 5"}
	indexId := ast.AstNodeId(11)

	bindId := ast.AstNodeId(1)
	names := resolve.Names{containerId: {Kind: resolve.ResLocal, Local: bindId}}

	l := New(names, tys, ids.NewAssigner(), 0)
	l.bound[bindId] = ids.LocalVarId(7)

	container := &ast.Path{Segments: []string{"p"}}
	container.Id = containerId
	index := &ast.Path{Segments: []string{"X"}}
	index.Id = indexId
	update := &ast.AssignUpdateExpr{Container: container, Index: index, Replace: &ast.Lit{Kind: ast.LitInt, Value: int64(9)}}

	e := l.lowerExpr(update)
	af, ok := e.Kind.(hir.AssignFieldExpr)
	require.True(t, ok)
	require.Equal(t, []int{0}, af.Path)
}

func TestLowerLambdaLiftsClosureWithCapture(t *testing.T) {
	outerBindId := ast.AstNodeId(1)
	outerRefId := ast.AstNodeId(2)

	names := resolve.Names{
		outerRefId: {Kind: resolve.ResLocal, Local: outerBindId},
	}
	l := New(names, resolve.NewTys(), ids.NewAssigner(), 0)
	l.bound[outerBindId] = ids.LocalVarId(3)

	outerRef := &ast.Path{Segments: []string{"x"}}
	outerRef.Id = outerRefId
	lambda := &ast.LambdaExpr{Input: &ast.DiscardPattern{}, Body: outerRef}

	before := l.pkg.Items.Len()
	e := l.lowerExpr(lambda)
	closure, ok := e.Kind.(hir.ClosureExpr)
	require.True(t, ok)
	require.Equal(t, []ids.LocalVarId{3}, closure.Captures)
	require.Equal(t, before+1, l.pkg.Items.Len())
}
