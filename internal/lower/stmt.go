package lower

import (
	"github.com/quantumlang/qcc/internal/ast"
	"github.com/quantumlang/qcc/internal/hir"
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/types"
)

// lowerBlock lowers a statement sequence. The block's value type is
// its trailing ExprStmt's type (an expression statement with no
// semicolon), or Unit if the block ends in a SemiStmt or is empty.
func (l *Lowerer) lowerBlock(b *ast.Block) (*hir.Block, error) {
	out := make([]*hir.Stmt, 0, len(b.Stmts))
	blockTy := types.Ty(types.TyUnit{})

	for i, s := range b.Stmts {
		stmt := l.lowerStmt(s)
		if stmt == nil {
			continue
		}
		out = append(out, stmt)
		if i == len(b.Stmts)-1 {
			if es, ok := stmt.Kind.(hir.ExprStmt); ok {
				blockTy = es.Expr.Type
			}
		}
	}

	return &hir.Block{Id: l.assigner.NextNode(), Span: b.Span, Type: blockTy, Stmts: out}, nil
}

// lowerStmt lowers one statement. EmptyStmt and ErrStmt vanish (spec
// §4.2.2); they return nil and the caller drops them from the block.
func (l *Lowerer) lowerStmt(s ast.Stmt) *hir.Stmt {
	switch v := s.(type) {
	case *ast.ExprStmt:
		return &hir.Stmt{Id: l.assigner.NextNode(), Span: v.Span, Kind: hir.ExprStmt{Expr: l.lowerExpr(v.Expr)}}
	case *ast.SemiStmt:
		return &hir.Stmt{Id: l.assigner.NextNode(), Span: v.Span, Kind: hir.SemiStmt{Expr: l.lowerExpr(v.Expr)}}
	case *ast.LocalStmt:
		value := l.lowerExpr(v.Value)
		pat := l.lowerPat(v.Pat, false)
		return &hir.Stmt{Id: l.assigner.NextNode(), Span: v.Span, Kind: hir.LocalStmt{Mut: v.Mut, Pat: pat, Value: value}}
	case *ast.ItemStmt:
		if parent := l.currentNamespace; parent != nil {
			if id, ok := l.lowerItem(v.Item, *parent); ok {
				return &hir.Stmt{Id: l.assigner.NextNode(), Span: v.Span, Kind: hir.ItemStmt{Item: id}}
			}
			return nil
		}
		id := l.assigner.NextItem()
		if ok := l.lowerItemNoParent(v.Item, id); ok {
			return &hir.Stmt{Id: l.assigner.NextNode(), Span: v.Span, Kind: hir.ItemStmt{Item: id}}
		}
		return nil
	case *ast.QubitStmt:
		return l.lowerQubitStmt(v)
	case *ast.EmptyStmt, *ast.ErrStmt:
		return nil
	}
	return nil
}

// lowerItemNoParent lowers a local item declared at file scope (no
// enclosing namespace), the rare case a package's top-level statement
// list introduces its own item.
func (l *Lowerer) lowerItemNoParent(it ast.Item, id ids.LocalItemId) bool {
	switch v := it.(type) {
	case *ast.CallableItem:
		l.meta[id] = itemMeta{name: normalize(v.Name)}
		kind := lowerCallableKind(v.Kind)
		input := l.lowerPat(v.Input, false)
		output := types.Ty(types.TyErr{})
		functors := types.FunctorSetValue{}
		if arrow, ok := l.tys.TermOrErr(v.Id).(types.TyArrow); ok {
			output = arrow.Output
			functors = functorValue(arrow.Functors)
		}
		decl := &hir.CallableDecl{Id: v.Id, Span: v.Span, Kind: kind, Name: normalize(v.Name), Input: input, Output: output, Functors: functors}
		l.lowerSpecs(v, decl, functors)
		l.pkg.Items.Insert(id, &hir.Item{Id: id, Span: v.Span, Attrs: l.lowerAttrs(v.Attrs, &kind), Visibility: hir.Internal, Kind: hir.CallableItemKind{Decl: decl}})
		return true
	}
	return false
}

func (l *Lowerer) lowerQubitStmt(v *ast.QubitStmt) *hir.Stmt {
	pat := l.lowerPat(v.Pat, false)
	init := l.lowerQubitInit(v.Init)

	var block *hir.Block
	if v.Block != nil {
		b, err := l.lowerBlock(v.Block)
		if err != nil {
			l.errs = append(l.errs, err)
		}
		block = b
	}

	source := hir.QubitFresh
	if v.Source == ast.QubitDirty {
		source = hir.QubitDirty
	}
	return &hir.Stmt{Id: l.assigner.NextNode(), Span: v.Span, Kind: hir.QubitStmt{Source: source, Pat: pat, Init: init, Block: block}}
}

func (l *Lowerer) lowerQubitInit(init ast.QubitInit) *hir.QubitInit {
	switch v := init.(type) {
	case ast.QubitInitSingle:
		return &hir.QubitInit{Kind: hir.QubitInitSingle}
	case ast.QubitInitArray:
		return &hir.QubitInit{Kind: hir.QubitInitArray, Count: l.lowerExpr(v.Count)}
	case ast.QubitInitTuple:
		items := make([]*hir.QubitInit, len(v.Items))
		for i, it := range v.Items {
			items[i] = l.lowerQubitInit(it)
		}
		return &hir.QubitInit{Kind: hir.QubitInitTuple, Items: items}
	}
	return &hir.QubitInit{Kind: hir.QubitInitSingle}
}
