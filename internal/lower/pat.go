package lower

import (
	"github.com/quantumlang/qcc/internal/ast"
	"github.com/quantumlang/qcc/internal/errors"
	"github.com/quantumlang/qcc/internal/hir"
	"github.com/quantumlang/qcc/internal/types"
)

// lowerPat lowers a surface pattern to its typed HIR counterpart.
// elidedOk is true only while lowering a specialization's own input
// pattern (spec §4.2.2); an ElidedPattern anywhere else is LOW006.
func (l *Lowerer) lowerPat(p ast.Pattern, elidedOk bool) *hir.Pat {
	switch v := p.(type) {
	case *ast.BindPattern:
		varId := l.assigner.NextLocalVar()
		l.bound[v.Id] = varId
		return &hir.Pat{
			Id: l.assigner.NextNode(), Span: v.Span, Type: l.tys.TermOrErr(v.Id),
			Kind: hir.BindPat{Name: normalize(v.Name), Var: varId},
		}
	case *ast.DiscardPattern:
		return &hir.Pat{Id: l.assigner.NextNode(), Span: v.Span, Type: l.tys.TermOrErr(v.Id), Kind: hir.DiscardPat{}}
	case *ast.TuplePattern:
		items := make([]*hir.Pat, len(v.Items))
		for i, it := range v.Items {
			items[i] = l.lowerPat(it, elidedOk)
		}
		return &hir.Pat{Id: l.assigner.NextNode(), Span: v.Span, Type: l.tys.TermOrErr(v.Id), Kind: hir.TuplePat{Items: items}}
	case *ast.ParenPattern:
		return l.lowerPat(v.Inner, elidedOk)
	case *ast.ElidedPattern:
		if !elidedOk {
			l.errs = append(l.errs, l.errorf(errors.LOW006, v.Span, "elided pattern `...` is only legal as a specialization's input", nil))
		}
		return &hir.Pat{Id: l.assigner.NextNode(), Span: v.Span, Type: types.TyErr{}, Kind: hir.ErrPat{}}
	case *ast.ErrPattern:
		return &hir.Pat{Id: l.assigner.NextNode(), Span: v.Span, Type: types.TyErr{}, Kind: hir.ErrPat{}}
	}
	return &hir.Pat{Id: l.assigner.NextNode(), Type: types.TyErr{}, Kind: hir.ErrPat{}}
}
