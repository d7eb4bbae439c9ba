package lower

import (
	"github.com/quantumlang/qcc/internal/ast"
	"github.com/quantumlang/qcc/internal/hir"
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/types"
)

// lowerTyDeclItem lowers a user-defined type declaration. The field
// tree itself (types.Udt) is supplied by the external checker in
// Tys.Udts, keyed by this item's id once assigned; the lowerer's job
// here is only to place it in the item table under the right id.
func (l *Lowerer) lowerTyDeclItem(v *ast.TyDeclItem, parent ids.LocalItemId) (ids.LocalItemId, bool) {
	id := l.assigner.NextItem()

	udt, ok := l.tys.Udts[id]
	if !ok {
		fields := make([]types.UdtField, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = types.UdtField{Name: normalize(f.Name), Type: l.tys.TermOrErr(v.Id)}
		}
		udt = types.Udt{Name: normalize(v.Name), Fields: fields}
	}

	l.pkg.Items.Insert(id, &hir.Item{
		Id: id, Span: v.Span, Parent: &parent, Attrs: l.lowerAttrs(v.Attrs, nil), Visibility: hir.Public,
		Kind: hir.TyItemKind{Name: normalize(v.Name), Udt: udt},
	})
	return id, true
}
