package lower

import (
	"fmt"

	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/types"
)

// resolveUdt looks up the Udt shape behind a types.TyUdt reference,
// when it names an item local to this package. Cross-package UDTs
// cannot be resolved from a single package's Tys table; field access
// against one is left to a later pass with access to the full
// pkgstore.Store (documented simplification).
func (l *Lowerer) resolveUdt(t types.Ty) (types.Udt, bool) {
	u, ok := t.(types.TyUdt)
	if !ok {
		return types.Udt{}, false
	}
	var item ids.LocalItemId
	if _, err := fmt.Sscanf(u.Res, "Item %d", &item); err != nil {
		return types.Udt{}, false
	}
	if u.Res != fmt.Sprintf("Item %d", uint32(item)) {
		// "Item N (Package P)": a cross-package reference.
		return types.Udt{}, false
	}
	udt, ok := l.tys.Udts[item]
	return udt, ok
}
