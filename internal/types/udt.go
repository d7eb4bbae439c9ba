package types

import "fmt"

// UdtField is one named field of a user-defined type. Fields nest:
// a field's Type may itself be a TyTuple or another Udt, so FieldPath
// must walk the tree to resolve a dotted field access.
type UdtField struct {
	Name string
	Type Ty
}

// Udt is a named nominal type built from a tree of fields rooted at a
// tuple shape (a record-like UDT has one level of fields; a
// single-field UDT wraps a single inner type).
type Udt struct {
	Name   string
	Fields []UdtField
}

func (u Udt) String() string { return u.Name }

// FieldPath returns the sequence of tuple indices from the root to the
// named field, used to resolve `x.field` expressions down to nested
// TupleIndex accesses. Fields whose type is a nested field tree (see
// AsFieldTree) are searched too, in field order; the second return
// value is false if no field with that name exists at any level.
func (u Udt) FieldPath(name string) ([]int, bool) {
	for i, f := range u.Fields {
		if f.Name == name {
			return []int{i}, true
		}
		if nested, ok := nestedUdtOf(f.Type); ok {
			if path, found := nested.FieldPath(name); found {
				return append([]int{i}, path...), true
			}
		}
	}
	return nil, false
}

func nestedUdtOf(t Ty) (Udt, bool) {
	// Nested UDTs carry their field tree by name only in this layer;
	// resolution of TyUdt.Res to the owning Udt value is done by the
	// caller (the lowerer, which has the item table). This helper only
	// supports a Udt field holding another Udt's already-resolved value,
	// which a caller supplies by wrapping it with AsFieldTree.
	if u, ok := t.(udtFieldTree); ok {
		return Udt(u), true
	}
	return Udt{}, false
}

// udtFieldTree lets the lowerer embed a fully-resolved nested Udt as a
// field's type so FieldPath can recurse without needing access to the
// item table itself.
type udtFieldTree Udt

func (udtFieldTree) tyNode()          {}
func (u udtFieldTree) String() string { return fmt.Sprintf("%s", u.Name) }

// AsFieldTree wraps u so it can be used as a nested field's Ty.
func AsFieldTree(u Udt) Ty { return udtFieldTree(u) }
