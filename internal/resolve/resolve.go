// Package resolve defines the contract the lowerer consumes from the
// external resolver and type-checker: a dense Names table from AST
// node ids to resolutions, and a Tys table from AST node ids to
// checked types and generic instantiations (spec §4.2.1, §6.1).
//
// Nothing in this package performs resolution or type-checking; it is
// the shape of data those (out-of-scope) passes hand to the lowerer.
package resolve

import (
	"fmt"

	"github.com/quantumlang/qcc/internal/ast"
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/types"
)

// ResKind discriminates the cases of Res.
type ResKind int

const (
	ResErr ResKind = iota
	ResItem
	ResLocal
	ResImportable
	ResPrimTy
	ResUnitTy
	ResParam
)

// Res is what a name resolves to.
type Res struct {
	Kind ResKind

	Item ids.ItemId // ResItem
	Local ast.AstNodeId // ResLocal: the AstNodeId of the binding site (the
	                    // Ident inside the BindPat that introduced it),
	                    // not any HIR id — the lowerer maps this to the
	                    // ids.LocalVarId it mints when it lowers that
	                    // bind site, via its own binder-site table.

	Importable string // ResImportable: the imported path/symbol

	PrimTy types.Ty // ResPrimTy: Int, Bool, etc.

	// ResParam: a generic type or functor parameter reference.
	ParamName string
	ParamIsFunctor bool
}

// Err is the shared sentinel returned when a name failed to resolve.
var Err = Res{Kind: ResErr}

func (r Res) String() string {
	switch r.Kind {
	case ResItem:
		return r.Item.String()
	case ResLocal:
		return fmt.Sprintf("Local %s", r.Local)
	case ResImportable:
		return r.Importable
	case ResPrimTy:
		return r.PrimTy.String()
	case ResUnitTy:
		return "Unit"
	case ResParam:
		return r.ParamName
	default:
		return "Err"
	}
}

// Names maps AST node ids to their resolution. Lookups the lowerer
// performs are expected to always hit: the external resolver is
// required to have produced an entry for every name-bearing node.
type Names map[ast.AstNodeId]Res

// Get returns the resolution recorded for id, or Err if none exists
// (which the lowerer treats as a programming-error-adjacent case: the
// resolver contract promises full coverage for well-formed input).
func (n Names) Get(id ast.AstNodeId) Res {
	if r, ok := n[id]; ok {
		return r
	}
	return Err
}

// GenericArg is one instantiation argument recorded against a call or
// reference site with explicit or inferred generics.
type GenericArg struct {
	Ty     types.Ty        // non-nil for a type argument
	Functor *types.FunctorSetValue // non-nil for a functor argument
}

// Tys is the type-checker's output: resolved types per AST term,
// generic instantiations per AST expression, and the Udt shape for
// each locally-declared type item.
type Tys struct {
	Terms    map[ast.AstNodeId]types.Ty
	Generics map[ast.AstNodeId][]GenericArg
	Udts     map[ids.LocalItemId]types.Udt
}

// NewTys returns an empty Tys with initialized maps.
func NewTys() *Tys {
	return &Tys{
		Terms:    make(map[ast.AstNodeId]types.Ty),
		Generics: make(map[ast.AstNodeId][]GenericArg),
		Udts:     make(map[ids.LocalItemId]types.Udt),
	}
}

// TermOrErr returns the resolved type for id, or types.TyErr{} if the
// checker recorded none — the lowerer's standard recovery filler.
func (t *Tys) TermOrErr(id ast.AstNodeId) types.Ty {
	if ty, ok := t.Terms[id]; ok {
		return ty
	}
	return types.TyErr{}
}
