// Package hir defines the High-level IR: the fully-resolved,
// fully-typed tree the lowerer produces from the surface AST (spec
// §3.2–3.4). Every node carries an ids.NodeId (or its per-kind
// equivalent), a source span, and — for expressions and patterns — a
// resolved types.Ty.
package hir

import (
	"github.com/quantumlang/qcc/internal/ids"
)

// Package is a single compiled package: its item table plus an
// optional entry-point expression.
type Package struct {
	Items *ids.IndexMap[ids.LocalItemId, *Item]
	Entry *Expr
}

// NewPackage returns an empty Package ready for the lowerer to fill in.
func NewPackage() *Package {
	return &Package{Items: ids.NewIndexMap[ids.LocalItemId, *Item]()}
}
