package hir

import (
	"github.com/quantumlang/qcc/internal/ast"
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/resolve"
	"github.com/quantumlang/qcc/internal/types"
)

// Visibility controls whether an item is visible outside its package.
type Visibility int

const (
	Internal Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "Public"
	}
	return "Internal"
}

// Item is one entry in a package's item table: a callable, a
// namespace, a UDT declaration, or an export.
type Item struct {
	Id         ids.LocalItemId
	Span       ast.Span
	Parent     *ids.LocalItemId
	Doc        string
	Attrs      []Attr
	Visibility Visibility
	Kind       ItemKind
}

// ItemKind is the sum of item shapes (spec §3.2).
type ItemKind interface {
	itemKindNode()
}

type CallableItemKind struct {
	Decl *CallableDecl
}

func (CallableItemKind) itemKindNode() {}

// NamespaceItemKind collects the ids of items declared directly under
// this namespace, in source order.
type NamespaceItemKind struct {
	Name     string
	Children []ids.LocalItemId
}

func (NamespaceItemKind) itemKindNode() {}

type TyItemKind struct {
	Name string
	Udt  types.Udt
}

func (TyItemKind) itemKindNode() {}

// ExportItemKind re-exports Res under Name. After self-export collapse
// (spec §4.2.4) no same-package, same-parent, same-name export survives
// lowering; cross-package exports always survive.
type ExportItemKind struct {
	Name string
	Res  resolve.Res
}

func (ExportItemKind) itemKindNode() {}

// AttrKind names a recognized attribute (spec §4.2.2 table). Attrs
// that failed validation are dropped by the lowerer and never reach
// the HIR, except Test, which the lowerer always retains even on a
// shape mismatch to preserve test discovery.
type AttrKind int

const (
	AttrEntryPoint AttrKind = iota
	AttrConfig
	AttrUnimplemented
	AttrSimulatableIntrinsic
	AttrMeasurement
	AttrReset
	AttrTest
)

func (k AttrKind) String() string {
	switch k {
	case AttrEntryPoint:
		return "EntryPoint"
	case AttrConfig:
		return "Config"
	case AttrUnimplemented:
		return "Unimplemented"
	case AttrSimulatableIntrinsic:
		return "SimulatableIntrinsic"
	case AttrMeasurement:
		return "Measurement"
	case AttrReset:
		return "Reset"
	default:
		return "Test"
	}
}

// Attr is a validated attribute attached to an item.
type Attr struct {
	Kind           AttrKind
	ProfileName    string // AttrEntryPoint, optional
	CapabilityName string // AttrConfig
	Negated        bool   // AttrConfig: `not Capability`
}
