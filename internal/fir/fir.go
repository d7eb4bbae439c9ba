// Package fir defines the Flattened IR: per-package dense tables of
// blocks, expressions, patterns, and statements addressed by the
// ids.BlockId/ExprId/PatId/StmtId families, plus a generated
// ExecGraph per specialization that an interpreter walks directly
// instead of recursing over the HIR tree (spec §3.7–3.8).
//
// FIR trades the HIR's pointer tree for flat, densely-indexed arrays:
// every reference between nodes is an id into one of Package's tables
// rather than a pointer, which is what lets the exec graph express
// control flow (jumps) without needing a call stack shaped like the
// surface syntax.
package fir

import (
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/types"
)

// Package is a single package's FIR: dense node tables plus an item
// table mirroring hir.Package's, and the entry exec graph if this
// package has an entry point.
type Package struct {
	Blocks *ids.IndexMap[ids.BlockId, *Block]
	Exprs  *ids.IndexMap[ids.ExprId, *Expr]
	Pats   *ids.IndexMap[ids.PatId, *Pat]
	Stmts  *ids.IndexMap[ids.StmtId, *Stmt]
	Items  *ids.IndexMap[ids.LocalItemId, *Item]

	Entry *ExecGraph
}

// NewPackage returns an empty Package with all tables initialized.
func NewPackage() *Package {
	return &Package{
		Blocks: ids.NewIndexMap[ids.BlockId, *Block](),
		Exprs:  ids.NewIndexMap[ids.ExprId, *Expr](),
		Pats:   ids.NewIndexMap[ids.PatId, *Pat](),
		Stmts:  ids.NewIndexMap[ids.StmtId, *Stmt](),
		Items:  ids.NewIndexMap[ids.LocalItemId, *Item](),
	}
}

// Item mirrors hir.Item but its CallableDecl carries an ExecGraph per
// specialization instead of a Block pointer tree.
type Item struct {
	Id         ids.LocalItemId
	Visibility int
	Kind       ItemKind
}

type ItemKind interface{ firItemKindNode() }

type CallableItemKind struct{ Decl *CallableDecl }

func (CallableItemKind) firItemKindNode() {}

type TyItemKind struct {
	Name string
	Udt  types.Udt
}

func (TyItemKind) firItemKindNode() {}

// CallableDecl is the flattened counterpart of hir.CallableDecl: each
// present specialization is compiled to its own ExecGraph.
type CallableDecl struct {
	Name     string
	Kind     types.CallableKind
	Input    ids.PatId
	Output   types.Ty
	Functors types.FunctorSetValue
	Body     *ExecGraph
	Adj      *ExecGraph
	Ctl      *ExecGraph
	CtlAdj   *ExecGraph
}

// Block is a flat statement sequence addressed by ids.BlockId. No Stmt
// or Expr kind refers to a BlockId, and Flatten leaves the Blocks table
// empty: nested blocks are inlined into the exec graph instead.
type Block struct {
	Type  types.Ty
	Stmts []ids.StmtId
}

// Stmt mirrors hir.Stmt with id references in place of pointers.
type Stmt struct {
	Kind StmtKind
}

type StmtKind interface{ firStmtKindNode() }

type ExprStmt struct{ Expr ids.ExprId }
type SemiStmt struct{ Expr ids.ExprId }
type ItemStmt struct{ Item ids.LocalItemId }
type LocalStmt struct {
	Pat   ids.PatId
	Value ids.ExprId
}

func (ExprStmt) firStmtKindNode()  {}
func (SemiStmt) firStmtKindNode()  {}
func (ItemStmt) firStmtKindNode()  {}
func (LocalStmt) firStmtKindNode() {}

// Pat mirrors hir.Pat with id references in place of pointers. FIR
// patterns never carry ErrPat — Flatten skips an item whose input
// pattern contains one, and returns an error if one appears anywhere
// else (spec §3.7).
type Pat struct {
	Type types.Ty
	Kind PatKind
}

type PatKind interface{ firPatKindNode() }

type BindPat struct {
	Name string
	Var  ids.LocalVarId
}
type DiscardPat struct{}
type TuplePat struct{ Items []ids.PatId }

func (BindPat) firPatKindNode()    {}
func (DiscardPat) firPatKindNode() {}
func (TuplePat) firPatKindNode()   {}
