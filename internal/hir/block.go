package hir

import (
	"github.com/quantumlang/qcc/internal/ast"
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/types"
)

// Block is an ordered statement sequence with a value type (Unit if
// the block produces no value).
type Block struct {
	Id    ids.NodeId
	Span  ast.Span
	Type  types.Ty
	Stmts []*Stmt
}

// Stmt is one HIR statement.
type Stmt struct {
	Id   ids.NodeId
	Span ast.Span
	Kind StmtKind
}

// StmtKind is the sum of HIR statement shapes (spec §3.4). Qubit
// survives lowering but never survives internal/qubitalloc.
type StmtKind interface {
	stmtKindNode()
}

type ExprStmt struct{ Expr *Expr }
type ItemStmt struct{ Item ids.LocalItemId }
type SemiStmt struct{ Expr *Expr }

type LocalStmt struct {
	Mut   ast.Mutability
	Pat   *Pat
	Value *Expr
}

type QubitSource int

const (
	QubitFresh QubitSource = iota
	QubitDirty
)

// QubitStmt is preserved as-is by the lowerer and eliminated only by
// internal/qubitalloc (spec §4.3).
type QubitStmt struct {
	Source QubitSource
	Pat    *Pat
	Init   *QubitInit
	Block  *Block // non-nil for the scoped `use q = ... { ... }` form
}

func (ExprStmt) stmtKindNode()  {}
func (ItemStmt) stmtKindNode()  {}
func (SemiStmt) stmtKindNode()  {}
func (LocalStmt) stmtKindNode() {}
func (QubitStmt) stmtKindNode() {}

// QubitInit mirrors ast.QubitInit after lowering: a single qubit, an
// array of n qubits (n itself a lowered Expr), or a tuple of nested
// inits.
type QubitInit struct {
	Kind  QubitInitKind
	Count *Expr           // QubitInitArray only
	Items []*QubitInit    // QubitInitTuple only
}

type QubitInitKind int

const (
	QubitInitSingle QubitInitKind = iota
	QubitInitArray
	QubitInitTuple
)
