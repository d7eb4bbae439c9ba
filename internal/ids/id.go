// Package ids defines the dense, monotonically assigned identifier
// families used by every IR table in the compiler, and the Assigner
// that hands them out.
//
// Distinct Go types back each ID family so the compiler forbids
// cross-table indexing at compile time: a BlockId can never be used
// where an ExprId is expected, even though both are backed by uint32.
package ids

import "fmt"

// NodeId is a generic HIR node id, unique within a package. The zero
// value is the sentinel "unassigned" id; using it after lowering has
// completed is a programming error, not a user-facing one.
type NodeId uint32

// NodeIdDefault is the sentinel value for a NodeId that has not yet
// been assigned by an Assigner.
const NodeIdDefault NodeId = 0

// IsDefault reports whether n is the unassigned sentinel.
func (n NodeId) IsDefault() bool { return n == NodeIdDefault }

func (n NodeId) String() string { return fmt.Sprintf("%d", uint32(n)) }

// PackageId identifies a package within the process-wide package store.
type PackageId uint32

func (p PackageId) String() string { return fmt.Sprintf("%d", uint32(p)) }

// LocalItemId identifies an item within a single package.
type LocalItemId uint32

func (l LocalItemId) String() string { return fmt.Sprintf("%d", uint32(l)) }

// BlockId, ExprId, PatId, StmtId are FIR-only per-package, per-kind
// dense ids. LocalVarId is not FIR-only: it also numbers HIR locals
// (hir.BindPat.Var, hir.VarExpr.Local, hir.ClosureExpr.Captures).
type (
	BlockId    uint32
	ExprId     uint32
	PatId      uint32
	StmtId     uint32
	LocalVarId uint32
)

func (b BlockId) String() string    { return fmt.Sprintf("%d", uint32(b)) }
func (e ExprId) String() string     { return fmt.Sprintf("%d", uint32(e)) }
func (p PatId) String() string      { return fmt.Sprintf("%d", uint32(p)) }
func (s StmtId) String() string     { return fmt.Sprintf("%d", uint32(s)) }
func (l LocalVarId) String() string { return fmt.Sprintf("%d", uint32(l)) }

// ItemId is (Option<PackageId>, LocalItemId): Package == nil means "this
// package", resolved to a concrete PackageId only when the reference
// crosses a package boundary.
type ItemId struct {
	Package *PackageId
	Item    LocalItemId
}

// NewLocalItemId builds an ItemId referring to an item in the current
// package.
func NewLocalItemId(item LocalItemId) ItemId {
	return ItemId{Item: item}
}

// NewForeignItemId builds an ItemId referring to an item in package pkg.
func NewForeignItemId(pkg PackageId, item LocalItemId) ItemId {
	return ItemId{Package: &pkg, Item: item}
}

// IsLocal reports whether the item id refers to the current package.
func (i ItemId) IsLocal() bool { return i.Package == nil }

func (i ItemId) String() string {
	if i.Package == nil {
		return fmt.Sprintf("Item %d", uint32(i.Item))
	}
	return fmt.Sprintf("Item %d (Package %d)", uint32(i.Item), uint32(*i.Package))
}

// StoreItemId, StoreExprId, StoreBlockId, StorePatId, StoreStmtId are
// cross-package views used once an ItemId/BlockId/etc. has been
// resolved to a concrete owning package.
type StoreItemId struct {
	Package PackageId
	Item    LocalItemId
}

type StoreExprId struct {
	Package PackageId
	Expr    ExprId
}

type StoreBlockId struct {
	Package PackageId
	Block   BlockId
}

type StorePatId struct {
	Package PackageId
	Pat     PatId
}

type StoreStmtId struct {
	Package PackageId
	Stmt    StmtId
}

func (s StoreItemId) String() string {
	return fmt.Sprintf("Item %d (Package %d)", uint32(s.Item), uint32(s.Package))
}
func (s StoreExprId) String() string {
	return fmt.Sprintf("Expr %d (Package %d)", uint32(s.Expr), uint32(s.Package))
}
func (s StoreBlockId) String() string {
	return fmt.Sprintf("Block %d (Package %d)", uint32(s.Block), uint32(s.Package))
}
func (s StorePatId) String() string {
	return fmt.Sprintf("Pat %d (Package %d)", uint32(s.Pat), uint32(s.Package))
}
func (s StoreStmtId) String() string {
	return fmt.Sprintf("Stmt %d (Package %d)", uint32(s.Stmt), uint32(s.Package))
}

// Assigner is a monotonic allocator of fresh ids for a single package
// being compiled. It is owned exclusively by the unit being compiled
// and must never be shared across goroutines.
type Assigner struct {
	nextNode  NodeId
	nextItem  LocalItemId
	nextBlock BlockId
	nextExpr  ExprId
	nextPat   PatId
	nextStmt  StmtId
	nextLocal LocalVarId
	// fresh is a monotonic counter used to mint collision-free synthetic
	// identifier text, e.g. "generated_ident_7".
	fresh uint32
}

// NewAssigner returns an Assigner whose NodeId allocation starts past
// the sentinel default value.
func NewAssigner() *Assigner {
	return &Assigner{nextNode: NodeIdDefault + 1}
}

// NextNode allocates a fresh NodeId. Ids are never reused.
func (a *Assigner) NextNode() NodeId {
	id := a.nextNode
	a.nextNode++
	return id
}

// NextItem allocates a fresh LocalItemId.
func (a *Assigner) NextItem() LocalItemId {
	id := a.nextItem
	a.nextItem++
	return id
}

// NextBlock allocates a fresh BlockId (FIR only).
func (a *Assigner) NextBlock() BlockId {
	id := a.nextBlock
	a.nextBlock++
	return id
}

// NextExpr allocates a fresh ExprId (FIR only).
func (a *Assigner) NextExpr() ExprId {
	id := a.nextExpr
	a.nextExpr++
	return id
}

// NextPat allocates a fresh PatId (FIR only).
func (a *Assigner) NextPat() PatId {
	id := a.nextPat
	a.nextPat++
	return id
}

// NextStmt allocates a fresh StmtId (FIR only).
func (a *Assigner) NextStmt() StmtId {
	id := a.nextStmt
	a.nextStmt++
	return id
}

// NextLocalVar allocates a fresh LocalVarId (used by lowering and the
// qubit-allocation rewrite for HIR locals).
func (a *Assigner) NextLocalVar() LocalVarId {
	id := a.nextLocal
	a.nextLocal++
	return id
}

// FreshName mints a synthetic identifier of the form
// "generated_ident_<n>", guaranteed not to collide with any prior
// synthetic name minted by this assigner, since the counter is
// monotonic and private to the assigner instance.
func (a *Assigner) FreshName() string {
	n := a.fresh
	a.fresh++
	return fmt.Sprintf("generated_ident_%d", n)
}
