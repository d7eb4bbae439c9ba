// Package ast defines the surface AST the lowerer consumes: the output
// of an external parser (out of scope here), keyed by AstNodeId and
// carrying source spans. Nothing in this package resolves names or
// types — Res and Ty resolution live in internal/resolve and
// internal/types and arrive as separate side tables (Names, Tys)
// alongside a tree of this shape (spec §4.2.1, §6.1).
package ast

import "fmt"

// AstNodeId is the parser's node identity, distinct from any HIR id
// family so the lowerer's Names/Tys lookups are keyed unambiguously.
type AstNodeId uint32

// Pos is a single source location.
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int
}

func (p Pos) String() string { return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column) }

// Span is a half-open source range.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string { return fmt.Sprintf("[%d-%d]", s.Start.Offset, s.End.Offset) }

// Package is the root of a compiled source file: an optional sequence
// of top-level namespaces plus a top-level statement list (surface
// `use` and expression statements at file scope are legal and desugar
// the same way a namespace member's body would).
type Package struct {
	Id         AstNodeId
	Namespaces []*Namespace
	Stmts      []Stmt
	Span       Span
}

// Namespace is a dotted-name collection of items.
type Namespace struct {
	Id    AstNodeId
	Name  string
	Items []Item
	Span  Span
}

// Item is the sum of top-level declaration kinds a namespace (or
// nested namespace) can contain.
type Item interface {
	itemNode()
	ItemSpan() Span
}

// CallableItem declares a function or operation.
type CallableItem struct {
	Id         AstNodeId
	Kind       CallableKind
	Name       string
	Generics   []string
	Input      Pattern
	Output     Type
	Functors   []string // "Adj" | "Ctl" as written; empty if none declared
	Body       CallableBody
	Attrs      []Attr
	Span       Span
}

func (*CallableItem) itemNode()        {}
func (c *CallableItem) ItemSpan() Span { return c.Span }

type CallableKind int

const (
	KindFunction CallableKind = iota
	KindOperation
)

// CallableBody is either a single unnamed body block (sugar for
// `body { ... }` with no adj/ctl) or an explicit set of specializations.
type CallableBody struct {
	SingleBlock *Block
	Specs       []*SpecDecl
}

// SpecKind names the specialization slot a SpecDecl fills.
type SpecKind int

const (
	SpecBody SpecKind = iota
	SpecAdj
	SpecCtl
	SpecCtlAdj
)

func (k SpecKind) String() string {
	switch k {
	case SpecBody:
		return "body"
	case SpecAdj:
		return "adjoint"
	case SpecCtl:
		return "controlled"
	default:
		return "controlled adjoint"
	}
}

// SpecDecl is one specialization: a generator strategy or a concrete
// block, with an optional input pattern (controlled specs additionally
// bind a control-qubit register).
type SpecDecl struct {
	Id      AstNodeId
	Kind    SpecKind
	Input   Pattern // nil when elided (`...`)
	Gen     SpecGen // SpecGenNone when Body != nil
	Body    *Block
	Span    Span
}

type SpecGen int

const (
	SpecGenNone SpecGen = iota
	SpecGenAuto
	SpecGenDistribute
	SpecGenIntrinsic
	SpecGenInvert
	SpecGenSlf
)

// NamespaceItem nests a namespace inside another (rare but legal).
type NamespaceItem struct {
	Id   AstNodeId
	Inner *Namespace
	Span Span
}

func (*NamespaceItem) itemNode()        {}
func (n *NamespaceItem) ItemSpan() Span { return n.Span }

// TyDeclItem declares a user-defined type.
type TyDeclItem struct {
	Id     AstNodeId
	Name   string
	Fields []TyDeclField
	Attrs  []Attr
	Span   Span
}

type TyDeclField struct {
	Name string
	Type Type
}

func (*TyDeclItem) itemNode()        {}
func (t *TyDeclItem) ItemSpan() Span { return t.Span }

// ImportItem names a module path plus an optional selective symbol
// list; it vanishes during lowering.
type ImportItem struct {
	Id      AstNodeId
	Path    string
	Symbols []string
	Span    Span
}

func (*ImportItem) itemNode()        {}
func (i *ImportItem) ItemSpan() Span { return i.Span }

// ExportItem re-exports a name already visible in scope.
type ExportItem struct {
	Id   AstNodeId
	Name string
	Span Span
}

func (*ExportItem) itemNode()        {}
func (e *ExportItem) ItemSpan() Span { return e.Span }

// Attr is a parsed attribute application, e.g. `@EntryPoint()` or
// `@Config(not Base)`.
type Attr struct {
	Id   AstNodeId
	Name string
	Args []AttrArg
	Span Span
}

// AttrArg is one attribute-call argument: either a bare identifier
// (profile/capability name) or a negated one (`not Capability`).
type AttrArg struct {
	Name    string
	Negated bool
}

// Block is an ordered statement sequence.
type Block struct {
	Id    AstNodeId
	Stmts []Stmt
	Span  Span
}

// Stmt is the sum of surface statement kinds.
type Stmt interface {
	stmtNode()
	StmtSpan() Span
}

type ExprStmt struct {
	Id   AstNodeId
	Expr Expr
	Span Span
}

func (*ExprStmt) stmtNode()        {}
func (s *ExprStmt) StmtSpan() Span { return s.Span }

type SemiStmt struct {
	Id   AstNodeId
	Expr Expr
	Span Span
}

func (*SemiStmt) stmtNode()        {}
func (s *SemiStmt) StmtSpan() Span { return s.Span }

type ItemStmt struct {
	Id   AstNodeId
	Item Item
	Span Span
}

func (*ItemStmt) stmtNode()        {}
func (s *ItemStmt) StmtSpan() Span { return s.Span }

type Mutability int

const (
	Immutable Mutability = iota
	Mutable
)

type LocalStmt struct {
	Id    AstNodeId
	Mut   Mutability
	Pat   Pattern
	Value Expr
	Span  Span
}

func (*LocalStmt) stmtNode()        {}
func (s *LocalStmt) StmtSpan() Span { return s.Span }

// QubitSource distinguishes a fresh `use` allocation (QubitFresh) from
// a dirty `borrow` (QubitDirty). Whether the statement is the scoped
// `... { ... }` form or the `...;` form that lives for the rest of the
// enclosing block is recorded by QubitStmt.Block, not here.
type QubitSource int

const (
	QubitFresh QubitSource = iota
	QubitDirty
)

// QubitStmt is the surface `use` statement, eliminated entirely by
// internal/qubitalloc before any later pass sees it.
type QubitStmt struct {
	Id     AstNodeId
	Source QubitSource
	Pat    Pattern
	Init   QubitInit
	Block  *Block // non-nil for the scoped `use q = ... { ... }` form
	Span   Span
}

func (*QubitStmt) stmtNode()        {}
func (s *QubitStmt) StmtSpan() Span { return s.Span }

// QubitInit describes how the use statement's right-hand side
// allocates: a single qubit, an array of n qubits, or a tuple of
// nested inits (for `use (a, b) = (Qubit(), Qubit[2])`).
type QubitInit interface {
	qubitInitNode()
}

type QubitInitSingle struct{ Span Span }
type QubitInitArray struct {
	Count Expr
	Span  Span
}
type QubitInitTuple struct {
	Items []QubitInit
	Span  Span
}

func (QubitInitSingle) qubitInitNode() {}
func (QubitInitArray) qubitInitNode()  {}
func (QubitInitTuple) qubitInitNode()  {}

// EmptyStmt and ErrStmt are dropped during lowering.
type EmptyStmt struct {
	Id   AstNodeId
	Span Span
}

func (*EmptyStmt) stmtNode()        {}
func (s *EmptyStmt) StmtSpan() Span { return s.Span }

type ErrStmt struct {
	Id   AstNodeId
	Span Span
}

func (*ErrStmt) stmtNode()        {}
func (s *ErrStmt) StmtSpan() Span { return s.Span }
