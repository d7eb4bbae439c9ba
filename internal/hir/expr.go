package hir

import (
	"github.com/quantumlang/qcc/internal/ast"
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/types"
)

// Expr is a HIR expression: always typed (spec §3.4).
type Expr struct {
	Id   ids.NodeId
	Span ast.Span
	Type types.Ty
	Kind ExprKind
}

// ExprKind is the sum of HIR expression shapes (spec §3.4).
type ExprKind interface {
	exprKindNode()
}

// Lit mirrors ast.Lit after constant-folding of type suffixes; Pauli
// and Result are resolved to their concrete enumerators here.
type LitKind int

const (
	LitBigInt LitKind = iota
	LitBool
	LitDouble
	LitInt
	LitPauli
	LitResult
)

type Pauli int

const (
	PauliI Pauli = iota
	PauliX
	PauliY
	PauliZ
)

type ResultValue int

const (
	ResultZero ResultValue = iota
	ResultOne
)

type Lit struct {
	Kind   LitKind
	Int    int64
	BigInt string // decimal text, arbitrary precision
	Bool   bool
	Double float64
	Pauli  Pauli
	Result ResultValue
}

func (Lit) exprKindNode() {}

type ArrayExpr struct{ Items []*Expr }

func (ArrayExpr) exprKindNode() {}

type ArrayRepeatExpr struct {
	Item  *Expr
	Count *Expr
}

func (ArrayRepeatExpr) exprKindNode() {}

type TupleExpr struct{ Items []*Expr }

func (TupleExpr) exprKindNode() {}

// StructCtorExpr constructs a UDT value from a resolved set of fields,
// in declaration order (spec §3.4 struct-expr desugaring).
type StructCtorExpr struct {
	Udt    types.Udt
	Fields []*Expr
	Copy   *Expr // `new T { ...old, f = v }` base, nil otherwise
}

func (StructCtorExpr) exprKindNode() {}

type RangeExpr struct {
	Start *Expr // nil: open start
	Step  *Expr // nil: implicit 1
	End   *Expr // nil: open end
}

func (RangeExpr) exprKindNode() {}

type IndexExpr struct {
	Container *Expr
	Index     *Expr
}

func (IndexExpr) exprKindNode() {}

// FieldAccessExpr indexes into a UDT by resolved field path (spec
// §3.6, §4.2.6 desugaring from dotted field syntax).
type FieldAccessExpr struct {
	Container *Expr
	Path      []int
}

func (FieldAccessExpr) exprKindNode() {}

type BinOp int

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinExp
	BinAndB
	BinOrB
	BinXorB
	BinShl
	BinShr
	BinAndL
	BinOrL
	BinEq
	BinNeq
	BinLt
	BinLte
	BinGt
	BinGte
)

type BinOpExpr struct {
	Op    BinOp
	Lhs   *Expr
	Rhs   *Expr
}

func (BinOpExpr) exprKindNode() {}

type UnOp int

const (
	UnNeg UnOp = iota
	UnNotB
	UnNotL
	UnFunctorAdj
	UnFunctorCtl
)

type UnOpExpr struct {
	Op      UnOp
	Operand *Expr
}

func (UnOpExpr) exprKindNode() {}

type AssignExpr struct {
	Lhs *Expr
	Rhs *Expr
}

func (AssignExpr) exprKindNode() {}

type AssignOpExpr struct {
	Op  BinOp
	Lhs *Expr
	Rhs *Expr
}

func (AssignOpExpr) exprKindNode() {}

// AssignFieldExpr is the desugared target of `set r.field = v`.
type AssignFieldExpr struct {
	Container *Expr
	Path      []int
	Value     *Expr
}

func (AssignFieldExpr) exprKindNode() {}

// AssignIndexExpr is the desugared target of `set arr[i] = v`.
type AssignIndexExpr struct {
	Container *Expr
	Index     *Expr
	Value     *Expr
}

func (AssignIndexExpr) exprKindNode() {}

type CallExpr struct {
	Callee *Expr
	Args   *Expr // always a TupleExpr node, even for single-arg calls
}

func (CallExpr) exprKindNode() {}

// ClosureExpr lifts a lambda or partial application to a top-level
// generated callable item, capturing the listed locals by value
// (spec §4.2.5).
type ClosureExpr struct {
	Item     ids.LocalItemId
	Captures []ids.LocalVarId
}

func (ClosureExpr) exprKindNode() {}

// ConjugateExpr is `within U { } apply { }`; the lowerer does not
// synthesize the adjoint call, it is left to codegen/interpretation.
type ConjugateExpr struct {
	Within *Block
	Apply  *Block
}

func (ConjugateExpr) exprKindNode() {}

type FailExpr struct{ Message *Expr }

func (FailExpr) exprKindNode() {}

type ForExpr struct {
	Pat  *Pat
	Iter *Expr
	Body *Block
}

func (ForExpr) exprKindNode() {}

type WhileExpr struct {
	Cond *Expr
	Body *Block
}

func (WhileExpr) exprKindNode() {}

// RepeatUntilExpr is `repeat { } until cond fixup { }`; Fixup is nil
// when absent.
type RepeatUntilExpr struct {
	Body  *Block
	Until *Expr
	Fixup *Block
}

func (RepeatUntilExpr) exprKindNode() {}

type IfExpr struct {
	Cond *Expr
	Then *Block
	Else *Expr // nil, another IfExpr-wrapped Expr, or a BlockExpr
}

func (IfExpr) exprKindNode() {}

type BlockExpr struct{ Block *Block }

func (BlockExpr) exprKindNode() {}

type ReturnExpr struct{ Value *Expr } // nil Value means return unit

func (ReturnExpr) exprKindNode() {}

// StringComponent is either a literal fragment or an interpolated
// expression hole, preserved from ast.StringComponent.
type StringComponent struct {
	Lit  string
	Expr *Expr // nil for a literal fragment
}

type StringExpr struct{ Components []StringComponent }

func (StringExpr) exprKindNode() {}

// VarExpr references a resolved local or item, with generic
// instantiation arguments when the referent is generic.
type VarExpr struct {
	Local    *ids.LocalVarId   // nil when referring to an item
	Item     *ids.StoreItemId  // nil when referring to a local
	Generics []types.Ty
}

func (VarExpr) exprKindNode() {}

// HoleExpr marks a partial-application placeholder (`_`). internal/lower
// never emits it: a hole in a call's argument shape becomes a parameter
// of the synthesized closure, and a hole anywhere else is lowered to an
// ErrExpr with a LOW006 error.
type HoleExpr struct{}

func (HoleExpr) exprKindNode() {}

// UnitExpr is the literal unit value `()`.
type UnitExpr struct{}

func (UnitExpr) exprKindNode() {}

// ErrExpr marks an expression the lowerer could not resolve.
type ErrExpr struct{}

func (ErrExpr) exprKindNode() {}
