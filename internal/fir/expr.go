package fir

import (
	"github.com/quantumlang/qcc/internal/hir"
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/types"
)

// Expr mirrors hir.Expr with id references in place of pointers, so
// an ExecGraph can name an expression without embedding a subtree.
type Expr struct {
	Type types.Ty
	Kind ExprKind
}

type ExprKind interface{ firExprKindNode() }

type Lit struct {
	Kind   hir.LitKind
	Int    int64
	BigInt string
	Bool   bool
	Double float64
	Pauli  hir.Pauli
	Result hir.ResultValue
}

func (Lit) firExprKindNode() {}

type VarExpr struct {
	Local    *ids.LocalVarId
	Item     *ids.StoreItemId
	Generics []types.Ty
}

func (VarExpr) firExprKindNode() {}

type TupleExpr struct{ Items []ids.ExprId }
type ArrayExpr struct{ Items []ids.ExprId }
type ArrayRepeatExpr struct {
	Item  ids.ExprId
	Count ids.ExprId
}

func (TupleExpr) firExprKindNode()       {}
func (ArrayExpr) firExprKindNode()       {}
func (ArrayRepeatExpr) firExprKindNode() {}

type BinOpExpr struct {
	Op  hir.BinOp
	Lhs ids.ExprId
	Rhs ids.ExprId
}

type UnOpExpr struct {
	Op      hir.UnOp
	Operand ids.ExprId
}

func (BinOpExpr) firExprKindNode() {}
func (UnOpExpr) firExprKindNode()  {}

type AssignExpr struct {
	Lhs ids.ExprId
	Rhs ids.ExprId
}
type AssignOpExpr struct {
	Op  hir.BinOp
	Lhs ids.ExprId
	Rhs ids.ExprId
}

func (AssignExpr) firExprKindNode()   {}
func (AssignOpExpr) firExprKindNode() {}

type FieldAccessExpr struct {
	Container ids.ExprId
	Path      []int
}
type IndexExpr struct {
	Container ids.ExprId
	Index     ids.ExprId
}
type RangeExpr struct {
	Start *ids.ExprId
	Step  *ids.ExprId
	End   *ids.ExprId
}

func (FieldAccessExpr) firExprKindNode() {}
func (IndexExpr) firExprKindNode()       {}
func (RangeExpr) firExprKindNode()       {}

type CallExpr struct {
	Callee ids.ExprId
	Args   ids.ExprId
}

func (CallExpr) firExprKindNode() {}

type ClosureExpr struct {
	Item     ids.StoreItemId
	Captures []ids.LocalVarId
}

func (ClosureExpr) firExprKindNode() {}

// ConjugateExpr, ForExpr, WhileExpr, RepeatUntilExpr, and IfExpr are
// not directly represented as FIR expressions: the flattening pass
// (flatten.go) compiles each into jump/branch ExecGraphNode sequences
// instead, since FIR's unit of control flow is the exec graph, not a
// nested expression tree.

type FailExpr struct{ Message ids.ExprId }

func (FailExpr) firExprKindNode() {}

type StringComponent struct {
	Lit  string
	Expr *ids.ExprId
}
type StringExpr struct{ Components []StringComponent }

func (StringExpr) firExprKindNode() {}

type StructCtorExpr struct {
	Udt    types.Udt
	Fields []ids.ExprId
}

func (StructCtorExpr) firExprKindNode() {}

type UnitExpr struct{}

func (UnitExpr) firExprKindNode() {}
