package fir

import "github.com/quantumlang/qcc/internal/ids"

// ExecGraph is the linear instruction sequence an interpreter walks
// for one callable specialization, built by flatten.go from the
// specialization's hir.Block. Jump targets are absolute indices into
// this slice, assigned only once the full sequence length is known
// (spec §3.8).
type ExecGraph []ExecGraphNode

// ExecGraphNode is the sum of flattened control/data instructions.
// Every variant that produces a value leaves it on the interpreter's
// implicit single-value "current result" register, which Bind and
// Store consume; this mirrors the Rust RIR's accumulator-style exec
// graph rather than introducing an explicit operand stack.
type ExecGraphNode interface{ execGraphNode() }

// EvalExpr evaluates the named FIR expression and leaves its value as
// the current result.
type EvalExpr struct{ Expr ids.ExprId }

// Bind moves the current result into a fresh local variable.
type Bind struct{ Var ids.LocalVarId }

// Store moves the current result into an already-bound local
// (assignment, as opposed to Bind's fresh declaration).
type Store struct{ Var ids.LocalVarId }

// Jump transfers control unconditionally to Target.
type Jump struct{ Target int }

// JumpIf transfers control to Target when the current result is true.
type JumpIf struct{ Target int }

// JumpIfNot transfers control to Target when the current result is
// false.
type JumpIfNot struct{ Target int }

// Unit sets the current result to the unit value, used to seed
// fall-through blocks and empty else-arms.
type Unit struct{}

// Ret ends specialization execution, returning the current result to
// the caller.
type Ret struct{}

// RetFrame pops an interpreter call frame pushed by a nested call
// before continuing evaluation of the enclosing specialization.
// flatten.go never emits it: every CallExpr, closure application
// included, is evaluated through a single EvalExpr.
type RetFrame struct{}

// RunStmt runs the named FIR statement for its side effects, discarding
// any value it produces. flatten.go never emits it: a `;`-terminated
// expression statement is flattened to its expression's own nodes, and
// an item statement adds no node to the graph.
type RunStmt struct{ Stmt ids.StmtId }

// PushScope opens a new local-variable scope. flatten.go emits it once,
// at the start of each specialization's graph; nested blocks inside
// that graph do not push a scope of their own.
type PushScope struct{}

// PopScope closes the most recently pushed scope.
type PopScope struct{}

// BlockEnd marks the flattened end of a source block; purely
// informational; the interpreter treats it as a no-op but downstream
// tooling (coverage, debugging) uses it to recover block boundaries
// that jumps would otherwise obscure.
type BlockEnd struct{}

func (EvalExpr) execGraphNode()  {}
func (Bind) execGraphNode()      {}
func (Store) execGraphNode()     {}
func (Jump) execGraphNode()      {}
func (JumpIf) execGraphNode()    {}
func (JumpIfNot) execGraphNode() {}
func (Unit) execGraphNode()      {}
func (Ret) execGraphNode()       {}
func (RetFrame) execGraphNode()  {}
func (RunStmt) execGraphNode()   {}
func (PushScope) execGraphNode() {}
func (PopScope) execGraphNode()  {}
func (BlockEnd) execGraphNode()  {}
