// Package types defines the type system shared by the surface
// type-checker's output (Tys, consumed but not produced here) and the
// HIR/FIR models: type constructors, type schemes with generics,
// functor sets, and user-defined types.
//
// This package intentionally does not perform type inference or
// unification — that belongs to the external resolver/checker the
// lowerer consumes (spec §4.2.1). What lives here is the data those
// passes hand off and the HIR carries forward: a closed set of type
// constructors plus generalization (Scheme).
package types

import (
	"fmt"
	"strings"
)

// Ty is a type in the surface/HIR type system. Implementations are a
// closed set of value types, not an extensible interface hierarchy —
// callers switch on the concrete type the way the HIR switches on
// ExprKind.
type Ty interface {
	String() string
	tyNode()
}

// CallableKind distinguishes a Function from an Operation, the two
// kinds of callable arrows can describe.
type CallableKind int

const (
	Function CallableKind = iota
	Operation
)

func (k CallableKind) String() string {
	if k == Function {
		return "Function"
	}
	return "Operation"
}

// Functor is a single transformation a callable may support.
type Functor int

const (
	Adj Functor = iota
	Ctl
)

func (f Functor) String() string {
	if f == Adj {
		return "Adj"
	}
	return "Ctl"
}

// FunctorSetValue is a concrete subset of {Adj, Ctl}.
type FunctorSetValue struct {
	HasAdj bool
	HasCtl bool
}

func (f FunctorSetValue) String() string {
	var parts []string
	if f.HasAdj {
		parts = append(parts, "Adj")
	}
	if f.HasCtl {
		parts = append(parts, "Ctl")
	}
	return strings.Join(parts, " + ")
}

// Union returns the smallest FunctorSetValue containing both sets'
// functors.
func (f FunctorSetValue) Union(o FunctorSetValue) FunctorSetValue {
	return FunctorSetValue{HasAdj: f.HasAdj || o.HasAdj, HasCtl: f.HasCtl || o.HasCtl}
}

// FunctorSet is either a concrete FunctorSetValue or a generic
// placeholder (Param) awaiting instantiation. internal/lower does not
// synthesize such placeholders; it reads only concrete functor sets
// from the checker's recorded types.
type FunctorSet struct {
	Value *FunctorSetValue // non-nil: concrete
	Param string           // non-empty when Value == nil: generic parameter name
}

func (f FunctorSet) String() string {
	if f.Value != nil {
		return f.Value.String()
	}
	return f.Param
}

// Concrete scalar, container, and nominal type constructors.

type (
	TyInt    struct{}
	TyBigInt struct{}
	TyDouble struct{}
	TyBool   struct{}
	TyString struct{}
	TyPauli  struct{}
	TyResult struct{}
	TyRange  struct{}
	TyQubit  struct{}
	TyUnit   struct{}
	TyErr    struct{} // filler emitted by the lowerer for unresolvable types
)

func (TyInt) tyNode()    {}
func (TyBigInt) tyNode() {}
func (TyDouble) tyNode() {}
func (TyBool) tyNode()   {}
func (TyString) tyNode() {}
func (TyPauli) tyNode()  {}
func (TyResult) tyNode() {}
func (TyRange) tyNode()  {}
func (TyQubit) tyNode()  {}
func (TyUnit) tyNode()   {}
func (TyErr) tyNode()    {}

func (TyInt) String() string    { return "Int" }
func (TyBigInt) String() string { return "BigInt" }
func (TyDouble) String() string { return "Double" }
func (TyBool) String() string   { return "Bool" }
func (TyString) String() string { return "String" }
func (TyPauli) String() string  { return "Pauli" }
func (TyResult) String() string { return "Result" }
func (TyRange) String() string  { return "Range" }
func (TyQubit) String() string  { return "Qubit" }
func (TyUnit) String() string   { return "Unit" }
func (TyErr) String() string    { return "Err" }

// TyArray is a classical homogeneous container.
type TyArray struct{ Elem Ty }

func (TyArray) tyNode()          {}
func (a TyArray) String() string { return fmt.Sprintf("(%s)[]", a.Elem) }

// TyTuple is a classical fixed-arity heterogeneous container.
type TyTuple struct{ Items []Ty }

func (TyTuple) tyNode() {}
func (t TyTuple) String() string {
	parts := make([]string, len(t.Items))
	for i, it := range t.Items {
		parts[i] = it.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

// TyArrow is a callable's type: kind, input, output, and functor set.
type TyArrow struct {
	Kind     CallableKind
	Input    Ty
	Output   Ty
	Functors FunctorSet
}

func (TyArrow) tyNode() {}
func (a TyArrow) String() string {
	arrowOp := "->"
	if a.Kind == Operation {
		arrowOp = "=>"
	}
	fs := a.Functors.String()
	if fs == "" {
		return fmt.Sprintf("(%s %s %s)", a.Input, arrowOp, a.Output)
	}
	return fmt.Sprintf("(%s %s %s is %s)", a.Input, arrowOp, a.Output, fs)
}

// TyUdt is a named user-defined type, referencing its definition by a
// textual resolution (the HIR layer pairs this with the resolved
// ids.ItemId; keeping this layer free of the ids package avoids a
// dependency cycle since ids has no notion of types).
type TyUdt struct {
	Name string
	Res  string // e.g. "Item 3" or "Item 3 (Package 0)"
}

func (TyUdt) tyNode()          {}
func (u TyUdt) String() string { return u.Name }

// TyVar is a generic type parameter reference within a Scheme's body.
type TyVar struct{ Name string }

func (TyVar) tyNode()          {}
func (v TyVar) String() string { return v.Name }

// PrimField names Range's three primitive fields, the only classical
// fields resolvable against a non-UDT type (spec §4.2.2).
type PrimField int

const (
	FieldStart PrimField = iota
	FieldStep
	FieldEnd
)

func (f PrimField) String() string {
	switch f {
	case FieldStart:
		return "Start"
	case FieldStep:
		return "Step"
	default:
		return "End"
	}
}

// OpenQASM surface additions, lowered away before reaching HIR proper
// but needed by the lowerer while it still sees the checker's Tys.

type TyFixedInt struct{ Width int }
type TyFixedUInt struct{ Width int }
type TyFixedFloat struct{ Width int }
type TyAngle struct{ Width int }
type TyComplex struct{ Width int }
type TyBitArray struct{ N int }
type TyQubitArray struct{ N int }

func (TyFixedInt) tyNode()   {}
func (TyFixedUInt) tyNode()  {}
func (TyFixedFloat) tyNode() {}
func (TyAngle) tyNode()      {}
func (TyComplex) tyNode()    {}
func (TyBitArray) tyNode()   {}
func (TyQubitArray) tyNode() {}

func (t TyFixedInt) String() string   { return fmt.Sprintf("Int(%d)", t.Width) }
func (t TyFixedUInt) String() string  { return fmt.Sprintf("UInt(%d)", t.Width) }
func (t TyFixedFloat) String() string { return fmt.Sprintf("Float(%d)", t.Width) }
func (t TyAngle) String() string      { return fmt.Sprintf("Angle(%d)", t.Width) }
func (t TyComplex) String() string    { return fmt.Sprintf("Complex(%d)", t.Width) }
func (t TyBitArray) String() string   { return fmt.Sprintf("Bit[%d]", t.N) }
func (t TyQubitArray) String() string { return fmt.Sprintf("Qubit[%d]", t.N) }

// DynArrayRef is a reference to a dynamically-sized OpenQASM array,
// carrying a mutability flag (spec §3.5).
type DynArrayRef struct {
	Elem    Ty
	Mutable bool
}

func (DynArrayRef) tyNode() {}
func (d DynArrayRef) String() string {
	if d.Mutable {
		return fmt.Sprintf("mutable &%s[]", d.Elem)
	}
	return fmt.Sprintf("&%s[]", d.Elem)
}

// Equals reports structural equality of two concrete types. Generic
// type variables compare by name only (no substitution is performed
// here — that is the external checker's job).
func Equals(a, b Ty) bool {
	return a.String() == b.String()
}
