package ast

// Type is a surface type annotation, resolved by the external checker
// into types.Ty (recorded in Tys.terms keyed by the annotation's
// AstNodeId) before the lowerer ever inspects it. The lowerer itself
// only needs the AstNodeId to look the resolved type up; the surface
// shape is kept here for completeness of the AST contract.
type Type interface {
	typeNode()
	TypeSpan() Span
}

type NamedType struct {
	Id       AstNodeId
	Path     string
	Generics []Type
	Span     Span
}

func (*NamedType) typeNode()        {}
func (t *NamedType) TypeSpan() Span { return t.Span }

type ArrayType struct {
	Id   AstNodeId
	Elem Type
	Span Span
}

func (*ArrayType) typeNode()        {}
func (t *ArrayType) TypeSpan() Span { return t.Span }

type TupleType struct {
	Id    AstNodeId
	Items []Type
	Span  Span
}

func (*TupleType) typeNode()        {}
func (t *TupleType) TypeSpan() Span { return t.Span }

type ArrowType struct {
	Id       AstNodeId
	Op       string // "->" or "=>"
	Input    Type
	Output   Type
	Functors []string
	Span     Span
}

func (*ArrowType) typeNode()        {}
func (t *ArrowType) TypeSpan() Span { return t.Span }

type HoleType struct {
	Id   AstNodeId
	Span Span
}

func (*HoleType) typeNode()        {}
func (t *HoleType) TypeSpan() Span { return t.Span }
