package ast

// Pattern is the sum of surface pattern kinds.
type Pattern interface {
	patNode()
	PatSpan() Span
}

type BindPattern struct {
	Id       AstNodeId
	Name     string
	Ascribed Type // nil if no `: Ty` ascription
	Span     Span
}

func (*BindPattern) patNode()        {}
func (p *BindPattern) PatSpan() Span { return p.Span }

type DiscardPattern struct {
	Id       AstNodeId
	Ascribed Type
	Span     Span
}

func (*DiscardPattern) patNode()        {}
func (p *DiscardPattern) PatSpan() Span { return p.Span }

type TuplePattern struct {
	Id    AstNodeId
	Items []Pattern
	Span  Span
}

func (*TuplePattern) patNode()        {}
func (p *TuplePattern) PatSpan() Span { return p.Span }

// ElidedPattern is the surface `...` pattern, legal only as (or within)
// a specialization's input pattern; any other use is InvalidElidedPat
// (spec §4.2.2, §9 open question).
type ElidedPattern struct {
	Id   AstNodeId
	Span Span
}

func (*ElidedPattern) patNode()        {}
func (p *ElidedPattern) PatSpan() Span { return p.Span }

type ErrPattern struct {
	Id   AstNodeId
	Span Span
}

func (*ErrPattern) patNode()        {}
func (p *ErrPattern) PatSpan() Span { return p.Span }

type ParenPattern struct {
	Id    AstNodeId
	Inner Pattern
	Span  Span
}

func (*ParenPattern) patNode()        {}
func (p *ParenPattern) PatSpan() Span { return p.Span }
