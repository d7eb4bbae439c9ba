package hir

import (
	"github.com/quantumlang/qcc/internal/ast"
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/types"
)

// Pat is a HIR pattern: always typed, unlike its AST counterpart.
type Pat struct {
	Id   ids.NodeId
	Span ast.Span
	Type types.Ty
	Kind PatKind
}

// PatKind is the sum of HIR pattern shapes (spec §3.4): Bind(ident),
// Discard, Tuple([pat]), Err. FIR patterns drop Err entirely — a
// pattern reaching FIR is always resolvable.
type PatKind interface {
	patKindNode()
}

type BindPat struct {
	Name string
	Var  ids.LocalVarId
}

type DiscardPat struct{}

type TuplePat struct {
	Items []*Pat
}

// ErrPat marks a pattern the lowerer could not resolve; an item whose
// input contains one is not emitted to FIR.
type ErrPat struct{}

func (BindPat) patKindNode()    {}
func (DiscardPat) patKindNode() {}
func (TuplePat) patKindNode()   {}
func (ErrPat) patKindNode()     {}
