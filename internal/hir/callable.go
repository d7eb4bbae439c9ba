package hir

import (
	"github.com/quantumlang/qcc/internal/ast"
	"github.com/quantumlang/qcc/internal/types"
)

// CallableDecl is a lowered function or operation declaration (spec
// §3.3).
type CallableDecl struct {
	Id       ast.AstNodeId // retained for diagnostics; not an arena key
	Span     ast.Span
	Kind     types.CallableKind
	Name     string
	Generics []types.GenericParam
	Input    *Pat
	Output   types.Ty
	Functors types.FunctorSetValue
	Body     *SpecDecl
	Adj      *SpecDecl
	Ctl      *SpecDecl
	CtlAdj   *SpecDecl
	Attrs    []Attr
}

// SpecKind names which of a callable's four specialization slots a
// SpecDecl occupies.
type SpecKind int

const (
	SpecBody SpecKind = iota
	SpecAdj
	SpecCtl
	SpecCtlAdj
)

// SpecGen is a generator strategy for a specialization with no
// concrete body (spec §3.3).
type SpecGen int

const (
	GenAuto SpecGen = iota
	GenDistribute
	GenIntrinsic
	GenInvert
	GenSlf
)

func (g SpecGen) String() string {
	switch g {
	case GenAuto:
		return "Auto"
	case GenDistribute:
		return "Distribute"
	case GenIntrinsic:
		return "Intrinsic"
	case GenInvert:
		return "Invert"
	default:
		return "Slf"
	}
}

// SpecDecl is one specialization body: either a generator strategy or
// a concrete block (spec §3.3). Controlled specs carry an extra
// control-qubit-register parameter prepended to Input.
type SpecDecl struct {
	Span  ast.Span
	Input *Pat // nil when elided (`...`)
	Gen   *SpecGen
	Block *Block // non-nil exactly when Gen == nil
}
