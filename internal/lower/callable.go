package lower

import (
	"github.com/quantumlang/qcc/internal/ast"
	"github.com/quantumlang/qcc/internal/errors"
	"github.com/quantumlang/qcc/internal/hir"
	"github.com/quantumlang/qcc/internal/ids"
	"github.com/quantumlang/qcc/internal/types"
)

func lowerCallableKind(k ast.CallableKind) types.CallableKind {
	if k == ast.KindOperation {
		return types.Operation
	}
	return types.Function
}

func lowerSpecGen(g ast.SpecGen) *hir.SpecGen {
	var out hir.SpecGen
	switch g {
	case ast.SpecGenNone:
		return nil
	case ast.SpecGenDistribute:
		out = hir.GenDistribute
	case ast.SpecGenIntrinsic:
		out = hir.GenIntrinsic
	case ast.SpecGenInvert:
		out = hir.GenInvert
	case ast.SpecGenSlf:
		out = hir.GenSlf
	default:
		out = hir.GenAuto
	}
	return &out
}

func genAuto() *hir.SpecGen {
	g := hir.GenAuto
	return &g
}

// lowerCallableItem lowers one callable declaration: its functor set,
// generic parameters, and specializations, synthesizing any
// specialization the declared functor set requires but the source left
// unwritten (spec §4.2.2 functor-parameter synthesis) using the Auto
// generator strategy.
func (l *Lowerer) lowerCallableItem(v *ast.CallableItem, parent ids.LocalItemId) (ids.LocalItemId, bool) {
	id := l.assigner.NextItem()
	kind := lowerCallableKind(v.Kind)

	input := l.lowerPat(v.Input, false)

	output := types.Ty(types.TyErr{})
	functors := types.FunctorSetValue{}
	if arrow, ok := l.tys.TermOrErr(v.Id).(types.TyArrow); ok {
		output = arrow.Output
		if arrow.Functors.Value != nil {
			functors = *arrow.Functors.Value
		}
	}
	for _, f := range v.Functors {
		if f == "Adj" {
			functors.HasAdj = true
		}
		if f == "Ctl" {
			functors.HasCtl = true
		}
	}

	generics := make([]types.GenericParam, len(v.Generics))
	for i, g := range v.Generics {
		generics[i] = types.GenericParam{Name: g}
	}

	attrs := l.lowerAttrs(v.Attrs, &kind)

	decl := &hir.CallableDecl{
		Id: v.Id, Span: v.Span, Kind: kind, Name: normalize(v.Name),
		Generics: generics, Input: input, Output: output, Functors: functors,
	}

	l.lowerSpecs(v, decl, functors)

	if decl.Body == nil || (decl.Body.Gen == nil && decl.Body.Block == nil) {
		if !hasAttr(attrs, hir.AttrUnimplemented) {
			l.errs = append(l.errs, l.errorf(errors.LOW004, v.Span, "callable '"+v.Name+"' has no body", map[string]any{"callable": v.Name}))
		}
	}

	l.pkg.Items.Insert(id, &hir.Item{
		Id: id, Span: v.Span, Parent: &parent, Attrs: attrs, Visibility: hir.Public,
		Kind: hir.CallableItemKind{Decl: decl},
	})
	return id, true
}

// lowerSpecs fills decl's four specialization slots from either the
// single-block sugar form or an explicit spec list, synthesizing Auto
// specializations for any functor-implied slot the source omitted.
func (l *Lowerer) lowerSpecs(v *ast.CallableItem, decl *hir.CallableDecl, functors types.FunctorSetValue) {
	if v.Body.SingleBlock != nil {
		block, err := l.lowerBlock(v.Body.SingleBlock)
		if err != nil {
			l.errs = append(l.errs, err)
		}
		decl.Body = &hir.SpecDecl{Span: v.Body.SingleBlock.Span, Block: block}
		if functors.HasAdj {
			decl.Adj = &hir.SpecDecl{Span: v.Span, Gen: genAuto()}
		}
		if functors.HasCtl {
			decl.Ctl = &hir.SpecDecl{Span: v.Span, Gen: genAuto()}
		}
		if functors.HasAdj && functors.HasCtl {
			decl.CtlAdj = &hir.SpecDecl{Span: v.Span, Gen: genAuto()}
		}
		return
	}

	seen := map[ast.SpecKind]bool{}
	for _, s := range v.Body.Specs {
		if seen[s.Kind] {
			l.errs = append(l.errs, l.errorf(errors.LOW005, s.Span, "duplicate "+s.Kind.String()+" specialization", map[string]any{"callable": v.Name}))
			continue
		}
		seen[s.Kind] = true

		lowered := l.lowerSpecDecl(s)
		switch s.Kind {
		case ast.SpecBody:
			decl.Body = lowered
		case ast.SpecAdj:
			decl.Adj = lowered
		case ast.SpecCtl:
			decl.Ctl = lowered
		case ast.SpecCtlAdj:
			decl.CtlAdj = lowered
		}
	}

	if functors.HasAdj && decl.Adj == nil {
		decl.Adj = &hir.SpecDecl{Span: v.Span, Gen: genAuto()}
	}
	if functors.HasCtl && decl.Ctl == nil {
		decl.Ctl = &hir.SpecDecl{Span: v.Span, Gen: genAuto()}
	}
	if functors.HasAdj && functors.HasCtl && decl.CtlAdj == nil {
		decl.CtlAdj = &hir.SpecDecl{Span: v.Span, Gen: genAuto()}
	}
}

func (l *Lowerer) lowerSpecDecl(s *ast.SpecDecl) *hir.SpecDecl {
	out := &hir.SpecDecl{Span: s.Span, Gen: lowerSpecGen(s.Gen)}
	if s.Input != nil {
		out.Input = l.lowerPat(s.Input, true)
	}
	if s.Body != nil {
		block, err := l.lowerBlock(s.Body)
		if err != nil {
			l.errs = append(l.errs, err)
		}
		out.Block = block
	}
	return out
}
