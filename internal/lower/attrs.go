package lower

import (
	"github.com/quantumlang/qcc/internal/ast"
	"github.com/quantumlang/qcc/internal/errors"
	"github.com/quantumlang/qcc/internal/hir"
	"github.com/quantumlang/qcc/internal/types"
)

// attrTable is the closed set of recognized attributes (spec §4.2.2):
// whether they accept arguments, and whether they apply only to
// operations (Kind == types.Operation).
var attrTable = map[string]struct {
	kind        hir.AttrKind
	takesArgs   bool
	opsOnly     bool
}{
	"EntryPoint":           {hir.AttrEntryPoint, false, false},
	"Config":               {hir.AttrConfig, true, false},
	"Unimplemented":        {hir.AttrUnimplemented, false, false},
	"SimulatableIntrinsic": {hir.AttrSimulatableIntrinsic, false, true},
	"Measurement":          {hir.AttrMeasurement, false, true},
	"Reset":                {hir.AttrReset, false, true},
	"Test":                 {hir.AttrTest, true, false},
}

// lowerAttrs validates and lowers attrs attached to a callable of kind
// callableKind. Unrecognized attributes are dropped (LOW001 recorded);
// attributes with the wrong argument shape are dropped (LOW002) except
// Test, which is always retained even on a shape mismatch so test
// discovery still finds it (spec §4.2.2).
func (l *Lowerer) lowerAttrs(attrs []ast.Attr, callableKind *types.CallableKind) []hir.Attr {
	var out []hir.Attr
	for _, a := range attrs {
		entry, ok := attrTable[a.Name]
		if !ok {
			l.errs = append(l.errs, l.errorf(errors.LOW001, a.Span, "unrecognized attribute @"+a.Name, map[string]any{"attr": a.Name}))
			continue
		}

		if entry.opsOnly && callableKind != nil && *callableKind != types.Operation {
			l.errs = append(l.errs, l.errorf(errors.LOW003, a.Span, "@"+a.Name+" is only valid on an operation", map[string]any{"attr": a.Name}))
			continue
		}

		shapeOk := entry.takesArgs || len(a.Args) == 0
		if !shapeOk {
			l.errs = append(l.errs, l.errorf(errors.LOW002, a.Span, "@"+a.Name+" does not accept arguments", map[string]any{"attr": a.Name}))
			if entry.kind != hir.AttrTest {
				continue
			}
		}

		lowered := hir.Attr{Kind: entry.kind}
		switch entry.kind {
		case hir.AttrEntryPoint:
			if len(a.Args) == 1 {
				lowered.ProfileName = a.Args[0].Name
			}
		case hir.AttrConfig:
			if len(a.Args) == 1 {
				lowered.CapabilityName = a.Args[0].Name
				lowered.Negated = a.Args[0].Negated
			}
		}
		out = append(out, lowered)
	}
	return out
}

func hasAttr(attrs []hir.Attr, kind hir.AttrKind) bool {
	for _, a := range attrs {
		if a.Kind == kind {
			return true
		}
	}
	return false
}
