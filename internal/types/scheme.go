package types

import (
	"fmt"
	"strings"
)

// Class is a generic class constraint recognized by the surface
// language (spec §3.5). errors.LOW009 is the code for an unrecognized
// name; internal/lower does not check constraint names and never
// raises it.
type Class string

const (
	ClassEq       Class = "Eq"
	ClassAdd      Class = "Add"
	ClassSub      Class = "Sub"
	ClassMul      Class = "Mul"
	ClassDiv      Class = "Div"
	ClassMod      Class = "Mod"
	ClassSigned   Class = "Signed"
	ClassOrd      Class = "Ord"
	ClassExp      Class = "Exp"
	ClassIntegral Class = "Integral"
	ClassShow     Class = "Show"
)

// RecognizedClasses is the closed set of recognized class constraint
// names, each mapped to the number of type parameters it takes. Only
// this package's tests read it; internal/lower does not consult it.
var RecognizedClasses = map[Class]int{
	ClassEq:       1,
	ClassAdd:      1,
	ClassSub:      1,
	ClassMul:      1,
	ClassDiv:      1,
	ClassMod:      1,
	ClassSigned:   1,
	ClassOrd:      1,
	ClassExp:      2, // Exp[Base, Power]
	ClassIntegral: 1,
	ClassShow:     1,
}

// Constraint binds a Class to the generic parameter it constrains.
type Constraint struct {
	Class Class
	Param string // the generic parameter name, e.g. "'T"
}

func (c Constraint) String() string { return fmt.Sprintf("%s[%s]", c.Class, c.Param) }

// GenericParam is one ordered generic parameter of a callable: either
// a type parameter (with zero or more class constraints) or a functor
// parameter (IsFunctor). internal/lower produces only type parameters,
// by name and without constraints; it does not synthesize functor
// parameters.
type GenericParam struct {
	Name        string
	IsFunctor   bool
	Constraints []Constraint
}

func (g GenericParam) String() string {
	if len(g.Constraints) == 0 {
		return g.Name
	}
	parts := make([]string, len(g.Constraints))
	for i, c := range g.Constraints {
		parts[i] = string(c.Class)
	}
	return fmt.Sprintf("%s: %s", g.Name, strings.Join(parts, " + "))
}

// Scheme is a callable's generalized type: its ordered generic
// parameters plus the concrete arrow type they parameterize.
type Scheme struct {
	Params []GenericParam
	Arrow  TyArrow
}

func (s Scheme) String() string {
	if len(s.Params) == 0 {
		return s.Arrow.String()
	}
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.String()
	}
	return fmt.Sprintf("<%s> %s", strings.Join(names, ", "), s.Arrow)
}

// Instantiate substitutes each generic parameter in s with the type
// args maps its name to, returning the concrete arrow type at a
// particular call site. args is supplied by the caller (this package
// has no opinion on freshening strategy).
func (s Scheme) Instantiate(args map[string]Ty) TyArrow {
	return TyArrow{
		Kind:     s.Arrow.Kind,
		Input:    substitute(s.Arrow.Input, args),
		Output:   substitute(s.Arrow.Output, args),
		Functors: s.Arrow.Functors,
	}
}

func substitute(t Ty, args map[string]Ty) Ty {
	switch v := t.(type) {
	case TyVar:
		if sub, ok := args[v.Name]; ok {
			return sub
		}
		return v
	case TyArray:
		return TyArray{Elem: substitute(v.Elem, args)}
	case TyTuple:
		items := make([]Ty, len(v.Items))
		for i, it := range v.Items {
			items[i] = substitute(it, args)
		}
		return TyTuple{Items: items}
	case TyArrow:
		return TyArrow{
			Kind:     v.Kind,
			Input:    substitute(v.Input, args),
			Output:   substitute(v.Output, args),
			Functors: v.Functors,
		}
	default:
		return t
	}
}
