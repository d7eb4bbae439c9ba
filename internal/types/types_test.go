package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrowString(t *testing.T) {
	arrow := TyArrow{
		Kind:   Operation,
		Input:  TyQubit{},
		Output: TyUnit{},
		Functors: FunctorSet{
			Value: &FunctorSetValue{HasAdj: true, HasCtl: true},
		},
	}
	require.Equal(t, "(Qubit => Unit is Adj + Ctl)", arrow.String())
}

func TestSchemeInstantiate(t *testing.T) {
	scheme := Scheme{
		Params: []GenericParam{{Name: "'T"}},
		Arrow: TyArrow{
			Kind:   Function,
			Input:  TyVar{Name: "'T"},
			Output: TyVar{Name: "'T"},
		},
	}
	inst := scheme.Instantiate(map[string]Ty{"'T": TyInt{}})
	require.Equal(t, "(Int -> Int)", inst.String())
}

func TestUdtFieldPath(t *testing.T) {
	inner := Udt{Name: "Point", Fields: []UdtField{
		{Name: "X", Type: TyInt{}},
		{Name: "Y", Type: TyInt{}},
	}}
	outer := Udt{Name: "Line", Fields: []UdtField{
		{Name: "Start", Type: AsFieldTree(inner)},
		{Name: "End", Type: TyInt{}},
	}}

	path, ok := outer.FieldPath("X")
	require.True(t, ok)
	require.Equal(t, []int{0, 0}, path)

	_, ok = outer.FieldPath("Missing")
	require.False(t, ok)
}

func TestRecognizedClasses(t *testing.T) {
	require.Contains(t, RecognizedClasses, ClassEq)
	require.Equal(t, 2, RecognizedClasses[ClassExp])
}
