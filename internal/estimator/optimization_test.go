package estimator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestPoint2DDominates(t *testing.T) {
	a := Point2D[string]{Item: "a", Value1: 10, Value2: 20}
	b := Point2D[string]{Item: "b", Value1: 10, Value2: 25}
	c := Point2D[string]{Item: "c", Value1: 15, Value2: 15}

	assert.True(t, a.dominates(b), "equal qubits, strictly better runtime dominates")
	assert.False(t, b.dominates(a))
	assert.False(t, a.dominates(c), "neither dominates when each wins one objective")
	assert.False(t, c.dominates(a))
}

func TestPopulationFilterOutDominated(t *testing.T) {
	p := NewPopulation[string]()
	p.Push(Point2D[string]{Item: "cheap-slow", Value1: 10, Value2: 100})
	p.Push(Point2D[string]{Item: "worse-than-cheap-slow", Value1: 10, Value2: 200})
	p.Push(Point2D[string]{Item: "expensive-fast", Value1: 50, Value2: 10})
	p.Push(Point2D[string]{Item: "dominated-by-cheap-slow", Value1: 30, Value2: 150})

	p.FilterOutDominated()
	p.SortItems()
	points := p.Extract()

	var items []string
	for _, pt := range points {
		items = append(items, pt.Item)
	}

	want := []string{"cheap-slow", "expensive-fast"}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("surviving frontier items mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorBudgetAccessors(t *testing.T) {
	b := NewErrorBudget(0.5, 0.3, 0.2)
	assert.InDelta(t, 0.5, b.Logical(), 1e-9)
	assert.InDelta(t, 0.3, b.MagicStates(), 1e-9)
	assert.InDelta(t, 0.2, b.Rotations(), 1e-9)
}

func TestLogicalPatchCyclesPerSecond(t *testing.T) {
	patch, err := NewLogicalPatch[testQubit, int](testCode{}, 5, testQubit{physicalErrorRate: 1e-4})
	if err != nil {
		t.Fatalf("NewLogicalPatch: %v", err)
	}
	assert.Equal(t, 5, patch.CodeParameter())
	assert.Greater(t, patch.LogicalCyclesPerSecond(), 0.0)
}
