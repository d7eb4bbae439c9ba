package estimator

import "sort"

// Point2D pairs an arbitrary result with the two objective values a
// Pareto search ranks it by (physical qubits and runtime, for the
// frontier search).
type Point2D[T any] struct {
	Item   T
	Value1 float64
	Value2 float64
}

// dominates reports whether p is at least as good as q on both
// objectives and strictly better on at least one — the standard
// two-objective Pareto dominance relation, lower being better for both
// objectives here (fewer qubits, less runtime).
func (p Point2D[T]) dominates(q Point2D[T]) bool {
	if p.Value1 > q.Value1 || p.Value2 > q.Value2 {
		return false
	}
	return p.Value1 < q.Value1 || p.Value2 < q.Value2
}

// Population accumulates candidate points from a frontier search and
// reduces them to the non-dominated (Pareto-optimal) subset.
type Population[T any] struct {
	points []Point2D[T]
}

// NewPopulation returns an empty population.
func NewPopulation[T any]() *Population[T] {
	return &Population[T]{}
}

// Push adds a candidate point.
func (p *Population[T]) Push(pt Point2D[T]) {
	p.points = append(p.points, pt)
}

// FilterOutDominated discards every point dominated by another point
// still in the population, leaving only the Pareto frontier.
func (p *Population[T]) FilterOutDominated() {
	kept := p.points[:0:0]
	for i, candidate := range p.points {
		dominated := false
		for j, other := range p.points {
			if i == j {
				continue
			}
			if other.dominates(candidate) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, candidate)
		}
	}
	p.points = kept
}

// SortItems orders the frontier by the first objective ascending, so
// callers see the lowest-physical-qubit-count result first.
func (p *Population[T]) SortItems() {
	sort.Slice(p.points, func(i, j int) bool { return p.points[i].Value1 < p.points[j].Value1 })
}

// Extract returns the population's points, consuming them.
func (p *Population[T]) Extract() []Point2D[T] {
	out := p.points
	p.points = nil
	return out
}
