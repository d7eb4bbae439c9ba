package estimator

import (
	"fmt"
	"math"
)

// QubitParams is the concrete Q fixture `cmd/qcc` builds an Estimation
// around: a physical qubit's gate error rate and gate time, the two
// numbers a rotated surface code needs to turn a code distance into a
// logical error rate and cycle time.
type QubitParams struct {
	Name          string
	OneQubitGateErrorRate float64
	TwoQubitGateErrorRate float64
	OneQubitGateTimeNs    uint64
	TwoQubitGateTimeNs    uint64
}

// qubitPresets mirrors the named physical qubit parameter sets a
// resource estimator job typically chooses between: gate-based
// superconducting/spin qubits at nanosecond and microsecond gate
// timescales, and Majorana-based qubits with lower error rates.
var qubitPresets = map[string]QubitParams{
	"qubit_gate_ns_e3": {Name: "qubit_gate_ns_e3", OneQubitGateErrorRate: 1e-3, TwoQubitGateErrorRate: 1e-3, OneQubitGateTimeNs: 50, TwoQubitGateTimeNs: 50},
	"qubit_gate_ns_e4": {Name: "qubit_gate_ns_e4", OneQubitGateErrorRate: 1e-4, TwoQubitGateErrorRate: 1e-4, OneQubitGateTimeNs: 50, TwoQubitGateTimeNs: 50},
	"qubit_gate_us_e3": {Name: "qubit_gate_us_e3", OneQubitGateErrorRate: 1e-3, TwoQubitGateErrorRate: 1e-3, OneQubitGateTimeNs: 100_000, TwoQubitGateTimeNs: 100_000},
	"qubit_gate_us_e4": {Name: "qubit_gate_us_e4", OneQubitGateErrorRate: 1e-4, TwoQubitGateErrorRate: 1e-4, OneQubitGateTimeNs: 100_000, TwoQubitGateTimeNs: 100_000},
	"qubit_maj_ns_e4":  {Name: "qubit_maj_ns_e4", OneQubitGateErrorRate: 1e-4, TwoQubitGateErrorRate: 1e-4, OneQubitGateTimeNs: 100, TwoQubitGateTimeNs: 100},
	"qubit_maj_ns_e6":  {Name: "qubit_maj_ns_e6", OneQubitGateErrorRate: 1e-6, TwoQubitGateErrorRate: 1e-6, OneQubitGateTimeNs: 100, TwoQubitGateTimeNs: 100},
}

// LookupQubitPreset resolves a named qubit model to its parameters.
func LookupQubitPreset(name string) (QubitParams, error) {
	p, ok := qubitPresets[name]
	if !ok {
		return QubitParams{}, fmt.Errorf("unknown qubit model %q", name)
	}
	return p, nil
}

// SurfaceCode is the concrete ErrorCorrection[QubitParams, int]
// `cmd/qcc` estimates against: a rotated surface code parameterized by
// an odd code distance, using the standard leading-order relations
// between physical error rate, code distance, and logical error rate.
type SurfaceCode struct {
	// CrossingPrefactor and ErrorRateThreshold are the two constants in
	// the standard leading-order logical error rate relation
	// p_L ~ crossingPrefactor * (p/threshold)^((d+1)/2).
	CrossingPrefactor   float64
	ErrorRateThreshold  float64
	// CyclesPerSyndromeExtraction is how many physical gate layers one
	// logical cycle takes; the surface code's syndrome extraction
	// circuit is the usual source of this constant.
	CyclesPerSyndromeExtraction uint64
	MaxDistance                 int
}

// NewSurfaceCode returns a SurfaceCode with the commonly used leading-
// order constants (threshold ~1%, prefactor ~0.03) and a distance
// search ceiling generous enough for any realistic estimate.
func NewSurfaceCode() SurfaceCode {
	return SurfaceCode{CrossingPrefactor: 0.03, ErrorRateThreshold: 0.01, CyclesPerSyndromeExtraction: 8, MaxDistance: 51}
}

func (c SurfaceCode) PhysicalQubits(d int) (uint64, error) {
	if d < 1 {
		return 0, fmt.Errorf("code distance must be positive, got %d", d)
	}
	return uint64(2 * d * d), nil
}

func (c SurfaceCode) LogicalQubits(d int) (uint64, error) { return 1, nil }

func (c SurfaceCode) LogicalCycleTime(qubit QubitParams, d int) (uint64, error) {
	if d < 1 {
		return 0, fmt.Errorf("code distance must be positive, got %d", d)
	}
	return uint64(d) * c.CyclesPerSyndromeExtraction * qubit.TwoQubitGateTimeNs, nil
}

func (c SurfaceCode) LogicalErrorRate(qubit QubitParams, d int) (float64, error) {
	if d < 1 {
		return 0, fmt.Errorf("code distance must be positive, got %d", d)
	}
	ratio := qubit.TwoQubitGateErrorRate / c.ErrorRateThreshold
	exponent := float64((d + 1) / 2)
	return c.CrossingPrefactor * math.Pow(ratio, exponent), nil
}

func (c SurfaceCode) CodeParameterRange(lowerBound *int) []int {
	var out []int
	for d := 1; d <= c.MaxDistance; d += 2 {
		if lowerBound != nil && d < *lowerBound {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (c SurfaceCode) CodeParameterCmp(qubit QubitParams, a, b int) int { return a - b }

// CatalogFactory is the concrete Factory[int] built from a
// FactoryConfig entry: a fixed physical qubit/time/output-state cost,
// usable up to a declared maximum code distance.
type CatalogFactory struct {
	Name            string
	Qubits          uint64
	DurationNs      uint64
	NumStates       uint64
	MaxDistance     int
	HasMaxDistance  bool
}

func (f CatalogFactory) PhysicalQubits() uint64  { return f.Qubits }
func (f CatalogFactory) Duration() uint64        { return f.DurationNs }
func (f CatalogFactory) NumOutputStates() uint64 { return f.NumStates }
func (f CatalogFactory) MaxCodeParameter() (int, bool) {
	return f.MaxDistance, f.HasMaxDistance
}

// CatalogFactoryBuilder is the concrete FactoryBuilder[QubitParams,
// int, CatalogFactory]: it returns every cataloged factory still
// usable at the requested code distance, ignoring the requested output
// error rate (the catalog is caller-curated rather than synthesized).
type CatalogFactoryBuilder struct {
	Catalog []CatalogFactory
}

func (b CatalogFactoryBuilder) FindFactories(ec ErrorCorrection[QubitParams, int], qubit QubitParams, outputErrorRate float64, maxCodeParameter int) []CatalogFactory {
	var out []CatalogFactory
	for _, f := range b.Catalog {
		if f.HasMaxDistance && f.MaxDistance < maxCodeParameter {
			continue
		}
		out = append(out, f)
	}
	return out
}

// LogicalProgram is the concrete LogicalOverhead `cmd/qcc` builds from
// a job config's program section: a fixed logical qubit count and
// logical depth, plus an optional arbitrary-angle rotation count that
// inflates both depth and magic state count once a rotation synthesis
// error budget is fixed (via the Ross-Selinger style bound on gates per
// rotation).
type LogicalProgram struct {
	NumLogicalQubits uint64
	BaseDepth        uint64
	TCount           uint64
	NumRotations     uint64
}

func (p LogicalProgram) LogicalQubits() uint64 { return p.NumLogicalQubits }

func (p LogicalProgram) LogicalDepth(numMagicStatesPerRotation uint64) uint64 {
	return p.BaseDepth + p.NumRotations*numMagicStatesPerRotation
}

func (p LogicalProgram) NumMagicStates(numMagicStatesPerRotation uint64) uint64 {
	return p.TCount + p.NumRotations*numMagicStatesPerRotation
}

// NumMagicStatesPerRotation applies the standard Ross-Selinger-style
// bound of roughly 3*log2(1/epsilon) T gates to synthesize a single
// arbitrary-angle rotation to within epsilon, amortized across the
// rotation error budget.
func (p LogicalProgram) NumMagicStatesPerRotation(rotationsErrorBudget float64) (uint64, bool) {
	if p.NumRotations == 0 {
		return 0, false
	}
	perRotationBudget := rotationsErrorBudget / float64(p.NumRotations)
	n := uint64(math.Ceil(3 * math.Log2(1/perRotationBudget)))
	if n == 0 {
		n = 1
	}
	return n, true
}
