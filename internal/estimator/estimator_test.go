package estimator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumlang/qcc/internal/errors"
)

// testQubit is the Q fixture used throughout this file: a physical
// qubit characterized by a single gate error rate.
type testQubit struct {
	physicalErrorRate float64
}

// testCode is a toy rotated-surface-code-shaped ErrorCorrection[testQubit, int]
// where the code parameter is an odd code distance.
type testCode struct{}

func (testCode) PhysicalQubits(d int) (uint64, error) { return uint64(2 * d * d), nil }
func (testCode) LogicalQubits(d int) (uint64, error)  { return 1, nil }
func (testCode) LogicalCycleTime(q testQubit, d int) (uint64, error) {
	return uint64(d) * 100, nil
}
func (testCode) LogicalErrorRate(q testQubit, d int) (float64, error) {
	ratio := q.physicalErrorRate / 0.01
	return 0.03 * math.Pow(ratio, float64((d+1)/2)), nil
}
func (testCode) CodeParameterRange(lowerBound *int) []int {
	var out []int
	for d := 1; d <= 25; d += 2 {
		if lowerBound != nil && d < *lowerBound {
			continue
		}
		out = append(out, d)
	}
	return out
}
func (testCode) CodeParameterCmp(q testQubit, a, b int) int { return a - b }

// testFactory is the F fixture: a magic state factory with fixed cost
// and a ceiling on the code parameter its output remains usable with.
type testFactory struct {
	qubits          uint64
	duration        uint64
	numOutputStates uint64
	maxParam        int
	hasMax          bool
}

func (f testFactory) PhysicalQubits() uint64   { return f.qubits }
func (f testFactory) Duration() uint64         { return f.duration }
func (f testFactory) NumOutputStates() uint64  { return f.numOutputStates }
func (f testFactory) MaxCodeParameter() (int, bool) { return f.maxParam, f.hasMax }

// testFactoryBuilder is the B fixture: a fixed catalog of factories,
// filtered to those still usable at the requested code parameter.
type testFactoryBuilder struct {
	catalog []testFactory
}

func (b testFactoryBuilder) FindFactories(ec ErrorCorrection[testQubit, int], qubit testQubit, outputErrorRate float64, maxCodeParameter int) []testFactory {
	var out []testFactory
	for _, f := range b.catalog {
		if f.hasMax && f.maxParam < maxCodeParameter {
			continue
		}
		out = append(out, f)
	}
	return out
}

func defaultFactoryBuilder() testFactoryBuilder {
	return testFactoryBuilder{catalog: []testFactory{
		{qubits: 500, duration: 5000, numOutputStates: 1, maxParam: 25, hasMax: true},
		{qubits: 2000, duration: 2000, numOutputStates: 4, maxParam: 25, hasMax: true},
		{qubits: 200, duration: 20000, numOutputStates: 1, maxParam: 9, hasMax: true},
	}}
}

// testOverhead is the L fixture: a program with a fixed logical qubit
// count, a base depth and magic state count, plus an optional
// rotation-synthesis component driven by the rotation error budget.
type testOverhead struct {
	logicalQubits uint64
	logicalDepth  uint64
	numRotations  uint64
	tCount        uint64
	hasRotations  bool
}

func (o testOverhead) LogicalQubits() uint64 { return o.logicalQubits }
func (o testOverhead) LogicalDepth(numPerRotation uint64) uint64 {
	return o.logicalDepth + o.numRotations*numPerRotation
}
func (o testOverhead) NumMagicStates(numPerRotation uint64) uint64 {
	return o.tCount + o.numRotations*numPerRotation
}
func (o testOverhead) NumMagicStatesPerRotation(rotationsErrorBudget float64) (uint64, bool) {
	if !o.hasRotations {
		return 0, false
	}
	n := uint64(math.Ceil(-math.Log2(rotationsErrorBudget)))
	if n == 0 {
		n = 1
	}
	return n, true
}

func smallProgramOverhead() testOverhead {
	return testOverhead{logicalQubits: 5, logicalDepth: 100, numRotations: 10, tCount: 50, hasRotations: true}
}

func newTestEstimation() *Estimation[testQubit, int, testFactory, testFactoryBuilder, testOverhead] {
	qubit := testQubit{physicalErrorRate: 1e-4}
	budget := NewErrorBudget(1e-3, 1e-2, 1e-2)
	return NewEstimation[testQubit, int, testFactory, testFactoryBuilder, testOverhead](
		testCode{}, qubit, defaultFactoryBuilder(), smallProgramOverhead(), budget,
	)
}

func TestEstimateWithoutRestrictions(t *testing.T) {
	est := newTestEstimation()
	result, err := est.EstimateWithoutRestrictions()
	require.NoError(t, err)
	assert.Greater(t, result.PhysicalQubits(), uint64(0))
	assert.Greater(t, result.Runtime(), uint64(0))
	assert.NotNil(t, result.Factory())
	assert.Greater(t, result.NumFactories(), uint64(0))
}

func TestEstimateNoResources(t *testing.T) {
	qubit := testQubit{physicalErrorRate: 1e-4}
	budget := NewErrorBudget(1e-3, 1e-2, 1e-2)
	empty := testOverhead{logicalQubits: 1}
	est := NewEstimation[testQubit, int, testFactory, testFactoryBuilder, testOverhead](
		testCode{}, qubit, defaultFactoryBuilder(), empty, budget,
	)

	_, err := est.Estimate()
	require.Error(t, err)
	report, ok := errors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, errors.EST001, report.Code)
}

func TestEstimateWithMaxDurationTooSmall(t *testing.T) {
	est := newTestEstimation()
	est.SetMaxDuration(1)

	_, err := est.Estimate()
	require.Error(t, err)
	report, ok := errors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, errors.EST004, report.Code)
}

func TestEstimateWithMaxNumQubitsTooSmall(t *testing.T) {
	est := newTestEstimation()
	est.SetMaxPhysicalQubits(1)

	_, err := est.Estimate()
	require.Error(t, err)
	report, ok := errors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, errors.EST005, report.Code)
}

func TestEstimateConflictingConstraints(t *testing.T) {
	est := newTestEstimation()
	est.SetMaxDuration(1_000_000)
	est.SetMaxPhysicalQubits(10_000)

	_, err := est.Estimate()
	require.Error(t, err)
	report, ok := errors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, errors.EST006, report.Code)
}

func TestEstimateWithMaxDurationFeasible(t *testing.T) {
	est := newTestEstimation()
	unrestricted, err := est.EstimateWithoutRestrictions()
	require.NoError(t, err)

	est2 := newTestEstimation()
	result, err := est2.EstimateWithMaxDuration(unrestricted.Runtime() * 10)
	require.NoError(t, err)
	assert.LessOrEqual(t, result.Runtime(), unrestricted.Runtime()*10)
}

func TestEstimateWithMaxNumQubitsFeasible(t *testing.T) {
	est := newTestEstimation()
	unrestricted, err := est.EstimateWithoutRestrictions()
	require.NoError(t, err)

	est2 := newTestEstimation()
	result, err := est2.EstimateWithMaxNumQubits(unrestricted.PhysicalQubits() * 10)
	require.NoError(t, err)
	assert.LessOrEqual(t, result.PhysicalQubits(), unrestricted.PhysicalQubits()*10)
}

func TestBuildFrontierIsParetoOptimal(t *testing.T) {
	est := newTestEstimation()
	frontier, err := est.BuildFrontier()
	require.NoError(t, err)
	require.NotEmpty(t, frontier)

	for i := 1; i < len(frontier); i++ {
		prev, cur := frontier[i-1], frontier[i]
		assert.LessOrEqual(t, prev.PhysicalQubits(), cur.PhysicalQubits())
		assert.LessOrEqual(t, cur.Runtime(), prev.Runtime(),
			"frontier must trade decreasing runtime for increasing qubits")
	}
}
