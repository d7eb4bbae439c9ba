package estimator

import (
	"sort"

	"github.com/quantumlang/qcc/internal/errors"
)

// Estimation runs the physical resource search for one logical program
// against one error-correcting code family, magic state factory
// catalog, and error budget (spec §4.4). The three search modes —
// unconstrained, max-duration, max-physical-qubits — and the
// Pareto-frontier sweep are grounded line-for-line on the original
// engine's PhysicalResourceEstimation.
type Estimation[Q any, P any, F Factory[P], B FactoryBuilder[Q, P, F], L LogicalOverhead] struct {
	ftp      ErrorCorrection[Q, P]
	qubit    Q
	builder  B
	overhead L
	budget   ErrorBudget

	logicalDepthFactor *float64
	maxFactories       *uint64
	maxDuration        *uint64
	maxPhysicalQubits  *uint64
}

// NewEstimation builds an unconstrained search; call the Set* methods
// to add a duration, qubit, or factory-count constraint before Estimate.
func NewEstimation[Q any, P any, F Factory[P], B FactoryBuilder[Q, P, F], L LogicalOverhead](
	ftp ErrorCorrection[Q, P], qubit Q, builder B, overhead L, budget ErrorBudget,
) *Estimation[Q, P, F, B, L] {
	return &Estimation[Q, P, F, B, L]{ftp: ftp, qubit: qubit, builder: builder, overhead: overhead, budget: budget}
}

func (e *Estimation[Q, P, F, B, L]) SetLogicalDepthFactor(f float64) { e.logicalDepthFactor = &f }
func (e *Estimation[Q, P, F, B, L]) SetMaxFactories(n uint64)        { e.maxFactories = &n }
func (e *Estimation[Q, P, F, B, L]) SetMaxDuration(d uint64)         { e.maxDuration = &d }
func (e *Estimation[Q, P, F, B, L]) SetMaxPhysicalQubits(n uint64)   { e.maxPhysicalQubits = &n }

func (e *Estimation[Q, P, F, B, L]) LayoutOverhead() L   { return e.overhead }
func (e *Estimation[Q, P, F, B, L]) Budget() ErrorBudget { return e.budget }

// Estimate dispatches to the search mode implied by which constraints
// are set; at most one of MaxDuration/MaxPhysicalQubits may be set at
// once, and with neither set the unrestricted search runs.
func (e *Estimation[Q, P, F, B, L]) Estimate() (*PhysicalEstimationResult[Q, P, F, L], error) {
	switch {
	case e.maxDuration == nil && e.maxPhysicalQubits == nil:
		return e.EstimateWithoutRestrictions()
	case e.maxDuration == nil:
		return e.EstimateWithMaxNumQubits(*e.maxPhysicalQubits)
	case e.maxPhysicalQubits == nil:
		return e.EstimateWithMaxDuration(*e.maxDuration)
	default:
		return nil, errors.WrapReport(errors.New(errors.EST006, "both a max duration and a max physical qubit count were supplied", nil, nil))
	}
}

// EstimateWithoutRestrictions grows the number of logical cycles until
// a code parameter and factory assignment exist that can supply every
// magic state the program needs inside that many cycles.
func (e *Estimation[Q, P, F, B, L]) EstimateWithoutRestrictions() (*PhysicalEstimationResult[Q, P, F, L], error) {
	numCycles, err := e.computeNumCycles()
	if err != nil {
		return nil, err
	}

	for {
		requiredPatchRate := e.requiredLogicalErrorRate(numCycles)
		codeParam, err := ComputeCodeParameter[Q, P](e.ftp, e.qubit, requiredPatchRate)
		if err != nil {
			return nil, err
		}
		patch, err := NewLogicalPatch[Q, P](e.ftp, codeParam, e.qubit)
		if err != nil {
			return nil, err
		}

		numPerRotation, _ := e.overhead.NumMagicStatesPerRotation(e.budget.Rotations())
		numMagicStates := e.overhead.NumMagicStates(numPerRotation)
		if numMagicStates == 0 {
			result := newResult[Q, P, F, B, L](e, patch, numCycles, nil, 0, requiredPatchRate, nil)
			return &result, nil
		}

		requiredMagicRate := e.budget.MagicStates() / float64(numMagicStates)
		factories := e.builder.FindFactories(e.ftp, e.qubit, requiredMagicRate, patch.CodeParameter())

		maxAllowedRate, err := e.ftp.LogicalErrorRate(e.qubit, codeParam)
		if err != nil {
			return nil, wrapLogicalErrorRateErr(err)
		}
		maxAllowedCycles := e.logicalCyclesForErrorRate(maxAllowedRate)

		if len(factories) > 0 {
			if factory, requiredCycles, numFactories, ok := e.tryPickFactoryForCodeParameter(factories, patch, numCycles, maxAllowedCycles); ok {
				result := newResult[Q, P, F, B, L](e, patch, requiredCycles, &factory, numFactories, requiredPatchRate, &requiredMagicRate)
				return &result, nil
			}
		}

		numCycles = maxAllowedCycles + 1
	}
}

func (e *Estimation[Q, P, F, B, L]) tryPickFactoryForCodeParameter(
	factories []F, patch LogicalPatch[Q, P], numCycles, maxAllowedCyclesForCodeParameter uint64,
) (F, uint64, uint64, bool) {
	if factory, ok := e.tryPickFactoryBelowOrEqualMaxDuration(factories, patch, numCycles); ok {
		return factory, numCycles, e.numFactories(patch, factory, numCycles), true
	}
	if factory, requiredCycles, ok := e.tryFindFactoryForDuration(factories, patch, maxAllowedCyclesForCodeParameter); ok {
		if requiredCycles <= maxAllowedCyclesForCodeParameter {
			return factory, requiredCycles, e.numFactories(patch, factory, requiredCycles), true
		}
	}
	var zero F
	return zero, 0, 0, false
}

// EstimateWithMaxDuration searches every viable code parameter for the
// cheapest-in-qubits factory assignment that still finishes within
// maxDurationNs.
func (e *Estimation[Q, P, F, B, L]) EstimateWithMaxDuration(maxDurationNs uint64) (*PhysicalEstimationResult[Q, P, F, L], error) {
	init, err := e.initialValues()
	if err != nil {
		return nil, err
	}

	numPerRotation, _ := e.overhead.NumMagicStatesPerRotation(e.budget.Rotations())
	if e.overhead.NumMagicStates(numPerRotation) == 0 {
		patch, err := NewLogicalPatch[Q, P](e.ftp, init.minCodeParameter, e.qubit)
		if err != nil {
			return nil, err
		}
		if init.numCyclesRequired*patch.LogicalCycleTime() <= maxDurationNs {
			result := newResult[Q, P, F, B, L](e, patch, init.numCyclesRequired, nil, 0, init.requiredLogicalErrorRate, nil)
			return &result, nil
		}
		return nil, errors.WrapReport(errors.New(errors.EST004, "max duration constraint too small for any viable code distance", nil, nil))
	}

	var best *PhysicalEstimationResult[Q, P, F, L]
	var lastFactories []F
	var lastCodeParameter *P

	for _, codeParameter := range e.reversedParameterRange(init.minCodeParameter) {
		patch, err := NewLogicalPatch[Q, P](e.ftp, codeParameter, e.qubit)
		if err != nil {
			return nil, err
		}

		maxByDuration := uint64(float64(maxDurationNs) / float64(patch.LogicalCycleTime()))
		if maxByDuration < init.numCyclesRequired {
			continue
		}

		allowedRate, err := e.ftp.LogicalErrorRate(e.qubit, codeParameter)
		if err != nil {
			return nil, wrapLogicalErrorRateErr(err)
		}
		maxByErrorRate := e.logicalCyclesForErrorRate(allowedRate)
		if maxByErrorRate < init.numCyclesRequired {
			continue
		}
		maxAllowed := min64(maxByDuration, maxByErrorRate)

		if e.shouldRefreshFactories(lastCodeParameter, codeParameter) {
			lastFactories = e.builder.FindFactories(e.ftp, e.qubit, init.requiredMagicStateErrorRate, codeParameter)
			lastCodeParameter = e.findHighestCodeParameter(lastFactories)
		}

		for _, fc := range e.pickFactoriesWithNumCycles(lastFactories, patch, maxAllowed) {
			factory := fc.factory
			numFactories := e.numFactories(patch, factory, maxAllowed)
			requiredForMagic := e.computeNumCyclesForMagicStates(numFactories, factory, patch)
			numCycles := max64(requiredForMagic, init.numCyclesRequired)

			if e.maxFactories != nil && numFactories > *e.maxFactories {
				continue
			}

			result := newResult[Q, P, F, B, L](e, patch, numCycles, &factory, numFactories, init.requiredLogicalErrorRate, &init.requiredMagicStateErrorRate)
			if best == nil || result.PhysicalQubits() < best.PhysicalQubits() {
				best = &result
			}
		}
	}

	if best == nil {
		return nil, errors.WrapReport(errors.New(errors.EST004, "max duration constraint too small for any viable code distance", nil, nil))
	}
	return best, nil
}

// EstimateWithMaxNumQubits searches every viable code parameter for the
// fastest factory assignment that still fits inside maxQubits physical
// qubits.
func (e *Estimation[Q, P, F, B, L]) EstimateWithMaxNumQubits(maxQubits uint64) (*PhysicalEstimationResult[Q, P, F, L], error) {
	init, err := e.initialValues()
	if err != nil {
		return nil, err
	}

	numPerRotation, _ := e.overhead.NumMagicStatesPerRotation(e.budget.Rotations())
	if e.overhead.NumMagicStates(numPerRotation) == 0 {
		patch, err := NewLogicalPatch[Q, P](e.ftp, init.minCodeParameter, e.qubit)
		if err != nil {
			return nil, err
		}
		if e.numAlgorithmicPhysicalQubits(patch) <= maxQubits {
			result := newResult[Q, P, F, B, L](e, patch, init.numCyclesRequired, nil, 0, init.requiredLogicalErrorRate, nil)
			return &result, nil
		}
		return nil, errors.WrapReport(errors.New(errors.EST005, "max physical qubit constraint too small for any viable code distance", nil, nil))
	}

	var best *PhysicalEstimationResult[Q, P, F, L]
	var lastFactories []F
	var lastCodeParameter *P

	for _, codeParameter := range e.reversedParameterRange(init.minCodeParameter) {
		patch, err := NewLogicalPatch[Q, P](e.ftp, codeParameter, e.qubit)
		if err != nil {
			return nil, err
		}

		algoQubits := e.numAlgorithmicPhysicalQubits(patch)
		if maxQubits <= algoQubits {
			continue
		}
		qubitsForMagicStates := maxQubits - algoQubits

		minAllowedRate, err := e.ftp.LogicalErrorRate(e.qubit, codeParameter)
		if err != nil {
			return nil, wrapLogicalErrorRateErr(err)
		}
		maxByErrorRate := e.logicalCyclesForErrorRate(minAllowedRate)
		if maxByErrorRate < init.numCyclesRequired {
			continue
		}

		if e.shouldRefreshFactories(lastCodeParameter, codeParameter) {
			lastFactories = e.builder.FindFactories(e.ftp, e.qubit, init.requiredMagicStateErrorRate, codeParameter)
			lastCodeParameter = e.findHighestCodeParameter(lastFactories)
		}

		factory, ok := tryPickFactoryBelowOrEqualNumQubits(lastFactories, qubitsForMagicStates)
		if !ok {
			continue
		}

		if factory.PhysicalQubits() == 0 {
			continue
		}
		numFactories := qubitsForMagicStates / factory.PhysicalQubits()
		if numFactories == 0 {
			continue
		}

		requiredForMagic := e.computeNumCyclesForMagicStates(numFactories, factory, patch)
		numCycles := max64(requiredForMagic, init.numCyclesRequired)
		if numCycles > maxByErrorRate {
			continue
		}
		if e.maxFactories != nil && numFactories > *e.maxFactories {
			continue
		}

		result := newResult[Q, P, F, B, L](e, patch, numCycles, &factory, numFactories, init.requiredLogicalErrorRate, &init.requiredMagicStateErrorRate)
		if best == nil || result.Runtime() < best.Runtime() {
			best = &result
		}
	}

	if best == nil {
		return nil, errors.WrapReport(errors.New(errors.EST005, "max physical qubit constraint too small for any viable code distance", nil, nil))
	}
	return best, nil
}

// BuildFrontier sweeps every viable code parameter and factory count
// and returns the Pareto-optimal set of (physical qubits, runtime)
// results (spec §4.4's frontier sweep).
func (e *Estimation[Q, P, F, B, L]) BuildFrontier() ([]PhysicalEstimationResult[Q, P, F, L], error) {
	init, err := e.initialValues()
	if err != nil {
		return nil, err
	}

	numPerRotation, _ := e.overhead.NumMagicStatesPerRotation(e.budget.Rotations())
	if e.overhead.NumMagicStates(numPerRotation) == 0 {
		patch, err := NewLogicalPatch[Q, P](e.ftp, init.minCodeParameter, e.qubit)
		if err != nil {
			return nil, err
		}
		result := newResult[Q, P, F, B, L](e, patch, init.numCyclesRequired, nil, 0, init.requiredLogicalErrorRate, nil)
		return []PhysicalEstimationResult[Q, P, F, L]{result}, nil
	}

	population := NewPopulation[PhysicalEstimationResult[Q, P, F, L]]()
	var lastFactories []F
	var lastCodeParameter *P

	for _, codeParameter := range e.reversedParameterRange(init.minCodeParameter) {
		patch, err := NewLogicalPatch[Q, P](e.ftp, codeParameter, e.qubit)
		if err != nil {
			return nil, err
		}

		allowedRate, err := e.ftp.LogicalErrorRate(e.qubit, codeParameter)
		if err != nil {
			return nil, wrapLogicalErrorRateErr(err)
		}
		maxAllowed := e.logicalCyclesForErrorRate(allowedRate)
		if maxAllowed < init.numCyclesRequired {
			continue
		}

		if e.shouldRefreshFactories(lastCodeParameter, codeParameter) {
			lastFactories = e.builder.FindFactories(e.ftp, e.qubit, init.requiredMagicStateErrorRate, codeParameter)
			lastCodeParameter = e.findHighestCodeParameter(lastFactories)
		}

		for _, fc := range e.pickFactoriesWithNumCycles(lastFactories, patch, maxAllowed) {
			factory := fc.factory
			minFactories := e.numFactories(patch, factory, maxAllowed)
			numFactories := minFactories

			for {
				requiredForMagic := e.computeNumCyclesForMagicStates(numFactories, factory, patch)
				numCycles := max64(requiredForMagic, init.numCyclesRequired)

				result := newResult[Q, P, F, B, L](e, patch, numCycles, &factory, numFactories, init.requiredLogicalErrorRate, &init.requiredMagicStateErrorRate)
				population.Push(Point2D[PhysicalEstimationResult[Q, P, F, L]]{
					Item: result, Value1: float64(result.PhysicalQubits()), Value2: float64(result.Runtime()),
				})

				if requiredForMagic <= init.numCyclesRequired || result.NumFactoryRuns() <= 1 {
					break
				}
				numFactories++
			}
		}
	}

	population.FilterOutDominated()
	population.SortItems()

	points := population.Extract()
	out := make([]PhysicalEstimationResult[Q, P, F, L], len(points))
	for i, pt := range points {
		out[i] = pt.Item
	}
	return out, nil
}

type initialOptimizationValues[P any] struct {
	numMagicStatesPerRotation   uint64
	minCodeParameter            P
	numCyclesRequired           uint64
	requiredLogicalErrorRate    float64
	requiredMagicStateErrorRate float64
}

func (e *Estimation[Q, P, F, B, L]) initialValues() (initialOptimizationValues[P], error) {
	numCycles, err := e.computeNumCycles()
	if err != nil {
		return initialOptimizationValues[P]{}, err
	}

	numPerRotation, _ := e.overhead.NumMagicStatesPerRotation(e.budget.Rotations())
	numMagicStates := e.overhead.NumMagicStates(numPerRotation)
	var requiredMagicRate float64
	if numMagicStates > 0 {
		requiredMagicRate = e.budget.MagicStates() / float64(numMagicStates)
	}

	requiredLogicalRate := e.requiredLogicalErrorRate(numCycles)
	minCodeParameter, err := ComputeCodeParameter[Q, P](e.ftp, e.qubit, requiredLogicalRate)
	if err != nil {
		return initialOptimizationValues[P]{}, err
	}

	return initialOptimizationValues[P]{
		numMagicStatesPerRotation: numPerRotation, minCodeParameter: minCodeParameter,
		numCyclesRequired: numCycles, requiredLogicalErrorRate: requiredLogicalRate,
		requiredMagicStateErrorRate: requiredMagicRate,
	}, nil
}

// reversedParameterRange returns every code parameter from lowerBound
// up, most expensive first (the reverse of CodeParameterRange's
// cheapest-first order).
func (e *Estimation[Q, P, F, B, L]) reversedParameterRange(lowerBound P) []P {
	params := e.ftp.CodeParameterRange(&lowerBound)
	out := make([]P, len(params))
	for i, p := range params {
		out[len(params)-1-i] = p
	}
	return out
}

// shouldRefreshFactories mirrors the original's reuse-until-cheaper-
// parameter-exceeds-cutoff rule (the find_highest_code_parameter
// optimization): factories found for a previous, more expensive
// parameter remain valid until the current parameter exceeds the
// ceiling the cheapest of them declared.
func (e *Estimation[Q, P, F, B, L]) shouldRefreshFactories(last *P, current P) bool {
	if last == nil {
		return true
	}
	return e.ftp.CodeParameterCmp(e.qubit, *last, current) > 0
}

func (e *Estimation[Q, P, F, B, L]) findHighestCodeParameter(factories []F) *P {
	var best *P
	for _, f := range factories {
		param, ok := f.MaxCodeParameter()
		if !ok {
			continue
		}
		p := param
		if best == nil || e.ftp.CodeParameterCmp(e.qubit, *best, p) < 0 {
			best = &p
		}
	}
	return best
}

func (e *Estimation[Q, P, F, B, L]) computeNumCyclesForMagicStates(numFactories uint64, factory F, patch LogicalPatch[Q, P]) uint64 {
	magicStatesPerRun := numFactories * factory.NumOutputStates()
	numPerRotation, _ := e.overhead.NumMagicStatesPerRotation(e.budget.Rotations())
	requiredRuns := divCeil(e.overhead.NumMagicStates(numPerRotation), magicStatesPerRun)
	requiredDuration := requiredRuns * factory.Duration()
	return divCeil(requiredDuration, patch.LogicalCycleTime())
}

type factoryCycles[P any, F Factory[P]] struct {
	factory   F
	numCycles uint64
}

func (e *Estimation[Q, P, F, B, L]) pickFactoriesWithNumCycles(factories []F, patch LogicalPatch[Q, P], maxAllowedCycles uint64) []factoryCycles[P, F] {
	var out []factoryCycles[P, F]
	for _, f := range factories {
		num := divCeil(f.Duration(), patch.LogicalCycleTime())
		if num <= maxAllowedCycles {
			out = append(out, factoryCycles[P, F]{factory: f, numCycles: num})
		}
	}
	sort.Slice(out, func(i, j int) bool { return NormalizedVolume[P](out[i].factory) < NormalizedVolume[P](out[j].factory) })
	return out
}

func (e *Estimation[Q, P, F, B, L]) isMaxFactoriesConstraintSatisfied(patch LogicalPatch[Q, P], factory F, numCycles uint64) bool {
	if e.maxFactories == nil {
		return true
	}
	return e.numFactories(patch, factory, numCycles) <= *e.maxFactories
}

func (e *Estimation[Q, P, F, B, L]) tryPickFactoryBelowOrEqualMaxDuration(factories []F, patch LogicalPatch[Q, P], numCycles uint64) (F, bool) {
	algorithmDuration := numCycles * patch.LogicalCycleTime()
	var best F
	var bestVol float64
	found := false
	for _, f := range factories {
		if f.Duration() > algorithmDuration || !e.isMaxFactoriesConstraintSatisfied(patch, f, numCycles) {
			continue
		}
		vol := NormalizedVolume[P](f)
		if !found || vol < bestVol {
			best, bestVol, found = f, vol, true
		}
	}
	return best, found
}

func (e *Estimation[Q, P, F, B, L]) tryFindFactoryForDuration(factories []F, patch LogicalPatch[Q, P], maxAllowedCycles uint64) (F, uint64, bool) {
	if e.maxFactories != nil {
		return e.tryPickFactoryWithNumCyclesAndMaxFactories(factories, patch, maxAllowedCycles, *e.maxFactories)
	}
	return tryPickFactoryWithNumCycles(factories, patch, maxAllowedCycles)
}

func (e *Estimation[Q, P, F, B, L]) tryPickFactoryWithNumCyclesAndMaxFactories(
	factories []F, patch LogicalPatch[Q, P], maxAllowedCycles, maxFactories uint64,
) (F, uint64, bool) {
	var bestFactory F
	var bestCycles uint64
	var bestVol float64
	found := false
	for _, f := range factories {
		magicStatesPerRun := maxFactories * f.NumOutputStates()
		numPerRotation, _ := e.overhead.NumMagicStatesPerRotation(e.budget.Rotations())
		requiredRuns := divCeil(e.overhead.NumMagicStates(numPerRotation), magicStatesPerRun)
		requiredDuration := requiredRuns * f.Duration()
		num := divCeil(requiredDuration, patch.LogicalCycleTime())
		if num > maxAllowedCycles {
			continue
		}
		vol := NormalizedVolume[P](f)
		if !found || vol < bestVol || (vol == bestVol && num < bestCycles) {
			bestFactory, bestCycles, bestVol, found = f, num, vol, true
		}
	}
	return bestFactory, bestCycles, found
}

func tryPickFactoryWithNumCycles[Q any, P any, F Factory[P]](factories []F, patch LogicalPatch[Q, P], maxAllowedCycles uint64) (F, uint64, bool) {
	var best F
	var bestCycles uint64
	var bestVol float64
	found := false
	for _, f := range factories {
		num := divCeil(f.Duration(), patch.LogicalCycleTime())
		if num > maxAllowedCycles {
			continue
		}
		vol := NormalizedVolume[P](f)
		if !found || vol < bestVol {
			best, bestCycles, bestVol, found = f, num, vol, true
		}
	}
	return best, bestCycles, found
}

func tryPickFactoryBelowOrEqualNumQubits[P any, F Factory[P]](factories []F, maxQubits uint64) (F, bool) {
	var best F
	var bestVol float64
	found := false
	for _, f := range factories {
		if f.PhysicalQubits() > maxQubits {
			continue
		}
		vol := NormalizedVolume[P](f)
		if !found || vol < bestVol {
			best, bestVol, found = f, vol, true
		}
	}
	return best, found
}

func (e *Estimation[Q, P, F, B, L]) numLogicalPatches(patch LogicalPatch[Q, P]) uint64 {
	return divCeil(e.overhead.LogicalQubits(), patch.LogicalQubits())
}

func (e *Estimation[Q, P, F, B, L]) numAlgorithmicPhysicalQubits(patch LogicalPatch[Q, P]) uint64 {
	return e.numLogicalPatches(patch) * patch.PhysicalQubits()
}

func (e *Estimation[Q, P, F, B, L]) requiredLogicalErrorRate(numCycles uint64) float64 {
	volume := e.overhead.LogicalQubits() * numCycles
	if volume == 0 {
		return 0
	}
	return e.budget.Logical() / float64(volume)
}

func (e *Estimation[Q, P, F, B, L]) logicalCyclesForErrorRate(errorRate float64) uint64 {
	denom := float64(e.overhead.LogicalQubits()) * errorRate
	if denom == 0 {
		return 0
	}
	return uint64(e.budget.Logical() / denom)
}

func (e *Estimation[Q, P, F, B, L]) computeNumCycles() (uint64, error) {
	numPerRotation, _ := e.overhead.NumMagicStatesPerRotation(e.budget.Rotations())
	numCycles := e.overhead.LogicalDepth(numPerRotation)

	if e.logicalDepthFactor != nil {
		numCycles = uint64(float64(numCycles) * *e.logicalDepthFactor)
	}

	if e.overhead.NumMagicStates(numPerRotation) == 0 && numCycles == 0 {
		return 0, errors.WrapReport(errors.New(errors.EST001, "the input logical program has no resources to estimate", nil, nil))
	}
	return numCycles, nil
}

// numFactories computes how many copies of factory must run in
// parallel to supply every magic state the program needs within
// numCycles logical cycles.
func (e *Estimation[Q, P, F, B, L]) numFactories(patch LogicalPatch[Q, P], factory F, numCycles uint64) uint64 {
	numPerRotation, _ := e.overhead.NumMagicStatesPerRotation(e.budget.Rotations())
	numMagicStates := e.overhead.NumMagicStates(numPerRotation)

	numerator := numMagicStates * factory.Duration()
	denominator := factory.NumOutputStates() * patch.LogicalCycleTime() * numCycles
	return divCeil(numerator, denominator)
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
