package estimator

// PhysicalEstimationResult bundles one candidate physical realization
// of a logical program: the code patch it runs on, how many logical
// cycles it takes, which (if any) magic state factory supplies it, and
// the physical qubit/runtime totals that follow from those choices.
type PhysicalEstimationResult[Q any, P any, F Factory[P], L LogicalOverhead] struct {
	logicalPatch LogicalPatch[Q, P]
	numCycles    uint64

	factory      *F
	numFactories uint64

	requiredLogicalPatchErrorRate        float64
	requiredLogicalMagicStateErrorRate   *float64

	numFactoryRuns              uint64
	physicalQubitsForFactories  uint64
	physicalQubitsForAlgorithm uint64
	physicalQubits              uint64
	runtime                     uint64
	rqops                       uint64

	overhead L
	budget   ErrorBudget
}

// newResult mirrors the original's PhysicalResourceEstimationResult::new:
// given the chosen patch, cycle count, and factory assignment, it
// derives every other statistic the result reports.
func newResult[Q any, P any, F Factory[P], B FactoryBuilder[Q, P, F], L LogicalOverhead](
	est *Estimation[Q, P, F, B, L],
	patch LogicalPatch[Q, P],
	numCycles uint64,
	factory *F,
	numFactories uint64,
	requiredLogicalPatchErrorRate float64,
	requiredLogicalMagicStateErrorRate *float64,
) PhysicalEstimationResult[Q, P, F, L] {
	numMagicStatesPerRotation, _ := est.overhead.NumMagicStatesPerRotation(est.budget.Rotations())
	numMagicStates := est.overhead.NumMagicStates(numMagicStatesPerRotation)

	var magicStatesPerRun uint64
	var physicalQubitsForSingleFactory uint64
	if factory != nil {
		magicStatesPerRun = numFactories * (*factory).NumOutputStates()
		physicalQubitsForSingleFactory = (*factory).PhysicalQubits()
	}

	var numFactoryRuns uint64
	if magicStatesPerRun > 0 {
		numFactoryRuns = divCeil(numMagicStates, magicStatesPerRun)
	}

	physicalQubitsForFactories := numFactories * physicalQubitsForSingleFactory
	numLogicalPatches := divCeil(est.overhead.LogicalQubits(), patch.LogicalQubits())
	physicalQubitsForAlgorithm := numLogicalPatches * patch.PhysicalQubits()
	physicalQubits := physicalQubitsForAlgorithm + physicalQubitsForFactories

	runtime := patch.LogicalCycleTime() * numCycles
	rqops := uint64(float64(est.overhead.LogicalQubits()) * patch.LogicalCyclesPerSecond())

	return PhysicalEstimationResult[Q, P, F, L]{
		logicalPatch: patch, numCycles: numCycles, factory: factory, numFactories: numFactories,
		requiredLogicalPatchErrorRate: requiredLogicalPatchErrorRate, requiredLogicalMagicStateErrorRate: requiredLogicalMagicStateErrorRate,
		numFactoryRuns: numFactoryRuns, physicalQubitsForFactories: physicalQubitsForFactories,
		physicalQubitsForAlgorithm: physicalQubitsForAlgorithm, physicalQubits: physicalQubits,
		runtime: runtime, rqops: rqops, overhead: est.overhead, budget: est.budget,
	}
}

func divCeil(a, b uint64) uint64 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

func (r PhysicalEstimationResult[Q, P, F, L]) LogicalPatch() LogicalPatch[Q, P] { return r.logicalPatch }
func (r PhysicalEstimationResult[Q, P, F, L]) NumCycles() uint64                { return r.numCycles }
func (r PhysicalEstimationResult[Q, P, F, L]) Factory() *F                     { return r.factory }
func (r PhysicalEstimationResult[Q, P, F, L]) NumFactories() uint64            { return r.numFactories }
func (r PhysicalEstimationResult[Q, P, F, L]) RequiredLogicalPatchErrorRate() float64 {
	return r.requiredLogicalPatchErrorRate
}
func (r PhysicalEstimationResult[Q, P, F, L]) RequiredLogicalMagicStateErrorRate() *float64 {
	return r.requiredLogicalMagicStateErrorRate
}
func (r PhysicalEstimationResult[Q, P, F, L]) NumFactoryRuns() uint64             { return r.numFactoryRuns }
func (r PhysicalEstimationResult[Q, P, F, L]) PhysicalQubitsForFactories() uint64 {
	return r.physicalQubitsForFactories
}
func (r PhysicalEstimationResult[Q, P, F, L]) PhysicalQubitsForAlgorithm() uint64 {
	return r.physicalQubitsForAlgorithm
}
func (r PhysicalEstimationResult[Q, P, F, L]) PhysicalQubits() uint64 { return r.physicalQubits }
func (r PhysicalEstimationResult[Q, P, F, L]) Runtime() uint64        { return r.runtime }
func (r PhysicalEstimationResult[Q, P, F, L]) Rqops() uint64          { return r.rqops }
func (r PhysicalEstimationResult[Q, P, F, L]) LayoutOverhead() L      { return r.overhead }
func (r PhysicalEstimationResult[Q, P, F, L]) ErrorBudget() ErrorBudget { return r.budget }

func (r PhysicalEstimationResult[Q, P, F, L]) AlgorithmicLogicalDepth() uint64 {
	numMagicStatesPerRotation, _ := r.overhead.NumMagicStatesPerRotation(r.budget.Rotations())
	return r.overhead.LogicalDepth(numMagicStatesPerRotation)
}

func (r PhysicalEstimationResult[Q, P, F, L]) NumMagicStates() uint64 {
	numMagicStatesPerRotation, _ := r.overhead.NumMagicStatesPerRotation(r.budget.Rotations())
	return r.overhead.NumMagicStates(numMagicStatesPerRotation)
}
