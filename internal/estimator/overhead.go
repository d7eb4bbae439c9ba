package estimator

// LogicalOverhead describes the logical resource demands of the
// program being estimated, independent of any physical code or
// factory: how many logical qubits it needs, how many logical cycles
// (the "logical depth"), and how many magic states, all as a function
// of how many T states a single arbitrary-angle rotation costs once a
// rotation synthesis error budget is fixed.
type LogicalOverhead interface {
	LogicalQubits() uint64
	LogicalDepth(numMagicStatesPerRotation uint64) uint64
	NumMagicStates(numMagicStatesPerRotation uint64) uint64

	// NumMagicStatesPerRotation is how many magic states one
	// arbitrary-angle rotation costs to synthesize within the given
	// rotation error budget. ok is false when the program has no
	// arbitrary-angle rotations at all, in which case the rotation
	// budget plays no role.
	NumMagicStatesPerRotation(rotationsErrorBudget float64) (n uint64, ok bool)
}
