package estimator

import (
	"github.com/quantumlang/qcc/internal/errors"
)

// ErrorCorrection models one error-correcting code family that encodes
// logical qubits onto physical qubits of type Q, parameterized by a
// code parameter of type P (typically a code distance, or a tuple of
// distances for codes with more than one knob). Implementations order
// P so CodeParameterRange and CodeParameterCmp agree: the least costly
// parameter sorts first.
type ErrorCorrection[Q any, P any] interface {
	PhysicalQubits(param P) (uint64, error)
	LogicalQubits(param P) (uint64, error)
	LogicalCycleTime(qubit Q, param P) (uint64, error)
	LogicalErrorRate(qubit Q, param P) (float64, error)

	// CodeParameterRange returns every viable code parameter, cheapest
	// first, restricted to those at or above lowerBound when it is
	// non-nil.
	CodeParameterRange(lowerBound *P) []P

	// CodeParameterCmp reports whether a is cheaper than, equal to, or
	// more expensive than b (negative, zero, positive), mirroring the
	// ordering CodeParameterRange already produces.
	CodeParameterCmp(qubit Q, a, b P) int
}

// ComputeCodeParameter returns the cheapest code parameter whose
// logical error rate is at or below requiredLogicalErrorRate, the Go
// equivalent of ErrorCorrection's default trait method in the
// original.
func ComputeCodeParameter[Q any, P any](ec ErrorCorrection[Q, P], qubit Q, requiredLogicalErrorRate float64) (P, error) {
	for _, param := range ec.CodeParameterRange(nil) {
		rate, err := ec.LogicalErrorRate(qubit, param)
		if err != nil {
			continue
		}
		if rate <= requiredLogicalErrorRate {
			return param, nil
		}
	}
	var zero P
	return zero, errors.WrapReport(errors.New(errors.EST002, "no code parameter achieves the required logical error rate", nil, nil))
}

// wrapLogicalErrorRateErr tags a failure from an ErrorCorrection's
// LogicalErrorRate with EST003, unless it already carries a report
// (e.g. from a nested estimator call).
func wrapLogicalErrorRateErr(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsReport(err); ok {
		return err
	}
	return errors.WrapReport(errors.New(errors.EST003, "logical error rate computation failed: "+err.Error(), nil, nil))
}
