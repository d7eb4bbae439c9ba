package errors

import (
	"encoding/json"
	"errors"

	"github.com/quantumlang/qcc/internal/ast"
)

// Fix is a suggested remediation attached to a Report, with a
// confidence score in [0, 1].
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// Report is the canonical structured error type for the compiler and
// estimator. All error builders should return *Report, which can be
// wrapped as ReportError.
type Report struct {
	Schema  string         `json:"schema"`         // Always "qcc.error/v1"
	Code    string         `json:"code"`           // Error code (LOW001, EST004, etc.)
	Phase   string         `json:"phase"`          // Phase: "lower", "qubitalloc", "fir", "pkgstore", "estimator"
	Message string         `json:"message"`        // Human-readable message
	Span    *ast.Span      `json:"span,omitempty"` // Source location (optional)
	Data    map[string]any `json:"data,omitempty"` // Structured data (sorted keys)
	Fix     *Fix           `json:"fix,omitempty"`  // Suggested fix (optional)
}

// ReportError wraps a Report as an error
// This allows structured reports to survive errors.As() unwrapping
type ReportError struct {
	Rep *Report
}

// Error implements the error interface
func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport attempts to extract a Report from an error chain
// Returns the Report and true if found, nil and false otherwise
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as a ReportError
// Call sites should return errors.WrapReport(report) to preserve structure
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// WithFix attaches a suggested remediation to a Report and returns it
// for chaining.
func (r *Report) WithFix(suggestion string, confidence float64) *Report {
	r.Fix = &Fix{Suggestion: suggestion, Confidence: confidence}
	return r
}

// ToJSON converts a Report to JSON (deterministic, sorted keys)
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error

	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}

	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewGeneric creates a generic error report for a phase that has no
// specific error code for this failure.
func NewGeneric(phase string, err error) *Report {
	return &Report{
		Schema:  "qcc.error/v1",
		Code:    "GENERIC",
		Phase:   phase,
		Message: err.Error(),
		Data:    map[string]any{},
	}
}

// New builds a Report for a known error code, attaching span and data
// when provided.
func New(code string, message string, span *ast.Span, data map[string]any) *Report {
	info, _ := GetErrorInfo(code)
	return &Report{
		Schema:  "qcc.error/v1",
		Code:    code,
		Phase:   info.Phase,
		Message: message,
		Span:    span,
		Data:    data,
	}
}
