package errors

import (
	"errors"
	"testing"
)

func TestNewAttachesPhaseFromRegistry(t *testing.T) {
	r := New(EST004, "max duration too small", nil, map[string]any{"requested_ns": 10})
	if r.Phase != "estimator" {
		t.Errorf("expected phase %q, got %q", "estimator", r.Phase)
	}
	if r.Code != EST004 {
		t.Errorf("expected code %q, got %q", EST004, r.Code)
	}
	if r.Schema != "qcc.error/v1" {
		t.Errorf("expected schema qcc.error/v1, got %q", r.Schema)
	}
}

func TestWrapReportRoundTripsThroughAsReport(t *testing.T) {
	original := New(EST001, "nothing to estimate", nil, nil)
	wrapped := WrapReport(original)

	got, ok := AsReport(wrapped)
	if !ok {
		t.Fatal("expected AsReport to find the wrapped report")
	}
	if got != original {
		t.Error("expected AsReport to return the original Report pointer")
	}
}

func TestAsReportFalseForPlainError(t *testing.T) {
	_, ok := AsReport(errors.New("boring error"))
	if ok {
		t.Error("expected AsReport to return false for a non-Report error")
	}
}

func TestWrapReportNilIsNilError(t *testing.T) {
	if err := WrapReport(nil); err != nil {
		t.Errorf("expected WrapReport(nil) to return a nil error, got %v", err)
	}
}

func TestWithFixSetsSuggestionAndConfidence(t *testing.T) {
	r := New(EST002, "code parameter search failed", nil, nil).WithFix("loosen the error budget", 0.6)
	if r.Fix == nil {
		t.Fatal("expected Fix to be set")
	}
	if r.Fix.Suggestion != "loosen the error budget" || r.Fix.Confidence != 0.6 {
		t.Errorf("unexpected fix: %+v", r.Fix)
	}
}

func TestReportToJSONIsDeterministic(t *testing.T) {
	r := New(EST001, "nothing to estimate", nil, map[string]any{"b": 1, "a": 2})
	first, err := r.ToJSON(true)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	second, err := r.ToJSON(true)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if first != second {
		t.Errorf("expected deterministic JSON, got %q then %q", first, second)
	}
}
