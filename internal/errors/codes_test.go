package errors

import "testing"

func TestErrorRegistryCoversEveryCode(t *testing.T) {
	codes := []string{
		LOW001, LOW002, LOW003, LOW004, LOW005, LOW006, LOW007, LOW008, LOW009, LOW010, LOW011, LOW012, LOW013,
		QAL001, QAL002,
		FIR001, FIR002,
		PKG001, PKG002, PKG003,
		EST001, EST002, EST003, EST004, EST005, EST006,
	}

	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		if seen[code] {
			t.Errorf("duplicate error code constant %q", code)
		}
		seen[code] = true

		if _, ok := GetErrorInfo(code); !ok {
			t.Errorf("code %q has no ErrorRegistry entry", code)
		}
	}

	for code := range ErrorRegistry {
		if !seen[code] {
			t.Errorf("ErrorRegistry entry %q has no matching constant in this test", code)
		}
	}
}

func TestIsLowerError(t *testing.T) {
	if !IsLowerError(LOW001) {
		t.Errorf("expected %s to be a lower error", LOW001)
	}
	if IsLowerError(EST001) {
		t.Errorf("expected %s not to be a lower error", EST001)
	}
	if IsLowerError("NOPE") {
		t.Error("expected an unknown code not to be a lower error")
	}
}

func TestIsEstimatorError(t *testing.T) {
	for _, code := range []string{EST001, EST002, EST003, EST004, EST005, EST006} {
		if !IsEstimatorError(code) {
			t.Errorf("expected %s to be an estimator error", code)
		}
	}
	if IsEstimatorError(QAL001) {
		t.Errorf("expected %s not to be an estimator error", QAL001)
	}
}

func TestGetErrorInfoUnknownCode(t *testing.T) {
	if _, ok := GetErrorInfo("ZZZ999"); ok {
		t.Error("expected an unregistered code to report ok=false")
	}
}
