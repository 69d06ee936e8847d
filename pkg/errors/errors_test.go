package errors

import (
	"strings"
	"testing"
)

func TestConvergenceWarning_Error(t *testing.T) {
	tests := []struct {
		name    string
		warning *ConvergenceWarning
		want    string
	}{
		{
			name:    "Without message",
			warning: NewConvergenceWarning("BinaryLogisticRegression", 100, ""),
			want:    "BinaryLogisticRegression failed to converge after 100 iterations",
		},
		{
			name:    "With message",
			warning: NewConvergenceWarning("BinaryLogisticRegression", 50, "gradient still 0.12"),
			want:    "gradient still 0.12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.warning.Error(); !strings.Contains(got, tt.want) {
				t.Errorf("Error() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestWarn_CustomHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	w := NewConvergenceWarning("test", 10, "")
	Warn(w)

	if captured != w {
		t.Errorf("custom handler did not receive the warning: got %v", captured)
	}
}

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("OneVsRestModel", "Predict")

	var nf *NotFittedError
	if !As(err, &nf) {
		t.Fatalf("expected NotFittedError in chain, got %v", err)
	}
	if nf.ModelName != "OneVsRestModel" || nf.Method != "Predict" {
		t.Errorf("unexpected fields: %+v", nf)
	}
	if !strings.Contains(err.Error(), "not fitted yet") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestDimensionError(t *testing.T) {
	err := NewDimensionError("Predict", 128, 64, 1)

	var de *DimensionError
	if !As(err, &de) {
		t.Fatalf("expected DimensionError in chain, got %v", err)
	}
	if de.Expected != 128 || de.Got != 64 {
		t.Errorf("unexpected fields: %+v", de)
	}
	if !strings.Contains(err.Error(), "features") {
		t.Errorf("axis 1 should report features: %q", err.Error())
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("reg_param", "must be non-negative", -1.5)

	var ce *ConfigError
	if !As(err, &ce) {
		t.Fatalf("expected ConfigError in chain, got %v", err)
	}
	if ce.ParamName != "reg_param" {
		t.Errorf("unexpected fields: %+v", ce)
	}
}

func TestFitError_Unwrap(t *testing.T) {
	cause := New("empty training data")
	err := NewFitError("Trainer.Fit", 2.0, cause)

	var fe *FitError
	if !As(err, &fe) {
		t.Fatalf("expected FitError in chain, got %v", err)
	}
	if fe.Class != 2.0 {
		t.Errorf("unexpected class: %v", fe.Class)
	}
	if !Is(err, cause) {
		t.Errorf("FitError should unwrap to its cause")
	}
}
