package multiclass

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ksuzuki-ml/ovrtext/linear_model"
	"github.com/ksuzuki-ml/ovrtext/pkg/errors"
)

func TestNewTrainer_ConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TrainerConfig
		wantErr bool
	}{
		{name: "Valid", cfg: TrainerConfig{MaxIter: 100}, wantErr: false},
		{name: "Negative reg_param", cfg: TrainerConfig{RegParam: -1, MaxIter: 100}, wantErr: true},
		{name: "Zero max_iter", cfg: TrainerConfig{MaxIter: 0}, wantErr: true},
		{name: "Bad threshold", cfg: TrainerConfig{MaxIter: 100, Threshold: 2}, wantErr: true},
		{name: "Negative parallelism", cfg: TrainerConfig{MaxIter: 100, Parallelism: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTrainer(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTrainer() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce *errors.ConfigError
				if !errors.As(err, &ce) {
					t.Errorf("expected ConfigError, got %T", err)
				}
			}
		})
	}
}

func TestNewTrainer_ConfigValidation_CustomFitter(t *testing.T) {
	// Range checks apply to the config itself, so an injected fitter
	// does not bypass them.
	_, err := NewTrainer(TrainerConfig{RegParam: -1, MaxIter: 0}, WithFitter(zeroColumnFitter{}))
	var ce *errors.ConfigError
	if !errors.As(err, &ce) {
		t.Errorf("expected ConfigError with custom fitter, got %v", err)
	}
}

func TestTrainer_Fit_EstimatePerClass(t *testing.T) {
	classes := ClassLabelMap{0: "alpha", 1: "beta", 2: "gamma"}
	X := mat.NewDense(6, 2, []float64{
		0, 0,
		0, 1,
		5, 5,
		5, 6,
		0, 9,
		1, 9,
	})
	y := mat.NewVecDense(6, []float64{0, 0, 1, 1, 2, 2})

	trainer, err := NewTrainer(TrainerConfig{MaxIter: 200})
	if err != nil {
		t.Fatalf("NewTrainer: %v", err)
	}

	m, err := trainer.Fit(classes, X, y, nil)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	if len(m.Estimates) != len(classes) {
		t.Fatalf("expected %d estimates, got %d", len(classes), len(m.Estimates))
	}
	for label := range classes {
		est, ok := m.Estimates[label]
		if !ok {
			t.Errorf("missing estimate for class %v", label)
			continue
		}
		if len(est.Coef) != 2 {
			t.Errorf("class %v: expected 2 coefficients, got %d", label, len(est.Coef))
		}
	}
	if err := m.Validate(); err != nil {
		t.Errorf("trained model failed validation: %v", err)
	}
}

func TestTrainer_Fit_AbsentLabelStillGetsEstimate(t *testing.T) {
	// Class 9 appears in the label map but never in the data. Its binary
	// column is all zero; the fit is degenerate but must succeed.
	classes := ClassLabelMap{0: "seen", 9: "ghost"}
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})
	y := mat.NewVecDense(4, []float64{0, 0, 0, 0})

	trainer, err := NewTrainer(TrainerConfig{MaxIter: 100})
	if err != nil {
		t.Fatalf("NewTrainer: %v", err)
	}

	m, err := trainer.Fit(classes, X, y, nil)
	if err != nil {
		t.Fatalf("Fit with absent label must not fail: %v", err)
	}
	if _, ok := m.Estimates[9]; !ok {
		t.Error("absent label should still have an estimate")
	}
}

func TestTrainer_Fit_HamSpam(t *testing.T) {
	classes := ClassLabelMap{0: "ham", 1: "spam"}
	X := mat.NewDense(2, 2, []float64{
		0, 0,
		1, 1,
	})
	y := mat.NewVecDense(2, []float64{0, 1})

	trainer, err := NewTrainer(TrainerConfig{RegParam: 0, MaxIter: 50, Threshold: 0.5})
	if err != nil {
		t.Fatalf("NewTrainer: %v", err)
	}

	m, err := trainer.Fit(classes, X, y, nil)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	results, err := m.PredictVector([]float64{1, 1})
	if err != nil {
		t.Fatalf("PredictVector: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one prediction")
	}
	if results[0].Class != "spam" {
		t.Errorf("expected spam ranked first, got %q", results[0].Class)
	}
	if results[0].Probability <= 0.5 {
		t.Errorf("expected spam probability above 0.5, got %v", results[0].Probability)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Probability > results[i-1].Probability {
			t.Errorf("results not sorted descending at index %d", i)
		}
	}
}

func TestTrainer_Fit_SequentialMatchesParallel(t *testing.T) {
	classes := ClassLabelMap{0: "a", 1: "b", 2: "c", 3: "d"}
	X := mat.NewDense(8, 3, []float64{
		0, 0, 1,
		0, 1, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 1,
		1, 0, 1,
		1, 1, 1,
		0, 0, 0,
	})
	y := mat.NewVecDense(8, []float64{0, 0, 1, 1, 2, 2, 3, 3})

	sequential, err := NewTrainer(TrainerConfig{MaxIter: 150, Parallelism: 1})
	if err != nil {
		t.Fatalf("NewTrainer: %v", err)
	}
	parallel, err := NewTrainer(TrainerConfig{MaxIter: 150, Parallelism: 0})
	if err != nil {
		t.Fatalf("NewTrainer: %v", err)
	}

	mSeq, err := sequential.Fit(classes, X, y, nil)
	if err != nil {
		t.Fatalf("sequential Fit: %v", err)
	}
	mPar, err := parallel.Fit(classes, X, y, nil)
	if err != nil {
		t.Fatalf("parallel Fit: %v", err)
	}

	// The solver is deterministic and the per-class fits are independent,
	// so the coefficients must match bit for bit.
	for label := range classes {
		seq := mSeq.Estimates[label]
		par := mPar.Estimates[label]
		if seq.Intercept != par.Intercept {
			t.Errorf("class %v: intercept %v != %v", label, seq.Intercept, par.Intercept)
		}
		for j := range seq.Coef {
			if seq.Coef[j] != par.Coef[j] {
				t.Errorf("class %v coef %d: %v != %v", label, j, seq.Coef[j], par.Coef[j])
			}
		}
	}
}

// zeroColumnFitter fails whenever its binary label column is all zero,
// standing in for a solver that rejects degenerate problems.
type zeroColumnFitter struct{}

func (zeroColumnFitter) Fit(X mat.Matrix, y *mat.VecDense) (linear_model.ClassEstimate, error) {
	allZero := true
	for i := 0; i < y.Len(); i++ {
		if y.AtVec(i) != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return linear_model.ClassEstimate{}, errors.New("no positive examples")
	}
	_, nFeatures := X.Dims()
	return linear_model.ClassEstimate{Coef: make([]float64, nFeatures)}, nil
}

func TestTrainer_Fit_FailFast(t *testing.T) {
	// Class 5 has no rows, so the strict solver rejects it; the whole
	// train call must fail with a FitError for that class and return no
	// partial model.
	classes := ClassLabelMap{0: "a", 1: "b", 5: "empty"}
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})
	y := mat.NewVecDense(4, []float64{0, 0, 1, 1})

	trainer, err := NewTrainer(TrainerConfig{MaxIter: 10}, WithFitter(zeroColumnFitter{}))
	if err != nil {
		t.Fatalf("NewTrainer: %v", err)
	}

	m, err := trainer.Fit(classes, X, y, nil)
	if err == nil {
		t.Fatal("expected FitError")
	}
	if m != nil {
		t.Error("no partial model may be returned on failure")
	}

	var fe *errors.FitError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FitError, got %T: %v", err, err)
	}
	if fe.Class != 5 {
		t.Errorf("FitError should name the failing class 5, got %v", fe.Class)
	}
}

func TestTrainer_Fit_InputErrors(t *testing.T) {
	trainer, err := NewTrainer(TrainerConfig{MaxIter: 10})
	if err != nil {
		t.Fatalf("NewTrainer: %v", err)
	}

	t.Run("Empty class map", func(t *testing.T) {
		X := mat.NewDense(2, 1, []float64{1, 2})
		y := mat.NewVecDense(2, []float64{0, 1})
		if _, err := trainer.Fit(ClassLabelMap{}, X, y, nil); err == nil {
			t.Error("expected error for empty class map")
		}
	})

	t.Run("Row mismatch", func(t *testing.T) {
		X := mat.NewDense(3, 1, []float64{1, 2, 3})
		y := mat.NewVecDense(2, []float64{0, 1})
		_, err := trainer.Fit(ClassLabelMap{0: "a"}, X, y, nil)
		var fe *errors.FitError
		if !errors.As(err, &fe) {
			t.Errorf("expected FitError, got %v", err)
		}
		if !math.IsNaN(fe.Class) {
			t.Errorf("input-level failure should carry NaN class, got %v", fe.Class)
		}
	})
}
