package multiclass

import (
	"log/slog"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/ksuzuki-ml/ovrtext/linear_model"
	"github.com/ksuzuki-ml/ovrtext/pkg/errors"
	mllog "github.com/ksuzuki-ml/ovrtext/pkg/log"
)

// Fitter fits one binary classification problem and returns the
// estimated parameters. linear_model.BinaryLogisticRegression is the
// default implementation.
type Fitter interface {
	Fit(X mat.Matrix, y *mat.VecDense) (linear_model.ClassEstimate, error)
}

// TrainerConfig carries the shared hyperparameters for every per-class
// fit. There is no ambient global configuration; everything the trainer
// needs is in this struct.
type TrainerConfig struct {
	// RegParam is the L2 regularization strength, >= 0.
	RegParam float64

	// MaxIter bounds the optimizer iterations per class, > 0.
	MaxIter int

	// Threshold is passed through to the solver for interface symmetry.
	// It never affects the fitted coefficients.
	Threshold float64

	// Tol is the solver convergence tolerance. Zero means the solver
	// default (1e-4).
	Tol float64

	// Parallelism bounds the number of concurrent per-class fits.
	// Zero means one per CPU core; one forces sequential training.
	Parallelism int
}

// TrainerOption configures a Trainer beyond its hyperparameters.
type TrainerOption func(*Trainer)

// WithFitter replaces the default binary logistic solver, for example
// with a different optimizer honoring the same contract.
func WithFitter(f Fitter) TrainerOption {
	return func(t *Trainer) {
		t.fitter = f
	}
}

// Trainer builds a OneVsRestModel by fitting one binary classifier per
// class over a shared feature matrix.
type Trainer struct {
	cfg    TrainerConfig
	fitter Fitter
}

// NewTrainer validates the configuration and creates a trainer. Invalid
// hyperparameters surface as a ConfigError before any fitting begins,
// whether or not a custom fitter is injected.
func NewTrainer(cfg TrainerConfig, opts ...TrainerOption) (*Trainer, error) {
	if cfg.RegParam < 0 {
		return nil, errors.NewConfigError("reg_param", "must be non-negative", cfg.RegParam)
	}
	if cfg.MaxIter <= 0 {
		return nil, errors.NewConfigError("max_iter", "must be positive", cfg.MaxIter)
	}
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return nil, errors.NewConfigError("threshold", "must be in [0, 1]", cfg.Threshold)
	}
	if cfg.Tol < 0 {
		return nil, errors.NewConfigError("tol", "must be non-negative", cfg.Tol)
	}
	if cfg.Parallelism < 0 {
		return nil, errors.NewConfigError("parallelism", "must be non-negative", cfg.Parallelism)
	}

	t := &Trainer{cfg: cfg}
	for _, opt := range opts {
		opt(t)
	}

	if t.fitter == nil {
		solverOpts := []linear_model.Option{
			linear_model.WithRegParam(cfg.RegParam),
			linear_model.WithMaxIter(cfg.MaxIter),
			linear_model.WithThreshold(cfg.Threshold),
		}
		if cfg.Tol != 0 {
			solverOpts = append(solverOpts, linear_model.WithTol(cfg.Tol))
		}
		fitter, err := linear_model.NewBinaryLogisticRegression(solverOpts...)
		if err != nil {
			return nil, err
		}
		t.fitter = fitter
	}

	return t, nil
}

// Fit trains one binary classifier per class in classes and assembles
// the one-vs-rest model. The transformer is carried through untouched.
//
// Per-class fits are independent, so they run as a parallel map over the
// sorted label set; each goroutine writes to its own result slot and the
// final model does not depend on scheduling order. The first failing
// class aborts the whole call with a FitError and no partial model is
// returned.
func (t *Trainer) Fit(classes ClassLabelMap, X mat.Matrix, y *mat.VecDense, transformer Transformer) (*OneVsRestModel, error) {
	if len(classes) == 0 {
		return nil, errors.NewValueError("Trainer.Fit", "empty class label map")
	}

	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return nil, errors.NewFitError("Trainer.Fit", math.NaN(),
			errors.NewValueError("Fit", "empty training data"))
	}
	if y.Len() != nSamples {
		return nil, errors.NewFitError("Trainer.Fit", math.NaN(),
			errors.NewDimensionError("Fit", nSamples, y.Len(), 0))
	}

	m := &OneVsRestModel{
		Transformer: transformer,
		Classes:     classes,
		Estimates:   make(map[float64]linear_model.ClassEstimate, len(classes)),
	}
	labels := m.Labels()

	start := time.Now()
	slog.Debug("one-vs-rest training started",
		slog.String(mllog.ModelNameKey, "OneVsRestModel"),
		slog.String(mllog.OperationKey, "fit"),
		slog.Int(mllog.ClassesKey, len(labels)),
		slog.Int(mllog.SamplesKey, nSamples),
		slog.Int(mllog.FeaturesKey, nFeatures),
	)

	workers := t.cfg.Parallelism
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	estimates := make([]linear_model.ClassEstimate, len(labels))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, label := range labels {
		g.Go(func() error {
			col := ProjectBinary(y, label)
			est, err := t.fitter.Fit(X, col)
			if err != nil {
				// Re-key the solver's FitError to the failing class.
				var fe *errors.FitError
				if errors.As(err, &fe) {
					return errors.NewFitError("Trainer.Fit", label, fe.Err)
				}
				return errors.NewFitError("Trainer.Fit", label, err)
			}
			estimates[i] = est
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, label := range labels {
		m.Estimates[label] = estimates[i]
	}

	slog.Info("one-vs-rest training finished",
		slog.String(mllog.ModelNameKey, "OneVsRestModel"),
		slog.String(mllog.OperationKey, "fit"),
		slog.Int(mllog.ClassesKey, len(labels)),
		slog.Int64(mllog.DurationMsKey, time.Since(start).Milliseconds()),
	)

	return m, nil
}
