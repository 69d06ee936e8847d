// Package linear_model provides the binary logistic regression solver
// used as the per-class building block of the one-vs-rest classifier.
package linear_model

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ksuzuki-ml/ovrtext/core/model"
	"github.com/ksuzuki-ml/ovrtext/pkg/errors"
)

// ClassEstimate holds the fitted parameters of one binary logistic model:
// a coefficient per feature and an intercept. Instances are immutable once
// produced by Fit.
type ClassEstimate struct {
	Coef      []float64
	Intercept float64
}

// BinaryLogisticRegression fits a single binary logistic model with
// gradient descent and L2 regularization.
//
// Labels must be 0.0 or 1.0 and the model estimates P(y=1|x) as
// sigmoid(coef·x + intercept), so the fitted parameters feed the same
// sigmoid direction at scoring time with no sign flipping.
type BinaryLogisticRegression struct {
	state *model.StateManager // fitted state and dimensions (composition)

	regParam     float64 // L2 regularization strength
	maxIter      int
	threshold    float64
	tol          float64
	fitIntercept bool

	// Parameters of the most recent fit, backing PredictProba.
	coef      []float64
	intercept float64
}

// Option is a functional option for BinaryLogisticRegression.
type Option func(*BinaryLogisticRegression)

// WithRegParam sets the L2 regularization strength.
func WithRegParam(regParam float64) Option {
	return func(lr *BinaryLogisticRegression) {
		lr.regParam = regParam
	}
}

// WithMaxIter sets the maximum number of optimizer iterations.
func WithMaxIter(maxIter int) Option {
	return func(lr *BinaryLogisticRegression) {
		lr.maxIter = maxIter
	}
}

// WithThreshold sets the hard-decision cutoff. It is accepted for
// interface symmetry with the generic solver contract and validated to
// [0,1], but it never affects the returned ClassEstimate: the one-vs-rest
// layer computes raw probabilities itself.
func WithThreshold(threshold float64) Option {
	return func(lr *BinaryLogisticRegression) {
		lr.threshold = threshold
	}
}

// WithTol sets the convergence tolerance on the gradient norm.
func WithTol(tol float64) Option {
	return func(lr *BinaryLogisticRegression) {
		lr.tol = tol
	}
}

// WithFitIntercept sets whether to fit an intercept term.
func WithFitIntercept(fit bool) Option {
	return func(lr *BinaryLogisticRegression) {
		lr.fitIntercept = fit
	}
}

// NewBinaryLogisticRegression creates a solver with validated
// hyperparameters. Returns a ConfigError before any fitting when a
// parameter is out of range.
func NewBinaryLogisticRegression(opts ...Option) (*BinaryLogisticRegression, error) {
	lr := &BinaryLogisticRegression{
		state:        model.NewStateManager(),
		regParam:     0.0,
		maxIter:      100,
		threshold:    0.5,
		tol:          1e-4,
		fitIntercept: true,
	}

	for _, opt := range opts {
		opt(lr)
	}

	if lr.regParam < 0 {
		return nil, errors.NewConfigError("reg_param", "must be non-negative", lr.regParam)
	}
	if lr.maxIter <= 0 {
		return nil, errors.NewConfigError("max_iter", "must be positive", lr.maxIter)
	}
	if lr.threshold < 0 || lr.threshold > 1 {
		return nil, errors.NewConfigError("threshold", "must be in [0, 1]", lr.threshold)
	}
	if lr.tol <= 0 {
		return nil, errors.NewConfigError("tol", "must be positive", lr.tol)
	}

	return lr, nil
}

// GetParams returns the solver hyperparameters.
func (lr *BinaryLogisticRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"reg_param":     lr.regParam,
		"max_iter":      lr.maxIter,
		"threshold":     lr.threshold,
		"tol":           lr.tol,
		"fit_intercept": lr.fitIntercept,
	}
}

// Fit trains the binary model on X against a 0/1 label column and returns
// the fitted estimate.
//
// Weights start at zero, so the solve is deterministic for fixed inputs.
// When the iteration budget runs out before the gradient norm drops below
// tol, a ConvergenceWarning is emitted and the current estimate is still
// returned; an all-0 or all-1 label column is a degenerate but valid fit.
// Empty data, shape mismatches, non-binary labels, and non-finite
// coefficients fail with a FitError.
func (lr *BinaryLogisticRegression) Fit(X mat.Matrix, y *mat.VecDense) (ClassEstimate, error) {
	nSamples, nFeatures := X.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return ClassEstimate{}, errors.NewFitError("BinaryLogisticRegression.Fit", math.NaN(),
			errors.NewValueError("Fit", "empty training data"))
	}
	if y.Len() != nSamples {
		return ClassEstimate{}, errors.NewFitError("BinaryLogisticRegression.Fit", math.NaN(),
			errors.NewDimensionError("Fit", nSamples, y.Len(), 0))
	}
	for i := 0; i < nSamples; i++ {
		if v := y.AtVec(i); v != 0.0 && v != 1.0 {
			return ClassEstimate{}, errors.NewFitError("BinaryLogisticRegression.Fit", math.NaN(),
				errors.Newf("labels must be 0 or 1, got %v at row %d", v, i))
		}
	}

	weights := make([]float64, nFeatures)
	intercept := 0.0

	baseLearningRate := 1.0
	converged := false

	for iter := 0; iter < lr.maxIter; iter++ {
		// Gradient of the mean log loss.
		gradWeights := make([]float64, nFeatures)
		gradIntercept := 0.0

		for i := 0; i < nSamples; i++ {
			z := intercept
			for j := 0; j < nFeatures; j++ {
				z += X.At(i, j) * weights[j]
			}
			residual := Sigmoid(z) - y.AtVec(i)

			gradIntercept += residual
			for j := 0; j < nFeatures; j++ {
				gradWeights[j] += residual * X.At(i, j)
			}
		}

		for j := range gradWeights {
			gradWeights[j] /= float64(nSamples)
		}
		gradIntercept /= float64(nSamples)

		// L2 penalty gradient; the intercept is not regularized.
		if lr.regParam > 0 {
			for j := range weights {
				gradWeights[j] += lr.regParam * weights[j]
			}
		}

		learningRate := baseLearningRate / (1.0 + 0.1*float64(iter))

		for j := range weights {
			weights[j] -= learningRate * gradWeights[j]
		}
		if lr.fitIntercept {
			intercept -= learningRate * gradIntercept
		}

		maxGrad := math.Abs(gradIntercept)
		for _, g := range gradWeights {
			if math.Abs(g) > maxGrad {
				maxGrad = math.Abs(g)
			}
		}
		if maxGrad < lr.tol {
			converged = true
			break
		}
	}

	for j, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return ClassEstimate{}, errors.NewFitError("BinaryLogisticRegression.Fit", math.NaN(),
				errors.Newf("non-finite coefficient %v at feature %d", w, j))
		}
	}
	if math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return ClassEstimate{}, errors.NewFitError("BinaryLogisticRegression.Fit", math.NaN(),
			errors.Newf("non-finite intercept %v", intercept))
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("BinaryLogisticRegression", lr.maxIter, ""))
	}

	lr.coef = weights
	lr.intercept = intercept
	lr.state.SetDimensions(nFeatures, nSamples)
	lr.state.SetFitted()

	return ClassEstimate{Coef: weights, Intercept: intercept}, nil
}

// IsFitted reports whether the solver has completed at least one fit.
func (lr *BinaryLogisticRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// PredictProba returns the positive-class probability for every row of X
// under the most recent fit. It requires a fitted solver and a feature
// dimension matching the one seen at fit time.
func (lr *BinaryLogisticRegression) PredictProba(X mat.Matrix) (*mat.VecDense, error) {
	if err := lr.state.RequireFitted("BinaryLogisticRegression", "PredictProba"); err != nil {
		return nil, err
	}

	nSamples, nFeatures := X.Dims()
	fittedFeatures, _ := lr.state.GetDimensions()
	if nFeatures != fittedFeatures {
		return nil, errors.NewDimensionError("BinaryLogisticRegression.PredictProba", fittedFeatures, nFeatures, 1)
	}

	probs := mat.NewVecDense(nSamples, nil)
	for i := 0; i < nSamples; i++ {
		z := lr.intercept
		for j := 0; j < nFeatures; j++ {
			z += X.At(i, j) * lr.coef[j]
		}
		probs.SetVec(i, Sigmoid(z))
	}
	return probs, nil
}

// Sigmoid computes 1 / (1 + exp(-z)) in a numerically stable form.
// For negative z it evaluates exp(z) / (1 + exp(z)) instead, which is
// algebraically identical but never overflows; the result is in [0, 1]
// for any finite z.
func Sigmoid(z float64) float64 {
	if z >= 0 {
		return 1.0 / (1.0 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1.0 + e)
}
