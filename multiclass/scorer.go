package multiclass

import (
	"sort"

	"github.com/ksuzuki-ml/ovrtext/linear_model"
	"github.com/ksuzuki-ml/ovrtext/pkg/errors"
)

// MinProbability is the fixed cutoff for prediction results: classes
// scoring at or below it are dropped from the result list.
const MinProbability = 0.001

// Prediction is one scored class.
type Prediction struct {
	Class       string
	Probability float64
}

// PredictionList is sorted by probability descending and contains only
// entries with probability strictly greater than MinProbability.
type PredictionList []Prediction

// Predict transforms text with the model's transformer and scores the
// resulting vector against every class. Each call produces a fresh
// result list; the model itself is never mutated, so any number of
// callers may predict concurrently.
func (m *OneVsRestModel) Predict(text string) (PredictionList, error) {
	if m.Transformer == nil {
		return nil, errors.NewNotFittedError("OneVsRestModel", "Predict")
	}

	x, err := m.Transformer.Transform(text)
	if err != nil {
		return nil, errors.Wrap(err, "ovrtext: OneVsRestModel.Predict: transform failed")
	}
	return m.PredictVector(x)
}

// PredictVector scores a pre-built feature vector against every class.
//
// Each class probability is the stable sigmoid of coef·x + intercept,
// computed independently per class (see the package doc: the list is not
// softmax-normalized). Classes are scored in ascending label order and
// sorted by probability with a stable sort, so equal probabilities keep
// that order. A dimension mismatch fails with a DimensionError that
// aborts only this call; the model remains valid.
func (m *OneVsRestModel) PredictVector(x []float64) (PredictionList, error) {
	if len(m.Estimates) == 0 {
		return nil, errors.NewNotFittedError("OneVsRestModel", "PredictVector")
	}

	type scored struct {
		label       float64
		probability float64
	}
	scores := make([]scored, 0, len(m.Estimates))

	for _, label := range m.Labels() {
		est := m.Estimates[label]
		if len(est.Coef) != len(x) {
			return nil, errors.NewDimensionError("OneVsRestModel.PredictVector", len(est.Coef), len(x), 1)
		}

		dot := est.Intercept
		for j, c := range est.Coef {
			dot += c * x[j]
		}
		scores = append(scores, scored{label: label, probability: linear_model.Sigmoid(dot)})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].probability > scores[j].probability
	})

	results := make(PredictionList, 0, len(scores))
	for _, s := range scores {
		if s.probability <= MinProbability {
			continue
		}
		results = append(results, Prediction{
			Class:       m.Classes[s.label],
			Probability: s.probability,
		})
	}

	return results, nil
}
