// Package metrics provides evaluation metrics for classification models.
package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ksuzuki-ml/ovrtext/pkg/errors"
)

// Accuracy computes the fraction of predictions equal to the true labels.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}

	return float64(correct) / float64(n), nil
}

// Precision computes tp / (tp + fp) for the given positive label.
// When nothing is predicted positive the metric is ill-defined and 0 is
// returned.
func Precision(yTrue, yPred *mat.VecDense, positive float64) (float64, error) {
	tp, fp, _, err := confusionCounts(yTrue, yPred, positive, "Precision")
	if err != nil {
		return 0, err
	}

	if tp+fp == 0 {
		return 0, nil
	}
	return float64(tp) / float64(tp+fp), nil
}

// Recall computes tp / (tp + fn) for the given positive label.
// When no true positives exist the metric is ill-defined and 0 is
// returned.
func Recall(yTrue, yPred *mat.VecDense, positive float64) (float64, error) {
	tp, _, fn, err := confusionCounts(yTrue, yPred, positive, "Recall")
	if err != nil {
		return 0, err
	}

	if tp+fn == 0 {
		return 0, nil
	}
	return float64(tp) / float64(tp+fn), nil
}

// F1Score computes the harmonic mean of precision and recall for the
// given positive label, or 0 when both are 0.
func F1Score(yTrue, yPred *mat.VecDense, positive float64) (float64, error) {
	p, err := Precision(yTrue, yPred, positive)
	if err != nil {
		return 0, err
	}
	r, err := Recall(yTrue, yPred, positive)
	if err != nil {
		return 0, err
	}

	if p+r == 0 {
		return 0, nil
	}
	return 2 * p * r / (p + r), nil
}

func confusionCounts(yTrue, yPred *mat.VecDense, positive float64, op string) (tp, fp, fn int, err error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, 0, 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, 0, 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}

	for i := 0; i < n; i++ {
		truePos := yTrue.AtVec(i) == positive
		predPos := yPred.AtVec(i) == positive
		switch {
		case truePos && predPos:
			tp++
		case !truePos && predPos:
			fp++
		case truePos && !predPos:
			fn++
		}
	}
	return tp, fp, fn, nil
}
