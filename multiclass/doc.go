// Package multiclass implements a one-vs-rest text classifier built from
// independent binary logistic models, one per class.
//
// Training projects the multiclass label column into a 0/1 column per
// class and fits each binary problem independently; the per-class fits
// share no state, so they run in parallel and the result does not depend
// on scheduling order. Scoring computes each class probability with the
// binary logistic formula against the implicit pivot class 0.
//
// The per-class probabilities are intentionally NOT normalized: this is
// an ensemble of independent binary classifiers, not a softmax, so the
// probabilities of one prediction need not sum to 1.
package multiclass
