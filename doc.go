// Package ovrtext is a multiclass text classifier built from independent
// binary logistic-regression models combined one-vs-rest.
//
// The library is organized the way the training and serving paths use it:
//
//   - preprocessing: hashing-trick vectorizer turning raw text into
//     fixed-length feature vectors
//   - linear_model: the binary logistic regression solver fitted per class
//   - multiclass: the one-vs-rest trainer, model, and scorer
//   - dataset: labeled-row helpers and .npy interchange
//   - metrics: classification metrics for evaluating trained models
//
// # Quick start
//
//	vectorizer, _ := preprocessing.NewHashingVectorizer(1 << 16)
//	X, _ := vectorizer.TransformAll(texts)
//	y := mat.NewVecDense(len(labels), labels)
//
//	trainer, _ := multiclass.NewTrainer(multiclass.TrainerConfig{
//	    RegParam: 0.01,
//	    MaxIter:  200,
//	})
//	model, err := trainer.Fit(classes, X, y, vectorizer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, _ := model.Predict("cheap pills, buy now")
//	for _, r := range results {
//	    fmt.Printf("%s: %.3f\n", r.Class, r.Probability)
//	}
//
// Training parallelizes across classes; a fitted model is immutable and
// safe for concurrent prediction. Per-class probabilities come from
// independent binary classifiers and are not normalized to sum to 1.
package ovrtext
