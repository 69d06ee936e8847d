// Standard attribute keys for classifier operations. Using these keys
// keeps training and serving logs filterable by the same fields.
//
// The keys follow a hierarchical naming convention ("model.name",
// "data.samples") to support structured log analysis.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type.
	// Examples: "OneVsRestModel", "BinaryLogisticRegression"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "save", "load"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "multiclass", "linear_model", "preprocessing"
	ComponentKey = "ml.component"

	// ClassKey is the numeric label of the per-class binary problem
	// currently being fitted or scored.
	ClassKey = "ml.class"

	// ClassNameKey is the human-readable name for ClassKey.
	ClassNameKey = "ml.class_name"
)

// Data shape.
const (
	// SamplesKey is the number of rows in the training set.
	SamplesKey = "data.samples"

	// FeaturesKey is the feature-vector dimension.
	FeaturesKey = "data.features"

	// ClassesKey is the number of classes in the label map.
	ClassesKey = "data.classes"
)

// Performance and results.
const (
	// DurationMsKey records the execution time of an operation in
	// milliseconds.
	DurationMsKey = "perf.duration_ms"

	// IterationsKey records how many optimizer iterations a fit used.
	IterationsKey = "perf.iterations"

	// ProbabilityKey is the top probability of a prediction.
	ProbabilityKey = "result.probability"

	// PredictionsKey is the number of classes surviving the probability
	// cutoff for one prediction.
	PredictionsKey = "result.predictions"
)
