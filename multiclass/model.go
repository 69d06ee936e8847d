package multiclass

import (
	"sort"

	"github.com/ksuzuki-ml/ovrtext/core/model"
	"github.com/ksuzuki-ml/ovrtext/linear_model"
	"github.com/ksuzuki-ml/ovrtext/pkg/errors"
)

// Transformer maps raw text to a fixed-length numeric feature vector.
// Implementations must be deterministic and side-effect free; see
// preprocessing.HashingVectorizer for the one shipped with this module.
type Transformer interface {
	Transform(text string) ([]float64, error)
}

// ClassLabelMap maps a numeric class label, used as the stable class
// identifier throughout training and scoring, to its human-readable name.
type ClassLabelMap map[float64]string

// OneVsRestModel is a fitted one-vs-rest classifier: one ClassEstimate
// per class in Classes, plus the transformer that produced the training
// features. The model is immutable after training and safe for unlimited
// concurrent Predict callers.
//
// Fields are exported for gob encoding; treat them as read-only.
type OneVsRestModel struct {
	Transformer Transformer
	Classes     ClassLabelMap
	Estimates   map[float64]linear_model.ClassEstimate
}

// Labels returns the class labels in ascending order. This is the
// canonical encounter order used for scoring and tie-breaking.
func (m *OneVsRestModel) Labels() []float64 {
	labels := make([]float64, 0, len(m.Classes))
	for label := range m.Classes {
		labels = append(labels, label)
	}
	sort.Float64s(labels)
	return labels
}

// NumFeatures returns the feature dimension of the fitted estimates, or
// 0 for an empty model.
func (m *OneVsRestModel) NumFeatures() int {
	for _, est := range m.Estimates {
		return len(est.Coef)
	}
	return 0
}

// Validate checks the model invariants: the estimate key set equals the
// class-label key set, and every coefficient vector has the same
// dimension.
func (m *OneVsRestModel) Validate() error {
	if len(m.Classes) == 0 {
		return errors.NewValueError("OneVsRestModel.Validate", "empty class label map")
	}
	if len(m.Estimates) != len(m.Classes) {
		return errors.NewDimensionError("OneVsRestModel.Validate", len(m.Classes), len(m.Estimates), 0)
	}

	dim := -1
	for label := range m.Classes {
		est, ok := m.Estimates[label]
		if !ok {
			return errors.Newf("ovrtext: OneVsRestModel.Validate: missing estimate for class %v", label)
		}
		if dim == -1 {
			dim = len(est.Coef)
		} else if len(est.Coef) != dim {
			return errors.NewDimensionError("OneVsRestModel.Validate", dim, len(est.Coef), 1)
		}
	}
	return nil
}

// Save writes the model to a file. The attached transformer is encoded
// along with the estimates, so a loaded model predicts identically to
// the original. Concrete transformer types must be gob-registered; the
// preprocessing package registers its own.
func (m *OneVsRestModel) Save(filename string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return model.SaveModel(m, filename)
}

// Load reads a model written by Save and validates its invariants.
func Load(filename string) (*OneVsRestModel, error) {
	var m OneVsRestModel
	if err := model.LoadModel(&m, filename); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
