// Package preprocessing provides feature transforms that turn raw text
// into fixed-length numeric vectors for the classifiers in this module.
package preprocessing

import (
	"encoding/gob"
	"hash/fnv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/ksuzuki-ml/ovrtext/core/parallel"
	"github.com/ksuzuki-ml/ovrtext/pkg/errors"
)

func init() {
	// Allow the vectorizer to travel inside gob-encoded models.
	gob.Register(&HashingVectorizer{})
}

// HashingVectorizer maps text to a fixed-size term-frequency vector using
// the hashing trick: each lowercased whitespace token is hashed with
// fnv32a and counted at hash mod NumFeatures.
//
// The transform is stateless and deterministic - there is no vocabulary
// to fit, so the same text always produces the same vector and unseen
// words never change the dimension.
type HashingVectorizer struct {
	// NumFeatures is the output vector dimension.
	NumFeatures int

	// Binary records token presence (1.0) instead of counts. Presence
	// features are often more robust for short texts.
	Binary bool
}

// VectorizerOption configures a HashingVectorizer.
type VectorizerOption func(*HashingVectorizer)

// WithBinaryCounts switches the vectorizer from term frequencies to
// 0/1 presence features.
func WithBinaryCounts(binary bool) VectorizerOption {
	return func(v *HashingVectorizer) {
		v.Binary = binary
	}
}

// NewHashingVectorizer creates a vectorizer producing vectors of the
// given dimension. Returns a ConfigError when numFeatures is not positive.
func NewHashingVectorizer(numFeatures int, opts ...VectorizerOption) (*HashingVectorizer, error) {
	if numFeatures <= 0 {
		return nil, errors.NewConfigError("num_features", "must be positive", numFeatures)
	}

	v := &HashingVectorizer{NumFeatures: numFeatures}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Transform converts a raw string into a fixed-size numeric vector.
// It is a total function: empty or whitespace-only text yields the zero
// vector.
func (v *HashingVectorizer) Transform(text string) ([]float64, error) {
	if v.NumFeatures <= 0 {
		return nil, errors.NewConfigError("num_features", "must be positive", v.NumFeatures)
	}

	vec := make([]float64, v.NumFeatures)

	// Minimal normalization: lowercase only. Punctuation and digits are
	// kept because they carry signal in short texts.
	words := strings.Fields(strings.ToLower(text))
	for _, w := range words {
		h := fnv.New32a()
		h.Write([]byte(w))
		// Reduce in uint32 space: converting the hash to int first would
		// go negative on 32-bit platforms.
		idx := int(h.Sum32() % uint32(v.NumFeatures))

		if v.Binary {
			vec[idx] = 1.0
		} else {
			vec[idx]++
		}
	}

	return vec, nil
}

// TransformAll vectorizes a batch of texts into an n x NumFeatures matrix,
// parallelized across rows for large batches.
func (v *HashingVectorizer) TransformAll(texts []string) (*mat.Dense, error) {
	if v.NumFeatures <= 0 {
		return nil, errors.NewConfigError("num_features", "must be positive", v.NumFeatures)
	}
	if len(texts) == 0 {
		return nil, errors.NewValueError("HashingVectorizer.TransformAll", "empty text batch")
	}

	X := mat.NewDense(len(texts), v.NumFeatures, nil)

	const parallelThreshold = 256
	parallel.ParallelizeWithThreshold(len(texts), parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			// Transform cannot fail once NumFeatures is validated.
			row, _ := v.Transform(texts[i])
			X.SetRow(i, row)
		}
	})

	return X, nil
}
