package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/ksuzuki-ml/ovrtext/pkg/errors"
)

// SaveModel writes a model to a file using gob encoding.
//
// Concrete types stored behind interface fields (for example a feature
// transformer) must be registered with gob before saving; the
// preprocessing package registers its transformers in init.
//
// Example:
//
//	err := model.SaveModel(ovr, "classifier.gob")
func SaveModel(m interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create model file")
	}
	defer file.Close()

	if err := SaveModelToWriter(m, file); err != nil {
		return err
	}
	return nil
}

// LoadModel reads a model from a file written by SaveModel. The target
// must be a pointer to the model value.
//
// Example:
//
//	var ovr multiclass.OneVsRestModel
//	err := model.LoadModel(&ovr, "classifier.gob")
func LoadModel(m interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "failed to open model file")
	}
	defer file.Close()

	return LoadModelFromReader(m, file)
}

// SaveModelToWriter writes a model to an io.Writer using gob encoding.
func SaveModelToWriter(m interface{}, w io.Writer) error {
	encoder := gob.NewEncoder(w)
	if err := encoder.Encode(m); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadModelFromReader reads a model from an io.Reader written by
// SaveModelToWriter.
func LoadModelFromReader(m interface{}, r io.Reader) error {
	decoder := gob.NewDecoder(r)
	if err := decoder.Decode(m); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	return nil
}
