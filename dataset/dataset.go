// Package dataset provides the labeled-row representation of training
// data and .npy interchange with Python-side feature pipelines.
package dataset

import (
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/ksuzuki-ml/ovrtext/pkg/errors"
)

// Row is one training example: a numeric class label and its feature
// vector. Rows are immutable once produced by a feature transform.
type Row struct {
	Label    float64
	Features []float64
}

// Matrices packs labeled rows into the (X, y) pair the trainer consumes.
// Every row must have the same feature dimension.
func Matrices(rows []Row) (*mat.Dense, *mat.VecDense, error) {
	if len(rows) == 0 {
		return nil, nil, errors.NewValueError("dataset.Matrices", "no rows")
	}

	dim := len(rows[0].Features)
	if dim == 0 {
		return nil, nil, errors.NewValueError("dataset.Matrices", "zero-dimension features")
	}

	X := mat.NewDense(len(rows), dim, nil)
	y := mat.NewVecDense(len(rows), nil)
	for i, row := range rows {
		if len(row.Features) != dim {
			return nil, nil, errors.NewDimensionError("dataset.Matrices", dim, len(row.Features), 1)
		}
		X.SetRow(i, row.Features)
		y.SetVec(i, row.Label)
	}

	return X, y, nil
}

// SaveNpy writes the feature matrix and label column as two .npy files.
// Labels are stored as an n x 1 matrix for numpy compatibility.
func SaveNpy(xPath, yPath string, X *mat.Dense, y *mat.VecDense) error {
	nSamples, _ := X.Dims()
	if y.Len() != nSamples {
		return errors.NewDimensionError("dataset.SaveNpy", nSamples, y.Len(), 0)
	}

	if err := writeNpy(xPath, X); err != nil {
		return err
	}

	yMat := mat.NewDense(y.Len(), 1, nil)
	for i := 0; i < y.Len(); i++ {
		yMat.Set(i, 0, y.AtVec(i))
	}
	return writeNpy(yPath, yMat)
}

// LoadNpy reads a feature matrix and label column written by SaveNpy or
// by a numpy pipeline. The label file may be an n-vector or an n x 1
// matrix.
func LoadNpy(xPath, yPath string) (*mat.Dense, *mat.VecDense, error) {
	X, err := readNpy(xPath)
	if err != nil {
		return nil, nil, err
	}

	yMat, err := readNpy(yPath)
	if err != nil {
		return nil, nil, err
	}

	yRows, yCols := yMat.Dims()
	if yCols != 1 {
		return nil, nil, errors.NewDimensionError("dataset.LoadNpy", 1, yCols, 1)
	}

	nSamples, _ := X.Dims()
	if yRows != nSamples {
		return nil, nil, errors.NewDimensionError("dataset.LoadNpy", nSamples, yRows, 0)
	}

	y := mat.NewVecDense(yRows, nil)
	for i := 0; i < yRows; i++ {
		y.SetVec(i, yMat.At(i, 0))
	}

	return X, y, nil
}

func writeNpy(path string, m *mat.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "dataset: create npy file")
	}
	defer f.Close()

	if err := npyio.Write(f, m); err != nil {
		return errors.Wrapf(err, "dataset: write %s", path)
	}
	return nil
}

func readNpy(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "dataset: open npy file")
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: read %s", path)
	}

	m := &mat.Dense{}
	if err := r.Read(m); err != nil {
		return nil, errors.Wrapf(err, "dataset: decode %s", path)
	}
	return m, nil
}
