package multiclass

import "gonum.org/v1/gonum/mat"

// ProjectBinary derives the binary label column for one target class from
// a multiclass label column: 1.0 where the label equals target, 0.0
// elsewhere.
//
// It is a pure, total function. A target absent from y is valid and
// yields an all-zero column; the downstream fit is degenerate but allowed
// to proceed.
func ProjectBinary(y *mat.VecDense, target float64) *mat.VecDense {
	n := y.Len()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		if y.AtVec(i) == target {
			out.SetVec(i, 1.0)
		}
	}
	return out
}
