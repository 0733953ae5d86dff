package expression

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// LossMSE computes the mean squared error of a numeric expression over a
// labelled dataset. Every point must have length n and every label length m.
func LossMSE(e *Expression[float64], points, labels [][]float64) (float64, error) {
	if len(points) != len(labels) {
		return 0, fmt.Errorf("%w: %d points, %d labels", ErrInputSizeMismatch, len(points), len(labels))
	}
	if len(points) == 0 {
		return 0, fmt.Errorf("%w: empty dataset", ErrInputSizeMismatch)
	}
	total := 0.0
	for i, point := range points {
		if len(labels[i]) != e.topo.Outputs {
			return 0, fmt.Errorf("%w: label %d has length %d, want %d",
				ErrInputSizeMismatch, i, len(labels[i]), e.topo.Outputs)
		}
		out, err := e.Eval(point)
		if err != nil {
			return 0, err
		}
		floats.Sub(out, labels[i])
		total += floats.Dot(out, out)
	}
	return total / float64(len(points)*e.topo.Outputs), nil
}
