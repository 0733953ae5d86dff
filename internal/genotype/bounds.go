package genotype

import (
	"errors"
	"fmt"
	"math/rand"
)

var ErrEmptyKernelSet = errors.New("kernel set is empty")

// Bounds holds the per-gene [Lower[i], Upper[i]] ranges implied by a
// topology and a kernel-set size. Bounds are computed once and never change.
type Bounds struct {
	Lower []int
	Upper []int
}

// NewBounds derives the gene bounds for a topology with kernelCount basis
// functions. Connection genes may only reference inputs or nodes in strictly
// earlier columns inside the levels-back window, which keeps the encoded
// graph acyclic.
func NewBounds(t Topology, kernelCount int) (Bounds, error) {
	if err := t.Validate(); err != nil {
		return Bounds{}, err
	}
	if kernelCount <= 0 {
		return Bounds{}, ErrEmptyKernelSet
	}

	width := t.GeneWidth()
	length := t.ChromosomeLen()
	b := Bounds{
		Lower: make([]int, length),
		Upper: make([]int, length),
	}

	// Function-selector genes.
	for i := 0; i < width*t.Nodes(); i += width {
		b.Upper[i] = kernelCount - 1
	}

	// Connection genes: node at column i, row j may reference node ids in
	// [n + r*(i-l), n + i*r - 1], with inputs reachable once the window
	// crosses column 0.
	for i := 0; i < t.Cols; i++ {
		for j := 0; j < t.Rows; j++ {
			for k := 0; k < t.Arity; k++ {
				idx := (i*t.Rows+j)*width + k + 1
				b.Upper[idx] = t.Inputs + i*t.Rows - 1
				if i >= t.LevelsBack {
					b.Lower[idx] = t.Inputs + t.Rows*(i-t.LevelsBack)
				}
			}
		}
	}

	// Output genes may reference any node inside the trailing window.
	for i := t.OutputGeneBase(); i < length; i++ {
		b.Upper[i] = t.Inputs + t.Nodes() - 1
		if t.LevelsBack <= t.Cols {
			b.Lower[i] = t.Inputs + t.Rows*(t.Cols-t.LevelsBack)
		}
	}
	return b, nil
}

// Len is the chromosome length the bounds were computed for.
func (b Bounds) Len() int {
	return len(b.Lower)
}

// Contains reports whether x has the right length and every gene sits inside
// its [lower, upper] range.
func (b Bounds) Contains(x Chromosome) bool {
	if len(x) != b.Len() {
		return false
	}
	for i, v := range x {
		if v < b.Lower[i] || v > b.Upper[i] {
			return false
		}
	}
	return true
}

// Sample draws a uniformly random chromosome inside the bounds.
func (b Bounds) Sample(rng *rand.Rand) Chromosome {
	x := make(Chromosome, b.Len())
	for i := range x {
		x[i] = b.Lower[i] + rng.Intn(b.Upper[i]-b.Lower[i]+1)
	}
	return x
}

// Resample draws a value for gene idx that differs from current. Genes whose
// range holds a single value are left as they are; the second return reports
// whether a new value was produced.
func (b Bounds) Resample(rng *rand.Rand, idx, current int) (int, bool) {
	if idx < 0 || idx >= b.Len() {
		panic(fmt.Sprintf("genotype: resample index %d out of range [0, %d)", idx, b.Len()))
	}
	if b.Lower[idx] >= b.Upper[idx] {
		return current, false
	}
	for {
		v := b.Lower[idx] + rng.Intn(b.Upper[idx]-b.Lower[idx]+1)
		if v != current {
			return v, true
		}
	}
}
