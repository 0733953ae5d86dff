// Package expression implements the CGP expression core: a fixed-length
// integer chromosome over a row-by-column grid, its decode into the active
// subgraph, generic evaluation of that subgraph, and the mutation operators
// an external evolutionary search drives.
package expression

import (
	"errors"
	"fmt"
	"math/rand"

	"kartesia/internal/genotype"
	"kartesia/internal/kernel"
)

var (
	ErrIncompatibleChromosome = errors.New("chromosome is incompatible with the expression")
	ErrGeneIndexOutOfRange    = errors.New("gene index out of range")
	ErrInputSizeMismatch      = errors.New("input size is incompatible")
	ErrArityMismatch          = errors.New("kernel arity does not match the expression arity")
)

// Expression owns a chromosome, its bounds and kernel set, and the random
// source driving mutation. Every mutator either leaves the expression
// unchanged and returns an error, or moves it to a new state whose active
// sets already reflect the new chromosome; no stale intermediate state is
// observable.
type Expression[T any] struct {
	topo    genotype.Topology
	kernels []kernel.Kernel[T]
	bounds  genotype.Bounds
	x       genotype.Chromosome
	active  genotype.ActiveSets
	rng     *rand.Rand
}

// New builds an expression with a uniformly random chromosome. The seed fixes
// both the initial chromosome and the mutation stream.
func New[T any](t genotype.Topology, kernels []kernel.Kernel[T], seed int64) (*Expression[T], error) {
	bounds, err := genotype.NewBounds(t, len(kernels))
	if err != nil {
		return nil, err
	}
	for _, k := range kernels {
		if k.Arity != t.Arity {
			return nil, fmt.Errorf("%w: kernel %q has arity %d, expression has %d",
				ErrArityMismatch, k.Name, k.Arity, t.Arity)
		}
	}
	e := &Expression[T]{
		topo:    t,
		kernels: kernels,
		bounds:  bounds,
		rng:     rand.New(rand.NewSource(seed)),
	}
	e.x = bounds.Sample(e.rng)
	e.active = genotype.ResolveActive(t, e.x)
	return e, nil
}

// Set replaces the chromosome wholesale after validating its shape and
// bounds. On failure the previous chromosome and active sets are retained.
func (e *Expression[T]) Set(x genotype.Chromosome) error {
	if len(x) != e.bounds.Len() {
		return fmt.Errorf("%w: length %d, want %d", ErrIncompatibleChromosome, len(x), e.bounds.Len())
	}
	for i, v := range x {
		if v < e.bounds.Lower[i] || v > e.bounds.Upper[i] {
			return fmt.Errorf("%w: gene %d is %d, want [%d, %d]",
				ErrIncompatibleChromosome, i, v, e.bounds.Lower[i], e.bounds.Upper[i])
		}
	}
	e.x = x.Clone()
	e.active = genotype.ResolveActive(e.topo, e.x)
	return nil
}

// Get returns a copy of the current chromosome.
func (e *Expression[T]) Get() genotype.Chromosome {
	return e.x.Clone()
}

// LowerBounds returns a copy of the per-gene lower bounds.
func (e *Expression[T]) LowerBounds() []int {
	return append([]int(nil), e.bounds.Lower...)
}

// UpperBounds returns a copy of the per-gene upper bounds.
func (e *Expression[T]) UpperBounds() []int {
	return append([]int(nil), e.bounds.Upper...)
}

// ActiveNodes returns the sorted duplicate-free ids of the nodes that reach
// at least one output.
func (e *Expression[T]) ActiveNodes() []int {
	return append([]int(nil), e.active.Nodes...)
}

// ActiveGenes returns the chromosome indices that influence the outputs; the
// final m entries are always the output genes.
func (e *Expression[T]) ActiveGenes() []int {
	return append([]int(nil), e.active.Genes...)
}

// Topology returns the immutable grid parameters.
func (e *Expression[T]) Topology() genotype.Topology {
	return e.topo
}

// Kernels returns the basis-function set in selector order.
func (e *Expression[T]) Kernels() []kernel.Kernel[T] {
	return append([]kernel.Kernel[T](nil), e.kernels...)
}

func (e *Expression[T]) Inputs() int     { return e.topo.Inputs }
func (e *Expression[T]) Outputs() int    { return e.topo.Outputs }
func (e *Expression[T]) Rows() int       { return e.topo.Rows }
func (e *Expression[T]) Cols() int       { return e.topo.Cols }
func (e *Expression[T]) LevelsBack() int { return e.topo.LevelsBack }
func (e *Expression[T]) Arity() int      { return e.topo.Arity }
