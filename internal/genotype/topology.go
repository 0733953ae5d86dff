package genotype

import (
	"errors"
	"fmt"
)

var ErrInvalidTopology = errors.New("invalid topology parameter")

// Topology fixes the shape of a CGP grid for the lifetime of an expression:
// n inputs, m outputs, r rows, c columns, a levels-back window and the arity
// shared by every basis function.
type Topology struct {
	Inputs     int
	Outputs    int
	Rows       int
	Cols       int
	LevelsBack int
	Arity      int
}

// Validate reports the first construction-parameter violation, if any.
func (t Topology) Validate() error {
	if t.Inputs <= 0 {
		return fmt.Errorf("%w: number of inputs is %d", ErrInvalidTopology, t.Inputs)
	}
	if t.Outputs <= 0 {
		return fmt.Errorf("%w: number of outputs is %d", ErrInvalidTopology, t.Outputs)
	}
	if t.Rows <= 0 {
		return fmt.Errorf("%w: number of rows is %d", ErrInvalidTopology, t.Rows)
	}
	if t.Cols <= 0 {
		return fmt.Errorf("%w: number of columns is %d", ErrInvalidTopology, t.Cols)
	}
	if t.LevelsBack <= 0 {
		return fmt.Errorf("%w: number of levels-back is %d", ErrInvalidTopology, t.LevelsBack)
	}
	if t.Arity < 2 {
		return fmt.Errorf("%w: basis function arity must be at least 2, got %d", ErrInvalidTopology, t.Arity)
	}
	return nil
}

// GeneWidth is the number of genes encoding one internal node: the function
// selector plus one connection gene per argument.
func (t Topology) GeneWidth() int {
	return t.Arity + 1
}

// Nodes is the number of internal nodes in the grid.
func (t Topology) Nodes() int {
	return t.Rows * t.Cols
}

// ChromosomeLen is the fixed chromosome length implied by the topology.
func (t Topology) ChromosomeLen() int {
	return t.GeneWidth()*t.Nodes() + t.Outputs
}

// NodeGeneBase maps an internal node id to the index of its first gene.
func (t Topology) NodeGeneBase(nodeID int) int {
	return (nodeID - t.Inputs) * t.GeneWidth()
}

// OutputGeneBase is the index of the first output gene.
func (t Topology) OutputGeneBase() int {
	return t.GeneWidth() * t.Nodes()
}
