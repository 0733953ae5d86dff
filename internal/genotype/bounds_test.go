package genotype

import (
	"errors"
	"math/rand"
	"testing"
)

func mustBounds(t *testing.T, topo Topology, kernelCount int) Bounds {
	t.Helper()
	b, err := NewBounds(topo, kernelCount)
	if err != nil {
		t.Fatalf("bounds failed: %v", err)
	}
	return b
}

func TestBoundsSingleNodeGrid(t *testing.T) {
	topo := Topology{Inputs: 2, Outputs: 1, Rows: 1, Cols: 1, LevelsBack: 1, Arity: 2}
	b := mustBounds(t, topo, 1)

	if b.Len() != 4 {
		t.Fatalf("unexpected chromosome length: %d", b.Len())
	}
	wantLower := []int{0, 0, 0, 2}
	wantUpper := []int{0, 1, 1, 2}
	for i := range wantLower {
		if b.Lower[i] != wantLower[i] || b.Upper[i] != wantUpper[i] {
			t.Fatalf("gene %d bounds [%d,%d], want [%d,%d]",
				i, b.Lower[i], b.Upper[i], wantLower[i], wantUpper[i])
		}
	}
}

func TestBoundsLevelsBackWindow(t *testing.T) {
	topo := Topology{Inputs: 1, Outputs: 1, Rows: 2, Cols: 3, LevelsBack: 1, Arity: 2}
	b := mustBounds(t, topo, 4)

	if b.Len() != 19 {
		t.Fatalf("unexpected chromosome length: %d", b.Len())
	}
	for i := 0; i < 18; i += 3 {
		if b.Lower[i] != 0 || b.Upper[i] != 3 {
			t.Fatalf("function gene %d bounds [%d,%d], want [0,3]", i, b.Lower[i], b.Upper[i])
		}
	}
	// Column 0 nodes may only reference the single input.
	for _, idx := range []int{1, 2, 4, 5} {
		if b.Lower[idx] != 0 || b.Upper[idx] != 0 {
			t.Fatalf("column 0 connection gene %d bounds [%d,%d], want [0,0]", idx, b.Lower[idx], b.Upper[idx])
		}
	}
	// Column 1 sees only column 0; column 2 only column 1.
	for _, idx := range []int{7, 8, 10, 11} {
		if b.Lower[idx] != 1 || b.Upper[idx] != 2 {
			t.Fatalf("column 1 connection gene %d bounds [%d,%d], want [1,2]", idx, b.Lower[idx], b.Upper[idx])
		}
	}
	for _, idx := range []int{13, 14, 16, 17} {
		if b.Lower[idx] != 3 || b.Upper[idx] != 4 {
			t.Fatalf("column 2 connection gene %d bounds [%d,%d], want [3,4]", idx, b.Lower[idx], b.Upper[idx])
		}
	}
	// Output sees only the last column.
	if b.Lower[18] != 5 || b.Upper[18] != 6 {
		t.Fatalf("output gene bounds [%d,%d], want [5,6]", b.Lower[18], b.Upper[18])
	}
}

func TestBoundsInvariants(t *testing.T) {
	topo := Topology{Inputs: 3, Outputs: 2, Rows: 4, Cols: 5, LevelsBack: 2, Arity: 3}
	b := mustBounds(t, topo, 7)

	if b.Len() != topo.ChromosomeLen() {
		t.Fatalf("bounds length %d, want %d", b.Len(), topo.ChromosomeLen())
	}
	maxNode := topo.Inputs + topo.Nodes() - 1
	for i := range b.Lower {
		if b.Lower[i] > b.Upper[i] {
			t.Fatalf("gene %d has lb %d > ub %d", i, b.Lower[i], b.Upper[i])
		}
		if i%topo.GeneWidth() != 0 || i >= topo.OutputGeneBase() {
			if b.Upper[i] > maxNode {
				t.Fatalf("node-reference gene %d upper bound %d exceeds max node id %d", i, b.Upper[i], maxNode)
			}
		}
	}
}

func TestBoundsConstructionErrors(t *testing.T) {
	valid := Topology{Inputs: 2, Outputs: 1, Rows: 1, Cols: 1, LevelsBack: 1, Arity: 2}

	broken := []Topology{
		{Inputs: 0, Outputs: 1, Rows: 1, Cols: 1, LevelsBack: 1, Arity: 2},
		{Inputs: 2, Outputs: 0, Rows: 1, Cols: 1, LevelsBack: 1, Arity: 2},
		{Inputs: 2, Outputs: 1, Rows: 0, Cols: 1, LevelsBack: 1, Arity: 2},
		{Inputs: 2, Outputs: 1, Rows: 1, Cols: 0, LevelsBack: 1, Arity: 2},
		{Inputs: 2, Outputs: 1, Rows: 1, Cols: 1, LevelsBack: 0, Arity: 2},
		{Inputs: 2, Outputs: 1, Rows: 1, Cols: 1, LevelsBack: 1, Arity: 1},
	}
	for i, topo := range broken {
		if _, err := NewBounds(topo, 1); !errors.Is(err, ErrInvalidTopology) {
			t.Fatalf("case %d: expected topology error, got %v", i, err)
		}
	}
	if _, err := NewBounds(valid, 0); !errors.Is(err, ErrEmptyKernelSet) {
		t.Fatalf("expected empty kernel set error, got %v", err)
	}
}

func TestContains(t *testing.T) {
	topo := Topology{Inputs: 2, Outputs: 1, Rows: 1, Cols: 1, LevelsBack: 1, Arity: 2}
	b := mustBounds(t, topo, 1)

	if !b.Contains(Chromosome{0, 0, 1, 2}) {
		t.Fatal("expected valid chromosome to be accepted")
	}
	if b.Contains(Chromosome{0, 0, 1}) {
		t.Fatal("expected wrong-length chromosome to be rejected")
	}
	if b.Contains(Chromosome{0, 0, 2, 2}) {
		t.Fatal("expected out-of-bounds connection gene to be rejected")
	}
	if b.Contains(Chromosome{0, 0, 1, 0}) {
		t.Fatal("expected below-lower-bound output gene to be rejected")
	}
}

func TestSampleStaysInBounds(t *testing.T) {
	topo := Topology{Inputs: 2, Outputs: 2, Rows: 3, Cols: 4, LevelsBack: 2, Arity: 2}
	b := mustBounds(t, topo, 5)
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {
		x := b.Sample(rng)
		if !b.Contains(x) {
			t.Fatalf("sampled chromosome violates bounds: %v", x)
		}
	}
}

func TestResample(t *testing.T) {
	topo := Topology{Inputs: 2, Outputs: 1, Rows: 1, Cols: 1, LevelsBack: 1, Arity: 2}
	b := mustBounds(t, topo, 3)
	rng := rand.New(rand.NewSource(3))

	// Function gene ranges over [0,2]; a resample never returns the current
	// value.
	for trial := 0; trial < 50; trial++ {
		v, ok := b.Resample(rng, 0, 1)
		if !ok {
			t.Fatal("expected resample on non-degenerate gene")
		}
		if v == 1 {
			t.Fatal("resample returned the current value")
		}
		if v < 0 || v > 2 {
			t.Fatalf("resample out of bounds: %d", v)
		}
	}

	// Output gene is pinned to node 2; mutation does not apply.
	if v, ok := b.Resample(rng, 3, 2); ok || v != 2 {
		t.Fatalf("expected degenerate gene no-op, got v=%d ok=%v", v, ok)
	}
}
