package expression

import (
	"fmt"

	"kartesia/internal/genotype"
)

// Mutate resamples the gene at idx within its bounds, rejecting draws equal
// to the current value. A gene whose bounds allow a single value is left
// untouched. The active sets are recomputed only when the gene changed.
func (e *Expression[T]) Mutate(idx int) error {
	if idx < 0 || idx >= e.bounds.Len() {
		return fmt.Errorf("%w: %d", ErrGeneIndexOutOfRange, idx)
	}
	if e.resample(idx) {
		e.refresh()
	}
	return nil
}

// MutateGenes resamples every listed gene. All indices are validated before
// any gene is touched, so an out-of-range index leaves the chromosome
// unchanged. The active sets are recomputed once at the end, and only if at
// least one gene actually changed.
func (e *Expression[T]) MutateGenes(idxs []int) error {
	for _, idx := range idxs {
		if idx < 0 || idx >= e.bounds.Len() {
			return fmt.Errorf("%w: %d", ErrGeneIndexOutOfRange, idx)
		}
	}
	changed := false
	for _, idx := range idxs {
		if e.resample(idx) {
			changed = true
		}
	}
	if changed {
		e.refresh()
	}
	return nil
}

// MutateRandom resamples n genes drawn independently and uniformly from the
// whole chromosome, with replacement.
func (e *Expression[T]) MutateRandom(n int) {
	changed := false
	for i := 0; i < n; i++ {
		idx := e.rng.Intn(e.bounds.Len())
		if e.resample(idx) {
			changed = true
		}
	}
	if changed {
		e.refresh()
	}
}

// MutateActive resamples n genes drawn uniformly from the current
// active-gene list, biasing mutation toward genes that affect behavior.
func (e *Expression[T]) MutateActive(n int) {
	active := e.active.Genes
	changed := false
	for i := 0; i < n; i++ {
		idx := active[e.rng.Intn(len(active))]
		if e.resample(idx) {
			changed = true
		}
	}
	if changed {
		e.refresh()
	}
}

// MutateActiveFunction mutates the function-selector gene of one active
// internal node, chosen uniformly among the active non-output genes. It is a
// no-op when no internal node is active.
func (e *Expression[T]) MutateActiveFunction() {
	if !e.active.HasActiveInternal(e.topo.Outputs) {
		return
	}
	idx := e.pickActiveNodeGene()
	idx -= idx % e.topo.GeneWidth()
	if e.resample(idx) {
		e.refresh()
	}
}

// MutateActiveConnection mutates one connection gene, chosen uniformly, of an
// active internal node selected like MutateActiveFunction. It is a no-op when
// no internal node is active.
func (e *Expression[T]) MutateActiveConnection() {
	if !e.active.HasActiveInternal(e.topo.Outputs) {
		return
	}
	idx := e.pickActiveNodeGene()
	idx -= idx % e.topo.GeneWidth()
	idx += 1 + e.rng.Intn(e.topo.Arity)
	if e.resample(idx) {
		e.refresh()
	}
}

// MutateOutput mutates one of the m output genes, chosen uniformly.
func (e *Expression[T]) MutateOutput() {
	idx := e.topo.OutputGeneBase() + e.rng.Intn(e.topo.Outputs)
	if e.resample(idx) {
		e.refresh()
	}
}

// pickActiveNodeGene draws uniformly among the active genes that belong to
// internal nodes, i.e. everything before the trailing m output genes.
func (e *Expression[T]) pickActiveNodeGene() int {
	return e.active.Genes[e.rng.Intn(len(e.active.Genes)-e.topo.Outputs)]
}

func (e *Expression[T]) resample(idx int) bool {
	v, ok := e.bounds.Resample(e.rng, idx, e.x[idx])
	if ok {
		e.x[idx] = v
	}
	return ok
}

func (e *Expression[T]) refresh() {
	e.active = genotype.ResolveActive(e.topo, e.x)
}
