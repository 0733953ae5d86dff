package genotype

import "sort"

// ActiveSets is the decoded view of a chromosome: the node ids that reach at
// least one output, and the chromosome indices needed to reproduce their
// computation. Nodes is sorted ascending and duplicate-free. The final m
// entries of Genes are always the output-gene indices.
type ActiveSets struct {
	Nodes []int
	Genes []int
}

// ResolveActive walks backward from the output genes through the connection
// genes of every reached internal node. The walk is a layered worklist with
// per-layer deduplication; reconvergent graphs are the common case and a
// naive recursive expansion would be exponential in path count.
func ResolveActive(t Topology, x Chromosome) ActiveSets {
	width := t.GeneWidth()
	outBase := t.OutputGeneBase()

	nodes := make([]int, 0, t.Outputs)
	current := make([]int, t.Outputs)
	for i := 0; i < t.Outputs; i++ {
		current[i] = x[outBase+i]
	}
	var next []int
	for len(current) > 0 {
		nodes = append(nodes, current...)
		for _, id := range current {
			if id < t.Inputs {
				continue
			}
			base := (id - t.Inputs) * width
			for k := 1; k <= t.Arity; k++ {
				next = append(next, x[base+k])
			}
		}
		sort.Ints(next)
		next = dedupSorted(next)
		current, next = next, current[:0]
	}

	sort.Ints(nodes)
	nodes = dedupSorted(nodes)

	genes := make([]int, 0, len(nodes)*width+t.Outputs)
	for _, id := range nodes {
		if id < t.Inputs {
			continue
		}
		base := (id - t.Inputs) * width
		for k := 0; k < width; k++ {
			genes = append(genes, base+k)
		}
	}
	for i := 0; i < t.Outputs; i++ {
		genes = append(genes, outBase+i)
	}
	return ActiveSets{Nodes: nodes, Genes: genes}
}

// HasActiveInternal reports whether at least one internal node is active,
// checked as the active-gene list extending past the m output genes.
func (a ActiveSets) HasActiveInternal(outputs int) bool {
	return len(a.Genes) > outputs
}

func dedupSorted(s []int) []int {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
