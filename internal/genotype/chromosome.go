package genotype

// Chromosome is the fixed-length integer genotype of a CGP expression: one
// block of arity+1 genes per internal node (function selector followed by the
// connection genes) and one trailing gene per output.
type Chromosome []int

// Clone returns an independent copy of the chromosome.
func (x Chromosome) Clone() Chromosome {
	out := make(Chromosome, len(x))
	copy(out, x)
	return out
}
