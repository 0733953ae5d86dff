package expression

import (
	"fmt"
	"strings"

	"kartesia/internal/kernel"
)

// String renders a human-readable dump of the expression: topology, bounds,
// chromosome, active sets and kernel names.
func (e *Expression[T]) String() string {
	var b strings.Builder
	b.WriteString("CGP expression:\n")
	fmt.Fprintf(&b, "\tinputs:       %d\n", e.topo.Inputs)
	fmt.Fprintf(&b, "\toutputs:      %d\n", e.topo.Outputs)
	fmt.Fprintf(&b, "\trows:         %d\n", e.topo.Rows)
	fmt.Fprintf(&b, "\tcolumns:      %d\n", e.topo.Cols)
	fmt.Fprintf(&b, "\tlevels-back:  %d\n", e.topo.LevelsBack)
	fmt.Fprintf(&b, "\tarity:        %d\n", e.topo.Arity)
	fmt.Fprintf(&b, "\tlower bounds: %v\n", e.bounds.Lower)
	fmt.Fprintf(&b, "\tupper bounds: %v\n", e.bounds.Upper)
	fmt.Fprintf(&b, "\tchromosome:   %v\n", []int(e.x))
	fmt.Fprintf(&b, "\tactive nodes: %v\n", e.active.Nodes)
	fmt.Fprintf(&b, "\tactive genes: %v\n", e.active.Genes)
	fmt.Fprintf(&b, "\tkernels:      %s\n", strings.Join(kernel.Names(e.kernels), ", "))
	return b.String()
}
