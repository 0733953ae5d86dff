package expression

import "fmt"

// Eval computes the expression on one input point. Only the active nodes are
// visited, in ascending node-id order; the column-monotonic bounds guarantee
// every predecessor value is already available. Node values live in a dense
// arena indexed by node id.
func (e *Expression[T]) Eval(in []T) ([]T, error) {
	if len(in) != e.topo.Inputs {
		return nil, fmt.Errorf("%w: got %d inputs, want %d", ErrInputSizeMismatch, len(in), e.topo.Inputs)
	}
	values := make([]T, e.topo.Inputs+e.topo.Nodes())
	args := make([]T, e.topo.Arity)
	width := e.topo.GeneWidth()
	for _, id := range e.active.Nodes {
		if id < e.topo.Inputs {
			values[id] = in[id]
			continue
		}
		base := (id - e.topo.Inputs) * width
		for k := 0; k < e.topo.Arity; k++ {
			args[k] = values[e.x[base+1+k]]
		}
		values[id] = e.kernels[e.x[base]].Call(args)
	}
	out := make([]T, e.topo.Outputs)
	outBase := e.topo.OutputGeneBase()
	for i := range out {
		out[i] = values[e.x[outBase+i]]
	}
	return out, nil
}
