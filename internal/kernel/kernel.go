// Package kernel provides the basis functions a CGP expression composes.
// Kernels are polymorphic over the value type they operate on: the same
// operation names build sets over float64, the dual algebra, or symbolic
// strings.
package kernel

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownKernel = errors.New("unknown kernel")

// Kernel is a named basis function of fixed arity. Call receives exactly
// Arity values and must not retain the slice.
type Kernel[T any] struct {
	Name  string
	Arity int
	Call  func([]T) T
}

// Names lists the kernel names in set order.
func Names[T any](set []Kernel[T]) []string {
	out := make([]string, len(set))
	for i, k := range set {
		out[i] = k.Name
	}
	return out
}

// builder constructs one kernel of the requested arity for a concrete value
// type.
type builder[T any] func(arity int) Kernel[T]

func buildSet[T any](registry map[string]builder[T], arity int, names []string) ([]Kernel[T], error) {
	set := make([]Kernel[T], 0, len(names))
	for _, name := range names {
		build, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
		}
		set = append(set, build(arity))
	}
	return set, nil
}

func registryNames[T any](registry map[string]builder[T]) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
