package kernel

import "kartesia/internal/dual"

// DualSet builds a kernel set over the first-order Taylor algebra, so that
// one evaluation produces outputs together with their gradients.
func DualSet(arity int, names ...string) ([]Kernel[dual.Number], error) {
	return buildSet(dualRegistry, arity, names)
}

func dualFold(name string, combine func(dual.Number, dual.Number) dual.Number) builder[dual.Number] {
	return func(arity int) Kernel[dual.Number] {
		return Kernel[dual.Number]{Name: name, Arity: arity, Call: func(in []dual.Number) dual.Number {
			acc := in[0]
			for _, v := range in[1:] {
				acc = combine(acc, v)
			}
			return acc
		}}
	}
}

func dualUnary(name string, apply func(dual.Number) dual.Number) builder[dual.Number] {
	return func(arity int) Kernel[dual.Number] {
		return Kernel[dual.Number]{Name: name, Arity: arity, Call: func(in []dual.Number) dual.Number {
			return apply(in[0])
		}}
	}
}

var dualRegistry = map[string]builder[dual.Number]{
	"sum":  dualFold("sum", dual.Number.Add),
	"diff": dualFold("diff", dual.Number.Sub),
	"mul":  dualFold("mul", dual.Number.Mul),
	"div":  dualFold("div", dual.Number.Div),
	"pdiv": dualFold("pdiv", func(a, b dual.Number) dual.Number {
		if b.Val == 0 {
			return a
		}
		return a.Div(b)
	}),
	"sin": dualUnary("sin", dual.Number.Sin),
	"cos": dualUnary("cos", dual.Number.Cos),
	"exp": dualUnary("exp", dual.Number.Exp),
	"log": dualUnary("log", dual.Number.Log),
}
