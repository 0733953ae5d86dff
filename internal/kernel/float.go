package kernel

import "math"

// Float64Set builds a numeric kernel set from operation names. Known names:
// sum, diff, mul, div, pdiv, sin, cos, exp, log. The n-ary operations fold
// left over all arguments; the trigonometric and transcendental ones read the
// first argument only.
func Float64Set(arity int, names ...string) ([]Kernel[float64], error) {
	return buildSet(float64Registry, arity, names)
}

var float64Registry = map[string]builder[float64]{
	"sum": func(arity int) Kernel[float64] {
		return Kernel[float64]{Name: "sum", Arity: arity, Call: func(in []float64) float64 {
			acc := in[0]
			for _, v := range in[1:] {
				acc += v
			}
			return acc
		}}
	},
	"diff": func(arity int) Kernel[float64] {
		return Kernel[float64]{Name: "diff", Arity: arity, Call: func(in []float64) float64 {
			acc := in[0]
			for _, v := range in[1:] {
				acc -= v
			}
			return acc
		}}
	},
	"mul": func(arity int) Kernel[float64] {
		return Kernel[float64]{Name: "mul", Arity: arity, Call: func(in []float64) float64 {
			acc := in[0]
			for _, v := range in[1:] {
				acc *= v
			}
			return acc
		}}
	},
	"div": func(arity int) Kernel[float64] {
		return Kernel[float64]{Name: "div", Arity: arity, Call: func(in []float64) float64 {
			acc := in[0]
			for _, v := range in[1:] {
				acc /= v
			}
			return acc
		}}
	},
	"pdiv": func(arity int) Kernel[float64] {
		return Kernel[float64]{Name: "pdiv", Arity: arity, Call: func(in []float64) float64 {
			acc := in[0]
			for _, v := range in[1:] {
				if v == 0 {
					// Protected division degrades to identity on a
					// zero divisor.
					continue
				}
				acc /= v
			}
			return acc
		}}
	},
	"sin": func(arity int) Kernel[float64] {
		return Kernel[float64]{Name: "sin", Arity: arity, Call: func(in []float64) float64 {
			return math.Sin(in[0])
		}}
	},
	"cos": func(arity int) Kernel[float64] {
		return Kernel[float64]{Name: "cos", Arity: arity, Call: func(in []float64) float64 {
			return math.Cos(in[0])
		}}
	},
	"exp": func(arity int) Kernel[float64] {
		return Kernel[float64]{Name: "exp", Arity: arity, Call: func(in []float64) float64 {
			return math.Exp(in[0])
		}}
	},
	"log": func(arity int) Kernel[float64] {
		return Kernel[float64]{Name: "log", Arity: arity, Call: func(in []float64) float64 {
			return math.Log(in[0])
		}}
	},
}

// Float64Names lists every operation Float64Set understands.
func Float64Names() []string {
	return registryNames(float64Registry)
}
