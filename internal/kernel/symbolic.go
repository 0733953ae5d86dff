package kernel

import "strings"

// SymbolicSet builds a kernel set over strings: each call renders the infix
// form of the operation applied to its (already rendered) arguments. Feeding
// variable names through the evaluator then yields the expression's symbolic
// form.
func SymbolicSet(arity int, names ...string) ([]Kernel[string], error) {
	return buildSet(symbolicRegistry, arity, names)
}

func infix(op string) builder[string] {
	return func(arity int) Kernel[string] {
		return Kernel[string]{Name: opName(op), Arity: arity, Call: func(in []string) string {
			return "(" + strings.Join(in, op) + ")"
		}}
	}
}

func prefix(name string) builder[string] {
	return func(arity int) Kernel[string] {
		return Kernel[string]{Name: name, Arity: arity, Call: func(in []string) string {
			return name + "(" + in[0] + ")"
		}}
	}
}

func opName(op string) string {
	switch op {
	case "+":
		return "sum"
	case "-":
		return "diff"
	case "*":
		return "mul"
	default:
		return "div"
	}
}

var symbolicRegistry = map[string]builder[string]{
	"sum":  infix("+"),
	"diff": infix("-"),
	"mul":  infix("*"),
	"div":  infix("/"),
	"pdiv": func(arity int) Kernel[string] {
		return Kernel[string]{Name: "pdiv", Arity: arity, Call: func(in []string) string {
			return "(" + strings.Join(in, "/") + ")"
		}}
	},
	"sin": prefix("sin"),
	"cos": prefix("cos"),
	"exp": prefix("exp"),
	"log": prefix("log"),
}
