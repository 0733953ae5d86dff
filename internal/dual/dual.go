// Package dual implements a first-order multivariate Taylor value: a scalar
// plus its gradient with respect to a fixed set of independent variables.
// Evaluating an expression over dual.Number yields both the value and the
// exact partial derivatives of every output.
package dual

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Number carries a value and its gradient. All numbers flowing through one
// evaluation must share the same gradient dimension.
type Number struct {
	Val  float64
	Grad []float64
}

// Variable builds the idx-th of dim independent variables at the given point:
// its gradient is the idx-th unit vector.
func Variable(val float64, idx, dim int) Number {
	if idx < 0 || idx >= dim {
		panic(fmt.Sprintf("dual: variable index %d out of range [0, %d)", idx, dim))
	}
	grad := make([]float64, dim)
	grad[idx] = 1
	return Number{Val: val, Grad: grad}
}

// Constant builds a number with zero gradient.
func Constant(val float64, dim int) Number {
	return Number{Val: val, Grad: make([]float64, dim)}
}

func (a Number) clone() Number {
	grad := make([]float64, len(a.Grad))
	copy(grad, a.Grad)
	return Number{Val: a.Val, Grad: grad}
}

// Add returns a + b.
func (a Number) Add(b Number) Number {
	out := a.clone()
	out.Val += b.Val
	floats.Add(out.Grad, b.Grad)
	return out
}

// Sub returns a - b.
func (a Number) Sub(b Number) Number {
	out := a.clone()
	out.Val -= b.Val
	floats.Sub(out.Grad, b.Grad)
	return out
}

// Mul returns a * b with the product rule applied to the gradients.
func (a Number) Mul(b Number) Number {
	out := a.clone()
	out.Val = a.Val * b.Val
	floats.Scale(b.Val, out.Grad)
	floats.AddScaled(out.Grad, a.Val, b.Grad)
	return out
}

// Div returns a / b with the quotient rule applied to the gradients.
func (a Number) Div(b Number) Number {
	out := a.clone()
	out.Val = a.Val / b.Val
	floats.Scale(1/b.Val, out.Grad)
	floats.AddScaled(out.Grad, -a.Val/(b.Val*b.Val), b.Grad)
	return out
}

// Sin returns sin(a).
func (a Number) Sin() Number {
	return a.chain(math.Sin(a.Val), math.Cos(a.Val))
}

// Cos returns cos(a).
func (a Number) Cos() Number {
	return a.chain(math.Cos(a.Val), -math.Sin(a.Val))
}

// Exp returns e**a.
func (a Number) Exp() Number {
	e := math.Exp(a.Val)
	return a.chain(e, e)
}

// Log returns the natural logarithm of a.
func (a Number) Log() Number {
	return a.chain(math.Log(a.Val), 1/a.Val)
}

// chain applies the univariate chain rule: f(a) has gradient f'(a) * grad(a).
func (a Number) chain(val, deriv float64) Number {
	out := a.clone()
	out.Val = val
	floats.Scale(deriv, out.Grad)
	return out
}
