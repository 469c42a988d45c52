// Package numeric holds the root-finding kernel shared by the implicit
// correlations (equations of state that have no closed form).
package numeric

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// Default kernel settings.
const (
	DefaultTolerance     = 1e-8
	DefaultMaxIterations = 100
)

// Settings configures a single solve. There is no package-level state; every
// caller passes the settings it wants.
type Settings struct {
	Tolerance     float64 // absolute residual tolerance
	MaxIterations int     // iteration budget
}

// DefaultSettings returns the documented kernel defaults.
func DefaultSettings() Settings {
	return Settings{Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations}
}

// Validate checks that the settings describe a usable iteration budget.
func (s Settings) Validate() error {
	if !(s.Tolerance > 0) || math.IsInf(s.Tolerance, 0) {
		return fmt.Errorf("invalid tolerance %g: must be positive and finite", s.Tolerance)
	}
	if s.MaxIterations < 1 {
		return fmt.Errorf("invalid iteration cap %d: must be at least 1", s.MaxIterations)
	}
	return nil
}

// orDefault fills zero fields so a zero Settings value behaves like the
// defaults.
func (s Settings) orDefault() Settings {
	if s.Tolerance == 0 {
		s.Tolerance = DefaultTolerance
	}
	if s.MaxIterations == 0 {
		s.MaxIterations = DefaultMaxIterations
	}
	return s
}

// Result is the diagnostic of a solve.
type Result struct {
	Root       float64 // converged value, or last estimate on failure
	Iterations int     // function evaluations used
	Residual   float64 // residual at Root
}

// Func returns the residual and its derivative at x.
type Func func(x float64) (f, df float64)

// Bounds restricts the iterate of NewtonBounded to the open interval (Lo, Hi).
type Bounds struct {
	Lo, Hi float64
}

// Unbounded places no restriction on the iterate.
var Unbounded = Bounds{Lo: math.Inf(-1), Hi: math.Inf(1)}

// Newton solves f(x) = 0 by Newton-Raphson from x0.
func Newton(f Func, x0 float64, s Settings) (Result, error) {
	return newton("newton", f, x0, Unbounded, s)
}

// NewtonBounded is Newton with a bisection safeguard: a step that would leave
// (b.Lo, b.Hi) is replaced by the midpoint between the current iterate and the
// violated bound.
func NewtonBounded(f Func, x0 float64, b Bounds, s Settings) (Result, error) {
	return newton("newton", f, x0, b, s)
}

// NewtonFD solves g(x) = 0 using a central finite-difference derivative.
func NewtonFD(g func(float64) float64, x0 float64, b Bounds, s Settings) (Result, error) {
	settings := &fd.Settings{Formula: fd.Central}
	f := func(x float64) (float64, float64) {
		return g(x), fd.Derivative(g, x, settings)
	}
	return newton("newton-fd", f, x0, b, s)
}

func newton(method string, f Func, x0 float64, b Bounds, s Settings) (Result, error) {
	s = s.orDefault()
	if err := s.Validate(); err != nil {
		return Result{Root: x0}, err
	}

	x := x0
	var fx float64
	for iter := 1; iter <= s.MaxIterations; iter++ {
		var dfx float64
		fx, dfx = f(x)
		if math.IsNaN(fx) || math.IsInf(fx, 0) {
			return Result{Root: x, Iterations: iter, Residual: fx},
				&ConvergenceError{Method: method, Iterations: iter, Last: x, Residual: fx, Reason: "residual is not finite"}
		}
		if math.Abs(fx) < s.Tolerance {
			return Result{Root: x, Iterations: iter, Residual: fx}, nil
		}
		if dfx == 0 || math.IsNaN(dfx) || math.IsInf(dfx, 0) {
			return Result{Root: x, Iterations: iter, Residual: fx},
				&ConvergenceError{Method: method, Iterations: iter, Last: x, Residual: fx, Reason: "derivative vanished"}
		}

		next := x - fx/dfx
		switch {
		case next <= b.Lo:
			next = (x + b.Lo) / 2
		case next >= b.Hi:
			next = (x + b.Hi) / 2
		}
		x = next
	}

	fx, _ = f(x)
	return Result{Root: x, Iterations: s.MaxIterations, Residual: fx},
		&ConvergenceError{Method: method, Iterations: s.MaxIterations, Last: x, Residual: fx, Reason: "iteration budget exhausted"}
}

// FixedPoint iterates x = g(x) from x0 until successive iterates differ by
// less than the tolerance.
func FixedPoint(g func(float64) float64, x0 float64, s Settings) (Result, error) {
	s = s.orDefault()
	if err := s.Validate(); err != nil {
		return Result{Root: x0}, err
	}

	x := x0
	for iter := 1; iter <= s.MaxIterations; iter++ {
		next := g(x)
		step := next - x
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return Result{Root: x, Iterations: iter, Residual: step},
				&ConvergenceError{Method: "fixed-point", Iterations: iter, Last: x, Residual: step, Reason: "iterate is not finite"}
		}
		x = next
		if math.Abs(step) < s.Tolerance {
			return Result{Root: x, Iterations: iter, Residual: step}, nil
		}
	}

	step := g(x) - x
	return Result{Root: x, Iterations: s.MaxIterations, Residual: step},
		&ConvergenceError{Method: "fixed-point", Iterations: s.MaxIterations, Last: x, Residual: step, Reason: "iteration budget exhausted"}
}
