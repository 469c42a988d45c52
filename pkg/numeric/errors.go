package numeric

import (
	"errors"
	"fmt"
)

// ErrConvergence is the sentinel behind every ConvergenceError.
var ErrConvergence = errors.New("iteration did not converge")

// ConvergenceError reports a solve that ran out of budget or broke down.
type ConvergenceError struct {
	Method     string
	Iterations int
	Last       float64
	Residual   float64
	Reason     string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: %s after %d iterations (last estimate %g, residual %g)",
		e.Method, e.Reason, e.Iterations, e.Last, e.Residual)
}

func (e *ConvergenceError) Unwrap() error {
	return ErrConvergence
}
