package pvt

import (
	"fmt"
	"math"
	"strings"
)

// RangeMode selects what happens when an input lies outside the range a
// correlation was fitted on.
type RangeMode int

const (
	// Extrapolate computes without reporting.
	Extrapolate RangeMode = iota
	// Warn computes and reports each violated limit to Policy.Notify.
	Warn
	// Reject returns a RangeError and computes nothing.
	Reject
)

func (m RangeMode) String() string {
	switch m {
	case Extrapolate:
		return "extrapolate"
	case Warn:
		return "warn"
	case Reject:
		return "reject"
	}
	return fmt.Sprintf("RangeMode(%d)", int(m))
}

// ParseRangeMode accepts the names printed by String.
func ParseRangeMode(s string) (RangeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "extrapolate", "ignore", "":
		return Extrapolate, nil
	case "warn":
		return Warn, nil
	case "reject", "strict", "error":
		return Reject, nil
	}
	return Extrapolate, fmt.Errorf("unknown range policy %q (want extrapolate, warn or reject)", s)
}

// Warning describes one input outside a validated range.
type Warning struct {
	Property string
	Variant  Variant
	Param    string
	Value    float64
	Min, Max float64
}

func (w Warning) String() string {
	return fmt.Sprintf("%s/%s: %s = %g outside validated range [%g, %g]",
		w.Property, w.Variant, w.Param, w.Value, w.Min, w.Max)
}

// Policy carries the per-call range handling. The zero value extrapolates
// silently.
type Policy struct {
	Range  RangeMode
	Notify func(Warning)
}

// Limit is the validated range of one input of a correlation. Of extracts the
// checked value from the correlation input. Either bound may be infinite.
type Limit[I any] struct {
	Param    string
	Min, Max float64
	Of       func(I) float64
}

// Within builds a Limit over [lo, hi].
func Within[I any](param string, lo, hi float64, of func(I) float64) Limit[I] {
	return Limit[I]{Param: param, Min: lo, Max: hi, Of: of}
}

// AtMost builds a Limit with no lower bound.
func AtMost[I any](param string, hi float64, of func(I) float64) Limit[I] {
	return Limit[I]{Param: param, Min: math.Inf(-1), Max: hi, Of: of}
}

func (l Limit[I]) contains(v float64) bool {
	return v >= l.Min && v <= l.Max
}

// Check applies the policy to every limit. It returns a RangeError only under
// Reject.
func Check[I any](p Policy, property string, v Variant, limits []Limit[I], in I) error {
	if p.Range == Extrapolate {
		return nil
	}
	for _, l := range limits {
		val := l.Of(in)
		if l.contains(val) {
			continue
		}
		w := Warning{Property: property, Variant: v, Param: l.Param, Value: val, Min: l.Min, Max: l.Max}
		if p.Range == Reject {
			return &RangeError{Warning: w}
		}
		if p.Notify != nil {
			p.Notify(w)
		}
	}
	return nil
}
