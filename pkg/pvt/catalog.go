package pvt

import (
	"fmt"
	"sort"
	"strings"
)

// Variant names a published correlation, usually by its authors.
type Variant string

// Key is the lookup form of a variant: lower case, with dashes, underscores
// and spaces removed, so "Dranchuk-Purvis-Robinson" and
// "dranchuk_purvis_robinson" select the same entry.
func (v Variant) Key() string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ', '.':
			return -1
		}
		return r
	}, strings.ToLower(string(v)))
}

// Formula is one registered formula of a property computing an O from an I.
type Formula[I, O any] struct {
	Variant   Variant
	Reference string
	Func      func(I) (O, error)
	Limits    []Limit[I]
}

// Correlation is a formula with a scalar result, the common case.
type Correlation[I any] = Formula[I, float64]

// Closed adapts a closed-form formula that cannot fail.
func Closed[I any](f func(I) float64) func(I) (float64, error) {
	return func(in I) (float64, error) { return f(in), nil }
}

// Registry maps variants of one property to independent pure functions. It
// is filled during package initialization and read-only afterwards, so it is
// safe for concurrent use.
type Registry[I, O any] struct {
	property string
	validate func(I) error
	entries  map[string]Formula[I, O]
	order    []Variant
}

// Catalog is a registry of scalar correlations.
type Catalog[I any] = Registry[I, float64]

// NewCatalog returns an empty catalog. validate, when non-nil, runs before
// every evaluation and should return a DomainError for meaningless inputs.
func NewCatalog[I any](property string, validate func(I) error) *Catalog[I] {
	return NewRegistry[I, float64](property, validate)
}

// NewRegistry is NewCatalog for formulas with a non-scalar result.
func NewRegistry[I, O any](property string, validate func(I) error) *Registry[I, O] {
	return &Registry[I, O]{
		property: property,
		validate: validate,
		entries:  make(map[string]Formula[I, O]),
	}
}

// Register adds a formula. Registering the same variant twice is a
// programming error and panics.
func (c *Registry[I, O]) Register(f Formula[I, O]) *Registry[I, O] {
	key := f.Variant.Key()
	if _, dup := c.entries[key]; dup {
		panic(fmt.Sprintf("pvt: %s correlation %q registered twice", c.property, f.Variant))
	}
	c.entries[key] = f
	c.order = append(c.order, f.Variant)
	return c
}

// Property returns the name of the computed property.
func (c *Registry[I, O]) Property() string { return c.property }

// Variants lists the registered variants in registration order.
func (c *Registry[I, O]) Variants() []Variant {
	out := make([]Variant, len(c.order))
	copy(out, c.order)
	return out
}

// Lookup returns the formula registered under v.
func (c *Registry[I, O]) Lookup(v Variant) (Formula[I, O], error) {
	f, ok := c.entries[v.Key()]
	if !ok {
		known := c.Variants()
		sort.Slice(known, func(i, j int) bool { return known[i] < known[j] })
		return Formula[I, O]{}, &UnsupportedVariantError{Property: c.property, Variant: v, Known: known}
	}
	return f, nil
}

// Compute validates the input, applies the range policy and evaluates the
// variant.
func (c *Registry[I, O]) Compute(v Variant, in I, p Policy) (O, error) {
	f, err := c.Lookup(v)
	if err != nil {
		var zero O
		return zero, err
	}
	return c.Evaluate(f, in, p)
}

// Evaluate is Compute for an already resolved formula.
func (c *Registry[I, O]) Evaluate(f Formula[I, O], in I, p Policy) (O, error) {
	var zero O
	if c.validate != nil {
		if err := c.validate(in); err != nil {
			return zero, fmt.Errorf("%s/%s: %w", c.property, f.Variant, err)
		}
	}
	if err := Check(p, c.property, f.Variant, f.Limits, in); err != nil {
		return zero, err
	}
	val, err := f.Func(in)
	if err != nil {
		return val, fmt.Errorf("%s/%s: %w", c.property, f.Variant, err)
	}
	return val, nil
}

// Lister is the read-only view of a catalog used for listings.
type Lister interface {
	Property() string
	Variants() []Variant
}
