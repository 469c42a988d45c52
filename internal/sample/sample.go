package sample

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexiusacademia/gopvt/pkg/gas"
	"github.com/alexiusacademia/gopvt/pkg/oil"
	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// Sample describes a reservoir fluid loaded from a JSON file. Any of the
// three phases may be omitted.
type Sample struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Temperature float64 `json:"temperature"` // reservoir temperature, °R

	Gas   *Gas   `json:"gas,omitempty"`
	Oil   *Oil   `json:"oil,omitempty"`
	Water *Water `json:"water,omitempty"`
}

// Gas is a gas described by gravity or by composition.
type Gas struct {
	gas.PseudocriticalInput
	// Method selects the pseudocritical correlation. Empty means Sutton for
	// a gravity and Stewart-Burkhardt-Voo for a composition.
	Method      pvt.Variant `json:"method,omitempty"`
	WichertAziz bool        `json:"wichert_aziz,omitempty"`
	Omega       float64     `json:"omega,omitempty"` // acentric factor for Lee-Kesler
}

// Oil is a black oil at its bubble point.
type Oil struct {
	API        float64        `json:"api"`
	GammaGas   float64        `json:"gamma_gas"`
	Rsb        float64        `json:"rsb"`            // scf/STB
	Pb         float64        `json:"pb,omitempty"` // measured bubble point, psia
	Separator  oil.Separator  `json:"separator"`
	Impurities oil.Impurities `json:"impurities"`
}

// Water is a formation brine.
type Water struct {
	Salinity float64 `json:"salinity"` // ppm
}

// LoadFromFile reads, decodes and validates a sample.
func LoadFromFile(path string) (*Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Sample
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("sample %s: %w", path, err)
	}

	return &s, nil
}

// Validate checks that the sample describes at least one usable phase.
func (s *Sample) Validate() error {
	if err := pvt.Temperature("temperature", s.Temperature); err != nil {
		return err
	}
	if s.Gas == nil && s.Oil == nil && s.Water == nil {
		return &ValidationError{"sample must describe at least one of gas, oil or water"}
	}
	if s.Gas != nil {
		if err := s.Gas.Validate(); err != nil {
			return fmt.Errorf("gas: %w", err)
		}
	}
	if s.Oil != nil {
		if err := s.Oil.Validate(); err != nil {
			return fmt.Errorf("oil: %w", err)
		}
	}
	if s.Water != nil {
		if err := pvt.NonNegative("salinity", s.Water.Salinity); err != nil {
			return fmt.Errorf("water: %w", err)
		}
	}
	return nil
}

// Validate checks that exactly one of gravity and composition is given.
func (g *Gas) Validate() error {
	hasGravity := g.Gravity > 0
	hasComposition := g.Composition != nil
	switch {
	case hasGravity == hasComposition:
		return &ValidationError{"give either a gravity or a composition"}
	case hasComposition:
		return g.Composition.Validate()
	}
	return g.Impurities.Validate()
}

// method resolves the default pseudocritical method.
func (g *Gas) method() pvt.Variant {
	if g.Method != "" {
		return g.Method
	}
	if g.Composition != nil {
		return gas.StewartBurkhardtVoo
	}
	return gas.Sutton
}

// Pseudocritical evaluates the configured method and, when requested, the
// Wichert-Aziz sour-gas correction.
func (g *Gas) Pseudocritical(p pvt.Policy) (gas.Pseudocritical, error) {
	pc, err := gas.PseudocriticalFor(g.method(), g.PseudocriticalInput, p)
	if err != nil {
		return pc, err
	}
	if !g.WichertAziz {
		return pc, nil
	}
	y := g.Impurities
	if g.Composition != nil {
		y = g.Composition.Impurities()
	}
	return gas.WichertAziz(pc, y.CO2, y.H2S), nil
}

// SpecificGravity returns the given gravity or the one of the composition.
func (g *Gas) SpecificGravity() (float64, error) {
	if g.Composition != nil {
		return g.Composition.SpecificGravity()
	}
	return g.Gravity, nil
}

// Validate checks the oil description.
func (o *Oil) Validate() error {
	return pvt.FirstError(
		pvt.Positive("API gravity", o.API),
		pvt.Positive("gas gravity", o.GammaGas),
		pvt.Positive("Rsb", o.Rsb),
		pvt.NonNegative("bubble-point pressure", o.Pb),
		o.Separator.Validate(),
		o.Impurities.Validate(),
	)
}

// PbInput returns the bubble-point input at temperature t.
func (o *Oil) PbInput(t float64) oil.PbInput {
	return oil.PbInput{
		Rsb:        o.Rsb,
		GammaGas:   o.GammaGas,
		T:          t,
		API:        o.API,
		Separator:  o.Separator,
		Impurities: o.Impurities,
	}
}

// BubblePoint returns the measured Pb when given, otherwise the correlated
// one.
func (o *Oil) BubblePoint(v pvt.Variant, t float64, p pvt.Policy) (float64, error) {
	if o.Pb > 0 {
		return o.Pb, nil
	}
	return oil.BubblePoint(v, o.PbInput(t), p)
}

// ValidationError reports an inconsistent sample file.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
