// Package gas implements natural gas property correlations: pseudocritical
// properties, compressibility factor, formation volume factor,
// compressibility, viscosity and density.
//
// Pressures are psia and temperatures °R throughout.
package gas

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// Pseudocritical is the effective critical point of a gas mixture.
type Pseudocritical struct {
	Ppc float64 `json:"ppc"` // psia
	Tpc float64 `json:"tpc"` // °R
}

// Validate checks that both critical values are physical.
func (pc Pseudocritical) Validate() error {
	return pvt.FirstError(
		pvt.Pressure("pseudocritical pressure", pc.Ppc),
		pvt.Temperature("pseudocritical temperature", pc.Tpc),
	)
}

// Reduced returns the pseudo-reduced pressure and temperature at (p, t).
func (pc Pseudocritical) Reduced(p, t float64) (ppr, tpr float64) {
	return p / pc.Ppc, t / pc.Tpc
}

// Impurities are the non-hydrocarbon mole fractions of a gas.
type Impurities struct {
	N2  float64 `json:"n2,omitempty"`
	CO2 float64 `json:"co2,omitempty"`
	H2S float64 `json:"h2s,omitempty"`
}

// Validate checks each fraction and their total.
func (y Impurities) Validate() error {
	if err := pvt.FirstError(
		pvt.Fraction("yN2", y.N2),
		pvt.Fraction("yCO2", y.CO2),
		pvt.Fraction("yH2S", y.H2S),
	); err != nil {
		return err
	}
	if y.total() >= 1 {
		return &pvt.DomainError{Param: "impurity total", Value: y.total(), Reason: "no hydrocarbon fraction left"}
	}
	return nil
}

func (y Impurities) total() float64 {
	return y.N2 + y.CO2 + y.H2S
}

// mix blends the hydrocarbon pseudocritical point with the critical points
// of N2 (493 psia, 227 °R), CO2 (1071, 548) and H2S (1306, 672).
func (y Impurities) mix(hc Pseudocritical) Pseudocritical {
	fhc := 1 - y.total()
	return Pseudocritical{
		Ppc: fhc*hc.Ppc + 493*y.N2 + 1071*y.CO2 + 1306*y.H2S,
		Tpc: fhc*hc.Tpc + 227*y.N2 + 548*y.CO2 + 672*y.H2S,
	}
}

// PseudocriticalSutton correlates the pseudocritical point with gas gravity
// (Sutton, 1985), then mixes in any impurities.
func PseudocriticalSutton(gamma float64, y Impurities) Pseudocritical {
	hc := Pseudocritical{
		Ppc: 756.8 - 131*gamma - 3.6*gamma*gamma,
		Tpc: 169.2 + 349.5*gamma - 74*gamma*gamma,
	}
	return y.mix(hc)
}

// PseudocriticalBrownKatz is the Brown-Katz-Oberfell-Alden gravity
// correlation in Standing's form. The hydrocarbon gravity is recovered from
// the total gravity before the impurities are mixed back in.
func PseudocriticalBrownKatz(gamma float64, y Impurities, condensate bool) Pseudocritical {
	ghc := (gamma - 0.967*y.N2 - 1.52*y.CO2 - 1.18*y.H2S) / (1 - y.total())

	var hc Pseudocritical
	if condensate {
		hc = Pseudocritical{
			Ppc: 706 - 51.7*ghc - 11.1*ghc*ghc,
			Tpc: 187 + 330*ghc - 71.5*ghc*ghc,
		}
	} else {
		hc = Pseudocritical{
			Ppc: 677 + 15*ghc - 37.5*ghc*ghc,
			Tpc: 168 + 325*ghc - 12.5*ghc*ghc,
		}
	}
	return y.mix(hc)
}

// PseudocriticalKay applies Kay's mole-fraction mixing rule to a gas
// analysis.
func PseudocriticalKay(c Composition) (Pseudocritical, error) {
	if err := c.Validate(); err != nil {
		return Pseudocritical{}, err
	}
	var pc Pseudocritical
	c.each(func(y float64, crit Critical) {
		pc.Ppc += y * crit.Pc
		pc.Tpc += y * crit.Tc
	})
	return pc, nil
}

// PseudocriticalSBV applies the Stewart-Burkhardt-Voo mixing rule:
//
//	J = 1/3 Σ y Tc/Pc + 2/3 (Σ y √(Tc/Pc))²
//	K = Σ y Tc/√Pc
//	Tpc = K²/J, Ppc = Tpc/J
func PseudocriticalSBV(c Composition) (Pseudocritical, error) {
	if err := c.Validate(); err != nil {
		return Pseudocritical{}, err
	}
	var s1, s2, k float64
	c.each(func(y float64, crit Critical) {
		s1 += y * crit.Tc / crit.Pc
		s2 += y * math.Sqrt(crit.Tc/crit.Pc)
		k += y * crit.Tc / math.Sqrt(crit.Pc)
	})
	j := s1/3 + 2*s2*s2/3
	tpc := k * k / j
	return Pseudocritical{Ppc: tpc / j, Tpc: tpc}, nil
}

// WichertAziz corrects a pseudocritical point for sour gas (CO2 and H2S).
// It only moves the critical point, so it composes with every Z-factor
// correlation.
func WichertAziz(pc Pseudocritical, yCO2, yH2S float64) Pseudocritical {
	a := yCO2 + yH2S
	eps := 120*(math.Pow(a, 0.9)-math.Pow(a, 1.6)) + 15*(math.Sqrt(yH2S)-math.Pow(yH2S, 4))
	tpc := pc.Tpc - eps
	return Pseudocritical{
		Ppc: pc.Ppc * tpc / (pc.Tpc + yH2S*(1-yH2S)*eps),
		Tpc: tpc,
	}
}

// Pseudocritical correlation variants.
const (
	Sutton              pvt.Variant = "Sutton"
	BrownKatz           pvt.Variant = "Brown-Katz"
	Kay                 pvt.Variant = "Kay"
	StewartBurkhardtVoo pvt.Variant = "Stewart-Burkhardt-Voo"
)

// PseudocriticalInput carries what any pseudocritical method may need:
// gravity methods read Gravity, Impurities and Condensate; mixing rules read
// Composition.
type PseudocriticalInput struct {
	Gravity     float64      `json:"gravity,omitempty"`
	Impurities  Impurities   `json:"impurities"`
	Condensate  bool         `json:"condensate,omitempty"`
	Composition *Composition `json:"composition,omitempty"`
}

func gravityOf(in PseudocriticalInput) float64 { return in.Gravity }

var gravityRange = []pvt.Limit[PseudocriticalInput]{
	pvt.Within("gas gravity", 0.55, 1.5, gravityOf),
}

var pcCatalog = pvt.NewRegistry[PseudocriticalInput, Pseudocritical]("gas pseudocritical properties", nil).
	Register(pvt.Formula[PseudocriticalInput, Pseudocritical]{
		Variant:   Sutton,
		Reference: "Sutton (1985)",
		Limits:    gravityRange,
		Func: func(in PseudocriticalInput) (Pseudocritical, error) {
			if err := validGravity(in); err != nil {
				return Pseudocritical{}, err
			}
			return PseudocriticalSutton(in.Gravity, in.Impurities), nil
		},
	}).
	Register(pvt.Formula[PseudocriticalInput, Pseudocritical]{
		Variant:   BrownKatz,
		Reference: "Brown, Katz, Oberfell and Alden (1948); Standing (1977)",
		Limits:    gravityRange,
		Func: func(in PseudocriticalInput) (Pseudocritical, error) {
			if err := validGravity(in); err != nil {
				return Pseudocritical{}, err
			}
			return PseudocriticalBrownKatz(in.Gravity, in.Impurities, in.Condensate), nil
		},
	}).
	Register(pvt.Formula[PseudocriticalInput, Pseudocritical]{
		Variant:   Kay,
		Reference: "Kay (1936)",
		Func: func(in PseudocriticalInput) (Pseudocritical, error) {
			if in.Composition == nil {
				return Pseudocritical{}, fmt.Errorf("kay mixing rule needs a composition: %w", pvt.ErrDomain)
			}
			return PseudocriticalKay(*in.Composition)
		},
	}).
	Register(pvt.Formula[PseudocriticalInput, Pseudocritical]{
		Variant:   StewartBurkhardtVoo,
		Reference: "Stewart, Burkhardt and Voo (1959)",
		Func: func(in PseudocriticalInput) (Pseudocritical, error) {
			if in.Composition == nil {
				return Pseudocritical{}, fmt.Errorf("stewart-burkhardt-voo mixing rule needs a composition: %w", pvt.ErrDomain)
			}
			return PseudocriticalSBV(*in.Composition)
		},
	})

func validGravity(in PseudocriticalInput) error {
	return pvt.FirstError(pvt.Positive("gas gravity", in.Gravity), in.Impurities.Validate())
}

// PseudocriticalCatalog returns the registry of pseudocritical methods.
func PseudocriticalCatalog() *pvt.Registry[PseudocriticalInput, Pseudocritical] { return pcCatalog }

// PseudocriticalMethods lists the registered pseudocritical variants.
func PseudocriticalMethods() []pvt.Variant { return pcCatalog.Variants() }

// PseudocriticalFor evaluates the pseudocritical method v.
func PseudocriticalFor(v pvt.Variant, in PseudocriticalInput, p pvt.Policy) (Pseudocritical, error) {
	return pcCatalog.Compute(v, in, p)
}
