package gas

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// Component identifies a constituent of a gas mixture.
type Component string

const (
	Methane         Component = "C1"
	Ethane          Component = "C2"
	Propane         Component = "C3"
	IsoButane       Component = "iC4"
	NormalButane    Component = "nC4"
	IsoPentane      Component = "iC5"
	NormalPentane   Component = "nC5"
	Hexane          Component = "nC6"
	Heptane         Component = "nC7"
	Octane          Component = "nC8"
	Nonane          Component = "nC9"
	Decane          Component = "nC10"
	Air             Component = "N2+O2"
	Nitrogen        Component = "N2"
	Oxygen          Component = "O2"
	CarbonDioxide   Component = "CO2"
	HydrogenSulfide Component = "H2S"
	Helium          Component = "He"
	HeptanesPlus    Component = "C7+"
)

// Critical holds the critical constants and molecular weight of a pure
// component.
type Critical struct {
	Pc float64 // psia
	Tc float64 // °R
	M  float64 // lb/lb-mol
}

// Components lists the table components in their canonical order. Mixing
// rules sum in this order so results do not depend on map iteration.
var Components = []Component{
	Methane, Ethane, Propane, IsoButane, NormalButane, IsoPentane, NormalPentane,
	Hexane, Heptane, Octane, Nonane, Decane,
	Air, Nitrogen, Oxygen, CarbonDioxide, HydrogenSulfide, Helium, HeptanesPlus,
}

var criticals = map[Component]Critical{
	Methane:         {Pc: 667.8, Tc: 343.37, M: 16.043},
	Ethane:          {Pc: 707.8, Tc: 550.09, M: 30.070},
	Propane:         {Pc: 616.3, Tc: 666.01, M: 44.097},
	IsoButane:       {Pc: 529.1, Tc: 734.98, M: 58.124},
	NormalButane:    {Pc: 550.7, Tc: 765.55, M: 58.124},
	IsoPentane:      {Pc: 490.4, Tc: 829.10, M: 72.151},
	NormalPentane:   {Pc: 488.6, Tc: 845.70, M: 72.151},
	Hexane:          {Pc: 436.9, Tc: 913.70, M: 86.178},
	Heptane:         {Pc: 396.9, Tc: 972.80, M: 100.205},
	Octane:          {Pc: 360.6, Tc: 1024.22, M: 114.232},
	Nonane:          {Pc: 332.0, Tc: 1070.68, M: 128.259},
	Decane:          {Pc: 304.0, Tc: 1112.10, M: 142.286},
	Air:             {Pc: 546.9, Tc: 238.69, M: 28.963},
	Nitrogen:        {Pc: 493.0, Tc: 227.60, M: 28.013},
	Oxygen:          {Pc: 731.4, Tc: 278.57, M: 31.999},
	CarbonDioxide:   {Pc: 1071.0, Tc: 547.90, M: 44.010},
	HydrogenSulfide: {Pc: 1306.0, Tc: 672.70, M: 34.076},
	Helium:          {Pc: 32.99, Tc: 9.69, M: 4.003},
}

// CriticalOf returns the tabulated constants of a pure component. The
// heptanes-plus fraction has no table entry; see Composition.
func CriticalOf(c Component) (Critical, bool) {
	crit, ok := criticals[c]
	return crit, ok
}

// Composition is a gas analysis in mole fractions. When the C7+ fraction is
// present its critical constants come from Mathews-Roland using
// PlusMolecularWeight and PlusGravity.
type Composition struct {
	Fractions           map[Component]float64 `json:"fractions"`
	PlusMolecularWeight float64               `json:"plus_molecular_weight,omitempty"`
	PlusGravity         float64               `json:"plus_gravity,omitempty"`
}

// compositionTolerance allows for analyses reported to four decimals.
const compositionTolerance = 1e-3

// Validate checks the analysis for unknown components and impossible
// fractions.
func (c Composition) Validate() error {
	if len(c.Fractions) == 0 {
		return &pvt.DomainError{Param: "composition", Reason: "no components given"}
	}
	sum := 0.0
	for comp, y := range c.Fractions {
		if _, ok := criticals[comp]; !ok && comp != HeptanesPlus {
			return fmt.Errorf("unknown gas component %q", comp)
		}
		if err := pvt.Fraction("y"+string(comp), y); err != nil {
			return err
		}
		sum += y
	}
	if sum <= 0 || sum > 1+compositionTolerance {
		return &pvt.DomainError{Param: "composition total", Value: sum, Reason: "mole fractions must sum to 1"}
	}
	if c.Fractions[HeptanesPlus] > 0 {
		if _, err := MathewsRoland(c.PlusMolecularWeight, c.PlusGravity); err != nil {
			return err
		}
	}
	return nil
}

// critical returns the constants of one component of this analysis.
func (c Composition) critical(comp Component) Critical {
	if comp == HeptanesPlus {
		pc, _ := MathewsRoland(c.PlusMolecularWeight, c.PlusGravity)
		return Critical{Pc: pc.Ppc, Tc: pc.Tpc, M: c.PlusMolecularWeight}
	}
	return criticals[comp]
}

// each calls fn for every present component in canonical order.
func (c Composition) each(fn func(y float64, crit Critical)) {
	for _, comp := range Components {
		y, ok := c.Fractions[comp]
		if !ok || y == 0 {
			continue
		}
		fn(y, c.critical(comp))
	}
}

// MolecularWeight is the mole-fraction weighted molecular weight,
// lb/lb-mol.
func (c Composition) MolecularWeight() (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	m := 0.0
	c.each(func(y float64, crit Critical) { m += y * crit.M })
	return m, nil
}

// SpecificGravity is the gas gravity relative to air, M/28.96.
func (c Composition) SpecificGravity() (float64, error) {
	m, err := c.MolecularWeight()
	if err != nil {
		return 0, err
	}
	return m / pvt.AirMolecularWeight, nil
}

// Impurities returns the non-hydrocarbon fractions of the analysis.
func (c Composition) Impurities() Impurities {
	return Impurities{
		N2:  c.Fractions[Nitrogen],
		CO2: c.Fractions[CarbonDioxide],
		H2S: c.Fractions[HydrogenSulfide],
	}
}

// MathewsRoland estimates the critical constants of a heptanes-plus
// fraction from its molecular weight and specific gravity.
func MathewsRoland(m, gamma float64) (Pseudocritical, error) {
	if !(m > 71.2) {
		return Pseudocritical{}, &pvt.DomainError{Param: "C7+ molecular weight", Value: m, Reason: "must exceed 71.2"}
	}
	if err := pvt.Positive("C7+ specific gravity", gamma); err != nil {
		return Pseudocritical{}, err
	}
	ppc := 1188 - 431*math.Log10(m-61.1) + (2319-852*math.Log10(m-53.71))*(gamma-0.8)
	tpc := 608 + 364*math.Log10(m-71.2) + (2450*math.Log10(m)-3800)*math.Log10(gamma)
	return Pseudocritical{Ppc: ppc, Tpc: tpc}, nil
}
