package oil

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// DeadInput is the state for dead-oil (gas-free) viscosity.
type DeadInput struct {
	T   float64 `json:"t"` // °R
	API float64 `json:"api"`
}

func (in DeadInput) Validate() error {
	if err := pvt.FirstError(pvt.Temperature("temperature", in.T), pvt.Positive("API gravity", in.API)); err != nil {
		return err
	}
	// Every dead-oil fit takes a power or logarithm of °F.
	return aboveZeroF(in.T)
}

func (in DeadInput) tf() float64 { return pvt.Fahrenheit(in.T) }

// MuDeadBeal is Beal's (1946) dead-oil viscosity, cp.
func MuDeadBeal(in DeadInput) float64 {
	a := math.Pow(10, 0.43+8.33/in.API)
	return (0.32 + 1.8e7/math.Pow(in.API, 4.53)) * math.Pow(360/(in.tf()+200), a)
}

// MuDeadBeggsRobinson is the Beggs-Robinson (1975) dead-oil viscosity.
func MuDeadBeggsRobinson(in DeadInput) float64 {
	x := math.Pow(10, 3.0324-0.02023*in.API) * math.Pow(in.tf(), -1.163)
	return math.Pow(10, x) - 1
}

// MuDeadGlaso is Glasø's dead-oil viscosity.
func MuDeadGlaso(in DeadInput) float64 {
	return 3.141e10 * math.Pow(in.tf(), -3.444) * math.Pow(math.Log10(in.API), 10.313*math.Log10(in.tf())-36.447)
}

// MuDeadEgbogah is the Egbogah-Ng (1990) dead-oil viscosity.
func MuDeadEgbogah(in DeadInput) float64 {
	a := 1.8653 - 0.025086*in.API - 0.5644*math.Log10(in.tf())
	return math.Pow(10, math.Pow(10, a)) - 1
}

// MuDeadKartoatmodjoSchmidt is the Kartoatmodjo-Schmidt dead-oil viscosity.
func MuDeadKartoatmodjoSchmidt(in DeadInput) float64 {
	return 16.0e8 * math.Pow(in.tf(), -2.8177) * math.Pow(math.Log10(in.API), 5.7526*math.Log10(in.tf())-26.9718)
}

// SaturatedInput is the state for gas-saturated oil viscosity.
type SaturatedInput struct {
	Rs     float64 `json:"rs"`      // scf/STB
	MuDead float64 `json:"mu_dead"` // cp
}

func (in SaturatedInput) Validate() error {
	return pvt.FirstError(pvt.NonNegative("Rs", in.Rs), pvt.Positive("dead-oil viscosity", in.MuDead))
}

// MuSaturatedChewConnally is the Chew-Connally (1959) live-oil viscosity.
func MuSaturatedChewConnally(in SaturatedInput) float64 {
	rs := in.Rs
	a := math.Pow(10, rs*(2.2e-7*rs-7.4e-4))
	b := 0.68/math.Pow(10, 8.62e-5*rs) + 0.25/math.Pow(10, 1.1e-3*rs) + 0.062/math.Pow(10, 3.74e-3*rs)
	return a * math.Pow(in.MuDead, b)
}

// MuSaturatedBeggsRobinson is the Beggs-Robinson live-oil viscosity.
func MuSaturatedBeggsRobinson(in SaturatedInput) float64 {
	a := 10.715 * math.Pow(in.Rs+100, -0.515)
	b := 5.44 * math.Pow(in.Rs+150, -0.338)
	return a * math.Pow(in.MuDead, b)
}

// MuSaturatedKartoatmodjoSchmidt is the Kartoatmodjo-Schmidt live-oil
// viscosity.
func MuSaturatedKartoatmodjoSchmidt(in SaturatedInput) float64 {
	b := math.Pow(10, -0.00081*in.Rs)
	a := (0.2001 + 0.8428*math.Pow(10, -0.000845*in.Rs)) * math.Pow(in.MuDead, 0.43+0.5165*b)
	return -0.06821 + 0.9824*a + 40.34e-5*a*a
}

// UndersaturatedInput is the state for oil viscosity above the bubble point.
type UndersaturatedInput struct {
	P     float64 `json:"p"`      // psia
	Pb    float64 `json:"pb"`     // psia
	MuSat float64 `json:"mu_sat"` // viscosity at Pb, cp
}

func (in UndersaturatedInput) Validate() error {
	return pvt.FirstError(
		pvt.Pressure("pressure", in.P),
		pvt.Pressure("bubble-point pressure", in.Pb),
		pvt.Positive("saturated viscosity", in.MuSat),
	)
}

// MuUndersaturatedBeal is Beal's undersaturated viscosity.
func MuUndersaturatedBeal(in UndersaturatedInput) float64 {
	mu := in.MuSat
	return (0.024*math.Pow(mu, 1.6)+0.038*math.Pow(mu, 0.56))*0.001*(in.P-in.Pb) + mu
}

// MuUndersaturatedVazquezBeggs is the Vazquez-Beggs undersaturated
// viscosity.
func MuUndersaturatedVazquezBeggs(in UndersaturatedInput) float64 {
	m := 2.6 * math.Pow(in.P, 1.187) * math.Exp(-11.513-8.98e-5*in.P)
	return in.MuSat * math.Pow(in.P/in.Pb, m)
}

// MuUndersaturatedKartoatmodjoSchmidt is the Kartoatmodjo-Schmidt
// undersaturated viscosity. Its published form carries a 0.081% offset at
// P = Pb.
func MuUndersaturatedKartoatmodjoSchmidt(in UndersaturatedInput) float64 {
	mu := in.MuSat
	return 1.00081*mu + 1.127e-3*(in.P-in.Pb)*(-65.17e-4*math.Pow(mu, 1.8148)+0.038*math.Pow(mu, 1.59))
}

func deadAPI(in DeadInput) float64 { return in.API }
func deadF(in DeadInput) float64 { return in.tf() }

var (
	deadCatalog           = pvt.NewCatalog[DeadInput]("dead oil viscosity", DeadInput.Validate)
	saturatedCatalog      = pvt.NewCatalog[SaturatedInput]("saturated oil viscosity", SaturatedInput.Validate)
	undersaturatedCatalog = pvt.NewCatalog[UndersaturatedInput]("undersaturated oil viscosity", UndersaturatedInput.Validate)
)

func init() {
	deadLimits := func(apiLo, apiHi, tLo, tHi float64) []pvt.Limit[DeadInput] {
		return []pvt.Limit[DeadInput]{
			pvt.Within("API", apiLo, apiHi, deadAPI),
			pvt.Within("T °F", tLo, tHi, deadF),
		}
	}
	deadCatalog.
		Register(pvt.Correlation[DeadInput]{Variant: Beal, Reference: "Beal (1946)", Func: pvt.Closed(MuDeadBeal), Limits: deadLimits(10.1, 52.5, 98, 250)}).
		Register(pvt.Correlation[DeadInput]{Variant: BeggsRobinson, Reference: "Beggs and Robinson (1975)", Func: pvt.Closed(MuDeadBeggsRobinson), Limits: deadLimits(16, 58, 70, 295)}).
		Register(pvt.Correlation[DeadInput]{Variant: Glaso, Reference: "Glasø (1980)", Func: pvt.Closed(MuDeadGlaso), Limits: deadLimits(20.1, 48.1, 50, 300)}).
		Register(pvt.Correlation[DeadInput]{Variant: Egbogah, Reference: "Egbogah and Ng (1990)", Func: pvt.Closed(MuDeadEgbogah), Limits: deadLimits(5, 58, 59, 176)}).
		Register(pvt.Correlation[DeadInput]{Variant: KartoatmodjoSchmidt, Reference: "Kartoatmodjo and Schmidt (1994)", Func: pvt.Closed(MuDeadKartoatmodjoSchmidt), Limits: deadLimits(14.4, 58.9, 80, 320)})

	saturatedCatalog.
		Register(pvt.Correlation[SaturatedInput]{Variant: ChewConnally, Reference: "Chew and Connally (1959)", Func: pvt.Closed(MuSaturatedChewConnally)}).
		Register(pvt.Correlation[SaturatedInput]{Variant: BeggsRobinson, Reference: "Beggs and Robinson (1975)", Func: pvt.Closed(MuSaturatedBeggsRobinson)}).
		Register(pvt.Correlation[SaturatedInput]{Variant: KartoatmodjoSchmidt, Reference: "Kartoatmodjo and Schmidt (1994)", Func: pvt.Closed(MuSaturatedKartoatmodjoSchmidt)})

	undersaturatedCatalog.
		Register(pvt.Correlation[UndersaturatedInput]{Variant: Beal, Reference: "Beal (1946)", Func: pvt.Closed(MuUndersaturatedBeal)}).
		Register(pvt.Correlation[UndersaturatedInput]{Variant: VazquezBeggs, Reference: "Vazquez and Beggs (1980)", Func: pvt.Closed(MuUndersaturatedVazquezBeggs)}).
		Register(pvt.Correlation[UndersaturatedInput]{Variant: KartoatmodjoSchmidt, Reference: "Kartoatmodjo and Schmidt (1994)", Func: pvt.Closed(MuUndersaturatedKartoatmodjoSchmidt)})
}

// DeadViscosityCatalog returns the dead-oil viscosity registry.
func DeadViscosityCatalog() *pvt.Catalog[DeadInput] { return deadCatalog }

// SaturatedViscosityCatalog returns the saturated-oil viscosity registry.
func SaturatedViscosityCatalog() *pvt.Catalog[SaturatedInput] { return saturatedCatalog }

// UndersaturatedViscosityCatalog returns the undersaturated-oil viscosity
// registry.
func UndersaturatedViscosityCatalog() *pvt.Catalog[UndersaturatedInput] {
	return undersaturatedCatalog
}

// ViscosityInput is the state for the full viscosity chain.
type ViscosityInput struct {
	P   float64 `json:"p"` // psia
	T   float64 `json:"t"` // °R
	API float64 `json:"api"`
	Rs  float64 `json:"rs"` // scf/STB at min(P, Pb)
	Pb  float64 `json:"pb"` // psia
}

// ViscosityChain selects one variant per tier. Published workflows mix
// authors across tiers, so each tier is chosen independently.
type ViscosityChain struct {
	Dead           pvt.Variant `json:"dead"`
	Saturated      pvt.Variant `json:"saturated"`
	Undersaturated pvt.Variant `json:"undersaturated"`
}

// DefaultViscosityChain uses Kartoatmodjo-Schmidt for every tier.
func DefaultViscosityChain() ViscosityChain {
	return ViscosityChain{Dead: KartoatmodjoSchmidt, Saturated: KartoatmodjoSchmidt, Undersaturated: KartoatmodjoSchmidt}
}

// ViscosityTiers holds every intermediate of a chain evaluation. Above is
// NaN when P ≤ Pb.
type ViscosityTiers struct {
	Dead, Saturated, Above float64
}

// Oil returns the viscosity at the requested pressure.
func (t ViscosityTiers) Oil() float64 {
	if math.IsNaN(t.Above) {
		return t.Saturated
	}
	return t.Above
}

// Tiers evaluates dead → saturated → undersaturated and returns every tier.
// The undersaturated tier runs only when P > Pb.
func (c ViscosityChain) Tiers(in ViscosityInput, p pvt.Policy) (ViscosityTiers, error) {
	tiers := ViscosityTiers{Dead: math.NaN(), Saturated: math.NaN(), Above: math.NaN()}
	if err := pvt.FirstError(pvt.Pressure("pressure", in.P), pvt.Pressure("bubble-point pressure", in.Pb)); err != nil {
		return tiers, fmt.Errorf("oil viscosity: %w", err)
	}

	dead, err := deadCatalog.Compute(c.Dead, DeadInput{T: in.T, API: in.API}, p)
	if err != nil {
		return tiers, err
	}
	tiers.Dead = dead

	sat, err := saturatedCatalog.Compute(c.Saturated, SaturatedInput{Rs: in.Rs, MuDead: dead}, p)
	if err != nil {
		return tiers, err
	}
	tiers.Saturated = sat
	if in.P <= in.Pb {
		return tiers, nil
	}

	above, err := undersaturatedCatalog.Compute(c.Undersaturated, UndersaturatedInput{P: in.P, Pb: in.Pb, MuSat: sat}, p)
	if err != nil {
		return tiers, err
	}
	tiers.Above = above
	return tiers, nil
}

// Compute returns the oil viscosity at P, cp.
func (c ViscosityChain) Compute(in ViscosityInput, p pvt.Policy) (float64, error) {
	t, err := c.Tiers(in, p)
	if err != nil {
		return 0, err
	}
	return t.Oil(), nil
}
