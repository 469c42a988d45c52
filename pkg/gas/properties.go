package gas

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"

	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// VolumeUnit selects reservoir volume units for Bg and Eg.
type VolumeUnit int

const (
	CubicFeet VolumeUnit = iota // ft³
	Barrels                     // bbl
)

func (u VolumeUnit) String() string {
	if u == Barrels {
		return "bbl"
	}
	return "ft³"
}

func validState(p, t, z float64) error {
	return pvt.FirstError(
		pvt.Pressure("pressure", p),
		pvt.Temperature("temperature", t),
		pvt.Positive("z-factor", z),
	)
}

// FormationVolumeFactor returns Bg in ft³/scf or bbl/scf.
func FormationVolumeFactor(z, p, t float64, u VolumeUnit) (float64, error) {
	if err := validState(p, t, z); err != nil {
		return 0, err
	}
	if u == Barrels {
		return 0.00503 * z * t / p, nil
	}
	return 0.02827 * z * t / p, nil
}

// ExpansionFactor returns Eg = 1/Bg in scf/ft³ or scf/bbl.
func ExpansionFactor(z, p, t float64, u VolumeUnit) (float64, error) {
	if err := validState(p, t, z); err != nil {
		return 0, err
	}
	if u == Barrels {
		return 198.8 * p / (z * t), nil
	}
	return 35.37 * p / (z * t), nil
}

// Density returns the gas density in lb/ft³ from the real-gas law.
func Density(p, t, z, gamma float64) (float64, error) {
	if err := pvt.FirstError(validState(p, t, z), pvt.Positive("gas gravity", gamma)); err != nil {
		return 0, err
	}
	return 2.70 * p * gamma / (z * t), nil
}

// MolecularWeight returns the apparent molecular weight of a gas of gravity
// gamma.
func MolecularWeight(gamma float64) float64 {
	return pvt.AirMolecularWeight * gamma
}

// ViscosityLGE is the Lee-Gonzalez-Eakin (1966) gas viscosity in cp. m is
// the gas molecular weight.
func ViscosityLGE(p, t, z, m float64) (float64, error) {
	if err := pvt.FirstError(validState(p, t, z), pvt.Positive("molecular weight", m)); err != nil {
		return 0, err
	}
	k := (9.4 + 0.02*m) * math.Pow(t, 1.5) / (209 + 19*m + t)
	x := 3.5 + 986/t + 0.01*m
	y := 2.4 - 0.2*x
	rho := 1.4935e-3 * p * m / (z * t) // g/cm³
	return 1e-4 * k * math.Exp(x*math.Pow(rho, y)), nil
}

// cgFromSlope turns dz/dPpr into the isothermal compressibility, 1/psi.
func cgFromSlope(ppr, ppc, z, dzdp float64) float64 {
	return (1/ppr - dzdp/z) / ppc
}

// CompressibilityPapay differentiates the Papay fit analytically.
func CompressibilityPapay(ppr, tpr, ppc float64) float64 {
	dz := -3.52/math.Pow(10, 0.9813*tpr) + 0.548*ppr/math.Pow(10, 0.8157*tpr)
	return cgFromSlope(ppr, ppc, ZPapay(ppr, tpr), dz)
}

// CompressibilityBrillBeggs differentiates the Brill-Beggs fit analytically.
func CompressibilityBrillBeggs(ppr, tpr, ppc float64) float64 {
	bb := brillBeggs(ppr, tpr)
	db := (0.62 - 0.23*tpr) + 2*(0.066/(tpr-0.86)-0.037)*ppr + 1.92*math.Pow(ppr, 5)/math.Pow(10, 9*(tpr-1))
	dz := -(1-bb.a)*db*math.Exp(-bb.b) + bb.c*bb.d*math.Pow(ppr, bb.d-1)
	return cgFromSlope(ppr, ppc, ZBrillBeggs(ppr, tpr), dz)
}

// CompressibilityGopal uses the slope of the active Gopal cell.
func CompressibilityGopal(ppr, tpr, ppc float64) float64 {
	var dz float64
	i, j := gopalCell(ppr, tpr)
	if i == 3 {
		dz = math.Pow(0.711+3.66*tpr, -1.4667)
	} else {
		k := gopalCoeffs[i][j]
		dz = k[0]*tpr + k[1]
	}
	return cgFromSlope(ppr, ppc, ZGopal(ppr, tpr), dz)
}

var cgCatalog = pvt.NewCatalog[ZInput]("gas compressibility", validateZ)

func analyticCg(f func(ppr, tpr, ppc float64) float64) func(ZInput) (float64, error) {
	return func(in ZInput) (float64, error) {
		ppr, tpr := in.Reduced()
		return f(ppr, tpr, in.Pc.Ppc), nil
	}
}

func init() {
	cgCatalog.
		Register(pvt.Correlation[ZInput]{Variant: Papay, Func: analyticCg(CompressibilityPapay), Limits: papayLimits}).
		Register(pvt.Correlation[ZInput]{Variant: BrillBeggs, Func: analyticCg(CompressibilityBrillBeggs), Limits: brillBeggsLimits}).
		Register(pvt.Correlation[ZInput]{Variant: Gopal, Func: analyticCg(CompressibilityGopal), Limits: gopalLimits})
}

// CompressibilityCatalog returns the registry of closed-form cg
// correlations.
func CompressibilityCatalog() *pvt.Catalog[ZInput] { return cgCatalog }

// CompressibilityOf evaluates a closed-form cg correlation.
func CompressibilityOf(v pvt.Variant, in ZInput, p pvt.Policy) (float64, error) {
	return cgCatalog.Compute(v, in, p)
}

// cgStep is the reduced-pressure step of the numerical derivative.
const cgStep = 1e-4

// Compressibility computes cg = 1/P - (1/z)(dz/dP) for any Z-factor variant
// by central differences in reduced pressure. Implicit variants are solved
// to at least 1e-12 so the solver tolerance does not swamp the difference.
func Compressibility(zv pvt.Variant, in ZInput, p pvt.Policy) (float64, error) {
	z, err := Z(zv, in, p)
	if err != nil {
		return 0, err
	}

	s := in.Solver
	if s.Tolerance == 0 || s.Tolerance > 1e-12 {
		s.Tolerance = 1e-12
	}
	corr, _ := zCatalog.Lookup(zv)
	var solveErr error
	zAt := func(ppr float64) float64 {
		at := in
		at.P = ppr * in.Pc.Ppc
		at.Solver = s
		v, err := corr.Func(at)
		if err != nil && solveErr == nil {
			solveErr = err
		}
		return v
	}

	ppr, _ := in.Reduced()
	dz := fd.Derivative(zAt, ppr, &fd.Settings{Formula: fd.Central, Step: cgStep})
	if solveErr != nil {
		return 0, fmt.Errorf("gas compressibility/%s: %w", corr.Variant, solveErr)
	}
	return cgFromSlope(ppr, in.Pc.Ppc, z, dz), nil
}
