package water

import (
	"math"

	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// RswCulbersonMcKetta is the Culberson-McKetta (1951) solution gas-water
// ratio, scf/STB, with the McCain salinity correction.
func RswCulbersonMcKetta(in Input) float64 {
	t := in.tf()
	a := 8.15839 - 6.12265e-2*t + 1.91663e-4*t*t - 2.1654e-7*t*t*t
	b := 1.01021e-2 - 7.44121e-5*t + 3.05553e-7*t*t - 2.94883e-10*t*t*t
	c := (-9.02505 + 0.130237*t - 8.53425e-4*t*t + 2.34122e-6*t*t*t - 2.37049e-9*t*t*t*t) * 1e-7
	pure := a + b*in.P + c*in.P*in.P
	return math.Pow(10, -0.0840655*in.wt()*math.Pow(t, -0.285854)) * pure
}

// RswMcCoy is McCoy's (1983) solution gas-water ratio.
func RswMcCoy(in Input) float64 {
	t := in.tf()
	a := 2.12 + 3.45e-3*t - 3.59e-5*t*t
	b := 0.0107 - 5.26e-5*t + 1.48e-7*t*t
	c := -8.75e-7 + 3.9e-9*t - 1.02e-11*t*t
	pure := a + b*in.P + c*in.P*in.P
	return (1 - (0.0753-1.73e-4*t)*in.wt()) * pure
}

var rswCatalog = pvt.NewCatalog[Input]("solution gas-water ratio", Input.Validate)

func init() {
	rswCatalog.
		Register(pvt.Correlation[Input]{Variant: CulbersonMcKetta, Reference: "Culberson and McKetta (1951)", Func: fahrenheit(RswCulbersonMcKetta),
			Limits: []pvt.Limit[Input]{
				pvt.Within("P", 1000, 10000, inP),
				pvt.Within("T (°F)", 100, 250, inF),
				pvt.AtMost("salinity (wt%)", 30, inWt),
			}}).
		Register(pvt.Correlation[Input]{Variant: McCoy, Reference: "McCoy (1983)", Func: pvt.Closed(RswMcCoy)})
}

// SolutionGWRCatalog returns the Rsw registry.
func SolutionGWRCatalog() *pvt.Catalog[Input] { return rswCatalog }

// SolutionGWR evaluates the Rsw variant v, scf/STB.
func SolutionGWR(v pvt.Variant, in Input, p pvt.Policy) (float64, error) {
	return rswCatalog.Compute(v, in, p)
}

// BwMcCain is McCain's gas-saturated water formation volume factor,
// bbl/STB, from the thermal and pressure volume changes.
func BwMcCain(in Input) float64 {
	t, p := in.tf(), in.P
	dvt := -1.0001e-2 + 1.33391e-4*t + 5.50654e-7*t*t
	dvp := -1.95301e-9*p*t - 1.72834e-13*p*p*t - 3.58922e-7*p - 2.25341e-10*p*p
	return (1 + dvp) * (1 + dvt)
}

func mcCoyBw(in Input, a, b, c float64) float64 {
	t, p, s := in.tf(), in.P, in.wt()
	pure := a + b*p + c*p*p
	return (1 + s*(5.1e-8*p+(5.47e-6-1.95e-10*p)*(t-60)-(3.23e-8-8.5e-13*p)*(t-60)*(t-60))) * pure
}

// BwMcCoyGasFree is McCoy's formation volume factor of gas-free brine.
func BwMcCoyGasFree(in Input) float64 {
	t := in.tf()
	return mcCoyBw(in,
		0.9947+5.8e-6*t+1.02e-6*t*t,
		-4.228e-6+1.8376e-8*t-6.77e-11*t*t,
		1.3e-10-1.3855e-12*t+4.285e-15*t*t)
}

// BwMcCoyGasSaturated is McCoy's formation volume factor of gas-saturated
// brine.
func BwMcCoyGasSaturated(in Input) float64 {
	t := in.tf()
	return mcCoyBw(in,
		0.9911+6.35e-5*t+8.5e-7*t*t,
		-1.093e-6-3.497e-9*t+4.57e-12*t*t,
		-5.0e-11+6.429e-13*t-1.43e-15*t*t)
}

// Undersaturated carries the bubble-point factor bwb above the bubble point
// with compressibility cw: Bw = Bwb·exp(cw·(Pb - P)). At or below Pb it
// returns bwb.
func Undersaturated(bwb, cw, p, pb float64) float64 {
	if p <= pb {
		return bwb
	}
	return bwb * math.Exp(cw*(pb-p))
}

var bwCatalog = pvt.NewCatalog[Input]("water formation volume factor", Input.Validate)

func init() {
	bwCatalog.
		Register(pvt.Correlation[Input]{Variant: McCain, Reference: "McCain (1990)", Func: pvt.Closed(BwMcCain),
			Limits: []pvt.Limit[Input]{pvt.AtMost("P", 5000, inP), pvt.AtMost("T (°F)", 260, inF)}}).
		Register(pvt.Correlation[Input]{Variant: McCoyGasFree, Reference: "McCoy (1983)", Func: pvt.Closed(BwMcCoyGasFree)}).
		Register(pvt.Correlation[Input]{Variant: McCoyGasSaturated, Reference: "McCoy (1983)", Func: pvt.Closed(BwMcCoyGasSaturated)})
}

// FormationVolumeCatalog returns the Bw registry.
func FormationVolumeCatalog() *pvt.Catalog[Input] { return bwCatalog }

// FormationVolume evaluates the Bw variant v, bbl/STB.
func FormationVolume(v pvt.Variant, in Input, p pvt.Policy) (float64, error) {
	return bwCatalog.Compute(v, in, p)
}

// pureCompressibility is the gas-free fresh-water compressibility shared by
// Dodson-Standing and Brill-Beggs, 1/psi.
func pureCompressibility(p, t float64) float64 {
	a := 3.8546 - 1.34e-4*p
	b := -0.01052 + 4.77e-7*p
	c := 3.9267e-5 - 8.8e-10*p
	return (a + b*t + c*t*t) * 1e-6
}

// CwDodsonStanding corrects the pure-water compressibility for dissolved
// gas (Rsw) and salinity.
func CwDodsonStanding(in Input) float64 {
	t := in.tf()
	gas := 1 + 8.9e-3*in.Rsw
	salt := 1 + math.Pow(in.wt(), 0.7)*(-5.2e-2+2.7e-4*t-1.14e-6*t*t+1.121e-9*t*t*t)
	return pureCompressibility(in.P, t) * gas * salt
}

// CwOsif is Osif's (1988) brine compressibility. Salinity is converted to
// g/L assuming unit brine density.
func CwOsif(in Input) float64 {
	gl := in.Salinity / 1000
	return 1 / (7.033*in.P + 541.5*gl - 537*in.tf() + 403300)
}

// CwBrillBeggs is the gas-free fresh-water compressibility.
func CwBrillBeggs(in Input) float64 {
	return pureCompressibility(in.P, in.tf())
}

var cwCatalog = pvt.NewCatalog[Input]("water compressibility", Input.Validate)

func init() {
	cwCatalog.
		Register(pvt.Correlation[Input]{Variant: DodsonStanding, Reference: "Dodson and Standing (1944)", Func: pvt.Closed(CwDodsonStanding)}).
		Register(pvt.Correlation[Input]{Variant: Osif, Reference: "Osif (1988)", Func: pvt.Closed(CwOsif),
			Limits: []pvt.Limit[Input]{
				pvt.Within("P", 1000, 20000, inP),
				pvt.Within("T (°F)", 200, 270, inF),
				pvt.AtMost("salinity (g/L)", 200, func(in Input) float64 { return in.Salinity / 1000 }),
			}}).
		Register(pvt.Correlation[Input]{Variant: BrillBeggs, Reference: "Brill and Beggs (1974)", Func: pvt.Closed(CwBrillBeggs)})
}

// CompressibilityCatalog returns the cw registry.
func CompressibilityCatalog() *pvt.Catalog[Input] { return cwCatalog }

// Compressibility evaluates the cw variant v, 1/psi.
func Compressibility(v pvt.Variant, in Input, p pvt.Policy) (float64, error) {
	return cwCatalog.Compute(v, in, p)
}
