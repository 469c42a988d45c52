package water

import (
	"math"

	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// MuVanWingen is Van Wingen's (1950) fresh-water viscosity, cp.
func MuVanWingen(in Input) float64 {
	t := in.tf()
	return math.Exp(1.003 - 1.479e-2*t + 1.982e-5*t*t)
}

// MuMatthewsRussell is the Matthews-Russell (1967) brine viscosity with its
// pressure correction.
func MuMatthewsRussell(in Input) float64 {
	t, s := in.tf(), in.wt()
	a := -0.04518 + 0.009313*s - 0.000393*s*s
	b := 70.634 + 0.09576*s*s
	return (a + b/t) * (1 + 3.5e-12*in.P*in.P*(t-40))
}

// MuMcCain is McCain's (1990) brine viscosity at atmospheric pressure,
// corrected to P.
func MuMcCain(in Input) float64 {
	t, s := in.tf(), in.wt()
	a := 109.574 - 8.40564*s + 0.313314*s*s + 8.72213e-3*s*s*s
	b := -1.12166 + 2.63951e-2*s - 6.79461e-4*s*s - 5.47119e-5*s*s*s + 1.55586e-6*s*s*s*s
	return (0.9994 + 4.0295e-5*in.P + 3.1062e-9*in.P*in.P) * a * math.Pow(t, b)
}

// MuMcCoy is McCoy's pure-water viscosity, which is fitted in kelvin, with
// its salinity correction in °F.
func MuMcCoy(in Input) float64 {
	k := float64(pvt.Kelvin(in.T))
	pure := 0.02414 * math.Pow(10, 247.8/(k-140))
	t, s := in.tf(), in.wt()
	return (1 - 1.87e-3*math.Sqrt(s) + 2.18e-4*math.Pow(s, 2.5) + (math.Sqrt(t)-1.35e-2*t)*(2.76e-3*s-3.44e-4*math.Pow(s, 1.5))) * pure
}

var muCatalog = pvt.NewCatalog[Input]("water viscosity", Input.Validate)

func init() {
	muCatalog.
		Register(pvt.Correlation[Input]{Variant: VanWingen, Reference: "Van Wingen (1950)", Func: pvt.Closed(MuVanWingen)}).
		Register(pvt.Correlation[Input]{Variant: MatthewsRussell, Reference: "Matthews and Russell (1967)", Func: fahrenheit(MuMatthewsRussell)}).
		Register(pvt.Correlation[Input]{Variant: McCain, Reference: "McCain (1990)", Func: fahrenheit(MuMcCain),
			Limits: []pvt.Limit[Input]{
				pvt.Within("T (°F)", 86.5, 350, inF),
				pvt.AtMost("P", 15000, inP),
				pvt.AtMost("salinity (wt%)", 26, inWt),
			}}).
		Register(pvt.Correlation[Input]{Variant: McCoy, Reference: "McCoy (1983)", Func: fahrenheit(MuMcCoy)})
}

// ViscosityCatalog returns the μw registry.
func ViscosityCatalog() *pvt.Catalog[Input] { return muCatalog }

// Viscosity evaluates the μw variant v, cp.
func Viscosity(v pvt.Variant, in Input, p pvt.Policy) (float64, error) {
	return muCatalog.Compute(v, in, p)
}

// RhoBasic is the stock-tank brine density carried to reservoir conditions
// by Bw, lb/ft³. The brine gravity grows with salinity as
// γw = 1 + 0.695e-6·ppm.
func RhoBasic(in Input) float64 {
	gamma := 1 + 0.695e-6*in.Salinity
	return pvt.WaterDensity * gamma / in.Bw
}

// RhoMcCain is McCain's stock-tank brine density divided by Bw.
func RhoMcCain(in Input) float64 {
	s := in.wt()
	return (62.368 + 0.438603*s + 1.60074e-3*s*s) / in.Bw
}

// densityValidate only needs salinity and Bw.
func densityValidate(in Input) error {
	if err := pvt.FirstError(pvt.NonNegative("salinity", in.Salinity), pvt.Positive("Bw", in.Bw)); err != nil {
		return err
	}
	if in.Salinity > maxSalinity {
		return &pvt.DomainError{Param: "salinity", Value: in.Salinity, Reason: "exceeds NaCl saturation"}
	}
	return nil
}

var rhoCatalog = pvt.NewCatalog[Input]("water density", densityValidate)

func init() {
	rhoCatalog.
		Register(pvt.Correlation[Input]{Variant: Basic, Func: pvt.Closed(RhoBasic)}).
		Register(pvt.Correlation[Input]{Variant: McCain, Reference: "McCain (1990)", Func: pvt.Closed(RhoMcCain)})
}

// DensityCatalog returns the ρw registry.
func DensityCatalog() *pvt.Catalog[Input] { return rhoCatalog }

// Density evaluates the ρw variant v, lb/ft³. in.Bw must be set.
func Density(v pvt.Variant, in Input, p pvt.Policy) (float64, error) {
	return rhoCatalog.Compute(v, in, p)
}

// SigmaJenningsNewman is the Jennings-Newman (1971) gas-water interfacial
// tension, dynes/cm.
func SigmaJenningsNewman(in Input) float64 {
	t := in.tf()
	a := 79.1618 - 0.118978*t
	b := -5.28473e-3 + 9.87913e-6*t
	c := (2.33814 - 4.57194e-4*t - 7.52678e-6*t*t) * 1e-7
	return a + b*in.P + c*in.P*in.P
}

var sigmaCatalog = pvt.NewCatalog[Input]("gas-water interfacial tension", Input.Validate)

func init() {
	sigmaCatalog.
		Register(pvt.Correlation[Input]{Variant: JenningsNewman, Reference: "Jennings and Newman (1971)", Func: pvt.Closed(SigmaJenningsNewman),
			Limits: []pvt.Limit[Input]{pvt.Within("T (°F)", 74, 280, inF), pvt.AtMost("P", 10000, inP)}})
}

// TensionCatalog returns the σgw registry.
func TensionCatalog() *pvt.Catalog[Input] { return sigmaCatalog }

// InterfacialTension evaluates the σgw variant v, dynes/cm.
func InterfacialTension(v pvt.Variant, in Input, p pvt.Policy) (float64, error) {
	return sigmaCatalog.Compute(v, in, p)
}
