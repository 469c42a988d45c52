package oil

import (
	"math"

	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// DensityInput is the state for oil density correlations. Above the bubble
// point Bo and Rs are their bubble-point values and each correlation adds
// its own compression term.
type DensityInput struct {
	P        float64 `json:"p"`         // psia
	T        float64 `json:"t"`         // °R
	Pb       float64 `json:"pb"`        // psia
	Bo       float64 `json:"bo"`        // bbl/STB at min(P, Pb)
	Rs       float64 `json:"rs"`        // scf/STB at min(P, Pb)
	GammaGas float64 `json:"gamma_gas"` // gas gravity
	API      float64 `json:"api"`
	Co       float64 `json:"co,omitempty"` // 1/psi, read by Standing and Basic
}

func (in DensityInput) Validate() error {
	return pvt.FirstError(
		pvt.Pressure("pressure", in.P),
		pvt.Temperature("temperature", in.T),
		pvt.Pressure("bubble-point pressure", in.Pb),
		pvt.Positive("Bo", in.Bo),
		pvt.NonNegative("Rs", in.Rs),
		pvt.Positive("gas gravity", in.GammaGas),
		pvt.Positive("API gravity", in.API),
		pvt.NonNegative("oil compressibility", in.Co),
	)
}

func (in DensityInput) undersaturated() bool { return in.P > in.Pb }

// saturatedDensity is the mass balance of stock-tank oil and dissolved gas
// of gravity gamma, lb/ft³.
func saturatedDensity(in DensityInput, gamma float64) float64 {
	return (350*pvt.SpecificGravity(in.API) + 0.0764*gamma*in.Rs) / (5.615 * in.Bo)
}

// DensityVazquezBeggs uses the Vazquez-Beggs compressibility integrated
// above the bubble point: ρ = ρb·(P/Pb)^A.
func DensityVazquezBeggs(in DensityInput) float64 {
	rho := saturatedDensity(in, in.GammaGas)
	if !in.undersaturated() {
		return rho
	}
	a := 1e-5 * (-1433 + 5*in.Rs + 17.2*pvt.Fahrenheit(in.T) - 1180*in.GammaGas + 12.61*in.API)
	return rho * math.Exp(a*math.Log(in.P/in.Pb))
}

// DensityPetroskyFarshad integrates the Petrosky-Farshad compressibility.
func DensityPetroskyFarshad(in DensityInput) float64 {
	rho := saturatedDensity(in, in.GammaGas)
	if !in.undersaturated() {
		return rho
	}
	a := 4.1646e-7 * math.Pow(in.Rs, 0.69357) * math.Pow(in.GammaGas, 0.1885) * math.Pow(in.API, 0.3272) *
		math.Pow(pvt.Fahrenheit(in.T), 0.6729)
	return rho * math.Exp(a*(math.Pow(in.P, 0.4094)-math.Pow(in.Pb, 0.4094)))
}

// DensityAhmed uses Ahmed's exponential compressibility model.
func DensityAhmed(in DensityInput) float64 {
	rho := saturatedDensity(in, in.GammaGas)
	if !in.undersaturated() {
		return rho
	}
	b := -1 / (4.588893 + 0.025999*in.Rs)
	return rho * math.Exp(b*(math.Exp(-0.00018473*in.P)-math.Exp(-0.00018473*in.Pb)))
}

// DensityStanding is Standing's saturated density. Above Pb it is
// compressed with Co.
func DensityStanding(in DensityInput) float64 {
	gammaOil := pvt.SpecificGravity(in.API)
	f := in.Rs*math.Sqrt(in.GammaGas/gammaOil) + 1.25*pvt.Fahrenheit(in.T)
	rho := (pvt.WaterDensity*gammaOil + 0.0136*in.Rs*in.GammaGas) / (0.972 + 0.000147*math.Pow(f, 1.175))
	if !in.undersaturated() {
		return rho
	}
	return rho * math.Exp(in.Co*(in.P-in.Pb))
}

// DensityBasic is the mass balance with the Katz dissolved-gas gravity,
// compressed with Co above Pb.
func DensityBasic(in DensityInput) float64 {
	dissolved := (12.5+in.API)/50 - 3.5715e-6*in.API*in.Rs
	rho := saturatedDensity(in, dissolved)
	if !in.undersaturated() {
		return rho
	}
	return rho * math.Exp(in.Co*(in.P-in.Pb))
}

var rhoCatalog = pvt.NewCatalog[DensityInput]("oil density", DensityInput.Validate)

func init() {
	rhoCatalog.
		Register(pvt.Correlation[DensityInput]{Variant: VazquezBeggs, Func: pvt.Closed(DensityVazquezBeggs)}).
		Register(pvt.Correlation[DensityInput]{Variant: PetroskyFarshad, Func: func(in DensityInput) (float64, error) {
			if in.undersaturated() {
				if err := aboveZeroF(in.T); err != nil {
					return 0, err
				}
			}
			return DensityPetroskyFarshad(in), nil
		}}).
		Register(pvt.Correlation[DensityInput]{Variant: Ahmed, Func: pvt.Closed(DensityAhmed)}).
		Register(pvt.Correlation[DensityInput]{Variant: Standing, Func: pvt.Closed(DensityStanding)}).
		Register(pvt.Correlation[DensityInput]{Variant: Basic, Func: pvt.Closed(DensityBasic)})
}

// DensityCatalog returns the ρo registry.
func DensityCatalog() *pvt.Catalog[DensityInput] { return rhoCatalog }

// Density evaluates the ρo variant v, lb/ft³.
func Density(v pvt.Variant, in DensityInput, p pvt.Policy) (float64, error) {
	return rhoCatalog.Compute(v, in, p)
}
