package oil

import (
	"math"

	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// CoInput is the state for isothermal oil compressibility correlations.
// McCain-Rollins-Villena picks its form from which of Pb and Rs are known;
// leave an unknown one at zero.
type CoInput struct {
	P         float64   `json:"p"`         // psia
	T         float64   `json:"t"`         // °R
	GammaGas  float64   `json:"gamma_gas"` // separator gas gravity
	API       float64   `json:"api"`
	Rs        float64   `json:"rs"`            // scf/STB
	Pb        float64   `json:"pb,omitempty"` // psia
	Separator Separator `json:"separator"`
}

func (in CoInput) Validate() error {
	return pvt.FirstError(
		pvt.Pressure("pressure", in.P),
		pvt.Temperature("temperature", in.T),
		pvt.Positive("gas gravity", in.GammaGas),
		pvt.Positive("API gravity", in.API),
		pvt.NonNegative("Rs", in.Rs),
		pvt.NonNegative("bubble-point pressure", in.Pb),
		in.Separator.Validate(),
	)
}

// CoVazquezBeggs is the Vazquez-Beggs undersaturated compressibility,
// 1/psi.
func CoVazquezBeggs(in CoInput) float64 {
	g := in.Separator.vazquezBeggsGravity(in.GammaGas, in.API)
	return (-1433 + 5*in.Rs + 17.2*pvt.Fahrenheit(in.T) - 1180*g + 12.61*in.API) / (in.P * 1e5)
}

// CoPetroskyFarshad is the Petrosky-Farshad undersaturated compressibility.
func CoPetroskyFarshad(in CoInput) float64 {
	return 1.705e-7 * math.Pow(in.Rs, 0.69357) * math.Pow(in.GammaGas, 0.1885) * math.Pow(in.API, 0.3272) *
		math.Pow(pvt.Fahrenheit(in.T), 0.6729) * math.Pow(in.P, -0.5906)
}

// CoKartoatmodjoSchmidt is the Kartoatmodjo-Schmidt undersaturated
// compressibility.
func CoKartoatmodjoSchmidt(in CoInput) float64 {
	g := in.Separator.kartoatmodjoGravity(in.GammaGas, in.API)
	return 6.8257 * math.Pow(in.Rs, 0.5002) * math.Pow(in.API, 0.3613) * math.Pow(pvt.Fahrenheit(in.T), 0.76606) *
		math.Pow(g, 0.35505) / (in.P * 1e6)
}

// CoMcCainRollinsVillena is the saturated-oil compressibility of McCain,
// Rollins and Villena (1988):
//
//   - neither Pb nor Rs known: from P, T, API and gas gravity,
//   - Rs known: from P, T, API and Rs,
//   - both known: from P, Pb, T, API and Rs.
func CoMcCainRollinsVillena(in CoInput) float64 {
	var a float64
	switch {
	case in.Pb == 0 && in.Rs == 0:
		a = -7.114 - 1.394*math.Log(in.P) + 0.981*math.Log(in.T) + 0.770*math.Log(in.API) + 0.446*math.Log(in.GammaGas)
	case in.Pb == 0:
		a = -7.663 - 1.497*math.Log(in.P) + 1.115*math.Log(in.T) + 0.533*math.Log(in.API) + 0.184*math.Log(in.Rs)
	default:
		a = -7.573 - 1.450*math.Log(in.P) - 0.383*math.Log(in.Pb) + 1.402*math.Log(in.T) + 0.256*math.Log(in.API) + 0.449*math.Log(in.Rs)
	}
	return math.Exp(a)
}

func withRs(f func(CoInput) float64, needsF bool) func(CoInput) (float64, error) {
	return func(in CoInput) (float64, error) {
		if err := pvt.Positive("Rs", in.Rs); err != nil {
			return 0, err
		}
		if needsF {
			if err := aboveZeroF(in.T); err != nil {
				return 0, err
			}
		}
		return f(in), nil
	}
}

var coCatalog = pvt.NewCatalog[CoInput]("oil compressibility", CoInput.Validate)

func init() {
	coCatalog.
		Register(pvt.Correlation[CoInput]{Variant: VazquezBeggs, Reference: "Vazquez and Beggs (1980)", Func: withRs(CoVazquezBeggs, false)}).
		Register(pvt.Correlation[CoInput]{Variant: PetroskyFarshad, Reference: "Petrosky and Farshad (1993)", Func: withRs(CoPetroskyFarshad, true)}).
		Register(pvt.Correlation[CoInput]{Variant: KartoatmodjoSchmidt, Reference: "Kartoatmodjo and Schmidt (1994)", Func: withRs(CoKartoatmodjoSchmidt, true)}).
		Register(pvt.Correlation[CoInput]{Variant: McCainRollinsVillena, Reference: "McCain, Rollins and Villena (1988)", Func: func(in CoInput) (float64, error) {
			if in.Pb > 0 && in.Rs == 0 {
				return 0, &pvt.DomainError{Param: "Rs", Value: in.Rs, Reason: "the Pb form also needs Rs"}
			}
			return CoMcCainRollinsVillena(in), nil
		}})
}

// CompressibilityCatalog returns the co registry.
func CompressibilityCatalog() *pvt.Catalog[CoInput] { return coCatalog }

// Compressibility evaluates the co variant v, 1/psi.
func Compressibility(v pvt.Variant, in CoInput, p pvt.Policy) (float64, error) {
	return coCatalog.Compute(v, in, p)
}
