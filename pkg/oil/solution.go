package oil

import (
	"math"

	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// RsInput is the state for solution gas-oil ratio correlations.
type RsInput struct {
	P         float64   `json:"p"`         // psia
	T         float64   `json:"t"`         // °R
	GammaGas  float64   `json:"gamma_gas"` // separator gas gravity
	API       float64   `json:"api"`
	Pb        float64   `json:"pb"` // bubble point, psia
	Separator Separator `json:"separator"`
}

func (in RsInput) Validate() error {
	return pvt.FirstError(
		pvt.Pressure("pressure", in.P),
		pvt.Temperature("temperature", in.T),
		pvt.Positive("gas gravity", in.GammaGas),
		pvt.Positive("API gravity", in.API),
		pvt.Pressure("bubble-point pressure", in.Pb),
		in.Separator.Validate(),
	)
}

// saturation returns the pressure the correlation is evaluated at. Above
// the bubble point all gas is in solution, so Rs stays at its value at Pb.
func (in RsInput) saturation() float64 {
	if in.P >= in.Pb {
		return in.Pb
	}
	return in.P
}

func (in RsInput) tf() float64 { return pvt.Fahrenheit(in.T) }

// RsStanding inverts Standing's bubble-point correlation at pressure p.
func RsStanding(in RsInput, p float64) float64 {
	return in.GammaGas * math.Pow((p/18.2+1.4)*math.Pow(10, 0.0125*in.API-0.00091*in.tf()), 1.2048)
}

// RsLasater is Lasater's gas-oil ratio from the bubble-point pressure
// factor.
func RsLasater(in RsInput, p float64) float64 {
	pf := p * in.GammaGas / in.T
	var yg float64
	if pf < 3.29 {
		yg = 0.359 * math.Log(1.473*pf+0.476)
	} else {
		yg = math.Pow(0.121*pf-0.236, 0.281)
	}
	gammaOil := pvt.SpecificGravity(in.API)
	return 132755 * gammaOil * yg / (lasaterMolecularWeight(in.API) * (1 - yg))
}

// RsVazquezBeggs is the Vazquez-Beggs gas-oil ratio.
func RsVazquezBeggs(in RsInput, p float64) float64 {
	c := vazquezBeggsConstants(in.API)
	g := in.Separator.vazquezBeggsGravity(in.GammaGas, in.API)
	return c.c1 * g * math.Pow(p, c.c2) * math.Exp(c.c3*in.API/in.T)
}

// RsGlaso inverts Glasø's quadratic in log10 of the bubble-point factor.
func RsGlaso(in RsInput, p float64) (float64, error) {
	disc := 14.1811 - 3.3093*math.Log10(p)
	if disc < 0 {
		return 0, &pvt.DomainError{Param: "pressure", Value: p, Reason: "beyond the Glaso inversion"}
	}
	f := math.Pow(10, 2.8869-math.Sqrt(disc))
	return in.GammaGas * math.Pow(f*math.Pow(in.API, 0.989)/math.Pow(in.tf(), 0.172), 1.2255), nil
}

var totalRsBands = [3][4]float64{
	{12.2651, 0.030405, 0, 0.9669},
	{15.0057, 0.0152, 4.484e-4, 1.0950},
	{112.925, 0.0248, -1.469e-3, 1.1290},
}

// RsTotal is the TOTAL gas-oil ratio. It is fitted separately from PbTotal
// and is not its exact inverse.
func RsTotal(in RsInput, p float64) float64 {
	c := totalBand(in.API, totalRsBands)
	return in.GammaGas * math.Pow(p/c[0]*math.Pow(10, c[1]*in.API-c[2]*in.tf()), c[3])
}

// RsAlMarhoun is Al-Marhoun's gas-oil ratio.
func RsAlMarhoun(in RsInput, p float64) float64 {
	gammaOil := pvt.SpecificGravity(in.API)
	return math.Pow(185.84321*p*math.Pow(in.GammaGas, 1.87784)*math.Pow(gammaOil, -3.1437)*math.Pow(in.T, -1.32657), 1.3984)
}

// RsDoklaOsman is the Dokla-Osman gas-oil ratio.
func RsDoklaOsman(in RsInput, p float64) float64 {
	gammaOil := pvt.SpecificGravity(in.API)
	return math.Pow(0.11956e-3*p*math.Pow(in.GammaGas, 1.01049)*math.Pow(gammaOil, -0.107991)*math.Pow(in.T, 0.952584), 1.3811)
}

// RsPetroskyFarshad is the Petrosky-Farshad gas-oil ratio.
func RsPetroskyFarshad(in RsInput, p float64) float64 {
	x := 7.916e-4*math.Pow(in.API, 1.5410) - 4.561e-5*math.Pow(in.tf(), 1.3911)
	return math.Pow(math.Pow(in.GammaGas, 0.8439)*(p/112.727+12.34)*math.Pow(10, x), 1.73184)
}

// RsKartoatmodjoSchmidt is the Kartoatmodjo-Schmidt gas-oil ratio.
func RsKartoatmodjoSchmidt(in RsInput, p float64) float64 {
	c := kartoatmodjoConstants(in.API)
	g := in.Separator.kartoatmodjoGravity(in.GammaGas, in.API)
	return c.c1 * math.Pow(g, c.c2) * math.Pow(p, 1/c.c4) * math.Pow(10, c.c3*in.API/in.T)
}

// saturated evaluates f at min(P, Pb).
func saturated(f func(RsInput, float64) float64, needsF bool) func(RsInput) (float64, error) {
	return func(in RsInput) (float64, error) {
		if needsF {
			if err := aboveZeroF(in.T); err != nil {
				return 0, err
			}
		}
		return f(in, in.saturation()), nil
	}
}

func rsGamma(in RsInput) float64 { return in.GammaGas }
func rsAPI(in RsInput) float64 { return in.API }

var rsCatalog = pvt.NewCatalog[RsInput]("solution gas-oil ratio", RsInput.Validate)

func init() {
	gravity := func(lo, hi float64) pvt.Limit[RsInput] { return pvt.Within("gas gravity", lo, hi, rsGamma) }
	api := func(lo, hi float64) pvt.Limit[RsInput] { return pvt.Within("API", lo, hi, rsAPI) }

	rsCatalog.
		Register(pvt.Correlation[RsInput]{Variant: Standing, Func: saturated(RsStanding, false),
			Limits: []pvt.Limit[RsInput]{gravity(0.59, 0.95), api(16.5, 63.8)}}).
		Register(pvt.Correlation[RsInput]{Variant: Lasater, Func: saturated(RsLasater, false),
			Limits: []pvt.Limit[RsInput]{gravity(0.574, 1.223), api(17.9, 51.1)}}).
		Register(pvt.Correlation[RsInput]{Variant: VazquezBeggs, Func: saturated(RsVazquezBeggs, false),
			Limits: []pvt.Limit[RsInput]{gravity(0.511, 1.351), api(15.3, 59.5)}}).
		Register(pvt.Correlation[RsInput]{Variant: Glaso, Func: func(in RsInput) (float64, error) {
			if err := aboveZeroF(in.T); err != nil {
				return 0, err
			}
			return RsGlaso(in, in.saturation())
		}, Limits: []pvt.Limit[RsInput]{gravity(0.65, 1.276), api(22.3, 48.1)}}).
		Register(pvt.Correlation[RsInput]{Variant: Total, Func: saturated(RsTotal, false),
			Limits: []pvt.Limit[RsInput]{api(0, 45)}}).
		Register(pvt.Correlation[RsInput]{Variant: AlMarhoun, Func: saturated(RsAlMarhoun, false),
			Limits: []pvt.Limit[RsInput]{gravity(0.752, 1.367), api(19.4, 44.6)}}).
		Register(pvt.Correlation[RsInput]{Variant: DoklaOsman, Func: saturated(RsDoklaOsman, false),
			Limits: []pvt.Limit[RsInput]{gravity(0.798, 1.29), api(28.2, 40.3)}}).
		Register(pvt.Correlation[RsInput]{Variant: PetroskyFarshad, Func: saturated(RsPetroskyFarshad, true),
			Limits: []pvt.Limit[RsInput]{gravity(0.5781, 0.8519), api(16.3, 45)}}).
		Register(pvt.Correlation[RsInput]{Variant: KartoatmodjoSchmidt, Func: saturated(RsKartoatmodjoSchmidt, false),
			Limits: []pvt.Limit[RsInput]{gravity(0.379, 1.709), api(14.4, 58.9)}})
}

// SolutionGORCatalog returns the solution gas-oil ratio registry.
func SolutionGORCatalog() *pvt.Catalog[RsInput] { return rsCatalog }

// SolutionGOR evaluates the Rs variant v, scf/STB. At and above the bubble
// point it returns the value at Pb.
func SolutionGOR(v pvt.Variant, in RsInput, p pvt.Policy) (float64, error) {
	return rsCatalog.Compute(v, in, p)
}
