// Package oil implements black-oil correlations: bubble-point pressure,
// solution gas-oil ratio, formation volume factors, compressibility,
// density, viscosity and gas-oil interfacial tension.
//
// Pressures are psia, temperatures °R and gas-oil ratios scf/STB. Gas
// gravity is relative to air and oil gravity is °API.
package oil

import (
	"math"

	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// Correlation variants. Most authors published several properties, so one
// name selects a variant in every catalog that has it.
const (
	Standing             pvt.Variant = "Standing"
	Lasater              pvt.Variant = "Lasater"
	VazquezBeggs         pvt.Variant = "Vazquez-Beggs"
	Glaso                pvt.Variant = "Glaso"
	Total                pvt.Variant = "TOTAL"
	AlMarhoun            pvt.Variant = "Al-Marhoun"
	DoklaOsman           pvt.Variant = "Dokla-Osman"
	PetroskyFarshad      pvt.Variant = "Petrosky-Farshad"
	KartoatmodjoSchmidt  pvt.Variant = "Kartoatmodjo-Schmidt"
	Beal                 pvt.Variant = "Beal"
	BeggsRobinson        pvt.Variant = "Beggs-Robinson"
	Egbogah              pvt.Variant = "Egbogah"
	ChewConnally         pvt.Variant = "Chew-Connally"
	Ahmed                pvt.Variant = "Ahmed"
	McCainRollinsVillena pvt.Variant = "McCain-Rollins-Villena"
	MaterialBalance      pvt.Variant = "Material-Balance"
	Basic                pvt.Variant = "Basic"
)

// Separator holds the first-stage separator conditions. Vazquez-Beggs and
// Kartoatmodjo-Schmidt use them to correct the gas gravity to a 100 psig
// separator. The zero value means no correction.
type Separator struct {
	P float64 `json:"p,omitempty"` // psia
	T float64 `json:"t,omitempty"` // °R
}

func (s Separator) given() bool { return s.P > 0 && s.T > 0 }

// Validate accepts an unset separator or a fully specified one.
func (s Separator) Validate() error {
	if s.P == 0 && s.T == 0 {
		return nil
	}
	if err := pvt.FirstError(pvt.Pressure("separator pressure", s.P), pvt.Temperature("separator temperature", s.T)); err != nil {
		return err
	}
	if pvt.Fahrenheit(s.T) <= 0 {
		return &pvt.DomainError{Param: "separator temperature", Value: s.T, Reason: "must be above 0 °F"}
	}
	return nil
}

// vazquezBeggsGravity corrects gamma to 100 psig separator conditions.
func (s Separator) vazquezBeggsGravity(gamma, api float64) float64 {
	if !s.given() {
		return gamma
	}
	return gamma * (1 + 5.912e-5*api*pvt.Fahrenheit(s.T)*math.Log10(s.P/114.7))
}

// kartoatmodjoGravity is the Kartoatmodjo-Schmidt form of the separator
// correction.
func (s Separator) kartoatmodjoGravity(gamma, api float64) float64 {
	if !s.given() {
		return gamma
	}
	return gamma * (1 + 0.1595*math.Pow(api, 0.4078)*math.Pow(pvt.Fahrenheit(s.T), -0.2466)*math.Log10(s.P/114.7))
}

// Impurities are the non-hydrocarbon mole fractions of the separator gas.
type Impurities struct {
	N2  float64 `json:"n2,omitempty"`
	CO2 float64 `json:"co2,omitempty"`
	H2S float64 `json:"h2s,omitempty"`
}

func (y Impurities) present() bool { return y.N2 != 0 || y.CO2 != 0 || y.H2S != 0 }

func (y Impurities) Validate() error {
	return pvt.FirstError(pvt.Fraction("yN2", y.N2), pvt.Fraction("yCO2", y.CO2), pvt.Fraction("yH2S", y.H2S))
}

// BubblePointCorrection multiplies a hydrocarbon bubble point by the N2, CO2
// and H2S correction factors. tf is in °F.
func BubblePointCorrection(y Impurities, tf, api float64) float64 {
	if !y.present() {
		return 1
	}
	cN2 := 1 + ((-2.65e-4*api+5.5e-3)*tf+(0.0931*api-0.8295))*y.N2 +
		((1.954e-11*math.Pow(api, 4.699))*tf+(0.027*api-2.366))*y.N2*y.N2
	cCO2 := 1 - 693.8*y.CO2*math.Pow(tf, -1.553)
	cH2S := 1 - (0.9035+0.0015*api)*y.H2S + 0.019*(45-api)*y.H2S*y.H2S
	return cN2 * cCO2 * cH2S
}

// PbInput is the reservoir fluid description for bubble-point correlations.
type PbInput struct {
	Rsb        float64    `json:"rsb"`       // solution GOR at Pb, scf/STB
	GammaGas   float64    `json:"gamma_gas"` // separator gas gravity
	T          float64    `json:"t"`         // °R
	API        float64    `json:"api"`
	Separator  Separator  `json:"separator"`
	Impurities Impurities `json:"impurities"`
}

func (in PbInput) Validate() error {
	if err := pvt.FirstError(
		pvt.Positive("Rsb", in.Rsb),
		pvt.Positive("gas gravity", in.GammaGas),
		pvt.Temperature("temperature", in.T),
		pvt.Positive("API gravity", in.API),
		in.Separator.Validate(),
		in.Impurities.Validate(),
	); err != nil {
		return err
	}
	if in.Impurities.CO2 > 0 && pvt.Fahrenheit(in.T) <= 0 {
		return &pvt.DomainError{Param: "temperature", Value: in.T, Reason: "CO2 correction needs a temperature above 0 °F"}
	}
	return nil
}

func (in PbInput) tf() float64 { return pvt.Fahrenheit(in.T) }

// aboveZeroF guards the correlations that raise °F to a fractional power.
func aboveZeroF(t float64) error {
	if pvt.Fahrenheit(t) <= 0 {
		return &pvt.DomainError{Param: "temperature", Value: t, Reason: "correlation needs a temperature above 0 °F"}
	}
	return nil
}

// lasaterMolecularWeight is the effective stock-tank oil molecular weight.
func lasaterMolecularWeight(api float64) float64 {
	if api <= 40 {
		return 630 - 10*api
	}
	return 73110 / math.Pow(api, 1.562)
}

type vbConstants struct{ c1, c2, c3 float64 }

func vazquezBeggsConstants(api float64) vbConstants {
	if api <= 30 {
		return vbConstants{0.0362, 1.0937, 25.724}
	}
	return vbConstants{0.0178, 1.1870, 23.931}
}

type ksConstants struct{ c1, c2, c3, c4 float64 }

func kartoatmodjoConstants(api float64) ksConstants {
	if api <= 30 {
		return ksConstants{0.05958, 0.7972, 13.1405, 0.9986}
	}
	return ksConstants{0.03150, 0.7587, 11.2895, 0.9143}
}

// PbStanding is Standing's (1947) bubble point.
func PbStanding(in PbInput) float64 {
	f := math.Pow(in.Rsb/in.GammaGas, 0.83) * math.Pow(10, 0.00091*in.tf()-0.0125*in.API)
	return 18.2 * (f - 1.4)
}

// PbLasater is Lasater's (1958) bubble point from the gas mole fraction.
func PbLasater(in PbInput) float64 {
	gammaOil := pvt.SpecificGravity(in.API)
	n := in.Rsb / 379.3
	yg := n / (n + 350*gammaOil/lasaterMolecularWeight(in.API))
	var pf float64
	if yg <= 0.6 {
		pf = 0.679*math.Exp(2.786*yg) - 0.323
	} else {
		pf = 8.26*math.Pow(yg, 3.56) + 1.95
	}
	return pf * in.T / in.GammaGas
}

// PbVazquezBeggs is the Vazquez-Beggs (1980) bubble point.
func PbVazquezBeggs(in PbInput) float64 {
	c := vazquezBeggsConstants(in.API)
	g := in.Separator.vazquezBeggsGravity(in.GammaGas, in.API)
	return math.Pow(in.Rsb/(c.c1*g*math.Exp(c.c3*in.API/in.T)), 1/c.c2)
}

// PbGlaso is Glasø's (1980) North Sea bubble point.
func PbGlaso(in PbInput) float64 {
	f := math.Pow(in.Rsb/in.GammaGas, 0.816) * math.Pow(in.tf(), 0.172) / math.Pow(in.API, 0.989)
	x := math.Log10(f)
	return math.Pow(10, 1.7669+1.7447*x-0.30218*x*x)
}

// totalBand returns the TOTAL coefficients of the API band. Above 45 °API
// the top band is used; the range limit reports it.
func totalBand(api float64, bands [3][4]float64) [4]float64 {
	switch {
	case api <= 10:
		return bands[0]
	case api <= 35:
		return bands[1]
	default:
		return bands[2]
	}
}

var totalPbBands = [3][4]float64{
	{12.847, 0.9636, 0.000993, 0.034170},
	{25.2755, 0.7617, 0.000835, 0.011292},
	{216.4711, 0.6922, -0.000427, 0.023140},
}

// PbTotal is the TOTAL Compagnie Française des Pétroles bubble point.
func PbTotal(in PbInput) float64 {
	c := totalBand(in.API, totalPbBands)
	return c[0] * math.Pow(in.Rsb/in.GammaGas, c[1]) * math.Pow(10, c[2]*in.tf()-c[3]*in.API)
}

// PbAlMarhoun is Al-Marhoun's (1988) Middle East bubble point.
func PbAlMarhoun(in PbInput) float64 {
	gammaOil := pvt.SpecificGravity(in.API)
	return 5.38088e-3 * math.Pow(in.Rsb, 0.715082) * math.Pow(in.GammaGas, -1.87784) *
		math.Pow(gammaOil, 3.1437) * math.Pow(in.T, 1.32657)
}

// PbDoklaOsman is the Dokla-Osman (1992) UAE bubble point.
func PbDoklaOsman(in PbInput) float64 {
	gammaOil := pvt.SpecificGravity(in.API)
	return 0.836386e4 * math.Pow(in.Rsb, 0.724047) * math.Pow(in.GammaGas, -1.01049) *
		math.Pow(gammaOil, 0.107991) * math.Pow(in.T, -0.952584)
}

// PbPetroskyFarshad is the Petrosky-Farshad (1993) Gulf of Mexico bubble
// point.
func PbPetroskyFarshad(in PbInput) float64 {
	f := math.Pow(in.Rsb, 0.5774) / math.Pow(in.GammaGas, 0.8439) *
		math.Pow(10, 4.561e-5*math.Pow(in.tf(), 1.3911)-7.916e-4*math.Pow(in.API, 1.541))
	return 112.727 * (f - 12.34)
}

// PbKartoatmodjoSchmidt is the Kartoatmodjo-Schmidt (1994) bubble point.
func PbKartoatmodjoSchmidt(in PbInput) float64 {
	c := kartoatmodjoConstants(in.API)
	g := in.Separator.kartoatmodjoGravity(in.GammaGas, in.API)
	return math.Pow(in.Rsb/(c.c1*math.Pow(g, c.c2)*math.Pow(10, c.c3*in.API/in.T)), c.c4)
}

func pbRsb(in PbInput) float64 { return in.Rsb }
func pbGamma(in PbInput) float64 { return in.GammaGas }
func pbAPI(in PbInput) float64 { return in.API }
func pbFahrenheit(in PbInput) float64 { return in.tf() }

func pbLimits(rsb, gamma, api, tf [2]float64) []pvt.Limit[PbInput] {
	return []pvt.Limit[PbInput]{
		pvt.Within("Rsb", rsb[0], rsb[1], pbRsb),
		pvt.Within("gas gravity", gamma[0], gamma[1], pbGamma),
		pvt.Within("API", api[0], api[1], pbAPI),
		pvt.Within("T °F", tf[0], tf[1], pbFahrenheit),
	}
}

// pbCorrected applies the non-hydrocarbon correction to a hydrocarbon
// formula.
func pbCorrected(f func(PbInput) float64, needsF bool) func(PbInput) (float64, error) {
	return func(in PbInput) (float64, error) {
		if needsF {
			if err := aboveZeroF(in.T); err != nil {
				return 0, err
			}
		}
		return f(in) * BubblePointCorrection(in.Impurities, in.tf(), in.API), nil
	}
}

var pbCatalog = pvt.NewCatalog[PbInput]("bubble-point pressure", PbInput.Validate)

func init() {
	pbCatalog.
		Register(pvt.Correlation[PbInput]{Variant: Standing, Reference: "Standing (1947)", Func: pbCorrected(PbStanding, false),
			Limits: pbLimits([2]float64{20, 1425}, [2]float64{0.59, 0.95}, [2]float64{16.5, 63.8}, [2]float64{100, 258})}).
		Register(pvt.Correlation[PbInput]{Variant: Lasater, Reference: "Lasater (1958)", Func: pbCorrected(PbLasater, false),
			Limits: pbLimits([2]float64{3, 2905}, [2]float64{0.574, 1.223}, [2]float64{17.9, 51.1}, [2]float64{82, 272})}).
		Register(pvt.Correlation[PbInput]{Variant: VazquezBeggs, Reference: "Vazquez and Beggs (1980)", Func: pbCorrected(PbVazquezBeggs, false),
			Limits: pbLimits([2]float64{0, 2199}, [2]float64{0.511, 1.351}, [2]float64{15.3, 59.5}, [2]float64{75, 294})}).
		Register(pvt.Correlation[PbInput]{Variant: Glaso, Reference: "Glasø (1980)", Func: pbCorrected(PbGlaso, true),
			Limits: pbLimits([2]float64{90, 2637}, [2]float64{0.65, 1.276}, [2]float64{22.3, 48.1}, [2]float64{80, 280})}).
		Register(pvt.Correlation[PbInput]{Variant: Total, Reference: "TOTAL C.F.P. (1983)", Func: pbCorrected(PbTotal, false),
			Limits: pbLimits([2]float64{0, math.Inf(1)}, [2]float64{0, math.Inf(1)}, [2]float64{0, 45}, [2]float64{math.Inf(-1), math.Inf(1)})}).
		Register(pvt.Correlation[PbInput]{Variant: AlMarhoun, Reference: "Al-Marhoun (1988)", Func: pbCorrected(PbAlMarhoun, false),
			Limits: pbLimits([2]float64{26, 1602}, [2]float64{0.752, 1.367}, [2]float64{19.4, 44.6}, [2]float64{74, 240})}).
		Register(pvt.Correlation[PbInput]{Variant: DoklaOsman, Reference: "Dokla and Osman (1992)", Func: pbCorrected(PbDoklaOsman, false),
			Limits: pbLimits([2]float64{181, 2266}, [2]float64{0.798, 1.29}, [2]float64{28.2, 40.3}, [2]float64{190, 275})}).
		Register(pvt.Correlation[PbInput]{Variant: PetroskyFarshad, Reference: "Petrosky and Farshad (1993)", Func: pbCorrected(PbPetroskyFarshad, true),
			Limits: pbLimits([2]float64{217, 1406}, [2]float64{0.5781, 0.8519}, [2]float64{16.3, 45}, [2]float64{114, 288})}).
		Register(pvt.Correlation[PbInput]{Variant: KartoatmodjoSchmidt, Reference: "Kartoatmodjo and Schmidt (1994)", Func: pbCorrected(PbKartoatmodjoSchmidt, false),
			Limits: pbLimits([2]float64{0, 2890}, [2]float64{0.379, 1.709}, [2]float64{14.4, 58.9}, [2]float64{75, 320})})
}

// BubblePointCatalog returns the bubble-point registry.
func BubblePointCatalog() *pvt.Catalog[PbInput] { return pbCatalog }

// BubblePoint evaluates the bubble-point variant v, psia.
func BubblePoint(v pvt.Variant, in PbInput, p pvt.Policy) (float64, error) {
	return pbCatalog.Compute(v, in, p)
}
