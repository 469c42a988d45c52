package oil

import (
	"math"

	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// BoInput is the state for oil formation volume factor correlations.
type BoInput struct {
	P         float64   `json:"p"`         // psia
	T         float64   `json:"t"`         // °R
	Rs        float64   `json:"rs"`        // solution GOR at min(P, Pb), scf/STB
	GammaGas  float64   `json:"gamma_gas"` // separator gas gravity
	API       float64   `json:"api"`
	Pb        float64   `json:"pb"` // psia
	Co        float64   `json:"co"` // undersaturated compressibility, 1/psi
	Separator Separator `json:"separator"`
}

func (in BoInput) Validate() error {
	return pvt.FirstError(
		pvt.Pressure("pressure", in.P),
		pvt.Temperature("temperature", in.T),
		pvt.NonNegative("Rs", in.Rs),
		pvt.Positive("gas gravity", in.GammaGas),
		pvt.Positive("API gravity", in.API),
		pvt.Pressure("bubble-point pressure", in.Pb),
		pvt.NonNegative("oil compressibility", in.Co),
		in.Separator.Validate(),
	)
}

func (in BoInput) tf() float64 { return pvt.Fahrenheit(in.T) }

// Undersaturated shrinks a bubble-point FVF above Pb: B = Bb·exp(c(Pb − P)).
// At P ≤ Pb it returns bb unchanged.
func Undersaturated(bb, c, p, pb float64) float64 {
	if p <= pb {
		return bb
	}
	return bb * math.Exp(c*(pb-p))
}

// BobStanding is Standing's saturated oil FVF, bbl/STB.
func BobStanding(in BoInput) float64 {
	gammaOil := pvt.SpecificGravity(in.API)
	f := in.Rs*math.Sqrt(in.GammaGas/gammaOil) + 1.25*in.tf()
	return 0.9759 + 12e-5*math.Pow(f, 1.2)
}

// BobVazquezBeggs is the Vazquez-Beggs saturated oil FVF.
func BobVazquezBeggs(in BoInput) float64 {
	c1, c2, c3 := 4.670e-4, 1.100e-5, 1.3370e-9
	if in.API <= 30 {
		c1, c2, c3 = 4.677e-4, 1.751e-5, -1.8106e-8
	}
	g := in.Separator.vazquezBeggsGravity(in.GammaGas, in.API)
	x := (in.tf() - 60) * in.API / g
	return 1 + c1*in.Rs + c2*x + c3*in.Rs*x
}

// BobGlaso is Glasø's saturated oil FVF.
func BobGlaso(in BoInput) float64 {
	gammaOil := pvt.SpecificGravity(in.API)
	f := in.Rs*math.Pow(in.GammaGas/gammaOil, 0.526) + 0.968*in.tf()
	x := math.Log10(f)
	return 1 + math.Pow(10, -6.58511+2.91329*x-0.27683*x*x)
}

// BobTotal is the TOTAL saturated oil FVF.
func BobTotal(in BoInput) float64 {
	x := (in.tf() - 60) * in.API / in.GammaGas
	return 1.022 + 4.857e-4*in.Rs - 2.009e-6*x + 17.569e-9*in.Rs*x
}

// BobAlMarhoun is Al-Marhoun's saturated oil FVF.
func BobAlMarhoun(in BoInput) float64 {
	gammaOil := pvt.SpecificGravity(in.API)
	f := math.Pow(in.Rs, 0.74239) * math.Pow(in.GammaGas, 0.323294) * math.Pow(gammaOil, -1.20204)
	return 0.497069 + 0.862963e-3*in.T + 0.182594e-2*f + 0.318099e-5*f*f
}

// BobDoklaOsman is the Dokla-Osman saturated oil FVF.
func BobDoklaOsman(in BoInput) float64 {
	gammaOil := pvt.SpecificGravity(in.API)
	f := math.Pow(in.Rs, 0.773572) * math.Pow(in.GammaGas, 0.40402) * math.Pow(gammaOil, -0.882605)
	return 0.431936e-1 + 0.156667e-2*in.T + 0.139775e-2*f + 0.380525e-5*f*f
}

// BobPetroskyFarshad is the Petrosky-Farshad saturated oil FVF.
func BobPetroskyFarshad(in BoInput) float64 {
	gammaOil := pvt.SpecificGravity(in.API)
	f := math.Pow(in.Rs, 0.3738)*math.Pow(in.GammaGas, 0.2914)/math.Pow(gammaOil, 0.6265) + 0.24626*math.Pow(in.tf(), 0.5371)
	return 1.0113 + 7.2046e-5*math.Pow(f, 3.0936)
}

// BobKartoatmodjoSchmidt is the Kartoatmodjo-Schmidt saturated oil FVF.
func BobKartoatmodjoSchmidt(in BoInput) float64 {
	gammaOil := pvt.SpecificGravity(in.API)
	g := in.Separator.kartoatmodjoGravity(in.GammaGas, in.API)
	f := math.Pow(in.Rs, 0.755)*math.Pow(g, 0.25)*math.Pow(gammaOil, -1.5) + 0.45*in.tf()
	return 0.98496 + 1e-4*math.Pow(f, 1.5)
}

// formationVolume wraps a saturated formula with the undersaturated
// branch.
func formationVolume(bob func(BoInput) float64, needsF bool) func(BoInput) (float64, error) {
	return func(in BoInput) (float64, error) {
		if needsF {
			if err := aboveZeroF(in.T); err != nil {
				return 0, err
			}
		}
		return Undersaturated(bob(in), in.Co, in.P, in.Pb), nil
	}
}

func boRs(in BoInput) float64 { return in.Rs }
func boAPI(in BoInput) float64 { return in.API }

var boCatalog = pvt.NewCatalog[BoInput]("oil formation volume factor", BoInput.Validate)

func init() {
	rs := func(hi float64) pvt.Limit[BoInput] { return pvt.AtMost("Rs", hi, boRs) }
	api := func(lo, hi float64) pvt.Limit[BoInput] { return pvt.Within("API", lo, hi, boAPI) }

	boCatalog.
		Register(pvt.Correlation[BoInput]{Variant: Standing, Func: formationVolume(BobStanding, false),
			Limits: []pvt.Limit[BoInput]{rs(1425), api(16.5, 63.8)}}).
		Register(pvt.Correlation[BoInput]{Variant: VazquezBeggs, Func: formationVolume(BobVazquezBeggs, false),
			Limits: []pvt.Limit[BoInput]{rs(2199), api(15.3, 59.5)}}).
		Register(pvt.Correlation[BoInput]{Variant: Glaso, Func: formationVolume(BobGlaso, false),
			Limits: []pvt.Limit[BoInput]{rs(2637), api(22.3, 48.1)}}).
		Register(pvt.Correlation[BoInput]{Variant: Total, Func: formationVolume(BobTotal, false),
			Limits: []pvt.Limit[BoInput]{api(0, 45)}}).
		Register(pvt.Correlation[BoInput]{Variant: AlMarhoun, Func: formationVolume(BobAlMarhoun, false),
			Limits: []pvt.Limit[BoInput]{rs(1602), api(19.4, 44.6)}}).
		Register(pvt.Correlation[BoInput]{Variant: DoklaOsman, Func: formationVolume(BobDoklaOsman, false),
			Limits: []pvt.Limit[BoInput]{rs(2266), api(28.2, 40.3)}}).
		Register(pvt.Correlation[BoInput]{Variant: PetroskyFarshad, Func: formationVolume(BobPetroskyFarshad, true),
			Limits: []pvt.Limit[BoInput]{rs(1406), api(16.3, 45)}}).
		Register(pvt.Correlation[BoInput]{Variant: KartoatmodjoSchmidt, Func: formationVolume(BobKartoatmodjoSchmidt, false),
			Limits: []pvt.Limit[BoInput]{rs(2890), api(14.4, 58.9)}})
}

// FormationVolumeCatalog returns the Bo registry.
func FormationVolumeCatalog() *pvt.Catalog[BoInput] { return boCatalog }

// FormationVolume evaluates the Bo variant v, bbl/STB.
func FormationVolume(v pvt.Variant, in BoInput, p pvt.Policy) (float64, error) {
	return boCatalog.Compute(v, in, p)
}

// BtInput is the state for total (two-phase) formation volume factor
// correlations. Bo and Bg are read by the material balance only.
type BtInput struct {
	P        float64 `json:"p"`         // psia
	T        float64 `json:"t"`         // °R
	Rs       float64 `json:"rs"`        // scf/STB
	Rsi      float64 `json:"rsi"`       // initial solution GOR, scf/STB
	GammaGas float64 `json:"gamma_gas"` // gas gravity
	API      float64 `json:"api"`
	Bo       float64 `json:"bo,omitempty"` // bbl/STB
	Bg       float64 `json:"bg,omitempty"` // bbl/scf
}

func (in BtInput) Validate() error {
	return pvt.FirstError(
		pvt.Pressure("pressure", in.P),
		pvt.Temperature("temperature", in.T),
		pvt.Positive("Rs", in.Rs),
		pvt.NonNegative("Rsi", in.Rsi),
		pvt.Positive("gas gravity", in.GammaGas),
		pvt.Positive("API gravity", in.API),
		pvt.NonNegative("Bo", in.Bo),
		pvt.NonNegative("Bg", in.Bg),
	)
}

// BtMaterialBalance is Bt = Bo + (Rsi − Rs)·Bg.
func BtMaterialBalance(in BtInput) (float64, error) {
	if err := pvt.FirstError(pvt.Positive("Bo", in.Bo), pvt.Positive("Bg", in.Bg)); err != nil {
		return 0, err
	}
	return in.Bo + (in.Rsi-in.Rs)*in.Bg, nil
}

// BtGlaso is Glasø's total formation volume factor.
func BtGlaso(in BtInput) float64 {
	gammaOil := pvt.SpecificGravity(in.API)
	f := in.Rs * math.Sqrt(pvt.Fahrenheit(in.T)) / math.Pow(in.GammaGas, 0.3) * math.Pow(in.P, -1.1089) *
		math.Pow(gammaOil, 2.9*math.Pow(10, -0.00027*in.Rs))
	x := math.Log10(f)
	return math.Pow(10, 8.0135e-2+4.7257e-1*x+1.7351e-1*x*x)
}

// BtAlMarhoun is Al-Marhoun's total formation volume factor.
func BtAlMarhoun(in BtInput) float64 {
	gammaOil := pvt.SpecificGravity(in.API)
	f := math.Pow(in.Rs, 0.644516) * math.Pow(in.GammaGas, -1.07934) * math.Pow(gammaOil, 0.724874) *
		math.Pow(in.P, -0.76191) * math.Pow(in.T, 2.00621)
	return 0.314693 + 0.106253e-4*f + 0.18883e-10*f*f
}

var btCatalog = pvt.NewCatalog[BtInput]("total formation volume factor", BtInput.Validate)

func init() {
	btCatalog.
		Register(pvt.Correlation[BtInput]{Variant: MaterialBalance, Func: BtMaterialBalance}).
		Register(pvt.Correlation[BtInput]{Variant: Glaso, Func: func(in BtInput) (float64, error) {
			if err := aboveZeroF(in.T); err != nil {
				return 0, err
			}
			return BtGlaso(in), nil
		}}).
		Register(pvt.Correlation[BtInput]{Variant: AlMarhoun, Func: pvt.Closed(BtAlMarhoun)})
}

// TotalVolumeCatalog returns the Bt registry.
func TotalVolumeCatalog() *pvt.Catalog[BtInput] { return btCatalog }

// TotalVolume evaluates the Bt variant v, bbl/STB.
func TotalVolume(v pvt.Variant, in BtInput, p pvt.Policy) (float64, error) {
	return btCatalog.Compute(v, in, p)
}
