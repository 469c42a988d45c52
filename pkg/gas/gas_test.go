package gas

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gopvt/pkg/numeric"
	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

var readmeCritical = Pseudocritical{Ppc: 680, Tpc: 485.9}

func allZ() []pvt.Variant {
	return []pvt.Variant{Papay, BrillBeggs, HallYarborough, Gopal, DranchukAbouKassem, DranchukPurvisRobinson, Shell, LeeKesler}
}

func TestZVariantsRegistered(t *testing.T) {
	assert.ElementsMatch(t, allZ(), ZCatalog().Variants())
}

func TestDranchukPurvisRobinsonReadme(t *testing.T) {
	want := []float64{
		0.8944, 0.7888, 0.7035, 0.6663, 0.6737, 0.7071, 0.7539, 0.8076, 0.8648, 0.9240,
		0.9841, 1.0447, 1.1054, 1.1661, 1.2267, 1.2870, 1.3471, 1.4068, 1.4663, 1.5255,
	}
	pressures := pvt.Steps(500, 10000, 500)
	require.Len(t, pressures, len(want))

	got, err := pvt.Map1(context.Background(), pvt.MapOptions{Workers: 4}, func(p float64) (float64, error) {
		return Z(DranchukPurvisRobinson, ZInput{P: p, T: 654, Pc: readmeCritical}, pvt.Policy{})
	}, pressures)
	require.NoError(t, err)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-3, "P = %g", pressures[i])
	}
}

func TestZIdealGasLimit(t *testing.T) {
	in := ZInput{P: 0.001 * readmeCritical.Ppc, T: 1.5 * readmeCritical.Tpc, Pc: readmeCritical}
	for _, v := range allZ() {
		t.Run(string(v), func(t *testing.T) {
			z, err := Z(v, in, pvt.Policy{})
			require.NoError(t, err)
			tol := 1e-3
			if v == Gopal {
				// The lowest Gopal band is a straight line fitted from Ppr 0.2.
				tol = 5e-3
			}
			assert.InDelta(t, 1.0, z, tol)
		})
	}
}

func TestZReferenceValues(t *testing.T) {
	in := ZInput{P: 2000, T: 654, Pc: readmeCritical}
	want := map[pvt.Variant]float64{
		Papay:                  0.69456,
		BrillBeggs:             0.67629,
		HallYarborough:         0.64317,
		Gopal:                  0.64228,
		DranchukAbouKassem:     0.66648,
		DranchukPurvisRobinson: 0.66626,
		Shell:                  0.66974,
		LeeKesler:              0.67656,
	}
	for v, z := range want {
		got, err := Z(v, in, pvt.Policy{})
		require.NoError(t, err, v)
		assert.InDelta(t, z, got, 2e-4, v)
	}

	in.Omega = 0.1
	z, err := Z(LeeKesler, in, pvt.Policy{})
	require.NoError(t, err)
	assert.InDelta(t, 0.69961, z, 2e-4)
}

func TestZPurityAndElementWise(t *testing.T) {
	pressures := pvt.Span(200, 8000, 40)
	for _, v := range allZ() {
		eval := func(p float64) (float64, error) {
			return Z(v, ZInput{P: p, T: 640, Pc: readmeCritical}, pvt.Policy{})
		}
		vec, err := pvt.Map1(context.Background(), pvt.MapOptions{Workers: 3}, eval, pressures)
		require.NoError(t, err, v)
		for i, p := range pressures {
			a, _ := eval(p)
			b, _ := eval(p)
			assert.Equal(t, a, b, "%s repeated call", v)
			assert.Equal(t, a, vec[i], "%s element %d", v, i)
		}
	}
}

func TestZWithStats(t *testing.T) {
	in := ZInput{P: 2000, T: 654, Pc: readmeCritical}
	z, diag, err := ZWithStats(DranchukAbouKassem, in, pvt.Policy{})
	require.NoError(t, err)
	assert.Equal(t, z, diag.Root)
	assert.Greater(t, diag.Iterations, 0)
	assert.Less(t, math.Abs(diag.Residual), numeric.DefaultTolerance)

	_, diag, err = ZWithStats(Papay, in, pvt.Policy{})
	require.NoError(t, err)
	assert.Equal(t, 0, diag.Iterations)
}

func TestZConvergenceFailure(t *testing.T) {
	in := ZInput{P: 2000, T: 654, Pc: readmeCritical, Solver: numeric.Settings{Tolerance: 1e-14, MaxIterations: 1}}
	_, err := Z(HallYarborough, in, pvt.Policy{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, numeric.ErrConvergence))

	var ce *numeric.ConvergenceError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 1, ce.Iterations)
}

func TestZErrors(t *testing.T) {
	_, err := Z("van-der-waals", ZInput{P: 1000, T: 600, Pc: readmeCritical}, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrUnsupportedVariant)

	_, err = Z(Papay, ZInput{P: -10, T: 600, Pc: readmeCritical}, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrDomain)

	_, err = Z(Papay, ZInput{P: 1000, T: -1, Pc: readmeCritical}, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrDomain)

	_, err = Z(Papay, ZInput{P: 1000, T: 600}, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrDomain)
}

func TestZRangePolicy(t *testing.T) {
	// Ppr = 25 lies outside Papay's fitted range.
	in := ZInput{P: 25 * 680, T: 654, Pc: readmeCritical}

	var warnings []pvt.Warning
	z, err := Z(Papay, in, pvt.Policy{Range: pvt.Warn, Notify: func(w pvt.Warning) { warnings = append(warnings, w) }})
	require.NoError(t, err)
	assert.Equal(t, ZPapay(25, 654/485.9), z)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Ppr", warnings[0].Param)

	_, err = Z(Papay, in, pvt.Policy{Range: pvt.Reject})
	assert.ErrorIs(t, err, pvt.ErrOutOfRange)
}

func TestPseudocriticalGravity(t *testing.T) {
	pc := PseudocriticalSutton(0.7, Impurities{})
	assert.InDelta(t, 663.336, pc.Ppc, 1e-9)
	assert.InDelta(t, 377.59, pc.Tpc, 1e-9)

	pc = PseudocriticalSutton(0.7, Impurities{N2: 0.02, CO2: 0.05, H2S: 0.1})
	assert.InDelta(t, 744.57888, pc.Ppc, 1e-4)
	assert.InDelta(t, 412.5397, pc.Tpc, 1e-5)

	pc = PseudocriticalBrownKatz(0.7, Impurities{}, false)
	assert.InDelta(t, 669.125, pc.Ppc, 1e-9)
	assert.InDelta(t, 389.375, pc.Tpc, 1e-9)

	pc = PseudocriticalBrownKatz(0.7, Impurities{N2: 0.02, CO2: 0.05, H2S: 0.1}, true)
	assert.InDelta(t, 751.66233, pc.Ppc, 1e-5)
	assert.InDelta(t, 394.54549, pc.Tpc, 1e-5)
}

func sampleComposition() Composition {
	return Composition{Fractions: map[Component]float64{
		Methane: 0.85, Ethane: 0.06, Propane: 0.03, NormalButane: 0.02, CarbonDioxide: 0.03, Nitrogen: 0.01,
	}}
}

func TestPseudocriticalComposition(t *testing.T) {
	c := sampleComposition()

	pc, err := PseudocriticalKay(c)
	require.NoError(t, err)
	assert.InDelta(t, 676.661, pc.Ppc, 1e-6)
	assert.InDelta(t, 378.8742, pc.Tpc, 1e-6)

	pc, err = PseudocriticalSBV(c)
	require.NoError(t, err)
	assert.InDelta(t, 683.35620, pc.Ppc, 1e-4)
	assert.InDelta(t, 381.57898, pc.Tpc, 1e-4)

	m, err := c.MolecularWeight()
	require.NoError(t, err)
	assert.InDelta(t, 19.52657, m, 1e-5)

	g, err := c.SpecificGravity()
	require.NoError(t, err)
	assert.InDelta(t, 0.674260, g, 1e-6)

	assert.Equal(t, Impurities{N2: 0.01, CO2: 0.03}, c.Impurities())
}

func TestCompositionValidate(t *testing.T) {
	c := sampleComposition()
	c.Fractions[Methane] = 0.95
	assert.ErrorIs(t, c.Validate(), pvt.ErrDomain)

	c = sampleComposition()
	c.Fractions["Xe"] = 0.001
	assert.Error(t, c.Validate())

	c = sampleComposition()
	c.Fractions[Methane] = 0.80
	c.Fractions[HeptanesPlus] = 0.05
	assert.ErrorIs(t, c.Validate(), pvt.ErrDomain, "C7+ needs its molecular weight")

	c.PlusMolecularWeight = 150
	c.PlusGravity = 0.78
	require.NoError(t, c.Validate())
	_, err := PseudocriticalKay(c)
	require.NoError(t, err)
}

func TestMathewsRoland(t *testing.T) {
	pc, err := MathewsRoland(150, 0.78)
	require.NoError(t, err)
	assert.InDelta(t, 335.44356, pc.Ppc, 1e-4)
	assert.InDelta(t, 1133.08667, pc.Tpc, 1e-4)

	_, err = MathewsRoland(60, 0.7)
	assert.ErrorIs(t, err, pvt.ErrDomain)
}

func TestPseudocriticalFor(t *testing.T) {
	c := sampleComposition()
	kay, err := PseudocriticalFor("kay", PseudocriticalInput{Composition: &c}, pvt.Policy{})
	require.NoError(t, err)
	direct, _ := PseudocriticalKay(c)
	assert.Equal(t, direct, kay)

	_, err = PseudocriticalFor(Kay, PseudocriticalInput{Gravity: 0.7}, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrDomain)

	sbv, err := PseudocriticalFor("stewart_burkhardt_voo", PseudocriticalInput{Composition: &c}, pvt.Policy{})
	require.NoError(t, err)
	direct, _ = PseudocriticalSBV(c)
	assert.Equal(t, direct, sbv)

	_, err = PseudocriticalFor(Sutton, PseudocriticalInput{Gravity: 1.8}, pvt.Policy{Range: pvt.Reject})
	assert.ErrorIs(t, err, pvt.ErrOutOfRange)

	_, err = PseudocriticalFor("standing", PseudocriticalInput{Gravity: 0.7}, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrUnsupportedVariant)
	var unsupported *pvt.UnsupportedVariantError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "gas pseudocritical properties", unsupported.Property)

	corr, err := PseudocriticalCatalog().Lookup("BROWN KATZ")
	require.NoError(t, err)
	assert.Equal(t, BrownKatz, corr.Variant)

	assert.Equal(t, []pvt.Variant{Sutton, BrownKatz, Kay, StewartBurkhardtVoo}, PseudocriticalMethods())
}

func TestWichertAzizComposesWithEveryZ(t *testing.T) {
	corrected := WichertAziz(readmeCritical, 0.05, 0.10)
	assert.InDelta(t, 648.49083, corrected.Ppc, 1e-4)
	assert.InDelta(t, 465.16456, corrected.Tpc, 1e-4)
	assert.NotEqual(t, readmeCritical, corrected)

	// A sweet gas is left alone.
	assert.Equal(t, readmeCritical, WichertAziz(readmeCritical, 0, 0))

	in := ZInput{P: 2000, T: 654, Pc: corrected}
	ppr, tpr := in.Reduced()
	explicit := map[pvt.Variant]func(float64, float64) float64{
		Papay: ZPapay, BrillBeggs: ZBrillBeggs, Gopal: ZGopal, Shell: ZShell,
	}
	for v, f := range explicit {
		z, err := Z(v, in, pvt.Policy{})
		require.NoError(t, err)
		assert.Equal(t, f(ppr, tpr), z, v)
	}
	implicitFns := map[pvt.Variant]func(float64, float64, numeric.Settings) (float64, numeric.Result, error){
		HallYarborough: ZHallYarborough, DranchukAbouKassem: ZDranchukAbouKassem, DranchukPurvisRobinson: ZDranchukPurvisRobinson,
	}
	for v, f := range implicitFns {
		z, err := Z(v, in, pvt.Policy{})
		require.NoError(t, err)
		want, _, err := f(ppr, tpr, numeric.Settings{})
		require.NoError(t, err)
		assert.Equal(t, want, z, v)
	}
	z, err := Z(LeeKesler, in, pvt.Policy{})
	require.NoError(t, err)
	want, _, _ := ZLeeKesler(ppr, tpr, 0, numeric.Settings{})
	assert.Equal(t, want, z)
}

func TestVolumetricProperties(t *testing.T) {
	bg, err := FormationVolumeFactor(0.85, 2000, 640, CubicFeet)
	require.NoError(t, err)
	assert.InDelta(t, 0.00768944, bg, 1e-10)

	bg, err = FormationVolumeFactor(0.85, 2000, 640, Barrels)
	require.NoError(t, err)
	assert.InDelta(t, 0.00136816, bg, 1e-10)

	eg, err := ExpansionFactor(0.85, 2000, 640, CubicFeet)
	require.NoError(t, err)
	assert.InDelta(t, 130.036765, eg, 1e-5)

	rho, err := Density(2000, 640, 0.85, 0.7)
	require.NoError(t, err)
	assert.InDelta(t, 6.9485294, rho, 1e-6)

	_, err = FormationVolumeFactor(0, 2000, 640, CubicFeet)
	assert.ErrorIs(t, err, pvt.ErrDomain)
}

func TestViscosityLGE(t *testing.T) {
	mu, err := ViscosityLGE(2000, 640, 0.85, 20.27)
	require.NoError(t, err)
	assert.InDelta(t, 0.0168485, mu, 1e-6)
	assert.InDelta(t, 20.272, MolecularWeight(0.7), 1e-9)

	_, err = ViscosityLGE(2000, 640, 0.85, 0)
	assert.ErrorIs(t, err, pvt.ErrDomain)
}

func TestCompressibility(t *testing.T) {
	in := ZInput{P: 2000, T: 654, Pc: readmeCritical}

	cg, err := CompressibilityOf(Papay, in, pvt.Policy{})
	require.NoError(t, err)
	assert.InDelta(t, 5.8368410e-4, cg, 1e-10)

	cg, err = CompressibilityOf(BrillBeggs, in, pvt.Policy{})
	require.NoError(t, err)
	assert.InDelta(t, 5.8016629e-4, cg, 1e-10)

	_, err = CompressibilityOf(HallYarborough, in, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrUnsupportedVariant)

	// The numerical form agrees with the analytic ones.
	for _, v := range []pvt.Variant{Papay, BrillBeggs} {
		analytic, err := CompressibilityOf(v, in, pvt.Policy{})
		require.NoError(t, err)
		numerical, err := Compressibility(v, in, pvt.Policy{})
		require.NoError(t, err)
		assert.InEpsilon(t, analytic, numerical, 1e-6, v)
	}

	cg, err = Compressibility(DranchukPurvisRobinson, in, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 5.350739e-4, cg, 1e-5)

	// Inside one Gopal cell z is linear in Ppr.
	gin := ZInput{P: 3 * 680, T: 1.5 * 485.9, Pc: readmeCritical}
	analytic, err := CompressibilityOf(Gopal, gin, pvt.Policy{})
	require.NoError(t, err)
	numerical, err := Compressibility(Gopal, gin, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, analytic, numerical, 1e-6)
}
