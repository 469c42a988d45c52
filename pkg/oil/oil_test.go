package oil

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// A 31 °API oil with 675 scf/STB of 0.95 gravity gas at 180 °F.
var sample = PbInput{Rsb: 675, GammaGas: 0.95, T: 640, API: 31}

var pbVariants = []pvt.Variant{
	Standing, Lasater, VazquezBeggs, Glaso, Total, AlMarhoun, DoklaOsman, PetroskyFarshad, KartoatmodjoSchmidt,
}

func TestBubblePointValues(t *testing.T) {
	want := map[pvt.Variant]float64{
		Standing:            2504.883574,
		Lasater:             2523.471112,
		VazquezBeggs:        2832.602368,
		Glaso:               2921.032248,
		Total:               2371.353880,
		AlMarhoun:           2135.681452,
		DoklaOsman:          2059.935709,
		PetroskyFarshad:     2680.407399,
		KartoatmodjoSchmidt: 2987.503296,
	}
	assert.Equal(t, pbVariants, BubblePointCatalog().Variants())
	for v, pb := range want {
		got, err := BubblePoint(v, sample, pvt.Policy{})
		require.NoError(t, err, v)
		assert.InEpsilon(t, pb, got, 1e-8, v)
	}
}

func TestBubblePointCorrections(t *testing.T) {
	sour := sample
	sour.Impurities = Impurities{CO2: 0.2, H2S: 0.1}
	pb, err := BubblePoint(Standing, sour, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 2174.376878, pb, 1e-8)

	nitrogen := sample
	nitrogen.Impurities = Impurities{N2: 0.05}
	pb, err = BubblePoint(Standing, nitrogen, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 2691.903306, pb, 1e-8)

	sep := sample
	sep.Separator = Separator{P: 100, T: 545}
	pb, err = BubblePoint(VazquezBeggs, sep, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 2854.935969, pb, 1e-8)

	pb, err = BubblePoint(KartoatmodjoSchmidt, sep, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 3014.502972, pb, 1e-8)

	assert.Equal(t, 1.0, BubblePointCorrection(Impurities{}, 180, 31))
}

func TestBubblePointErrors(t *testing.T) {
	bad := sample
	bad.Rsb = -10
	_, err := BubblePoint(Standing, bad, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrDomain)

	bad = sample
	bad.Separator = Separator{P: 100}
	_, err = BubblePoint(VazquezBeggs, bad, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrDomain)

	_, err = BubblePoint(Beal, sample, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrUnsupportedVariant)

	light := sample
	light.API = 50
	_, err = BubblePoint(Total, light, pvt.Policy{Range: pvt.Reject})
	assert.ErrorIs(t, err, pvt.ErrOutOfRange)

	var warned []pvt.Warning
	_, err = BubblePoint(Total, light, pvt.Policy{Range: pvt.Warn, Notify: func(w pvt.Warning) { warned = append(warned, w) }})
	require.NoError(t, err)
	require.Len(t, warned, 1)
	assert.Equal(t, "API", warned[0].Param)
}

func rsAt(p, pb float64) RsInput {
	return RsInput{P: p, T: sample.T, GammaGas: sample.GammaGas, API: sample.API, Pb: pb}
}

func TestSolutionGORInvertsBubblePoint(t *testing.T) {
	// TOTAL publishes Pb and Rs as separate fits.
	tolerance := map[pvt.Variant]float64{
		Standing:            5e-4,
		Lasater:             2e-3,
		VazquezBeggs:        1e-9,
		Glaso:               5e-4,
		AlMarhoun:           5e-4,
		DoklaOsman:          5e-4,
		PetroskyFarshad:     5e-4,
		KartoatmodjoSchmidt: 1e-9,
	}
	for v, tol := range tolerance {
		pb, err := BubblePoint(v, sample, pvt.Policy{})
		require.NoError(t, err, v)
		rs, err := SolutionGOR(v, rsAt(pb, pb), pvt.Policy{})
		require.NoError(t, err, v)
		assert.InEpsilon(t, sample.Rsb, rs, tol, v)
	}
}

func TestSolutionGORBranches(t *testing.T) {
	want := map[pvt.Variant]float64{
		Standing:            366.835646,
		Lasater:             326.918548,
		VazquezBeggs:        317.380159,
		Glaso:               316.177797,
		Total:               393.665440,
		AlMarhoun:           411.758906,
		DoklaOsman:          435.488912,
		PetroskyFarshad:     372.982504,
		KartoatmodjoSchmidt: 317.716775,
	}
	for v, rs := range want {
		got, err := SolutionGOR(v, rsAt(1500, 2500), pvt.Policy{})
		require.NoError(t, err, v)
		assert.InEpsilon(t, rs, got, 1e-8, v)

		atPb, err := SolutionGOR(v, rsAt(2500, 2500), pvt.Policy{})
		require.NoError(t, err, v)
		above, err := SolutionGOR(v, rsAt(4000, 2500), pvt.Policy{})
		require.NoError(t, err, v)
		assert.Equal(t, atPb, above, "%s is flat above Pb", v)
		assert.Greater(t, atPb, got, v)

		justBelow, err := SolutionGOR(v, rsAt(2500-1e-9, 2500), pvt.Policy{})
		require.NoError(t, err, v)
		assert.InEpsilon(t, atPb, justBelow, 1e-9, v)
	}
}

func boAt(p float64) BoInput {
	return BoInput{P: p, T: sample.T, Rs: 675, GammaGas: sample.GammaGas, API: sample.API, Pb: 2500, Co: 1.5e-5}
}

func TestFormationVolume(t *testing.T) {
	want := map[pvt.Variant]float64{
		Standing:            1.41380858,
		VazquezBeggs:        1.36183259,
		Glaso:               1.39216414,
		Total:               1.38841832,
		AlMarhoun:           1.38480784,
		DoklaOsman:          1.39584508,
		PetroskyFarshad:     1.41441855,
		KartoatmodjoSchmidt: 1.37368539,
	}
	assert.Len(t, FormationVolumeCatalog().Variants(), 8)
	for v, bob := range want {
		atPb, err := FormationVolume(v, boAt(2500), pvt.Policy{})
		require.NoError(t, err, v)
		assert.InEpsilon(t, bob, atPb, 1e-8, v)

		below, err := FormationVolume(v, boAt(2000), pvt.Policy{})
		require.NoError(t, err, v)
		assert.Equal(t, atPb, below, "%s only depends on Rs below Pb", v)

		justAbove, err := FormationVolume(v, boAt(2500+1e-6), pvt.Policy{})
		require.NoError(t, err, v)
		assert.InEpsilon(t, atPb, justAbove, 1e-10, v)

		above, err := FormationVolume(v, boAt(4000), pvt.Policy{})
		require.NoError(t, err, v)
		assert.InEpsilon(t, atPb*math.Exp(1.5e-5*(2500-4000)), above, 1e-12, v)
	}

	bo, err := FormationVolume(Standing, boAt(4000), pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 1.38235309, bo, 1e-8)

	_, err = FormationVolume(Lasater, boAt(2000), pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrUnsupportedVariant)
}

func TestTotalVolume(t *testing.T) {
	in := BtInput{P: 2000, T: 640, Rs: 500, Rsi: 675, GammaGas: 0.95, API: 31, Bo: 1.3, Bg: 0.0015}

	bt, err := TotalVolume(MaterialBalance, in, pvt.Policy{})
	require.NoError(t, err)
	assert.InDelta(t, 1.5625, bt, 1e-12)

	bt, err = TotalVolume(Glaso, in, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 1.26409899, bt, 1e-8)

	bt, err = TotalVolume(AlMarhoun, in, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 1.12908708, bt, 1e-8)

	in.Bg = 0
	_, err = TotalVolume(MaterialBalance, in, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrDomain)
}

func TestCompressibility(t *testing.T) {
	in := CoInput{P: 3000, T: 640, GammaGas: 0.95, API: 31, Rs: 675}
	want := map[pvt.Variant]float64{
		VazquezBeggs:         1.43597e-05,
		PetroskyFarshad:      1.3861304451e-05,
		KartoatmodjoSchmidt:  1.0735876086e-05,
		McCainRollinsVillena: 8.1494671760e-05,
	}
	for v, co := range want {
		got, err := Compressibility(v, in, pvt.Policy{})
		require.NoError(t, err, v)
		assert.InEpsilon(t, co, got, 1e-8, v)
	}

	noRs := in
	noRs.Rs = 0
	co, err := Compressibility(McCainRollinsVillena, noRs, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 9.0073660701e-05, co, 1e-8)

	withPb := in
	withPb.Pb = 2500
	co, err = Compressibility(McCainRollinsVillena, withPb, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 9.0003905921e-05, co, 1e-8)

	_, err = Compressibility(VazquezBeggs, noRs, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrDomain)
}

func rhoAt(p float64) DensityInput {
	return DensityInput{P: p, T: 640, Pb: 2500, Bo: 1.35, Rs: 675, GammaGas: 0.95, API: 31, Co: 1.2e-5}
}

func TestDensity(t *testing.T) {
	want := map[pvt.Variant][2]float64{
		VazquezBeggs:    {46.66874190, 47.62329039},
		PetroskyFarshad: {46.66874190, 47.61157808},
		Ahmed:           {46.66874190, 46.99133784},
		Standing:        {44.27614531, 45.08033189},
		Basic:           {45.61605713, 46.44458050},
	}
	for v, rho := range want {
		atPb, err := Density(v, rhoAt(2500), pvt.Policy{})
		require.NoError(t, err, v)
		assert.InEpsilon(t, rho[0], atPb, 1e-8, v)

		above, err := Density(v, rhoAt(4000), pvt.Policy{})
		require.NoError(t, err, v)
		assert.InEpsilon(t, rho[1], above, 1e-8, v)

		justAbove, err := Density(v, rhoAt(2500+1e-6), pvt.Policy{})
		require.NoError(t, err, v)
		assert.InEpsilon(t, atPb, justAbove, 1e-9, "%s continuous at Pb", v)
	}
}

func TestDeadOilViscosity(t *testing.T) {
	in := DeadInput{T: 640, API: 31}
	want := map[pvt.Variant]float64{
		Beal:                2.65452674,
		BeggsRobinson:       3.03535769,
		Glaso:               2.75823969,
		Egbogah:             3.49538623,
		KartoatmodjoSchmidt: 2.62786659,
	}
	for v, mu := range want {
		got, err := DeadViscosityCatalog().Compute(v, in, pvt.Policy{})
		require.NoError(t, err, v)
		assert.InEpsilon(t, mu, got, 1e-8, v)
	}

	_, err := DeadViscosityCatalog().Compute(Beal, DeadInput{T: 450, API: 31}, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrDomain)
}

func TestViscosityTiers(t *testing.T) {
	dead := MuDeadKartoatmodjoSchmidt(DeadInput{T: 640, API: 31})

	sat := map[pvt.Variant]float64{ChewConnally: 0.74019733, BeggsRobinson: 0.59961680, KartoatmodjoSchmidt: 0.66387431}
	for v, mu := range sat {
		got, err := SaturatedViscosityCatalog().Compute(v, SaturatedInput{Rs: 675, MuDead: dead}, pvt.Policy{})
		require.NoError(t, err, v)
		assert.InEpsilon(t, mu, got, 1e-8, v)
	}

	muSat := sat[KartoatmodjoSchmidt]
	under := map[pvt.Variant]float64{Beal: 0.72788072, VazquezBeggs: 0.77980355, KartoatmodjoSchmidt: 0.69266383}
	for v, mu := range under {
		got, err := UndersaturatedViscosityCatalog().Compute(v, UndersaturatedInput{P: 4000, Pb: 2500, MuSat: muSat}, pvt.Policy{})
		require.NoError(t, err, v)
		assert.InEpsilon(t, mu, got, 1e-6, v)
	}
}

func TestViscosityChain(t *testing.T) {
	chain := DefaultViscosityChain()

	mu, err := chain.Compute(ViscosityInput{P: 4000, T: 640, API: 31, Rs: 675, Pb: 2500}, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 0.69266383, mu, 1e-6)

	tiers, err := chain.Tiers(ViscosityInput{P: 2000, T: 640, API: 31, Rs: 500, Pb: 2500}, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 0.87169439, tiers.Oil(), 1e-8)
	assert.True(t, math.IsNaN(tiers.Above))
	assert.InEpsilon(t, 2.62786659, tiers.Dead, 1e-8)

	// Tiers mix authors freely.
	mixed := ViscosityChain{Dead: Beal, Saturated: ChewConnally, Undersaturated: VazquezBeggs}
	in := ViscosityInput{P: 4000, T: 640, API: 31, Rs: 675, Pb: 2500}
	got, err := mixed.Compute(in, pvt.Policy{})
	require.NoError(t, err)
	d := MuDeadBeal(DeadInput{T: in.T, API: in.API})
	s := MuSaturatedChewConnally(SaturatedInput{Rs: in.Rs, MuDead: d})
	assert.Equal(t, MuUndersaturatedVazquezBeggs(UndersaturatedInput{P: in.P, Pb: in.Pb, MuSat: s}), got)

	atPb, err := mixed.Compute(ViscosityInput{P: 2500, T: 640, API: 31, Rs: 675, Pb: 2500}, pvt.Policy{})
	require.NoError(t, err)
	assert.Equal(t, s, atPb)

	_, err = ViscosityChain{Dead: "Andrade", Saturated: ChewConnally, Undersaturated: Beal}.Compute(in, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrUnsupportedVariant)
}

func TestViscosityContinuityAtBubblePoint(t *testing.T) {
	// Relative step in μo between P = Pb and just above it.
	cases := []struct {
		variant pvt.Variant
		jump    float64
		delta   float64
	}{
		{Beal, 0, 1e-6},
		{VazquezBeggs, 0, 1e-6},
		{KartoatmodjoSchmidt, 0.00081, 1e-5}, // published 1.00081 leading factor
	}
	for _, tc := range cases {
		t.Run(string(tc.variant), func(t *testing.T) {
			chain := ViscosityChain{Dead: KartoatmodjoSchmidt, Saturated: KartoatmodjoSchmidt, Undersaturated: tc.variant}
			in := ViscosityInput{P: 2500, T: 640, API: 31, Rs: 675, Pb: 2500}
			atPb, err := chain.Compute(in, pvt.Policy{})
			require.NoError(t, err)

			in.P += 1e-3
			above, err := chain.Compute(in, pvt.Policy{})
			require.NoError(t, err)
			assert.InDelta(t, tc.jump, (above-atPb)/atPb, tc.delta)
		})
	}
}

func TestViscosityChainElementWise(t *testing.T) {
	chain := DefaultViscosityChain()
	pressures := pvt.Steps(500, 5000, 250)
	eval := func(p float64) (float64, error) {
		rs, err := SolutionGOR(KartoatmodjoSchmidt, rsAt(p, 2500), pvt.Policy{})
		if err != nil {
			return 0, err
		}
		return chain.Compute(ViscosityInput{P: p, T: 640, API: 31, Rs: rs, Pb: 2500}, pvt.Policy{})
	}
	vec, err := pvt.Map1(context.Background(), pvt.MapOptions{Workers: 4}, eval, pressures)
	require.NoError(t, err)
	for i, p := range pressures {
		want, err := eval(p)
		require.NoError(t, err)
		assert.Equal(t, want, vec[i])
	}
}

func TestInterfacialTension(t *testing.T) {
	cases := []struct {
		name string
		t    float64
		want float64
	}{
		{"cold", 520, 14.35774967},
		{"interpolated", 544, 14.01071947},
		{"hot", 640, 13.66368928},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := InterfacialTension(1000, tc.t, 31)
			require.NoError(t, err)
			assert.InEpsilon(t, tc.want, got, 1e-8)
		})
	}

	miscible, err := InterfacialTension(6000, 640, 31)
	require.NoError(t, err)
	assert.Equal(t, 0.0, miscible)
}

func TestGravityHelpers(t *testing.T) {
	assert.InDelta(t, 0.87076923, SpecificGravity(31), 1e-8)
	assert.InDelta(t, 31.0, API(SpecificGravity(31)), 1e-12)

	g, err := SpecificGravityFromDensity(54.6, 62.4)
	require.NoError(t, err)
	assert.InDelta(t, 0.875, g, 1e-12)

	_, err = SpecificGravityFromDensity(54.6, 0)
	assert.ErrorIs(t, err, pvt.ErrDomain)
}
