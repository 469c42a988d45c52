package water

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// 20,000 ppm brine at 5000 psia and 200 °F.
var brine = Input{P: 5000, T: 660, Salinity: 20000}

func TestCatalogs(t *testing.T) {
	assert.Equal(t, []pvt.Variant{CulbersonMcKetta, McCoy}, SolutionGWRCatalog().Variants())
	assert.Equal(t, []pvt.Variant{McCain, McCoyGasFree, McCoyGasSaturated}, FormationVolumeCatalog().Variants())
	assert.Equal(t, []pvt.Variant{DodsonStanding, Osif, BrillBeggs}, CompressibilityCatalog().Variants())
	assert.Equal(t, []pvt.Variant{VanWingen, MatthewsRussell, McCain, McCoy}, ViscosityCatalog().Variants())
	assert.Equal(t, []pvt.Variant{Basic, McCain}, DensityCatalog().Variants())
	assert.Equal(t, []pvt.Variant{JenningsNewman}, TensionCatalog().Variants())
}

func TestSolutionGWR(t *testing.T) {
	rsw, err := SolutionGWR(CulbersonMcKetta, brine, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 20.0362928468, rsw, 1e-9)

	rsw, err = SolutionGWR("mccoy", brine, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 17.7280614, rsw, 1e-9)

	fresh := brine
	fresh.Salinity = 0
	pure, err := SolutionGWR(McCoy, fresh, pvt.Policy{})
	require.NoError(t, err)
	assert.Greater(t, pure, rsw, "salt lowers gas solubility")
}

func TestFormationVolume(t *testing.T) {
	cases := []struct {
		v    pvt.Variant
		want float64
	}{
		{McCain, 1.0280615169},
		{McCoyGasFree, 1.0216465654},
		{McCoyGasSaturated, 1.0309758029},
	}
	for _, tc := range cases {
		t.Run(string(tc.v), func(t *testing.T) {
			bw, err := FormationVolume(tc.v, brine, pvt.Policy{})
			require.NoError(t, err)
			assert.InEpsilon(t, tc.want, bw, 1e-9)
		})
	}

	assert.InEpsilon(t, 1.0223038965, Undersaturated(1.03, 3e-6, 5000, 2500), 1e-9)
	assert.Equal(t, 1.03, Undersaturated(1.03, 3e-6, 2500, 2500))
	assert.Equal(t, 1.03, Undersaturated(1.03, 3e-6, 1000, 2500))
}

func TestCompressibility(t *testing.T) {
	gassy := brine
	gassy.Rsw = 17.7280614
	cw, err := Compressibility(DodsonStanding, gassy, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 3.225788759826e-06, cw, 1e-8)

	cw, err = Compressibility(DodsonStanding, brine, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 2.786185170097e-06, cw, 1e-9)

	cw, err = Compressibility(Osif, brine, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 2.924874596002e-06, cw, 1e-9)

	cw, err = Compressibility(BrillBeggs, brine, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 2.95228e-06, cw, 1e-9)
}

func TestViscosity(t *testing.T) {
	want := map[pvt.Variant]float64{
		VanWingen:       0.3127972694,
		MatthewsRussell: 0.3315366288,
		McCain:          0.4107046386,
		McCoy:           0.3143523217,
	}
	for v, mu := range want {
		got, err := Viscosity(v, brine, pvt.Policy{})
		require.NoError(t, err, v)
		assert.InEpsilon(t, mu, got, 1e-9, v)
	}

	cold := brine
	cold.T = 450
	_, err := Viscosity(MatthewsRussell, cold, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrDomain)
}

func TestDensity(t *testing.T) {
	in := Input{Salinity: 20000, Bw: 1.02806}

	rho, err := Density(Basic, in, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 61.5405326537, rho, 1e-9)

	rho, err = Density(McCain, in, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 61.5252115246, rho, 1e-9)

	in.Bw = 0
	_, err = Density(Basic, in, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrDomain)
}

func TestInterfacialTension(t *testing.T) {
	sigma, err := InterfacialTension(JenningsNewman, brine, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 43.685755, sigma, 1e-9)

	lower := brine
	lower.P = 3000
	sigma, err = InterfacialTension(JenningsNewman, lower, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 47.190555, sigma, 1e-9)

	hot := brine
	hot.T = 900
	var warned []pvt.Warning
	_, err = InterfacialTension(JenningsNewman, hot, pvt.Policy{Range: pvt.Warn, Notify: func(w pvt.Warning) { warned = append(warned, w) }})
	require.NoError(t, err)
	require.Len(t, warned, 1)
	assert.Equal(t, "T (°F)", warned[0].Param)

	_, err = InterfacialTension(JenningsNewman, hot, pvt.Policy{Range: pvt.Reject})
	assert.ErrorIs(t, err, pvt.ErrOutOfRange)
}

func TestInputValidation(t *testing.T) {
	salty := brine
	salty.Salinity = 400000
	_, err := SolutionGWR(McCoy, salty, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrDomain)

	_, err = SolutionGWR(McCoy, Input{P: -1, T: 660}, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrDomain)

	_, err = FormationVolume(McCoy, brine, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrUnsupportedVariant)
}

func TestSelectionEvaluate(t *testing.T) {
	props, err := DefaultSelection().Evaluate(brine.P, brine.T, brine.Salinity, pvt.Policy{})
	require.NoError(t, err)

	assert.InEpsilon(t, 17.7280614, props.Rsw, 1e-9)
	assert.InEpsilon(t, 1.0280615169, props.FormationVolume, 1e-9)
	assert.InEpsilon(t, 3.225788759826e-06, props.Compressibility, 1e-8)
	assert.InEpsilon(t, 0.4107046386, props.Viscosity, 1e-9)
	assert.Equal(t, RhoMcCain(Input{Salinity: brine.Salinity, Bw: props.FormationVolume}), props.Density)
	assert.InEpsilon(t, 43.685755, props.Tension, 1e-9)

	bad := DefaultSelection()
	bad.Viscosity = "Andrade"
	_, err = bad.Evaluate(brine.P, brine.T, brine.Salinity, pvt.Policy{})
	assert.ErrorIs(t, err, pvt.ErrUnsupportedVariant)
}

func TestElementWise(t *testing.T) {
	pressures := pvt.Steps(500, 5000, 500)
	eval := func(p float64) (float64, error) {
		in := brine
		in.P = p
		return SolutionGWR(CulbersonMcKetta, in, pvt.Policy{})
	}
	vec, err := pvt.Map1(context.Background(), pvt.MapOptions{Workers: 3}, eval, pressures)
	require.NoError(t, err)
	require.Len(t, vec, len(pressures))
	for i, p := range pressures {
		want, err := eval(p)
		require.NoError(t, err)
		assert.Equal(t, want, vec[i])
	}
}
