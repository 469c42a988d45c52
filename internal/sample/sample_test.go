package sample

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gopvt/pkg/gas"
	"github.com/alexiusacademia/gopvt/pkg/oil"
	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

func writeSample(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeSample(t, `{
		"name": "Well A-1",
		"temperature": 640,
		"gas": {"gravity": 0.7, "impurities": {"co2": 0.05}, "wichert_aziz": true},
		"oil": {"api": 31, "gamma_gas": 0.95, "rsb": 675},
		"water": {"salinity": 20000}
	}`)

	s, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Well A-1", s.Name)
	require.NotNil(t, s.Gas)
	assert.Equal(t, 0.05, s.Gas.Impurities.CO2)
	assert.Equal(t, 20000.0, s.Water.Salinity)

	pc, err := s.Gas.Pseudocritical(pvt.Policy{})
	require.NoError(t, err)
	sweet := gas.PseudocriticalSutton(0.7, gas.Impurities{CO2: 0.05})
	assert.Equal(t, gas.WichertAziz(sweet, 0.05, 0), pc)

	pb, err := s.Oil.BubblePoint(oil.Standing, s.Temperature, pvt.Policy{})
	require.NoError(t, err)
	assert.InEpsilon(t, 2504.883574, pb, 1e-8)

	s.Oil.Pb = 2300
	pb, err = s.Oil.BubblePoint(oil.Standing, s.Temperature, pvt.Policy{})
	require.NoError(t, err)
	assert.Equal(t, 2300.0, pb)
}

func TestCompositionSample(t *testing.T) {
	path := writeSample(t, `{
		"temperature": 660,
		"gas": {"composition": {"fractions": {"C1": 0.9, "C2": 0.05, "C3": 0.03, "N2": 0.02}}}
	}`)

	s, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, gas.StewartBurkhardtVoo, s.Gas.method())

	pc, err := s.Gas.Pseudocritical(pvt.Policy{})
	require.NoError(t, err)
	want, err := gas.PseudocriticalSBV(*s.Gas.Composition)
	require.NoError(t, err)
	assert.Equal(t, want, pc)

	gamma, err := s.Gas.SpecificGravity()
	require.NoError(t, err)
	assert.Greater(t, gamma, 0.55)
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadFromFile(writeSample(t, `{"temperature": `))
	assert.ErrorContains(t, err, "decoding")

	_, err = LoadFromFile(writeSample(t, `{"temperature": 640}`))
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = LoadFromFile(writeSample(t, `{"temperature": 0, "water": {"salinity": 1}}`))
	assert.ErrorIs(t, err, pvt.ErrDomain)

	_, err = LoadFromFile(writeSample(t, `{"temperature": 640, "gas": {}}`))
	assert.ErrorAs(t, err, &ve)

	_, err = LoadFromFile(writeSample(t, `{"temperature": 640, "oil": {"api": 31, "gamma_gas": 0.95, "rsb": -5}}`))
	assert.ErrorIs(t, err, pvt.ErrDomain)
}
