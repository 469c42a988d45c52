package water

import (
	"fmt"

	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// Selection picks one variant per water property.
type Selection struct {
	Rsw             pvt.Variant `json:"rsw"`
	FormationVolume pvt.Variant `json:"bw"`
	Compressibility pvt.Variant `json:"cw"`
	Viscosity       pvt.Variant `json:"viscosity"`
	Density         pvt.Variant `json:"density"`
	Tension         pvt.Variant `json:"tension"`
}

// DefaultSelection is a gas-saturated brine workflow.
func DefaultSelection() Selection {
	return Selection{
		Rsw:             McCoy,
		FormationVolume: McCain,
		Compressibility: DodsonStanding,
		Viscosity:       McCain,
		Density:         McCain,
		Tension:         JenningsNewman,
	}
}

// Properties is a full brine report at one state.
type Properties struct {
	P               float64 `json:"p"`
	T               float64 `json:"t"`
	Salinity        float64 `json:"salinity"`
	Rsw             float64 `json:"rsw"`
	FormationVolume float64 `json:"bw"`
	Compressibility float64 `json:"cw"`
	Viscosity       float64 `json:"viscosity"`
	Density         float64 `json:"density"`
	Tension         float64 `json:"tension"`
}

// Evaluate computes every property in dependency order: Rsw feeds cw and Bw
// feeds density.
func (s Selection) Evaluate(p, t, salinity float64, pol pvt.Policy) (Properties, error) {
	out := Properties{P: p, T: t, Salinity: salinity}
	in := Input{P: p, T: t, Salinity: salinity}

	steps := []struct {
		cat interface {
			Compute(pvt.Variant, Input, pvt.Policy) (float64, error)
		}
		v   pvt.Variant
		dst *float64
	}{
		{rswCatalog, s.Rsw, &out.Rsw},
		{bwCatalog, s.FormationVolume, &out.FormationVolume},
		{cwCatalog, s.Compressibility, &out.Compressibility},
		{muCatalog, s.Viscosity, &out.Viscosity},
		{rhoCatalog, s.Density, &out.Density},
		{sigmaCatalog, s.Tension, &out.Tension},
	}
	for _, st := range steps {
		in.Rsw, in.Bw = out.Rsw, out.FormationVolume
		val, err := st.cat.Compute(st.v, in, pol)
		if err != nil {
			return out, fmt.Errorf("water properties: %w", err)
		}
		*st.dst = val
	}
	return out, nil
}
