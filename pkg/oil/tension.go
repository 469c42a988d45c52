package oil

import (
	"math"

	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// InterfacialTension is the Baker-Swerdloff (1956) gas-oil interfacial
// tension, dynes/cm. The dead-oil tension is read at 68 °F and 100 °F and
// interpolated linearly between them, then reduced by dissolved gas. At
// pressures where the correction reaches zero the phases are miscible and
// the tension is zero.
func InterfacialTension(p, t, api float64) (float64, error) {
	if err := pvt.FirstError(
		pvt.Pressure("pressure", p),
		pvt.Temperature("temperature", t),
		pvt.Positive("API gravity", api),
	); err != nil {
		return 0, err
	}

	s68 := 39 - 0.2571*api
	s100 := 37.5 - 0.2571*api
	var dead float64
	switch tf := pvt.Fahrenheit(t); {
	case tf <= 68:
		dead = s68
	case tf >= 100:
		dead = s100
	default:
		dead = s68 - (tf-68)*(s68-s100)/32
	}
	return dead * math.Max(0, 1-0.024*math.Pow(p, 0.45)), nil
}

// SpecificGravityFromDensity is the oil specific gravity ρo/ρw.
func SpecificGravityFromDensity(rhoOil, rhoWater float64) (float64, error) {
	if err := pvt.FirstError(pvt.Positive("oil density", rhoOil), pvt.Positive("water density", rhoWater)); err != nil {
		return 0, err
	}
	return rhoOil / rhoWater, nil
}

// SpecificGravity converts °API to oil specific gravity.
func SpecificGravity(api float64) float64 { return pvt.SpecificGravity(api) }

// API converts oil specific gravity to °API.
func API(gamma float64) float64 { return pvt.API(gamma) }
