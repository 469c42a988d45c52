package pvt

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/unit"
)

// Unit conversion constants.
const (
	PascalPerPsi = 6894.757293168

	// AirMolecularWeight is used for gas specific gravity, lb/lb-mol.
	AirMolecularWeight = 28.96

	// WaterDensity at standard conditions, lb/ft³.
	WaterDensity = 62.4
)

// fahrenheitShift is the rounded 460 offset that every published oilfield
// correlation in this library was fitted with.
const fahrenheitShift = 460.0

// Fahrenheit converts °R to the °F convention of the oilfield correlations
// (T - 460).
func Fahrenheit(rankine float64) float64 {
	return rankine - fahrenheitShift
}

// Rankine converts °F to °R (T + 460).
func Rankine(fahrenheit float64) float64 {
	return fahrenheit + fahrenheitShift
}

// Kelvin converts °R to an SI temperature.
func Kelvin(rankine float64) unit.Temperature {
	return unit.Temperature(rankine*5/9) * unit.Kelvin
}

// Pascal converts psia to an SI pressure.
func Pascal(psia float64) unit.Pressure {
	return unit.Pressure(psia*PascalPerPsi) * unit.Pascal
}

// WeightPercent converts a salinity in ppm to weight percent.
func WeightPercent(ppm float64) float64 {
	return ppm / 1e4
}

// SpecificGravity converts API gravity to oil specific gravity (water = 1).
func SpecificGravity(api float64) float64 {
	return 141.5 / (api + 131.5)
}

// API converts oil specific gravity to API gravity.
func API(gamma float64) float64 {
	return 141.5/gamma - 131.5
}

// Span returns n evenly spaced values from lo to hi inclusive.
func Span(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Steps returns lo, lo+step, ... up to and including hi (within half a step).
func Steps(lo, hi, step float64) []float64 {
	if step <= 0 || hi < lo {
		return []float64{lo}
	}
	n := int((hi-lo)/step+0.5) + 1
	return Span(lo, lo+float64(n-1)*step, n)
}
