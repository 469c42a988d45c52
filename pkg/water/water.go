// Package water implements formation-water correlations: solution
// gas-water ratio, formation volume factor, compressibility, viscosity,
// density and gas-water interfacial tension.
//
// Pressures are psia and temperatures °R. Salinity is always given in ppm;
// correlations fitted in weight percent or g/L convert internally.
package water

import (
	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// Correlation variants.
const (
	CulbersonMcKetta  pvt.Variant = "Culberson-McKetta"
	McCoy             pvt.Variant = "McCoy"
	McCain            pvt.Variant = "McCain"
	McCoyGasFree      pvt.Variant = "McCoy-Gas-Free"
	McCoyGasSaturated pvt.Variant = "McCoy-Gas-Saturated"
	DodsonStanding    pvt.Variant = "Dodson-Standing"
	Osif              pvt.Variant = "Osif"
	BrillBeggs        pvt.Variant = "Brill-Beggs"
	VanWingen         pvt.Variant = "Van-Wingen"
	MatthewsRussell   pvt.Variant = "Matthews-Russell"
	Basic             pvt.Variant = "Basic"
	JenningsNewman    pvt.Variant = "Jennings-Newman"
)

// maxSalinity is the saturation limit of NaCl brine, ppm.
const maxSalinity = 300000

// Input is the brine state shared by every water catalog. Rsw is read by
// Dodson-Standing compressibility and Bw by the density correlations.
type Input struct {
	P        float64 `json:"p"`        // psia
	T        float64 `json:"t"`        // °R
	Salinity float64 `json:"salinity"` // ppm
	Rsw      float64 `json:"rsw,omitempty"`
	Bw       float64 `json:"bw,omitempty"`
}

func (in Input) Validate() error {
	if err := pvt.FirstError(
		pvt.Pressure("pressure", in.P),
		pvt.Temperature("temperature", in.T),
		pvt.NonNegative("salinity", in.Salinity),
		pvt.NonNegative("Rsw", in.Rsw),
		pvt.NonNegative("Bw", in.Bw),
	); err != nil {
		return err
	}
	if in.Salinity > maxSalinity {
		return &pvt.DomainError{Param: "salinity", Value: in.Salinity, Reason: "exceeds NaCl saturation"}
	}
	return nil
}

func (in Input) tf() float64 { return pvt.Fahrenheit(in.T) }

// wt is the salinity in weight percent.
func (in Input) wt() float64 { return pvt.WeightPercent(in.Salinity) }

func inP(in Input) float64 { return in.P }
func inF(in Input) float64 { return in.tf() }
func inWt(in Input) float64 { return in.wt() }

// fahrenheit wraps correlations that take powers or quotients of °F.
func fahrenheit(f func(Input) float64) func(Input) (float64, error) {
	return func(in Input) (float64, error) {
		if in.tf() <= 0 {
			return 0, &pvt.DomainError{Param: "temperature", Value: in.T, Reason: "correlation needs a temperature above 0 °F"}
		}
		return f(in), nil
	}
}
