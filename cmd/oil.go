package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopvt/internal/sample"
	"github.com/alexiusacademia/gopvt/pkg/oil"
	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

var oilCmd = &cobra.Command{
	Use:   "oil",
	Short: "Black-oil properties",
	Long: `Estimate black-oil properties from the stock-tank gravity, the gas
gravity and the solution GOR at the bubble point.

Subcommands:
  pb         - Bubble-point pressure by every correlation
  rs         - Solution gas-oil ratio over a pressure sweep
  bo         - Formation volume factor, compressibility and density
  viscosity  - Dead, saturated and undersaturated oil viscosity

Every subcommand also reads the oil from a sample file (--file).`,
}

func init() {
	rootCmd.AddCommand(oilCmd)
}

// oilFlags describe the oil on the command line or in a sample file.
type oilFlags struct {
	file        string
	api         float64
	gammaGas    float64
	rsb         float64
	pb          float64
	temperature float64
	sepP, sepT  float64
	n2, co2     float64
	h2s         float64
	pbMethod    string
}

func (o *oilFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.file, "file", "f", "", "Path to sample JSON file")
	f.Float64Var(&o.api, "api", 0, "Stock-tank oil gravity (°API)")
	f.Float64VarP(&o.gammaGas, "gas-gravity", "g", 0, "Separator gas gravity (air = 1)")
	f.Float64Var(&o.rsb, "rsb", 0, "Solution GOR at the bubble point (scf/STB)")
	f.Float64Var(&o.pb, "pb", 0, "Measured bubble-point pressure (psia); correlated when omitted")
	f.Float64VarP(&o.temperature, "temperature", "t", 0, "Reservoir temperature (°R)")
	f.Float64Var(&o.sepP, "sep-p", 0, "Separator pressure (psia)")
	f.Float64Var(&o.sepT, "sep-t", 0, "Separator temperature (°R)")
	f.Float64Var(&o.n2, "n2", 0, "N2 mole fraction of the surface gas")
	f.Float64Var(&o.co2, "co2", 0, "CO2 mole fraction of the surface gas")
	f.Float64Var(&o.h2s, "h2s", 0, "H2S mole fraction of the surface gas")
	f.StringVar(&o.pbMethod, "pb-method", string(oil.Standing), "Bubble-point correlation used when --pb is omitted")
}

// oilState is a resolved oil description at reservoir temperature.
type oilState struct {
	fluid *sample.Oil
	t     float64 // °R
	pb    float64 // psia
}

// resolve builds the oil and, when withPb is set, its bubble point.
func (o *oilFlags) resolve(cmd *cobra.Command, withPb bool) (oilState, error) {
	var st oilState

	fluid := &sample.Oil{
		API:        o.api,
		GammaGas:   o.gammaGas,
		Rsb:        o.rsb,
		Pb:         o.pb,
		Separator:  oil.Separator{P: o.sepP, T: o.sepT},
		Impurities: oil.Impurities{N2: o.n2, CO2: o.co2, H2S: o.h2s},
	}
	st.t = o.temperature
	if o.file != "" {
		s, err := sample.LoadFromFile(o.file)
		if err != nil {
			return st, err
		}
		if s.Oil == nil {
			return st, fmt.Errorf("%s has no oil description", o.file)
		}
		fluid = s.Oil
		if !cmd.Flags().Changed("temperature") {
			st.t = s.Temperature
		}
		if cmd.Flags().Changed("pb") {
			fluid.Pb = o.pb
		}
	}
	if err := pvt.FirstError(fluid.Validate(), pvt.Temperature("temperature", st.t)); err != nil {
		return st, err
	}
	st.fluid = fluid

	if !withPb {
		return st, nil
	}
	pb, err := fluid.BubblePoint(variant(o.pbMethod), st.t, policy())
	if err != nil {
		return st, err
	}
	st.pb = pb
	return st, nil
}

func (st oilState) describe(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	o := st.fluid
	fmt.Fprintf(out, "  Oil gravity:   %.2f °API (γo %.4f)\n", o.API, pvt.SpecificGravity(o.API))
	fmt.Fprintf(out, "  Gas gravity:   %.4f\n", o.GammaGas)
	fmt.Fprintf(out, "  Rsb:           %.1f scf/STB\n", o.Rsb)
	fmt.Fprintf(out, "  Temperature:   %.2f °R (%.2f °F)\n", st.t, pvt.Fahrenheit(st.t))
	if st.pb > 0 {
		source := "correlated"
		if o.Pb > 0 {
			source = "measured"
		}
		fmt.Fprintf(out, "  Bubble point:  %.1f psia (%s)\n", st.pb, source)
	}
	fmt.Fprintln(out)
}
