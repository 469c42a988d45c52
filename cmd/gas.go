package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopvt/internal/sample"
	"github.com/alexiusacademia/gopvt/pkg/gas"
	"github.com/alexiusacademia/gopvt/pkg/oil"
	"github.com/alexiusacademia/gopvt/pkg/pvt"
	"github.com/alexiusacademia/gopvt/pkg/water"
)

var gasCmd = &cobra.Command{
	Use:   "gas",
	Short: "Natural gas properties",
	Long: `Estimate natural gas properties from gravity or composition.

Subcommands:
  pseudocritical  - Pseudocritical pressure and temperature
  z               - Z-factor, Bg, density, viscosity and compressibility

Sour gas can be corrected with Wichert-Aziz before any Z-factor
correlation (--wichert-aziz).`,
}

func init() {
	rootCmd.AddCommand(gasCmd)
}

// aliases are the short names accepted wherever a correlation is chosen.
var aliases = map[string]pvt.Variant{
	"sbv":  gas.StewartBurkhardtVoo,
	"hy":   gas.HallYarborough,
	"dak":  gas.DranchukAbouKassem,
	"dpr":  gas.DranchukPurvisRobinson,
	"lk":   gas.LeeKesler,
	"vb":   oil.VazquezBeggs,
	"ks":   oil.KartoatmodjoSchmidt,
	"pf":   oil.PetroskyFarshad,
	"mrv":  oil.McCainRollinsVillena,
	"cm":   water.CulbersonMcKetta,
	"free": water.McCoyGasFree,
	"sat":  water.McCoyGasSaturated,
}

func variant(name string) pvt.Variant {
	if v, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return v
	}
	return pvt.Variant(name)
}

// canonical resolves name against c and returns the registered spelling.
// Unknown names are returned as typed so the later lookup reports them.
func canonical[I any](c *pvt.Catalog[I], name string) pvt.Variant {
	v := variant(name)
	if corr, err := c.Lookup(v); err == nil {
		return corr.Variant
	}
	return v
}

// gasFlags describe the gas on the command line or in a sample file.
type gasFlags struct {
	file        string
	method      string
	gravity     float64
	condensate  bool
	n2, co2     float64
	h2s         float64
	wichertAziz bool
	ppc, tpc    float64
	omega       float64
}

func (g *gasFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&g.file, "file", "f", "", "Path to sample JSON file")
	f.StringVarP(&g.method, "method", "m", "", "Pseudocritical method: sutton, brown-katz, kay, sbv (default sutton, or sbv for a composition)")
	f.Float64VarP(&g.gravity, "gravity", "g", 0, "Gas specific gravity (air = 1)")
	f.BoolVar(&g.condensate, "condensate", false, "Use the condensate branch of Brown-Katz")
	f.Float64Var(&g.n2, "n2", 0, "N2 mole fraction")
	f.Float64Var(&g.co2, "co2", 0, "CO2 mole fraction")
	f.Float64Var(&g.h2s, "h2s", 0, "H2S mole fraction")
	f.BoolVar(&g.wichertAziz, "wichert-aziz", false, "Apply the Wichert-Aziz sour gas correction")
	f.Float64Var(&g.ppc, "ppc", 0, "Pseudocritical pressure (psia); skips the correlation with --tpc")
	f.Float64Var(&g.tpc, "tpc", 0, "Pseudocritical temperature (°R)")
	f.Float64Var(&g.omega, "omega", 0, "Acentric factor for Lee-Kesler")
}

// gasState is a resolved gas description.
type gasState struct {
	fluid       *sample.Gas
	pc          gas.Pseudocritical
	gravity     float64 // zero when unknown
	omega       float64
	temperature float64 // from the sample file, zero when not given
}

func (g *gasFlags) resolve() (gasState, error) {
	var st gasState

	fluid := &sample.Gas{
		PseudocriticalInput: gas.PseudocriticalInput{
			Gravity:    g.gravity,
			Impurities: gas.Impurities{N2: g.n2, CO2: g.co2, H2S: g.h2s},
			Condensate: g.condensate,
		},
		WichertAziz: g.wichertAziz,
		Omega:       g.omega,
	}
	if g.file != "" {
		s, err := sample.LoadFromFile(g.file)
		if err != nil {
			return st, err
		}
		if s.Gas == nil {
			return st, fmt.Errorf("%s has no gas description", g.file)
		}
		fluid = s.Gas
		fluid.WichertAziz = fluid.WichertAziz || g.wichertAziz
		st.temperature = s.Temperature
	}
	if g.method != "" {
		fluid.Method = variant(g.method)
	}
	st.fluid = fluid
	st.omega = fluid.Omega

	if g.ppc > 0 && g.tpc > 0 {
		st.pc = gas.Pseudocritical{Ppc: g.ppc, Tpc: g.tpc}
		st.gravity = fluid.Gravity
		return st, st.pc.Validate()
	}

	if err := fluid.Validate(); err != nil {
		return st, err
	}
	pc, err := fluid.Pseudocritical(policy())
	if err != nil {
		return st, err
	}
	gravity, err := fluid.SpecificGravity()
	if err != nil {
		return st, err
	}
	st.pc, st.gravity = pc, gravity
	return st, nil
}
