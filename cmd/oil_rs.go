package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopvt/internal/diagram"
	"github.com/alexiusacademia/gopvt/pkg/oil"
)

var (
	oilRsFluid       oilFlags
	oilRsSweep       sweepFlags
	oilRsChart       chartFlags
	oilRsCorrelation string
)

var oilRsCmd = &cobra.Command{
	Use:   "rs",
	Short: "Solution gas-oil ratio",
	Long: `Compute the solution gas-oil ratio over a pressure sweep. Above the
bubble point all gas is in solution and Rs stays at its bubble-point
value.

Examples:
  gopvt oil rs --api 31 -g 0.95 --rsb 675 -t 640 --pb 2500 --chart
  gopvt oil rs -f sample.json --correlation vazquez-beggs -o rs.svg`,
	Run: runOilRs,
}

func init() {
	oilCmd.AddCommand(oilRsCmd)

	oilRsFluid.bind(oilRsCmd)
	oilRsSweep.bind(oilRsCmd)
	oilRsChart.bind(oilRsCmd)
	oilRsCmd.Flags().StringVarP(&oilRsCorrelation, "correlation", "c", string(oil.Standing), "Rs correlation")
}

func runOilRs(cmd *cobra.Command, args []string) {
	st, err := oilRsFluid.resolve(cmd, true)
	if err != nil {
		reportError(cmd, "resolving oil", err)
		return
	}
	pressures, err := oilRsSweep.pressures()
	if err != nil {
		reportError(cmd, "building pressure sweep", err)
		return
	}

	v := canonical(oil.SolutionGORCatalog(), oilRsCorrelation)
	pol := policy()
	rs, err := evaluate(cmd, func(p float64) (float64, error) {
		return oil.SolutionGOR(v, st.rsInput(p), pol)
	}, pressures)
	if err != nil && !partial(cmd, "computing Rs", err) {
		return
	}

	out := cmd.OutOrStdout()
	printTitle(out, "SOLUTION GAS-OIL RATIO")
	st.describe(cmd)

	printSection(out, fmt.Sprintf("RS (%s)", v))
	w := newTable(out)
	fmt.Fprintln(w, "  P (psia)\tRs (scf/STB)\tState")
	for i, p := range pressures {
		state := "saturated"
		if p > st.pb {
			state = "undersaturated"
		}
		fmt.Fprintf(w, "  %.1f\t%s\t%s\n", p, fmtValue("%.2f", rs[i]), state)
	}
	w.Flush()
	fmt.Fprintln(out)

	oilRsChart.render(cmd, diagram.Chart{
		Title:       fmt.Sprintf("Solution GOR, %s", v),
		XLabel:      "Pressure (psia)",
		YLabel:      "Rs (scf/STB)",
		Curves:      []diagram.Curve{{Name: "Rs", X: pressures, Y: rs}},
		Marker:      st.pb,
		MarkerLabel: "Pb",
	})
}

func (st oilState) rsInput(p float64) oil.RsInput {
	return oil.RsInput{
		P:         p,
		T:         st.t,
		GammaGas:  st.fluid.GammaGas,
		API:       st.fluid.API,
		Pb:        st.pb,
		Separator: st.fluid.Separator,
	}
}
