package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopvt/internal/diagram"
	"github.com/alexiusacademia/gopvt/pkg/oil"
)

var (
	oilMuFluid          oilFlags
	oilMuSweep          sweepFlags
	oilMuChart          chartFlags
	oilMuRs             string
	oilMuDead           string
	oilMuSaturated      string
	oilMuUndersaturated string
)

var oilViscosityCmd = &cobra.Command{
	Use:     "viscosity",
	Aliases: []string{"mu"},
	Short:   "Oil viscosity by dead, saturated and undersaturated tiers",
	Long: `Compute the oil viscosity over a pressure sweep. The dead-oil
viscosity is corrected for dissolved gas below the bubble point and for
compression above it. Each tier takes its own correlation.

Examples:
  gopvt oil viscosity --api 31 -g 0.95 --rsb 675 -t 640
  gopvt oil mu -f sample.json --dead beal --saturated chew-connally --undersaturated vb
  gopvt oil mu -f sample.json --p-stop 6000 --chart`,
	Run: runOilViscosity,
}

func init() {
	oilCmd.AddCommand(oilViscosityCmd)

	oilMuFluid.bind(oilViscosityCmd)
	oilMuSweep.bind(oilViscosityCmd)
	oilMuChart.bind(oilViscosityCmd)

	chain := oil.DefaultViscosityChain()
	f := oilViscosityCmd.Flags()
	f.StringVar(&oilMuRs, "rs", string(oil.Standing), "Rs correlation feeding the saturated tier")
	f.StringVar(&oilMuDead, "dead", string(chain.Dead), "Dead-oil viscosity correlation")
	f.StringVar(&oilMuSaturated, "saturated", string(chain.Saturated), "Saturated-oil viscosity correlation")
	f.StringVar(&oilMuUndersaturated, "undersaturated", string(chain.Undersaturated), "Undersaturated-oil viscosity correlation")
}

func runOilViscosity(cmd *cobra.Command, args []string) {
	st, err := oilMuFluid.resolve(cmd, true)
	if err != nil {
		reportError(cmd, "resolving oil", err)
		return
	}
	pressures, err := oilMuSweep.pressures()
	if err != nil {
		reportError(cmd, "building pressure sweep", err)
		return
	}

	chain := oil.ViscosityChain{
		Dead:           canonical(oil.DeadViscosityCatalog(), oilMuDead),
		Saturated:      canonical(oil.SaturatedViscosityCatalog(), oilMuSaturated),
		Undersaturated: canonical(oil.UndersaturatedViscosityCatalog(), oilMuUndersaturated),
	}
	rsV := canonical(oil.SolutionGORCatalog(), oilMuRs)
	pol := policy()

	rs, err := evaluate(cmd, func(p float64) (float64, error) {
		return oil.SolutionGOR(rsV, st.rsInput(p), pol)
	}, pressures)
	if err != nil && !partial(cmd, "computing Rs", err) {
		return
	}

	// The row index rides along as a third input so every worker can keep
	// the intermediate tiers of its own element.
	tiers := make([]oil.ViscosityTiers, len(pressures))
	rows := make([]float64, len(pressures))
	for i := range rows {
		rows[i] = float64(i)
		tiers[i] = oil.ViscosityTiers{Dead: math.NaN(), Saturated: math.NaN(), Above: math.NaN()}
	}
	mu, err := evaluateN(cmd, func(x []float64) (float64, error) {
		in := oil.ViscosityInput{P: x[0], T: st.t, API: st.fluid.API, Rs: x[1], Pb: st.pb}
		t, err := chain.Tiers(in, pol)
		if err != nil {
			return 0, err
		}
		tiers[int(x[2])] = t
		return t.Oil(), nil
	}, pressures, rs, rows)
	if err != nil && !partial(cmd, "computing oil viscosity", err) {
		return
	}

	out := cmd.OutOrStdout()
	printTitle(out, "OIL VISCOSITY")
	st.describe(cmd)
	fmt.Fprintf(out, "  Chain:         %s / %s / %s\n", chain.Dead, chain.Saturated, chain.Undersaturated)
	fmt.Fprintln(out)

	printSection(out, "PRESSURE SWEEP")
	w := newTable(out)
	fmt.Fprintln(w, "  P (psia)\tRs (scf/STB)\tμod (cp)\tμob (cp)\tμo (cp)")
	for i, p := range pressures {
		fmt.Fprintf(w, "  %.1f\t%s\t%s\t%s\t%s\n",
			p, fmtValue("%.2f", rs[i]), fmtValue("%.4f", tiers[i].Dead),
			fmtValue("%.4f", tiers[i].Saturated), fmtValue("%.4f", mu[i]))
	}
	w.Flush()
	fmt.Fprintln(out)

	oilMuChart.render(cmd, diagram.Chart{
		Title:       "Oil viscosity",
		XLabel:      "Pressure (psia)",
		YLabel:      "μo (cp)",
		Curves:      []diagram.Curve{{Name: "μo", X: pressures, Y: mu}},
		Marker:      st.pb,
		MarkerLabel: "Pb",
	})
}
