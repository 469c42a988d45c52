package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopvt/internal/diagram"
	"github.com/alexiusacademia/gopvt/pkg/oil"
)

var (
	oilBoFluid       oilFlags
	oilBoSweep       sweepFlags
	oilBoChart       chartFlags
	oilBoCorrelation string
	oilBoRs          string
	oilBoCo          float64
	oilBoCoMethod    string
	oilBoDensity     string
)

var oilBoCmd = &cobra.Command{
	Use:   "bo",
	Short: "Oil formation volume factor, compressibility and density",
	Long: `Compute Rs, Bo, co, oil density and gas-oil interfacial tension over
a pressure sweep. Above the bubble point Bo shrinks with the oil
compressibility, either given (--co) or correlated (--co-correlation).

Examples:
  gopvt oil bo --api 31 -g 0.95 --rsb 675 -t 640 --p-stop 6000
  gopvt oil bo -f sample.json --correlation glaso --rs standing --chart
  gopvt oil bo -f sample.json --co 1.5e-5 --density basic -o bo.png`,
	Run: runOilBo,
}

func init() {
	oilCmd.AddCommand(oilBoCmd)

	oilBoFluid.bind(oilBoCmd)
	oilBoSweep.bind(oilBoCmd)
	oilBoChart.bind(oilBoCmd)
	f := oilBoCmd.Flags()
	f.StringVarP(&oilBoCorrelation, "correlation", "c", string(oil.Standing), "Bo correlation")
	f.StringVar(&oilBoRs, "rs", "", "Rs correlation (default: same as --correlation)")
	f.Float64Var(&oilBoCo, "co", 0, "Undersaturated oil compressibility (1/psi); correlated when omitted")
	f.StringVar(&oilBoCoMethod, "co-correlation", string(oil.VazquezBeggs), "co correlation")
	f.StringVar(&oilBoDensity, "density", string(oil.Standing), "Oil density correlation")
}

func runOilBo(cmd *cobra.Command, args []string) {
	st, err := oilBoFluid.resolve(cmd, true)
	if err != nil {
		reportError(cmd, "resolving oil", err)
		return
	}
	pressures, err := oilBoSweep.pressures()
	if err != nil {
		reportError(cmd, "building pressure sweep", err)
		return
	}

	boV := canonical(oil.FormationVolumeCatalog(), oilBoCorrelation)
	rsV := canonical(oil.SolutionGORCatalog(), oilBoCorrelation)
	if oilBoRs != "" {
		rsV = canonical(oil.SolutionGORCatalog(), oilBoRs)
	}
	pol := policy()
	o := st.fluid

	rsPb, err := oil.SolutionGOR(rsV, st.rsInput(st.pb), pol)
	if err != nil {
		reportError(cmd, "computing Rs at the bubble point", err)
		return
	}
	bob, err := oil.FormationVolume(boV, st.boInput(st.pb, rsPb, 0), pol)
	if err != nil {
		reportError(cmd, "computing Bo at the bubble point", err)
		return
	}

	rs, err := evaluate(cmd, func(p float64) (float64, error) {
		return oil.SolutionGOR(rsV, st.rsInput(p), pol)
	}, pressures)
	if err != nil && !partial(cmd, "computing Rs", err) {
		return
	}

	// co only matters above the bubble point; below it the column is zero.
	co, err := evaluate(cmd, func(p float64) (float64, error) {
		if p <= st.pb {
			return 0, nil
		}
		if oilBoCo > 0 {
			return oilBoCo, nil
		}
		return oil.Compressibility(variant(oilBoCoMethod), oil.CoInput{
			P:         p,
			T:         st.t,
			GammaGas:  o.GammaGas,
			API:       o.API,
			Rs:        rsPb,
			Pb:        st.pb,
			Separator: o.Separator,
		}, pol)
	}, pressures)
	if err != nil && !partial(cmd, "computing co", err) {
		return
	}

	bo, err := evaluateN(cmd, func(x []float64) (float64, error) {
		return oil.FormationVolume(boV, st.boInput(x[0], x[1], x[2]), pol)
	}, pressures, rs, co)
	if err != nil && !partial(cmd, "computing Bo", err) {
		return
	}

	rho, err := evaluateN(cmd, func(x []float64) (float64, error) {
		p, rsP, boP, coP := x[0], x[1], x[2], x[3]
		if p > st.pb {
			boP = bob
		}
		return oil.Density(variant(oilBoDensity), oil.DensityInput{
			P:        p,
			T:        st.t,
			Pb:       st.pb,
			Bo:       boP,
			Rs:       rsP,
			GammaGas: o.GammaGas,
			API:      o.API,
			Co:       coP,
		}, pol)
	}, pressures, rs, bo, co)
	if err != nil && !partial(cmd, "computing oil density", err) {
		return
	}

	out := cmd.OutOrStdout()
	printTitle(out, "OIL FORMATION VOLUME FACTOR")
	st.describe(cmd)
	fmt.Fprintf(out, "  Rs at Pb:      %.1f scf/STB (%s)\n", rsPb, rsV)
	fmt.Fprintf(out, "  Bo at Pb:      %.5f bbl/STB (%s)\n", bob, boV)
	fmt.Fprintln(out)

	printSection(out, "PRESSURE SWEEP")
	w := newTable(out)
	fmt.Fprintln(w, "  P (psia)\tRs (scf/STB)\tBo (bbl/STB)\tco (1/psi)\tρo (lb/ft³)\tσ (dyn/cm)")
	for i, p := range pressures {
		coText := "-"
		if p > st.pb {
			coText = fmtValue("%.4e", co[i])
		}
		sigma := math.NaN()
		if s, err := oil.InterfacialTension(p, st.t, o.API); err == nil {
			sigma = s
		}
		fmt.Fprintf(w, "  %.1f\t%s\t%s\t%s\t%s\t%s\n",
			p, fmtValue("%.2f", rs[i]), fmtValue("%.5f", bo[i]), coText,
			fmtValue("%.3f", rho[i]), fmtValue("%.2f", sigma))
	}
	w.Flush()
	fmt.Fprintln(out)

	oilBoChart.render(cmd, diagram.Chart{
		Title:       fmt.Sprintf("Oil FVF, %s", boV),
		XLabel:      "Pressure (psia)",
		YLabel:      "Bo (bbl/STB)",
		Curves:      []diagram.Curve{{Name: "Bo", X: pressures, Y: bo}},
		Marker:      st.pb,
		MarkerLabel: "Pb",
	})
}

func (st oilState) boInput(p, rs, co float64) oil.BoInput {
	return oil.BoInput{
		P:         p,
		T:         st.t,
		Rs:        rs,
		GammaGas:  st.fluid.GammaGas,
		API:       st.fluid.API,
		Pb:        st.pb,
		Co:        co,
		Separator: st.fluid.Separator,
	}
}
