package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopvt/internal/diagram"
	"github.com/alexiusacademia/gopvt/pkg/gas"
	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

var (
	gasZFluid       gasFlags
	gasZSweep       sweepFlags
	gasZChart       chartFlags
	gasZTemperature float64
	gasZCorrelation string
	gasZStats       bool
)

var gasZCmd = &cobra.Command{
	Use:   "z",
	Short: "Z-factor and derived gas properties",
	Long: `Compute the gas deviation factor at one pressure or over a pressure
sweep, together with the formation volume factor, density, Lee-Gonzalez-
Eakin viscosity and isothermal compressibility.

Pass --correlation all to compare every Z-factor correlation.

Examples:
  gopvt gas z --gravity 0.7 --temperature 660 --pressure 2000
  gopvt gas z -g 0.7 -t 660 --correlation hall-yarborough --chart
  gopvt gas z --ppc 667 --tpc 380 -t 620 --correlation all -o z.png
  gopvt gas z -f sample.json --p-start 200 --p-stop 8000 --p-step 200`,
	Run: runGasZ,
}

func init() {
	gasCmd.AddCommand(gasZCmd)

	gasZFluid.bind(gasZCmd)
	gasZSweep.bind(gasZCmd)
	gasZChart.bind(gasZCmd)
	gasZCmd.Flags().Float64VarP(&gasZTemperature, "temperature", "t", 0, "Temperature (°R); defaults to the sample temperature")
	gasZCmd.Flags().StringVarP(&gasZCorrelation, "correlation", "c", string(gas.DranchukAbouKassem), "Z-factor correlation, or all")
	gasZCmd.Flags().BoolVar(&gasZStats, "stats", false, "Show solver iterations of the implicit correlations")
}

// gasRow is one line of the Z-factor table.
type gasRow struct {
	p, z, bg, rho, mu, cg float64
	iterations            int
}

func runGasZ(cmd *cobra.Command, args []string) {
	st, err := gasZFluid.resolve()
	if err != nil {
		reportError(cmd, "resolving gas", err)
		return
	}
	t := gasZTemperature
	if t == 0 {
		t = st.temperature
	}
	if err := pvt.Temperature("temperature", t); err != nil {
		reportError(cmd, "reading temperature", err)
		return
	}
	pressures, err := gasZSweep.pressures()
	if err != nil {
		reportError(cmd, "building pressure sweep", err)
		return
	}

	base := gas.ZInput{T: t, Pc: st.pc, Omega: st.omega, Solver: settings.Solver}
	out := cmd.OutOrStdout()
	printTitle(out, "GAS DEVIATION FACTOR")
	fmt.Fprintf(out, "  Temperature:   %.2f °R (%.2f °F)\n", t, pvt.Fahrenheit(t))
	fmt.Fprintf(out, "  Ppc / Tpc:     %.2f psia / %.2f °R\n", st.pc.Ppc, st.pc.Tpc)
	fmt.Fprintf(out, "  Tpr:           %.4f\n", t/st.pc.Tpc)
	fmt.Fprintln(out)

	if strings.EqualFold(gasZCorrelation, "all") {
		compareZ(cmd, base, pressures)
		return
	}

	v := canonical(gas.ZCatalog(), gasZCorrelation)
	rows, ok := gasTable(cmd, v, base, st.gravity, pressures)
	if !ok {
		return
	}

	printSection(out, strings.ToUpper(string(v)))
	w := newTable(out)
	header := "  P (psia)\tPpr\tZ\tBg (ft³/scf)\tρg (lb/ft³)\tμg (cp)\tcg (1/psi)"
	if gasZStats {
		header += "\tIter"
	}
	fmt.Fprintln(w, header)
	for _, r := range rows {
		line := fmt.Sprintf("  %.1f\t%.4f\t%s\t%s\t%s\t%s\t%s",
			r.p, r.p/st.pc.Ppc,
			fmtValue("%.5f", r.z), fmtValue("%.6f", r.bg), fmtValue("%.4f", r.rho),
			fmtValue("%.5f", r.mu), fmtValue("%.4e", r.cg))
		if gasZStats {
			line += fmt.Sprintf("\t%d", r.iterations)
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()
	if st.gravity == 0 {
		fmt.Fprintln(out, "\n  ρg and μg need a gas gravity (--gravity).")
	}
	fmt.Fprintln(out)

	z := make([]float64, len(rows))
	for i, r := range rows {
		z[i] = r.z
	}
	gasZChart.render(cmd, diagram.Chart{
		Title:  fmt.Sprintf("Z-factor, %s, T = %.0f °R", v, t),
		XLabel: "Pressure (psia)",
		YLabel: "Z",
		Curves: []diagram.Curve{{Name: "Z (" + string(v) + ")", X: pressures, Y: z}},
	})
}

// gasTable evaluates Z over the sweep in parallel and derives the other
// properties from it. Failed elements stay NaN.
func gasTable(cmd *cobra.Command, v pvt.Variant, base gas.ZInput, gravity float64, pressures []float64) ([]gasRow, bool) {
	pol := policy()
	z, err := evaluate(cmd, func(p float64) (float64, error) {
		in := base
		in.P = p
		return gas.Z(v, in, pol)
	}, pressures)
	if err != nil && !partial(cmd, "computing Z-factor", err) {
		return nil, false
	}

	rows := make([]gasRow, len(pressures))
	for i, p := range pressures {
		r := gasRow{p: p, z: z[i], bg: math.NaN(), rho: math.NaN(), mu: math.NaN(), cg: math.NaN()}
		rows[i] = r
		if math.IsNaN(r.z) {
			continue
		}
		in := base
		in.P = p

		if bg, err := gas.FormationVolumeFactor(r.z, p, base.T, gas.CubicFeet); err == nil {
			r.bg = bg
		}
		if cg, err := gas.Compressibility(v, in, pvt.Policy{}); err == nil {
			r.cg = cg
		} else {
			logger.Debug("compressibility failed", "pressure", p, "error", err)
		}
		if gravity > 0 {
			if rho, err := gas.Density(p, base.T, r.z, gravity); err == nil {
				r.rho = rho
			}
			if mu, err := gas.ViscosityLGE(p, base.T, r.z, gas.MolecularWeight(gravity)); err == nil {
				r.mu = mu
			}
		}
		if gasZStats {
			if _, res, err := gas.ZWithStats(v, in, pvt.Policy{}); err == nil {
				r.iterations = res.Iterations
			}
		}
		rows[i] = r
	}
	return rows, true
}

// compareZ tabulates and charts every Z-factor correlation.
func compareZ(cmd *cobra.Command, base gas.ZInput, pressures []float64) {
	out := cmd.OutOrStdout()
	pol := policy()
	variants := gas.ZCatalog().Variants()

	columns := make([][]float64, len(variants))
	for j, v := range variants {
		z, err := evaluate(cmd, func(p float64) (float64, error) {
			in := base
			in.P = p
			return gas.Z(v, in, pol)
		}, pressures)
		if err != nil && !partial(cmd, "computing Z-factor ("+string(v)+")", err) {
			z = make([]float64, len(pressures))
			for i := range z {
				z[i] = math.NaN()
			}
		}
		columns[j] = z
	}

	printSection(out, "CORRELATION COMPARISON")
	w := newTable(out)
	header := "  P (psia)"
	for _, v := range variants {
		header += "\t" + string(v)
	}
	fmt.Fprintln(w, header)
	for i, p := range pressures {
		line := fmt.Sprintf("  %.1f", p)
		for j := range variants {
			line += "\t" + fmtValue("%.5f", columns[j][i])
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()
	fmt.Fprintln(out)

	chart := diagram.Chart{
		Title:  fmt.Sprintf("Z-factor comparison, T = %.0f °R", base.T),
		XLabel: "Pressure (psia)",
		YLabel: "Z",
	}
	for j, v := range variants {
		if hasNaN(columns[j]) {
			continue
		}
		chart.Curves = append(chart.Curves, diagram.Curve{Name: string(v), X: pressures, Y: columns[j]})
	}
	gasZChart.render(cmd, chart)
}

func hasNaN(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}
