package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopvt/pkg/gas"
)

var (
	gasPcFluid gasFlags
	gasPcAll   bool
)

var gasPseudocriticalCmd = &cobra.Command{
	Use:     "pseudocritical",
	Aliases: []string{"pc"},
	Short:   "Pseudocritical pressure and temperature of a gas",
	Long: `Estimate the pseudocritical pressure (psia) and temperature (°R)
from the gas gravity or a mole-fraction composition.

Gravity methods correct for N2, CO2 and H2S by molar mixing. The
Wichert-Aziz correction for sour gas is applied on request.

Examples:
  gopvt gas pseudocritical --gravity 0.7
  gopvt gas pseudocritical -g 0.75 --co2 0.05 --h2s 0.1 --wichert-aziz
  gopvt gas pseudocritical -g 0.8 --method brown-katz --condensate
  gopvt gas pc -f sample.json --all`,
	Run: runGasPseudocritical,
}

func init() {
	gasCmd.AddCommand(gasPseudocriticalCmd)

	gasPcFluid.bind(gasPseudocriticalCmd)
	gasPseudocriticalCmd.Flags().BoolVar(&gasPcAll, "all", false, "Compare every method applicable to the gas")
}

func runGasPseudocritical(cmd *cobra.Command, args []string) {
	st, err := gasPcFluid.resolve()
	if err != nil {
		reportError(cmd, "resolving gas", err)
		return
	}

	out := cmd.OutOrStdout()
	printTitle(out, "GAS PSEUDOCRITICAL PROPERTIES")

	fmt.Fprintf(out, "  Gas gravity:   %.4f\n", st.gravity)
	y := st.fluid.Impurities
	if st.fluid.Composition != nil {
		y = st.fluid.Composition.Impurities()
	}
	fmt.Fprintf(out, "  Impurities:    N2 %.4f  CO2 %.4f  H2S %.4f\n", y.N2, y.CO2, y.H2S)
	fmt.Fprintln(out)

	if !gasPcAll {
		printSection(out, "RESULT")
		w := newTable(out)
		fmt.Fprintf(w, "  Ppc:\t%.2f psia\n", st.pc.Ppc)
		fmt.Fprintf(w, "  Tpc:\t%.2f °R\n", st.pc.Tpc)
		if st.fluid.WichertAziz {
			fmt.Fprintf(w, "  Correction:\tWichert-Aziz\n")
		}
		w.Flush()
		fmt.Fprintln(out)
		return
	}

	printSection(out, "METHOD COMPARISON")
	w := newTable(out)
	fmt.Fprintln(w, "  Method\tPpc (psia)\tTpc (°R)")
	for _, v := range gas.PseudocriticalMethods() {
		pc, err := gas.PseudocriticalFor(v, st.fluid.PseudocriticalInput, policy())
		if err != nil {
			logger.Debug("method not applicable", "method", string(v), "error", err)
			continue
		}
		if st.fluid.WichertAziz {
			pc = gas.WichertAziz(pc, y.CO2, y.H2S)
		}
		fmt.Fprintf(w, "  %s\t%.2f\t%.2f\n", v, pc.Ppc, pc.Tpc)
	}
	w.Flush()
	fmt.Fprintln(out)
}
