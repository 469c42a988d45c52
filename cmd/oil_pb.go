package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopvt/pkg/oil"
	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

var (
	oilPbFluid       oilFlags
	oilPbCorrelation string
)

var oilPbCmd = &cobra.Command{
	Use:   "pb",
	Short: "Bubble-point pressure",
	Long: `Compute the bubble-point pressure by one correlation or compare all
of them. Separator conditions correct the gas gravity for Vazquez-Beggs
and Kartoatmodjo-Schmidt; N2, CO2 and H2S corrections apply to every
correlation.

Examples:
  gopvt oil pb --api 31 -g 0.95 --rsb 675 -t 640
  gopvt oil pb --api 31 -g 0.95 --rsb 675 -t 640 --correlation glaso
  gopvt oil pb -f sample.json --co2 0.05`,
	Run: runOilPb,
}

func init() {
	oilCmd.AddCommand(oilPbCmd)

	oilPbFluid.bind(oilPbCmd)
	oilPbCmd.Flags().StringVarP(&oilPbCorrelation, "correlation", "c", "", "Single correlation; all when omitted")
}

func runOilPb(cmd *cobra.Command, args []string) {
	st, err := oilPbFluid.resolve(cmd, false)
	if err != nil {
		reportError(cmd, "resolving oil", err)
		return
	}
	in := st.fluid.PbInput(st.t)
	catalog := oil.BubblePointCatalog()

	variants := catalog.Variants()
	if oilPbCorrelation != "" {
		variants = []pvt.Variant{variant(oilPbCorrelation)}
	}

	out := cmd.OutOrStdout()
	printTitle(out, "BUBBLE-POINT PRESSURE")
	st.describe(cmd)

	printSection(out, "CORRELATIONS")
	w := newTable(out)
	fmt.Fprintln(w, "  Correlation\tPb (psia)\tReference")
	pol := policy()
	for _, v := range variants {
		corr, err := catalog.Lookup(v)
		if err != nil {
			w.Flush()
			reportError(cmd, "selecting correlation", err)
			return
		}
		pb, err := catalog.Evaluate(corr, in, pol)
		if err != nil {
			fmt.Fprintf(w, "  %s\t-\t%s\n", corr.Variant, corr.Reference)
			logger.Warn("bubble point failed", "correlation", string(corr.Variant), "error", err)
			continue
		}
		fmt.Fprintf(w, "  %s\t%.1f\t%s\n", corr.Variant, pb, corr.Reference)
	}
	w.Flush()
	fmt.Fprintln(out)
}
