package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopvt/pkg/gas"
	"github.com/alexiusacademia/gopvt/pkg/oil"
	"github.com/alexiusacademia/gopvt/pkg/pvt"
	"github.com/alexiusacademia/gopvt/pkg/water"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [property]",
	Short: "List the registered correlations",
	Long: `List every property and the correlations registered for it. An
optional argument filters properties by substring, e.g. "viscosity".

Examples:
  gopvt catalog
  gopvt catalog z-factor
  gopvt catalog water`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

// catalogs lists every registry in report order.
func catalogs() []pvt.Lister {
	return []pvt.Lister{
		gas.PseudocriticalCatalog(),
		gas.ZCatalog(),
		gas.CompressibilityCatalog(),
		oil.BubblePointCatalog(),
		oil.SolutionGORCatalog(),
		oil.FormationVolumeCatalog(),
		oil.TotalVolumeCatalog(),
		oil.CompressibilityCatalog(),
		oil.DensityCatalog(),
		oil.DeadViscosityCatalog(),
		oil.SaturatedViscosityCatalog(),
		oil.UndersaturatedViscosityCatalog(),
		water.SolutionGWRCatalog(),
		water.FormationVolumeCatalog(),
		water.CompressibilityCatalog(),
		water.ViscosityCatalog(),
		water.DensityCatalog(),
		water.TensionCatalog(),
	}
}

func runCatalog(cmd *cobra.Command, args []string) {
	filter := ""
	if len(args) == 1 {
		filter = strings.ToLower(args[0])
	}

	out := cmd.OutOrStdout()
	printTitle(out, "CORRELATION CATALOG")

	w := newTable(out)
	fmt.Fprintln(w, "  Property\tVariants")
	shown := 0
	for _, c := range catalogs() {
		if filter != "" && !strings.Contains(c.Property(), filter) {
			continue
		}
		names := make([]string, 0, len(c.Variants()))
		for _, v := range c.Variants() {
			names = append(names, string(v))
		}
		fmt.Fprintf(w, "  %s\t%s\n", c.Property(), strings.Join(names, ", "))
		shown++
	}
	w.Flush()

	if shown == 0 {
		fmt.Fprintf(out, "  No property matches %q.\n", filter)
	}
	fmt.Fprintln(out)
}
