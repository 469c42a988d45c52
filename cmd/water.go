package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopvt/internal/diagram"
	"github.com/alexiusacademia/gopvt/internal/sample"
	"github.com/alexiusacademia/gopvt/pkg/pvt"
	"github.com/alexiusacademia/gopvt/pkg/water"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Formation water properties",
	Long: `Estimate formation water (brine) properties from pressure,
temperature and salinity.

Subcommands:
  props  - Rsw, Bw, cw, viscosity, density and gas-water tension`,
}

var (
	waterFile        string
	waterPressure    float64
	waterTemperature float64
	waterSalinity    float64
	waterCompare     bool
	waterSelection   = water.DefaultSelection()
	waterVariants    [6]string
)

var waterPropsCmd = &cobra.Command{
	Use:   "props",
	Short: "All formation water properties at one state",
	Long: `Compute every formation water property at one pressure,
temperature and salinity. Solution gas feeds the compressibility and the
formation volume factor feeds the density.

Salinity is in ppm (mg/L of dissolved solids).

Examples:
  gopvt water props --pressure 5000 --temperature 660 --salinity 20000
  gopvt water props -p 3000 -t 620 -s 50000 --bw free --viscosity van-wingen
  gopvt water props -f sample.json -p 4000 --compare`,
	Run: runWaterProps,
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterPropsCmd)

	f := waterPropsCmd.Flags()
	f.StringVarP(&waterFile, "file", "f", "", "Path to sample JSON file")
	f.Float64VarP(&waterPressure, "pressure", "p", 0, "Pressure (psia) [required]")
	f.Float64VarP(&waterTemperature, "temperature", "t", 0, "Temperature (°R); defaults to the sample temperature")
	f.Float64VarP(&waterSalinity, "salinity", "s", 0, "Salinity (ppm); defaults to the sample salinity")
	f.BoolVar(&waterCompare, "compare", false, "Also evaluate every correlation of each property")
	waterPropsCmd.MarkFlagRequired("pressure")

	f.StringVar(&waterVariants[0], "rsw", string(waterSelection.Rsw), "Solution gas-water ratio correlation")
	f.StringVar(&waterVariants[1], "bw", string(waterSelection.FormationVolume), "Formation volume factor correlation")
	f.StringVar(&waterVariants[2], "cw", string(waterSelection.Compressibility), "Compressibility correlation")
	f.StringVar(&waterVariants[3], "viscosity", string(waterSelection.Viscosity), "Viscosity correlation")
	f.StringVar(&waterVariants[4], "density", string(waterSelection.Density), "Density correlation")
	f.StringVar(&waterVariants[5], "tension", string(waterSelection.Tension), "Gas-water interfacial tension correlation")
}

func runWaterProps(cmd *cobra.Command, args []string) {
	t, salinity := waterTemperature, waterSalinity
	if waterFile != "" {
		s, err := sample.LoadFromFile(waterFile)
		if err != nil {
			reportError(cmd, "loading sample", err)
			return
		}
		if t == 0 {
			t = s.Temperature
		}
		if s.Water != nil && !cmd.Flags().Changed("salinity") {
			salinity = s.Water.Salinity
		}
	}

	sel := water.Selection{
		Rsw:             canonical(water.SolutionGWRCatalog(), waterVariants[0]),
		FormationVolume: canonical(water.FormationVolumeCatalog(), waterVariants[1]),
		Compressibility: canonical(water.CompressibilityCatalog(), waterVariants[2]),
		Viscosity:       canonical(water.ViscosityCatalog(), waterVariants[3]),
		Density:         canonical(water.DensityCatalog(), waterVariants[4]),
		Tension:         canonical(water.TensionCatalog(), waterVariants[5]),
	}
	props, err := sel.Evaluate(waterPressure, t, salinity, policy())
	if err != nil {
		reportError(cmd, "computing water properties", err)
		return
	}

	out := cmd.OutOrStdout()
	printTitle(out, "FORMATION WATER PROPERTIES")
	fmt.Fprintf(out, "  Pressure:      %.1f psia\n", props.P)
	fmt.Fprintf(out, "  Temperature:   %.2f °R (%.2f °F)\n", props.T, pvt.Fahrenheit(props.T))
	fmt.Fprintf(out, "  Salinity:      %.0f ppm (%.2f wt%%)\n", props.Salinity, pvt.WeightPercent(props.Salinity))
	fmt.Fprintln(out)

	fmt.Fprint(out, diagram.DrawSummaryBox("BRINE AT RESERVOIR CONDITIONS", []string{
		fmt.Sprintf("Rsw  = %10.4f scf/STB    (%s)", props.Rsw, sel.Rsw),
		fmt.Sprintf("Bw   = %10.6f bbl/STB    (%s)", props.FormationVolume, sel.FormationVolume),
		fmt.Sprintf("cw   = %10.4e 1/psi      (%s)", props.Compressibility, sel.Compressibility),
		fmt.Sprintf("μw   = %10.5f cp         (%s)", props.Viscosity, sel.Viscosity),
		fmt.Sprintf("ρw   = %10.4f lb/ft³     (%s)", props.Density, sel.Density),
		fmt.Sprintf("σgw  = %10.4f dyn/cm     (%s)", props.Tension, sel.Tension),
	}))
	fmt.Fprintln(out)

	if !waterCompare {
		return
	}

	in := water.Input{P: props.P, T: props.T, Salinity: props.Salinity, Rsw: props.Rsw, Bw: props.FormationVolume}
	printSection(out, "CORRELATION COMPARISON")
	w := newTable(out)
	fmt.Fprintln(w, "  Property\tCorrelation\tValue")
	for _, c := range []*pvt.Catalog[water.Input]{
		water.SolutionGWRCatalog(),
		water.FormationVolumeCatalog(),
		water.CompressibilityCatalog(),
		water.ViscosityCatalog(),
		water.DensityCatalog(),
		water.TensionCatalog(),
	} {
		for _, v := range c.Variants() {
			val, err := c.Compute(v, in, pvt.Policy{})
			text := fmtValue("%.6g", val)
			if err != nil {
				text = "-"
				logger.Debug("correlation failed", "property", c.Property(), "correlation", string(v), "error", err)
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\n", c.Property(), v, text)
		}
	}
	w.Flush()
	fmt.Fprintln(out)
}
