package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopvt/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gopvt",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "gopvt v%s\n", version.Version)
		fmt.Fprintln(out, "Petroleum Fluid Property Correlations")
		fmt.Fprintf(out, "Commit: %s  Built: %s  Go: %s\n", version.GitCommit, version.BuildTime, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
