package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/suite"
)

type CLISuite struct {
	suite.Suite
	dir string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.dir = s.T().TempDir()
	for _, env := range []string{"GOPVT_TOLERANCE", "GOPVT_MAX_ITER", "GOPVT_WORKERS", "GOPVT_RANGE_POLICY", "GOPVT_LOG_LEVEL"} {
		s.T().Setenv(env, "")
		os.Unsetenv(env)
	}
	resetFlags(rootCmd)
}

// resetFlags restores every flag of the tree to its default so commands can
// run more than once in one process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI and returns stdout and stderr.
func (s *CLISuite) run(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func (s *CLISuite) writeSample(body string) string {
	path := filepath.Join(s.dir, "sample.json")
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o644))
	return path
}

const oilSample = `{
  "name": "Well A-1",
  "temperature": 640,
  "oil": {"api": 31, "gamma_gas": 0.95, "rsb": 675},
  "water": {"salinity": 20000}
}`

func (s *CLISuite) TestBanner() {
	out, _, err := s.run()
	s.Require().NoError(err)
	s.Contains(out, "gopvt v")
	s.Contains(out, "Go PVT Correlations")
}

func (s *CLISuite) TestVersion() {
	out, _, err := s.run("version")
	s.Require().NoError(err)
	s.Contains(out, "gopvt v")
	s.Contains(out, "Go: go")
}

func (s *CLISuite) TestCatalog() {
	s.Run("every property", func() {
		resetFlags(rootCmd)
		out, _, err := s.run("catalog")
		s.Require().NoError(err)
		s.Contains(out, "gas z-factor")
		s.Contains(out, "Dranchuk-Abou-Kassem")
		s.Contains(out, "gas pseudocritical properties")
		s.Contains(out, "Stewart-Burkhardt-Voo")
		s.Contains(out, "bubble-point pressure")
		s.Contains(out, "Jennings-Newman")
	})

	s.Run("filtered", func() {
		resetFlags(rootCmd)
		out, _, err := s.run("catalog", "water")
		s.Require().NoError(err)
		s.Contains(out, "water viscosity")
		s.NotContains(out, "Papay")
		s.NotContains(out, "dead oil viscosity")
	})

	s.Run("no match", func() {
		resetFlags(rootCmd)
		out, _, err := s.run("catalog", "enthalpy")
		s.Require().NoError(err)
		s.Contains(out, `No property matches "enthalpy"`)
	})
}

func (s *CLISuite) TestGasPseudocritical() {
	out, errOut, err := s.run("gas", "pseudocritical", "--gravity", "0.7")
	s.Require().NoError(err)
	s.Empty(errOut)
	s.Contains(out, "663.34 psia")
	s.Contains(out, "377.59 °R")
}

func (s *CLISuite) TestGasPseudocriticalComparison() {
	out, _, err := s.run("gas", "pc", "-g", "0.7", "--co2", "0.05", "--wichert-aziz", "--all")
	s.Require().NoError(err)
	s.Contains(out, "METHOD COMPARISON")
	s.Contains(out, "Sutton")
	s.Contains(out, "Brown-Katz")
}

func (s *CLISuite) TestGasPseudocriticalNeedsGravity() {
	_, errOut, err := s.run("gas", "pseudocritical")
	s.Require().NoError(err)
	s.Contains(errOut, "Error resolving gas")
}

func (s *CLISuite) TestGasZ() {
	out, _, err := s.run("gas", "z", "-g", "0.7", "-t", "660", "-p", "2000", "--stats")
	s.Require().NoError(err)
	s.Contains(out, "DRANCHUK-ABOU-KASSEM")
	s.Contains(out, "2000.0")
	s.Contains(out, "Iter")
	s.NotContains(out, "need a gas gravity")
}

func (s *CLISuite) TestGasZWithoutGravity() {
	out, _, err := s.run("gas", "z", "--ppc", "667", "--tpc", "380", "-t", "620", "-p", "1500", "-c", "papay")
	s.Require().NoError(err)
	s.Contains(out, "PAPAY")
	s.Contains(out, "need a gas gravity")
}

func (s *CLISuite) TestGasZComparisonChart() {
	png := filepath.Join(s.dir, "z.png")
	out, _, err := s.run("gas", "z", "-g", "0.7", "-t", "660",
		"--p-start", "500", "--p-stop", "3000", "--p-step", "500",
		"--correlation", "all", "--chart", "-o", png)
	s.Require().NoError(err)
	s.Contains(out, "CORRELATION COMPARISON")
	s.Contains(out, "Hall-Yarborough")
	s.Contains(out, "Lee-Kesler")
	s.Contains(out, "Chart exported to: "+png)
	s.FileExists(png)
}

func (s *CLISuite) TestOilPb() {
	out, _, err := s.run("oil", "pb", "--api", "31", "-g", "0.95", "--rsb", "675", "-t", "640")
	s.Require().NoError(err)
	s.Contains(out, "BUBBLE-POINT PRESSURE")
	s.Contains(out, "2504.9")
	s.Contains(out, "Standing (1947)")
	s.Contains(out, "Vazquez-Beggs")
}

func (s *CLISuite) TestOilPbUnknownCorrelation() {
	_, errOut, err := s.run("oil", "pb", "--api", "31", "-g", "0.95", "--rsb", "675", "-t", "640", "-c", "nobody")
	s.Require().NoError(err)
	s.Contains(errOut, "Error selecting correlation")
}

func (s *CLISuite) TestOilFromSample() {
	path := s.writeSample(oilSample)

	s.Run("rs", func() {
		resetFlags(rootCmd)
		out, _, err := s.run("oil", "rs", "-f", path, "--chart")
		s.Require().NoError(err)
		s.Contains(out, "2504.9 psia (correlated)")
		s.Contains(out, "undersaturated")
		s.Contains(out, "SOLUTION GOR")
	})

	s.Run("bo with measured pb", func() {
		resetFlags(rootCmd)
		out, _, err := s.run("oil", "bo", "-f", path, "--pb", "2500", "--p-stop", "4000")
		s.Require().NoError(err)
		s.Contains(out, "2500.0 psia (measured)")
		s.Contains(out, "Bo at Pb:")
		s.Contains(out, "ρo (lb/ft³)")
	})

	s.Run("viscosity", func() {
		resetFlags(rootCmd)
		out, _, err := s.run("oil", "viscosity", "-f", path, "--dead", "beal", "--saturated", "chew-connally", "--undersaturated", "vb")
		s.Require().NoError(err)
		s.Contains(out, "Beal / Chew-Connally / Vazquez-Beggs")
		s.Contains(out, "μod (cp)")
	})
}

func (s *CLISuite) TestOilMissingFile() {
	_, errOut, err := s.run("oil", "pb", "-f", filepath.Join(s.dir, "missing.json"))
	s.Require().NoError(err)
	s.Contains(errOut, "Error resolving oil")
}

func (s *CLISuite) TestWaterProps() {
	out, _, err := s.run("water", "props", "-p", "5000", "-t", "660", "-s", "20000", "--compare")
	s.Require().NoError(err)
	s.Contains(out, "BRINE AT RESERVOIR CONDITIONS")
	s.Contains(out, "17.7281")
	s.Contains(out, "1.028062")
	s.Contains(out, "CORRELATION COMPARISON")
	s.Contains(out, "Culberson-McKetta")
}

func (s *CLISuite) TestWaterPropsFromSample() {
	path := s.writeSample(oilSample)
	out, _, err := s.run("water", "props", "-f", path, "-p", "5000")
	s.Require().NoError(err)
	s.Contains(out, "20000 ppm")
}

func (s *CLISuite) TestRangePolicy() {
	s.Run("warn logs and continues", func() {
		resetFlags(rootCmd)
		out, errOut, err := s.run("--range-policy", "warn", "water", "props", "-p", "5000", "-t", "900", "-s", "20000")
		s.Require().NoError(err)
		s.Contains(errOut, "input outside validated range")
		s.Contains(out, "BRINE AT RESERVOIR CONDITIONS")
	})

	s.Run("reject fails the command", func() {
		resetFlags(rootCmd)
		_, errOut, err := s.run("--range-policy", "reject", "water", "props", "-p", "5000", "-t", "900", "-s", "20000")
		s.Require().NoError(err)
		s.Contains(errOut, "Error computing water properties")
	})

	s.Run("unknown policy", func() {
		resetFlags(rootCmd)
		_, _, err := s.run("--range-policy", "sometimes", "catalog")
		s.Error(err)
	})
}

func (s *CLISuite) TestEnvironmentSettings() {
	s.T().Setenv("GOPVT_LOG_LEVEL", "debug")
	_, errOut, err := s.run("catalog")
	s.Require().NoError(err)
	s.Contains(errOut, "settings resolved")
}
