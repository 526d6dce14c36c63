package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fastimage/go-fastimage/benchmark"
)

var benchOpts struct {
	scenarios string
	out       string
	full      bool
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run decode, resize, and encode throughput scenarios",
	Long: `Run pipeline scenarios against synthesized source frames and write
JSON results plus a CSV summary to the output directory.

Without --scenarios the built-in quick set runs; --full selects the
comprehensive built-in set instead.`,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().StringVar(&benchOpts.scenarios, "scenarios", "", "JSON scenario set file")
	benchCmd.Flags().StringVar(&benchOpts.out, "out", "./bench-results", "directory for result files")
	benchCmd.Flags().BoolVar(&benchOpts.full, "full", false, "run the comprehensive built-in set")
}

func runBench(cmd *cobra.Command, args []string) error {
	var (
		set *benchmark.ScenarioSet
		err error
	)
	switch {
	case benchOpts.scenarios != "":
		set, err = benchmark.LoadScenarioSet(benchOpts.scenarios)
		if err != nil {
			return err
		}
	case benchOpts.full:
		set = (&benchmark.PredefinedScenarios{}).GetComprehensiveScenarios()
	default:
		set = (&benchmark.PredefinedScenarios{}).GetQuickScenarios()
	}

	slog.Info("running benchmark", "set", set.Name, "scenarios", len(set.Scenarios))

	suite := benchmark.NewSuite(newEngine(), benchOpts.out)
	for _, scenario := range set.Scenarios {
		suite.AddScenario(scenario)
	}
	return suite.RunAllScenarios(cmd.Context())
}
