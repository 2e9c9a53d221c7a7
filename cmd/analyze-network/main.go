// Command analyze-network computes metrics, connectors and communities for
// a saved graph and writes the CSV reports.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dd0wney/strongties/pkg/config"
	"github.com/dd0wney/strongties/pkg/logging"
	"github.com/dd0wney/strongties/pkg/metrics"
	"github.com/dd0wney/strongties/pkg/pipeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		graphPath   string
		outputDir   string
		targetsPath string
		configPath  string
		topN        int
	)

	cmd := &cobra.Command{
		Use:           "analyze-network",
		Short:         "Analyze a saved connection graph",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
				return err
			}
			if topN < 0 {
				err := fmt.Errorf("--top_n must not be negative, got %d", topN)
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
				return err
			}

			logger := cfg.NewLogger(cmd.ErrOrStderr()).
				With(logging.RunID(uuid.NewString()))

			_, err = pipeline.AnalyzeNetwork(cmd.Context(), pipeline.AnalyzeOptions{
				GraphPath:   graphPath,
				OutputDir:   outputDir,
				TargetsPath: targetsPath,
				TopN:        topN,
				Config:      cfg,
			}, pipeline.Deps{
				Logger:  logger,
				Metrics: metrics.NewRegistry(),
				Out:     cmd.OutOrStdout(),
			})
			if err != nil {
				logger.Error("analyze-network failed", logging.Error(err))
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&graphPath, "graph", "results/figures/network.graphml", "GraphML file written by construct-graph")
	flags.StringVar(&outputDir, "output_dir", "results/reports", "directory for the CSV reports")
	flags.StringVar(&targetsPath, "targets", "", "optional JSON file of target companies and roles")
	flags.IntVar(&topN, "top_n", 0, "number of top connectors to report (default from config, 20)")
	flags.StringVar(&configPath, "config", "", "optional YAML settings file")

	return cmd
}
