// Command construct-graph merges per-user connection exports into one
// undirected graph and saves it as GraphML.
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
		dataDir     string
		output      string
		targetsPath string
		configPath  string
	)

	cmd := &cobra.Command{
		Use:           "construct-graph",
		Short:         "Build the connection graph from a directory of CSV exports",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
				return err
			}

			logger := cfg.NewLogger(cmd.ErrOrStderr()).
				With(logging.RunID(uuid.NewString()))

			_, err = pipeline.ConstructGraph(cmd.Context(), pipeline.ConstructOptions{
				DataDir:     dataDir,
				Output:      output,
				TargetsPath: targetsPath,
				Config:      cfg,
			}, pipeline.Deps{
				Logger:  logger,
				Metrics: metrics.NewRegistry(),
				Out:     cmd.OutOrStdout(),
			})
			if err != nil {
				logger.Error("construct-graph failed", logging.Error(err))
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dataDir, "data_dir", "data", "directory containing <user>_connections.csv files")
	flags.StringVar(&output, "output", "results/figures/network.graphml", "GraphML output path (.sz for snappy)")
	flags.StringVar(&targetsPath, "targets", "", "optional JSON file of target companies and roles")
	flags.StringVar(&configPath, "config", "", "optional YAML settings file")

	return cmd
}
