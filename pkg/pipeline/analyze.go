package pipeline

import (
	"context"
	"fmt"

	"github.com/dd0wney/strongties/pkg/algorithms"
	"github.com/dd0wney/strongties/pkg/config"
	"github.com/dd0wney/strongties/pkg/graph"
	"github.com/dd0wney/strongties/pkg/logging"
	"github.com/dd0wney/strongties/pkg/reports"
	"github.com/dd0wney/strongties/pkg/targets"
)

// AnalyzeOptions configure an analyze-network run
type AnalyzeOptions struct {
	GraphPath   string
	OutputDir   string
	TargetsPath string

	// TopN overrides the configured connector count when positive.
	TopN   int
	Config *config.Config
}

// AnalyzeNetwork loads a saved graph, computes metrics, connectors and
// communities, writes the CSV reports to OutputDir and prints the summary.
// Without a targets file, annotations already stored in the graph are
// counted for the summary.
func AnalyzeNetwork(ctx context.Context, opts AnalyzeOptions, deps Deps) (*reports.Report, error) {
	deps = deps.withDefaults()
	cfg := configOrDefault(opts.Config)
	log := deps.Logger.With(logging.Component("analyze-network"))
	deps.Logger = log

	topN := cfg.TopN
	if opts.TopN > 0 {
		topN = opts.TopN
	}

	var g *graph.Graph
	err := deps.stage(ctx, StageRead, func() (err error) {
		g, err = graph.ReadGraphMLFile(opts.GraphPath)
		return err
	})
	if err != nil {
		return nil, err
	}
	deps.Metrics.RecordGraph(g.NodeCount(), g.EdgeCount(), 0)

	report := &reports.Report{}
	err = deps.stage(ctx, StageAnalyze, func() error {
		report.Metrics = algorithms.BasicMetrics(g)
		report.TopConnectors = algorithms.TopConnectors(g, topN)
		report.Communities = algorithms.GreedyModularity(g)
		report.AvgClustering = algorithms.AverageClusteringCoefficient(g)
		deps.Metrics.RecordCommunities(len(report.Communities.Communities), report.Communities.Modularity)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = deps.stage(ctx, StageTargets, func() error {
		prefs := deps.loadTargets(opts.TargetsPath)
		if prefs == nil {
			report.TargetNodes = targets.CountAnnotated(g)
			return nil
		}
		report.TargetNodes = targets.Annotate(g, prefs)
		report.TargetConnectors = targets.RankConnectors(g, report.TopConnectors, prefs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	deps.Metrics.RecordTargets(report.TargetNodes)

	err = deps.stage(ctx, StageReports, func() error {
		written, err := reports.WriteAll(opts.OutputDir, report)
		for _, path := range written {
			log.Info("report written", logging.Path(path))
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	err = deps.stage(ctx, StageSummarize, func() error {
		return reports.RenderSummary(deps.Out, report, cfg.SummaryTop)
	})
	if err != nil {
		return nil, fmt.Errorf("render summary: %w", err)
	}

	deps.finish(cfg)
	return report, nil
}
