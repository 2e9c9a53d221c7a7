package pipeline

import (
	"context"
	"fmt"

	"github.com/dd0wney/strongties/pkg/config"
	"github.com/dd0wney/strongties/pkg/connections"
	"github.com/dd0wney/strongties/pkg/graph"
	"github.com/dd0wney/strongties/pkg/logging"
	"github.com/dd0wney/strongties/pkg/table"
	"github.com/dd0wney/strongties/pkg/targets"
)

// ConstructOptions configure a construct-graph run
type ConstructOptions struct {
	DataDir     string
	Output      string
	TargetsPath string
	Config      *config.Config
}

// ConstructGraph merges every export in DataDir, builds the connection
// graph, flags target nodes when preferences are given and writes the
// graph to Output as GraphML.
func ConstructGraph(ctx context.Context, opts ConstructOptions, deps Deps) (*graph.Graph, error) {
	deps = deps.withDefaults()
	cfg := configOrDefault(opts.Config)
	log := deps.Logger.With(logging.Component("construct-graph"))
	deps.Logger = log

	normalizer := connections.NewNormalizer(connections.Options{
		Sanitized:             cfg.Sanitized,
		Standardize:           cfg.Standardize,
		HashIDs:               cfg.HashIDs,
		ObfuscateNames:        cfg.ObfuscateNames,
		LargeDatasetThreshold: cfg.LargeDatasetThreshold,
	}, log, deps.Metrics)
	loader := connections.NewLoader(normalizer, cfg.Workers, log, deps.Metrics)

	var merged *table.Table
	err := deps.stage(ctx, StageLoad, func() (err error) {
		merged, err = loader.LoadDir(ctx, opts.DataDir)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load connections from %s: %w", opts.DataDir, err)
	}

	var g *graph.Graph
	err = deps.stage(ctx, StageBuild, func() (err error) {
		g, err = graph.NewBuilder(log, deps.Metrics).Build(merged, graph.BuildOptions{
			SourceColumn: cfg.SourceColumn,
			TargetColumn: cfg.TargetColumn,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if opts.TargetsPath != "" {
		err = deps.stage(ctx, StageTargets, func() error {
			if prefs := deps.loadTargets(opts.TargetsPath); prefs != nil {
				matched := targets.Annotate(g, prefs)
				deps.Metrics.RecordTargets(matched)
				log.Info("annotated target nodes", logging.Count(matched))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	err = deps.stage(ctx, StageWrite, func() error {
		return graph.WriteGraphMLFile(opts.Output, g)
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(deps.Out, "Graph has %d nodes and %d edges.\n", g.NodeCount(), g.EdgeCount())
	log.Info("graph written",
		logging.Path(opts.Output),
		logging.Int("nodes", g.NodeCount()),
		logging.Int("edges", g.EdgeCount()))

	deps.finish(cfg)
	return g, nil
}
