// Package pipeline runs the two batch jobs: building the merged graph
// from a directory of connection exports, and analyzing a saved graph.
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/dd0wney/strongties/pkg/config"
	"github.com/dd0wney/strongties/pkg/logging"
	"github.com/dd0wney/strongties/pkg/metrics"
	"github.com/dd0wney/strongties/pkg/targets"
)

// Stage names used for timing and metrics
const (
	StageLoad      = "load"
	StageBuild     = "build"
	StageTargets   = "targets"
	StageWrite     = "write"
	StageRead      = "read"
	StageAnalyze   = "analyze"
	StageReports   = "reports"
	StageSummarize = "summarize"
)

// Deps are the shared collaborators of a run. All fields may be nil.
type Deps struct {
	Logger  logging.Logger
	Metrics *metrics.Registry
	Out     io.Writer
}

func (d Deps) withDefaults() Deps {
	d.Logger = logging.OrNop(d.Logger)
	if d.Out == nil {
		d.Out = io.Discard
	}
	return d
}

func configOrDefault(cfg *config.Config) *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// stage times fn, logs its outcome and records it in the registry.
func (d Deps) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timer := logging.StartTimer(d.Logger, "stage finished", logging.Operation(name))
	err := fn()
	var elapsed time.Duration
	if err != nil {
		elapsed = timer.EndError(err)
	} else {
		elapsed = timer.End()
	}
	d.Metrics.RecordStage(name, err, elapsed)
	return err
}

// loadTargets reads the preferences file. A broken file disables matching
// with a warning instead of failing the run.
func (d Deps) loadTargets(path string) *targets.Preferences {
	prefs, err := targets.Load(path, d.Logger)
	if err != nil {
		d.Logger.Warn("ignoring target preferences", logging.Path(path), logging.Error(err))
		d.Metrics.RecordWarning("target_config")
		return nil
	}
	return prefs
}

// finish stamps the run and exports metrics when a textfile is configured.
func (d Deps) finish(cfg *config.Config) {
	d.Metrics.MarkFinished(time.Now())
	if err := d.Metrics.WriteTextfile(cfg.MetricsFile); err != nil {
		d.Logger.Warn("metrics export failed", logging.Path(cfg.MetricsFile), logging.Error(err))
	}
}
