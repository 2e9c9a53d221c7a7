package connections

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dd0wney/strongties/pkg/logging"
	"github.com/dd0wney/strongties/pkg/metrics"
	"github.com/dd0wney/strongties/pkg/parallel"
	"github.com/dd0wney/strongties/pkg/table"
)

// Loader reads connection files from disk and merges them.
type Loader struct {
	normalizer *Normalizer
	logger     logging.Logger
	metrics    *metrics.Registry
	workers    int
}

// NewLoader creates a Loader that normalizes files with n using up to
// workers goroutines. logger and reg may be nil.
func NewLoader(n *Normalizer, workers int, logger logging.Logger, reg *metrics.Registry) *Loader {
	if workers <= 0 {
		workers = 1
	}
	return &Loader{
		normalizer: n,
		logger:     logging.OrNop(logger).With(logging.Component("loader")),
		metrics:    reg,
		workers:    workers,
	}
}

// IsSafePath reports whether path lies inside base once both are made
// absolute and cleaned. A sibling that merely shares a prefix, such as
// /data2 for base /data, is not inside.
func IsSafePath(base, path string) bool {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// UserIDFromFilename infers the owning user from a file name:
// "alice_connections.csv" and "alice.csv" both give "alice".
func UserIDFromFilename(name string) string {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if i := strings.Index(stem, "_"); i > 0 {
		return stem[:i]
	}
	return stem
}

// LoadFile reads and normalizes one CSV file. When baseDir is non-empty the
// file must lie inside it, otherwise a *PathSafetyError is returned.
func (l *Loader) LoadFile(path, userID, baseDir string) (*table.Table, error) {
	if baseDir != "" && !IsSafePath(baseDir, path) {
		return nil, &PathSafetyError{Base: baseDir, Path: path}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	raw, err := table.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return l.normalizer.Normalize(raw, userID, path)
}

type sourceFile struct {
	path   string
	userID string
}

// LoadDir loads every .csv file directly inside dir, in directory listing
// order, and returns the concatenation with duplicate people removed. Files that resolve
// outside dir, cannot be read, or fail normalization are skipped with a
// warning. A directory without eligible files yields an empty table.
func (l *Loader) LoadDir(ctx context.Context, dir string) (*table.Table, error) {
	timer := logging.StartTimer(l.logger, "load connections", logging.Path(dir))

	root, err := filepath.Abs(dir)
	if err == nil {
		root, err = filepath.EvalSymlinks(root)
	}
	if err != nil {
		timer.EndError(err)
		return nil, fmt.Errorf("resolve data dir %s: %w", dir, err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		timer.EndError(err)
		return nil, fmt.Errorf("list data dir %s: %w", dir, err)
	}

	var files []sourceFile
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		full := filepath.Join(root, e.Name())
		resolved, err := filepath.EvalSymlinks(full)
		if err != nil {
			l.logger.Warn("skipping unresolvable file", logging.Path(full), logging.Error(err))
			l.metrics.RecordFile(metrics.FileSkipped, 0)
			continue
		}
		if !IsSafePath(root, resolved) {
			l.logger.Warn("skipping file outside data dir",
				logging.Path(full), logging.String("resolved", resolved))
			l.metrics.RecordFile(metrics.FileRejected, 0)
			continue
		}
		files = append(files, sourceFile{path: resolved, userID: UserIDFromFilename(e.Name())})
	}

	results := parallel.MapOrdered(ctx, l.workers, files, func(_ context.Context, f sourceFile) (*table.Table, error) {
		return l.LoadFile(f.path, f.userID, root)
	})
	if err := ctx.Err(); err != nil {
		timer.EndError(err)
		return nil, err
	}

	parts := make([]*table.Table, 0, len(results))
	for i, r := range results {
		if r.Err != nil {
			l.logger.Warn("skipping file", logging.Path(files[i].path), l.normalizer.userField(files[i].userID), logging.Error(r.Err))
			l.metrics.RecordFile(metrics.FileSkipped, 0)
			continue
		}
		l.metrics.RecordFile(metrics.FileLoaded, r.Value.Len())
		parts = append(parts, r.Value)
	}

	if len(parts) == 0 {
		l.logger.Warn("no connection files loaded", logging.Path(dir))
		timer.End(logging.Rows(0))
		return table.New(ColumnName, ColumnCompany, ColumnPosition, ColumnOwner), nil
	}

	// The same person contributed by two users is kept once, under the
	// first user in listing order.
	combined := table.Concat(parts...)
	merged := CanonicalOrder(combined.DedupExcept(ColumnOwner))
	l.metrics.RecordDuplicates("merge", combined.Len()-merged.Len())
	l.metrics.RecordMerged(merged.Len())

	timer.End(logging.Count(len(parts)), logging.Rows(merged.Len()))
	return merged, nil
}
