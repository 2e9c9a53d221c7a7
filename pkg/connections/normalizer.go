package connections

import (
	"strings"

	"github.com/dd0wney/strongties/pkg/logging"
	"github.com/dd0wney/strongties/pkg/masking"
	"github.com/dd0wney/strongties/pkg/metrics"
	"github.com/dd0wney/strongties/pkg/table"
)

// DefaultLargeDatasetThreshold is the row count above which a warning is raised.
const DefaultLargeDatasetThreshold = 5000

// Warning kinds recorded in metrics
const (
	WarnDroppedColumns = "dropped_columns"
	WarnLargeDataset   = "large_dataset"
	WarnMissingValues  = "missing_values"
)

// allowedColumns are the only headers kept in sanitized mode.
var allowedColumns = []string{"First Name", "Last Name", "Company", "Position"}

// Options control how raw rows are normalized.
type Options struct {
	// Sanitized keeps only First Name, Last Name, Company and Position
	// and strips accents from names.
	Sanitized bool

	// Standardize lowercases and strips punctuation from company and position.
	Standardize bool

	// HashIDs adds a hash_id column (sanitized mode only).
	HashIDs bool

	// ObfuscateNames replaces names with Person<N> Demo (sanitized mode only).
	ObfuscateNames bool

	LargeDatasetThreshold int
}

// Normalizer turns one user's raw rows into a normalized connection table.
type Normalizer struct {
	opts    Options
	logger  logging.Logger
	metrics *metrics.Registry

	// masker hides owner ids in log fields; nil outside sanitized mode.
	masker *masking.Masker
}

// NewNormalizer creates a Normalizer. logger and reg may be nil.
func NewNormalizer(opts Options, logger logging.Logger, reg *metrics.Registry) *Normalizer {
	if opts.LargeDatasetThreshold <= 0 {
		opts.LargeDatasetThreshold = DefaultLargeDatasetThreshold
	}
	n := &Normalizer{
		opts:    opts,
		logger:  logging.OrNop(logger).With(logging.Component("normalizer")),
		metrics: reg,
	}
	if opts.Sanitized {
		n.masker = masking.NewMasker(masking.SanitizedPolicy())
	}
	return n
}

// userField is the log field for an owner id, masked in sanitized mode.
func (n *Normalizer) userField(userID string) logging.Field {
	return logging.User(n.masker.Mask(userID, masking.FieldUser))
}

// Options returns the normalizer's effective options.
func (n *Normalizer) Options() Options {
	return n.opts
}

// Normalize cleans raw and tags every row with userID. source names the
// origin of the rows in warnings and errors and may be empty.
//
// The result has a name column synthesized from first and last name,
// duplicate rows removed both before and after cleaning, and columns in
// canonical order. A *SchemaError is returned when no name can be built.
func (n *Normalizer) Normalize(raw *table.Table, userID, source string) (*table.Table, error) {
	log := n.logger.With(logging.Path(source), n.userField(userID))

	t := raw.Dedup()
	n.metrics.RecordDuplicates("file", raw.Len()-t.Len())

	if n.opts.Sanitized {
		var err error
		if t, err = n.sanitize(t, source, log); err != nil {
			return nil, err
		}
	}

	t = t.Rename(normalizeHeader)

	if err := checkIdentity(t, source); err != nil {
		return nil, err
	}

	t.MapColumn(ColumnEmail, func(v string) table.Cell {
		return table.Str(strings.TrimSpace(v))
	})

	if t.Has(ColumnFirstName) && t.Has(ColumnLastName) {
		first, last := t.Index(ColumnFirstName), t.Index(ColumnLastName)
		t.SetColumn(ColumnName, func(_ int, r table.Row) table.Cell {
			if !r[first].Valid || !r[last].Valid {
				return table.Null()
			}
			return table.Str(strings.TrimSpace(r[first].Value) + " " + strings.TrimSpace(r[last].Value))
		})
		t = t.Drop(ColumnFirstName, ColumnLastName)
	}

	if n.opts.Standardize {
		t.MapColumn(ColumnCompany, func(v string) table.Cell { return table.Str(CleanCompanyName(v)) })
		t.MapColumn(ColumnPosition, func(v string) table.Cell { return table.Str(StandardizePositionTitle(v)) })
	}

	if t.Len() > n.opts.LargeDatasetThreshold {
		log.Warn("dataset exceeds large dataset threshold, consider sampling",
			logging.Rows(t.Len()), logging.Int("threshold", n.opts.LargeDatasetThreshold))
		n.metrics.RecordWarning(WarnLargeDataset)
	}
	if cols := t.ColumnsWithNulls(); len(cols) > 0 {
		log.Warn("missing values detected", logging.Strings("columns", cols))
		n.metrics.RecordWarning(WarnMissingValues)
	}

	before := t.Len()
	t = t.Dedup()
	n.metrics.RecordDuplicates("normalized", before-t.Len())

	t.SetColumn(ColumnOwner, func(int, table.Row) table.Cell { return table.Str(userID) })

	log.Debug("normalized connections", logging.Rows(t.Len()))
	return CanonicalOrder(t), nil
}

// sanitize applies the privacy-aware allow-list. Headers are matched to
// the allow-list ignoring case and surrounding or repeated whitespace.
func (n *Normalizer) sanitize(t *table.Table, source string, log logging.Logger) (*table.Table, error) {
	canonical := make(map[string]string, len(allowedColumns))
	for _, c := range allowedColumns {
		canonical[headerKey(c)] = c
	}

	var dropped []string
	t = t.Rename(func(c string) string {
		if name, ok := canonical[headerKey(c)]; ok {
			return name
		}
		dropped = append(dropped, c)
		return c
	})
	if len(dropped) > 0 {
		log.Warn("dropping unexpected columns", logging.Strings("columns", dropped))
		n.metrics.RecordWarning(WarnDroppedColumns)
	}

	var missing []string
	for _, c := range allowedColumns[:2] {
		if !t.Has(c) {
			missing = append(missing, normalizeHeader(c))
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Path: source, Missing: missing}
	}

	t = t.Select(allowedColumns...)
	for _, c := range allowedColumns[:2] {
		t.MapColumn(c, func(v string) table.Cell { return table.Str(masking.StripAccents(v)) })
	}

	if n.opts.HashIDs {
		first, last, company := t.Index("First Name"), t.Index("Last Name"), t.Index("Company")
		t.SetColumn(ColumnHashID, func(_ int, r table.Row) table.Cell {
			var c string
			if company >= 0 {
				c = r[company].String()
			}
			return table.Str(masking.HashIdentifier(r[first].String(), r[last].String(), c))
		})
	}

	if n.opts.ObfuscateNames {
		t.SetColumn("First Name", func(i int, _ table.Row) table.Cell {
			return table.Str(masking.PlaceholderFirstName(i))
		})
		t.SetColumn("Last Name", func(int, table.Row) table.Cell {
			return table.Str(masking.PlaceholderLastName)
		})
	}

	return t, nil
}

// checkIdentity requires either a name column or both first_name and last_name.
func checkIdentity(t *table.Table, source string) error {
	if t.Has(ColumnName) || (t.Has(ColumnFirstName) && t.Has(ColumnLastName)) {
		return nil
	}
	var missing []string
	for _, c := range []string{ColumnFirstName, ColumnLastName} {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	return &SchemaError{Path: source, Missing: append(missing, "or "+ColumnName)}
}

// normalizeHeader trims, lowercases and replaces spaces with underscores.
func normalizeHeader(c string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(c)), " ", "_")
}

// headerKey folds case and whitespace for allow-list matching.
func headerKey(c string) string {
	return strings.ToLower(strings.Join(strings.Fields(c), " "))
}
