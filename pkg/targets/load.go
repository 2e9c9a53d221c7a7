package targets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dd0wney/strongties/pkg/logging"
	"github.com/dd0wney/strongties/pkg/validation"
)

// ErrTargetConfig marks an unusable target preferences file.
var ErrTargetConfig = errors.New("invalid target configuration")

// ConfigError reports a target file that could not be parsed or validated.
type ConfigError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v %s: %v", ErrTargetConfig, e.Path, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is matches ErrTargetConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrTargetConfig
}

// Load reads target preferences from a JSON file. An empty path or a file
// that does not exist disables matching and returns nil, nil. A malformed
// or invalid file returns a *ConfigError; callers are expected to log it
// and carry on without targets.
func Load(path string, logger logging.Logger) (*Preferences, error) {
	logger = logging.OrNop(logger)
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("target file not found, matching disabled", logging.Path(path))
		return nil, nil
	}
	if err != nil {
		return nil, &ConfigError{Path: path, Cause: err}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Path: path, Cause: err}
	}
	if err := validation.ValidateStruct(&doc); err != nil {
		return nil, &ConfigError{Path: path, Cause: err}
	}

	prefs := New(doc.Companies, doc.Roles)
	logger.Info("loaded target preferences",
		logging.Path(path),
		logging.Int("companies", len(prefs.companies)),
		logging.Int("roles", len(prefs.roles)))
	return prefs, nil
}
