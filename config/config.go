// SPDX-License-Identifier: MIT

// Package config loads the runtime settings of the matrix engine.
//
// A configuration file is a single JSON object with exactly two keys:
//
//	{"sparse_ratio": 0.5, "max_input_length": 500}
//
// Parse is strict and reports the first problem as a sentinel error. Load is
// the forgiving entry point used at startup: any problem is logged as a
// warning and the defaults are returned instead.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/katalvlaran/lvmatrix/matrix"
	"github.com/rs/zerolog"
)

const (
	// DefaultSparseRatio mirrors matrix.DefaultSparseRatio.
	DefaultSparseRatio = matrix.DefaultSparseRatio
	// DefaultMaxInputLength bounds one line of user input, in bytes.
	DefaultMaxInputLength = 500
)

// JSON attribute names.
const (
	keySparseRatio    = "sparse_ratio"
	keyMaxInputLength = "max_input_length"
)

var (
	// ErrMissingAttribute is returned when a required key is absent.
	ErrMissingAttribute = errors.New("config: missing attribute")

	// ErrUnknownAttribute is returned for keys the loader does not know.
	ErrUnknownAttribute = errors.New("config: unknown attribute")

	// ErrInvalidRatio is returned when sparse_ratio is outside [0,1].
	ErrInvalidRatio = errors.New("config: sparse_ratio must be within [0,1]")

	// ErrInvalidMaxInputLength is returned when max_input_length is not positive.
	ErrInvalidMaxInputLength = errors.New("config: max_input_length must be > 0")

	// ErrMalformed wraps JSON syntax and type errors.
	ErrMalformed = errors.New("config: malformed document")

	// ErrInputTooLong is returned by CheckInput for over-long lines.
	ErrInputTooLong = errors.New("config: input exceeds max_input_length")
)

// Config holds the engine settings.
type Config struct {
	SparseRatio    float64 `json:"sparse_ratio"`
	MaxInputLength int     `json:"max_input_length"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{SparseRatio: DefaultSparseRatio, MaxInputLength: DefaultMaxInputLength}
}

// document is the wire shape; pointers tell a missing key from a zero value.
type document struct {
	SparseRatio    *float64 `json:"sparse_ratio"`
	MaxInputLength *int     `json:"max_input_length"`
}

// Parse decodes and validates a configuration document.
//
// Errors:
//   - ErrMalformed for invalid JSON, wrong value types or trailing data.
//   - ErrUnknownAttribute for any key besides sparse_ratio and max_input_length.
//   - ErrMissingAttribute when either key is absent.
//   - ErrInvalidRatio, ErrInvalidMaxInputLength for out-of-range values.
func Parse(r io.Reader) (Config, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.More() {
		return Config{}, fmt.Errorf("%w: trailing data after object", ErrMalformed)
	}
	for key := range raw {
		if key != keySparseRatio && key != keyMaxInputLength {
			return Config{}, fmt.Errorf("%w: %q", ErrUnknownAttribute, key)
		}
	}

	var doc document
	if v, ok := raw[keySparseRatio]; ok {
		if err := json.Unmarshal(v, &doc.SparseRatio); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrMalformed, keySparseRatio, err)
		}
	}
	if v, ok := raw[keyMaxInputLength]; ok {
		if err := json.Unmarshal(v, &doc.MaxInputLength); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrMalformed, keyMaxInputLength, err)
		}
	}

	return doc.resolve()
}

// resolve checks presence and ranges of the decoded values.
func (d document) resolve() (Config, error) {
	if d.SparseRatio == nil {
		return Config{}, fmt.Errorf("%w: %q", ErrMissingAttribute, keySparseRatio)
	}
	if d.MaxInputLength == nil {
		return Config{}, fmt.Errorf("%w: %q", ErrMissingAttribute, keyMaxInputLength)
	}
	c := Config{SparseRatio: *d.SparseRatio, MaxInputLength: *d.MaxInputLength}

	return c, c.Validate()
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	if math.IsNaN(c.SparseRatio) || c.SparseRatio < 0 || c.SparseRatio > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidRatio, c.SparseRatio)
	}
	if c.MaxInputLength <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxInputLength, c.MaxInputLength)
	}

	return nil
}

// Load reads path and returns its settings. It never fails: an unreadable or
// invalid file is logged at warn level and Default() is returned.
func Load(path string, log zerolog.Logger) Config {
	f, err := os.Open(path)
	if err != nil {
		return fallback(log, path, err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return fallback(log, path, err)
	}
	log.Debug().
		Str("path", path).
		Float64(keySparseRatio, c.SparseRatio).
		Int(keyMaxInputLength, c.MaxInputLength).
		Msg("configuration loaded")

	return c
}

// fallback logs why path was rejected and returns the defaults.
func fallback(log zerolog.Logger, path string, err error) Config {
	d := Default()
	log.Warn().
		Err(err).
		Str("path", path).
		Float64(keySparseRatio, d.SparseRatio).
		Int(keyMaxInputLength, d.MaxInputLength).
		Msg("configuration rejected, using defaults")

	return d
}

// MatrixOptions converts the settings into engine options.
// Panics if c holds an invalid ratio; configs from Parse, Load or Default
// are always valid.
func (c Config) MatrixOptions() []matrix.Option {
	return []matrix.Option{matrix.WithSparseRatio(c.SparseRatio)}
}

// Factory returns the storage factory for c.
func (c Config) Factory() (matrix.Factory, error) {
	f, err := matrix.NewFactory(c.SparseRatio)
	if err != nil {
		return matrix.Factory{}, fmt.Errorf("config: %w", err)
	}

	return f, nil
}

// CheckInput enforces MaxInputLength on one line of user input.
func (c Config) CheckInput(line string) error {
	if len(line) > c.MaxInputLength {
		return fmt.Errorf("%w: %d > %d bytes", ErrInputTooLong, len(line), c.MaxInputLength)
	}

	return nil
}
