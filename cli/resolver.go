package cli

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tiles/log"
)

// resolve is a [kong.ConfigurationLoader] that parses YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// The document is a flat mapping from flag names to values:
//   - Flag names may use hyphens (log-level) or underscores (log_level)
//   - Sequences set repeatable flags
//   - Numbers are passed to Kong as strings
//
// Example config file:
//
//	log-level: debug
//	log-format: json
//	log-pretty: false
//	builtins: false
//
// Command-line flags override config file values. A file that cannot be
// parsed is reported and ignored.
func resolve(r io.Reader) (kong.Resolver, error) {
	var m map[string]any

	err := yaml.NewDecoder(r).Decode(&m)
	if err != nil && !errors.Is(err, io.EOF) {
		log.Warn("ignoring invalid configuration file", slog.Any("error", err))

		return config{}, nil
	}

	for key, val := range m {
		m[key] = kongValue(val)
	}

	return config(m), nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	// Look up the value in our config
	if value, ok := r[name]; ok {
		return value, nil
	}

	// Try underscore variant
	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// kongValue converts a decoded YAML value to a form Kong can map: numbers
// become strings, sequences are converted element-wise.
func kongValue(val any) any {
	switch v := val.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = kongValue(e)
		}

		return out
	default:
		return v
	}
}
