package tile

import (
	"maps"

	"github.com/ardnew/tiles/log"
)

// DefaultMaxDepth limits how deeply partials may include one another.
const DefaultMaxDepth = 64

// Option configures a call to [Render].
type Option func(config) config

type config struct {
	logger   log.Logger
	partials map[string]string
	environ  []string
	maxDepth int
	builtins bool
}

func makeConfig(opts ...Option) config {
	cfg := config{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}

// WithLogger traces every marker evaluation through logger.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

// WithBuiltins makes the functions of [Builtins] available to marker
// expressions. Names in the [Scope] shadow them.
func WithBuiltins(enable bool) Option {
	return func(c config) config {
		c.builtins = enable

		return c
	}
}

// WithEnviron sets the "KEY=VALUE" list read by the env builtin.
// Without it, the process environment is used.
func WithEnviron(environ []string) Option {
	return func(c config) config {
		c.environ = environ

		return c
	}
}

// WithPartials registers named templates that marker expressions render
// with include(name). Partials see the same scope as the template that
// includes them.
func WithPartials(partials map[string]string) Option {
	return func(c config) config {
		if c.partials == nil {
			c.partials = make(map[string]string, len(partials))
		} else {
			c.partials = maps.Clone(c.partials)
		}

		maps.Copy(c.partials, partials)

		return c
	}
}

// WithMaxDepth sets the include nesting limit. Values below 1 restore
// [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(c config) config {
		if depth < 1 {
			depth = DefaultMaxDepth
		}

		c.maxDepth = depth

		return c
	}
}
