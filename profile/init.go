package profile

import (
	"os"
	"path/filepath"

	"github.com/ardnew/tiles/pkg"
)

// Profiler selects a profiling mode and where its output is written.
type Profiler struct {
	Mode  string
	Path  string
	Quiet bool
}

// Option configures a Profiler.
type Option func(Profiler) Profiler

// New returns a Profiler with opts applied in order.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		p = opt(p)
	}

	return p
}

// WithMode sets the profiling mode. See [Modes].
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithPath sets the output directory.
func WithPath(path string) Option {
	return func(p Profiler) Profiler {
		p.Path = path

		return p
	}
}

// WithQuiet suppresses the profiler's own start and stop messages.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

// DefaultPath returns the "pprof" directory beneath the tiles user cache
// directory, or beneath the working directory if there is none.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", Tag)
	}

	return filepath.Join(dir, pkg.Name, Tag)
}

// Start starts profiling and returns the controller that stops it.
//
// An empty Path uses [DefaultPath]. Without the pprof build tag, or with an
// empty or unknown Mode, Start does nothing. Stop is always safe to call.
func (p Profiler) Start() interface{ Stop() } {
	if p.Mode == "" {
		return ignore{}
	}

	if p.Path == "" {
		p.Path = DefaultPath()
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
