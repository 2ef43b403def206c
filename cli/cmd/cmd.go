package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	streamsKey struct{}
	streams    struct {
		in  io.Reader
		out io.Writer
	}
)

// WithStreams returns a new context.Context whose commands read templates
// given as "-" from in and print results to out.
func WithStreams(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	return context.WithValue(ctx, streamsKey{}, streams{in: in, out: out})
}

// streamsFrom returns the streams stored by WithStreams, defaulting to the
// process's standard input and output.
func streamsFrom(ctx context.Context) streams {
	s, _ := ctx.Value(streamsKey{}).(streams)

	if s.in == nil {
		s.in = os.Stdin
	}

	if s.out == nil {
		s.out = os.Stdout
	}

	return s
}

// SourceFiles reads the concatenated content of a command's input files.
type SourceFiles interface {
	IsZero() bool
	Names() []string
	io.WriterTo
}

type sourceFiles struct {
	paths []string
	stdin io.Reader
}

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.paths) == 0 && s.stdin == nil }

// Names returns the resolved file paths, with stdinSource last if stdin is
// included.
func (s *sourceFiles) Names() []string {
	names := append([]string(nil), s.paths...)
	if s.stdin != nil {
		names = append(names, stdinSource)
	}

	return names
}

// WriteTo implements io.WriterTo by writing all source files to w in order,
// followed by stdin if present.
func (s *sourceFiles) WriteTo(w io.Writer) (n int64, err error) {
	for _, path := range s.paths {
		m, err := copyFile(w, path)
		n += m

		if err != nil {
			return n, ErrReadSource.With(slog.String("file", path)).Wrap(err)
		}
	}

	if s.stdin != nil {
		m, err := io.Copy(w, s.stdin)
		n += m

		if err != nil {
			return n, ErrReadSource.With(slog.String("file", stdinSource)).Wrap(err)
		}
	}

	return n, nil
}

func copyFile(w io.Writer, path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return io.Copy(w, file)
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// buildSourceFiles constructs a SourceFiles from the given source paths.
// It deduplicates files by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" are replaced with a single stdin reader placed
// last so it reads after all regular files. No paths at all means stdin.
func buildSourceFiles(sources []string, stdin io.Reader) (SourceFiles, error) {
	if len(sources) == 0 {
		sources = []string{stdinSource}
	}

	var srcs sourceFiles

	seen := make(map[fileKey]struct{})

	for _, src := range sources {
		if src == stdinSource {
			srcs.stdin = stdin

			continue
		}

		path, ok, err := resolveUniqueFile(src, seen)
		if err != nil {
			return nil, ErrReadSource.With(slog.String("file", src)).Wrap(err)
		}

		if ok {
			srcs.paths = append(srcs.paths, path)
		}
	}

	return &srcs, nil
}

// resolveUniqueFile resolves path to its real location and reports whether
// it has not been seen before.
func resolveUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (string, bool, error) {
	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false, err
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", false, err
	}

	key, ok := makeFileKey(info)
	if !ok {
		return resolved, true, nil
	}

	if _, exists := seen[key]; exists {
		return "", false, nil
	}

	seen[key] = struct{}{}

	return resolved, true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// readTemplate returns the concatenated content of files, reading "-" (or
// no files at all) from the context's input stream.
func readTemplate(ctx context.Context, files []string) (string, error) {
	srcs, err := buildSourceFiles(files, streamsFrom(ctx).in)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	if _, err := srcs.WriteTo(&sb); err != nil {
		return "", err
	}

	return sb.String(), nil
}
