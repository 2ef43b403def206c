package tile

// Builtin functions available to marker expressions when rendering with
// WithBuiltins(true). Names bound in the Scope shadow every entry here.

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/mung"
)

// Builtins returns a fresh map of the builtin names. The env function
// reads from environ ("KEY=VALUE" entries), or from the process
// environment when environ is empty.
//
// Provided names:
//
//	env(name)                         environment variable value or ""
//	cwd()                             working directory
//	lines(text)                       text split on "\n"
//	path.abs(p), path.base(p), path.dir(p)
//	path.cat(elem...)                 filepath.Join
//	path.rel(from, to)                relative path, or path.cat on failure
//	mung.prefix(list, items...)       prepend items to a PATH-like list
//	mung.prefixif(list, pred, items...)
//
// include(name) is added separately when partials are registered.
func Builtins(environ []string) map[string]any {
	return map[string]any{
		"env":   envFunc(environMap(environ)),
		"cwd":   getCwd,
		"lines": func(text string) []string {
			return strings.Split(text, "\n")
		},
		"path": map[string]any{
			"abs":  pathAbs,
			"base": filepath.Base,
			"cat":  pathCat,
			"dir":  filepath.Dir,
			"rel":  pathRel,
		},
		"mung": map[string]any{
			"prefix":   mungPrefix,
			"prefixif": mungPrefixIf,
		},
	}
}

// environMap converts a "KEY=VALUE" list to a map.
// If environ is empty, os.Environ() is used.
func environMap(environ []string) map[string]string {
	if len(environ) == 0 {
		environ = os.Environ()
	}

	m := make(map[string]string, len(environ))

	for _, entry := range environ {
		if key, value, ok := strings.Cut(entry, "="); ok {
			m[key] = value
		}
	}

	return m
}

func envFunc(environ map[string]string) func(string) string {
	return func(key string) string {
		return environ[key]
	}
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return pathAbs(".")
	}

	return cwd
}

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}

func pathCat(elem ...string) string {
	return filepath.Join(elem...)
}

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return pathCat(from, to)
	}

	return p
}

func mungPrefix(list string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(
	list string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}
