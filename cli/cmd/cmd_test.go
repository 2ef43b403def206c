package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFiles creates files under a temporary directory and returns their
// paths in argument order.
func writeFiles(t *testing.T, contents ...string) []string {
	t.Helper()

	dir := t.TempDir()
	paths := make([]string, len(contents))

	for i, content := range contents {
		paths[i] = filepath.Join(dir, "file"+string(rune('a'+i))+".tpl")
		require.NoError(t, os.WriteFile(paths[i], []byte(content), 0o600))
	}

	return paths
}

// testContext returns a context whose commands read stdin from in and write
// to the returned buffer.
func testContext(t *testing.T, in string) (context.Context, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	return WithStreams(t.Context(), strings.NewReader(in), &out), &out
}

func TestReadTemplate_NoFilesReadsStdin(t *testing.T) {
	ctx, _ := testContext(t, "from stdin")

	got, err := readTemplate(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)
}

func TestReadTemplate_Concatenates(t *testing.T) {
	paths := writeFiles(t, "first\n", "second\n")
	ctx, _ := testContext(t, "")

	got, err := readTemplate(ctx, paths)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", got)
}

func TestReadTemplate_StdinLast(t *testing.T) {
	paths := writeFiles(t, "file\n")
	ctx, _ := testContext(t, "stdin\n")

	got, err := readTemplate(ctx, []string{"-", paths[0], "-"})
	require.NoError(t, err)
	assert.Equal(t, "file\nstdin\n", got)
}

func TestBuildSourceFiles_Duplicates(t *testing.T) {
	paths := writeFiles(t, "once\n")
	dir := filepath.Dir(paths[0])

	link := filepath.Join(dir, "link.tpl")
	require.NoError(t, os.Symlink(paths[0], link))

	t.Chdir(dir)

	srcs, err := buildSourceFiles(
		[]string{paths[0], filepath.Base(paths[0]), link},
		strings.NewReader(""),
	)
	require.NoError(t, err)

	names := srcs.Names()
	require.Len(t, names, 1)

	var sb strings.Builder

	_, err = srcs.WriteTo(&sb)
	require.NoError(t, err)
	assert.Equal(t, "once\n", sb.String())
}

func TestBuildSourceFiles_Missing(t *testing.T) {
	_, err := buildSourceFiles(
		[]string{filepath.Join(t.TempDir(), "missing.tpl")},
		strings.NewReader(""),
	)
	require.ErrorIs(t, err, ErrReadSource)
}

func TestSourceFiles_IsZero(t *testing.T) {
	srcs, err := buildSourceFiles([]string{"-"}, nil)
	require.NoError(t, err)
	assert.True(t, srcs.IsZero())

	srcs, err = buildSourceFiles(nil, strings.NewReader("x"))
	require.NoError(t, err)
	assert.False(t, srcs.IsZero())
	assert.Equal(t, []string{stdinSource}, srcs.Names())
}
