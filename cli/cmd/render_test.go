package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Run(t *testing.T) {
	scopeFile := filepath.Join(t.TempDir(), "scope.yaml")
	require.NoError(t, os.WriteFile(scopeFile, []byte("user:\n  name: ada\nitems: [a, b]\n"), 0o600))

	tests := []struct {
		name     string
		stdin    string
		flags    ScopeFlags
		want     string
		wantErr  error
		setupErr bool
	}{
		{
			name:  "stdin template without scope",
			stdin: "    x = @{1 + 2}\n",
			want:  "x = 3\n",
		},
		{
			name:  "local bindings are typed",
			stdin: "@{n + 1} @{flag ? \"on\" : \"off\"} @{s}",
			flags: ScopeFlags{Set: []string{"n=41", "flag=true", "s=a=b"}},
			want:  "42 on a=b\n",
		},
		{
			name:  "scope file",
			stdin: "- @{items}\nby @{user.name}",
			flags: ScopeFlags{Scope: []string{scopeFile}},
			want:  "- a\n  b\nby ada\n",
		},
		{
			name:  "locals shadow scope file",
			stdin: "@{user}",
			flags: ScopeFlags{Scope: []string{scopeFile}, Set: []string{"user=me"}},
			want:  "me\n",
		},
		{
			name:    "unterminated marker",
			stdin:   "@{oops",
			wantErr: ErrRender,
		},
		{
			name:    "bad binding",
			stdin:   "x",
			flags:   ScopeFlags{Set: []string{"novalue"}},
			wantErr: ErrBinding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := testContext(t, tt.stdin)

			tt.flags.MaxDepth = 8
			r := Render{ScopeFlags: tt.flags}

			err := r.Run(ctx)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRender_Builtins(t *testing.T) {
	t.Setenv("TILES_TEST_VALUE", "from env")

	ctx, out := testContext(t, `@{env("TILES_TEST_VALUE")}`)

	r := Render{ScopeFlags: ScopeFlags{Builtins: true}}
	require.NoError(t, r.Run(ctx))
	assert.Equal(t, "from env\n", out.String())

	ctx, _ = testContext(t, `@{env("TILES_TEST_VALUE")}`)

	r = Render{ScopeFlags: ScopeFlags{Builtins: false}}
	require.ErrorIs(t, r.Run(ctx), ErrRender)
}

func TestRender_Partials(t *testing.T) {
	paths := writeFiles(t, "<@{name}>\n")
	ctx, out := testContext(t, `[@{include("item")}]`)

	r := Render{ScopeFlags: ScopeFlags{
		Set:     []string{"name=x"},
		Partial: []string{"item=" + paths[0]},
	}}
	require.NoError(t, r.Run(ctx))
	assert.Equal(t, "[<x>]\n", out.String())
}

func TestRender_OutputFile(t *testing.T) {
	paths := writeFiles(t, "a\n", "  @{1}\n")
	output := filepath.Join(t.TempDir(), "out.txt")
	ctx, out := testContext(t, "")

	r := Render{Files: paths, Output: output}
	require.NoError(t, r.Run(ctx))

	b, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "a\n  1\n", string(b))
	assert.Empty(t, out.String())
}

func TestTrim_Run(t *testing.T) {
	ctx, out := testContext(t, "\n    a @{b}\n      c\n\n")

	require.NoError(t, (&Trim{}).Run(ctx))
	assert.Equal(t, "a @{b}\n  c\n", out.String())
}

func TestCheck_Run(t *testing.T) {
	ctx, out := testContext(t, "  a @{x + 1}\n  @{user.name}\n")

	require.NoError(t, (&Check{}).Run(ctx))
	assert.Equal(t, "1:3: x + 1\n2:1: user.name\n", out.String())

	ctx, out = testContext(t, "@{1 +} ok @{y}")

	err := (&Check{Quiet: true}).Run(ctx)
	require.ErrorIs(t, err, ErrCheck)
	assert.Contains(t, out.String(), "1:1: error:")
	assert.NotContains(t, out.String(), "y\n")

	ctx, _ = testContext(t, "@{unterminated")
	require.ErrorIs(t, (&Check{}).Run(ctx), ErrCheck)
}

func TestSuggest(t *testing.T) {
	names := []string{"name", "number", "user"}

	tests := []struct {
		err  error
		want []string
	}{
		{nil, nil},
		{os.ErrNotExist, nil},
		{NewError("unknown name usr (1:1)"), []string{"user"}},
		{NewError("unknown name zzz (1:1)"), []string{}},
	}

	for _, tt := range tests {
		got := Suggest(tt.err, names)
		if tt.want == nil {
			assert.Nil(t, got)

			continue
		}

		assert.Equal(t, tt.want, got)
	}
}
