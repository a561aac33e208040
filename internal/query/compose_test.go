package query

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeWithoutFiles(t *testing.T) {
	got, err := Compose(fstest.MapFS{}, "explain this", "a.txt\n", nil)
	require.NoError(t, err)

	assert.Equal(t, "explain this\n\n### File Tree:\na.txt\n\n\n### File Contents:\n", got)
	assert.NotContains(t, got, "```")
}

func TestComposeEmbedsFilesInOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"a.txt":     {Data: []byte("alpha")},
		"dir/b.txt": {Data: []byte("beta")},
	}
	tree := "* a.txt\ndir\n  * dir/b.txt\n"

	got, err := Compose(fsys, "fix", tree, []string{"dir/b.txt", "a.txt"})
	require.NoError(t, err)

	want := "fix\n\n" +
		"### File Tree:\n" + tree + "\n\n" +
		"### File Contents:\n" +
		"```\n// dir/b.txt\nbeta\n```\n" +
		"```\n// a.txt\nalpha\n```\n"
	assert.Equal(t, want, got)
}

func TestComposeFailsOnMissingFile(t *testing.T) {
	fsys := fstest.MapFS{"a.txt": {Data: []byte("alpha")}}

	got, err := Compose(fsys, "p", "", []string{"a.txt", "x.txt"})
	require.Error(t, err)
	assert.Empty(t, got)

	var readErr *FileReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, "x.txt", readErr.Path)
	assert.ErrorIs(t, err, ErrFileRead)
	assert.Contains(t, err.Error(), "x.txt")
}

func TestSystemPromptDescribesLayout(t *testing.T) {
	assert.Contains(t, SystemPrompt, "### File Tree:")
	assert.Contains(t, SystemPrompt, "### File Contents:")
}
