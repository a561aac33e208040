package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/lope/internal/config"
	"github.com/kyaoi/lope/internal/query"
)

type fakeCompleter struct {
	calls  int
	system string
	query  string
	reply  string
	err    error
}

func (f *fakeCompleter) Complete(_ context.Context, system, q string) (string, error) {
	f.calls++
	f.system = system
	f.query = q
	return f.reply, f.err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "alpha")
	writeFile(t, filepath.Join(root, "dir", "b.txt"), "beta")
	return root
}

func TestLoadInitialStateWalksRoot(t *testing.T) {
	root := fixture(t)
	session, err := LoadInitialState(Options{Root: root, Config: config.Default()})
	require.NoError(t, err)

	store := session.State.Store
	require.Equal(t, 3, store.Len())
	first, _ := store.At(0)
	assert.Equal(t, "dir", first.Path)
	assert.Equal(t, filepath.Base(root), session.State.DisplayRoot)
	assert.Equal(t, query.SystemPrompt, session.System)
	assert.Equal(t, "gpt-4o-2024-11-20", session.Model)
	assert.Contains(t, session.State.WatchDirs, filepath.Join(root, "dir"))
}

func TestLoadInitialStateRejectsFile(t *testing.T) {
	root := fixture(t)
	_, err := LoadInitialState(Options{Root: filepath.Join(root, "a.txt")})
	assert.Error(t, err)
}

func TestLoadInitialStatePromptFileOverrides(t *testing.T) {
	root := fixture(t)
	promptPath := filepath.Join(t.TempDir(), "prompt.md")
	writeFile(t, promptPath, "---\nmodel: other-model\nsystem: be brief\n---\nfix the bug\n")

	session, err := LoadInitialState(Options{Root: root, Config: config.Default(), PromptFile: promptPath})
	require.NoError(t, err)
	assert.Equal(t, "other-model", session.Model)
	assert.Equal(t, "other-model", session.State.Model)
	assert.Equal(t, "be brief", session.System)
	assert.Equal(t, "fix the bug", session.State.Prompt)
}

func TestLoadInitialStateExplicitFiles(t *testing.T) {
	root := fixture(t)
	session, err := LoadInitialState(Options{
		Root:   root,
		Config: config.Default(),
		Files:  []string{"dir/b.txt", "missing.txt"},
	})
	require.NoError(t, err)

	store := session.State.Store
	require.Equal(t, 2, store.Len())
	dir, _ := store.At(0)
	file, _ := store.At(1)
	assert.Equal(t, "dir", dir.Path)
	assert.Equal(t, "dir/b.txt", file.Path)
}

func TestReadFileList(t *testing.T) {
	files, err := ReadFileList(strings.NewReader("# picked\n./a.txt\n\ndir/b.txt\na.txt\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "dir/b.txt"}, files)

	_, err = ReadFileList(strings.NewReader("../etc/passwd\n"))
	assert.Error(t, err)
}

func sessionFor(t *testing.T, root string) Session {
	t.Helper()
	session, err := LoadInitialState(Options{Root: root, Config: config.Default()})
	require.NoError(t, err)
	return session
}

func TestDispatchDryRunPrintsQuery(t *testing.T) {
	root := fixture(t)
	var out bytes.Buffer
	client := &fakeCompleter{}

	err := Dispatch(context.Background(), Options{DryRun: true, Out: &out}, sessionFor(t, root), client, Submission{
		Prompt: "why",
		Tree:   "a.txt\n",
		Paths:  []string{"a.txt"},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "why\n\n### File Tree:\na.txt\n")
	assert.Contains(t, out.String(), "// a.txt\nalpha\n")
	assert.Zero(t, client.calls)
}

func TestDispatchMissingFileSendsNothing(t *testing.T) {
	root := fixture(t)
	var out bytes.Buffer
	client := &fakeCompleter{reply: "unused"}

	err := Dispatch(context.Background(), Options{Out: &out}, sessionFor(t, root), client, Submission{
		Prompt: "p",
		Paths:  []string{"x.txt"},
	})
	require.Error(t, err)
	var readErr *query.FileReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, "x.txt", readErr.Path)
	assert.Zero(t, client.calls)
	assert.Empty(t, out.String())
}

func TestDispatchSendsAndPrintsRawReply(t *testing.T) {
	root := fixture(t)
	var out bytes.Buffer
	client := &fakeCompleter{reply: "use a mutex"}
	session := sessionFor(t, root)

	err := Dispatch(context.Background(), Options{Raw: true, Out: &out}, session, client, Submission{
		Prompt: "p",
		Paths:  []string{"dir/b.txt"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, query.SystemPrompt, client.system)
	assert.Contains(t, client.query, "// dir/b.txt\nbeta\n")
	assert.Equal(t, "use a mutex\n", out.String())
}

func TestDispatchEmptyReply(t *testing.T) {
	root := fixture(t)
	var out bytes.Buffer
	err := Dispatch(context.Background(), Options{Raw: true, Out: &out}, sessionFor(t, root), &fakeCompleter{}, Submission{})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "no reply")
}

func TestDispatchCompletionError(t *testing.T) {
	root := fixture(t)
	client := &fakeCompleter{err: errors.New("boom")}
	err := Dispatch(context.Background(), Options{Out: &bytes.Buffer{}}, sessionFor(t, root), client, Submission{})
	assert.ErrorContains(t, err, "boom")
}

func TestDispatchCopy(t *testing.T) {
	root := fixture(t)
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { copyToClipboard = orig })

	var out bytes.Buffer
	client := &fakeCompleter{}
	err := Dispatch(context.Background(), Options{Copy: true, Out: &out}, sessionFor(t, root), client, Submission{Prompt: "p"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(copied, "p\n\n### File Tree:\n"))
	assert.Contains(t, out.String(), "clipboard")
	assert.Zero(t, client.calls)
}

func TestRunNeedsAPIKeyBeforeLoop(t *testing.T) {
	root := fixture(t)
	cfg := config.Default()
	cfg.Completion.APIKey = ""
	cfg.Completion.TokenPath = filepath.Join(t.TempDir(), "missing")

	err := Run(context.Background(), Options{Root: root, Config: cfg})
	assert.ErrorContains(t, err, "api key")
}

func TestDispatchShowsRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "upstream down\n")
	}))
	defer srv.Close()

	root := fixture(t)
	var out bytes.Buffer
	cfg := config.Default()
	cfg.Completion.Endpoint = srv.URL
	opts := Options{Config: cfg, Raw: true, Out: &out}

	client := newClient(opts.withDefaults(), "sk", "m")
	err := Dispatch(context.Background(), opts, sessionFor(t, root), client, Submission{Prompt: "p"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "completion service returned 500 Internal Server Error\nupstream down\n")
	assert.Contains(t, out.String(), "no reply")
}
