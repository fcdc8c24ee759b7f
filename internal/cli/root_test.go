package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
)

func runCLI(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("TADA_CONFIG_PATH", t.TempDir())

	cmd := NewRootCmd()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(append([]string{"--backend", "file", "--path", dir, "--theme", "mono"}, args...))

	err := cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func stored(t *testing.T, dir string) []model.Item {
	t.Helper()
	return store.New(jsonstore.New(dir, "todos"), nil).Load(context.Background())
}

func textsOf(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text
	}
	return out
}

func TestAdd_PersistsAndLists(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runCLI(t, dir, "add", "Buy", "milk")
	require.NoError(t, err)
	require.Contains(t, out, "Buy milk")
	require.Contains(t, out, "added #")

	_, err = os.Stat(filepath.Join(dir, "todos.json"))
	require.NoError(t, err)
	require.Equal(t, []string{"Buy milk"}, textsOf(stored(t, dir)))

	out, _, err = runCLI(t, dir, "ls")
	require.NoError(t, err)
	require.Contains(t, out, "Buy milk")
	require.Contains(t, out, "1 item")
}

func TestAdd_BlankTextFails(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runCLI(t, dir, "add", "   ")
	require.ErrorIs(t, err, errEmptyText)
	require.Empty(t, stored(t, dir))
}

func TestDone_TogglesByIndex(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runCLI(t, dir, "-q", "add", "a")
	require.NoError(t, err)

	out, _, err := runCLI(t, dir, "-q", "done", "1")
	require.NoError(t, err)
	require.Contains(t, out, "done")
	require.True(t, stored(t, dir)[0].Completed)

	out, _, err = runCLI(t, dir, "-q", "done", "1")
	require.NoError(t, err)
	require.Contains(t, out, "reopened")
	require.False(t, stored(t, dir)[0].Completed)
}

func TestEdit_ReplacesText(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runCLI(t, dir, "-q", "add", "a")
	require.NoError(t, err)

	_, _, err = runCLI(t, dir, "-q", "edit", "1", "  apples  ")
	require.NoError(t, err)
	require.Equal(t, []string{"apples"}, textsOf(stored(t, dir)))

	_, _, err = runCLI(t, dir, "-q", "edit", "1", " ")
	require.ErrorIs(t, err, errEmptyText)
	require.Equal(t, []string{"apples"}, textsOf(stored(t, dir)))
}

func TestRemove_ByID(t *testing.T) {
	dir := t.TempDir()
	for _, text := range []string{"a", "b"} {
		_, _, err := runCLI(t, dir, "-q", "add", text)
		require.NoError(t, err)
	}
	id := stored(t, dir)[0].ID

	_, _, err := runCLI(t, dir, "-q", "rm", "#"+strconv.FormatInt(id, 10))
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, textsOf(stored(t, dir)))
}

func TestMove_NamedItemsGoFirst(t *testing.T) {
	dir := t.TempDir()
	for _, text := range []string{"a", "b", "c"} {
		_, _, err := runCLI(t, dir, "-q", "add", text)
		require.NoError(t, err)
	}

	out, _, err := runCLI(t, dir, "mv", "3", "1")
	require.NoError(t, err)
	require.Contains(t, out, "moved")
	require.Equal(t, []string{"c", "a", "b"}, textsOf(stored(t, dir)))

	out, _, err = runCLI(t, dir, "mv", "1")
	require.NoError(t, err)
	require.Contains(t, out, "order unchanged")
}

func TestResolve_UnknownReference(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runCLI(t, dir, "-q", "add", "a")
	require.NoError(t, err)

	_, stderr, err := runCLI(t, dir, "done", "7")
	require.Error(t, err)
	require.Contains(t, stderr, "todo ls --ids")

	_, _, err = runCLI(t, dir, "rm", "first")
	require.Error(t, err)
}

func TestUnknownBackend(t *testing.T) {
	_, _, err := runCLI(t, t.TempDir(), "--backend", "floppy", "ls")
	require.Error(t, err)
	require.Contains(t, err.Error(), "floppy")
}

func TestMemoryBackend_StartsEmpty(t *testing.T) {
	out, _, err := runCLI(t, t.TempDir(), "--backend", "memory", "ls")
	require.NoError(t, err)
	require.Contains(t, out, "none")
}

func TestConfigFile_SelectsKey(t *testing.T) {
	dir := t.TempDir()
	cfgDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, ".tada.yaml"), []byte("key: work\n"), 0o644))

	cmd := NewRootCmd()
	t.Setenv("TADA_CONFIG_PATH", cfgDir)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--path", dir, "-q", "add", "ship it"})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(dir, "work.json"))
	require.NoError(t, err)
}

func TestVersion(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "dev")
}

func TestMoveToFront(t *testing.T) {
	require.Equal(t, []int64{3, 1, 2}, moveToFront([]int64{1, 2, 3}, []int64{3}))
	require.Equal(t, []int64{2, 1, 3}, moveToFront([]int64{1, 2, 3}, []int64{2, 2, 1}))
}

func TestExecute_ReportsErrors(t *testing.T) {
	t.Setenv("TADA_CONFIG_PATH", t.TempDir())
	require.Equal(t, 1, Execute([]string{"--backend", "floppy", "--path", t.TempDir(), "ls"}))
}

func TestList_Grouped(t *testing.T) {
	dir := t.TempDir()
	for _, text := range []string{"a", "b"} {
		_, _, err := runCLI(t, dir, "-q", "add", text)
		require.NoError(t, err)
	}
	_, _, err := runCLI(t, dir, "-q", "done", "1")
	require.NoError(t, err)

	out, _, err := runCLI(t, dir, "ls", "--group", "--ids")
	require.NoError(t, err)
	require.Contains(t, out, "Pending")
	require.Contains(t, out, "Done")
	require.Contains(t, out, "#")
}

func TestOpenError_NamesBackendOnce(t *testing.T) {
	notADir := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(notADir, []byte("x"), 0o644))

	_, _, err := runCLI(t, notADir, "--backend", "sqlite", "ls")
	require.Error(t, err)
	require.Equal(t, 1, strings.Count(err.Error(), "open sqlite backend"), err.Error())
}
