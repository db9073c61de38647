package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todolist/internal/model"
	"github.com/Makepad-fr/todolist/internal/store"
	"github.com/Makepad-fr/todolist/internal/todo"
)

type harness struct {
	t    *testing.T
	args []string
	dir  string
}

func newHarness(t *testing.T, driver string) *harness {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TODO_CONFIG_PATH", "")
	os.Unsetenv("TODO_STORE_DRIVER")
	os.Unsetenv("TODO_STORE_PATH")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	dir := t.TempDir()
	return &harness{t: t, dir: dir, args: []string{"--no-color", "--theme", "mono", "--store", driver, "--path", dir}}
}

func (h *harness) run(args ...string) (int, string, string) {
	h.t.Helper()
	return h.runRaw(append(append([]string{}, args...), h.args...)...)
}

// runRaw runs args as given, without the harness's store flags.
func (h *harness) runRaw(args ...string) (int, string, string) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	code := Run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func (h *harness) kv() store.KV {
	h.t.Helper()
	kv, err := store.Open(store.Config{Driver: h.args[4], Path: h.dir})
	require.NoError(h.t, err)
	h.t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func (h *harness) items() []model.Item {
	h.t.Helper()
	c := todo.New(h.kv())
	require.NoError(h.t, c.Load())
	return c.Items()
}

func TestAddListToggleRemove(t *testing.T) {
	for _, driver := range []string{store.DriverJSON, store.DriverDiskv, store.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			h := newHarness(t, driver)

			code, out, _ := h.run("add", "Buy", "milk")
			require.Equal(t, ExitOK, code)
			assert.Contains(t, out, "added")
			code, _, _ = h.run("add", "Walk the dog")
			require.Equal(t, ExitOK, code)

			code, out, _ = h.run("done", "2")
			require.Equal(t, ExitOK, code)
			assert.Contains(t, out, "checked")
			assert.Equal(t, []model.Item{{Text: "Buy milk"}, {Text: "Walk the dog", Done: true}}, h.items())

			code, out, _ = h.run("ls", "--ids")
			require.Equal(t, ExitOK, code)
			assert.Contains(t, out, "Total 2  Unchecked 1")
			assert.Contains(t, out, "walk-the-dog")

			code, _, _ = h.run("rm", "buy milk")
			require.Equal(t, ExitOK, code)
			assert.Equal(t, []model.Item{{Text: "Walk the dog", Done: true}}, h.items())

			code, _, _ = h.run("rm", "1")
			require.Equal(t, ExitOK, code)
			assert.Empty(t, h.items())
		})
	}
}

func TestValidationExitCodes(t *testing.T) {
	h := newHarness(t, store.DriverJSON)
	code, _, _ := h.run("add", "Buy milk")
	require.Equal(t, ExitOK, code)

	code, _, errOut := h.run("add", "buy   MILK")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, todo.ErrDuplicate.Error())

	code, _, errOut = h.run("add", "   ")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, todo.ErrEmptyText.Error())

	code, _, errOut = h.run("done", "7")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "index out of range: have 1, got 7")
	assert.Contains(t, errOut, "Hint:")

	code, _, _ = h.run("rm", "nothing here")
	assert.Equal(t, ExitUsage, code)

	code, _, _ = h.run("add")
	assert.Equal(t, ExitUsage, code)

	code, _, _ = h.run("frobnicate")
	assert.Equal(t, ExitUsage, code)

	assert.Len(t, h.items(), 1)
}

func TestFlagErrorsAreUsage(t *testing.T) {
	h := newHarness(t, store.DriverJSON)

	code, _, errOut := h.runRaw("--no-color", "--store", "json", "--path", h.dir, "ls", "--store")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "flag needs an argument")
	assert.Contains(t, errOut, "todo ls --help")

	code, _, errOut = h.runRaw("--no-color", "--path", h.dir, "add", "x", "--key")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "flag needs an argument")

	code, _, _ = h.run("ls", "--bogus")
	assert.Equal(t, ExitUsage, code)

	code, _, _ = h.run("clear", "-z")
	assert.Equal(t, ExitUsage, code)

	code, _, errOut = h.run("ls", "--group=maybe")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "invalid argument")

	assert.Empty(t, h.items())
}

func TestClearRecoversCorruptList(t *testing.T) {
	h := newHarness(t, store.DriverJSON)
	require.NoError(t, h.kv().Set(todo.DefaultKey, "{not json"))

	code, _, errOut := h.run("ls")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, errOut, "corrupt")

	code, out, errOut := h.run("clear", "--yes")
	require.Equal(t, ExitOK, code, errOut)
	assert.Contains(t, out, "cleared 0 item(s)")

	code, _, _ = h.run("ls")
	assert.Equal(t, ExitOK, code)
	code, _, _ = h.run("add", "Fresh start")
	require.Equal(t, ExitOK, code)
	assert.Equal(t, []model.Item{{Text: "Fresh start"}}, h.items())
}

func TestClearNeedsConfirmation(t *testing.T) {
	h := newHarness(t, store.DriverJSON)
	h.run("add", "A")
	h.run("add", "B")

	code, _, _ := h.run("clear")
	assert.Equal(t, ExitUsage, code)
	assert.Len(t, h.items(), 2)

	code, out, _ := h.run("clear", "--yes")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "cleared 2 item(s)")
	assert.Empty(t, h.items())

	b, err := os.ReadFile(filepath.Join(h.dir, "todos.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(b), todo.DefaultKey, "empty list removes the key")
}

func TestUnknownDriver(t *testing.T) {
	h := newHarness(t, "redis")
	code, _, errOut := h.run("ls")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "unknown driver")
}

func TestRootRunsUI(t *testing.T) {
	h := newHarness(t, store.DriverJSON)
	h.run("add", "A")

	var seen []model.Item
	prev := runTUI
	runTUI = func(c *todo.Controller, _ *slog.Logger) error {
		seen = c.Items()
		return nil
	}
	t.Cleanup(func() { runTUI = prev })

	code, _, _ := h.run()
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, []model.Item{{Text: "A"}}, seen)

	seen = nil
	code, _, _ = h.run("ui")
	assert.Equal(t, ExitOK, code)
	assert.Len(t, seen, 1)
}

func TestConfigFileSelectsStore(t *testing.T) {
	h := newHarness(t, store.DriverJSON)
	cfgDir := t.TempDir()
	dataDir := t.TempDir()
	cfg := filepath.Join(cfgDir, "todo.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("store:\n  driver: json\n  path: "+dataDir+"\nkey: groceries\n"), 0o644))

	code, _, errOut := h.runRaw("add", "Eggs", "--config", cfg, "--no-color")
	require.Equal(t, ExitOK, code, errOut)

	b, err := os.ReadFile(filepath.Join(dataDir, "todos.json"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), "groceries"))
	assert.NoFileExists(t, filepath.Join(h.dir, "todos.json"), "harness store is untouched")
}
