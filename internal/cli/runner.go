package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todolist/internal/config"
	"github.com/Makepad-fr/todolist/internal/logging"
	"github.com/Makepad-fr/todolist/internal/model"
	"github.com/Makepad-fr/todolist/internal/store"
	"github.com/Makepad-fr/todolist/internal/todo"
	"github.com/Makepad-fr/todolist/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError marks bad arguments; it maps to ExitUsage.
type usageError struct {
	msg  string
	hint string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error {
	return &usageError{msg: fmt.Sprintf(format, a...)}
}

// Run executes the command tree for args and returns an exit code
// (0 ok, 1 error, 2 usage).
func Run(args []string, stdout, stderr io.Writer) int {
	root := New(stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return ExitOK
	}
	ui.Fail(stderr, err.Error())
	var ue *usageError
	switch {
	case errors.As(err, &ue):
		if ue.hint != "" {
			ui.Hint(stderr, ue.hint)
		}
		return ExitUsage
	case todo.IsValidation(err):
		return ExitUsage
	case isCobraUsage(err):
		fmt.Fprintln(stderr)
		_ = root.Usage()
		return ExitUsage
	}
	return ExitError
}

// flagError turns every pflag parse failure into a usage error.
func flagError(cmd *cobra.Command, err error) error {
	return &usageError{msg: err.Error(), hint: fmt.Sprintf("run `%s --help` for usage", cmd.CommandPath())}
}

// cobra reports unknown commands and arity problems as plain errors.
func isCobraUsage(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.Contains(msg, "arg(s)")
}

// env is what every subcommand runs with, resolved once per invocation.
type env struct {
	stdout, stderr io.Writer
	configFile     string
	noColor        bool

	cfg *config.Config
	log *slog.Logger
}

func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(e.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	l, err := logging.New(cfg.LogLevel, e.stderr)
	if err != nil {
		return usagef("%v", err)
	}
	e.cfg, e.log = cfg, l
	ui.SetTheme(cfg.Theme)
	ui.SetColorForcing(false, e.noColor)
	if cfg.File != "" {
		l.Debug("config loaded", "file", cfg.File)
	}
	return nil
}

func (e *env) openStore() (store.KV, error) {
	kv, err := store.Open(e.cfg.Store)
	if err != nil {
		if errors.Is(err, store.ErrUnknownDriver) {
			return nil, &usageError{msg: err.Error()}
		}
		return nil, err
	}
	e.log.Debug("store opened", "driver", e.cfg.Store.Driver, "path", e.cfg.Store.Path)
	return kv, nil
}

func (e *env) controller(kv store.KV) *todo.Controller {
	return todo.New(kv, todo.WithKey(e.cfg.Key), todo.WithLogger(e.log))
}

// open returns a loaded controller; the caller must close the store.
func (e *env) open() (*todo.Controller, store.KV, error) {
	kv, err := e.openStore()
	if err != nil {
		return nil, nil, err
	}
	c := e.controller(kv)
	if err := c.Load(); err != nil {
		_ = kv.Close()
		return nil, nil, err
	}
	return c, kv, nil
}

// withController opens the list, runs fn and closes the store.
func (e *env) withController(fn func(c *todo.Controller) error) error {
	c, kv, err := e.open()
	if err != nil {
		return err
	}
	defer kv.Close()
	return fn(c)
}

// resolve maps a 1-based index or an item label/identity to an identity.
func resolve(c *todo.Controller, arg string) (string, error) {
	items := c.Items()
	if n, err := strconv.Atoi(arg); err == nil {
		if n >= 1 && n <= len(items) {
			return items[n-1].ID(), nil
		}
		if _, ok := c.Item(model.IDFor(arg)); ok {
			return model.IDFor(arg), nil
		}
		return "", &usageError{
			msg:  fmt.Sprintf("index out of range: have %d, got %d", len(items), n),
			hint: "run `todo ls` to see valid indexes",
		}
	}
	id := model.IDFor(arg)
	if _, ok := c.Item(id); !ok {
		return "", &usageError{
			msg:  fmt.Sprintf("no item %q", arg),
			hint: "run `todo ls --ids` to see identities",
		}
	}
	return id, nil
}

// Main is the process entry point.
func Main() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
