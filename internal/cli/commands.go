package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todolist/internal/logging"
	"github.com/Makepad-fr/todolist/internal/model"
	"github.com/Makepad-fr/todolist/internal/store"
	"github.com/Makepad-fr/todolist/internal/todo"
	"github.com/Makepad-fr/todolist/internal/tui"
	"github.com/Makepad-fr/todolist/internal/ui"
)

// runTUI is swapped out in tests.
var runTUI = tui.Run

// New builds the todo command tree writing to stdout and stderr.
func New(stdout, stderr io.Writer) *cobra.Command {
	e := &env{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "todo",
		Short: "A small to-do list for the terminal.",
		Long: `todo keeps one list of short items. Add, check and delete them from
the interactive view or with one-shot subcommands; the list is saved
after every change.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runUI()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(flagError)

	pf := root.PersistentFlags()
	pf.StringVar(&e.configFile, "config", "", "config file (default: .todo.yaml in $TODO_CONFIG_PATH, . or $HOME)")
	pf.String("store", "", fmt.Sprintf("storage driver, one of %s (default diskv)", strings.Join(store.Drivers(), ", ")))
	pf.String("path", "", "storage directory (default ~/.todo.db)")
	pf.String("key", "", "key the list is saved under (default todoItems)")
	pf.String("log-level", "", "debug, info, warn or error (default warn)")
	pf.String("theme", "", fmt.Sprintf("output theme, one of %s", strings.Join(ui.Themes, ", ")))
	pf.BoolVar(&e.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(
		uiCmd(e),
		addCmd(e),
		lsCmd(e),
		doneCmd(e),
		rmCmd(e),
		clearCmd(e),
	)
	return root
}

func uiCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive list",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return e.runUI()
		},
	}
}

func (e *env) runUI() error {
	// The TUI owns the terminal, so logs go to a file or nowhere.
	l, closeLog, err := logging.OpenFile(e.cfg.LogLevel, e.cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	e.log = l
	return e.withController(func(c *todo.Controller) error {
		return runTUI(c, l)
	})
}

func addCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new item (text can be multiple words)",
		Example: `  todo add "Buy milk"
  todo add Call the plumber`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return e.withController(func(c *todo.Controller) error {
				if err := c.Add(strings.Join(args, " ")); err != nil {
					return err
				}
				ui.OK(e.stdout, "added")
				return nil
			})
		},
	}
}

func lsCmd(e *env) *cobra.Command {
	var opt ui.ListOptions
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Print the list",
		Args:    cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return e.withController(func(c *todo.Controller) error {
				ui.Panel(e.stdout, ui.ListLines(c.Items(), opt))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&opt.Group, "group", false, "group output by pending/done")
	cmd.Flags().BoolVar(&opt.IDs, "ids", false, "show each item's identity")
	return cmd
}

func doneCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "done <index|item>",
		Aliases: []string{"toggle"},
		Short:   "Toggle done for an item by 1-based index or by label",
		Example: `  todo done 2
  todo done "buy milk"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return e.withController(func(c *todo.Controller) error {
				id, err := resolve(c, strings.Join(args, " "))
				if err != nil {
					return err
				}
				if _, err := c.Toggle(id); err != nil {
					return err
				}
				it, _ := c.Item(id)
				if it.Done {
					ui.OK(e.stdout, "checked")
				} else {
					ui.OK(e.stdout, "unchecked")
				}
				return nil
			})
		},
	}
}

func rmCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index|item>",
		Aliases: []string{"delete"},
		Short:   "Remove an item by 1-based index or by label",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return e.withController(func(c *todo.Controller) error {
				id, err := resolve(c, strings.Join(args, " "))
				if err != nil {
					return err
				}
				if _, err := c.Delete(id); err != nil {
					return err
				}
				ui.OK(e.stdout, "removed")
				return nil
			})
		},
	}
}

func clearCmd(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every item",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if !yes {
				return usagef("refusing to clear without --yes")
			}
			return e.clear()
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm")
	return cmd
}

// clear empties the list even when the stored snapshot no longer decodes,
// which is the way out of a corrupt store.
func (e *env) clear() error {
	kv, err := e.openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	c := e.controller(kv)
	if err := c.Load(); err != nil {
		if !errors.Is(err, model.ErrCorruptSnapshot) {
			return err
		}
		e.log.Warn("discarding unreadable list", "key", c.Key(), "err", err)
	}
	n := c.Len()
	if err := c.Clear(); err != nil {
		return err
	}
	ui.OK(e.stdout, fmt.Sprintf("cleared %d item(s)", n))
	return nil
}
