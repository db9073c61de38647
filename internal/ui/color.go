package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	forceColor   bool
	disableColor bool
)

// SetColorForcing overrides terminal detection. disable wins over force.
func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
	color.NoColor = !colorEnabled(os.Stdout)
}

func colorEnabled(w io.Writer) bool {
	if disableColor {
		return false
	}
	if forceColor {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// C paints s with c when colour is on.
func C(c *color.Color, s string) string {
	if c == nil || color.NoColor {
		return s
	}
	return c.Sprint(s)
}

func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, C(Current().Success, Current().SymDone+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, C(Current().Error, Current().SymFail+" "+msg))
}

// Hint prints a muted follow-up line, usually after Fail.
func Hint(w io.Writer, msg string) {
	fmt.Fprintln(w, C(Current().Muted, "Hint: "+msg))
}
