package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar shows checked out of total as a bar of width cells drawn
// with the current theme's glyphs, then the whole percentage. checked is
// clamped into [0, total].
func ProgressBar(checked, total, width int) string {
	t := Current()
	width = max(width, 5)
	checked = min(max(checked, 0), total)
	filled, pct := 0, 0
	if total > 0 {
		filled = checked * width / total
		pct = checked * 100 / total
	}
	var b strings.Builder
	b.WriteString(strings.Repeat(t.BarFull, filled))
	b.WriteString(strings.Repeat(t.BarEmpty, width-filled))
	fmt.Fprintf(&b, " %3d%%", pct)
	return b.String()
}

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	t := Current()
	// visible width, escape codes and wide runes accounted for
	maxw := 0
	for _, ln := range lines {
		if vw := lipgloss.Width(ln); vw > maxw {
			maxw = vw
		}
	}
	pad := func(s string) string {
		if vis := lipgloss.Width(s); vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Fprintln(w, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(w, t.V+" "+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(w, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}
