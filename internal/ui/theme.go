package ui

import (
	"strings"

	"github.com/fatih/color"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending *color.Color
	BoxUnchecked, BoxChecked                      string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
	BarFull, BarEmpty                             string
	SymDone, SymUnchecked, SymFail                string
}

// Themes lists the names SetTheme understands.
var Themes = []string{"classic", "neon", "mono"}

var current = classic()

func classic() Theme {
	return Theme{
		Name:  "classic",
		Title: color.New(color.Bold), Muted: color.New(color.FgHiBlack), Accent: color.New(color.FgBlue),
		Success: color.New(color.FgGreen), Error: color.New(color.FgRed), Pending: color.New(color.FgYellow),
		BoxUnchecked: "☐", BoxChecked: "☑",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		BarFull: "█", BarEmpty: "░",
		SymDone: "✔", SymUnchecked: "•", SymFail: "✖",
	}
}

// SetTheme switches the current theme; unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name:  "neon",
			Title: color.New(color.FgHiMagenta), Muted: color.New(color.FgHiBlack), Accent: color.New(color.FgHiCyan),
			Success: color.New(color.FgGreen), Error: color.New(color.FgRed), Pending: color.New(color.FgHiYellow),
			BoxUnchecked: "◻", BoxChecked: "◼",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			BarFull: "▰", BarEmpty: "▱",
			SymDone: "✔", SymUnchecked: "•", SymFail: "✖",
		}
	case "mono":
		current = Theme{
			Name:         "mono",
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			BarFull: "#", BarEmpty: ".",
			SymDone: "x", SymUnchecked: "-", SymFail: "!",
		}
	default:
		current = classic()
	}
}

// Expose what renderers need
func Current() Theme { return current }
