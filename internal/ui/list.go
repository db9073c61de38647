package ui

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/Makepad-fr/todolist/internal/model"
)

// ListOptions tune the printed list.
type ListOptions struct {
	Group bool // split into pending and done sections
	IDs   bool // add an identity column
}

const maxTitle = 80

// ListLines renders the header, progress bar and rows for a panel.
// Indexes are 1-based positions in items, whatever the grouping.
func ListLines(items []model.Item, opt ListOptions) []string {
	t := Current()
	total := len(items)
	unchecked := 0
	for _, it := range items {
		if !it.Done {
			unchecked++
		}
	}
	done := total - unchecked

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		C(t.Title, "Todos"),
		C(t.Accent, "Total"), total,
		C(t.Pending, "Unchecked"), unchecked,
		C(t.Success, t.SymDone), done,
	)
	lines := []string{header, C(t.Muted, ProgressBar(done, total, 28)), ""}

	rows := make([]row, len(items))
	for i, it := range items {
		rows[i] = row{index: i + 1, item: it}
	}
	if opt.Group {
		var pend, fin []row
		for _, r := range rows {
			if r.item.Done {
				fin = append(fin, r)
			} else {
				pend = append(pend, r)
			}
		}
		lines = append(lines, C(t.Accent, "Pending"))
		lines = append(lines, rowLines(pend, opt, "(none)")...)
		lines = append(lines, "", C(t.Accent, "Done"))
		lines = append(lines, rowLines(fin, opt, "(none)")...)
	} else {
		lines = append(lines, rowLines(rows, opt, "no items")...)
	}
	lines = append(lines, "", C(t.Muted, "Tip: add with `todo add \"Buy milk\"`"))
	return lines
}

type row struct {
	index int
	item  model.Item
}

func rowLines(rows []row, opt ListOptions, empty string) []string {
	t := Current()
	if len(rows) == 0 {
		return []string{C(t.Muted, empty)}
	}
	tbl := uitable.New()
	tbl.Separator = " "
	for _, r := range rows {
		box, c := t.BoxUnchecked, t.Muted
		if r.item.Done {
			box, c = t.BoxChecked, t.Success
		}
		title := r.item.Text
		if len([]rune(title)) > maxTitle {
			title = string([]rune(title)[:maxTitle-3]) + "..."
		}
		idx := fmt.Sprintf("%2d.", r.index)
		if opt.IDs {
			tbl.AddRow(idx, C(c, box), title, C(t.Muted, r.item.ID()))
		} else {
			tbl.AddRow(idx, C(c, box), title)
		}
	}
	return strings.Split(tbl.String(), "\n")
}
