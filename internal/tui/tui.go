package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/todolist/internal/todo"
	"github.com/Makepad-fr/todolist/internal/ui"
)

type focus int

const (
	focusList focus = iota
	focusForm
)

// Model is the Bubble Tea front-end over a todo.Controller. Every key that
// changes the list goes through the controller, which persists it.
type Model struct {
	c    *todo.Controller
	log  *slog.Logger
	keys keyMap
	help help.Model

	ti     textinput.Model
	focus  focus
	cursor int

	// pager windows the rows to the terminal height. Its page follows the cursor.
	pager paginator.Model

	// warning, when set, is shown as a modal and swallows the next key.
	warning string

	width, height int
}

// New returns a model over c. c should already be loaded.
func New(c *todo.Controller, log *slog.Logger) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New item..."
	ti.CharLimit = 0 // unlimited, as in Controller.Add

	return Model{
		c:      c,
		log:    log,
		keys:   defaultKeys(),
		help:   help.New(),
		ti:     ti,
		pager:  paginator.New(),
		width:  80,
		height: 24,
	}
}

// Run starts the interactive program and blocks until the user quits.
func Run(c *todo.Controller, log *slog.Logger) error {
	_, err := tea.NewProgram(New(c, log), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.warning != "" {
			m.warning = ""
			return m, nil
		}
		if m.focus == focusForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}

	if m.focus == focusForm {
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case keyIs(msg, k.Quit):
		return m, tea.Quit

	case keyIs(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case keyIs(msg, k.Down):
		if m.cursor < m.c.Len()-1 {
			m.cursor++
		}

	case keyIs(msg, k.PgUp):
		m.cursor = max(0, m.cursor-m.rowsPerPage())

	case keyIs(msg, k.PgDown):
		m.cursor = max(0, min(m.c.Len()-1, m.cursor+m.rowsPerPage()))

	case keyIs(msg, k.New):
		if err := m.c.ShowNewItem(); err != nil {
			m.warn(err)
			return m, nil
		}
		m.ti.SetValue(m.c.Draft())
		m.focus = focusForm
		return m, m.ti.Focus()

	case keyIs(msg, k.Focus):
		if m.c.Form() == todo.FormVisible {
			m.focus = focusForm
			return m, m.ti.Focus()
		}

	case keyIs(msg, k.Toggle):
		if it, ok := m.selected(); ok {
			if _, err := m.c.Toggle(it); err != nil {
				m.warn(err)
			}
		}

	case keyIs(msg, k.Delete):
		if it, ok := m.selected(); ok {
			if _, err := m.c.Delete(it); err != nil {
				m.warn(err)
			}
			m.clampCursor()
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case keyIs(msg, k.Save):
		m.c.SetDraft(m.ti.Value())
		if err := m.c.SaveNewItem(); err != nil {
			m.warn(err)
			if todo.IsValidation(err) {
				return m, nil
			}
		}
		m.closeForm()
		m.cursor = m.c.Len() - 1
		m.clampCursor()
		return m, nil

	case keyIs(msg, k.Cancel):
		m.c.CancelNewItem()
		m.closeForm()
		return m, nil

	case keyIs(msg, k.Focus):
		m.c.SetDraft(m.ti.Value())
		m.ti.Blur()
		m.focus = focusList
		return m, nil
	}

	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	m.c.SetDraft(m.ti.Value())
	return m, cmd
}

func keyIs(msg tea.KeyMsg, b key.Binding) bool { return key.Matches(msg, b) }

func (m *Model) closeForm() {
	m.ti.Reset()
	m.ti.Blur()
	m.focus = focusList
}

func (m *Model) warn(err error) {
	if !todo.IsValidation(err) {
		m.log.Error("tui", "err", err)
	}
	m.warning = err.Error()
}

func (m Model) selected() (string, bool) {
	items := m.c.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return "", false
	}
	return items[m.cursor].ID(), true
}

func (m *Model) clampCursor() {
	if n := m.c.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	if m.warning != "" {
		box := modalStyle.Width(max(20, min(60, m.width-4))).Render(
			errorStyle.Render("Warning") + "\n\n" + m.warning + "\n\n" + helpStyle.Render("press any key"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	b.WriteString(m.rows())

	if m.c.Form() == todo.FormVisible {
		title := "New item"
		if m.focus != focusForm {
			title += helpStyle.Render("  (tab to resume)")
		}
		b.WriteString("\n")
		b.WriteString(formStyle.Render(title + "\n" + m.ti.View()))
	}

	b.WriteString("\n")
	if m.focus == focusForm {
		b.WriteString(m.help.View(formHelp{m.keys}))
	} else {
		b.WriteString(m.help.View(listHelp{m.keys}))
	}
	return panelStyle.Render(b.String())
}

func (m Model) header() string {
	c := m.c.Counts()
	done := c.Total - c.Unchecked
	return fmt.Sprintf("%s   %s %d  %s %d\n%s",
		titleStyle.Render("Todos"),
		accentStyle.Render("Total"), c.Total,
		pendingStyle.Render("Unchecked"), c.Unchecked,
		mutedStyle.Render(ui.ProgressBar(done, c.Total, 28)),
	)
}

// Lines of the panel that are not item rows: two borders, the two header
// lines, two spacers, the page indicator and the help line.
const (
	listChrome = 8
	formChrome = 4
)

// rowsPerPage is how many item rows fit in the terminal next to the header,
// the help line and, when open, the form.
func (m Model) rowsPerPage() int {
	n := m.height - listChrome
	if m.c.Form() == todo.FormVisible {
		n -= formChrome
	}
	return max(1, n)
}

func (m Model) rows() string {
	items := m.c.Items()
	if len(items) == 0 {
		return mutedStyle.Render("no items, press a to add one") + "\n"
	}

	p := m.pager
	p.PerPage = m.rowsPerPage()
	p.SetTotalPages(len(items))
	p.Page = min(max(m.cursor, 0)/p.PerPage, p.TotalPages-1)
	start, end := p.GetSliceBounds(len(items))

	var b strings.Builder
	for i := start; i < end; i++ {
		it := items[i]
		box := mutedStyle.Render(boxUnchecked)
		text := it.Text
		if it.Done {
			box = successStyle.Render(boxChecked)
			text = doneStyle.Render(text)
		}
		prefix := "  "
		if i == m.cursor && m.focus == focusList {
			prefix = selectedStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, box, text)
	}
	if p.TotalPages > 1 {
		b.WriteString(mutedStyle.Render("page "+p.View()) + "\n")
	}
	return b.String()
}
