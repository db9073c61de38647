// Package todo holds the list controller: the ordered items, the new-item
// form, and the write-through to a key-value store after every change.
//
// Front-ends (the TUI, the CLI, tests) drive it through its methods and
// render from Items and Counts; the controller never renders anything.
package todo

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Makepad-fr/todolist/internal/model"
	"github.com/Makepad-fr/todolist/internal/store"
)

// DefaultKey is the store key the list is persisted under.
const DefaultKey = "todoItems"

// Validation rejections. All of them leave the controller unchanged.
var (
	ErrEntryInProgress = errors.New("can't create a new item while editing another one; save or cancel the one in progress")
	ErrEmptyText       = errors.New("can't save an empty item")
	ErrDuplicate       = errors.New("this item already exists")
)

// FormState is the lifecycle of the new-item form.
// It goes absent → visible once, then alternates hidden/visible.
type FormState int

const (
	FormAbsent FormState = iota
	FormVisible
	FormHidden
)

func (f FormState) String() string {
	switch f {
	case FormVisible:
		return "visible"
	case FormHidden:
		return "hidden"
	}
	return "absent"
}

// Counts are the two derived counters shown next to the list.
type Counts struct {
	Total     int
	Unchecked int
}

// Controller owns the list. It is not safe for concurrent use; every call
// is expected from the single event loop of the front-end.
type Controller struct {
	kv  store.KV
	key string
	log *slog.Logger

	items   []model.Item
	counts  Counts
	form    FormState
	draft   string
	loading bool
}

type Option func(*Controller)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.key = key
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns an empty controller persisting into kv. Call Load to restore
// a previous session.
func New(kv store.KV, opts ...Option) *Controller {
	c := &Controller{
		kv:  kv,
		key: DefaultKey,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Key returns the store key in use.
func (c *Controller) Key() string { return c.key }

// Load replaces the list with the persisted snapshot. An absent key yields
// an empty list. Restoring never writes back to the store.
func (c *Controller) Load() error {
	c.items = nil
	c.recount()

	raw, ok, err := c.kv.Get(c.key)
	if err != nil {
		return fmt.Errorf("load %s: %w", c.key, err)
	}
	if !ok {
		c.log.Debug("no snapshot", "key", c.key)
		return nil
	}
	saved, err := model.DecodeSnapshot(raw)
	if err != nil {
		return fmt.Errorf("load %s: %w", c.key, err)
	}

	c.loading = true
	defer func() { c.loading = false }()
	for i, it := range saved {
		if err := c.add(it.Text, it.Done); err != nil {
			c.log.Warn("skipping snapshot record", "index", i, "name", it.Text, "err", err)
		}
	}
	c.log.Debug("snapshot loaded", "key", c.key, "items", len(c.items))
	return nil
}

// Items returns a copy of the list in display order.
func (c *Controller) Items() []model.Item {
	out := make([]model.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Item looks up an item by identity.
func (c *Controller) Item(id string) (model.Item, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	return model.Item{}, false
}

func (c *Controller) Counts() Counts { return c.counts }

func (c *Controller) Len() int { return len(c.items) }

// Form reports the state of the new-item form.
func (c *Controller) Form() FormState { return c.form }

// Draft is the current text of the new-item form.
func (c *Controller) Draft() string { return c.draft }

// SetDraft updates the form's text. It is ignored unless the form is visible.
func (c *Controller) SetDraft(text string) {
	if c.form == FormVisible {
		c.draft = text
	}
}

// ShowNewItem opens the new-item form. Only one entry may be in progress:
// while the form is visible it fails with ErrEntryInProgress and leaves the
// draft alone.
func (c *Controller) ShowNewItem() error {
	if c.form == FormVisible {
		return ErrEntryInProgress
	}
	c.form = FormVisible
	return nil
}

// SaveNewItem turns the draft into an item. On an empty or duplicate label
// the form stays open with its draft.
func (c *Controller) SaveNewItem() error {
	if c.form != FormVisible {
		return nil
	}
	text := strings.TrimSpace(c.draft)
	if text == "" {
		return ErrEmptyText
	}
	if c.indexOf(model.IDFor(text)) >= 0 {
		return ErrDuplicate
	}
	c.CancelNewItem()
	return c.add(text, false)
}

// CancelNewItem hides the form and clears its text. A form that was never
// shown stays absent.
func (c *Controller) CancelNewItem() {
	if c.form == FormAbsent {
		return
	}
	c.form = FormHidden
	c.draft = ""
}

// Add appends an unchecked item without going through the form.
func (c *Controller) Add(text string) error {
	return c.add(text, false)
}

// Toggle flips the done flag of id. It reports whether the item exists; a
// missing id is not an error.
func (c *Controller) Toggle(id string) (bool, error) {
	i := c.indexOf(id)
	if i < 0 {
		return false, nil
	}
	c.items[i].Done = !c.items[i].Done
	return true, c.commit()
}

// Delete removes id from the list. It reports whether the item existed; a
// missing id is not an error.
func (c *Controller) Delete(id string) (bool, error) {
	i := c.indexOf(id)
	if i < 0 {
		return false, nil
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true, c.commit()
}

// Clear removes every item.
func (c *Controller) Clear() error {
	c.items = nil
	return c.commit()
}

func (c *Controller) add(text string, done bool) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	if c.indexOf(model.IDFor(text)) >= 0 {
		return ErrDuplicate
	}
	c.items = append(c.items, model.Item{Text: text, Done: done})
	return c.commit()
}

func (c *Controller) indexOf(id string) int {
	for i, it := range c.items {
		if it.ID() == id {
			return i
		}
	}
	return -1
}

func (c *Controller) recount() {
	checked := 0
	for _, it := range c.items {
		if it.Done {
			checked++
		}
	}
	c.counts = Counts{Total: len(c.items), Unchecked: len(c.items) - checked}
}

// commit recomputes the counters and, outside of Load, writes the list
// through to the store. An empty list removes the key.
func (c *Controller) commit() error {
	c.recount()
	if c.loading {
		return nil
	}
	if len(c.items) == 0 {
		if err := c.kv.Remove(c.key); err != nil {
			return fmt.Errorf("persist %s: %w", c.key, err)
		}
		c.log.Debug("snapshot removed", "key", c.key)
		return nil
	}
	v, err := model.EncodeSnapshot(c.items)
	if err != nil {
		return fmt.Errorf("persist %s: %w", c.key, err)
	}
	if err := c.kv.Set(c.key, v); err != nil {
		return fmt.Errorf("persist %s: %w", c.key, err)
	}
	c.log.Debug("snapshot written", "key", c.key, "items", len(c.items))
	return nil
}

// IsValidation reports whether err is one of the user-facing rejections.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEntryInProgress) ||
		errors.Is(err, ErrEmptyText) ||
		errors.Is(err, ErrDuplicate)
}
