package model

import "strings"

// Item is the domain model for a todo entry.
// Its identity is a function of the label, see ID.
type Item struct {
	Text string
	Done bool
}

// IDFor derives the identity of a label: whitespace runs (any Unicode
// space, NBSP and ideographic space included) become a single hyphen and
// the result is lower-cased.
func IDFor(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), "-"))
}

// ID returns the identity derived from the item's text.
func (i Item) ID() string { return IDFor(i.Text) }
