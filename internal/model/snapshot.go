package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorruptSnapshot is returned when a persisted value cannot be parsed.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// Record is the persisted shape of one item.
type Record struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// EncodeSnapshot serializes items, in order, as a JSON array of records.
func EncodeSnapshot(items []Item) (string, error) {
	recs := make([]Record, 0, len(items))
	for _, it := range items {
		recs = append(recs, Record{Name: it.Text, Checked: it.Done})
	}
	b, err := json.Marshal(recs)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}

// DecodeSnapshot parses a value written by EncodeSnapshot.
func DecodeSnapshot(s string) ([]Item, error) {
	var recs []Record
	if err := json.Unmarshal([]byte(s), &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	items := make([]Item, 0, len(recs))
	for _, r := range recs {
		items = append(items, Item{Text: r.Name, Done: r.Checked})
	}
	return items, nil
}
