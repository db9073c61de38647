package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFor(t *testing.T) {
	cases := map[string]string{
		"Buy milk":         "buy-milk",
		"  Buy milk  ":     "buy-milk",
		"Buy \t  MILK":     "buy-milk",
		"single":           "single",
		"Call Mom, today!": "call-mom,-today!",
		"Buy\u00a0milk":    "buy-milk",
		"Buy\u2003milk":    "buy-milk",
		"Buy\u3000milk":    "buy-milk",
		"\u00a0Buy milk\n": "buy-milk",
	}
	for in, want := range cases {
		assert.Equal(t, want, IDFor(in), "IDFor(%q)", in)
	}
	assert.Equal(t, "buy-milk", Item{Text: "Buy Milk"}.ID())
}

func TestSnapshotRoundTrip(t *testing.T) {
	items := []Item{{Text: "A"}, {Text: "B", Done: true}}
	s, err := EncodeSnapshot(items)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"A","checked":false},{"name":"B","checked":true}]`, s)

	got, err := DecodeSnapshot(s)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestDecodeSnapshotCorrupt(t *testing.T) {
	_, err := DecodeSnapshot("{not json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptSnapshot))
}

func TestEncodeSnapshotEmpty(t *testing.T) {
	s, err := EncodeSnapshot(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", s)
}
