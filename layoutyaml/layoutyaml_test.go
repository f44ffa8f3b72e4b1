package layoutyaml

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/npillmayer/ldmlkeys"
	"github.com/npillmayer/ldmlkeys/scalar"
	"github.com/npillmayer/ldmlkeys/vkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
keyboard: yaml-test
keys:
  - vkey: K_A
    to: q
  - vkey: K_A
    modifiers: shift
    to: Q
  - vkey: K_E
    modifiers: ctrl altR
    to: "€"
  - vkey: K_E
    modifiers: ctrl altL
    to: e-left
  - vkey: K_M
    modifiers: alt ctrl
    codepoints: [0x1F640, 0x21]
`

func TestLoadTable(t *testing.T) {
	table, err := LoadTable(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, "yaml-test", table.Name)
	assert.True(t, table.Frozen())
	assert.Equal(t, 5, table.Len())

	tests := []struct {
		key   vkey.Code
		query ldmlkeys.ModifierMask
		want  string
	}{
		{vkey.K_A, 0, "q"},
		{vkey.K_A, ldmlkeys.ShiftFlag, "Q"},
		{vkey.K_E, ldmlkeys.LCtrlFlag | ldmlkeys.RAltFlag, "€"},
		{vkey.K_E, ldmlkeys.RCtrlFlag | ldmlkeys.LAltFlag, "e-left"},
		{vkey.K_M, ldmlkeys.RCtrlFlag | ldmlkeys.RAltFlag, "🙀!"},
		{vkey.K_M, ldmlkeys.LCtrlFlag | ldmlkeys.LAltFlag, "🙀!"},
	}
	for _, tt := range tests {
		got, err := table.LookupString(tt.key, tt.query)
		require.NoError(t, err, "%s+[%s]", tt.key, tt.query)
		assert.Equal(t, tt.want, got, "%s+[%s]", tt.key, tt.query)
	}
	_, err = table.Lookup(vkey.K_E, ldmlkeys.AltFlag|ldmlkeys.CtrlFlag)
	assert.ErrorIs(t, err, ldmlkeys.ErrNotFound)
}

func TestReaderRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{name: "unknown key", doc: "keys: [{vkey: K_NOPE, to: x}]"},
		{name: "unknown modifier", doc: "keys: [{vkey: K_A, modifiers: meta, to: x}]"},
		{name: "no output", doc: "keys: [{vkey: K_A}]"},
		{name: "two outputs", doc: "keys: [{vkey: K_A, to: x, codepoints: [0x41]}]"},
		{name: "surrogate", doc: "keys: [{vkey: K_A, codepoints: [0xD800]}]", want: scalar.ErrInvalidCodepoint},
		{name: "unknown field", doc: "keys: [{vkey: K_A, output: x}]"},
	}
	for _, tt := range tests {
		_, err := LoadTable(strings.NewReader(tt.doc))
		require.Error(t, err, tt.name)
		if tt.want != nil {
			assert.ErrorIs(t, err, tt.want, tt.name)
		}
	}
}

func TestEmptyDocument(t *testing.T) {
	km, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	_, _, _, err = NewReader(km).Next()
	assert.Equal(t, io.EOF, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	entries := []ldmlkeys.Entry{
		{Key: vkey.K_A, Mask: 0, Output: scalar.FromString("a")},
		{Key: vkey.K_D, Mask: ldmlkeys.CtrlFlag | ldmlkeys.RAltFlag, Output: scalar.FromString("đ")},
		{Key: vkey.K_M, Mask: ldmlkeys.LAltFlag, Output: scalar.UTF16{0xD83D, 0xDE40}},
		{Key: vkey.K_N, Mask: ldmlkeys.CapsFlag | ldmlkeys.OtherFlag | ldmlkeys.ShiftFlag, Output: scalar.FromString("ñ")},
	}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "round-trip", entries))
	assert.Contains(t, buf.String(), "modifiers: ctrl altR")

	table, err := LoadTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, "round-trip", table.Name)
	for _, e := range entries {
		got, err := table.Lookup(e.Key, e.Mask)
		require.NoError(t, err)
		assert.Equal(t, e.Output, got)
	}
}

func TestEncodeRejectsLossyEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry ldmlkeys.Entry
	}{
		{"unnamed flag", ldmlkeys.Entry{Key: vkey.K_A, Mask: ldmlkeys.CapsFlag | ldmlkeys.NotCapsFlag, Output: scalar.FromString("a")}},
		{"num lock", ldmlkeys.Entry{Key: vkey.K_A, Mask: ldmlkeys.NumLockFlag, Output: scalar.FromString("a")}},
		{"unpaired surrogate", ldmlkeys.Entry{Key: vkey.K_B, Output: scalar.UTF16{0xD800}}},
		{"swapped pair", ldmlkeys.Entry{Key: vkey.K_B, Output: scalar.UTF16{0xDE40, 0xD83D}}},
		{"empty output", ldmlkeys.Entry{Key: vkey.K_C, Mask: ldmlkeys.ShiftFlag}},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		good := ldmlkeys.Entry{Key: vkey.K_Z, Output: scalar.FromString("z")}
		err := Encode(&buf, "lossy", []ldmlkeys.Entry{good, tt.entry})
		assert.ErrorIs(t, err, ErrNotEncodable, tt.name)
		assert.Zero(t, buf.Len(), tt.name)
	}
}
