package ldmlkeys

import (
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/ldmlkeys/scalar"
	"github.com/npillmayer/ldmlkeys/vkey"
)

// ErrNotFound is returned by lookups when no entry matches a key and
// modifier state, not even after collapsing side-specific modifiers.
var ErrNotFound = errors.New("no virtual key entry found")

// Entry is a format-agnostic table entry.
type Entry struct {
	Key    vkey.Code
	Mask   ModifierMask
	Output scalar.UTF16
}

// EntryReader yields table entries one-by-one.
// It should return io.EOF when the stream is exhausted.
type EntryReader interface {
	Next() (key vkey.Code, mask ModifierMask, output scalar.UTF16, err error)
}

type entryKey struct {
	key  vkey.Code
	mask ModifierMask
}

// Table maps (virtual key, modifier mask) pairs to output strings.
//
// A Table is filled by Add or Load while a keyboard is loaded and queried by
// Lookup for every keystroke. Masks are stored exactly as given; the relation
// between generic and side-specific modifiers is applied at lookup time.
// The zero value is an empty, usable table.
type Table struct {
	entries map[entryKey]scalar.UTF16
	index   *frozenIndex // non-nil while frozen
	Name    string       // Identifies the keyboard
}

// TableOption configures a new table.
type TableOption func(*Table)

// WithName sets the identifier of a table, usually the keyboard's id.
func WithName(name string) TableOption {
	return func(t *Table) {
		t.Name = name
	}
}

// NewTable creates an empty table.
func NewTable(opts ...TableOption) *Table {
	t := &Table{
		entries: make(map[entryKey]scalar.UTF16),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Add stores output for key pressed with mask. An existing entry for the
// same (key, mask) pair is overwritten. output is copied.
//
// Adding to a frozen table drops its index; call Freeze again after the
// last Add.
func (t *Table) Add(key vkey.Code, mask ModifierMask, output scalar.UTF16) {
	if t.entries == nil {
		t.entries = make(map[entryKey]scalar.UTF16)
	}
	if t.index != nil {
		tracer().Infof("vkeys %q: add to frozen table, dropping index", t.Name)
		t.index = nil
	}
	ek := entryKey{key: key, mask: mask}
	if old, exists := t.entries[ek]; exists && !old.Equal(output) {
		tracer().Debugf("vkeys %q: %s+[%s] redefined", t.Name, key, mask)
	}
	out := make(scalar.UTF16, len(output))
	copy(out, output)
	t.entries[ek] = out
}

// AddString is like Add, with output given as a Go string.
func (t *Table) AddString(key vkey.Code, mask ModifierMask, output string) {
	t.Add(key, mask, scalar.FromString(output))
}

// Load adds all entries from a streaming source.
//
// Parsing of concrete formats is outside this package. Use adapters like
// package vkeytext or package layoutyaml to feed this API.
func (t *Table) Load(reader EntryReader) (err error) {
	n := 0
	for {
		var key vkey.Code
		var mask ModifierMask
		var output scalar.UTF16
		key, mask, output, err = reader.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("vkeys %q: entry #%d: %w", t.Name, n+1, err)
		}
		t.Add(key, mask, output)
		n++
	}
	tracer().Infof("vkeys %q: loaded %d entries", t.Name, n)
	return nil
}

// LoadEntries adds all entries from an in-memory list.
func (t *Table) LoadEntries(entries []Entry) {
	for _, e := range entries {
		t.Add(e.Key, e.Mask, e.Output)
	}
}

// Lookup returns the output for key pressed with the live modifier state
// query. See Candidates for the matching precedence. If no entry matches,
// ErrNotFound is returned.
//
// The result is a copy and may be modified by the caller.
func (t *Table) Lookup(key vkey.Code, query ModifierMask) (scalar.UTF16, error) {
	out, _, err := t.Resolve(key, query)
	return out, err
}

// LookupString is like Lookup, returning a Go string.
func (t *Table) LookupString(key vkey.Code, query ModifierMask) (string, error) {
	out, _, err := t.Resolve(key, query)
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// Resolve is like Lookup but additionally reports the stored mask of the
// matching entry.
func (t *Table) Resolve(key vkey.Code, query ModifierMask) (scalar.UTF16, ModifierMask, error) {
	if t == nil {
		return nil, 0, ErrNotFound
	}
	p := candidates(query)
	for i := 0; i < p.n; i++ {
		mask := p.masks[i]
		if out, ok := t.find(key, mask); ok {
			if p.steps[i] != 0 {
				tracer().Debugf("vkeys %q: %s+[%s] matched as [%s] (%s)", t.Name, key, query,
					mask, matchSteps[p.steps[i]].name)
			}
			return out.Clone(), mask, nil
		}
	}
	return nil, 0, ErrNotFound
}

func (t *Table) find(key vkey.Code, mask ModifierMask) (scalar.UTF16, bool) {
	if t.index != nil {
		return t.index.find(key, mask)
	}
	out, ok := t.entries[entryKey{key: key, mask: mask}]
	return out, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Frozen reports whether the table currently has a read-only index.
func (t *Table) Frozen() bool {
	return t != nil && t.index != nil
}

// Freeze builds a compact read-only index for the lookup phase. Lookups give
// the same results before and after freezing.
func (t *Table) Freeze() {
	if t == nil || t.index != nil {
		return
	}
	t.index = buildIndex(t.entries)
	stats := t.Stats()
	tracer().Infof("vkeys %q: frozen, entries=%d keys=%d overflow=%d", t.Name,
		stats.Entries, stats.Keys, stats.Overflow)
}

// TableStats reports size metrics of a table.
type TableStats struct {
	Entries  int  // number of (key, mask) entries
	Keys     int  // number of distinct virtual keys
	Frozen   bool // index present
	Overflow int  // keys outside the vkey enumeration, 0 if not frozen
}

// Stats returns size metrics of the table.
func (t *Table) Stats() TableStats {
	if t == nil {
		return TableStats{}
	}
	stats := TableStats{
		Entries: len(t.entries),
		Frozen:  t.index != nil,
	}
	if t.index != nil {
		stats.Keys = len(t.index.rows)
		stats.Overflow = len(t.index.overflow)
		return stats
	}
	keys := make(map[vkey.Code]struct{})
	for ek := range t.entries {
		keys[ek.key] = struct{}{}
	}
	stats.Keys = len(keys)
	return stats
}
