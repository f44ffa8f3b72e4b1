/*
Package layoutyaml reads virtual key tables from YAML key maps.

A key map lists the outputs of a hardware layout, one entry per key and
modifier combination:

	keyboard: fr-t-k0-test
	keys:
	  - vkey: K_A
	    to: q
	  - vkey: K_A
	    modifiers: shift
	    to: Q
	  - vkey: K_E
	    modifiers: ctrl altR
	    to: "€"
	  - vkey: K_M
	    modifiers: altR
	    codepoints: [0x1F640]

Modifiers use the LDML modifier attribute syntax (space separated names).
An entry gives its output either as text ("to") or as a list of scalar
values ("codepoints"), never both.
*/
package layoutyaml

import (
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/ldmlkeys"
	"github.com/npillmayer/ldmlkeys/scalar"
	"github.com/npillmayer/ldmlkeys/vkey"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer writes to trace with key 'ldmlkeys.layout'
func tracer() tracing.Trace {
	return tracing.Select("ldmlkeys.layout")
}

// KeyMap is the document structure of a YAML key map.
type KeyMap struct {
	Keyboard string     `yaml:"keyboard"`
	Keys     []KeyEntry `yaml:"keys"`
}

// KeyEntry is one entry of a key map.
type KeyEntry struct {
	VKey       string   `yaml:"vkey"`
	Modifiers  string   `yaml:"modifiers,omitempty"`
	To         string   `yaml:"to,omitempty"`
	Codepoints []uint32 `yaml:"codepoints,omitempty"`
}

// Decode parses a YAML key map.
func Decode(reader io.Reader) (*KeyMap, error) {
	km := &KeyMap{}
	dec := yaml.NewDecoder(reader)
	dec.KnownFields(true)
	if err := dec.Decode(km); err != nil {
		if errors.Is(err, io.EOF) {
			return km, nil // empty document
		}
		return nil, fmt.Errorf("key map: %w", err)
	}
	return km, nil
}

// Reader streams the entries of a decoded key map.
type Reader struct {
	km    *KeyMap
	index int
}

// NewReader creates a reader over the entries of km.
func NewReader(km *KeyMap) *Reader {
	return &Reader{km: km}
}

// Next returns the next entry.
// It returns io.EOF when exhausted.
func (r *Reader) Next() (vkey.Code, ldmlkeys.ModifierMask, scalar.UTF16, error) {
	if r.km == nil || r.index >= len(r.km.Keys) {
		return 0, 0, nil, io.EOF
	}
	e := r.km.Keys[r.index]
	r.index++
	key, mask, out, err := e.decode()
	if err != nil {
		tracer().Errorf("key map %q, entry %d: %v", r.km.Keyboard, r.index, err)
		return 0, 0, nil, fmt.Errorf("entry %d (%s): %w", r.index, e.VKey, err)
	}
	return key, mask, out, nil
}

func (e KeyEntry) decode() (vkey.Code, ldmlkeys.ModifierMask, scalar.UTF16, error) {
	key, ok := vkey.ByName(e.VKey)
	if !ok {
		return 0, 0, nil, fmt.Errorf("unknown virtual key %q", e.VKey)
	}
	mask, err := ldmlkeys.ParseModifier(e.Modifiers)
	if err != nil {
		return 0, 0, nil, err
	}
	switch {
	case e.To != "" && len(e.Codepoints) > 0:
		return 0, 0, nil, errors.New("both 'to' and 'codepoints' given")
	case len(e.Codepoints) > 0:
		out := make(scalar.UTF16, 0, len(e.Codepoints))
		for _, cp := range e.Codepoints {
			if out, err = scalar.Append(out, cp); err != nil {
				return 0, 0, nil, err
			}
		}
		return key, mask, out, nil
	case e.To != "":
		return key, mask, scalar.FromString(e.To), nil
	}
	return 0, 0, nil, errors.New("missing output")
}

// LoadTable decodes a YAML key map and returns a frozen table.
func LoadTable(reader io.Reader) (*ldmlkeys.Table, error) {
	km, err := Decode(reader)
	if err != nil {
		return nil, err
	}
	table := ldmlkeys.NewTable(ldmlkeys.WithName(km.Keyboard))
	if err := table.Load(NewReader(km)); err != nil {
		return nil, err
	}
	table.Freeze()
	return table, nil
}

// ErrNotEncodable is returned by Encode for entries a key map cannot carry
// without loss.
var ErrNotEncodable = errors.New("entry not representable in a key map")

// Encode writes the entries of a table as a YAML key map. Entries are
// written in the order given.
//
// Entries which would not read back unchanged fail with ErrNotEncodable and
// nothing is written: masks holding flags without an LDML modifier name,
// empty outputs, and outputs which are not well-formed UTF-16.
func Encode(w io.Writer, keyboard string, entries []ldmlkeys.Entry) error {
	km := KeyMap{Keyboard: keyboard, Keys: make([]KeyEntry, 0, len(entries))}
	for i, e := range entries {
		ke, err := encodeEntry(e)
		if err != nil {
			return fmt.Errorf("entry %d (%s): %w", i+1, e.Key, err)
		}
		km.Keys = append(km.Keys, ke)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&km); err != nil {
		return err
	}
	return enc.Close()
}

func encodeEntry(e ldmlkeys.Entry) (KeyEntry, error) {
	ke := KeyEntry{VKey: e.Key.Name(), To: e.Output.String()}
	if e.Mask != 0 {
		ke.Modifiers = e.Mask.String()
		if m, err := ldmlkeys.ParseModifier(ke.Modifiers); err != nil || m != e.Mask {
			return ke, fmt.Errorf("modifiers [%s]: %w", ke.Modifiers, ErrNotEncodable)
		}
	}
	if len(e.Output) == 0 {
		return ke, fmt.Errorf("empty output: %w", ErrNotEncodable)
	}
	if !scalar.FromString(ke.To).Equal(e.Output) {
		return ke, fmt.Errorf("output %X is not well-formed UTF-16: %w", []uint16(e.Output), ErrNotEncodable)
	}
	return ke, nil
}
