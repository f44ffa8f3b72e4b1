package vkeytext

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/ldmlkeys"
	"github.com/npillmayer/ldmlkeys/scalar"
	"github.com/npillmayer/ldmlkeys/vkey"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ldmlkeys.layout'
func tracer() tracing.Trace {
	return tracing.Select("ldmlkeys.layout")
}

// Reader streams virtual key entries from a line-oriented text source.
type Reader struct {
	scanner    *bufio.Scanner
	identifier string
	line       int
	output     scalar.UTF16
}

// LoadTable parses a key map and returns a frozen table.
//
// Every non-empty line holds one entry
//
//	<key> <modifiers> <output>
//
// for example
//
//	@keyboard  de-t-k0-test
//	# key  modifiers    output
//	K_A    none         a
//	K_A    shift        A
//	K_Q    ctrl+altR    @
//	K_E    altR         U+20AC
//	K_C    ctrlL+alt    U+1F640 U+0021
//	K_SPACE shift       " "
//
// Key names are those of package vkey. Modifiers use the LDML modifier
// names joined by '+', or "none". The output is either a Go-quoted string,
// a list of U+hhhh scalar values, or the remaining text of the line.
// Lines starting with '#' are comments; a line "@keyboard <id>" names the
// keyboard.
func LoadTable(name string, reader io.Reader) (*ldmlkeys.Table, error) {
	r := NewReader(reader)
	table := ldmlkeys.NewTable(ldmlkeys.WithName(name))
	if err := table.Load(r); err != nil {
		return nil, err
	}
	if r.Identifier() != "" {
		table.Name = r.Identifier()
	}
	table.Freeze()
	return table, nil
}

// NewReader creates a reader for a text key map.
func NewReader(reader io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(reader),
		output:  make(scalar.UTF16, 0, 8),
	}
}

// Identifier returns the keyboard id given by an "@keyboard" line, if any
// has been read so far.
func (r *Reader) Identifier() string {
	return r.identifier
}

// Next returns the next entry.
// It returns io.EOF when exhausted.
// The returned output is reused by subsequent calls.
func (r *Reader) Next() (vkey.Code, ldmlkeys.ModifierMask, scalar.UTF16, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "@keyboard"); ok {
			r.identifier = strings.TrimSpace(rest)
			continue
		}
		key, mask, err := r.decodeLine(line)
		if err != nil {
			tracer().Errorf("line %d: %v", r.line, err)
			return 0, 0, nil, fmt.Errorf("line %d: %w", r.line, err)
		}
		return key, mask, r.output, nil
	}
	if err := r.scanner.Err(); err != nil {
		return 0, 0, nil, err
	}
	return 0, 0, nil, io.EOF
}

func (r *Reader) decodeLine(line string) (vkey.Code, ldmlkeys.ModifierMask, error) {
	keyName, rest := cutField(line)
	modifiers, rest := cutField(rest)
	if modifiers == "" {
		return 0, 0, fmt.Errorf("missing modifiers")
	}
	key, ok := vkey.ByName(keyName)
	if !ok {
		return 0, 0, fmt.Errorf("unknown virtual key %q", keyName)
	}
	mask, err := ldmlkeys.ParseModifier(strings.ReplaceAll(modifiers, "+", " "))
	if err != nil {
		return 0, 0, err
	}
	if err := r.decodeOutput(rest); err != nil {
		return 0, 0, err
	}
	return key, mask, nil
}

func (r *Reader) decodeOutput(text string) error {
	r.output = r.output[:0]
	switch {
	case text == "":
		return fmt.Errorf("missing output")
	case strings.HasPrefix(text, `"`):
		s, err := strconv.Unquote(text)
		if err != nil {
			return fmt.Errorf("output %s: %w", text, err)
		}
		r.output = append(r.output, scalar.FromString(s)...)
	case strings.HasPrefix(text, "U+"):
		for _, f := range strings.Fields(text) {
			hex, ok := strings.CutPrefix(f, "U+")
			if !ok {
				return fmt.Errorf("output %q: mixed U+ notation and text", text)
			}
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return fmt.Errorf("output %q: %w", f, err)
			}
			if r.output, err = scalar.Append(r.output, uint32(v)); err != nil {
				return err
			}
		}
	default:
		r.output = append(r.output, scalar.FromString(text)...)
	}
	return nil
}

// cutField splits off the first whitespace-delimited field of s.
func cutField(s string) (field, rest string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}
