/*
Package vkey holds the virtual key enumeration shared by keyboard loaders,
the virtual key table and key-event dispatchers.

Codes are platform independent positions on a hardware keyboard, numbered
after the US English layout (K_A is the key labelled 'A' there, whatever a
given layout produces on it). Names follow the K_xxx convention used in
compiled keyboard files. The enumeration is fixed; it is never extended at
runtime.
*/
package vkey

import (
	"fmt"
	"sync"

	"github.com/derekparker/trie"
)

// Code identifies a key position.
type Code uint16

// Editing and control keys.
const (
	K_BKSP    Code = 0x08
	K_TAB     Code = 0x09
	K_ENTER   Code = 0x0D
	K_SHIFT   Code = 0x10
	K_CONTROL Code = 0x11
	K_ALT     Code = 0x12
	K_PAUSE   Code = 0x13
	K_CAPS    Code = 0x14
	K_ESC     Code = 0x1B
	K_SPACE   Code = 0x20
	K_PGUP    Code = 0x21
	K_PGDN    Code = 0x22
	K_END     Code = 0x23
	K_HOME    Code = 0x24
	K_LEFT    Code = 0x25
	K_UP      Code = 0x26
	K_RIGHT   Code = 0x27
	K_DOWN    Code = 0x28
	K_SEL     Code = 0x29
	K_PRINT   Code = 0x2A
	K_EXEC    Code = 0x2B
	K_PRTSCN  Code = 0x2C
	K_INS     Code = 0x2D
	K_DEL     Code = 0x2E
	K_HELP    Code = 0x2F
)

// Digit row.
const (
	K_0 Code = 0x30 + iota
	K_1
	K_2
	K_3
	K_4
	K_5
	K_6
	K_7
	K_8
	K_9
)

// Letters.
const (
	K_A Code = 0x41 + iota
	K_B
	K_C
	K_D
	K_E
	K_F
	K_G
	K_H
	K_I
	K_J
	K_K
	K_L
	K_M
	K_N
	K_O
	K_P
	K_Q
	K_R
	K_S
	K_T
	K_U
	K_V
	K_W
	K_X
	K_Y
	K_Z
)

// Numeric keypad.
const (
	K_NP0 Code = 0x60 + iota
	K_NP1
	K_NP2
	K_NP3
	K_NP4
	K_NP5
	K_NP6
	K_NP7
	K_NP8
	K_NP9
	K_NPSTAR
	K_NPPLUS
	K_SEPARATOR
	K_NPMINUS
	K_NPDOT
	K_NPSLASH
)

// Function keys.
const (
	K_F1 Code = 0x70 + iota
	K_F2
	K_F3
	K_F4
	K_F5
	K_F6
	K_F7
	K_F8
	K_F9
	K_F10
	K_F11
	K_F12
)

// Lock and side-specific modifier keys.
const (
	K_NUMLOCK  Code = 0x90
	K_SCROLL   Code = 0x91
	K_LSHIFT   Code = 0xA0
	K_RSHIFT   Code = 0xA1
	K_LCONTROL Code = 0xA2
	K_RCONTROL Code = 0xA3
	K_LALT     Code = 0xA4
	K_RALT     Code = 0xA5
)

// Punctuation, named after the US English key caps.
const (
	K_COLON   Code = 0xBA
	K_EQUAL   Code = 0xBB
	K_COMMA   Code = 0xBC
	K_HYPHEN  Code = 0xBD
	K_PERIOD  Code = 0xBE
	K_SLASH   Code = 0xBF
	K_BKQUOTE Code = 0xC0
	K_LBRKT   Code = 0xDB
	K_BKSLASH Code = 0xDC
	K_RBRKT   Code = 0xDD
	K_QUOTE   Code = 0xDE
	K_oE2     Code = 0xE2 // 102nd key on ISO keyboards
)

// MaxCode is the largest code in the enumeration.
const MaxCode = K_oE2

var names = map[Code]string{
	K_BKSP: "K_BKSP", K_TAB: "K_TAB", K_ENTER: "K_ENTER", K_SHIFT: "K_SHIFT",
	K_CONTROL: "K_CONTROL", K_ALT: "K_ALT", K_PAUSE: "K_PAUSE", K_CAPS: "K_CAPS",
	K_ESC: "K_ESC", K_SPACE: "K_SPACE", K_PGUP: "K_PGUP", K_PGDN: "K_PGDN",
	K_END: "K_END", K_HOME: "K_HOME", K_LEFT: "K_LEFT", K_UP: "K_UP",
	K_RIGHT: "K_RIGHT", K_DOWN: "K_DOWN", K_SEL: "K_SEL", K_PRINT: "K_PRINT",
	K_EXEC: "K_EXEC", K_PRTSCN: "K_PRTSCN", K_INS: "K_INS", K_DEL: "K_DEL",
	K_HELP: "K_HELP",
	K_NPSTAR: "K_NPSTAR", K_NPPLUS: "K_NPPLUS", K_SEPARATOR: "K_SEPARATOR",
	K_NPMINUS: "K_NPMINUS", K_NPDOT: "K_NPDOT", K_NPSLASH: "K_NPSLASH",
	K_NUMLOCK: "K_NUMLOCK", K_SCROLL: "K_SCROLL",
	K_LSHIFT: "K_LSHIFT", K_RSHIFT: "K_RSHIFT", K_LCONTROL: "K_LCONTROL",
	K_RCONTROL: "K_RCONTROL", K_LALT: "K_LALT", K_RALT: "K_RALT",
	K_COLON: "K_COLON", K_EQUAL: "K_EQUAL", K_COMMA: "K_COMMA", K_HYPHEN: "K_HYPHEN",
	K_PERIOD: "K_PERIOD", K_SLASH: "K_SLASH", K_BKQUOTE: "K_BKQUOTE",
	K_LBRKT: "K_LBRKT", K_BKSLASH: "K_BKSLASH", K_RBRKT: "K_RBRKT",
	K_QUOTE: "K_QUOTE", K_oE2: "K_oE2",
}

func init() {
	for c := K_0; c <= K_9; c++ {
		names[c] = fmt.Sprintf("K_%c", '0'+rune(c-K_0))
	}
	for c := K_A; c <= K_Z; c++ {
		names[c] = fmt.Sprintf("K_%c", 'A'+rune(c-K_A))
	}
	for c := K_NP0; c <= K_NP9; c++ {
		names[c] = fmt.Sprintf("K_NP%d", c-K_NP0)
	}
	for c := K_F1; c <= K_F12; c++ {
		names[c] = fmt.Sprintf("K_F%d", c-K_F1+1)
	}
}

// Name returns the K_xxx name of c, or a hex literal for codes outside the
// enumeration.
func (c Code) Name() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("0x%02X", uint16(c))
}

func (c Code) String() string {
	return c.Name()
}

// Known reports whether c is part of the enumeration.
func (c Code) Known() bool {
	_, ok := names[c]
	return ok
}

// --- Name index ------------------------------------------------------------

var (
	indexOnce sync.Once
	nameIndex *trie.Trie
)

func index() *trie.Trie {
	indexOnce.Do(func() {
		nameIndex = trie.New()
		for c, n := range names {
			nameIndex.Add(n, c)
		}
	})
	return nameIndex
}

// ByName returns the code for a K_xxx name. Names are case sensitive.
func ByName(name string) (Code, bool) {
	node, ok := index().Find(name)
	if !ok {
		return 0, false
	}
	c, ok := node.Meta().(Code)
	return c, ok
}

// MustByName is like ByName, but panics for unknown names.
// It is intended for tests and static tables.
func MustByName(name string) Code {
	c, ok := ByName(name)
	if !ok {
		panic(fmt.Sprintf("unknown virtual key name %q", name))
	}
	return c
}

// NamesWithPrefix lists all key names starting with prefix, e.g. "K_NP"
// for the numeric keypad. Order is unspecified.
func NamesWithPrefix(prefix string) []string {
	return index().PrefixSearch(prefix)
}
