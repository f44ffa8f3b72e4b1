package ldmlkeys

import (
	"fmt"
	"strings"
)

// ModifierMask is a set of modifier flags.
//
// The side-specific flags (LCtrlFlag, RCtrlFlag, LAltFlag, RAltFlag) and the
// generic flags (CtrlFlag, AltFlag) occupy distinct bits. A generic bit is not
// the OR of its side bits: a mask holding LCtrlFlag does not hold CtrlFlag.
// The relation between them is established by lookup only, see Candidates.
type ModifierMask uint32

// Modifier flags as used in compiled keyboard files.
const (
	LCtrlFlag      ModifierMask = 0x0001 // left ctrl
	RCtrlFlag      ModifierMask = 0x0002 // right ctrl
	LAltFlag       ModifierMask = 0x0004 // left alt
	RAltFlag       ModifierMask = 0x0008 // right alt
	ShiftFlag      ModifierMask = 0x0010 // either shift
	CtrlFlag       ModifierMask = 0x0020 // either ctrl
	AltFlag        ModifierMask = 0x0040 // either alt
	CapsFlag       ModifierMask = 0x0100 // caps lock on
	NotCapsFlag    ModifierMask = 0x0200 // caps lock off
	NumLockFlag    ModifierMask = 0x0400
	NotNumLockFlag ModifierMask = 0x0800
	ScrollFlag     ModifierMask = 0x1000
	NotScrollFlag  ModifierMask = 0x2000
	OtherFlag      ModifierMask = 0x10000 // 'other' layer, no hardware state
)

const (
	ctrlSides = LCtrlFlag | RCtrlFlag
	altSides  = LAltFlag | RAltFlag
	knownMask = LCtrlFlag | RCtrlFlag | LAltFlag | RAltFlag | ShiftFlag | CtrlFlag | AltFlag |
		CapsFlag | NotCapsFlag | NumLockFlag | NotNumLockFlag | ScrollFlag | NotScrollFlag | OtherFlag
)

// modifierNames is the LDML modifier attribute vocabulary, in canonical
// output order.
var modifierNames = []struct {
	name string
	flag ModifierMask
}{
	{"ctrlL", LCtrlFlag},
	{"ctrlR", RCtrlFlag},
	{"ctrl", CtrlFlag},
	{"altL", LAltFlag},
	{"altR", RAltFlag},
	{"alt", AltFlag},
	{"shift", ShiftFlag},
	{"caps", CapsFlag},
	{"other", OtherFlag},
}

// ParseModifier translates an LDML modifier attribute into a mask.
// attr is a space separated list of modifier names, e.g. "ctrlL altR shift".
// An empty attribute or "none" yields 0.
func ParseModifier(attr string) (ModifierMask, error) {
	var mask ModifierMask
	for _, name := range strings.Fields(attr) {
		if name == "none" {
			continue
		}
		flag, ok := modifierFlag(name)
		if !ok {
			return 0, fmt.Errorf("unknown modifier %q in %q", name, attr)
		}
		mask |= flag
	}
	return mask, nil
}

// MustParseModifier is like ParseModifier but panics on error.
func MustParseModifier(attr string) ModifierMask {
	mask, err := ParseModifier(attr)
	if err != nil {
		panic(err)
	}
	return mask
}

func modifierFlag(name string) (ModifierMask, bool) {
	for _, m := range modifierNames {
		if m.name == name {
			return m.flag, true
		}
	}
	return 0, false
}

// Valid reports whether m holds only known flags.
func (m ModifierMask) Valid() bool {
	return m&^knownMask == 0
}

// Has reports whether all flags of f are set in m.
func (m ModifierMask) Has(f ModifierMask) bool {
	return m&f == f
}

// String renders m in LDML modifier syntax. Flags without an LDML name are
// appended in hex.
func (m ModifierMask) String() string {
	if m == 0 {
		return "none"
	}
	var b strings.Builder
	rest := m
	for _, mn := range modifierNames {
		if m&mn.flag == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(mn.name)
		rest &^= mn.flag
	}
	if rest != 0 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "0x%04X", uint32(rest))
	}
	return b.String()
}
