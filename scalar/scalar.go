/*
Package scalar converts Unicode scalar values into UTF-16 code units.

Compiled keyboard files store output characters as plain 32-bit scalar values.
The keyboard processor works on UTF-16 strings, so every literal has to be
re-encoded, and values coming from a file have to be checked on the way:
surrogate code points and values beyond U+10FFFF are rejected with
ErrInvalidCodepoint instead of being silently replaced.
*/
package scalar

import (
	"errors"
	"fmt"
	"unicode/utf16"
)

// MaxScalar is the largest Unicode scalar value.
const MaxScalar = 0x10FFFF

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
	highBase     = 0xD800
	lowBase      = 0xDC00
	planeOne     = 0x10000
)

// ErrInvalidCodepoint is returned for surrogate code points and for values
// exceeding MaxScalar.
var ErrInvalidCodepoint = errors.New("invalid codepoint")

// CodepointError reports the offending value. It unwraps to ErrInvalidCodepoint.
type CodepointError struct {
	Value uint32
}

func (e *CodepointError) Error() string {
	return fmt.Sprintf("invalid codepoint: 0x%04X", e.Value)
}

func (e *CodepointError) Unwrap() error {
	return ErrInvalidCodepoint
}

// UTF16 is a string of UTF-16 code units.
type UTF16 []uint16

// FromString encodes a Go string. Invalid UTF-8 bytes become U+FFFD.
func FromString(s string) UTF16 {
	return UTF16(utf16.Encode([]rune(s)))
}

// String decodes u into a Go string. Unpaired surrogates become U+FFFD.
func (u UTF16) String() string {
	return string(utf16.Decode(u))
}

// Equal reports whether u and other hold the same code units.
func (u UTF16) Equal(other UTF16) bool {
	if len(u) != len(other) {
		return false
	}
	for i := range u {
		if u[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of u which does not share storage with u.
func (u UTF16) Clone() UTF16 {
	if u == nil {
		return nil
	}
	c := make(UTF16, len(u))
	copy(c, u)
	return c
}

// Valid reports whether v is a Unicode scalar value, i.e. lies in
// [0, 0xD7FF] or [0xE000, 0x10FFFF].
func Valid(v uint32) bool {
	return v < surrogateMin || (v > surrogateMax && v <= MaxScalar)
}

// Encode returns the UTF-16 encoding of scalar value v: one code unit for
// the BMP, a surrogate pair for the supplementary planes.
//
//	Encode(0x0127)  => [0x0127]
//	Encode(0x1F640) => [0xD83D, 0xDE40]
func Encode(v uint32) (UTF16, error) {
	return Append(make(UTF16, 0, 2), v)
}

// Append appends the UTF-16 encoding of v to dst. On error dst is returned
// unchanged.
func Append(dst UTF16, v uint32) (UTF16, error) {
	if !Valid(v) {
		return dst, &CodepointError{Value: v}
	}
	if v < planeOne {
		return append(dst, uint16(v)), nil
	}
	v -= planeOne
	return append(dst, uint16(highBase+(v>>10)), uint16(lowBase+(v&0x3FF))), nil
}

// Len returns the number of code units Encode produces for v, or 0 if v is
// not a scalar value.
func Len(v uint32) int {
	switch {
	case !Valid(v):
		return 0
	case v < planeOne:
		return 1
	}
	return 2
}
