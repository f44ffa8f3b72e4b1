/*
Package kmxplus decodes the fixed-size output records of compiled LDML
keyboard files.

Two sections of a compiled keyboard carry output text as records of two
little-endian 32-bit words, a value and a flag word:

	keys  section: { to      uint32; flags uint32 }  flag bit 0 = "extend"
	elem  section: { element uint32; flags uint32 }  flag bit 0 = "unicode set"

With flag bit 0 clear the value is a literal Unicode scalar value. With the
bit set the value refers to another table of the file (a string or set
table). Resolving these references is the business of the file loader, which
may hand a Resolver to the decoding functions.

Both kinds share a single decoding path; they differ only in the name of the
flag bit. Locating sections within a file is not done here: callers pass the
bytes of a section together with its record count.
*/
package kmxplus

import (
	"errors"
	"fmt"

	"github.com/npillmayer/ldmlkeys/scalar"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ldmlkeys.kmxplus'
func tracer() tracing.Trace {
	return tracing.Select("ldmlkeys.kmxplus")
}

// Kind is the kind of a record.
type Kind uint8

// Record kinds.
const (
	KindKey  Kind = iota + 1 // keys section: key output
	KindElem                 // elem section: element output
)

// Reference flags. For both kinds it is bit 0 of the flag word.
const (
	KeysKeyExtend      uint32 = 0x00000001 // key output is a string table reference
	ElemFlagUnicodeSet uint32 = 0x00000001 // element is a set reference
)

var kinds = map[Kind]struct {
	name    string
	refFlag uint32
}{
	KindKey:  {"keys", KeysKeyExtend},
	KindElem: {"elem", ElemFlagUnicodeSet},
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// refFlag returns the flag bit marking a reference record of kind k.
func (k Kind) refFlag() uint32 {
	return kinds[k].refFlag
}

// ErrUnresolvedReference is returned when a reference record is decoded
// without a Resolver.
var ErrUnresolvedReference = errors.New("unresolved reference record")

// Resolver resolves reference records, i.e. records whose value is an index
// into a string or set table rather than a literal codepoint.
type Resolver interface {
	Resolve(kind Kind, ref uint32) (scalar.UTF16, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(kind Kind, ref uint32) (scalar.UTF16, error)

// Resolve calls f(kind, ref).
func (f ResolverFunc) Resolve(kind Kind, ref uint32) (scalar.UTF16, error) {
	return f(kind, ref)
}

// Record is a decoded record of either kind.
type Record struct {
	Kind  Kind
	Value uint32 // scalar value, or reference if the kind's flag is set
	Flags uint32
}

// IsReference reports whether the record's value is a table reference.
func (r Record) IsReference() bool {
	return r.Flags&r.Kind.refFlag() != 0
}

// GetString returns the output text of r. Literal records are encoded as
// UTF-16; reference records are handed to res. res may be nil if the caller
// knows there are no reference records.
func (r Record) GetString(res Resolver) (scalar.UTF16, error) {
	if r.IsReference() {
		if res == nil {
			return nil, fmt.Errorf("%s record 0x%X: %w", r.Kind, r.Value, ErrUnresolvedReference)
		}
		return res.Resolve(r.Kind, r.Value)
	}
	return scalar.Encode(r.Value)
}

// KeysKey is a record of the keys section.
type KeysKey struct {
	To    uint32
	Flags uint32
}

// Record returns k as a tagged record.
func (k KeysKey) Record() Record {
	return Record{Kind: KindKey, Value: k.To, Flags: k.Flags}
}

// GetString returns the output of k, see Record.GetString.
func (k KeysKey) GetString(res Resolver) (scalar.UTF16, error) {
	return k.Record().GetString(res)
}

// ElemElement is a record of the elem section.
type ElemElement struct {
	Element uint32
	Flags   uint32
}

// Record returns e as a tagged record.
func (e ElemElement) Record() Record {
	return Record{Kind: KindElem, Value: e.Element, Flags: e.Flags}
}

// GetString returns the output of e, see Record.GetString.
func (e ElemElement) GetString(res Resolver) (scalar.UTF16, error) {
	return e.Record().GetString(res)
}
