package kmxplus

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"

	"github.com/npillmayer/ldmlkeys/scalar"
)

// RecordSize is the size of a record in bytes.
const RecordSize = 8

// ErrTruncatedSection is returned for section buffers too short for their
// record count, and for negative or impossibly large counts.
var ErrTruncatedSection = errors.New("truncated section")

// DecodeError reports a record which could not be decoded.
type DecodeError struct {
	Kind  Kind
	Index int
	Value uint32
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s record #%d (0x%X): %v", e.Kind, e.Index, e.Value, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Section is a read-only view of the records of one section. It does not
// copy the underlying buffer.
type Section struct {
	kind Kind
	data []byte
}

// NewSection creates a view of count records of the given kind in buf.
// buf may be longer than needed; surplus bytes are ignored.
func NewSection(kind Kind, buf []byte, count int) (*Section, error) {
	if _, ok := kinds[kind]; !ok {
		return nil, fmt.Errorf("unknown record kind %d", uint8(kind))
	}
	if count < 0 || len(buf)/RecordSize < count {
		return nil, fmt.Errorf("%s section: %d bytes for %d records: %w",
			kind, len(buf), count, ErrTruncatedSection)
	}
	return &Section{kind: kind, data: buf[:count*RecordSize]}, nil
}

// NewKeysSection creates a view of the keys section.
func NewKeysSection(buf []byte, count int) (*Section, error) {
	return NewSection(KindKey, buf, count)
}

// NewElemSection creates a view of the elem section.
func NewElemSection(buf []byte, count int) (*Section, error) {
	return NewSection(KindElem, buf, count)
}

// ReadSection reads count records from r. The buffer grows with the bytes
// actually read, so a bogus count from a corrupt header fails with
// ErrTruncatedSection instead of allocating count*RecordSize up front.
func ReadSection(kind Kind, r io.Reader, count int) (*Section, error) {
	if count < 0 || count > math.MaxInt/RecordSize {
		return nil, fmt.Errorf("%s section: record count %d: %w", kind, count, ErrTruncatedSection)
	}
	size := count * RecordSize
	buf, err := io.ReadAll(io.LimitReader(r, int64(size)))
	if err != nil {
		return nil, err
	}
	if len(buf) < size {
		return nil, fmt.Errorf("%s section: %d of %d bytes: %w", kind, len(buf), size, ErrTruncatedSection)
	}
	return NewSection(kind, buf, count)
}

// Kind returns the kind of the records in s.
func (s *Section) Kind() Kind { return s.kind }

// Len returns the number of records.
func (s *Section) Len() int { return len(s.data) / RecordSize }

// At returns record i. It panics if i is out of range.
func (s *Section) At(i int) Record {
	off := i * RecordSize
	return Record{
		Kind:  s.kind,
		Value: binary.LittleEndian.Uint32(s.data[off:]),
		Flags: binary.LittleEndian.Uint32(s.data[off+4:]),
	}
}

// All iterates over the records of s.
func (s *Section) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i := range s.Len() {
			if !yield(i, s.At(i)) {
				return
			}
		}
	}
}

// GetString decodes record i, see Record.GetString.
func (s *Section) GetString(i int, res Resolver) (scalar.UTF16, error) {
	rec := s.At(i)
	out, err := rec.GetString(res)
	if err != nil {
		return nil, &DecodeError{Kind: s.kind, Index: i, Value: rec.Value, Err: err}
	}
	return out, nil
}

// DecodeAll decodes every record of s. It stops at the first record which
// fails; a keyboard containing such a record is malformed as a whole.
func (s *Section) DecodeAll(res Resolver) ([]scalar.UTF16, error) {
	out := make([]scalar.UTF16, 0, s.Len())
	for i := range s.Len() {
		str, err := s.GetString(i, res)
		if err != nil {
			tracer().Errorf("%v", err)
			return nil, err
		}
		out = append(out, str)
	}
	return out, nil
}

// AppendRecord appends the little-endian encoding of one record to buf.
func AppendRecord(buf []byte, value, flags uint32) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, value)
	return binary.LittleEndian.AppendUint32(buf, flags)
}
