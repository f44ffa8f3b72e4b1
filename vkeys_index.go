package ldmlkeys

import (
	"cmp"
	"slices"

	"github.com/npillmayer/ldmlkeys/scalar"
	"github.com/npillmayer/ldmlkeys/vkey"
)

// frozenIndex is the read-only form of a table.
//
// Every virtual key with entries owns one row, holding its entries sorted by
// mask. direct maps the codes of the vkey enumeration to 1-based row numbers;
// 0 means "no entries". Codes outside the enumeration may still be added to a
// table and are kept in overflow.
type frozenIndex struct {
	direct   [vkey.MaxCode + 1]uint16
	overflow map[vkey.Code]uint16
	rows     [][]maskEntry
}

type maskEntry struct {
	mask   ModifierMask
	output scalar.UTF16
}

func buildIndex(entries map[entryKey]scalar.UTF16) *frozenIndex {
	ix := &frozenIndex{}
	for ek, out := range entries {
		row := ix.row(ek.key)
		if row == 0 {
			ix.rows = append(ix.rows, nil)
			assert(len(ix.rows) <= 0xFFFF, "too many virtual keys for frozen index")
			row = uint16(len(ix.rows))
			ix.setRow(ek.key, row)
		}
		ix.rows[row-1] = append(ix.rows[row-1], maskEntry{mask: ek.mask, output: out})
	}
	for _, r := range ix.rows {
		slices.SortFunc(r, func(a, b maskEntry) int {
			return cmp.Compare(a.mask, b.mask)
		})
	}
	return ix
}

func (ix *frozenIndex) row(key vkey.Code) uint16 {
	if key <= vkey.MaxCode {
		return ix.direct[key]
	}
	return ix.overflow[key]
}

func (ix *frozenIndex) setRow(key vkey.Code, row uint16) {
	if key <= vkey.MaxCode {
		ix.direct[key] = row
		return
	}
	if ix.overflow == nil {
		ix.overflow = make(map[vkey.Code]uint16)
	}
	ix.overflow[key] = row
}

func (ix *frozenIndex) find(key vkey.Code, mask ModifierMask) (scalar.UTF16, bool) {
	row := ix.row(key)
	if row == 0 {
		return nil, false
	}
	r := ix.rows[row-1]
	i, found := slices.BinarySearchFunc(r, mask, func(e maskEntry, m ModifierMask) int {
		return cmp.Compare(e.mask, m)
	})
	if !found {
		return nil, false
	}
	return r[i].output, true
}
