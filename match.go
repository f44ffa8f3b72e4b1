package ldmlkeys

// matchStep is one transformation of a query mask. Steps are probed in
// order; the first transformed mask with a stored entry wins.
type matchStep struct {
	name      string
	transform func(ModifierMask) ModifierMask
}

var matchSteps = [...]matchStep{
	{"exact", func(m ModifierMask) ModifierMask { return m }},
	{"ctrl", collapseCtrl},
	{"alt", collapseAlt},
	{"ctrl+alt", func(m ModifierMask) ModifierMask { return collapseAlt(collapseCtrl(m)) }},
}

// collapseCtrl replaces ctrlL/ctrlR by the generic ctrl flag.
// Masks without a ctrl side bit are returned unchanged.
func collapseCtrl(m ModifierMask) ModifierMask {
	if m&ctrlSides == 0 {
		return m
	}
	return m&^ctrlSides | CtrlFlag
}

// collapseAlt replaces altL/altR by the generic alt flag.
// Masks without an alt side bit are returned unchanged.
func collapseAlt(m ModifierMask) ModifierMask {
	if m&altSides == 0 {
		return m
	}
	return m&^altSides | AltFlag
}

// probes holds the candidate masks for one query, free of duplicates.
type probes struct {
	masks [len(matchSteps)]ModifierMask
	steps [len(matchSteps)]uint8
	n     int
}

func candidates(query ModifierMask) probes {
	var p probes
	for i, step := range matchSteps {
		m := step.transform(query)
		dup := false
		for j := 0; j < p.n; j++ {
			if p.masks[j] == m {
				dup = true
				break
			}
		}
		if !dup {
			p.masks[p.n] = m
			p.steps[p.n] = uint8(i)
			p.n++
		}
	}
	return p
}

// Candidates returns the masks probed for a live modifier state, in
// precedence order and without duplicates:
//
//	ctrlL altR  =>  [ctrlL altR, ctrl altR, ctrlL alt, ctrl alt]
//	shift       =>  [shift]
//
// A query holding a generic flag never expands to side-specific masks.
func Candidates(query ModifierMask) []ModifierMask {
	p := candidates(query)
	out := make([]ModifierMask, p.n)
	copy(out, p.masks[:p.n])
	return out
}
