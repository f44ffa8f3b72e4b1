/*
Package ldmlkeys resolves virtual keys for LDML keyboards.

A compiled LDML keyboard maps (virtual key, modifier state) pairs to output
text. Keyboard authors may state modifiers generically ("ctrl", "alt") or for
one side of the keyboard only ("ctrlL", "altR"). A Table holds these
mappings: it is filled once while a keyboard is loaded and then queried for
every keystroke with the live modifier state reported by the platform.

Matching a live modifier state against the stored entries follows a fixed
precedence, see Candidates:

	1. exact          the live mask as reported
	2. ctrl collapsed ctrlL/ctrlR replaced by ctrl
	3. alt collapsed  altL/altR replaced by alt
	4. both collapsed

The first step with a stored entry wins. Consequently a generic entry
matches either side, while side-specific entries are never merged with the
opposite side.

Sub-packages provide the pieces around the table: package scalar encodes
scalar values as UTF-16, package kmxplus decodes the fixed-size records of
compiled keyboard files, package vkey holds the shared virtual key
enumeration, and packages vkeytext and layoutyaml read key maps from text
sources.

# Concurrency

A Table does no locking. Fill it from a single goroutine, optionally call
Freeze, and only then share it; concurrent lookups are safe as long as no
Add is interleaved.

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package ldmlkeys

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ldmlkeys'
func tracer() tracing.Trace {
	return tracing.Select("ldmlkeys")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
