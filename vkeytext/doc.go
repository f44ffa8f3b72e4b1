// Package vkeytext reads virtual key tables from a simple line format.
//
// The format is meant for test fixtures and for tools dumping or diffing
// keyboard tables; it is not a replacement for LDML sources.
package vkeytext
