// Package timecode implements SMPTE broadcast timecode values: exact
// frame counts bound to a frame rate, with parsing and rendering of the
// HH:MM:SS:FF (non-drop) and HH:MM:SS;FF (drop-frame) string forms,
// frame arithmetic, and conversion between rates.
//
// The frame count is the single source of truth. Drop-frame compensation
// (skipping frame numbers 00 and 01 at the start of every minute except
// each tenth minute, scaled for 59.94) exists only in the mapping between
// the count and the rendered fields, so counts are always exact and
// contiguous.
//
// Values are immutable: every transform returns a new Timecode. The type
// is safe for concurrent use without synchronization.
package timecode
