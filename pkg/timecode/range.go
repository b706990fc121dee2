package timecode

import (
	"fmt"
	"sort"
	"time"
)

// Range is an in/out point pair at a single rate, useful for operations
// on media segments. In is inclusive, Out exclusive.
type Range struct {
	In  Timecode
	Out Timecode
}

// NewRange pairs two timecodes into a Range. Both must share a rate.
func NewRange(in, out Timecode) (Range, error) {
	if in.rate != out.rate {
		return Range{}, fmt.Errorf("range %s at %s to %s at %s: %w",
			in, in.rate, out, out.rate, ErrRateMismatch)
	}
	return Range{In: in, Out: out}, nil
}

// Canon returns the range in proper order, where In is not after Out.
func (r Range) Canon() Range {
	if r.Out.Before(r.In) {
		r.In, r.Out = r.Out, r.In
	}
	return r
}

// Frames returns the number of frames the range spans.
func (r Range) Frames() int64 {
	df := r.Out.frames - r.In.frames
	if df < 0 {
		df = -df
	}
	return df
}

// Size returns the real-time duration of the range.
func (r Range) Size() time.Duration {
	c := r.Canon()
	return c.Out.Duration() - c.In.Duration()
}

// Contains reports whether tc falls inside the range. Timecodes at a
// different rate are never contained.
func (r Range) Contains(tc Timecode) bool {
	if tc.rate != r.In.rate {
		return false
	}
	c := r.Canon()
	return c.In.frames <= tc.frames && tc.frames < c.Out.frames
}

func (r Range) String() string {
	return fmt.Sprintf("(%s-%s)", r.In, r.Out)
}

// Splice is a collection of possibly ordered, possibly overlapping
// ranges. It implements sort.Interface to assist with ordering cuts.
type Splice []Range

func (s Splice) Len() int      { return len(s) }
func (s Splice) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s Splice) Less(i, j int) bool {
	a, b := s[i].Canon(), s[j].Canon()
	if a.In.frames != b.In.frames {
		return a.In.frames < b.In.frames
	}
	return s[i].Frames() < s[j].Frames()
}

// Sorted reports whether the splice is in order.
func (s Splice) Sorted() bool { return sort.IsSorted(s) }

// Size returns the cumulative duration of the splice.
func (s Splice) Size() (dt time.Duration) {
	for _, r := range s {
		dt += r.Size()
	}
	return dt
}

// Frames returns the cumulative frame count of the splice.
func (s Splice) Frames() (n int64) {
	for _, r := range s {
		n += r.Frames()
	}
	return n
}

// Union returns the smallest Range that contains the splice.
func (s Splice) Union() Range {
	if len(s) == 0 {
		return Range{}
	}
	u := s[0].Canon()
	for _, r := range s[1:] {
		r = r.Canon()
		if r.In.Before(u.In) {
			u.In = r.In
		}
		if u.Out.Before(r.Out) {
			u.Out = r.Out
		}
	}
	return u
}
