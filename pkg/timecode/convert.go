package timecode

import "fmt"

// scale rescales a frame count from one rate's true clock to the
// other's: frames * (to.num/to.den) / (from.num/from.den), evaluated in
// exact int64 arithmetic and truncated toward zero. Truncation is the
// rounding rule for every conversion in this package.
func scale(frames int64, from, to Rate) int64 {
	return frames * to.num * from.den / (from.num * to.den)
}

// ConvertTo rescales the real-time instant the timecode represents to
// the named rate. Converting to the timecode's own rate returns an equal
// value. The conversion is lossy for unequal rates; the result is the
// largest count at the new rate not after the original instant.
func (t Timecode) ConvertTo(rateName string) (Timecode, error) {
	to, err := ResolveRate(rateName)
	if err != nil {
		return Timecode{}, err
	}
	if to == t.rate {
		return t, nil
	}
	return Timecode{frames: scale(t.frames, t.rate, to), rate: to}, nil
}

// ConvertWithStart rescales the timecode anchored to a reference instant
// rather than to zero: the frame offset from start is converted on its
// own and reapplied to start's own conversion. Near a sync point this
// bounds the rounding error relative to the anchor instead of relative
// to midnight, which generally differs from ConvertTo by a frame.
//
// start must be at the same rate as the receiver; otherwise the
// conversion fails with ErrRateMismatch.
func (t Timecode) ConvertWithStart(rateName string, start Timecode) (Timecode, error) {
	if start.rate != t.rate {
		return Timecode{}, fmt.Errorf("convert %s with start at %s: %w", t.rate, start.rate, ErrRateMismatch)
	}
	newStart, err := start.ConvertTo(rateName)
	if err != nil {
		return Timecode{}, err
	}
	delta := scale(t.frames-start.frames, t.rate, newStart.rate)
	frames := newStart.frames + delta
	if frames < 0 {
		return Timecode{}, fmt.Errorf("convert %s with start %s: %w", t, start, ErrNegativeFrameCount)
	}
	return Timecode{frames: frames, rate: newStart.rate}, nil
}
