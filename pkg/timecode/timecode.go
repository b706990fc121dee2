package timecode

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Timecode is an immutable SMPTE timestamp: a non-negative frame count
// bound to a Rate. The rendered HH:MM:SS:FF form is derived from the
// count and round-trips exactly.
type Timecode struct {
	frames int64
	rate   Rate
}

// Both separators are accepted on input; the rate alone decides
// drop-frame interpretation and the separator used when rendering.
var tcPattern = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})([:;])(\d{2})$`)

// Parse interprets text as a timecode at the named rate. Fields must be
// exactly two digits each. Fails with ErrUnsupportedRate,
// ErrMalformedTimecode, ErrFrameOverflow or ErrDroppedFrame.
func Parse(text, rateName string) (Timecode, error) {
	rate, err := ResolveRate(rateName)
	if err != nil {
		return Timecode{}, err
	}
	return ParseRate(text, rate)
}

// ParseRate is Parse with an already-resolved Rate.
func ParseRate(text string, rate Rate) (Timecode, error) {
	if rate.IsZero() {
		return Timecode{}, fmt.Errorf("parse %q: zero rate: %w", text, ErrUnsupportedRate)
	}

	m := tcPattern.FindStringSubmatch(text)
	if m == nil {
		return Timecode{}, fmt.Errorf("parse %q: %w", text, ErrMalformedTimecode)
	}

	// The pattern guarantees two decimal digits per group.
	h, _ := strconv.ParseInt(m[1], 10, 64)
	mm, _ := strconv.ParseInt(m[2], 10, 64)
	s, _ := strconv.ParseInt(m[3], 10, 64)
	f, _ := strconv.ParseInt(m[5], 10, 64)

	switch {
	case mm >= 60:
		return Timecode{}, fmt.Errorf("parse %q: minutes %d: %w", text, mm, ErrMalformedTimecode)
	case s >= 60:
		return Timecode{}, fmt.Errorf("parse %q: seconds %d: %w", text, s, ErrMalformedTimecode)
	case f >= rate.fps:
		return Timecode{}, fmt.Errorf("parse %q: frame %d at %s fps %d: %w", text, f, rate, rate.fps, ErrFrameOverflow)
	}

	// Drop-frame skips the first dropPerMinute frame numbers of every
	// minute whose index is not a multiple of ten.
	if rate.drop && s == 0 && mm%10 != 0 && f < rate.dropPerMinute() {
		return Timecode{}, fmt.Errorf("parse %q: %w", text, ErrDroppedFrame)
	}

	totalMinutes := h*60 + mm
	frames := (totalMinutes*60+s)*rate.fps + f
	if rate.drop {
		frames -= rate.dropPerMinute() * (totalMinutes - totalMinutes/10)
	}

	return Timecode{frames: frames, rate: rate}, nil
}

// FromFrames constructs a Timecode from an exact frame count at the
// named rate.
func FromFrames(frames int64, rateName string) (Timecode, error) {
	rate, err := ResolveRate(rateName)
	if err != nil {
		return Timecode{}, err
	}
	return FromFrameCount(frames, rate)
}

// FromFrameCount is FromFrames with an already-resolved Rate.
func FromFrameCount(frames int64, rate Rate) (Timecode, error) {
	if rate.IsZero() {
		return Timecode{}, fmt.Errorf("from frames: zero rate: %w", ErrUnsupportedRate)
	}
	if frames < 0 {
		return Timecode{}, fmt.Errorf("from frames %d: %w", frames, ErrNegativeFrameCount)
	}
	return Timecode{frames: frames, rate: rate}, nil
}

// FrameCount returns the exact number of frames since 00:00:00:00.
func (t Timecode) FrameCount() int64 { return t.frames }

// Rate returns the frame rate the count is bound to.
func (t Timecode) Rate() Rate { return t.rate }

// IsDropFrame reports whether the timecode's rate uses drop-frame
// counting.
func (t Timecode) IsDropFrame() bool { return t.rate.drop }

// Duration returns the elapsed real time, computed from the rate's true
// rational frames per second. Whole seconds and the sub-second remainder
// are scaled separately so the intermediate products stay inside int64
// for every parseable count.
func (t Timecode) Duration() time.Duration {
	ticks := t.frames * t.rate.den
	secs := ticks / t.rate.num
	rem := ticks % t.rate.num
	return time.Duration(secs)*time.Second + time.Duration(rem*int64(time.Second)/t.rate.num)
}

// AddFrames returns a new Timecode advanced by n frames (n may be
// negative). Fails with ErrNegativeFrameCount if the result would land
// before 00:00:00:00.
func (t Timecode) AddFrames(n int64) (Timecode, error) {
	sum := t.frames + n
	if sum < 0 {
		return Timecode{}, fmt.Errorf("add %d frames to %s: %w", n, t, ErrNegativeFrameCount)
	}
	return Timecode{frames: sum, rate: t.rate}, nil
}

// Equal reports whether two timecodes share a rate and a frame count.
func (t Timecode) Equal(o Timecode) bool {
	return t.rate == o.rate && t.frames == o.frames
}

// Before reports whether t precedes o. Only meaningful when both share a
// rate; ordering reduces to frame count comparison.
func (t Timecode) Before(o Timecode) bool { return t.frames < o.frames }

// Compare orders two timecodes by frame count, returning -1, 0 or +1.
// Only meaningful when both share a rate.
func (t Timecode) Compare(o Timecode) int {
	switch {
	case t.frames < o.frames:
		return -1
	case t.frames > o.frames:
		return 1
	}
	return 0
}

// Components returns the rendered hours, minutes, seconds and frames
// fields.
func (t Timecode) Components() (h, m, s, f int64) {
	return t.fields()
}

// String renders the canonical two-digit form, with ';' as the frame
// separator for drop-frame rates and ':' otherwise.
func (t Timecode) String() string {
	if t.rate.IsZero() {
		return "00:00:00:00"
	}
	h, m, s, f := t.fields()
	return fmt.Sprintf("%02d:%02d:%02d%c%02d", h, m, s, t.rate.frameSep(), f)
}

// fields reverses the drop-frame compensation. Each ten-minute block
// holds one full minute (the tenth) plus nine shortened minutes, so the
// block length in real frames is 10*60*fps - 9*dropPerMinute and the
// position inside the block resolves the minute in closed form.
func (t Timecode) fields() (h, m, s, f int64) {
	fps := t.rate.fps
	frames := t.frames

	if t.rate.drop {
		d := t.rate.dropPerMinute()
		perMinute := 60 * fps
		perShortMinute := perMinute - d
		perBlock := 10*perMinute - 9*d

		blocks := frames / perBlock
		rem := frames % perBlock

		totalMinutes := blocks * 10
		frameOfMinute := rem
		if rem >= perMinute {
			rem -= perMinute
			totalMinutes += 1 + rem/perShortMinute
			frameOfMinute = rem%perShortMinute + d
		}

		return totalMinutes / 60, totalMinutes % 60, frameOfMinute / fps, frameOfMinute % fps
	}

	f = frames % fps
	seconds := frames / fps
	return seconds / 3600, seconds / 60 % 60, seconds % 60, f
}
