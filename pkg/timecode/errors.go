package timecode

import "errors"

// Sentinel errors returned by constructors and transforms. Every failure
// path wraps one of these with input context, so callers match with
// errors.Is. A non-nil error is never accompanied by a partial Timecode.
var (
	// ErrUnsupportedRate reports a rate identifier outside the supported
	// broadcast set.
	ErrUnsupportedRate = errors.New("unsupported frame rate")

	// ErrMalformedTimecode reports input that does not match the
	// two-digit HH:MM:SS:FF pattern, or minute/second fields >= 60.
	ErrMalformedTimecode = errors.New("malformed timecode")

	// ErrFrameOverflow reports a frame field at or above the rate's
	// nominal frames per second.
	ErrFrameOverflow = errors.New("frame number exceeds frame rate")

	// ErrDroppedFrame reports a frame number that drop-frame counting
	// skips and which therefore never appears in a valid rendering.
	ErrDroppedFrame = errors.New("frame number falls on a dropped frame")

	// ErrNegativeFrameCount reports arithmetic that would move a
	// timecode before 00:00:00:00.
	ErrNegativeFrameCount = errors.New("negative frame count")

	// ErrRateMismatch reports an operation whose operands must share a
	// frame rate but do not.
	ErrRateMismatch = errors.New("frame rate mismatch")
)
