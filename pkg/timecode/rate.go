package timecode

import (
	"fmt"
	"sort"
	"time"
)

// Rate describes a supported broadcast frame rate: the true rational
// number of frames per real second (30000/1001 for 29.97, not 29.97
// itself) and the nominal integer rate used for HH:MM:SS:FF field math
// (30 for 29.97).
type Rate struct {
	name string
	num  int64 // true frames per second, numerator
	den  int64 // true frames per second, denominator
	fps  int64 // nominal integer frames per second
	drop bool
}

// rates is the closed registry of supported broadcast rates. Drop-frame
// is a property of the rate identifier, never caller-settable: exactly
// the fractional NTSC rates at 30 and above carry it, while 23.98 is
// fractional but always counted non-drop.
var rates = map[string]Rate{
	"23.98": {name: "23.98", num: 24000, den: 1001, fps: 24},
	"24":    {name: "24", num: 24, den: 1, fps: 24},
	"25":    {name: "25", num: 25, den: 1, fps: 25},
	"29.97": {name: "29.97", num: 30000, den: 1001, fps: 30, drop: true},
	"30":    {name: "30", num: 30, den: 1, fps: 30},
	"50":    {name: "50", num: 50, den: 1, fps: 50},
	"59.94": {name: "59.94", num: 60000, den: 1001, fps: 60, drop: true},
	"60":    {name: "60", num: 60, den: 1, fps: 60},
}

// ResolveRate maps a rate identifier such as "25" or "29.97" to its
// Rate. Unknown identifiers fail with ErrUnsupportedRate.
func ResolveRate(name string) (Rate, error) {
	r, ok := rates[name]
	if !ok {
		return Rate{}, fmt.Errorf("resolve rate %q: %w", name, ErrUnsupportedRate)
	}
	return r, nil
}

// Rates returns the supported rates ordered by nominal frames per
// second, fractional rates before their integer neighbours.
func Rates() []Rate {
	out := make([]Rate, 0, len(rates))
	for _, r := range rates {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].num*out[j].den != out[j].num*out[i].den {
			return out[i].num*out[j].den < out[j].num*out[i].den
		}
		return out[i].name < out[j].name
	})
	return out
}

// Name returns the canonical rate identifier.
func (r Rate) Name() string { return r.name }

// FPS returns the nominal integer frames per second used for field math.
func (r Rate) FPS() int64 { return r.fps }

// DropFrame reports whether timecodes at this rate use drop-frame
// counting.
func (r Rate) DropFrame() bool { return r.drop }

// Rational returns the true frames per second as a reduced fraction.
func (r Rate) Rational() (num, den int64) { return r.num, r.den }

// FrameDuration returns the real-time duration of a single frame.
func (r Rate) FrameDuration() time.Duration {
	return time.Duration(r.den * int64(time.Second) / r.num)
}

// IsZero reports whether r is the zero Rate rather than a registry entry.
func (r Rate) IsZero() bool { return r.name == "" }

func (r Rate) String() string { return r.name }

// dropPerMinute is the number of frame numbers skipped at the start of
// each non-tenth minute: 2 at 29.97, 4 at 59.94.
func (r Rate) dropPerMinute() int64 {
	if !r.drop {
		return 0
	}
	return r.fps / 15
}

func (r Rate) frameSep() byte {
	if r.drop {
		return ';'
	}
	return ':'
}
