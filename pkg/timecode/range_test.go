package timecode

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, in, out, rate string) Range {
	t.Helper()
	r, err := NewRange(mustParse(t, in, rate), mustParse(t, out, rate))
	require.NoError(t, err)
	return r
}

func TestNewRangeRateMismatch(t *testing.T) {
	_, err := NewRange(mustParse(t, "00:00:00:00", "25"), mustParse(t, "00:00:01:00", "30"))
	assert.ErrorIs(t, err, ErrRateMismatch)
}

func TestRangeCanonAndSize(t *testing.T) {
	fwd := mustRange(t, "01:00:00:00", "01:00:10:00", "25")
	rev := mustRange(t, "01:00:10:00", "01:00:00:00", "25")

	assert.Equal(t, fwd, rev.Canon())
	assert.Equal(t, 10*time.Second, fwd.Size())
	assert.Equal(t, 10*time.Second, rev.Size())
	assert.Equal(t, int64(250), rev.Frames())
}

func TestRangeContains(t *testing.T) {
	r := mustRange(t, "01:00:00:00", "01:00:10:00", "25")

	assert.True(t, r.Contains(mustParse(t, "01:00:00:00", "25")))
	assert.True(t, r.Contains(mustParse(t, "01:00:09:24", "25")))
	assert.False(t, r.Contains(mustParse(t, "01:00:10:00", "25")), "out point is exclusive")
	assert.False(t, r.Contains(mustParse(t, "00:59:59:24", "25")))

	other, err := FromFrames(mustParse(t, "01:00:05:00", "25").FrameCount(), "30")
	require.NoError(t, err)
	assert.False(t, r.Contains(other), "different rate is never contained")
}

func TestRangeString(t *testing.T) {
	r := mustRange(t, "01:00:00:00", "01:00:10:00", "25")
	assert.Equal(t, "(01:00:00:00-01:00:10:00)", r.String())
}

func TestSpliceSortAndSize(t *testing.T) {
	s := Splice{
		mustRange(t, "00:02:00:00", "00:02:05:00", "25"),
		mustRange(t, "00:00:00:00", "00:00:10:00", "25"),
		mustRange(t, "00:02:00:00", "00:02:01:00", "25"),
	}

	assert.False(t, s.Sorted())
	sort.Sort(s)
	assert.True(t, s.Sorted())
	assert.Equal(t, "(00:00:00:00-00:00:10:00)", s[0].String())
	assert.Equal(t, "(00:02:00:00-00:02:01:00)", s[1].String())

	assert.Equal(t, 16*time.Second, s.Size())
	assert.Equal(t, int64(16*25), s.Frames())
}

func TestSpliceUnion(t *testing.T) {
	s := Splice{
		mustRange(t, "00:02:00:00", "00:02:05:00", "25"),
		mustRange(t, "00:00:05:00", "00:00:10:00", "25"),
		mustRange(t, "00:03:00:00", "00:02:30:00", "25"), // reversed on purpose
	}

	u := s.Union()
	assert.Equal(t, "(00:00:05:00-00:03:00:00)", u.String())

	assert.Equal(t, Range{}, Splice{}.Union())
}
