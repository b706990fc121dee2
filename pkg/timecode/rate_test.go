package timecode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRate(t *testing.T) {
	tests := []struct {
		name     string
		wantFPS  int64
		wantNum  int64
		wantDen  int64
		wantDrop bool
	}{
		{name: "23.98", wantFPS: 24, wantNum: 24000, wantDen: 1001, wantDrop: false},
		{name: "24", wantFPS: 24, wantNum: 24, wantDen: 1, wantDrop: false},
		{name: "25", wantFPS: 25, wantNum: 25, wantDen: 1, wantDrop: false},
		{name: "29.97", wantFPS: 30, wantNum: 30000, wantDen: 1001, wantDrop: true},
		{name: "30", wantFPS: 30, wantNum: 30, wantDen: 1, wantDrop: false},
		{name: "50", wantFPS: 50, wantNum: 50, wantDen: 1, wantDrop: false},
		{name: "59.94", wantFPS: 60, wantNum: 60000, wantDen: 1001, wantDrop: true},
		{name: "60", wantFPS: 60, wantNum: 60, wantDen: 1, wantDrop: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ResolveRate(tt.name)
			require.NoError(t, err)

			assert.Equal(t, tt.name, r.Name())
			assert.Equal(t, tt.wantFPS, r.FPS())
			assert.Equal(t, tt.wantDrop, r.DropFrame())

			num, den := r.Rational()
			assert.Equal(t, tt.wantNum, num)
			assert.Equal(t, tt.wantDen, den)
		})
	}
}

func TestResolveRateUnsupported(t *testing.T) {
	for _, name := range []string{"15", "23.976", "29.97df", "0", "", "twentyfive"} {
		t.Run(name, func(t *testing.T) {
			_, err := ResolveRate(name)
			assert.ErrorIs(t, err, ErrUnsupportedRate)
		})
	}
}

func TestRateDropPerMinute(t *testing.T) {
	r2997, err := ResolveRate("29.97")
	require.NoError(t, err)
	assert.Equal(t, int64(2), r2997.dropPerMinute())

	r5994, err := ResolveRate("59.94")
	require.NoError(t, err)
	assert.Equal(t, int64(4), r5994.dropPerMinute())

	r25, err := ResolveRate("25")
	require.NoError(t, err)
	assert.Equal(t, int64(0), r25.dropPerMinute())
}

func TestRateFrameDuration(t *testing.T) {
	r25, err := ResolveRate("25")
	require.NoError(t, err)
	assert.Equal(t, 40*time.Millisecond, r25.FrameDuration())

	r2997, err := ResolveRate("29.97")
	require.NoError(t, err)
	// 1001/30000 s, truncated to nanoseconds.
	assert.Equal(t, time.Duration(33366666), r2997.FrameDuration())
}

func TestRatesOrdered(t *testing.T) {
	all := Rates()
	require.Len(t, all, 8)

	names := make([]string, len(all))
	for i, r := range all {
		names[i] = r.Name()
	}
	assert.Equal(t, []string{"23.98", "24", "25", "29.97", "30", "50", "59.94", "60"}, names)
}
