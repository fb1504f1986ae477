package ebustl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRateFromDFC(t *testing.T) {
	fr, err := FrameRateFromDFC("STL25.01")
	require.NoError(t, err)
	assert.Equal(t, FrameRate25, fr)

	fr, err = FrameRateFromDFC("STL30.01")
	require.NoError(t, err)
	assert.Equal(t, FrameRate30, fr)

	_, err = FrameRateFromDFC("STL60.01")
	assert.ErrorIs(t, err, ErrUnrecognizedFrameRate)
}

func TestFrameRateFPS(t *testing.T) {
	assert.Equal(t, 25.0, FrameRate25.FPS())
	assert.InDelta(t, 29.97, FrameRate2997.FPS(), 0.001)
	assert.InDelta(t, 59.94, FrameRate5994.FPS(), 0.001)

	custom := FrameRate{Nominal: 24, CustomFPS: 23.976}
	assert.Equal(t, 23.976, custom.FPS())
}

func TestFramesToUsNonDropFrame(t *testing.T) {
	us, err := FramesToUs(0, 0, 1, 0, FrameRate25)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000), us)

	us, err = FramesToUs(0, 0, 0, 12, FrameRate25)
	require.NoError(t, err)
	assert.Equal(t, int64(480_000), us)
}

func TestFramesToUsRejectsOutOfRange(t *testing.T) {
	_, err := FramesToUs(24, 0, 0, 0, FrameRate25)
	assert.Error(t, err)
	_, err = FramesToUs(0, 0, 0, 25, FrameRate25)
	assert.Error(t, err)
}

func TestUsToSMPTENonDropFrameUsesColon(t *testing.T) {
	s := UsToSMPTE(1_000_000, FrameRate25)
	assert.Equal(t, "00:00:01:00", s)
}

// Scenario: TCI (00,01,00,00) at 29.97fps reports "00:01:00;02" — the
// literal ff=0 at a non-exempt minute boundary is not a valid
// drop-frame timecode, so FramesToUs/UsToSMPTE normalize it to the
// nearest one instead of producing an inconsistent round trip.
func TestDropFrameBoundaryNormalization(t *testing.T) {
	us, err := FramesToUs(0, 1, 0, 0, FrameRate2997)
	require.NoError(t, err)
	assert.Equal(t, "00:01:00;02", UsToSMPTE(us, FrameRate2997))
}

func TestUsToSMPTEDropFrameUsesSemicolon(t *testing.T) {
	us, err := FramesToUs(0, 0, 10, 5, FrameRate2997)
	require.NoError(t, err)
	assert.Contains(t, UsToSMPTE(us, FrameRate2997), ";")
}

func TestDropFrameRoundTripAwayFromBoundary(t *testing.T) {
	cases := []struct{ hh, mm, ss, ff int }{
		{0, 3, 10, 5},
		{1, 23, 45, 10},
		{0, 0, 0, 5},
	}
	for _, c := range cases {
		us, err := FramesToUs(c.hh, c.mm, c.ss, c.ff, FrameRate2997)
		require.NoError(t, err)
		hh, mm, ss, ff := usToTimecode(us, FrameRate2997)
		assert.Equal(t, [4]int{c.hh, c.mm, c.ss, c.ff}, [4]int{hh, mm, ss, ff})
	}
}

func TestNonDropFrameRoundTrip(t *testing.T) {
	us, err := FramesToUs(2, 15, 30, 12, FrameRate25)
	require.NoError(t, err)
	hh, mm, ss, ff := usToTimecode(us, FrameRate25)
	assert.Equal(t, [4]int{2, 15, 30, 12}, [4]int{hh, mm, ss, ff})
}
