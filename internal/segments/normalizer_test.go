package segments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MimeLyc/tubescribe/internal/captions"
)

func TestFromCaptions(t *testing.T) {
	t.Parallel()

	items := []captions.Caption{
		{Text: "  Welcome back.  ", Start: 0, Duration: 3200 * time.Millisecond},
		{Text: "   ", Start: 3200 * time.Millisecond, Duration: 100 * time.Millisecond},
		{Text: "Today we talk about Go.", Start: 3400 * time.Millisecond, Duration: 4100 * time.Millisecond},
	}

	segs, err := FromCaptions(items)
	require.NoError(t, err)
	require.Len(t, segs, 2)

	assert.Equal(t, "Welcome back.", segs[0].Text)
	assert.Equal(t, 0.0, segs[0].Start)
	assert.Equal(t, 3.2, segs[0].Duration)

	assert.Equal(t, "Today we talk about Go.", segs[1].Text)
	assert.Equal(t, 3.4, segs[1].Start)
	assert.Equal(t, 4.1, segs[1].Duration)
}

func TestFromCaptions_AllBlank(t *testing.T) {
	t.Parallel()

	_, err := FromCaptions([]captions.Caption{{Text: "   "}, {Text: "\n"}})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestFromText_StrideTiming(t *testing.T) {
	t.Parallel()

	segs, err := FromText("First sentence. Second one! And a third? Trailing fragment")
	require.NoError(t, err)
	require.Len(t, segs, 4)

	assert.Equal(t, "First sentence.", segs[0].Text)
	assert.Equal(t, "Second one!", segs[1].Text)
	assert.Equal(t, "And a third?", segs[2].Text)
	assert.Equal(t, "Trailing fragment", segs[3].Text)

	for i, seg := range segs {
		assert.Equal(t, float64(i)*5, seg.Start)
		assert.Equal(t, 5.0, seg.Duration)
	}
}

func TestFromText_Empty(t *testing.T) {
	t.Parallel()

	_, err := FromText("   ")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	segs, err := FromText("This is an English sentence about programming. Another English sentence follows it here.")
	require.NoError(t, err)
	assert.Equal(t, "en", DetectLanguage(segs))
}
