package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID_AllShapes(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?t=42",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ",
		"https://www.youtube.com/e/dQw4w9WgXcQ",
	}
	for _, url := range urls {
		id, ok := ExtractVideoID(url)
		require.True(t, ok, "expected %s to be recognized", url)
		assert.Equal(t, "dQw4w9WgXcQ", id, "url %s", url)
	}
}

func TestExtractVideoID_Unrecognized(t *testing.T) {
	t.Parallel()

	urls := []string{
		"",
		"not a url",
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=short",
	}
	for _, url := range urls {
		_, ok := ExtractVideoID(url)
		assert.False(t, ok, "expected %s to be rejected", url)
	}
}
