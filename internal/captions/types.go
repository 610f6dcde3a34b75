package captions

import (
	"context"
	"errors"
	"time"
)

// ErrNoCaptions reports that the video has no caption track at all, or that
// captions are disabled for it. It is an expected outcome, not a fault: the
// acquisition pipeline reacts by falling back to audio transcription.
var ErrNoCaptions = errors.New("no captions available for this video")

// Caption is one raw caption item as returned by the upstream source, before
// normalization. Timing is kept in the upstream's native resolution.
type Caption struct {
	Text     string
	Start    time.Duration
	Duration time.Duration
}

// Fetcher retrieves the pre-existing caption track of a video.
type Fetcher interface {
	FetchCaptions(ctx context.Context, videoID string) ([]Caption, error)
}
