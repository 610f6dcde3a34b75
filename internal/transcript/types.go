package transcript

import (
	"strings"
	"time"
)

// Segment is one timed span of spoken content. Start and Duration are
// expressed in seconds from the beginning of the video.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Record is the persisted unit of state: one transcript per distinct video.
// Records are immutable after creation; there is no update path.
type Record struct {
	ID        string    `json:"id"`
	SourceURL string    `json:"sourceUrl"`
	VideoID   string    `json:"videoId"`
	Title     *string   `json:"title"`
	Channel   *string   `json:"channel"`
	Language  string    `json:"language,omitempty"`
	Segments  []Segment `json:"segments"`
	CreatedAt time.Time `json:"createdAt"`
}

// Draft holds the fields of a record before the store assigns id and
// creation time.
type Draft struct {
	SourceURL string
	VideoID   string
	Title     *string
	Channel   *string
	Language  string
	Segments  []Segment
}

// ContextText concatenates all segment texts into the plain-text form
// consumed by the chat and tools endpoints.
func (r *Record) ContextText() string {
	parts := make([]string, 0, len(r.Segments))
	for _, seg := range r.Segments {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, " ")
}
