package captions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

var captionTracksPattern = regexp.MustCompile(`"captionTracks":(\[.*?\])`)

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// YouTubeFetcher scrapes the caption track list from the public watch page
// and downloads the selected track in the json3 timedtext format. No API key
// is required for this path.
type YouTubeFetcher struct {
	httpClient *http.Client
	baseURL    string
	language   string
}

type Option func(*YouTubeFetcher)

// WithBaseURL overrides the YouTube host, used by tests.
func WithBaseURL(baseURL string) Option {
	return func(f *YouTubeFetcher) {
		f.baseURL = baseURL
	}
}

// WithLanguage sets the preferred caption language code (default "en").
func WithLanguage(code string) Option {
	return func(f *YouTubeFetcher) {
		f.language = code
	}
}

func NewYouTubeFetcher(opts ...Option) *YouTubeFetcher {
	f := &YouTubeFetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://www.youtube.com",
		language:   "en",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *YouTubeFetcher) FetchCaptions(ctx context.Context, videoID string) ([]Caption, error) {
	page, err := f.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	tracks, err := parseCaptionTracks(page)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, ErrNoCaptions
	}

	track := pickTrack(tracks, f.language)
	body, err := f.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}

	items, err := parseTimedText(body)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoCaptions
	}
	return items, nil
}

func (f *YouTubeFetcher) fetchWatchPage(ctx context.Context, videoID string) ([]byte, error) {
	url := fmt.Sprintf("%s/watch?v=%s", f.baseURL, videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (f *YouTubeFetcher) fetchTimedText(ctx context.Context, baseURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"&fmt=json3", nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseCaptionTracks locates the caption track list embedded in the player
// response blob of the watch page. A page without the marker means the video
// has captions disabled.
func parseCaptionTracks(page []byte) ([]captionTrack, error) {
	match := captionTracksPattern.FindSubmatch(page)
	if match == nil {
		return nil, ErrNoCaptions
	}
	var tracks []captionTrack
	if err := json.Unmarshal(match[1], &tracks); err != nil {
		return nil, fmt.Errorf("parse caption tracks: %w", err)
	}
	return tracks, nil
}

// pickTrack prefers a manually uploaded track in the requested language, then
// any track in that language, then the first track.
func pickTrack(tracks []captionTrack, language string) captionTrack {
	var langMatch *captionTrack
	for i := range tracks {
		if tracks[i].LanguageCode != language {
			continue
		}
		if tracks[i].Kind != "asr" {
			return tracks[i]
		}
		if langMatch == nil {
			langMatch = &tracks[i]
		}
	}
	if langMatch != nil {
		return *langMatch
	}
	return tracks[0]
}

type timedTextResponse struct {
	Events []struct {
		StartMs    int64 `json:"tStartMs"`
		DurationMs int64 `json:"dDurationMs"`
		Segs       []struct {
			Text string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func parseTimedText(body []byte) ([]Caption, error) {
	var parsed timedTextResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse timedtext: %w", err)
	}

	items := make([]Caption, 0, len(parsed.Events))
	for _, event := range parsed.Events {
		text := ""
		for _, seg := range event.Segs {
			text += seg.Text
		}
		if text == "" {
			continue
		}
		items = append(items, Caption{
			Text:     text,
			Start:    time.Duration(event.StartMs) * time.Millisecond,
			Duration: time.Duration(event.DurationMs) * time.Millisecond,
		})
	}
	return items, nil
}
