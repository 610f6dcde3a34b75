package captions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const timedTextFixture = `{"events":[
	{"tStartMs":0,"dDurationMs":3200,"segs":[{"utf8":"Welcome back "},{"utf8":"to the channel."}]},
	{"tStartMs":3200,"dDurationMs":120,"segs":[{"utf8":""}]},
	{"tStartMs":3400,"dDurationMs":4100,"segs":[{"utf8":"Today we talk about Go."}]}
]}`

func TestParseTimedText(t *testing.T) {
	t.Parallel()

	items, err := parseTimedText([]byte(timedTextFixture))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Welcome back to the channel.", items[0].Text)
	assert.Equal(t, time.Duration(0), items[0].Start)
	assert.Equal(t, 3200*time.Millisecond, items[0].Duration)

	assert.Equal(t, "Today we talk about Go.", items[1].Text)
	assert.Equal(t, 3400*time.Millisecond, items[1].Start)
}

func TestParseCaptionTracks_NoMarker(t *testing.T) {
	t.Parallel()

	_, err := parseCaptionTracks([]byte(`<html><body>watch page without captions</body></html>`))
	assert.ErrorIs(t, err, ErrNoCaptions)
}

func TestPickTrack_PrefersManualInLanguage(t *testing.T) {
	t.Parallel()

	tracks := []captionTrack{
		{BaseURL: "/a", LanguageCode: "de"},
		{BaseURL: "/b", LanguageCode: "en", Kind: "asr"},
		{BaseURL: "/c", LanguageCode: "en"},
	}
	assert.Equal(t, "/c", pickTrack(tracks, "en").BaseURL)

	// Only an auto-generated track in the requested language.
	tracks = tracks[:2]
	assert.Equal(t, "/b", pickTrack(tracks, "en").BaseURL)

	// No track in the requested language at all.
	assert.Equal(t, "/a", pickTrack(tracks[:1], "en").BaseURL)
}

func TestYouTubeFetcher_FetchCaptions(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		page := fmt.Sprintf(
			`<html>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"%s/api/timedtext?v=abc","languageCode":"en"}]}}};</html>`,
			srv.URL,
		)
		_, _ = w.Write([]byte(page))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "json3", r.URL.Query().Get("fmt"))
		_, _ = w.Write([]byte(timedTextFixture))
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	fetcher := NewYouTubeFetcher(WithBaseURL(srv.URL))
	items, err := fetcher.FetchCaptions(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, strings.HasPrefix(items[0].Text, "Welcome"))
}

func TestYouTubeFetcher_CaptionsDisabled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>no caption tracks here</html>`))
	}))
	t.Cleanup(srv.Close)

	fetcher := NewYouTubeFetcher(WithBaseURL(srv.URL))
	_, err := fetcher.FetchCaptions(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoCaptions))
}
