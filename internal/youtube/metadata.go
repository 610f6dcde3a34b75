package youtube

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Metadata carries the optional descriptive fields of a video. Either field
// may be empty when the watch page does not expose it.
type Metadata struct {
	Title   string
	Channel string
}

// MetadataClient scrapes title and channel name from the public watch page.
type MetadataClient struct {
	httpClient *http.Client
	baseURL    string
}

type MetadataOption func(*MetadataClient)

// WithMetadataBaseURL overrides the watch page host, used by tests.
func WithMetadataBaseURL(baseURL string) MetadataOption {
	return func(c *MetadataClient) {
		c.baseURL = baseURL
	}
}

func NewMetadataClient(opts ...MetadataOption) *MetadataClient {
	c := &MetadataClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    "https://www.youtube.com",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns best-effort metadata for a video. Callers treat failures as
// "metadata unavailable", never as a fatal condition.
func (c *MetadataClient) Fetch(ctx context.Context, videoID string) (Metadata, error) {
	url := fmt.Sprintf("%s/watch?v=%s", c.baseURL, videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Metadata{}, err
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("fetch watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Metadata{}, fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Metadata{}, fmt.Errorf("parse watch page: %w", err)
	}

	var meta Metadata
	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		meta.Title = title
	}
	if channel, ok := doc.Find(`span[itemprop="author"] link[itemprop="name"]`).Attr("content"); ok {
		meta.Channel = channel
	}
	if meta.Channel == "" {
		if channel, ok := doc.Find(`link[itemprop="name"]`).Attr("content"); ok {
			meta.Channel = channel
		}
	}
	return meta, nil
}
