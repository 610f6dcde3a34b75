package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataClient_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("v"))
		_, _ = w.Write([]byte(`<html><head>
			<meta property="og:title" content="Never Gonna Give You Up">
			<span itemprop="author"><link itemprop="name" content="Rick Astley"></span>
		</head></html>`))
	}))
	t.Cleanup(srv.Close)

	client := NewMetadataClient(WithMetadataBaseURL(srv.URL))
	meta, err := client.Fetch(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "Never Gonna Give You Up", meta.Title)
	assert.Equal(t, "Rick Astley", meta.Channel)
}

func TestMetadataClient_MissingTags(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>bare page</title></head></html>`))
	}))
	t.Cleanup(srv.Close)

	client := NewMetadataClient(WithMetadataBaseURL(srv.URL))
	meta, err := client.Fetch(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Empty(t, meta.Title)
	assert.Empty(t, meta.Channel)
}
