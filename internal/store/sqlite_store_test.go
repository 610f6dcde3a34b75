package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MimeLyc/tubescribe/internal/transcript"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "tubescribe.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testDraft() transcript.Draft {
	title := "Never Gonna Give You Up"
	return transcript.Draft{
		SourceURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		VideoID:   "dQw4w9WgXcQ",
		Title:     &title,
		Language:  "en",
		Segments: []transcript.Segment{
			{Text: "We're no strangers to love.", Start: 0, Duration: 3.5},
			{Text: "You know the rules and so do I.", Start: 3.5, Duration: 3.7},
		},
	}
}

func TestSQLiteStore_InsertAndFind(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	record, err := store.Insert(ctx, testDraft())
	require.NoError(t, err)
	require.NotEmpty(t, record.ID)
	require.False(t, record.CreatedAt.IsZero())

	byURL, err := store.FindByURL(ctx, record.SourceURL)
	require.NoError(t, err)
	require.NotNil(t, byURL)
	assert.Equal(t, record.ID, byURL.ID)
	assert.Equal(t, record.Segments, byURL.Segments)
	require.NotNil(t, byURL.Title)
	assert.Equal(t, "Never Gonna Give You Up", *byURL.Title)
	assert.Nil(t, byURL.Channel)
	assert.Equal(t, "en", byURL.Language)

	byVideoID, err := store.FindByVideoID(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)
	require.NotNil(t, byVideoID)
	assert.Equal(t, record.ID, byVideoID.ID)
}

func TestSQLiteStore_FindMiss(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	record, err := store.FindByVideoID(ctx, "missing-id0")
	require.NoError(t, err)
	assert.Nil(t, record)

	record, err = store.FindByURL(ctx, "https://youtu.be/missing-id0")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestSQLiteStore_DuplicateURL(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Insert(ctx, testDraft())
	require.NoError(t, err)

	_, err = store.Insert(ctx, testDraft())
	require.ErrorIs(t, err, ErrDuplicateURL)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSQLiteStore_RejectsEmptySegments(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	draft := testDraft()
	draft.Segments = nil
	_, err := store.Insert(context.Background(), draft)
	require.Error(t, err)
}

func TestSQLiteStore_MigrationsAreIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tubescribe.db")

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	_, err = first.Insert(context.Background(), testDraft())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Reopening applies no migration twice and keeps existing data.
	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	record, err := second.FindByVideoID(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	require.NotNil(t, record)
}
