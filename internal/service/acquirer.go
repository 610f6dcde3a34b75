package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MimeLyc/tubescribe/internal/captions"
	"github.com/MimeLyc/tubescribe/internal/segments"
	"github.com/MimeLyc/tubescribe/internal/speech"
	"github.com/MimeLyc/tubescribe/internal/store"
	"github.com/MimeLyc/tubescribe/internal/transcript"
	"github.com/MimeLyc/tubescribe/internal/youtube"
	"github.com/MimeLyc/tubescribe/pkg/log"
)

// Store is the cache surface the acquirer needs: lookups plus append-only
// insert.
type Store interface {
	FindByURL(ctx context.Context, sourceURL string) (*transcript.Record, error)
	FindByVideoID(ctx context.Context, videoID string) (*transcript.Record, error)
	Insert(ctx context.Context, draft transcript.Draft) (*transcript.Record, error)
}

// AudioDownloader obtains the raw audio track of a video.
type AudioDownloader interface {
	Download(ctx context.Context, videoID string) ([]byte, error)
}

// MetadataFetcher retrieves best-effort title/channel information.
type MetadataFetcher interface {
	Fetch(ctx context.Context, videoID string) (youtube.Metadata, error)
}

// Acquirer runs the subtitle-first acquisition pipeline: cache check,
// caption attempt, audio transcription fallback, normalization, persistence.
// A given video is transcribed at most once; later requests hit the cache.
type Acquirer struct {
	store    Store
	captions captions.Fetcher
	audio    AudioDownloader
	speech   speech.Transcriber
	metadata MetadataFetcher
}

type AcquirerOption func(*Acquirer)

// WithSpeech enables the audio transcription fallback. Without it, videos
// lacking captions fail with a transcription error.
func WithSpeech(audio AudioDownloader, transcriber speech.Transcriber) AcquirerOption {
	return func(a *Acquirer) {
		a.audio = audio
		a.speech = transcriber
	}
}

// WithMetadata enables best-effort title/channel lookup on new records.
func WithMetadata(fetcher MetadataFetcher) AcquirerOption {
	return func(a *Acquirer) {
		a.metadata = fetcher
	}
}

func NewAcquirer(store Store, captionFetcher captions.Fetcher, opts ...AcquirerOption) *Acquirer {
	a := &Acquirer{
		store:    store,
		captions: captionFetcher,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Acquire resolves a video URL to its transcript record, creating it on
// first sight. Nothing is persisted unless a complete, non-empty segment
// sequence is in hand.
func (a *Acquirer) Acquire(ctx context.Context, sourceURL string) (*transcript.Record, error) {
	videoID, ok := youtube.ExtractVideoID(sourceURL)
	if !ok {
		return nil, NewError(KindInvalidURL, "not a recognized YouTube URL")
	}

	cached, err := a.store.FindByVideoID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("cache lookup: %w", err)
	}
	if cached != nil {
		log.Debug("Cache hit for video %s", videoID)
		return cached, nil
	}

	segs, language, err := a.fetchSegments(ctx, videoID)
	if err != nil {
		return nil, err
	}

	draft := transcript.Draft{
		SourceURL: sourceURL,
		VideoID:   videoID,
		Language:  language,
		Segments:  segs,
	}
	a.attachMetadata(ctx, videoID, &draft)

	record, err := a.store.Insert(ctx, draft)
	if errors.Is(err, store.ErrDuplicateURL) {
		// A concurrent request won the insert race. The stored record is
		// equivalent to ours; return it instead of surfacing the conflict.
		log.Info("Lost insert race for %s, re-reading", videoID)
		existing, readErr := a.store.FindByURL(ctx, sourceURL)
		if readErr != nil {
			return nil, fmt.Errorf("re-read after duplicate insert: %w", readErr)
		}
		if existing == nil {
			return nil, WrapError(KindDuplicateRecord, "duplicate insert but no record found on re-read", err)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist transcript: %w", err)
	}

	log.Info("Acquired transcript for %s (%d segments)", videoID, len(record.Segments))
	return record, nil
}

// fetchSegments tries captions first and falls back to audio transcription.
func (a *Acquirer) fetchSegments(ctx context.Context, videoID string) ([]transcript.Segment, string, error) {
	items, err := a.captions.FetchCaptions(ctx, videoID)
	if err == nil && len(items) > 0 {
		segs, normErr := segments.FromCaptions(items)
		if normErr != nil {
			return nil, "", WrapError(KindEmptyTranscript, "captions contained no usable text", normErr)
		}
		return segs, segments.DetectLanguage(segs), nil
	}

	// Every caption failure drives the fallback; only the reason differs in
	// the log.
	if err != nil && !errors.Is(err, captions.ErrNoCaptions) {
		log.Warn("Caption fetch for %s failed, falling back to transcription: %v", videoID, err)
	} else {
		log.Info("No captions for %s, falling back to transcription", videoID)
	}

	return a.transcribeAudio(ctx, videoID)
}

func (a *Acquirer) transcribeAudio(ctx context.Context, videoID string) ([]transcript.Segment, string, error) {
	if a.speech == nil || a.audio == nil {
		return nil, "", NewError(KindTranscriptionFailed,
			"this video has no captions and no transcription provider is configured")
	}

	audioData, err := a.audio.Download(ctx, videoID)
	if err != nil {
		return nil, "", WrapError(KindTranscriptionFailed, "audio download failed", err)
	}

	result, err := a.speech.Transcribe(ctx, audioData, videoID+".mp3")
	if err != nil {
		return nil, "", WrapError(KindTranscriptionFailed, "speech-to-text failed", err)
	}

	segs, err := segments.FromText(result.Text)
	if err != nil {
		return nil, "", WrapError(KindEmptyTranscript, "transcription produced no text", err)
	}

	language := result.Language
	if language == "" {
		language = segments.DetectLanguage(segs)
	}
	return segs, language, nil
}

func (a *Acquirer) attachMetadata(ctx context.Context, videoID string, draft *transcript.Draft) {
	if a.metadata == nil {
		return
	}
	meta, err := a.metadata.Fetch(ctx, videoID)
	if err != nil {
		log.Debug("Metadata fetch for %s failed: %v", videoID, err)
		return
	}
	if meta.Title != "" {
		draft.Title = &meta.Title
	}
	if meta.Channel != "" {
		draft.Channel = &meta.Channel
	}
}
