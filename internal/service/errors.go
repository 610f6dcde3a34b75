package service

import (
	"errors"
	"fmt"
)

// Kind classifies acquisition and chat failures. Expected control flow
// (no captions, duplicate insert) and genuine faults carry distinct kinds so
// callers never have to inspect message text.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidURL: no video id could be extracted from the input.
	KindInvalidURL
	// KindNoSubtitles: the video has no usable captions. Internal only; the
	// pipeline reacts by falling back to audio transcription.
	KindNoSubtitles
	// KindTranscriptionFailed: the audio download or speech-to-text call
	// failed, or no transcription provider is configured.
	KindTranscriptionFailed
	// KindEmptyTranscript: normalization produced zero segments.
	KindEmptyTranscript
	// KindDuplicateRecord: a concurrent request persisted the same URL first.
	// Recovered internally by re-reading; never surfaces to callers.
	KindDuplicateRecord
	// KindUpstreamChat: the chat-completion provider failed or is missing.
	KindUpstreamChat
)

func (k Kind) String() string {
	switch k {
	case KindInvalidURL:
		return "InvalidUrl"
	case KindNoSubtitles:
		return "NoSubtitles"
	case KindTranscriptionFailed:
		return "TranscriptionFailed"
	case KindEmptyTranscript:
		return "EmptyTranscript"
	case KindDuplicateRecord:
		return "DuplicateRecord"
	case KindUpstreamChat:
		return "UpstreamChat"
	default:
		return "Unknown"
	}
}

// Error is the typed error of the acquisition pipeline.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func WrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf extracts the kind from an error chain, or KindUnknown.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
