package speech

import "context"

// Result is the outcome of one transcription call: a single block of text
// and, when the provider reports it, the detected language code.
type Result struct {
	Text     string
	Language string
}

// Transcriber converts a raw audio buffer into text. Implementations wrap
// interchangeable upstream providers; which one is active is a configuration
// choice, not a code branch.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (Result, error)
}
