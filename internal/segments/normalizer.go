package segments

import (
	"errors"
	"regexp"
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"

	"github.com/MimeLyc/tubescribe/internal/captions"
	"github.com/MimeLyc/tubescribe/internal/transcript"
)

// ErrEmpty reports that normalization produced zero segments. A transcript
// with no segments is never persisted.
var ErrEmpty = errors.New("transcript has no segments")

// fallbackStride is the synthetic per-sentence timing used for transcribed
// text. The fallback path has no real timing information; every sentence is
// assigned a fixed 5-second slot purely so the segments remain ordered and
// seekable. Not frame-accurate.
const fallbackStride = 5.0

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]*`)

// FromCaptions converts raw caption items into transcript segments, moving
// timing from the upstream's native resolution to seconds and trimming text.
func FromCaptions(items []captions.Caption) ([]transcript.Segment, error) {
	segs := make([]transcript.Segment, 0, len(items))
	for _, item := range items {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}
		segs = append(segs, transcript.Segment{
			Text:     text,
			Start:    item.Start.Seconds(),
			Duration: item.Duration.Seconds(),
		})
	}
	if len(segs) == 0 {
		return nil, ErrEmpty
	}
	return segs, nil
}

// FromText converts a transcribed text block into segments by splitting on
// sentence-terminal punctuation and assigning each sentence a synthetic
// 5-second start stride and duration.
func FromText(text string) ([]transcript.Segment, error) {
	segs := make([]transcript.Segment, 0)
	for _, sentence := range sentencePattern.FindAllString(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		segs = append(segs, transcript.Segment{
			Text:     sentence,
			Start:    float64(len(segs)) * fallbackStride,
			Duration: fallbackStride,
		})
	}
	if len(segs) == 0 {
		return nil, ErrEmpty
	}
	return segs, nil
}

// DetectLanguage reports the dominant language of the segment texts as an
// ISO 639-1 code, or "" when detection is inconclusive.
func DetectLanguage(segs []transcript.Segment) string {
	if len(segs) == 0 {
		return ""
	}

	counts := make(map[string]int)
	for _, seg := range segs {
		iso := whatlanggo.DetectLang(seg.Text).Iso6391()
		if iso == "" {
			continue
		}
		counts[iso]++
	}

	var topLang string
	var topCount int
	for lang, count := range counts {
		if count > topCount {
			topLang = lang
			topCount = count
		}
	}
	if topLang == "" {
		return ""
	}

	tag := language.All.Make(topLang)
	if tag == language.Und {
		return ""
	}
	return tag.String()
}
