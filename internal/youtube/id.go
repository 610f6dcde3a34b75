package youtube

import "regexp"

// Matches the canonical watch form, the short youtu.be form, and the
// embed/v/e player forms. The capture group is the 11-character video id.
var videoIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// ExtractVideoID extracts the video id from any recognized YouTube URL
// shape. The second return value reports whether the input was recognized.
func ExtractVideoID(rawURL string) (string, bool) {
	match := videoIDPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return "", false
	}
	return match[1], true
}
