package httpapi

import (
	"time"

	"github.com/MimeLyc/tubescribe/internal/transcript"
)

// demoRecord returns the bundled demo transcript the UI can fall back to
// when acquisition fails for a user's video.
func demoRecord() *transcript.Record {
	title := "The Future of AI: How to Prepare Your Workflow"
	channel := "Tech Insights"
	return &transcript.Record{
		ID:        "demo-123",
		SourceURL: "https://youtube.com/watch?v=demo",
		VideoID:   "dQw4w9WgXcQ",
		Title:     &title,
		Channel:   &channel,
		Language:  "en",
		Segments: []transcript.Segment{
			{Text: "Welcome back to the channel.", Start: 0, Duration: 3},
			{Text: "Today we're going to talk about the future of artificial intelligence and how it's reshaping our daily workflows.", Start: 3, Duration: 8},
			{Text: "Many people worry that AI is going to replace jobs, but I think the more interesting perspective is how it will augment human creativity.", Start: 11, Duration: 10},
			{Text: "Let's look at a few examples.", Start: 21, Duration: 3},
			{Text: "First, coding. Copilots aren't writing the whole app for you, but they are removing the tedious boilerplate.", Start: 24, Duration: 8},
			{Text: "Second, design. Tools like Midjourney allow us to iterate on concepts in seconds rather than hours.", Start: 32, Duration: 8},
			{Text: "But the real unlock comes when you combine these tools.", Start: 40, Duration: 5},
			{Text: "Imagine a workflow where you sketch an idea, AI generates the assets, and another AI writes the glue code.", Start: 45, Duration: 10},
			{Text: "We are moving from a world of 'creation' to a world of 'curation'. The skill of the future is taste.", Start: 55, Duration: 10},
			{Text: "So, how do you prepare for this? Start by learning the limitations of these models.", Start: 65, Duration: 8},
			{Text: "They hallucinate. They struggle with context.", Start: 73, Duration: 5},
			{Text: "In this video, I'll show you my personal stack for AI-assisted productivity.", Start: 78, Duration: 8},
		},
		CreatedAt: time.Now().UTC(),
	}
}
