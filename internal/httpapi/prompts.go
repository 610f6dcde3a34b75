package httpapi

import "fmt"

// chatSystemPrompt embeds the transcript into the system instruction sent
// alongside the user's conversation.
func chatSystemPrompt(transcriptContext string) string {
	return fmt.Sprintf(`You are a helpful AI assistant analyzing a video transcript.
Here is the transcript of the video:
%q

Answer the user's questions based primarily on this transcript. If the answer is not in the transcript, say so.`, transcriptContext)
}

// toolPrompts maps a generation type to its fixed instruction template.
var toolPrompts = map[string]string{
	"blog":         "Convert the following video transcript into a well-structured, SEO-friendly blog post with headings, paragraphs, and a conclusion:",
	"social":       "Create an engaging Twitter/X thread (10-15 tweets) from this video transcript. Make it viral-worthy with hooks and key insights:",
	"action-items": "Extract all actionable items, tasks, and recommendations from this video transcript as a numbered checklist:",
	"quiz":         "Create a 10-question multiple-choice quiz based on this video transcript. Include 4 options per question and mark the correct answer:",
	"flashcards":   "Generate 15 Anki-style flashcards from this video transcript. Format as 'Q: [question] | A: [answer]':",
}
