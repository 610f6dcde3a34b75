package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/MimeLyc/tubescribe/internal/llm"
	"github.com/MimeLyc/tubescribe/internal/service"
	"github.com/MimeLyc/tubescribe/pkg/log"
)

type transcribeRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req transcribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	record, err := s.acquirer.Acquire(r.Context(), req.URL)
	if err != nil {
		log.Error("Transcribe failed for %s: %v", req.URL, err)
		writeError(w, statusForAcquireError(err), acquireErrorMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func statusForAcquireError(err error) int {
	switch service.KindOf(err) {
	case service.KindInvalidURL:
		return http.StatusBadRequest
	case service.KindTranscriptionFailed, service.KindEmptyTranscript:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// acquireErrorMessage keeps the user-facing text actionable: on a failed
// acquisition the UI suggests trying another video or the bundled demo.
func acquireErrorMessage(err error) string {
	switch service.KindOf(err) {
	case service.KindInvalidURL:
		return "Invalid YouTube URL"
	case service.KindTranscriptionFailed:
		return "Could not transcribe this video. Please try another video with captions enabled, or load the demo transcript."
	case service.KindEmptyTranscript:
		return "This video produced an empty transcript. Please try another video."
	default:
		return "Failed to transcribe video"
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages          []chatMessage `json:"messages"`
	TranscriptContext string        `json:"transcriptContext"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.completer == nil {
		writeError(w, http.StatusServiceUnavailable, "chat is not configured")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "Messages array is required")
		return
	}

	messages := make([]llm.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	opts := llm.NewChatCompletionOptions().
		WithSystemPrompt(chatSystemPrompt(req.TranscriptContext)).
		WithTemperature(0.7).
		WithMaxTokens(1024)

	content, err := s.complete(r, messages, opts)
	if err != nil {
		log.Error("Chat completion failed: %v", err)
		writeError(w, http.StatusBadGateway, "Failed to get chat response")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"content": content})
}

type toolsGenerateRequest struct {
	Type              string `json:"type"`
	TranscriptContext string `json:"transcriptContext"`
}

func (s *Server) handleToolsGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.completer == nil {
		writeError(w, http.StatusServiceUnavailable, "content generation is not configured")
		return
	}

	var req toolsGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.Type == "" || req.TranscriptContext == "" {
		writeError(w, http.StatusBadRequest, "Type and transcript context are required")
		return
	}

	systemPrompt, ok := toolPrompts[req.Type]
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid type")
		return
	}

	messages := []llm.Message{{Role: "user", Content: req.TranscriptContext}}
	opts := llm.NewChatCompletionOptions().
		WithSystemPrompt(systemPrompt).
		WithTemperature(0.8).
		WithMaxTokens(2048)

	content, err := s.complete(r, messages, opts)
	if err != nil {
		log.Error("Content generation failed (type=%s): %v", req.Type, err)
		writeError(w, http.StatusBadGateway, "Failed to generate content")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"content": content})
}

func (s *Server) complete(r *http.Request, messages []llm.Message, opts *llm.ChatCompletionOptions) (string, error) {
	resp, err := s.completer.ChatCompletion(r.Context(), messages, opts)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "Sorry, I couldn't generate a response.", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *Server) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.records == nil {
		writeError(w, http.StatusNotImplemented, "transcript store is not configured")
		return
	}

	videoID := strings.TrimPrefix(r.URL.Path, "/api/transcripts/")
	videoID = strings.TrimSuffix(videoID, "/")
	if decoded, err := url.PathUnescape(videoID); err == nil {
		videoID = decoded
	}
	if videoID == "" {
		writeError(w, http.StatusBadRequest, "missing video id")
		return
	}

	record, err := s.records.FindByVideoID(r.Context(), videoID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "transcript not found")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, demoRecord())
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}
