package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const multimodalPrompt = "Transcribe the speech in this audio recording verbatim. Output only the spoken text, with no commentary."

// MultimodalClient transcribes audio by handing it to a general multimodal
// chat model as an input_audio content part. Slower and pricier than a
// dedicated speech API, but works against any provider that accepts audio in
// chat completions.
type MultimodalClient struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewMultimodalClient(apiURL, apiKey, model string, timeout time.Duration) *MultimodalClient {
	return &MultimodalClient{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type contentPart struct {
	Type       string      `json:"type"`
	Text       string      `json:"text,omitempty"`
	InputAudio *inputAudio `json:"input_audio,omitempty"`
}

type inputAudio struct {
	Data   string `json:"data"`
	Format string `json:"format"`
}

type multimodalMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type multimodalRequest struct {
	Model    string              `json:"model"`
	Messages []multimodalMessage `json:"messages"`
}

type multimodalResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *MultimodalClient) Transcribe(ctx context.Context, audio []byte, filename string) (Result, error) {
	request := multimodalRequest{
		Model: c.model,
		Messages: []multimodalMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: multimodalPrompt},
					{Type: "input_audio", InputAudio: &inputAudio{
						Data:   base64.StdEncoding.EncodeToString(audio),
						Format: audioFormat(filename),
					}},
				},
			},
		},
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read transcription response: %w", err)
	}

	var parsed multimodalResponse
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return Result{}, fmt.Errorf("parse transcription response: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return Result{}, fmt.Errorf("transcription API error: %s", parsed.Error.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("transcription API returned status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return Result{}, fmt.Errorf("transcription API returned no choices")
	}

	return Result{Text: parsed.Choices[0].Message.Content}, nil
}

func audioFormat(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 && idx < len(filename)-1 {
		return filename[idx+1:]
	}
	return "mp3"
}
