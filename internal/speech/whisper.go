package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// WhisperClient submits audio to an OpenAI-compatible /audio/transcriptions
// endpoint (Groq and OpenAI both expose one).
type WhisperClient struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewWhisperClient(apiURL, apiKey, model string, timeout time.Duration) *WhisperClient {
	return &WhisperClient{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type whisperResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Error    *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *WhisperClient) Transcribe(ctx context.Context, audio []byte, filename string) (Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return Result{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return Result{}, fmt.Errorf("write audio payload: %w", err)
	}
	if err := writer.WriteField("model", c.model); err != nil {
		return Result{}, fmt.Errorf("write model field: %w", err)
	}
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return Result{}, fmt.Errorf("write response_format field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Result{}, fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/audio/transcriptions", &body)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read transcription response: %w", err)
	}

	var parsed whisperResponse
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return Result{}, fmt.Errorf("parse transcription response: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return Result{}, fmt.Errorf("transcription API error: %s", parsed.Error.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("transcription API returned status %d", resp.StatusCode)
	}

	return Result{Text: parsed.Text, Language: parsed.Language}, nil
}
