package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration, loaded from environment
// variables with sensible defaults.
//
// Server:
// - HTTP_ADDR: listen address (default ":8080")
// - DB_PATH: sqlite database path (default "data/tubescribe.db")
// - LOG_LEVEL: debug|info|warn|error (default "info")
// - LOG_FILE: optional log file path; empty logs to stdout
// - STATS_CRON_EXPR: schedule for the cache stats report (default "@hourly")
//
// Chat completion (any OpenAI-compatible provider):
// - LLM_API_KEY: API key; when unset, /chat and /tools/generate respond 503
// - LLM_API_URL: endpoint (default "https://api.groq.com/openai/v1")
// - LLM_MODEL: model name (default "llama3-8b-8192")
// - LLM_TIMEOUT: request timeout in seconds (default 60)
//
// Captions:
// - CAPTION_LANGUAGE: preferred caption language code (default "en")
//
// Transcription fallback:
// - SPEECH_PROVIDER: "whisper" or "multimodal" (default "whisper")
// - SPEECH_API_KEY: API key; when unset, the fallback is unavailable and
//   caption-less videos fail with a transcription error
// - SPEECH_API_URL: endpoint (default "https://api.groq.com/openai/v1")
// - SPEECH_MODEL: model name (default "whisper-large-v3")
// - SPEECH_TIMEOUT: request timeout in seconds (default 120)
// - YTDLP_PATH: yt-dlp binary (default "yt-dlp")
// - AUDIO_TIMEOUT: audio download wall-clock bound in seconds (default 120)
type Config struct {
	Server ServerConfig `json:"server"`
	LLM    LLMConfig    `json:"llm"`
	Speech SpeechConfig `json:"speech"`
}

type ServerConfig struct {
	HTTPAddr        string `json:"http_addr"`
	DBPath          string `json:"db_path"`
	LogLevel        string `json:"log_level"`
	LogFile         string `json:"log_file"`
	StatsCronExpr   string `json:"stats_cron_expr"`
	CaptionLanguage string `json:"caption_language"`
}

// LLMConfig configures the chat-completion provider.
type LLMConfig struct {
	APIKey      string  `json:"api_key"`
	APIURL      string  `json:"api_url"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Timeout     int     `json:"timeout"`
}

// Enabled reports whether the chat endpoints can be served.
func (c LLMConfig) Enabled() bool {
	return c.APIKey != ""
}

// SpeechConfig configures the transcription fallback.
type SpeechConfig struct {
	Provider     string `json:"provider"`
	APIKey       string `json:"api_key"`
	APIURL       string `json:"api_url"`
	Model        string `json:"model"`
	Timeout      int    `json:"timeout"`
	YtdlpPath    string `json:"ytdlp_path"`
	AudioTimeout int    `json:"audio_timeout"`
}

// Enabled reports whether the audio transcription fallback can run.
func (c SpeechConfig) Enabled() bool {
	return c.APIKey != ""
}

func (c SpeechConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c SpeechConfig) DownloadTimeout() time.Duration {
	return time.Duration(c.AudioTimeout) * time.Second
}

// New creates a Config from the environment. Missing provider credentials
// degrade the respective capability instead of failing startup.
func New() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			HTTPAddr:        getEnvString("HTTP_ADDR", ":8080"),
			DBPath:          getEnvString("DB_PATH", "data/tubescribe.db"),
			LogLevel:        getEnvString("LOG_LEVEL", "info"),
			LogFile:         getEnvString("LOG_FILE", ""),
			StatsCronExpr:   getEnvString("STATS_CRON_EXPR", "@hourly"),
			CaptionLanguage: getEnvString("CAPTION_LANGUAGE", "en"),
		},
		LLM: LLMConfig{
			APIKey:      getEnvString("LLM_API_KEY", ""),
			APIURL:      getEnvString("LLM_API_URL", "https://api.groq.com/openai/v1"),
			Model:       getEnvString("LLM_MODEL", "llama3-8b-8192"),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 2048),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0.7),
			Timeout:     getEnvInt("LLM_TIMEOUT", 60),
		},
		Speech: SpeechConfig{
			Provider:     getEnvString("SPEECH_PROVIDER", "whisper"),
			APIKey:       getEnvString("SPEECH_API_KEY", ""),
			APIURL:       getEnvString("SPEECH_API_URL", "https://api.groq.com/openai/v1"),
			Model:        getEnvString("SPEECH_MODEL", "whisper-large-v3"),
			Timeout:      getEnvInt("SPEECH_TIMEOUT", 120),
			YtdlpPath:    getEnvString("YTDLP_PATH", "yt-dlp"),
			AudioTimeout: getEnvInt("AUDIO_TIMEOUT", 120),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.Server.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	switch c.Speech.Provider {
	case "whisper", "multimodal":
	default:
		return fmt.Errorf("SPEECH_PROVIDER must be \"whisper\" or \"multimodal\", got %q", c.Speech.Provider)
	}
	return nil
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat gets a float value from environment variables with default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
