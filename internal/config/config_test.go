package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, "data/tubescribe.db", cfg.Server.DBPath)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.APIURL)
	assert.Equal(t, "llama3-8b-8192", cfg.LLM.Model)
	assert.Equal(t, "whisper", cfg.Speech.Provider)
	assert.Equal(t, "whisper-large-v3", cfg.Speech.Model)

	// Missing credentials degrade capabilities, they never fail startup.
	assert.False(t, cfg.LLM.Enabled())
	assert.False(t, cfg.Speech.Enabled())
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("LLM_API_KEY", "gsk_test")
	t.Setenv("SPEECH_PROVIDER", "multimodal")
	t.Setenv("AUDIO_TIMEOUT", "30")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.HTTPAddr)
	assert.True(t, cfg.LLM.Enabled())
	assert.Equal(t, "multimodal", cfg.Speech.Provider)
	assert.Equal(t, 30.0, cfg.Speech.DownloadTimeout().Seconds())
}

func TestNew_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("SPEECH_PROVIDER", "carrier-pigeon")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPEECH_PROVIDER")
}
