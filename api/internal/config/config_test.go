package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T, keys ...string) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "PORT", "BASE_URL", "API_KEY", "GEMINI_API_KEY", "GEMINI_TEXT_MODEL",
		"GEMINI_IMAGE_MODEL", "DRIVE_FOLDER_ID", "UPLOAD_RESET_DELAY", "AUTHORIZE_TIMEOUT",
		"OAUTH_REDIRECT_URL", "LOG_FORMAT", "GEMINI_TEMPERATURE")

	cfg := Load()
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-3-flash-preview", cfg.TextModel)
	assert.Equal(t, "gemini-2.5-flash-image", cfg.ImageModel)
	assert.Equal(t, float32(0.7), cfg.Temperature)
	assert.Equal(t, 5*time.Second, cfg.UploadResetDelay)
	assert.Equal(t, 5*time.Minute, cfg.AuthorizeTimeout)
	assert.False(t, cfg.LogJSON)
	assert.Equal(t, "http://localhost:8000/oauth2/callback", cfg.RedirectURL())
	assert.Equal(t, "https://drive.google.com/drive/my-drive", cfg.FolderURL())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t, "API_KEY", "OAUTH_REDIRECT_URL")
	t.Setenv("GEMINI_API_KEY", "k-2")
	t.Setenv("BASE_URL", "https://chef.example.com/")
	t.Setenv("DRIVE_FOLDER_ID", "folder-9")
	t.Setenv("UPLOAD_RESET_DELAY", "2")
	t.Setenv("AUTHORIZE_TIMEOUT", "90s")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg := Load()
	assert.Equal(t, "k-2", cfg.GeminiAPIKey)
	assert.Equal(t, "https://chef.example.com", cfg.BaseURL)
	assert.Equal(t, "https://chef.example.com/oauth2/callback", cfg.RedirectURL())
	assert.Equal(t, "https://drive.google.com/drive/folders/folder-9?usp=sharing", cfg.FolderURL())
	assert.Equal(t, 2*time.Second, cfg.UploadResetDelay)
	assert.Equal(t, 90*time.Second, cfg.AuthorizeTimeout)
	assert.True(t, cfg.LogJSON)

	t.Setenv("API_KEY", "k-1")
	assert.Equal(t, "k-1", Load().GeminiAPIKey)
}

func TestBadValuesFallBack(t *testing.T) {
	t.Setenv("UPLOAD_RESET_DELAY", "soon")
	t.Setenv("GEMINI_TEMPERATURE", "warm")

	assert.Equal(t, 5*time.Second, getDuration("UPLOAD_RESET_DELAY", 5*time.Second))
	assert.Equal(t, float32(0.7), getFloat32("GEMINI_TEMPERATURE", 0.7))
}
