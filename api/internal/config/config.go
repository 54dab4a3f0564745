package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	BaseURL  string
	LogLevel string
	LogJSON  bool

	// GeminiAPIKey may be empty; the engine reports it on the first call.
	GeminiAPIKey     string
	GeminiBaseURL    string
	TextModel        string
	ImageModel       string
	ImageAspectRatio string
	Temperature      float32

	GoogleClientID     string
	GoogleClientSecret string
	DriveFolderID      string
	UploadResetDelay   time.Duration
	AuthorizeTimeout   time.Duration

	SessionTTL time.Duration

	BannerURL     string
	FooterLogoURL string

	TelegramBotToken string
	WebhookURL       string
}

func mustEnv(k string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	// bare integers are seconds
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	log.WithField("key", k).WithField("value", v).Warn("bad duration, using default")
	return def
}

func getFloat32(k string, def float32) float32 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		log.WithField("key", k).WithField("value", v).Warn("bad float, using default")
		return def
	}
	return float32(f)
}

// Load reads the process environment, after merging an optional .env file.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("cannot read .env")
	}

	port := getEnv("PORT", "8000")
	return &Config{
		Port:     port,
		BaseURL:  strings.TrimRight(getEnv("BASE_URL", "http://localhost:"+port), "/"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  strings.EqualFold(getEnv("LOG_FORMAT", "text"), "json"),

		GeminiAPIKey:     getEnv("API_KEY", getEnv("GEMINI_API_KEY", "")),
		GeminiBaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		TextModel:        getEnv("GEMINI_TEXT_MODEL", "gemini-3-flash-preview"),
		ImageModel:       getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		ImageAspectRatio: getEnv("IMAGE_ASPECT_RATIO", "1:1"),
		Temperature:      getFloat32("GEMINI_TEMPERATURE", 0.7),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		DriveFolderID:      getEnv("DRIVE_FOLDER_ID", ""),
		UploadResetDelay:   getDuration("UPLOAD_RESET_DELAY", 5*time.Second),
		AuthorizeTimeout:   getDuration("AUTHORIZE_TIMEOUT", 5*time.Minute),

		SessionTTL: getDuration("SESSION_TTL", 2*time.Hour),

		BannerURL:     getEnv("BANNER_URL", "https://i.ibb.co/4g4r5kVh/Kakao-Talk-20251229-194547124-01.jpg"),
		FooterLogoURL: getEnv("FOOTER_LOGO_URL", "https://i.ibb.co/4g4r5kVh/Kakao-Talk-20251229-194547124-01.jpg"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),
	}
}

// LoadBot is Load plus the settings only the Telegram front end needs.
func LoadBot() *Config {
	cfg := Load()
	cfg.TelegramBotToken = mustEnv("TELEGRAM_BOT_TOKEN")
	return cfg
}

// RedirectURL is the OAuth2 callback registered with Google.
func (c *Config) RedirectURL() string {
	return getEnv("OAUTH_REDIRECT_URL", c.BaseURL+"/oauth2/callback")
}

// FolderURL is the shared link shown next to the save button.
func (c *Config) FolderURL() string {
	if c.DriveFolderID == "" {
		return "https://drive.google.com/drive/my-drive"
	}
	return "https://drive.google.com/drive/folders/" + c.DriveFolderID + "?usp=sharing"
}
