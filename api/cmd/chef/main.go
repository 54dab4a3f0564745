package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/apex/log"

	"recipe-chef/api/internal/config"
	"recipe-chef/api/internal/gdrive"
	"recipe-chef/api/internal/gemini"
	"recipe-chef/api/internal/handle"
	"recipe-chef/api/internal/httpserver"
	"recipe-chef/api/internal/logging"
	"recipe-chef/api/internal/recipe"
	"recipe-chef/api/internal/session"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogJSON)

	if cfg.GeminiAPIKey == "" {
		log.Warn("API_KEY is empty; recipe requests will fail")
	}

	eng := gemini.New(cfg.GeminiAPIKey, cfg.TextModel, cfg.ImageModel)
	eng.BaseURL = cfg.GeminiBaseURL
	eng.AspectRatio = cfg.ImageAspectRatio
	eng.Temperature = cfg.Temperature

	sessions := session.NewStore(cfg.SessionTTL, cfg.UploadResetDelay, cfg.AuthorizeTimeout)
	if err := sessions.StartSweeper("@every 10m"); err != nil {
		log.WithError(err).Fatal("session sweeper")
	}
	defer sessions.StopSweeper()

	oauth := gdrive.NewOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.RedirectURL())
	if !oauth.Enabled() {
		log.Warn("GOOGLE_CLIENT_ID is empty; saving to Drive is disabled")
	}

	h := handle.New(
		sessions,
		recipe.NewService(eng),
		oauth,
		gdrive.NewSaver(gdrive.NewUploader(cfg.DriveFolderID)),
		cfg.FolderURL(),
	)
	h.SecureCookie = strings.HasPrefix(cfg.BaseURL, "https://")

	router := httpserver.NewRouter(h, httpserver.Page{
		BannerURL:     cfg.BannerURL,
		FooterLogoURL: cfg.FooterLogoURL,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpserver.Start(ctx, ":"+cfg.Port, router); err != nil {
		log.WithError(err).Fatal("http server")
	}
	log.Info("stopped")
}
