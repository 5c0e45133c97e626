package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/haytac/emotions/internal/config"
	"github.com/haytac/emotions/internal/emotion"
	"github.com/haytac/emotions/internal/metrics"
	"github.com/haytac/emotions/internal/server"
	"github.com/rs/zerolog/log"
)

// Application holds all dependencies of the API service.
type Application struct {
	Config     *config.AppConfig
	Translator *emotion.Translator
	API        *server.Server
}

// NewApplication wires the translator and HTTP API from cfg.
func NewApplication(cfg *config.AppConfig) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil configuration")
	}
	if cfg.ListenAddr == "" {
		return nil, fmt.Errorf("listen_addr is not configured")
	}

	translator := emotion.Default()
	if cfg.Tone != translator.Tone() {
		translator = emotion.New(emotion.WithTone(cfg.Tone))
	}

	api := server.New(translator, server.Options{
		AssetBaseURL:  cfg.StaticServePath,
		SanitizeInput: cfg.SanitizeInput,
		RatePerSecond: cfg.RateLimit.PerSecond,
		RateBurst:     cfg.RateLimit.Burst,
	})

	return &Application{
		Config:     cfg,
		Translator: translator,
		API:        api,
	}, nil
}

// Run starts the metrics endpoint and serves the API until ctx is cancelled
// or SIGINT/SIGTERM arrives.
func (app *Application) Run(ctx context.Context) error {
	log.Info().
		Str("tone_action", app.Translator.Tone().String()).
		Bool("sanitize_input", app.Config.SanitizeInput).
		Str("static_serve_path", app.Config.StaticServePath).
		Msg("Starting application...")

	metrics.StartServer(app.Config.MetricsPort)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.API.Run(ctx, app.Config.ListenAddr); err != nil {
		return fmt.Errorf("running api: %w", err)
	}
	log.Info().Msg("Application stopped")
	return nil
}
