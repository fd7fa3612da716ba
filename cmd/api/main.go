package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/shilpkart/server/internal/adapter/repo"
	"github.com/shilpkart/server/internal/gateway"
	"github.com/shilpkart/server/internal/http/handlers"
	"github.com/shilpkart/server/internal/http/httpapi"
	"github.com/shilpkart/server/internal/infra"
	"github.com/shilpkart/server/internal/infra/geoip"
	"github.com/shilpkart/server/internal/middleware"
	"github.com/shilpkart/server/internal/providers/chat"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	users := repo.NewUserRepository(dbpool)
	products := repo.NewProductRepository(dbpool)
	stories := repo.NewStoryRepository(dbpool)

	backend, model, err := newChatBackend(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure chat backend")
	}

	ai, err := gateway.New(gateway.Options{
		Backend:            backend,
		Model:              model,
		Users:              users,
		Products:           products,
		Timeout:            cfg.ChatTimeout,
		MaxAttachmentBytes: cfg.AttachmentMaxBytes,
		Logger:             &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build generation gateway")
	}

	var lookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable, falling back to header hints")
	} else if resolver != nil {
		defer func() {
			if closer, ok := resolver.(interface{ Close() error }); ok {
				_ = closer.Close()
			}
		}()
		lookup = resolver.CountryCode
	}

	app := handlers.NewApp(logger, users, products, stories, ai)
	router := httpapi.NewRouter(app, cfg, logger, lookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

// newChatBackend selects the provider and its default model from config.
func newChatBackend(cfg *infra.Config) (chat.Backend, string, error) {
	switch cfg.ChatProvider {
	case "gemini":
		backend, err := chat.NewGeminiBackend(chat.GeminiOptions{
			APIKey:  cfg.GeminiAPIKey,
			BaseURL: cfg.GeminiBaseURL,
		})
		if err != nil {
			return nil, "", err
		}
		model := cfg.ChatModel
		if model == "" {
			model = "gemini-1.5-flash"
		}
		return backend, model, nil
	default:
		backend, err := chat.NewOpenAIBackend(chat.OpenAIOptions{
			APIKey:       cfg.OpenAIAPIKey,
			BaseURL:      cfg.OpenAIBaseURL,
			Organization: cfg.OpenAIOrg,
		})
		if err != nil {
			return nil, "", err
		}
		return backend, cfg.ChatModel, nil
	}
}
