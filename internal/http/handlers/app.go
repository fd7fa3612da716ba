package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shilpkart/server/internal/domain"
	"github.com/shilpkart/server/internal/gateway"
	"github.com/shilpkart/server/internal/infra"
)

// Generator is the slice of the AI gateway the transport layer depends on.
type Generator interface {
	Generate(ctx context.Context, req gateway.Request) (*gateway.Result, error)
	PrepareAttachment(data []byte, mediaType string) (*gateway.Attachment, error)
}

// App is the handler container holding every injected collaborator.
type App struct {
	Logger   infra.Logger
	Users    domain.UserRepository
	Products domain.ProductRepository
	Stories  domain.StoryRepository
	AI       Generator
}

func NewApp(logger infra.Logger, users domain.UserRepository, products domain.ProductRepository, stories domain.StoryRepository, ai Generator) *App {
	return &App{
		Logger:   logger,
		Users:    users,
		Products: products,
		Stories:  stories,
		AI:       ai,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, msg string) {
	a.json(w, code, map[string]string{"error": slug, "message": msg})
}

// aiError maps gateway errors onto transport status codes: client input
// problems are 400, missing reference entities 404, everything else 500.
func (a *App) aiError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrInvalidAttachment):
		a.error(w, http.StatusBadRequest, "invalid_attachment", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	default:
		a.Logger.Error().Err(err).Msg("generation request failed")
		a.error(w, http.StatusInternalServerError, "internal", "generation failed")
	}
}

// writeResult serializes the generation envelope. A failed backend call still
// returns the envelope so the caller sees the error message.
func (a *App) writeResult(w http.ResponseWriter, res *gateway.Result) {
	code := http.StatusOK
	if res.Status == gateway.StatusFailure {
		code = http.StatusInternalServerError
	}
	a.json(w, code, res)
}
