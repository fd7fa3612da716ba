package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shilpkart/server/internal/domain"
)

type storyCreateRequest struct {
	ArtisanID string `json:"artisan_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	AudioURL  string `json:"audio_url"`
	VideoURL  string `json:"video_url"`
}

func (a *App) StoriesCreate(w http.ResponseWriter, r *http.Request) {
	var req storyCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.ArtisanID) == "" || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "artisan_id, title and content are required")
		return
	}
	story, err := a.Stories.Create(r.Context(), &domain.Story{
		ID:        uuid.NewString(),
		ArtisanID: req.ArtisanID,
		Title:     req.Title,
		Content:   req.Content,
		AudioURL:  req.AudioURL,
		VideoURL:  req.VideoURL,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to create story")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create story")
		return
	}
	a.json(w, http.StatusCreated, story)
}

func (a *App) StoriesList(w http.ResponseWriter, r *http.Request) {
	stories, err := a.Stories.List(r.Context(), 50)
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to list stories")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list stories")
		return
	}
	if stories == nil {
		stories = []domain.Story{}
	}
	a.json(w, http.StatusOK, stories)
}

func (a *App) StoriesByArtisan(w http.ResponseWriter, r *http.Request) {
	artisanID := chi.URLParam(r, "artisan_id")
	stories, err := a.Stories.ListByArtisan(r.Context(), artisanID, 50)
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to list artisan stories")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list stories")
		return
	}
	if stories == nil {
		stories = []domain.Story{}
	}
	a.json(w, http.StatusOK, stories)
}
