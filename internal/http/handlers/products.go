package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shilpkart/server/internal/domain"
)

type productCreateRequest struct {
	ArtisanID       string   `json:"artisan_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Category        string   `json:"category"`
	Images          []string `json:"images"`
	Story           string   `json:"story"`
	CulturalContext string   `json:"cultural_context"`
}

func (a *App) ProductsCreate(w http.ResponseWriter, r *http.Request) {
	var req productCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.ArtisanID) == "" || strings.TrimSpace(req.Title) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "artisan_id and title are required")
		return
	}
	if req.Price < 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "price must not be negative")
		return
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}
	product, err := a.Products.Create(r.Context(), &domain.Product{
		ID:              uuid.NewString(),
		ArtisanID:       req.ArtisanID,
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		Images:          images,
		Story:           req.Story,
		CulturalContext: req.CulturalContext,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to create product")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create product")
		return
	}
	a.json(w, http.StatusCreated, product)
}

func (a *App) ProductsList(w http.ResponseWriter, r *http.Request) {
	products, err := a.Products.List(r.Context(), 100)
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to list products")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	a.json(w, http.StatusOK, products)
}

func (a *App) ProductGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "product_id")
	product, err := a.Products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		a.Logger.Error().Err(err).Msg("failed to load product")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load product")
		return
	}
	a.json(w, http.StatusOK, product)
}
