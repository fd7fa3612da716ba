package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shilpkart/server/internal/gateway"
	"github.com/shilpkart/server/internal/middleware"
)

// multipartMemoryLimit bounds the in-memory portion of uploads; larger parts
// spill to disk and the attachment pipeline enforces the real size cap.
const multipartMemoryLimit = 12 << 20

// AIAnalyzeProduct accepts a product photo (multipart) or a plain description
// (JSON) and returns listing suggestions.
func (a *App) AIAnalyzeProduct(w http.ResponseWriter, r *http.Request) {
	var description string
	var attachment *gateway.Attachment

	if isMultipart(r) {
		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
			return
		}
		description = r.FormValue("description")
		att, err := a.readImage(r, "image")
		if err != nil {
			a.aiError(w, err)
			return
		}
		attachment = att
	} else {
		var req struct {
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
			return
		}
		description = req.Description
	}

	res, err := a.AI.Generate(r.Context(), gateway.ProductAnalysisRequest{
		Description: description,
		Attachment:  attachment,
	})
	if err != nil {
		a.aiError(w, err)
		return
	}
	a.writeResult(w, res)
}

// AIGenerateStory turns an artisan's own words into a heritage narrative. An
// optional image of the craft enriches the instruction.
func (a *App) AIGenerateStory(w http.ResponseWriter, r *http.Request) {
	req := gateway.StoryGenerationRequest{}

	if isMultipart(r) {
		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
			return
		}
		req.ArtisanName = r.FormValue("artisan_name")
		req.CraftType = r.FormValue("craft_type")
		req.SimpleText = r.FormValue("simple_text")
		req.CulturalBackground = r.FormValue("cultural_background")
		att, err := a.readImage(r, "image")
		if err != nil {
			a.aiError(w, err)
			return
		}
		req.Attachment = att
	} else {
		var body struct {
			ArtisanName        string `json:"artisan_name"`
			CraftType          string `json:"craft_type"`
			SimpleText         string `json:"simple_text"`
			CulturalBackground string `json:"cultural_background"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
			return
		}
		req.ArtisanName = body.ArtisanName
		req.CraftType = body.CraftType
		req.SimpleText = body.SimpleText
		req.CulturalBackground = body.CulturalBackground
	}

	res, err := a.AI.Generate(r.Context(), req)
	if err != nil {
		a.aiError(w, err)
		return
	}
	a.writeResult(w, res)
}

// AISocialContent drafts a platform-specific post for a listed product.
func (a *App) AISocialContent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"product_id"`
		Platform  string `json:"platform"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	res, err := a.AI.Generate(r.Context(), gateway.SocialContentRequest{
		ProductID: body.ProductID,
		Platform:  body.Platform,
		Locale:    middleware.LocaleFromContext(r.Context()),
	})
	if err != nil {
		a.aiError(w, err)
		return
	}
	a.writeResult(w, res)
}

// AITranslate renders a product description in the requested target
// languages, defaulting to the Indian-market set when none are named.
func (a *App) AITranslate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text            string   `json:"text"`
		TargetLanguages []string `json:"target_languages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	res, err := a.AI.Generate(r.Context(), gateway.TranslationRequest{
		Text:            body.Text,
		TargetLanguages: body.TargetLanguages,
		Locale:          middleware.LocaleFromContext(r.Context()),
	})
	if err != nil {
		a.aiError(w, err)
		return
	}
	a.writeResult(w, res)
}

// AIRecommendations produces personalized product picks for a user.
func (a *App) AIRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	res, err := a.AI.Generate(r.Context(), gateway.RecommendationRequest{
		UserID: userID,
		Locale: middleware.LocaleFromContext(r.Context()),
	})
	if err != nil {
		a.aiError(w, err)
		return
	}
	a.writeResult(w, res)
}

// readImage pulls the named file part and runs it through the attachment
// pipeline. A missing part is not an error; kinds decide whether the image is
// required during validation.
func (a *App) readImage(r *http.Request, field string) (*gateway.Attachment, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return a.AI.PrepareAttachment(data, header.Header.Get("Content-Type"))
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
