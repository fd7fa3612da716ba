package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/shilpkart/server/internal/domain"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	UserType string `json:"user_type"`
}

// Register creates a marketplace account. Credential verification and token
// issuance are deliberately absent here; authentication is an external
// collaborator, not something this service fakes.
func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || strings.TrimSpace(req.Name) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email and name are required")
		return
	}
	userType := domain.UserType(strings.ToLower(strings.TrimSpace(req.UserType)))
	if userType != domain.UserTypeArtisan && userType != domain.UserTypeBuyer {
		a.error(w, http.StatusBadRequest, "bad_request", "user_type must be artisan or buyer")
		return
	}
	if _, err := a.Users.GetByEmail(r.Context(), email); err == nil {
		a.error(w, http.StatusBadRequest, "duplicate_email", "email already registered")
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		a.Logger.Error().Err(err).Msg("failed to check email")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register user")
		return
	}
	user, err := a.Users.Create(r.Context(), &domain.User{
		ID:       uuid.NewString(),
		Email:    email,
		Name:     req.Name,
		UserType: userType,
	})
	if err != nil {
		// The lookup above races concurrent registrations; the unique
		// index is authoritative.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			a.error(w, http.StatusBadRequest, "duplicate_email", "email already registered")
			return
		}
		a.Logger.Error().Err(err).Msg("failed to register user")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register user")
		return
	}
	a.json(w, http.StatusCreated, user)
}
