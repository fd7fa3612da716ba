package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shilpkart/server/internal/domain"
)

type fakeUserRepo struct {
	created *domain.User
	byEmail *domain.User
	err     error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = user
	return user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.byEmail != nil {
		return f.byEmail, nil
	}
	return nil, domain.ErrNotFound
}

func TestRegisterCreatesUser(t *testing.T) {
	users := &fakeUserRepo{}
	app := NewApp(zerolog.Nop(), users, nil, nil, nil)

	body := `{"email":" Asha@Example.COM ","name":"Asha Devi","user_type":"artisan"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	app.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if users.created == nil {
		t.Fatal("no user was created")
	}
	if users.created.Email != "asha@example.com" {
		t.Fatalf("email = %q, want lowercased trimmed", users.created.Email)
	}
	if users.created.UserType != domain.UserTypeArtisan {
		t.Fatalf("user type = %q", users.created.UserType)
	}
	if users.created.ID == "" {
		t.Fatal("user id was not assigned")
	}
}

func TestRegisterRejectsUnknownUserType(t *testing.T) {
	app := NewApp(zerolog.Nop(), &fakeUserRepo{}, nil, nil, nil)

	body := `{"email":"a@b.c","name":"A","user_type":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	app.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRegisterExistingEmailSkipsInsert(t *testing.T) {
	users := &fakeUserRepo{byEmail: &domain.User{ID: "u1", Email: "a@b.c"}}
	app := NewApp(zerolog.Nop(), users, nil, nil, nil)

	body := `{"email":"a@b.c","name":"A","user_type":"buyer"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	app.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "duplicate_email" {
		t.Fatalf("error slug = %v", body["error"])
	}
	if users.created != nil {
		t.Fatal("insert attempted for an email that is already registered")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := NewApp(zerolog.Nop(), &fakeUserRepo{err: domain.ErrDuplicateEmail}, nil, nil, nil)

	body := `{"email":"a@b.c","name":"A","user_type":"buyer"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	app.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "duplicate_email" {
		t.Fatalf("error slug = %v", body["error"])
	}
}
