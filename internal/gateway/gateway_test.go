package gateway

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shilpkart/server/internal/domain"
)

type backendFunc func(ctx context.Context, sessionID, model, prompt string) (string, error)

func (f backendFunc) Complete(ctx context.Context, sessionID, model, prompt string) (string, error) {
	return f(ctx, sessionID, model, prompt)
}

type fakeStore struct {
	user       *domain.User
	userErr    error
	product    *domain.Product
	productErr error
	catalog    []domain.Product
	catalogErr error
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if s.userErr != nil {
		return nil, s.userErr
	}
	return s.user, nil
}

type fakeCatalog struct {
	store *fakeStore
}

func (c *fakeCatalog) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if c.store.productErr != nil {
		return nil, c.store.productErr
	}
	return c.store.product, nil
}

func (c *fakeCatalog) List(ctx context.Context, limit int) ([]domain.Product, error) {
	if c.store.catalogErr != nil {
		return nil, c.store.catalogErr
	}
	return c.store.catalog, nil
}

func newTestGateway(t *testing.T, backend backendFunc, store *fakeStore) *Gateway {
	t.Helper()
	g, err := New(Options{
		Backend:  backend,
		Users:    store,
		Products: &fakeCatalog{store: store},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return g
}

func TestGenerateStoryEndToEnd(t *testing.T) {
	t.Parallel()
	var calls int32
	var capturedPrompt, capturedSession string
	backend := backendFunc(func(ctx context.Context, sessionID, model, prompt string) (string, error) {
		atomic.AddInt32(&calls, 1)
		capturedPrompt = prompt
		capturedSession = sessionID
		return "```json\n{\"title\":\"The Printer of Sanganer\",\"story\":\"...\",\"cultural_highlights\":[\"heritage\"]}\n```", nil
	})
	g := newTestGateway(t, backend, &fakeStore{})

	res, err := g.Generate(context.Background(), StoryGenerationRequest{
		ArtisanName: "Asha Devi",
		CraftType:   "block printing",
		SimpleText:  "20 years of practice",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("backend called %d times, want 1", got)
	}
	if res.Status != StatusSuccess {
		t.Fatalf("Status = %q, want %q", res.Status, StatusSuccess)
	}
	if res.Schema != SchemaArtisanStory {
		t.Fatalf("Schema = %q, want %q", res.Schema, SchemaArtisanStory)
	}
	if res.Structured == nil || res.Structured["title"] != "The Printer of Sanganer" {
		t.Fatalf("Structured = %v", res.Structured)
	}
	if !strings.Contains(capturedPrompt, `"Asha Devi"`) {
		t.Fatalf("prompt missing artisan name:\n%s", capturedPrompt)
	}
	if !strings.HasPrefix(capturedSession, "artisan-assistant-") {
		t.Fatalf("session id = %q", capturedSession)
	}
}

func TestGenerateUsesFreshSessionPerCall(t *testing.T) {
	t.Parallel()
	var sessions []string
	backend := backendFunc(func(ctx context.Context, sessionID, model, prompt string) (string, error) {
		sessions = append(sessions, sessionID)
		return "plain text", nil
	})
	g := newTestGateway(t, backend, &fakeStore{})

	for i := 0; i < 2; i++ {
		if _, err := g.Generate(context.Background(), TranslationRequest{Text: "hello"}); err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
	}
	if len(sessions) != 2 || sessions[0] == sessions[1] {
		t.Fatalf("sessions = %v, want two distinct ids", sessions)
	}
}

func TestGenerateTranslationThreadsLocaleIntoPrompt(t *testing.T) {
	t.Parallel()
	var capturedPrompt string
	backend := backendFunc(func(ctx context.Context, sessionID, model, prompt string) (string, error) {
		capturedPrompt = prompt
		return `{"translations":{}}`, nil
	})
	g := newTestGateway(t, backend, &fakeStore{})

	if _, err := g.Generate(context.Background(), TranslationRequest{Text: "silk saree", Locale: "hi"}); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !strings.Contains(capturedPrompt, "English, Tamil, Bengali, Gujarati") {
		t.Fatalf("locale did not shape default targets:\n%s", capturedPrompt)
	}
}

func TestGenerateValidationFailsBeforeBackendCall(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		req  Request
	}{
		{name: "empty_analysis", req: ProductAnalysisRequest{}},
		{name: "story_missing_name", req: StoryGenerationRequest{CraftType: "pottery", SimpleText: "x"}},
		{name: "social_bad_platform", req: SocialContentRequest{ProductID: "p1", Platform: "myspace"}},
		{name: "translation_empty_text", req: TranslationRequest{}},
		{name: "recommendation_no_user", req: RecommendationRequest{}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var calls int32
			backend := backendFunc(func(ctx context.Context, sessionID, model, prompt string) (string, error) {
				atomic.AddInt32(&calls, 1)
				return "", nil
			})
			g := newTestGateway(t, backend, &fakeStore{})
			res, err := g.Generate(context.Background(), tc.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if res != nil {
				t.Fatalf("res = %v, want nil", res)
			}
			if atomic.LoadInt32(&calls) != 0 {
				t.Fatal("backend was called for an invalid request")
			}
		})
	}
}

func TestGenerateSocialContentMissingProduct(t *testing.T) {
	t.Parallel()
	var calls int32
	backend := backendFunc(func(ctx context.Context, sessionID, model, prompt string) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", nil
	})
	g := newTestGateway(t, backend, &fakeStore{productErr: domain.ErrNotFound})

	_, err := g.Generate(context.Background(), SocialContentRequest{ProductID: "missing", Platform: "facebook"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatal("backend was called despite the missing product")
	}
}

func TestGenerateRecommendationSurvivesCatalogFailure(t *testing.T) {
	t.Parallel()
	backend := backendFunc(func(ctx context.Context, sessionID, model, prompt string) (string, error) {
		if !strings.Contains(prompt, "0 traditional craft items") {
			t.Errorf("prompt should fall back to an empty catalog:\n%s", prompt)
		}
		return `{"recommendations":[]}`, nil
	})
	g := newTestGateway(t, backend, &fakeStore{
		user:       &domain.User{ID: "u1", UserType: domain.UserTypeBuyer},
		catalogErr: errors.New("db down"),
	})

	res, err := g.Generate(context.Background(), RecommendationRequest{UserID: "u1"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if res.Status != StatusSuccess {
		t.Fatalf("Status = %q, want %q", res.Status, StatusSuccess)
	}
	if res.UserID != "u1" {
		t.Fatalf("UserID = %q, want %q", res.UserID, "u1")
	}
}

func TestGenerateBackendFailureReturnsEnvelope(t *testing.T) {
	t.Parallel()
	backend := backendFunc(func(ctx context.Context, sessionID, model, prompt string) (string, error) {
		return "", errors.New("boom")
	})
	g := newTestGateway(t, backend, &fakeStore{})

	res, err := g.Generate(context.Background(), TranslationRequest{Text: "hello"})
	if err != nil {
		t.Fatalf("Generate returned error: %v, want failure envelope", err)
	}
	if res.Status != StatusFailure {
		t.Fatalf("Status = %q, want %q", res.Status, StatusFailure)
	}
	if !strings.Contains(res.Error, "chat backend failure") {
		t.Fatalf("Error = %q, want backend failure message", res.Error)
	}
	if res.Structured != nil || res.Raw != "" {
		t.Fatalf("failure envelope carries content: %+v", res)
	}
}

func TestGenerateTimeoutReportedAsFailure(t *testing.T) {
	t.Parallel()
	backend := backendFunc(func(ctx context.Context, sessionID, model, prompt string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	g, err := New(Options{Backend: backend, Timeout: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	start := time.Now()
	res, err := g.Generate(context.Background(), TranslationRequest{Text: "hello"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("Generate took %s, timeout not honored", elapsed)
	}
	if res.Status != StatusFailure {
		t.Fatalf("Status = %q, want %q", res.Status, StatusFailure)
	}
	if !strings.HasPrefix(res.Error, "timeout:") {
		t.Fatalf("Error = %q, want timeout prefix", res.Error)
	}
}

func TestGenerateDecoratesKindMetadata(t *testing.T) {
	t.Parallel()
	backend := backendFunc(func(ctx context.Context, sessionID, model, prompt string) (string, error) {
		return `{"main_content":"post"}`, nil
	})
	g := newTestGateway(t, backend, &fakeStore{product: &domain.Product{ID: "p1", Title: "Terracotta Horse"}})

	res, err := g.Generate(context.Background(), SocialContentRequest{ProductID: "p1", Platform: " Instagram "})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if res.Platform != "instagram" {
		t.Fatalf("Platform = %q, want %q", res.Platform, "instagram")
	}

	att, err := NewAttachment([]byte("img"), "image/png", 0)
	if err != nil {
		t.Fatalf("NewAttachment returned error: %v", err)
	}
	res, err = g.Generate(context.Background(), ProductAnalysisRequest{Attachment: att})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if res.AttachmentPreview != att.Preview {
		t.Fatalf("AttachmentPreview = %q, want %q", res.AttachmentPreview, att.Preview)
	}
}

func TestNewRequiresBackend(t *testing.T) {
	t.Parallel()
	if _, err := New(Options{}); err == nil {
		t.Fatal("New accepted a nil backend")
	}
}

func TestPrepareAttachmentUsesConfiguredBound(t *testing.T) {
	t.Parallel()
	backend := backendFunc(func(ctx context.Context, sessionID, model, prompt string) (string, error) {
		return "", nil
	})
	g, err := New(Options{Backend: backend, MaxAttachmentBytes: 8})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := g.PrepareAttachment([]byte("123456789"), "image/png"); !errors.Is(err, domain.ErrInvalidAttachment) {
		t.Fatalf("err = %v, want ErrInvalidAttachment", err)
	}
	if _, err := g.PrepareAttachment([]byte("12345678"), "image/png"); err != nil {
		t.Fatalf("payload within bound rejected: %v", err)
	}
}
