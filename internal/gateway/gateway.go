package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shilpkart/server/internal/domain"
	"github.com/shilpkart/server/internal/providers/chat"
)

// UserFinder is the narrow read-only lookup the gateway needs for
// recommendation requests.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// ProductFinder is the narrow read-only lookup the gateway needs for social
// content and recommendation requests.
type ProductFinder interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, limit int) ([]domain.Product, error)
}

// Options configures a Gateway.
type Options struct {
	Backend            chat.Backend
	Model              string
	Users              UserFinder
	Products           ProductFinder
	Timeout            time.Duration
	MaxAttachmentBytes int64
	Logger             *zerolog.Logger
}

const (
	defaultModel          = "gpt-4o"
	defaultBackendTimeout = 30 * time.Second

	recommendationCatalogSample = 10
)

// Gateway orchestrates one generation request end to end: validate, resolve
// reference entities, build the prompt, make exactly one backend call under a
// bounded timeout, normalize the reply, and return the envelope. Requests
// share no mutable state; each builds its own prompt and session.
type Gateway struct {
	backend            chat.Backend
	model              string
	users              UserFinder
	products           ProductFinder
	timeout            time.Duration
	maxAttachmentBytes int64
	logger             zerolog.Logger
}

func New(opts Options) (*Gateway, error) {
	if opts.Backend == nil {
		return nil, errors.New("gateway: chat backend is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultBackendTimeout
	}
	maxBytes := opts.MaxAttachmentBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxAttachmentBytes
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Gateway{
		backend:            opts.Backend,
		model:              model,
		users:              opts.Users,
		products:           opts.Products,
		timeout:            timeout,
		maxAttachmentBytes: maxBytes,
		logger:             logger,
	}, nil
}

// PrepareAttachment validates and encodes an uploaded image under the
// gateway's configured size bound.
func (g *Gateway) PrepareAttachment(data []byte, mediaType string) (*Attachment, error) {
	return NewAttachment(data, mediaType, g.maxAttachmentBytes)
}

// Generate runs one request through the pipeline. Validation and missing
// reference entities fail before any backend call is spent and are returned
// as errors; a backend failure is not an error here but a Result with
// StatusFailure, because the caller-facing contract is an envelope either
// way.
func (g *Gateway) Generate(ctx context.Context, req Request) (*Result, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: missing request", domain.ErrValidation)
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	pc, err := g.resolveReferences(ctx, req)
	if err != nil {
		return nil, err
	}

	prepared := buildPrompt(req, pc)
	sessionID := chat.NewSessionID()

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	raw, err := g.backend.Complete(callCtx, sessionID, g.model, prepared.Text)
	elapsed := time.Since(start)
	if err != nil {
		res := Result{Status: StatusFailure, Schema: prepared.Schema, Error: failureMessage(err)}
		decorate(&res, req)
		g.logger.Warn().
			Str("kind", string(req.Kind())).
			Str("session_id", sessionID).
			Dur("elapsed", elapsed).
			Err(err).
			Msg("generation failed")
		return &res, nil
	}

	res := normalize(raw, prepared.Schema)
	decorate(&res, req)
	if res.Structured != nil {
		if missing := missingKeys(prepared.Schema, res.Structured); len(missing) > 0 {
			g.logger.Debug().
				Str("kind", string(req.Kind())).
				Strs("missing_keys", missing).
				Msg("structured reply is missing expected fields")
		}
	}
	g.logger.Info().
		Str("kind", string(req.Kind())).
		Str("session_id", sessionID).
		Dur("elapsed", elapsed).
		Bool("structured", res.Structured != nil).
		Msg("generation completed")
	return &res, nil
}

// resolveReferences loads the entities a kind depends on. A missing user or
// product fails fast here so no backend call is wasted on a request that
// cannot succeed.
func (g *Gateway) resolveReferences(ctx context.Context, req Request) (promptContext, error) {
	var pc promptContext
	switch r := req.(type) {
	case SocialContentRequest:
		if g.products == nil {
			return pc, errors.New("gateway: product lookup not configured")
		}
		product, err := g.products.GetByID(ctx, r.ProductID)
		if err != nil {
			return pc, fmt.Errorf("resolve product %s: %w", r.ProductID, err)
		}
		pc.product = product
		pc.locale = r.Locale
	case RecommendationRequest:
		if g.users == nil {
			return pc, errors.New("gateway: user lookup not configured")
		}
		user, err := g.users.GetByID(ctx, r.UserID)
		if err != nil {
			return pc, fmt.Errorf("resolve user %s: %w", r.UserID, err)
		}
		pc.user = user
		pc.locale = r.Locale
		if g.products != nil {
			// Catalog context only enriches the prompt; a listing failure
			// should not sink the whole request.
			products, err := g.products.List(ctx, recommendationCatalogSample)
			if err != nil {
				g.logger.Warn().Err(err).Msg("catalog sample unavailable for recommendations")
			} else {
				pc.products = products
			}
		}
	case TranslationRequest:
		pc.locale = r.Locale
	}
	return pc, nil
}

func decorate(res *Result, req Request) {
	switch r := req.(type) {
	case ProductAnalysisRequest:
		if r.Attachment != nil {
			res.AttachmentPreview = r.Attachment.Preview
		}
	case StoryGenerationRequest:
		if r.Attachment != nil {
			res.AttachmentPreview = r.Attachment.Preview
		}
	case SocialContentRequest:
		res.Platform = strings.ToLower(strings.TrimSpace(r.Platform))
	case RecommendationRequest:
		res.UserID = r.UserID
	}
}

func failureMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("timeout: %v", err)
	}
	return fmt.Sprintf("%s: %v", domain.ErrBackendFailure.Error(), err)
}
