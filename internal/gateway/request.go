package gateway

import (
	"fmt"
	"strings"

	"github.com/shilpkart/server/internal/domain"
)

// Kind is the category of generation request. Each kind has its own prompt
// template and expected response schema.
type Kind string

const (
	KindProductAnalysis Kind = "product_analysis"
	KindStoryGeneration Kind = "story_generation"
	KindSocialContent   Kind = "social_content"
	KindTranslation     Kind = "translation"
	KindRecommendation  Kind = "recommendation"
)

// Request is the closed set of generation request variants. Values are built
// once by the transport layer and consumed within a single request cycle.
type Request interface {
	Kind() Kind
	validate() error
}

// ProductAnalysisRequest asks for marketplace-ready listing copy for a
// handcrafted item, from a photo, a rough description, or both.
type ProductAnalysisRequest struct {
	Description string
	Attachment  *Attachment
}

func (ProductAnalysisRequest) Kind() Kind { return KindProductAnalysis }

func (r ProductAnalysisRequest) validate() error {
	if r.Attachment == nil && strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("%w: an image or a description is required", domain.ErrValidation)
	}
	return nil
}

// StoryGenerationRequest asks for a heritage narrative about an artisan.
type StoryGenerationRequest struct {
	ArtisanName        string
	CraftType          string
	SimpleText         string
	CulturalBackground string
	Attachment         *Attachment
}

func (StoryGenerationRequest) Kind() Kind { return KindStoryGeneration }

func (r StoryGenerationRequest) validate() error {
	if strings.TrimSpace(r.ArtisanName) == "" {
		return fmt.Errorf("%w: artisan_name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(r.CraftType) == "" {
		return fmt.Errorf("%w: craft_type is required", domain.ErrValidation)
	}
	if strings.TrimSpace(r.SimpleText) == "" {
		return fmt.Errorf("%w: simple_text is required", domain.ErrValidation)
	}
	return nil
}

// SocialContentRequest asks for a platform-specific post about a listed
// product. The product is resolved before any backend call is spent.
type SocialContentRequest struct {
	ProductID string
	Platform  string
	Locale    string
}

var socialPlatforms = map[string]string{
	"instagram": "Instagram post with engaging caption, emojis, and hashtags. Include call-to-action.",
	"facebook":  "Facebook post with storytelling approach, longer description, and community engagement.",
	"twitter":   "Twitter thread with multiple tweets, concise but impactful messages.",
}

func (SocialContentRequest) Kind() Kind { return KindSocialContent }

func (r SocialContentRequest) validate() error {
	if strings.TrimSpace(r.ProductID) == "" {
		return fmt.Errorf("%w: product_id is required", domain.ErrValidation)
	}
	platform := strings.ToLower(strings.TrimSpace(r.Platform))
	if platform == "" {
		return fmt.Errorf("%w: platform is required", domain.ErrValidation)
	}
	if _, ok := socialPlatforms[platform]; !ok {
		return fmt.Errorf("%w: unsupported platform %q", domain.ErrValidation, r.Platform)
	}
	return nil
}

// TranslationRequest asks for the given text in several target languages.
// When no targets are named, a default set for the Indian market is used.
type TranslationRequest struct {
	Text            string
	TargetLanguages []string
	Locale          string
}

func (TranslationRequest) Kind() Kind { return KindTranslation }

func (r TranslationRequest) validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("%w: text is required", domain.ErrValidation)
	}
	return nil
}

// RecommendationRequest asks for personalized product picks for a registered
// user. The user is resolved before any backend call is spent.
type RecommendationRequest struct {
	UserID string
	Locale string
}

func (RecommendationRequest) Kind() Kind { return KindRecommendation }

func (r RecommendationRequest) validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}
	return nil
}
