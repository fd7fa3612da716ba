package gateway

import (
	"strings"
	"testing"

	"github.com/shilpkart/server/internal/domain"
)

func TestBuildStoryPromptEmbedsFields(t *testing.T) {
	t.Parallel()
	prepared := buildPrompt(StoryGenerationRequest{
		ArtisanName: "Asha Devi",
		CraftType:   "block printing",
		SimpleText:  "I learned from my grandmother and have printed for 20 years.",
	}, promptContext{})
	if prepared.Schema != SchemaArtisanStory {
		t.Fatalf("Schema = %q, want %q", prepared.Schema, SchemaArtisanStory)
	}
	for _, want := range []string{`"Asha Devi"`, `"Block Printing"`, "printed for 20 years"} {
		if !strings.Contains(prepared.Text, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prepared.Text)
		}
	}
	if !strings.Contains(prepared.Text, `cultural background="unspecified"`) {
		t.Fatalf("missing cultural background fallback:\n%s", prepared.Text)
	}
	if !strings.Contains(prepared.Text, SchemaArtisanStory.exampleJSON()) {
		t.Fatal("prompt does not embed the schema example")
	}
}

func TestBuildProductAnalysisPromptDefaultsDescription(t *testing.T) {
	t.Parallel()
	prepared := buildPrompt(ProductAnalysisRequest{Description: "  "}, promptContext{})
	if !strings.Contains(prepared.Text, "traditional handcrafted item") {
		t.Fatalf("missing description fallback:\n%s", prepared.Text)
	}
	if prepared.Schema != SchemaProductAnalysis {
		t.Fatalf("Schema = %q, want %q", prepared.Schema, SchemaProductAnalysis)
	}
}

func TestBuildPromptReferencesAttachmentWithoutBytes(t *testing.T) {
	t.Parallel()
	att, err := NewAttachment([]byte("binary-image-data"), "image/jpeg", 0)
	if err != nil {
		t.Fatalf("NewAttachment returned error: %v", err)
	}
	prepared := buildPrompt(ProductAnalysisRequest{Attachment: att}, promptContext{})
	if !strings.Contains(prepared.Text, "image/jpeg") {
		t.Fatalf("prompt does not reference the attachment:\n%s", prepared.Text)
	}
	if strings.Contains(prepared.Text, att.Encoded) {
		t.Fatal("prompt embeds the encoded payload")
	}
}

func TestBuildSocialPromptUsesProductAndLocale(t *testing.T) {
	t.Parallel()
	prepared := buildPrompt(SocialContentRequest{ProductID: "p1", Platform: "Instagram", Locale: "hi"}, promptContext{
		product: &domain.Product{Title: "Terracotta Horse", Description: "Bankura style", Category: "home decor"},
		locale:  "hi",
	})
	if prepared.Schema != SchemaSocialPost {
		t.Fatalf("Schema = %q, want %q", prepared.Schema, SchemaSocialPost)
	}
	for _, want := range []string{"instagram", `"Terracotta Horse"`, `"Home Decor"`, "Hindi-speaking audience", socialPlatforms["instagram"]} {
		if !strings.Contains(prepared.Text, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prepared.Text)
		}
	}
}

func TestBuildTranslationPromptDefaultsTargets(t *testing.T) {
	t.Parallel()
	prepared := buildPrompt(TranslationRequest{Text: "Handwoven silk saree"}, promptContext{})
	if !strings.Contains(prepared.Text, "Hindi, Tamil, Bengali, Gujarati") {
		t.Fatalf("missing default target set:\n%s", prepared.Text)
	}

	prepared = buildPrompt(TranslationRequest{Text: "x", TargetLanguages: []string{" marathi ", "", "telugu"}}, promptContext{})
	if !strings.Contains(prepared.Text, "Marathi, Telugu") {
		t.Fatalf("targets not normalized:\n%s", prepared.Text)
	}
}

func TestBuildTranslationPromptLocaleShapesTargets(t *testing.T) {
	t.Parallel()
	req := TranslationRequest{Text: "Handwoven silk saree", Locale: "hi"}

	prepared := buildPrompt(req, promptContext{locale: "hi"})
	if !strings.Contains(prepared.Text, "English, Tamil, Bengali, Gujarati") {
		t.Fatalf("hi locale targets wrong:\n%s", prepared.Text)
	}
	if strings.Contains(prepared.Text, "Hindi") {
		t.Fatalf("caller's own language should be dropped from targets:\n%s", prepared.Text)
	}

	// Named targets always win over locale-derived defaults.
	req.TargetLanguages = []string{"hindi"}
	prepared = buildPrompt(req, promptContext{locale: "hi"})
	if !strings.Contains(prepared.Text, "to Hindi:") {
		t.Fatalf("explicit targets overridden:\n%s", prepared.Text)
	}
}

func TestBuildRecommendationPromptSamplesCatalog(t *testing.T) {
	t.Parallel()
	prepared := buildPrompt(RecommendationRequest{UserID: "u1"}, promptContext{
		user: &domain.User{UserType: domain.UserTypeBuyer},
		products: []domain.Product{
			{Title: "Madhubani Painting"},
			{Title: ""},
			{Title: "Brass Lamp"},
		},
	})
	if prepared.Schema != SchemaRecommendations {
		t.Fatalf("Schema = %q, want %q", prepared.Schema, SchemaRecommendations)
	}
	for _, want := range []string{"buyer", "3 traditional craft items", `"Madhubani Painting"`, `"Brass Lamp"`} {
		if !strings.Contains(prepared.Text, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prepared.Text)
		}
	}
}
