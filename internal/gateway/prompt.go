package gateway

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shilpkart/server/internal/domain"
)

// PreparedPrompt is the finished instruction text paired with the schema tag
// the reply is expected to match. Produced once per request, never mutated.
type PreparedPrompt struct {
	Text   string
	Schema SchemaTag
}

// unspecifiedPhrase replaces missing optional fields so the instruction stays
// well-formed instead of carrying blank slots.
const unspecifiedPhrase = "unspecified"

var defaultTranslationTargets = []string{"Hindi", "Tamil", "Bengali", "Gujarati"}

// promptContext carries the reference entities the gateway resolved before
// building the instruction. Only the fields a kind needs are populated.
type promptContext struct {
	product  *domain.Product
	user     *domain.User
	products []domain.Product
	locale   string
}

var titleCaser = cases.Title(language.Und)

// buildPrompt maps a validated request and its resolved context to the final
// instruction text. Pure and deterministic given its inputs.
func buildPrompt(req Request, pc promptContext) PreparedPrompt {
	switch r := req.(type) {
	case ProductAnalysisRequest:
		return buildProductAnalysisPrompt(r)
	case StoryGenerationRequest:
		return buildStoryPrompt(r)
	case SocialContentRequest:
		return buildSocialPrompt(r, pc)
	case TranslationRequest:
		return buildTranslationPrompt(r, pc)
	case RecommendationRequest:
		return buildRecommendationPrompt(r, pc)
	}
	// Unreachable for the sealed Request set; validate() rejects unknowns first.
	return PreparedPrompt{}
}

func buildProductAnalysisPrompt(r ProductAnalysisRequest) PreparedPrompt {
	sb := &strings.Builder{}
	sb.WriteString("You are an expert in traditional crafts and marketplace analysis. Analyze this handcrafted product and provide detailed suggestions for an artisan marketplace listing.")
	fmt.Fprintf(sb, " Additional context from the artisan: %s.", orElse(r.Description, "traditional handcrafted item"))
	appendAttachmentReference(sb, r.Attachment)
	fmt.Fprintf(sb, " Respond strictly with JSON matching this example: %s.", SchemaProductAnalysis.exampleJSON())
	sb.WriteString(" Make the content authentic, culturally respectful, and market-ready.")
	return PreparedPrompt{Text: sb.String(), Schema: SchemaProductAnalysis}
}

func buildStoryPrompt(r StoryGenerationRequest) PreparedPrompt {
	sb := &strings.Builder{}
	sb.WriteString("You are a storytelling expert specializing in preserving and sharing cultural heritage. Create an engaging artisan story from this information:")
	fmt.Fprintf(sb, " artisan name=%q, craft type=%q, artisan's own words=%q, cultural background=%q.",
		r.ArtisanName,
		titleCaser.String(strings.TrimSpace(r.CraftType)),
		r.SimpleText,
		orElse(r.CulturalBackground, unspecifiedPhrase),
	)
	appendAttachmentReference(sb, r.Attachment)
	sb.WriteString(" Cover the artisan's heritage, the traditional techniques used, the cultural significance of the craft, and the connection to community and tradition. Keep it authentic, respectful, and emotionally engaging.")
	fmt.Fprintf(sb, " Respond strictly with JSON matching this example: %s.", SchemaArtisanStory.exampleJSON())
	return PreparedPrompt{Text: sb.String(), Schema: SchemaArtisanStory}
}

func buildSocialPrompt(r SocialContentRequest, pc promptContext) PreparedPrompt {
	platform := strings.ToLower(strings.TrimSpace(r.Platform))
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Create %s content for this handcrafted product:", platform)
	title, description, category := unspecifiedPhrase, unspecifiedPhrase, unspecifiedPhrase
	if pc.product != nil {
		title = orElse(pc.product.Title, "handcrafted item")
		description = orElse(pc.product.Description, "beautiful traditional craft")
		category = titleCaser.String(orElse(pc.product.Category, "traditional crafts"))
	}
	fmt.Fprintf(sb, " product=%q, description=%q, category=%q.", title, description, category)
	fmt.Fprintf(sb, " Platform requirements: %s", socialPlatforms[platform])
	if pc.locale != "" {
		fmt.Fprintf(sb, " Write for a %s-speaking audience.", languageName(pc.locale))
	}
	sb.WriteString(" Focus on cultural heritage, traditional craftsmanship, and supporting local artisans.")
	fmt.Fprintf(sb, " Respond strictly with JSON matching this example: %s.", SchemaSocialPost.exampleJSON())
	return PreparedPrompt{Text: sb.String(), Schema: SchemaSocialPost}
}

func buildTranslationPrompt(r TranslationRequest, pc promptContext) PreparedPrompt {
	targets := make([]string, 0, len(r.TargetLanguages))
	for _, lang := range r.TargetLanguages {
		lang = strings.TrimSpace(lang)
		if lang != "" {
			targets = append(targets, titleCaser.String(lang))
		}
	}
	if len(targets) == 0 {
		targets = defaultTargets(pc.locale)
	}
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Translate this product description to %s: %q.", strings.Join(targets, ", "), r.Text)
	sb.WriteString(" Provide translations that maintain cultural authenticity and appeal.")
	fmt.Fprintf(sb, " Respond strictly with JSON keyed by language code, matching this example: %s.", SchemaTranslations.exampleJSON())
	return PreparedPrompt{Text: sb.String(), Schema: SchemaTranslations}
}

func buildRecommendationPrompt(r RecommendationRequest, pc promptContext) PreparedPrompt {
	sb := &strings.Builder{}
	sb.WriteString("Generate personalized product recommendations for a marketplace user interested in traditional crafts.")
	userType := unspecifiedPhrase
	if pc.user != nil {
		userType = string(pc.user.UserType)
	}
	fmt.Fprintf(sb, " User profile: %s interested in cultural products.", orElse(userType, unspecifiedPhrase))
	fmt.Fprintf(sb, " Available catalog: %d traditional craft items", len(pc.products))
	if sample := sampleTitles(pc.products, 5); sample != "" {
		fmt.Fprintf(sb, " including %s", sample)
	}
	sb.WriteString(".")
	if pc.locale != "" {
		fmt.Fprintf(sb, " Write for a %s-speaking audience.", languageName(pc.locale))
	}
	sb.WriteString(" Recommend five products with reasons based on cultural interest, seasonal relevance, gifting occasions, and price range preferences.")
	fmt.Fprintf(sb, " Respond strictly with JSON matching this example: %s.", SchemaRecommendations.exampleJSON())
	return PreparedPrompt{Text: sb.String(), Schema: SchemaRecommendations}
}

// defaultTargets derives the translation target set from the caller's locale
// when the request names none: the language the caller already writes in is
// dropped, and English is added for non-English locales so the listing stays
// reachable outside the home market.
func defaultTargets(locale string) []string {
	own := languageName(locale)
	targets := make([]string, 0, len(defaultTranslationTargets)+1)
	if own != "English" {
		targets = append(targets, "English")
	}
	for _, lang := range defaultTranslationTargets {
		if lang == own {
			continue
		}
		targets = append(targets, lang)
	}
	return targets
}

// appendAttachmentReference amends the instruction when an image was
// provided. Only a reference is embedded; the encoded bytes never enter the
// prompt, keeping its size bounded.
func appendAttachmentReference(sb *strings.Builder, att *Attachment) {
	if att == nil {
		return
	}
	fmt.Fprintf(sb, " The artisan attached a product image (%s, %d bytes); base your visual observations on the provided photograph of the craft.", att.MediaType, att.Size)
}

func sampleTitles(products []domain.Product, limit int) string {
	var titles []string
	for _, p := range products {
		if strings.TrimSpace(p.Title) == "" {
			continue
		}
		titles = append(titles, fmt.Sprintf("%q", p.Title))
		if len(titles) >= limit {
			break
		}
	}
	return strings.Join(titles, ", ")
}

func languageName(locale string) string {
	switch strings.ToLower(locale) {
	case "hi":
		return "Hindi"
	default:
		return "English"
	}
}

func orElse(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return fallback
}
