package gateway

// SchemaTag identifies which structured shape the normalizer should attempt
// to recover from backend text. PromptBuilder and the normalizer agree on one
// canonical schema per kind; the literal example below is embedded verbatim
// in the instruction so the two can never drift apart.
type SchemaTag string

const (
	SchemaProductAnalysis SchemaTag = "product_analysis"
	SchemaArtisanStory    SchemaTag = "artisan_story"
	SchemaSocialPost      SchemaTag = "social_post"
	SchemaTranslations    SchemaTag = "translations"
	SchemaRecommendations SchemaTag = "recommendations"
)

type schemaSpec struct {
	example string
	keys    []string
}

var schemas = map[SchemaTag]schemaSpec{
	SchemaProductAnalysis: {
		example: `{"title":"compelling product title (max 60 characters)","description":"detailed 2-3 paragraph description highlighting craftsmanship, materials, and cultural significance","suggested_price":"single price in INR (number only)","price_range":"price range like '1500-2500 INR'","category":"product category (e.g. Textiles, Jewelry, Home Decor)","materials":["list of materials used"],"techniques":["traditional techniques involved"],"cultural_context":"cultural and regional significance","target_audience":"who would be interested in this product","key_features":["unique selling points"],"occasions":["suitable occasions for use or gifting"]}`,
		keys:    []string{"title", "description", "price_range", "category"},
	},
	SchemaArtisanStory: {
		example: `{"title":"compelling story title","story":"full narrative story (3-4 paragraphs)","cultural_highlights":["cultural aspect 1","cultural aspect 2"],"traditional_techniques":["technique 1","technique 2"]}`,
		keys:    []string{"title", "story", "cultural_highlights", "traditional_techniques"},
	},
	SchemaSocialPost: {
		example: `{"main_content":"post content","hashtags":["#tag1","#tag2"],"call_to_action":"CTA text","story_highlights":["highlight 1","highlight 2"],"best_posting_time":"suggested time"}`,
		keys:    []string{"main_content", "hashtags", "call_to_action"},
	},
	SchemaTranslations: {
		example: `{"translations":{"hi":"translated text","ta":"translated text"}}`,
		keys:    []string{"translations"},
	},
	SchemaRecommendations: {
		example: `{"recommendations":[{"reason":"why recommended","occasion":"suitable for","cultural_appeal":"cultural significance"}]}`,
		keys:    []string{"recommendations"},
	},
}

// ExpectedKeys lists the top-level fields a conforming reply carries. Key
// presence is checked after decoding, never assumed.
func (t SchemaTag) ExpectedKeys() []string {
	return schemas[t].keys
}

func (t SchemaTag) exampleJSON() string {
	return schemas[t].example
}

func missingKeys(tag SchemaTag, payload map[string]any) []string {
	var missing []string
	for _, key := range tag.ExpectedKeys() {
		if _, ok := payload[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
