package models

// MatchSource identifies which knowledge source produced a match.
type MatchSource string

// Knowledge sources, in ranking precedence order: ties on confidence keep
// the earlier source first.
const (
	SourceGoodbye       MatchSource = "goodbye"
	SourceFAQ           MatchSource = "faq"
	SourcePricing       MatchSource = "pricing"
	SourceKnowledgeItem MatchSource = "knowledge_item"
	SourceFeatures      MatchSource = "features"
	SourceStories       MatchSource = "success_stories"
)

// FAQ is a question/answer pair with trigger keywords.
type FAQ struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// PricingPlan describes one subscription tier. Price is a display string
// ("$99/month", "custom pricing"), not an amount.
type PricingPlan struct {
	Name        string   `json:"name"`
	PlanType    string   `json:"plan_type"`
	Price       string   `json:"price"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	CallLimit   string   `json:"call_limit,omitempty"`
	Order       int      `json:"order,omitempty"`
}

// KnowledgeItem is a free-form knowledge entry. ConfidenceBoost shifts the
// computed match confidence and is expected to stay within [-50, 50].
type KnowledgeItem struct {
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	Category        string   `json:"category,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	ConfidenceBoost int      `json:"confidence_boost,omitempty"`
	Order           int      `json:"order,omitempty"`
}

// ServiceFeature describes one capability of the voice assistant.
type ServiceFeature struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Order       int    `json:"order,omitempty"`
}

// SuccessStory is a customer case study.
type SuccessStory struct {
	RestaurantName string   `json:"restaurant_name"`
	RestaurantType string   `json:"restaurant_type,omitempty"`
	Story          string   `json:"story"`
	Metrics        []string `json:"metrics,omitempty"`
	Featured       bool     `json:"featured,omitempty"`
	Order          int      `json:"order,omitempty"`
}

// Match is a scored candidate answer from one knowledge source. Exactly one
// payload field is populated, matching Source.
type Match struct {
	Source     MatchSource
	Confidence int

	FAQ      *FAQ
	Plans    []PricingPlan
	Item     *KnowledgeItem
	Features []ServiceFeature
	Stories  []SuccessStory

	// Query is the raw user utterance; set on goodbye matches.
	Query string
}

// ClampConfidence bounds a confidence score to [0, 100].
func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
