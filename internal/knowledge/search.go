package knowledge

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/dialdish/dialdish/internal/models"
)

// maxMatches bounds the merged result set.
const maxMatches = 3

// featuredStoryLimit is how many stories the story searcher bundles.
const featuredStoryLimit = 3

// Provider supplies active knowledge records. Implementations own filtering
// (active/available only) and presentation ordering.
type Provider interface {
	ActiveFAQs(ctx context.Context) ([]models.FAQ, error)
	ActivePricingPlans(ctx context.Context) ([]models.PricingPlan, error)
	ActiveKnowledgeItems(ctx context.Context) ([]models.KnowledgeItem, error)
	ActiveFeatures(ctx context.Context) ([]models.ServiceFeature, error)
	FeaturedSuccessStories(ctx context.Context, limit int) ([]models.SuccessStory, error)
}

// Result is a ranked, truncated set of matches. Confidence is the confidence
// of the best match, or 0 when nothing matched.
type Result struct {
	Matches    []models.Match
	Confidence int
}

// Farewell phrases that short-circuit every other searcher.
var goodbyePhrases = []string{
	"bye", "goodbye", "good bye", "see you", "thanks", "thank you",
	"that's all", "thats all", "no more questions", "i'm done", "im done",
	"have a good day", "take care", "later", "farewell", "done", "finished",
}

// Keyword families for topic scoring and source triggering.
var (
	pricingKeywords = []string{"price", "cost", "plan", "pricing", "how much", "fee"}
	setupKeywords   = []string{"setup", "install", "implement", "start", "begin", "integration"}
	featureKeywords = []string{"feature", "benefit", "capability", "what can", "how does"}

	pricingTriggers = []string{"price", "cost", "plan", "pricing", "how much", "fee", "basic", "professional", "enterprise"}
	featureTriggers = []string{"feature", "benefit", "capability", "what can", "how does", "voice", "assistant"}
	storyTriggers   = []string{"success", "story", "case", "example", "customer", "result", "improvement"}
)

// Engine searches all knowledge sources and ranks the merged matches.
// It is stateless; a single Engine is safe for concurrent use.
type Engine struct {
	provider Provider
	logger   *slog.Logger
}

// NewEngine creates a retrieval engine over the given provider.
func NewEngine(provider Provider, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{provider: provider, logger: logger}
}

// Search normalizes the query, checks the farewell vocabulary, then runs the
// five source searchers and merges their matches. A failing source degrades
// the result instead of aborting the search; an empty result is not an error.
func (e *Engine) Search(ctx context.Context, query string) Result {
	q := strings.ToLower(query)

	if containsAny(q, goodbyePhrases) {
		m := models.Match{Source: models.SourceGoodbye, Confidence: 100, Query: query}
		return Result{Matches: []models.Match{m}, Confidence: 100}
	}

	var matches []models.Match

	if faqs, err := e.provider.ActiveFAQs(ctx); err != nil {
		e.logger.Warn("faq search unavailable", "error", err)
	} else {
		matches = append(matches, SearchFAQs(faqs, q)...)
	}

	if plans, err := e.provider.ActivePricingPlans(ctx); err != nil {
		e.logger.Warn("pricing search unavailable", "error", err)
	} else {
		matches = append(matches, SearchPricing(plans, q)...)
	}

	if items, err := e.provider.ActiveKnowledgeItems(ctx); err != nil {
		e.logger.Warn("knowledge item search unavailable", "error", err)
	} else {
		matches = append(matches, SearchKnowledgeItems(items, q)...)
	}

	if features, err := e.provider.ActiveFeatures(ctx); err != nil {
		e.logger.Warn("feature search unavailable", "error", err)
	} else {
		matches = append(matches, SearchFeatures(features, q)...)
	}

	if stories, err := e.provider.FeaturedSuccessStories(ctx, featuredStoryLimit); err != nil {
		e.logger.Warn("success story search unavailable", "error", err)
	} else {
		matches = append(matches, SearchSuccessStories(stories, q)...)
	}

	if len(matches) == 0 {
		return Result{}
	}

	// Stable sort keeps source precedence on confidence ties.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}

	return Result{Matches: matches, Confidence: matches[0].Confidence}
}

// SearchFAQs scores every FAQ question against the lowercased query.
// Candidates are kept above confidence 60.
func SearchFAQs(faqs []models.FAQ, q string) []models.Match {
	var matches []models.Match
	for i := range faqs {
		faq := faqs[i]
		question := strings.ToLower(faq.Question)

		confidence := 0
		if sim := PartialRatio(q, question); sim > 60 {
			confidence = sim
		}
		for _, kw := range faq.Keywords {
			if strings.Contains(q, strings.ToLower(kw)) && confidence < 85 {
				confidence = 85
			}
		}
		switch {
		case containsAny(q, pricingKeywords) && strings.Contains(question, "price"):
			confidence = maxInt(confidence, 90)
		case containsAny(q, setupKeywords) && strings.Contains(question, "setup"):
			confidence = maxInt(confidence, 90)
		case containsAny(q, featureKeywords) && strings.Contains(question, "feature"):
			confidence = maxInt(confidence, 85)
		}

		if confidence > 60 {
			matches = append(matches, models.Match{
				Source:     models.SourceFAQ,
				Confidence: models.ClampConfidence(confidence),
				FAQ:        &faq,
			})
		}
	}
	return matches
}

// SearchPricing bundles all active plans into one match when the query
// carries a pricing trigger. Tier disambiguation happens at format time.
func SearchPricing(plans []models.PricingPlan, q string) []models.Match {
	if !containsAny(q, pricingTriggers) || len(plans) == 0 {
		return nil
	}
	return []models.Match{{
		Source:     models.SourcePricing,
		Confidence: 95,
		Plans:      plans,
	}}
}

// SearchKnowledgeItems scores title, content prefix, and keywords, then
// applies the item's static confidence boost. Candidates are kept above 50.
func SearchKnowledgeItems(items []models.KnowledgeItem, q string) []models.Match {
	var matches []models.Match
	for i := range items {
		item := items[i]

		confidence := 0
		if sim := PartialRatio(q, strings.ToLower(item.Title)); sim > 50 {
			confidence = sim
		}
		prefix := item.Content
		if r := []rune(prefix); len(r) > 200 {
			prefix = string(r[:200])
		}
		// Content matches weigh 10 points below title matches.
		if sim := PartialRatio(q, strings.ToLower(prefix)); sim > 40 {
			confidence = maxInt(confidence, sim-10)
		}
		for _, kw := range item.Keywords {
			if strings.Contains(q, strings.ToLower(kw)) {
				confidence = maxInt(confidence, 80)
			}
		}

		confidence = models.ClampConfidence(confidence + item.ConfidenceBoost)
		if confidence > 50 {
			matches = append(matches, models.Match{
				Source:     models.SourceKnowledgeItem,
				Confidence: confidence,
				Item:       &item,
			})
		}
	}
	return matches
}

// SearchFeatures bundles all active features into one fixed-confidence match
// when the query carries a feature trigger.
func SearchFeatures(features []models.ServiceFeature, q string) []models.Match {
	if !containsAny(q, featureTriggers) || len(features) == 0 {
		return nil
	}
	return []models.Match{{
		Source:     models.SourceFeatures,
		Confidence: 85,
		Features:   features,
	}}
}

// SearchSuccessStories bundles the featured stories into one
// fixed-confidence match when the query carries a story trigger.
func SearchSuccessStories(stories []models.SuccessStory, q string) []models.Match {
	if !containsAny(q, storyTriggers) || len(stories) == 0 {
		return nil
	}
	return []models.Match{{
		Source:     models.SourceStories,
		Confidence: 80,
		Stories:    stories,
	}}
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
