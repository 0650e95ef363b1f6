// Package db provides SurrealDB query functions for the knowledge base.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/dialdish/dialdish/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

type faqRow struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category *string  `json:"category"`
	Keywords []string `json:"keywords"`
}

type pricingPlanRow struct {
	Name         string   `json:"name"`
	PlanType     string   `json:"plan_type"`
	Price        string   `json:"price"`
	Description  *string  `json:"description"`
	Features     []string `json:"features"`
	CallLimit    *string  `json:"call_limit"`
	DisplayOrder int      `json:"display_order"`
}

type knowledgeItemRow struct {
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	Category        *string  `json:"category"`
	Keywords        []string `json:"keywords"`
	ConfidenceBoost int      `json:"confidence_boost"`
	DisplayOrder    int      `json:"display_order"`
}

type serviceFeatureRow struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	DisplayOrder int     `json:"display_order"`
}

type successStoryRow struct {
	RestaurantName string   `json:"restaurant_name"`
	RestaurantType *string  `json:"restaurant_type"`
	Story          string   `json:"story"`
	Metrics        []string `json:"metrics"`
	Featured       bool     `json:"featured"`
	DisplayOrder   int      `json:"display_order"`
}

// Knowledge adapts the client to the retrieval engine's provider interface.
// All queries return active records only.
type Knowledge struct {
	client *Client
}

// NewKnowledge creates a knowledge provider backed by the SurrealDB client.
func NewKnowledge(client *Client) *Knowledge {
	return &Knowledge{client: client}
}

func (k *Knowledge) ActiveFAQs(ctx context.Context) ([]models.FAQ, error) {
	start := time.Now()
	results, err := surrealdb.Query[[]faqRow](ctx, k.client.db, `
		SELECT * FROM faq WHERE active = true
	`, nil)
	k.client.observe(start, err)
	if err != nil {
		return nil, fmt.Errorf("list faqs: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.FAQ{}, nil
	}
	rows := (*results)[0].Result
	faqs := make([]models.FAQ, 0, len(rows))
	for _, row := range rows {
		faqs = append(faqs, models.FAQ{
			Question: row.Question,
			Answer:   row.Answer,
			Category: deref(row.Category),
			Keywords: row.Keywords,
		})
	}
	return faqs, nil
}

func (k *Knowledge) ActivePricingPlans(ctx context.Context) ([]models.PricingPlan, error) {
	start := time.Now()
	results, err := surrealdb.Query[[]pricingPlanRow](ctx, k.client.db, `
		SELECT * FROM pricing_plan WHERE active = true ORDER BY display_order ASC
	`, nil)
	k.client.observe(start, err)
	if err != nil {
		return nil, fmt.Errorf("list pricing plans: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.PricingPlan{}, nil
	}
	rows := (*results)[0].Result
	plans := make([]models.PricingPlan, 0, len(rows))
	for _, row := range rows {
		plans = append(plans, models.PricingPlan{
			Name:        row.Name,
			PlanType:    row.PlanType,
			Price:       row.Price,
			Description: deref(row.Description),
			Features:    row.Features,
			CallLimit:   deref(row.CallLimit),
			Order:       row.DisplayOrder,
		})
	}
	return plans, nil
}

func (k *Knowledge) ActiveKnowledgeItems(ctx context.Context) ([]models.KnowledgeItem, error) {
	start := time.Now()
	results, err := surrealdb.Query[[]knowledgeItemRow](ctx, k.client.db, `
		SELECT * FROM knowledge_item WHERE active = true ORDER BY display_order ASC
	`, nil)
	k.client.observe(start, err)
	if err != nil {
		return nil, fmt.Errorf("list knowledge items: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.KnowledgeItem{}, nil
	}
	rows := (*results)[0].Result
	items := make([]models.KnowledgeItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.KnowledgeItem{
			Title:           row.Title,
			Content:         row.Content,
			Category:        deref(row.Category),
			Keywords:        row.Keywords,
			ConfidenceBoost: row.ConfidenceBoost,
			Order:           row.DisplayOrder,
		})
	}
	return items, nil
}

func (k *Knowledge) ActiveFeatures(ctx context.Context) ([]models.ServiceFeature, error) {
	start := time.Now()
	results, err := surrealdb.Query[[]serviceFeatureRow](ctx, k.client.db, `
		SELECT * FROM service_feature WHERE active = true ORDER BY display_order ASC
	`, nil)
	k.client.observe(start, err)
	if err != nil {
		return nil, fmt.Errorf("list service features: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.ServiceFeature{}, nil
	}
	rows := (*results)[0].Result
	features := make([]models.ServiceFeature, 0, len(rows))
	for _, row := range rows {
		features = append(features, models.ServiceFeature{
			Name:        row.Name,
			Description: deref(row.Description),
			Category:    deref(row.Category),
			Order:       row.DisplayOrder,
		})
	}
	return features, nil
}

// FeaturedSuccessStories returns up to limit active stories, featured ones
// first. Non-featured stories fill the remainder rather than being excluded.
func (k *Knowledge) FeaturedSuccessStories(ctx context.Context, limit int) ([]models.SuccessStory, error) {
	start := time.Now()
	results, err := surrealdb.Query[[]successStoryRow](ctx, k.client.db, `
		SELECT * FROM success_story
		WHERE active = true
		ORDER BY featured DESC, display_order ASC
		LIMIT $limit
	`, map[string]any{"limit": limit})
	k.client.observe(start, err)
	if err != nil {
		return nil, fmt.Errorf("list success stories: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.SuccessStory{}, nil
	}
	rows := (*results)[0].Result
	stories := make([]models.SuccessStory, 0, len(rows))
	for _, row := range rows {
		stories = append(stories, models.SuccessStory{
			RestaurantName: row.RestaurantName,
			RestaurantType: deref(row.RestaurantType),
			Story:          row.Story,
			Metrics:        row.Metrics,
			Featured:       row.Featured,
			Order:          row.DisplayOrder,
		})
	}
	return stories, nil
}
