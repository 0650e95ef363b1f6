package callflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dialdish/dialdish/internal/models"
)

// Catalog supplies read-only restaurant and menu data, pre-filtered to
// active/available records and pre-sorted for presentation.
type Catalog interface {
	Restaurant(ctx context.Context, id string) (models.Restaurant, error)
	TodayHours(ctx context.Context, restaurantID, day string) (*models.BusinessHour, error)
	ActiveMenuCategories(ctx context.Context, restaurantID string) ([]models.MenuCategory, error)
	AvailableItems(ctx context.Context, categoryID string) ([]models.MenuItem, error)
}

// OrderSubmitter is the order materialization boundary. The returned
// reference identifies the submitted order request; downstream delivery is
// not guaranteed by this call.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, req models.OrderRequest) (string, error)
}

// Answerer resolves a free-form question to a spoken reply. ok is false when
// no answer is available and the caller should fall back to a retry prompt.
type Answerer interface {
	Answer(ctx context.Context, query string) (reply string, ok bool)
}

// Affirmative tokens that advance the welcome step.
var affirmatives = map[string]bool{
	"1": true, "one": true, "yes": true, "menu": true, "order": true,
}

// Engine is the call-flow state machine. Advance is pure with respect to the
// session value: it never mutates its input and returns a new session, so
// replaying a turn against the same session value reproduces the same result.
type Engine struct {
	catalog  Catalog
	orders   OrderSubmitter
	answerer Answerer
	logger   *slog.Logger
	now      func() time.Time
}

// NewEngine creates a call-flow engine. answerer may be nil, disabling
// mid-order question deflection.
func NewEngine(catalog Catalog, orders OrderSubmitter, answerer Answerer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		catalog:  catalog,
		orders:   orders,
		answerer: answerer,
		logger:   logger,
		now:      time.Now,
	}
}

// WithNow overrides the engine clock (business-day lookups) for tests.
func (e *Engine) WithNow(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Advance applies one caller utterance to the session and derives the next
// prompt. It never fails: input errors re-prompt, data errors produce a
// contact-the-restaurant message, and unrecoverable state errors reset the
// session to welcome with an apology.
func (e *Engine) Advance(ctx context.Context, session models.Session, rawInput string) (models.Session, string) {
	input := strings.ToLower(strings.TrimSpace(rawInput))

	switch session.Step {
	case models.StepMenuSelection:
		return e.handleMenuSelection(ctx, session, input)
	case models.StepItemSelection:
		return e.handleItemSelection(ctx, session, input)
	case models.StepOrderConfirmation:
		return e.handleOrderConfirmation(ctx, session, input)
	case models.StepComplete:
		return session, completePrompt
	default:
		// Welcome, and any step value we do not recognise.
		return e.handleWelcome(ctx, session, input)
	}
}

func (e *Engine) handleWelcome(ctx context.Context, s models.Session, input string) (models.Session, string) {
	r, err := e.catalog.Restaurant(ctx, s.RestaurantID)
	if err != nil {
		e.logger.Error("restaurant lookup failed", "session", s.ID, "restaurant", s.RestaurantID, "error", err)
		return s, restaurantUnavailablePrompt
	}

	if affirmatives[input] {
		categories, err := e.catalog.ActiveMenuCategories(ctx, s.RestaurantID)
		if err != nil {
			e.logger.Error("category lookup failed", "session", s.ID, "error", err)
			return s, apologyPrompt
		}
		s.Step = models.StepMenuSelection
		return s, categoriesPrompt(r, categories)
	}

	return s, e.greeting(ctx, r)
}

func (e *Engine) handleMenuSelection(ctx context.Context, s models.Session, input string) (models.Session, string) {
	r, err := e.catalog.Restaurant(ctx, s.RestaurantID)
	if err != nil {
		return e.resetWithApology(s, "restaurant lookup failed", err)
	}
	categories, err := e.catalog.ActiveMenuCategories(ctx, s.RestaurantID)
	if err != nil {
		return e.resetWithApology(s, "category lookup failed", err)
	}

	if len(categories) == 0 {
		return s, categoriesPrompt(r, categories)
	}

	choice := ParseChoice(input)
	if choice < 1 || choice > len(categories) {
		retry := invalidChoicePrompt(len(categories))
		return s, e.deflectOrRetry(ctx, input, retry)
	}

	selected := categories[choice-1]
	items, err := e.catalog.AvailableItems(ctx, selected.ID)
	if err != nil {
		e.logger.Error("item lookup failed", "session", s.ID, "category", selected.ID, "error", err)
		return s, apologyPrompt
	}

	s.SelectedMenuID = selected.ID
	s.Step = models.StepItemSelection
	return s, itemsPrompt(selected, items)
}

func (e *Engine) handleItemSelection(ctx context.Context, s models.Session, input string) (models.Session, string) {
	r, err := e.catalog.Restaurant(ctx, s.RestaurantID)
	if err != nil {
		return e.resetWithApology(s, "restaurant lookup failed", err)
	}

	choice := ParseChoice(input)
	if choice == 0 {
		categories, err := e.catalog.ActiveMenuCategories(ctx, s.RestaurantID)
		if err != nil {
			return e.resetWithApology(s, "category lookup failed", err)
		}
		s.Step = models.StepMenuSelection
		s.SelectedMenuID = ""
		return s, categoriesPrompt(r, categories)
	}

	category, ok := e.selectedCategory(ctx, s)
	if !ok {
		return e.resetWithApology(s, "selected category no longer exists", nil)
	}
	items, err := e.catalog.AvailableItems(ctx, category.ID)
	if err != nil {
		return e.resetWithApology(s, "item lookup failed", err)
	}

	if len(items) == 0 {
		return s, itemsPrompt(category, items)
	}

	if choice < 1 || choice > len(items) {
		retry := invalidItemChoicePrompt(len(items))
		return s, e.deflectOrRetry(ctx, input, retry)
	}

	item := items[choice-1]
	s.SelectedItems = append(s.SelectedItems, models.SelectedItem{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  1,
	})
	s.Step = models.StepOrderConfirmation
	return s, confirmationPrompt(r, category, item, s.Customer("phone"))
}

func (e *Engine) handleOrderConfirmation(ctx context.Context, s models.Session, input string) (models.Session, string) {
	r, err := e.catalog.Restaurant(ctx, s.RestaurantID)
	if err != nil {
		return e.resetWithApology(s, "restaurant lookup failed", err)
	}

	switch parseConfirmation(input) {
	case confirmYes:
		category, ok := e.selectedCategory(ctx, s)
		if !ok {
			return e.resetWithApology(s, "selected category no longer exists", nil)
		}

		req := models.OrderRequest{
			RestaurantID:   s.RestaurantID,
			RestaurantName: r.Name,
			CategoryID:     category.ID,
			CategoryName:   category.Name,
			Items:          s.SelectedItems,
			CustomerPhone:  s.Customer("phone"),
			Notes:          orderNotes(s.SelectedItems),
			PlacedAt:       e.now(),
		}
		orderRef, err := e.orders.SubmitOrder(ctx, req)
		if err != nil {
			e.logger.Error("order submission failed", "session", s.ID, "error", err)
			// Stay at confirmation so the caller can retry or cancel.
			return s, apologyPrompt + " " + confirmRetryPrompt
		}

		items := s.SelectedItems
		s.Step = models.StepComplete
		return s, successPrompt(r, category, items, s.Customer("phone"), orderRef)

	case confirmNo:
		s.ResetToWelcome()
		return s, "Order cancelled. " + e.greeting(ctx, r)

	default:
		return s, e.deflectOrRetry(ctx, input, confirmRetryPrompt)
	}
}

// greeting builds the welcome message, tolerating missing hours data.
func (e *Engine) greeting(ctx context.Context, r models.Restaurant) string {
	day := strings.ToLower(e.now().Weekday().String())
	today, err := e.catalog.TodayHours(ctx, r.ID, day)
	if err != nil {
		e.logger.Warn("business hours lookup failed", "restaurant", r.ID, "error", err)
		today = nil
	}
	categories, err := e.catalog.ActiveMenuCategories(ctx, r.ID)
	if err != nil {
		e.logger.Warn("category count lookup failed", "restaurant", r.ID, "error", err)
	}
	return welcomeGreeting(r, today, len(categories))
}

// deflectOrRetry answers a mid-order free-form question through the
// knowledge engine, splicing the answer before the retry prompt. The step
// never changes here.
func (e *Engine) deflectOrRetry(ctx context.Context, input, retry string) string {
	if e.answerer != nil && LooksLikeQuestion(input) {
		if reply, ok := e.answerer.Answer(ctx, input); ok {
			return reply + " " + retry
		}
	}
	return retry
}

// selectedCategory resolves the session's chosen category against the
// catalog. ok is false when the reference is stale.
func (e *Engine) selectedCategory(ctx context.Context, s models.Session) (models.MenuCategory, bool) {
	if s.SelectedMenuID == "" {
		return models.MenuCategory{}, false
	}
	categories, err := e.catalog.ActiveMenuCategories(ctx, s.RestaurantID)
	if err != nil {
		return models.MenuCategory{}, false
	}
	for _, c := range categories {
		if c.ID == s.SelectedMenuID {
			return c, true
		}
	}
	return models.MenuCategory{}, false
}

// resetWithApology handles unrecoverable state errors: log, reset to
// welcome, apologize. The caller always gets a spoken prompt.
func (e *Engine) resetWithApology(s models.Session, msg string, err error) (models.Session, string) {
	e.logger.Error(msg, "session", s.ID, "error", err)
	s.ResetToWelcome()
	return s, apologyPrompt
}

type confirmation int

const (
	confirmUnknown confirmation = iota
	confirmYes
	confirmNo
)

func parseConfirmation(input string) confirmation {
	switch input {
	case "1", "one", "yes", "confirm":
		return confirmYes
	case "2", "two", "no", "cancel":
		return confirmNo
	default:
		return confirmUnknown
	}
}

func orderNotes(items []models.SelectedItem) string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return fmt.Sprintf("Voice order - Items: %s", strings.Join(names, ", "))
}
