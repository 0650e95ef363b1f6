// Package db provides integration tests for SurrealDB operations.
package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/dialdish/dialdish/internal/models"
	"github.com/dialdish/dialdish/internal/store"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDB *Client
var testContainer testcontainers.Container

// TestMain sets up and tears down the SurrealDB container for all tests.
func TestMain(m *testing.M) {
	// Disable ryuk (cleanup container) as it can cause issues in some environments
	os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")

	ctx := context.Background()

	var err error
	testContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "surrealdb/surrealdb:v3.0.0-beta.1",
			ExposedPorts: []string{"8000/tcp"},
			Cmd:          []string{"start", "--log", "info", "--user", "root", "--pass", "root"},
			WaitingFor:   wait.ForLog("Started web server").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("Failed to start SurrealDB container: %v", err)
	}

	host, err := testContainer.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get container host: %v", err)
	}
	// Workaround: testcontainers may return "null" as host in some environments
	if host == "" || host == "null" {
		host = "localhost"
	}
	mappedPort, err := testContainer.MappedPort(ctx, "8000")
	if err != nil {
		log.Fatalf("Failed to get mapped port: %v", err)
	}

	testDB, err = NewClient(ctx, Config{
		URL:       fmt.Sprintf("ws://%s:%s/rpc", host, mappedPort.Port()),
		Namespace: "test",
		Database:  "test",
		Username:  "root",
		Password:  "root",
		AuthLevel: "root",
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := testDB.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	if err := testDB.SeedDemoData(ctx); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	code := m.Run()

	_ = testDB.Close(ctx)
	_ = testContainer.Terminate(ctx)

	os.Exit(code)
}

// =============================================================================
// CATALOG TESTS
// =============================================================================

func TestQueryRestaurant(t *testing.T) {
	ctx := context.Background()

	r, err := testDB.QueryRestaurant(ctx, "demo")
	if err != nil {
		t.Fatalf("QueryRestaurant failed: %v", err)
	}
	if r.Name != "Spice Garden" {
		t.Errorf("Expected name 'Spice Garden', got %q", r.Name)
	}
	if r.Phone == "" {
		t.Error("Expected phone to be set")
	}
	if got := r.FullAddress(); got != "14 MG Road, Bengaluru, Karnataka" {
		t.Errorf("FullAddress = %q", got)
	}
}

func TestQueryRestaurantNotFound(t *testing.T) {
	ctx := context.Background()

	_, err := testDB.QueryRestaurant(ctx, "does-not-exist")
	if err == nil {
		t.Fatal("Expected error for missing restaurant")
	}
}

func TestQueryTodayHours(t *testing.T) {
	ctx := context.Background()

	hours, err := testDB.QueryTodayHours(ctx, "demo", "friday")
	if err != nil {
		t.Fatalf("QueryTodayHours failed: %v", err)
	}
	if hours == nil {
		t.Fatal("Expected hours for friday")
	}
	if hours.Opens != "11:00 AM" || hours.Closes != "11:00 PM" {
		t.Errorf("Friday hours = %q-%q", hours.Opens, hours.Closes)
	}

	sunday, err := testDB.QueryTodayHours(ctx, "demo", "sunday")
	if err != nil {
		t.Fatalf("QueryTodayHours failed: %v", err)
	}
	if sunday == nil || !sunday.ClosedAllDay {
		t.Error("Expected sunday to be closed all day")
	}

	missing, err := testDB.QueryTodayHours(ctx, "demo", "someday")
	if err != nil {
		t.Fatalf("QueryTodayHours failed: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil hours for unknown day")
	}
}

func TestQueryActiveMenuCategories(t *testing.T) {
	ctx := context.Background()

	categories, err := testDB.QueryActiveMenuCategories(ctx, "demo")
	if err != nil {
		t.Fatalf("QueryActiveMenuCategories failed: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("Expected 3 categories, got %d", len(categories))
	}
	// Name order
	if categories[0].Name != "Desserts" || categories[2].Name != "Starters" {
		t.Errorf("Unexpected category order: %v", categories)
	}
}

func TestQueryAvailableItems(t *testing.T) {
	ctx := context.Background()

	items, err := testDB.QueryAvailableItems(ctx, "demo_starters")
	if err != nil {
		t.Fatalf("QueryAvailableItems failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	if items[0].Name != "Paneer Tikka" {
		t.Errorf("Expected 'Paneer Tikka' first, got %q", items[0].Name)
	}
	if items[0].Price != 220.0 {
		t.Errorf("Price = %v, want 220", items[0].Price)
	}
}

// =============================================================================
// KNOWLEDGE TESTS
// =============================================================================

func TestKnowledgeProvider(t *testing.T) {
	ctx := context.Background()
	k := NewKnowledge(testDB)

	faqs, err := k.ActiveFAQs(ctx)
	if err != nil {
		t.Fatalf("ActiveFAQs failed: %v", err)
	}
	if len(faqs) != 2 {
		t.Errorf("Expected 2 FAQs, got %d", len(faqs))
	}

	plans, err := k.ActivePricingPlans(ctx)
	if err != nil {
		t.Fatalf("ActivePricingPlans failed: %v", err)
	}
	if len(plans) != 3 {
		t.Fatalf("Expected 3 plans, got %d", len(plans))
	}
	if plans[0].PlanType != "basic" || plans[2].PlanType != "enterprise" {
		t.Errorf("Unexpected plan order: %v", plans)
	}
	if plans[0].Price != "$99/month" {
		t.Errorf("Basic price = %q", plans[0].Price)
	}

	items, err := k.ActiveKnowledgeItems(ctx)
	if err != nil {
		t.Fatalf("ActiveKnowledgeItems failed: %v", err)
	}
	if len(items) != 1 || items[0].ConfidenceBoost != 10 {
		t.Errorf("Unexpected knowledge items: %v", items)
	}

	features, err := k.ActiveFeatures(ctx)
	if err != nil {
		t.Fatalf("ActiveFeatures failed: %v", err)
	}
	if len(features) != 3 {
		t.Errorf("Expected 3 features, got %d", len(features))
	}

	stories, err := k.FeaturedSuccessStories(ctx, 3)
	if err != nil {
		t.Fatalf("FeaturedSuccessStories failed: %v", err)
	}
	if len(stories) != 1 || stories[0].RestaurantName != "Tandoor Express" {
		t.Errorf("Unexpected stories: %v", stories)
	}
}

func TestSuccessStoriesFallBackToNonFeatured(t *testing.T) {
	ctx := context.Background()
	k := NewKnowledge(testDB)

	_, err := testDB.Query(ctx, `
		CREATE success_story:extra CONTENT {
			restaurant_name: "Dosa Corner",
			story: "Dosa Corner cut lunch-hour hold times in half.",
			featured: false, display_order: 2, active: true
		}
	`, nil)
	if err != nil {
		t.Fatalf("insert story: %v", err)
	}
	defer func() {
		_, _ = testDB.Query(ctx, "DELETE success_story:extra", nil)
	}()

	stories, err := k.FeaturedSuccessStories(ctx, 3)
	if err != nil {
		t.Fatalf("FeaturedSuccessStories failed: %v", err)
	}
	if len(stories) != 2 {
		t.Fatalf("Expected 2 stories, got %d", len(stories))
	}
	if stories[0].RestaurantName != "Tandoor Express" {
		t.Errorf("Featured story should rank first, got %q", stories[0].RestaurantName)
	}
	if stories[1].RestaurantName != "Dosa Corner" {
		t.Errorf("Non-featured story should fill the remainder, got %q", stories[1].RestaurantName)
	}
}

// =============================================================================
// SESSION TESTS
// =============================================================================

func TestSessionsGetOrCreate(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(testDB)

	init := store.InitData{
		RestaurantID: "demo",
		CustomerInfo: map[string]string{"phone": "+911234567890"},
	}

	s, err := sessions.GetOrCreate(ctx, "CA-test-1", init)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if s.Step != models.StepWelcome {
		t.Errorf("Step = %q, want welcome", s.Step)
	}
	if s.RestaurantID != "demo" {
		t.Errorf("RestaurantID = %q", s.RestaurantID)
	}

	// Second call returns the stored session, not a fresh one.
	again, err := sessions.GetOrCreate(ctx, "CA-test-1", store.InitData{RestaurantID: "other"})
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if again.RestaurantID != "demo" {
		t.Errorf("RestaurantID = %q, want demo", again.RestaurantID)
	}
	if again.Customer("phone") != "+911234567890" {
		t.Errorf("Customer phone = %q", again.Customer("phone"))
	}
}

func TestSessionsMutateRoundTrip(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(testDB)
	init := store.InitData{RestaurantID: "demo"}

	_, err := sessions.Mutate(ctx, "CA-test-2", init, func(s models.Session) (models.Session, error) {
		s.Step = models.StepItemSelection
		s.SelectedMenuID = "demo_starters"
		s.SelectedItems = append(s.SelectedItems, models.SelectedItem{
			ItemID: "item-1", Name: "Paneer Tikka", UnitPrice: 220, Quantity: 1,
		})
		s.LastInput = "2"
		s.LastPrompt = "You selected Starters."
		s.LastStep = models.StepMenuSelection
		return s, nil
	})
	if err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}

	got, err := sessions.GetOrCreate(ctx, "CA-test-2", init)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if got.Step != models.StepItemSelection {
		t.Errorf("Step = %q", got.Step)
	}
	if got.SelectedMenuID != "demo_starters" {
		t.Errorf("SelectedMenuID = %q", got.SelectedMenuID)
	}
	if len(got.SelectedItems) != 1 || got.SelectedItems[0].Name != "Paneer Tikka" {
		t.Errorf("SelectedItems = %v", got.SelectedItems)
	}
	if got.LastInput != "2" || got.LastStep != models.StepMenuSelection {
		t.Errorf("Dedupe fields = %q/%q", got.LastInput, got.LastStep)
	}
}

func TestSessionsMutateErrorDiscards(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(testDB)
	init := store.InitData{RestaurantID: "demo"}

	_, err := sessions.Mutate(ctx, "CA-test-3", init, func(s models.Session) (models.Session, error) {
		s.Step = models.StepComplete
		return s, fmt.Errorf("boom")
	})
	if err == nil {
		t.Fatal("Expected error from Mutate")
	}

	got, err := sessions.GetOrCreate(ctx, "CA-test-3", init)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if got.Step != models.StepWelcome {
		t.Errorf("Step = %q, want welcome after aborted mutation", got.Step)
	}
}

// =============================================================================
// ORDER TESTS
// =============================================================================

func TestSubmitOrder(t *testing.T) {
	ctx := context.Background()
	orders := NewOrders(testDB)

	ref, err := orders.SubmitOrder(ctx, models.OrderRequest{
		RestaurantID:   "demo",
		RestaurantName: "Spice Garden",
		CategoryID:     "demo_starters",
		CategoryName:   "Starters",
		Items: []models.SelectedItem{
			{ItemID: "item-1", Name: "Paneer Tikka", UnitPrice: 220, Quantity: 2},
		},
		CustomerPhone: "+911234567890",
		PlacedAt:      time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("SubmitOrder failed: %v", err)
	}
	if ref == "" {
		t.Fatal("Expected non-empty order reference")
	}

	got, err := orders.QueryOrderByRef(ctx, ref)
	if err != nil {
		t.Fatalf("QueryOrderByRef failed: %v", err)
	}
	if got.RestaurantName != "Spice Garden" {
		t.Errorf("RestaurantName = %q", got.RestaurantName)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Errorf("Items = %v", got.Items)
	}
}

func TestQueryOrderByRefNotFound(t *testing.T) {
	ctx := context.Background()
	orders := NewOrders(testDB)

	_, err := orders.QueryOrderByRef(ctx, "ORD-MISSING")
	if err == nil {
		t.Fatal("Expected error for missing order")
	}
}
