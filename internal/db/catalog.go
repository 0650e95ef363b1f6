// Package db provides SurrealDB query functions for the restaurant catalog.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/dialdish/dialdish/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// restaurantRow is the stored shape of a restaurant record.
type restaurantRow struct {
	ID      surrealmodels.RecordID `json:"id"`
	Name    string                 `json:"name"`
	Phone   string                 `json:"phone"`
	Email   *string                `json:"email"`
	Address *string                `json:"address"`
	City    *string                `json:"city"`
	State   *string                `json:"state"`
	Website *string                `json:"website"`
	Active  bool                   `json:"active"`
}

func (r restaurantRow) toModel() models.Restaurant {
	return models.Restaurant{
		ID:      models.MustRecordIDString(r.ID),
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   deref(r.Email),
		Address: deref(r.Address),
		City:    deref(r.City),
		State:   deref(r.State),
		Website: deref(r.Website),
	}
}

type businessHourRow struct {
	ID           surrealmodels.RecordID `json:"id"`
	Day          string                 `json:"day"`
	Opens        *string                `json:"opens"`
	Closes       *string                `json:"closes"`
	ClosedAllDay bool                   `json:"closed_all_day"`
}

type menuCategoryRow struct {
	ID          surrealmodels.RecordID `json:"id"`
	Name        string                 `json:"name"`
	Description *string                `json:"description"`
	Active      bool                   `json:"active"`
}

type menuItemRow struct {
	ID           surrealmodels.RecordID `json:"id"`
	Name         string                 `json:"name"`
	Description  *string                `json:"description"`
	Price        float64                `json:"price"`
	Available    bool                   `json:"available"`
	DisplayOrder int                    `json:"display_order"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// QueryRestaurant retrieves a restaurant by ID.
// Returns ErrNotFound if it does not exist.
func (c *Client) QueryRestaurant(ctx context.Context, id string) (models.Restaurant, error) {
	start := time.Now()
	results, err := surrealdb.Query[[]restaurantRow](ctx, c.db, `
		SELECT * FROM type::record("restaurant", $id)
	`, map[string]any{"id": id})
	c.observe(start, err)
	if err != nil {
		return models.Restaurant{}, fmt.Errorf("get restaurant: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return models.Restaurant{}, fmt.Errorf("restaurant %q: %w", id, ErrNotFound)
	}
	return (*results)[0].Result[0].toModel(), nil
}

// QueryTodayHours retrieves a restaurant's opening hours for the given
// lowercase weekday name. Returns nil when no hours are recorded for that day.
func (c *Client) QueryTodayHours(ctx context.Context, restaurantID, day string) (*models.BusinessHour, error) {
	start := time.Now()
	results, err := surrealdb.Query[[]businessHourRow](ctx, c.db, `
		SELECT * FROM business_hour
		WHERE restaurant = type::record("restaurant", $rid) AND day = $day
		LIMIT 1
	`, map[string]any{"rid": restaurantID, "day": day})
	c.observe(start, err)
	if err != nil {
		return nil, fmt.Errorf("get business hours: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	row := (*results)[0].Result[0]
	return &models.BusinessHour{
		Day:          row.Day,
		Opens:        deref(row.Opens),
		Closes:       deref(row.Closes),
		ClosedAllDay: row.ClosedAllDay,
	}, nil
}

// QueryActiveMenuCategories retrieves a restaurant's active menu categories
// in name order.
func (c *Client) QueryActiveMenuCategories(ctx context.Context, restaurantID string) ([]models.MenuCategory, error) {
	start := time.Now()
	results, err := surrealdb.Query[[]menuCategoryRow](ctx, c.db, `
		SELECT * FROM menu_category
		WHERE restaurant = type::record("restaurant", $rid) AND active = true
		ORDER BY name ASC
	`, map[string]any{"rid": restaurantID})
	c.observe(start, err)
	if err != nil {
		return nil, fmt.Errorf("list menu categories: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.MenuCategory{}, nil
	}
	rows := (*results)[0].Result
	categories := make([]models.MenuCategory, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, models.MenuCategory{
			ID:          models.MustRecordIDString(row.ID),
			Name:        row.Name,
			Description: deref(row.Description),
			Active:      row.Active,
		})
	}
	return categories, nil
}

// QueryAvailableItems retrieves a category's available items ordered by
// display order, then name.
func (c *Client) QueryAvailableItems(ctx context.Context, categoryID string) ([]models.MenuItem, error) {
	start := time.Now()
	results, err := surrealdb.Query[[]menuItemRow](ctx, c.db, `
		SELECT * FROM menu_item
		WHERE category = type::record("menu_category", $cid) AND available = true
		ORDER BY display_order ASC, name ASC
	`, map[string]any{"cid": categoryID})
	c.observe(start, err)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.MenuItem{}, nil
	}
	rows := (*results)[0].Result
	items := make([]models.MenuItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.MenuItem{
			ID:           models.MustRecordIDString(row.ID),
			Name:         row.Name,
			Description:  deref(row.Description),
			Price:        row.Price,
			Available:    row.Available,
			DisplayOrder: row.DisplayOrder,
		})
	}
	return items, nil
}

// Catalog adapts the client to the call-flow catalog interface.
type Catalog struct {
	client *Client
}

// NewCatalog creates a catalog backed by the SurrealDB client.
func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

func (c *Catalog) Restaurant(ctx context.Context, id string) (models.Restaurant, error) {
	return c.client.QueryRestaurant(ctx, id)
}

func (c *Catalog) TodayHours(ctx context.Context, restaurantID, day string) (*models.BusinessHour, error) {
	return c.client.QueryTodayHours(ctx, restaurantID, day)
}

func (c *Catalog) ActiveMenuCategories(ctx context.Context, restaurantID string) ([]models.MenuCategory, error) {
	return c.client.QueryActiveMenuCategories(ctx, restaurantID)
}

func (c *Catalog) AvailableItems(ctx context.Context, categoryID string) ([]models.MenuItem, error) {
	return c.client.QueryAvailableItems(ctx, categoryID)
}
