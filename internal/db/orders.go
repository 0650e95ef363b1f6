// Package db provides SurrealDB-backed order persistence.
package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dialdish/dialdish/internal/models"
	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

type orderRow struct {
	ID             surrealmodels.RecordID `json:"id"`
	OrderRef       string                 `json:"order_ref"`
	RestaurantID   string                 `json:"restaurant_id"`
	RestaurantName string                 `json:"restaurant_name"`
	CategoryID     string                 `json:"category_id"`
	CategoryName   string                 `json:"category_name"`
	Items          []models.SelectedItem  `json:"items"`
	CustomerPhone  *string                `json:"customer_phone"`
	Notes          *string                `json:"notes"`
	PlacedAt       time.Time              `json:"placed_at"`
}

func (r orderRow) toModel() models.OrderRequest {
	return models.OrderRequest{
		RestaurantID:   r.RestaurantID,
		RestaurantName: r.RestaurantName,
		CategoryID:     r.CategoryID,
		CategoryName:   r.CategoryName,
		Items:          r.Items,
		CustomerPhone:  deref(r.CustomerPhone),
		Notes:          deref(r.Notes),
		PlacedAt:       r.PlacedAt,
	}
}

// Orders persists submitted order requests.
type Orders struct {
	client *Client
	newRef func() string
}

// NewOrders creates an order store backed by the SurrealDB client.
func NewOrders(client *Client) *Orders {
	return &Orders{client: client, newRef: newOrderRef}
}

// newOrderRef generates a short reference spoken back to the caller.
func newOrderRef() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// SubmitOrder stores the order request and returns its reference.
func (o *Orders) SubmitOrder(ctx context.Context, req models.OrderRequest) (string, error) {
	ref := o.newRef()

	content := map[string]any{
		"order_ref":       ref,
		"restaurant_id":   req.RestaurantID,
		"restaurant_name": req.RestaurantName,
		"category_id":     req.CategoryID,
		"category_name":   req.CategoryName,
		"items":           req.Items,
		"placed_at":       req.PlacedAt,
	}
	if req.Items == nil {
		content["items"] = []models.SelectedItem{}
	}
	if req.CustomerPhone != "" {
		content["customer_phone"] = req.CustomerPhone
	}
	if req.Notes != "" {
		content["notes"] = req.Notes
	}

	start := time.Now()
	_, err := surrealdb.Query[any](ctx, o.client.db, `
		CREATE food_order CONTENT $content
	`, map[string]any{"content": content})
	o.client.observe(start, err)
	if err != nil {
		return "", fmt.Errorf("submit order: %w", wrapQueryError(err))
	}
	return ref, nil
}

// QueryOrderByRef retrieves a stored order by its spoken reference.
// Returns ErrNotFound when no order carries the reference.
func (o *Orders) QueryOrderByRef(ctx context.Context, ref string) (models.OrderRequest, error) {
	start := time.Now()
	results, err := surrealdb.Query[[]orderRow](ctx, o.client.db, `
		SELECT * FROM food_order WHERE order_ref = $ref LIMIT 1
	`, map[string]any{"ref": ref})
	o.client.observe(start, err)
	if err != nil {
		return models.OrderRequest{}, fmt.Errorf("get order: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return models.OrderRequest{}, fmt.Errorf("order %q: %w", ref, ErrNotFound)
	}
	return (*results)[0].Result[0].toModel(), nil
}
