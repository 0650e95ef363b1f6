// Package notify defines the outbound notification boundary for submitted
// orders. Delivery mechanics (SMS gateways, mail) live behind this interface
// outside the core.
package notify

import (
	"context"
	"log/slog"

	"github.com/dialdish/dialdish/internal/models"
)

// Notifier announces a submitted order to the restaurant and the customer.
// Implementations are fire-and-forget: the core does not depend on delivery.
type Notifier interface {
	OrderSubmitted(ctx context.Context, orderRef string, req models.OrderRequest)
}

// Log is a Notifier that only records the event. It stands in when no
// gateway is configured, and in tests.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a logging notifier.
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// OrderSubmitted implements Notifier.
func (l *Log) OrderSubmitted(ctx context.Context, orderRef string, req models.OrderRequest) {
	l.logger.Info("order notification",
		"order_ref", orderRef,
		"restaurant", req.RestaurantName,
		"category", req.CategoryName,
		"items", len(req.Items),
		"customer_phone", req.CustomerPhone,
	)
}
