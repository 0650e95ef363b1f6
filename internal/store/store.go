// Package store defines the session persistence contract for ongoing calls
// and provides an in-memory implementation.
//
// Operations on one session id never block or race operations on another;
// Mutate serializes turns for a single session so a turn is applied
// atomically (a session never persists a partial transition).
package store

import (
	"context"

	"github.com/dialdish/dialdish/internal/models"
)

// InitData seeds a session on first contact. Both fields are immutable for
// the session's lifetime after creation.
type InitData struct {
	RestaurantID string
	CustomerInfo map[string]string
}

// SessionStore holds one mutable record per ongoing call, keyed by session id.
type SessionStore interface {
	// GetOrCreate returns the session for id, creating it at the welcome
	// step with init data when absent.
	GetOrCreate(ctx context.Context, id string, init InitData) (models.Session, error)

	// Save persists the session as a whole.
	Save(ctx context.Context, session models.Session) error

	// Mutate applies fn to the session under the session's lock and
	// persists the result. fn receives the current session value and
	// returns the replacement; returning an error aborts without saving.
	Mutate(ctx context.Context, id string, init InitData, fn func(models.Session) (models.Session, error)) (models.Session, error)
}
