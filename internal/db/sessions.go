// Package db provides SurrealDB-backed call session persistence.
package db

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/dialdish/dialdish/internal/models"
	"github.com/dialdish/dialdish/internal/store"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// sessionStripes bounds the number of per-session mutation locks.
const sessionStripes = 64

type sessionRow struct {
	ID             surrealmodels.RecordID `json:"id"`
	Step           string                 `json:"step"`
	RestaurantID   string                 `json:"restaurant_id"`
	SelectedMenuID *string                `json:"selected_menu_id"`
	SelectedItems  []models.SelectedItem  `json:"selected_items"`
	CustomerInfo   map[string]string      `json:"customer_info"`
	LastInput      *string                `json:"last_input"`
	LastPrompt     *string                `json:"last_prompt"`
	LastStep       *string                `json:"last_step"`
	Created        time.Time              `json:"created"`
	Updated        time.Time              `json:"updated"`
}

func (r sessionRow) toModel() models.Session {
	return models.Session{
		ID:             models.MustRecordIDString(r.ID),
		Step:           models.Step(r.Step),
		RestaurantID:   r.RestaurantID,
		SelectedMenuID: deref(r.SelectedMenuID),
		SelectedItems:  r.SelectedItems,
		CustomerInfo:   r.CustomerInfo,
		LastInput:      deref(r.LastInput),
		LastPrompt:     deref(r.LastPrompt),
		LastStep:       models.Step(deref(r.LastStep)),
		CreatedAt:      r.Created,
		UpdatedAt:      r.Updated,
	}
}

func sessionContent(s models.Session) map[string]any {
	content := map[string]any{
		"step":           string(s.Step),
		"restaurant_id":  s.RestaurantID,
		"selected_items": s.SelectedItems,
		"created":        s.CreatedAt,
		"updated":        s.UpdatedAt,
	}
	if s.SelectedItems == nil {
		content["selected_items"] = []models.SelectedItem{}
	}
	if s.SelectedMenuID != "" {
		content["selected_menu_id"] = s.SelectedMenuID
	}
	if s.CustomerInfo != nil {
		content["customer_info"] = s.CustomerInfo
	}
	if s.LastInput != "" {
		content["last_input"] = s.LastInput
	}
	if s.LastPrompt != "" {
		content["last_prompt"] = s.LastPrompt
	}
	if s.LastStep != "" {
		content["last_step"] = string(s.LastStep)
	}
	return content
}

// Sessions is a SurrealDB-backed session store. Mutations of the same call
// are serialized through striped locks so concurrent webhook deliveries
// cannot interleave read-modify-write cycles.
type Sessions struct {
	client *Client
	locks  [sessionStripes]sync.Mutex
	now    func() time.Time
}

// NewSessions creates a session store backed by the SurrealDB client.
func NewSessions(client *Client) *Sessions {
	return &Sessions{client: client, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Sessions) WithNow(now func() time.Time) *Sessions {
	s.now = now
	return s
}

func (s *Sessions) stripe(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.locks[h.Sum32()%sessionStripes]
}

// GetOrCreate implements store.SessionStore.
func (s *Sessions) GetOrCreate(ctx context.Context, id string, init store.InitData) (models.Session, error) {
	mu := s.stripe(id)
	mu.Lock()
	defer mu.Unlock()
	return s.getOrCreateLocked(ctx, id, init)
}

func (s *Sessions) getOrCreateLocked(ctx context.Context, id string, init store.InitData) (models.Session, error) {
	start := time.Now()
	results, err := surrealdb.Query[[]sessionRow](ctx, s.client.db, `
		SELECT * FROM type::record("session", $id)
	`, map[string]any{"id": id})
	s.client.observe(start, err)
	if err != nil {
		return models.Session{}, fmt.Errorf("get session: %w", wrapQueryError(err))
	}

	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return (*results)[0].Result[0].toModel(), nil
	}

	session := models.NewSession(id, init.RestaurantID, init.CustomerInfo, s.now())
	if err := s.saveLocked(ctx, session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// Save implements store.SessionStore.
func (s *Sessions) Save(ctx context.Context, session models.Session) error {
	mu := s.stripe(session.ID)
	mu.Lock()
	defer mu.Unlock()
	session.UpdatedAt = s.now()
	return s.saveLocked(ctx, session)
}

func (s *Sessions) saveLocked(ctx context.Context, session models.Session) error {
	start := time.Now()
	_, err := surrealdb.Query[any](ctx, s.client.db, `
		UPSERT type::record("session", $id) CONTENT $content
	`, map[string]any{
		"id":      session.ID,
		"content": sessionContent(session),
	})
	s.client.observe(start, err)
	if err != nil {
		return fmt.Errorf("save session: %w", wrapQueryError(err))
	}
	return nil
}

// Mutate implements store.SessionStore. The read-modify-write runs under the
// session's stripe lock.
func (s *Sessions) Mutate(ctx context.Context, id string, init store.InitData, fn func(models.Session) (models.Session, error)) (models.Session, error) {
	mu := s.stripe(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.getOrCreateLocked(ctx, id, init)
	if err != nil {
		return models.Session{}, err
	}

	next, err := fn(session)
	if err != nil {
		return models.Session{}, err
	}
	next.ID = session.ID
	next.UpdatedAt = s.now()

	if err := s.saveLocked(ctx, next); err != nil {
		return models.Session{}, err
	}
	return next, nil
}
