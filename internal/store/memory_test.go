package store

import (
	"context"
	"sync"
	"testing"

	"github.com/dialdish/dialdish/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetOrCreate(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	init := InitData{RestaurantID: "rest-1", CustomerInfo: map[string]string{"phone": "+911234567890"}}

	s, err := m.GetOrCreate(ctx, "call-1", init)
	require.NoError(t, err)
	assert.Equal(t, "call-1", s.ID)
	assert.Equal(t, models.StepWelcome, s.Step)
	assert.Equal(t, "rest-1", s.RestaurantID)

	// Second call returns the existing session untouched.
	s2, err := m.GetOrCreate(ctx, "call-1", InitData{RestaurantID: "other"})
	require.NoError(t, err)
	assert.Equal(t, "rest-1", s2.RestaurantID)
	assert.Equal(t, 1, m.Len())
}

func TestMemorySaveRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	s, err := m.GetOrCreate(ctx, "call-1", InitData{RestaurantID: "rest-1"})
	require.NoError(t, err)

	s.Step = models.StepMenuSelection
	require.NoError(t, m.Save(ctx, s))

	got, err := m.GetOrCreate(ctx, "call-1", InitData{})
	require.NoError(t, err)
	assert.Equal(t, models.StepMenuSelection, got.Step)
}

func TestMemoryMutateAtomic(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	init := InitData{RestaurantID: "rest-1"}

	// Concurrent mutations of one session serialize: every increment lands.
	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Mutate(ctx, "call-1", init, func(s models.Session) (models.Session, error) {
				s.SelectedItems = append(s.SelectedItems, models.SelectedItem{ItemID: "x", Quantity: 1})
				return s, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := m.GetOrCreate(ctx, "call-1", init)
	require.NoError(t, err)
	assert.Len(t, got.SelectedItems, n)
}

func TestMemoryMutateErrorDiscards(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Mutate(ctx, "call-1", InitData{RestaurantID: "rest-1"}, func(s models.Session) (models.Session, error) {
		s.Step = models.StepComplete
		return s, assert.AnError
	})
	require.Error(t, err)

	got, _ := m.GetOrCreate(ctx, "call-1", InitData{})
	assert.Equal(t, models.StepWelcome, got.Step)
}

func TestMemoryIndependentSessions(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.GetOrCreate(ctx, "call-1", InitData{RestaurantID: "a"})
	require.NoError(t, err)
	_, err = m.GetOrCreate(ctx, "call-2", InitData{RestaurantID: "b"})
	require.NoError(t, err)

	assert.Equal(t, 2, m.Len())
}
