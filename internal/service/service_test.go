package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dialdish/dialdish/internal/metrics"
	"github.com/dialdish/dialdish/internal/models"
	"github.com/dialdish/dialdish/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	restaurant models.Restaurant
	categories []models.MenuCategory
	items      map[string][]models.MenuItem
}

func (f *fakeCatalog) Restaurant(ctx context.Context, id string) (models.Restaurant, error) {
	return f.restaurant, nil
}

func (f *fakeCatalog) TodayHours(ctx context.Context, restaurantID, day string) (*models.BusinessHour, error) {
	return &models.BusinessHour{Day: day, Opens: "09:00 AM", Closes: "10:00 PM"}, nil
}

func (f *fakeCatalog) ActiveMenuCategories(ctx context.Context, restaurantID string) ([]models.MenuCategory, error) {
	return f.categories, nil
}

func (f *fakeCatalog) AvailableItems(ctx context.Context, categoryID string) ([]models.MenuItem, error) {
	return f.items[categoryID], nil
}

type fakeOrders struct {
	submitted []models.OrderRequest
	ref       string
	err       error
}

func (f *fakeOrders) SubmitOrder(ctx context.Context, req models.OrderRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.submitted = append(f.submitted, req)
	return f.ref, nil
}

type fakeProvider struct {
	faqs []models.FAQ
}

func (f *fakeProvider) ActiveFAQs(ctx context.Context) ([]models.FAQ, error) { return f.faqs, nil }
func (f *fakeProvider) ActivePricingPlans(ctx context.Context) ([]models.PricingPlan, error) {
	return nil, nil
}
func (f *fakeProvider) ActiveKnowledgeItems(ctx context.Context) ([]models.KnowledgeItem, error) {
	return nil, nil
}
func (f *fakeProvider) ActiveFeatures(ctx context.Context) ([]models.ServiceFeature, error) {
	return nil, nil
}
func (f *fakeProvider) FeaturedSuccessStories(ctx context.Context, limit int) ([]models.SuccessStory, error) {
	return nil, nil
}

type fakeSynth struct {
	reply string
	err   error
	calls int
}

func (f *fakeSynth) SynthesizeAnswer(ctx context.Context, question string) (string, error) {
	f.calls++
	return f.reply, f.err
}

type recordingNotifier struct {
	refs []string
}

func (r *recordingNotifier) OrderSubmitted(ctx context.Context, orderRef string, req models.OrderRequest) {
	r.refs = append(r.refs, orderRef)
}

func testDeps() (Deps, *fakeOrders, *recordingNotifier) {
	orders := &fakeOrders{ref: "ORD-TEST1"}
	notifier := &recordingNotifier{}
	deps := Deps{
		Sessions: store.NewMemory(),
		Catalog: &fakeCatalog{
			restaurant: models.Restaurant{ID: "rest-1", Name: "Spice Garden", Phone: "+91 11111"},
			categories: []models.MenuCategory{
				{ID: "cat-mains", Name: "Mains", Active: true},
				{ID: "cat-starters", Name: "Starters", Active: true},
			},
			items: map[string][]models.MenuItem{
				"cat-mains": {
					{ID: "item-1", Name: "Butter Chicken", Price: 340, Available: true, DisplayOrder: 1},
					{ID: "item-2", Name: "Dal Makhani", Price: 240, Available: true, DisplayOrder: 2},
				},
			},
		},
		Orders:       orders,
		Knowledge:    &fakeProvider{},
		Notifier:     notifier,
		Metrics:      metrics.NewCollector(),
		DedupeWindow: 3 * time.Second,
	}
	return deps, orders, notifier
}

// fixedClock advances only when told to.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time      { return c.t }
func (c *fixedClock) add(d time.Duration) { c.t = c.t.Add(d) }

func newTestVoice(t *testing.T, deps Deps) (*Voice, *fixedClock) {
	t.Helper()
	clock := &fixedClock{t: time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)}
	v := NewVoice(deps).WithNow(clock.now)
	v.Flow().WithNow(clock.now)
	if mem, ok := deps.Sessions.(*store.Memory); ok {
		mem.WithNow(clock.now)
	}
	return v, clock
}

func TestHandleTurnAdvances(t *testing.T) {
	deps, _, _ := testDeps()
	v, _ := newTestVoice(t, deps)
	ctx := context.Background()

	turn, err := v.HandleTurn(ctx, "CA1", "rest-1", "+91 99999", "")
	require.NoError(t, err)
	assert.Equal(t, models.StepWelcome, turn.Step)
	assert.Contains(t, turn.Prompt, "Welcome to Spice Garden!")

	turn, err = v.HandleTurn(ctx, "CA1", "rest-1", "+91 99999", "1")
	require.NoError(t, err)
	assert.Equal(t, models.StepMenuSelection, turn.Step)
	assert.Contains(t, turn.Prompt, "Press 1 for Mains")
}

func TestHandleTurnDuplicateReplay(t *testing.T) {
	deps, _, _ := testDeps()
	v, clock := newTestVoice(t, deps)
	ctx := context.Background()

	first, err := v.HandleTurn(ctx, "CA1", "rest-1", "", "1")
	require.NoError(t, err)
	require.Equal(t, models.StepMenuSelection, first.Step)

	// Same input redelivered inside the window replays the prompt without
	// advancing: "1" would otherwise select the Mains category.
	clock.add(time.Second)
	dup, err := v.HandleTurn(ctx, "CA1", "rest-1", "", "1")
	require.NoError(t, err)
	assert.True(t, dup.Duplicate)
	assert.Equal(t, first.Prompt, dup.Prompt)
	assert.Equal(t, models.StepMenuSelection, dup.Step)

	// Past the window the same input is a fresh turn.
	clock.add(5 * time.Second)
	next, err := v.HandleTurn(ctx, "CA1", "rest-1", "", "1")
	require.NoError(t, err)
	assert.False(t, next.Duplicate)
	assert.Equal(t, models.StepItemSelection, next.Step)
	assert.Contains(t, next.Prompt, "You selected Mains")
}

func TestHandleTurnEmptyInputNeverDedupes(t *testing.T) {
	deps, _, _ := testDeps()
	v, _ := newTestVoice(t, deps)
	ctx := context.Background()

	first, err := v.HandleTurn(ctx, "CA1", "rest-1", "", "")
	require.NoError(t, err)
	second, err := v.HandleTurn(ctx, "CA1", "rest-1", "", "")
	require.NoError(t, err)

	assert.False(t, second.Duplicate)
	assert.Equal(t, first.Prompt, second.Prompt)
}

func TestHandleTurnDifferentInputNoDedupe(t *testing.T) {
	deps, _, _ := testDeps()
	v, _ := newTestVoice(t, deps)
	ctx := context.Background()

	_, err := v.HandleTurn(ctx, "CA1", "rest-1", "", "1")
	require.NoError(t, err)

	turn, err := v.HandleTurn(ctx, "CA1", "rest-1", "", "2")
	require.NoError(t, err)
	assert.False(t, turn.Duplicate)
	assert.Equal(t, models.StepItemSelection, turn.Step)
}

func TestFullOrderNotifies(t *testing.T) {
	deps, orders, notifier := testDeps()
	v, clock := newTestVoice(t, deps)
	ctx := context.Background()

	// Clock advances between turns so repeated "1" presses at successive
	// steps are not mistaken for duplicate deliveries.
	steps := []string{"1", "1", "1", "1"}
	var turn Turn
	var err error
	for _, input := range steps {
		turn, err = v.HandleTurn(ctx, "CA1", "rest-1", "+91 99999", input)
		require.NoError(t, err)
		clock.add(10 * time.Second)
	}

	assert.Equal(t, models.StepComplete, turn.Step)
	assert.Contains(t, turn.Prompt, "ORD-TEST1")
	require.Len(t, orders.submitted, 1)
	assert.Equal(t, "+91 99999", orders.submitted[0].CustomerPhone)
	assert.Equal(t, []string{"ORD-TEST1"}, notifier.refs)
}

func TestFullOrderRecordsMetrics(t *testing.T) {
	deps, _, _ := testDeps()
	v, clock := newTestVoice(t, deps)
	ctx := context.Background()

	for _, input := range []string{"1", "1", "1", "1"} {
		_, err := v.HandleTurn(ctx, "CA1", "rest-1", "", input)
		require.NoError(t, err)
		clock.add(10 * time.Second)
	}

	snap := deps.Metrics.Snapshot()
	assert.Equal(t, int64(4), snap.Operations[metrics.OpTurn].Count)
	assert.Equal(t, int64(1), snap.Operations[metrics.OpOrder].Count)
}

func TestSearchFormatsReply(t *testing.T) {
	deps, _, _ := testDeps()
	deps.Knowledge = &fakeProvider{faqs: []models.FAQ{{
		Question: "How does delivery work?",
		Answer:   "We hand orders to your usual delivery partner.",
		Keywords: []string{"delivery"},
	}}}
	v, _ := newTestVoice(t, deps)

	out := v.Search(context.Background(), "tell me about delivery")
	assert.Greater(t, out.Result.Confidence, 0)
	assert.Equal(t, "We hand orders to your usual delivery partner.", out.Reply)
}

func TestSearchGoodbye(t *testing.T) {
	deps, _, _ := testDeps()
	v, _ := newTestVoice(t, deps)

	out := v.Search(context.Background(), "thanks, goodbye")
	require.NotEmpty(t, out.Result.Matches)
	assert.Equal(t, models.SourceGoodbye, out.Result.Matches[0].Source)
	assert.Contains(t, out.Reply, "Goodbye")
}

func TestAnswerUsesSynthesizerFallback(t *testing.T) {
	deps, _, _ := testDeps()
	synth := &fakeSynth{reply: "We open at nine."}
	deps.Synthesizer = synth
	v, _ := newTestVoice(t, deps)

	reply, ok := v.Answer(context.Background(), "when do you open?")
	assert.True(t, ok)
	assert.Equal(t, "We open at nine.", reply)
	assert.Equal(t, 1, synth.calls)
}

func TestAnswerSynthesizerFailure(t *testing.T) {
	deps, _, _ := testDeps()
	deps.Synthesizer = &fakeSynth{err: fmt.Errorf("model offline")}
	v, _ := newTestVoice(t, deps)

	_, ok := v.Answer(context.Background(), "when do you open?")
	assert.False(t, ok)

	snap := deps.Metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Operations[metrics.OpLLMQuery].Errors)
}

func TestAnswerPrefersKnowledgeBase(t *testing.T) {
	deps, _, _ := testDeps()
	deps.Knowledge = &fakeProvider{faqs: []models.FAQ{{
		Question: "What are your opening hours?",
		Answer:   "Eleven to ten, every day.",
		Keywords: []string{"hours", "open"},
	}}}
	synth := &fakeSynth{reply: "never used"}
	deps.Synthesizer = synth
	v, _ := newTestVoice(t, deps)

	reply, ok := v.Answer(context.Background(), "what are your hours?")
	assert.True(t, ok)
	assert.Equal(t, "Eleven to ten, every day.", reply)
	assert.Zero(t, synth.calls)
}
