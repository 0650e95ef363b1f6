// Package service orchestrates call turns and knowledge searches over the
// session store, the call-flow engine and the retrieval engine.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/dialdish/dialdish/internal/callflow"
	"github.com/dialdish/dialdish/internal/knowledge"
	"github.com/dialdish/dialdish/internal/metrics"
	"github.com/dialdish/dialdish/internal/models"
	"github.com/dialdish/dialdish/internal/notify"
	"github.com/dialdish/dialdish/internal/store"
)

// AnswerSynthesizer produces a spoken answer for questions the knowledge
// base cannot serve. Optional; usually backed by an LLM.
type AnswerSynthesizer interface {
	SynthesizeAnswer(ctx context.Context, question string) (string, error)
}

// Deps bundles the collaborators of the voice service. Notifier, Metrics,
// Synthesizer and Logger may be nil.
type Deps struct {
	Sessions    store.SessionStore
	Catalog     callflow.Catalog
	Orders      callflow.OrderSubmitter
	Knowledge   knowledge.Provider
	Synthesizer AnswerSynthesizer
	Notifier    notify.Notifier
	Metrics     *metrics.Collector
	Logger      *slog.Logger

	// DedupeWindow is how long after a turn an identical repeated input for
	// the same call is treated as a duplicate webhook delivery.
	DedupeWindow time.Duration
}

// Voice is the application service behind the webhook and the CLI. A single
// Voice is safe for concurrent use.
type Voice struct {
	sessions     store.SessionStore
	flow         *callflow.Engine
	retrieval    *knowledge.Engine
	synthesizer  AnswerSynthesizer
	notifier     notify.Notifier
	collector    *metrics.Collector
	logger       *slog.Logger
	dedupeWindow time.Duration
	now          func() time.Time
}

// NewVoice wires the voice service. The call-flow engine is built internally
// so that order submissions flow through notification and metrics.
func NewVoice(deps Deps) *Voice {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	v := &Voice{
		sessions:     deps.Sessions,
		synthesizer:  deps.Synthesizer,
		notifier:     deps.Notifier,
		collector:    deps.Metrics,
		logger:       logger,
		dedupeWindow: deps.DedupeWindow,
		now:          time.Now,
	}
	v.retrieval = knowledge.NewEngine(deps.Knowledge, logger)

	orders := deps.Orders
	if orders != nil {
		orders = &observedSubmitter{inner: deps.Orders, voice: v}
	}
	v.flow = callflow.NewEngine(deps.Catalog, orders, v, logger)
	return v
}

// WithNow overrides the service clock (turn dedupe), for tests. The
// call-flow engine keeps its own clock.
func (v *Voice) WithNow(now func() time.Time) *Voice {
	v.now = now
	return v
}

// Flow exposes the underlying call-flow engine, for clock overrides in tests
// and the interactive CLI.
func (v *Voice) Flow() *callflow.Engine {
	return v.flow
}

// Turn is the outcome of one processed caller utterance.
type Turn struct {
	Prompt    string
	Step      models.Step
	Duplicate bool
}

// HandleTurn applies one caller utterance to the call's session. Repeated
// deliveries of the same input inside the dedupe window replay the recorded
// prompt without advancing the session.
func (v *Voice) HandleTurn(ctx context.Context, callID, restaurantID, callerPhone, rawInput string) (Turn, error) {
	start := v.now()

	init := store.InitData{RestaurantID: restaurantID}
	if callerPhone != "" {
		init.CustomerInfo = map[string]string{"phone": callerPhone}
	}

	var turn Turn
	_, err := v.sessions.Mutate(ctx, callID, init, func(s models.Session) (models.Session, error) {
		if v.isDuplicate(s, rawInput) {
			turn = Turn{Prompt: s.LastPrompt, Step: s.Step, Duplicate: true}
			return s, nil
		}

		next, prompt := v.flow.Advance(ctx, s, rawInput)
		next.LastInput = rawInput
		next.LastPrompt = prompt
		next.LastStep = next.Step

		turn = Turn{Prompt: prompt, Step: next.Step}
		return next, nil
	})
	if err != nil {
		v.recordError(metrics.OpTurn)
		return Turn{}, err
	}

	v.recordTiming(metrics.OpTurn, v.now().Sub(start))
	if turn.Duplicate {
		v.logger.Info("duplicate turn replayed", "call", callID, "input", rawInput)
	}
	return turn, nil
}

// isDuplicate reports whether rawInput repeats the last applied turn inside
// the dedupe window. Empty input never dedupes: it is the fetch-the-prompt
// turn at call start.
func (v *Voice) isDuplicate(s models.Session, rawInput string) bool {
	if v.dedupeWindow <= 0 || rawInput == "" {
		return false
	}
	if s.LastInput != rawInput || s.LastPrompt == "" || s.LastStep != s.Step {
		return false
	}
	return v.now().Sub(s.UpdatedAt) <= v.dedupeWindow
}

// SearchReply is a knowledge search outcome with its spoken rendering.
type SearchReply struct {
	Result knowledge.Result
	Reply  string
}

// Search runs the retrieval engine and renders the best match.
func (v *Voice) Search(ctx context.Context, query string) SearchReply {
	start := v.now()
	result := v.retrieval.Search(ctx, query)
	reply := knowledge.Format(result.Matches, query)
	v.recordTiming(metrics.OpSearch, v.now().Sub(start))

	return SearchReply{Result: result, Reply: reply}
}

// Answer implements callflow.Answerer: knowledge base first, then the
// optional synthesizer.
func (v *Voice) Answer(ctx context.Context, query string) (string, bool) {
	result := v.retrieval.Search(ctx, query)
	if result.Confidence > 0 {
		return knowledge.Format(result.Matches, query), true
	}

	if v.synthesizer == nil {
		return "", false
	}

	start := v.now()
	reply, err := v.synthesizer.SynthesizeAnswer(ctx, query)
	if err != nil {
		v.recordError(metrics.OpLLMQuery)
		v.logger.Warn("answer synthesis failed", "error", err)
		return "", false
	}
	v.recordTiming(metrics.OpLLMQuery, v.now().Sub(start))
	return reply, true
}

func (v *Voice) recordTiming(op string, d time.Duration) {
	if v.collector != nil {
		v.collector.RecordTiming(op, d)
	}
}

func (v *Voice) recordError(op string) {
	if v.collector != nil {
		v.collector.RecordError(op)
	}
}

// observedSubmitter wraps order submission with metrics and notification.
type observedSubmitter struct {
	inner callflow.OrderSubmitter
	voice *Voice
}

func (o *observedSubmitter) SubmitOrder(ctx context.Context, req models.OrderRequest) (string, error) {
	start := o.voice.now()
	ref, err := o.inner.SubmitOrder(ctx, req)
	if err != nil {
		o.voice.recordError(metrics.OpOrder)
		return "", err
	}
	o.voice.recordTiming(metrics.OpOrder, o.voice.now().Sub(start))

	if o.voice.notifier != nil {
		o.voice.notifier.OrderSubmitted(ctx, ref, req)
	}
	return ref, nil
}
