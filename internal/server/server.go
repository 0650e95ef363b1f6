// Package server exposes the voice webhook and the knowledge search API
// over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dialdish/dialdish/internal/metrics"
	"github.com/dialdish/dialdish/internal/models"
	"github.com/dialdish/dialdish/internal/service"
	"github.com/go-chi/chi/v5"
)

// Server hosts the telephony webhook and the JSON API.
type Server struct {
	http                *http.Server
	voice               *service.Voice
	collector           *metrics.Collector
	logger              *slog.Logger
	defaultRestaurantID string
}

// New creates the HTTP server. collector may be nil, disabling /stats data.
func New(addr, defaultRestaurantID string, voice *service.Voice, collector *metrics.Collector, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		voice:               voice,
		collector:           collector,
		logger:              logger,
		defaultRestaurantID: defaultRestaurantID,
	}

	r := chi.NewRouter()
	r.Use(requestLogger(logger))
	r.Post("/voice", s.handleVoice)
	r.Post("/search", s.handleSearch)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/stats", s.handleStats)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down HTTP server")
	return s.http.Shutdown(shutdownCtx)
}

// handleVoice is the telephony webhook. Every request yields a TwiML
// document; processing errors speak an apology rather than failing the call.
func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	callID := r.PostFormValue("CallSid")
	if callID == "" {
		http.Error(w, "missing CallSid", http.StatusBadRequest)
		return
	}
	caller := r.PostFormValue("From")

	input := r.PostFormValue("SpeechResult")
	if input == "" {
		input = r.PostFormValue("Digits")
	}

	restaurantID := r.URL.Query().Get("restaurant")
	if restaurantID == "" {
		restaurantID = s.defaultRestaurantID
	}

	turn, err := s.voice.HandleTurn(r.Context(), callID, restaurantID, caller, input)
	if err != nil {
		s.logger.Error("turn failed", "call", callID, "error", err)
		s.writeTwiML(w, hangupResponse(
			"I'm sorry, there was an error processing your request. Please call again later."))
		return
	}

	if turn.Step == models.StepComplete {
		s.writeTwiML(w, hangupResponse(turn.Prompt))
		return
	}
	s.writeTwiML(w, gatherResponse(turn.Prompt, r.URL.RequestURI()))
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Reply      string `json:"reply"`
	Confidence int    `json:"confidence"`
	Matches    int    `json:"matches"`
}

// handleSearch answers a knowledge query as JSON.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	out := s.voice.Search(r.Context(), req.Query)
	s.writeJSON(w, searchResponse{
		Reply:      out.Reply,
		Confidence: out.Result.Confidence,
		Matches:    len(out.Result.Matches),
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.collector == nil {
		http.Error(w, "metrics disabled", http.StatusNotFound)
		return
	}
	s.writeJSON(w, s.collector.Snapshot())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response failed", "error", err)
	}
}

func (s *Server) writeTwiML(w http.ResponseWriter, resp twimlResponse) {
	body, err := renderTwiML(resp)
	if err != nil {
		s.logger.Error("render twiml failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write(body)
}
