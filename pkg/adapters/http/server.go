// Package http exposes the palisade engine over a small JSON API. It is a
// transport adapter: all navigation semantics live in the engine, the server
// only maps decisions and errors onto status codes.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EvaluateRequest is the POST /evaluate body.
type EvaluateRequest struct {
	Target string            `json:"target"`
	Origin string            `json:"origin,omitempty"`
	Params map[string]string `json:"params,omitempty"`
	Query  map[string]string `json:"query,omitempty"`
}

// EvaluateResponse wraps the decision with the request ID assigned by the
// engine, so clients can correlate traces.
type EvaluateResponse struct {
	RequestID string           `json:"request_id"`
	Decision  *domain.Decision `json:"decision"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server exposes an Evaluator over HTTP.
type Server struct {
	evaluator ports.Evaluator
	logger    *slog.Logger
	metrics   *Metrics
}

// NewHandler builds the HTTP handler. metrics may be nil to disable the
// /metrics endpoint and instrumentation.
func NewHandler(evaluator ports.Evaluator, logger *slog.Logger, metrics *Metrics) http.Handler {
	s := &Server{evaluator: evaluator, logger: logger, metrics: metrics}

	r := chi.NewRouter()
	r.Post("/evaluate", s.handleEvaluate)
	r.Get("/routes", s.handleListRoutes)
	r.Get("/routes/*", s.handleGetRoute)
	r.Get("/healthz", s.handleHealth)
	if metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var body EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("evaluate: invalid request body", "err", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Target == "" {
		writeError(w, http.StatusBadRequest, "target is required")
		return
	}

	req := domain.NewTransitionRequest(body.Target, body.Origin, body.Params, body.Query)

	start := time.Now()
	decision, err := s.evaluator.Evaluate(r.Context(), req)
	if err != nil {
		s.metrics.observeError(err, time.Since(start))
		s.writeEvaluateError(w, req, err)
		return
	}
	s.metrics.observeDecision(decision, time.Since(start))

	writeJSON(w, http.StatusOK, EvaluateResponse{RequestID: req.ID, Decision: decision})
}

// writeEvaluateError maps engine errors onto transport codes. Unknown
// targets are a client problem; unresolved guards mean the route table and
// registry disagree; loops and fatal failures are server-side faults.
func (s *Server) writeEvaluateError(w http.ResponseWriter, req *domain.TransitionRequest, err error) {
	switch {
	case errors.Is(err, domain.ErrRouteNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnresolvedGuard):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrRedirectLoop):
		writeError(w, http.StatusLoopDetected, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// 499 is nginx's "client closed request"; there is no stdlib constant.
		writeError(w, 499, "evaluation canceled")
	default:
		s.logger.Error("evaluate failed", "request_id", req.ID, "target", req.Target, "err", err)
		writeError(w, http.StatusInternalServerError, "evaluation failed")
	}
}

func (s *Server) handleListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := s.evaluator.Inspect()
	if err != nil {
		s.logger.Error("list routes failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list routes")
		return
	}
	writeJSON(w, http.StatusOK, routes)
}

func (s *Server) handleGetRoute(w http.ResponseWriter, r *http.Request) {
	// Route IDs contain slashes ("/admin/users"), hence the wildcard mount.
	id := "/" + chi.URLParam(r, "*")

	routes, err := s.evaluator.Inspect()
	if err != nil {
		s.logger.Error("get route failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load route")
		return
	}
	for _, route := range routes {
		if route.ID == id {
			writeJSON(w, http.StatusOK, route)
			return
		}
	}
	writeError(w, http.StatusNotFound, "route not found")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
