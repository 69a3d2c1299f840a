package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/romandfa/internal/presentation/graph"
	"github.com/aretw0/romandfa/pkg/domain"
	"github.com/aretw0/romandfa/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

//go:embed openapi.yaml
var rawSpec []byte

// Engine is the subset of romandfa.Engine the HTTP API needs.
type Engine interface {
	ports.Validator
	Submit(ctx context.Context, input string) (*domain.Record, error)
	Record(ctx context.Context, id string) (*domain.Record, error)
	Records(ctx context.Context) ([]string, error)
}

// Server serves the validation API.
type Server struct {
	Engine   Engine
	spec     *openapi3.T
	router   routers.Router
	logger   *slog.Logger
	version  string
	gatherer prometheus.Gatherer
	limiter  *rate.Limiter
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithVersion sets the build version reported on /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = strings.TrimSpace(v)
	}
}

// WithMetrics exposes g on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithRateLimit applies a global token bucket of rps requests per second.
// rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}

// NewServer builds a Server. It fails only if the embedded OpenAPI document is broken.
func NewServer(engine Engine, opts ...Option) (*Server, error) {
	doc, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	s := &Server{
		Engine:  engine,
		spec:    doc,
		router:  router,
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) (http.Handler, error) {
	s, err := NewServer(engine, opts...)
	if err != nil {
		return nil, err
	}
	return s.Handler(), nil
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(enableCORS)
	if s.limiter != nil {
		r.Use(s.rateLimit)
	}

	r.Get("/health", s.Health)
	r.Get("/info", s.Info)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(s.validateRequest)
		r.Post("/validate", s.Validate)
		r.Post("/validate/batch", s.ValidateBatch)
		r.Get("/verdicts", s.ListVerdicts)
		r.Get("/verdicts/{id}", s.GetVerdict)
		r.Get("/automaton", s.Automaton)
		r.Get("/automaton/mermaid", s.Mermaid)
	})

	return r
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

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// validateRequest checks requests against the OpenAPI document before they reach a handler.
func (s *Server) validateRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, params, err := s.router.FindRoute(r)
		if err != nil {
			// Not described by the document; let chi answer.
			next.ServeHTTP(w, r)
			return
		}
		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: params,
			Route:      route,
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			s.logger.Warn("Request rejected by schema", "path", r.URL.Path, "err", err)
			writeError(w, http.StatusBadRequest, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type validateRequest struct {
	Input string `json:"input"`
}

type batchRequest struct {
	Inputs []string `json:"inputs"`
}

type batchResponse struct {
	Verdicts []*domain.Verdict `json:"verdicts"`
}

// Validate handles POST /validate.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body validateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	rec, err := s.Engine.Submit(r.Context(), body.Input)
	if err != nil {
		s.logger.Error("Submit failed", "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ValidateBatch handles POST /validate/batch.
func (s *Server) ValidateBatch(w http.ResponseWriter, r *http.Request) {
	var body batchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	verdicts, err := s.Engine.ValidateAll(r.Context(), body.Inputs)
	if err != nil {
		// Only cancellation fails a batch; the client is gone.
		s.logger.Warn("Batch aborted", "err", err, "size", len(body.Inputs))
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Verdicts: verdicts})
}

// ListVerdicts handles GET /verdicts.
func (s *Server) ListVerdicts(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.Records(r.Context())
	if err != nil {
		s.logger.Error("List failed", "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && len(ids) > n {
			ids = ids[len(ids)-n:]
		}
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

// GetVerdict handles GET /verdicts/{id}.
func (s *Server) GetVerdict(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.Engine.Record(r.Context(), id)
	if errors.Is(err, domain.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.logger.Error("Load failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Automaton handles GET /automaton.
func (s *Server) Automaton(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Engine.Inspect().Definition())
}

// Mermaid handles GET /automaton/mermaid.
func (s *Server) Mermaid(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := graph.Options{}
	opts.HideDead, _ = strconv.ParseBool(q.Get("hide_dead"))
	if q.Has("input") {
		v := s.Engine.Validate(r.Context(), q.Get("input"))
		opts.Overlay = &graph.Overlay{Path: v.Path}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(s.Engine.Inspect(), opts))
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type infoResponse struct {
	Version    string    `json:"version"`
	APIVersion string    `json:"api_version"`
	Automaton  string    `json:"automaton"`
	States     int       `json:"states"`
	Alphabet   []string  `json:"alphabet"`
	Time       time.Time `json:"time"`
}

// Info handles GET /info.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	a := s.Engine.Inspect()
	alphabet := make([]string, 0, len(a.Alphabet()))
	for _, sym := range a.Alphabet() {
		alphabet = append(alphabet, sym.String())
	}
	writeJSON(w, http.StatusOK, infoResponse{
		Version:    s.version,
		APIVersion: s.spec.Info.Version,
		Automaton:  a.Name(),
		States:     len(a.States()),
		Alphabet:   alphabet,
		Time:       time.Now().UTC(),
	})
}

// -- Helpers --

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
