package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/logging"
	"github.com/san-kum/orbitsim/internal/metrics"
)

// DefaultOrigins are the frontend dev servers allowed by CORS.
var DefaultOrigins = []string{
	"http://localhost:8081",
	"http://127.0.0.1:8081",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

const (
	// MaxSteps bounds a single /simulate request.
	MaxSteps = 200_000

	// MaxBodyBytes bounds the /simulate request body.
	MaxBodyBytes = 64 << 10
)

// SimulateRequest is the body of POST /simulate.
type SimulateRequest struct {
	StarType string   `json:"star_type"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	VX       float64  `json:"vx"`
	VY       float64  `json:"vy"`
	Dt       float64  `json:"dt"`
	Steps    float64  `json:"steps"`
	Epsilon  *float64 `json:"epsilon,omitempty"`
}

func (r SimulateRequest) validate() error {
	if strings.TrimSpace(r.StarType) == "" {
		return errors.New("star_type must not be empty")
	}
	for name, v := range map[string]float64{"x": r.X, "y": r.Y, "vx": r.VX, "vy": r.VY, "dt": r.Dt, "steps": r.Steps} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite", name)
		}
	}
	if r.Dt <= 0 {
		return errors.New("dt must be greater than 0")
	}
	if r.Steps <= 0 {
		return errors.New("steps must be greater than 0")
	}
	if r.Steps != math.Trunc(r.Steps) {
		return fmt.Errorf("steps must be an integer, got %g", r.Steps)
	}
	if r.Steps > MaxSteps {
		return fmt.Errorf("steps must be at most %d", MaxSteps)
	}
	if r.Epsilon != nil && (*r.Epsilon < 0 || math.IsNaN(*r.Epsilon) || math.IsInf(*r.Epsilon, 0)) {
		return errors.New("epsilon must be a finite value >= 0")
	}
	return nil
}

// PresetsResponse is the body of GET /presets.
type PresetsResponse struct {
	StarTypes         []string          `json:"star_types"`
	DefaultParameters DefaultParameters `json:"default_parameters"`
	Stars             config.Catalog    `json:"stars"`
}

type DefaultParameters struct {
	Dt    float64 `json:"dt"`
	Steps int     `json:"steps"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOrigins replaces the CORS allow-list.
func WithOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

func WithCatalog(c config.Catalog) Option {
	return func(s *Server) { s.catalog = c }
}

// Server exposes the simulator over HTTP.
type Server struct {
	catalog  config.Catalog
	origins  []string
	logger   *slog.Logger
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	steps    prometheus.Histogram
}

func New(opts ...Option) *Server {
	s := &Server{
		catalog:  config.DefaultCatalog(),
		origins:  DefaultOrigins,
		logger:   logging.NewNop(),
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orbitsim_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		steps: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "orbitsim_simulation_steps",
				Help:    "Steps executed per simulation request",
				Buckets: prometheus.ExponentialBuckets(10, 4, 8),
			},
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registry.MustRegister(s.requests, s.steps)
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Use(s.cors)

	r.Post("/simulate", s.simulate)
	r.Get("/presets", s.presets)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		code := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			code = http.StatusRequestEntityTooLarge
		}
		s.fail(w, r, code, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := req.validate(); err != nil {
		s.fail(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	derived, err := config.Derive(config.Request{
		StarType: req.StarType,
		X:        req.X,
		Y:        req.Y,
		VX:       req.VX,
		VY:       req.VY,
		Dt:       req.Dt,
		Steps:    req.Steps,
		Epsilon:  req.Epsilon,
	}, s.catalog)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	sim, err := dynamo.New(derived.Simulation(), dynamo.WithLogger(s.logger))
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	for _, obs := range metrics.Defaults() {
		sim.AddObserver(obs)
	}

	start := time.Now()
	timeline, err := sim.Run(r.Context(), dynamo.Steps(derived.Steps))
	if err != nil {
		s.fail(w, r, http.StatusServiceUnavailable, err)
		return
	}
	s.steps.Observe(float64(derived.Steps))
	s.logger.Info("simulation complete",
		"star", derived.Star.TypeName,
		"steps", derived.Steps,
		"duration", time.Since(start),
		"metrics", sim.Metrics(),
	)

	s.writeJSON(w, r, http.StatusOK, timeline)
}

func (s *Server) presets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, PresetsResponse{
		StarTypes: s.catalog.Names(),
		DefaultParameters: DefaultParameters{
			Dt:    config.DefaultDt,
			Steps: config.DefaultSteps,
		},
		Stars: s.catalog,
	})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, code int, err error) {
	s.logger.Warn("request rejected", "path", r.URL.Path, "code", code, "error", err)
	s.writeJSON(w, r, code, errorResponse{Detail: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "path", r.URL.Path, "error", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.requests.WithLabelValues(route, fmt.Sprint(rec.code)).Inc()
		s.logger.Info("request",
			"method", r.Method,
			"route", route,
			"code", rec.code,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && slices.Contains(s.origins, origin) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
