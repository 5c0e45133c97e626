package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/haytac/emotions/internal/emotion"
	"github.com/haytac/emotions/internal/metrics"
	"github.com/haytac/emotions/pkg/interfaces"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

var _ interfaces.Translator = (*emotion.Translator)(nil)

// Options configures the HTTP API.
type Options struct {
	AssetBaseURL  string
	SanitizeInput bool
	// RatePerSecond is the budget of each client address. Zero disables
	// rate limiting.
	RatePerSecond float64
	RateBurst     int
}

// Server exposes a Translator over HTTP.
type Server struct {
	translator interfaces.Translator
	opts       Options
	policy     *bluemonday.Policy

	limit      rate.Limit
	burst      int
	limiters   map[string]*rate.Limiter
	limitersMu sync.Mutex
}

type textPayload struct {
	Text string `json:"text"`
}

type knownResponse struct {
	Name  string `json:"name"`
	Known bool   `json:"known"`
}

type catalogResponse struct {
	Names []string `json:"names"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New creates a Server.
func New(t interfaces.Translator, opts Options) *Server {
	s := &Server{translator: t, opts: opts}
	if opts.SanitizeInput {
		s.policy = bluemonday.UGCPolicy()
	}
	if opts.RatePerSecond > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		s.limit = rate.Limit(opts.RatePerSecond)
		s.burst = burst
		s.limiters = make(map[string]*rate.Limiter)
	}
	return s
}

// Routes builds the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)
	if s.limiters != nil {
		r.Use(s.rateLimit)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Route("/v1", func(r chi.Router) {
		r.Post("/unicode", s.convert("unicode", s.translator.ToUnicode))
		r.Post("/aliases", s.convert("aliases", s.translator.ToAliases))
		r.Post("/strip", s.convert("strip", s.translator.Strip))
		r.Post("/render", s.convert("render", s.render))
		r.Get("/emoji/{name}", s.known)
		r.Get("/catalog", s.catalog)
	})
	return r
}

// Run serves the API on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", addr).Msg("Starting emoji API server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down emoji API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api server shutdown: %w", err)
	}
	return nil
}

func (s *Server) render(text string) string {
	if s.policy != nil {
		text = s.policy.Sanitize(text)
	}
	return s.translator.Render(text, s.opts.AssetBaseURL)
}

func (s *Server) convert(op string, fn func(string) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req textPayload
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
			return
		}
		metrics.Conversions.WithLabelValues(op).Inc()
		writeJSON(w, http.StatusOK, textPayload{Text: fn(req.Text)})
	}
}

func (s *Server) known(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	metrics.Conversions.WithLabelValues("known").Inc()
	writeJSON(w, http.StatusOK, knownResponse{Name: name, Known: s.translator.IsKnown(name)})
}

func (s *Server) catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{Names: emotion.Catalog()})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.clientLimiter(clientKey(r)).Allow() {
			metrics.RateLimited.Inc()
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) clientLimiter(key string) *rate.Limiter {
	s.limitersMu.Lock()
	defer s.limitersMu.Unlock()
	limiter, exists := s.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters[key] = limiter
	}
	return limiter
}

// clientKey is the client host. RealIP has already replaced RemoteAddr
// from X-Real-IP or X-Forwarded-For when present.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("route", route).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}
