package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/empowr-credit/internal/config"
	"github.com/jonathan/empowr-credit/internal/metrics"
	"github.com/jonathan/empowr-credit/internal/mock"
	"github.com/jonathan/empowr-credit/internal/server/middleware"
	"github.com/jonathan/empowr-credit/internal/server/ratelimit"
	"github.com/jonathan/empowr-credit/internal/state"
	"github.com/jonathan/empowr-credit/internal/types"
	"github.com/jonathan/empowr-credit/internal/views"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests may run after Start's
// context is cancelled.
const shutdownTimeout = 30 * time.Second

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       state.Store
	service     *mock.Service
	tokens      *SessionTokens
	rateLimiter *ratelimit.Limiter
	validator   *validator.Validate
	authHandler *AuthHandler
	logger      *zap.Logger
	cookie      middleware.CookieOptions
	strict      bool
}

// Deps are the collaborators a Server is built from.
type Deps struct {
	Store   state.Store
	Service *mock.Service
	// Limiter defaults to one built from the RATE_LIMIT_* environment.
	Limiter *ratelimit.Limiter
	Logger  *zap.Logger
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if deps.Store == nil || deps.Service == nil {
		return nil, fmt.Errorf("server requires a state store and a mock service")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Limiter == nil {
		rlCfg, err := ratelimit.LoadConfig()
		if err != nil {
			return nil, err
		}
		deps.Limiter = ratelimit.NewLimiter(rlCfg)
	}

	s := &Server{
		store:       deps.Store,
		service:     deps.Service,
		tokens:      NewSessionTokens(&cfg.Session),
		rateLimiter: deps.Limiter,
		validator:   types.NewValidator(),
		logger:      deps.Logger,
		cookie:      middleware.CookieOptions{MaxAge: cfg.Session.TTL()},
		strict:      cfg.AuthMode == config.AuthModeStrict,
	}
	s.authHandler = NewAuthHandler(s.service, s.store, s.tokens, s.cookie, s.validator, s.logger)

	mux := http.NewServeMux()

	// Operational endpoints carry no session
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /static/", views.Static())

	// Pages
	s.handle(mux, "GET /{$}", s.handleHome)
	s.handle(mux, "GET /login", s.handleLoginPage)
	s.handle(mux, "POST /login", s.handleLogin)
	s.handle(mux, "GET /register", s.handleRegisterPage)
	s.handle(mux, "POST /register", s.handleRegister)
	s.handle(mux, "POST /logout", s.handleLogout)
	s.handle(mux, "GET /assessment", s.handleAssessment)
	s.handle(mux, "POST /assessment/next", s.handleAssessmentNext)
	s.handle(mux, "POST /assessment/back", s.handleAssessmentBack)
	s.handle(mux, "POST /assessment/submit", s.handleAssessmentSubmit)
	s.handle(mux, "GET /dashboard", s.handleDashboard)

	// JSON API
	s.handle(mux, "POST /api/v1/auth/login", s.authHandler.Login)
	s.handle(mux, "POST /api/v1/auth/register", s.authHandler.Register)
	s.handle(mux, "POST /api/v1/auth/logout", s.authHandler.Logout)
	s.handle(mux, "GET /api/v1/session", s.handleGetSession)
	s.handle(mux, "GET /api/v1/credit-score", s.handleGetCreditScore)
	s.handle(mux, "POST /api/v1/assessments", s.handleCreateAssessment)
	s.handle(mux, "POST /api/v1/assessments/stream", s.handleStreamAssessment)
	s.handle(mux, "GET /api/v1/dashboard", s.handleGetDashboard)
	s.handle(mux, "POST /api/v1/scores/preview", s.handlePreviewScore)

	s.handle(mux, "GET /", s.handleNotFound)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second, // covers the simulated submit latency and the SSE stream
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// handle registers h under pattern behind the session middleware and records
// request metrics labelled with the pattern.
func (s *Server) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	withSession := middleware.Session(s.tokens, s.cookie)(h)
	mux.Handle(pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		withSession.ServeHTTP(rec, r)
		metrics.HTTPRequests.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	}))
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting", zap.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.rateLimiter.Stop()
	s.logger.Info("server stopped")
	return err
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			metrics.RateLimited.WithLabelValues(info.Tier).Inc()
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote_addr", r.RemoteAddr),
		}
		if rec.status >= http.StatusInternalServerError {
			s.logger.Error("request completed", fields...)
			return
		}
		s.logger.Info("request completed", fields...)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

// Flush keeps SSE working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, s.logger, status, data)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, s.logger, status, ErrorResponse{Error: message})
}

// writeError maps err to its status and writes it as JSON.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeAPIError(w, r, s.logger, err)
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// writeAPIError writes err with the status HTTPStatus picks. Validation
// failures carry their per-field messages; server errors are logged and
// reported without detail.
func writeAPIError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeJSON(w, logger, status, ErrorResponse{Error: http.StatusText(status)})
		return
	}

	var ve *ErrValidation
	if errors.As(err, &ve) {
		writeJSON(w, logger, status, ErrorResponse{Error: "validation failed", Fields: ve.Fields})
		return
	}
	writeJSON(w, logger, status, ErrorResponse{Error: err.Error()})
}

// render writes c as an HTML page with status.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	templ.Handler(c, templ.WithStatus(status)).ServeHTTP(w, r)
}

// appState returns the application state of the request's session.
func (s *Server) appState(r *http.Request) (*state.AppState, error) {
	return sessionState(s.store, r, s.logger)
}

func sessionState(store state.Store, r *http.Request, logger *zap.Logger) (*state.AppState, error) {
	id, err := middleware.GetSessionID(r)
	if err != nil {
		return nil, err
	}
	return state.New(store, id.String(), logger), nil
}

// rotateSession moves st to a fresh session ID after a successful sign-in and
// sets the cookie for it, so an ID known before sign-in is never signed in.
// The returned request carries the new session.
func rotateSession(w http.ResponseWriter, r *http.Request, st *state.AppState, codec middleware.SessionCodec, opts middleware.CookieOptions) (*http.Request, error) {
	id := uuid.New()
	token, err := codec.Issue(id)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	if _, err := st.MoveTo(r.Context(), id.String()); err != nil {
		return nil, err
	}
	middleware.SetCookie(w, token, opts)
	return r.WithContext(middleware.WithSession(r.Context(), id, token)), nil
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		retry := int(info.RetryAfter.Seconds() + 0.999)
		response["retry_after"] = retry
		w.Header().Set("Retry-After", strconv.Itoa(retry))
	}

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Int("remaining", info.Remaining),
		zap.Duration("retry_after", info.RetryAfter),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
