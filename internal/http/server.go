// Package http exposes the JSON API over the finance service.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"wealthwallet/internal/cache"
	"wealthwallet/internal/services"
)

type Server struct {
	http.Server
	finance     *services.FinanceService
	rateLimiter *rateLimiter

	// Dashboard views are cached per user and month. Any write by a user
	// bumps their generation counter, orphaning that user's cached entries
	// instead of enumerating them; orphans age out via LRU and TTL.
	dashboardCache *cache.LRUCache[services.Dashboard]
	cacheManager   *cache.Manager
	genMu          sync.Mutex
	generations    map[string]uint64

	shutdownOnce sync.Once

	// now is swappable in tests; production uses time.Now.
	now func() time.Time
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, finance *services.FinanceService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		finance:        finance,
		rateLimiter:    newRateLimiter(),
		dashboardCache: cache.NewLRUCache[services.Dashboard](100, 5*time.Minute),
		cacheManager:   cache.NewManager(),
		generations:    make(map[string]uint64),
		now:            time.Now,
	}

	s.cacheManager.Register(s.dashboardCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/dashboard", s.withMiddleware(s.requireUser(s.handleDashboard)))
	mux.HandleFunc("/api/transactions", s.withMiddleware(s.requireUser(s.handleTransactions)))
	mux.HandleFunc("/api/budgets", s.withMiddleware(s.requireUser(s.handleBudgets)))
	mux.HandleFunc("/api/profile", s.withMiddleware(s.requireUser(s.handleProfile)))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withMiddleware adds security headers, rate limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Rate limit writes only; dashboard polling stays cheap.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// requireUser resolves the caller's identity from the X-User-ID header.
// Identity verification is delegated to the fronting proxy.
func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-User-ID") == "" {
			writeError(w, http.StatusUnauthorized, "missing X-User-ID header")
			return
		}
		next(w, r)
	}
}

func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) generation(user string) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generations[user]
}

func (s *Server) bumpGeneration(user string) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	s.generations[user]++
}

func (s *Server) dashboardKey(user string, month, year int) string {
	return user + "#" + strconv.FormatUint(s.generation(user), 10) +
		":" + strconv.Itoa(year) + "-" + strconv.Itoa(month)
}
