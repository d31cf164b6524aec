package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"parksmart/internal/advisory"
	"parksmart/internal/cache"
	"parksmart/internal/core"
	"parksmart/internal/kv"
	"parksmart/internal/ledger"
	"parksmart/internal/log"
	"parksmart/internal/notify"
	"parksmart/internal/services"
)

type Server struct {
	http.Server
	spends      *services.SpendService
	ledger      *ledger.Ledger
	store       kv.Store
	classifier  *advisory.Classifier
	reminders   *notify.Scheduler
	rateLimiter *rateLimiter
	metrics     *securityMetrics
	structured  *log.StructuredLogger

	// Derived summaries are cached and dropped wholesale on any ledger
	// mutation, via the ledger's own subscription channel. Weekly totals
	// stay uncached because their windows are anchored to the query time.
	cacheManager *cache.Manager
	monthlyCache *cache.LRUCache[float64]
	topCache     *cache.LRUCache[[]core.CarparkSpend]
	unsubscribe  func()

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, spends *services.SpendService, l *ledger.Ledger, store kv.Store, classifier *advisory.Classifier, reminders *notify.Scheduler, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	s := &Server{
		spends:       spends,
		ledger:       l,
		store:        store,
		classifier:   classifier,
		reminders:    reminders,
		rateLimiter:  newRateLimiter(),
		metrics:      &securityMetrics{},
		structured:   log.NewStructuredLogger(logger.WithComponent(log.ComponentHTTP)),
		cacheManager: cache.NewManager(),
		monthlyCache: cache.NewLRUCache[float64](64, 5*time.Minute),
		topCache:     cache.NewLRUCache[[]core.CarparkSpend](16, 5*time.Minute),
	}
	s.cacheManager.Register(s.monthlyCache)
	s.cacheManager.Register(s.topCache)
	s.cacheManager.StartCleanup(time.Minute)
	s.Server = http.Server{
		Addr:    addr,
		Handler: log.Middleware(logger)(mux),
	}

	// Any mutation drops all derived summaries.
	s.unsubscribe = l.Subscribe(func([]core.SpendRecord) {
		s.invalidateSummaries()
	})

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/advice", s.withSecurityHeaders(s.handleAdvice))

	mux.HandleFunc("GET /api/spend", s.withSecurityHeaders(s.handleListSpend))
	mux.HandleFunc("POST /api/spend", s.withSecurityHeaders(s.handleLogSpend))
	mux.HandleFunc("DELETE /api/spend", s.withSecurityHeaders(s.handleClearSpend))
	mux.HandleFunc("DELETE /api/spend/{id}", s.withSecurityHeaders(s.handleDeleteSpend))

	mux.HandleFunc("GET /api/spend/monthly", s.withSecurityHeaders(s.handleMonthlyTotal))
	mux.HandleFunc("GET /api/spend/monthly/entries", s.withSecurityHeaders(s.handleMonthEntries))
	mux.HandleFunc("GET /api/spend/weekly", s.withSecurityHeaders(s.handleWeeklyTotals))
	mux.HandleFunc("GET /api/spend/top-carparks", s.withSecurityHeaders(s.handleTopCarparks))

	mux.HandleFunc("POST /api/reminder", s.withSecurityHeaders(s.handleScheduleReminder))
	mux.HandleFunc("DELETE /api/reminder", s.withSecurityHeaders(s.handleCancelReminder))

	return s
}

func (s *Server) invalidateSummaries() {
	s.monthlyCache.Purge()
	s.topCache.Purge()
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		s.structured.LogHTTPStart(ctx, r, clientIP)

		if detectSuspiciousRequest(r, s.metrics) {
			log.FromContext(ctx).WarnContext(ctx, "Suspicious request pattern",
				log.FieldClientIP, clientIP, log.FieldPath, r.URL.Path)
		}

		// Mutating requests are rate limited per client.
		if (r.Method == http.MethodPost || r.Method == http.MethodDelete) && !s.rateLimiter.allow(clientIP, s.metrics) {
			w.Header().Set("Retry-After", "60")
			ErrorResponse(http.StatusTooManyRequests, "rate limit exceeded, try again later").Write(w)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.structured.LogHTTPEnd(ctx, r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
