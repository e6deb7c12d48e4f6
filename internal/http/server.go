// Package http exposes the ledger engine as a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"mdfinancas/internal/services"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// Server wires the ledger services behind an http.Server.
type Server struct {
	http.Server

	registry *services.Registry
	ledger   *services.Ledger
	closer   *services.Closer
	entries  *services.Entries
	settings *services.Settings

	rateLimiter *rateLimiter
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, registry *services.Registry, ledger *services.Ledger,
	closer *services.Closer, entries *services.Entries, settings *services.Settings) *Server {

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		registry:    registry,
		ledger:      ledger,
		closer:      closer,
		entries:     entries,
		settings:    settings,
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/months", s.with(s.handleListMonths))
	mux.HandleFunc("GET /api/months/current", s.with(s.handleCurrentMonths))
	mux.HandleFunc("GET /api/months/{id}/summary", s.with(s.handleMonthSummary))
	mux.HandleFunc("POST /api/months/{id}/close", s.with(s.handleCloseMonth))
	mux.HandleFunc("POST /api/months/{id}/reopen", s.with(s.handleReopenMonth))

	mux.HandleFunc("GET /api/months/{id}/revenues", s.with(s.handleListRevenues))
	mux.HandleFunc("POST /api/months/{id}/revenues", s.with(s.handleCreateRevenue))
	mux.HandleFunc("PUT /api/revenues/{id}", s.with(s.handleUpdateRevenue))
	mux.HandleFunc("DELETE /api/revenues/{id}", s.with(s.handleDeleteRevenue))

	mux.HandleFunc("GET /api/months/{id}/fixed-expenses", s.with(s.handleListFixedExpenses))
	mux.HandleFunc("POST /api/months/{id}/fixed-expenses", s.with(s.handleCreateFixedExpense))
	mux.HandleFunc("PUT /api/fixed-expenses/{id}", s.with(s.handleUpdateFixedExpense))
	mux.HandleFunc("DELETE /api/fixed-expenses/{id}", s.with(s.handleDeleteFixedExpense))
	mux.HandleFunc("POST /api/fixed-expenses/{id}/paid", s.with(s.handleSetFixedExpensePaid))

	mux.HandleFunc("GET /api/months/{id}/pix-expenses", s.with(s.handleListPixExpenses))
	mux.HandleFunc("POST /api/months/{id}/pix-expenses", s.with(s.handleCreatePixExpense))
	mux.HandleFunc("PUT /api/pix-expenses/{id}", s.with(s.handleUpdatePixExpense))
	mux.HandleFunc("DELETE /api/pix-expenses/{id}", s.with(s.handleDeletePixExpense))
	mux.HandleFunc("POST /api/pix-expenses/{id}/paid", s.with(s.handleSetPixExpensePaid))

	mux.HandleFunc("GET /api/months/{id}/card-expenses", s.with(s.handleListCardExpenses))
	mux.HandleFunc("POST /api/months/{id}/card-expenses", s.with(s.handleCreateCardExpense))
	mux.HandleFunc("PUT /api/card-expenses/{id}", s.with(s.handleUpdateCardExpense))
	mux.HandleFunc("DELETE /api/card-expenses/{id}", s.with(s.handleDeleteCardExpense))
	mux.HandleFunc("POST /api/card-expenses/{id}/paid", s.with(s.handleSetCardExpensePaid))

	mux.HandleFunc("GET /api/months/{id}/installments", s.with(s.handleListInstallments))
	mux.HandleFunc("POST /api/months/{id}/installments", s.with(s.handleCreateInstallment))
	mux.HandleFunc("PUT /api/installments/{id}", s.with(s.handleUpdateInstallment))
	mux.HandleFunc("DELETE /api/installments/{id}", s.with(s.handleDeleteInstallment))

	mux.HandleFunc("GET /api/cards", s.with(s.handleListCards))
	mux.HandleFunc("POST /api/cards", s.with(s.handleCreateCard))
	mux.HandleFunc("DELETE /api/cards/{id}", s.with(s.handleDeleteCard))
	mux.HandleFunc("PUT /api/months/{monthID}/cards/{cardID}/statement", s.with(s.handleBulkEditStatement))

	mux.HandleFunc("GET /api/settings/pix-surcharge", s.with(s.handleGetPixSurcharge))
	mux.HandleFunc("PUT /api/settings/pix-surcharge", s.with(s.handleSetPixSurcharge))

	return s
}

// with adds security headers, rate limiting, request IDs and request logging.
func (s *Server) with(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)
		w.Header().Set("X-Request-ID", requestID)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.rateLimiter != nil {
		s.rateLimiter.stop()
	}
	return s.Server.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
