// internal/httpserver/server.go
//
// HTTP server wiring for the lucky game verifier.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/rounds".
//   - Check endpoints (optional auth): mounted under /check.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Optional auth decorates requests with the player id when a valid
//     bearer token is present; checks still run for guests.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/luckygame/apps/go-server/internal/round"
	"github.com/robalobadob/luckygame/apps/go-server/internal/verify"
)

// Options carries the settings the server reads from config.
type Options struct {
	ClientOrigin   string
	JWTSecret      string
	RequestTimeout time.Duration
}

// Server bundles router, round registry and evaluator.
type Server struct {
	r    *chi.Mux
	reg  *round.Registry
	eval *verify.Evaluator
	opts Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(reg *round.Registry, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), reg: reg, eval: verify.New(reg), opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                    // add X-Request-ID
	s.r.Use(chimw.RealIP)                       // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                    // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                    // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"luckygame-go","endpoints":["/health","/rounds","POST /check/lucky","POST /check/color"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/rounds", s.handleRounds)

	// Checks - OPTIONAL AUTH (guests can check)
	s.mountCheck(s.r.With(s.withOptionalAuth()))

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// roundsRes lists registered indices; expected tokens are never exposed.
type roundsRes struct {
	Rounds []uint64 `json:"rounds"`
}

func (s *Server) handleRounds(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(roundsRes{Rounds: s.reg.Indices()})
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// errorRes is the body of every non-2xx JSON response.
type errorRes struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorRes{Error: code})
}
