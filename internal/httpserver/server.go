// internal/httpserver/server.go
//
// HTTP server wiring for the solver backend.
// Responsibilities:
//   - Router + middleware (request IDs, access logs, panic recovery,
//     timeouts, JSON, CORS).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Stateless engine endpoints: POST /feedback, POST /filter.
//   - Session endpoints (token-gated after creation): mounted under /sessions.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Session handlers hold a single mutex; a constraint set is never read
//     or merged into from two requests at once.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Options configures a Server. Zero values fall back to sensible defaults.
type Options struct {
	SessionSecret string
	SessionTTL    time.Duration
	ClientOrigin  string
	DailySalt     string

	// Candidates supplies the word list used for filtering (default words.Candidates).
	Candidates func() []string
	// RandomTarget picks a target for play sessions (default words.RandomAnswer).
	RandomTarget func() string
	// Now is the clock used for the daily rotation and token expiry.
	Now func() time.Time
	// Logger receives access and handler logs (default: the global zerolog logger).
	Logger *zerolog.Logger
}

func (o *Options) defaults() {
	if o.SessionSecret == "" {
		o.SessionSecret = config.DevSecret
	}
	if o.SessionTTL <= 0 {
		o.SessionTTL = 24 * time.Hour
	}
	if o.ClientOrigin == "" {
		o.ClientOrigin = "http://localhost:5173"
	}
	if o.Candidates == nil {
		o.Candidates = words.Candidates
	}
	if o.RandomTarget == nil {
		o.RandomTarget = words.RandomAnswer
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = &log.Logger
	}
}

// Server bundles router, session store and options.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options
	mu    sync.Mutex // serializes session access
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	opts.defaults()
	s := &Server{r: chi.NewRouter(), store: st, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(*opts.Logger))   // per-request logger
	s.r.Use(requestIDLogField)               // tie logs to X-Request-ID
	s.r.Use(accessLog())                     // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFor(opts.ClientOrigin))      // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"service": "wordle-solver",
			"endpoints": []string{
				"/health", "/metrics", "POST /feedback", "POST /filter",
				"POST /sessions", "GET /sessions/{id}", "POST /sessions/{id}/guesses",
				"PUT /sessions/{id}/guesses/{n}", "DELETE /sessions/{id}/guesses/{n}",
				"DELETE /sessions/{id}/guesses",
				"GET /sessions/{id}/candidates",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "words": len(s.opts.Candidates())})
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// --- engine ---
	s.r.Post("/feedback", s.handleFeedback)
	s.r.Post("/filter", s.handleFilter)

	// --- sessions ---
	s.mountSessions(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables credentialed CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestIDLogField adds chi's request ID to the request logger.
func requestIDLogField(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one debug line per request with status and latency.
func accessLog() func(http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	})
}

// ------------------------------ ENGINE -------------------------------------

// guessJSON is a scored guess on the wire. Statuses accept the names
// understood by game.ParseLetterStatus.
type guessJSON struct {
	Word     string   `json:"word"`
	Statuses []string `json:"statuses"`
}

// resultJSON is how a GuessResult is returned.
type resultJSON struct {
	Word     string              `json:"word"`
	Statuses []game.LetterStatus `json:"statuses"`
	Solved   bool                `json:"solved"`
}

func toResultJSON(g game.GuessResult) resultJSON {
	return resultJSON{Word: g.Word(), Statuses: g.Statuses(), Solved: g.Solved()}
}

// toGuessResult validates a wire guess into an engine result.
func (g guessJSON) toGuessResult() (game.GuessResult, error) {
	st := make([]game.LetterStatus, len(g.Statuses))
	for i, raw := range g.Statuses {
		s, err := game.ParseLetterStatus(raw)
		if err != nil {
			return game.GuessResult{}, err
		}
		st[i] = s
	}
	return game.NewGuessResult(g.Word, st)
}

type feedbackReq struct {
	Guess  string `json:"guess"`
	Target string `json:"target"`
}

// handleFeedback scores a guess against a caller-supplied target.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	res, err := game.ComputeFeedback(req.Guess, req.Target)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	feedbackTotal.Inc()
	_ = json.NewEncoder(w).Encode(toResultJSON(res))
}

type filterReq struct {
	Guesses []guessJSON `json:"guesses"`
	Words   []string    `json:"words"` // optional; defaults to the loaded list
}

type filterRes struct {
	Candidates  []string              `json:"candidates"`
	Count       int                   `json:"count"`
	Constraints *game.WordConstraints `json:"constraints"`
}

// handleFilter replays the given guesses and filters a word list.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	results := make([]game.GuessResult, 0, len(req.Guesses))
	for _, g := range req.Guesses {
		res, err := g.toGuessResult()
		if err != nil {
			writeEngineError(w, r, err)
			return
		}
		results = append(results, res)
	}
	c, err := game.Replay(results)
	if err != nil {
		observeMergeError(err)
		writeEngineError(w, r, err)
		return
	}
	mergeTotal.WithLabelValues("ok").Add(float64(len(results)))

	list := req.Words
	if list == nil {
		list = s.opts.Candidates()
	}
	out := game.FilterWords(list, c)
	remainingCandidates.Observe(float64(len(out)))
	_ = json.NewEncoder(w).Encode(filterRes{Candidates: out, Count: len(out), Constraints: c})
}
