// internal/httpserver/sessions.go
//
// HTTP routes for solving sessions, mounted under /sessions:
//   - POST /sessions                   → create a session (solve | play | daily)
//   - GET  /sessions/{id}              → guesses + accumulated constraints
//   - POST /sessions/{id}/guesses      → score or record a guess, merge it
//   - PUT  /sessions/{id}/guesses/{n}  → replace guess n (1-based), solve only
//   - DELETE /sessions/{id}/guesses/{n} → remove guess n, solve only
//   - DELETE /sessions/{id}/guesses    → clear all guesses, solve only
//   - GET  /sessions/{id}/candidates   → candidates consistent with the session
//
// Creating a session returns a signed token (HS256, claim "sid"). Every
// /sessions/{id} route requires that token, as a Bearer header or cookie,
// and its sid must match {id}.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

const (
	sessionCookieName = "solver_session"
	defaultLimit      = 100
	maxLimit          = 5000
)

// mountSessions registers all /sessions routes.
func (s *Server) mountSessions(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/", s.handleGetSession)
			r.Post("/guesses", s.handleSubmitGuess)
			r.Delete("/guesses", s.handleClearGuesses)
			r.Put("/guesses/{n}", s.handleReplaceGuess)
			r.Delete("/guesses/{n}", s.handleRemoveGuess)
			r.Get("/candidates", s.handleCandidates)
		})
	})
}

// -----------------------------------------------------------------------------
// POST /sessions

type newSessionReq struct {
	Mode   string `json:"mode"`   // "solve" (default) | "play" | "daily"
	Target string `json:"target"` // optional fixed target for play mode (testing)
}

type newSessionRes struct {
	SessionID string    `json:"sessionId"`
	Mode      game.Mode `json:"mode"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Date      string    `json:"date,omitempty"` // daily mode only
}

// handleNewSession creates a session, persists it and returns its token.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	mode, err := game.ParseMode(strings.ToLower(strings.TrimSpace(req.Mode)))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_mode", err.Error())
		return
	}

	var target, date string
	switch mode {
	case game.ModePlay:
		target = req.Target
		if strings.TrimSpace(target) == "" {
			target = s.opts.RandomTarget()
		}
	case game.ModeDaily:
		p, err := daily.Pick(s.opts.Now(), s.opts.DailySalt, s.opts.Candidates())
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "no_words", err.Error())
			return
		}
		date, target = p.Date, p.Word
	}

	sess, err := game.NewSession(mode, target)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("session", sess.ID).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	tok, exp, err := s.signSessionToken(sess.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "sign_failed", "")
		return
	}
	setSessionCookie(w, tok, exp)
	sessionsCreated.WithLabelValues(string(mode)).Inc()
	hlog.FromRequest(r).Info().Str("session", sess.ID).Str("mode", string(mode)).Msg("session created")

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newSessionRes{
		SessionID: sess.ID, Mode: mode, Token: tok, ExpiresAt: exp, Date: date,
	})
}

// -----------------------------------------------------------------------------
// GET /sessions/{id}

type sessionRes struct {
	ID          string                `json:"id"`
	Mode        game.Mode             `json:"mode"`
	CreatedAt   time.Time             `json:"createdAt"`
	Solved      bool                  `json:"solved"`
	Target      string                `json:"target,omitempty"` // revealed once solved
	Guesses     []resultJSON          `json:"guesses"`
	Constraints *game.WordConstraints `json:"constraints"`
	Remaining   int                   `json:"remaining"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(s.snapshot(sess))
}

// snapshot renders a session for GET and edit responses.
func (s *Server) snapshot(sess *game.Session) sessionRes {
	out := sessionRes{
		ID:          sess.ID,
		Mode:        sess.Mode,
		CreatedAt:   sess.CreatedAt,
		Solved:      sess.Solved(),
		Guesses:     make([]resultJSON, 0, len(sess.Guesses)),
		Constraints: sess.Constraints,
		Remaining:   len(game.FilterWords(s.opts.Candidates(), sess.Constraints)),
	}
	if out.Solved {
		out.Target = sess.Target
	}
	for _, g := range sess.Guesses {
		out.Guesses = append(out.Guesses, toResultJSON(g))
	}
	return out
}

// -----------------------------------------------------------------------------
// POST /sessions/{id}/guesses

type submitGuessRes struct {
	Result    resultJSON `json:"result"`
	Solved    bool       `json:"solved"`
	Guesses   int        `json:"guesses"`
	Remaining int        `json:"remaining"`
}

// handleSubmitGuess merges one guess into the session.
//   - play/daily: the word is scored against the session target; statuses are ignored.
//   - solve: statuses are required and merged as observed.
func (s *Server) handleSubmitGuess(w http.ResponseWriter, r *http.Request) {
	var req guessJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	var res game.GuessResult
	if sess.Target != "" {
		res, err = sess.Guess(req.Word)
		if err == nil {
			feedbackTotal.Inc()
		}
	} else {
		if len(req.Statuses) == 0 {
			writeError(w, http.StatusBadRequest, "statuses_required", "solve sessions need the observed statuses")
			return
		}
		if res, err = req.toGuessResult(); err == nil {
			err = sess.Record(res)
		}
	}
	if err != nil {
		if !errors.Is(err, game.ErrSolved) {
			observeMergeError(err)
		}
		writeEngineError(w, r, err)
		return
	}
	mergeTotal.WithLabelValues("ok").Inc()

	if err := s.store.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("session", sess.ID).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}

	remaining := len(game.FilterWords(s.opts.Candidates(), sess.Constraints))
	remainingCandidates.Observe(float64(remaining))
	hlog.FromRequest(r).Debug().Str("session", sess.ID).Stringer("guess", res).Int("remaining", remaining).Msg("guess merged")

	_ = json.NewEncoder(w).Encode(submitGuessRes{
		Result:    toResultJSON(res),
		Solved:    sess.Solved(),
		Guesses:   len(sess.Guesses),
		Remaining: remaining,
	})
}

// -----------------------------------------------------------------------------
// PUT /sessions/{id}/guesses/{n}, DELETE /sessions/{id}/guesses[/{n}]

// guessIndex parses the 1-based {n} route param into a slice index.
func guessIndex(r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

// editSession loads the session, applies edit, and saves it on success.
// The edit replays the whole history, so a conflict leaves the stored
// session untouched.
func (s *Server) editSession(w http.ResponseWriter, r *http.Request, edit func(*game.Session) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	if err := edit(sess); err != nil {
		if errors.Is(err, game.ErrConstraintConflict) || errors.Is(err, game.ErrInputShape) {
			observeMergeError(err)
		}
		writeEngineError(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("session", sess.ID).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	hlog.FromRequest(r).Debug().Str("session", sess.ID).Str("method", r.Method).Int("guesses", len(sess.Guesses)).Msg("guesses edited")
	_ = json.NewEncoder(w).Encode(s.snapshot(sess))
}

// handleReplaceGuess swaps guess n for the observed word and statuses.
func (s *Server) handleReplaceGuess(w http.ResponseWriter, r *http.Request) {
	i, ok := guessIndex(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_index", "guess number must be a positive integer")
		return
	}
	var req guessJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	if len(req.Statuses) == 0 {
		writeError(w, http.StatusBadRequest, "statuses_required", "replacement guesses need the observed statuses")
		return
	}
	res, err := req.toGuessResult()
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	s.editSession(w, r, func(sess *game.Session) error { return sess.ReplaceGuess(i, res) })
}

// handleRemoveGuess drops guess n.
func (s *Server) handleRemoveGuess(w http.ResponseWriter, r *http.Request) {
	i, ok := guessIndex(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_index", "guess number must be a positive integer")
		return
	}
	s.editSession(w, r, func(sess *game.Session) error { return sess.RemoveGuess(i) })
}

// handleClearGuesses drops every guess.
func (s *Server) handleClearGuesses(w http.ResponseWriter, r *http.Request) {
	s.editSession(w, r, (*game.Session).ClearGuesses)
}

// -----------------------------------------------------------------------------
// GET /sessions/{id}/candidates

type candidatesRes struct {
	Candidates []string `json:"candidates"`
	Count      int      `json:"count"`
	Truncated  bool     `json:"truncated"`
}

// handleCandidates lists the loaded words still consistent with the session.
// ?limit= caps the returned list (default 100); count is always the full total.
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxLimit {
			writeError(w, http.StatusBadRequest, "bad_limit", "limit must be between 1 and "+strconv.Itoa(maxLimit))
			return
		}
		limit = n
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeEngineError(w, r, err)
		return
	}
	all := game.FilterWords(s.opts.Candidates(), sess.Constraints)
	out := candidatesRes{Candidates: all, Count: len(all)}
	if len(all) > limit {
		out.Candidates = all[:limit]
		out.Truncated = true
	}
	_ = json.NewEncoder(w).Encode(out)
}

// ------------------------------ tokens -------------------------------------

// signSessionToken creates an HS256 token bound to one session ID.
func (s *Server) signSessionToken(sid string) (string, time.Time, error) {
	now := s.opts.Now()
	exp := now.Add(s.opts.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.opts.SessionSecret))
	return ss, exp, err
}

// requireSession enforces a valid token whose sid matches the {id} route param.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerOrCookie(r)
		if tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing session token")
			return
		}
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(s.opts.SessionSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.opts.Now))
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid_token", "")
			return
		}
		if sid, _ := claims["sid"].(string); sid == "" || sid != chi.URLParam(r, "id") {
			writeError(w, http.StatusForbidden, "forbidden", "token does not belong to this session")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// setSessionCookie stores the most recent session token for browser clients.
func setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/sessions",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or the session cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}
