package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
)

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, code, detail string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: code, Detail: detail})
}

// writeEngineError maps engine and store errors onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var ce *game.ConflictError
	switch {
	case errors.As(err, &ce):
		hlog.FromRequest(r).Info().Err(err).Str("kind", string(ce.Kind)).Msg("constraint conflict")
		writeError(w, http.StatusConflict, "constraint_conflict", err.Error())
	case errors.Is(err, game.ErrInputShape):
		writeError(w, http.StatusBadRequest, "input_shape", err.Error())
	case errors.Is(err, game.ErrSolved):
		writeError(w, http.StatusConflict, "solved", err.Error())
	case errors.Is(err, game.ErrNotEditable):
		writeError(w, http.StatusConflict, "not_editable", err.Error())
	case errors.Is(err, game.ErrNoGuess):
		writeError(w, http.StatusNotFound, "guess_not_found", err.Error())
	case errors.Is(err, game.ErrNoTarget):
		writeError(w, http.StatusBadRequest, "no_target", err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal", "")
	}
}
