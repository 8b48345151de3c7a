// internal/httpserver/routes_check.go
//
// HTTP routes for the two round checks.
//   - POST /check/lucky  → does the candidate equal the round's lucky token?
//   - POST /check/color  → does the candidate equal the round's color token?
//
// Both take {"round": <uint>, "candidate": "<text>"} and answer
// {"round": n, "kind": "...", "match": bool}. A non-match is a 200;
// only an unregistered round or a non-text candidate is an error.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/luckygame/apps/go-server/internal/round"
	"github.com/robalobadob/luckygame/apps/go-server/internal/verify"
)

// mountCheck registers all /check routes.
func (s *Server) mountCheck(r chi.Router) {
	r.Route("/check", func(r chi.Router) {
		r.Post("/{kind}", s.handleCheck)
	})
}

// checkReq is the request payload for /check/{kind}.
type checkReq struct {
	Round     *uint64         `json:"round"`
	Candidate json.RawMessage `json:"candidate"`
}

// checkRes is the response payload for /check/{kind}.
type checkRes struct {
	Round uint64      `json:"round"`
	Kind  verify.Kind `json:"kind"`
	Match bool        `json:"match"`
}

// handleCheck decodes the request, runs the predicate for {kind} and
// maps evaluator errors onto status codes.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	kind := verify.Kind(chi.URLParam(r, "kind"))
	if kind != verify.KindLucky && kind != verify.KindColor {
		writeError(w, http.StatusNotFound, "unknown_kind")
		return
	}

	var req checkReq
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil || req.Round == nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	// exactly one JSON value per body
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	candidate, err := verify.ParseCandidate(req.Candidate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_candidate")
		return
	}

	match, err := s.eval.Check(kind, *req.Round, candidate)
	switch {
	case errors.Is(err, round.ErrUnknownRound):
		writeError(w, http.StatusNotFound, "unknown_round")
		return
	case err != nil:
		log.Error().Err(err).Str("kind", string(kind)).Uint64("round", *req.Round).Msg("check")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	log.Debug().
		Str("kind", string(kind)).
		Uint64("round", *req.Round).
		Bool("match", match).
		Str("player", playerID(r)).
		Msg("check")
	_ = json.NewEncoder(w).Encode(checkRes{Round: *req.Round, Kind: kind, Match: match})
}
