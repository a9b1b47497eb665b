// server.go
//
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.
//
// This file implements the HTTP handlers of the finder service,
// which receive JSON encoded requests and return JSON encoded
// responses.

package skrafl

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// RequestTimeout bounds the handling time of a single request
const RequestTimeout = 30 * time.Second

// ResponseVersion is the version stamped on every response
const ResponseVersion = "1.0"

// AnagramsRequest asks for the words that can be formed from a rack
type AnagramsRequest struct {
	Rack  string `json:"rack"`
	Limit int    `json:"limit"`
}

// PlaysRequest asks for the best plays for a rack on a board.
// Layout and Board are the rows of the layout and current-state
// grids; an empty Layout means the default layout and an empty
// Board means that no tiles have been laid down.
type PlaysRequest struct {
	Rack   string   `json:"rack"`
	Layout []string `json:"layout"`
	Board  []string `json:"board"`
}

// ScoreRequest asks for the score of a word formed from a rack.
// If Direction is given, the word is scored on the board,
// starting at Row, Col.
type ScoreRequest struct {
	Word      string     `json:"word"`
	Rack      string     `json:"rack"`
	Layout    []string   `json:"layout"`
	Board     []string   `json:"board"`
	Direction *Direction `json:"direction"`
	Row       int        `json:"row"`
	Col       int        `json:"col"`
}

// AnagramsResponse is the JSON response to an AnagramsRequest
type AnagramsResponse struct {
	Version string       `json:"version"`
	Count   int          `json:"count"`
	Words   []ScoredWord `json:"words"`
}

// PlaysResponse is the JSON response to a PlaysRequest
type PlaysResponse struct {
	Version string `json:"version"`
	Count   int    `json:"count"`
	Plays   []Play `json:"plays"`
}

// ScoreResponse is the JSON response to a ScoreRequest
type ScoreResponse struct {
	Version string `json:"version"`
	Word    string `json:"word"`
	Points  int    `json:"points"`
}

// ErrorResponse is returned with every non-2xx status
type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTPStatus maps an error to the HTTP status code to return for it
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidPlay):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoExtender):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// ServerOptions holds the access settings of a Server
type ServerOptions struct {
	// AccessKey, if set, must be given as a bearer token
	AccessKey string
	// AllowedOrigins is the value of the CORS allow-origin header
	AllowedOrigins string
}

// Server serves the Finder over HTTP
type Server struct {
	finder     *Finder
	authHeader string
	origins    string
}

// NewServer returns a Server for the given Finder
func NewServer(finder *Finder, opts ServerOptions) *Server {
	srv := &Server{finder: finder, origins: opts.AllowedOrigins}
	if opts.AccessKey != "" {
		srv.authHeader = "Bearer " + opts.AccessKey
	}
	if srv.origins == "" {
		// Default to all origins allowed
		srv.origins = "*"
	}
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("unable to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// validate sets the CORS headers, checks the method and the
// authorization, and decodes the JSON body into req. If it
// returns false, the response has already been written.
func (srv *Server) validate(w http.ResponseWriter, r *http.Request, req any) bool {
	header := w.Header()
	header.Set("Access-Control-Allow-Origin", srv.origins)
	header.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	// Handle preflight OPTIONS request
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return false
	}
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "invalid request method"})
		return false
	}
	if srv.authHeader != "" && r.Header.Get("Authorization") != srv.authHeader {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authorization header mismatch"})
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		// Not valid JSON
		writeError(w, newError(ErrInvalidInput, "cannot decode request: %v", err))
		return false
	}
	return true
}

// requestBoard builds a Board from the rows of a request
func requestBoard(layout, current []string) (*Board, error) {
	var layoutReader = DefaultLayout()
	if len(layout) > 0 {
		layoutReader = strings.NewReader(strings.Join(layout, "\n"))
	}
	if len(current) == 0 {
		return ParseBoard(layoutReader, nil)
	}
	return ParseBoard(layoutReader, strings.NewReader(strings.Join(current, "\n")))
}

// HandleAnagrams serves an AnagramsRequest
func (srv *Server) HandleAnagrams(w http.ResponseWriter, r *http.Request) {
	var req AnagramsRequest
	if !srv.validate(w, r, &req) {
		return
	}
	rack, err := ParseRack(req.Rack)
	if err != nil {
		writeError(w, err)
		return
	}
	words, err := srv.finder.ScoredAnagrams(r.Context(), rack)
	if err != nil {
		writeError(w, err)
		return
	}
	// If a limit is specified, return only the highest scoring words
	if req.Limit > 0 && req.Limit < len(words) {
		words = words[len(words)-req.Limit:]
	}
	writeJSON(w, http.StatusOK, AnagramsResponse{
		Version: ResponseVersion,
		Count:   len(words),
		Words:   words,
	})
}

// HandlePlays serves a PlaysRequest
func (srv *Server) HandlePlays(w http.ResponseWriter, r *http.Request) {
	var req PlaysRequest
	if !srv.validate(w, r, &req) {
		return
	}
	rack, err := ParseRack(req.Rack)
	if err != nil {
		writeError(w, err)
		return
	}
	board, err := requestBoard(req.Layout, req.Board)
	if err != nil {
		writeError(w, err)
		return
	}
	plays, err := srv.finder.OptimalPlays(r.Context(), rack, board)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PlaysResponse{
		Version: ResponseVersion,
		Count:   len(plays),
		Plays:   plays,
	})
}

// HandleScore serves a ScoreRequest
func (srv *Server) HandleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !srv.validate(w, r, &req) {
		return
	}
	rack, err := ParseRack(req.Rack)
	if err != nil {
		writeError(w, err)
		return
	}
	word := strings.ToUpper(strings.TrimSpace(req.Word))
	scorer := srv.finder.Scorer()
	var points int
	if req.Direction == nil {
		points, err = scorer.Score(word, rack)
	} else {
		var board *Board
		board, err = requestBoard(req.Layout, req.Board)
		if err == nil {
			points, err = scorer.ScoreOnBoard(word, rack, board, *req.Direction,
				Coordinate{Row: req.Row, Col: req.Col})
		}
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ScoreResponse{
		Version: ResponseVersion,
		Word:    word,
		Points:  points,
	})
}

// HandleWarmup serves App Engine warmup requests
func (srv *Server) HandleWarmup(w http.ResponseWriter, r *http.Request) {
	// No concrete action required
	log.Info().Msg("warmup request received")
	fmt.Fprintln(w, "ok")
}

// Router returns a chi router with the endpoints of the Server.
// If metrics is not nil, it is served at /metrics.
func (srv *Server) Router(metrics http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(RequestTimeout))

	r.Get("/_ah/warmup", srv.HandleWarmup)
	endpoints := map[string]http.HandlerFunc{
		"/anagrams": srv.HandleAnagrams,
		"/plays":    srv.HandlePlays,
		"/score":    srv.HandleScore,
	}
	for path, handler := range endpoints {
		r.Post(path, handler)
		// CORS preflight
		r.Options(path, handler)
	}
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "no such endpoint: " + r.URL.Path})
	})
	return r
}
