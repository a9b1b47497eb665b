// server_test.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.
// This file contains tests for the HTTP handlers

/*

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.

*/

package skrafl

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func newTestServer(t *testing.T, opts ServerOptions) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	index := newTestIndex(t, WithMetrics(NewMetrics(reg)))
	srv := NewServer(NewFinder(index, nil), opts)
	return srv.Router(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}

func post(handler http.Handler, path, body string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleAnagrams(t *testing.T) {
	is := is.New(t)
	handler := newTestServer(t, ServerOptions{})

	rec := post(handler, "/anagrams", `{"rack": "teers"}`)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(rec.Header().Get("Access-Control-Allow-Origin"), "*")
	var resp AnagramsResponse
	is.NoErr(json.NewDecoder(rec.Body).Decode(&resp))
	is.Equal(resp.Version, ResponseVersion)
	is.Equal(resp.Count, 5)
	is.Equal(resp.Words[0], ScoredWord{Word: "ER", Points: 2})

	// The limit keeps the highest scoring words
	rec = post(handler, "/anagrams", `{"rack": "teers", "limit": 2}`)
	is.Equal(rec.Code, http.StatusOK)
	is.NoErr(json.NewDecoder(rec.Body).Decode(&resp))
	is.Equal(resp.Count, 2)
	is.Equal(resp.Words[1].Word, "RESET")

	rec = post(handler, "/anagrams", `{"rack": "te1"}`)
	is.Equal(rec.Code, http.StatusBadRequest)
	// Too many blank tiles
	rec = post(handler, "/anagrams", `{"rack": "???????"}`)
	is.Equal(rec.Code, http.StatusBadRequest)
	rec = post(handler, "/plays", `{"rack": "t???s"}`)
	is.Equal(rec.Code, http.StatusBadRequest)
	rec = post(handler, "/anagrams", `{"rack":`)
	is.Equal(rec.Code, http.StatusBadRequest)
}

func TestHandlePlays(t *testing.T) {
	is := is.New(t)
	handler := newTestServer(t, ServerOptions{})

	rec := post(handler, "/plays", `{"rack": "TEERS"}`)
	is.Equal(rec.Code, http.StatusOK)
	var resp PlaysResponse
	is.NoErr(json.NewDecoder(rec.Body).Decode(&resp))
	is.Equal(resp.Count, 5)
	is.Equal(resp.Plays[0].Anchor, Coordinate{Row: 7, Col: 3})
	is.Equal(resp.Plays[0].Direction, Horizontal)

	// Tiles on the board and no extender
	board := emptyRows(BoardSize)
	board[7] = ".......er......"
	body, err := json.Marshal(PlaysRequest{Rack: "TEERS", Board: board})
	is.NoErr(err)
	rec = post(handler, "/plays", string(body))
	is.Equal(rec.Code, http.StatusNotImplemented)

	// A layout without a start square
	body, err = json.Marshal(PlaysRequest{Rack: "TEERS", Layout: emptyRows(5)})
	is.NoErr(err)
	rec = post(handler, "/plays", string(body))
	is.Equal(rec.Code, http.StatusNotFound)
}

func TestHandleScore(t *testing.T) {
	is := is.New(t)
	handler := newTestServer(t, ServerOptions{})

	rec := post(handler, "/score", `{"word": "quiz", "rack": "QUI?"}`)
	is.Equal(rec.Code, http.StatusOK)
	var resp ScoreResponse
	is.NoErr(json.NewDecoder(rec.Body).Decode(&resp))
	is.Equal(resp.Word, "QUIZ")
	is.Equal(resp.Points, 12)

	// On the default board, across the TripleWord square at 1H
	rec = post(handler, "/score", `{"word": "TEST", "rack": "TEST", "direction": "h", "row": 0, "col": 4}`)
	is.Equal(rec.Code, http.StatusOK)
	is.NoErr(json.NewDecoder(rec.Body).Decode(&resp))
	is.Equal(resp.Points, 12)

	rec = post(handler, "/score", `{"word": "PEST", "rack": "TES"}`)
	is.Equal(rec.Code, http.StatusBadRequest)
	rec = post(handler, "/score", `{"word": "TEST", "rack": "TEST", "direction": "sideways"}`)
	is.Equal(rec.Code, http.StatusBadRequest)
}

func TestServerAccess(t *testing.T) {
	is := is.New(t)
	handler := newTestServer(t, ServerOptions{AccessKey: "secret", AllowedOrigins: "https://netskrafl.is"})

	rec := post(handler, "/anagrams", `{"rack": "TEERS"}`)
	is.Equal(rec.Code, http.StatusUnauthorized)
	rec = post(handler, "/anagrams", `{"rack": "TEERS"}`, "Authorization", "Bearer wrong")
	is.Equal(rec.Code, http.StatusUnauthorized)
	rec = post(handler, "/anagrams", `{"rack": "TEERS"}`, "Authorization", "Bearer secret")
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(rec.Header().Get("Access-Control-Allow-Origin"), "https://netskrafl.is")

	// CORS preflight needs no authorization
	req := httptest.NewRequest(http.MethodOptions, "/plays", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	is.Equal(rec.Code, http.StatusNoContent)
	is.Equal(rec.Header().Get("Access-Control-Allow-Methods"), "POST, OPTIONS")

	req = httptest.NewRequest(http.MethodGet, "/anagrams", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	is.Equal(rec.Code, http.StatusMethodNotAllowed)
}

func TestServerMiscEndpoints(t *testing.T) {
	is := is.New(t)
	handler := newTestServer(t, ServerOptions{})
	post(handler, "/anagrams", `{"rack": "TEERS"}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	is.Equal(rec.Code, http.StatusOK)
	is.True(strings.Contains(rec.Body.String(), "skrafl_index_lookups_total 1"))

	req = httptest.NewRequest(http.MethodGet, "/_ah/warmup", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	is.Equal(rec.Code, http.StatusOK)

	req = httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	is.Equal(rec.Code, http.StatusNotFound)
}

func TestHTTPStatus(t *testing.T) {
	is := is.New(t)
	is.Equal(HTTPStatus(nil), http.StatusOK)
	is.Equal(HTTPStatus(newError(ErrInvalidInput, "x")), http.StatusBadRequest)
	is.Equal(HTTPStatus(newError(ErrInvalidPlay, "x")), http.StatusBadRequest)
	is.Equal(HTTPStatus(newError(ErrNotFound, "x")), http.StatusNotFound)
	is.Equal(HTTPStatus(fmt.Errorf("wrapped: %w", ErrNoExtender)), http.StatusNotImplemented)
	is.Equal(HTTPStatus(storageError("op", errors.New("boom"))), http.StatusInternalServerError)
	is.Equal(HTTPStatus(errors.New("other")), http.StatusInternalServerError)
}
