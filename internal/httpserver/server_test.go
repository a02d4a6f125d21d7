package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle-sim/internal/store"
	"github.com/robalobadob/wordle/apps/wordle-sim/internal/words"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dict, err := words.FromWords("fates", "facts", "gates", "wrung", "plate", "bunny", "nanny", "uncle")
	require.NoError(t, err)
	return New(dict, store.NewMemoryStore(), Options{MaxTrials: 50, Workers: 2})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestWordStats(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/words/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[words.Stats](t, rec)
	assert.Equal(t, 8, st.Words)
}

func TestScore(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/score", `{"secret":"bunny","guess":"NANNY"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"marks":["miss","miss","hit","hit","hit"],"pattern":"..ggg","solved":false}`,
		rec.Body.String())

	rec = do(t, s, http.MethodPost, "/score", `{"secret":"bun","guess":"nanny"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_word"}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/score", `{"guess":"nanny"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"missing_word"}`, rec.Body.String())
}

func TestFilter(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/filter",
		`{"guess":"facts","marks":["hit","hit","miss","present","hit"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":1,"remaining":["fates"]}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/filter",
		`{"guess":"nanny","marks":["miss","miss","hit","hit","hit"],"candidates":["bunny","nanny","fates"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":1,"remaining":["bunny"]}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/filter", `{"guess":"facts","marks":["hit"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/filter", `{"guess":"facts","marks":["green","hit","hit","hit","hit"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRuns(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/runs", `{"trials":40,"seed":"4171687965805832080"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	assert.Equal(t, "4171687965805832080", created["seed"])
	assert.EqualValues(t, 40, created["trials"])
	assert.EqualValues(t, 2, created["workers"])
	require.Contains(t, created, "summary")
	id, _ := created["id"].(string)
	require.Len(t, id, 16)

	rec = do(t, s, http.MethodGet, "/runs/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]any](t, rec)
	assert.Equal(t, created["histogram"], got["histogram"])

	rec = do(t, s, http.MethodGet, "/runs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]map[string]any](t, rec)
	assert.Len(t, list, 1)

	rec = do(t, s, http.MethodGet, "/runs/deadbeef", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/runs", `{"trials":51}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/runs", `{"trials":5,"seed":"-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/runs?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunsSameSeedSameHistogram(t *testing.T) {
	s := newTestServer(t)
	a := decode[map[string]any](t, do(t, s, http.MethodPost, "/runs", `{"trials":30,"seed":"11","workers":1}`))
	b := decode[map[string]any](t, do(t, s, http.MethodPost, "/runs", `{"trials":30,"seed":"11","workers":3}`))
	assert.Equal(t, a["histogram"], b["histogram"])
	assert.NotEqual(t, a["id"], b["id"])
}

func TestNotFound(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
}
