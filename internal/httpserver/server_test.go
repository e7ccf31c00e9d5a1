package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidsrrose/wordle-bot/internal/config"
	"github.com/davidsrrose/wordle-bot/internal/store"
	"github.com/davidsrrose/wordle-bot/internal/words"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Strategy = "first"
	return cfg
}

func newTestServer(t *testing.T, cfg config.Config, withDB bool) (*Server, store.Store) {
	t.Helper()
	list, err := words.FromWords("test", []string{"ARSON", "BLIMP", "CRANE", "ARISE", "AROSE"})
	require.NoError(t, err)

	st := store.NewMemoryStore()
	if !withDB {
		srv, err := New(cfg, list, st, nil)
		require.NoError(t, err)
		return srv, st
	}
	db, err := store.OpenDB(filepath.Join(t.TempDir(), "wordlebot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, store.Migrate(db))
	sqlite := store.NewSQLiteStore(db)
	srv, err := New(cfg, list, sqlite, db)
	require.NoError(t, err)
	return srv, sqlite
}

func do(t *testing.T, srv *Server, method, path string, body any, header ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	out := map[string]any{}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func TestDiagnostics(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), false)

	rec, body := do(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	_, body = do(t, srv, http.MethodGet, "/debug/words", nil)
	assert.Equal(t, float64(5), body["words"])

	rec, body = do(t, srv, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", body["error"])

	rec, _ = do(t, srv, http.MethodOptions, "/solve/new", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	// daily routes need a database
	rec, _ = do(t, srv, http.MethodGet, "/daily/today", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSolveFlow(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), false)

	rec, body := do(t, srv, http.MethodPost, "/solve/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ARSON", body["guess"])
	assert.Equal(t, "strict", body["mode"])
	assert.Equal(t, "first", body["strategy"])
	id := body["sessionId"].(string)

	rec, body = do(t, srv, http.MethodPost, "/solve/next", map[string]any{
		"sessionId": id,
		"board":     []map[string]any{{"guess": "ARSON", "pattern": "YGBBY"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CRANE", body["guess"])
	assert.Equal(t, float64(1), body["remaining"])
	assert.Equal(t, "narrowing", body["state"])

	rec, body = do(t, srv, http.MethodGet, "/solve/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"CRANE"}, body["candidates"])
}

func TestSolveNext_Marks(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), false)
	_, body := do(t, srv, http.MethodPost, "/solve/new", map[string]any{"mode": "legacy"})
	assert.Equal(t, "legacy", body["mode"])

	_, body = do(t, srv, http.MethodPost, "/solve/next", map[string]any{
		"sessionId": body["sessionId"],
		"board": []map[string]any{{
			"guess": "ARSON", "marks": []string{"present", "hit", "miss", "miss", "present"},
		}},
	})
	assert.Equal(t, "CRANE", body["guess"])
}

func TestSolveNext_Errors(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), false)
	_, body := do(t, srv, http.MethodPost, "/solve/new", nil)
	id := body["sessionId"]

	rec, body := do(t, srv, http.MethodPost, "/solve/next", map[string]any{
		"sessionId": id, "board": []map[string]any{{"guess": "ARSON", "pattern": "GGB"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "malformed_feedback", body["error"])

	rec, _ = do(t, srv, http.MethodPost, "/solve/next", map[string]any{"sessionId": "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	exhausting := map[string]any{
		"sessionId": id, "board": []map[string]any{{"guess": "ARSON", "pattern": "YBBBB"}},
	}
	for i := 0; i < 2; i++ {
		rec, body = do(t, srv, http.MethodPost, "/solve/next", exhausting)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "exhausted", body["error"])
	}

	rec, _ = do(t, srv, http.MethodPost, "/solve/new", map[string]any{"mode": "fuzzy"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, opening := range []string{"12345", "CRAN"} {
		rec, body = do(t, srv, http.MethodPost, "/solve/new", map[string]any{"opening": opening})
		assert.Equal(t, http.StatusBadRequest, rec.Code, opening)
		assert.Equal(t, "bad_config", body["error"], opening)
	}

	_, body = do(t, srv, http.MethodPost, "/solve/new", map[string]any{"opening": " crane "})
	assert.Equal(t, "CRANE", body["guess"])
}

func TestSolveSessions_Evicted(t *testing.T) {
	cfg := testConfig()
	cfg.SessionCacheSize = 1
	srv, _ := newTestServer(t, cfg, false)

	_, first := do(t, srv, http.MethodPost, "/solve/new", nil)
	_, _ = do(t, srv, http.MethodPost, "/solve/new", nil)

	rec, _ := do(t, srv, http.MethodGet, "/solve/"+first["sessionId"].(string), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSimulateAndRuns(t *testing.T) {
	srv, st := newTestServer(t, testConfig(), false)

	rec, body := do(t, srv, http.MethodPost, "/simulate", map[string]any{"answer": "crane"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "won", body["outcome"])
	assert.Equal(t, []any{"ARSON", "CRANE"}, body["guesses"])
	assert.Equal(t, "api", body["source"])
	id := body["id"].(string)

	saved, err := st.Get(httptest.NewRequest(http.MethodGet, "/", nil).Context(), id)
	require.NoError(t, err)
	assert.Equal(t, "CRANE", saved.Answer)

	rec, body = do(t, srv, http.MethodGet, "/runs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["runs"], 1)

	_, body = do(t, srv, http.MethodGet, "/runs/"+id, nil)
	assert.Equal(t, id, body["id"])

	_, body = do(t, srv, http.MethodGet, "/runs/stats", nil)
	assert.Equal(t, float64(1), body["won"])
	assert.Equal(t, float64(2), body["avgGuesses"])

	rec, _ = do(t, srv, http.MethodGet, "/runs/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = do(t, srv, http.MethodPost, "/simulate", map[string]any{"answer": "zzzzz"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown_answer", body["error"])
}

func TestRuns_JWT(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = "s3cret"
	srv, _ := newTestServer(t, cfg, false)

	rec, _ := do(t, srv, http.MethodGet, "/runs", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, exp, err := SignToken("s3cret", "ci", 1)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	rec, _ = do(t, srv, http.MethodGet, "/runs", nil, "Authorization", "Bearer "+tok)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, body := do(t, srv, http.MethodGet, "/runs/whoami", nil, "Authorization", "Bearer "+tok)
	assert.Equal(t, "ci", body["subject"])

	bad, _, err := SignToken("other", "ci", 1)
	require.NoError(t, err)
	rec, body = do(t, srv, http.MethodGet, "/runs", nil, "Authorization", "Bearer "+bad)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_token", body["error"])

	_, _, err = SignToken("", "ci", 1)
	assert.Error(t, err)
}

func TestDaily(t *testing.T) {
	srv, st := newTestServer(t, testConfig(), true)
	srv.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }

	rec, body := do(t, srv, http.MethodGet, "/daily/today", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-10-19", body["date"])
	assert.NotContains(t, body, "answer")

	rec, body = do(t, srv, http.MethodPost, "/daily/solve", map[string]any{"strategy": "first"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "strict/first", body["solver"])
	assert.Equal(t, false, body["played"])
	require.NotNil(t, body["result"])

	_, body = do(t, srv, http.MethodPost, "/daily/solve", map[string]any{"strategy": "first"})
	assert.Equal(t, true, body["played"])

	_, body = do(t, srv, http.MethodGet, "/daily/leaderboard", nil)
	assert.Equal(t, "2026-10-19", body["date"])
	assert.Len(t, body["top"], 1)

	runs, err := st.List(httptest.NewRequest(http.MethodGet, "/", nil).Context(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "2026-10-19", runs[0].Date)
	assert.Equal(t, "daily", runs[0].Source)
}

func TestDailySolve_StoreError(t *testing.T) {
	list, err := words.FromWords("test", []string{"ARSON", "BLIMP", "CRANE"})
	require.NoError(t, err)
	db, err := store.OpenDB(filepath.Join(t.TempDir(), "wordlebot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, store.Migrate(db))
	srv, err := New(testConfig(), list, store.NewSQLiteStore(db), db)
	require.NoError(t, err)

	_, err = db.Exec(`DROP TABLE daily_results`)
	require.NoError(t, err)

	rec, body := do(t, srv, http.MethodPost, "/daily/solve", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "server_error", body["error"])

	runs, err := store.NewSQLiteStore(db).List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSimulate_BadOpening(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), false)
	rec, body := do(t, srv, http.MethodPost, "/simulate", map[string]any{"answer": "crane", "opening": "12345"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_config", body["error"])
}
