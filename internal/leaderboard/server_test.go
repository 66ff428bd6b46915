package leaderboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tapsy/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store, Options{}), store
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := decode[map[string]bool](t, rec); !got["ok"] {
		t.Errorf("body = %v", got)
	}
}

func TestSubmitMapsModesToCategories(t *testing.T) {
	s, store := newTestServer(t)

	tests := []struct {
		mode     string
		score    int
		category string
	}{
		{"classic", 60, storage.CategoryClassic},
		{"speed", 90, storage.CategoryHard},
		{"reverse", 40, storage.CategoryReverse},
		{"hard", 95, storage.CategoryHard},
	}

	for _, tc := range tests {
		body := `{"name":"Ada","mode":"` + tc.mode + `","score":` + itoa(tc.score) + `}`
		rec := do(t, s, http.MethodPost, "/leaderboard/scores", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("submit %s: status = %d, body = %s", tc.mode, rec.Code, rec.Body.String())
		}
		res := decode[submitRes](t, rec)
		if !res.Updated || res.Entry.Score(tc.category) != tc.score {
			t.Errorf("submit %s: %+v", tc.mode, res)
		}
	}

	entry, err := store.LeaderboardEntry("ada")
	if err != nil {
		t.Fatalf("LeaderboardEntry() failed: %v", err)
	}
	if entry.Combined != 60+95+40 {
		t.Errorf("Combined = %d, expected 195", entry.Combined)
	}
}

func TestSubmitZenCountsAsClassic(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/leaderboard/scores", `{"name":"zed","mode":"zen","score":30}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if res := decode[submitRes](t, rec); res.Entry.Classic != 30 {
		t.Errorf("Classic = %d, expected 30", res.Entry.Classic)
	}
}

func TestSubmitErrors(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"bad json", `{"name":`, http.StatusBadRequest, "bad_json"},
		{"unknown mode", `{"name":"ada","mode":"blitz","score":10}`, http.StatusBadRequest, "unknown_mode"},
		{"negative score", `{"name":"ada","mode":"classic","score":-1}`, http.StatusBadRequest, "invalid_score"},
		{"blank name", `{"name":"  ","mode":"classic","score":10}`, http.StatusBadRequest, "invalid_name"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/leaderboard/scores", tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, expected %d", rec.Code, tc.status)
			}
			if got := decode[map[string]string](t, rec); got["error"] != tc.code {
				t.Errorf("error = %q, expected %q", got["error"], tc.code)
			}
		})
	}
}

func TestRankingsAndEntry(t *testing.T) {
	s, store := newTestServer(t)
	store.SubmitScore(storage.CategoryClassic, 100, "carol")
	store.SubmitScore(storage.CategoryHard, 300, "bob")
	store.SubmitScore(storage.CategoryReverse, 200, "alice")

	rec := do(t, s, http.MethodGet, "/leaderboard?limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	res := decode[rankingsRes](t, rec)
	if len(res.Entries) != 2 || res.Entries[0].Name != "bob" || res.Entries[1].Name != "alice" {
		t.Errorf("rankings = %+v", res.Entries)
	}

	rec = do(t, s, http.MethodGet, "/leaderboard?limit=zero", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid limit status = %d, expected 400", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/leaderboard/Carol", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("entry status = %d", rec.Code)
	}
	if entry := decode[storage.LeaderboardEntry](t, rec); entry.Classic != 100 {
		t.Errorf("entry = %+v", entry)
	}

	rec = do(t, s, http.MethodGet, "/leaderboard/nobody", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing entry status = %d, expected 404", rec.Code)
	}
}

func TestEmptyRankingsIsArray(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/leaderboard", "")
	if !strings.Contains(rec.Body.String(), `"entries":[]`) {
		t.Errorf("body = %s, expected an empty array", rec.Body.String())
	}
}

func TestDeleteAndAvailability(t *testing.T) {
	s, store := newTestServer(t)
	store.SubmitScore(storage.CategoryClassic, 10, "dave")

	rec := do(t, s, http.MethodGet, "/usernames/DAVE/available", "")
	if res := decode[availableRes](t, rec); res.Available || res.Name != "dave" {
		t.Errorf("availability = %+v, expected taken", res)
	}

	rec = do(t, s, http.MethodDelete, "/leaderboard/dave", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, expected 204", rec.Code)
	}
	rec = do(t, s, http.MethodDelete, "/leaderboard/dave", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, expected 404", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/usernames/dave/available", "")
	if res := decode[availableRes](t, rec); !res.Available {
		t.Errorf("availability = %+v, expected free", res)
	}
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", rec.Code)
	}
}

// failingStore returns errors from every call.
type failingStore struct{}

var errBoom = errors.New("boom")

func (failingStore) SubmitScore(string, int, string) (storage.LeaderboardEntry, bool, error) {
	return storage.LeaderboardEntry{}, false, errBoom
}
func (failingStore) Rankings(int) ([]storage.LeaderboardEntry, error) { return nil, errBoom }
func (failingStore) LeaderboardEntry(string) (storage.LeaderboardEntry, error) {
	return storage.LeaderboardEntry{}, errBoom
}
func (failingStore) DeleteLeaderboardEntry(string) error     { return errBoom }
func (failingStore) UsernameAvailable(string) (bool, error) { return false, errBoom }

func TestStoreFailures(t *testing.T) {
	s := New(failingStore{}, Options{})

	requests := []struct{ method, path, body string }{
		{http.MethodGet, "/leaderboard", ""},
		{http.MethodGet, "/leaderboard/ada", ""},
		{http.MethodPost, "/leaderboard/scores", `{"name":"ada","mode":"classic","score":1}`},
		{http.MethodDelete, "/leaderboard/ada", ""},
		{http.MethodGet, "/usernames/ada/available", ""},
	}
	for _, req := range requests {
		rec := do(t, s, req.method, req.path, req.body)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("%s %s status = %d, expected 500", req.method, req.path, rec.Code)
		}
	}
}

func TestCORS(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	s := New(store, Options{AllowOrigin: "http://localhost:5173"})
	rec := do(t, s, http.MethodOptions, "/leaderboard", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, expected 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
