package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"notekeeper/internal/service"
	"notekeeper/internal/storage"
	"notekeeper/internal/viewsync"
)

// testClient drives a router and keeps the session cookie between requests.
type testClient struct {
	t      *testing.T
	router http.Handler
	cookie *http.Cookie
}

type viewBody struct {
	Data    json.RawMessage  `json:"data"`
	Patches []viewsync.Patch `json:"patches"`
}

func newTestRouter(store NoteStore, themes *service.Themes, slots Pinger) http.Handler {
	renderer := viewsync.NewRenderer(nil)
	sessions := viewsync.NewSessions(time.Hour, func() *viewsync.Sync {
		return viewsync.New(store, renderer)
	})

	r := chi.NewRouter()
	r.Route("/api", NewAPI(store, themes, sessions, slots, nil).Routes)
	return r
}

func setupTestClient(t *testing.T) (*testClient, *service.Store) {
	t.Helper()

	slots, err := storage.Open(storage.BackendSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = slots.Close() })

	store, err := service.NewStore(context.Background(), slots)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return &testClient{t: t, router: newTestRouter(store, service.NewThemes(slots), slots)}, store
}

func (c *testClient) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == SessionCookie {
			c.cookie = ck
		}
	}
	return w
}

// view performs a request that must succeed with wantStatus and decodes its view body.
func (c *testClient) view(method, path, body string, wantStatus int) viewBody {
	c.t.Helper()

	w := c.do(method, path, body)
	if w.Code != wantStatus {
		c.t.Fatalf("%s %s status = %d, want %d (body %s)", method, path, w.Code, wantStatus, w.Body.String())
	}
	var vb viewBody
	if err := json.Unmarshal(w.Body.Bytes(), &vb); err != nil {
		c.t.Fatalf("%s %s: decode body: %v", method, path, err)
	}
	if vb.Patches == nil {
		c.t.Errorf("%s %s: patches = null, want a list", method, path)
	}
	return vb
}

func decodeData[T any](t *testing.T, vb viewBody) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(vb.Data, &out); err != nil {
		t.Fatalf("decode data %s: %v", vb.Data, err)
	}
	return out
}

func hasPatch(patches []viewsync.Patch, op viewsync.Op, target string) bool {
	for _, p := range patches {
		if p.Op == op && p.Target == target {
			return true
		}
	}
	return false
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return resp
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return errorBody(t, w).Error
}
