package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/require"

	"bargainbay/internal/client"
	"bargainbay/internal/client/clienttest"
	"bargainbay/internal/config"
	"bargainbay/internal/http/handlers"
	applog "bargainbay/internal/log"
	"bargainbay/internal/repos"
	"bargainbay/internal/services"
)

type harness struct {
	app     *fiber.App
	deps    *handlers.Deps
	fake    *clienttest.Fake
	srv     *httptest.Server
	api     *client.API
	kv      repos.KV
	ratings *services.Ratings
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fake := clienttest.NewFake()
	srv := fake.Server(t)

	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	h := &harness{fake: fake, srv: srv, api: client.New(srv.URL, 2*time.Second), kv: repos.NewSQLiteKV(db)}
	h.boot(t, 0)
	return h
}

// boot (re)builds the process state over the same store and remote service.
func (h *harness) boot(t *testing.T, loginLimit int) {
	t.Helper()
	h.ratings = services.NewRatings(context.Background(), repos.NewRatingRepo(h.kv))
	cfg := config.Config{Coupons: services.DefaultCoupons}
	deps, err := handlers.NewDeps(cfg, h.api, repos.NewCredentialRepo(h.kv), h.ratings)
	require.NoError(t, err)
	deps.LoginLimit = loginLimit

	app := fiber.New(fiber.Config{Views: handlers.Views(), ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	deps.Mount(app)
	h.app, h.deps = app, deps
}

func (h *harness) do(t *testing.T, method, path, sid string, form url.Values) *http.Response {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (h *harness) login(t *testing.T, email string) string {
	t.Helper()
	resp := h.do(t, http.MethodPost, "/login", "", url.Values{"email": {email}, "password": {clienttest.Password}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sid := cookie(resp, "sid")
	require.NotEmpty(t, sid)
	return sid
}

func cookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

type logEntry struct {
	Level  string         `json:"level"`
	Kind   string         `json:"kind"`
	Action string         `json:"action"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.b.Write(p)
}

// captureLogs redirects the event log while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var w lockedWriter
	l := applog.Logger()
	old := l.Out
	l.SetOutput(&w)
	defer l.SetOutput(old)

	fn()

	w.mu.Lock()
	defer w.mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(w.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
