package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mysmilelab/labsync/internal/adapter/mailer"
	"github.com/mysmilelab/labsync/internal/app"
	"github.com/mysmilelab/labsync/internal/authwatch"
	"github.com/mysmilelab/labsync/internal/config"
	"github.com/mysmilelab/labsync/internal/domain/model"
	"github.com/mysmilelab/labsync/internal/notify"
	"github.com/mysmilelab/labsync/internal/server/http/dto"
	"github.com/mysmilelab/labsync/internal/storage/memory"
	"github.com/mysmilelab/labsync/internal/syncsvc"
	testhelpers "github.com/mysmilelab/labsync/internal/test"
	"github.com/mysmilelab/labsync/internal/worker"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// newTestEngine wires a real facade over a backend stub, the way the
// application assembles it at boot.
func newTestEngine(t *testing.T, backendStub *testhelpers.BackendStub, apiKey string) http.Handler {
	t.Helper()
	logger := testLogger()

	store := memory.NewOrderStore()
	coordinator := syncsvc.NewCoordinator(backendStub, time.Minute, logger)
	dispatcher := notify.NewDispatcher(&testhelpers.SenderStub{}, backendStub,
		mailer.Identity{ServiceID: "s", TemplateID: "t", UserID: "u"},
		mailer.Identity{ServiceID: "s", TemplateID: "t", UserID: "u"},
		logger,
	)
	watcher := authwatch.NewWatcher(backendStub, time.Minute, 5*time.Minute, logger)
	facade := app.NewDashboardFacade(backendStub, store, coordinator, dispatcher, watcher)
	scheduler := worker.NewAutoSync(facade, 5, 0, 0, logger)

	cfg := &config.Config{APIKey: apiKey}
	return Setup(facade, scheduler, context.Background(), cfg, logger)
}

func request(t *testing.T, h http.Handler, method, target, body, apiKey string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("X-Api-Key", apiKey)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthzIsPublic(t *testing.T) {
	h := newTestEngine(t, &testhelpers.BackendStub{}, "secret")
	rec := request(t, h, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestMetricsIsPublic(t *testing.T) {
	h := newTestEngine(t, &testhelpers.BackendStub{}, "secret")
	rec := request(t, h, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestAPIRequiresKey(t *testing.T) {
	h := newTestEngine(t, &testhelpers.BackendStub{}, "secret")

	rec := request(t, h, http.MethodGet, "/api/commandes", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}

	rec = request(t, h, http.MethodGet, "/api/commandes", "", "secret")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d", rec.Code)
	}
}

func TestAutoSyncRoutes(t *testing.T) {
	h := newTestEngine(t, &testhelpers.BackendStub{}, "")

	rec := request(t, h, http.MethodGet, "/api/autosync", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var state dto.AutoSyncStateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if state.Running || state.IntervalMinutes != 5 {
		t.Fatalf("unexpected initial state: %+v", state)
	}

	rec = request(t, h, http.MethodPost, "/api/autosync/start", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("start failed: %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !state.Running {
		t.Fatal("scheduler must be running after start")
	}

	rec = request(t, h, http.MethodPut, "/api/autosync/interval", `{"minutes":61}`, "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for out-of-range interval, got %d", rec.Code)
	}

	rec = request(t, h, http.MethodPost, "/api/autosync/stop", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stop failed: %d", rec.Code)
	}
}

func TestSyncAllWithNothingConnected(t *testing.T) {
	// The watcher has not polled, so no platform is authenticated yet.
	h := newTestEngine(t, &testhelpers.BackendStub{}, "")

	rec := request(t, h, http.MethodPost, "/api/sync", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var body struct {
		Statuses []model.SyncStatus `json:"statuses"`
		Message  string             `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "aucune plateforme connectée" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestPlatformStatesRoute(t *testing.T) {
	h := newTestEngine(t, &testhelpers.BackendStub{}, "")

	rec := request(t, h, http.MethodGet, "/api/platforms/status", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var states []model.AuthState
	if err := json.Unmarshal(rec.Body.Bytes(), &states); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(states) != len(model.ExternalPlatforms()) {
		t.Fatalf("expected one state per platform, got %d", len(states))
	}
}
