package authwatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mysmilelab/labsync/internal/adapter/backend"
	"github.com/mysmilelab/labsync/internal/domain/model"
	testhelpers "github.com/mysmilelab/labsync/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestStatesStartLoading(t *testing.T) {
	w := NewWatcher(&testhelpers.BackendStub{}, time.Minute, 5*time.Minute, testLogger())

	states := w.States()
	if len(states) != len(model.ExternalPlatforms()) {
		t.Fatalf("expected one state per platform, got %d", len(states))
	}
	for _, st := range states {
		if !st.Loading {
			t.Fatalf("%s must start loading", st.Platform)
		}
	}
}

func TestPollUpdatesEveryPlatform(t *testing.T) {
	backendStub := &testhelpers.BackendStub{
		AuthStatusFn: func(_ context.Context, p model.Platform) (*backend.AuthInfo, error) {
			return &backend.AuthInfo{
				Authenticated: p == model.PlatformMeditLink,
				Email:         "lab@example.fr",
			}, nil
		},
	}
	w := NewWatcher(backendStub, time.Minute, 5*time.Minute, testLogger())

	w.poll(context.Background())

	if !w.Connected(model.PlatformMeditLink) {
		t.Fatal("meditlink must be connected")
	}
	if w.Connected(model.PlatformItero) {
		t.Fatal("itero must not be connected")
	}

	st, ok := w.State(model.PlatformMeditLink)
	if !ok || st.UserInfo == nil || st.UserInfo.Email != "lab@example.fr" {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestCheckErrorDoesNotHideOtherPlatforms(t *testing.T) {
	backendStub := &testhelpers.BackendStub{
		AuthStatusFn: func(_ context.Context, p model.Platform) (*backend.AuthInfo, error) {
			if p == model.PlatformDexis {
				return nil, errors.New("gateway timeout")
			}
			return &backend.AuthInfo{Authenticated: true}, nil
		},
	}
	w := NewWatcher(backendStub, time.Minute, 5*time.Minute, testLogger())

	w.poll(context.Background())

	dexis, _ := w.State(model.PlatformDexis)
	if dexis.Error == "" || dexis.Authenticated {
		t.Fatalf("dexis must carry the error, got %+v", dexis)
	}
	if !w.Connected(model.PlatformMeditLink) || !w.Connected(model.PlatformItero) {
		t.Fatal("other platforms must stay authenticated")
	}
}

func TestExpiringTokenTriggersRefresh(t *testing.T) {
	expiresIn := int64(60)
	backendStub := &testhelpers.BackendStub{
		AuthStatusFn: func(_ context.Context, p model.Platform) (*backend.AuthInfo, error) {
			if p == model.PlatformMeditLink {
				return &backend.AuthInfo{Authenticated: true, ExpiresInSeconds: &expiresIn}, nil
			}
			return &backend.AuthInfo{Authenticated: true}, nil
		},
	}
	w := NewWatcher(backendStub, time.Minute, 5*time.Minute, testLogger())

	w.check(context.Background(), model.PlatformMeditLink)

	backendStub.Lock()
	defer backendStub.Unlock()
	if len(backendStub.RefreshCalls) != 1 || backendStub.RefreshCalls[0] != model.PlatformMeditLink {
		t.Fatalf("expected one refresh for meditlink, got %v", backendStub.RefreshCalls)
	}
}

func TestFreshTokenIsNotRefreshed(t *testing.T) {
	expiresIn := int64(3600)
	backendStub := &testhelpers.BackendStub{
		AuthStatusFn: func(context.Context, model.Platform) (*backend.AuthInfo, error) {
			return &backend.AuthInfo{Authenticated: true, ExpiresInSeconds: &expiresIn}, nil
		},
	}
	w := NewWatcher(backendStub, time.Minute, 5*time.Minute, testLogger())

	w.check(context.Background(), model.PlatformMeditLink)

	backendStub.Lock()
	defer backendStub.Unlock()
	if len(backendStub.RefreshCalls) != 0 {
		t.Fatalf("no refresh expected, got %v", backendStub.RefreshCalls)
	}
}

func TestNonRefreshablePlatformIsNeverRefreshed(t *testing.T) {
	expiresIn := int64(10)
	backendStub := &testhelpers.BackendStub{
		AuthStatusFn: func(context.Context, model.Platform) (*backend.AuthInfo, error) {
			return &backend.AuthInfo{Authenticated: true, ExpiresInSeconds: &expiresIn}, nil
		},
	}
	w := NewWatcher(backendStub, time.Minute, 5*time.Minute, testLogger())

	w.check(context.Background(), model.PlatformItero)

	backendStub.Lock()
	defer backendStub.Unlock()
	if len(backendStub.RefreshCalls) != 0 {
		t.Fatalf("itero has no refresh endpoint, got %v", backendStub.RefreshCalls)
	}
}

func TestStartStopLifecycle(t *testing.T) {
	backendStub := &testhelpers.BackendStub{}
	w := NewWatcher(backendStub, 10*time.Millisecond, 5*time.Minute, testLogger())

	w.Start(context.Background())
	// Start is idempotent.
	w.Start(context.Background())

	deadline := time.After(time.Second)
	for !w.Connected(model.PlatformMeditLink) {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for first poll")
		case <-time.After(5 * time.Millisecond):
		}
	}

	w.Stop()
	w.Stop()
}
