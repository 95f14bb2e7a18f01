package credentials

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/evexport/evexport/internal/api"
	"github.com/evexport/evexport/internal/config"
)

const goodBody = `{
	"credentials": {
		"accessKeyId": "AKIATEST",
		"secretAccessKey": "secret",
		"sessionToken": "session",
		"expiration": %d
	},
	"s3Path": "s3://evexport-events-data/v1/account_id=12345/"
}`

// newManager returns a manager whose API client points at a stub exchange
// endpoint, plus the request counter for call-count assertions.
func newManager(t *testing.T, handler http.HandlerFunc) (*Manager, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := api.NewClient(&config.Config{
		PlatformURL: server.URL,
		APIToken:    "test-token",
	})
	if err != nil {
		t.Fatalf("api.NewClient() error = %v, want nil", err)
	}
	return NewManager(client), &calls
}

func futureMillis(d time.Duration) int64 {
	return time.Now().Add(d).UnixMilli()
}

func TestIsFreshWithoutCredential(t *testing.T) {
	mgr, _ := newManager(t, func(w http.ResponseWriter, r *http.Request) {})
	if mgr.IsFresh() {
		t.Error("IsFresh() = true with no cached credential, want false")
	}
}

func TestRefreshCachesCredential(t *testing.T) {
	expiry := futureMillis(time.Hour)
	mgr, _ := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, goodBody, expiry)
	})

	cred, err := mgr.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v, want nil", err)
	}
	if cred.AccessKeyID != "AKIATEST" {
		t.Errorf("AccessKeyID = %q, want %q", cred.AccessKeyID, "AKIATEST")
	}
	if !mgr.IsFresh() {
		t.Error("IsFresh() = false after successful refresh, want true")
	}
}

func TestIsFreshExpired(t *testing.T) {
	expiry := futureMillis(time.Hour)
	mgr, _ := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, goodBody, expiry)
	})

	if _, err := mgr.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v, want nil", err)
	}

	// Move the clock past the expiry. Freshness requires expiry strictly
	// after now.
	mgr.now = func() time.Time { return time.UnixMilli(expiry) }
	if mgr.IsFresh() {
		t.Error("IsFresh() = true at the exact expiry instant, want false")
	}
}

func TestRefreshFailureKeepsCachedCredential(t *testing.T) {
	expiry := futureMillis(time.Hour)
	fail := false
	mgr, _ := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		if fail {
			// Missing accessKeyId: parse must fail atomically.
			fmt.Fprintf(w, `{"credentials":{"secretAccessKey":"s","sessionToken":"t","expiration":%d},"s3Path":"s3://b/v1/account_id=1/"}`, expiry)
			return
		}
		fmt.Fprintf(w, goodBody, expiry)
	})

	first, err := mgr.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v, want nil", err)
	}

	fail = true
	_, err = mgr.Refresh(context.Background())
	if !errors.Is(err, api.ErrAuthFailed) {
		t.Fatalf("Refresh() error = %v, want ErrAuthFailed", err)
	}

	if got := mgr.Credential(); got != first {
		t.Errorf("Credential() = %+v after failed refresh, want the previously cached set", got)
	}
}

func TestEnsureFreshIsIdempotentWithinValidity(t *testing.T) {
	expiry := futureMillis(time.Hour)
	mgr, calls := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, goodBody, expiry)
	})

	if err := mgr.EnsureFresh(context.Background()); err != nil {
		t.Fatalf("EnsureFresh() error = %v, want nil", err)
	}
	if err := mgr.EnsureFresh(context.Background()); err != nil {
		t.Fatalf("EnsureFresh() error = %v, want nil", err)
	}

	if n := calls.Load(); n != 1 {
		t.Errorf("exchange endpoint called %d times, want exactly 1", n)
	}
}

func TestEnsureFreshRefreshesAfterExpiry(t *testing.T) {
	expiry := futureMillis(time.Hour)
	mgr, calls := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, goodBody, expiry)
	})

	if err := mgr.EnsureFresh(context.Background()); err != nil {
		t.Fatalf("EnsureFresh() error = %v, want nil", err)
	}

	mgr.now = func() time.Time { return time.UnixMilli(expiry).Add(time.Minute) }
	if err := mgr.EnsureFresh(context.Background()); err != nil {
		t.Fatalf("EnsureFresh() error = %v, want nil", err)
	}

	if n := calls.Load(); n != 2 {
		t.Errorf("exchange endpoint called %d times, want 2 (one per validity window)", n)
	}
}

func TestEnsureFreshWithoutTokenIsNoOp(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client, err := api.NewClient(&config.Config{PlatformURL: server.URL})
	if err != nil {
		t.Fatalf("api.NewClient() error = %v, want nil", err)
	}
	mgr := NewManager(client)

	if err := mgr.EnsureFresh(context.Background()); err != nil {
		t.Fatalf("EnsureFresh() error = %v, want nil in direct-credentials mode", err)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("exchange endpoint called %d times without a token, want 0", n)
	}
}

func TestResolveBasePathFromServer(t *testing.T) {
	expiry := futureMillis(time.Hour)
	mgr, _ := newManager(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, goodBody, expiry)
	})

	base, err := mgr.ResolveBasePath(context.Background(), "", "")
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v, want nil", err)
	}
	want := "s3://evexport-events-data/v1/account_id=12345/"
	if base != want {
		t.Errorf("ResolveBasePath() = %q, want %q", base, want)
	}
}

func TestResolveBasePathSynthesized(t *testing.T) {
	client, err := api.NewClient(&config.Config{PlatformURL: "https://api.example.com"})
	if err != nil {
		t.Fatalf("api.NewClient() error = %v, want nil", err)
	}
	mgr := NewManager(client)

	base, err := mgr.ResolveBasePath(context.Background(), "12345", "my-bucket")
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v, want nil", err)
	}
	want := "s3://my-bucket/v1/account_id=12345/"
	if base != want {
		t.Errorf("ResolveBasePath() = %q, want %q", base, want)
	}
}

func TestResolveBasePathUnresolvable(t *testing.T) {
	client, err := api.NewClient(&config.Config{PlatformURL: "https://api.example.com"})
	if err != nil {
		t.Fatalf("api.NewClient() error = %v, want nil", err)
	}
	mgr := NewManager(client)

	_, err = mgr.ResolveBasePath(context.Background(), "", "my-bucket")
	if !errors.Is(err, ErrNoBasePath) {
		t.Errorf("ResolveBasePath() error = %v, want ErrNoBasePath", err)
	}
}
