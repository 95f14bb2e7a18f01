// Package credentials manages the short-lived storage credential lifecycle.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/evexport/evexport/internal/api"
	"github.com/evexport/evexport/internal/constants"
	"github.com/evexport/evexport/internal/models"
)

// ErrNoBasePath indicates there is no way to resolve a base path: neither an
// API token (for a server-supplied path) nor an account ID (for a synthesized
// one) is configured.
var ErrNoBasePath = errors.New("no API token and no account ID: cannot resolve a base path")

// Manager caches the temporary credential set obtained from the token
// exchange and refreshes it only when the cached set has expired.
//
// The cached credential is replaced as a whole under a mutex, so no caller
// ever observes a partially updated credential. Direct-credentials mode
// (no API token configured) is valid: every ensure call is then a no-op and
// downstream S3 access relies on the ambient AWS credential chain.
type Manager struct {
	apiClient *api.Client
	mu        sync.Mutex
	cred      *models.Credential
	now       func() time.Time
}

// NewManager creates a credential manager backed by apiClient.
func NewManager(apiClient *api.Client) *Manager {
	return &Manager{
		apiClient: apiClient,
		now:       time.Now,
	}
}

// HasToken reports whether token exchange is available at all.
func (m *Manager) HasToken() bool {
	return m.apiClient.HasToken()
}

// IsFresh reports whether a cached credential exists and its expiry is
// strictly after the current time.
func (m *Manager) IsFresh() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isFreshLocked()
}

func (m *Manager) isFreshLocked() bool {
	return m.cred != nil && m.cred.ExpiresAt.After(m.now())
}

// Refresh performs a token exchange and atomically replaces the cached
// credential. On failure the previously cached credential, if any, is left
// untouched.
func (m *Manager) Refresh(ctx context.Context) (*models.Credential, error) {
	cred, err := m.apiClient.ExchangeToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh credentials: %w", err)
	}

	m.mu.Lock()
	m.cred = cred
	m.mu.Unlock()

	return cred, nil
}

// EnsureFresh refreshes the cached credential only when needed. With no API
// token configured it is a no-op regardless of freshness. Within the validity
// window repeated calls perform no remote calls at all.
func (m *Manager) EnsureFresh(ctx context.Context) error {
	if !m.HasToken() {
		return nil
	}
	if m.IsFresh() {
		return nil
	}
	_, err := m.Refresh(ctx)
	return err
}

// Credential returns the currently cached credential, or nil if none is held.
func (m *Manager) Credential() *models.Credential {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cred
}

// ResolveBasePath returns the account-scoped root prefix all partitioned
// data lives under, always ending in a separator.
//
// With an API token the server-supplied path wins: the manager ensures a
// fresh credential and returns its base path. Without a token both accountID
// and bucket are required and the path is synthesized locally. With neither
// available the resolution fails.
func (m *Manager) ResolveBasePath(ctx context.Context, accountID, bucket string) (string, error) {
	if m.HasToken() {
		if err := m.EnsureFresh(ctx); err != nil {
			return "", err
		}
		return m.Credential().BasePath, nil
	}

	if accountID != "" && bucket != "" {
		return fmt.Sprintf("s3://%s/%s/account_id=%s/", bucket, constants.PathVersion, accountID), nil
	}

	return "", ErrNoBasePath
}
