package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/evexport/evexport/internal/config"
	"github.com/evexport/evexport/internal/constants"
	"github.com/evexport/evexport/internal/http"
	"github.com/evexport/evexport/internal/models"
)

// Client calls the export API's token exchange endpoint.
type Client struct {
	httpClient *nethttp.Client
	baseURL    string
	token      string
}

// NewClient creates a new export API client from cfg.
func NewClient(cfg *config.Config) (*Client, error) {
	if strings.TrimSpace(cfg.PlatformURL) == "" {
		return nil, fmt.Errorf("API base URL is empty")
	}

	// Token exchange is a single attempt: a failed exchange fails the
	// command outright, so the retry count is zero. The retryable client is
	// still used for its connection handling and error hygiene.
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = http.NewTransferClient()
	retryClient.HTTPClient.Timeout = constants.APIRequestTimeout
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	return &Client{
		httpClient: retryClient.StandardClient(),
		baseURL:    strings.TrimSuffix(cfg.PlatformURL, "/"),
		token:      cfg.APIToken,
	}, nil
}

// HasToken reports whether a long-lived API token is configured.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// ExchangeToken trades the long-lived API token for temporary storage
// credentials and the account's base path. Any non-2xx status, malformed
// body or missing field fails with ErrAuthFailed; no partial credential is
// ever returned.
func (c *Client) ExchangeToken(ctx context.Context) (*models.Credential, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}

	url := c.baseURL + constants.CredentialsPath
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token exchange request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrAuthFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var exchange models.TokenExchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&exchange); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrAuthFailed, err)
	}

	return credentialFromExchange(&exchange)
}

// credentialFromExchange validates the wire response and builds a Credential.
// All five fields must be present, or the whole parse fails.
func credentialFromExchange(exchange *models.TokenExchangeResponse) (*models.Credential, error) {
	creds := exchange.Credentials
	switch {
	case creds.AccessKeyID == "":
		return nil, fmt.Errorf("%w: response missing accessKeyId", ErrAuthFailed)
	case creds.SecretAccessKey == "":
		return nil, fmt.Errorf("%w: response missing secretAccessKey", ErrAuthFailed)
	case creds.SessionToken == "":
		return nil, fmt.Errorf("%w: response missing sessionToken", ErrAuthFailed)
	case creds.Expiration == 0:
		return nil, fmt.Errorf("%w: response missing expiration", ErrAuthFailed)
	case exchange.S3Path == "":
		return nil, fmt.Errorf("%w: response missing s3Path", ErrAuthFailed)
	}

	basePath := exchange.S3Path
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}

	return &models.Credential{
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
		ExpiresAt:       time.UnixMilli(creds.Expiration),
		BasePath:        basePath,
	}, nil
}
