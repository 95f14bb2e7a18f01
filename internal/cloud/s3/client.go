// Package s3 provides the object-store client used by ls and load.
//
// The client authenticates through the credential manager: construction
// injects an auto-refreshing credential provider, and an explicit refresh
// rebuilds the SDK client with the manager's current credential set. In
// direct-credentials mode the SDK's default credential chain is used
// unchanged (the operator has exported credentials, e.g. via `evexport auth`).
package s3

import (
	"context"
	"fmt"
	nethttp "net/http"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/evexport/evexport/internal/credentials"
	"github.com/evexport/evexport/internal/http"
)

// s3API is the narrow slice of the S3 client the store operations need.
type s3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Object is one listed object under a prefix.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Client wraps the AWS S3 client with manager-backed credentials.
type Client struct {
	api         s3API
	credManager *credentials.Manager
	httpClient  *nethttp.Client
	region      string
	mu          sync.Mutex
}

// NewClient creates an S3 client for the given region.
//
// With an API token configured the manager's credential provider is injected
// behind aws.NewCredentialsCache so the SDK refreshes through the manager's
// cache. Without one, the default chain applies.
func NewClient(ctx context.Context, region string, credManager *credentials.Manager) (*Client, error) {
	if credManager == nil {
		return nil, fmt.Errorf("credential manager is required")
	}

	// Shared across credential refreshes to keep the connection pool warm.
	httpClient := http.NewTransferClient()

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithHTTPClient(httpClient),
	}
	if credManager.HasToken() {
		cache := aws.NewCredentialsCache(credentials.NewProvider(credManager))
		loadOpts = append(loadOpts, config.WithCredentialsProvider(cache))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Client{
		api:         s3.NewFromConfig(cfg),
		credManager: credManager,
		httpClient:  httpClient,
		region:      region,
	}, nil
}

// NewClientWithAPI creates a client around a custom S3 API implementation.
// Used by tests with a faked API.
func NewClientWithAPI(api s3API) *Client {
	return &Client{api: api}
}

// EnsureFreshCredentials refreshes the manager's credential cache if needed
// and rebuilds the SDK client with the current credential set. A no-op in
// direct-credentials mode.
func (c *Client) EnsureFreshCredentials(ctx context.Context) error {
	if c.credManager == nil || !c.credManager.HasToken() {
		return nil
	}

	if err := c.credManager.EnsureFresh(ctx); err != nil {
		return err
	}
	cred := c.credManager.Credential()
	if cred == nil {
		return fmt.Errorf("no credentials available after refresh")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Reuse the existing HTTP client to preserve the connection pool.
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.region),
		config.WithHTTPClient(c.httpClient),
		config.WithCredentialsProvider(awscreds.NewStaticCredentialsProvider(
			cred.AccessKeyID,
			cred.SecretAccessKey,
			cred.SessionToken,
		)),
	)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	c.api = s3.NewFromConfig(cfg)
	return nil
}

func (c *Client) client() s3API {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.api
}
