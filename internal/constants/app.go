package constants

import (
	"time"
)

// Platform defaults
const (
	// DefaultPlatformURL is the base URL of the export API.
	// The token exchange endpoint lives at CredentialsPath below it.
	DefaultPlatformURL = "https://api.evexport.com"

	// CredentialsPath is the token exchange endpoint, relative to the platform URL.
	CredentialsPath = "/v2/export/credentials"

	// DefaultBucket is the shared export bucket used when no server-supplied
	// base path is available and the caller provides an account ID directly.
	DefaultBucket = "evexport-events-data"

	// DefaultRegion is the region the export bucket lives in.
	DefaultRegion = "us-east-1"

	// PathVersion is the versioned root segment of every export key.
	PathVersion = "v1"
)

// HTTP client tuning
const (
	// APIRequestTimeout bounds a single token exchange request.
	APIRequestTimeout = 30 * time.Second

	// HTTPIdleConnTimeout - how long idle connections stay in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPTLSHandshakeTimeout - generous to tolerate slow networks.
	HTTPTLSHandshakeTimeout = 30 * time.Second

	// HTTPExpectContinueTimeout - for HTTP 100-continue on large requests.
	HTTPExpectContinueTimeout = 5 * time.Second
)

// ListPageSize is the maximum number of keys requested per list page.
const ListPageSize = 1000
