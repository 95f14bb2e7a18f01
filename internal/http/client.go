// Package http provides shared HTTP client construction.
package http

import (
	nethttp "net/http"

	"golang.org/x/net/http2"

	"github.com/evexport/evexport/internal/constants"
)

// NewTransferClient creates an HTTP client tuned for object-store transfers.
//
// Key features:
//   - Proxy support from the environment (HTTP_PROXY, HTTPS_PROXY, NO_PROXY)
//   - Connection pooling sized for repeated per-prefix operations
//   - HTTP/2 for better multiplexing against the S3 endpoint
//   - Disabled compression (event exports are already compressed parquet)
//
// The client carries no overall timeout; each operation bounds itself via
// context.
func NewTransferClient() *nethttp.Client {
	tr := &nethttp.Transport{
		Proxy: nethttp.ProxyFromEnvironment,

		MaxIdleConns:        128,
		MaxIdleConnsPerHost: 32,
		IdleConnTimeout:     constants.HTTPIdleConnTimeout,

		TLSHandshakeTimeout:   constants.HTTPTLSHandshakeTimeout,
		ExpectContinueTimeout: constants.HTTPExpectContinueTimeout,

		DisableCompression: true,
		ForceAttemptHTTP2:  true,
	}
	_ = http2.ConfigureTransport(tr)

	return &nethttp.Client{Transport: tr}
}
