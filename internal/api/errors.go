// Package api provides the export API client and its error types.
package api

import "errors"

// ErrAuthFailed indicates the token exchange was rejected or returned a
// response the client could not use: a non-2xx status, a malformed body or
// a credential set with missing fields. Exchange failures are fatal to the
// invoking command; nothing retries them.
var ErrAuthFailed = errors.New("authentication failed")

// ErrMissingToken indicates an operation that requires the long-lived API
// token was attempted without one configured.
var ErrMissingToken = errors.New("no API token configured")
