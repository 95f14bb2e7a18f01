package models

import "time"

// Credential is a short-lived storage credential set issued by the token
// exchange endpoint, together with the account-scoped base path it grants
// access to. Instances are immutable once published by the credential
// manager; a refresh replaces the whole value, never individual fields.
type Credential struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	ExpiresAt       time.Time
	BasePath        string
}

// ExpirationMillis returns the expiry as epoch milliseconds, the unit the
// exchange endpoint uses on the wire and the unit AWS_SESSION_EXPIRATION
// is exported in.
func (c *Credential) ExpirationMillis() int64 {
	return c.ExpiresAt.UnixMilli()
}

// TokenExchangeResponse is the JSON body of a successful token exchange.
type TokenExchangeResponse struct {
	Credentials struct {
		AccessKeyID     string `json:"accessKeyId"`
		SecretAccessKey string `json:"secretAccessKey"`
		SessionToken    string `json:"sessionToken"`
		Expiration      int64  `json:"expiration"` // epoch millis
	} `json:"credentials"`
	S3Path string `json:"s3Path"`
}
