package credentials

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// Provider implements the AWS SDK's CredentialsProvider interface on top of
// the credential manager, so the S3 client refreshes through the manager's
// cache instead of reading mutated process environment.
//
// Wrap it in aws.NewCredentialsCache so the SDK refreshes shortly before
// expiry:
//
//	cache := aws.NewCredentialsCache(credentials.NewProvider(mgr))
//	cfg, _ := config.LoadDefaultConfig(ctx, config.WithCredentialsProvider(cache))
type Provider struct {
	manager *Manager
}

// NewProvider creates a credential provider backed by mgr.
func NewProvider(mgr *Manager) *Provider {
	return &Provider{manager: mgr}
}

// Retrieve is called by the AWS SDK whenever credentials are needed or have
// expired. It ensures the manager's cache is fresh and hands the cached set
// to the SDK together with its real expiry.
func (p *Provider) Retrieve(ctx context.Context) (aws.Credentials, error) {
	if err := p.manager.EnsureFresh(ctx); err != nil {
		return aws.Credentials{}, fmt.Errorf("failed to get credentials: %w", err)
	}

	cred := p.manager.Credential()
	if cred == nil {
		return aws.Credentials{}, fmt.Errorf("no credentials available")
	}

	return aws.Credentials{
		AccessKeyID:     cred.AccessKeyID,
		SecretAccessKey: cred.SecretAccessKey,
		SessionToken:    cred.SessionToken,
		Source:          "EvexportTokenExchange",
		CanExpire:       true,
		Expires:         cred.ExpiresAt,
	}, nil
}
