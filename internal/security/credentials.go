package security

import (
	"encoding/base64"

	"github.com/subbridge/subbridge/internal/config"
)

// CredentialProvider builds the credentials sent to the subscription service.
// Swapping the implementation changes the auth scheme without touching the pipeline.
type CredentialProvider interface {
	// APIKey is embedded in the create-subscription body
	APIKey() string
	// BearerToken is sent as "authorization: Bearer <token>" on renewals
	BearerToken() string
}

// StaticCredentials derives both credentials from a single process-wide API key.
type StaticCredentials struct {
	apiKey string
}

func NewStaticCredentials(apiKey string) *StaticCredentials {
	return &StaticCredentials{apiKey: apiKey}
}

// NewCredentialProvider reads the key from configuration
func NewCredentialProvider(cfg *config.Configuration) CredentialProvider {
	return NewStaticCredentials(cfg.Subscriptions.APIKey)
}

func (s *StaticCredentials) APIKey() string {
	return s.apiKey
}

// BearerToken is the base64 of the API key; an empty key yields an empty token.
func (s *StaticCredentials) BearerToken() string {
	if s.apiKey == "" {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(s.apiKey))
}
