package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/subbridge/subbridge/internal/config"
)

func TestStaticCredentials(t *testing.T) {
	creds := NewStaticCredentials("secret")
	assert.Equal(t, "secret", creds.APIKey())
	assert.Equal(t, "c2VjcmV0", creds.BearerToken())
}

func TestStaticCredentialsEmptyKey(t *testing.T) {
	creds := NewStaticCredentials("")
	assert.Empty(t, creds.APIKey())
	assert.Empty(t, creds.BearerToken())
}

func TestNewCredentialProviderFromConfig(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Subscriptions.APIKey = "mp-key"
	assert.Equal(t, "mp-key", NewCredentialProvider(cfg).APIKey())
}
