package config

import (
	"testing"

	"github.com/slighter12/go-lib/database/postgres"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"secretKey": map[string]any{
			"token": "abc",
		},
		"http": map[string]any{
			"port": 5000,
		},
	}

	tests := []struct {
		rawKey string
		want   string
	}{
		{"SECRETKEY_TOKEN", "secretKey.token"},
		{"HTTP_PORT", "http.port"},
		{"UNKNOWN_KEY", "unknown.key"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, canonicalizeEnvKey(tt.rawKey, existing), tt.rawKey)
	}
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "secretkey", normalizeToken("secretKey"))
	assert.Equal(t, "logpretty", normalizeToken("log_Pretty"))
	assert.Equal(t, "", normalizeToken("___"))
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")

	cfg.Postgres = &postgres.DBConn{}
	err = cfg.validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "token signing secret")

	cfg.SecretKey.Token = "super-secret"
	assert.NoError(t, cfg.validate())
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultHTTPPort, cfg.HTTP.Port)
	assert.Equal(t, defaultBcryptCost, cfg.Auth.BcryptCost)

	cfg = &Config{}
	cfg.HTTP.Port = 8080
	cfg.Auth = &AuthConfig{BcryptCost: 12}
	cfg.applyDefaults()

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
}
