package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test_secret_key")
	for _, key := range []string{"PORT", "STORE_DRIVER", "REDIS_URL", "CORS_ALLOWED_ORIGINS", "FRONTEND_URL",
		"REGISTER_TOKEN_TTL", "LOGIN_TOKEN_TTL", "TOKEN_EXPIRY_WARNING", "BCRYPT_COST", "NOTES_STRICT_DELETE",
		"MONGO_URI", "MONGODB_URI", "MONGO_DB"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.StrictNoteDelete)
	assert.Equal(t, time.Hour, cfg.Auth.RegisterTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.LoginTokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.Auth.ExpiryWarning)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "inotecloud", cfg.Database.DatabaseName)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("SECRET_KEY", "legacy_secret")
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOGIN_TOKEN_TTL", "3600")
	t.Setenv("TOKEN_EXPIRY_WARNING", "5m")
	t.Setenv("NOTES_STRICT_DELETE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("FRONTEND_URL", "https://app.example")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "legacy_secret", cfg.Auth.Secret)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, time.Hour, cfg.Auth.LoginTokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.Auth.ExpiryWarning)
	assert.True(t, cfg.StrictNoteDelete)
	assert.Equal(t, []string{"https://a.example", "https://b.example", "https://app.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "mongodb://db:27017", cfg.Database.URI)
}

func TestFromEnvValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{name: "missing secret", env: map[string]string{"JWT_SECRET_KEY": "", "SECRET_KEY": ""}, wantErr: ErrMissingSecret},
		{name: "unknown store", env: map[string]string{"JWT_SECRET_KEY": "s", "STORE_DRIVER": "postgres"}},
		{name: "bcrypt cost too high", env: map[string]string{"JWT_SECRET_KEY": "s", "BCRYPT_COST": "99"}},
		{name: "negative ttl", env: map[string]string{"JWT_SECRET_KEY": "s", "REGISTER_TOKEN_TTL": "-1h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
