package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:              "8080",
		GinMode:           "debug",
		AppEnv:            "development",
		DBDriver:          "sqlite",
		JWTSecret:         defaultJWTSecret,
		AccessTokenExpiry: time.Hour,
		StorageDriver:     "local",
		UploadDir:         "uploads",
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("GIN_MODE", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenExpiry)
	assert.Equal(t, time.Minute, cfg.StatsCacheTTL)
	assert.Empty(t, cfg.RedisAddr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("ACCESS_TOKEN_EXPIRE", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenExpiry)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid development config", mutate: func(c *Config) {}},
		{name: "unknown db driver", mutate: func(c *Config) { c.DBDriver = "oracle" }, wantErr: true},
		{name: "s3 without bucket", mutate: func(c *Config) { c.StorageDriver = "s3" }, wantErr: true},
		{name: "zero token expiry", mutate: func(c *Config) { c.AccessTokenExpiry = 0 }, wantErr: true},
		{name: "default secret in production", mutate: func(c *Config) { c.AppEnv = "production" }, wantErr: true},
		{
			name: "strong secret in production",
			mutate: func(c *Config) {
				c.AppEnv = "production"
				c.JWTSecret = "0123456789abcdef0123456789abcdef"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrigins(t *testing.T) {
	cfg := validConfig()
	cfg.AllowedOrigins = "http://a.test, http://b.test,,"
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
}
