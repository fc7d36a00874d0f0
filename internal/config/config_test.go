package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", testSecret)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, BackendMySQL, cfg.Store.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 5*time.Second, cfg.Order.WriteTimeout)
	assert.Equal(t, 3, cfg.Order.MaxRetryAttempts)
	assert.Equal(t, "en", cfg.Order.Locale)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, testSecret, cfg.Auth.TokenSecret)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", testSecret)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_BACKEND", "Workbook")
	t.Setenv("TIMEZONE", "Asia/Kolkata")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, BackendWorkbook, cfg.Store.Backend)
	assert.Equal(t, "Asia/Kolkata", cfg.Order.Location.String())
	assert.Equal(t, cfg.Order.Location, cfg.Database.Location)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_FromFile(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "workbook_path: /data/orders.xlsx\nlocale: hi\nauth_token_secret: " + testSecret + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/orders.xlsx", cfg.Workbook.Path)
	assert.Equal(t, "hi", cfg.Order.Locale)
	assert.Equal(t, testSecret, cfg.Auth.TokenSecret)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown backend", key: "STORE_BACKEND", val: "sheets"},
		{name: "bad duration", key: "ORDER_WRITE_TIMEOUT", val: "soon"},
		{name: "bad timezone", key: "TIMEZONE", val: "Mars/Olympus"},
		{name: "empty token secret", key: "AUTH_TOKEN_SECRET", val: ""},
		{name: "placeholder token secret", key: "AUTH_TOKEN_SECRET", val: "change-me"},
		{name: "short token secret", key: "AUTH_TOKEN_SECRET", val: "tooshort-0123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTH_TOKEN_SECRET", testSecret)
			t.Setenv(tt.key, tt.val)

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_RequiresTokenSecret(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_TOKEN_SECRET")
}
