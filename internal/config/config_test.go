// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadLocalDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://localhost/console
redis:
  url: redis://localhost:6379/0
`)

	c, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, StrategyLocal, c.Auth.Strategy)
	assert.False(t, c.IsRemote())
	assert.Equal(t, "ar", c.App.Locale)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 12*time.Hour, c.Session.Lifetime)
	assert.Equal(t, 30*time.Second, c.RemoteAPI.Timeout)
	assert.Equal(t, "0.0.0.0:8080", c.Server.Address())
	assert.True(t, c.Database.AutoMigrate)
}

func TestLoadRemoteFromEnv(t *testing.T) {
	t.Setenv("AUTH_STRATEGY", StrategyRemote)
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("PORT", "9090")

	c, err := load("")
	require.NoError(t, err)

	assert.True(t, c.IsRemote())
	assert.Equal(t, "https://api.example.com", c.RemoteAPI.BaseURL)
	assert.Equal(t, 5*time.Second, c.RemoteAPI.Timeout)
	assert.Equal(t, 9090, c.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{
			name: "local without database",
			body: "redis:\n  url: redis://localhost\n",
			env:  map[string]string{"DATABASE_URL": ""},
		},
		{
			name: "unknown strategy",
			body: "auth:\n  strategy: ldap\nredis:\n  url: redis://localhost\n",
		},
		{
			name: "missing redis",
			body: "database:\n  url: postgres://localhost/console\n",
			env:  map[string]string{"REDIS_URL": ""},
		},
		{
			name: "unsupported locale",
			body: "app:\n  locale: fr\ndatabase:\n  url: postgres://localhost/console\nredis:\n  url: redis://localhost\n",
		},
		{
			name: "insecure cookie in production",
			body: "app:\n  environment: production\ndatabase:\n  url: postgres://localhost/console\nredis:\n  url: redis://localhost\n",
		},
		{
			name: "wildcard origin with credentials",
			body: "cors:\n  allowed_origins: ['*']\ndatabase:\n  url: postgres://localhost/console\nredis:\n  url: redis://localhost\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
