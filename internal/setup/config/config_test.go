package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pintwise/pintwise/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commonTOML = `
[common]
version = 1

[common.debug]
log_level = "info"
max_logs_to_keep = 5

[common.postgresql]
host = "db"
port = 5432
db_name = "pintwise"
tls = true

[common.engine]
closing_soon_minutes = 45
amenity_quorum = 5
confidence_window_days = 14
`

const apiTOML = `
[api]
version = 1

[api.server]
host = "0.0.0.0"
port = 8080

[api.auth]
jwt_secret = "secret"
issuer = "pintwise"

[api.rate_limit]
requests_per_second = 2.5
burst_size = 10
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestLoadConfigFrom(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"common.toml": commonTOML,
		"api.toml":    apiTOML,
	})

	cfg, used, err := config.LoadConfigFrom([]string{filepath.Join(dir, "missing"), dir})
	require.NoError(t, err)

	assert.Equal(t, dir, used)
	assert.Equal(t, "db", cfg.Common.PostgreSQL.Host)
	assert.True(t, cfg.Common.PostgreSQL.TLS)
	assert.Equal(t, 45, cfg.Common.Engine.ClosingSoonMinutes)
	assert.Equal(t, 5, cfg.Common.Engine.AmenityQuorum)
	assert.Equal(t, 14*24*time.Hour, cfg.Common.Engine.ConfidenceWindow())
	assert.Equal(t, 8080, cfg.API.Server.Port)
	assert.Equal(t, "secret", cfg.API.Auth.JWTSecret)
	assert.InDelta(t, 2.5, cfg.API.RateLimit.RequestsPerSecond, 0.0001)
}

func TestLoadConfigFromErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files map[string]string
		want  error
	}{
		{
			name:  "missing api file",
			files: map[string]string{"common.toml": commonTOML},
			want:  config.ErrConfigFileNotFound,
		},
		{
			name: "missing version",
			files: map[string]string{
				"common.toml": "[common.debug]\nlog_level = \"info\"\n",
				"api.toml":    apiTOML,
			},
			want: config.ErrConfigVersionMissing,
		},
		{
			name: "version mismatch",
			files: map[string]string{
				"common.toml": commonTOML,
				"api.toml":    "[api]\nversion = 99\n",
			},
			want: config.ErrConfigVersionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := writeFiles(t, tt.files)
			_, _, err := config.LoadConfigFrom([]string{dir})
			require.ErrorIs(t, err, tt.want)
		})
	}
}
