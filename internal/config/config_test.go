// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	k := koanf.New(".")
	require.NoError(t, loadDefaults(k))
	require.NoError(t, k.Set("database.url", "postgres://u:p@localhost:5432/auraf"))
	require.NoError(t, k.Set("redis.url", "redis://localhost:6379/0"))
	require.NoError(t, k.Set("documents.signing_key", "dev-signing-key"))

	c := &Config{}
	require.NoError(t, k.Unmarshal("", c))
	return c
}

func TestDefaultsAreValid(t *testing.T) {
	c := validConfig(t)
	require.NoError(t, validate(c))

	assert.Equal(t, 15*time.Minute, c.Documents.URLTTL)
	assert.Equal(t, 2*time.Hour, c.Wizard.DraftTTL)
	assert.Equal(t, int64(10<<20), c.Documents.MaxSize)
	assert.True(t, c.IsDevelopment())
	assert.Equal(t, "0.0.0.0:8080", c.Server.Address())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{
			name:   "missing database",
			mutate: func(c *Config) { c.Database.URL = "" },
			want:   "DATABASE_URL",
		},
		{
			name: "wildcard origin with credentials",
			mutate: func(c *Config) {
				c.CORS.AllowedOrigins = []string{"*"}
			},
			want: "CORS wildcard",
		},
		{
			name:   "sendgrid without key",
			mutate: func(c *Config) { c.Email.Provider = EmailProviderSendGrid },
			want:   "SENDGRID_API_KEY",
		},
		{
			name:   "smtp without host",
			mutate: func(c *Config) { c.Email.Provider = EmailProviderSMTP },
			want:   "SMTP_HOST",
		},
		{
			name:   "unknown provider",
			mutate: func(c *Config) { c.Email.Provider = "pigeon" },
			want:   "unknown email provider",
		},
		{
			name:   "bad cron spec",
			mutate: func(c *Config) { c.Jobs.DocumentSweepSchedule = "every night" },
			want:   "jobs.document_sweep_schedule",
		},
		{
			name:   "refresh shorter than access",
			mutate: func(c *Config) { c.JWT.RefreshTokenExpire = time.Minute },
			want:   "refresh_token_expire",
		},
		{
			name:   "missing signing key",
			mutate: func(c *Config) { c.Documents.SigningKey = "" },
			want:   "DOCUMENTS_SIGNING_KEY is required",
		},
		{
			name: "short signing key in production",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.Otel.Insecure = false
				c.Documents.SigningKey = "short"
			},
			want: "DOCUMENTS_SIGNING_KEY must be at least 32 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig(t)
			tt.mutate(c)
			err := validate(c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEnvKeyReplacer(t *testing.T) {
	assert.Equal(t, "database.url", envKeyReplacer("DATABASE_URL"))
	assert.Equal(t, "documents.signing_key", envKeyReplacer("DOCUMENTS_SIGNING_KEY"))
	assert.Equal(t, "", envKeyReplacer("HOME"))
}

func TestValidateReportsEveryProblem(t *testing.T) {
	c := validConfig(t)
	c.Database.URL = ""
	c.Redis.URL = ""
	c.Documents.URLTTL = 0

	err := validate(c)
	require.Error(t, err)
	for _, want := range []string{"DATABASE_URL", "REDIS_URL", "documents.url_ttl"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadFromEnvWithoutFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/auraf")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("PORT", "9090")
	t.Setenv("WIZARD_DRAFT_TTL", "30m")
	t.Setenv("DOCUMENTS_SIGNING_KEY", "dev-signing-key")

	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@db:5432/auraf", c.Database.URL)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 30*time.Minute, c.Wizard.DraftTTL)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  url: postgres://file@db/auraf
redis:
  url: redis://file:6379/0
documents:
  signing_key: file-signing-key
catalog:
  cache_ttl: 1m
`), 0o600))
	t.Setenv("REDIS_URL", "redis://env:6379/0")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://file@db/auraf", c.Database.URL)
	assert.Equal(t, "redis://env:6379/0", c.Redis.URL, "env overrides the file")
	assert.Equal(t, time.Minute, c.Catalog.CacheTTL)
	assert.Equal(t, "file-signing-key", c.Documents.SigningKey)
}

func TestLoadWithoutSigningKeyFails(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/auraf")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("DOCUMENTS_SIGNING_KEY", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOCUMENTS_SIGNING_KEY is required")
}
