// AngelaMos | 2026
// config.go

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron/v3"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
	Email     EmailConfig     `koanf:"email"`
	Documents DocumentsConfig `koanf:"documents"`
	Wizard    WizardConfig    `koanf:"wizard"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Jobs      JobsConfig      `koanf:"jobs"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	MigrateOnStart  bool          `koanf:"migrate_on_start"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type JWTConfig struct {
	PrivateKeyPath     string        `koanf:"private_key_path"`
	PublicKeyPath      string        `koanf:"public_key_path"`
	AccessTokenExpire  time.Duration `koanf:"access_token_expire"`
	RefreshTokenExpire time.Duration `koanf:"refresh_token_expire"`
	Issuer             string        `koanf:"issuer"`
	Audience           string        `koanf:"audience"`
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Burst    int           `koanf:"burst"`

	// Intake limits apply per IP to anonymous submission endpoints on
	// top of the global limit.
	IntakeRequests int `koanf:"intake_requests"`
	IntakeBurst    int `koanf:"intake_burst"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

const (
	EmailProviderSendGrid = "sendgrid"
	EmailProviderSMTP     = "smtp"
)

type EmailConfig struct {
	Provider       string `koanf:"provider"`
	FromAddress    string `koanf:"from_address"`
	FromName       string `koanf:"from_name"`
	SendGridAPIKey string `koanf:"sendgrid_api_key"`
	Sandbox        bool   `koanf:"sandbox"`
	SMTPHost       string `koanf:"smtp_host"`
	SMTPPort       int    `koanf:"smtp_port"`
	SMTPUser       string `koanf:"smtp_user"`
	SMTPPassword   string `koanf:"smtp_password"`
	LoginURL       string `koanf:"login_url"`
}

type DocumentsConfig struct {
	Dir        string        `koanf:"dir"`
	SigningKey string        `koanf:"signing_key"`
	URLTTL     time.Duration `koanf:"url_ttl"`
	MaxSize    int64         `koanf:"max_size"`
	OrphanAge  time.Duration `koanf:"orphan_age"`
}

type WizardConfig struct {
	DraftTTL time.Duration `koanf:"draft_ttl"`
}

type CatalogConfig struct {
	CacheSize int           `koanf:"cache_size"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`
}

type JobsConfig struct {
	Enabled               bool   `koanf:"enabled"`
	TokenCleanupSchedule  string `koanf:"token_cleanup_schedule"`
	DocumentSweepSchedule string `koanf:"document_sweep_schedule"`
}

// Load layers built-in defaults, the optional YAML file at configPath
// and the mapped environment variables, in that order, then validates
// the result.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		err := k.Load(file.Provider(configPath), yaml.Parser())
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	c := &Config{}
	if err := k.Unmarshal("", c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(c); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return c, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "Auraf Insurance API",
		"app.version":     "1.0.0",
		"app.environment": "development",

		"server.host":             "0.0.0.0",
		"server.port":             8080,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",
		"database.migrate_on_start":   true,

		"redis.pool_size":      10,
		"redis.min_idle_conns": 5,

		"jwt.access_token_expire":  "15m",
		"jwt.refresh_token_expire": "168h",
		"jwt.issuer":               "auraf-insurance",
		"jwt.audience":             "auraf-insurance-api",
		"jwt.private_key_path":     "keys/private.pem",
		"jwt.public_key_path":      "keys/public.pem",

		"rate_limit.requests": 100,
		"rate_limit.window":   "1m",
		"rate_limit.burst":    20,

		"rate_limit.intake_requests": 10,
		"rate_limit.intake_burst":    5,

		"cors.allowed_origins": []string{"http://localhost:3000"},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "auraf-insurance-api",

		"email.from_address": "info@aurafinsurance.com",
		"email.from_name":    "Auraf Insurance",
		"email.smtp_port":    2525,
		"email.login_url":    "http://localhost:3000/auth",

		"documents.dir":        "data/documents",
		"documents.url_ttl":    "15m",
		"documents.max_size":   10 << 20,
		"documents.orphan_age": "720h",

		"wizard.draft_ttl": "2h",

		"catalog.cache_size": 16,
		"catalog.cache_ttl":  "5m",

		"jobs.enabled":                 true,
		"jobs.token_cleanup_schedule":  "@hourly",
		"jobs.document_sweep_schedule": "30 3 * * *",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"DATABASE_URL":                "database.url",
	"REDIS_URL":                   "redis.url",
	"ENVIRONMENT":                 "app.environment",
	"HOST":                        "server.host",
	"PORT":                        "server.port",
	"LOG_LEVEL":                   "log.level",
	"LOG_FORMAT":                  "log.format",
	"JWT_PRIVATE_KEY_PATH":        "jwt.private_key_path",
	"JWT_PUBLIC_KEY_PATH":         "jwt.public_key_path",
	"JWT_ACCESS_TOKEN_EXPIRE":     "jwt.access_token_expire",
	"JWT_REFRESH_TOKEN_EXPIRE":    "jwt.refresh_token_expire",
	"JWT_ISSUER":                  "jwt.issuer",
	"JWT_AUDIENCE":                "jwt.audience",
	"RATE_LIMIT_REQUESTS":         "rate_limit.requests",
	"RATE_LIMIT_WINDOW":           "rate_limit.window",
	"RATE_LIMIT_BURST":            "rate_limit.burst",
	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",
	"MIGRATE_ON_START":            "database.migrate_on_start",
	"EMAIL_PROVIDER":              "email.provider",
	"EMAIL_FROM":                  "email.from_address",
	"EMAIL_FROM_NAME":             "email.from_name",
	"SENDGRID_API_KEY":            "email.sendgrid_api_key",
	"SENDGRID_SANDBOX":            "email.sandbox",
	"SMTP_HOST":                   "email.smtp_host",
	"SMTP_PORT":                   "email.smtp_port",
	"SMTP_USER":                   "email.smtp_user",
	"SMTP_PASSWORD":               "email.smtp_password",
	"LOGIN_URL":                   "email.login_url",
	"DOCUMENTS_DIR":               "documents.dir",
	"DOCUMENTS_SIGNING_KEY":       "documents.signing_key",
	"DOCUMENTS_URL_TTL":           "documents.url_ttl",
	"DOCUMENTS_MAX_SIZE":          "documents.max_size",
	"INTAKE_RATE_LIMIT_REQUESTS":  "rate_limit.intake_requests",
	"INTAKE_RATE_LIMIT_BURST":     "rate_limit.intake_burst",
	"CATALOG_CACHE_TTL":           "catalog.cache_ttl",
	"WIZARD_DRAFT_TTL":            "wizard.draft_ttl",
	"JOBS_ENABLED":                "jobs.enabled",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

const minSigningKeyLen = 32

// validate reports every problem at once so a misconfigured deploy can
// be fixed in one pass.
func validate(c *Config) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Database.URL != "", "DATABASE_URL is required")
	check(c.Redis.URL != "", "REDIS_URL is required")
	check(c.JWT.PrivateKeyPath != "", "JWT_PRIVATE_KEY_PATH is required")
	check(c.JWT.PublicKeyPath != "", "JWT_PUBLIC_KEY_PATH is required")
	check(c.JWT.AccessTokenExpire > 0, "jwt.access_token_expire must be positive")
	check(c.JWT.RefreshTokenExpire > c.JWT.AccessTokenExpire,
		"jwt.refresh_token_expire must outlast the access token")

	check(!c.CORS.AllowCredentials || !slices.Contains(c.CORS.AllowedOrigins, "*"),
		"CORS wildcard '*' cannot be used with allow_credentials")

	check(c.Server.ReadTimeout > 0, "server.read_timeout must be positive")
	check(c.Server.WriteTimeout > 0, "server.write_timeout must be positive")

	check(c.RateLimit.Requests > 0 && c.RateLimit.Window > 0,
		"rate_limit.requests and rate_limit.window must be positive")
	check(c.RateLimit.IntakeRequests > 0, "rate_limit.intake_requests must be positive")

	switch c.Email.Provider {
	case "":
	case EmailProviderSendGrid:
		check(c.Email.SendGridAPIKey != "", "SENDGRID_API_KEY is required for the sendgrid provider")
	case EmailProviderSMTP:
		check(c.Email.SMTPHost != "", "SMTP_HOST is required for the smtp provider")
	default:
		check(false, "unknown email provider %q", c.Email.Provider)
	}

	check(c.Documents.SigningKey != "", "DOCUMENTS_SIGNING_KEY is required")
	check(c.Documents.URLTTL > 0, "documents.url_ttl must be positive")
	check(c.Documents.MaxSize > 0, "documents.max_size must be positive")

	if c.Jobs.Enabled {
		for name, spec := range map[string]string{
			"jobs.token_cleanup_schedule":  c.Jobs.TokenCleanupSchedule,
			"jobs.document_sweep_schedule": c.Jobs.DocumentSweepSchedule,
		} {
			_, err := cron.ParseStandard(spec)
			check(err == nil, "%s %q is not a valid cron spec", name, spec)
		}
	}

	if c.IsProduction() {
		check(!c.Otel.Enabled || !c.Otel.Insecure, "OTEL_INSECURE must be false in production")
		check(len(c.Documents.SigningKey) >= minSigningKeyLen,
			"DOCUMENTS_SIGNING_KEY must be at least %d bytes in production", minSigningKeyLen)
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
