package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Service ServiceConfig
	Imweb   ImwebConfig
	Sync    SyncConfig
	Redis   RedisConfig
	HTTP    HTTPConfig
	Report  ReportConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Imweb.validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.Report.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DASHBOARD_APP_ENV" default:"dev"`
	Port         string `envconfig:"DASHBOARD_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"DASHBOARD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DASHBOARD_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"DASHBOARD_LOG_FORMAT" default:"json"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"DASHBOARD_SERVICE_KIND" default:"api"`
}

// ImwebConfig holds the storefront API credentials and client tuning.
type ImwebConfig struct {
	APIKey            string        `envconfig:"DASHBOARD_IMWEB_API_KEY" required:"true"`
	APISecret         string        `envconfig:"DASHBOARD_IMWEB_API_SECRET"`
	BaseURL           string        `envconfig:"DASHBOARD_IMWEB_BASE_URL" default:"https://api.imweb.me/v2"`
	Timeout           time.Duration `envconfig:"DASHBOARD_IMWEB_TIMEOUT" default:"30s"`
	PageLimit         int           `envconfig:"DASHBOARD_IMWEB_PAGE_LIMIT" default:"100"`
	RequestsPerSecond float64       `envconfig:"DASHBOARD_IMWEB_RPS" default:"2"`
	Burst             int           `envconfig:"DASHBOARD_IMWEB_BURST" default:"1"`
	DemoOrderCount    int           `envconfig:"DASHBOARD_DEMO_ORDER_COUNT" default:"150"`
	DemoSeed          uint64        `envconfig:"DASHBOARD_DEMO_SEED" default:"0"`
}

// IsDemo reports whether the synthetic order source should be used instead of the API.
func (c ImwebConfig) IsDemo() bool {
	return c.APIKey == DemoAPIKey
}

func (c ImwebConfig) validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%s is required (use %q for demo mode)", EnvImwebAPIKey, DemoAPIKey)
	}
	if c.IsDemo() {
		return nil
	}
	if strings.TrimSpace(c.APISecret) == "" {
		return fmt.Errorf("%s is required outside demo mode", EnvImwebAPISecret)
	}
	if c.PageLimit <= 0 {
		return fmt.Errorf("%s must be positive", EnvImwebPageLimit)
	}
	return nil
}

// SyncConfig controls the background order sync.
type SyncConfig struct {
	Interval  time.Duration `envconfig:"DASHBOARD_SYNC_INTERVAL" default:"15m"`
	Window    time.Duration `envconfig:"DASHBOARD_SYNC_WINDOW" default:"720h"`
	OnStartup bool          `envconfig:"DASHBOARD_SYNC_ON_STARTUP" default:"true"`
	Enabled   bool          `envconfig:"DASHBOARD_SYNC_ENABLED" default:"true"`
	LockTTL   time.Duration `envconfig:"DASHBOARD_SYNC_LOCK_TTL" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DASHBOARD_REDIS_URL"`
	Address      string        `envconfig:"DASHBOARD_REDIS_ADDR"`
	Password     string        `envconfig:"DASHBOARD_REDIS_PASSWORD"`
	DB           int           `envconfig:"DASHBOARD_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DASHBOARD_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DASHBOARD_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DASHBOARD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DASHBOARD_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DASHBOARD_REDIS_WRITE_TIMEOUT" default:"5s"`
	SnapshotTTL  time.Duration `envconfig:"DASHBOARD_REDIS_SNAPSHOT_TTL" default:"24h"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type HTTPConfig struct {
	AllowedOrigins []string      `envconfig:"DASHBOARD_HTTP_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	SyncRateLimit  int           `envconfig:"DASHBOARD_HTTP_SYNC_RATE_LIMIT" default:"5"`
	SyncRateWindow time.Duration `envconfig:"DASHBOARD_HTTP_SYNC_RATE_WINDOW" default:"1m"`
}

type ReportConfig struct {
	InvoicePreviewLimit  int    `envconfig:"DASHBOARD_REPORT_INVOICE_PREVIEW" default:"50"`
	GroupBuyPreviewLimit int    `envconfig:"DASHBOARD_REPORT_GROUP_BUY_PREVIEW" default:"10"`
	RawPreviewLimit      int    `envconfig:"DASHBOARD_REPORT_RAW_PREVIEW" default:"5"`
	Timezone             string `envconfig:"DASHBOARD_REPORT_TIMEZONE" default:"Asia/Seoul"`
}

// Location resolves the timezone used for human-readable order dates.
func (r ReportConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(r.Timezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", EnvReportTimezone, err)
	}
	return loc, nil
}
