package config

const (
	EnvPrefix = "DASHBOARD"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	// DemoAPIKey switches the order source to generated demo data.
	DemoAPIKey = "DEMO"
)

const (
	EnvAppEnv         = "DASHBOARD_APP_ENV"
	EnvPort           = "DASHBOARD_APP_PORT"
	EnvLogLevel       = "DASHBOARD_LOG_LEVEL"
	EnvImwebAPIKey    = "DASHBOARD_IMWEB_API_KEY"
	EnvImwebAPISecret = "DASHBOARD_IMWEB_API_SECRET"
	EnvImwebBaseURL   = "DASHBOARD_IMWEB_BASE_URL"
	EnvImwebPageLimit = "DASHBOARD_IMWEB_PAGE_LIMIT"
	EnvSyncInterval   = "DASHBOARD_SYNC_INTERVAL"
	EnvSyncWindow     = "DASHBOARD_SYNC_WINDOW"
	EnvRedisURL       = "DASHBOARD_REDIS_URL"
	EnvAllowedOrigins = "DASHBOARD_HTTP_ALLOWED_ORIGINS"
	EnvReportTimezone = "DASHBOARD_REPORT_TIMEZONE"
)
