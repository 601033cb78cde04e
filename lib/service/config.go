package service

type Config struct {
	DatabaseUri             string  `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns        int     `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns    int     `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime int     `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	DatabaseTimeout         int     `envconfig:"DATABASE_TIMEOUT" default:"60"`             // 60 seconds
	SentryDSN               string  `envconfig:"SENTRY_DSN"`
	SentryTracesSampleRate  float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	DatadogAgentUrl         string  `envconfig:"DATADOG_AGENT_URL"`
	LogFilePath             string  `envconfig:"LOG_FILE_PATH"`
	JWTSecret               []byte  `envconfig:"JWT_SECRET" required:"true"`
	AdminToken              string  `envconfig:"ADMIN_TOKEN"`
	JWTRefreshTokenExpiry   int     `envconfig:"JWT_REFRESH_EXPIRY" default:"604800"` // in seconds, default 7 days
	JWTAccessTokenExpiry    int     `envconfig:"JWT_ACCESS_EXPIRY" default:"172800"`  // in seconds, default 2 days
	Host                    string  `envconfig:"HOST" default:"localhost:8080"`
	Port                    int     `envconfig:"PORT" default:"8080"`
	DefaultRateLimit        int     `envconfig:"DEFAULT_RATE_LIMIT" default:"20"`
	StrictRateLimit         int     `envconfig:"STRICT_RATE_LIMIT" default:"5"`
	BurstRateLimit          int     `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus        bool    `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort          int     `envconfig:"PROMETHEUS_PORT" default:"9092"`
	WebhookUrl              string  `envconfig:"WEBHOOK_URL"`
	AllowAccountCreation    bool    `envconfig:"ALLOW_ACCOUNT_CREATION" default:"true"`
	MinPasswordEntropy      int     `envconfig:"MIN_PASSWORD_ENTROPY" default:"0"`
	MaxVersionsPerAsset     int     `envconfig:"MAX_VERSIONS_PER_ASSET" default:"20"`
	ViewerBaseUrl           string  `envconfig:"VIEWER_BASE_URL" default:"http://localhost:3001"`
	PresetsPath             string  `envconfig:"CATEGORY_PRESETS_PATH"`
	GraphCacheSeconds       int     `envconfig:"GRAPH_CACHE_SECONDS" default:"60"`
	RabbitMQUri             string  `envconfig:"RABBITMQ_URI"`
	RabbitMQAssetExchange   string  `envconfig:"RABBITMQ_ASSET_EXCHANGE" default:"hyperforge_asset"`
	BrandingTitle           string  `envconfig:"BRANDING_TITLE" default:"HyperForge"`
	BrandingDesc            string  `envconfig:"BRANDING_DESC" default:"Game asset studio backend"`
	BrandingUrl             string  `envconfig:"BRANDING_URL"`
}
