package service

type Config struct {
	DatabaseUri             string  `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns        int     `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns    int     `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime int     `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	DatabaseTimeout         int     `envconfig:"DATABASE_TIMEOUT" default:"60"`             // 60 seconds
	SentryDSN               string  `envconfig:"SENTRY_DSN"`
	SentryTracesSampleRate  float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	LogFilePath             string  `envconfig:"LOG_FILE_PATH"`
	AdminToken              string  `envconfig:"ADMIN_TOKEN"`
	Port                    int     `envconfig:"PORT" default:"3000"`
	DefaultRateLimit        int     `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	StrictRateLimit         int     `envconfig:"STRICT_RATE_LIMIT" default:"10"`
	BurstRateLimit          int     `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus        bool    `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort          int     `envconfig:"PROMETHEUS_PORT" default:"9092"`
	ResponseCacheSize       int     `envconfig:"RESPONSE_CACHE_SIZE" default:"10000"`
	ResponseCacheTTL        int     `envconfig:"RESPONSE_CACHE_TTL" default:"600"` // in seconds
	RabbitMQUri             string  `envconfig:"RABBITMQ_URI"`
	RabbitMQAssetExchange   string  `envconfig:"RABBITMQ_ASSET_EXCHANGE" default:"ledger_asset"`
	RabbitMQAssetQueueName  string  `envconfig:"RABBITMQ_ASSET_QUEUE_NAME" default:"ledger_asset_consumer"` // prefix, every instance binds its own queue
}
