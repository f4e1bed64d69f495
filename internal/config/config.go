package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Translate TranslateConfig `yaml:"translate"`
	Cache     CacheConfig     `yaml:"cache"`
	Admin     AdminConfig     `yaml:"admin"`
	Backfill  BackfillConfig  `yaml:"backfill"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// TranslateConfig holds machine-translation provider settings.
// An empty APIKey is a valid configuration: auto-translation degrades to
// pass-through and only manual translations are served.
type TranslateConfig struct {
	APIKey     string        `yaml:"api_key"     env:"TRANSLATE_API_KEY"`
	Endpoint   string        `yaml:"endpoint"    env:"TRANSLATE_ENDPOINT"    env-default:"https://translation.googleapis.com/language/translate/v2"`
	SourceLang string        `yaml:"source_lang" env:"TRANSLATE_SOURCE_LANG" env-default:"en"`
	Timeout    time.Duration `yaml:"timeout"     env:"TRANSLATE_TIMEOUT"     env-default:"10s"`
	PhraseTTL  time.Duration `yaml:"phrase_ttl"  env:"TRANSLATE_PHRASE_TTL"  env-default:"720h"`
}

// CacheConfig holds text-cache settings.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"     env:"CACHE_ENABLED"     env-default:"true"`
	TTL        time.Duration `yaml:"ttl"         env:"CACHE_TTL"         env-default:"24h"`
	MaxEntries int           `yaml:"max_entries" env:"CACHE_MAX_ENTRIES" env-default:"4096"`
}

// AdminConfig holds settings for the admin API surface. An empty Token
// disables the admin endpoints entirely.
type AdminConfig struct {
	Token              string `yaml:"token"                 env:"ADMIN_API_TOKEN"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute" env:"ADMIN_RATE_LIMIT_PER_MINUTE" env-default:"60"`
}

// CORSConfig holds Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET, POST, PUT, OPTIONS"`
	AllowedHeaders string `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Authorization, Content-Type"`
	MaxAge         int    `yaml:"max_age"         env:"CORS_MAX_AGE"         env-default:"300"`
}

// BackfillConfig holds bulk-translation size limits. The two defaults mirror
// the two call sites: the admin API caps runs at APILimit, the CLI at CLILimit.
type BackfillConfig struct {
	APILimit int `yaml:"api_limit" env:"BACKFILL_API_LIMIT" env-default:"100"`
	CLILimit int `yaml:"cli_limit" env:"BACKFILL_CLI_LIMIT" env-default:"50"`
}
