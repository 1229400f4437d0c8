package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/youthcare-backend/internal/db"
	"github.com/yungbote/youthcare-backend/internal/platform/envutil"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
)

type Config struct {
	AppEnv      string
	Port        string
	ServiceName string
	Version     string

	DB db.Config

	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	FrontendURL     string
	CORSOrigins     []string

	ResendAPIKey string
	EmailFrom    string

	RedisAddr     string
	RedisChannel  string
	AuthRateLimit int
	AuthRateWin   time.Duration

	SentryDSN         string
	OtelEnabled       bool
	OtelEndpoint      string
	OtelHeaders       string
	OtelInsecure      bool
	OtelSamplerRatio  float64
	MetricsEnabled    bool
	MetricsInterval   time.Duration
	Timezone          *time.Location
	HealthPingURL     string
	HealthPingEvery   time.Duration
	SeedSurveysOnBoot bool
}

func (c Config) Production() bool {
	env := strings.ToLower(c.AppEnv)
	return env == "production" || env == "prod"
}

// LoadConfig reads the process environment, after merging a .env file when
// one exists in the working directory.
func LoadConfig(log *logger.Logger) Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded, using process environment")
	}

	tzName := envutil.String("APP_TIMEZONE", "Local", log)
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Warn("Unknown APP_TIMEZONE, using Local", "provided", tzName, "error", err)
		loc = time.Local
	}

	ratio := 0.0
	if raw := envutil.String("OTEL_SAMPLER_RATIO", "", log); raw != "" {
		ratio = parseRatio(raw, log)
	}

	return Config{
		AppEnv:      envutil.String("APP_ENV", "development", log),
		Port:        envutil.String("PORT", "5000", log),
		ServiceName: envutil.String("OTEL_SERVICE_NAME", "youthcare-backend", log),
		Version:     envutil.String("APP_VERSION", "dev", log),

		DB: db.Config{
			Driver:     envutil.String("DB_DRIVER", db.DriverPostgres, log),
			Host:       envutil.String("POSTGRES_HOST", "localhost", log),
			Port:       envutil.String("POSTGRES_PORT", "5432", log),
			User:       envutil.String("POSTGRES_USER", "postgres", log),
			Password:   envutil.String("POSTGRES_PASSWORD", "", log),
			Name:       envutil.String("POSTGRES_NAME", "youthcare", log),
			SSLMode:    envutil.String("POSTGRES_SSLMODE", "disable", log),
			SQLitePath: envutil.String("SQLITE_PATH", "youthcare.db", log),
		},

		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL:  time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 3600, log)) * time.Second,
		RefreshTokenTTL: time.Duration(envutil.Int("REFRESH_TOKEN_TTL", 604800, log)) * time.Second,
		FrontendURL:     strings.TrimRight(envutil.String("FRONTEND_URL", "http://localhost:3000", log), "/"),
		CORSOrigins:     envutil.List("CORS_ALLOWED_ORIGINS", nil, log),

		ResendAPIKey: envutil.String("RESEND_API_KEY", "", log),
		EmailFrom:    envutil.String("EMAIL_FROM", "Youthcare <no-reply@youthcare.app>", log),

		RedisAddr:     envutil.String("REDIS_ADDR", "", log),
		RedisChannel:  envutil.String("REDIS_CHANNEL", "alerts", log),
		AuthRateLimit: envutil.Int("AUTH_RATE_LIMIT", 20, log),
		AuthRateWin:   positive("AUTH_RATE_WINDOW", envutil.Duration("AUTH_RATE_WINDOW", time.Minute, log), time.Minute, log),

		SentryDSN:         envutil.String("SENTRY_DSN", "", log),
		OtelEnabled:       envutil.Bool("OTEL_ENABLED", false, log),
		OtelEndpoint:      envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
		OtelHeaders:       envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log),
		OtelInsecure:      envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
		OtelSamplerRatio:  ratio,
		MetricsEnabled:    envutil.Bool("METRICS_ENABLED", false, log),
		MetricsInterval:   envutil.Duration("METRICS_COLLECT_INTERVAL", 15*time.Second, log),
		Timezone:          loc,
		HealthPingURL:     envutil.String("HEALTH_PING_URL", "", log),
		HealthPingEvery:   envutil.Duration("HEALTH_PING_INTERVAL", 14*time.Minute, log),
		SeedSurveysOnBoot: envutil.Bool("SEED_SURVEYS", true, log),
	}
}

func positive(name string, d, def time.Duration, log *logger.Logger) time.Duration {
	if d > 0 {
		return d
	}
	log.Warn("Duration must be positive, using default", "env_var", name, "provided", d, "default", def)
	return def
}

func parseRatio(raw string, log *logger.Logger) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 || v > 1 {
		log.Warn("OTEL_SAMPLER_RATIO must be within [0,1], using default", "provided", raw)
		return 0
	}
	return v
}
