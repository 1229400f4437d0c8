package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/data/seeds"
	"github.com/yungbote/youthcare-backend/internal/db"
	apphttp "github.com/yungbote/youthcare-backend/internal/http"
	"github.com/yungbote/youthcare-backend/internal/observability"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/realtime"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *apphttp.Server
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients
	Metrics  *observability.Metrics

	database     *db.DatabaseService
	shutdownOtel func(context.Context) error
	flushSentry  func()
	cancel       context.CancelFunc
}

func New(ctx context.Context) (*App, error) {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	flushSentry, err := observability.InitSentry(log, observability.SentryConfig{
		DSN:         cfg.SentryDSN,
		Environment: cfg.AppEnv,
		Release:     cfg.Version,
	})
	if err != nil {
		log.Warn("Sentry disabled", "error", err)
	}
	shutdownOtel := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: cfg.ServiceName,
		Environment: cfg.AppEnv,
		Version:     cfg.Version,
		Endpoint:    cfg.OtelEndpoint,
		Headers:     cfg.OtelHeaders,
		Insecure:    cfg.OtelInsecure,
		SampleRatio: cfg.OtelSamplerRatio,
	})

	database, err := db.NewDatabaseService(log, cfg.DB)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := database.AutoMigrateAll(); err != nil {
		_ = database.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = database.Close()
		log.Sync()
		return nil, err
	}

	a := assemble(log, cfg, database.DB(), clients, observability.Init(cfg.MetricsEnabled))
	a.database = database
	a.shutdownOtel = shutdownOtel
	a.flushSentry = flushSentry
	return a, nil
}

// assemble wires repos, services and HTTP on top of an open connection.
func assemble(log *logger.Logger, cfg Config, conn *gorm.DB, clients Clients, metrics *observability.Metrics) *App {
	if cfg.Timezone == nil {
		cfg.Timezone = time.Local
	}
	reposet := wireRepos(conn, log)
	serviceset := wireServices(conn, log, cfg, reposet, clients)
	handlerset := wireHandlers(log, serviceset, pingDB(conn))
	middleware := wireMiddleware(log, serviceset, clients)
	server := wireServer(log, cfg, handlerset, middleware, metrics)

	return &App{
		Log:      log,
		DB:       conn,
		Server:   server,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		Clients:  clients,
		Metrics:  metrics,
	}
}

// Start launches the background loops. They stop when Close is called or
// ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if a.Cfg.SeedSurveysOnBoot {
		if err := seeds.SeedSurveys(dbctx.Context{Ctx: ctx}, a.Repos.Survey, a.Log); err != nil {
			a.Log.Warn("Survey seed failed", "error", err)
		}
	}

	if a.Clients.AlertBus != nil {
		busLog := a.Log.With("component", "AlertForwarder")
		err := a.Clients.AlertBus.StartForwarder(ctx, func(ev realtime.Event) {
			busLog.Info("Alert event delivered",
				"event", ev.Type,
				"alert_id", ev.Data["alert_id"],
				"recipients", len(ev.Recipients),
			)
		})
		if err != nil {
			a.Log.Warn("Alert forwarder not started", "error", err)
		}
	}

	if a.Clients.memLimiter != nil {
		a.Clients.memLimiter.StartCleanup(ctx)
	}

	a.Metrics.StartDBCollector(ctx, a.Log, a.DB, a.Cfg.MetricsInterval)
	a.Metrics.StartRedisCollector(ctx, a.Log, a.Clients.Redis, a.Cfg.MetricsInterval)

	startHealthPinger(ctx, a.Log, a.Cfg.HealthPingURL, a.Cfg.HealthPingEvery)
}

func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("Server listening", "addr", addr, "env", a.Cfg.AppEnv)
	return a.Server.Run(ctx, addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Clients.Close()
	if a.shutdownOtel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.shutdownOtel(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.flushSentry != nil {
		a.flushSentry()
	}
	if a.database != nil {
		if err := a.database.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	a.Log.Sync()
}

func pingDB(conn *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
