package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/myrjola/fitnesspro/internal/envstruct"
	"github.com/myrjola/fitnesspro/internal/errors"
	"github.com/myrjola/fitnesspro/internal/events"
	"github.com/myrjola/fitnesspro/internal/flightrecorder"
	"github.com/myrjola/fitnesspro/internal/logging"
	"github.com/myrjola/fitnesspro/internal/metrics"
	"github.com/myrjola/fitnesspro/internal/profile"
	"github.com/myrjola/fitnesspro/internal/sqlite"
	"github.com/myrjola/fitnesspro/internal/workout"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/yuin/goldmark"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	templateFS     fs.FS
	markdown       goldmark.Markdown
	profiles       *profile.Service
	workouts       *workout.Service
	metrics        *metrics.Manager
	registry       *prometheus.Registry
	// traces is nil unless FITNESSPRO_TRACES_DIR is set.
	traces *flightrecorder.Service
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"FITNESSPRO_ADDR" envDefault:"localhost:8081"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"FITNESSPRO_SQLITE_URL" envDefault:"./fitnesspro.sqlite3"`
	// TemplatePath is the path to the directory containing the HTML templates.
	TemplatePath string `env:"FITNESSPRO_TEMPLATE_PATH" envDefault:""`
	// SessionLifetime is how long a visitor keeps their profile without coming back.
	SessionLifetime time.Duration `env:"FITNESSPRO_SESSION_LIFETIME" envDefault:"8760h"`
	// MetricsNamespace prefixes every Prometheus metric name.
	MetricsNamespace string `env:"FITNESSPRO_METRICS_NAMESPACE" envDefault:"fitnesspro"`
	// TracesDir enables the flight recorder. A runtime trace is written there when a request times out.
	TracesDir string `env:"FITNESSPRO_TRACES_DIR" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	var htmlTemplatePath string
	if htmlTemplatePath, err = resolveAndVerifyTemplatePath(cfg.TemplatePath); err != nil {
		return errors.Wrap(err, "resolve template path")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "close db failed", errors.SlogError(closeErr))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager(cfg.MetricsNamespace, "web", registry)

	userData := &events.UserData{}
	profiles := profile.NewService(db, logger, userData, metricsManager)
	unsubscribe := profiles.SubscribeRecommendations()
	defer unsubscribe()

	sessionStore := sqlite3store.NewWithCleanupInterval(db.ReadWrite, 24*time.Hour) //nolint:mnd // day
	defer sessionStore.StopCleanup()

	var traces *flightrecorder.Service
	if cfg.TracesDir != "" {
		if traces, err = flightrecorder.New(flightrecorder.Config{
			Logger:          logger,
			MinAge:          0,
			MaxBytes:        0,
			TracesDirectory: cfg.TracesDir,
			Cooldown:        0,
		}); err != nil {
			return errors.Wrap(err, "new flight recorder")
		}
		if err = traces.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer traces.Stop(context.WithoutCancel(ctx))
	}

	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(sessionStore, cfg.SessionLifetime),
		templateFS:     os.DirFS(htmlTemplatePath),
		markdown:       goldmark.New(),
		profiles:       profiles,
		workouts:       workout.NewService(db, logger, metricsManager),
		metrics:        metricsManager,
		registry:       registry,
		traces:         traces,
	}

	var handler http.Handler
	if handler, err = app.routes(); err != nil {
		return errors.Wrap(err, "setup routes")
	}
	if err = app.configureAndStartServer(ctx, cfg.Addr, handler); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func initializeSessionManager(store scs.Store, lifetime time.Duration) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = store
	sessionManager.Lifetime = lifetime
	sessionManager.Cookie.Name = "fitnesspro_session"
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	logger := logging.New(os.Stdout, slog.LevelDebug)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
