package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"rapv/site/internal/auth"
	"rapv/site/internal/blob"
	"rapv/site/internal/config"
	"rapv/site/internal/content"
	"rapv/site/internal/db"
	httpapi "rapv/site/internal/http"
	"rapv/site/internal/jobs"
	"rapv/site/internal/logging"
	"rapv/site/internal/notify"
	"rapv/site/internal/observability"
	"rapv/site/internal/render"
	"rapv/site/internal/store"
)

func main() {
	cfg := config.Load()

	logs, err := logging.Init(logging.Options{
		Level:   cfg.LogLevel,
		Env:     cfg.Env,
		Service: "school-site",
		Release: cfg.Release,
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logs.Closer()
	logger := logs.Base

	flush, err := observability.InitSentry(observability.SentryConfig{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Env,
		Release:     cfg.Release,
	})
	if err != nil {
		logger.Warn("sentry disabled", zap.Error(err))
	} else {
		defer flush()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := content.Options{
		Timeout: cfg.RemoteTimeout,
		Logger:  logger,
	}
	api := httpapi.API{
		AuthMode:      cfg.AuthMode,
		DevActor:      cfg.DevAuthName,
		CORSAllowList: cfg.CORSAllowList,
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.Env == "production" || cfg.Env == "prod",
		Logger:        logger,
		LogLevel:      logs.Level,
	}

	if cfg.StoreConfigured() {
		conn, err := db.Open(cfg.DatabaseURL, db.Pool{
			MaxOpen:     cfg.DBMaxOpenConns,
			MaxIdle:     cfg.DBMaxIdleConns,
			MaxLifetime: cfg.DBConnMaxLifetime,
		})
		if err != nil {
			logger.Fatal("failed to open db", zap.Error(err))
		}
		defer conn.Close()
		if cfg.AutoMigrate {
			if err := db.Migrate(ctx, conn); err != nil {
				logger.Fatal("failed to migrate db", zap.Error(err))
			}
		}
		st := store.New(conn, store.WithLogger(logger.With(zap.String("component", "store"))))
		opts.Source = st
		opts.Repos = content.Repositories{
			Events:     st.Events(),
			Staff:      st.Staff(),
			News:       st.News(),
			Results:    st.Results(),
			Facilities: st.Facilities(),
		}
		api.Audit = st
		api.Ping = st.Ping
	} else {
		seed, err := content.DefaultSeed()
		if err != nil {
			logger.Fatal("failed to load default content", zap.Error(err))
		}
		opts.Fallback = seed
		logger.Warn("DATABASE_URL not set, serving built-in content; admin changes are kept in memory only")
	}

	if cfg.StorageConfigured() {
		client := blob.New(cfg.SupabaseURL, cfg.SupabaseKey, cfg.MediaBucket, cfg.RemoteTimeout)
		api.Media = content.NewMediaLibrary(client, cfg.MediaMaxWidth, logger)
	} else {
		api.Media = content.NewMediaLibrary(nil, 0, logger)
		logger.Warn("media storage not configured")
	}

	site := content.NewSite(opts)
	site.Load(ctx)
	api.Site = site

	runner := jobs.New(ctx, logger.With(zap.String("component", "jobs")))
	runner.Every(cfg.RefreshInterval, "content_refresh", site.Refresh)

	api.AuthProvider = newAuthProvider(ctx, cfg, logger)

	notifier, err := notify.NewFirebaseSender(ctx, cfg.FirebaseCredentialsFile)
	if err != nil {
		logger.Warn("push notifications disabled", zap.Error(err))
		notifier = notify.NoopSender{}
	}
	api.Notifier = notifier

	renderer, err := render.NewTemplateRenderer()
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}
	api.Renderer = renderer
	api.Chart = render.NewResultsChart(render.NewChartCache(cfg.ChartCacheTTL))

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      api.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shCtx)
	}()

	logger.Info("school site listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.Bool("database", cfg.StoreConfigured()),
		zap.Bool("storage", cfg.StorageConfigured()),
		zap.String("auth_mode", cfg.AuthMode),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newAuthProvider(ctx context.Context, cfg config.Config, logger *zap.Logger) auth.Provider {
	switch cfg.AuthMode {
	case "dev":
		logger.Warn("dev auth enabled: any name signs in as admin")
		return auth.DevProvider{DefaultName: cfg.DevAuthName}
	case "password":
		provider, err := auth.NewPasswordProvider(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.SessionSecret, cfg.SessionTTL)
		if err != nil {
			logger.Fatal("failed to initialize password auth", zap.Error(err))
		}
		return provider
	case "firebase":
		provider, err := auth.NewFirebaseProvider(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Fatal("failed to initialize firebase auth provider", zap.Error(err))
		}
		return provider
	default:
		logger.Fatal("unsupported AUTH_MODE", zap.String("mode", cfg.AuthMode))
		return nil
	}
}
