package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"rapv/site/internal/auth"
	"rapv/site/internal/content"
	"rapv/site/internal/http/handlers"
	"rapv/site/internal/metrics"
	"rapv/site/internal/models"
	"rapv/site/internal/notify"
	"rapv/site/internal/render"
)

type API struct {
	Site          *content.Site
	Media         *content.MediaLibrary
	Renderer      render.Renderer
	Chart         *render.ResultsChart
	AuthProvider  auth.Provider
	AuthMode      string
	DevActor      string
	Notifier      notify.Sender
	Audit         handlers.AuditStore
	Ping          func(ctx context.Context) error
	CORSAllowList []string
	SessionTTL    time.Duration
	SecureCookies bool
	SlideInterval time.Duration
	MaxUpload     int64
	Logger        *zap.Logger
	// LogLevel, when set, lets admins read and change the log level at
	// runtime, e.g. a zap.AtomicLevel.
	LogLevel http.Handler
}

func (a API) Router() http.Handler {
	log := a.Logger
	if log == nil {
		log = zap.NewNop()
	}
	notifier := a.Notifier
	if notifier == nil {
		notifier = notify.NoopSender{}
	}
	mux := http.NewServeMux()
	handlers.SetAuditStore(a.Audit, log)

	mux.HandleFunc("GET /healthz", handlers.HealthHandler{Ping: a.Ping}.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	optional := OptionalAuth(a.AuthProvider)
	pages := handlers.PagesHandler{
		Site:              a.Site,
		Renderer:          a.Renderer,
		Chart:             a.Chart,
		AuthMode:          a.AuthMode,
		DevActor:          a.DevActor,
		StorageConfigured: a.Media != nil && a.Media.Configured(),
		SlideInterval:     a.SlideInterval,
		Log:               log.With(zap.String("component", "pages")),
	}
	mux.Handle("GET /{$}", optional(http.HandlerFunc(pages.Public)))
	mux.Handle("GET /login", optional(http.HandlerFunc(pages.Login)))
	mux.Handle("GET /admin", optional(http.HandlerFunc(pages.Admin)))
	mux.HandleFunc("GET /lang/{lang}", pages.SetLanguage)
	mux.HandleFunc("GET /hero/stream", pages.HeroStream)
	mux.HandleFunc("GET /api/v1/site", pages.SiteJSON)
	mux.HandleFunc("GET /api/v1/news/{id}", pages.News)

	sessionHandler := handlers.SessionHandler{
		AuthProvider: a.AuthProvider,
		TTL:          a.SessionTTL,
		Secure:       a.SecureCookies,
		Log:          log.With(zap.String("component", "session")),
	}
	authLimiter := newAuthRateLimiter(30, time.Minute)
	mux.Handle("POST /api/v1/auth/session", withAuthRateLimit(http.HandlerFunc(sessionHandler.Create), authLimiter))
	mux.Handle("DELETE /api/v1/auth/session", withAuthRateLimit(http.HandlerFunc(sessionHandler.Delete), authLimiter))

	protected := RequireAdmin(a.AuthProvider, log.With(zap.String("component", "auth")))
	editors := a.Site.Editors()
	adminLog := log.With(zap.String("component", "admin"))

	registerEditor(mux, protected, content.EntityEvents, handlers.EditorHandler[models.EventItem, int64]{
		Editor: editors.Events, Action: "event", ParseKey: handlers.ParseID, Log: adminLog,
	})
	registerEditor(mux, protected, content.EntityStaff, handlers.EditorHandler[models.StaffMember, int64]{
		Editor: editors.Staff, Action: "staff", ParseKey: handlers.ParseID, Log: adminLog,
	})
	registerEditor(mux, protected, content.EntityNews, handlers.EditorHandler[models.NewsItem, int64]{
		Editor: editors.News, Action: "news", ParseKey: handlers.ParseID, Log: adminLog,
		Created: func(ctx context.Context, item models.NewsItem) {
			announceNews(ctx, notifier, adminLog, item)
		},
	})
	registerEditor(mux, protected, content.EntityResults, handlers.EditorHandler[models.YearResult, string]{
		Editor: editors.Results, Action: "result", ParseKey: handlers.ParseYear, Log: adminLog,
	})
	registerEditor(mux, protected, content.EntityFacilities, handlers.EditorHandler[models.Facility, int64]{
		Editor: editors.Facilities, Action: "facility", ParseKey: handlers.ParseID, Log: adminLog,
	})

	settingsHandler := handlers.SettingsHandler{Site: a.Site, Log: adminLog}
	mux.Handle("GET /api/v1/admin/settings", protected(http.HandlerFunc(settingsHandler.Get)))
	mux.Handle("POST /api/v1/admin/settings", protected(http.HandlerFunc(settingsHandler.Save)))

	mediaHandler := handlers.MediaHandler{Library: a.Media, MaxBytes: a.MaxUpload, Log: adminLog}
	if a.Media == nil {
		mediaHandler.Library = content.NewMediaLibrary(nil, 0, log)
	}
	mux.Handle("GET /api/v1/admin/media", protected(http.HandlerFunc(mediaHandler.List)))
	mux.Handle("POST /api/v1/admin/media", protected(http.HandlerFunc(mediaHandler.Upload)))
	mux.Handle("DELETE /api/v1/admin/media/{name}", protected(http.HandlerFunc(mediaHandler.Delete)))
	mux.Handle("POST /api/v1/admin/media/{name}/rename", protected(http.HandlerFunc(mediaHandler.Rename)))

	exportHandler := handlers.ExportHandler{Site: a.Site, Log: adminLog}
	mux.Handle("GET /api/v1/admin/results/export.xlsx", protected(http.HandlerFunc(exportHandler.Results)))

	reloadHandler := handlers.ReloadHandler{Site: a.Site, Log: adminLog}
	mux.Handle("POST /api/v1/admin/reload", protected(http.HandlerFunc(reloadHandler.Reload)))

	auditLogsHandler := handlers.AuditLogsHandler{Store: a.Audit, Log: adminLog}
	mux.Handle("GET /api/v1/admin/audit-logs", protected(http.HandlerFunc(auditLogsHandler.List)))

	if a.LogLevel != nil {
		mux.Handle("GET /api/v1/admin/log-level", protected(a.LogLevel))
		mux.Handle("PUT /api/v1/admin/log-level", protected(a.LogLevel))
	}

	return withCORS(withLanguage(withRequestLog(mux, log)), a.CORSAllowList)
}

func registerEditor[T any, K comparable](mux *http.ServeMux, protected func(http.Handler) http.Handler, entity string, h handlers.EditorHandler[T, K]) {
	base := "/api/v1/admin/" + entity
	mux.Handle("GET "+base, protected(http.HandlerFunc(h.List)))
	mux.Handle("POST "+base, protected(http.HandlerFunc(h.Submit)))
	mux.Handle("POST "+base+"/cancel", protected(http.HandlerFunc(h.Cancel)))
	mux.Handle("POST "+base+"/{key}/edit", protected(http.HandlerFunc(h.StartEdit)))
	mux.Handle("DELETE "+base+"/{key}", protected(http.HandlerFunc(h.Delete)))
}

// announceNews pushes a newly stored news item to subscribers of the news
// topic. Failures are logged and never fail the admin request.
func announceNews(ctx context.Context, notifier notify.Sender, log *zap.Logger, item models.NewsItem) {
	err := notifier.Broadcast(ctx, notify.TopicNews, item.Text.En, item.Text.Hi, map[string]string{
		"type": "news",
		"id":   strconv.FormatInt(item.ID, 10),
		"date": item.Date,
	})
	if err != nil {
		log.Warn("news broadcast failed", zap.Int64("news_id", item.ID), zap.Error(err))
	}
}
