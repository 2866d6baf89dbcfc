package content

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"rapv/site/internal/metrics"
	"rapv/site/internal/models"
	"rapv/site/internal/observability"
)

const tableSettings = "settings"

// Source is the read side of the remote content store plus the settings
// upsert. *store.Store satisfies it.
type Source interface {
	ListSettings(ctx context.Context) ([]models.Setting, error)
	ListEvents(ctx context.Context) ([]models.EventItem, error)
	ListStaff(ctx context.Context) ([]models.StaffMember, error)
	ListNews(ctx context.Context) ([]models.NewsItem, error)
	ListResults(ctx context.Context) ([]models.YearResult, error)
	ListFacilities(ctx context.Context) ([]models.Facility, error)
	UpsertSettings(ctx context.Context, settings []models.Setting) error
}

type Options struct {
	// Source is nil when no remote store is configured.
	Source Source
	Repos  Repositories
	// Fallback is installed by Load when Source is nil.
	Fallback *SeedContent
	Defaults *models.SiteConfig
	Timeout  time.Duration
	Logger   *zap.Logger
	Now      func() time.Time
	IDs      *IDClock
}

// Site owns the site configuration and the entity editors and hands out
// read-only snapshots of them.
type Site struct {
	source   Source
	fallback *SeedContent
	defaults models.SiteConfig
	timeout  time.Duration
	log      *zap.Logger
	now      func() time.Time
	editors  Editors

	mu       sync.RWMutex
	config   models.SiteConfig
	loadedAt time.Time

	saveMu  sync.Mutex
	refresh singleflight.Group
}

func NewSite(opts Options) *Site {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	defaults := DefaultSiteConfig()
	if opts.Defaults != nil {
		defaults = *opts.Defaults
	}
	ids := opts.IDs
	if ids == nil {
		ids = NewIDClock(now)
	}
	return &Site{
		source:   opts.Source,
		fallback: opts.Fallback,
		defaults: defaults,
		timeout:  opts.Timeout,
		log:      log,
		now:      now,
		editors:  NewEditors(opts.Repos, ids, opts.Timeout, log),
		config:   cloneConfig(defaults),
	}
}

func (s *Site) Editors() Editors { return s.editors }

// Configured reports whether a remote store is wired.
func (s *Site) Configured() bool { return s.source != nil }

func (s *Site) Config() models.SiteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneConfig(s.config)
}

// Load performs the initial read of every table. A table that cannot be
// read starts out empty.
func (s *Site) Load(ctx context.Context) {
	if s.source == nil {
		s.installFallback()
		return
	}
	s.load(ctx, false)
}

// Refresh re-reads every table, keeping the current data for tables that
// fail. Concurrent callers share one pass.
func (s *Site) Refresh(ctx context.Context) error {
	if s.source == nil {
		return nil
	}
	_, err, _ := s.refresh.Do("refresh", func() (any, error) {
		s.load(ctx, true)
		return nil, ctx.Err()
	})
	return err
}

func (s *Site) load(ctx context.Context, keepOnFailure bool) {
	start := s.now()

	if rows, ok := readTable(ctx, s, tableSettings, s.source.ListSettings); ok {
		cfg, warnings := LoadSiteConfig(s.defaults, rows)
		for _, warning := range warnings {
			s.log.Warn("malformed setting ignored", zap.String("detail", warning))
		}
		s.setConfig(cfg)
	} else if !keepOnFailure {
		s.setConfig(s.defaults)
	}

	if items, ok := readTable(ctx, s, EntityEvents, s.source.ListEvents); ok || !keepOnFailure {
		s.editors.Events.Replace(items)
	}
	if items, ok := readTable(ctx, s, EntityResults, s.source.ListResults); ok || !keepOnFailure {
		s.editors.Results.Replace(items)
	}
	if items, ok := readTable(ctx, s, EntityStaff, s.source.ListStaff); ok || !keepOnFailure {
		s.editors.Staff.Replace(items)
	}
	if items, ok := readTable(ctx, s, EntityNews, s.source.ListNews); ok || !keepOnFailure {
		s.editors.News.Replace(items)
	}
	if items, ok := readTable(ctx, s, EntityFacilities, s.source.ListFacilities); ok || !keepOnFailure {
		models.AssignIcons(items)
		s.editors.Facilities.Replace(items)
	}

	s.mu.Lock()
	s.loadedAt = s.now()
	s.mu.Unlock()
	s.log.Info("site content loaded", zap.Bool("refresh", keepOnFailure), zap.Duration("took", s.now().Sub(start)))
}

func readTable[T any](ctx context.Context, s *Site, table string, list func(context.Context) ([]T, error)) ([]T, bool) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	items, err := list(ctx)
	if err != nil {
		metrics.RemoteReadFailures.WithLabelValues(table).Inc()
		s.log.Warn("remote read failed", zap.String("table", table), zap.Error(err))
		return nil, false
	}
	return items, true
}

func (s *Site) installFallback() {
	if s.fallback != nil {
		s.setConfig(s.fallback.SiteConfig(s.defaults))
		s.editors.Events.Replace(s.fallback.Events)
		s.editors.Results.Replace(s.fallback.Results)
		s.editors.Staff.Replace(s.fallback.Staff)
		s.editors.News.Replace(s.fallback.News)
		facilities := append([]models.Facility{}, s.fallback.Facilities...)
		models.AssignIcons(facilities)
		s.editors.Facilities.Replace(facilities)
	}
	s.mu.Lock()
	s.loadedAt = s.now()
	s.mu.Unlock()
	s.log.Warn("remote store not configured, serving local content only")
}

// SaveConfig persists cfg as settings rows and applies it locally only once
// the write succeeded.
func (s *Site) SaveConfig(ctx context.Context, cfg models.SiteConfig) (Result[models.SiteConfig], error) {
	if err := validateSiteConfig(cfg); err != nil {
		return Result[models.SiteConfig]{Op: OpUpdate, Record: cfg}, err
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if s.source == nil {
		s.setConfig(cfg)
		return Result[models.SiteConfig]{Op: OpUpdate, Record: cfg, LocalOnly: true}, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.source.UpsertSettings(ctx, FlattenSiteConfig(cfg)); err != nil {
		metrics.RemoteWriteFailures.WithLabelValues(tableSettings, string(OpUpdate)).Inc()
		remoteErr := &RemoteError{Entity: tableSettings, Op: OpUpdate, Err: err}
		observability.CaptureWriteFailure(tableSettings, string(OpUpdate), remoteErr)
		s.log.Warn("settings upsert failed", zap.Error(err))
		return Result[models.SiteConfig]{Op: OpUpdate, Record: s.Config(), RolledBack: true}, remoteErr
	}
	s.setConfig(cfg)
	return Result[models.SiteConfig]{Op: OpUpdate, Record: cfg}, nil
}

// Snapshot returns a copy of the whole site state.
func (s *Site) Snapshot() models.Snapshot {
	s.mu.RLock()
	cfg := cloneConfig(s.config)
	loadedAt := s.loadedAt
	s.mu.RUnlock()

	return models.Snapshot{
		Config:     cfg,
		Events:     s.editors.Events.Items(),
		Results:    s.editors.Results.Items(),
		Staff:      s.editors.Staff.Items(),
		News:       s.editors.News.Items(),
		Facilities: s.editors.Facilities.Items(),
		LoadedAt:   loadedAt,
	}
}

func (s *Site) setConfig(cfg models.SiteConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cloneConfig(cfg)
}

func (s *Site) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func cloneConfig(cfg models.SiteConfig) models.SiteConfig {
	cfg.HeroImages = append([]string{}, cfg.HeroImages...)
	return cfg
}
