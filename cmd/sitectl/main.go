package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"rapv/site/internal/config"
	"rapv/site/internal/content"
	"rapv/site/internal/db"
	"rapv/site/internal/export"
	"rapv/site/internal/logging"
	"rapv/site/internal/models"
	"rapv/site/internal/store"
)

type cli struct {
	Migrate  migrateCmd  `cmd:"" help:"Apply pending database migrations."`
	Seed     seedCmd     `cmd:"" help:"Load default or file content into the database."`
	Export   exportCmd   `cmd:"" help:"Write exam results to an Excel workbook."`
	Settings settingsCmd `cmd:"" help:"Print the aggregated site settings as YAML."`
}

// app carries what every command needs.
type app struct {
	cfg config.Config
	log *zap.Logger
}

func main() {
	cfg := config.Load()
	logs, err := logging.Init(logging.Options{Level: cfg.LogLevel, Env: cfg.Env, Service: "sitectl", CLI: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "sitectl: init logger: %v\n", err)
		os.Exit(1)
	}
	defer logs.Closer()

	ctx := kong.Parse(&cli{},
		kong.Name("sitectl"),
		kong.Description("Operator tool for the school site database and content."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
		kong.Bind(&app{cfg: cfg, log: logs.Base}),
	)
	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func (a *app) open(ctx context.Context) (*sql.DB, *store.Store, error) {
	if !a.cfg.StoreConfigured() {
		return nil, nil, errors.New("sitectl: DATABASE_URL is required")
	}
	conn, err := db.Open(a.cfg.DatabaseURL, db.Pool{MaxOpen: 2, MaxIdle: 1})
	if err != nil {
		return nil, nil, fmt.Errorf("sitectl: open db: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("sitectl: ping db: %w", err)
	}
	return conn, store.New(conn, store.WithLogger(a.log)), nil
}

// loadSite reads the live content, or the built-in content when no database
// is configured.
func (a *app) loadSite(ctx context.Context) (*content.Site, func(), error) {
	opts := content.Options{Timeout: a.cfg.RemoteTimeout, Logger: a.log}
	closeFn := func() {}
	if a.cfg.StoreConfigured() {
		conn, st, err := a.open(ctx)
		if err != nil {
			return nil, nil, err
		}
		opts.Source = st
		closeFn = func() { conn.Close() }
	} else {
		seed, err := content.DefaultSeed()
		if err != nil {
			return nil, nil, err
		}
		opts.Fallback = seed
	}
	site := content.NewSite(opts)
	site.Load(ctx)
	return site, closeFn, nil
}

type migrateCmd struct{}

func (cmd *migrateCmd) Run(ctx context.Context, a *app) error {
	conn, _, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := db.Migrate(ctx, conn); err != nil {
		return err
	}
	a.log.Info("migrations applied")
	return nil
}

type seedCmd struct {
	File  string `type:"existingfile" help:"YAML content file (defaults to the built-in content)."`
	Force bool   `help:"Insert even into tables that already hold rows."`
}

func (cmd *seedCmd) Run(ctx context.Context, a *app) error {
	seed, err := cmd.load()
	if err != nil {
		return err
	}
	conn, st, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	repos := content.Repositories{
		Events:     st.Events(),
		Staff:      st.Staff(),
		News:       st.News(),
		Results:    st.Results(),
		Facilities: st.Facilities(),
	}
	report, err := content.ApplySeed(ctx, st, repos, seed, cmd.Force, a.log)
	if err != nil {
		return err
	}
	return yaml.NewEncoder(os.Stdout).Encode(report)
}

func (cmd *seedCmd) load() (*content.SeedContent, error) {
	if cmd.File == "" {
		return content.DefaultSeed()
	}
	data, err := os.ReadFile(cmd.File)
	if err != nil {
		return nil, fmt.Errorf("sitectl: read seed: %w", err)
	}
	return content.ParseSeed(data)
}

type exportCmd struct {
	Out  string `help:"Output path (defaults to a name derived from the school name)."`
	Lang string `default:"en" enum:"en,hi" help:"Header language."`
}

func (cmd *exportCmd) Run(ctx context.Context, a *app) error {
	site, closeFn, err := a.loadSite(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	snap := site.Snapshot()
	workbook, err := export.NewResultsWorkbook(snap.Results, models.ParseLanguage(cmd.Lang))
	if err != nil {
		return err
	}
	defer workbook.Close()

	out := cmd.Out
	if out == "" {
		out = export.ResultsFilename(snap.Config.SchoolName.En, time.Now())
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("sitectl: create %s: %w", out, err)
	}
	if _, err := workbook.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("sitectl: write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %d years to %s\n", len(snap.Results), out)
	return nil
}

type settingsCmd struct{}

func (cmd *settingsCmd) Run(ctx context.Context, a *app) error {
	site, closeFn, err := a.loadSite(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return yaml.NewEncoder(os.Stdout).Encode(site.Config())
}
