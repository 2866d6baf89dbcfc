package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

const applicationName = "school-site"

var ErrNoDatabaseURL = errors.New("db: database url is empty")

// Pool sizes the connection pool. Zero fields fall back to DefaultPool.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

// DefaultPool suits a single web process serving a small school site.
func DefaultPool() Pool {
	return Pool{
		MaxOpen:     10,
		MaxIdle:     5,
		MaxLifetime: 30 * time.Minute,
		MaxIdleTime: 5 * time.Minute,
	}
}

func (p Pool) withDefaults() Pool {
	def := DefaultPool()
	if p.MaxOpen <= 0 {
		p.MaxOpen = def.MaxOpen
	}
	if p.MaxIdle <= 0 {
		p.MaxIdle = def.MaxIdle
	}
	if p.MaxIdle > p.MaxOpen {
		p.MaxIdle = p.MaxOpen
	}
	if p.MaxLifetime <= 0 {
		p.MaxLifetime = def.MaxLifetime
	}
	if p.MaxIdleTime <= 0 {
		p.MaxIdleTime = def.MaxIdleTime
	}
	return p
}

// Open parses databaseURL and returns a lazily connecting pool tagged with
// the site's application_name, so its sessions are easy to spot in
// pg_stat_activity.
func Open(databaseURL string, pool Pool) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, ErrNoDatabaseURL
	}
	connConfig, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: parse url: %w", err)
	}
	if connConfig.RuntimeParams["application_name"] == "" {
		connConfig.RuntimeParams["application_name"] = applicationName
	}

	pool = pool.withDefaults()
	conn := stdlib.OpenDB(*connConfig)
	conn.SetMaxOpenConns(pool.MaxOpen)
	conn.SetMaxIdleConns(pool.MaxIdle)
	conn.SetConnMaxLifetime(pool.MaxLifetime)
	conn.SetConnMaxIdleTime(pool.MaxIdleTime)
	return conn, nil
}
