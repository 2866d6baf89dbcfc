package observability

import (
	"context"
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
)

const service = "school-site"

// SentryConfig selects where errors are reported. An empty DSN disables
// reporting.
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
}

// InitSentry installs the global client and returns a flush func to defer.
func InitSentry(cfg SentryConfig) (func(), error) {
	if cfg.DSN == "" {
		return func() {}, nil
	}
	if err := sentry.Init(clientOptions(cfg)); err != nil {
		return func() {}, err
	}
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("service", service)
	})
	return func() { sentry.Flush(2 * time.Second) }, nil
}

func clientOptions(cfg SentryConfig) sentry.ClientOptions {
	return sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		AttachStacktrace: true,
		BeforeSend:       dropCanceled,
	}
}

// dropCanceled discards errors caused by a visitor or admin going away
// mid-request.
func dropCanceled(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
	if hint != nil && errors.Is(hint.OriginalException, context.Canceled) {
		return nil
	}
	return event
}

func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}

// CaptureWriteFailure reports a rolled-back remote write, tagged with the
// collection and operation so failures group per table.
func CaptureWriteFailure(entity, op string, err error) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("entity", entity)
		scope.SetTag("op", op)
		scope.SetLevel(sentry.LevelWarning)
		sentry.CaptureException(err)
	})
}
