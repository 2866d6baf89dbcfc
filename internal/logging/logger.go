package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options describe which process is logging. The web server and sitectl
// share one format so their lines can be grepped together.
type Options struct {
	Level   string
	Env     string
	Service string
	Release string
	// CLI sends every line to stderr so command output on stdout stays
	// machine-readable.
	CLI bool
}

type Log struct {
	Base   *zap.Logger
	Level  zap.AtomicLevel
	Closer func()
}

func Init(opts Options) (*Log, error) {
	cfg := buildConfig(opts)
	base, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return nil, err
	}
	fields := []zap.Field{zap.String("service", opts.Service)}
	if opts.Release != "" {
		fields = append(fields, zap.String("release", opts.Release))
	}
	base = base.With(fields...)
	return &Log{
		Base:   base,
		Level:  cfg.Level,
		Closer: func() { _ = base.Sync() },
	}, nil
}

func buildConfig(opts Options) zap.Config {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(strings.ToLower(opts.Level))); err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	var cfg zap.Config
	if production(opts.Env) {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if opts.CLI {
		cfg.Encoding = "console"
		cfg.OutputPaths = []string{"stderr"}
		cfg.DisableStacktrace = true
	}
	return cfg
}

func production(env string) bool {
	switch strings.ToLower(env) {
	case "prod", "production":
		return true
	}
	return false
}
