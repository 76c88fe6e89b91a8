package logging

import (
	"errors"
	"fmt"
	"strings"
)

// Logger writes structured entries tagged with a category and sub-category.
// The f-variants are for startup and fatal paths where there is no useful
// extra context.
type Logger interface {
	Init()

	Debug(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Debugf(template string, args ...any)

	Info(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Infof(template string, args ...any)

	Warn(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Warnf(template string, args ...any)

	Error(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Errorf(template string, args ...any)

	Fatal(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Fatalf(template string, args ...any)

	Sync() error
}

type Backend string

const (
	BackendZap     Backend = "zap"
	BackendZerolog Backend = "zerolog"
)

var ErrUnsupportedBackend = errors.New("unsupported logger backend")

type LoggerConfig struct {
	AppName string
	// FilePath is a directory prefix for rotated log files. Empty logs to
	// stdout only.
	FilePath string
	Encoding string // json | console
	Level    string
	Logger   string
}

func (c LoggerConfig) withDefaults() *LoggerConfig {
	if c.AppName == "" {
		c.AppName = "roomly"
	}
	if c.Encoding == "" {
		c.Encoding = "json"
	}
	c.Level = strings.ToLower(c.Level)
	if c.Level == "" {
		c.Level = "debug"
	}
	if c.Logger == "" {
		c.Logger = string(BackendZap)
	}
	return &c
}

// NewLogger builds the backend named by cfg.Logger.
func NewLogger(cfg *LoggerConfig) (Logger, error) {
	if cfg == nil {
		cfg = &LoggerConfig{}
	}
	resolved := cfg.withDefaults()

	switch Backend(resolved.Logger) {
	case BackendZap:
		return newZapLogger(resolved), nil
	case BackendZerolog:
		return newZeroLogger(resolved), nil
	}

	return nil, fmt.Errorf("%w %q: use %s or %s", ErrUnsupportedBackend, resolved.Logger, BackendZap, BackendZerolog)
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return newNopZapLogger()
}
