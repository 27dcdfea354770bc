// Copyright 2026 The netfilters Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log provides a structured logger backed by zap.
//
// The command line tools write their data to standard output, so the logger
// only ever writes to standard error (or the writer passed to Setup). Context
// is passed as alternating key value pairs:
//
//	log.FromCtx(ctx).Debug("Read networks", "file", path, "count", n)
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/netfilters/netfilters/pkg/private/serrors"
)

// Level is the log level.
type Level zapcore.Level

// The different log levels.
const (
	DebugLevel = Level(zapcore.DebugLevel)
	InfoLevel  = Level(zapcore.InfoLevel)
	ErrorLevel = Level(zapcore.ErrorLevel)
)

// ParseLevel parses the textual representation of a level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return ErrorLevel, serrors.New("unknown log level", "level", s)
	}
}

func (l Level) String() string {
	return zapcore.Level(l).String()
}

// Logger describes the logger interface.
type Logger interface {
	New(ctx ...any) Logger
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Enabled(lvl Level) bool
}

// Config is the logging configuration.
type Config struct {
	// Console is the configuration for the console logger.
	Console ConsoleConfig
}

// ConsoleConfig is the configuration of the console logger.
type ConsoleConfig struct {
	// Level of the console logger. Defaults to error.
	Level string
	// Format of the output, either "human" or "json". Defaults to human.
	Format string
}

// InitDefaults populates unset fields in cfg with default values.
func (c *Config) InitDefaults() {
	if c.Console.Level == "" {
		c.Console.Level = ErrorLevel.String()
	}
	if c.Console.Format == "" {
		c.Console.Format = "human"
	}
}

// Option modifies how the logger is set up.
type Option func(*options)

type options struct {
	output io.Writer
}

// WithOutput sets the writer the logs are written to. Defaults to os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// Setup configures the global logger according to cfg.
func Setup(cfg Config, opts ...Option) error {
	cfg.InitDefaults()
	o := options{output: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}
	lvl, err := ParseLevel(cfg.Console.Level)
	if err != nil {
		return err
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	var enc zapcore.Encoder
	switch cfg.Console.Format {
	case "human":
		if isTerminal(o.output) {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return serrors.New("unknown log format", "format", cfg.Console.Format)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(o.output), zapcore.Level(lvl))
	zap.ReplaceGlobals(zap.New(core))
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// Flush writes buffered logs, if any.
func Flush() {
	// Syncing a console is not supported on every platform; there is nothing
	// useful to do with the error.
	_ = zap.L().Sync()
}

// Discard sets the logger up to discard all log entries. This is useful for
// testing.
func Discard() {
	zap.ReplaceGlobals(zap.NewNop())
}

type logger struct {
	logger *zap.Logger
}

// Root returns the root logger. It's a logger without any context.
func Root() Logger {
	return &logger{logger: zap.L()}
}

func (l *logger) New(ctx ...any) Logger {
	return &logger{logger: l.logger.With(convertCtx(ctx)...)}
}

func (l *logger) Debug(msg string, ctx ...any) {
	l.logger.Debug(msg, convertCtx(ctx)...)
}

func (l *logger) Info(msg string, ctx ...any) {
	l.logger.Info(msg, convertCtx(ctx)...)
}

func (l *logger) Enabled(lvl Level) bool {
	return l.logger.Core().Enabled(zapcore.Level(lvl))
}

func convertCtx(ctx []any) []zap.Field {
	fields := make([]zap.Field, 0, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			key = fmt.Sprint(ctx[i])
		}
		fields = append(fields, zap.Any(key, ctx[i+1]))
	}
	return fields
}
