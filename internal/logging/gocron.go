package logging

import (
	"context"

	"github.com/go-co-op/gocron/v2"
)

// gocronLogger routes scheduler logs through a Logger.
type gocronLogger struct {
	l Logger
}

// NewGocronLogger returns a gocron.Logger backed by l.
//
//nolint:ireturn // gocron's option takes the interface
func NewGocronLogger(l Logger) gocron.Logger {
	return &gocronLogger{l: l.With("component", "scheduler")}
}

func (g *gocronLogger) Debug(msg string, args ...any) { g.l.Debug(context.Background(), msg, args...) }
func (g *gocronLogger) Info(msg string, args ...any)  { g.l.Info(context.Background(), msg, args...) }
func (g *gocronLogger) Warn(msg string, args ...any)  { g.l.Warn(context.Background(), msg, args...) }
func (g *gocronLogger) Error(msg string, args ...any) { g.l.Error(context.Background(), msg, args...) }
