package vantage

import (
	"os"
	"time"

	charm "github.com/charmbracelet/log"
)

type Logger interface {
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger wraps charmbracelet/log with the small interface the
// engine modules depend on.
type DefaultLogger struct {
	inner *charm.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	l := charm.NewWithOptions(os.Stderr, charm.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          prefix,
	})
	if debug {
		l.SetLevel(charm.DebugLevel)
	}
	return &DefaultLogger{inner: l}
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	if enabled {
		l.inner.SetLevel(charm.DebugLevel)
	} else {
		l.inner.SetLevel(charm.InfoLevel)
	}
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.inner.Debugf(format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.inner.Infof(format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.inner.Warnf(format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.inner.Errorf(format, args...) }

// LoggingModule installs a default logger as a resource.
type LoggingModule struct {
	Prefix string
	Debug  bool
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	app.addResources(NewDefaultLogger(m.Prefix, m.Debug))
}

type nopLogger struct{}

func NewNopLogger() Logger { return &nopLogger{} }

func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// Logger returns the first Logger resource if present, otherwise a
// no-op logger. Never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
