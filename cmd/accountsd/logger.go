package main

import (
	"fmt"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-accounts"
)

// glogLogger exposes a named glog logger through the printf style
// accounts.Logger
type glogLogger struct {
	lgr glog.Logger
}

var _ accounts.Logger = glogLogger{}

func newLogger(debug bool) glogLogger {
	if debug {
		base := glog.NewLogger(
			glog.WithLoggerTypePretty(),
			glog.WithLevel(glog.Trace),
			glog.WithName("accountsd"),
			glog.WithAddSource(false),
			glog.WithRichErrorHandler(errors.ToSlogAttributes),
		)
		return glogLogger{lgr: base.GetLogger("accounts")}
	}

	base := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithName("accountsd"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)
	return glogLogger{lgr: base.GetLogger("accounts")}
}

func (l glogLogger) Debug(format string, args ...any) { l.lgr.Debug(fmt.Sprintf(format, args...)) }
func (l glogLogger) Info(format string, args ...any)  { l.lgr.Info(fmt.Sprintf(format, args...)) }
func (l glogLogger) Warn(format string, args ...any)  { l.lgr.Warn(fmt.Sprintf(format, args...)) }
func (l glogLogger) Error(format string, args ...any) { l.lgr.Error(fmt.Sprintf(format, args...)) }
