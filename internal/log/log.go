// Package log provides the small leveled logger used by the drivers.
package log

import (
	"fmt"
	"io"
	stdlog "log"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logger struct {
	out   *stdlog.Logger
	debug bool
}

// New returns a Logger writing to w. Debug lines are dropped unless debug
// is set.
func New(w io.Writer, debug bool) Logger {
	return &logger{out: stdlog.New(w, "", 0), debug: debug}
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.out.Output(2, "[INFO]\t"+fmt.Sprintf(format, args...))
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.out.Output(2, "[ERROR]\t"+fmt.Sprintf(format, args...))
}

func (l *logger) Debugf(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.out.Output(2, "[DEBUG]\t"+fmt.Sprintf(format, args...))
}
