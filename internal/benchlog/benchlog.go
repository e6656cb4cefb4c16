// SPDX-License-Identifier: EPL-2.0

// Package benchlog is a progress log with nested timing clocks, used to
// report long file operations.
//
// A Log is owned by a single operation and is not safe for concurrent use.
// A Log created with a nil writer discards everything but still keeps time.
package benchlog

import (
	"io"
	stdlog "log"
	"time"
)

type Log struct {
	logger *stdlog.Logger
	clocks []time.Time
	now    func() time.Time
}

// New returns a Log writing to w. w may be nil.
func New(w io.Writer) *Log {
	l := &Log{now: time.Now}
	if w != nil {
		l.logger = stdlog.New(w, "", 0)
	}
	return l
}

// Printf writes one line to the log.
func (l *Log) Printf(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Printf(format, args...)
}

// Start pushes a new clock and returns its index.
func (l *Log) Start() int {
	l.clocks = append(l.clocks, l.now())
	return len(l.clocks) - 1
}

// End pops the most recent clock and returns the time since it started.
// Clocks nest: Start, Start, End, End measures inner then outer.
// End without a running clock returns 0.
func (l *Log) End() time.Duration {
	if len(l.clocks) == 0 {
		return 0
	}
	last := l.clocks[len(l.clocks)-1]
	l.clocks = l.clocks[:len(l.clocks)-1]
	return l.now().Sub(last)
}

// Elapsed reports the time on clock index without stopping it.
func (l *Log) Elapsed(index int) time.Duration {
	if index < 0 || index >= len(l.clocks) {
		return 0
	}
	return l.now().Sub(l.clocks[index])
}

// Done ends the current clock and logs msg followed by the elapsed seconds.
func (l *Log) Done(msg string) time.Duration {
	d := l.End()
	l.Printf("%s (%.2fs)", msg, d.Seconds())
	return d
}

// Timed logs msg, runs fn on its own clock and logs the elapsed time
// whether or not fn fails. The error of fn is returned unchanged.
func (l *Log) Timed(msg string, fn func() error) error {
	l.Start()
	if msg != "" {
		l.Printf("%s", msg)
	}
	err := fn()
	if err != nil {
		l.Done("failed")
		return err
	}
	l.Done("done")
	return nil
}
