// Package warn is the injected warning/error channel the core reports
// degradations through: geometry degeneracies, connectivity
// anomalies, and schema warnings never abort the import — they are
// reported here and the core degrades gracefully.
package warn

import "github.com/sirupsen/logrus"

// Sink is the collaborator the core reports non-fatal problems to. A
// single malformed road must not abort network construction, so every
// subsystem takes a Sink instead of returning an error for these cases.
type Sink interface {
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// logrusSink is the default Sink, built on the logrus.WithField("module",
// ...) logging convention used throughout the core.
type logrusSink struct {
	log *logrus.Entry
}

// NewLogrusSink returns a Sink backed by logrus, tagged with the given
// module name.
func NewLogrusSink(module string) Sink {
	return &logrusSink{log: logrus.WithField("module", module)}
}

func (s *logrusSink) Warnf(format string, args ...any) {
	s.log.Warnf(format, args...)
}

func (s *logrusSink) Errorf(format string, args ...any) {
	s.log.Errorf(format, args...)
}

// Collecting is a Sink that records every message instead of (or in
// addition to) logging it; tests use it to assert on specific warnings,
// such as a circular-connection or a geometry-degeneracy message.
type Collecting struct {
	Warnings []string
	Errors   []string
	inner    Sink
}

// NewCollecting returns a Collecting sink that also forwards to inner if
// inner is non-nil.
func NewCollecting(inner Sink) *Collecting {
	return &Collecting{inner: inner}
}

func (c *Collecting) Warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, sprintf(format, args...))
	if c.inner != nil {
		c.inner.Warnf(format, args...)
	}
}

func (c *Collecting) Errorf(format string, args ...any) {
	c.Errors = append(c.Errors, sprintf(format, args...))
	if c.inner != nil {
		c.inner.Errorf(format, args...)
	}
}
