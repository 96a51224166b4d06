// Package logging builds the logrus logger shared by the binaries.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns an entry tagged with the service name. Unknown levels fall back to info.
func New(level, format, service string) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l.WithField("service", service)
}
