// Package logging configures the logrus logger shared by the survey commands.
package logging

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger to write to out at the named level.
// verbose forces the debug level regardless of level.
func Setup(level string, verbose bool, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.StandardLogger()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
		return logger, nil
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logger, errors.Wrapf(err, "log level")
	}
	logger.SetLevel(parsed)
	return logger, nil
}

// Discard returns a logger that drops everything, for tests.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
