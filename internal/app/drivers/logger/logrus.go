package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger builds the CLI logger. It logs to w, which is stderr in
// practice so command output on stdout stays clean.
func NewLogrusLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !verbose,
		FullTimestamp:    verbose,
	})
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
