package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a JSON logger writing timestamp/severity/message records.
// An unparseable level falls back to info.
func New(level string, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stdout
	}

	log := logrus.New()
	log.Out = out
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.Level = logrus.InfoLevel
		log.WithField("level", level).Warn("unknown log level, using info")
		return log
	}
	log.Level = lvl
	return log
}
