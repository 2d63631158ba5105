package util

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the logger that is handed down to every component of a run.
func NewLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	return log, nil
}

// Target returns an entry tagged with the subsystem that is logging.
func Target(log logrus.FieldLogger, target string) *logrus.Entry {
	return log.WithField("target", target)
}
