package main

import (
	"io"

	logger "github.com/sirupsen/logrus"
)

// UTCFormatter formats log entries with their timestamps in UTC.
type UTCFormatter struct {
	logger.Formatter
}

// Format implements logger.Formatter.
func (u UTCFormatter) Format(e *logger.Entry) ([]byte, error) {
	e.Time = e.Time.UTC()
	return u.Formatter.Format(e)
}

// setupLogging configures the standard logger, which the conversion engine
// also logs through.
func setupLogging(level string, out io.Writer) error {
	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	customFormatter := new(logger.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05.000"
	customFormatter.FullTimestamp = true
	logger.SetFormatter(UTCFormatter{customFormatter})
	return nil
}
