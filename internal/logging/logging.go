package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Init configures the standard logrus logger and returns it.
// level is one of debug, info, warn, error; format is text or json.
func Init(level, format string) *log.Logger {
	return Configure(log.StandardLogger(), os.Stdout, level, format)
}

// Configure applies level, format and output to l
func Configure(l *log.Logger, out io.Writer, level, format string) *log.Logger {
	l.SetOutput(out)
	l.SetLevel(parseLevel(level))

	switch strings.ToLower(format) {
	case "json":
		l.SetFormatter(&log.JSONFormatter{})
	default:
		l.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})
	}
	return l
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
