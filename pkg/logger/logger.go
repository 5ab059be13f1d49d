package logger

import (
	"strings"

	"github.com/hsdfat/go-zlog/logger"
	"go.uber.org/zap"
)

// Log is the global logger shared by the codec, the capture tools and the CLI.
var Log logger.LoggerI = logger.NewLogger()

func init() {
	l := Log.(*logger.Logger)
	l.SugaredLogger = l.SugaredLogger.WithOptions(zap.AddCallerSkip(1))
}

// SetLevel sets the global log level. Valid levels: "debug", "info",
// "warn", "error", "fatal". Anything else selects "info".
func SetLevel(level string) {
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case "debug", "info", "warn", "error", "fatal":
		logger.SetLevel(l)
	default:
		logger.SetLevel("info")
	}
}

// WithFields creates a new logger with contextual fields
// Example: logger.WithFields("file", "trace.pcap", "packet", 12)
func WithFields(args ...any) logger.LoggerI {
	return Log.With(args...).(logger.LoggerI)
}

// For returns a logger tagged with the component name.
func For(component string) logger.LoggerI {
	return WithFields("mod", component)
}
