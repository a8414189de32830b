// logger.go - Structured logging for the catalog backend

package logger // Declares the package name

import ( // Import required packages
	"io"   // Output destination
	"os"   // Default output (stdout)
	"sync" // Guards the default logger

	charmlog "github.com/charmbracelet/log" // Structured logger
)

// Config - Logging options loaded from the environment
type Config struct {
	Level  string    // debug, info, warn or error
	JSON   bool      // JSON output instead of text
	Output io.Writer // Where to write (stdout when nil)
}

var ( // Package-level default logger
	mu            sync.RWMutex
	defaultLogger = New(Config{})
)

// New - Builds a charm logger from the given config
func New(cfg Config) *charmlog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	level, err := charmlog.ParseLevel(cfg.Level)
	if err != nil { // Unknown or empty level falls back to info
		level = charmlog.InfoLevel
	}
	l := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           level,
	})
	if cfg.JSON {
		l.SetFormatter(charmlog.JSONFormatter)
	}
	return l
}

// Init - Replaces the default logger
func Init(cfg Config) {
	l := New(cfg)
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
}

// Default - Returns the current default logger
func Default() *charmlog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// With - Returns a child of the default logger with extra key/value pairs
func With(keyvals ...any) *charmlog.Logger {
	return Default().With(keyvals...)
}

func Debug(msg string, keyvals ...any) { Default().Debug(msg, keyvals...) }

func Info(msg string, keyvals ...any) { Default().Info(msg, keyvals...) }

func Warn(msg string, keyvals ...any) { Default().Warn(msg, keyvals...) }

func Error(msg string, keyvals ...any) { Default().Error(msg, keyvals...) }
