package logger

import (
	"strings"
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a singleton console logger configured with the provided level.
// The first call initializes the logger; subsequent calls ignore the level
// and return the already initialized instance.
func Get(level string) *Logger {
	return Init(level, FormatConsole)
}

// Init is Get with an explicit encoding. Only the first call has any effect.
func Init(level, format string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(normalize(level), normalize(format))
	})
	return globalLogger
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
