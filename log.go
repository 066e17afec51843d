package cubetower

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package default. Board instances may carry their own.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "cubetower",
	Level:  log.InfoLevel,
})

// SetLogger replaces the package logger. nil is ignored.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Logger returns the package logger.
func Logger() *log.Logger {
	return logger
}

// SetDebugMode switches the package logger between info and debug level.
func SetDebugMode(enabled bool) {
	if enabled {
		logger.SetLevel(log.DebugLevel)
		return
	}
	logger.SetLevel(log.InfoLevel)
}
