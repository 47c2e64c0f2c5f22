package logger

import (
	"os"
	"sync/atomic"
)

var defLogger atomic.Pointer[Logger]

func init() {
	var l Logger = NewSlog(os.Stderr, WarnLevel, false)
	defLogger.Store(&l)
}

// GetLogger returns the process-wide default logger.
func GetLogger() Logger {
	return *defLogger.Load()
}

// SetLogger replaces the process-wide default logger. A nil logger is ignored.
func SetLogger(l Logger) {
	if l == nil {
		return
	}
	defLogger.Store(&l)
}

// SetLevel sets the minimum level of the default logger.
func SetLevel(level LogLevel) {
	GetLogger().SetLevel(level)
}

func Debug(msg string, keysAndValues ...any) {
	GetLogger().Debug(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	GetLogger().Info(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	GetLogger().Warn(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	GetLogger().Error(msg, keysAndValues...)
}
