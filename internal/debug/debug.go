// Package debug provides the process-wide debug logger. Output goes to
// stderr through zap and is silent unless debug mode is enabled.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level   = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	noColor bool
	output  io.Writer = os.Stderr

	mu     sync.RWMutex
	logger *zap.SugaredLogger
)

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	if enable {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.InfoLevel)
	}
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	return level.Enabled(zapcore.DebugLevel)
}

// SetNoColor enables or disables colored level names
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
	logger = nil
}

// SetOutput redirects log output. Passing nil restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
	logger = nil
}

// Logger returns the shared sugared logger, building it on first use.
func Logger() *zap.SugaredLogger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = newLogger(output, noColor)
	}
	return logger
}

func newLogger(w io.Writer, plain bool) *zap.SugaredLogger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if plain {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	encCfg.CallerKey = ""
	encCfg.StacktraceKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).Sugar()
}

// Debug logs a formatted debug message
func Debug(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	Logger().Debugf(format, args...)
}

// DebugSection logs a section header
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}
	Logger().Debug(fmt.Sprintf("=== %s ===", section))
}

// DebugValue logs key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	Logger().Debugf("%s = %v", key, value)
}

// DebugJSON logs structured data as indented JSON
func DebugJSON(key string, v interface{}) {
	if !IsEnabled() {
		return
	}

	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Debug("Failed to marshal %s to JSON: %v", key, err)
		return
	}
	Logger().Debugf("%s:\n%s", key, string(jsonBytes))
}

// Sync flushes buffered log entries.
func Sync() {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		_ = l.Sync()
	}
}
