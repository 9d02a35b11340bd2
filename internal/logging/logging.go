// Package logging routes the process log to stdout and an optional log file.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

var (
	mu      sync.Mutex
	logFile *os.File
	debug   atomic.Bool
)

// Init sends the standard logger to stdout and, when logPath is set, appends to that
// file as well. It may be called again to switch files.
func Init(logPath string, debugEnabled bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	debug.Store(debugEnabled)

	writers := []io.Writer{os.Stdout}
	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close restores stderr output and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// SetDebug toggles debug output.
func SetDebug(enabled bool) { debug.Store(enabled) }

// DebugEnabled reports whether Debugf writes anything.
func DebugEnabled() bool { return debug.Load() }

// Debugf logs only when debug output is enabled.
func Debugf(format string, args ...any) {
	if !debug.Load() {
		return
	}
	log.Println("DEBUG: " + fmt.Sprintf(format, args...))
}

// Infof logs an informational line.
func Infof(format string, args ...any) {
	log.Println("INFO: " + fmt.Sprintf(format, args...))
}

// Warnf logs a warning.
func Warnf(format string, args ...any) {
	log.Println("WARN: " + fmt.Sprintf(format, args...))
}

// Errorf logs an error.
func Errorf(format string, args ...any) {
	log.Println("ERROR: " + fmt.Sprintf(format, args...))
}

// Payload renders v for a log line.
func Payload(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		if val == "" {
			return `""`
		}
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}
