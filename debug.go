package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	debugEnabled bool
	debugMu      sync.Mutex
	debugFile    *os.File
)

func EnableDebugLogging(enabled bool) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debugEnabled = enabled
	if !enabled && debugFile != nil {
		_ = debugFile.Close()
		debugFile = nil
	}
}

func debugLogPath() string {
	if path := strings.TrimSpace(os.Getenv("HEYTMLBOY_DEBUG_LOG")); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), "heytmlboy-debug.log")
}

// DebugLogf appends one line per call; newlines in the message are flattened.
func DebugLogf(format string, args ...any) {
	debugMu.Lock()
	defer debugMu.Unlock()
	if !debugEnabled {
		return
	}
	if debugFile == nil {
		file, err := os.OpenFile(debugLogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		debugFile = file
	}
	timestamp := time.Now().Format(time.RFC3339)
	message := fmt.Sprintf(format, args...)
	message = strings.ReplaceAll(message, "\n", " ")
	_, _ = fmt.Fprintf(debugFile, "%s %s\n", timestamp, message)
}
