package actionlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel defines the logging verbosity.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ActionType names the tool operation being logged.
type ActionType string

const (
	ActionScanWindows  ActionType = "SCAN-WINDOWS"
	ActionScanMonitors ActionType = "SCAN-MONITORS"
	ActionSetBounds    ActionType = "SET-BOUNDS"
	ActionForeground   ActionType = "FOREGROUND"
	ActionLayoutGuide  ActionType = "LAYOUT-GUIDE"
	ActionSaveLayout   ActionType = "WORKSPACE-SAVE"
	ActionRestore      ActionType = "WORKSPACE-RESTORE"
)

// actionLevel returns the log level for an action. Entries carrying an
// "error" detail are raised to LevelWarn.
func actionLevel(action ActionType, details map[string]interface{}) LogLevel {
	if _, failed := details["error"]; failed {
		return LevelWarn
	}
	switch action {
	case ActionScanWindows, ActionScanMonitors, ActionLayoutGuide:
		return LevelDebug
	case ActionSetBounds, ActionForeground, ActionSaveLayout, ActionRestore:
		return LevelInfo
	default:
		return LevelInfo
	}
}

// Config holds configuration for the action logger.
type Config struct {
	Enabled       bool
	Level         LogLevel
	FilePath      string
	MaxSizeMB     int
	MaxFiles      int
	PreviewLength int
}

// Logger appends action entries to a size-rotated file.
type Logger struct {
	mu          sync.Mutex
	file        *os.File
	config      Config
	currentSize int64
	now         func() time.Time
}

// NewLogger creates a new logger with the given configuration.
func NewLogger(cfg Config) (*Logger, error) {
	if !cfg.Enabled {
		return &Logger{config: cfg, now: time.Now}, nil
	}

	dir := filepath.Dir(cfg.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", cfg.FilePath, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	return &Logger{
		file:        f,
		config:      cfg,
		currentSize: stat.Size(),
		now:         time.Now,
	}, nil
}

// Log records an action. A nil or disabled logger discards the entry.
func (l *Logger) Log(action ActionType, details map[string]interface{}) {
	if l == nil || !l.config.Enabled {
		return
	}
	if actionLevel(action, details) < l.config.Level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}

	maxBytes := int64(l.config.MaxSizeMB) * 1024 * 1024
	if maxBytes > 0 && l.currentSize >= maxBytes {
		if err := l.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
		}
		if l.file == nil {
			return
		}
	}

	entry := formatEntry(l.now(), action, details)
	n, err := l.file.WriteString(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log entry: %v\n", err)
		return
	}
	l.currentSize += int64(n)
}

// Preview truncates text to the configured preview length.
func (l *Logger) Preview(text string) string {
	if l == nil {
		return Truncate(text, 50)
	}
	return Truncate(text, l.config.PreviewLength)
}

// Close closes the logger and releases resources.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func formatEntry(ts time.Time, action ActionType, details map[string]interface{}) string {
	var sb strings.Builder
	sb.WriteString(ts.Format("2006-01-02 15:04:05"))
	sb.WriteString(" [")
	sb.WriteString(string(action))
	sb.WriteString("]")

	// Sorted keys keep entries diffable.
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch val := details[k].(type) {
		case string:
			sb.WriteString(fmt.Sprintf(" %s=%q", k, val))
		default:
			sb.WriteString(fmt.Sprintf(" %s=%v", k, val))
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

// rotate shifts actions.log -> actions.log.1 -> ... keeping MaxFiles rotated files.
func (l *Logger) rotate() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	basePath := l.config.FilePath
	for i := l.config.MaxFiles; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", basePath, i)
		newPath := fmt.Sprintf("%s.%d", basePath, i+1)
		if i == l.config.MaxFiles {
			os.Remove(oldPath)
		} else {
			os.Rename(oldPath, newPath)
		}
	}

	if l.config.MaxFiles > 0 {
		if err := os.Rename(basePath, basePath+".1"); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	} else if err := os.Remove(basePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to truncate log file: %w", err)
	}

	f, err := os.OpenFile(basePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open new log file: %w", err)
	}

	l.file = f
	l.currentSize = 0
	return nil
}

// ParseLogLevel converts a string to LogLevel.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Truncate returns a preview of a string, truncating if necessary.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	// Back off to a rune boundary so titles stay valid UTF-8.
	cut := maxLen
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
