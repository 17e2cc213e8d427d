package actionlog

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func newTestLogger(t *testing.T, cfg Config) (*Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logs", "actions.log")
	cfg.Enabled = true
	cfg.FilePath = path
	l, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	l.now = func() time.Time { return time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { l.Close() })
	return l, path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}

func TestLogFormat(t *testing.T) {
	l, path := newTestLogger(t, Config{Level: LevelDebug, MaxSizeMB: 10, MaxFiles: 3})

	l.Log(ActionSetBounds, map[string]interface{}{
		"handle": int64(132456),
		"width":  800,
		"title":  "Editor",
	})

	want := "2026-10-19 08:30:00 [SET-BOUNDS] handle=132456 title=\"Editor\" width=800\n"
	if got := readLog(t, path); got != want {
		t.Fatalf("log = %q, want %q", got, want)
	}

	if runtime.GOOS == "windows" {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Fatalf("log permissions = %o, want 600", perm)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	l, path := newTestLogger(t, Config{Level: LevelInfo, MaxSizeMB: 10, MaxFiles: 3})

	l.Log(ActionScanWindows, map[string]interface{}{"count": 3})
	l.Log(ActionForeground, map[string]interface{}{"handle": 7})
	l.Log(ActionScanMonitors, map[string]interface{}{"error": "boom"})

	got := readLog(t, path)
	if strings.Contains(got, "SCAN-WINDOWS") {
		t.Fatalf("debug entry written at info level: %q", got)
	}
	if !strings.Contains(got, "[FOREGROUND] handle=7") {
		t.Fatalf("missing info entry: %q", got)
	}
	if !strings.Contains(got, "[SCAN-MONITORS] error=\"boom\"") {
		t.Fatalf("error entry must be raised to warn: %q", got)
	}
}

func TestRotation(t *testing.T) {
	l, path := newTestLogger(t, Config{Level: LevelDebug, MaxSizeMB: 1, MaxFiles: 2})

	l.currentSize = 1024 * 1024
	l.Log(ActionSetBounds, map[string]interface{}{"n": 1})
	l.currentSize = 1024 * 1024
	l.Log(ActionSetBounds, map[string]interface{}{"n": 2})
	l.currentSize = 1024 * 1024
	l.Log(ActionSetBounds, map[string]interface{}{"n": 3})

	if got := readLog(t, path); !strings.Contains(got, "n=3") {
		t.Fatalf("current log = %q, want n=3", got)
	}
	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("expected .1 rotated file: %v", err)
	}
	if _, err := os.Stat(path + ".2"); err != nil {
		t.Fatalf("expected .2 rotated file: %v", err)
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Fatalf("expected no .3 file, got %v", err)
	}
}

func TestDisabledAndNilLogger(t *testing.T) {
	var nilLogger *Logger
	nilLogger.Log(ActionSetBounds, nil)
	if err := nilLogger.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}

	l, err := NewLogger(Config{Enabled: false, FilePath: filepath.Join(t.TempDir(), "x.log")})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	l.Log(ActionSetBounds, map[string]interface{}{"a": 1})
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"warn":    LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Fatalf("short = %q", got)
	}
	if got := Truncate("hello world", 5); got != "hello..." {
		t.Fatalf("ascii = %q", got)
	}
	// "窗口" is 6 bytes; cutting at 4 must not split the second rune.
	if got := Truncate("窗口", 4); got != "窗..." {
		t.Fatalf("utf-8 = %q", got)
	}
	if got := Truncate("abc", 0); got != "abc" {
		t.Fatalf("zero limit = %q", got)
	}
}
