package platform

import "errors"

// WindowHandle is an opaque top-level window identifier. It is only meaningful
// for the duration of one call and may be reused by the OS after the window
// closes.
type WindowHandle int64

// Rect describes a rectangular region in desktop pixel coordinates.
// Width and Height are signed and never clamped.
type Rect struct {
	X      int32
	Y      int32
	Width  int32
	Height int32
}

// RectFromEdges converts an edge-based rectangle into origin and size.
func RectFromEdges(left, top, right, bottom int32) Rect {
	return Rect{
		X:      left,
		Y:      top,
		Width:  right - left,
		Height: bottom - top,
	}
}

// Window is one top-level window discovered during a scan.
type Window struct {
	Handle WindowHandle
	Title  string
	Class  string
	PID    uint32
	Bounds Rect
	// ProcessName is the lowercase executable base name, nil when unknown.
	ProcessName *string
}

// Monitor is one active display discovered during a scan.
type Monitor struct {
	Name     string
	Bounds   Rect
	WorkArea Rect
	Primary  bool
	// DPIScale is effective DPI / 96. Zero when the DPI query failed.
	DPIScale float64
}

// Backend abstracts the window-system operations exposed to callers.
//
// Scans never fail as a whole: per-item failures are skipped or degraded.
// Mutations re-validate the handle before touching the window.
type Backend interface {
	ScanWindows() []Window
	ScanMonitors() []Monitor
	SetWindowBounds(handle WindowHandle, bounds Rect) error
	BringToForeground(handle WindowHandle) error
}

// Options configures backend construction.
type Options struct {
	// ExcludeClasses and ExcludeTitles extend the built-in shell filters.
	ExcludeClasses []string
	ExcludeTitles  []string
}

// ErrUnsupportedPlatform is returned by New on platforms without a backend.
var ErrUnsupportedPlatform = errors.New("window backend not supported on this platform")
