package workspace

import (
	"time"

	"github.com/1broseidon/winlayout/internal/platform"
)

// WorkspaceConfig is a persisted snapshot of window placements.
type WorkspaceConfig struct {
	Name    string            `json:"name"`
	SavedAt time.Time         `json:"saved_at"`
	Windows []WindowPlacement `json:"windows"`
}

// WindowPlacement records where one window was when the workspace was saved.
// Handle is a hint only; it is stale once the window closes.
type WindowPlacement struct {
	Handle      int64  `json:"handle"`
	Title       string `json:"title"`
	Class       string `json:"class,omitempty"`
	ProcessName string `json:"process_name,omitempty"`
	X           int32  `json:"x"`
	Y           int32  `json:"y"`
	Width       int32  `json:"width"`
	Height      int32  `json:"height"`
}

func (p WindowPlacement) bounds() platform.Rect {
	return platform.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// WindowLister returns the current window scan.
type WindowLister interface {
	ScanWindows() []platform.Window
}

// WindowPlacer applies bounds to a live window.
type WindowPlacer interface {
	SetWindowBounds(handle platform.WindowHandle, bounds platform.Rect) error
}

// RestoreOptions controls Restore.
type RestoreOptions struct {
	// DryRun matches windows without moving them.
	DryRun bool
}

// RestoreResult reports what happened to each saved placement.
type RestoreResult struct {
	Applied []AppliedPlacement
	Missing []WindowPlacement
	Failed  []FailedPlacement
}

// AppliedPlacement pairs a saved placement with the live window it was
// applied to.
type AppliedPlacement struct {
	Placement WindowPlacement
	Handle    platform.WindowHandle
	MatchedBy string
}

// FailedPlacement is a matched window the backend refused to move.
type FailedPlacement struct {
	Placement WindowPlacement
	Handle    platform.WindowHandle
	Err       error
}
