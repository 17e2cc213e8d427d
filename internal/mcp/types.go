package mcp

import "github.com/1broseidon/winlayout/internal/platform"

// WindowInfo is one window as returned by query_all_windows.
type WindowInfo struct {
	Handle      int64   `json:"handle" jsonschema:"Window handle (integer). Only valid until the window closes."`
	Title       string  `json:"title" jsonschema:"Window title"`
	Width       int32   `json:"width" jsonschema:"Window width in pixels"`
	Height      int32   `json:"height" jsonschema:"Window height in pixels"`
	X           int32   `json:"x" jsonschema:"Window left edge in desktop pixels"`
	Y           int32   `json:"y" jsonschema:"Window top edge in desktop pixels"`
	ProcessName *string `json:"process_name" jsonschema:"Lowercase executable name of the owning process, or null when unknown"`
}

// QueryWindowsInput is the input for the query_all_windows tool.
type QueryWindowsInput struct{}

// QueryWindowsOutput is the output for the query_all_windows tool.
type QueryWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

// MonitorInfo is one display as returned by get_monitors.
type MonitorInfo struct {
	Name       string  `json:"name" jsonschema:"Monitor device name"`
	Width      int32   `json:"width" jsonschema:"Monitor width in pixels"`
	Height     int32   `json:"height" jsonschema:"Monitor height in pixels"`
	X          int32   `json:"x" jsonschema:"Monitor left edge in desktop pixels"`
	Y          int32   `json:"y" jsonschema:"Monitor top edge in desktop pixels"`
	IsPrimary  bool    `json:"is_primary" jsonschema:"Whether this is the primary monitor"`
	WorkWidth  int32   `json:"work_width" jsonschema:"Work area width (excluding taskbars and docks)"`
	WorkHeight int32   `json:"work_height" jsonschema:"Work area height (excluding taskbars and docks)"`
	WorkX      int32   `json:"work_x" jsonschema:"Work area left edge"`
	WorkY      int32   `json:"work_y" jsonschema:"Work area top edge"`
	DPIScale   float64 `json:"dpi_scale" jsonschema:"Effective DPI divided by 96 (1.5 means 150% scaling); 0 when unknown"`
}

// GetMonitorsInput is the input for the get_monitors tool.
type GetMonitorsInput struct{}

// GetMonitorsOutput is the output for the get_monitors tool.
type GetMonitorsOutput struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// SetWindowPositionInput is a full window record; only the handle and the
// geometry fields are applied.
type SetWindowPositionInput struct {
	Handle      int64   `json:"handle" jsonschema:"Window handle from query_all_windows"`
	Title       string  `json:"title,omitempty" jsonschema:"Window title (informational, ignored)"`
	Width       int32   `json:"width" jsonschema:"New window width in pixels"`
	Height      int32   `json:"height" jsonschema:"New window height in pixels"`
	X           int32   `json:"x" jsonschema:"New left edge in desktop pixels"`
	Y           int32   `json:"y" jsonschema:"New top edge in desktop pixels"`
	ProcessName *string `json:"process_name,omitempty" jsonschema:"Owning process name (informational, ignored)"`
}

// SetWindowToTopInput is the input for the set_window_to_top tool.
type SetWindowToTopInput struct {
	Handle int64 `json:"handle" jsonschema:"Window handle from query_all_windows"`
}

// ActionOutput confirms a completed window mutation.
type ActionOutput struct {
	Handle  int64  `json:"handle"`
	Message string `json:"message"`
}

// LayoutGuideInput is the input for the get_window_layout_description tool.
type LayoutGuideInput struct{}

// LayoutGuideOutput is the output for the get_window_layout_description tool.
type LayoutGuideOutput struct {
	Description string `json:"description"`
}

// WindowInfoFrom converts a scanned window to its wire form.
func WindowInfoFrom(w platform.Window) WindowInfo {
	return WindowInfo{
		Handle:      int64(w.Handle),
		Title:       w.Title,
		Width:       w.Bounds.Width,
		Height:      w.Bounds.Height,
		X:           w.Bounds.X,
		Y:           w.Bounds.Y,
		ProcessName: w.ProcessName,
	}
}

// MonitorInfoFrom converts a monitor record to its wire form.
func MonitorInfoFrom(m platform.Monitor) MonitorInfo {
	return MonitorInfo{
		Name:       m.Name,
		Width:      m.Bounds.Width,
		Height:     m.Bounds.Height,
		X:          m.Bounds.X,
		Y:          m.Bounds.Y,
		IsPrimary:  m.Primary,
		WorkWidth:  m.WorkArea.Width,
		WorkHeight: m.WorkArea.Height,
		WorkX:      m.WorkArea.X,
		WorkY:      m.WorkArea.Y,
		DPIScale:   m.DPIScale,
	}
}

// SaveWorkspaceInput is the input for the save_workspace tool.
type SaveWorkspaceInput struct {
	Name string `json:"name" jsonschema:"Workspace name (no path separators)"`
}

// SaveWorkspaceOutput reports a saved workspace.
type SaveWorkspaceOutput struct {
	Name        string `json:"name"`
	WindowCount int    `json:"window_count"`
}

// RestoreWorkspaceInput is the input for the restore_workspace tool.
type RestoreWorkspaceInput struct {
	Name   string `json:"name" jsonschema:"Workspace name from list_workspaces"`
	DryRun bool   `json:"dry_run,omitempty" jsonschema:"Match windows without moving them"`
}

// RestoredWindow is one saved placement applied to a live window.
type RestoredWindow struct {
	Handle    int64  `json:"handle"`
	Title     string `json:"title"`
	MatchedBy string `json:"matched_by" jsonschema:"How the live window was matched: handle, title or process"`
}

// RestoreWorkspaceOutput reports the outcome of restore_workspace.
type RestoreWorkspaceOutput struct {
	Applied []RestoredWindow `json:"applied"`
	Missing []string         `json:"missing" jsonschema:"Titles of saved windows with no live match"`
	Failed  []string         `json:"failed" jsonschema:"Saved windows that matched but could not be moved"`
}

// ListWorkspacesInput is the input for the list_workspaces tool.
type ListWorkspacesInput struct{}

// ListWorkspacesOutput lists saved workspace names.
type ListWorkspacesOutput struct {
	Workspaces []string `json:"workspaces"`
}
