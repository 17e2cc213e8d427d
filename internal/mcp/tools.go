package mcp

import (
	"context"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winlayout/internal/actionlog"
	"github.com/1broseidon/winlayout/internal/platform"
	"github.com/1broseidon/winlayout/internal/workspace"
)

// ToolError is the (message, detail) pair reported to MCP clients when a
// mutation fails.
type ToolError struct {
	Message string
	Detail  string
	cause   error
}

func (e *ToolError) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + ": " + e.Detail
}

func (e *ToolError) Unwrap() error { return e.cause }

// newToolError wraps err under message. A SetWindowPositionError already
// reads as a position failure, so only its OS detail is kept.
func newToolError(message string, err error) *ToolError {
	te := &ToolError{Message: message, cause: err}
	var posErr *platform.SetWindowPositionError
	switch {
	case err == nil:
	case errors.As(err, &posErr):
		te.Detail = posErr.Detail
	default:
		te.Detail = err.Error()
	}
	return te
}

// errorKind names a platform error for log entries.
func errorKind(err error) string {
	var posErr *platform.SetWindowPositionError
	switch {
	case errors.Is(err, platform.ErrInvalidWindowHandle):
		return "invalid_window_handle"
	case errors.As(err, &posErr):
		return "set_window_position_failed"
	default:
		return "error"
	}
}

const layoutGuide = `Before every arrangement, query the monitor list and the window list first.
When computing positions, account for each monitor's DPI scale, and where it matters use the monitor work area (which excludes taskbars and docks) rather than the full bounds.
When the user has not named a process or group of windows, leave out windows that look like system processes or windows that are not actually shown.
Window sizes and positions may be adjusted to get a better arrangement, but avoid changing the size of the user's windows where possible.
With multiple monitors, either the user names the target (first, primary, second, other screens) or all monitors are treated together as one area.
Consider spacing between windows and the arrangement style: horizontal, vertical, grid and so on.
After placing each window, bring it to the top once so that it is visible on screen.
When a computed position falls outside every monitor, start again from the origin.
If the user's request is genuinely unclear, ask the user before arranging.`

func (s *Server) handleQueryAllWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ QueryWindowsInput) (*mcpsdk.CallToolResult, QueryWindowsOutput, error) {
	windows := s.backend.ScanWindows()

	out := QueryWindowsOutput{Windows: make([]WindowInfo, 0, len(windows))}
	unnamed := 0
	for _, w := range windows {
		if w.ProcessName == nil {
			unnamed++
		}
		out.Windows = append(out.Windows, WindowInfoFrom(w))
	}

	s.logger.Log(actionlog.ActionScanWindows, map[string]interface{}{
		"window_count":             len(out.Windows),
		"unresolved_process_count": unnamed,
	})
	return nil, out, nil
}

func (s *Server) handleGetMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetMonitorsInput) (*mcpsdk.CallToolResult, GetMonitorsOutput, error) {
	monitors := s.backend.ScanMonitors()

	out := GetMonitorsOutput{Monitors: make([]MonitorInfo, 0, len(monitors))}
	for _, m := range monitors {
		out.Monitors = append(out.Monitors, MonitorInfoFrom(m))
	}

	s.logger.Log(actionlog.ActionScanMonitors, map[string]interface{}{
		"monitor_count": len(out.Monitors),
	})
	return nil, out, nil
}

func (s *Server) handleLayoutGuide(_ context.Context, _ *mcpsdk.CallToolRequest, _ LayoutGuideInput) (*mcpsdk.CallToolResult, LayoutGuideOutput, error) {
	s.logger.Log(actionlog.ActionLayoutGuide, nil)
	return nil, LayoutGuideOutput{Description: layoutGuide}, nil
}

func (s *Server) handleSetWindowPosition(_ context.Context, _ *mcpsdk.CallToolRequest, args SetWindowPositionInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	details := map[string]interface{}{
		"handle": args.Handle,
		"x":      args.X,
		"y":      args.Y,
		"width":  args.Width,
		"height": args.Height,
	}
	if args.Title != "" {
		details["title_preview"] = s.logger.Preview(args.Title)
	}

	err := s.backend.SetWindowBounds(platform.WindowHandle(args.Handle), platform.Rect{
		X:      args.X,
		Y:      args.Y,
		Width:  args.Width,
		Height: args.Height,
	})
	if err != nil {
		details["error"] = errorKind(err)
		details["error_detail"] = err.Error()
		s.logger.Log(actionlog.ActionSetBounds, details)
		return nil, ActionOutput{}, newToolError("set window position failed", err)
	}

	s.logger.Log(actionlog.ActionSetBounds, details)
	return nil, ActionOutput{Handle: args.Handle, Message: "window position set"}, nil
}

func (s *Server) handleSetWindowToTop(_ context.Context, _ *mcpsdk.CallToolRequest, args SetWindowToTopInput) (*mcpsdk.CallToolResult, ActionOutput, error) {
	details := map[string]interface{}{"handle": args.Handle}

	if err := s.backend.BringToForeground(platform.WindowHandle(args.Handle)); err != nil {
		details["error"] = errorKind(err)
		s.logger.Log(actionlog.ActionForeground, details)
		return nil, ActionOutput{}, newToolError("bring window to top failed", err)
	}

	s.logger.Log(actionlog.ActionForeground, details)
	return nil, ActionOutput{Handle: args.Handle, Message: "window brought to top"}, nil
}

func (s *Server) handleSaveWorkspace(_ context.Context, _ *mcpsdk.CallToolRequest, args SaveWorkspaceInput) (*mcpsdk.CallToolResult, SaveWorkspaceOutput, error) {
	cfg, err := workspace.Save(args.Name, s.backend)
	if err == nil {
		err = workspace.Write(cfg)
	}
	if err != nil {
		s.logger.Log(actionlog.ActionSaveLayout, map[string]interface{}{
			"name":  args.Name,
			"error": err.Error(),
		})
		return nil, SaveWorkspaceOutput{}, newToolError("save workspace failed", err)
	}

	s.logger.Log(actionlog.ActionSaveLayout, map[string]interface{}{
		"name":         cfg.Name,
		"window_count": len(cfg.Windows),
	})
	return nil, SaveWorkspaceOutput{Name: cfg.Name, WindowCount: len(cfg.Windows)}, nil
}

func (s *Server) handleRestoreWorkspace(_ context.Context, _ *mcpsdk.CallToolRequest, args RestoreWorkspaceInput) (*mcpsdk.CallToolResult, RestoreWorkspaceOutput, error) {
	cfg, err := workspace.Read(args.Name)
	if err != nil {
		s.logger.Log(actionlog.ActionRestore, map[string]interface{}{
			"name":  args.Name,
			"error": err.Error(),
		})
		return nil, RestoreWorkspaceOutput{}, newToolError("restore workspace failed", err)
	}

	res, err := workspace.Restore(cfg, s.backend, s.backend, workspace.RestoreOptions{DryRun: args.DryRun})
	if err != nil {
		return nil, RestoreWorkspaceOutput{}, newToolError("restore workspace failed", err)
	}

	out := RestoreWorkspaceOutput{
		Applied: make([]RestoredWindow, 0, len(res.Applied)),
		Missing: make([]string, 0, len(res.Missing)),
		Failed:  make([]string, 0, len(res.Failed)),
	}
	for _, a := range res.Applied {
		out.Applied = append(out.Applied, RestoredWindow{Handle: int64(a.Handle), Title: a.Placement.Title, MatchedBy: a.MatchedBy})
	}
	for _, m := range res.Missing {
		out.Missing = append(out.Missing, m.Title)
	}
	for _, f := range res.Failed {
		out.Failed = append(out.Failed, fmt.Sprintf("%s: %v", f.Placement.Title, f.Err))
	}

	s.logger.Log(actionlog.ActionRestore, map[string]interface{}{
		"name":    cfg.Name,
		"dry_run": args.DryRun,
		"applied": len(out.Applied),
		"missing": len(out.Missing),
		"failed":  len(out.Failed),
	})
	return nil, out, nil
}

func (s *Server) handleListWorkspaces(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWorkspacesInput) (*mcpsdk.CallToolResult, ListWorkspacesOutput, error) {
	names, err := workspace.List()
	if err != nil {
		return nil, ListWorkspacesOutput{}, newToolError("list workspaces failed", err)
	}
	if names == nil {
		names = []string{}
	}
	return nil, ListWorkspacesOutput{Workspaces: names}, nil
}
