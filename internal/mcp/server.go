package mcp

import (
	"context"
	"fmt"
	"io"
	"log"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winlayout/internal/actionlog"
	"github.com/1broseidon/winlayout/internal/config"
	"github.com/1broseidon/winlayout/internal/platform"
)

const (
	ServerName    = "winlayout"
	ServerVersion = "0.1.0"

	serverInstructions = "I can list every window open on this desktop, report monitor geometry and DPI scaling, move, resize or focus windows by handle, and save or restore named window arrangements."
)

// Server is the MCP server exposing desktop window operations.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	backend   platform.Backend
	logger    *actionlog.Logger
}

// NewServer creates a new MCP server backed by the platform window system.
func NewServer(cfg *config.Config) (*Server, error) {
	backend, err := platform.New(platform.Options{
		ExcludeClasses: cfg.Filters.ExcludeClasses,
		ExcludeTitles:  cfg.Filters.ExcludeTitles,
	})
	if err != nil {
		return nil, fmt.Errorf("window backend unavailable: %w", err)
	}

	logCfg := cfg.GetLoggingConfig()
	var logger *actionlog.Logger
	if logCfg.Enabled {
		logger, err = actionlog.NewLogger(actionlog.Config{
			Enabled:       logCfg.Enabled,
			Level:         actionlog.ParseLogLevel(logCfg.Level),
			FilePath:      logCfg.File,
			MaxSizeMB:     logCfg.MaxSizeMB,
			MaxFiles:      logCfg.MaxFiles,
			PreviewLength: logCfg.PreviewLength,
		})
		if err != nil {
			log.Printf("Warning: failed to initialize action logger: %v", err)
			logger = nil
		}
	}

	return newServer(cfg, backend, logger), nil
}

func newServer(cfg *config.Config, backend platform.Backend, logger *actionlog.Logger) *Server {
	s := &Server{
		config:  cfg,
		backend: backend,
		logger:  logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		&mcpsdk.ServerOptions{
			Instructions: serverInstructions,
		},
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close releases server resources.
func (s *Server) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if c, ok := s.backend.(io.Closer); ok {
		firstErr = c.Close()
	}
	if err := s.logger.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "query_all_windows",
		Description: "List all visible top-level windows currently open on the desktop with handle, title, position, size and owning process name. Shell chrome (taskbar, tray overflow, desktop) and this server's own windows are excluded. Order is not stable between calls.",
	}, s.handleQueryAllWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_monitors",
		Description: "List all active monitors with full bounds, work area (excluding taskbars/docks), primary flag and DPI scale (effective DPI / 96).",
	}, s.handleGetMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_window_layout_description",
		Description: "Get the window layout guidelines. Read these before arranging windows unless the user asks for a specific arrangement.",
	}, s.handleLayoutGuide)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_window_position",
		Description: "Move and resize a window. Pass a window record from query_all_windows with the new x, y, width and height; the window is shown and placed above its peers (not always-on-top). The OS may enforce a minimum window size.",
	}, s.handleSetWindowPosition)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_window_to_top",
		Description: "Bring a window to the foreground. Best-effort: the OS may still refuse to transfer focus, which is not reported as an error. Fails only when the handle no longer refers to a window.",
	}, s.handleSetWindowToTop)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "save_workspace",
		Description: "Save the current position and size of every listed window under a name so the arrangement can be restored later.",
	}, s.handleSaveWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_workspace",
		Description: "Move windows back to a saved workspace arrangement. Saved windows are matched to open windows by handle, then title, then owning process; unmatched ones are reported as missing.",
	}, s.handleRestoreWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_workspaces",
		Description: "List the names of saved workspace arrangements.",
	}, s.handleListWorkspaces)
}
