//go:build linux

package platform

import (
	"fmt"
	"os"

	"github.com/1broseidon/winlayout/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn   *x11.Connection
	filter Filter
}

var _ Backend = (*LinuxBackend)(nil)

// New opens an X11 connection and returns a backend over it.
func New(opts Options) (Backend, error) {
	return NewLinuxBackendFromDisplay(opts)
}

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection, opts Options) *LinuxBackend {
	return &LinuxBackend{
		conn:   conn,
		filter: NewFilter(uint32(os.Getpid()), opts),
	}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay(opts Options) (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return NewLinuxBackend(conn, opts), nil
}

// Close releases the underlying X11 connection.
func (b *LinuxBackend) Close() error {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
	return nil
}

// ScanWindows lists managed user windows in window manager order.
func (b *LinuxBackend) ScanWindows() []Window {
	if b == nil || b.conn == nil {
		return nil
	}

	clients, err := b.conn.ClientList()
	if err != nil {
		return nil
	}

	var out []Window
	for _, windowID := range clients {
		if !b.conn.IsVisible(windowID) || !b.conn.IsNormalWindow(windowID) {
			continue
		}

		title, pid, class, ok := b.filter.accept(x11Source{conn: b.conn, id: windowID})
		if !ok {
			continue
		}

		area, _ := b.conn.WindowRect(windowID)
		out = append(out, Window{
			Handle:      WindowHandle(windowID),
			Title:       title,
			Class:       class,
			PID:         pid,
			Bounds:      rectFromArea(area),
			ProcessName: ResolveProcessName(pid),
		})
	}
	return out
}

// ScanMonitors lists RandR monitors. DPI comes from Xft.dpi and defaults to
// the reference DPI when no desktop environment publishes one.
func (b *LinuxBackend) ScanMonitors() []Monitor {
	if b == nil || b.conn == nil {
		return nil
	}

	monitors, err := b.conn.GetMonitors()
	if err != nil {
		return nil
	}

	dpi, ok := b.conn.XftDPI()
	if !ok {
		dpi = ReferenceDPI
	}

	out := make([]Monitor, 0, len(monitors))
	for _, m := range monitors {
		out = append(out, Monitor{
			Name:     m.Name,
			Bounds:   rectFromArea(m.Bounds),
			WorkArea: rectFromArea(m.WorkArea),
			Primary:  m.Primary,
			DPIScale: DPIScale(dpi),
		})
	}
	return out
}

// SetWindowBounds moves and resizes a window, then maps and raises it.
func (b *LinuxBackend) SetWindowBounds(handle WindowHandle, bounds Rect) error {
	windowID, err := b.liveWindow(handle)
	if err != nil {
		return err
	}

	if err := b.conn.MoveResizeWindow(
		windowID,
		int(bounds.X),
		int(bounds.Y),
		int(bounds.Width),
		int(bounds.Height),
	); err != nil {
		return newSetWindowPositionError(err)
	}
	if err := b.conn.MapAndRaise(windowID); err != nil {
		return newSetWindowPositionError(err)
	}
	return nil
}

// BringToForeground iconifies the window and then requests activation,
// which restores it. Both steps are best-effort.
func (b *LinuxBackend) BringToForeground(handle WindowHandle) error {
	windowID, err := b.liveWindow(handle)
	if err != nil {
		return err
	}

	_ = b.conn.Iconify(windowID)
	_ = b.conn.Activate(windowID)
	return nil
}

func (b *LinuxBackend) liveWindow(handle WindowHandle) (xproto.Window, error) {
	// X11 window IDs are 32-bit and never zero.
	if handle <= 0 || handle > WindowHandle(^uint32(0)) {
		return 0, ErrInvalidWindowHandle
	}
	if b == nil || b.conn == nil {
		return 0, fmt.Errorf("x11 backend connection is nil")
	}
	windowID := xproto.Window(handle)
	if !b.conn.WindowExists(windowID) {
		return 0, ErrInvalidWindowHandle
	}
	return windowID, nil
}

func rectFromArea(a x11.Area) Rect {
	return Rect{
		X:      int32(a.X),
		Y:      int32(a.Y),
		Width:  int32(a.Width),
		Height: int32(a.Height),
	}
}

type x11Source struct {
	conn *x11.Connection
	id   xproto.Window
}

func (p x11Source) Title() string { return p.conn.WindowTitle(p.id) }
func (p x11Source) PID() uint32   { return p.conn.WindowPID(p.id) }
func (p x11Source) Class() string { return p.conn.WindowClass(p.id) }
