package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// ClientList returns the managed top-level windows in stacking-independent
// window manager order.
func (c *Connection) ClientList() ([]xproto.Window, error) {
	return ewmh.ClientListGet(c.XUtil)
}

// WindowExists reports whether the server still knows windowID.
func (c *Connection) WindowExists(windowID xproto.Window) bool {
	if windowID == 0 {
		return false
	}
	_, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	return err == nil
}

// IsVisible reports whether a managed window is shown or iconified. Only
// withdrawn windows are invisible; minimized ones still count.
func (c *Connection) IsVisible(windowID xproto.Window) bool {
	state, err := icccm.WmStateGet(c.XUtil, windowID)
	if err != nil {
		// Managed but without WM_STATE; the client list is authoritative.
		return true
	}
	return state.State != icccm.StateWithdrawn
}

// WindowRect returns the window's outer rectangle in root coordinates:
// the client area grown by its _NET_FRAME_EXTENTS.
func (c *Connection) WindowRect(windowID xproto.Window) (Area, bool) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return Area{}, false
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return Area{}, false
	}

	client := Area{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}
	left, right, top, bottom, _ := c.GetFrameExtents(windowID)
	return outerArea(client, left, right, top, bottom), true
}

// GetFrameExtents returns the window decoration sizes (if available)
func (c *Connection) GetFrameExtents(windowID xproto.Window) (left, right, top, bottom int, err error) {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		// No frame extents available, return zeros
		return 0, 0, 0, 0, nil
	}

	return extents.Left, extents.Right, extents.Top, extents.Bottom, nil
}

func outerArea(client Area, left, right, top, bottom int) Area {
	return Area{
		X:      client.X - left,
		Y:      client.Y - top,
		Width:  client.Width + left + right,
		Height: client.Height + top + bottom,
	}
}

// clientSize is the inverse of outerArea for the size. The result is at
// least 1x1.
func clientSize(outerWidth, outerHeight, left, right, top, bottom int) (int, int) {
	width := outerWidth - left - right
	height := outerHeight - top - bottom
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

// MoveResizeWindow places the window's outer frame at x, y with the given
// outer size. The _NET_MOVERESIZE_WINDOW request is tried first and a plain
// ConfigureWindow second; the error is returned only when both fail.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// Maximized windows ignore move requests on most window managers.
	_ = c.unmaximizeWindow(windowID)

	left, right, top, bottom, _ := c.GetFrameExtents(windowID)
	width, height = clientSize(width, height, left, right, top, bottom)

	// NorthWest gravity: x, y address the frame's top-left corner.
	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height); err != nil {
		if cerr := xproto.ConfigureWindowChecked(
			c.XUtil.Conn(),
			windowID,
			moveResizeMask,
			moveResizeValues(x, y, width, height),
		).Check(); cerr != nil {
			return fmt.Errorf("move request failed: %v; configure fallback failed: %w", err, cerr)
		}
	}
	return nil
}

const moveResizeMask = xproto.ConfigWindowX | xproto.ConfigWindowY |
	xproto.ConfigWindowWidth | xproto.ConfigWindowHeight

// moveResizeValues encodes ConfigureWindow values in mask order. Negative
// origins are sign-extended into the 32-bit value.
func moveResizeValues(x, y, width, height int) []uint32 {
	return []uint32{
		uint32(int32(x)),
		uint32(int32(y)),
		uint32(width),
		uint32(height),
	}
}

// MapAndRaise shows the window and places it above its siblings without
// setting any always-on-top state.
func (c *Connection) MapAndRaise(windowID xproto.Window) error {
	if err := xproto.MapWindowChecked(c.XUtil.Conn(), windowID).Check(); err != nil {
		return err
	}
	return xproto.ConfigureWindowChecked(
		c.XUtil.Conn(),
		windowID,
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove},
	).Check()
}

// Iconify minimizes a window via WM_CHANGE_STATE.
func (c *Connection) Iconify(windowID xproto.Window) error {
	reply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len("WM_CHANGE_STATE")), "WM_CHANGE_STATE").Reply()
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   reply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{icccm.StateIconic, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// Activate asks the window manager to restore and focus the window.
func (c *Connection) Activate(windowID xproto.Window) error {
	return ewmh.ActiveWindowReq(c.XUtil, windowID)
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT":
			ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, state)
		}
	}
	return nil
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		// Reject desktop, dock, splash, etc.
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}

func (c *Connection) hasWindowType(windowID xproto.Window, want string) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

// WindowTitle prefers _NET_WM_NAME and falls back to WM_NAME.
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	if title, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil && title != "" {
		return title
	}
	if title, err := icccm.WmNameGet(c.XUtil, windowID); err == nil {
		return title
	}
	return ""
}

// WindowClass returns the WM_CLASS class part.
func (c *Connection) WindowClass(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
	if err != nil {
		return ""
	}
	return wmClass.Class
}

// WindowPID returns _NET_WM_PID, or 0 when unset.
func (c *Connection) WindowPID(windowID xproto.Window) uint32 {
	pid, err := ewmh.WmPidGet(c.XUtil, windowID)
	if err != nil {
		return 0
	}
	return uint32(pid)
}
