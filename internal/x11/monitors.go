package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Area is a rectangle in root window coordinates.
type Area struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Monitor represents a physical display
type Monitor struct {
	ID       int
	Name     string
	Primary  bool
	Bounds   Area
	WorkArea Area
}

// GetMonitors retrieves all active monitors using XRandR. Work areas exclude
// dock struts that overlap each monitor.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	// Initialize RandR if not already done
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	// Get screen resources
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primaryOutput randr.Output
	if reply, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primaryOutput = reply.Output
	}

	var monitors []Monitor

	// Query each CRTC for active monitors
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		primary := false
		for _, out := range crtcInfo.Outputs {
			if primaryOutput != 0 && out == primaryOutput {
				primary = true
				break
			}
		}

		bounds := Area{
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		}
		monitors = append(monitors, Monitor{
			ID:       i,
			Name:     outputName,
			Primary:  primary,
			Bounds:   bounds,
			WorkArea: bounds,
		})
	}

	// Without a RandR primary output, the first monitor at the origin is
	// what most window managers treat as primary.
	if primaryOutput == 0 {
		for i := range monitors {
			if monitors[i].Bounds.X == 0 && monitors[i].Bounds.Y == 0 {
				monitors[i].Primary = true
				break
			}
		}
	}

	if struts, ok := c.dockStrutList(); ok {
		for i := range monitors {
			monitors[i].WorkArea = applyDockStruts(monitors[i].Bounds, struts)
		}
	}

	return monitors, nil
}

// screenStruts holds the root dimensions and every dock's partial strut.
type screenStruts struct {
	rootWidth  int
	rootHeight int
	partials   []*ewmh.WmStrutPartial
}

func (c *Connection) dockStrutList() (screenStruts, bool) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return screenStruts{}, false
	}
	out := screenStruts{
		rootWidth:  int(rootGeom.Width),
		rootHeight: int(rootGeom.Height),
	}

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return screenStruts{}, false
	}

	for _, windowID := range clients {
		if !c.hasWindowType(windowID, "_NET_WM_WINDOW_TYPE_DOCK") {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			out.partials = append(out.partials, sp)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			out.partials = append(out.partials, fullSpanStrut(s, out.rootWidth, out.rootHeight))
		}
	}
	return out, len(out.partials) > 0
}

func fullSpanStrut(s *ewmh.WmStrut, rootWidth, rootHeight int) *ewmh.WmStrutPartial {
	return &ewmh.WmStrutPartial{
		Left:         s.Left,
		Right:        s.Right,
		Top:          s.Top,
		Bottom:       s.Bottom,
		LeftStartY:   0,
		LeftEndY:     uint(rootHeight - 1),
		RightStartY:  0,
		RightEndY:    uint(rootHeight - 1),
		TopStartX:    0,
		TopEndX:      uint(rootWidth - 1),
		BottomStartX: 0,
		BottomEndX:   uint(rootWidth - 1),
	}
}

type dockStruts struct {
	left   int
	right  int
	top    int
	bottom int
}

// applyDockStruts shrinks bounds by the dock struts that overlap it.
func applyDockStruts(bounds Area, s screenStruts) Area {
	var acc dockStruts
	for _, sp := range s.partials {
		updateStrutsForMonitor(bounds, s.rootWidth, s.rootHeight, sp, &acc)
	}

	work := Area{
		X:      bounds.X + acc.left,
		Y:      bounds.Y + acc.top,
		Width:  bounds.Width - (acc.left + acc.right),
		Height: bounds.Height - (acc.top + acc.bottom),
	}
	if work.Width < 1 {
		work.Width = 1
	}
	if work.Height < 1 {
		work.Height = 1
	}
	return work
}

func updateStrutsForMonitor(monitor Area, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial, acc *dockStruts) {
	monX1 := monitor.X
	monY1 := monitor.Y
	monX2 := monitor.X + monitor.Width
	monY2 := monitor.Y + monitor.Height

	// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
	if sp.Top > 0 {
		x1 := int(sp.TopStartX)
		x2 := int(sp.TopEndX) + 1
		y1 := 0
		y2 := int(sp.Top)
		if intersects(monX1, monY1, monX2, monY2, x1, y1, x2, y2) {
			acc.top = max(acc.top, intersectionSize(monX1, monY1, monX2, monY2, x1, y1, x2, y2).h)
		}
	}

	// Bottom strut: y=[rootHeight-Bottom,rootHeight), x=[BottomStartX,BottomEndX]
	if sp.Bottom > 0 {
		x1 := int(sp.BottomStartX)
		x2 := int(sp.BottomEndX) + 1
		y2 := rootHeight
		y1 := rootHeight - int(sp.Bottom)
		if intersects(monX1, monY1, monX2, monY2, x1, y1, x2, y2) {
			acc.bottom = max(acc.bottom, intersectionSize(monX1, monY1, monX2, monY2, x1, y1, x2, y2).h)
		}
	}

	// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
	if sp.Left > 0 {
		x1 := 0
		x2 := int(sp.Left)
		y1 := int(sp.LeftStartY)
		y2 := int(sp.LeftEndY) + 1
		if intersects(monX1, monY1, monX2, monY2, x1, y1, x2, y2) {
			acc.left = max(acc.left, intersectionSize(monX1, monY1, monX2, monY2, x1, y1, x2, y2).w)
		}
	}

	// Right strut: x=[rootWidth-Right,rootWidth), y=[RightStartY,RightEndY]
	if sp.Right > 0 {
		x2 := rootWidth
		x1 := rootWidth - int(sp.Right)
		y1 := int(sp.RightStartY)
		y2 := int(sp.RightEndY) + 1
		if intersects(monX1, monY1, monX2, monY2, x1, y1, x2, y2) {
			acc.right = max(acc.right, intersectionSize(monX1, monY1, monX2, monY2, x1, y1, x2, y2).w)
		}
	}
}

type intersection struct {
	w int
	h int
}

func intersectionSize(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 int) intersection {
	x1 := max(ax1, bx1)
	y1 := max(ay1, by1)
	x2 := min(ax2, bx2)
	y2 := min(ay2, by2)

	if x2 <= x1 || y2 <= y1 {
		return intersection{}
	}
	return intersection{w: x2 - x1, h: y2 - y1}
}

func intersects(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 int) bool {
	isect := intersectionSize(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2)
	return isect.w > 0 && isect.h > 0
}
