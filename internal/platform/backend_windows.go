//go:build windows

package platform

import (
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	shcore = windows.NewLazySystemDLL("shcore.dll")

	procGetWindowTextW      = user32.NewProc("GetWindowTextW")
	procSetWindowPos        = user32.NewProc("SetWindowPos")
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	procGetDpiForMonitor    = shcore.NewProc("GetDpiForMonitor")
)

const (
	mdtEffectiveDPI = 0
	ccDeviceName    = 32

	eNotImpl = 0x80004001
)

// Native callbacks cannot be released once created, so each enumeration
// entry point owns exactly one for the life of the process. The per-call
// handler travels through lparam and never outlives the enumerating call.
var (
	enumWindowsCallback = windows.NewCallback(func(hwnd windows.HWND, lparam uintptr) uintptr {
		visit := *(*func(windows.HWND) bool)(unsafe.Pointer(lparam))
		if visit(hwnd) {
			return 1
		}
		return 0
	})

	enumMonitorsCallback = windows.NewCallback(func(hmonitor, _, _, lparam uintptr) uintptr {
		visit := *(*func(win.HMONITOR) bool)(unsafe.Pointer(lparam))
		if visit(win.HMONITOR(hmonitor)) {
			return 1
		}
		return 0
	})
)

// enumWindows calls visit for every top-level window until visit returns false.
func enumWindows(visit func(windows.HWND) bool) {
	_ = windows.EnumWindows(enumWindowsCallback, unsafe.Pointer(&visit))
}

// enumMonitors calls visit for every active display until visit returns false.
func enumMonitors(visit func(win.HMONITOR) bool) {
	procEnumDisplayMonitors.Call(0, 0, enumMonitorsCallback, uintptr(unsafe.Pointer(&visit)))
}

type monitorInfoEx struct {
	win.MONITORINFO
	SzDevice [ccDeviceName]uint16
}

// WindowsBackend implements Backend on top of user32.
type WindowsBackend struct {
	filter Filter
}

var _ Backend = (*WindowsBackend)(nil)

// New returns the Win32 backend. It never fails.
func New(opts Options) (Backend, error) {
	return NewWindowsBackend(opts), nil
}

// NewWindowsBackend creates a backend that hides the current process's windows.
func NewWindowsBackend(opts Options) *WindowsBackend {
	return &WindowsBackend{filter: NewFilter(windows.GetCurrentProcessId(), opts)}
}

// ScanWindows lists visible top-level user windows in enumeration order.
func (b *WindowsBackend) ScanWindows() []Window {
	var out []Window
	enumWindows(func(hwnd windows.HWND) bool {
		if !win.IsWindowVisible(win.HWND(hwnd)) {
			return true
		}
		title, pid, class, ok := b.filter.accept(hwndSource{hwnd: hwnd})
		if !ok {
			return true
		}

		var rc win.RECT
		win.GetWindowRect(win.HWND(hwnd), &rc)

		out = append(out, Window{
			Handle:      WindowHandle(hwnd),
			Title:       title,
			Class:       class,
			PID:         pid,
			Bounds:      RectFromEdges(rc.Left, rc.Top, rc.Right, rc.Bottom),
			ProcessName: ResolveProcessName(pid),
		})
		return true
	})
	return out
}

// ScanMonitors lists active displays. Displays whose info query fails are
// dropped; a failed DPI query leaves DPIScale at zero.
func (b *WindowsBackend) ScanMonitors() []Monitor {
	var out []Monitor
	enumMonitors(func(hmonitor win.HMONITOR) bool {
		var mi monitorInfoEx
		mi.CbSize = uint32(unsafe.Sizeof(mi))
		if !win.GetMonitorInfo(hmonitor, &mi.MONITORINFO) {
			return true
		}

		rcMon := mi.RcMonitor
		rcWork := mi.RcWork
		out = append(out, Monitor{
			Name:     utf16BufferString(mi.SzDevice[:]),
			Bounds:   RectFromEdges(rcMon.Left, rcMon.Top, rcMon.Right, rcMon.Bottom),
			WorkArea: RectFromEdges(rcWork.Left, rcWork.Top, rcWork.Right, rcWork.Bottom),
			Primary:  mi.DwFlags&win.MONITORINFOF_PRIMARY != 0,
			DPIScale: DPIScale(monitorDPI(hmonitor)),
		})
		return true
	})
	return out
}

// SetWindowBounds moves and resizes the window, places it at the top of its
// peers, shows it and recalculates the frame.
//
// The OS may clamp the size to the window's minimum tracking size, so a later
// geometry read can differ from bounds.
func (b *WindowsBackend) SetWindowBounds(handle WindowHandle, bounds Rect) error {
	hwnd := windows.HWND(handle)
	if !windows.IsWindow(hwnd) {
		return ErrInvalidWindowHandle
	}

	r, _, err := procSetWindowPos.Call(
		uintptr(hwnd),
		uintptr(win.HWND_TOP),
		uintptr(bounds.X),
		uintptr(bounds.Y),
		uintptr(bounds.Width),
		uintptr(bounds.Height),
		uintptr(win.SWP_SHOWWINDOW|win.SWP_FRAMECHANGED),
	)
	if r == 0 {
		return newSetWindowPositionError(err)
	}
	return nil
}

// BringToForeground minimizes, restores, then activates the window. The
// show-state change is what lets a background process pass the foreground
// lock; none of the three steps report failure.
func (b *WindowsBackend) BringToForeground(handle WindowHandle) error {
	hwnd := windows.HWND(handle)
	if !windows.IsWindow(hwnd) {
		return ErrInvalidWindowHandle
	}

	w := win.HWND(hwnd)
	win.ShowWindow(w, win.SW_MINIMIZE)
	win.ShowWindow(w, win.SW_RESTORE)
	win.SetForegroundWindow(w)
	return nil
}

// hwndSource reads window metadata on demand for Filter.accept.
type hwndSource struct {
	hwnd windows.HWND
}

func (p hwndSource) Title() string {
	var buf [nameBufferLen]uint16
	n, _, _ := procGetWindowTextW.Call(
		uintptr(p.hwnd),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	if n == 0 || int(n) > len(buf) {
		return ""
	}
	return utf16BufferString(buf[:n])
}

func (p hwndSource) PID() uint32 {
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(p.hwnd, &pid); err != nil {
		return 0
	}
	return pid
}

func (p hwndSource) Class() string {
	var buf [nameBufferLen]uint16
	n, err := windows.GetClassName(p.hwnd, &buf[0], int32(len(buf)))
	if err != nil || n <= 0 {
		return ""
	}
	return utf16BufferString(buf[:n])
}

// getDpiForMonitor calls shcore!GetDpiForMonitor and returns its HRESULT.
// Tests replace it.
var getDpiForMonitor = func(hmonitor win.HMONITOR, dpiX, dpiY *uint32) uintptr {
	if procGetDpiForMonitor.Find() != nil {
		return eNotImpl
	}
	hr, _, _ := procGetDpiForMonitor.Call(
		uintptr(hmonitor),
		mdtEffectiveDPI,
		uintptr(unsafe.Pointer(dpiX)),
		uintptr(unsafe.Pointer(dpiY)),
	)
	return hr
}

// monitorDPI returns the horizontal effective DPI, or 0 when unavailable.
func monitorDPI(hmonitor win.HMONITOR) uint32 {
	var dpiX, dpiY uint32
	if hr := getDpiForMonitor(hmonitor, &dpiX, &dpiY); int32(hr) < 0 {
		return 0
	}
	return dpiX
}
