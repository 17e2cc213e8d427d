//go:build windows

package platform

import (
	"errors"
	"runtime"
	"testing"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var testWndProc = windows.NewCallback(func(hwnd, msg, wParam, lParam uintptr) uintptr {
	return win.DefWindowProc(win.HWND(hwnd), uint32(msg), wParam, lParam)
})

// createTestWindow opens a visible, titled top-level window owned by the test
// process. Callers must hold the OS thread for the window's lifetime.
func createTestWindow(t *testing.T, title string) win.HWND {
	t.Helper()

	className, _ := windows.UTF16PtrFromString("winlayoutTestWindow")
	titlePtr, _ := windows.UTF16PtrFromString(title)
	hinst := win.GetModuleHandle(nil)

	var wc win.WNDCLASSEX
	wc.CbSize = uint32(unsafe.Sizeof(wc))
	wc.LpfnWndProc = testWndProc
	wc.HInstance = hinst
	wc.LpszClassName = className
	// Re-registration on a later test fails harmlessly.
	win.RegisterClassEx(&wc)

	hwnd := win.CreateWindowEx(
		0,
		className,
		titlePtr,
		win.WS_OVERLAPPEDWINDOW|win.WS_VISIBLE,
		50, 50, 400, 300,
		0, 0, hinst, nil,
	)
	if hwnd == 0 {
		t.Fatalf("CreateWindowEx failed")
	}
	t.Cleanup(func() { win.DestroyWindow(hwnd) })
	return hwnd
}

func TestScanWindowsExcludesOwnProcess(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hwnd := createTestWindow(t, "winlayout self window")
	b := NewWindowsBackend(Options{})
	self := windows.GetCurrentProcessId()

	for _, w := range b.ScanWindows() {
		if w.Handle == WindowHandle(hwnd) {
			t.Fatalf("own window %d reported", hwnd)
		}
		if w.PID == self {
			t.Fatalf("window %q owned by the test process reported", w.Title)
		}
	}
}

func TestScanWindowsRelevance(t *testing.T) {
	b := NewWindowsBackend(Options{})
	seen := make(map[WindowHandle]bool)

	for _, w := range b.ScanWindows() {
		if seen[w.Handle] {
			t.Fatalf("duplicate handle %d", w.Handle)
		}
		seen[w.Handle] = true

		if f := NewFilter(0, Options{}); f.isShellClass(w.Class) {
			t.Errorf("shell class %q reported", w.Class)
		}
		if w.Title == desktopShellTitle {
			t.Errorf("desktop shell window reported")
		}
		if w.PID <= reservedPIDMax {
			t.Errorf("system pid %d reported for %q", w.PID, w.Title)
		}
		if w.ProcessName != nil && *w.ProcessName == "" {
			t.Errorf("empty non-nil process name for %q", w.Title)
		}
	}
}

func TestScanMonitors(t *testing.T) {
	monitors := NewWindowsBackend(Options{}).ScanMonitors()
	if len(monitors) == 0 {
		t.Skip("no active monitors (headless session)")
	}

	primaries := 0
	for _, m := range monitors {
		if m.Primary {
			primaries++
		}
		if m.Name == "" {
			t.Errorf("monitor with empty device name: %+v", m)
		}
		if m.DPIScale < 0 {
			t.Errorf("negative DPI scale for %s: %v", m.Name, m.DPIScale)
		}
		if m.WorkArea.Width > m.Bounds.Width || m.WorkArea.Height > m.Bounds.Height {
			t.Errorf("work area %+v exceeds bounds %+v", m.WorkArea, m.Bounds)
		}
	}
	if primaries != 1 {
		t.Logf("expected one primary monitor, found %d", primaries)
	}
}

func TestScanMonitorsDPIFailureKeepsMonitor(t *testing.T) {
	before := NewWindowsBackend(Options{}).ScanMonitors()
	if len(before) == 0 {
		t.Skip("no active monitors (headless session)")
	}

	old := getDpiForMonitor
	getDpiForMonitor = func(win.HMONITOR, *uint32, *uint32) uintptr {
		return 0x80070057 // E_INVALIDARG
	}
	t.Cleanup(func() { getDpiForMonitor = old })

	after := NewWindowsBackend(Options{}).ScanMonitors()
	if len(after) != len(before) {
		t.Fatalf("monitor count = %d with DPI failure, want %d", len(after), len(before))
	}
	for i, m := range after {
		if m.DPIScale != 0 {
			t.Errorf("%s DPIScale = %v, want 0", m.Name, m.DPIScale)
		}
		if m.Name != before[i].Name || m.Bounds != before[i].Bounds {
			t.Errorf("monitor %d = %+v, want %+v", i, m, before[i])
		}
	}
}

func TestScansAreIdempotent(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	b := NewWindowsBackend(Options{})

	handles := func() map[WindowHandle]bool {
		set := make(map[WindowHandle]bool)
		for _, w := range b.ScanWindows() {
			set[w.Handle] = true
		}
		return set
	}
	first, second := handles(), handles()
	if len(first) != len(second) {
		t.Fatalf("window scans differ: %d then %d handles", len(first), len(second))
	}
	for h := range first {
		if !second[h] {
			t.Fatalf("handle %d missing from second scan", h)
		}
	}

	m1, m2 := b.ScanMonitors(), b.ScanMonitors()
	if len(m1) != len(m2) {
		t.Fatalf("monitor scans differ: %d then %d", len(m1), len(m2))
	}
	for i := range m1 {
		if m1[i] != m2[i] {
			t.Fatalf("monitor %d: %+v then %+v", i, m1[i], m2[i])
		}
	}
}

func TestMutationsRejectDeadHandle(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hwnd := createTestWindow(t, "winlayout closed window")
	win.DestroyWindow(hwnd)

	b := NewWindowsBackend(Options{})
	handles := []WindowHandle{0, WindowHandle(hwnd), 0x7ffffff0}
	for _, h := range handles {
		if err := b.SetWindowBounds(h, Rect{X: 100, Y: 100, Width: 800, Height: 600}); !errors.Is(err, ErrInvalidWindowHandle) {
			t.Errorf("SetWindowBounds(%d) error = %v, want ErrInvalidWindowHandle", h, err)
		}
		if err := b.BringToForeground(h); !errors.Is(err, ErrInvalidWindowHandle) {
			t.Errorf("BringToForeground(%d) error = %v, want ErrInvalidWindowHandle", h, err)
		}
	}
}

// The OS may clamp sizes below the window's minimum tracking size; 800x600
// is well above it for an overlapped window.
func TestSetWindowBoundsRoundTrip(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hwnd := createTestWindow(t, "winlayout move target")
	b := NewWindowsBackend(Options{})

	want := Rect{X: 100, Y: 100, Width: 800, Height: 600}
	if err := b.SetWindowBounds(WindowHandle(hwnd), want); err != nil {
		t.Fatalf("SetWindowBounds: %v", err)
	}

	var rc win.RECT
	if !win.GetWindowRect(hwnd, &rc) {
		t.Fatal("GetWindowRect failed")
	}
	if got := RectFromEdges(rc.Left, rc.Top, rc.Right, rc.Bottom); got != want {
		t.Fatalf("window rect = %+v, want %+v", got, want)
	}
}

func TestBringToForegroundLiveWindow(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hwnd := createTestWindow(t, "winlayout focus target")
	if err := NewWindowsBackend(Options{}).BringToForeground(WindowHandle(hwnd)); err != nil {
		t.Fatalf("BringToForeground: %v", err)
	}
}

func TestResolveProcessNameSelf(t *testing.T) {
	got := ResolveProcessName(windows.GetCurrentProcessId())
	if got == nil {
		t.Fatal("ResolveProcessName(self) = nil")
	}
	if *got != processBaseName(*got) {
		t.Fatalf("name %q is not a lowercase base name", *got)
	}
	if ResolveProcessName(0) != nil {
		t.Fatal("ResolveProcessName(0) should fail to open the idle process")
	}
}
