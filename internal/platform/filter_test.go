package platform

import (
	"errors"
	"testing"
	"unicode/utf16"
)

type fakeSource struct {
	title string
	pid   uint32
	class string
	calls []string
}

func (p *fakeSource) Title() string {
	p.calls = append(p.calls, "title")
	return p.title
}

func (p *fakeSource) PID() uint32 {
	p.calls = append(p.calls, "pid")
	return p.pid
}

func (p *fakeSource) Class() string {
	p.calls = append(p.calls, "class")
	return p.class
}

func TestFilterAccept(t *testing.T) {
	const self = 4242
	tests := []struct {
		name string
		src  fakeSource
		want bool
	}{
		{"normal window", fakeSource{title: "Editor", pid: 1000, class: "Notepad"}, true},
		{"title kept untrimmed", fakeSource{title: "  Editor  ", pid: 1000, class: "Notepad"}, true},
		{"empty title", fakeSource{title: "", pid: 1000, class: "Notepad"}, false},
		{"whitespace title", fakeSource{title: " \t ", pid: 1000, class: "Notepad"}, false},
		{"system pid 0", fakeSource{title: "x", pid: 0, class: "c"}, false},
		{"system pid 4", fakeSource{title: "x", pid: 4, class: "c"}, false},
		{"pid 5 allowed", fakeSource{title: "x", pid: 5, class: "c"}, true},
		{"own process", fakeSource{title: "x", pid: self, class: "c"}, false},
		{"tray class", fakeSource{title: "x", pid: 1000, class: "Shell_TrayWnd"}, false},
		{"overflow class", fakeSource{title: "x", pid: 1000, class: "NotifyIconOverflowWindow"}, false},
		{"desktop shell title", fakeSource{title: "Program Manager", pid: 1000, class: "Progman"}, false},
		{"desktop shell title padded", fakeSource{title: " Program Manager ", pid: 1000, class: "Progman"}, false},
		{"title containing shell title", fakeSource{title: "Program Manager notes.txt", pid: 1000, class: "Notepad"}, true},
	}

	f := NewFilter(self, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.src
			title, pid, class, ok := f.accept(&p)
			if ok != tt.want {
				t.Fatalf("accept() ok = %v, want %v", ok, tt.want)
			}
			if !ok {
				return
			}
			if title != tt.src.title || pid != tt.src.pid || class != tt.src.class {
				t.Fatalf("accept() = (%q, %d, %q), want (%q, %d, %q)",
					title, pid, class, tt.src.title, tt.src.pid, tt.src.class)
			}
		})
	}
}

func TestFilterAcceptShortCircuits(t *testing.T) {
	f := NewFilter(99, Options{})

	p := &fakeSource{title: "   ", pid: 1000, class: "c"}
	f.accept(p)
	if len(p.calls) != 1 || p.calls[0] != "title" {
		t.Fatalf("empty title: calls = %v, want [title]", p.calls)
	}

	p = &fakeSource{title: "x", pid: 99, class: "c"}
	f.accept(p)
	if len(p.calls) != 2 || p.calls[1] != "pid" {
		t.Fatalf("own pid: calls = %v, want [title pid]", p.calls)
	}

	p = &fakeSource{title: "x", pid: 1000, class: "c"}
	f.accept(p)
	if len(p.calls) != 3 {
		t.Fatalf("accepted window: calls = %v, want all three", p.calls)
	}
}

func TestFilterExtraExclusions(t *testing.T) {
	f := NewFilter(1, Options{
		ExcludeClasses: []string{"Windows.UI.Core.CoreWindow", " "},
		ExcludeTitles:  []string{" Settings "},
	})

	if _, _, _, ok := f.accept(&fakeSource{title: "Start", pid: 100, class: "Windows.UI.Core.CoreWindow"}); ok {
		t.Fatal("expected extra class to be excluded")
	}
	if _, _, _, ok := f.accept(&fakeSource{title: "Settings", pid: 100, class: "ApplicationFrameWindow"}); ok {
		t.Fatal("expected extra title to be excluded")
	}
	if _, _, _, ok := f.accept(&fakeSource{title: "x", pid: 100, class: ""}); !ok {
		t.Fatal("blank exclusions must not match empty class")
	}
	// Built-in exclusions stay in force.
	if _, _, _, ok := f.accept(&fakeSource{title: "x", pid: 100, class: "Shell_TrayWnd"}); ok {
		t.Fatal("expected tray class to stay excluded")
	}
}

func TestDPIScale(t *testing.T) {
	tests := []struct {
		dpi  uint32
		want float64
	}{
		{96, 1.0},
		{120, 1.25},
		{144, 1.5},
		{192, 2.0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := DPIScale(tt.dpi); got != tt.want {
			t.Errorf("DPIScale(%d) = %v, want %v", tt.dpi, got, tt.want)
		}
	}
}

func TestRectFromEdges(t *testing.T) {
	got := RectFromEdges(-1920, 0, 0, 1080)
	want := Rect{X: -1920, Y: 0, Width: 1920, Height: 1080}
	if got != want {
		t.Fatalf("RectFromEdges = %+v, want %+v", got, want)
	}

	// Degenerate rectangles are reported as-is.
	got = RectFromEdges(100, 100, 90, 100)
	if got.Width != -10 || got.Height != 0 {
		t.Fatalf("degenerate RectFromEdges = %+v, want width -10 height 0", got)
	}
}

func TestUTF16BufferString(t *testing.T) {
	buf := make([]uint16, 8)
	copy(buf, utf16.Encode([]rune("DISPLAY1")))
	if got := utf16BufferString(buf); got != "DISPLAY1" {
		t.Fatalf("unterminated buffer = %q, want DISPLAY1", got)
	}

	buf = make([]uint16, 32)
	copy(buf, utf16.Encode([]rune(`\\.\DISPLAY2`)))
	if got := utf16BufferString(buf); got != `\\.\DISPLAY2` {
		t.Fatalf("terminated buffer = %q", got)
	}

	if got := utf16BufferString([]uint16{0, 'a', 'b'}); got != "" {
		t.Fatalf("leading NUL = %q, want empty", got)
	}

	// Lone surrogate decodes lossily.
	if got := utf16BufferString([]uint16{'a', 0xD800, 'b', 0}); got != "a\uFFFDb" {
		t.Fatalf("lone surrogate = %q", got)
	}

	wide := utf16.Encode([]rune("窗口 🪟"))
	if got := utf16BufferString(append(wide, 0)); got != "窗口 🪟" {
		t.Fatalf("surrogate pair = %q", got)
	}
}

func TestProcessBaseName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{`C:\Windows\System32\Notepad.EXE`, "notepad.exe"},
		{`C:\Program Files\Mozilla Firefox\firefox.exe`, "firefox.exe"},
		{"/usr/lib/firefox/Firefox-Bin", "firefox-bin"},
		{"Code.exe", "code.exe"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := processBaseName(tt.path); got != tt.want {
			t.Errorf("processBaseName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSetWindowPositionError(t *testing.T) {
	err := newSetWindowPositionError(errors.New("Access is denied."))

	var posErr *SetWindowPositionError
	if !errors.As(err, &posErr) {
		t.Fatalf("errors.As failed for %T", err)
	}
	if posErr.Detail != "Access is denied." {
		t.Fatalf("Detail = %q", posErr.Detail)
	}
	if got := err.Error(); got != "set window position failed: Access is denied." {
		t.Fatalf("Error() = %q", got)
	}
	if errors.Is(err, ErrInvalidWindowHandle) {
		t.Fatal("position error must not match ErrInvalidWindowHandle")
	}
}
