package platform

import (
	"strings"
	"unicode/utf16"
)

const (
	// ReferenceDPI is the platform baseline density that maps to a scale of 1.0.
	ReferenceDPI = 96

	// nameBufferLen bounds title and class reads: 511 code units plus NUL.
	nameBufferLen = 512

	// Process ids at or below this value belong to the system.
	reservedPIDMax = 4

	trayWindowClass     = "Shell_TrayWnd"
	overflowWindowClass = "NotifyIconOverflowWindow"
	desktopShellTitle   = "Program Manager"
)

// DPIScale converts an effective DPI reading into a ratio of ReferenceDPI.
func DPIScale(dpi uint32) float64 {
	return float64(dpi) / ReferenceDPI
}

// windowSource lazily reads per-window metadata so that Filter can stop at the
// first failing check without paying for later queries.
type windowSource interface {
	Title() string
	PID() uint32
	Class() string
}

// Filter decides whether a visible top-level window is user content.
type Filter struct {
	selfPID        uint32
	excludeClasses map[string]struct{}
	excludeTitles  map[string]struct{}
}

// NewFilter builds a filter that rejects windows owned by selfPID plus any
// extra classes or titles from opts.
func NewFilter(selfPID uint32, opts Options) Filter {
	f := Filter{
		selfPID:        selfPID,
		excludeClasses: make(map[string]struct{}, len(opts.ExcludeClasses)),
		excludeTitles:  make(map[string]struct{}, len(opts.ExcludeTitles)),
	}
	for _, c := range opts.ExcludeClasses {
		if c = strings.TrimSpace(c); c != "" {
			f.excludeClasses[c] = struct{}{}
		}
	}
	for _, t := range opts.ExcludeTitles {
		if t = strings.TrimSpace(t); t != "" {
			f.excludeTitles[t] = struct{}{}
		}
	}
	return f
}

// accept runs the relevance checks in order: title, owning pid, class, shell
// title. The returned values are only meaningful when ok is true.
func (f Filter) accept(p windowSource) (title string, pid uint32, class string, ok bool) {
	title = p.Title()
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", 0, "", false
	}

	pid = p.PID()
	if pid <= reservedPIDMax || pid == f.selfPID {
		return "", 0, "", false
	}

	class = p.Class()
	if f.isShellClass(class) {
		return "", 0, "", false
	}

	if trimmed == desktopShellTitle {
		return "", 0, "", false
	}
	if _, excluded := f.excludeTitles[trimmed]; excluded {
		return "", 0, "", false
	}

	return title, pid, class, true
}

func (f Filter) isShellClass(class string) bool {
	if strings.Contains(class, trayWindowClass) || strings.Contains(class, overflowWindowClass) {
		return true
	}
	_, excluded := f.excludeClasses[class]
	return excluded
}

// utf16BufferString decodes a fixed-size wide-character buffer. Decoding stops
// at the first NUL or at the end of the buffer; invalid surrogates become
// U+FFFD.
func utf16BufferString(buf []uint16) string {
	for i, c := range buf {
		if c == 0 {
			buf = buf[:i]
			break
		}
	}
	return string(utf16.Decode(buf))
}

// processBaseName returns the lowercase final segment of an executable path.
func processBaseName(path string) string {
	path = strings.TrimRight(path, `\/`)
	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		path = path[i+1:]
	}
	return strings.ToLower(path)
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
