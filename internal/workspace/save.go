package workspace

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/1broseidon/winlayout/internal/platform"
)

// Save captures the placement of every window the lister reports. The
// snapshot is not persisted; pass it to Write.
func Save(name string, lister WindowLister) (*WorkspaceConfig, error) {
	if lister == nil {
		return nil, fmt.Errorf("window lister is nil")
	}
	name = strings.TrimSpace(name)
	if err := validateWorkspaceName(name); err != nil {
		return nil, err
	}

	windows := lister.ScanWindows()
	sortWindows(windows)

	out := &WorkspaceConfig{
		Name:    name,
		SavedAt: time.Now().UTC().Truncate(time.Second),
		Windows: make([]WindowPlacement, 0, len(windows)),
	}
	for _, w := range windows {
		p := WindowPlacement{
			Handle: int64(w.Handle),
			Title:  w.Title,
			Class:  w.Class,
			X:      w.Bounds.X,
			Y:      w.Bounds.Y,
			Width:  w.Bounds.Width,
			Height: w.Bounds.Height,
		}
		if w.ProcessName != nil {
			p.ProcessName = *w.ProcessName
		}
		out.Windows = append(out.Windows, p)
	}
	return out, nil
}

// sortWindows orders windows top-to-bottom, left-to-right so snapshots of
// the same desktop diff cleanly.
func sortWindows(windows []platform.Window) {
	sort.SliceStable(windows, func(i, j int) bool {
		wi, wj := windows[i], windows[j]
		if wi.Bounds.Y != wj.Bounds.Y {
			return wi.Bounds.Y < wj.Bounds.Y
		}
		if wi.Bounds.X != wj.Bounds.X {
			return wi.Bounds.X < wj.Bounds.X
		}
		return wi.Handle < wj.Handle
	})
}
