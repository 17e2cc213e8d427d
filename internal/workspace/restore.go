package workspace

import (
	"fmt"
	"strings"

	"github.com/1broseidon/winlayout/internal/platform"
)

// Match kinds reported in AppliedPlacement.MatchedBy.
const (
	MatchHandle  = "handle"
	MatchTitle   = "title"
	MatchProcess = "process"
)

// Restore moves live windows back to the placements in cfg. Saved entries
// are matched to live windows in three passes: same handle and owner, then
// same owner and title, then same owner and class. Each live window is
// used at most once. Per-window failures are collected, not returned.
func Restore(cfg *WorkspaceConfig, lister WindowLister, placer WindowPlacer, opts RestoreOptions) (RestoreResult, error) {
	if cfg == nil {
		return RestoreResult{}, fmt.Errorf("workspace is nil")
	}
	if lister == nil || placer == nil {
		return RestoreResult{}, fmt.Errorf("window backend is nil")
	}

	live := lister.ScanWindows()
	sortWindows(live)
	matches := matchPlacements(cfg.Windows, live)

	var result RestoreResult
	for i, p := range cfg.Windows {
		m, ok := matches[i]
		if !ok {
			result.Missing = append(result.Missing, p)
			continue
		}
		if !opts.DryRun {
			if err := placer.SetWindowBounds(m.handle, p.bounds()); err != nil {
				result.Failed = append(result.Failed, FailedPlacement{Placement: p, Handle: m.handle, Err: err})
				continue
			}
		}
		result.Applied = append(result.Applied, AppliedPlacement{Placement: p, Handle: m.handle, MatchedBy: m.kind})
	}
	return result, nil
}

type placementMatch struct {
	handle platform.WindowHandle
	kind   string
}

func matchPlacements(saved []WindowPlacement, live []platform.Window) map[int]placementMatch {
	out := make(map[int]placementMatch, len(saved))
	used := make(map[platform.WindowHandle]bool, len(live))

	pass := func(kind string, same func(WindowPlacement, platform.Window) bool) {
		for i, p := range saved {
			if _, done := out[i]; done {
				continue
			}
			for _, w := range live {
				if used[w.Handle] || !sameOwner(p, w) || !same(p, w) {
					continue
				}
				used[w.Handle] = true
				out[i] = placementMatch{handle: w.Handle, kind: kind}
				break
			}
		}
	}

	pass(MatchHandle, func(p WindowPlacement, w platform.Window) bool {
		return p.Handle != 0 && platform.WindowHandle(p.Handle) == w.Handle && p.Class == w.Class
	})
	pass(MatchTitle, func(p WindowPlacement, w platform.Window) bool {
		return strings.TrimSpace(p.Title) == strings.TrimSpace(w.Title)
	})
	pass(MatchProcess, func(p WindowPlacement, w platform.Window) bool {
		return p.ProcessName != "" && p.Class == w.Class
	})
	return out
}

func sameOwner(p WindowPlacement, w platform.Window) bool {
	name := ""
	if w.ProcessName != nil {
		name = *w.ProcessName
	}
	return p.ProcessName == name
}
