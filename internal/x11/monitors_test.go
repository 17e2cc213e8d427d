package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"
)

func TestApplyDockStruts(t *testing.T) {
	// Two 1920x1080 monitors side by side on a 3840x1080 root.
	left := Area{X: 0, Y: 0, Width: 1920, Height: 1080}
	right := Area{X: 1920, Y: 0, Width: 1920, Height: 1080}

	tests := []struct {
		name     string
		partials []*ewmh.WmStrutPartial
		monitor  Area
		wantWork Area
	}{
		{
			name:     "no struts",
			monitor:  left,
			wantWork: left,
		},
		{
			name: "bottom panel on left monitor only",
			partials: []*ewmh.WmStrutPartial{
				{Bottom: 48, BottomStartX: 0, BottomEndX: 1919},
			},
			monitor:  left,
			wantWork: Area{X: 0, Y: 0, Width: 1920, Height: 1032},
		},
		{
			name: "bottom panel on left monitor leaves right untouched",
			partials: []*ewmh.WmStrutPartial{
				{Bottom: 48, BottomStartX: 0, BottomEndX: 1919},
			},
			monitor:  right,
			wantWork: right,
		},
		{
			name: "full width top bar",
			partials: []*ewmh.WmStrutPartial{
				{Top: 32, TopStartX: 0, TopEndX: 3839},
			},
			monitor:  right,
			wantWork: Area{X: 1920, Y: 32, Width: 1920, Height: 1048},
		},
		{
			name: "left dock and right dock",
			partials: []*ewmh.WmStrutPartial{
				{Left: 64, LeftStartY: 0, LeftEndY: 1079},
				{Right: 40, RightStartY: 0, RightEndY: 1079},
			},
			monitor:  left,
			wantWork: Area{X: 64, Y: 0, Width: 1856, Height: 1080},
		},
		{
			name: "largest overlapping strut wins",
			partials: []*ewmh.WmStrutPartial{
				{Top: 24, TopStartX: 0, TopEndX: 1919},
				{Top: 36, TopStartX: 0, TopEndX: 1919},
			},
			monitor:  left,
			wantWork: Area{X: 0, Y: 36, Width: 1920, Height: 1044},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := screenStruts{rootWidth: 3840, rootHeight: 1080, partials: tt.partials}
			if got := applyDockStruts(tt.monitor, s); got != tt.wantWork {
				t.Fatalf("applyDockStruts() = %+v, want %+v", got, tt.wantWork)
			}
		})
	}
}

func TestApplyDockStruts_ClampsToOnePixel(t *testing.T) {
	s := screenStruts{
		rootWidth:  800,
		rootHeight: 600,
		partials: []*ewmh.WmStrutPartial{
			{Top: 600, TopStartX: 0, TopEndX: 799},
		},
	}
	got := applyDockStruts(Area{Width: 800, Height: 600}, s)
	if got.Height != 1 {
		t.Fatalf("height = %d, want 1", got.Height)
	}
}

func TestFullSpanStrut(t *testing.T) {
	sp := fullSpanStrut(&ewmh.WmStrut{Bottom: 30}, 2560, 1440)
	if sp.Bottom != 30 || sp.BottomStartX != 0 || sp.BottomEndX != 2559 {
		t.Fatalf("unexpected partial strut: %+v", sp)
	}
	if sp.LeftEndY != 1439 || sp.RightEndY != 1439 {
		t.Fatalf("vertical ranges not full span: %+v", sp)
	}
}

func TestIntersectionSize(t *testing.T) {
	got := intersectionSize(0, 0, 100, 100, 50, 80, 200, 300)
	if got.w != 50 || got.h != 20 {
		t.Fatalf("intersectionSize = %+v, want w=50 h=20", got)
	}
	if intersects(0, 0, 100, 100, 100, 0, 200, 100) {
		t.Fatal("touching edges should not intersect")
	}
}
