package x11

import "testing"

func TestOuterArea(t *testing.T) {
	tests := []struct {
		name                     string
		client                   Area
		left, right, top, bottom int
		want                     Area
	}{
		{
			name:   "undecorated",
			client: Area{X: 100, Y: 100, Width: 800, Height: 600},
			want:   Area{X: 100, Y: 100, Width: 800, Height: 600},
		},
		{
			name:   "title bar and borders",
			client: Area{X: 102, Y: 130, Width: 796, Height: 568},
			left:   2, right: 2, top: 30, bottom: 2,
			want: Area{X: 100, Y: 100, Width: 800, Height: 600},
		},
		{
			name:   "frame left of origin",
			client: Area{X: -1916, Y: 28, Width: 960, Height: 1000},
			left:   4, right: 4, top: 28, bottom: 4,
			want: Area{X: -1920, Y: 0, Width: 968, Height: 1032},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outerArea(tt.client, tt.left, tt.right, tt.top, tt.bottom)
			if got != tt.want {
				t.Fatalf("outerArea = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClientSizeRoundTrip(t *testing.T) {
	// A move to an outer rect followed by a scan must report that rect.
	const left, right, top, bottom = 2, 2, 30, 2
	outer := Area{X: 100, Y: 100, Width: 800, Height: 600}

	width, height := clientSize(outer.Width, outer.Height, left, right, top, bottom)
	if width != 796 || height != 568 {
		t.Fatalf("clientSize = %dx%d, want 796x568", width, height)
	}

	// The WM places the frame at outer.X, outer.Y; the client sits inside it.
	client := Area{X: outer.X + left, Y: outer.Y + top, Width: width, Height: height}
	if got := outerArea(client, left, right, top, bottom); got != outer {
		t.Fatalf("round trip = %+v, want %+v", got, outer)
	}
}

func TestClientSizeClampsToOnePixel(t *testing.T) {
	width, height := clientSize(3, 10, 2, 2, 30, 2)
	if width != 1 || height != 1 {
		t.Fatalf("clientSize = %dx%d, want 1x1", width, height)
	}
}

func TestMoveResizeValues(t *testing.T) {
	got := moveResizeValues(-1920, -8, 960, 1040)
	want := []uint32{0xFFFFF880, 0xFFFFFFF8, 960, 1040}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("value %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}
