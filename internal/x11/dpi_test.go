package x11

import "testing"

func TestParseXftDPI(t *testing.T) {
	tests := []struct {
		name      string
		resources string
		want      uint32
		wantOK    bool
	}{
		{"integer", "Xft.antialias:\t1\nXft.dpi:\t144\nXft.hinting:\t1\n", 144, true},
		{"fractional rounds", "Xft.dpi: 120.6", 121, true},
		{"missing", "Xft.antialias:\t1\n", 0, false},
		{"empty", "", 0, false},
		{"garbage value", "Xft.dpi: high", 0, false},
		{"zero", "Xft.dpi: 0", 0, false},
		{"similar key ignored", "Xft.dpiScale: 2\nXft.dpi: 96", 96, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseXftDPI(tt.resources)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("parseXftDPI(%q) = (%d, %v), want (%d, %v)", tt.resources, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
