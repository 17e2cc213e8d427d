package x11

import (
	"strconv"
	"strings"

	"github.com/BurntSushi/xgbutil/xprop"
)

// XftDPI returns the Xft.dpi value published in the root RESOURCE_MANAGER
// property, which desktop environments set to the effective DPI.
func (c *Connection) XftDPI() (uint32, bool) {
	resources, err := xprop.PropValStr(xprop.GetProperty(c.XUtil, c.Root, "RESOURCE_MANAGER"))
	if err != nil {
		return 0, false
	}
	return parseXftDPI(resources)
}

func parseXftDPI(resources string) (uint32, bool) {
	for _, line := range strings.Split(resources, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(key) != "Xft.dpi" {
			continue
		}
		dpi, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || dpi <= 0 {
			return 0, false
		}
		return uint32(dpi + 0.5), true
	}
	return 0, false
}
