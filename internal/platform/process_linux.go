//go:build linux

package platform

import (
	"os"
	"strconv"
	"strings"
)

// procRoot is swapped in tests.
var procRoot = "/proc"

// The kernel appends this to /proc/<pid>/exe once the binary is unlinked.
const deletedExeSuffix = " (deleted)"

// ResolveProcessName returns the lowercase executable base name of pid, or
// nil when /proc/<pid>/exe is unreadable (exited process, other user).
func ResolveProcessName(pid uint32) *string {
	if pid == 0 {
		return nil
	}
	target, err := os.Readlink(procRoot + "/" + strconv.FormatUint(uint64(pid), 10) + "/exe")
	if err != nil {
		return nil
	}
	return stringPtr(processBaseName(strings.TrimSuffix(target, deletedExeSuffix)))
}
