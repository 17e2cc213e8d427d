//go:build windows

package platform

import "golang.org/x/sys/windows"

// ResolveProcessName returns the lowercase executable base name of pid, or
// nil when the process cannot be opened or its image path cannot be read.
func ResolveProcessName(pid uint32) *string {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ, false, pid)
	if err != nil {
		return nil
	}
	defer windows.CloseHandle(h)

	var buf [windows.MAX_PATH]uint16
	if err := windows.GetModuleFileNameEx(h, 0, &buf[0], uint32(len(buf))); err != nil {
		return nil
	}
	return stringPtr(processBaseName(utf16BufferString(buf[:])))
}
