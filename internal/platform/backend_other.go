//go:build !windows && !linux

package platform

// New reports that no window backend exists for this platform.
func New(opts Options) (Backend, error) {
	return nil, ErrUnsupportedPlatform
}

// ResolveProcessName is unavailable without a backend.
func ResolveProcessName(pid uint32) *string {
	return nil
}
