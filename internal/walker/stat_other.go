//go:build !linux

package walker

// PlatformStatProvider returns nil: extended metadata is only read on Linux.
func PlatformStatProvider() StatProvider {
	return nil
}
