//go:build !windows

package walker

import "io/fs"

func hasHiddenAttribute(fs.FileInfo) bool {
	return false
}
