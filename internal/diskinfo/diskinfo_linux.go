//go:build linux

package diskinfo

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func mountTable() ([]Mount, error) {
	f, err := os.Open("/proc/self/mounts")
	if err != nil {
		return nil, fmt.Errorf("reading mount table: %w", err)
	}
	defer f.Close()
	return ParseMounts(f)
}

func statfs(path string) (Info, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return Info{}, fmt.Errorf("statfs %s: %w", path, err)
	}
	bsize := uint64(st.Bsize)
	return Info{
		MountPoint: path,
		Total:      st.Blocks * bsize,
		Free:       st.Bfree * bsize,
		Available:  st.Bavail * bsize,
	}, nil
}
