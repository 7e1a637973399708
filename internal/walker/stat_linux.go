//go:build linux

package walker

import (
	"time"

	"golang.org/x/sys/unix"
)

type unixStatProvider struct{}

// PlatformStatProvider returns the lstat-backed provider, or nil where the
// platform has none.
func PlatformStatProvider() StatProvider {
	return unixStatProvider{}
}

func (unixStatProvider) Lstat(path string) (*UnixStat, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return nil, err
	}
	return &UnixStat{
		Device:     uint64(st.Dev),
		Inode:      uint64(st.Ino),
		Mode:       uint32(st.Mode),
		Links:      uint64(st.Nlink),
		UID:        st.Uid,
		GID:        st.Gid,
		Rdev:       uint64(st.Rdev),
		Size:       st.Size,
		BlockSize:  int64(st.Blksize),
		Blocks:     int64(st.Blocks),
		AccessTime: time.Unix(st.Atim.Unix()),
		ModifyTime: time.Unix(st.Mtim.Unix()),
		ChangeTime: time.Unix(st.Ctim.Unix()),
	}, nil
}
