package walker

import "time"

// UnixStat is the lstat record of an entry.
type UnixStat struct {
	Device     uint64    `json:"device" yaml:"device"`
	Inode      uint64    `json:"inode" yaml:"inode"`
	Mode       uint32    `json:"mode" yaml:"mode"`
	Links      uint64    `json:"links" yaml:"links"`
	UID        uint32    `json:"uid" yaml:"uid"`
	GID        uint32    `json:"gid" yaml:"gid"`
	Rdev       uint64    `json:"rdev" yaml:"rdev"`
	Size       int64     `json:"size" yaml:"size"`
	BlockSize  int64     `json:"block_size" yaml:"block_size"`
	Blocks     int64     `json:"blocks" yaml:"blocks"`
	AccessTime time.Time `json:"access_time" yaml:"access_time"`
	ModifyTime time.Time `json:"modify_time" yaml:"modify_time"`
	ChangeTime time.Time `json:"change_time" yaml:"change_time"`
}

// StatProvider looks up platform metadata for a path without following a
// final symlink. Lookups are best effort: on error the entry carries no stat.
type StatProvider interface {
	Lstat(path string) (*UnixStat, error)
}
