// Package diskinfo reports capacity and free space of mounted file systems.
package diskinfo

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ErrUnsupported is returned on platforms without a statfs implementation.
var ErrUnsupported = errors.New("disk information is not supported on this platform")

// Mount is one entry of the mount table.
type Mount struct {
	Device     string
	MountPoint string
	FSType     string
}

// Info describes one mounted file system.
type Info struct {
	MountPoint string `json:"mount_point" yaml:"mount_point"`
	Device     string `json:"device,omitempty" yaml:"device,omitempty"`
	FSType     string `json:"fs_type,omitempty" yaml:"fs_type,omitempty"`
	Total      uint64 `json:"total" yaml:"total"`
	Free       uint64 `json:"free" yaml:"free"`
	Available  uint64 `json:"available" yaml:"available"`
}

// Used returns the bytes in use.
func (i Info) Used() uint64 {
	return i.Total - i.Free
}

// ParseMounts reads a /proc/mounts style table.
func ParseMounts(r io.Reader) ([]Mount, error) {
	var mounts []Mount
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			continue
		}
		mounts = append(mounts, Mount{
			Device:     unescape(fields[0]),
			MountPoint: unescape(fields[1]),
			FSType:     fields[2],
		})
	}
	return mounts, sc.Err()
}

// unescape decodes the octal escapes the kernel uses for spaces, tabs,
// newlines and backslashes in mount table fields.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && isOctal(s[i+1]) && isOctal(s[i+2]) && isOctal(s[i+3]) {
			sb.WriteByte((s[i+1]-'0')<<6 | (s[i+2]-'0')<<3 | (s[i+3] - '0'))
			i += 3
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func isOctal(b byte) bool {
	return b >= '0' && b <= '7'
}

// Collect returns disk information for the given paths, or for every
// mounted file system when paths is empty. With all unset, file systems
// reporting zero capacity (proc, sysfs and the like) are left out.
func Collect(paths []string, all bool) ([]Info, error) {
	var mounts []Mount
	if len(paths) == 0 {
		var err error
		if mounts, err = mountTable(); err != nil {
			return nil, err
		}
	} else {
		for _, p := range paths {
			mounts = append(mounts, Mount{MountPoint: p})
		}
	}

	var infos []Info
	for _, m := range mounts {
		info, err := statfs(m.MountPoint)
		if err != nil {
			if len(paths) > 0 {
				return nil, err
			}
			continue
		}
		info.Device = m.Device
		info.FSType = m.FSType
		if !all && info.Total == 0 {
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}
