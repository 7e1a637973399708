//go:build !linux

package diskinfo

func mountTable() ([]Mount, error) {
	return nil, ErrUnsupported
}

func statfs(string) (Info, error) {
	return Info{}, ErrUnsupported
}
