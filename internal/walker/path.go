package walker

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

const separator = string(filepath.Separator)

// NormalizePath turns a user-supplied path into an absolute one. Alternate
// separators are converted, trailing separators dropped, a leading `~` is
// expanded to the home directory, and relative paths are resolved against
// basePath. The result is not checked for existence.
func NormalizePath(path, basePath string) (string, error) {
	if err := checkPath(path); err != nil {
		return "", err
	}

	path = trimTrailingSeparators(filepath.FromSlash(path))

	if path == "~" || strings.HasPrefix(path, "~"+separator) {
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("%w: resolve home directory: %v", ErrPathSyntax, err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}

	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(filepath.Join(basePath, path))
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrPathSyntax, path, err)
		}
		path = abs
	}

	return filepath.Clean(path), nil
}

// trimTrailingSeparators strips trailing separators but keeps a bare root.
func trimTrailingSeparators(path string) string {
	trimmed := strings.TrimRight(path, separator)
	if trimmed == "" && path != "" {
		return separator
	}
	if vol := filepath.VolumeName(path); vol != "" && trimmed == vol && len(path) > len(vol) {
		return vol + separator
	}
	return trimmed
}

// checkPath rejects strings no host file system accepts.
func checkPath(path string) error {
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("%w: %q contains a NUL byte", ErrPathSyntax, path)
	}
	return nil
}
