package walker

import (
	"path/filepath"
	"strings"
)

const wildcards = "*?"

// Pattern is a path split into its non-empty segments.
type Pattern struct {
	Volume   string // Windows volume name, empty elsewhere.
	Absolute bool
	Segments []string
}

// HasWildcard reports whether s contains `*` or `?`.
func HasWildcard(s string) bool {
	return strings.ContainsAny(s, wildcards)
}

// ParsePattern splits path on the platform separator, dropping empty segments.
func ParsePattern(path string) Pattern {
	vol := filepath.VolumeName(path)
	rest := path[len(vol):]

	p := Pattern{
		Volume:   vol,
		Absolute: strings.HasPrefix(rest, separator),
	}
	for _, seg := range strings.Split(rest, separator) {
		if seg != "" {
			p.Segments = append(p.Segments, seg)
		}
	}
	return p
}

// Root is the directory the first segment is resolved against.
func (p Pattern) Root() string {
	if p.Absolute {
		return p.Volume + separator
	}
	if p.Volume != "" {
		return p.Volume
	}
	return "."
}

// String joins the pattern back into a path.
func (p Pattern) String() string {
	joined := strings.Join(p.Segments, separator)
	if p.Absolute {
		return p.Volume + separator + joined
	}
	return p.Volume + joined
}

// LiteralRoot returns the directory formed by the segments before the first
// wildcard. For a pattern without wildcards it is the whole path.
func (p Pattern) LiteralRoot() string {
	root := p.Root()
	for _, seg := range p.Segments {
		if HasWildcard(seg) {
			break
		}
		root = filepath.Join(root, seg)
	}
	return root
}
