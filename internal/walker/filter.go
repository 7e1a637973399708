package walker

import (
	"io/fs"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// foldCase is true on platforms whose default file systems compare names
// case-insensitively.
var foldCase = runtime.GOOS == "windows" || runtime.GOOS == "darwin"

// matcher tests single names against a one-segment expression in which only
// `*` and `?` are special.
type matcher struct {
	pattern string
	all     bool
}

var matchAll = matcher{pattern: "*", all: true}

// newMatcher escapes every doublestar metacharacter except `*` and `?` so a
// name such as "report[1]" matches itself.
func newMatcher(expr string) matcher {
	if expr == "*" {
		return matchAll
	}
	var sb strings.Builder
	for _, r := range expr {
		switch r {
		case '[', ']', '{', '}', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	pattern := sb.String()
	if foldCase {
		pattern = strings.ToLower(pattern)
	}
	return matcher{pattern: pattern}
}

func (m matcher) match(name string) bool {
	if m.all {
		return true
	}
	if foldCase {
		name = strings.ToLower(name)
	}
	ok, err := doublestar.Match(m.pattern, name)
	return err == nil && ok
}

// isHidden reports whether the entry is hidden by name convention or by a
// platform attribute.
func isHidden(name string, info fs.FileInfo) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return hasHiddenAttribute(info)
}
