package scanner

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Filter selects scripts by path. A path is kept when it matches any
// include expression (or there are none) and no exclude expression.
// Matching is done on the slash-separated form of the path.
type Filter struct {
	Include []*regexp.Regexp
	Exclude []*regexp.Regexp
}

func (f *Filter) Match(path string) bool {
	if f == nil {
		return true
	}
	p := toPosix(path)
	if len(f.Include) > 0 && !matchAny(p, f.Include) {
		return false
	}
	return !matchAny(p, f.Exclude)
}

func matchAny(p string, res []*regexp.Regexp) bool {
	for _, r := range res {
		if r.MatchString(p) {
			return true
		}
	}
	return false
}

func toPosix(p string) string { return strings.ReplaceAll(p, string(filepath.Separator), "/") }
