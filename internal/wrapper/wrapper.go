// Package wrapper knows how many bytes the Node.js CommonJS loader prepends
// to a module before handing it to V8.
package wrapper

import (
	"strconv"
	"strings"
)

// CommonJS is the preamble older Node.js versions wrapped modules in.
const CommonJS = "(function (exports, require, module, __filename, __dirname) { "

// Length returns the wrapper length for the given Node.js version
// ("v10.15.3", "12.0.0"). Node 10.16 and later report offsets relative to
// the unwrapped source. Earlier releases, including the 8.x line whose
// inspector Profiler already returns precise coverage, wrap every module.
// Unparseable versions yield 0.
func Length(nodeVersion string) int {
	major, minor, ok := parse(nodeVersion)
	if !ok {
		return 0
	}
	if major < 10 || (major == 10 && minor < 16) {
		return len(CommonJS)
	}
	return 0
}

func parse(v string) (major, minor int, ok bool) {
	parts := strings.SplitN(strings.TrimPrefix(strings.TrimSpace(v), "v"), ".", 3)
	if len(parts) < 2 {
		return 0, 0, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return major, minor, true
}
