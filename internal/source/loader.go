// Package source resolves script URLs reported by the runtime to files on
// disk and reads their text.
package source

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedURL is returned for scripts that do not live on the local
// filesystem (node: internals, http:, data:, eval'd code).
var ErrUnsupportedURL = errors.New("unsupported script url")

type Loader struct {
	// Root resolves relative script paths. Empty means the working directory.
	Root string
}

// Path maps a script URL to a filesystem path.
func (l Loader) Path(scriptURL string) (string, error) {
	if scriptURL == "" {
		return "", fmt.Errorf("%w: empty", ErrUnsupportedURL)
	}
	p := scriptURL
	if strings.HasPrefix(scriptURL, "file://") {
		u, err := url.Parse(scriptURL)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrUnsupportedURL, scriptURL, err)
		}
		p = filepath.FromSlash(u.Path)
	} else if hasScheme(scriptURL) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedURL, scriptURL)
	}
	if !filepath.IsAbs(p) && l.Root != "" {
		p = filepath.Join(l.Root, p)
	}
	return p, nil
}

// Load returns the resolved path and the text of the script at scriptURL.
// Read failures are returned as-is wrapped with the path.
func (l Loader) Load(scriptURL string) (path, text string, err error) {
	path, err = l.Path(scriptURL)
	if err != nil {
		return "", "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("could not read %q: %w", path, err)
	}
	return path, string(b), nil
}

// hasScheme reports whether s starts with "scheme:". A single drive letter
// ("C:\...") is not a scheme.
func hasScheme(s string) bool {
	i := strings.IndexByte(s, ':')
	if i <= 1 {
		return false
	}
	for _, r := range s[:i] {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9', r == '+', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}
