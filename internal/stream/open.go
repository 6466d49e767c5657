package stream

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// Open returns a reader for path, transparently decompressing ".gz" and
// ".xz" files. path == "" or "-" reads os.Stdin.
func Open(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{Reader: os.Stdin}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gzr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip %s: %w", path, err)
		}
		return compositeCloser{r: gzr, c: f}, nil
	case ".xz":
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz %s: %w", path, err)
		}
		return compositeCloser{r: io.NopCloser(xzr), c: f}, nil
	}
	return f, nil
}

// BaseExt returns the extension of path ignoring a trailing compression
// extension: "a.jsonl.gz" -> ".jsonl".
func BaseExt(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gz" || ext == ".xz" {
		path = strings.TrimSuffix(path, filepath.Ext(path))
		ext = strings.ToLower(filepath.Ext(path))
	}
	return ext
}

// --- helpers ---

type nopCloser struct{ io.Reader }

func (n nopCloser) Close() error { return nil }

type compositeCloser struct {
	r io.ReadCloser
	c io.Closer
}

func (cc compositeCloser) Read(p []byte) (int, error) { return cc.r.Read(p) }
func (cc compositeCloser) Close() error {
	_ = cc.r.Close()
	return cc.c.Close()
}
