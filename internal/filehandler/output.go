package filehandler

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

// WriteOutput runs write against outPath, or stdout when outPath is "".
// Files are written to a temporary sibling and renamed into place, so a
// failed run never leaves a truncated report behind.
func WriteOutput(outPath string, write func(w io.Writer) error) error {
	if outPath == "" {
		w := bufio.NewWriter(os.Stdout)
		if err := write(w); err != nil {
			return err
		}
		return w.Flush()
	}

	f, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return err
	}

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, outPath)
}
