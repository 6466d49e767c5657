package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"github.com/vd09-projects/v8toistanbul/internal/logging"
	"github.com/vd09-projects/v8toistanbul/internal/model"
	"github.com/vd09-projects/v8toistanbul/internal/scanner"
	"github.com/vd09-projects/v8toistanbul/internal/source"
)

type captureEmitter struct {
	files []*model.FileCoverage
}

func (c *captureEmitter) Emit(files []*model.FileCoverage) error {
	c.files = append(c.files, files...)
	return nil
}

func extract(t *testing.T, archive string) string {
	t.Helper()
	ar, err := txtar.ParseFile(archive)
	if err != nil {
		t.Fatal(err)
	}
	root := t.TempDir()
	for _, f := range ar.Files {
		p := filepath.Join(root, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, f.Data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func newPipeline(root string, em *captureEmitter) *Pipeline {
	return New(
		scanner.NewCoverageReader([]string{filepath.Join(root, "coverage")}),
		&scanner.Filter{Exclude: []*regexp.Regexp{regexp.MustCompile(`(^|/)node_modules/`)}},
		source.Loader{Root: root},
		em,
		logging.Discard(),
	)
}

func TestRun(t *testing.T) {
	root := extract(t, filepath.Join("testdata", "run.txtar"))
	em := &captureEmitter{}

	res, err := newPipeline(root, em).Run(context.Background(), Options{Workers: 4, SkipMissing: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff(Result{Inputs: 2, Written: 1, Skipped: 4}, res); diff != "" {
		t.Errorf("Result mismatch (-want +got):\n%s", diff)
	}
	if len(em.files) != 1 {
		t.Fatalf("emitted %d files, want 1", len(em.files))
	}
	fc := em.files[0]
	if want := filepath.Join(root, "src", "a.js"); fc.Path != want {
		t.Errorf("path = %q, want %q", fc.Path, want)
	}
	if diff := cmp.Diff(model.Indexed[int]{3}, fc.S); diff != "" {
		t.Errorf("s mismatch (-want +got):\n%s", diff)
	}
	if len(fc.FnMap) != 1 || fc.FnMap[0].Name != "f" || fc.F[0] != 3 {
		t.Errorf("functions = %+v / %v, want f with count 3", fc.FnMap, fc.F)
	}
}

func TestRunMissingSourceFails(t *testing.T) {
	root := extract(t, filepath.Join("testdata", "run.txtar"))
	em := &captureEmitter{}

	_, err := newPipeline(root, em).Run(context.Background(), Options{Workers: 1})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Run error = %v, want fs.ErrNotExist", err)
	}
	if len(em.files) != 0 {
		t.Errorf("emitted %d files after a failed run", len(em.files))
	}
}

func TestRunCancelled(t *testing.T) {
	root := extract(t, filepath.Join("testdata", "run.txtar"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPipeline(root, &captureEmitter{}).Run(ctx, Options{SkipMissing: true})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}

func TestRunWrapperAndUTF16(t *testing.T) {
	root := t.TempDir()
	src := "const s = 'é'\nrun()\n"
	if err := os.WriteFile(filepath.Join(root, "u.js"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	// offsets in UTF-16 units behind a 62 unit wrapper; line 2 is [14,19]
	doc := `{"result":[{"scriptId":"1","url":"u.js","functions":[
		{"functionName":"","isBlockCoverage":true,"ranges":[{"startOffset":76,"endOffset":81,"count":7}]}]}]}`
	if err := os.MkdirAll(filepath.Join(root, "coverage"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "coverage", "c.json"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	em := &captureEmitter{}
	if _, err := newPipeline(root, em).Run(context.Background(), Options{WrapperLength: 62, UTF16: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	fc := em.files[0]
	if diff := cmp.Diff(model.Indexed[int]{0, 7}, fc.S); diff != "" {
		t.Errorf("s mismatch (-want +got):\n%s", diff)
	}
	if got := fc.StatementMap[0].End.Column; got != 13 {
		t.Errorf("line 1 end column = %d, want 13", got)
	}
}
