package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/vd09-projects/v8toistanbul/internal/cov"
	"github.com/vd09-projects/v8toistanbul/internal/emit"
	"github.com/vd09-projects/v8toistanbul/internal/model"
	"github.com/vd09-projects/v8toistanbul/internal/scanner"
	"github.com/vd09-projects/v8toistanbul/internal/source"
	"github.com/vd09-projects/v8toistanbul/internal/utils"
)

type Options struct {
	WrapperLength int
	UTF16         bool
	// Workers bounds concurrent conversions; values below 1 mean 1.
	Workers int
	// SkipMissing skips scripts whose source file no longer exists instead
	// of failing the run.
	SkipMissing bool
}

// Result counts what a run did.
type Result struct {
	Inputs  int
	Written int
	Skipped int
}

type Pipeline struct {
	Reader  *scanner.CoverageReader
	Filter  *scanner.Filter
	Loader  source.Loader
	Emitter emit.Emitter
	Log     *slog.Logger
}

func New(reader *scanner.CoverageReader, filter *scanner.Filter, loader source.Loader, em emit.Emitter, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{Reader: reader, Filter: filter, Loader: loader, Emitter: em, Log: log}
}

type unit struct {
	path   string
	url    string
	blocks []model.FunctionCoverage
}

func (p *Pipeline) Run(ctx context.Context, opts Options) (Result, error) {
	var res Result

	// list & select scripts
	files, err := p.Reader.List()
	if err != nil {
		return res, err
	}
	res.Inputs = len(files)
	units, skipped, err := p.collect(files)
	if err != nil {
		return res, err
	}
	res.Skipped = skipped

	// convert, one independent script per goroutine
	out := make([]*model.FileCoverage, len(units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(utils.Max(1, opts.Workers))
	for i, u := range units {
		i, u := i, u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fc, err := p.convert(u, opts)
			if err != nil {
				if opts.SkipMissing && errors.Is(err, fs.ErrNotExist) {
					p.Log.Warn("skipping script without source", "url", u.url, "err", err)
					return nil
				}
				return err
			}
			out[i] = fc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	// drop skipped slots, keep input order
	converted := out[:0]
	for _, fc := range out {
		if fc == nil {
			res.Skipped++
			continue
		}
		converted = append(converted, fc)
	}
	if err := p.Emitter.Emit(converted); err != nil {
		return res, err
	}
	res.Written = len(converted)
	return res, nil
}

// collect reads every input file and keeps the scripts that map to a
// selected local path. Later duplicates of a path are skipped.
func (p *Pipeline) collect(files []string) ([]unit, int, error) {
	var (
		units   []unit
		skipped int
		seen    = make(map[string]string)
	)
	for _, file := range files {
		scripts, err := p.Reader.Read(file)
		if err != nil {
			return nil, 0, err
		}
		p.Log.Debug("read coverage", "file", file, "scripts", len(scripts))
		for _, sc := range scripts {
			path, err := p.Loader.Path(sc.URL)
			if errors.Is(err, source.ErrUnsupportedURL) {
				p.Log.Debug("skipping script", "url", sc.URL, "reason", err)
				skipped++
				continue
			}
			if err != nil {
				return nil, 0, err
			}
			if !p.Filter.Match(path) {
				p.Log.Debug("skipping script", "path", path, "reason", "filtered")
				skipped++
				continue
			}
			if first, dup := seen[path]; dup {
				p.Log.Warn("skipping duplicate script", "path", path, "file", file, "first", first)
				skipped++
				continue
			}
			seen[path] = file
			units = append(units, unit{path: path, url: sc.URL, blocks: sc.Functions})
		}
	}
	return units, skipped, nil
}

func (p *Pipeline) convert(u unit, opts Options) (*model.FileCoverage, error) {
	path, text, err := p.Loader.Load(u.url)
	if err != nil {
		return nil, err
	}
	var covOpts []cov.Option
	if opts.UTF16 {
		covOpts = append(covOpts, cov.WithUTF16Offsets())
	}
	script, err := cov.New(path, text, opts.WrapperLength, covOpts...)
	if err != nil {
		return nil, err
	}
	script.ApplyCoverage(u.blocks)
	fc := script.FileCoverage()
	p.Log.Debug("converted script", "path", path, "lines", len(fc.S),
		"branches", len(fc.B), "functions", len(fc.F))
	return fc, nil
}
