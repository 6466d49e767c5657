package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/vd09-projects/v8toistanbul/internal/config"
	"github.com/vd09-projects/v8toistanbul/internal/emit"
	"github.com/vd09-projects/v8toistanbul/internal/logging"
	"github.com/vd09-projects/v8toistanbul/internal/pipeline"
	"github.com/vd09-projects/v8toistanbul/internal/scanner"
	"github.com/vd09-projects/v8toistanbul/internal/source"
)

type ConvertCmd struct {
	Inputs []string `arg:"" optional:"" env:"NODE_V8_COVERAGE" help:"V8 coverage files or directories (.json, .jsonl, optionally .gz/.xz). '-' reads stdin."`

	Out           string   `short:"o" type:"path" help:"Output file, or directory for --format=dir. Defaults to stdout."`
	Format        string   `short:"f" help:"Output format: json, jsonl or dir."`
	Pretty        bool     `help:"Indent JSON output."`
	WrapperLength int      `default:"-1" help:"Offset correction for a runtime-injected preamble. -1 derives it from --node-version."`
	NodeVersion   string   `help:"Node.js version that produced the coverage, e.g. v10.15.0."`
	Include       []string `help:"Only convert scripts whose path matches one of these regexes."`
	Exclude       []string `help:"Skip scripts whose path matches one of these regexes (replaces configured excludes)."`
	Root          string   `type:"path" help:"Directory that relative script URLs resolve against."`
	UTF16         bool     `name:"utf16" help:"Measure offsets and columns in UTF-16 code units."`
	Workers       int      `help:"Scripts converted concurrently. Defaults to the number of CPUs."`
	SkipMissing   bool     `help:"Skip scripts whose source file no longer exists."`
}

// apply overrides cfg with every flag given on the command line.
func (c *ConvertCmd) apply(g *Globals, cfg *config.Config) {
	if c.Out != "" {
		cfg.Out = c.Out
	}
	if c.Format != "" {
		cfg.Format = c.Format
	}
	if c.WrapperLength != -1 {
		cfg.WrapperLength = c.WrapperLength
	}
	if c.NodeVersion != "" {
		cfg.NodeVersion = c.NodeVersion
	}
	if len(c.Include) > 0 {
		cfg.Include = c.Include
	}
	if len(c.Exclude) > 0 {
		cfg.Exclude = c.Exclude
	}
	if c.Root != "" {
		cfg.Root = c.Root
	}
	if c.Workers != 0 {
		cfg.Workers = c.Workers
	}
	cfg.Pretty = cfg.Pretty || c.Pretty
	cfg.UTF16 = cfg.UTF16 || c.UTF16
	cfg.SkipMissing = cfg.SkipMissing || c.SkipMissing
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.LogFormat = g.LogFormat
	}
}

func (c *ConvertCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		return err
	}
	c.apply(g, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	log := logging.Init(level, format, os.Stderr)

	include, exclude, err := cfg.Patterns()
	if err != nil {
		return err
	}
	pl := pipeline.New(
		scanner.NewCoverageReader(c.Inputs),
		&scanner.Filter{Include: include, Exclude: exclude},
		source.Loader{Root: cfg.Root},
		newEmitter(cfg),
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	wrapperLength := cfg.ResolvedWrapperLength()
	log.Debug("starting conversion", "inputs", c.Inputs, "format", cfg.Format, "wrapperLength", wrapperLength)
	res, err := pl.Run(ctx, pipeline.Options{
		WrapperLength: wrapperLength,
		UTF16:         cfg.UTF16,
		Workers:       cfg.Workers,
		SkipMissing:   cfg.SkipMissing,
	})
	if err != nil {
		return err
	}
	printStatus(os.Stderr, res, cfg.Out)
	return nil
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Load(config.DefaultFile, false)
	}
	return config.Load(path, true)
}

func newEmitter(cfg config.Config) emit.Emitter {
	switch cfg.Format {
	case config.FormatJSONL:
		return emit.JSONLEmitter{OutPath: cfg.Out}
	case config.FormatDir:
		return emit.DirEmitter{Dir: cfg.Out, Pretty: cfg.Pretty}
	}
	return emit.JSONEmitter{OutPath: cfg.Out, Pretty: cfg.Pretty}
}

func printStatus(f *os.File, res pipeline.Result, out string) {
	wrote, detail := fmt.Sprint, fmt.Sprint
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		green := color.New(color.FgGreen, color.Bold)
		green.EnableColor()
		faint := color.New(color.Faint)
		faint.EnableColor()
		wrote, detail = green.Sprint, faint.Sprint
	}
	if out == "" {
		out = "stdout"
	}
	fmt.Fprintf(f, "%s %d file(s) to %s %s\n", wrote("wrote"), res.Written, out,
		detail(fmt.Sprintf("(%d input(s), %d script(s) skipped)", res.Inputs, res.Skipped)))
}
