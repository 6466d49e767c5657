package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/vd09-projects/v8toistanbul/internal/config"
	"github.com/vd09-projects/v8toistanbul/internal/utils"
)

var version = "dev"

const defaultConfig = config.DefaultFile

// Globals are flags shared by every command.
type Globals struct {
	Config    string           `help:"YAML config file. Defaults to ${default_config} when present." type:"path" placeholder:"FILE"`
	LogLevel  string           `help:"Log level: debug, info, warn or error." placeholder:"LEVEL"`
	LogFormat string           `help:"Log format: text or json." placeholder:"FORMAT"`
	Version   kong.VersionFlag `help:"Print the version and exit."`
}

type CLI struct {
	Globals

	Convert ConvertCmd `cmd:"" default:"withargs" help:"Convert V8 precise coverage into Istanbul file coverage."`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("v8toistanbul"),
		kong.Description("Convert V8 precise coverage (NODE_V8_COVERAGE) into Istanbul coverage maps."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{
			"version":        version,
			"default_config": defaultConfig,
		},
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	utils.MustNotErr(err)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	err = ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
