package main

import (
	"github.com/alecthomas/kong"
	"github.com/lox/kozelassist/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Advise   AdviseCmd        `cmd:"" help:"Recommend a card for a position"`
	Legal    LegalCmd         `cmd:"" help:"List the legal cards for a position"`
	Simulate SimulateCmd      `cmd:"" help:"Run self-play games between advisors and random bots"`
	Stats    StatsCmd         `cmd:"" help:"Show recorded game statistics and recommendation efficacy"`
	Profiles ProfilesCmd      `cmd:"" help:"Inspect and maintain player profiles"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("kozel"),
		kong.Description("Rules and strategy assistant for four-player Kozel"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
