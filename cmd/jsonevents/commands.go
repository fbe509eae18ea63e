package main

import (
	"github.com/scott-cotton/cli"
)

// MainConfig holds the flags and state shared by every subcommand.
type MainConfig struct {
	Main *cli.Command
}

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	return cli.NewCommandAt(&cfg.Main, "jsonevents").
		WithSynopsis("jsonevents <command> [opts] [files]").
		WithDescription("jsonevents inspects JSON documents via the pulljson event stream.").
		WithSubs(
			DumpCommand(cfg),
			DiffCommand(cfg),
			BenchCommand(cfg),
		)
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d").
		WithSynopsis("dump [-o yaml] [-color] [files...]").
		WithDescription("dump prints the event trace (or a YAML re-emission) of one or more JSON files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runDump(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithSynopsis("diff [files...]").
		WithDescription("diff decodes each file with both pulljson and segmentio/encoding/json and reports any semantic disagreement").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runDiff(cfg, cc, args)
		})
}

func BenchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BenchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Bench, "bench").
		WithSynopsis("bench [-n iterations] <file>").
		WithDescription("bench repeatedly tokenizes a file and reports throughput").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runBench(cfg, cc, args)
		})
}
