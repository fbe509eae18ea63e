package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	colorable "github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nanojson/pulljson/internal/domtree"
	"github.com/nanojson/pulljson/pulljson"
)

type DumpConfig struct {
	*MainConfig

	Color bool   `cli:"name=color desc='force colorized event trace output'"`
	Out   string `cli:"name=o desc='output mode: events (default) or yaml'"`

	Dump *cli.Command
}

func runDump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	results := make([][]byte, len(args))
	eg := &errgroup.Group{}
	eg.SetLimit(4)
	for i := range args {
		i, path := i, args[i]
		eg.Go(func() error {
			out, err := dumpOne(cfg, path)
			if err != nil {
				logger.Error("dump failed", zap.String("file", path), zap.Error(err))
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	w := cc.Out
	if cfg.colorEnabled() && cfg.Out != "yaml" && w == os.Stdout {
		// translates ANSI escapes for terminals that don't understand them
		// natively; a no-op passthrough on terminals that already do.
		w = colorable.NewColorableStdout()
	}
	for _, out := range results {
		w.Write(out)
	}
	return nil
}

func dumpOne(cfg *DumpConfig, path string) ([]byte, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	if cfg.Out == "yaml" {
		return dumpYAML(data)
	}
	return dumpTrace(data, cfg.colorEnabled())
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (cfg *DumpConfig) colorEnabled() bool {
	if cfg.Color {
		return true
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func dumpYAML(data []byte) ([]byte, error) {
	scratch := make([]byte, 4096)
	src := pulljson.NewSlice(data, scratch, pulljson.WithInt64(), pulljson.WithFloat())
	n, err := domtree.Build(src)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(n.ToAny())
}

var eventColors = map[pulljson.EventType]func(string, ...any) string{
	pulljson.TypeStartObject: color.RGB(128, 168, 196).SprintfFunc(),
	pulljson.TypeEndObject:   color.RGB(128, 168, 196).SprintfFunc(),
	pulljson.TypeStartArray:  color.RGB(196, 168, 128).SprintfFunc(),
	pulljson.TypeEndArray:    color.RGB(196, 168, 128).SprintfFunc(),
	pulljson.TypeKey:         color.RGB(196, 96, 16).SprintfFunc(),
	pulljson.TypeString:      color.RGB(8, 196, 16).SprintfFunc(),
	pulljson.TypeNumber:      color.RGB(128, 216, 236).SprintfFunc(),
	pulljson.TypeBool:        color.CyanString,
	pulljson.TypeNull:        color.RGB(168, 0, 196).SprintfFunc(),
}

func dumpTrace(data []byte, colorize bool) ([]byte, error) {
	scratch := make([]byte, 4096)
	drv := pulljson.NewSlice(data, scratch, pulljson.WithInt64(), pulljson.WithFloat())

	var buf []byte
	for {
		ev, err := drv.Next()
		if err != nil {
			return buf, err
		}
		buf = append(buf, renderEvent(ev, colorize)...)
		if ev.Type == pulljson.TypeEndDocument {
			return buf, nil
		}
	}
}

func renderEvent(ev pulljson.Event, colorize bool) []byte {
	line := ev.Type.String()
	switch ev.Type {
	case pulljson.TypeKey, pulljson.TypeString:
		line = fmt.Sprintf("%s %q", line, ev.Text.Bytes)
	case pulljson.TypeNumber:
		line = fmt.Sprintf("%s %s", line, ev.Num)
	case pulljson.TypeBool:
		line = fmt.Sprintf("%s %v", line, ev.Bool)
	}
	if colorize {
		if f, ok := eventColors[ev.Type]; ok {
			line = f(line)
		}
	}
	return []byte(line + "\n")
}
