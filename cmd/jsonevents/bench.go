package main

import (
	"fmt"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/nanojson/pulljson/pulljson"
)

type BenchConfig struct {
	*MainConfig

	N int `cli:"name=n desc='number of tokenize passes'"`

	Bench *cli.Command
}

// runBench re-tokenizes a single file N times and reports throughput. It
// measures the slice driver only: the driver that never copies input it
// doesn't have to is the one whose steady-state throughput is worth
// reporting.
func runBench(cfg *BenchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Bench.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("bench: exactly one file is required")
	}
	n := cfg.N
	if n <= 0 {
		n = 100
	}

	data, err := readInput(args[0])
	if err != nil {
		return err
	}
	scratch := make([]byte, 4096)

	start := time.Now()
	events := 0
	for i := 0; i < n; i++ {
		src := pulljson.NewSlice(data, scratch, pulljson.WithInt64(), pulljson.WithFloat())
		for {
			ev, err := src.Next()
			if err != nil {
				return fmt.Errorf("pass %d: %w", i, err)
			}
			events++
			if ev.Type == pulljson.TypeEndDocument {
				break
			}
		}
	}
	elapsed := time.Since(start)

	bytesPerSec := float64(len(data)*n) / elapsed.Seconds()
	fmt.Fprintf(cc.Out, "%d passes, %d bytes, %d events, %s elapsed, %.1f MB/s\n",
		n, len(data), events, elapsed, bytesPerSec/1e6)
	return nil
}
