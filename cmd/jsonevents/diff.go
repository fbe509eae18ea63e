package main

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	segjson "github.com/segmentio/encoding/json"
	"github.com/scott-cotton/cli"

	"github.com/nanojson/pulljson/internal/domtree"
	"github.com/nanojson/pulljson/pulljson"
)

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

// runDiff decodes each file both through the pulljson driver (materialized
// by domtree) and through segmentio/encoding/json, and reports any file
// where the two decodes disagree. It exists to differentially fuzz the
// tokenizer against a mature, independent JSON decoder.
func runDiff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("diff: at least one file is required")
	}

	mismatches := 0
	for _, path := range args {
		data, err := readInput(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		got, err := decodePull(data)
		if err != nil {
			fmt.Fprintf(cc.Out, "%s: pulljson error: %v\n", path, err)
			mismatches++
			continue
		}

		var want any
		if err := segjson.Unmarshal(data, &want); err != nil {
			fmt.Fprintf(cc.Out, "%s: segmentio/encoding/json error: %v\n", path, err)
			mismatches++
			continue
		}

		if d := cmp.Diff(normalizeNumbers(want), normalizeNumbers(got)); d != "" {
			fmt.Fprintf(cc.Out, "%s: mismatch (-segmentio +pulljson):\n%s", path, d)
			mismatches++
		}
	}

	if mismatches > 0 {
		return fmt.Errorf("diff: %d file(s) disagreed", mismatches)
	}
	fmt.Fprintf(cc.Out, "%d file(s) agree\n", len(args))
	return nil
}

func decodePull(data []byte) (any, error) {
	scratch := make([]byte, 4096)
	src := pulljson.NewSlice(data, scratch, pulljson.WithInt64(), pulljson.WithFloat())
	n, err := domtree.Build(src)
	if err != nil {
		return nil, err
	}
	return n.ToAny(), nil
}

// normalizeNumbers widens int64 values produced by pulljson to float64, so
// they compare equal to segmentio/encoding/json's all-float64 decode of the
// same document. It recurses freely: the dom tree produced for comparison
// here is never more than a handful of levels deep in practice, and this
// tool carries none of the core's no-recursion discipline.
func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalizeNumbers(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalizeNumbers(e)
		}
		return out
	default:
		return v
	}
}
