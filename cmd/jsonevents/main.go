// Command jsonevents inspects JSON documents through the pulljson event
// stream: dumping their event trace (optionally colorized or re-emitted as
// YAML), differentially fuzzing the tokenizer against segmentio/encoding's
// decoder, and benchmarking tokenizer throughput.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
