package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/vbessa/weeklyperf"
	"github.com/vbessa/weeklyperf/renderer"
)

type monthlyCmd struct{}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display the monthly return pivot of an instrument" }
func (*monthlyCmd) Usage() string {
	return `wpr monthly <instrument>

  Displays the per-month accumulated returns of one instrument, one row per
  year, with the year-to-date and inception-to-date columns.
`
}

func (*monthlyCmd) SetFlags(f *flag.FlagSet) {}

func (c *monthlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: monthly wants exactly one instrument")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	u, err := LoadAppUniverse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	diag := weeklyperf.NewDiagnostics()
	matrix, err := LoadAppMatrix(u, diag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	name := id
	if ins, ok := u.Lookup(id); ok {
		name = ins.Name
	}

	var b bytes.Buffer
	renderer.RenderMonthly(&b, name, weeklyperf.MonthlyReturns(matrix, id))
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
