package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/vbessa/weeklyperf"
	"github.com/vbessa/weeklyperf/date"
	"github.com/vbessa/weeklyperf/renderer"
)

type weeklyCmd struct {
	date  string
	week  string
	start string
	end   string
	itd   bool
	watch int
}

func (*weeklyCmd) Name() string     { return "weekly" }
func (*weeklyCmd) Synopsis() string { return "display the weekly performance report" }
func (*weeklyCmd) Usage() string {
	return `wpr weekly [-d <date>] [-week last|current] [-itd] [-s <date> -e <date>] [-w n]

  Displays the weekly performance report over the stored data frames.
`
}

func (c *weeklyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Reference date for the report (defaults to today)")
	f.StringVar(&c.week, "week", "last", "Week window: last complete week or week in progress")
	f.StringVar(&c.start, "s", "", "Custom window start date")
	f.StringVar(&c.end, "e", "", "Custom window end date")
	f.BoolVar(&c.itd, "itd", false, "Add the inception-to-date window per category")
	f.IntVar(&c.watch, "w", 0, "run every n seconds")
}

func (c *weeklyCmd) options() (weeklyperf.Options, error) {
	var opts weeklyperf.Options
	var err error

	if c.date != "" {
		if opts.Reference, err = date.Parse(c.date); err != nil {
			return opts, fmt.Errorf("invalid -d: %w", err)
		}
	}
	if opts.Week, err = weeklyperf.ParseWeekMode(c.week); err != nil {
		return opts, err
	}
	if (c.start == "") != (c.end == "") {
		return opts, fmt.Errorf("custom window needs both -s and -e")
	}
	if c.start != "" {
		from, err := date.Parse(c.start)
		if err != nil {
			return opts, fmt.Errorf("invalid -s: %w", err)
		}
		to, err := date.Parse(c.end)
		if err != nil {
			return opts, fmt.Errorf("invalid -e: %w", err)
		}
		r := date.NewRange(from, to)
		opts.Custom = &r
	}
	opts.InceptionToDate = c.itd
	return opts, nil
}

func (c *weeklyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := c.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	for {
		md, err := generateWeekly(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if c.watch == 0 {
				return subcommands.ExitFailure
			}
		} else {
			if c.watch > 0 {
				fmt.Println("\033[2J")
			}
			printMarkdown(md)
		}

		if c.watch > 0 {
			time.Sleep(time.Duration(c.watch) * time.Second)
		} else {
			break
		}
	}
	return subcommands.ExitSuccess
}

// generateWeekly builds the report markdown over the stored frames. The
// assist command reuses it as the analyst's tool.
func generateWeekly(opts weeklyperf.Options) (string, error) {
	u, err := LoadAppUniverse()
	if err != nil {
		return "", err
	}
	diag := weeklyperf.NewDiagnostics()
	matrix, err := LoadAppMatrix(u, diag)
	if err != nil {
		return "", err
	}

	report, err := weeklyperf.BuildReport(matrix, u, LoadAppCalendar(), opts, diag)
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	renderer.RenderWeekly(&b, report)
	renderer.RenderDiagnostics(&b, report.Diagnostics)
	return b.String(), nil
}
