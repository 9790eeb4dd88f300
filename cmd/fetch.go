package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/subcommands"
	"github.com/vbessa/weeklyperf"
	"github.com/vbessa/weeklyperf/comdinheiro"
	"github.com/vbessa/weeklyperf/date"
	"github.com/vbessa/weeklyperf/yahoo"
)

type fetchCmd struct {
	source      string
	start       string
	end         string
	instruments string
	username    string
	password    string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch daily series and store them as data frames" }
func (*fetchCmd) Usage() string {
	return `wpr fetch [-source all|comdinheiro|yahoo] [-s <date>] [-e <date>] [-x a,b,c]

  Fetches daily series from the configured sources and stores one frame per
  source under the data folder. Comdinheiro instruments default to the
  vendor identifiers of the universe renames.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "all", "Source to fetch: all, comdinheiro or yahoo")
	f.StringVar(&c.start, "s", "", "Start date (defaults to the first of January of the previous year)")
	f.StringVar(&c.end, "e", "", "End date (defaults to today)")
	f.StringVar(&c.instruments, "x", "", "Comma separated comdinheiro identifiers")
	f.StringVar(&c.username, "username", os.Getenv("COMDINHEIRO_USERNAME"), "Comdinheiro username")
	f.StringVar(&c.password, "password", os.Getenv("COMDINHEIRO_PASSWORD"), "Comdinheiro password")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, to, err := c.window()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	u, err := LoadAppUniverse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fetched := 0
	if c.source == "all" || c.source == "comdinheiro" {
		if status := c.fetchComdinheiro(u, from, to); status != subcommands.ExitSuccess {
			return status
		}
		fetched++
	}
	if c.source == "all" || c.source == "yahoo" {
		if status := c.fetchYahoo(from, to); status != subcommands.ExitSuccess {
			return status
		}
		fetched++
	}
	if fetched == 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown source %q\n", c.source)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}

func (c *fetchCmd) window() (from, to date.Date, err error) {
	to = date.Today()
	if c.end != "" {
		if to, err = date.Parse(c.end); err != nil {
			return from, to, fmt.Errorf("invalid -e: %w", err)
		}
	}
	from = date.New(to.Year()-1, 1, 1)
	if c.start != "" {
		if from, err = date.Parse(c.start); err != nil {
			return from, to, fmt.Errorf("invalid -s: %w", err)
		}
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("-e %s is before -s %s", to, from)
	}
	return from, to, nil
}

func (c *fetchCmd) fetchComdinheiro(u *weeklyperf.Universe, from, to date.Date) subcommands.ExitStatus {
	ids := c.comdinheiroIdentifiers(u)
	if len(ids) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no comdinheiro identifiers, use -x or declare renames in the universe")
		return subcommands.ExitUsageError
	}

	client := &comdinheiro.Client{Username: c.username, Password: c.password}
	frame, err := client.FetchHistory(ids, from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return c.save(frame)
}

func (c *fetchCmd) fetchYahoo(from, to date.Date) subcommands.ExitStatus {
	frame, err := yahoo.FetchCloses(yahoo.DefaultTickers(), from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return c.save(frame)
}

func (c *fetchCmd) save(frame *weeklyperf.RawFrame) subcommands.ExitStatus {
	if err := weeklyperf.SaveFrame(*dataDir, frame); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Stored %d columns from %s\n", len(frame.Order), frame.Source)
	return subcommands.ExitSuccess
}

// comdinheiroIdentifiers resolves the vendor identifiers to query: the -x
// flag when given, the universe rename keys otherwise.
func (c *fetchCmd) comdinheiroIdentifiers(u *weeklyperf.Universe) []string {
	if c.instruments != "" {
		var ids []string
		for _, id := range strings.Split(c.instruments, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		return ids
	}
	ids := make([]string, 0, len(u.Renames))
	for vendor := range u.Renames {
		ids = append(ids, vendor)
	}
	sort.Strings(ids)
	return ids
}
