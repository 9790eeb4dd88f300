package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/vbessa/weeklyperf"
	"github.com/vbessa/weeklyperf/agent"
	"github.com/vbessa/weeklyperf/date"
	"github.com/vbessa/weeklyperf/renderer"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `wpr assist [initial prompt]

  Start an interactive session with the AI assistant.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	researcher := agent.NewResearcher()
	analyst := agent.NewAnalyst(assistWeekly, assistMonthly)
	a := agent.New(os.Stdout, os.Stdin, researcher, analyst)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

// assistWeekly is the analyst's report tool over the stored frames.
func assistWeekly(_ context.Context, reference, week string) (string, error) {
	var opts weeklyperf.Options
	var err error
	if reference != "" {
		if opts.Reference, err = date.Parse(reference); err != nil {
			return "", fmt.Errorf("invalid date: %w", err)
		}
	}
	if week != "" {
		if opts.Week, err = weeklyperf.ParseWeekMode(week); err != nil {
			return "", err
		}
	}
	return generateWeekly(opts)
}

// assistMonthly is the analyst's monthly pivot tool.
func assistMonthly(_ context.Context, instrument string) (string, error) {
	u, err := LoadAppUniverse()
	if err != nil {
		return "", err
	}
	matrix, err := LoadAppMatrix(u, weeklyperf.NewDiagnostics())
	if err != nil {
		return "", err
	}
	name := instrument
	if ins, ok := u.Lookup(instrument); ok {
		name = ins.Name
	}
	var b bytes.Buffer
	renderer.RenderMonthly(&b, name, weeklyperf.MonthlyReturns(matrix, instrument))
	return b.String(), nil
}
