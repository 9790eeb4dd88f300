// Package cmd implements the CLI application that builds the weekly
// performance report.
package cmd

import (
	"errors"
	"flag"
	"io/fs"
	"log"

	"github.com/google/subcommands"
	"github.com/vbessa/weeklyperf"
)

// Commands lists the subcommands a main package registers.
var Commands = []subcommands.Command{
	&weeklyCmd{},
	&monthlyCmd{},
	&fetchCmd{},
	&assistCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var universeFile = flag.String("universe-file", "universe.json", "Path to the universe configuration (JSON)")
var dataDir = flag.String("data-dir", ".data", "Path to the folder holding fetched data frames")
var calendarFile = flag.String("calendar-file", "", "Path to a holiday calendar file (defaults to the embedded B3 table)")

// LoadAppUniverse loads the configured universe, degrading to an empty one
// when the file does not exist yet.
func LoadAppUniverse() (*weeklyperf.Universe, error) {
	u, err := weeklyperf.LoadUniverse(*universeFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, universe file does not exist, using an empty universe instead")
		return &weeklyperf.Universe{}, nil
	}
	return u, err
}

// LoadAppCalendar loads the configured holiday calendar, degrading to the
// weekday-only calendar when the file cannot be read.
func LoadAppCalendar() *weeklyperf.Calendar {
	if *calendarFile == "" {
		return weeklyperf.B3()
	}
	cal, err := weeklyperf.LoadCalendar(*calendarFile)
	if err != nil {
		log.Printf("warning, %v, using weekdays only", err)
		return weeklyperf.WeekdayCalendar()
	}
	return cal
}

// LoadAppMatrix reads every stored frame, applies the universe renames and
// builds the joint return matrix.
func LoadAppMatrix(u *weeklyperf.Universe, diag *weeklyperf.Diagnostics) (*weeklyperf.ReturnMatrix, error) {
	frames, err := weeklyperf.LoadFrames(*dataDir)
	if err != nil {
		return nil, err
	}
	for _, f := range frames {
		f.Rename(u)
	}
	return weeklyperf.BuildMatrix(weeklyperf.DefaultClassifierPolicy(), diag, frames...), nil
}
