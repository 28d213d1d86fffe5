// Package cli implements the simulate command line front end. Commands
// project locally and print a report; nothing is persisted.
package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/report"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/simulation"
)

// Commands returns every simulate subcommand writing reports to stdout and
// diagnostics to stderr.
func Commands(stdout, stderr io.Writer) []subcommands.Command {
	o := func() output { return output{stdout: stdout, stderr: stderr} }
	return []subcommands.Command{
		&fixedIncomeCmd{output: o()},
		&realEstateCmd{output: o()},
		&mixedCmd{output: o()},
		&optimizeCmd{output: o()},
	}
}

// output holds the rendering flags shared by all commands.
type output struct {
	csv    bool
	raw    bool
	width  int
	stdout io.Writer
	stderr io.Writer
}

func (o *output) setFlags(f *flag.FlagSet) {
	f.BoolVar(&o.csv, "csv", false, "print the monthly series as CSV")
	f.BoolVar(&o.raw, "raw", false, "print Markdown without terminal styling")
	f.IntVar(&o.width, "width", 100, "word wrap width of the styled report")
}

// print writes r in the selected format.
func (o *output) print(r simulation.SimulationResult) error {
	if o.csv {
		return report.WriteCSV(o.stdout, r)
	}

	md := report.Markdown(r)
	if o.raw {
		_, err := io.WriteString(o.stdout, md)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(o.width),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	styled, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = io.WriteString(o.stdout, styled)
	return err
}

// fail reports err and returns status.
func (o *output) fail(status subcommands.ExitStatus, err error) subcommands.ExitStatus {
	fmt.Fprintf(o.stderr, "Error: %v\n", err)
	return status
}

// finish prints r and maps the outcome to an exit status.
func (o *output) finish(r simulation.SimulationResult) subcommands.ExitStatus {
	if err := o.print(r); err != nil {
		return o.fail(subcommands.ExitFailure, err)
	}
	return subcommands.ExitSuccess
}
