package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-vibrato/host"
)

func runParams(args []string) error {
	fs := flag.NewFlagSet("params", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "ID\tLabel\tMin\tMax\tStep\tSkew\tDefault\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "--\t-----\t---\t---\t----\t----\t-------\n"); err != nil {
		return err
	}
	for _, p := range host.Layout() {
		def := fmt.Sprintf("%g", p.Range.Default)
		if p.Kind == host.KindChoice {
			def = p.Choices[int(p.Range.Default)]
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%g\t%s\n",
			p.ID, p.Label, p.Range.Min, p.Range.Max, p.Range.Interval, p.Range.Skew, def,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}
