package view

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Rendered text.
const (
	LoadingText = "Loading data..."
	Heading     = "Kickstarter Projects"
)

// Column headers.
var Columns = []string{"S.No.", "Percentage Funded", "Amount Pledged"}

// Render writes snap as plain text.
func Render(w io.Writer, snap Snapshot) error {
	switch snap.Status {
	case StatusLoading:
		_, err := fmt.Fprintln(w, LoadingText)
		return err
	case StatusFailed:
		_, err := fmt.Fprintf(w, "Error: %s\n", snap.Message)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s\n\n", Heading); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", Columns[0], Columns[1], Columns[2])
	for _, row := range snap.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", row.Serial, row.PercentageFunded, row.AmountPledged)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s  Page %d of %d  %s\n",
		control("Previous", snap.PreviousEnabled),
		snap.Page, snap.TotalPages,
		control("Next", snap.NextEnabled))
	return err
}

// control renders an enabled control in brackets and a disabled one in
// parentheses.
func control(label string, enabled bool) string {
	if enabled {
		return "[" + label + "]"
	}
	return "(" + label + ")"
}
