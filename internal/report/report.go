// Package report prints the aggregate view of a survey.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/disiqueira/gotree/v3"
	"github.com/fatih/color"
	"golang.org/x/term"

	"pdf-survey/internal/summary"
)

// Options controls rendering.
type Options struct {
	Color bool
	Title string
}

// UseColor resolves a colour mode ("auto", "always", "never") for output written to f.
func UseColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Render writes the view as a field tree followed by the version and OS frequency tables.
func Render(w io.Writer, view summary.View, opts Options) error {
	heading := color.New(color.FgCyan, color.Bold)
	count := color.New(color.FgGreen)
	muted := color.New(color.FgYellow)
	for _, c := range []*color.Color{heading, count, muted} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	title := opts.Title
	if title == "" {
		title = "PDF metadata survey"
	}
	if _, err := heading.Fprintf(w, "%s: %d records\n\n", title, view.Records); err != nil {
		return err
	}

	tree := gotree.New("Fields")
	for _, field := range summary.TrackedFields {
		values := view.SortedValues(field)
		branch := tree.Add(fmt.Sprintf("%s (%d distinct)", field.Label(), len(values)))
		for _, value := range values {
			branch.Add(value)
		}
	}
	if _, err := io.WriteString(w, tree.Print()); err != nil {
		return err
	}

	if _, err := heading.Fprintln(w, "\nPDF versions"); err != nil {
		return err
	}
	for _, vc := range view.SortedVersions() {
		if _, err := fmt.Fprintf(w, "  %-8s %s\n", vc.Version.String(), count.Sprint(vc.Count)); err != nil {
			return err
		}
	}

	if _, err := heading.Fprintln(w, "\nInferred operating systems"); err != nil {
		return err
	}
	for _, label := range view.SortedOperatingSystems() {
		if _, err := fmt.Fprintf(w, "  %-24s %s\n", label, count.Sprint(view.OperatingSystems[label])); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  %-24s %s\n", "(undetermined)", muted.Sprint(view.Undetermined))
	return err
}
