package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pdf-survey/internal/pdfmetadata"
	"pdf-survey/internal/report"
	"pdf-survey/internal/store"
	"pdf-survey/internal/summary"
)

func newListCmd(a *app) *cobra.Command {
	var runID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openStore()
			if err != nil {
				return err
			}
			defer db.Close()
			entries, err := a.entries(db, runID)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCOMPANY\tFILE\tVERSION\tOS")
			for _, entry := range entries {
				osLabel, _ := pdfmetadata.InferOS(&entry.Record)
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", entry.ID, entry.Company, entry.Record.Filename, entry.Record.PDFVersion, osLabel)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&runID, "run", "", "only list records from this run")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of one stored record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Errorf("invalid id %q", args[0])
			}
			db, err := a.openStore()
			if err != nil {
				return err
			}
			defer db.Close()
			entry, err := db.Get(id)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "ID\t%d\n", entry.ID)
			fmt.Fprintf(tw, "Run\t%s\n", entry.RunID)
			fmt.Fprintf(tw, "Company\t%s\n", entry.Company)
			fmt.Fprintf(tw, "Scanned\t%s\n", entry.ScannedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(tw, "Filename\t%s\n", entry.Record.Filename)
			for _, field := range []pdfmetadata.Field{
				pdfmetadata.FieldPDFVersion,
				pdfmetadata.FieldProducer,
				pdfmetadata.FieldCreator,
				pdfmetadata.FieldAuthor,
				pdfmetadata.FieldCreatorTool,
				pdfmetadata.FieldTitle,
				pdfmetadata.FieldXMPToolkit,
				pdfmetadata.FieldCreateDate,
				pdfmetadata.FieldModifyDate,
			} {
				if value, ok := entry.Record.Get(field); ok {
					fmt.Fprintf(tw, "%s\t%s\n", field.Label(), value)
				}
			}
			if label, ok := pdfmetadata.InferOS(&entry.Record); ok {
				fmt.Fprintf(tw, "Inferred OS\t%s\n", label)
			}
			return tw.Flush()
		},
	}
}

func newReportCmd(a *app) *cobra.Command {
	var runID string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise stored records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openStore()
			if err != nil {
				return err
			}
			defer db.Close()
			entries, err := a.entries(db, runID)
			if err != nil {
				return err
			}

			title := "All runs"
			if runID != "" {
				title = "Run " + runID
			}
			opts := report.Options{Color: report.UseColor(a.cfg.Color, os.Stdout), Title: title}
			return report.Render(a.out, summary.Aggregate(store.Records(entries)), opts)
		},
	}
	cmd.Flags().StringVar(&runID, "run", "", "only report on records from this run")
	return cmd
}
