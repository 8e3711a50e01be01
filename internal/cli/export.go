package cli

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pdf-survey/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	var runID string
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write stored records to a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("please supply a filespec for the output YAML")
			}
			db, err := a.openStore()
			if err != nil {
				return err
			}
			defer db.Close()
			entries, err := a.entries(db, runID)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return errors.Wrap(err, "failed YAML write")
			}
			if err := export.Write(f, entries); err != nil {
				f.Close()
				return err
			}
			a.log.WithField("output", output).Infof("exported %d records", len(entries))
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "filepath of the output file to hold the generated YAML")
	cmd.Flags().StringVar(&runID, "run", "", "only export records from this run")
	return cmd
}
