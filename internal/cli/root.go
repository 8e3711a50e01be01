// Package cli wires the pdf-survey commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pdf-survey/internal/config"
	"pdf-survey/internal/logging"
	"pdf-survey/internal/store"
)

// The app struct carries the state shared by every command once the root has loaded the configuration.
type app struct {
	cfgFile  string
	database string
	verbose  bool

	cfg config.Config
	log *logrus.Logger
	out io.Writer
}

// Execute is the entry point for the CLI.
// An interrupt stops a scan between files; records extracted so far are still stored.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := NewRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. Command output goes to out, logging to logOut.
func NewRootCmd(out, logOut io.Writer) *cobra.Command {
	a := &app{out: out}
	root := &cobra.Command{
		Use:           "pdf-survey",
		Short:         "Extract, store and summarise PDF producer metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return err
			}
			if a.database != "" {
				cfg.Database = a.database
			}
			a.cfg = cfg
			a.log, err = logging.Setup(cfg.LogLevel, a.verbose, logOut)
			return err
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.cfgFile, "config", config.DefaultFilename, "path to the configuration file")
	root.PersistentFlags().StringVar(&a.database, "db", "", "SQLite database (overrides the configuration)")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable verbose (debug) logging")

	root.AddCommand(
		newScanCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newReportCmd(a),
		newExportCmd(a),
	)
	return root
}

func (a *app) openStore() (*store.Store, error) {
	a.log.WithField("database", a.cfg.Database).Debug("opening store")
	return store.Open(a.cfg.Database)
}

// entries returns the stored records of one run, or all of them when runID is empty.
func (a *app) entries(s *store.Store, runID string) ([]store.Entry, error) {
	if runID == "" {
		return s.All()
	}
	return s.ByRun(runID)
}
