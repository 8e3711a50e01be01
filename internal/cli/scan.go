package cli

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pdf-survey/internal/collection"
	"pdf-survey/internal/extract"
	"pdf-survey/internal/pdfmetadata"
	"pdf-survey/internal/persistentstore"
	"pdf-survey/internal/report"
	"pdf-survey/internal/store"
	"pdf-survey/internal/summary"
	"pdf-survey/internal/survey"
)

func newScanCmd(a *app) *cobra.Command {
	var extractor string
	var cache string
	var indirectFile string
	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Extract metadata from every PDF under root and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roots := []collection.Root{{Path: a.cfg.Root}}
			switch {
			case indirectFile != "" && len(args) == 1:
				return errors.New("give either a root or --indirect-file, not both")
			case indirectFile != "":
				var err error
				if roots, err = collection.ParseIndirectFile(indirectFile); err != nil {
					return err
				}
			case len(args) == 1:
				roots = []collection.Root{{Path: args[0]}}
			}
			if extractor != "" {
				a.cfg.Extractor = extractor
			}
			if cache != "" {
				a.cfg.Cache = cache
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return a.scan(cmd, roots)
		},
	}
	cmd.Flags().StringVar(&indirectFile, "indirect-file", "", "a file that lists the collection roots to process")
	cmd.Flags().StringVar(&extractor, "extractor", "", "exiftool, stayopen or native (overrides the configuration)")
	cmd.Flags().StringVar(&cache, "cache", "", "YAML extraction cache (overrides the configuration)")
	return cmd
}

func (a *app) scan(cmd *cobra.Command, roots []collection.Root) error {
	items, err := collection.WalkRoots(roots)
	if err != nil {
		return err
	}

	source, err := extract.New(a.cfg, a.log)
	if err != nil {
		return err
	}
	defer source.Close()

	var cache *survey.Cache
	if a.cfg.Cache != "" {
		cache, err = persistentstore.Open[string, pdfmetadata.Record](a.cfg.Cache, true, a.log)
		if err != nil {
			return err
		}
	}

	db, err := a.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	runner := &survey.Runner{Source: source, Cache: cache, Log: a.log}
	batch, runErr := runner.Run(cmd.Context(), items)

	for _, result := range batch.Succeeded() {
		entry := store.Entry{RunID: batch.RunID, Company: result.Item.Company, ScannedAt: batch.Started, Record: *result.Record}
		if _, err := db.Insert(entry); err != nil {
			return errors.Wrapf(err, "storing %s", result.Item.Filename)
		}
	}
	if cache != nil {
		if err := cache.Save(); err != nil {
			a.log.Warnf("cache not saved: %v", err)
		}
	}

	opts := report.Options{Color: report.UseColor(a.cfg.Color, os.Stdout), Title: "Run " + batch.RunID}
	if err := report.Render(a.out, summary.Aggregate(batch.Records()), opts); err != nil {
		return err
	}
	for _, failure := range batch.Failures() {
		a.log.WithField("file", failure.Item.Filename).Warnf("skipped: %v", failure.Err)
	}
	return runErr
}
