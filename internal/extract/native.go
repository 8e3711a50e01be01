package extract

import (
	"context"
	"io"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"pdf-survey/internal/pdfmetadata"
)

// NativeSource reads the document information dictionary directly, without an external tool.
// It cannot see XMP metadata, so Creator Tool and XMP Toolkit are never reported.
type NativeSource struct {
	log logrus.FieldLogger
}

// Document information dictionary keys and the exiftool names they are reported under.
var infoEntries = []struct {
	key   string
	label string
}{
	{"Producer", "Producer"},
	{"Creator", "Creator"},
	{"Author", "Author"},
	{"Title", "Title"},
	{"CreationDate", "Create Date"},
	{"ModDate", "Modify Date"},
}

// NewNativeSource returns a Source backed by ledongthuc/pdf and pdfcpu.
func NewNativeSource(log logrus.FieldLogger) *NativeSource {
	// pdfcpu would otherwise install a configuration directory under the user's home
	api.DisableConfigDir()
	return &NativeSource{log: log}
}

func (s *NativeSource) Name() string { return "native" }

func (s *NativeSource) Open(_ context.Context, path string) (rc io.ReadCloser, err error) {
	// the PDF object parser panics on some malformed input
	defer func() {
		if r := recover(); r != nil {
			rc, err = nil, errors.Wrapf(pdfmetadata.ErrNoMetadata, "%s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(pdfmetadata.ErrNoMetadata, "%s: %v", path, err)
	}
	defer f.Close()

	var lines []string
	if version, err := headerVersion(path); err != nil {
		s.log.WithField("file", path).Debugf("no PDF version: %v", err)
	} else {
		lines = append(lines, formatLine("PDF Version", version))
	}

	info := r.Trailer().Key("Info")
	for _, entry := range infoEntries {
		value := info.Key(entry.key)
		if value.Kind() == pdf.String {
			lines = append(lines, formatLine(entry.label, value.Text()))
		}
	}
	return linesReader(lines), nil
}

func (s *NativeSource) Close() error { return nil }

// headerVersion returns the effective PDF version ("1.7") as determined by pdfcpu.
func headerVersion(path string) (version string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("pdfcpu: %v", r)
		}
	}()
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return "", err
	}
	return ctx.XRefTable.Version().String(), nil
}
