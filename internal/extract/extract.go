// Package extract supplies the line-oriented metadata text that pdfmetadata.Read parses.
//
// Every Source produces exiftool-style output, one "Key : Value" pair per line, so the parser does
// not need to know which extractor was used.
package extract

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"pdf-survey/internal/config"
)

// ErrUnknownExtractor is returned by New for an extractor name it does not know.
var ErrUnknownExtractor = errors.New("unknown extractor")

// Source opens the metadata text for one file at a time.
//
// Open returns an error wrapping pdfmetadata.ErrNoMetadata when no text can be obtained for the
// file; the caller must Close the returned stream once it has been read.
type Source interface {
	Name() string
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Close() error
}

// New builds the Source named by cfg.Extractor.
func New(cfg config.Config, log logrus.FieldLogger) (Source, error) {
	log = log.WithField("extractor", cfg.Extractor)
	switch cfg.Extractor {
	case "exiftool":
		return NewExecSource(cfg.Exiftool, log), nil
	case "stayopen":
		return NewStayOpenSource(cfg.Exiftool, log)
	case "native":
		return NewNativeSource(log), nil
	}
	return nil, errors.Wrapf(ErrUnknownExtractor, "%q", cfg.Extractor)
}

// formatLine renders a key and value the way exiftool prints them: the key padded to 32 columns
// and control characters in the value replaced by '.', so a value never spans lines.
func formatLine(key, value string) string {
	return padKey(key) + " : " + strings.Map(printable, value)
}

func printable(r rune) rune {
	if r < 0x20 || r == 0x7f {
		return '.'
	}
	return r
}

func padKey(key string) string {
	const width = 31
	if len(key) >= width {
		return key
	}
	return key + strings.Repeat(" ", width-len(key))
}

// linesReader joins rendered lines into a stream.
func linesReader(lines []string) io.ReadCloser {
	if len(lines) == 0 {
		return io.NopCloser(strings.NewReader(""))
	}
	return io.NopCloser(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}
