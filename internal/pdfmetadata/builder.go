package pdfmetadata

import (
	"bufio"
	"io"
	"iter"

	"github.com/pkg/errors"
)

// Build folds a sequence of extractor output lines into a completed Record for filename.
//
// Every line is applied in order. A nil sequence means no line source was available and
// ErrNoMetadata is returned; a sequence that yields nothing gives a record with only the
// filename and default version set. A malformed PDF version stops the fold and no record is returned.
func Build(filename string, lines iter.Seq[string]) (*Record, error) {
	if filename == "" {
		return nil, errors.WithStack(ErrMissingFilename)
	}
	if lines == nil {
		return nil, errors.Wrapf(ErrNoMetadata, "%s", filename)
	}

	record := NewRecord(filename)
	for line := range lines {
		if err := record.ApplyLine(line); err != nil {
			return nil, errors.Wrapf(err, "%s", filename)
		}
	}
	return record, nil
}

// maxLineLength bounds a single metadata line. Long titles, keyword lists and XMP values
// exceed bufio's default token size.
const maxLineLength = 16 * 1024 * 1024

// Read is Build over a reader, typically the standard output of an extractor process.
// A nil reader is treated as an unavailable source. If reading fails part way through,
// the partial record is discarded and the read error is returned.
func Read(filename string, r io.Reader) (*Record, error) {
	if r == nil {
		return Build(filename, nil)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	record, err := Build(filename, func(yield func(string) bool) {
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	})
	if err != nil {
		return nil, err
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading metadata for %s", filename)
	}
	return record, nil
}
