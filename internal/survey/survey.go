// Package survey runs metadata extraction over a collection, one file at a time.
//
// A failure for one file (no extractor output, a malformed PDF version, an unreadable file) is
// recorded against that file and logged; the rest of the batch is still processed.
package survey

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"pdf-survey/internal/collection"
	"pdf-survey/internal/extract"
	"pdf-survey/internal/pdfmetadata"
	"pdf-survey/internal/persistentstore"
)

// Cache maps an extractor name and a file's MD5 checksum (see cacheKey) to the record
// previously extracted from it.
type Cache = persistentstore.Store[string, pdfmetadata.Record]

// The Result struct is the outcome for one file.
type Result struct {
	Item   collection.Item
	Record *pdfmetadata.Record // nil when Err is set
	OS     string              // inferred operating system, "" if none
	Cached bool                // the record came from the cache rather than the extractor
	Err    error
}

// The Batch struct is the outcome of one run over a collection.
type Batch struct {
	RunID   string
	Started time.Time
	Results []Result
}

// Runner extracts metadata for a list of items.
type Runner struct {
	Source extract.Source
	Cache  *Cache // optional
	Log    logrus.FieldLogger
}

// Run processes items in order. It only stops early if ctx is cancelled, in which case the
// results gathered so far are returned together with the context's error.
func (r *Runner) Run(ctx context.Context, items []collection.Item) (Batch, error) {
	batch := Batch{RunID: uuid.NewString(), Started: time.Now()}
	log := r.Log.WithField("run", batch.RunID)
	log.Infof("surveying %d files with %s", len(items), r.Source.Name())

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return batch, errors.Wrap(err, "survey interrupted")
		}
		result := r.one(ctx, item, log.WithFields(logrus.Fields{"file": item.Filename, "company": item.Company}))
		batch.Results = append(batch.Results, result)
	}

	log.Infof("surveyed %d files: %d records, %d failures", len(items), len(batch.Records()), len(batch.Failures()))
	return batch, nil
}

func (r *Runner) one(ctx context.Context, item collection.Item, log logrus.FieldLogger) Result {
	result := Result{Item: item}

	key := ""
	if r.Cache != nil {
		sum, err := fileMd5(item.Path)
		if err != nil {
			log.Warnf("cannot checksum: %v", err)
		} else {
			key = cacheKey(r.Source.Name(), sum)
			if cached, found := r.Cache.Lookup(key); found {
				cached.Filename = item.Filename
				result.Record = &cached
				result.Cached = true
			}
		}
	}

	if result.Record == nil {
		record, err := r.extract(ctx, item, log)
		if err != nil {
			result.Err = err
			if errors.Is(err, pdfmetadata.ErrNoMetadata) {
				log.Warnf("no metadata: %v", err)
			} else {
				log.Errorf("extraction failed: %v", err)
			}
			return result
		}
		result.Record = record
		if r.Cache != nil && key != "" {
			r.Cache.Update(key, *record)
		}
	}

	if label, ok := pdfmetadata.InferOS(result.Record); ok {
		result.OS = label
		log.Debugf("in-use OS: %s", label)
	}
	return result
}

func (r *Runner) extract(ctx context.Context, item collection.Item, log logrus.FieldLogger) (*pdfmetadata.Record, error) {
	stream, err := r.Source.Open(ctx, item.Path)
	if err != nil {
		return nil, err
	}
	record, err := pdfmetadata.Read(item.Filename, stream)
	if closeErr := stream.Close(); closeErr != nil {
		if errors.Is(closeErr, pdfmetadata.ErrNoMetadata) {
			return nil, closeErr
		}
		// the extractor may exit non-zero after printing usable output
		log.Debugf("extractor exit: %v", closeErr)
	}
	return record, err
}

// Records returns the completed records, in collection order.
func (b Batch) Records() []*pdfmetadata.Record {
	var records []*pdfmetadata.Record
	for _, result := range b.Results {
		if result.Err == nil {
			records = append(records, result.Record)
		}
	}
	return records
}

// Failures returns the results for files that produced no record.
func (b Batch) Failures() []Result {
	var failures []Result
	for _, result := range b.Results {
		if result.Err != nil {
			failures = append(failures, result)
		}
	}
	return failures
}

// Succeeded returns the results that produced a record.
func (b Batch) Succeeded() []Result {
	var succeeded []Result
	for _, result := range b.Results {
		if result.Err == nil {
			succeeded = append(succeeded, result)
		}
	}
	return succeeded
}

// cacheKey keeps records from different extractors apart, as they report different fields.
func cacheKey(extractor, checksum string) string {
	return extractor + ":" + checksum
}

func fileMd5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	hash := md5.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
