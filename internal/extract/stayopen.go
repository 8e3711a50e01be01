package extract

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/barasher/go-exiftool"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"pdf-survey/internal/pdfmetadata"
)

// StayOpenSource keeps a single exiftool process running for the whole batch.
// exiftool reports tags by name ("CreatorTool", "PDFVersion"), which are already canonical keys.
type StayOpenSource struct {
	et  *exiftool.Exiftool
	log logrus.FieldLogger
}

// NewStayOpenSource starts exiftool in stay-open mode.
func NewStayOpenSource(binary string, log logrus.FieldLogger) (*StayOpenSource, error) {
	et, err := exiftool.NewExiftool(exiftool.SetExiftoolBinaryPath(binary))
	if err != nil {
		return nil, errors.Wrap(err, "initialising exiftool")
	}
	return &StayOpenSource{et: et, log: log}, nil
}

func (s *StayOpenSource) Name() string { return "stayopen" }

func (s *StayOpenSource) Open(_ context.Context, path string) (io.ReadCloser, error) {
	fileInfos := s.et.ExtractMetadata(path)
	if len(fileInfos) == 0 {
		return nil, errors.Wrapf(pdfmetadata.ErrNoMetadata, "%s: exiftool returned nothing", path)
	}
	fileInfo := fileInfos[0]
	if fileInfo.Err != nil {
		return nil, errors.Wrapf(pdfmetadata.ErrNoMetadata, "%s: %v", path, fileInfo.Err)
	}
	return linesReader(renderFields(fileInfo.Fields)), nil
}

func (s *StayOpenSource) Close() error {
	return s.et.Close()
}

// renderFields turns exiftool's decoded JSON fields into "Key : Value" lines sorted by key.
func renderFields(fields map[string]interface{}) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, formatLine(k, renderValue(fields[k])))
	}
	return lines
}

func renderValue(v interface{}) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		// JSON numbers arrive as float64; 1.4 must come out as "1.4", not "1.400000"
		return strconv.FormatFloat(value, 'f', -1, 64)
	case []interface{}:
		parts := make([]string, len(value))
		for i, part := range value {
			parts[i] = renderValue(part)
		}
		return strings.Join(parts, ", ")
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
