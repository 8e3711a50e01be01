package pdfmetadata

import "github.com/pkg/errors"

var (
	// ErrNoMetadata is reported when no line source could be obtained for a file.
	// It is distinct from a record with no fields, which is still a valid result.
	ErrNoMetadata = errors.New("no metadata")

	// ErrMalformedVersion is reported when a "PDF Version" value is not a decimal number.
	ErrMalformedVersion = errors.New("malformed PDF version")

	// ErrMissingFilename is reported when a record is requested for an empty filename.
	ErrMissingFilename = errors.New("filename is required")
)
