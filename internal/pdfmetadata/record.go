// Package pdfmetadata turns the "Key : Value" text printed by a metadata extractor such as exiftool
// into a typed per-file Record, and derives values (PDF version, operating system) from it.
package pdfmetadata

import (
	"strings"
	"unicode"
)

// The Record struct holds the metadata extracted for one PDF file.
// Optional attributes are nil until a line for them has been seen.
type Record struct {
	Filename    string  `yaml:"filename"`
	Producer    *string `yaml:"producer,omitempty"`
	Creator     *string `yaml:"creator,omitempty"`
	Author      *string `yaml:"author,omitempty"`
	CreatorTool *string `yaml:"creator_tool,omitempty"`
	PDFVersion  Version `yaml:"pdf_version"`
	Title       *string `yaml:"title,omitempty"`
	XMPToolkit  *string `yaml:"xmp_toolkit,omitempty"`
	CreateDate  *string `yaml:"create_date,omitempty"`
	ModifyDate  *string `yaml:"modify_date,omitempty"`
}

// The separator between key and value in extractor output.
const keyValueSeparator = " : "

// NewRecord returns an empty record for filename, carrying the default PDF version.
func NewRecord(filename string) *Record {
	return &Record{Filename: filename, PDFVersion: DefaultVersion}
}

// ApplyLine updates the record from a single line of extractor output, for example
//
//	Creator Tool                    : PScript5.dll Version 5.2.2
//
// Lines without " : " and lines with an unrecognised key are ignored.
// The value is stored exactly as it appears after the separator, replacing any earlier value.
// Only a malformed PDF version produces an error.
func (r *Record) ApplyLine(line string) error {
	key, value, found := strings.Cut(line, keyValueSeparator)
	if !found {
		return nil
	}

	field := LookupField(CanonicalKey(key))
	if field == FieldPDFVersion {
		version, err := ParseVersion(value)
		if err != nil {
			return err
		}
		r.PDFVersion = version
		return nil
	}

	if slot := r.slot(field); slot != nil {
		*slot = &value
	}
	return nil
}

// Get returns the value of an optional text field and whether it is present.
// FieldPDFVersion is always present and is returned in its "X.Y" form.
func (r *Record) Get(field Field) (string, bool) {
	if field == FieldPDFVersion {
		return r.PDFVersion.String(), true
	}
	slot := r.slot(field)
	if slot == nil || *slot == nil {
		return "", false
	}
	return **slot, true
}

// slot returns the storage for an optional text field, or nil for FieldIgnore and FieldPDFVersion.
func (r *Record) slot(field Field) **string {
	switch field {
	case FieldProducer:
		return &r.Producer
	case FieldCreator:
		return &r.Creator
	case FieldAuthor:
		return &r.Author
	case FieldCreatorTool:
		return &r.CreatorTool
	case FieldTitle:
		return &r.Title
	case FieldXMPToolkit:
		return &r.XMPToolkit
	case FieldCreateDate:
		return &r.CreateDate
	case FieldModifyDate:
		return &r.ModifyDate
	}
	return nil
}

// CanonicalKey removes every whitespace character from key, so "Creator Tool   " becomes "CreatorTool".
func CanonicalKey(key string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, key)
}
