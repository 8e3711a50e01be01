// Package export defines the YAML form of stored survey records, shared by "pdf-survey export"
// and yaml-to-csv.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"pdf-survey/internal/pdfmetadata"
	"pdf-survey/internal/store"
)

// The Document struct is how a stored record is represented in YAML
type Document struct {
	Run         string // Survey run that extracted the record
	Company     string // First-level collection directory the file was found in
	Filename    string // File path relative to the collection root
	PdfVersion  string // PDF data: "PDF Version", e.g. "1.4"
	Producer    string `yaml:",omitempty"` // PDF data: "Producer"
	Creator     string `yaml:",omitempty"` // PDF data: "Creator"
	Author      string `yaml:",omitempty"` // PDF data: "Author"
	CreatorTool string `yaml:",omitempty"` // XMP data: "Creator Tool"
	Title       string `yaml:",omitempty"` // PDF data: "Title"
	XmpToolkit  string `yaml:",omitempty"` // XMP data: "XMP Toolkit"
	CreateDate  string `yaml:",omitempty"` // As printed by the extractor, not normalised
	ModifyDate  string `yaml:",omitempty"` // As printed by the extractor, not normalised
	InferredOS  string `yaml:",omitempty"` // Best guess at the producing operating system
}

// FromEntry converts a stored entry. Absent fields become empty strings.
func FromEntry(entry store.Entry) Document {
	r := &entry.Record
	get := func(f pdfmetadata.Field) string {
		value, _ := r.Get(f)
		return value
	}
	osLabel, _ := pdfmetadata.InferOS(r)
	return Document{
		Run:         entry.RunID,
		Company:     entry.Company,
		Filename:    r.Filename,
		PdfVersion:  r.PDFVersion.String(),
		Producer:    get(pdfmetadata.FieldProducer),
		Creator:     get(pdfmetadata.FieldCreator),
		Author:      get(pdfmetadata.FieldAuthor),
		CreatorTool: get(pdfmetadata.FieldCreatorTool),
		Title:       get(pdfmetadata.FieldTitle),
		XmpToolkit:  get(pdfmetadata.FieldXMPToolkit),
		CreateDate:  get(pdfmetadata.FieldCreateDate),
		ModifyDate:  get(pdfmetadata.FieldModifyDate),
		InferredOS:  osLabel,
	}
}

// Write marshals entries as a YAML map of record id => Document.
func Write(w io.Writer, entries []store.Entry) error {
	documents := make(map[string]Document, len(entries))
	for _, entry := range entries {
		documents[strconv.FormatInt(entry.ID, 10)] = FromEntry(entry)
	}
	data, err := yaml.Marshal(&documents)
	if err != nil {
		return errors.Wrap(err, "bad YAML data")
	}
	_, err = w.Write(data)
	return err
}

// Read unmarshals a YAML map written by Write.
func Read(data []byte) (map[string]Document, error) {
	documents := make(map[string]Document)
	if err := yaml.Unmarshal(data, &documents); err != nil {
		return nil, errors.Wrap(err, "unmarshal error")
	}
	return documents, nil
}

// This table shows the fields in a CSV record and the Document members from which each CSV field is derived.
//
// | Field #  | Contents             | CSV field
// |----------|----------------------|----------------
// |       1  | _Record id_          | map key
// |       2  | _Company_            | .Company
// |       3  | _Local file path_    | .Filename
// |       4  | _PDF version_        | .PdfVersion
// |       5  | _Producer_           | .Producer
// |       6  | _Creator_            | .Creator
// |       7  | _Creator tool_       | .CreatorTool
// |       8  | _Inferred OS_        | .InferredOS
// |       9  | _Options_            |
//
// The CSV 'options' field contains the following sub-options:
//
//	run='' doc.Run
//	author='' doc.Author (only when present)
var CsvHeader = []string{"Record", "Company", "File", "PDF Version", "Producer", "Creator", "Creator Tool", "OS", "Options"}

func ConvertDocumentToCsv(id string, doc Document) []string {
	options := fmt.Sprintf("'run=%s'", doc.Run)
	if doc.Author != "" {
		options += fmt.Sprintf(" 'author=%s'", doc.Author)
	}
	return []string{
		id,
		doc.Company,
		doc.Filename,
		doc.PdfVersion,
		doc.Producer,
		doc.Creator,
		doc.CreatorTool,
		doc.InferredOS,
		options,
	}
}
