package pdfmetadata

// Field identifies one of the metadata attributes recognised in extractor output.
type Field int

const (
	FieldIgnore Field = iota // any key that is not recognised
	FieldProducer
	FieldCreator
	FieldAuthor
	FieldCreatorTool
	FieldPDFVersion
	FieldTitle
	FieldXMPToolkit
	FieldCreateDate
	FieldModifyDate
)

// Canonical key tokens (field names with all whitespace removed) and the field each selects.
var canonicalFields = map[string]Field{
	"Producer":    FieldProducer,
	"Creator":     FieldCreator,
	"Author":      FieldAuthor,
	"CreatorTool": FieldCreatorTool,
	"PDFVersion":  FieldPDFVersion,
	"Title":       FieldTitle,
	"XMPToolkit":  FieldXMPToolkit,
	"CreateDate":  FieldCreateDate,
	"ModifyDate":  FieldModifyDate,
}

var fieldLabels = map[Field]string{
	FieldIgnore:      "Ignored",
	FieldProducer:    "Producer",
	FieldCreator:     "Creator",
	FieldAuthor:      "Author",
	FieldCreatorTool: "Creator Tool",
	FieldPDFVersion:  "PDF Version",
	FieldTitle:       "Title",
	FieldXMPToolkit:  "XMP Toolkit",
	FieldCreateDate:  "Create Date",
	FieldModifyDate:  "Modify Date",
}

// LookupField maps a canonical key token to its Field. Unrecognised tokens yield FieldIgnore.
// Matching is exact and case-sensitive.
func LookupField(token string) Field {
	if field, found := canonicalFields[token]; found {
		return field
	}
	return FieldIgnore
}

// Label returns the name exiftool prints for the field, e.g. "Creator Tool".
func (f Field) Label() string {
	if label, found := fieldLabels[f]; found {
		return label
	}
	return fieldLabels[FieldIgnore]
}

func (f Field) String() string {
	return f.Label()
}
