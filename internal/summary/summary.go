// Package summary derives the batch-wide view of a set of PDF metadata records:
// the distinct values seen for each tracked field and how often each PDF version occurs.
package summary

import (
	"sort"

	"pdf-survey/internal/pdfmetadata"
)

// TrackedFields are the fields whose distinct values are collected, in report order.
var TrackedFields = []pdfmetadata.Field{
	pdfmetadata.FieldProducer,
	pdfmetadata.FieldCreator,
	pdfmetadata.FieldAuthor,
	pdfmetadata.FieldCreatorTool,
}

// The View struct is the read-only summary of a batch. It is rebuilt from the records each time.
type View struct {
	Records          int
	Values           map[pdfmetadata.Field]map[string]struct{}
	Versions         map[pdfmetadata.Version]int
	OperatingSystems map[string]int // inferred OS label => number of records
	Undetermined     int            // records for which no OS could be inferred
}

// VersionCount pairs a version with the number of records carrying it.
type VersionCount struct {
	Version pdfmetadata.Version
	Count   int
}

// Aggregate builds the View for records. Nil entries are skipped.
// Absent and empty field values are not collected.
func Aggregate(records []*pdfmetadata.Record) View {
	view := View{
		Values:           make(map[pdfmetadata.Field]map[string]struct{}, len(TrackedFields)),
		Versions:         make(map[pdfmetadata.Version]int),
		OperatingSystems: make(map[string]int),
	}
	for _, field := range TrackedFields {
		view.Values[field] = make(map[string]struct{})
	}

	for _, record := range records {
		if record == nil {
			continue
		}
		view.Records++
		for _, field := range TrackedFields {
			if value, ok := record.Get(field); ok && value != "" {
				view.Values[field][value] = struct{}{}
			}
		}
		view.Versions[record.PDFVersion]++
		if label, ok := pdfmetadata.InferOS(record); ok {
			view.OperatingSystems[label]++
		} else {
			view.Undetermined++
		}
	}
	return view
}

// SortedValues returns the distinct values of field in lexical order.
func (v View) SortedValues(field pdfmetadata.Field) []string {
	values := make([]string, 0, len(v.Values[field]))
	for value := range v.Values[field] {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

// SortedVersions returns the version frequency table ordered by version.
func (v View) SortedVersions() []VersionCount {
	counts := make([]VersionCount, 0, len(v.Versions))
	for version, count := range v.Versions {
		counts = append(counts, VersionCount{Version: version, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Version.Less(counts[j].Version)
	})
	return counts
}

// SortedOperatingSystems returns the inferred OS labels, most frequent first.
func (v View) SortedOperatingSystems() []string {
	labels := make([]string, 0, len(v.OperatingSystems))
	for label := range v.OperatingSystems {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if v.OperatingSystems[labels[i]] != v.OperatingSystems[labels[j]] {
			return v.OperatingSystems[labels[i]] > v.OperatingSystems[labels[j]]
		}
		return labels[i] < labels[j]
	})
	return labels
}
