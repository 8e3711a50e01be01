package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-survey/internal/pdfmetadata"
	"pdf-survey/internal/store"
)

func entry(t *testing.T, id int64, lines ...string) store.Entry {
	t.Helper()
	r := pdfmetadata.NewRecord("ACME/report.pdf")
	for _, line := range lines {
		require.NoError(t, r.ApplyLine(line))
	}
	return store.Entry{ID: id, RunID: "run-1", Company: "ACME", Record: *r}
}

func TestWriteAndRead(t *testing.T) {
	entries := []store.Entry{
		entry(t, 1, "Producer : Acrobat Distiller 9.0.0 (Windows)", "PDF Version : 1.7", "Author : jdoe"),
		entry(t, 2, "Creator : Writer"),
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, entries))

	documents, err := Read(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, documents, 2)

	first := documents["1"]
	assert.Equal(t, "ACME", first.Company)
	assert.Equal(t, "1.7", first.PdfVersion)
	assert.Equal(t, "Windows", first.InferredOS)
	assert.Equal(t, "jdoe", first.Author)

	second := documents["2"]
	assert.Equal(t, "1.0", second.PdfVersion)
	assert.Equal(t, "", second.Producer)
	assert.Equal(t, "Writer", second.Creator)
}

func TestConvertDocumentToCsv(t *testing.T) {
	doc := FromEntry(entry(t, 7, "Producer : GPL Ghostscript 9.05", "Author : A"))
	row := ConvertDocumentToCsv("7", doc)
	require.Len(t, row, len(CsvHeader))
	assert.Equal(t, []string{"7", "ACME", "ACME/report.pdf", "1.0", "GPL Ghostscript 9.05", "", "", "", "'run=run-1' 'author=A'"}, row)
}
