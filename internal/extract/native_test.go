package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-survey/internal/logging"
	"pdf-survey/internal/pdfmetadata"
)

// writeMinimalPDF writes a one-page PDF 1.4 file whose information dictionary holds info.
func writeMinimalPDF(t *testing.T, info string) string {
	t.Helper()
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>",
		info,
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, len(objects), xref)

	path := filepath.Join(t.TempDir(), "minimal.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestNativeSourceReadsInfoDictionary(t *testing.T) {
	path := writeMinimalPDF(t, "<< /Producer (Acrobat Distiller 9.0.0 \\(Windows\\)) /Author (jdoe) /Title (Annual Report) /CreationDate (D:20090512160411+02'00') >>")

	source := NewNativeSource(logging.Discard())
	stream, err := source.Open(context.Background(), path)
	require.NoError(t, err)
	record, err := pdfmetadata.Read(filepath.Base(path), stream)
	require.NoError(t, err)
	require.NoError(t, stream.Close())

	require.NotNil(t, record.Producer)
	assert.Equal(t, "Acrobat Distiller 9.0.0 (Windows)", *record.Producer)
	require.NotNil(t, record.Author)
	assert.Equal(t, "jdoe", *record.Author)
	require.NotNil(t, record.Title)
	assert.Equal(t, "Annual Report", *record.Title)
	require.NotNil(t, record.CreateDate)
	assert.Equal(t, "D:20090512160411+02'00'", *record.CreateDate)
	assert.Nil(t, record.Creator)
	assert.Nil(t, record.CreatorTool)

	label, ok := pdfmetadata.InferOS(record)
	assert.True(t, ok)
	assert.Equal(t, "Windows", label)
}

func TestNativeSourceRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text, no PDF structure"), 0644))

	stream, err := NewNativeSource(logging.Discard()).Open(context.Background(), path)
	require.ErrorIs(t, err, pdfmetadata.ErrNoMetadata)
	assert.Nil(t, stream)
}
