package pdfmetadata

import (
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exiftoolOutput = `ExifTool Version Number         : 12.40
File Name                       : manual.pdf
File Type                       : PDF
PDF Version                     : 1.4
Linearized                      : No
Create Date                     : 2009:05:12 16:04:11+02:00
Creator                         : Microsoft Word - manual.doc
Modify Date                     : 2009:05:12 16:04:11+02:00
Producer                        : Acrobat Distiller 9.0.0 (Windows)
Author                          : jdoe
Title                           : Installation Manual
Creator Tool                    : PScript5.dll Version 5.2.2
XMP Toolkit                     : Adobe XMP Core 4.2.1-c041
Page Count                      : 42
`

func TestReadExiftoolOutput(t *testing.T) {
	record, err := Read("manual.pdf", strings.NewReader(exiftoolOutput))
	require.NoError(t, err)

	assert.Equal(t, "manual.pdf", record.Filename)
	assert.Equal(t, NewVersion(1, 4), record.PDFVersion)
	expected := map[Field]string{
		FieldProducer:    "Acrobat Distiller 9.0.0 (Windows)",
		FieldCreator:     "Microsoft Word - manual.doc",
		FieldAuthor:      "jdoe",
		FieldCreatorTool: "PScript5.dll Version 5.2.2",
		FieldTitle:       "Installation Manual",
		FieldXMPToolkit:  "Adobe XMP Core 4.2.1-c041",
		FieldCreateDate:  "2009:05:12 16:04:11+02:00",
		FieldModifyDate:  "2009:05:12 16:04:11+02:00",
	}
	for field, want := range expected {
		got, ok := record.Get(field)
		require.True(t, ok, field.Label())
		assert.Equal(t, want, got, field.Label())
	}
}

func TestBuildDefaultsVersion(t *testing.T) {
	record, err := Build("empty.pdf", slices.Values([]string{"Producer : X"}))
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, record.PDFVersion)
}

func TestBuildEmptySequenceIsValidRecord(t *testing.T) {
	record, err := Build("empty.pdf", slices.Values([]string(nil)))
	require.NoError(t, err)
	assert.Equal(t, NewRecord("empty.pdf"), record)
}

func TestBuildWithoutSourceReportsNoMetadata(t *testing.T) {
	record, err := Build("missing.pdf", nil)
	require.ErrorIs(t, err, ErrNoMetadata)
	assert.Nil(t, record)

	record, err = Read("missing.pdf", nil)
	require.ErrorIs(t, err, ErrNoMetadata)
	assert.Nil(t, record)
}

func TestBuildMalformedVersionYieldsNoRecord(t *testing.T) {
	consumed := 0
	lines := func(yield func(string) bool) {
		for _, line := range []string{"Author : A", "PDF Version : 1.x", "Title : never applied"} {
			consumed++
			if !yield(line) {
				return
			}
		}
	}
	record, err := Build("broken.pdf", lines)
	require.ErrorIs(t, err, ErrMalformedVersion)
	assert.Contains(t, err.Error(), "broken.pdf")
	assert.Nil(t, record)
	assert.Equal(t, 2, consumed)
}

func TestBuildRequiresFilename(t *testing.T) {
	_, err := Build("", slices.Values([]string{}))
	require.ErrorIs(t, err, ErrMissingFilename)
}

func TestReadSourceFailure(t *testing.T) {
	record, err := Read("a.pdf", iotest.ErrReader(iotest.ErrTimeout))
	require.ErrorIs(t, err, iotest.ErrTimeout)
	assert.Nil(t, record)
}

func TestReadHandlesCRLF(t *testing.T) {
	record, err := Read("a.pdf", strings.NewReader("PDF Version : 1.5\r\nAuthor : A\r\n"))
	require.NoError(t, err)
	assert.Equal(t, NewVersion(1, 5), record.PDFVersion)
	require.NotNil(t, record.Author)
	assert.Equal(t, "A", *record.Author)
}

func TestReadLongLine(t *testing.T) {
	title := strings.Repeat("x", 70000)
	record, err := Read("a.pdf", strings.NewReader("PDF Version : 1.7\nTitle : "+title+"\nProducer : P (Linux)\n"))
	require.NoError(t, err)
	require.NotNil(t, record.Title)
	assert.Equal(t, title, *record.Title)
	require.NotNil(t, record.Producer)
	assert.Equal(t, NewVersion(1, 7), record.PDFVersion)
}
