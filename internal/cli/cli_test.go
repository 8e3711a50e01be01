package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-survey/internal/export"
	"pdf-survey/internal/pdfmetadata"
	"pdf-survey/internal/store"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := NewRootCmd(&out, &logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func seed(t *testing.T, db string) {
	t.Helper()
	s, err := store.Open(db)
	require.NoError(t, err)
	defer s.Close()

	for _, lines := range [][]string{
		{"Producer : Acrobat Distiller 9.0.0 (Windows)", "PDF Version : 1.4", "Title : Lettre aux actionnaires"},
		{"Creator Tool : PScript5.dll Version 5.2.2", "PDF Version : 1.6"},
		{"Creator Tool : Microsoft Word"},
	} {
		r := pdfmetadata.NewRecord(fmt.Sprintf("LVMH/doc%d.pdf", len(lines)))
		for _, line := range lines {
			require.NoError(t, r.ApplyLine(line))
		}
		_, err := s.Insert(store.Entry{RunID: "run-1", Company: "LVMH", Record: *r})
		require.NoError(t, err)
	}
}

func commonArgs(t *testing.T) (string, []string) {
	dir := t.TempDir()
	db := filepath.Join(dir, "pdfs.db")
	return db, []string{"--config", filepath.Join(dir, "absent.yaml"), "--db", db}
}

func TestListShowReport(t *testing.T) {
	db, args := commonArgs(t)
	seed(t, db)

	out, _, err := run(t, append([]string{"list"}, args...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "COMPANY")
	assert.Contains(t, out, "LVMH/doc3.pdf")
	assert.Contains(t, out, "Windows")

	out, _, err = run(t, append([]string{"show", "1"}, args...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Lettre aux actionnaires")
	assert.Contains(t, out, "PDF Version")
	assert.Contains(t, out, "Inferred OS")

	_, _, err = run(t, append([]string{"show", "99"}, args...)...)
	require.ErrorIs(t, err, store.ErrNotFound)

	out, _, err = run(t, append([]string{"report", "--run", "run-1"}, args...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Run run-1: 3 records")
	assert.Contains(t, out, "PScript5.dll Version 5.2.2")
}

func TestExport(t *testing.T) {
	db, args := commonArgs(t)
	seed(t, db)
	output := filepath.Join(t.TempDir(), "survey.yaml")

	_, _, err := run(t, append([]string{"export", "--output", output}, args...)...)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	documents, err := export.Read(data)
	require.NoError(t, err)
	assert.Len(t, documents, 3)
	assert.Equal(t, "1.4", documents["1"].PdfVersion)

	_, _, err = run(t, append([]string{"export"}, args...)...)
	require.Error(t, err)
}

func TestScanIsolatesUnreadableFiles(t *testing.T) {
	db, args := commonArgs(t)
	root := filepath.Join(t.TempDir(), "collection")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ACME"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ACME", "broken.pdf"), []byte("not really a PDF"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ACME", "notes.txt"), []byte("ignored"), 0644))

	out, logs, err := run(t, append([]string{"scan", root, "--extractor", "native"}, args...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "0 records")
	assert.Contains(t, logs, "broken.pdf")

	s, err := store.Open(db)
	require.NoError(t, err)
	defer s.Close()
	all, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestScanRejectsUnknownExtractor(t *testing.T) {
	_, args := commonArgs(t)
	_, _, err := run(t, append([]string{"scan", t.TempDir(), "--extractor", "pdftk"}, args...)...)
	require.Error(t, err)
}
