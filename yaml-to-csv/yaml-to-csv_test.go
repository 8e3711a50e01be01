package main

import (
	"testing"
)

func TestConvertDocuments(t *testing.T) {
	documents := map[string]Document{
		"10": {Run: "r", Company: "B", Filename: "B/b.pdf", PdfVersion: "1.7"},
		"2":  {Run: "r", Company: "A", Filename: "A/a.pdf", PdfVersion: "1.4", InferredOS: "Windows"},
	}

	rows := ConvertDocuments(documents)
	if len(rows) != 2 {
		t.Fatalf(`ConvertDocuments returned %d rows, expected 2`, len(rows))
	}
	// Record ids sort numerically, so "2" precedes "10"
	if rows[0][0] != "2" || rows[1][0] != "10" {
		t.Fatalf(`ConvertDocuments order = [%s %s], expected [2 10]`, rows[0][0], rows[1][0])
	}
	if rows[0][7] != "Windows" {
		t.Fatalf(`ConvertDocuments row 0 OS = %q, expected "Windows"`, rows[0][7])
	}
}
