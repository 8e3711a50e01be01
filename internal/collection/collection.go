// Package collection finds the PDF files to survey under a collection root.
//
// The collection is expected to be laid out as one directory per company:
//
//	root/
//	  ACME/annual-report-2019.pdf
//	  ACME/brochures/product.pdf
//	  LVMH/Lettre_actionnaires.pdf
//
// Every file below a first-level directory belongs to that company.
package collection

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// The Item struct describes one file to survey.
type Item struct {
	Path     string // path as found by the walk, suitable for passing to an extractor
	Filename string // path relative to the collection root, recorded with the metadata
	Company  string // first-level directory under the root
}

// Determine the file format. This will be PDF, TXT, PS etc.
// For now, it can just be the filetype, as long as it is one of a recognised set.
// Note that "HTM" will be returned as "HTML", "JPG" as "JPEG" and "TIF" as "TIFF".
var KnownFileTypes = [...]string{"PDF", "TXT", "PS", "EPS", "HTML", "ZIP", "TIFF", "JPEG", "DOC", "DOCX"}

var FileTypesToRecategorise = map[string]string{"HTM": "HTML", "JPG": "JPEG", "TIF": "TIFF"}

// ErrUnknownFormat is returned for a file type that is not in KnownFileTypes.
var ErrUnknownFormat = errors.New("unknown file type")

// DetermineDocumentFormat produces a consistent format string for any known type and returns "???"
// and an error for an unrecognised file type.
func DetermineDocumentFormat(filename string) (string, error) {
	filetype := strings.TrimPrefix(strings.ToUpper(filepath.Ext(filename)), ".")
	if ftype, found := FileTypesToRecategorise[filetype]; found {
		filetype = ftype
	}

	for _, entry := range KnownFileTypes {
		if entry == filetype {
			return filetype, nil
		}
	}
	return "???", errors.Wrapf(ErrUnknownFormat, "%s", filename)
}

// Walk returns every regular PDF file below root, sorted by path.
// Files directly in root are attributed to a company named after root itself.
func Walk(root string) ([]Item, error) {
	base := filepath.Base(filepath.Clean(root))
	if abs, err := filepath.Abs(root); err == nil {
		base = filepath.Base(abs)
	}

	var items []Item
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if format, _ := DetermineDocumentFormat(path); format != "PDF" {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		company := base
		if first, _, nested := strings.Cut(filepath.ToSlash(rel), "/"); nested {
			company = first
		}
		items = append(items, Item{Path: path, Filename: filepath.ToSlash(rel), Company: company})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", root)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items, nil
}

// The Root struct is one collection root named in an indirect file.
type Root struct {
	Path    string
	Company string // company for files directly in Path; defaults to the directory name
}

// Each line of the indirect file consist of:
// root-path [company]
// If root-path starts with a double quote, then it ends with one too.
// Otherwise there is exactly one space between the root-path and the company.
// Blank lines and lines starting with '#' are skipped.
var quotedRoot = regexp.MustCompile(`^"([^"]+)"\s*(.*)$`)

func ParseIndirectFile(indirectFile string) ([]Root, error) {
	file, err := os.Open(indirectFile)
	if err != nil {
		return nil, errors.Wrapf(err, "opening indirect file")
	}
	defer file.Close()

	var result []Root
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		if line[0:1] == "\"" {
			quoted := quotedRoot.FindStringSubmatch(line)
			if quoted == nil {
				return nil, errors.Errorf("%s: unterminated quote in %q", indirectFile, line)
			}
			result = append(result, Root{Path: quoted[1], Company: strings.TrimSpace(quoted[2])})
		} else {
			path, company, _ := strings.Cut(line, " ")
			result = append(result, Root{Path: path, Company: strings.TrimSpace(company)})
		}
	}
	return result, scanner.Err()
}

// WalkRoots walks each root in turn. Files directly in a root are attributed to its Company when set.
func WalkRoots(roots []Root) ([]Item, error) {
	var all []Item
	for _, root := range roots {
		items, err := Walk(root.Path)
		if err != nil {
			return nil, err
		}
		for i := range items {
			if root.Company != "" && !strings.Contains(items[i].Filename, "/") {
				items[i].Company = root.Company
			}
		}
		all = append(all, items...)
	}
	return all, nil
}
