// Package store persists extracted PDF metadata records in a SQLite database.
package store

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"pdf-survey/internal/pdfmetadata"
)

// ErrNotFound is returned by Get when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// The Entry struct is one stored record together with where and when it was surveyed.
type Entry struct {
	ID        int64
	RunID     string
	Company   string
	ScannedAt time.Time
	Record    pdfmetadata.Record
}

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS pdf (
	id              INTEGER PRIMARY KEY,
	run_id          TEXT NOT NULL,
	company         TEXT NOT NULL,
	scanned_at      TIMESTAMP NOT NULL,
	filename        TEXT NOT NULL,
	producer        TEXT,
	creator         TEXT,
	author          TEXT,
	creator_tool    TEXT,
	pdf_version     TEXT NOT NULL,
	title           TEXT,
	xmp_toolkit     TEXT,
	create_date     TEXT,
	modify_date     TEXT
);
CREATE INDEX IF NOT EXISTS pdf_run ON pdf(run_id);
`

const columns = `id, run_id, company, scanned_at, filename, producer, creator, author, creator_tool,
	pdf_version, title, xmp_toolkit, create_date, modify_date`

// Open opens or creates the database at path and makes sure the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "creating schema in %s", path)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Insert stores a completed record and returns its id.
func (s *Store) Insert(entry Entry) (int64, error) {
	if entry.Record.Filename == "" {
		return 0, errors.WithStack(pdfmetadata.ErrMissingFilename)
	}
	if entry.ScannedAt.IsZero() {
		entry.ScannedAt = time.Now()
	}
	r := entry.Record
	result, err := s.db.Exec(`
	INSERT INTO pdf (
		run_id, company, scanned_at, filename, producer, creator, author, creator_tool,
		pdf_version, title, xmp_toolkit, create_date, modify_date
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.Company,
		entry.ScannedAt.UTC(),
		r.Filename,
		r.Producer,
		r.Creator,
		r.Author,
		r.CreatorTool,
		r.PDFVersion.String(),
		r.Title,
		r.XMPToolkit,
		r.CreateDate,
		r.ModifyDate,
	)
	if err != nil {
		return 0, errors.Wrapf(err, "inserting %s", r.Filename)
	}
	return result.LastInsertId()
}

// Get returns the record stored under id.
func (s *Store) Get(id int64) (Entry, error) {
	row := s.db.QueryRow(`SELECT `+columns+` FROM pdf WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entry, errors.Wrapf(ErrNotFound, "id %d", id)
	}
	return entry, err
}

// All returns every stored record in id order.
func (s *Store) All() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT ` + columns + ` FROM pdf ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "listing records")
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ByRun returns the records stored by one survey run in id order.
func (s *Store) ByRun(runID string) ([]Entry, error) {
	rows, err := s.db.Query(`SELECT `+columns+` FROM pdf WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, errors.Wrapf(err, "listing run %s", runID)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Records extracts the metadata records from entries, for aggregation.
func Records(entries []Entry) []*pdfmetadata.Record {
	records := make([]*pdfmetadata.Record, len(entries))
	for i := range entries {
		records[i] = &entries[i].Record
	}
	return records
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var entry Entry
	var version string
	r := &entry.Record
	err := row.Scan(
		&entry.ID,
		&entry.RunID,
		&entry.Company,
		&entry.ScannedAt,
		&r.Filename,
		&r.Producer,
		&r.Creator,
		&r.Author,
		&r.CreatorTool,
		&version,
		&r.Title,
		&r.XMPToolkit,
		&r.CreateDate,
		&r.ModifyDate,
	)
	if err != nil {
		return entry, err
	}
	r.PDFVersion, err = pdfmetadata.ParseVersion(version)
	if err != nil {
		return entry, errors.Wrapf(err, "stored record %d", entry.ID)
	}
	return entry, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
