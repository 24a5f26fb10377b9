// Package store persists completed abstracts and their source PDFs so that
// runs can be reviewed and edited after the fact.
package store

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Record is one saved abstract run. JSONData holds the abstract as produced
// by the pipeline; EditedJSONData and EditedMarkdown hold reviewer changes.
type Record struct {
	ID             int64          `db:"id"`
	FileName       string         `db:"filename"`
	PDFPath        sql.NullString `db:"pdf_path"`
	JSONData       string         `db:"json_data"`
	EditedJSONData sql.NullString `db:"edited_json_data"`
	Markdown       string         `db:"markdown_output"`
	EditedMarkdown sql.NullString `db:"edited_markdown_output"`
	PagesProcessed int            `db:"pages_processed"`
	CostEstimate   float64        `db:"cost_estimate"`
	ProcessingLog  sql.NullString `db:"processing_log"`
	CreatedAt      string         `db:"created_at"`
	LastEditedAt   sql.NullString `db:"last_edited_at"`
	EditedBy       sql.NullString `db:"edited_by"`
	IsEdited       bool           `db:"is_edited"`
}

// SaveInput carries everything needed to persist one run.
type SaveInput struct {
	FileName       string
	JSONData       string
	Markdown       string
	PagesProcessed int
	CostEstimate   float64
	ProcessingLog  string
	// PDFPath, when set, points at the source PDF on disk. The file is
	// copied into the store's storage directory under a unique name.
	PDFPath string
}

const schema = `
CREATE TABLE IF NOT EXISTS abstracts (
	id                     INTEGER PRIMARY KEY AUTOINCREMENT,
	filename               TEXT NOT NULL,
	pdf_path               TEXT,
	json_data              TEXT NOT NULL DEFAULT '',
	edited_json_data       TEXT,
	markdown_output        TEXT NOT NULL DEFAULT '',
	edited_markdown_output TEXT,
	pages_processed        INTEGER NOT NULL DEFAULT 0,
	cost_estimate          REAL NOT NULL DEFAULT 0,
	processing_log         TEXT,
	created_at             TEXT NOT NULL,
	last_edited_at         TEXT,
	edited_by              TEXT,
	is_edited              INTEGER NOT NULL DEFAULT 0
);
`

// Store wraps a SQLite database plus a directory of archived source PDFs.
type Store struct {
	db         *sqlx.DB
	storageDir string
	now        func() time.Time
}

func New(dbPath, storageDir string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		db.Close()
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	return &Store{db: db, storageDir: storageDir, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists one run and archives its source PDF when present.
// It returns the new record's id.
func (s *Store) Save(in SaveInput) (int64, error) {
	storedPDF := sql.NullString{}
	if in.PDFPath != "" {
		dst, err := s.archivePDF(in.PDFPath, in.FileName)
		if err != nil {
			return 0, fmt.Errorf("archive pdf: %w", err)
		}
		storedPDF = sql.NullString{String: dst, Valid: true}
	}

	log := sql.NullString{}
	if in.ProcessingLog != "" {
		log = sql.NullString{String: in.ProcessingLog, Valid: true}
	}

	res, err := s.db.Exec(`INSERT INTO abstracts
		(filename, pdf_path, json_data, markdown_output, pages_processed, cost_estimate, processing_log, created_at, is_edited)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)`,
		in.FileName,
		storedPDF,
		in.JSONData,
		in.Markdown,
		in.PagesProcessed,
		in.CostEstimate,
		log,
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update records a reviewer's edited JSON and markdown for an existing run.
// It reports whether a row with the given id existed.
func (s *Store) Update(id int64, editedJSON, editedMarkdown, editor string) (bool, error) {
	res, err := s.db.Exec(`UPDATE abstracts
		SET edited_json_data = ?, edited_markdown_output = ?, last_edited_at = ?, edited_by = ?, is_edited = 1
		WHERE id = ?`,
		editedJSON,
		editedMarkdown,
		s.now().UTC().Format(time.RFC3339Nano),
		editor,
		id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns all saved runs, newest first.
func (s *Store) List() ([]Record, error) {
	var out []Record
	err := s.db.Select(&out, `SELECT * FROM abstracts ORDER BY created_at DESC, id DESC`)
	return out, err
}

// Get returns one run by id, or (nil, nil) when it does not exist.
func (s *Store) Get(id int64) (*Record, error) {
	var r Record
	err := s.db.Get(&r, `SELECT * FROM abstracts WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// PDFPath returns the archived PDF path for a run when the file still exists.
func (s *Store) PDFPath(id int64) (string, bool) {
	r, err := s.Get(id)
	if err != nil || r == nil || !r.PDFPath.Valid {
		return "", false
	}
	if _, err := os.Stat(r.PDFPath.String); err != nil {
		return "", false
	}
	return r.PDFPath.String, true
}

func (s *Store) archivePDF(src, fileName string) (string, error) {
	dst := filepath.Join(s.storageDir, uuid.NewString()+"_"+filepath.Base(fileName))

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return dst, nil
}
