package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/domain"
)

// document is the persisted state layout: one JSON file holding both
// top-level collections.
type document struct {
	Clients      []domain.Client      `json:"clients"`
	Appointments []domain.Appointment `json:"appointments"`
}

// DB mirrors a single JSON document to a file on disk. Every operation
// re-reads the whole document first; every mutation rewrites it whole.
// A mutex keeps writers single-file; there is no cross-operation
// transaction boundary.
type DB struct {
	path string
	mu   sync.Mutex
	doc  document
}

// Open loads the document at path, creating the file with an empty
// document if it does not exist yet.
func Open(path string) (*DB, error) {
	db := &DB{path: path}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("jsonfile: create data dir: %w", err)
			}
		}
		db.doc = document{Clients: []domain.Client{}, Appointments: []domain.Appointment{}}
		if err := db.flush(); err != nil {
			return nil, err
		}
		return db, nil
	}
	if err := db.load(); err != nil {
		return nil, err
	}
	return db, nil
}

// load re-reads the whole document from disk. Callers must hold mu.
func (d *DB) load() error {
	raw, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("jsonfile: read %s: %w", d.path, err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("jsonfile: decode %s: %w", d.path, err)
	}
	if doc.Clients == nil {
		doc.Clients = []domain.Client{}
	}
	if doc.Appointments == nil {
		doc.Appointments = []domain.Appointment{}
	}
	d.doc = doc
	return nil
}

// flush rewrites the whole document. Callers must hold mu.
func (d *DB) flush() error {
	raw, err := json.MarshalIndent(d.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode: %w", err)
	}
	if err := os.WriteFile(d.path, raw, 0o644); err != nil {
		return fmt.Errorf("jsonfile: write %s: %w", d.path, err)
	}
	return nil
}

// view runs fn against a freshly loaded document without persisting.
func (d *DB) view(fn func(doc *document) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.load(); err != nil {
		return err
	}
	return fn(&d.doc)
}

// update runs fn against a freshly loaded document and rewrites the file
// if fn succeeds.
func (d *DB) update(fn func(doc *document) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.load(); err != nil {
		return err
	}
	if err := fn(&d.doc); err != nil {
		return err
	}
	return d.flush()
}
