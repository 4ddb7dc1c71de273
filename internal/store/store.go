// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists company cache records and lead records in SQLite.
// Company records are keyed by normalized company URL (or name when no URL
// is known) and are immutable once written; leads carry the known emails
// and phones used by the known-contact lookup.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rotisserie/eris"

	"github.com/pdiddy/lead-engine/pkg/types"
)

const dbFile = "lead-engine.db"

// Store manages the SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// NewStore opens or creates the database at cfg.DataDir/lead-engine.db and
// creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.DataDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "store: creating data directory %s", dir)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, eris.Wrap(err, "store: opening database")
	}

	s := &Store{db: db, dataDir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "store: creating schema")
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DataDir returns the directory holding the database file.
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			key TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email_patterns TEXT NOT NULL,
			phones TEXT NOT NULL,
			links TEXT NOT NULL,
			location TEXT,
			company_size TEXT,
			founded TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS leads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner TEXT NOT NULL,
			identity_id TEXT NOT NULL,
			name TEXT,
			company TEXT,
			emails TEXT NOT NULL,
			phones TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_identity ON leads(identity_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return eris.Wrap(err, "executing schema statement")
		}
	}
	return nil
}

// CompanyKey returns the cache key for a company: the normalized URL when
// one is given, otherwise "name:" plus the lower-cased, space-collapsed name.
func CompanyKey(companyName, companyURL string) string {
	if u := strings.TrimSpace(companyURL); u != "" {
		u = strings.ToLower(u)
		u = strings.TrimPrefix(u, "https://")
		u = strings.TrimPrefix(u, "http://")
		u = strings.TrimPrefix(u, "www.")
		return strings.TrimSuffix(u, "/")
	}
	return "name:" + strings.ToLower(strings.Join(strings.Fields(companyName), " "))
}

// GetCompany returns the record stored under key, or nil when there is none.
// A miss is not an error.
func (s *Store) GetCompany(ctx context.Context, key string) (*types.CompanyRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT key, name, email_patterns, phones, links, location, company_size, founded, created_at
		 FROM companies WHERE key = ?`, key)

	rec, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "store: get company %q", key)
	}
	return rec, nil
}

// PutCompany writes rec under rec.Key. Concurrent writers for the same key
// race benignly: the last write wins.
func (s *Store) PutCompany(ctx context.Context, rec *types.CompanyRecord) error {
	if rec.Key == "" {
		return eris.New("store: put company: empty key")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	patterns, err := marshalJSON(rec.EmailPatterns)
	if err != nil {
		return eris.Wrap(err, "store: encoding email patterns")
	}
	phones, err := marshalJSON(rec.Phones)
	if err != nil {
		return eris.Wrap(err, "store: encoding phones")
	}
	links, err := marshalJSON(rec.Links)
	if err != nil {
		return eris.Wrap(err, "store: encoding links")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO companies
			(key, name, email_patterns, phones, links, location, company_size, founded, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Key, rec.Name, patterns, phones, links,
		rec.Location, rec.CompanySize, rec.Founded,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return eris.Wrapf(err, "store: put company %q", rec.Key)
	}
	return nil
}

// ListCompanies returns every cached company ordered by key.
func (s *Store) ListCompanies(ctx context.Context) ([]types.CompanyRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, name, email_patterns, phones, links, location, company_size, founded, created_at
		 FROM companies ORDER BY key`)
	if err != nil {
		return nil, eris.Wrap(err, "store: list companies")
	}
	defer rows.Close()

	var out []types.CompanyRecord
	for rows.Next() {
		rec, err := scanCompany(rows)
		if err != nil {
			return nil, eris.Wrap(err, "store: scanning company")
		}
		out = append(out, *rec)
	}
	return out, eris.Wrap(rows.Err(), "store: iterating companies")
}

// AddLead inserts lead and returns its id.
func (s *Store) AddLead(ctx context.Context, lead *types.Lead) (int64, error) {
	if strings.TrimSpace(lead.Owner) == "" || strings.TrimSpace(lead.IdentityID) == "" {
		return 0, eris.New("store: lead needs an owner and an identity id")
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}

	emails, err := marshalJSON(lead.Emails)
	if err != nil {
		return 0, eris.Wrap(err, "store: encoding emails")
	}
	phones, err := marshalJSON(lead.Phones)
	if err != nil {
		return 0, eris.Wrap(err, "store: encoding phones")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (owner, identity_id, name, company, emails, phones, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		lead.Owner, lead.IdentityID, lead.Name, lead.Company, emails, phones,
		lead.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, eris.Wrap(err, "store: add lead")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, eris.Wrap(err, "store: lead id")
	}
	lead.ID = id
	return id, nil
}

// FindKnownContacts returns the emails and phones every owner has recorded
// for identityID, one entry per lead that has at least one of either.
func (s *Store) FindKnownContacts(ctx context.Context, identityID string) ([]types.KnownContact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT owner, identity_id, emails, phones FROM leads WHERE identity_id = ? ORDER BY id`,
		identityID)
	if err != nil {
		return nil, eris.Wrapf(err, "store: find known contacts %q", identityID)
	}
	defer rows.Close()

	var out []types.KnownContact
	for rows.Next() {
		var (
			kc             types.KnownContact
			emails, phones string
		)
		if err := rows.Scan(&kc.Owner, &kc.IdentityID, &emails, &phones); err != nil {
			return nil, eris.Wrap(err, "store: scanning lead")
		}
		if err := json.Unmarshal([]byte(emails), &kc.Emails); err != nil {
			return nil, eris.Wrap(err, "store: decoding lead emails")
		}
		if err := json.Unmarshal([]byte(phones), &kc.Phones); err != nil {
			return nil, eris.Wrap(err, "store: decoding lead phones")
		}
		if kc.Size() == 0 {
			continue
		}
		out = append(out, kc)
	}
	return out, eris.Wrap(rows.Err(), "store: iterating leads")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCompany(row scanner) (*types.CompanyRecord, error) {
	var (
		rec                     types.CompanyRecord
		patterns, phones, links string
		location, size, founded sql.NullString
		created                 string
	)
	if err := row.Scan(&rec.Key, &rec.Name, &patterns, &phones, &links,
		&location, &size, &founded, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(patterns), &rec.EmailPatterns); err != nil {
		return nil, eris.Wrap(err, "decoding email patterns")
	}
	if err := json.Unmarshal([]byte(phones), &rec.Phones); err != nil {
		return nil, eris.Wrap(err, "decoding phones")
	}
	if err := json.Unmarshal([]byte(links), &rec.Links); err != nil {
		return nil, eris.Wrap(err, "decoding links")
	}
	rec.Location = location.String
	rec.CompanySize = size.String
	rec.Founded = founded.String
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}

// marshalJSON encodes v, writing nil slices as [] so rows always decode.
func marshalJSON[T any](v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	data, err := json.Marshal(v)
	return string(data), err
}
