// Package local provides the on-device fallback store, backed by SQLite. It
// is bound only when no cloud configuration is resolved, and offers the same
// CRUD shapes as the cloud store minus binary upload.
package local

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/Param028/geet-fashion/internal/models"
	"github.com/Param028/geet-fashion/internal/storage"
)

// Ensure Store implements the shared contract.
var _ storage.Store = (*Store)(nil)

type Store struct {
	db *sql.DB
}

// New opens (and if necessary creates) the fallback database.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS designs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		measurements TEXT,
		preferred_designs TEXT NOT NULL DEFAULT '[]'
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Designs lists the gallery, newest first.
func (s *Store) Designs(ctx context.Context) ([]models.Design, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, category, description, image, created_at
		 FROM designs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query designs: %w", err)
	}
	defer rows.Close()

	var designs []models.Design
	for rows.Next() {
		var d models.Design
		if err := rows.Scan(&d.ID, &d.Name, &d.Category, &d.Description, &d.Image, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan design: %w", err)
		}
		designs = append(designs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate designs: %w", err)
	}
	return designs, nil
}

// SaveDesign inserts a new design. Designs are immutable, so this is a plain
// insert, never an update.
func (s *Store) SaveDesign(ctx context.Context, d *models.Design) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO designs (id, name, category, description, image, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Category, d.Description, d.Image, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert design: %w", err)
	}
	return nil
}

// DeleteDesign removes a design. Deleting an unknown id is a no-op.
func (s *Store) DeleteDesign(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM designs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete design: %w", err)
	}
	return nil
}

// Customers lists all customers ordered by name, case-insensitively.
func (s *Store) Customers(ctx context.Context) ([]models.Customer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, phone, measurements, preferred_designs
		 FROM customers ORDER BY name COLLATE NOCASE ASC`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var (
			c            models.Customer
			measurements sql.NullString
			preferred    string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &measurements, &preferred); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		if measurements.Valid && measurements.String != "" {
			c.Measurements = &models.Measurement{}
			if err := json.Unmarshal([]byte(measurements.String), c.Measurements); err != nil {
				return nil, fmt.Errorf("decode measurements for %s: %w", c.ID, err)
			}
		}
		if err := json.Unmarshal([]byte(preferred), &c.PreferredDesigns); err != nil {
			return nil, fmt.Errorf("decode preferred designs for %s: %w", c.ID, err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

// SaveCustomer upserts by id: any existing row with the same id is removed
// and the new value written in its place. Last write wins whole-record; there
// is no partial-field merge.
func (s *Store) SaveCustomer(ctx context.Context, c *models.Customer) error {
	storage.StampMeasurements(c, time.Now())

	var measurements sql.NullString
	if c.Measurements != nil {
		raw, err := json.Marshal(c.Measurements)
		if err != nil {
			return fmt.Errorf("encode measurements: %w", err)
		}
		measurements = sql.NullString{String: string(raw), Valid: true}
	}
	if c.PreferredDesigns == nil {
		c.PreferredDesigns = []models.PreferredDesign{}
	}
	preferred, err := json.Marshal(c.PreferredDesigns)
	if err != nil {
		return fmt.Errorf("encode preferred designs: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, c.ID); err != nil {
		return fmt.Errorf("replace customer: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO customers (id, name, phone, measurements, preferred_designs)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Phone, measurements, string(preferred))
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit customer save: %w", err)
	}
	return nil
}

// DeleteCustomer removes a customer. Deleting an unknown id is a no-op.
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
