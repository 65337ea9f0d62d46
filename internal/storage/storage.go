// Package storage defines the persistence contract shared by the cloud and
// local backing stores, and the facade that dispatches between them.
package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/Param028/geet-fashion/internal/models"
)

// ErrCloudRequired is returned for operations that have no local fallback,
// currently only image upload: a locally stored object cannot be made visible
// across devices. Callers must check connectivity before offering the action.
var ErrCloudRequired = errors.New("cloud storage not connected")

// Store is the CRUD contract implemented by both backing stores. Exactly one
// implementation is bound per operation; the facade never splits an operation
// across stores.
//
// Save semantics: SaveDesign is insert-only (designs are immutable),
// SaveCustomer is an upsert keyed by Customer.ID — update when the id exists,
// insert otherwise. Both implementations stamp Measurements.DateSaved on
// every save.
type Store interface {
	Designs(ctx context.Context) ([]models.Design, error)
	SaveDesign(ctx context.Context, d *models.Design) error
	DeleteDesign(ctx context.Context, id string) error

	Customers(ctx context.Context) ([]models.Customer, error)
	SaveCustomer(ctx context.Context, c *models.Customer) error
	DeleteCustomer(ctx context.Context, id string) error

	Close() error
}

// Uploader uploads binary imagery to a publicly readable bucket and returns
// the public URL. Only the cloud store implements it.
type Uploader interface {
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
}

// StampMeasurements marks the customer's measurement block as persisted now.
// Store implementations call this on every customer save so DateSaved always
// reflects the most recent successful persistence, never a caller guess.
func StampMeasurements(c *models.Customer, now time.Time) {
	if c.Measurements == nil {
		return
	}
	c.Measurements.DateSaved = now.UTC().Format(time.RFC3339)
}
