// Package cloud provides the Supabase-backed store: typed CRUD against the
// designs and customers collections plus binary upload to the public imagery
// bucket. It is the system of record whenever connection parameters resolve.
package cloud

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"
	storage_go "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"

	"github.com/Param028/geet-fashion/internal/config"
	"github.com/Param028/geet-fashion/internal/models"
	"github.com/Param028/geet-fashion/internal/storage"
)

const (
	designsTable   = "designs"
	customersTable = "customers"
	imageBucket    = "designs"
)

// Ensure Store implements the shared contracts.
var (
	_ storage.Store    = (*Store)(nil)
	_ storage.Uploader = (*Store)(nil)
)

type Store struct {
	client *supabase.Client
}

// New constructs the Supabase client. Called once at startup when parameters
// resolve, and again whenever the admin saves a new configuration.
func New(p config.CloudParams) (*Store, error) {
	client, err := supabase.NewClient(p.URL, p.Key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return &Store{client: client}, nil
}

// Close is a no-op; the underlying client holds no persistent connection.
func (s *Store) Close() error { return nil }

// Designs lists the gallery, newest first.
func (s *Store) Designs(ctx context.Context) ([]models.Design, error) {
	var designs []models.Design
	_, err := s.client.From(designsTable).
		Select("*", "", false).
		Order("createdAt", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&designs)
	if err != nil {
		return nil, fmt.Errorf("fetch designs: %w", err)
	}
	return designs, nil
}

// SaveDesign inserts a new design record.
func (s *Store) SaveDesign(ctx context.Context, d *models.Design) error {
	_, _, err := s.client.From(designsTable).
		Insert(d, false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("insert design: %w", err)
	}
	return nil
}

// DeleteDesign removes a design by id. Unknown ids delete zero rows.
func (s *Store) DeleteDesign(ctx context.Context, id string) error {
	_, _, err := s.client.From(designsTable).
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("delete design: %w", err)
	}
	return nil
}

// Customers lists all customers ordered by name.
func (s *Store) Customers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	_, err := s.client.From(customersTable).
		Select("*", "", false).
		Order("name", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&customers)
	if err != nil {
		return nil, fmt.Errorf("fetch customers: %w", err)
	}
	return customers, nil
}

// SaveCustomer upserts by id: a point lookup decides between update and
// insert. An empty lookup result is the insert signal, not an error.
func (s *Store) SaveCustomer(ctx context.Context, c *models.Customer) error {
	storage.StampMeasurements(c, time.Now())

	var existing []struct {
		ID string `json:"id"`
	}
	_, err := s.client.From(customersTable).
		Select("id", "", false).
		Eq("id", c.ID).
		ExecuteTo(&existing)
	if err != nil {
		return fmt.Errorf("look up customer %s: %w", c.ID, err)
	}

	if len(existing) > 0 {
		_, _, err = s.client.From(customersTable).
			Update(c, "", "").
			Eq("id", c.ID).
			Execute()
		if err != nil {
			return fmt.Errorf("update customer %s: %w", c.ID, err)
		}
		return nil
	}

	_, _, err = s.client.From(customersTable).
		Insert(c, false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("insert customer %s: %w", c.ID, err)
	}
	return nil
}

// DeleteCustomer removes a customer by id. Unknown ids delete zero rows.
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	_, _, err := s.client.From(customersTable).
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// UploadImage uploads the image to the public bucket under a
// collision-resistant key and returns its publicly fetchable URL.
func (s *Store) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	key := objectKey(filename)
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "image/jpeg"
	}
	opts := storage_go.FileOptions{ContentType: &contentType}
	if _, err := s.client.Storage.UploadFile(imageBucket, key, r, opts); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.client.Storage.GetPublicUrl(imageBucket, key).SignedURL, nil
}

// objectKey builds keys of the form {unixMillis}-{random base36}.{ext}.
func objectKey(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), randomSuffix(7), ext)
}

func randomSuffix(n int) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
