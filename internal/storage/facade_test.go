package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Param028/geet-fashion/internal/config"
	"github.com/Param028/geet-fashion/internal/models"
	"github.com/Param028/geet-fashion/internal/session"
	"github.com/Param028/geet-fashion/internal/storage"
)

// fakeStore is an in-memory Store with optional error injection.
type fakeStore struct {
	designs   []models.Design
	customers []models.Customer
	err       error
}

func (f *fakeStore) Designs(ctx context.Context) ([]models.Design, error) {
	return f.designs, f.err
}

func (f *fakeStore) SaveDesign(ctx context.Context, d *models.Design) error {
	if f.err != nil {
		return f.err
	}
	f.designs = append(f.designs, *d)
	return nil
}

func (f *fakeStore) DeleteDesign(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	kept := f.designs[:0]
	for _, d := range f.designs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	f.designs = kept
	return nil
}

func (f *fakeStore) Customers(ctx context.Context) ([]models.Customer, error) {
	return f.customers, f.err
}

func (f *fakeStore) SaveCustomer(ctx context.Context, c *models.Customer) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.customers {
		if f.customers[i].ID == c.ID {
			f.customers[i] = *c
			return nil
		}
	}
	f.customers = append(f.customers, *c)
	return nil
}

func (f *fakeStore) DeleteCustomer(ctx context.Context, id string) error { return f.err }

func (f *fakeStore) Close() error { return nil }

type fakeUploader struct{ url string }

func (f *fakeUploader) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	return f.url, nil
}

func newFacade(t *testing.T, opts storage.Options) *storage.Facade {
	t.Helper()
	dir := t.TempDir()
	opts.DataDir = dir
	if opts.Session == nil {
		opts.Session = session.New(dir)
	}
	if opts.Local == nil {
		opts.Local = &fakeStore{}
	}
	return storage.NewFacade(opts)
}

func TestFacadeDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("routes to remote when connected", func(t *testing.T) {
		remote := &fakeStore{designs: []models.Design{{ID: "r1"}}}
		local := &fakeStore{designs: []models.Design{{ID: "l1"}}}
		f := newFacade(t, storage.Options{Remote: remote, Local: local})

		if !f.IsCloudConnected() {
			t.Fatal("IsCloudConnected = false with a remote store bound")
		}
		designs := f.Designs(ctx)
		if len(designs) != 1 || designs[0].ID != "r1" {
			t.Errorf("Designs = %+v, want the remote record", designs)
		}
	})

	t.Run("routes to local when disconnected", func(t *testing.T) {
		local := &fakeStore{designs: []models.Design{{ID: "l1"}}}
		f := newFacade(t, storage.Options{Local: local})

		if f.IsCloudConnected() {
			t.Fatal("IsCloudConnected = true without a remote store")
		}
		designs := f.Designs(ctx)
		if len(designs) != 1 || designs[0].ID != "l1" {
			t.Errorf("Designs = %+v, want the local record", designs)
		}
	})
}

func TestFacadeReadsDegradeToEmpty(t *testing.T) {
	ctx := context.Background()
	broken := &fakeStore{err: errors.New("connection refused")}
	f := newFacade(t, storage.Options{Remote: broken})

	if designs := f.Designs(ctx); len(designs) != 0 {
		t.Errorf("Designs on failure = %+v, want empty", designs)
	}
	if customers := f.Customers(ctx); len(customers) != 0 {
		t.Errorf("Customers on failure = %+v, want empty", customers)
	}
}

func TestFacadeWritesPropagate(t *testing.T) {
	ctx := context.Background()
	broken := &fakeStore{err: errors.New("connection refused")}
	f := newFacade(t, storage.Options{Remote: broken})

	if err := f.SaveDesign(ctx, &models.Design{ID: "1"}); err == nil {
		t.Error("SaveDesign on failure returned nil, want error")
	}
	if err := f.SaveCustomer(ctx, &models.Customer{ID: "1"}); err == nil {
		t.Error("SaveCustomer on failure returned nil, want error")
	}
}

func TestUploadImageRequiresCloud(t *testing.T) {
	ctx := context.Background()

	t.Run("disconnected", func(t *testing.T) {
		f := newFacade(t, storage.Options{})
		_, err := f.UploadImage(ctx, "x.jpg", strings.NewReader("img"))
		if !errors.Is(err, storage.ErrCloudRequired) {
			t.Errorf("UploadImage error = %v, want ErrCloudRequired", err)
		}
	})

	t.Run("connected", func(t *testing.T) {
		f := newFacade(t, storage.Options{
			Remote:         &fakeStore{},
			RemoteUploader: &fakeUploader{url: "https://cdn/x.jpg"},
		})
		url, err := f.UploadImage(ctx, "x.jpg", strings.NewReader("img"))
		if err != nil {
			t.Fatalf("UploadImage failed: %v", err)
		}
		if url != "https://cdn/x.jpg" {
			t.Errorf("url = %q", url)
		}
	})
}

func TestSaveCloudConfigSwapsStore(t *testing.T) {
	ctx := context.Background()
	dialed := &fakeStore{designs: []models.Design{{ID: "new-remote"}}}

	dir := t.TempDir()
	f := storage.NewFacade(storage.Options{
		Local:   &fakeStore{},
		Session: session.New(dir),
		DataDir: dir,
		Dial: func(p config.CloudParams) (storage.Store, storage.Uploader, error) {
			if p.URL != "https://proj.supabase.co" {
				t.Errorf("dialed with url %q", p.URL)
			}
			return dialed, &fakeUploader{}, nil
		},
	})

	if f.IsCloudConnected() {
		t.Fatal("connected before configuration")
	}
	if err := f.SaveCloudConfig("https://proj.supabase.co", "anon-key"); err != nil {
		t.Fatalf("SaveCloudConfig failed: %v", err)
	}
	if !f.IsCloudConnected() {
		t.Error("not connected after SaveCloudConfig")
	}
	designs := f.Designs(ctx)
	if len(designs) != 1 || designs[0].ID != "new-remote" {
		t.Errorf("Designs = %+v, want the freshly dialed store's record", designs)
	}

	saved := f.CloudConfig()
	if saved == nil || saved.URL != "https://proj.supabase.co" || saved.Key != "anon-key" {
		t.Errorf("persisted override = %+v", saved)
	}
}

func TestFacadeEndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFacade(t, storage.Options{Remote: &fakeStore{}})

	design := &models.Design{
		ID:        "1700000000000",
		Name:      "Zari Set",
		Category:  models.CategoryBlouse,
		CreatedAt: "2025-06-01T10:00:00Z",
	}
	if err := f.SaveDesign(ctx, design); err != nil {
		t.Fatalf("SaveDesign failed: %v", err)
	}

	designs := f.Designs(ctx)
	if len(designs) != 1 || designs[0].ID != "1700000000000" {
		t.Fatalf("Designs = %+v, want exactly the saved record", designs)
	}

	if err := f.DeleteDesign(ctx, "1700000000000"); err != nil {
		t.Fatalf("DeleteDesign failed: %v", err)
	}
	if designs := f.Designs(ctx); len(designs) != 0 {
		t.Errorf("Designs after delete = %+v, want empty", designs)
	}
}

func TestFacadeAuthAccessors(t *testing.T) {
	f := newFacade(t, storage.Options{})

	if auth := f.Auth(); auth != nil {
		t.Errorf("Auth before login = %+v, want nil", auth)
	}
	if err := f.SetAuth(models.AdminAuth{IsLoggedIn: true, AdminID: "gsj6600"}); err != nil {
		t.Fatalf("SetAuth failed: %v", err)
	}
	auth := f.Auth()
	if auth == nil || !auth.IsLoggedIn || auth.AdminID != "gsj6600" {
		t.Errorf("Auth = %+v", auth)
	}
	if err := f.ClearAuth(); err != nil {
		t.Fatalf("ClearAuth failed: %v", err)
	}
	if auth := f.Auth(); auth != nil {
		t.Errorf("Auth after clear = %+v, want nil", auth)
	}
}
