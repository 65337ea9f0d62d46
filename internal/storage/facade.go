package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Param028/geet-fashion/internal/config"
	"github.com/Param028/geet-fashion/internal/models"
	"github.com/Param028/geet-fashion/internal/session"
)

// DialFunc constructs a cloud store from connection parameters. The facade
// uses it to reinitialize the remote client after the configuration changes.
type DialFunc func(p config.CloudParams) (Store, Uploader, error)

// Facade is the single entry point for every page and command. It binds one
// backing store per operation: the cloud store when connected, the local
// fallback otherwise. Reads degrade to empty results so list views render an
// empty state instead of crashing; writes, deletes and uploads propagate
// their errors for the caller to surface.
type Facade struct {
	mu       sync.RWMutex
	remote   Store
	uploader Uploader

	local   Store
	session *session.Store
	dataDir string
	dial    DialFunc
}

// Options wires the facade's collaborators. Remote and RemoteUploader are nil
// when no cloud configuration was resolved at startup.
type Options struct {
	Remote         Store
	RemoteUploader Uploader
	Local          Store
	Session        *session.Store
	DataDir        string
	Dial           DialFunc
}

func NewFacade(opts Options) *Facade {
	return &Facade{
		remote:   opts.Remote,
		uploader: opts.RemoteUploader,
		local:    opts.Local,
		session:  opts.Session,
		dataDir:  opts.DataDir,
		dial:     opts.Dial,
	}
}

// IsCloudConnected reports whether a remote client is bound.
func (f *Facade) IsCloudConnected() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.remote != nil
}

// active picks the backing store for the current operation. The choice is
// made once per operation; an operation never falls back mid-flight.
func (f *Facade) active() Store {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.remote != nil {
		return f.remote
	}
	return f.local
}

// Designs lists the gallery, newest first. Transport failures resolve to an
// empty list.
func (f *Facade) Designs(ctx context.Context) []models.Design {
	designs, err := f.active().Designs(ctx)
	if err != nil {
		slog.Error("listing designs failed", "error", err)
		return nil
	}
	return designs
}

func (f *Facade) SaveDesign(ctx context.Context, d *models.Design) error {
	return f.active().SaveDesign(ctx, d)
}

func (f *Facade) DeleteDesign(ctx context.Context, id string) error {
	return f.active().DeleteDesign(ctx, id)
}

// Customers lists customers ordered by name. Transport failures resolve to an
// empty list.
func (f *Facade) Customers(ctx context.Context) []models.Customer {
	customers, err := f.active().Customers(ctx)
	if err != nil {
		slog.Error("listing customers failed", "error", err)
		return nil
	}
	return customers
}

// SaveCustomer upserts by customer ID regardless of which store is active.
func (f *Facade) SaveCustomer(ctx context.Context, c *models.Customer) error {
	return f.active().SaveCustomer(ctx, c)
}

func (f *Facade) DeleteCustomer(ctx context.Context, id string) error {
	return f.active().DeleteCustomer(ctx, id)
}

// UploadImage stores imagery in the public cloud bucket and returns its URL.
// There is no local equivalent; without a cloud connection this fails with
// ErrCloudRequired before any write happens.
func (f *Facade) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	f.mu.RLock()
	uploader := f.uploader
	f.mu.RUnlock()

	if uploader == nil {
		return "", ErrCloudRequired
	}
	return uploader.UploadImage(ctx, filename, r)
}

// Auth returns the device-local login state, or nil when logged out.
func (f *Facade) Auth() *models.AdminAuth { return f.session.Get() }

func (f *Facade) SetAuth(auth models.AdminAuth) error { return f.session.Set(auth) }

func (f *Facade) ClearAuth() error { return f.session.Clear() }

// CloudConfig returns the persisted connection override, if any.
func (f *Facade) CloudConfig() *config.CloudParams {
	return config.CloudOverride(f.dataDir)
}

// SaveCloudConfig persists the override and fully reinitializes the remote
// client, swapping the bound store for subsequent operations. This is the
// only runtime mutation of the client handle.
func (f *Facade) SaveCloudConfig(url, key string) error {
	params := config.CloudParams{URL: url, Key: key}
	if err := config.SaveCloudOverride(f.dataDir, params); err != nil {
		return err
	}

	remote, uploader, err := f.dial(params)
	if err != nil {
		return fmt.Errorf("connect to cloud: %w", err)
	}

	f.mu.Lock()
	old := f.remote
	f.remote = remote
	f.uploader = uploader
	f.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			slog.Warn("closing previous cloud client failed", "error", err)
		}
	}
	slog.Info("cloud configuration updated", "url", url)
	return nil
}

// Close releases both backing stores.
func (f *Facade) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var firstErr error
	if f.remote != nil {
		firstErr = f.remote.Close()
	}
	if f.local != nil {
		if err := f.local.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
