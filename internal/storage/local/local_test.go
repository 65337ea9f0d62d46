package local

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Param028/geet-fashion/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDesigns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i, name := range []string{"Zari Set", "Rose Kurti", "Peacock Blouse"} {
		d := &models.Design{
			ID:        time.Now().Add(time.Duration(i) * time.Millisecond).Format("150405.000"),
			Name:      name,
			Category:  models.CategoryBlouse,
			CreatedAt: base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
		}
		if err := store.SaveDesign(ctx, d); err != nil {
			t.Fatalf("SaveDesign(%s) failed: %v", name, err)
		}
	}

	t.Run("listed newest first", func(t *testing.T) {
		designs, err := store.Designs(ctx)
		if err != nil {
			t.Fatalf("Designs failed: %v", err)
		}
		if len(designs) != 3 {
			t.Fatalf("got %d designs, want 3", len(designs))
		}
		for i := 1; i < len(designs); i++ {
			if designs[i-1].CreatedAt < designs[i].CreatedAt {
				t.Errorf("designs out of order: %q before %q", designs[i-1].CreatedAt, designs[i].CreatedAt)
			}
		}
		if designs[0].Name != "Peacock Blouse" {
			t.Errorf("newest design is %q, want Peacock Blouse", designs[0].Name)
		}
	})

	t.Run("delete removes one design", func(t *testing.T) {
		designs, _ := store.Designs(ctx)
		if err := store.DeleteDesign(ctx, designs[0].ID); err != nil {
			t.Fatalf("DeleteDesign failed: %v", err)
		}
		remaining, _ := store.Designs(ctx)
		if len(remaining) != 2 {
			t.Errorf("got %d designs after delete, want 2", len(remaining))
		}
	})

	t.Run("delete of unknown id is a no-op", func(t *testing.T) {
		before, _ := store.Designs(ctx)
		if err := store.DeleteDesign(ctx, "no-such-id"); err != nil {
			t.Fatalf("DeleteDesign(no-such-id) failed: %v", err)
		}
		after, _ := store.Designs(ctx)
		if len(after) != len(before) {
			t.Errorf("collection size changed: %d -> %d", len(before), len(after))
		}
	})
}

func TestSaveCustomerUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveCustomer(ctx, &models.Customer{ID: "1", Name: "Zara", Phone: "111"}); err != nil {
		t.Fatalf("SaveCustomer failed: %v", err)
	}
	if err := store.SaveCustomer(ctx, &models.Customer{ID: "2", Name: "anita", Phone: "222"}); err != nil {
		t.Fatalf("SaveCustomer failed: %v", err)
	}

	t.Run("listed by name case-insensitively", func(t *testing.T) {
		customers, err := store.Customers(ctx)
		if err != nil {
			t.Fatalf("Customers failed: %v", err)
		}
		if len(customers) != 2 {
			t.Fatalf("got %d customers, want 2", len(customers))
		}
		if customers[0].Name != "anita" || customers[1].Name != "Zara" {
			t.Errorf("order = [%s, %s], want [anita, Zara]", customers[0].Name, customers[1].Name)
		}
	})

	t.Run("same id updates in place", func(t *testing.T) {
		if err := store.SaveCustomer(ctx, &models.Customer{ID: "1", Name: "Zara", Phone: "999"}); err != nil {
			t.Fatalf("SaveCustomer failed: %v", err)
		}
		customers, _ := store.Customers(ctx)
		if len(customers) != 2 {
			t.Fatalf("record count changed on upsert: got %d, want 2", len(customers))
		}
		for _, c := range customers {
			if c.ID == "1" && c.Phone != "999" {
				t.Errorf("phone = %q after update, want 999", c.Phone)
			}
		}
	})

	t.Run("new id inserts", func(t *testing.T) {
		if err := store.SaveCustomer(ctx, &models.Customer{ID: "3", Name: "Meera"}); err != nil {
			t.Fatalf("SaveCustomer failed: %v", err)
		}
		customers, _ := store.Customers(ctx)
		if len(customers) != 3 {
			t.Errorf("got %d customers after insert, want 3", len(customers))
		}
	})

	t.Run("delete of unknown id is a no-op", func(t *testing.T) {
		if err := store.DeleteCustomer(ctx, "no-such-id"); err != nil {
			t.Fatalf("DeleteCustomer failed: %v", err)
		}
		customers, _ := store.Customers(ctx)
		if len(customers) != 3 {
			t.Errorf("got %d customers, want 3", len(customers))
		}
	})
}

func TestSaveCustomerStampsDateSaved(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	customer := &models.Customer{
		ID:   "42",
		Name: "Priya",
		Measurements: &models.Measurement{
			DueDate:     "2025-06-01",
			IsSubmitted: false,
			DateSaved:   "caller-supplied garbage",
		},
	}
	if err := store.SaveCustomer(ctx, customer); err != nil {
		t.Fatalf("SaveCustomer failed: %v", err)
	}

	customers, err := store.Customers(ctx)
	if err != nil {
		t.Fatalf("Customers failed: %v", err)
	}
	if len(customers) != 1 || customers[0].Measurements == nil {
		t.Fatalf("customer with measurements not found after reload")
	}

	m := customers[0].Measurements
	stamped, err := time.Parse(time.RFC3339, m.DateSaved)
	if err != nil {
		t.Fatalf("dateSaved %q is not a valid timestamp: %v", m.DateSaved, err)
	}
	if stamped.Before(before) {
		t.Errorf("dateSaved %v is earlier than the save at %v", stamped, before)
	}
	if m.DueDate != "2025-06-01" || m.IsSubmitted {
		t.Errorf("measurement fields not preserved: %+v", m)
	}
}

func TestMeasurementRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := &models.Customer{
		ID:    "7",
		Name:  "Lakshmi",
		Phone: "555",
		Measurements: &models.Measurement{
			BlouseLength: "15",
			Chest:        "36",
			WaistRound:   "30",
			TuksPoint:    "9.5",
			FrontNeck:    "6",
			Notes:        `He said "ready"`,
		},
		PreferredDesigns: []models.PreferredDesign{
			{ID: "pd1", Image: "data:image/jpeg;base64,abc", Category: models.CategoryDress, Notes: "gold border"},
		},
	}
	if err := store.SaveCustomer(ctx, in); err != nil {
		t.Fatalf("SaveCustomer failed: %v", err)
	}

	customers, err := store.Customers(ctx)
	if err != nil {
		t.Fatalf("Customers failed: %v", err)
	}
	out := customers[0]
	if out.Measurements.Chest != "36" || out.Measurements.Notes != `He said "ready"` {
		t.Errorf("measurements did not round-trip: %+v", out.Measurements)
	}
	if len(out.PreferredDesigns) != 1 || out.PreferredDesigns[0].Category != models.CategoryDress {
		t.Errorf("preferred designs did not round-trip: %+v", out.PreferredDesigns)
	}
}
