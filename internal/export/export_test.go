package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Param028/geet-fashion/internal/models"
)

func TestBackupJSON(t *testing.T) {
	designs := []models.Design{
		{ID: "1700000000000", Name: "Zari Set", Category: models.CategoryBlouse, CreatedAt: "2025-06-01T10:00:00Z"},
	}
	customers := []models.Customer{
		{ID: "1", Name: "Priya", Phone: "555", PreferredDesigns: []models.PreferredDesign{}},
	}

	raw, err := BackupJSON(designs, customers)
	if err != nil {
		t.Fatalf("BackupJSON failed: %v", err)
	}

	var backup Backup
	if err := json.Unmarshal(raw, &backup); err != nil {
		t.Fatalf("backup is not valid JSON: %v", err)
	}
	if len(backup.Designs) != 1 || backup.Designs[0].ID != "1700000000000" {
		t.Errorf("designs = %+v", backup.Designs)
	}
	if len(backup.Customers) != 1 || backup.Customers[0].Name != "Priya" {
		t.Errorf("customers = %+v", backup.Customers)
	}
}

func TestCustomersCSV(t *testing.T) {
	customers := []models.Customer{
		{
			ID:   "1",
			Name: "Priya",
			Measurements: &models.Measurement{
				Chest: "36",
				Notes: `He said "ready"`,
			},
		},
		{ID: "2", Name: "Meera", Phone: "222"}, // no measurements
	}

	raw, err := CustomersCSV(customers)
	if err != nil {
		t.Fatalf("CustomersCSV failed: %v", err)
	}
	out := string(raw)

	t.Run("embedded quotes are doubled per RFC 4180", func(t *testing.T) {
		if !strings.Contains(out, `"He said ""ready"""`) {
			t.Errorf("quote not escaped, output:\n%s", out)
		}
	})

	t.Run("every row has the full column set", func(t *testing.T) {
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 3 {
			t.Fatalf("got %d lines, want header + 2 rows", len(lines))
		}
		wantCols := len(csvHeader)
		for i, line := range lines {
			// Quoted commas don't appear in this fixture apart from the
			// escaped notes field, which contains none.
			if got := len(strings.Split(line, ",")); got != wantCols {
				t.Errorf("line %d has %d columns, want %d: %s", i, got, wantCols, line)
			}
		}
	})

	t.Run("customer without measurements exports empty dimensions", func(t *testing.T) {
		if !strings.Contains(out, "Meera") {
			t.Errorf("second customer missing from output:\n%s", out)
		}
	})
}
