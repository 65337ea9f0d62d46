// Package export produces the admin download formats: a full JSON backup of
// the boutique's records and a CSV projection of customers with their latest
// measurements.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/Param028/geet-fashion/internal/models"
)

// Backup is the full JSON dump written by the admin download page.
type Backup struct {
	Designs   []models.Design   `json:"designs"`
	Customers []models.Customer `json:"customers"`
}

// BackupJSON renders the complete backup as indented JSON.
func BackupJSON(designs []models.Design, customers []models.Customer) ([]byte, error) {
	raw, err := json.MarshalIndent(Backup{Designs: designs, Customers: customers}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return raw, nil
}

// csvHeader matches the measurement schema column by column.
var csvHeader = []string{
	"Name", "Phone",
	"Blouse Length", "Dress Length",
	"Chest", "Waist Round", "Waist Height", "Seat Round",
	"Sleeves Height", "Arm Round", "Armhole", "Shoulder",
	"Front Neck", "Back Neck", "Tuks Point",
	"Notes",
}

// CustomersCSV renders the customer spreadsheet with RFC 4180 quoting.
// Customers without a measurement block export with empty dimension columns.
func CustomersCSV(customers []models.Customer) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range customers {
		m := c.Measurements
		if m == nil {
			m = &models.Measurement{}
		}
		row := []string{
			c.Name, c.Phone,
			m.BlouseLength, m.DressLength,
			m.Chest, m.WaistRound, m.WaistHeight, m.SeatRound,
			m.SleeveLength, m.ArmRound, m.Armhole, m.Shoulder,
			m.FrontNeck, m.BackNeck, m.TuksPoint,
			m.Notes,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row for %s: %w", c.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
