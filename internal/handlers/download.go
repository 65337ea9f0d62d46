package handlers

import (
	"net/http"
	"time"

	"github.com/Param028/geet-fashion/internal/export"
)

// DownloadPage renders the export options.
func (h *AdminHandler) DownloadPage(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("download.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Flashes": GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// DownloadJSON streams the full backup of designs and customers.
func (h *AdminHandler) DownloadJSON(w http.ResponseWriter, r *http.Request) {
	designs := h.Store.Designs(r.Context())
	customers := h.Store.Customers(r.Context())

	raw, err := export.BackupJSON(designs, customers)
	if err != nil {
		http.Error(w, "Error building backup", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		`attachment; filename="Geet_Fashion_Backup_`+time.Now().Format("2006-01-02")+`.json"`)
	w.Write(raw)
}

// DownloadCSV streams the customer measurement spreadsheet.
func (h *AdminHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	customers := h.Store.Customers(r.Context())

	raw, err := export.CustomersCSV(customers)
	if err != nil {
		http.Error(w, "Error building spreadsheet", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		`attachment; filename="Geet_Customers_Data_`+time.Now().Format("2006-01-02")+`.csv"`)
	w.Write(raw)
}
