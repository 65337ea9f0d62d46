package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/Param028/geet-fashion/internal/models"
	"github.com/Param028/geet-fashion/internal/storage"
)

type HomeHandler struct {
	Store        *storage.Facade
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// Index renders the landing page with the latest designs.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	designs := h.Store.Designs(r.Context())
	if len(designs) > 6 {
		designs = designs[:6]
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	adminSession, _ := h.SessionStore.Get(r, "admin-session")
	isAdmin := false
	if auth, ok := adminSession.Values["authenticated"].(bool); ok && auth {
		isAdmin = true
	}

	data := map[string]interface{}{
		"Designs": designs,
		"IsAdmin": isAdmin,
	}
	tmpl.Execute(w, data)
}

// Gallery renders the full portfolio, optionally filtered by category.
func (h *HomeHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	designs := h.Store.Designs(r.Context())

	filter := models.Category(r.URL.Query().Get("category"))
	if filter.Valid() {
		var filtered []models.Design
		for _, d := range designs {
			if d.Category == filter {
				filtered = append(filtered, d)
			}
		}
		designs = filtered
	}

	tmpl := h.Templates.Get("gallery.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Designs":  designs,
		"Selected": filter,
	}
	tmpl.Execute(w, data)
}
