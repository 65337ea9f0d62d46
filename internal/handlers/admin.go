package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/Param028/geet-fashion/internal/config"
	"github.com/Param028/geet-fashion/internal/models"
	"github.com/Param028/geet-fashion/internal/storage"
)

type AdminHandler struct {
	Store        *storage.Facade
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
	Config       *config.Config
}

func (h *AdminHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	adminID := r.FormValue("admin_id")
	password := r.FormValue("password")

	if adminID != h.Config.AdminID ||
		bcrypt.CompareHashAndPassword([]byte(h.Config.AdminPasswordHash), []byte(password)) != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid admin ID or password"})
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session.Values["authenticated"] = true
	session.Values["admin_id"] = adminID
	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome back, " + adminID + "!"})
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	// Device-local login flag, kept alongside the cookie session.
	if err := h.Store.SetAuth(models.AdminAuth{IsLoggedIn: true, AdminID: adminID}); err != nil {
		slog.Error("Failed to persist auth state", "error", err)
	}

	slog.Info("Admin login successful", "admin_id", adminID)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	session.Values["authenticated"] = false
	session.Options.MaxAge = -1 // Expire immediately
	session.Save(r, w)

	if err := h.Store.ClearAuth(); err != nil {
		slog.Error("Failed to clear auth state", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// AuthMiddleware ensures the admin is logged in
func (h *AdminHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.SessionStore.Get(r, "admin-session")
		if auth, ok := session.Values["authenticated"].(bool); !ok || !auth {
			session.AddFlash(FlashMessage{Type: "error", Message: "You must be logged in to access this page."})
			session.Save(r, w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// Dashboard shows boutique-wide counts and outstanding work.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	designs := h.Store.Designs(r.Context())
	customers := h.Store.Customers(r.Context())

	pendingDeliveries := 0
	unpaid := 0
	for _, c := range customers {
		m := c.Measurements
		if m == nil {
			continue
		}
		if m.DueDate != "" && !m.IsSubmitted {
			pendingDeliveries++
		}
		if !m.IsPaymentDone {
			unpaid++
		}
	}

	tmpl := h.Templates.Get("admin.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"DesignCount":       len(designs),
		"CustomerCount":     len(customers),
		"PendingDeliveries": pendingDeliveries,
		"Unpaid":            unpaid,
		"CloudConnected":    h.Store.IsCloudConnected(),
		"Flashes":           GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
