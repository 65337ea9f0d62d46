package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
)

// SettingsGet shows the cloud connection status and configuration form.
func (h *AdminHandler) SettingsGet(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("settings.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	configuredURL := ""
	if cfg := h.Store.CloudConfig(); cfg != nil {
		configuredURL = cfg.URL
	}

	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"CloudConnected": h.Store.IsCloudConnected(),
		"ConfiguredURL":  configuredURL,
		"CsrfField":      csrf.TemplateField(r),
		"Flashes":        GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// SettingsPost persists the cloud override and reinitializes the remote
// client, so the new backend takes effect without a restart.
func (h *AdminHandler) SettingsPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	url := strings.TrimSpace(r.FormValue("url"))
	key := strings.TrimSpace(r.FormValue("key"))
	if url == "" || key == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Both project URL and key are required."})
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}

	if err := h.Store.SaveCloudConfig(url, key); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Could not connect with the given configuration."})
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Cloud sync connected."})
	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}
