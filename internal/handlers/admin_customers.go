package handlers

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"

	"github.com/Param028/geet-fashion/internal/models"
)

// ListCustomers renders the customer registry, optionally filtered by a
// search term matched against name and phone.
func (h *AdminHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers := h.Store.Customers(r.Context())

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query != "" {
		needle := strings.ToLower(query)
		var matched []models.Customer
		for _, c := range customers {
			if strings.Contains(strings.ToLower(c.Name), needle) || strings.Contains(c.Phone, query) {
				matched = append(matched, c)
			}
		}
		customers = matched
	}

	tmpl := h.Templates.Get("admin_customers.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Customers": customers,
		"Query":     query,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// CreateCustomer registers a new customer with an empty measurement block.
func (h *AdminHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	name := strings.TrimSpace(r.FormValue("name"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	if name == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Customer name is required."})
		http.Redirect(w, r, "/admin/customers", http.StatusSeeOther)
		return
	}

	customer := &models.Customer{
		ID:               strconv.FormatInt(time.Now().UnixMilli(), 10),
		Name:             name,
		Phone:            phone,
		PreferredDesigns: []models.PreferredDesign{},
	}
	if err := h.Store.SaveCustomer(r.Context(), customer); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error registering customer."})
		http.Redirect(w, r, "/admin/customers", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: name + " registered."})
	http.Redirect(w, r, "/admin/customers/view?id="+customer.ID, http.StatusSeeOther)
}

func (h *AdminHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	id := r.FormValue("id")
	if err := h.Store.DeleteCustomer(r.Context(), id); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting customer."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Customer deleted."})
	}
	http.Redirect(w, r, "/admin/customers", http.StatusSeeOther)
}

// CustomerDetails renders one customer's measurement sheet and preferred
// designs.
func (h *AdminHandler) CustomerDetails(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.findCustomer(r.Context(), r.URL.Query().Get("id"))
	if !ok {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	tmpl := h.Templates.Get("customer_details.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	measurements := customer.Measurements
	if measurements == nil {
		measurements = &models.Measurement{}
	}
	data := map[string]interface{}{
		"Customer":     customer,
		"Measurements": measurements,
		"CsrfField":    csrf.TemplateField(r),
		"Flashes":      GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// SaveMeasurements replaces the customer's dimension fields from the form.
// The submitted/payment flags are managed by their own toggles and carried
// over; dateSaved is stamped by the store.
func (h *AdminHandler) SaveMeasurements(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	id := r.FormValue("id")
	customer, ok := h.findCustomer(r.Context(), id)
	if !ok {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	m := &models.Measurement{
		BlouseLength: r.FormValue("blouseLength"),
		DressLength:  r.FormValue("dressLength"),
		Chest:        r.FormValue("chest"),
		WaistRound:   r.FormValue("waistRound"),
		WaistHeight:  r.FormValue("waistHeight"),
		SeatRound:    r.FormValue("seatRound"),
		TuksPoint:    r.FormValue("tuksPoint"),
		SleeveLength: r.FormValue("sleeveLength"),
		ArmRound:     r.FormValue("armRound"),
		Armhole:      r.FormValue("armhole"),
		Shoulder:     r.FormValue("shoulder"),
		FrontNeck:    r.FormValue("frontNeck"),
		BackNeck:     r.FormValue("backNeck"),
		Notes:        r.FormValue("notes"),
		DueDate:      r.FormValue("dueDate"),
	}
	if prev := customer.Measurements; prev != nil {
		m.IsSubmitted = prev.IsSubmitted
		m.IsPaymentDone = prev.IsPaymentDone
	}
	customer.Measurements = m

	if err := h.Store.SaveCustomer(r.Context(), customer); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving measurements."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Measurements saved."})
	}
	http.Redirect(w, r, "/admin/customers/view?id="+id, http.StatusSeeOther)
}

// ToggleSubmitted flips the delivery-completion flag.
func (h *AdminHandler) ToggleSubmitted(w http.ResponseWriter, r *http.Request) {
	h.toggleFlag(w, r, func(m *models.Measurement) { m.IsSubmitted = !m.IsSubmitted })
}

// TogglePayment flips the payment-settled flag.
func (h *AdminHandler) TogglePayment(w http.ResponseWriter, r *http.Request) {
	h.toggleFlag(w, r, func(m *models.Measurement) { m.IsPaymentDone = !m.IsPaymentDone })
}

func (h *AdminHandler) toggleFlag(w http.ResponseWriter, r *http.Request, flip func(*models.Measurement)) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	id := r.FormValue("id")
	customer, ok := h.findCustomer(r.Context(), id)
	if !ok {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}
	if customer.Measurements == nil {
		customer.Measurements = &models.Measurement{}
	}
	flip(customer.Measurements)

	if err := h.Store.SaveCustomer(r.Context(), customer); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating status."})
	}

	redirect := r.FormValue("redirect")
	if redirect == "" {
		redirect = "/admin/customers/view?id=" + id
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// AddPreferredDesign attaches a reference image to the customer.
func (h *AdminHandler) AddPreferredDesign(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/customers", http.StatusSeeOther)
		return
	}

	id := r.FormValue("id")
	customer, ok := h.findCustomer(r.Context(), id)
	if !ok {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Reference image is required."})
		http.Redirect(w, r, "/admin/customers/view?id="+id, http.StatusSeeOther)
		return
	}
	defer file.Close()

	imageData, err := processImage(file, header.Filename)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/admin/customers/view?id="+id, http.StatusSeeOther)
		return
	}

	var imageRef string
	if h.Store.IsCloudConnected() {
		imageRef, err = h.Store.UploadImage(r.Context(), "reference.jpg", bytes.NewReader(imageData))
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Image upload failed."})
			http.Redirect(w, r, "/admin/customers/view?id="+id, http.StatusSeeOther)
			return
		}
	} else {
		imageRef = dataURI(imageData)
	}

	customer.PreferredDesigns = append(customer.PreferredDesigns, models.PreferredDesign{
		ID:       uuid.New().String(),
		Image:    imageRef,
		Category: models.Category(r.FormValue("category")),
		Notes:    r.FormValue("notes"),
	})

	if err := h.Store.SaveCustomer(r.Context(), customer); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving reference design."})
	} else {
		session.AddFlash(FlashMessage{Type: "success", Message: "Reference design added."})
	}
	http.Redirect(w, r, "/admin/customers/view?id="+id, http.StatusSeeOther)
}

// DeletePreferredDesign removes one reference image from the customer.
func (h *AdminHandler) DeletePreferredDesign(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	id := r.FormValue("id")
	designID := r.FormValue("design_id")
	customer, ok := h.findCustomer(r.Context(), id)
	if !ok {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	kept := customer.PreferredDesigns[:0]
	for _, pd := range customer.PreferredDesigns {
		if pd.ID != designID {
			kept = append(kept, pd)
		}
	}
	customer.PreferredDesigns = kept

	if err := h.Store.SaveCustomer(r.Context(), customer); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error removing reference design."})
	}
	http.Redirect(w, r, "/admin/customers/view?id="+id, http.StatusSeeOther)
}

func (h *AdminHandler) findCustomer(ctx context.Context, id string) (*models.Customer, bool) {
	if id == "" {
		return nil, false
	}
	for _, c := range h.Store.Customers(ctx) {
		if c.ID == id {
			return &c, true
		}
	}
	return nil, false
}
