package handlers

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gorilla/csrf"
	"github.com/nfnt/resize"

	"github.com/Param028/geet-fashion/internal/models"
)

// UploadForm renders the new-design form.
func (h *AdminHandler) UploadForm(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin_upload.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"CsrfField":      csrf.TemplateField(r),
		"Flashes":        GetFlash(session),
		"CloudConnected": h.Store.IsCloudConnected(),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// CreateDesign uploads the image (to the cloud bucket when connected,
// embedded as a data URI otherwise) and saves the design record.
func (h *AdminHandler) CreateDesign(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/upload", http.StatusSeeOther)
		return
	}

	name := r.FormValue("name")
	category := models.Category(r.FormValue("category"))
	description := r.FormValue("description")

	if name == "" || !category.Valid() {
		session.AddFlash(FlashMessage{Type: "error", Message: "Name and a valid category are required."})
		http.Redirect(w, r, "/admin/upload", http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Design image is required."})
		http.Redirect(w, r, "/admin/upload", http.StatusSeeOther)
		return
	}
	defer file.Close()

	imageData, err := processImage(file, header.Filename)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/admin/upload", http.StatusSeeOther)
		return
	}

	// The image upload and the record save are sequential, not transactional:
	// a failed save leaves the uploaded object orphaned in the bucket.
	var imageRef string
	if h.Store.IsCloudConnected() {
		imageRef, err = h.Store.UploadImage(r.Context(), "design.jpg", bytes.NewReader(imageData))
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Image upload failed. Check your cloud configuration."})
			http.Redirect(w, r, "/admin/upload", http.StatusSeeOther)
			return
		}
	} else {
		imageRef = dataURI(imageData)
	}

	now := time.Now()
	design := &models.Design{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Name:        name,
		Category:    category,
		Description: description,
		Image:       imageRef,
		CreatedAt:   now.UTC().Format(time.RFC3339),
	}
	if err := h.Store.SaveDesign(r.Context(), design); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving design."})
		http.Redirect(w, r, "/admin/upload", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Design added to the gallery!"})
	http.Redirect(w, r, "/admin/gallery", http.StatusSeeOther)
}

// ManageGallery lists every design with delete controls.
func (h *AdminHandler) ManageGallery(w http.ResponseWriter, r *http.Request) {
	designs := h.Store.Designs(r.Context())

	tmpl := h.Templates.Get("admin_gallery.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Designs":   designs,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) DeleteDesign(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	id := r.FormValue("id")
	if id == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid design ID."})
		http.Redirect(w, r, "/admin/gallery", http.StatusSeeOther)
		return
	}

	if err := h.Store.DeleteDesign(r.Context(), id); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting design."})
		http.Redirect(w, r, "/admin/gallery", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Design removed."})
	http.Redirect(w, r, "/admin/gallery", http.StatusSeeOther)
}

// processImage decodes an uploaded PNG or JPEG, scales it down to a max width
// of 800px and re-encodes it as JPEG.
func processImage(file io.Reader, filename string) ([]byte, error) {
	var (
		img image.Image
		err error
	)
	switch filepath.Ext(filename) {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return nil, fmt.Errorf("unsupported image format, only PNG, JPG, JPEG are allowed")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode image")
	}

	scaled := resize.Resize(800, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode image")
	}
	return buf.Bytes(), nil
}

func dataURI(jpegData []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegData)
}
