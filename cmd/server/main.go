package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/Param028/geet-fashion/internal/config"
	"github.com/Param028/geet-fashion/internal/handlers"
	"github.com/Param028/geet-fashion/internal/logging"
	"github.com/Param028/geet-fashion/internal/session"
	"github.com/Param028/geet-fashion/internal/storage"
	"github.com/Param028/geet-fashion/internal/storage/cloud"
	"github.com/Param028/geet-fashion/internal/storage/local"
)

func main() {
	logging.Setup()

	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Resolve the backing stores. No cloud configuration is a normal
	// state: the app then runs fully against the local fallback.
	dial := func(p config.CloudParams) (storage.Store, storage.Uploader, error) {
		s, err := cloud.New(p)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	}

	var (
		remote   storage.Store
		uploader storage.Uploader
	)
	if params := config.ResolveCloud(cfg.DataDir); params != nil {
		remote, uploader, err = dial(*params)
		if err != nil {
			slog.Error("Failed to initialize cloud store", "error", err)
			os.Exit(1)
		}
		slog.Info("Cloud sync active", "url", params.URL)
	} else {
		slog.Warn("No cloud configuration found, running on the local fallback store")
	}

	localStore, err := local.New(filepath.Join(cfg.DataDir, "boutique.db"))
	if err != nil {
		slog.Error("Failed to initialize local store", "error", err)
		os.Exit(1)
	}

	facade := storage.NewFacade(storage.Options{
		Remote:         remote,
		RemoteUploader: uploader,
		Local:          localStore,
		Session:        session.New(cfg.DataDir),
		DataDir:        cfg.DataDir,
		Dial:           dial,
	})
	defer facade.Close()

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	adminHandler := &handlers.AdminHandler{
		Store:        facade,
		SessionStore: sessionStore,
		Templates:    templates,
		Config:       cfg,
	}
	homeHandler := &handlers.HomeHandler{
		Store:        facade,
		Templates:    templates,
		SessionStore: sessionStore,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Login attempts are throttled per address.
	rateLimiter := handlers.NewRateLimiter(10 * time.Second)

	// Public Routes
	mux.HandleFunc("/", homeHandler.Index)
	mux.HandleFunc("/gallery", homeHandler.Gallery)

	mux.HandleFunc("/login", adminHandler.LoginGet)
	mux.HandleFunc("POST /login", rateLimiter.Middleware(adminHandler.LoginPost))
	mux.HandleFunc("/logout", adminHandler.Logout)

	// Protected Routes
	mux.HandleFunc("/admin", adminHandler.AuthMiddleware(adminHandler.Dashboard))

	mux.HandleFunc("/admin/upload", adminHandler.AuthMiddleware(adminHandler.UploadForm))
	mux.HandleFunc("POST /admin/designs", adminHandler.AuthMiddleware(adminHandler.CreateDesign))
	mux.HandleFunc("/admin/gallery", adminHandler.AuthMiddleware(adminHandler.ManageGallery))
	mux.HandleFunc("POST /admin/designs/delete", adminHandler.AuthMiddleware(adminHandler.DeleteDesign))

	mux.HandleFunc("/admin/customers", adminHandler.AuthMiddleware(adminHandler.ListCustomers))
	mux.HandleFunc("POST /admin/customers", adminHandler.AuthMiddleware(adminHandler.CreateCustomer))
	mux.HandleFunc("POST /admin/customers/delete", adminHandler.AuthMiddleware(adminHandler.DeleteCustomer))
	mux.HandleFunc("/admin/customers/view", adminHandler.AuthMiddleware(adminHandler.CustomerDetails))
	mux.HandleFunc("POST /admin/customers/measurements", adminHandler.AuthMiddleware(adminHandler.SaveMeasurements))
	mux.HandleFunc("POST /admin/customers/toggle-submitted", adminHandler.AuthMiddleware(adminHandler.ToggleSubmitted))
	mux.HandleFunc("POST /admin/customers/toggle-payment", adminHandler.AuthMiddleware(adminHandler.TogglePayment))
	mux.HandleFunc("POST /admin/customers/preferred", adminHandler.AuthMiddleware(adminHandler.AddPreferredDesign))
	mux.HandleFunc("POST /admin/customers/preferred/delete", adminHandler.AuthMiddleware(adminHandler.DeletePreferredDesign))

	mux.HandleFunc("/admin/settings", adminHandler.AuthMiddleware(adminHandler.SettingsGet))
	mux.HandleFunc("POST /admin/settings", adminHandler.AuthMiddleware(adminHandler.SettingsPost))

	mux.HandleFunc("/admin/download", adminHandler.AuthMiddleware(adminHandler.DownloadPage))
	mux.HandleFunc("/admin/download/json", adminHandler.AuthMiddleware(adminHandler.DownloadJSON))
	mux.HandleFunc("/admin/download/csv", adminHandler.AuthMiddleware(adminHandler.DownloadCSV))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "cloud", facade.IsCloudConnected())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
