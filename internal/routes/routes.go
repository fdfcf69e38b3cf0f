package routes

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mindsync/wellness/internal/app"
	"github.com/mindsync/wellness/internal/assets"
	"github.com/mindsync/wellness/internal/handler"
	"github.com/mindsync/wellness/internal/middleware"
	"github.com/mindsync/wellness/internal/storage"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.Cfg.AppName)
	auth := handler.NewAuthHandler(app.AuthService, app.ProfileService, app.Cfg.CookieSecure)
	profile := handler.NewProfileHandler(app.ProfileService)
	dashboard := handler.NewDashboardHandler(app.DashboardService)

	protected := middleware.Authenticate(app.AuthService, app.UserService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /{$}", health.Root)

	// Uploaded avatars
	var uploadRoot string
	if local, ok := app.Storage.(*storage.LocalStorage); ok {
		uploadRoot = local.Root()
		mux.Handle("GET "+storage.URLPrefix, http.StripPrefix(storage.URLPrefix, noDirListing(http.FileServer(http.Dir(uploadRoot)))))
	}
	mux.HandleFunc("GET "+storage.URLPrefix+"default-avatar.png", defaultAvatar(uploadRoot))

	// Auth
	mux.HandleFunc("GET /api/users", health.Users)
	mux.HandleFunc("GET /api/users/{$}", health.Users)
	mux.HandleFunc("POST /api/users/signup", auth.Signup)
	mux.HandleFunc("POST /api/users/login", auth.Login)
	mux.HandleFunc("POST /api/users/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	// Token checks
	mux.Handle("GET /api/users/verify", protected(http.HandlerFunc(profile.Verify)))
	mux.Handle("GET /api/users/token", protected(http.HandlerFunc(profile.Verify)))

	// Profile
	mux.Handle("GET /api/users/profile", protected(http.HandlerFunc(profile.Profile)))
	mux.Handle("GET /api/users/profile/basic", protected(http.HandlerFunc(profile.Basic)))
	mux.Handle("PUT /api/users/profile", protected(http.HandlerFunc(profile.Update)))
	mux.Handle("POST /api/users/profile-setup", protected(http.HandlerFunc(profile.Setup)))

	// Dashboard
	mux.Handle("GET /api/dashboard", protected(http.HandlerFunc(dashboard.Dashboard)))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", health.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.WithRequestID,
		middleware.RequestLogging,
		middleware.Recover,
		middleware.CORS(app.Cfg.CORSAllowedOrigins),
	)

	return handler
}

func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// defaultAvatar prefers a default-avatar.png placed in the upload directory
// and falls back to the bundled image.
func defaultAvatar(uploadRoot string) http.HandlerFunc {
	started := time.Now()

	return func(w http.ResponseWriter, r *http.Request) {
		if uploadRoot != "" {
			path := filepath.Join(uploadRoot, "default-avatar.png")
			if _, err := os.Stat(path); err == nil {
				http.ServeFile(w, r, path)
				return
			}
		}
		w.Header().Set("Content-Type", "image/png")
		http.ServeContent(w, r, "default-avatar.png", started, bytes.NewReader(assets.DefaultAvatar))
	}
}
