package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/tamaleria/orderform/internal/config"
	"github.com/tamaleria/orderform/internal/handler"
	mw "github.com/tamaleria/orderform/internal/middleware"
	"github.com/tamaleria/orderform/internal/session"
	"github.com/tamaleria/orderform/internal/ws"
	"github.com/tamaleria/orderform/web"
)

// New creates a Chi router with all application routes wired up.
// Everything except /health, /ws and the static assets runs behind the
// session middleware, so every page view and API call has an order.
func New(cfg *config.Config, store *session.Store, hub *ws.Hub, page *handler.PageHandler) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Embedded assets; the FS layout matches the URL layout.
	r.Handle("/static/*", http.FileServer(http.FS(web.FS)))

	// WebSocket route (resolves the session from the cookie internally)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, store, cfg.Session.Secret, w, r)
	})

	// Session-scoped routes
	r.Group(func(r chi.Router) {
		r.Use(mw.EnsureSession(store, cfg.Session.Secret, cfg.Session.TTL))

		r.Get("/", page.Show)

		receiptHandler := handler.NewReceiptHandler()
		receiptHandler.RegisterRoutes(r)

		r.Route("/api", func(r chi.Router) {
			itemsHandler := handler.NewItemsHandler()
			itemsHandler.RegisterRoutes(r)

			flowHandler := handler.NewFlowHandler()
			flowHandler.RegisterRoutes(r)

			locationHandler := handler.NewLocationHandler()
			locationHandler.RegisterRoutes(r)
		})
	})

	return r
}
