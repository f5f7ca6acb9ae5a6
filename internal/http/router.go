package httpapi

import (
	"net/http"

	"spiceroute-services/internal/config"
	"spiceroute-services/internal/http/handlers"
	"spiceroute-services/internal/jsonstore"
	"spiceroute-services/internal/middleware"
	"spiceroute-services/internal/queue"
	"spiceroute-services/internal/storage"
	"spiceroute-services/internal/ws"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func NewRouter(store *jsonstore.Store, logger *zap.Logger, cfg config.Config, queueClient *queue.Client, objects *storage.ObjectStore, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Telemetry(logger))

	if cfg.Env == "development" || len(cfg.CorsAllowedOrigins) > 0 {
		options := cors.Options{
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{
				"Accept",
				"Authorization",
				"Content-Type",
				"X-Requested-With",
				"Cache-Control",
				"Pragma",
			},
			AllowCredentials: true,
			MaxAge:           300,
		}
		if cfg.Env == "development" {
			options.AllowOriginFunc = func(_ *http.Request, origin string) bool {
				return true
			}
		} else {
			options.AllowedOrigins = cfg.CorsAllowedOrigins
		}
		r.Use(cors.Handler(options))
	}

	h := &handlers.Handler{
		Store:   store,
		Logger:  logger,
		Config:  cfg,
		Queue:   queueClient,
		Objects: objects,
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Customer-facing routes, no session required.
	r.Group(func(r chi.Router) {
		r.Get("/api/menu", h.MenuGet)
		r.Get("/api/todays-special", h.TodaysSpecialGet)
		r.Get("/api/combos", h.CombosGet)
		r.Get("/api/offers", h.OffersGet)
		r.Get("/api/menu-availability", h.MenuAvailabilityGet)
		r.Post("/api/orders", h.OrderCreate)
		r.Get("/api/blog-posts", h.BlogPostsGet)
		r.Get("/api/about-us-content", h.AboutUsGet)
		r.Get("/api/all-reviews", h.AllReviewsGet)
		r.Post("/api/customer-reviews", h.CustomerReviewCreate)
		r.Post("/api/event-bookings", h.EventBookingCreate)
		r.Post("/api/auth/login", h.Login)
	})

	// Staff routes, permission-checked against the roles document.
	r.Group(func(r chi.Router) {
		r.Use(middleware.StaffAuth(store, cfg.JWTSecret))

		r.Get("/api/orders", h.OrdersGet)
		r.Get("/api/orders/{orderId}/receipt", h.OrderReceiptPDF)

		r.Put("/api/todays-special", h.TodaysSpecialPut)
		r.Put("/api/menu-availability", h.MenuAvailabilityPut)

		r.Get("/api/inventory", h.InventoryList)
		r.Post("/api/inventory", h.InventoryCreate)
		r.Put("/api/inventory/{id}", h.InventoryUpdate)
		r.Delete("/api/inventory/{id}", h.InventoryDelete)

		r.Get("/api/analytics/waiters", h.WaiterAnalytics)
		r.Get("/api/analytics/inventory", h.InventoryAnalytics)

		r.Post("/api/blog-posts", h.BlogPostCreate)
		r.Put("/api/blog-posts", h.BlogPostUpdate)
		r.Put("/api/about-us-content", h.AboutUsPut)

		r.Get("/api/event-bookings", h.EventBookingsList)

		r.Get("/api/roles-permissions", h.RolesPermissionsGet)
		r.Put("/api/roles-permissions", h.RolesPermissionsPut)
		r.Post("/api/save-credentials", h.SaveCredentials)

		r.Post("/api/uploads/payment-qr", h.PaymentQRUpload)
	})

	if wsServer != nil {
		r.Get("/ws/orders", wsServer.HandleOrders)
	}

	return r
}
