package router

import (
	"net/http"
	"strings"

	"github.com/menu-interativo/back-end/internal/handler"
	"github.com/menu-interativo/back-end/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Users   *handler.UserHandler
	Tables  *handler.TableHandler
	Orders  *handler.OrderHandler
	Dishes  *handler.DishHandler
	Reports *handler.ReportHandler
}

// Options configures the router.
type Options struct {
	// UploadDir is served at /uploads when non-empty.
	UploadDir   string
	CORSOrigins []string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// RequestID -> Recovery -> Logging -> CORS
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Route not found","code":"NOT_FOUND"}`))
	})

	r.Get("/health", handler.Health)

	if opts.UploadDir != "" {
		fileServer(r, "/uploads", http.Dir(opts.UploadDir))
	}

	// users
	r.Post("/sessions", h.Users.Authenticate)
	r.Get("/profile", h.Users.Profile)
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.Users.Create)
		r.Get("/", h.Users.List)
		r.Get("/{userId}", h.Users.Get)
		r.Put("/{id}", h.Users.Update)
		r.Put("/{userId}/assign-tables", h.Users.AssignTables)
		r.Put("/{userId}/avatar", h.Users.UploadAvatar)
	})
	// Older clients still call the singular path.
	r.Put("/user/{userId}/assign-tables", h.Users.AssignTables)

	// tables and bills
	r.Route("/tables", func(r chi.Router) {
		r.Post("/", h.Tables.Create)
		r.Get("/", h.Tables.List)
		r.Get("/assigned", h.Tables.ListAssigned)
		r.Put("/{id}", h.Tables.Update)
		r.Get("/{tableId}", h.Tables.Get)
		r.Get("/{tableId}/orders/current", h.Orders.ListCurrentByTable)
		r.Get("/{tableId}/qrcode", h.Tables.QRCode)
		r.Post("/{tableId}/bill", h.Tables.CloseBill)
	})
	r.Patch("/bills/{billId}/pay", h.Tables.PayBill)

	// orders
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.Orders.Create)
		r.Get("/", h.Orders.List)
		r.Get("/my", h.Orders.ListMine)
		r.Patch("/{orderId}/status", h.Orders.UpdateStatus)
	})

	// dishes
	r.Route("/dishes", func(r chi.Router) {
		r.Post("/", h.Dishes.Create)
		r.Get("/", h.Dishes.List)
		r.Post("/customizations", h.Dishes.CreateCustomization)
		r.Get("/{category}/available", h.Dishes.ListAvailable)
		r.Put("/{slug}/customizations", h.Dishes.AttachCustomizations)
		r.Put("/{slug}/image", h.Dishes.UploadImage)
	})

	// reports
	r.Get("/sales/statistics", h.Reports.SalesStatistics)
	r.Post("/reviews", h.Reports.CreateReview)
	r.Get("/reviews/statistics", h.Reports.ReviewStatistics)

	return r
}

// fileServer serves static files from root under path.
func fileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("fileServer does not permit URL params")
	}

	fs := http.StripPrefix(path, http.FileServer(root))

	if path != "/" && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}

	r.Get(path+"/*", func(w http.ResponseWriter, r *http.Request) {
		fs.ServeHTTP(w, r)
	})
}
