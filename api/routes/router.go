package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lucasrivera/shopstead-backend/api/controllers"
	"github.com/lucasrivera/shopstead-backend/api/middleware"
	"github.com/lucasrivera/shopstead-backend/internal/auth"
	"github.com/lucasrivera/shopstead-backend/internal/orders"
	"github.com/lucasrivera/shopstead-backend/internal/products"
	"github.com/lucasrivera/shopstead-backend/internal/shops"
	"github.com/lucasrivera/shopstead-backend/pkg/config"
	"github.com/lucasrivera/shopstead-backend/pkg/db"
	"github.com/lucasrivera/shopstead-backend/pkg/logger"
	"github.com/lucasrivera/shopstead-backend/pkg/metrics"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       controllers.Pinger
	Metrics     *metrics.HTTP
	Registry    *prometheus.Registry
	AuthService auth.Service
	Register    auth.RegisterService
	Shops       shops.Service
	Products    products.Service
	Orders      orders.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.CORS),
	)

	requireAuth := middleware.Auth(cfg.JWT, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register", controllers.Register(deps.Register, logg))
		r.Post("/token/", controllers.TokenObtain(deps.AuthService, logg))
		r.Post("/token/refresh/", controllers.TokenRefresh(deps.AuthService, logg))

		r.Route("/shops", func(r chi.Router) {
			r.Get("/", controllers.ShopList(deps.Shops, logg))
			r.Get("/{shopId}/", controllers.ShopDetail(deps.Shops, logg))
			r.Get("/{shopId}/categories/", controllers.ShopCategoryList(deps.Shops, logg))
			r.Get("/{shopId}/reviews/", controllers.ShopReviewList(deps.Shops, logg))

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/create/", controllers.ShopCreate(deps.Shops, logg))
				r.Put("/update/{shopId}/", controllers.ShopUpdate(deps.Shops, logg))
				r.Patch("/update/{shopId}/", controllers.ShopUpdate(deps.Shops, logg))
				r.Delete("/delete/{shopId}/", controllers.ShopDelete(deps.Shops, logg))
				r.Post("/{shopId}/categories/", controllers.ShopCategoryCreate(deps.Shops, logg))
				r.Delete("/{shopId}/categories/{categoryId}/", controllers.ShopCategoryDelete(deps.Shops, logg))
				r.Post("/{shopId}/reviews/", controllers.ShopReviewCreate(deps.Shops, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Products, logg))
			r.Get("/{productId}/", controllers.ProductDetail(deps.Products, logg))
			r.Get("/{productId}/reviews/", controllers.ProductReviewList(deps.Products, logg))

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/create/", controllers.ProductCreate(deps.Products, logg))
				r.Put("/update/{productId}/", controllers.ProductUpdate(deps.Products, logg))
				r.Patch("/update/{productId}/", controllers.ProductUpdate(deps.Products, logg))
				r.Delete("/delete/{productId}/", controllers.ProductDelete(deps.Products, logg))
				r.Post("/{productId}/images/", controllers.ProductImageCreate(deps.Products, logg))
				r.Delete("/{productId}/images/{imageId}/", controllers.ProductImageDelete(deps.Products, logg))
				r.Post("/{productId}/reviews/", controllers.ProductReviewCreate(deps.Products, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", controllers.OrderList(deps.Orders, logg))
			r.Post("/create/", controllers.OrderCreate(deps.Orders, logg))
			r.Get("/{orderId}/", controllers.OrderDetail(deps.Orders, logg))
			r.Put("/update/{orderId}/", controllers.OrderStatusUpdate(deps.Orders, logg))
			r.Patch("/update/{orderId}/", controllers.OrderStatusUpdate(deps.Orders, logg))
			r.Delete("/delete/{orderId}/", controllers.OrderDelete(deps.Orders, logg))

			r.Get("/custom/", controllers.CustomOrderList(deps.Orders, logg))
			r.Post("/custom/create/", controllers.CustomOrderCreate(deps.Orders, logg))
			r.Put("/custom/update/{orderId}/", controllers.CustomOrderStatusUpdate(deps.Orders, logg))
			r.Patch("/custom/update/{orderId}/", controllers.CustomOrderStatusUpdate(deps.Orders, logg))
		})
	})

	return r
}
