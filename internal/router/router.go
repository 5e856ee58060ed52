package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"logigraph-console/internal/config"
	"logigraph-console/internal/handler"
	"logigraph-console/internal/metrics"
	"logigraph-console/internal/middleware"
	"logigraph-console/internal/session"
)

type Handlers struct {
	Session  *handler.SessionHandler
	Health   *handler.HealthHandler
	Admin    *handler.AdminHandler
	Manager  *handler.ManagerHandler
	Customer *handler.CustomerHandler
	Catalog  *handler.CatalogHandler
	Tracking *handler.TrackingHandler
}

func New(cfg *config.Config, sessions *middleware.Sessions, m *metrics.Metrics, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", h.Health.Health)
	r.Handle("/metrics", m.Handler())

	guard := func(roles ...session.Role) func(http.Handler) http.Handler {
		return middleware.RequireRoles(m, roles...)
	}

	r.Group(func(app chi.Router) {
		app.Use(sessions.Handler)

		// Live sockets hijack the connection, which the buffering timeout
		// handler cannot allow.
		app.Group(func(live chi.Router) {
			live.Use(middleware.LiveTimeout(cfg.LiveMaxDuration))

			live.With(guard(session.RoleManager)).Get("/manager/tracking/{orderId}/live", h.Tracking.ManagerLive)
			live.With(guard(session.RoleCustomer)).Get("/customer/track/{orderId}/live", h.Tracking.CustomerLive)
		})

		app.Group(func(pages chi.Router) {
			pages.Use(middleware.Timeout(cfg.RequestTimeout))

			pages.Get("/", h.Session.Landing)
			pages.Get("/session", h.Session.Session)
			pages.Get("/login", h.Session.LoginPage)
			pages.Post("/login", h.Session.Login)
			pages.Post("/register", h.Session.Register)
			pages.Post("/logout", h.Session.Logout)
			pages.Get("/unauthorized", h.Session.Unauthorized)

			pages.Group(func(admin chi.Router) {
				admin.Use(guard(session.RoleAdmin))

				admin.Get("/admin/dashboard", h.Admin.Dashboard)
				admin.Get("/admin/products", h.Admin.Products)
				admin.Post("/admin/products", h.Admin.CreateProduct)
				admin.Put("/admin/products/{id}", h.Admin.UpdateProduct)
				admin.Delete("/admin/products/{id}", h.Admin.DeleteProduct)
				admin.Get("/admin/customers", h.Admin.Customers)
				admin.Post("/admin/customers", h.Admin.CreateCustomer)
				admin.Put("/admin/customers/{id}", h.Admin.UpdateCustomer)
				admin.Delete("/admin/customers/{id}", h.Admin.DeleteCustomer)
				admin.Get("/admin/warehouses", h.Admin.Warehouses)
				admin.Post("/admin/warehouses", h.Admin.CreateWarehouse)
				admin.Put("/admin/warehouses/{id}", h.Admin.UpdateWarehouse)
			})

			pages.Group(func(manager chi.Router) {
				manager.Use(guard(session.RoleManager))

				manager.Get("/manager/dashboard", h.Manager.Dashboard)
				manager.Get("/manager/orders", h.Manager.Orders)
				manager.Get("/manager/orders/{orderId}", h.Manager.Order)
				manager.Put("/manager/orders/{orderId}/status", h.Manager.UpdateOrderStatus)
				manager.Post("/manager/orders/{orderId}/cancel", h.Manager.CancelOrder)
				manager.Get("/manager/inventory", h.Manager.Inventory)
				manager.Post("/manager/inventory/add", h.Manager.AddStock)
				manager.Post("/manager/inventory/adjust", h.Manager.AdjustStock)
				manager.Get("/manager/vehicles", h.Manager.Vehicles)
				manager.Post("/manager/vehicles", h.Manager.RegisterVehicle)
				manager.Put("/manager/vehicles/{id}/status", h.Manager.UpdateVehicleStatus)
				manager.Put("/manager/vehicles/{id}/warehouse", h.Manager.MoveVehicle)
				manager.Get("/manager/routing", h.Manager.Routing)
				manager.Get("/manager/tracking/{orderId}", h.Tracking.ManagerView)
				manager.Post("/manager/tracking/start", h.Tracking.Start)
			})

			pages.Group(func(customer chi.Router) {
				customer.Use(guard(session.RoleCustomer))

				customer.Get("/customer/dashboard", h.Customer.Dashboard)
				customer.Get("/customer/create-order", h.Customer.OrderForm)
				customer.Post("/customer/create-order", h.Customer.PlaceOrder)
				customer.Post("/customer/create-order/check", h.Customer.CheckOrder)
				customer.Get("/customer/my-orders", h.Customer.MyOrders)
				customer.Get("/customer/track/{orderId}", h.Tracking.CustomerView)
				customer.Get("/customer/profile", h.Customer.Profile)
				customer.Put("/customer/profile", h.Customer.UpdateProfile)
			})

			pages.Group(func(catalog chi.Router) {
				catalog.Use(guard(session.AnyRole...))

				catalog.Get("/catalog/products", h.Catalog.Products)
				catalog.Get("/catalog/products/{id}", h.Catalog.Product)
			})
		})
	})

	return r
}
