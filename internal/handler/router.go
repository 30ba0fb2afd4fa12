package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"

	custommiddleware "github.com/Miyuranga305/Order-Platform-Frontend/internal/middleware"
)

// SetupRouter настраивает маршруты страниц и middleware фронтенда.
func (h *Handler) SetupRouter(csrfKey []byte, secureCookies bool) *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))
	r.Use(csrf.Protect(csrfKey,
		csrf.Secure(secureCookies),
		csrf.Path("/"),
	))

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	r.Get("/login", h.LoginPage)
	r.Post("/login", h.Login)
	r.Get("/register", h.RegisterPage)
	r.Post("/register", h.Register)
	r.Get("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(h.identity.RequireUser)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/orders", http.StatusFound)
		})

		r.Get("/orders", h.MyOrders)
		r.Get("/orders/new", h.NewOrderPage)
		r.Post("/orders/new", h.CreateOrder)
		r.Get("/orders/{id}", h.OrderDetails)
		r.Get("/orders/{id}/delete", h.DeleteOrderConfirm)
		r.Post("/orders/{id}/delete", h.DeleteOrder)

		r.Group(func(r chi.Router) {
			r.Use(h.identity.RequireAdmin)

			r.Get("/admin/users", h.AdminUsers)
			r.Post("/admin/users/{id}/status", h.SetUserStatus)

			r.Get("/admin/orders", h.AdminOrders)

			r.Get("/admin/notifications", h.AdminNotifications)
			r.Post("/admin/notifications/{id}/read", h.MarkNotificationRead)
			r.Post("/admin/notifications/read-all", h.MarkAllNotificationsRead)
			r.Post("/admin/notifications/{id}/delete", h.DeleteNotification)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
