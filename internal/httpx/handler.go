package httpx

import (
	"context"

	"github.com/ariefcatur/unicor-shoes/internal/redisx"
	"github.com/ariefcatur/unicor-shoes/internal/session"
	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// NotificationFeed lists the order notifications of a user.
type NotificationFeed interface {
	List(ctx context.Context, userID string) ([]redisx.Notification, error)
}

type Handler struct {
	Services *shop.Services
	Sessions session.Store
	Feed     NotificationFeed // optional
	Login    *RateLimiter     // optional, guards POST /auth/login
	Log      logrus.FieldLogger
}

func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.loadSession)

		r.Post("/auth/register", h.register)
		r.With(h.loginLimit).Post("/auth/login", h.login)
		r.Post("/auth/logout", h.logout)
		r.Get("/auth/username-available", h.usernameAvailable)

		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)
		r.Get("/categories", h.listCategories)

		r.Get("/cart", h.getCart)
		r.Post("/cart/items", h.addCartItem)
		r.Put("/cart/items/{productID}", h.setCartItem)
		r.Delete("/cart/items/{productID}", h.removeCartItem)
		r.Delete("/cart", h.clearCart)

		r.Group(func(r chi.Router) {
			r.Use(requireUser)

			r.Get("/me", h.getMe)
			r.Put("/me", h.updateMe)
			r.Get("/me/notifications", h.listNotifications)

			r.Get("/wishlist", h.getWishlist)
			r.Put("/wishlist/{productID}", h.addWishlist)
			r.Delete("/wishlist/{productID}", h.removeWishlist)

			r.Post("/orders", h.createOrder)
			r.Get("/orders", h.listOrders)
			r.Get("/orders/{id}", h.getOrder)
			r.Post("/orders/{id}/cancel", h.cancelOrder)

			r.Route("/admin", func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/products", h.adminListProducts)
				r.Post("/products", h.adminAddProduct)
				r.Get("/products/export", h.exportProducts)
				r.Put("/products/{id}", h.adminUpdateProduct)
				r.Delete("/products/{id}", h.adminDeleteProduct)
				r.Put("/products/{id}/stock", h.adminUpdateStock)
				r.Put("/products/{id}/active", h.adminSetActive)
				r.Get("/orders", h.adminListOrders)
				r.Put("/orders/{id}/status", h.adminUpdateStatus)
				r.Get("/users", h.adminListUsers)
			})
		})
	})
}
