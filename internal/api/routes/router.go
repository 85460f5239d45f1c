package routes

import (
	"net/http"

	"github.com/sokebat/barber-frontend-sub000/internal/api/handlers"
	"github.com/sokebat/barber-frontend-sub000/internal/api/middleware"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/observability"
)

// Handlers groups every route handler
type Handlers struct {
	Auth           *handlers.AuthHandler
	Appointment    *handlers.AppointmentHandler
	Category       *handlers.CategoryHandler
	Product        *handlers.ProductHandler
	ServiceCatalog *handlers.ServiceCatalogHandler
	Team           *handlers.TeamHandler
	Checkout       *handlers.CheckoutHandler
	SSE            *handlers.SSEHandler
	Health         *handlers.HealthHandler
}

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	handlers Handlers

	cacheMiddleware *middleware.CacheMiddleware
	authLimiter     *middleware.RateLimiter
}

// NewRouter creates a new router. cacheMiddleware and authLimiter may be nil.
func NewRouter(h Handlers, cacheMiddleware *middleware.CacheMiddleware, authLimiter *middleware.RateLimiter) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		handlers:        h,
		cacheMiddleware: cacheMiddleware,
		authLimiter:     authLimiter,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	h := r.handlers

	r.mux.HandleFunc("GET /health", h.Health.Health)
	r.mux.Handle("GET /metrics", observability.PrometheusHandler())

	// Auth
	r.mux.Handle("POST /auth/register", r.limited(h.Auth.Register))
	r.mux.Handle("POST /auth/login", r.limited(h.Auth.Login))
	r.mux.Handle("GET /auth/me", authed(h.Auth.Me))

	// Appointments
	r.mux.Handle("GET /Appointment", admin(h.Appointment.List))
	r.mux.Handle("GET /Appointment/mine", authed(h.Appointment.Mine))
	r.mux.HandleFunc("GET /Appointment/availability", h.Appointment.Availability)
	r.mux.Handle("GET /Appointment/stream", admin(h.SSE.StreamAppointments))
	r.mux.Handle("GET /Appointment/{id}", authed(h.Appointment.Get))
	r.mux.Handle("POST /Appointment", authed(h.Appointment.Create))
	r.mux.Handle("PUT /Appointment/{id}", admin(h.Appointment.Update))
	r.mux.Handle("PATCH /Appointment/{id}/approve", admin(h.Appointment.Approve))
	r.mux.Handle("DELETE /Appointment/{id}", admin(h.Appointment.Delete))

	// Product categories
	r.mux.HandleFunc("GET /Category", h.Category.List)
	r.mux.HandleFunc("GET /Category/{id}", h.Category.Get)
	r.mux.Handle("POST /Category", admin(h.Category.Create))
	r.mux.Handle("PUT /Category/{id}", admin(h.Category.Update))
	r.mux.Handle("DELETE /Category/{id}", admin(h.Category.Delete))

	// Products
	r.mux.HandleFunc("GET /Product", h.Product.List)
	r.mux.HandleFunc("GET /Product/search", h.Product.Search)
	r.mux.HandleFunc("GET /Product/{id}", h.Product.Get)
	r.mux.Handle("POST /Product", admin(h.Product.Create))
	r.mux.Handle("PUT /Product/{id}", admin(h.Product.Update))
	r.mux.Handle("DELETE /Product/{id}", admin(h.Product.Delete))

	// Service menu
	r.mux.HandleFunc("GET /OurServices", h.ServiceCatalog.List)
	r.mux.HandleFunc("GET /OurServices/{id}", h.ServiceCatalog.Get)
	r.mux.Handle("POST /OurServices", admin(h.ServiceCatalog.Create))
	r.mux.Handle("PUT /OurServices/{id}", admin(h.ServiceCatalog.Update))
	r.mux.Handle("DELETE /OurServices/{id}", admin(h.ServiceCatalog.Delete))
	r.mux.Handle("POST /OurServices/{id}/items", admin(h.ServiceCatalog.AddItem))
	r.mux.Handle("PUT /OurServices/{id}/items/{itemId}", admin(h.ServiceCatalog.UpdateItem))
	r.mux.Handle("DELETE /OurServices/{id}/items/{itemId}", admin(h.ServiceCatalog.DeleteItem))

	// Team
	r.mux.HandleFunc("GET /Team", h.Team.List)
	r.mux.HandleFunc("GET /Team/{id}", h.Team.Get)
	r.mux.Handle("POST /Team", admin(h.Team.Create))
	r.mux.Handle("PUT /Team/{id}", admin(h.Team.Update))
	r.mux.Handle("DELETE /Team/{id}", admin(h.Team.Delete))

	// Checkout
	r.mux.Handle("POST /Checkout", authed(h.Checkout.Checkout))
	r.mux.Handle("GET /Orders/mine", authed(h.Checkout.Mine))

	var handler http.Handler = r.mux
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}
	return handler
}

func (r *Router) limited(fn http.HandlerFunc) http.Handler {
	if r.authLimiter == nil {
		return fn
	}
	return r.authLimiter.Middleware(fn)
}

func authed(fn http.HandlerFunc) http.Handler {
	return middleware.RequireAuth(fn)
}

func admin(fn http.HandlerFunc) http.Handler {
	return middleware.RequireAdmin(fn)
}
