package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kinohall/booking-front/internal/observability"
	"github.com/kinohall/booking-front/internal/rateLimit"
)

func SetupRouter(h *Handlers, logger observability.Logger, rl *rateLimit.RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(logger))
	r.Use(TracingMiddleware)
	r.Use(SessionMiddleware)
	r.Use(RateLimitMiddleware(rl))
	r.Use(MetricsMiddleware)

	r.Get("/", h.Schedule)
	r.Get("/seances/select", h.SelectSeance)
	r.Get("/hall", h.Hall)
	r.Post("/hall/toggle", h.ToggleSeat)
	r.Post("/hall/book", h.BookSeats)
	r.Post("/hall/zoom", h.HallZoom)
	r.Get("/payment", h.Payment)
	r.Post("/payment/confirm", h.ConfirmPayment)
	r.Get("/ticket", h.Ticket)
	r.Get("/ticket/qr.png", h.TicketQR)
	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
