package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"arcrelay/internal/mw"
	"arcrelay/internal/service"
)

type Deps struct {
	Orders        *service.OrderService
	Creator       OrderCreator
	WebhookSecret []byte
	Now           func() time.Time
}

func NewRouter(d Deps) http.Handler {
	now := d.Now
	if now == nil {
		now = time.Now
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.With(mw.SignatureMiddleware(d.WebhookSecret)).Post("/webhook", WebhookHandler(d.Orders))
	r.Post("/create", CreateOrderHandler(d.Orders, d.Creator, now))
	r.Get("/", ListOrdersHandler(d.Orders))

	return r
}
