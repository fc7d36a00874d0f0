package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"orderdesk/internal/auth"
	"orderdesk/internal/dropdown"
	"orderdesk/internal/order/controller"
	"orderdesk/internal/respond"
)

type Modules struct {
	Dropdown *dropdown.Controller
	Orders   *controller.OrderController
	Auth     *auth.Module
}

func NewRouter(m Modules, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", m.Auth.Controller.HandleLogin)
		r.Get("/data", m.Dropdown.HandleGetData)
		r.Post("/orders", m.Orders.HandleSubmit)

		r.Group(func(r chi.Router) {
			r.Use(m.Auth.Admin)
			r.Get("/orders", m.Orders.HandleList)
			r.Delete("/orders/{id}", m.Orders.HandleDeleteOrder)
			r.Delete("/records/{id}", m.Orders.HandleDeleteRecord)
		})
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
