package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"stockroom/internal/product"
	"stockroom/internal/purchaserequest"
	stockoutctrl "stockroom/internal/stockout/controller"
	"stockroom/internal/supplier"
)

func NewRouter(
	productCtrl *product.Controller,
	supplierCtrl *supplier.Controller,
	purchaseRequestCtrl *purchaserequest.Controller,
	stockOutCtrl *stockoutctrl.StockOutController,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/products", func(r chi.Router) {
		r.Post("/", productCtrl.Create)
		r.Get("/", productCtrl.List)
		r.Get("/{id}", productCtrl.Get)
		r.Put("/{id}", productCtrl.Update)
		r.Delete("/{id}", productCtrl.Delete)
	})

	r.Route("/suppliers", func(r chi.Router) {
		r.Post("/", supplierCtrl.Create)
		r.Get("/", supplierCtrl.List)
		r.Get("/{id}", supplierCtrl.Get)
		r.Put("/{id}", supplierCtrl.Update)
		r.Delete("/{id}", supplierCtrl.Delete)
	})

	r.Route("/purchase-requests", func(r chi.Router) {
		r.Post("/", purchaseRequestCtrl.Create)
		r.Get("/", purchaseRequestCtrl.List)
		r.Get("/{id}", purchaseRequestCtrl.Get)
		r.Put("/{id}/status", purchaseRequestCtrl.UpdateStatus)
	})

	r.Route("/stockouts", func(r chi.Router) {
		r.Post("/", stockOutCtrl.Create)
		r.Get("/", stockOutCtrl.List)
		r.Get("/{id}", stockOutCtrl.Get)
		r.Put("/{id}/confirm", stockOutCtrl.Confirm)
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
				zap.Duration("duration", time.Since(start)),
				zap.String("requestId", middleware.GetReqID(r.Context())),
			)
		})
	}
}
