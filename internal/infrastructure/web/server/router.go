package server

import (
	_ "btc-rate-monitor/internal/docs"
	"btc-rate-monitor/internal/infrastructure/metrics"
	"btc-rate-monitor/internal/infrastructure/web/handlers"
	"btc-rate-monitor/internal/infrastructure/web/middleware"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Routes bundles the handlers the router mounts
type Routes struct {
	Price  *handlers.PriceHandler
	Health *handlers.HealthHandler
	// Alerts is optional; nil leaves the websocket route unmounted
	Alerts http.Handler
	// PriceLimit, when set, wraps the price route only
	PriceLimit func(http.Handler) http.Handler
}

// NewRouter wires every endpoint behind the recovery, tracing and metrics middleware
func NewRouter(routes Routes) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RecoveryMiddleware, middleware.RequestTracingMiddleware, metrics.HTTPMetricsMiddleware)

	r.HandleFunc("/health", routes.Health.Health).Methods(http.MethodGet)
	r.HandleFunc("/ready", routes.Health.Ready).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	var price http.Handler = http.HandlerFunc(routes.Price.GetPrice)
	if routes.PriceLimit != nil {
		price = routes.PriceLimit(price)
	}
	api.Handle("/price", price).Methods(http.MethodGet)
	if routes.Alerts != nil {
		api.Handle("/alerts/ws", routes.Alerts).Methods(http.MethodGet)
	}

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}
