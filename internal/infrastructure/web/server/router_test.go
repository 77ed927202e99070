package server

import (
	"btc-rate-monitor/internal/application/services"
	"btc-rate-monitor/internal/domain/entities"
	"btc-rate-monitor/internal/infrastructure/repositories/cache"
	"btc-rate-monitor/internal/infrastructure/web/handlers"
	"btc-rate-monitor/internal/infrastructure/web/middleware"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedFetcher struct{}

func (fixedFetcher) FetchRate(context.Context) (entities.ExchangeRate, error) {
	return entities.NewExchangeRate("2024-01-01T00:00:00Z", 42000), nil
}

func newTestRouter() http.Handler {
	store := cache.NewMemoryStore()
	svc := services.NewPriceCacheService(store, fixedFetcher{})
	return NewRouter(Routes{
		Price:  handlers.NewPriceHandler(svc),
		Health: handlers.NewHealthHandler(store),
		Alerts: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) }),
	})
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/api/v1/price", http.StatusOK},
		{http.MethodGet, "/api/v1/price?format=text", http.StatusOK},
		{http.MethodGet, "/api/v1/alerts/ws", http.StatusTeapot},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/swagger/doc.json", http.StatusOK},
		{http.MethodPost, "/api/v1/price", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/v1/ltp", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRouter_SetsRequestID(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Len(t, rec.Header().Get(middleware.RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "upstream-id")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-id", rec.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_PriceLimitAppliesToPriceOnly(t *testing.T) {
	store := cache.NewMemoryStore()
	reject := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTooManyRequests) })
	}
	router := NewRouter(Routes{
		Price:      handlers.NewPriceHandler(services.NewPriceCacheService(store, fixedFetcher{})),
		Health:     handlers.NewHealthHandler(store),
		PriceLimit: reject,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/price", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/alerts/ws", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code, "alerts route is not mounted without a handler")
}

func TestServer_ServeAndStop(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewServer(newTestRouter(), 0)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))
	assert.NoError(t, <-done)
}
