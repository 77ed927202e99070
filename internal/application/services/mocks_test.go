package services

import (
	"btc-rate-monitor/internal/domain/entities"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) Close() error {
	return m.Called().Error(0)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchRate(ctx context.Context) (entities.ExchangeRate, error) {
	args := m.Called(ctx)
	return args.Get(0).(entities.ExchangeRate), args.Error(1)
}
