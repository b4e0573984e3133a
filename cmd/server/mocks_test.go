package main

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/s3sync/s3sync/internal/config"
	"github.com/s3sync/s3sync/internal/models"
	"github.com/s3sync/s3sync/internal/store"
)

func newTestServer(st store.ObjectStore, usage store.UsageReader) *echo.Echo {
	cfg := &config.Config{}
	cfg.Server.PresignTTL = time.Hour
	return newServer(st, usage, cfg, zerolog.Nop())
}

// MockObjectStore implements store.ObjectStore for testing
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) List(ctx context.Context, prefix string) (models.Listing, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(models.Listing), args.Error(1)
}

func (m *MockObjectStore) Walk(ctx context.Context, prefix string) ([]models.ObjectRecord, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).([]models.ObjectRecord), args.Error(1)
}

func (m *MockObjectStore) Reader(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *MockObjectStore) PresignGet(ctx context.Context, key string, ttl time.Duration) (*url.URL, error) {
	args := m.Called(ctx, key, ttl)
	return args.Get(0).(*url.URL), args.Error(1)
}

func (m *MockObjectStore) PresignPut(ctx context.Context, key string, ttl time.Duration) (*url.URL, error) {
	args := m.Called(ctx, key, ttl)
	return args.Get(0).(*url.URL), args.Error(1)
}

// MockUsageReader implements store.UsageReader for testing
type MockUsageReader struct {
	mock.Mock
}

func (m *MockUsageReader) Usage(ctx context.Context) (store.Usage, error) {
	args := m.Called(ctx)
	return args.Get(0).(store.Usage), args.Error(1)
}
