// Package servicetest holds testify mocks for the service interfaces used by
// controllers, jobs and handlers.
package servicetest

import (
	"context"
	"time"

	"collectgames/internal/models"
	"collectgames/internal/services"

	"github.com/stretchr/testify/mock"
)

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, upload services.ImageUpload) (string, error) {
	args := m.Called(ctx, upload)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, publicPath string) error {
	args := m.Called(ctx, publicPath)
	return args.Error(0)
}

func (m *MockImageStore) List(ctx context.Context) ([]services.StoredImage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.StoredImage), args.Error(1)
}

func (m *MockImageStore) LocalPath(publicPath string) (string, bool) {
	args := m.Called(publicPath)
	return args.String(0), args.Bool(1)
}

type MockCollectionCache struct {
	mock.Mock
}

func (m *MockCollectionCache) Get(ctx context.Context) ([]*models.UserCollectionItem, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*models.UserCollectionItem), args.Bool(1), args.Error(2)
}

func (m *MockCollectionCache) Set(ctx context.Context, items []*models.UserCollectionItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockCollectionCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// NewMissingCache returns a cache that always misses and accepts writes.
func NewMissingCache() *MockCollectionCache {
	cache := &MockCollectionCache{}
	cache.On("Get", mock.Anything).Return(nil, false, nil).Maybe()
	cache.On("Set", mock.Anything, mock.Anything).Return(nil).Maybe()
	cache.On("Invalidate", mock.Anything).Return(nil).Maybe()
	return cache
}

type MockReportRenderer struct {
	mock.Mock
}

func (m *MockReportRenderer) CollectionPDF(
	ctx context.Context,
	items []*models.UserCollectionItem,
	generatedAt time.Time,
) ([]byte, error) {
	args := m.Called(ctx, items, generatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportRenderer) WishlistPDF(
	ctx context.Context,
	items []*models.WishlistItem,
	generatedAt time.Time,
) ([]byte, error) {
	args := m.Called(ctx, items, generatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) CollectionUpdated(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockNotifier) GameAdded(ctx context.Context, title string) {
	m.Called(ctx, title)
}

func (m *MockNotifier) GameRemoved(ctx context.Context, title string) {
	m.Called(ctx, title)
}

// NewQuietNotifier accepts every notification.
func NewQuietNotifier() *MockNotifier {
	notifier := &MockNotifier{}
	notifier.On("CollectionUpdated", mock.Anything).Maybe()
	notifier.On("GameAdded", mock.Anything, mock.Anything).Maybe()
	notifier.On("GameRemoved", mock.Anything, mock.Anything).Maybe()
	return notifier
}
