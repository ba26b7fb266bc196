package services

import (
	"context"

	"collectgames/internal/constants"
	"collectgames/internal/database"
	"collectgames/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// CollectionCache is an advisory cache for the full collection listing.
// Failures are reported to the caller, which logs and falls through to the
// store.
type CollectionCache interface {
	Get(ctx context.Context) ([]*models.UserCollectionItem, bool, error)
	Set(ctx context.Context, items []*models.UserCollectionItem) error
	Invalidate(ctx context.Context) error
}

// CollectionCacheService stores the listing in valkey. A nil client turns
// every call into a miss.
type CollectionCacheService struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewCollectionCacheService(cache database.CacheClient) *CollectionCacheService {
	return &CollectionCacheService{
		cache: cache,
		log:   logger.New("collectionCacheService"),
	}
}

func (s *CollectionCacheService) Enabled() bool {
	return s.cache != nil
}

func (s *CollectionCacheService) Get(ctx context.Context) ([]*models.UserCollectionItem, bool, error) {
	if s.cache == nil {
		return nil, false, nil
	}

	var items []*models.UserCollectionItem
	found, err := database.NewCacheBuilder(s.cache, constants.CollectionCacheKey).
		WithContext(ctx).
		Get(&items)
	if err != nil {
		return nil, false, err
	}

	return items, found, nil
}

func (s *CollectionCacheService) Set(ctx context.Context, items []*models.UserCollectionItem) error {
	if s.cache == nil {
		return nil
	}

	return database.NewCacheBuilder(s.cache, constants.CollectionCacheKey).
		WithContext(ctx).
		WithStruct(items).
		WithTTL(constants.CollectionCacheExpiry).
		Set()
}

func (s *CollectionCacheService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	log := s.log.TraceFromContext(ctx).Function("Invalidate")
	if err := database.NewCacheBuilder(s.cache, constants.CollectionCacheKey).WithContext(ctx).Delete(); err != nil {
		return err
	}

	log.Debug("Invalidated collection cache")
	return nil
}
