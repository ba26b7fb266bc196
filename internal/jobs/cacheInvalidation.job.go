package jobs

import (
	"context"

	"collectgames/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// CollectionCacheInvalidationJob drops the cached collection listing so the
// next read reloads it from the store.
type CollectionCacheInvalidationJob struct {
	cache    services.CollectionCache
	log      logger.Logger
	schedule services.Schedule
}

func NewCollectionCacheInvalidationJob(
	cache services.CollectionCache,
	schedule services.Schedule,
) *CollectionCacheInvalidationJob {
	log := logger.New("collectionCacheInvalidationJob")
	log.Info("Creating new collection cache invalidation job", "schedule", schedule)

	return &CollectionCacheInvalidationJob{
		cache:    cache,
		log:      log,
		schedule: schedule,
	}
}

func (j *CollectionCacheInvalidationJob) Name() string {
	return "CollectionCacheInvalidation"
}

func (j *CollectionCacheInvalidationJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	if err := j.cache.Invalidate(ctx); err != nil {
		return log.Err("failed to invalidate collection cache", err)
	}

	log.Info("Collection cache invalidated")
	return nil
}

func (j *CollectionCacheInvalidationJob) Schedule() services.Schedule {
	return j.schedule
}
