package jobs

import (
	"collectgames/config"
	"collectgames/internal/database"
	"collectgames/internal/repositories"
	"collectgames/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	Daily  = services.Daily
	Hourly = services.Hourly
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	services services.Service,
	repos repositories.Repository,
	db database.DB,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")

	if !config.SchedulerEnabled {
		log.Info("Scheduler disabled, skipping job registration")
		return nil
	}

	cacheInvalidationJob := NewCollectionCacheInvalidationJob(services.CollectionCache, Hourly)
	if err := schedulerService.AddJob(cacheInvalidationJob); err != nil {
		return log.Err("failed to register collection cache invalidation job", err)
	}
	log.Info("Registered collection cache invalidation job", "schedule", "hourly")

	imageCleanupJob := NewImageCleanupJob(services.Images, repos, db.SQL, Daily)
	if err := schedulerService.AddJob(imageCleanupJob); err != nil {
		return log.Err("failed to register image cleanup job", err)
	}
	log.Info("Registered image cleanup job", "schedule", "daily")

	return nil
}
