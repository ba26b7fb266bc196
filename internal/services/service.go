package services

import (
	"collectgames/config"
	"collectgames/internal/database"
)

type Service struct {
	Transaction     *TransactionService
	Scheduler       *SchedulerService
	Images          *ImageStorageService
	Reports         *ReportService
	CollectionCache *CollectionCacheService
}

func New(db database.DB, config config.Config) Service {
	imageStorageService := NewImageStorageService(config.ImageStoragePath)

	return Service{
		Transaction:     NewTransactionService(db, config.DatabaseRetries),
		Scheduler:       NewSchedulerService(),
		Images:          imageStorageService,
		Reports:         NewReportService(imageStorageService),
		CollectionCache: NewCollectionCacheService(db.Cache.General),
	}
}
