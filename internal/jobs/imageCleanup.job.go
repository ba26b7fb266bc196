package jobs

import (
	"context"
	"time"

	"collectgames/internal/repositories"
	"collectgames/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// ImageCleanupGracePeriod protects images uploaded moments ago whose row is
// not committed yet.
const ImageCleanupGracePeriod = 24 * time.Hour

// ImageCleanupJob removes stored images no collection or wishlist item
// references anymore.
type ImageCleanupJob struct {
	images         services.ImageStore
	collectionRepo repositories.UserCollectionRepository
	wishlistRepo   repositories.WishlistRepository
	db             *gorm.DB
	gracePeriod    time.Duration
	now            func() time.Time
	log            logger.Logger
	schedule       services.Schedule
}

type ImageCleanupResult struct {
	Scanned int
	Deleted int
	Failed  int
}

func NewImageCleanupJob(
	images services.ImageStore,
	repos repositories.Repository,
	db *gorm.DB,
	schedule services.Schedule,
) *ImageCleanupJob {
	log := logger.New("imageCleanupJob")
	log.Info("Creating new image cleanup job", "schedule", schedule)

	return &ImageCleanupJob{
		images:         images,
		collectionRepo: repos.UserCollection,
		wishlistRepo:   repos.Wishlist,
		db:             db,
		gracePeriod:    ImageCleanupGracePeriod,
		now:            time.Now,
		log:            log,
		schedule:       schedule,
	}
}

func (j *ImageCleanupJob) Name() string {
	return "ImageCleanup"
}

func (j *ImageCleanupJob) Execute(ctx context.Context) error {
	_, err := j.Cleanup(ctx)
	return err
}

// Cleanup deletes unreferenced images older than the grace period.
func (j *ImageCleanupJob) Cleanup(ctx context.Context) (ImageCleanupResult, error) {
	log := j.log.Function("Cleanup")

	var result ImageCleanupResult

	stored, err := j.images.List(ctx)
	if err != nil {
		return result, log.Err("failed to list stored images", err)
	}
	result.Scanned = len(stored)
	if len(stored) == 0 {
		log.Info("No stored images to check")
		return result, nil
	}

	referenced, err := j.referencedImages(ctx)
	if err != nil {
		return result, err
	}

	cutoff := j.now().Add(-j.gracePeriod)
	for _, image := range stored {
		if referenced[image.Path] || image.ModifiedAt.After(cutoff) {
			continue
		}

		if err := j.images.Delete(ctx, image.Path); err != nil {
			log.Warn("failed to delete orphaned image", "path", image.Path, "error", err)
			result.Failed++
			continue
		}
		result.Deleted++
	}

	log.Info(
		"Image cleanup completed",
		"scanned", result.Scanned,
		"deleted", result.Deleted,
		"failed", result.Failed,
	)
	return result, nil
}

func (j *ImageCleanupJob) referencedImages(ctx context.Context) (map[string]bool, error) {
	log := j.log.Function("referencedImages")

	collectionPaths, err := j.collectionRepo.ImagePaths(ctx, j.db)
	if err != nil {
		return nil, log.Err("failed to load collection image paths", err)
	}

	wishlistPaths, err := j.wishlistRepo.ImagePaths(ctx, j.db)
	if err != nil {
		return nil, log.Err("failed to load wishlist image paths", err)
	}

	referenced := make(map[string]bool, len(collectionPaths)+len(wishlistPaths))
	for _, path := range collectionPaths {
		referenced[path] = true
	}
	for _, path := range wishlistPaths {
		referenced[path] = true
	}
	return referenced, nil
}

func (j *ImageCleanupJob) Schedule() services.Schedule {
	return j.schedule
}
