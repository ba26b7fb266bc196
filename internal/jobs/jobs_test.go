package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"collectgames/config"
	"collectgames/internal/database"
	"collectgames/internal/models"
	"collectgames/internal/repositories/repotest"
	"collectgames/internal/services"
	"collectgames/internal/services/servicetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 1, 2, 0, 0, 0, time.UTC)

func strPtr(s string) *string {
	return &s
}

func TestCollectionCacheInvalidationJob_Name(t *testing.T) {
	job := &CollectionCacheInvalidationJob{}
	assert.Equal(t, "CollectionCacheInvalidation", job.Name())
}

func TestCollectionCacheInvalidationJob_Schedule(t *testing.T) {
	job := NewCollectionCacheInvalidationJob(nil, Hourly)
	assert.Equal(t, services.Hourly, job.Schedule())
}

func TestCollectionCacheInvalidationJob_Execute(t *testing.T) {
	cache := &servicetest.MockCollectionCache{}
	cache.On("Invalidate", mock.Anything).Return(nil).Once()

	job := NewCollectionCacheInvalidationJob(cache, Hourly)

	assert.NoError(t, job.Execute(context.Background()))
	cache.AssertExpectations(t)
}

func TestCollectionCacheInvalidationJob_ExecuteError(t *testing.T) {
	cache := &servicetest.MockCollectionCache{}
	cacheErr := errors.New("valkey: connection refused")
	cache.On("Invalidate", mock.Anything).Return(cacheErr).Once()

	job := NewCollectionCacheInvalidationJob(cache, Hourly)

	err := job.Execute(context.Background())
	assert.ErrorIs(t, err, cacheErr)
}

func newCleanupJob(images *servicetest.MockImageStore, store *repotest.Store) *ImageCleanupJob {
	job := NewImageCleanupJob(images, store.Repository(), nil, Daily)
	job.now = func() time.Time { return fixedNow }
	return job
}

func TestImageCleanupJob_DeletesOnlyOldOrphans(t *testing.T) {
	store := repotest.New()
	game, err := store.Repository().Game.FindOrCreate(context.Background(), nil, "Doom", "32X")
	require.NoError(t, err)
	store.PutItem(models.UserCollectionItem{
		GameID:        game.ID,
		UserImagePath: strPtr("/images/owned.png"),
		AddedDate:     fixedNow,
	})
	store.PutWishlistItem(models.WishlistItem{
		Title:     "Knuckles Chaotix",
		Platform:  "32X",
		ImageURL:  strPtr("/images/wanted.jpg"),
		AddedDate: fixedNow,
	})

	old := fixedNow.Add(-48 * time.Hour)
	images := &servicetest.MockImageStore{}
	images.On("List", mock.Anything).Return([]services.StoredImage{
		{Path: "/images/owned.png", ModifiedAt: old},
		{Path: "/images/wanted.jpg", ModifiedAt: old},
		{Path: "/images/orphan.png", ModifiedAt: old},
		{Path: "/images/fresh.png", ModifiedAt: fixedNow.Add(-time.Hour)},
	}, nil).Once()
	images.On("Delete", mock.Anything, "/images/orphan.png").Return(nil).Once()

	result, err := newCleanupJob(images, store).Cleanup(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ImageCleanupResult{Scanned: 4, Deleted: 1}, result)
	images.AssertExpectations(t)
	images.AssertNotCalled(t, "Delete", mock.Anything, "/images/fresh.png")
}

func TestImageCleanupJob_DeleteFailureContinues(t *testing.T) {
	old := fixedNow.Add(-72 * time.Hour)
	images := &servicetest.MockImageStore{}
	images.On("List", mock.Anything).Return([]services.StoredImage{
		{Path: "/images/a.png", ModifiedAt: old},
		{Path: "/images/b.png", ModifiedAt: old},
	}, nil).Once()
	images.On("Delete", mock.Anything, "/images/a.png").Return(errors.New("read-only file system")).Once()
	images.On("Delete", mock.Anything, "/images/b.png").Return(nil).Once()

	result, err := newCleanupJob(images, repotest.New()).Cleanup(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ImageCleanupResult{Scanned: 2, Deleted: 1, Failed: 1}, result)
}

func TestImageCleanupJob_ListError(t *testing.T) {
	listErr := errors.New("permission denied")
	images := &servicetest.MockImageStore{}
	images.On("List", mock.Anything).Return(nil, listErr).Once()

	err := newCleanupJob(images, repotest.New()).Execute(context.Background())
	assert.ErrorIs(t, err, listErr)
}

func TestImageCleanupJob_NameAndSchedule(t *testing.T) {
	job := NewImageCleanupJob(nil, repotest.New().Repository(), nil, Daily)
	assert.Equal(t, "ImageCleanup", job.Name())
	assert.Equal(t, services.Daily, job.Schedule())
}

func TestRegisterAllJobs(t *testing.T) {
	svc := services.Service{
		Images:          services.NewImageStorageService(t.TempDir()),
		CollectionCache: services.NewCollectionCacheService(nil),
	}
	repos := repotest.New().Repository()

	t.Run("disabled", func(t *testing.T) {
		scheduler := services.NewSchedulerService()
		err := RegisterAllJobs(scheduler, config.Config{SchedulerEnabled: false}, svc, repos, database.DB{})
		require.NoError(t, err)
		assert.Equal(t, 0, scheduler.GetJobCount())
	})

	t.Run("enabled", func(t *testing.T) {
		scheduler := services.NewSchedulerService()
		err := RegisterAllJobs(scheduler, config.Config{SchedulerEnabled: true}, svc, repos, database.DB{})
		require.NoError(t, err)
		assert.Equal(t, 2, scheduler.GetJobCount())
	})
}
