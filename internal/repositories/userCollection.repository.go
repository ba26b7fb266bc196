package repositories

import (
	"context"

	domainerrors "collectgames/internal/errors"
	. "collectgames/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type UserCollectionRepository interface {
	// GetAll returns every item newest first, each with its game.
	GetAll(ctx context.Context, tx *gorm.DB) ([]*UserCollectionItem, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*UserCollectionItem, error)
	Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, item *UserCollectionItem) error
	Update(ctx context.Context, tx *gorm.DB, item *UserCollectionItem) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
	ImagePaths(ctx context.Context, tx *gorm.DB) ([]string, error)
}

type userCollectionRepository struct {
	log logger.Logger
}

func NewUserCollectionRepository() UserCollectionRepository {
	return &userCollectionRepository{log: logger.New("userCollectionRepository")}
}

func (r *userCollectionRepository) GetAll(
	ctx context.Context,
	tx *gorm.DB,
) ([]*UserCollectionItem, error) {
	log := r.log.TraceFromContext(ctx).Function("GetAll")

	items, err := gorm.G[*UserCollectionItem](tx).
		Preload("Game", nil).
		Order("added_date DESC, id DESC").
		Find(ctx)
	if err != nil {
		return nil, log.Err(
			"failed to get collection items",
			translateError(err, "failed to get collection items"),
		)
	}

	return items, nil
}

func (r *userCollectionRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id int,
) (*UserCollectionItem, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	item, err := gorm.G[UserCollectionItem](tx).
		Preload("Game", nil).
		Where("id = ?", id).
		First(ctx)
	if err != nil {
		return nil, log.Err(
			"failed to get collection item",
			translateError(err, "collection item not found"),
			"itemID", id,
		)
	}

	return &item, nil
}

func (r *userCollectionRepository) Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	log := r.log.TraceFromContext(ctx).Function("Exists")

	count, err := gorm.G[UserCollectionItem](tx).Where("id = ?", id).Count(ctx, "id")
	if err != nil {
		return false, log.Err(
			"failed to check collection item",
			translateError(err, "failed to check collection item"),
			"itemID", id,
		)
	}

	return count > 0, nil
}

func (r *userCollectionRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	item *UserCollectionItem,
) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Omit("Game").Create(item).Error; err != nil {
		return log.Err(
			"failed to create collection item",
			translateError(err, "failed to create collection item"),
			"gameID", item.GameID,
		)
	}

	return nil
}

// Update writes the patchable columns of item.
func (r *userCollectionRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	item *UserCollectionItem,
) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	result := tx.WithContext(ctx).
		Model(item).
		Select("condition", "price_paid", "purchase_date", "user_image_path", "notes", "updated_at").
		Updates(item)
	if result.Error != nil {
		return log.Err(
			"failed to update collection item",
			translateError(result.Error, "failed to update collection item"),
			"itemID", item.ID,
		)
	}

	if result.RowsAffected == 0 {
		return domainerrors.NotFoundf("collection item %d not found", item.ID)
	}

	return nil
}

func (r *userCollectionRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	rowsAffected, err := gorm.G[UserCollectionItem](tx).Where("id = ?", id).Delete(ctx)
	if err != nil {
		return log.Err(
			"failed to delete collection item",
			translateError(err, "failed to delete collection item"),
			"itemID", id,
		)
	}

	if rowsAffected == 0 {
		return domainerrors.NotFoundf("collection item %d not found", id)
	}

	return nil
}

func (r *userCollectionRepository) ImagePaths(ctx context.Context, tx *gorm.DB) ([]string, error) {
	log := r.log.TraceFromContext(ctx).Function("ImagePaths")

	var paths []string
	err := tx.WithContext(ctx).
		Model(&UserCollectionItem{}).
		Where("user_image_path IS NOT NULL AND user_image_path <> ''").
		Pluck("user_image_path", &paths).Error
	if err != nil {
		return nil, log.Err(
			"failed to list collection image paths",
			translateError(err, "failed to list collection image paths"),
		)
	}

	return paths, nil
}
