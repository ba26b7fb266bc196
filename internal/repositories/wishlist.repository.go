package repositories

import (
	"context"

	domainerrors "collectgames/internal/errors"
	. "collectgames/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistRepository interface {
	GetAll(ctx context.Context, tx *gorm.DB) ([]*WishlistItem, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*WishlistItem, error)
	// GetByIDForUpdate locks the row until tx ends.
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id int) (*WishlistItem, error)
	Create(ctx context.Context, tx *gorm.DB, item *WishlistItem) error
	Update(ctx context.Context, tx *gorm.DB, item *WishlistItem) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
	ImagePaths(ctx context.Context, tx *gorm.DB) ([]string, error)
}

type wishlistRepository struct {
	log logger.Logger
}

func NewWishlistRepository() WishlistRepository {
	return &wishlistRepository{log: logger.New("wishlistRepository")}
}

func (r *wishlistRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]*WishlistItem, error) {
	log := r.log.TraceFromContext(ctx).Function("GetAll")

	items, err := gorm.G[*WishlistItem](tx).Order("added_date DESC, id DESC").Find(ctx)
	if err != nil {
		return nil, log.Err(
			"failed to get wishlist items",
			translateError(err, "failed to get wishlist items"),
		)
	}

	return items, nil
}

func (r *wishlistRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*WishlistItem, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	item, err := gorm.G[WishlistItem](tx).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, log.Err(
			"failed to get wishlist item",
			translateError(err, "wishlist item not found"),
			"itemID", id,
		)
	}

	return &item, nil
}

func (r *wishlistRepository) GetByIDForUpdate(
	ctx context.Context,
	tx *gorm.DB,
	id int,
) (*WishlistItem, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByIDForUpdate")

	item, err := gorm.G[WishlistItem](tx, clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id).
		First(ctx)
	if err != nil {
		return nil, log.Err(
			"failed to lock wishlist item",
			translateError(err, "wishlist item not found"),
			"itemID", id,
		)
	}

	return &item, nil
}

func (r *wishlistRepository) Create(ctx context.Context, tx *gorm.DB, item *WishlistItem) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := gorm.G[WishlistItem](tx).Create(ctx, item); err != nil {
		return log.Err(
			"failed to create wishlist item",
			translateError(err, "failed to create wishlist item"),
			"title", item.Title,
		)
	}

	return nil
}

func (r *wishlistRepository) Update(ctx context.Context, tx *gorm.DB, item *WishlistItem) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	result := tx.WithContext(ctx).
		Model(item).
		Select(
			"title",
			"platform",
			"image_url",
			"purchase_link",
			"estimated_price",
			"notes",
			"priority",
			"updated_at",
		).
		Updates(item)
	if result.Error != nil {
		return log.Err(
			"failed to update wishlist item",
			translateError(result.Error, "failed to update wishlist item"),
			"itemID", item.ID,
		)
	}

	if result.RowsAffected == 0 {
		return domainerrors.NotFoundf("wishlist item %d not found", item.ID)
	}

	return nil
}

func (r *wishlistRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	rowsAffected, err := gorm.G[WishlistItem](tx).Where("id = ?", id).Delete(ctx)
	if err != nil {
		return log.Err(
			"failed to delete wishlist item",
			translateError(err, "failed to delete wishlist item"),
			"itemID", id,
		)
	}

	if rowsAffected == 0 {
		return domainerrors.NotFoundf("wishlist item %d not found", id)
	}

	return nil
}

func (r *wishlistRepository) ImagePaths(ctx context.Context, tx *gorm.DB) ([]string, error) {
	log := r.log.TraceFromContext(ctx).Function("ImagePaths")

	var paths []string
	err := tx.WithContext(ctx).
		Model(&WishlistItem{}).
		Where("image_url IS NOT NULL AND image_url <> ''").
		Pluck("image_url", &paths).Error
	if err != nil {
		return nil, log.Err(
			"failed to list wishlist image paths",
			translateError(err, "failed to list wishlist image paths"),
		)
	}

	return paths, nil
}
